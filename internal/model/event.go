package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTitleTooShort = errors.New("event title must have at least 5 characters")
	ErrDateInPast    = errors.New("event cannot be scheduled for a past date")
)

// Event is a scheduled occurrence at a location, owned by exactly one
// organizer. Ownership is immutable after creation; every mutating
// operation re-derives it from the stored record.
//
// Fields:
//  ID          – UUID primary key.
//  Title       – at least 5 characters, enforced on create and rename.
//  Description – optional free text.
//  Date        – start instant; must be in the future on create/reschedule.
//  OrganizerID – owning user, never changes.
//  LocationID  – venue the event is held at.
type Event struct {
	ID          string
	Title       string
	Description *string
	Date        time.Time
	OrganizerID string
	LocationID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEvent validates title length and that the date lies in the future,
// then assigns a fresh UUID.
func NewEvent(title string, description *string, date time.Time, organizerID, locationID string) (*Event, error) {
	if len(title) < 5 {
		return nil, ErrTitleTooShort
	}
	if date.Before(time.Now()) {
		return nil, ErrDateInPast
	}
	return &Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Date:        date,
		OrganizerID: organizerID,
		LocationID:  locationID,
	}, nil
}

// RestoreEvent rebuilds an event from storage. The future-date check is
// skipped: past events remain loadable after their date has gone by.
func RestoreEvent(id, title string, description *string, date time.Time, organizerID, locationID string) *Event {
	return &Event{
		ID:          id,
		Title:       title,
		Description: description,
		Date:        date,
		OrganizerID: organizerID,
		LocationID:  locationID,
	}
}

// Rename enforces the title invariant on update.
func (e *Event) Rename(title string) error {
	if len(title) < 5 {
		return ErrTitleTooShort
	}
	e.Title = title
	return nil
}

// Reschedule requires the new date to be in the future.
func (e *Event) Reschedule(date time.Time) error {
	if date.Before(time.Now()) {
		return ErrDateInPast
	}
	e.Date = date
	return nil
}

// UpdateDescription replaces the description; nil clears it.
func (e *Event) UpdateDescription(description *string) {
	e.Description = description
}

// IsOwnedBy reports whether the given user is the event's organizer.
func (e *Event) IsOwnedBy(userID string) bool {
	return e.OrganizerID == userID
}
