package service

import (
	"context"
	"time"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// EventService owns the event lifecycle. Every mutating call re-derives
// organizer ownership from the stored record before touching anything.
type EventService struct {
	events    EventStore
	locations LocationStore
}

// NewEventService wires the service to its stores.
func NewEventService(events EventStore, locations LocationStore) *EventService {
	return &EventService{events: events, locations: locations}
}

// CreateEventInput carries the fields for a new event.
type CreateEventInput struct {
	Title       string
	Description *string
	Date        time.Time
	LocationID  string
}

// Create schedules a new event. A location can host at most one event
// per exact start instant; overlap windows are deliberately not checked.
func (s *EventService) Create(ctx context.Context, caller Caller, in CreateEventInput) (*model.Event, error) {
	if gerr := requireOrganizer(caller); gerr != nil {
		return nil, gerr
	}
	location, err := s.locations.FindByID(ctx, in.LocationID)
	if err != nil {
		return nil, internalErr("failed to load location", err)
	}
	if location == nil {
		return nil, notFound("location not found")
	}

	occupied, err := s.events.FindByLocationAndDate(ctx, in.LocationID, in.Date)
	if err != nil {
		return nil, internalErr("failed to check location schedule", err)
	}
	if occupied != nil {
		return nil, conflict("this location already has an event scheduled for this date")
	}

	event, err := model.NewEvent(in.Title, in.Description, in.Date, caller.UserID, in.LocationID)
	if err != nil {
		return nil, invalid(err)
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, internalErr("failed to create event", err)
	}
	return event, nil
}

// UpdateEventInput is a partial update. DescriptionSet distinguishes
// "clear the description" from "leave it alone".
type UpdateEventInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Date           *time.Time
}

// Update renames, re-describes and/or reschedules an owned event,
// re-validating each changed field through the entity.
func (s *EventService) Update(ctx context.Context, caller Caller, eventID string, in UpdateEventInput) (*model.Event, error) {
	event, gerr := s.loadOwned(ctx, caller, eventID)
	if gerr != nil {
		return nil, gerr
	}

	if in.Title != nil {
		if err := event.Rename(*in.Title); err != nil {
			return nil, invalid(err)
		}
	}
	if in.DescriptionSet {
		event.UpdateDescription(in.Description)
	}
	if in.Date != nil {
		if err := event.Reschedule(*in.Date); err != nil {
			return nil, invalid(err)
		}
	}

	if err := s.events.Save(ctx, event); err != nil {
		return nil, internalErr("failed to save event", err)
	}
	return event, nil
}

// Delete removes an owned event and everything under it. The store
// cascades reservations → seats → tables → invitations → event in a
// single transaction.
func (s *EventService) Delete(ctx context.Context, caller Caller, eventID string) error {
	if _, gerr := s.loadOwned(ctx, caller, eventID); gerr != nil {
		return gerr
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		return internalErr("failed to delete event", err)
	}
	return nil
}

// GetByID returns an owned event.
func (s *EventService) GetByID(ctx context.Context, caller Caller, eventID string) (*model.Event, error) {
	return s.loadOwned(ctx, caller, eventID)
}

// ListByOrganizer returns the caller's events with location and child
// counts for the dashboard.
func (s *EventService) ListByOrganizer(ctx context.Context, caller Caller) ([]model.EventDetail, error) {
	if gerr := requireOrganizer(caller); gerr != nil {
		return nil, gerr
	}
	details, err := s.events.FindByOrganizer(ctx, caller.UserID)
	if err != nil {
		return nil, internalErr("failed to list events", err)
	}
	return details, nil
}

func (s *EventService) loadOwned(ctx context.Context, caller Caller, eventID string) (*model.Event, *Error) {
	if gerr := requireOrganizer(caller); gerr != nil {
		return nil, gerr
	}
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, internalErr("failed to load event", err)
	}
	if event == nil {
		return nil, notFound("event not found")
	}
	if gerr := requireEventOwner(event, caller); gerr != nil {
		return nil, gerr
	}
	return event, nil
}

// ---- layout projection ----

// LayoutSeat is one seat in the denormalized layout view.
type LayoutSeat struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	IsOccupied bool   `json:"isOccupied"`
	IsMine     bool   `json:"isMine"`
}

// LayoutTable is one table with occupancy already derived.
type LayoutTable struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	IsFull bool         `json:"isFull"`
	Seats  []LayoutSeat `json:"seats"`
}

// LayoutLocation names the venue for display.
type LayoutLocation struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// EventLayout is the read-only seating chart. Every seat carries its
// occupancy and, when a caller identity is supplied, whether the
// reservation is the caller's own.
type EventLayout struct {
	ID                  string         `json:"id"`
	Title               string         `json:"title"`
	Date                time.Time      `json:"date"`
	MyReservationSeatID *string        `json:"myReservationSeatId"`
	Location            LayoutLocation `json:"location"`
	Tables              []LayoutTable  `json:"tables"`
}

// GetLayout composes the event, its venue, tables, seats and live
// reservations into the chart the clients render. currentUserID may be
// empty, in which case isMine is false everywhere. Nothing is mutated.
func (s *EventService) GetLayout(ctx context.Context, eventID, currentUserID string) (*EventLayout, error) {
	data, err := s.events.GetLayout(ctx, eventID)
	if err != nil {
		return nil, internalErr("failed to load layout", err)
	}
	if data == nil {
		return nil, notFound("event not found")
	}

	layout := &EventLayout{
		ID:    data.Event.ID,
		Title: data.Event.Title,
		Date:  data.Event.Date,
		Location: LayoutLocation{
			Name:    data.LocationName,
			Address: data.LocationAddress,
		},
		Tables: make([]LayoutTable, 0, len(data.Tables)),
	}

	for _, td := range data.Tables {
		table := LayoutTable{
			ID:    td.Table.ID,
			Name:  td.Table.Name,
			X:     td.Table.CoordX,
			Y:     td.Table.CoordY,
			Seats: make([]LayoutSeat, 0, len(td.Seats)),
		}
		full := len(td.Seats) > 0
		for _, sd := range td.Seats {
			occupied := sd.ReservedBy != nil
			mine := occupied && currentUserID != "" && *sd.ReservedBy == currentUserID
			if mine {
				seatID := sd.Seat.ID
				layout.MyReservationSeatID = &seatID
			}
			if !occupied {
				full = false
			}
			table.Seats = append(table.Seats, LayoutSeat{
				ID:         sd.Seat.ID,
				Label:      sd.Seat.Label,
				IsOccupied: occupied,
				IsMine:     mine,
			})
		}
		table.IsFull = full
		layout.Tables = append(layout.Tables, table)
	}
	return layout, nil
}
