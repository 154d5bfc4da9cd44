package model

import (
	"time"

	"github.com/google/uuid"
)

// Space is a named subdivision of a location (a hall, a garden, a
// mezzanine). Spaces carry no capacity rules of their own; they exist
// for organizers to annotate venues.
type Space struct {
	ID         string
	Name       string
	LocationID string
	TotalArea  *float64 // square meters, optional
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSpace builds a space with a fresh UUID.
func NewSpace(name, locationID string, totalArea *float64) (*Space, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Space{
		ID:         uuid.NewString(),
		Name:       name,
		LocationID: locationID,
		TotalArea:  totalArea,
	}, nil
}

// SpaceUpdate carries a partial update; nil fields are left untouched.
// TotalAreaSet distinguishes "clear the area" from "leave it alone".
type SpaceUpdate struct {
	Name         *string
	LocationID   *string
	TotalArea    *float64
	TotalAreaSet bool
}

// Apply folds the update into the space.
func (s *Space) Apply(u SpaceUpdate) error {
	if u.Name != nil {
		if *u.Name == "" {
			return ErrEmptyName
		}
		s.Name = *u.Name
	}
	if u.LocationID != nil {
		s.LocationID = *u.LocationID
	}
	if u.TotalAreaSet {
		s.TotalArea = u.TotalArea
	}
	return nil
}
