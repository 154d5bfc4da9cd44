package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrLocationNameTooShort = errors.New("location name must have at least 3 characters")
	ErrNonPositiveTables    = errors.New("location must allow at least 1 table")
	ErrNonPositiveSeats     = errors.New("each table must allow at least 1 seat")
)

// Location is a physical venue with capacity ceilings. MaxTables bounds
// how many tables an event held there may create and MaxSeatsPerTable
// fixes how many seats are auto-generated per table.
//
// Fields:
//  ID               – UUID primary key.
//  Name             – venue name, at least 3 characters.
//  Address          – free-form address line.
//  MaxTables        – table ceiling, always > 0.
//  MaxSeatsPerTable – seats generated per table, always > 0.
type Location struct {
	ID               string
	Name             string
	Address          string
	MaxTables        int
	MaxSeatsPerTable int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewLocation validates the capacity invariants and assigns a fresh UUID.
func NewLocation(name, address string, maxTables, maxSeatsPerTable int) (*Location, error) {
	l := &Location{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(name),
		Address:          strings.TrimSpace(address),
		MaxTables:        maxTables,
		MaxSeatsPerTable: maxSeatsPerTable,
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Location) validate() error {
	if len(l.Name) < 3 {
		return ErrLocationNameTooShort
	}
	if l.MaxTables <= 0 {
		return ErrNonPositiveTables
	}
	if l.MaxSeatsPerTable <= 0 {
		return ErrNonPositiveSeats
	}
	return nil
}

// LocationUpdate carries a partial update; nil fields are left untouched.
type LocationUpdate struct {
	Name             *string
	Address          *string
	MaxTables        *int
	MaxSeatsPerTable *int
}

// Apply re-validates only the fields present in the update, so a venue can
// never transition into a non-positive capacity.
func (l *Location) Apply(u LocationUpdate) error {
	next := *l
	if u.Name != nil {
		next.Name = strings.TrimSpace(*u.Name)
	}
	if u.Address != nil {
		next.Address = strings.TrimSpace(*u.Address)
	}
	if u.MaxTables != nil {
		next.MaxTables = *u.MaxTables
	}
	if u.MaxSeatsPerTable != nil {
		next.MaxSeatsPerTable = *u.MaxSeatsPerTable
	}
	if err := next.validate(); err != nil {
		return err
	}
	*l = next
	return nil
}
