package service

import (
	"context"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// LocationService manages venues and their capacity ceilings.
type LocationService struct {
	locations LocationStore
}

// NewLocationService wires the service to its store.
func NewLocationService(locations LocationStore) *LocationService {
	return &LocationService{locations: locations}
}

// Create registers a new venue.
func (s *LocationService) Create(ctx context.Context, caller Caller, name, address string, maxTables, maxSeatsPerTable int) (*model.Location, error) {
	if gerr := requireOrganizer(caller); gerr != nil {
		return nil, gerr
	}
	location, err := model.NewLocation(name, address, maxTables, maxSeatsPerTable)
	if err != nil {
		return nil, invalid(err)
	}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, internalErr("failed to create location", err)
	}
	return location, nil
}

// GetByID returns a venue.
func (s *LocationService) GetByID(ctx context.Context, id string) (*model.Location, error) {
	location, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return nil, internalErr("failed to load location", err)
	}
	if location == nil {
		return nil, notFound("location not found")
	}
	return location, nil
}

// GetAll lists every venue.
func (s *LocationService) GetAll(ctx context.Context) ([]model.Location, error) {
	locations, err := s.locations.FindAll(ctx)
	if err != nil {
		return nil, internalErr("failed to list locations", err)
	}
	return locations, nil
}

// Update applies a partial update, re-validating only the changed
// fields; capacity stays positive at all times.
func (s *LocationService) Update(ctx context.Context, caller Caller, id string, u model.LocationUpdate) (*model.Location, error) {
	if gerr := requireOrganizer(caller); gerr != nil {
		return nil, gerr
	}
	location, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return nil, internalErr("failed to load location", err)
	}
	if location == nil {
		return nil, notFound("location not found")
	}
	if err := location.Apply(u); err != nil {
		return nil, invalid(err)
	}
	if err := s.locations.Update(ctx, location); err != nil {
		return nil, internalErr("failed to update location", err)
	}
	return location, nil
}
