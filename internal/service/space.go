package service

import (
	"context"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// SpaceService manages venue subdivisions.
type SpaceService struct {
	spaces    SpaceStore
	locations LocationStore
}

// NewSpaceService wires the service to its stores.
func NewSpaceService(spaces SpaceStore, locations LocationStore) *SpaceService {
	return &SpaceService{spaces: spaces, locations: locations}
}

// Create adds a space under an existing location.
func (s *SpaceService) Create(ctx context.Context, caller Caller, name, locationID string, totalArea *float64) (*model.Space, error) {
	if gerr := requireOrganizer(caller); gerr != nil {
		return nil, gerr
	}
	location, err := s.locations.FindByID(ctx, locationID)
	if err != nil {
		return nil, internalErr("failed to load location", err)
	}
	if location == nil {
		return nil, notFound("location not found")
	}
	space, err := model.NewSpace(name, locationID, totalArea)
	if err != nil {
		return nil, invalid(err)
	}
	if err := s.spaces.Create(ctx, space); err != nil {
		return nil, internalErr("failed to create space", err)
	}
	return space, nil
}

// GetByID returns a space.
func (s *SpaceService) GetByID(ctx context.Context, id string) (*model.Space, error) {
	space, err := s.spaces.FindByID(ctx, id)
	if err != nil {
		return nil, internalErr("failed to load space", err)
	}
	if space == nil {
		return nil, notFound("space not found")
	}
	return space, nil
}

// GetAll lists every space.
func (s *SpaceService) GetAll(ctx context.Context) ([]model.Space, error) {
	spaces, err := s.spaces.FindAll(ctx)
	if err != nil {
		return nil, internalErr("failed to list spaces", err)
	}
	return spaces, nil
}

// GetByLocation lists the spaces of one venue.
func (s *SpaceService) GetByLocation(ctx context.Context, locationID string) ([]model.Space, error) {
	spaces, err := s.spaces.FindByLocation(ctx, locationID)
	if err != nil {
		return nil, internalErr("failed to list spaces", err)
	}
	return spaces, nil
}

// Update applies a partial update to a space.
func (s *SpaceService) Update(ctx context.Context, caller Caller, id string, u model.SpaceUpdate) (*model.Space, error) {
	if gerr := requireOrganizer(caller); gerr != nil {
		return nil, gerr
	}
	space, err := s.spaces.FindByID(ctx, id)
	if err != nil {
		return nil, internalErr("failed to load space", err)
	}
	if space == nil {
		return nil, notFound("space not found")
	}
	if u.LocationID != nil {
		location, err := s.locations.FindByID(ctx, *u.LocationID)
		if err != nil {
			return nil, internalErr("failed to load location", err)
		}
		if location == nil {
			return nil, notFound("location not found")
		}
	}
	if err := space.Apply(u); err != nil {
		return nil, invalid(err)
	}
	if err := s.spaces.Update(ctx, space); err != nil {
		return nil, internalErr("failed to update space", err)
	}
	return space, nil
}
