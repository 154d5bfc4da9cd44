package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
)

// TableService is the capacity and layout engine. Tables are created in
// batches; each table gets its seats auto-generated from the location's
// maxSeatsPerTable, and the whole batch lands atomically or not at all.
type TableService struct {
	events    EventStore
	locations LocationStore
	tables    TableStore
}

// NewTableService wires the service to its stores.
func NewTableService(events EventStore, locations LocationStore, tables TableStore) *TableService {
	return &TableService{events: events, locations: locations, tables: tables}
}

// TableInput is one requested table with its chart coordinates.
type TableInput struct {
	Name   string  `json:"name"`
	CoordX float64 `json:"coord_x"`
	CoordY float64 `json:"coord_y"`
}

// CreateTablesResult reports what the batch produced, for display.
type CreateTablesResult struct {
	Count         int `json:"count"`
	SeatsPerTable int `json:"seatsPerTable"`
	TotalTables   int `json:"totalTables"`
	MaxTables     int `json:"maxTables"`
}

// CreateTables validates ownership and capacity, synthesizes the seats
// for every requested table, and persists the batch. The count check
// here is advisory; the store repeats it inside the insert transaction
// under a row lock on the event, so two concurrent batches that each
// pass the pre-check cannot jointly exceed the location's ceiling.
func (s *TableService) CreateTables(ctx context.Context, caller Caller, eventID string, tables []TableInput) (*CreateTablesResult, error) {
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
	if len(tables) == 0 {
		return nil, validation("at least one table is required")
	}

	location, err := s.locations.FindByID(ctx, event.LocationID)
	if err != nil {
		return nil, internalErr("failed to load location", err)
	}
	if location == nil {
		return nil, notFound("location settings not found")
	}

	existing, err := s.tables.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, internalErr("failed to count tables", err)
	}
	if existing+len(tables) > location.MaxTables {
		return nil, conflict(fmt.Sprintf(
			"capacity exceeded: the location allows at most %d tables", location.MaxTables))
	}

	batch := make([]model.TableWithSeats, 0, len(tables))
	for _, in := range tables {
		t := model.EventTable{
			ID:      newID(),
			EventID: eventID,
			Name:    in.Name,
			CoordX:  in.CoordX,
			CoordY:  in.CoordY,
		}
		seats := make([]model.EventSeat, 0, location.MaxSeatsPerTable)
		for n := 1; n <= location.MaxSeatsPerTable; n++ {
			seats = append(seats, model.EventSeat{
				ID:      newID(),
				TableID: t.ID,
				Label:   fmt.Sprintf("Assento %d", n),
			})
		}
		batch = append(batch, model.TableWithSeats{Table: t, Seats: seats})
	}

	total, err := s.tables.CreateManyWithSeats(ctx, eventID, batch, location.MaxTables)
	if err != nil {
		if errors.Is(err, repository.ErrCapacityExceeded) {
			return nil, conflict(fmt.Sprintf(
				"capacity exceeded: the location allows at most %d tables", location.MaxTables))
		}
		return nil, internalErr("failed to create tables", err)
	}

	return &CreateTablesResult{
		Count:         len(tables),
		SeatsPerTable: location.MaxSeatsPerTable,
		TotalTables:   total,
		MaxTables:     location.MaxTables,
	}, nil
}
