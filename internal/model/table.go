package model

import "time"

// EventTable is a table placed inside an event's layout. CoordX/CoordY
// are pure display coordinates for the seating chart. Tables are only
// ever created in batches through the capacity engine, never one-off.
type EventTable struct {
	ID        string
	EventID   string
	Name      string
	CoordX    float64
	CoordY    float64
	CreatedAt time.Time
}

// EventSeat belongs to exactly one table and is auto-generated when the
// table is created. Seats are never created independently.
type EventSeat struct {
	ID      string
	TableID string
	Label   string
}
