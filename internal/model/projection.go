package model

// Read projections composed by the storage layer. They carry joined or
// denormalized data that no single entity owns; the services derive the
// client-facing views from them.

// EventDetail is an event joined with its location and child counts, as
// listed on the organizer dashboard.
type EventDetail struct {
	Event             Event
	LocationName      string
	LocationAddress   string
	MaxTables         int
	MaxSeatsPerTable  int
	TablesCount       int
	InvitationsCount  int
	ReservationsCount int
}

// EventWithLocation is the slim join used by the invitation preview.
type EventWithLocation struct {
	Event           Event
	LocationName    string
	LocationAddress string
}

// LayoutData is the raw denormalized layout as read from storage.
// Occupancy flags are derived later, per caller.
type LayoutData struct {
	Event           Event
	LocationName    string
	LocationAddress string
	Tables          []LayoutTableData
}

// LayoutTableData pairs a table with its seats.
type LayoutTableData struct {
	Table EventTable
	Seats []LayoutSeatData
}

// LayoutSeatData carries a seat and, when reserved, the reserving user.
type LayoutSeatData struct {
	Seat       EventSeat
	ReservedBy *string
}

// TableWithSeats is one table plus its auto-generated seats, persisted
// as a unit.
type TableWithSeats struct {
	Table EventTable
	Seats []EventSeat
}
