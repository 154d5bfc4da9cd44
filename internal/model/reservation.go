package model

import "time"

// Reservation binds one guest to one seat within one event. Both the
// (event, seat) and (event, user) pairings are unique among live
// reservations; the database enforces them with unique keys so that of
// two concurrent writers exactly one can win.
type Reservation struct {
	ID        string
	EventID   string
	UserID    string
	SeatID    string
	CreatedAt time.Time
}
