// Package queue defines the message payloads exchanged over the broker
// along with their publisher and background consumers.
package queue

// Queue names. Routing uses the default exchange, so the routing key is
// the queue name itself.
const (
	ReservationConfirmedQueue = "reservation.confirmed"
	InvitationCreatedQueue    = "invitation.created"
)

// ReservationConfirmedEvent is published after a seat is reserved or
// switched. It carries enough context for downstream consumers to log
// or notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID string `json:"reservation_id"`
	EventID       string `json:"event_id"`
	EventTitle    string `json:"event_title,omitempty"`
	UserID        string `json:"user_id"`
	SeatID        string `json:"seat_id"`
	SeatLabel     string `json:"seat_label,omitempty"`
	LocationName  string `json:"location_name,omitempty"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// InvitationCreatedEvent is published for every invitation in a created
// batch, so a mail worker can deliver the tokenized link.
type InvitationCreatedEvent struct {
	InvitationID string `json:"invitation_id"`
	EventID      string `json:"event_id"`
	EventTitle   string `json:"event_title"`
	Email        string `json:"email"`
	Token        string `json:"token"`
	CreatedAt    string `json:"created_at"`
}
