package model

import "time"

// InvitationStatus is the lifecycle state of an invitation. The only
// transition is PENDING → ACCEPTED, which binds a guest and is terminal.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
)

// Invitation is an emailed, tokenized offer to join an event as a guest.
// The token is an opaque 128-bit random value, hex-encoded, unique across
// all invitations. GuestID stays nil until the invitation is accepted.
type Invitation struct {
	ID        string
	Email     string
	Token     string
	EventID   string
	GuestID   *string
	Status    InvitationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
