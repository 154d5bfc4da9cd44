package service

import "github.com/iliyamo/event-seat-reservation/internal/model"

// Caller is the resolved identity of the requesting user. The HTTP
// boundary verifies the JWT and hands services a Caller; services never
// see tokens. Every operation receives the caller explicitly so that
// ownership and role checks are uniform and testable.
type Caller struct {
	UserID string
	Role   model.Role
}

// requireOrganizer guards operations reserved for event organizers.
// Admins pass as well.
func requireOrganizer(c Caller) *Error {
	if c.Role != model.RoleOrganizer && c.Role != model.RoleAdmin {
		return forbidden("only organizers can perform this operation")
	}
	return nil
}

// requireEventOwner re-derives ownership from the stored event on every
// mutating call; it is never cached or assumed from a prior call.
func requireEventOwner(e *model.Event, c Caller) *Error {
	if !e.IsOwnedBy(c.UserID) {
		return forbidden("event does not belong to this organizer")
	}
	return nil
}
