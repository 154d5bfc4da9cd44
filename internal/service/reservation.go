package service

import (
	"context"
	"errors"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
)

// ReservationService enforces the reservation consistency rules: one
// seat per guest per event, one guest per seat, and race-safe claim,
// switch and cancel. The accepted-invitation check is the authorization
// gate for every guest action; without it no reservation operation
// proceeds, regardless of role.
type ReservationService struct {
	invitations  InvitationStore
	reservations ReservationStore
}

// NewReservationService wires the service to its stores.
func NewReservationService(invitations InvitationStore, reservations ReservationStore) *ReservationService {
	return &ReservationService{invitations: invitations, reservations: reservations}
}

// requireAcceptedInvitation is the guest authorization gate shared by
// claim, switch and cancel.
func (s *ReservationService) requireAcceptedInvitation(ctx context.Context, eventID, userID string) *Error {
	inv, err := s.invitations.FindAcceptedByGuestAndEvent(ctx, userID, eventID)
	if err != nil {
		return internalErr("failed to check invitation", err)
	}
	if inv == nil {
		return forbidden("user has no accepted invitation for this event")
	}
	return nil
}

// Create claims a seat for the caller. The precondition checks run in
// order and each failure is hard: accepted invitation, seat belongs to
// the event, seat free, caller unreserved. The final insert is still
// guarded by unique keys at the storage layer; if a concurrent writer
// wins between check and insert, the duplicate-key failure surfaces as
// a single Conflict so the client re-fetches the layout and picks
// another seat rather than retrying blindly.
func (s *ReservationService) Create(ctx context.Context, eventID, userID, seatID string) (*model.Reservation, error) {
	if gerr := s.requireAcceptedInvitation(ctx, eventID, userID); gerr != nil {
		return nil, gerr
	}

	belongs, err := s.reservations.SeatBelongsToEvent(ctx, eventID, seatID)
	if err != nil {
		return nil, internalErr("failed to verify seat", err)
	}
	if !belongs {
		return nil, validation("seat does not belong to this event")
	}

	taken, err := s.reservations.FindByEventAndSeat(ctx, eventID, seatID)
	if err != nil {
		return nil, internalErr("failed to check seat occupancy", err)
	}
	if taken != nil {
		return nil, conflict("seat is already occupied")
	}

	existing, err := s.reservations.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, internalErr("failed to check existing reservation", err)
	}
	if existing != nil {
		return nil, conflict("user already has a reservation in this event")
	}

	r := &model.Reservation{
		ID:      newID(),
		EventID: eventID,
		UserID:  userID,
		SeatID:  seatID,
	}
	if err := s.reservations.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, conflict("seat may have just been taken")
		}
		return nil, internalErr("failed to create reservation", err)
	}
	return r, nil
}

// SwitchSeat moves the caller's reservation to another seat of the same
// event. The delete+insert pair runs in one store transaction, so a
// failure mid-way leaves the old reservation intact and the guest never
// ends up with zero or two seats.
func (s *ReservationService) SwitchSeat(ctx context.Context, eventID, userID, newSeatID string) (*model.Reservation, error) {
	if gerr := s.requireAcceptedInvitation(ctx, eventID, userID); gerr != nil {
		return nil, gerr
	}

	belongs, err := s.reservations.SeatBelongsToEvent(ctx, eventID, newSeatID)
	if err != nil {
		return nil, internalErr("failed to verify seat", err)
	}
	if !belongs {
		return nil, validation("seat does not belong to this event")
	}

	taken, err := s.reservations.FindByEventAndSeat(ctx, eventID, newSeatID)
	if err != nil {
		return nil, internalErr("failed to check seat occupancy", err)
	}
	if taken != nil && taken.UserID != userID {
		return nil, conflict("seat is already occupied")
	}

	r, err := s.reservations.SwitchSeat(ctx, eventID, userID, newSeatID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("no reservation to switch in this event")
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, conflict("seat may have just been taken")
		}
		return nil, internalErr("failed to switch seat", err)
	}
	return r, nil
}

// Cancel deletes the caller's reservation for the event. The invitation
// gate applies here too: a revoked or never-accepted invitee cannot
// cancel, even if a reservation row somehow existed.
func (s *ReservationService) Cancel(ctx context.Context, eventID, userID string) error {
	if gerr := s.requireAcceptedInvitation(ctx, eventID, userID); gerr != nil {
		return gerr
	}

	existing, err := s.reservations.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return internalErr("failed to load reservation", err)
	}
	if existing == nil {
		return notFound("no reservation found to cancel")
	}

	if err := s.reservations.DeleteByEventAndUser(ctx, eventID, userID); err != nil {
		return internalErr("failed to cancel reservation", err)
	}
	return nil
}
