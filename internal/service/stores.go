package service

import (
	"context"
	"time"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// Store interfaces consumed by the services. The repository package
// implements them over MySQL; tests substitute in-memory fakes. Lookup
// methods return (nil, nil) when no row matches; absence is a business
// condition here, not an error. Sentinel errors for storage-level
// outcomes (duplicate keys, capacity re-check failures) are defined in
// the repository package.

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	// Delete removes an account; used only as the compensating action
	// when guest registration fails after the user row was written.
	Delete(ctx context.Context, id string) error
}

// TokenStore persists hashed refresh tokens.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	// ValidateRefresh returns the owning user ID for an unexpired,
	// unrevoked token hash.
	ValidateRefresh(ctx context.Context, tokenHash string) (string, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
}

// LocationStore persists venues.
type LocationStore interface {
	Create(ctx context.Context, l *model.Location) error
	FindByID(ctx context.Context, id string) (*model.Location, error)
	FindAll(ctx context.Context) ([]model.Location, error)
	Update(ctx context.Context, l *model.Location) error
}

// SpaceStore persists venue subdivisions.
type SpaceStore interface {
	Create(ctx context.Context, s *model.Space) error
	FindByID(ctx context.Context, id string) (*model.Space, error)
	FindAll(ctx context.Context) ([]model.Space, error)
	FindByLocation(ctx context.Context, locationID string) ([]model.Space, error)
	Update(ctx context.Context, s *model.Space) error
}

// EventStore persists events and serves the layout projection.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	FindByIDWithLocation(ctx context.Context, id string) (*model.EventWithLocation, error)
	FindByOrganizer(ctx context.Context, organizerID string) ([]model.EventDetail, error)
	// FindByLocationAndDate matches the exact instant, not a window;
	// event start times are treated as discrete.
	FindByLocationAndDate(ctx context.Context, locationID string, date time.Time) (*model.Event, error)
	Save(ctx context.Context, e *model.Event) error
	// Delete cascades reservations → seats → tables → invitations →
	// event inside a single transaction.
	Delete(ctx context.Context, id string) error
	GetLayout(ctx context.Context, eventID string) (*model.LayoutData, error)
}

// TableStore persists tables and their seats.
type TableStore interface {
	CountByEvent(ctx context.Context, eventID string) (int, error)
	// CreateManyWithSeats inserts all tables and seats in one
	// transaction, re-checking the table ceiling under a row lock so
	// concurrent batches cannot jointly exceed maxTables. It returns
	// the resulting total table count, or repository.ErrCapacityExceeded
	// without inserting anything.
	CreateManyWithSeats(ctx context.Context, eventID string, tables []model.TableWithSeats, maxTables int) (int, error)
}

// InvitationStore persists invitations.
type InvitationStore interface {
	Create(ctx context.Context, inv *model.Invitation) error
	FindByToken(ctx context.Context, token string) (*model.Invitation, error)
	FindPendingByEmailAndEvent(ctx context.Context, email, eventID string) (*model.Invitation, error)
	FindAcceptedByGuestAndEvent(ctx context.Context, guestID, eventID string) (*model.Invitation, error)
	// Accept flips PENDING → ACCEPTED and binds the guest in one
	// conditional update; it returns repository.ErrInvitationConsumed
	// when the invitation was no longer pending.
	Accept(ctx context.Context, invitationID, guestID string) error
}

// ReservationStore persists reservations.
type ReservationStore interface {
	// Create inserts a reservation; unique keys on (event, seat) and
	// (event, user) make it return repository.ErrDuplicateKey when a
	// concurrent writer won the race.
	Create(ctx context.Context, r *model.Reservation) error
	FindByEventAndSeat(ctx context.Context, eventID, seatID string) (*model.Reservation, error)
	FindByEventAndUser(ctx context.Context, eventID, userID string) (*model.Reservation, error)
	DeleteByEventAndUser(ctx context.Context, eventID, userID string) error
	SeatBelongsToEvent(ctx context.Context, eventID, seatID string) (bool, error)
	// SwitchSeat deletes the caller's current reservation and inserts
	// one for the new seat inside a single transaction; a mid-flight
	// failure leaves the old reservation intact. It returns
	// repository.ErrNotFound when the user holds no reservation.
	SwitchSeat(ctx context.Context, eventID, userID, newSeatID string) (*model.Reservation, error)
}
