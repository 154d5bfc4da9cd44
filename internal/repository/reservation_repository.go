package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// ReservationRepo provides access to the `reservations` table. Unique
// keys on (event_id, seat_id) and (event_id, user_id) are the final
// arbiter of seat races; every insert path maps 1062 to ErrDuplicateKey.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts a reservation; ErrDuplicateKey when the seat or the
// user's slot was taken by a concurrent writer.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (id, event_id, user_id, seat_id) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, res.ID, res.EventID, res.UserID, res.SeatID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// FindByEventAndSeat fetches the reservation holding a seat; (nil, nil)
// when the seat is free.
func (r *ReservationRepo) FindByEventAndSeat(ctx context.Context, eventID, seatID string) (*model.Reservation, error) {
	const q = `SELECT id, event_id, user_id, seat_id, created_at
	           FROM reservations WHERE event_id = ? AND seat_id = ? LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, eventID, seatID))
}

// FindByEventAndUser fetches a user's reservation at an event; (nil, nil)
// when they hold none.
func (r *ReservationRepo) FindByEventAndUser(ctx context.Context, eventID, userID string) (*model.Reservation, error) {
	const q = `SELECT id, event_id, user_id, seat_id, created_at
	           FROM reservations WHERE event_id = ? AND user_id = ? LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, eventID, userID))
}

// DeleteByEventAndUser removes a user's reservation at an event.
func (r *ReservationRepo) DeleteByEventAndUser(ctx context.Context, eventID, userID string) error {
	const q = `DELETE FROM reservations WHERE event_id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q, eventID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SeatBelongsToEvent reports whether the seat exists inside the event's
// layout.
func (r *ReservationRepo) SeatBelongsToEvent(ctx context.Context, eventID, seatID string) (bool, error) {
	const q = `SELECT 1 FROM event_seats s
	           JOIN event_tables t ON t.id = s.table_id
	           WHERE s.id = ? AND t.event_id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, seatID, eventID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SwitchSeat replaces the user's reservation with one for the new seat
// inside a single transaction. A failure at any point rolls back and
// leaves the original reservation in place. Returns ErrNotFound when the
// user holds no reservation, ErrDuplicateKey when the new seat was taken
// mid-flight.
func (r *ReservationRepo) SwitchSeat(ctx context.Context, eventID, userID, newSeatID string) (*model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	del, err := tx.ExecContext(ctx,
		`DELETE FROM reservations WHERE event_id = ? AND user_id = ?`, eventID, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := del.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	next := &model.Reservation{
		ID:      uuid.NewString(),
		EventID: eventID,
		UserID:  userID,
		SeatID:  newSeatID,
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO reservations (id, event_id, user_id, seat_id) VALUES (?, ?, ?, ?)`,
		next.ID, next.EventID, next.UserID, next.SeatID)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *ReservationRepo) scanOne(row *sql.Row) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.EventID, &res.UserID, &res.SeatID, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}
