package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// InvitationRepo provides access to the `invitations` table.
type InvitationRepo struct {
	db *sql.DB
}

// NewInvitationRepo returns an InvitationRepo bound to the given database.
func NewInvitationRepo(db *sql.DB) *InvitationRepo { return &InvitationRepo{db: db} }

const invitationColumns = `id, email, token, event_id, guest_id, status, created_at, updated_at`

// Create inserts an invitation.
func (r *InvitationRepo) Create(ctx context.Context, inv *model.Invitation) error {
	const q = `INSERT INTO invitations (id, email, token, event_id, status) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, inv.ID, inv.Email, inv.Token, inv.EventID, string(inv.Status))
	return err
}

// FindByToken fetches the invitation carrying the given opaque token;
// (nil, nil) when absent.
func (r *InvitationRepo) FindByToken(ctx context.Context, token string) (*model.Invitation, error) {
	const q = `SELECT ` + invitationColumns + ` FROM invitations WHERE token = ? LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, token))
}

// FindPendingByEmailAndEvent fetches a still-pending invitation for the
// email at the event; (nil, nil) when absent.
func (r *InvitationRepo) FindPendingByEmailAndEvent(ctx context.Context, email, eventID string) (*model.Invitation, error) {
	const q = `SELECT ` + invitationColumns + ` FROM invitations
	           WHERE email = ? AND event_id = ? AND status = 'PENDING' LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email, eventID))
}

// FindAcceptedByGuestAndEvent fetches an accepted invitation binding the
// guest to the event; (nil, nil) when absent.
func (r *InvitationRepo) FindAcceptedByGuestAndEvent(ctx context.Context, guestID, eventID string) (*model.Invitation, error) {
	const q = `SELECT ` + invitationColumns + ` FROM invitations
	           WHERE guest_id = ? AND event_id = ? AND status = 'ACCEPTED' LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, guestID, eventID))
}

// Accept flips a pending invitation to accepted and binds the guest in
// one conditional update. When the row was no longer pending the update
// matches nothing and ErrInvitationConsumed is returned, so of two
// concurrent acceptances exactly one wins.
func (r *InvitationRepo) Accept(ctx context.Context, invitationID, guestID string) error {
	const q = `UPDATE invitations
	           SET status = 'ACCEPTED', guest_id = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, q, guestID, invitationID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInvitationConsumed
	}
	return nil
}

func (r *InvitationRepo) scanOne(row *sql.Row) (*model.Invitation, error) {
	var inv model.Invitation
	var guest sql.NullString
	var status string
	err := row.Scan(&inv.ID, &inv.Email, &inv.Token, &inv.EventID, &guest, &status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if guest.Valid {
		v := guest.String
		inv.GuestID = &v
	}
	inv.Status = model.InvitationStatus(status)
	return &inv, nil
}
