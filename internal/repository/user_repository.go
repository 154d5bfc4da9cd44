package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// UserRepo provides access to the `users` table.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user. The unique key on email turns a duplicate
// registration into ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (id, name, email, password_hash, role) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role))
	if err != nil {
		if isDuplicateKey(err) {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

// FindByEmail fetches a user by normalized email; (nil, nil) when absent.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT id, name, email, password_hash, role, created_at, updated_at
	           FROM users WHERE email = ? LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

// FindByID fetches a user by id; (nil, nil) when absent.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT id, name, email, password_hash, role, created_at, updated_at
	           FROM users WHERE id = ? LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// Delete removes a user row. Used as the compensating action when guest
// registration fails after the account was written.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}

func (r *UserRepo) scanOne(row *sql.Row) (*model.User, error) {
	var u model.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Role = model.Role(role)
	return &u, nil
}
