package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// LocationRepo provides access to the `locations` table.
type LocationRepo struct {
	db *sql.DB
}

// NewLocationRepo returns a LocationRepo bound to the given database.
func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{db: db} }

const locationColumns = `id, name, address, max_tables, max_seats_per_table, created_at, updated_at`

// Create inserts a location.
func (r *LocationRepo) Create(ctx context.Context, l *model.Location) error {
	const q = `INSERT INTO locations (id, name, address, max_tables, max_seats_per_table)
	           VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, l.ID, l.Name, l.Address, l.MaxTables, l.MaxSeatsPerTable)
	return err
}

// FindByID fetches a location; (nil, nil) when absent.
func (r *LocationRepo) FindByID(ctx context.Context, id string) (*model.Location, error) {
	var l model.Location
	err := r.db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = ?`, id).
		Scan(&l.ID, &l.Name, &l.Address, &l.MaxTables, &l.MaxSeatsPerTable, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// FindAll lists every location ordered by name.
func (r *LocationRepo) FindAll(ctx context.Context) ([]model.Location, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Location, 0)
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.MaxTables, &l.MaxSeatsPerTable, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update persists the location's mutable fields.
func (r *LocationRepo) Update(ctx context.Context, l *model.Location) error {
	const q = `UPDATE locations
	           SET name = ?, address = ?, max_tables = ?, max_seats_per_table = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, l.Name, l.Address, l.MaxTables, l.MaxSeatsPerTable, l.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
