package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// SpaceRepo provides access to the `spaces` table.
type SpaceRepo struct {
	db *sql.DB
}

// NewSpaceRepo returns a SpaceRepo bound to the given database.
func NewSpaceRepo(db *sql.DB) *SpaceRepo { return &SpaceRepo{db: db} }

const spaceColumns = `id, name, location_id, total_area, created_at, updated_at`

// Create inserts a space.
func (r *SpaceRepo) Create(ctx context.Context, s *model.Space) error {
	const q = `INSERT INTO spaces (id, name, location_id, total_area) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, s.ID, s.Name, s.LocationID, s.TotalArea)
	return err
}

// FindByID fetches a space; (nil, nil) when absent.
func (r *SpaceRepo) FindByID(ctx context.Context, id string) (*model.Space, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE id = ?`, id)
	s, err := scanSpace(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// FindAll lists every space.
func (r *SpaceRepo) FindAll(ctx context.Context) ([]model.Space, error) {
	return r.list(ctx, `SELECT `+spaceColumns+` FROM spaces ORDER BY name`)
}

// FindByLocation lists the spaces of one location.
func (r *SpaceRepo) FindByLocation(ctx context.Context, locationID string) ([]model.Space, error) {
	return r.list(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE location_id = ? ORDER BY name`, locationID)
}

// Update persists the space's mutable fields.
func (r *SpaceRepo) Update(ctx context.Context, s *model.Space) error {
	const q = `UPDATE spaces
	           SET name = ?, location_id = ?, total_area = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.LocationID, s.TotalArea, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SpaceRepo) list(ctx context.Context, q string, args ...any) ([]model.Space, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Space, 0)
	for rows.Next() {
		s, err := scanSpace(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func scanSpace(scan func(...any) error) (*model.Space, error) {
	var s model.Space
	var area sql.NullFloat64
	if err := scan(&s.ID, &s.Name, &s.LocationID, &area, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if area.Valid {
		v := area.Float64
		s.TotalArea = &v
	}
	return &s, nil
}
