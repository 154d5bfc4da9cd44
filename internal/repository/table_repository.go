package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// TableRepo provides access to `event_tables` and `event_seats`.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// CountByEvent returns the number of tables an event currently has.
func (r *TableRepo) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_tables WHERE event_id = ?`, eventID).Scan(&n)
	return n, err
}

// CreateManyWithSeats inserts a batch of tables and their seats in one
// transaction. The event row is locked first and the table count
// re-checked under that lock, so two concurrent batches cannot jointly
// push the event past maxTables: the loser sees the winner's rows and
// gets ErrCapacityExceeded with nothing inserted. Returns the event's
// resulting total table count.
func (r *TableRepo) CreateManyWithSeats(ctx context.Context, eventID string, tables []model.TableWithSeats, maxTables int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var lockedID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM events WHERE id = ? FOR UPDATE`, eventID).Scan(&lockedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, err
	}

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_tables WHERE event_id = ?`, eventID).Scan(&existing)
	if err != nil {
		return 0, err
	}
	if existing+len(tables) > maxTables {
		return 0, ErrCapacityExceeded
	}

	if err := insertTables(ctx, tx, eventID, tables); err != nil {
		return 0, err
	}
	if err := insertSeats(ctx, tx, tables); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return existing + len(tables), nil
}

func insertTables(ctx context.Context, tx *sql.Tx, eventID string, tables []model.TableWithSeats) error {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO event_tables (id, event_id, name, coord_x, coord_y) VALUES `)
	args := make([]any, 0, len(tables)*5)
	for i, t := range tables {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, t.Table.ID, eventID, t.Table.Name, t.Table.CoordX, t.Table.CoordY)
	}
	_, err := tx.ExecContext(ctx, sb.String(), args...)
	return err
}

func insertSeats(ctx context.Context, tx *sql.Tx, tables []model.TableWithSeats) error {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO event_seats (id, table_id, label) VALUES `)
	args := make([]any, 0)
	first := true
	for _, t := range tables {
		for _, s := range t.Seats {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString("(?, ?, ?)")
			args = append(args, s.ID, s.TableID, s.Label)
		}
	}
	if first {
		return nil
	}
	_, err := tx.ExecContext(ctx, sb.String(), args...)
	return err
}
