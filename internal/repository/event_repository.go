package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// EventRepo provides access to the `events` table and the joined reads
// built on top of it (dashboard listing, invitation preview, layout).
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// Create inserts an event.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events (id, title, description, date, organizer_id, location_id)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, e.ID, e.Title, e.Description, e.Date.UTC(), e.OrganizerID, e.LocationID)
	return err
}

// FindByID fetches an event; (nil, nil) when absent.
func (r *EventRepo) FindByID(ctx context.Context, id string) (*model.Event, error) {
	const q = `SELECT id, title, description, date, organizer_id, location_id, created_at, updated_at
	           FROM events WHERE id = ?`
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// FindByIDWithLocation fetches an event joined with its location's name
// and address; (nil, nil) when absent.
func (r *EventRepo) FindByIDWithLocation(ctx context.Context, id string) (*model.EventWithLocation, error) {
	const q = `SELECT e.id, e.title, e.description, e.date, e.organizer_id, e.location_id,
	                  e.created_at, e.updated_at, l.name, l.address
	           FROM events e
	           JOIN locations l ON l.id = e.location_id
	           WHERE e.id = ?`
	var out model.EventWithLocation
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&out.Event.ID, &out.Event.Title, &desc, &out.Event.Date,
		&out.Event.OrganizerID, &out.Event.LocationID,
		&out.Event.CreatedAt, &out.Event.UpdatedAt,
		&out.LocationName, &out.LocationAddress,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if desc.Valid {
		v := desc.String
		out.Event.Description = &v
	}
	return &out, nil
}

// FindByOrganizer lists an organizer's events with location details and
// child counts, newest first.
func (r *EventRepo) FindByOrganizer(ctx context.Context, organizerID string) ([]model.EventDetail, error) {
	const q = `SELECT e.id, e.title, e.description, e.date, e.organizer_id, e.location_id,
	                  e.created_at, e.updated_at,
	                  l.name, l.address, l.max_tables, l.max_seats_per_table,
	                  (SELECT COUNT(*) FROM event_tables t WHERE t.event_id = e.id),
	                  (SELECT COUNT(*) FROM invitations i WHERE i.event_id = e.id),
	                  (SELECT COUNT(*) FROM reservations res WHERE res.event_id = e.id)
	           FROM events e
	           JOIN locations l ON l.id = e.location_id
	           WHERE e.organizer_id = ?
	           ORDER BY e.date DESC`
	rows, err := r.db.QueryContext(ctx, q, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.EventDetail, 0)
	for rows.Next() {
		var d model.EventDetail
		var desc sql.NullString
		if err := rows.Scan(
			&d.Event.ID, &d.Event.Title, &desc, &d.Event.Date,
			&d.Event.OrganizerID, &d.Event.LocationID,
			&d.Event.CreatedAt, &d.Event.UpdatedAt,
			&d.LocationName, &d.LocationAddress, &d.MaxTables, &d.MaxSeatsPerTable,
			&d.TablesCount, &d.InvitationsCount, &d.ReservationsCount,
		); err != nil {
			return nil, err
		}
		if desc.Valid {
			v := desc.String
			d.Event.Description = &v
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// FindByLocationAndDate matches an event at the exact instant; (nil, nil)
// when the slot is free.
func (r *EventRepo) FindByLocationAndDate(ctx context.Context, locationID string, date time.Time) (*model.Event, error) {
	const q = `SELECT id, title, description, date, organizer_id, location_id, created_at, updated_at
	           FROM events WHERE location_id = ? AND date = ? LIMIT 1`
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, locationID, date.UTC()).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// Save persists an event's mutable fields.
func (r *EventRepo) Save(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events
	           SET title = ?, description = ?, date = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, e.Title, e.Description, e.Date.UTC(), e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an event and everything hanging off it in one
// transaction, children first so foreign keys never block the cascade.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	steps := []string{
		`DELETE FROM reservations WHERE event_id = ?`,
		`DELETE s FROM event_seats s JOIN event_tables t ON t.id = s.table_id WHERE t.event_id = ?`,
		`DELETE FROM event_tables WHERE event_id = ?`,
		`DELETE FROM invitations WHERE event_id = ?`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// GetLayout reads the full seating chart for an event: every table with
// its seats and, per seat, the reserving user when one exists. Returns
// (nil, nil) when the event does not exist.
func (r *EventRepo) GetLayout(ctx context.Context, eventID string) (*model.LayoutData, error) {
	header, err := r.FindByIDWithLocation(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, nil
	}

	const q = `SELECT t.id, t.name, t.coord_x, t.coord_y, t.created_at,
	                  s.id, s.label, res.user_id
	           FROM event_tables t
	           LEFT JOIN event_seats s ON s.table_id = t.id
	           LEFT JOIN reservations res ON res.seat_id = s.id AND res.event_id = t.event_id
	           WHERE t.event_id = ?
	           ORDER BY t.created_at, t.id, s.label, s.id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &model.LayoutData{
		Event:           header.Event,
		LocationName:    header.LocationName,
		LocationAddress: header.LocationAddress,
		Tables:          make([]model.LayoutTableData, 0),
	}
	var cur *model.LayoutTableData
	for rows.Next() {
		var t model.EventTable
		var seatID, seatLabel, reservedBy sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.CoordX, &t.CoordY, &t.CreatedAt,
			&seatID, &seatLabel, &reservedBy); err != nil {
			return nil, err
		}
		t.EventID = eventID

		if cur == nil || cur.Table.ID != t.ID {
			out.Tables = append(out.Tables, model.LayoutTableData{
				Table: t,
				Seats: make([]model.LayoutSeatData, 0),
			})
			cur = &out.Tables[len(out.Tables)-1]
		}
		if !seatID.Valid {
			continue
		}
		seat := model.LayoutSeatData{
			Seat: model.EventSeat{ID: seatID.String, TableID: t.ID, Label: seatLabel.String},
		}
		if reservedBy.Valid {
			v := reservedBy.String
			seat.ReservedBy = &v
		}
		cur.Seats = append(cur.Seats, seat)
	}
	return out, rows.Err()
}

func scanEvent(scan func(...any) error) (*model.Event, error) {
	var e model.Event
	var desc sql.NullString
	if err := scan(&e.ID, &e.Title, &desc, &e.Date, &e.OrganizerID, &e.LocationID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		v := desc.String
		e.Description = &v
	}
	return &e, nil
}
