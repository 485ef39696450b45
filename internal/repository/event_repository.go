package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// EventRepo manages persistence for events.  All timestamps are stored
// in UTC; the DSN's parseTime option maps DATETIME columns onto
// time.Time directly.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

const eventColumns = `id, title, description, category, venue, date, time, seat_capacity, booked_seats, price`

func scanEvent(row interface{ Scan(...any) error }, e *model.Event) error {
	return row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.Venue,
		&e.Date, &e.Time, &e.SeatCapacity, &e.BookedSeats, &e.Price,
	)
}

// Create inserts a new event.  A UUID is assigned when the caller has
// not set one; booked_seats starts at whatever the model carries,
// normally zero.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	const q = `INSERT INTO events (id, title, description, category, venue, date, time, seat_capacity, booked_seats, price)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.Title, e.Description, e.Category, e.Venue,
		e.Date.UTC(), e.Time, e.SeatCapacity, e.BookedSeats, e.Price,
	)
	return err
}

// GetByID retrieves an event by its id.  It returns ErrEventNotFound
// when no matching row exists.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	var e model.Event
	if err := scanEvent(r.db.QueryRowContext(ctx, q, id), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns events matching the filter, ordered by date.  The date
// filter is deliberately loose: it accepts anything from one day
// before the start of the requested date to one day after its end,
// matching the original API's behavior.
func (r *EventRepo) List(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events`
	var conds []string
	var args []any
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Date != nil {
		dayStart := f.Date.UTC().Truncate(24 * time.Hour)
		conds = append(conds, "date >= ? AND date <= ?")
		args = append(args, dayStart.Add(-24*time.Hour), dayStart.Add(48*time.Hour-time.Millisecond))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY date"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update applies the non-nil fields of u to the event and returns the
// updated row.  An update carrying no fields degenerates to a lookup.
// ErrEventNotFound is returned when the event does not exist.
func (r *EventRepo) Update(ctx context.Context, id string, u model.EventUpdate) (*model.Event, error) {
	var sets []string
	var args []any
	if u.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *u.Category)
	}
	if u.Venue != nil {
		sets = append(sets, "venue = ?")
		args = append(args, *u.Venue)
	}
	if u.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, u.Date.UTC())
	}
	if u.Time != nil {
		sets = append(sets, "time = ?")
		args = append(args, *u.Time)
	}
	if u.SeatCapacity != nil {
		sets = append(sets, "seat_capacity = ?")
		args = append(args, *u.SeatCapacity)
	}
	if u.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *u.Price)
	}
	if len(sets) > 0 {
		q := "UPDATE events SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// AddBookedSeats adjusts the booked_seats counter by delta, which may
// be negative when seats are released.  ErrEventNotFound is returned
// when the event does not exist.
func (r *EventRepo) AddBookedSeats(ctx context.Context, id string, delta int) error {
	const q = `UPDATE events SET booked_seats = booked_seats + ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, delta, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes an event.  ErrEventNotFound is returned when no row
// was deleted.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}
