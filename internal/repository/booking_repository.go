package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// BookingRepo manages persistence for bookings.  Bookings carry a weak
// reference to their event; the event row does not enumerate them, so
// all per-event access goes through ListByEvent.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a new booking.  A UUID is assigned when the caller
// has not set one and the booking date defaults to the current time.
// The check_in_code column starts empty; it is written by
// SetCheckInCode once the code has been derived from the generated id.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.BookingDate.IsZero() {
		b.BookingDate = time.Now().UTC()
	}
	const q = `INSERT INTO bookings (id, user_id, event_id, quantity, booking_date, check_in_code)
	           VALUES (?, ?, ?, ?, ?, '')`
	_, err := r.db.ExecContext(ctx, q, b.ID, b.UserID, b.EventID, b.Quantity, b.BookingDate.UTC())
	return err
}

// GetByID retrieves a booking by its id.  It returns
// ErrBookingNotFound when no matching row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT id, user_id, event_id, quantity, booking_date, check_in_code FROM bookings WHERE id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.UserID, &b.EventID, &b.Quantity, &b.BookingDate, &b.CheckInCode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByUserAndEvent returns the booking a user holds against an
// event, or ErrBookingNotFound when there is none.  The schema's
// UNIQUE(user_id, event_id) constraint guarantees at most one row.
func (r *BookingRepo) FindByUserAndEvent(ctx context.Context, userID, eventID string) (*model.Booking, error) {
	const q = `SELECT id, user_id, event_id, quantity, booking_date, check_in_code
	           FROM bookings WHERE user_id = ? AND event_id = ? LIMIT 1`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, userID, eventID).Scan(
		&b.ID, &b.UserID, &b.EventID, &b.Quantity, &b.BookingDate, &b.CheckInCode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

const bookingDetailColumns = `b.id, b.user_id, b.event_id, b.quantity, b.booking_date, b.check_in_code,
	       e.title, e.description, e.category, e.venue, e.date, e.time, e.price`

func scanBookingDetail(row interface{ Scan(...any) error }, d *model.BookingDetail) error {
	return row.Scan(
		&d.ID, &d.UserID, &d.EventID, &d.Quantity, &d.BookingDate, &d.CheckInCode,
		&d.Event.Title, &d.Event.Description, &d.Event.Category, &d.Event.Venue,
		&d.Event.Date, &d.Event.Time, &d.Event.Price,
	)
}

// GetDetail returns a booking joined with the restricted projection of
// its event.  ErrBookingNotFound is returned when the booking does not
// exist.
func (r *BookingRepo) GetDetail(ctx context.Context, id string) (*model.BookingDetail, error) {
	const q = `SELECT ` + bookingDetailColumns + `
	           FROM bookings b JOIN events e ON e.id = b.event_id
	           WHERE b.id = ?`
	var d model.BookingDetail
	if err := scanBookingDetail(r.db.QueryRowContext(ctx, q, id), &d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListByUser returns all bookings owned by the given user, newest
// first, each with its event projection.  An empty result is an empty
// slice, not an error; the service layer decides how to present it.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]model.BookingDetail, error) {
	const q = `SELECT ` + bookingDetailColumns + `
	           FROM bookings b JOIN events e ON e.id = b.event_id
	           WHERE b.user_id = ?
	           ORDER BY b.booking_date DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]model.BookingDetail, 0)
	for rows.Next() {
		var d model.BookingDetail
		if err := scanBookingDetail(rows, &d); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListByEvent returns all bookings against the given event together
// with each owner's name and email, for the compensation flows.
func (r *BookingRepo) ListByEvent(ctx context.Context, eventID string) ([]model.BookingContact, error) {
	const q = `SELECT b.id, b.user_id, b.event_id, b.quantity, b.booking_date, b.check_in_code,
	                  u.name, u.email
	           FROM bookings b JOIN users u ON u.id = b.user_id
	           WHERE b.event_id = ?`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	contacts := make([]model.BookingContact, 0)
	for rows.Next() {
		var c model.BookingContact
		err := rows.Scan(
			&c.ID, &c.UserID, &c.EventID, &c.Quantity, &c.BookingDate, &c.CheckInCode,
			&c.UserName, &c.UserEmail,
		)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// SetCheckInCode stores the rendered check-in code on an existing
// booking.  ErrBookingNotFound is returned when the booking vanished
// between creation and this second write.
func (r *BookingRepo) SetCheckInCode(ctx context.Context, id, code string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET check_in_code = ? WHERE id = ?`, code, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Delete removes a booking.  ErrBookingNotFound is returned when no
// row was deleted.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}
