package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/notify"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

// CheckInResult is the outcome of validating a scanned check-in code.
// A genuine code outside the event's time window is still a success
// response, only flagged as mistimed.
type CheckInResult string

const (
	CheckInValid     CheckInResult = "VALID"
	CheckInWrongDate CheckInResult = "VALID, Wrong Date"
)

// checkInWindow is how far either side of the event date a code
// scans as valid.
const checkInWindow = 24 * time.Hour

// BookingService orchestrates the booking lifecycle.  Creation and
// cancellation serialize through a per-event mutex held across the
// capacity check and the bookedSeats write, which closes the
// over-booking race the underlying stores cannot prevent on their own.
type BookingService struct {
	events   EventStore
	bookings BookingStore
	sender   notify.Sender
	encode   Encoder
	baseURL  string
	locks    *keyedMutex
	now      func() time.Time
}

// NewBookingService constructs a BookingService.  baseURL is the
// externally reachable prefix embedded into check-in codes.
func NewBookingService(events EventStore, bookings BookingStore, sender notify.Sender, encode Encoder, baseURL string) *BookingService {
	if events == nil || bookings == nil || sender == nil || encode == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{
		events:   events,
		bookings: bookings,
		sender:   sender,
		encode:   encode,
		baseURL:  baseURL,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

// CreateBooking books quantity seats on an event for the caller.
//
// The steps are: duplicate check, event load, remaining-capacity
// check, booking insert, check-in code derivation and second write,
// bookedSeats increment, confirmation notification.  The sequence is
// not transactional: a failure after the insert leaves the booking in
// place and is surfaced as an internal error.  The confirmation
// notification is fire-and-forget and never fails the booking.
func (s *BookingService) CreateBooking(ctx context.Context, caller model.Identity, eventID string, quantity int, bookingDate *time.Time) (*model.Booking, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidEvent)
	}

	unlock := s.locks.Lock(eventID)
	defer unlock()

	if _, err := s.bookings.FindByUserAndEvent(ctx, caller.ID, eventID); err == nil {
		return nil, ErrDuplicateBooking
	} else if !errors.Is(err, repository.ErrBookingNotFound) {
		return nil, fmt.Errorf("lookup existing booking: %w", err)
	}

	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	// The request competes for what remains, not for total capacity.
	if quantity > ev.Remaining() {
		return nil, ErrCapacityExceeded
	}

	b := &model.Booking{UserID: caller.ID, EventID: eventID, Quantity: quantity}
	if bookingDate != nil {
		b.BookingDate = bookingDate.UTC()
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// The code embeds the booking's own id, so it can only be derived
	// and stored after the insert.  A failure here leaves a booking
	// without a code.
	code, err := s.encode(s.baseURL + "/api/bookings/validate/" + b.ID)
	if err != nil {
		return nil, fmt.Errorf("encode check-in code: %w", err)
	}
	if err := s.bookings.SetCheckInCode(ctx, b.ID, code); err != nil {
		return nil, fmt.Errorf("store check-in code: %w", err)
	}
	b.CheckInCode = code

	if err := s.events.AddBookedSeats(ctx, eventID, quantity); err != nil {
		return nil, fmt.Errorf("increment booked seats: %w", err)
	}

	s.dispatch(ctx, confirmationMessage(caller, ev, b))
	return b, nil
}

// CancelBooking removes the caller's booking and returns its seats to
// the event.
func (s *BookingService) CancelBooking(ctx context.Context, caller model.Identity, bookingID string) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.UserID != caller.ID {
		return ErrForbidden
	}

	unlock := s.locks.Lock(b.EventID)
	defer unlock()

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return err
	}
	if err := s.events.AddBookedSeats(ctx, b.EventID, -b.Quantity); err != nil {
		return fmt.Errorf("release booked seats: %w", err)
	}
	return nil
}

// ListMyBookings returns all bookings owned by the caller, each with
// the restricted projection of its event.  An empty result is
// reported as ErrNoBookingsFound, preserving the API's 404-on-empty
// contract.
func (s *BookingService) ListMyBookings(ctx context.Context, caller model.Identity) ([]model.BookingDetail, error) {
	details, err := s.bookings.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if len(details) == 0 {
		return nil, ErrNoBookingsFound
	}
	return details, nil
}

// GetBooking returns one booking with its event projection.  Callers
// only see their own bookings.
func (s *BookingService) GetBooking(ctx context.Context, caller model.Identity, bookingID string) (*model.BookingDetail, error) {
	d, err := s.bookings.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if d.UserID != caller.ID {
		return nil, ErrForbidden
	}
	return d, nil
}

// ValidateCheckIn resolves a scanned booking id against "now".  The
// code is genuine as long as the booking exists; the result only says
// whether the scan falls inside the ±24h window around the event
// date.  No authentication is involved: door staff have no session.
func (s *BookingService) ValidateCheckIn(ctx context.Context, bookingID string) (CheckInResult, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return "", err
	}
	ev, err := s.events.GetByID(ctx, b.EventID)
	if err != nil {
		return "", fmt.Errorf("load booked event: %w", err)
	}
	now := s.now()
	if ev.Date.Add(-checkInWindow).After(now) || ev.Date.Add(checkInWindow).Before(now) {
		return CheckInWrongDate, nil
	}
	return CheckInValid, nil
}

// dispatch hands a message to the notification gateway.  Failures are
// logged and swallowed; notifications never fail the operation that
// produced them.
func (s *BookingService) dispatch(ctx context.Context, m notify.Message) {
	if err := s.sender.Send(ctx, m); err != nil {
		log.Printf("booking: notification not delivered: %v", err)
	}
}

func confirmationMessage(caller model.Identity, ev *model.Event, b *model.Booking) notify.Message {
	total := utils.FormatDollars(ev.Price * float64(b.Quantity))
	when := utils.FormatLongDate(ev.Date)
	return notify.Message{
		To:      notify.Recipient(caller.Name, caller.Email),
		Subject: fmt.Sprintf("%s Booking Confirmation!", ev.Title),
		Text: fmt.Sprintf(
			"Congratulations on booking %d seats for %s!\nYour Card has been charged %s\n%s is on %s at %s\n\nPlease use this code to check in at the event:\n\n%s",
			b.Quantity, ev.Title, total, ev.Title, when, ev.Time, b.CheckInCode,
		),
		HTML: fmt.Sprintf(
			"<h1>Congratulations on booking %d seats for %s!</h1><p>Your Card has been charged %s</p><p>%s is on %s at %s</p><p>Please use this code to check in at the event:</p><pre>%s</pre>",
			b.Quantity, ev.Title, total, ev.Title, when, ev.Time, b.CheckInCode,
		),
	}
}
