package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/notify"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

// refundWindowDays is the promised refund turnaround quoted in price
// decrease and cancellation notifications.  575 days is the
// documented business rule, not a typo.
const refundWindowDays = 575

// notifyFanOut bounds the concurrent compensation notifications sent
// while a price change or cancellation fans out over bookings.
const notifyFanOut = 8

// EventService owns the event lifecycle and the compensation flows it
// triggers: charge/refund notifications on a price change, and the
// cascading cancellation of bookings when an event is deleted.
type EventService struct {
	events   EventStore
	bookings BookingStore
	sender   notify.Sender
}

// NewEventService constructs an EventService.
func NewEventService(events EventStore, bookings BookingStore, sender notify.Sender) *EventService {
	if events == nil || bookings == nil || sender == nil {
		panic("nil dependency passed to NewEventService")
	}
	return &EventService{events: events, bookings: bookings, sender: sender}
}

// CreateEvent validates invariants and persists a new event.
func (s *EventService) CreateEvent(ctx context.Context, e *model.Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidEvent)
	}
	if e.SeatCapacity < 1 {
		return fmt.Errorf("%w: must have at least one seat", ErrInvalidEvent)
	}
	if e.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidEvent)
	}
	e.BookedSeats = 0
	return s.events.Create(ctx, e)
}

// GetEvent returns a single event by id.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	return s.events.GetByID(ctx, id)
}

// ListEvents returns events matching the filter.  An empty result is
// reported as ErrNoEventsFound, preserving the API's 404-on-empty
// contract.
func (s *EventService) ListEvents(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	events, err := s.events.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if len(events) == 0 {
		return nil, ErrNoEventsFound
	}
	return events, nil
}

// UpdateEvent applies a partial update and, when the price actually
// changed on an event with live bookings, notifies every booking's
// user of the per-unit delta times their quantity.  The compensation
// fan-out is awaited before returning but can never fail the update:
// its errors are logged and swallowed.
func (s *EventService) UpdateEvent(ctx context.Context, id string, u model.EventUpdate) (*model.Event, error) {
	orig, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.SeatCapacity != nil {
		if *u.SeatCapacity < 1 {
			return nil, fmt.Errorf("%w: must have at least one seat", ErrInvalidEvent)
		}
		if *u.SeatCapacity < orig.BookedSeats {
			return nil, ErrCapacityBelowBooked
		}
	}
	if u.Price != nil && *u.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidEvent)
	}

	updated, err := s.events.Update(ctx, id, u)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	if u.Price != nil && updated.Price != orig.Price && orig.BookedSeats > 0 {
		s.compensatePriceChange(ctx, updated, orig.Price)
	}
	return updated, nil
}

// compensatePriceChange fans out over the event's bookings with a
// bounded worker set and sends each user a charge or refund notice for
// the price delta.  Runs after the event row is already updated;
// nothing here can roll the update back.
func (s *EventService) compensatePriceChange(ctx context.Context, ev *model.Event, oldPrice float64) {
	contacts, err := s.bookings.ListByEvent(ctx, ev.ID)
	if err != nil {
		log.Printf("notify: price change for event %s: listing bookings failed: %v", ev.ID, err)
		return
	}
	diff := ev.Price - oldPrice

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(notifyFanOut)
	for _, c := range contacts {
		c := c
		g.Go(func() error {
			if err := s.sender.Send(ctx, priceChangeMessage(ev, c, diff)); err != nil {
				log.Printf("notify: price change notice for booking %s not delivered: %v", c.ID, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// DeleteEvent removes an event, first cancelling its bookings.  Each
// booking is deleted and its user sent a refund notification by a
// bounded concurrent fan-out; all outcomes are awaited, then the
// bookings are re-queried.  If any remain the event is kept and the
// caller gets ErrEventHasBookings — bookings already removed are NOT
// restored.  On success the number of notifications dispatched is
// returned.
func (s *EventService) DeleteEvent(ctx context.Context, id string) (int, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	var sent atomic.Int64
	if ev.BookedSeats > 0 {
		contacts, err := s.bookings.ListByEvent(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("list bookings for cascade: %w", err)
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(notifyFanOut)
		for _, c := range contacts {
			c := c
			g.Go(func() error {
				if err := s.bookings.Delete(gctx, c.ID); err != nil {
					log.Printf("booking: cascade delete of %s failed: %v", c.ID, err)
					return nil
				}
				if err := s.sender.Send(gctx, cancellationMessage(ev, c)); err != nil {
					log.Printf("notify: cancellation notice for booking %s not delivered: %v", c.ID, err)
				}
				sent.Add(1)
				return nil
			})
		}
		_ = g.Wait()

		remaining, err := s.bookings.ListByEvent(ctx, id)
		if err != nil {
			return int(sent.Load()), fmt.Errorf("re-check bookings after cascade: %w", err)
		}
		if len(remaining) > 0 {
			return int(sent.Load()), ErrEventHasBookings
		}
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return int(sent.Load()), err
	}
	return int(sent.Load()), nil
}

func priceChangeMessage(ev *model.Event, c model.BookingContact, diff float64) notify.Message {
	var subject, text string
	if diff > 0 {
		amount := utils.FormatDollars(diff * float64(c.Quantity))
		subject = fmt.Sprintf("%s price increase, your card will be charged", ev.Title)
		text = fmt.Sprintf("There has been a price change for your booking at %s, and you now owe %s, which will be charged to your card.", ev.Title, amount)
	} else {
		amount := utils.FormatDollars(-diff * float64(c.Quantity))
		subject = fmt.Sprintf("%s price decrease, you will be refunded", ev.Title)
		text = fmt.Sprintf("There has been a price change for your booking at %s, and you will be refunded %s, via your card, within %d days.", ev.Title, amount, refundWindowDays)
	}
	return notify.Message{
		To:      notify.Recipient(c.UserName, c.UserEmail),
		Subject: subject,
		Text:    fmt.Sprintf("%s\n\nPlease use this code to check in:\n\n%s", text, c.CheckInCode),
		HTML:    fmt.Sprintf("<h1>%s</h1><p>Please use this code to check in:</p><pre>%s</pre>", text, c.CheckInCode),
	}
}

func cancellationMessage(ev *model.Event, c model.BookingContact) notify.Message {
	refund := utils.FormatDollars(ev.Price * float64(c.Quantity))
	text := fmt.Sprintf("%s has been canceled, and you will be refunded %s, via your card, within %d days.", ev.Title, refund, refundWindowDays)
	return notify.Message{
		To:      notify.Recipient(c.UserName, c.UserEmail),
		Subject: fmt.Sprintf("%s canceled, you will be refunded", ev.Title),
		Text:    text,
		HTML:    fmt.Sprintf("<p>%s</p>", text),
	}
}
