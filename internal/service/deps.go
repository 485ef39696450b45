// Package service implements the booking lifecycle engine: booking
// creation against live capacity, retrieval and authorization,
// check-in validation, and the compensation flows triggered by event
// price changes and event cancellation.  The engine talks to its
// collaborators through the interfaces below; the repository package
// provides the MySQL implementations and tests substitute in-memory
// fakes.
package service

import (
	"context"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// EventStore is the persistence surface the engine needs for events.
// Implementations return repository.ErrEventNotFound for absent ids.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, f model.EventFilter) ([]model.Event, error)
	Update(ctx context.Context, id string, u model.EventUpdate) (*model.Event, error)
	AddBookedSeats(ctx context.Context, id string, delta int) error
	Delete(ctx context.Context, id string) error
}

// BookingStore is the persistence surface the engine needs for
// bookings.  Implementations return repository.ErrBookingNotFound for
// absent ids and for FindByUserAndEvent misses.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetDetail(ctx context.Context, id string) (*model.BookingDetail, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.BookingDetail, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.BookingContact, error)
	SetCheckInCode(ctx context.Context, id, code string) error
	Delete(ctx context.Context, id string) error
}

// Encoder turns a check-in payload into its scannable rendering.
type Encoder func(payload string) (string, error)
