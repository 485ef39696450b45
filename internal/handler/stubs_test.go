package handler

import (
	"context"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/notify"
	"github.com/iliyamo/event-ticketing/internal/service"
)

// Stub stores embed the interface so only the methods a test exercises
// need an implementation; hitting anything else panics the test.

type stubEventStore struct {
	service.EventStore
	getByID func(ctx context.Context, id string) (*model.Event, error)
	list    func(ctx context.Context, f model.EventFilter) ([]model.Event, error)
	create  func(ctx context.Context, e *model.Event) error
}

func (s *stubEventStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return s.getByID(ctx, id)
}

func (s *stubEventStore) List(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	return s.list(ctx, f)
}

func (s *stubEventStore) Create(ctx context.Context, e *model.Event) error {
	return s.create(ctx, e)
}

type stubBookingStore struct {
	service.BookingStore
	getByID            func(ctx context.Context, id string) (*model.Booking, error)
	listUser           func(ctx context.Context, userID string) ([]model.BookingDetail, error)
	findByUserAndEvent func(ctx context.Context, userID, eventID string) (*model.Booking, error)
}

func (s *stubBookingStore) FindByUserAndEvent(ctx context.Context, userID, eventID string) (*model.Booking, error) {
	return s.findByUserAndEvent(ctx, userID, eventID)
}

func (s *stubBookingStore) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return s.getByID(ctx, id)
}

func (s *stubBookingStore) ListByUser(ctx context.Context, userID string) ([]model.BookingDetail, error) {
	return s.listUser(ctx, userID)
}

type nopSender struct{}

func (nopSender) Send(ctx context.Context, m notify.Message) error { return nil }

func nopEncoder(payload string) (string, error) { return payload, nil }
