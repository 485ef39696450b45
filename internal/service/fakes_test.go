package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/notify"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// memStore is an in-memory implementation of EventStore and
// BookingStore used by the service tests.  All methods are safe for
// concurrent use so the capacity race tests can hammer it.
type memStore struct {
	mu       sync.Mutex
	events   map[string]*model.Event
	bookings map[string]*model.Booking
	contacts map[string][2]string // user id -> {name, email}
	seq      int

	// booking ids whose Delete should fail, for cascade tests.
	failDelete map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		events:     make(map[string]*model.Event),
		bookings:   make(map[string]*model.Booking),
		contacts:   make(map[string][2]string),
		failDelete: make(map[string]bool),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return prefix + "-" + strconv.Itoa(m.seq)
}

func (m *memStore) addUser(name, email string) model.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID("user")
	m.contacts[id] = [2]string{name, email}
	return model.Identity{ID: id, Name: name, Email: email, Roles: []string{"user"}}
}

// ----- EventStore -----

func (m *memStore) Create(ctx context.Context, e *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = m.nextID("event")
	}
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memStore) List(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Event
	for _, e := range m.events {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) Update(ctx context.Context, id string, u model.EventUpdate) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Venue != nil {
		e.Venue = *u.Venue
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Time != nil {
		e.Time = *u.Time
	}
	if u.SeatCapacity != nil {
		e.SeatCapacity = *u.SeatCapacity
	}
	if u.Price != nil {
		e.Price = *u.Price
	}
	cp := *e
	return &cp, nil
}

func (m *memStore) AddBookedSeats(ctx context.Context, id string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return repository.ErrEventNotFound
	}
	e.BookedSeats += delta
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; ok {
		delete(m.events, id)
		return nil
	}
	if b, ok := m.bookings[id]; ok {
		if m.failDelete[id] {
			return fmt.Errorf("simulated delete failure for %s", id)
		}
		delete(m.bookings, b.ID)
		return nil
	}
	return repository.ErrBookingNotFound
}

// ----- BookingStore -----
//
// memStore.Delete above serves both interfaces: event and booking ids
// never collide because of their prefixes.

func (m *memStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.nextID("booking")
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *memStore) GetBookingByID(ctx context.Context, id string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) GetDetail(ctx context.Context, id string) (*model.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	ev := m.events[b.EventID]
	d := model.BookingDetail{Booking: *b}
	if ev != nil {
		d.Event = model.EventProjection{Title: ev.Title, Date: ev.Date, Time: ev.Time, Price: ev.Price}
	}
	return &d, nil
}

func (m *memStore) FindByUserAndEvent(ctx context.Context, userID, eventID string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.UserID == userID && b.EventID == eventID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (m *memStore) ListByUser(ctx context.Context, userID string) ([]model.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.BookingDetail
	for _, b := range m.bookings {
		if b.UserID != userID {
			continue
		}
		d := model.BookingDetail{Booking: *b}
		if ev := m.events[b.EventID]; ev != nil {
			d.Event = model.EventProjection{Title: ev.Title, Date: ev.Date, Time: ev.Time, Price: ev.Price}
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ListByEvent(ctx context.Context, eventID string) ([]model.BookingContact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.BookingContact
	for _, b := range m.bookings {
		if b.EventID != eventID {
			continue
		}
		c := model.BookingContact{Booking: *b}
		if who, ok := m.contacts[b.UserID]; ok {
			c.UserName, c.UserEmail = who[0], who[1]
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) SetCheckInCode(ctx context.Context, id, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	b.CheckInCode = code
	return nil
}

// bookingStoreAdapter maps memStore onto the BookingStore interface,
// whose Create/GetByID names collide with EventStore's.
type bookingStoreAdapter struct{ *memStore }

func (a bookingStoreAdapter) Create(ctx context.Context, b *model.Booking) error {
	return a.CreateBooking(ctx, b)
}
func (a bookingStoreAdapter) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return a.GetBookingByID(ctx, id)
}

// recordingSender captures every message handed to it.  Setting err
// makes all sends fail, for the "notifications never fail the
// operation" tests.
type recordingSender struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (s *recordingSender) Send(ctx context.Context, m notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, m)
	return nil
}

func (s *recordingSender) messages() []notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notify.Message, len(s.sent))
	copy(out, s.sent)
	return out
}

func testEncoder(payload string) (string, error) {
	return "code(" + payload + ")", nil
}

const testBaseURL = "http://tickets.test"

func newBookingFixture() (*memStore, *recordingSender, *BookingService) {
	store := newMemStore()
	sender := &recordingSender{}
	svc := NewBookingService(store, bookingStoreAdapter{store}, sender, testEncoder, testBaseURL)
	return store, sender, svc
}

func newEventFixture() (*memStore, *recordingSender, *EventService) {
	store := newMemStore()
	sender := &recordingSender{}
	svc := NewEventService(store, bookingStoreAdapter{store}, sender)
	return store, sender, svc
}
