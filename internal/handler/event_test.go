package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/service"
)

func newEventHandler(events *stubEventStore, bookings *stubBookingStore) *EventHandler {
	return NewEventHandler(service.NewEventService(events, bookings, nopSender{}))
}

func TestEventCreateFieldRequirements(t *testing.T) {
	h := newEventHandler(&stubEventStore{}, &stubBookingStore{})

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing title", `{"date":"2026-10-01","seatCapacity":10,"price":25}`, "Event Title required"},
		{"missing date", `{"title":"Jazz Night","seatCapacity":10,"price":25}`, "Event Date required"},
		{"missing capacity", `{"title":"Jazz Night","date":"2026-10-01","price":25}`, "Event Seat Capacity required"},
		{"missing price", `{"title":"Jazz Night","date":"2026-10-01","seatCapacity":10}`, "Event Price required"},
		{"bad date", `{"title":"Jazz Night","date":"tomorrow","seatCapacity":10,"price":25}`, "invalid date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := testContext(http.MethodPost, "/api/events", tc.body)
			assert.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestEventCreateSuccess(t *testing.T) {
	events := &stubEventStore{
		create: func(ctx context.Context, e *model.Event) error {
			e.ID = "event-1"
			return nil
		},
	}
	h := newEventHandler(events, &stubBookingStore{})
	c, rec := testContext(http.MethodPost, "/api/events",
		`{"title":"Jazz Night","date":"2026-10-01","time":"8:00 PM","seatCapacity":100,"price":25}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"event-1"`)
}

func TestEventListEmptyIsNotFound(t *testing.T) {
	events := &stubEventStore{
		list: func(ctx context.Context, f model.EventFilter) ([]model.Event, error) { return nil, nil },
	}
	h := newEventHandler(events, &stubBookingStore{})
	c, rec := testContext(http.MethodGet, "/api/events", "")

	assert.NoError(t, h.List(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No Events found")
}

func TestEventListPassesFilter(t *testing.T) {
	var got model.EventFilter
	events := &stubEventStore{
		list: func(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
			got = f
			return []model.Event{{ID: "event-1", Title: "Jazz Night"}}, nil
		},
	}
	h := newEventHandler(events, &stubBookingStore{})
	c, rec := testContext(http.MethodGet, "/api/events?category=music&date=2026-10-01", "")

	assert.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "music", got.Category)
	require.NotNil(t, got.Date)
	assert.Equal(t, "2026-10-01", got.Date.Format("2006-01-02"))
}

func TestEventGetNotFound(t *testing.T) {
	events := &stubEventStore{
		getByID: func(ctx context.Context, id string) (*model.Event, error) {
			return nil, repository.ErrEventNotFound
		},
	}
	h := newEventHandler(events, &stubBookingStore{})
	c, rec := testContext(http.MethodGet, "/api/events/event-x", "")
	c.SetParamNames("id")
	c.SetParamValues("event-x")

	assert.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event not found")
}
