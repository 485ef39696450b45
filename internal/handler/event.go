package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/service"
)

// EventHandler exposes the event catalogue.  Listing and point lookup
// are public; create, update and delete require the admin role, which
// middleware enforces before these methods run.
type EventHandler struct {
	Events *service.EventService
}

func NewEventHandler(s *service.EventService) *EventHandler {
	if s == nil {
		panic("nil service passed to NewEventHandler")
	}
	return &EventHandler{Events: s}
}

type createEventReq struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Venue        string  `json:"venue"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	SeatCapacity int     `json:"seatCapacity"`
	Price        float64 `json:"price"`
}

type updateEventReq struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	Venue        *string  `json:"venue"`
	Date         *string  `json:"date"`
	Time         *string  `json:"time"`
	SeatCapacity *int     `json:"seatCapacity"`
	Price        *float64 `json:"price"`
}

// parseEventDate accepts RFC3339 timestamps or plain calendar dates.
func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Create handles POST /api/events (admin only).
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Event Title required"})
	}
	if req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Event Date required"})
	}
	if req.SeatCapacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Event Seat Capacity required"})
	}
	if req.Price == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Event Price required"})
	}
	date, err := parseEventDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid date"})
	}
	ev := &model.Event{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Venue:        req.Venue,
		Date:         date,
		Time:         req.Time,
		SeatCapacity: req.SeatCapacity,
		Price:        req.Price,
	}
	if err := h.Events.CreateEvent(c.Request().Context(), ev); err != nil {
		if errors.Is(err, service.ErrInvalidEvent) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create event failed"})
	}
	return c.JSON(http.StatusCreated, ev)
}

// List handles GET /api/events with optional category and date query
// filters.  An empty result is a 404, matching the API's established
// contract.
func (h *EventHandler) List(c echo.Context) error {
	f := model.EventFilter{Category: c.QueryParam("category")}
	if d := c.QueryParam("date"); d != "" {
		date, err := parseEventDate(d)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid date"})
		}
		f.Date = &date
	}
	events, err := h.Events.ListEvents(c.Request().Context(), f)
	if err != nil {
		if errors.Is(err, service.ErrNoEventsFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "No Events found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "list events failed"})
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /api/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	ev, err := h.Events.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "get event failed"})
	}
	return c.JSON(http.StatusOK, ev)
}

// Update handles PUT /api/events/:id (admin only).  A price change on
// an event with live bookings triggers the charge/refund notification
// fan-out inside the service before the response is written.
func (h *EventHandler) Update(c echo.Context) error {
	var req updateEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	u := model.EventUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Venue:        req.Venue,
		Time:         req.Time,
		SeatCapacity: req.SeatCapacity,
		Price:        req.Price,
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid date"})
		}
		u.Date = &date
	}
	ev, err := h.Events.UpdateEvent(c.Request().Context(), c.Param("id"), u)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		case errors.Is(err, service.ErrInvalidEvent):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		case errors.Is(err, service.ErrCapacityBelowBooked):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Must have more seats than bookings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update event failed"})
	}
	return c.JSON(http.StatusOK, ev)
}

// Delete handles DELETE /api/events/:id (admin only).  The event goes
// away only after every booking against it was removed; otherwise the
// caller gets a conflict and the event survives.
func (h *EventHandler) Delete(c echo.Context) error {
	sent, err := h.Events.DeleteEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		case errors.Is(err, service.ErrEventHasBookings):
			return c.JSON(http.StatusConflict, echo.Map{"message": "Event has bookings, cannot delete"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "delete event failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":           fmt.Sprintf("Event deleted successfully, %d notifications sent.", sent),
		"notificationsSent": sent,
	})
}
