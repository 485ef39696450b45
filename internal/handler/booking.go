// Package handler contains the HTTP handlers.  They stay thin: bind
// and validate the request, extract the authenticated identity, call
// the service layer and translate its sentinel errors into HTTP
// statuses.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/middleware"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/service"
)

// BookingHandler exposes the booking lifecycle over HTTP.  All
// endpoints except Validate require an authenticated user; Validate
// is deliberately public because door staff scanning a code have no
// session.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(s *service.BookingService) *BookingHandler {
	if s == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: s}
}

type createBookingReq struct {
	EventID     string `json:"eventId"`
	Quantity    int    `json:"quantity"`
	BookingDate string `json:"bookingDate"`
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	caller, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Access denied"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if req.EventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Event ID required"})
	}
	var bookingDate *time.Time
	if req.BookingDate != "" {
		t, err := parseEventDate(req.BookingDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid bookingDate"})
		}
		bookingDate = &t
	}

	b, err := h.Bookings.CreateBooking(c.Request().Context(), caller, req.EventID, req.Quantity, bookingDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateBooking):
			return c.JSON(http.StatusConflict, echo.Map{"message": "You already have a booking for this event"})
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		case errors.Is(err, service.ErrCapacityExceeded):
			return c.JSON(http.StatusConflict, echo.Map{"message": "Not enough seats available"})
		case errors.Is(err, service.ErrInvalidEvent):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create booking failed"})
	}
	return c.JSON(http.StatusCreated, b)
}

// List handles GET /api/bookings.  It returns the caller's bookings;
// an empty collection is reported as 404 by long-standing contract.
func (h *BookingHandler) List(c echo.Context) error {
	caller, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Access denied"})
	}
	details, err := h.Bookings.ListMyBookings(c.Request().Context(), caller)
	if err != nil {
		if errors.Is(err, service.ErrNoBookingsFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "No Bookings found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, details)
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	caller, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Access denied"})
	}
	d, err := h.Bookings.GetBooking(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "No Booking found"})
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "get booking failed"})
	}
	return c.JSON(http.StatusOK, d)
}

// Delete handles DELETE /api/bookings/:id: the caller cancels their
// own booking, returning its seats to the event.
func (h *BookingHandler) Delete(c echo.Context) error {
	caller, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Access denied"})
	}
	err := h.Bookings.CancelBooking(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "No Booking found"})
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "cancel booking failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Validate handles GET /api/bookings/validate/:id, the unauthenticated
// door-scan endpoint.  A genuine code outside the event's window is
// still a 200, flagged as mistimed in the message.
func (h *BookingHandler) Validate(c echo.Context) error {
	result, err := h.Bookings.ValidateCheckIn(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "No Booking found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "validate booking failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": string(result)})
}
