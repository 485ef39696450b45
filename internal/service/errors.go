package service

import "errors"

// ErrDuplicateBooking is returned when a user who already holds a
// booking for an event tries to book it again.  Handlers translate
// this into an HTTP 409 response.
var ErrDuplicateBooking = errors.New("you already have a booking for this event")

// ErrCapacityExceeded is returned when the requested quantity exceeds
// the seats remaining on the event.  Handlers translate this into an
// HTTP 409 response.
var ErrCapacityExceeded = errors.New("not enough seats available")

// ErrEventHasBookings is returned when an event cannot be deleted
// because bookings remain after the cascade.  Handlers translate this
// into an HTTP 409 response.
var ErrEventHasBookings = errors.New("event has bookings, cannot delete")

// ErrForbidden is returned when the caller is not the owner of the
// requested booking.  Handlers translate this into an HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrNoBookingsFound is returned when a user's booking list is empty.
// The API reports an empty collection as 404, not as an empty list.
var ErrNoBookingsFound = errors.New("no bookings found")

// ErrNoEventsFound is the listing counterpart of ErrNoBookingsFound.
var ErrNoEventsFound = errors.New("no events found")

// ErrInvalidEvent is returned when event fields violate the model's
// invariants (capacity < 1, negative price).  Handlers translate this
// into an HTTP 400.
var ErrInvalidEvent = errors.New("invalid event fields")

// ErrCapacityBelowBooked is returned when an update would shrink the
// seat capacity below the seats already booked.
var ErrCapacityBelowBooked = errors.New("seat capacity below booked seats")
