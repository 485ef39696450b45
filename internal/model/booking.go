package model

import "time"

// Booking records one user's reservation of a number of seats against
// one event.  A (user, event) pair holds at most one live booking.
//
// Fields:
//  ID          – opaque unique identifier (UUID), assigned at creation.
//  UserID      – user who made the booking.
//  EventID     – event being booked.
//  Quantity    – number of seats reserved (>= 1).
//  BookingDate – when the booking was made (defaults to creation time).
//  CheckInCode – scannable text rendering of the booking's validation
//                URL.  Written in a second update after creation, so a
//                freshly created booking may briefly have none.
type Booking struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	EventID     string    `json:"event"`
	Quantity    int       `json:"quantity"`
	BookingDate time.Time `json:"bookingDate"`
	CheckInCode string    `json:"checkInCode,omitempty"`
}

// BookingDetail is a booking joined with the restricted projection of
// its event, as returned to the booking's owner.
type BookingDetail struct {
	Booking
	Event EventProjection `json:"event"`
}

// BookingContact is a booking joined with the contact details of its
// owner.  The compensation flows use it to address charge, refund and
// cancellation notifications.
type BookingContact struct {
	Booking
	UserName  string `json:"-"`
	UserEmail string `json:"-"`
}
