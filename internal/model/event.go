package model

import "time"

// Event represents a ticketed occurrence with a finite seat capacity
// and a per-seat price.  Events are created by admins; bookedSeats is
// maintained by the booking engine and must never exceed SeatCapacity.
//
// Fields:
//  ID           – opaque unique identifier (UUID), assigned at creation.
//  Title        – event title (required, non-empty).
//  Description  – optional free text.
//  Category     – optional category used for list filtering.
//  Venue        – optional venue name.
//  Date         – calendar date of the event in UTC (required).
//  Time         – free-text start time shown in notifications.
//  SeatCapacity – total number of seats (>= 1).
//  BookedSeats  – seats currently booked (>= 0, default 0).
//  Price        – price per seat in dollars (>= 0).
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	Venue        string    `json:"venue,omitempty"`
	Date         time.Time `json:"date"`
	Time         string    `json:"time,omitempty"`
	SeatCapacity int       `json:"seatCapacity"`
	BookedSeats  int       `json:"bookedSeats"`
	Price        float64   `json:"price"`
}

// Remaining returns the number of seats still reservable.
func (e *Event) Remaining() int {
	return e.SeatCapacity - e.BookedSeats
}

// EventUpdate carries the mutable event fields for a partial update.
// Nil pointers mean "leave unchanged".
type EventUpdate struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Category     *string    `json:"category"`
	Venue        *string    `json:"venue"`
	Date         *time.Time `json:"date"`
	Time         *string    `json:"time"`
	SeatCapacity *int       `json:"seatCapacity"`
	Price        *float64   `json:"price"`
}

// EventFilter narrows event listings.  Category is an exact match.
// Date selects events within one day either side of the given calendar
// date, mirroring the original API's widened date filter.
type EventFilter struct {
	Category string
	Date     *time.Time
}

// EventProjection is the restricted view of an event attached to
// booking responses: descriptive fields and the price, but not the
// capacity counters.
type EventProjection struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time,omitempty"`
	Price       float64   `json:"price"`
}
