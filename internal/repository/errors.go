// Package repository implements the MySQL-backed stores for events,
// bookings and users.  Sentinel errors defined here let the service
// layer distinguish failure scenarios without inspecting SQL errors:
// for example ErrEventNotFound maps to a 404 while ErrEmailExists is
// folded into a generic 400 by the auth handler to avoid user
// enumeration.
package repository

import "errors"

// ErrEventNotFound indicates that no event exists with the given id.
var ErrEventNotFound = errors.New("event not found")

// ErrBookingNotFound indicates that no booking exists with the given id.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUserNotFound indicates that no user matches the given id or email.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registering an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")
