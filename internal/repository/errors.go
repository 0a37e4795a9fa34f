// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as handlers to distinguish between different failure
// scenarios. For example, ErrReservationNotFound maps to an HTTP 404
// while ErrConflict signals that a state precondition no longer holds
// (e.g. seating a table that another request just occupied).
package repository

import "errors"

// ErrReservationNotFound is returned when no reservation exists with
// the requested ID. Handlers should translate this into an HTTP 404
// response.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrTableNotFound is returned when no table exists with the
// requested ID. Handlers should translate this into an HTTP 404
// response.
var ErrTableNotFound = errors.New("table not found")

// ErrUserNotFound is returned when no staff account exists for the
// given identifier or email.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when registering a staff account with an
// email that is already in use.
var ErrEmailTaken = errors.New("email already registered")

// ErrConflict is returned when a write cannot be performed because
// the entity's state changed underneath the caller, such as seating a
// reservation at a table that is no longer free. Handlers should
// translate this into an HTTP 400 response.
var ErrConflict = errors.New("conflict")
