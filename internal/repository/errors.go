// Package repository defines error values shared across the individual
// repositories. These sentinels let higher layers such as handlers
// distinguish a soft "zero rows" outcome from a real storage failure.
// A missing room or reservation is an expected state the caller must
// handle (an empty table on startup, an edit of a deleted row), while
// any other error from a repository is a connectivity or query failure
// that must propagate unchanged.
package repository

import "errors"

// ErrRoomNotFound is returned when a room lookup matches no row.
var ErrRoomNotFound = errors.New("room not found")

// ErrKitchenTypeNotFound is returned when a kitchen type lookup matches no row.
var ErrKitchenTypeNotFound = errors.New("kitchen type not found")

// ErrReservationTypeNotFound is returned when a reservation type lookup
// matches no row.
var ErrReservationTypeNotFound = errors.New("reservation type not found")

// ErrReservationNotFound is returned when a reservation lookup matches no
// row, and by Update when the given identifier does not exist.
var ErrReservationNotFound = errors.New("reservation not found")
