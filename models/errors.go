package models

import (
	"errors"
	"fmt"
)

// Error kinds. Services wrap these with fmt.Errorf("%w: ...") and
// controllers translate the kind into an HTTP status with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrRoomNotFound     = fmt.Errorf("%w: room", ErrNotFound)
	ErrGuestNotFound    = fmt.Errorf("%w: guest", ErrNotFound)
	ErrBookingNotFound  = fmt.Errorf("%w: booking", ErrNotFound)
	ErrNoRoomsAvailable = fmt.Errorf("%w: no rooms available for these dates", ErrNotFound)
	ErrNoBookings       = fmt.Errorf("%w: no bookings", ErrNotFound)

	// ErrRoomUnavailable means an overlapping confirmed booking already
	// holds the room for the requested range.
	ErrRoomUnavailable = fmt.Errorf("%w: room already booked for these dates", ErrConflict)

	// ErrCodeExhausted means code generation kept colliding past the
	// retry budget.
	ErrCodeExhausted = fmt.Errorf("%w: could not generate a unique booking code", ErrConflict)
)
