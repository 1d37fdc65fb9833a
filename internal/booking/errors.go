// Package booking implements seat availability computation and booking
// admission for slots. It defines the error kinds surfaced to handlers so
// that a seat conflict can always be distinguished from a storage failure:
// a conflict means the user should pick another seat, while a storage
// failure means the same action can be retried after re-reading occupancy.
package booking

import "errors"

// ErrSeatConflict is returned when the requested seat already carries a
// pending or confirmed booking, whether detected by the advisory pre-check
// or by the storage layer's uniqueness constraint rejecting the insert.
// Handlers should translate this into an HTTP 409 response.
var ErrSeatConflict = errors.New("seat already booked")

// ErrInvalidInput is returned when the requested seat number lies outside
// [1, capacity]. The store is never touched in this case. Handlers should
// translate this into an HTTP 400 response.
var ErrInvalidInput = errors.New("seat number out of range")

// ErrInvalidTransition is returned when a status change is not a legal
// successor of the booking's current status. pending may move to confirmed
// or cancelled; confirmed and cancelled are terminal.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNotFound is returned when the referenced booking does not exist.
var ErrNotFound = errors.New("booking not found")

// ErrStoreUnavailable wraps network or storage failures. Callers must not
// assume a timed-out write failed; the correct remediation is to re-read
// occupancy and retry, never to blindly repeat the insert.
var ErrStoreUnavailable = errors.New("booking store unavailable")
