// Package repository defines error values reused across repositories so
// handlers can distinguish failure scenarios without inspecting SQL
// errors.
package repository

import "errors"

// ErrConflict is returned when a delete cannot proceed because of
// dependent state, such as removing a slot or space that still carries
// pending or confirmed bookings. Handlers translate it into HTTP 409.
var ErrConflict = errors.New("conflict")
