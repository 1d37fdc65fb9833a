package model

import "time"

// Notification is a per-user message produced when bookings are created or
// change status. The background queue consumer writes these rows; the API
// serves them so clients can poll instead of holding a realtime channel.
type Notification struct {
	ID        uint64     `json:"id"`
	UserID    uint64     `json:"user_id"`
	Kind      string     `json:"kind"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
