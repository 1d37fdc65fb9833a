// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// Event kinds carried in BookingEvent.Kind.
const (
	KindBookingCreated   = "booking.created"
	KindBookingConfirmed = "booking.confirmed"
	KindBookingCancelled = "booking.cancelled"
)

// BookingEvent is published whenever a booking is created or changes
// status. It carries enough information for downstream consumers to log
// and notify without querying the primary database.
type BookingEvent struct {
	Kind          string `json:"kind"`
	BookingID     uint64 `json:"booking_id"`
	UserID        uint64 `json:"user_id"`
	SpaceID       uint64 `json:"space_id,omitempty"`
	SlotID        uint64 `json:"slot_id,omitempty"`
	SeatNumber    uint32 `json:"seat_number,omitempty"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
