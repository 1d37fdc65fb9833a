package model

import "time"

// BookingStatus enumerates the lifecycle states of a booking. A booking is
// created as StatusPending and only ever moves forward: pending may become
// confirmed (payment succeeded or onsite payment acknowledged) or cancelled
// (explicit cancellation). Confirmed and cancelled are terminal.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the three known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave s.
func (s BookingStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal forward
// transition. Only pending->confirmed and pending->cancelled are allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == StatusPending && (next == StatusConfirmed || next == StatusCancelled)
}

// Occupies reports whether a booking in status s holds its seat. Cancelled
// bookings release the seat; pending and confirmed ones occupy it.
func (s BookingStatus) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed
}

// PaymentStatus enumerates how a booking is being paid for.
// PaymentPending means an online payment has been started but not finished,
// PaymentPaid means it completed, and PaymentOnsite means the user chose to
// pay at the venue (an admin confirms the booking on arrival).
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOnsite  PaymentStatus = "onsite"
)

// Valid reports whether p is a known payment status.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentOnsite:
		return true
	}
	return false
}

// Booking represents a user's claim on one seat within one slot. It mirrors
// the bookings table. SeatNumber is 1-based and bounded by the capacity of
// the slot's space (or the slot's own capacity override).
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – user who made the booking.
//  SpaceID       – space the slot belongs to (denormalized for listings).
//  SlotID        – slot the seat is claimed in.
//  SeatNumber    – claimed seat, in [1, capacity].
//  Status        – lifecycle status (pending, confirmed, cancelled).
//  PaymentStatus – payment state (pending, paid, onsite).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Booking struct {
	ID            uint64        `json:"id"`
	UserID        uint64        `json:"user_id"`
	SpaceID       uint64        `json:"space_id"`
	SlotID        uint64        `json:"slot_id"`
	SeatNumber    uint32        `json:"seat_number"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
