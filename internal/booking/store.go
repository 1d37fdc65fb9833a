package booking

import (
	"context"

	"github.com/yourspace/yourspace-api/internal/model"
)

// Store is the data-store collaborator the resolver depends on. The MySQL
// booking repository is the production implementation; MemStore backs tests
// and local development. The only correctness guarantee the resolver asks
// of a Store is that InsertPending enforces uniqueness of (slot_id,
// seat_number) across non-cancelled rows atomically: when two inserts race,
// exactly one succeeds and the other reports ErrSeatConflict.
type Store interface {
	// OccupiedSeats returns the seat numbers of all pending or confirmed
	// bookings in the slot. Cancelled bookings never appear.
	OccupiedSeats(ctx context.Context, slotID uint64) ([]uint32, error)

	// InsertPending atomically creates a pending booking for the seat,
	// failing with ErrSeatConflict when a non-cancelled booking already
	// holds (slotID, seat). On success the stored booking is returned with
	// its generated ID and timestamps populated.
	InsertPending(ctx context.Context, b *model.Booking) error

	// GetStatus returns the current status of a booking, or ErrNotFound.
	GetStatus(ctx context.Context, bookingID uint64) (model.BookingStatus, error)

	// UpdateStatus moves a booking from the expected status to the new one.
	// It must be conditional on the current status so that concurrent
	// transitions cannot both apply: when the row is no longer in `from`,
	// ErrInvalidTransition is reported; when it does not exist, ErrNotFound.
	UpdateStatus(ctx context.Context, bookingID uint64, from, to model.BookingStatus) error
}

// Publisher receives booking lifecycle events after they are durable. It is
// an optional collaborator: publishing failures are logged by the resolver
// and never affect the outcome of the operation that triggered them.
type Publisher interface {
	BookingCreated(ctx context.Context, b *model.Booking)
	BookingTransitioned(ctx context.Context, bookingID uint64, status model.BookingStatus)
}
