package booking

import (
	"context"
	"errors"

	"github.com/yourspace/yourspace-api/internal/model"
)

// Resolver decides seat admission for slots and produces consistent
// seat-occupancy views. It owns the only invariant in the system: for a
// fixed (slot_id, seat_number) pair, at most one booking is pending or
// confirmed at any time. The resolver's pre-check read is advisory — a
// courtesy to users whose occupancy view went stale — while the Store's
// conditional insert is the actual serialization point. Two concurrent
// AttemptBook calls for the same seat therefore resolve with exactly one
// winner even when both pre-checks saw the seat as free.
type Resolver struct {
	store Store
	pub   Publisher // may be nil; events are best-effort
}

// NewResolver constructs a Resolver over the given store. pub may be nil
// when no event publishing is wanted (tests, offline tooling).
func NewResolver(store Store, pub Publisher) *Resolver {
	if store == nil {
		panic("nil store passed to NewResolver")
	}
	return &Resolver{store: store, pub: pub}
}

// ComputeOccupancy returns the seat-by-seat availability view for a slot.
// The returned map has exactly capacity entries, one per seat number in
// [1, capacity]; true marks an occupied seat. It never mutates state and
// is deterministic over a consistent snapshot of bookings.
func (r *Resolver) ComputeOccupancy(ctx context.Context, slotID uint64, capacity uint32) (map[uint32]bool, error) {
	occupied, err := r.store.OccupiedSeats(ctx, slotID)
	if err != nil {
		return nil, storeErr(err)
	}
	view := make(map[uint32]bool, capacity)
	for seat := uint32(1); seat <= capacity; seat++ {
		view[seat] = false
	}
	for _, seat := range occupied {
		// Seats outside [1, capacity] can exist after an admin shrinks a
		// space; they stay invisible in the view but keep their booking.
		if seat >= 1 && seat <= capacity {
			view[seat] = true
		}
	}
	return view, nil
}

// AttemptBook tries to claim a seat in a slot for a user. The seat must lie
// in [1, capacity]; out-of-range requests fail with ErrInvalidInput before
// any store access. A fresh occupancy read guards against stale views and
// rejects early with ErrSeatConflict; the conditional insert then settles
// any remaining race. On success the created pending booking is returned.
func (r *Resolver) AttemptBook(ctx context.Context, slotID uint64, spaceID uint64, capacity uint32, seat uint32, userID uint64, pay model.PaymentStatus) (*model.Booking, error) {
	if seat < 1 || seat > capacity {
		return nil, ErrInvalidInput
	}
	if !pay.Valid() {
		pay = model.PaymentPending
	}

	// Advisory re-read: catches the common case where the seat was taken
	// between the user's view and this attempt, without burning an insert.
	view, err := r.ComputeOccupancy(ctx, slotID, capacity)
	if err != nil {
		return nil, err
	}
	if view[seat] {
		return nil, ErrSeatConflict
	}

	b := &model.Booking{
		UserID:        userID,
		SpaceID:       spaceID,
		SlotID:        slotID,
		SeatNumber:    seat,
		Status:        model.StatusPending,
		PaymentStatus: pay,
	}
	if err := r.store.InsertPending(ctx, b); err != nil {
		if errors.Is(err, ErrSeatConflict) {
			// A concurrent attempt won the race after our pre-check.
			return nil, ErrSeatConflict
		}
		return nil, storeErr(err)
	}
	if r.pub != nil {
		r.pub.BookingCreated(ctx, b)
	}
	return b, nil
}

// TransitionStatus moves a booking along its state machine. Allowed moves
// are pending->confirmed and pending->cancelled only; anything else fails
// with ErrInvalidTransition and leaves the booking untouched.
func (r *Resolver) TransitionStatus(ctx context.Context, bookingID uint64, next model.BookingStatus) error {
	if !next.Valid() || next == model.StatusPending {
		return ErrInvalidTransition
	}
	current, err := r.store.GetStatus(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	if !current.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	// Conditional on the status we just read, so a concurrent transition
	// cannot double-apply.
	if err := r.store.UpdateStatus(ctx, bookingID, current, next); err != nil {
		if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrNotFound) {
			return err
		}
		return storeErr(err)
	}
	if r.pub != nil {
		r.pub.BookingTransitioned(ctx, bookingID, next)
	}
	return nil
}

// storeErr tags unexpected storage failures as ErrStoreUnavailable while
// letting the resolver's own sentinel errors pass through untouched.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrSeatConflict),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrStoreUnavailable):
		return err
	}
	return errors.Join(ErrStoreUnavailable, err)
}
