package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourspace/yourspace-api/internal/model"
)

func newTestResolver(t *testing.T) (*Resolver, *MemStore) {
	t.Helper()
	store := NewMemStore()
	return NewResolver(store, nil), store
}

func TestComputeOccupancyEmptySlot(t *testing.T) {
	r, _ := newTestResolver(t)
	view, err := r.ComputeOccupancy(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, map[uint32]bool{1: false, 2: false, 3: false, 4: false}, view)
}

func TestComputeOccupancyCoversEverySeatOnce(t *testing.T) {
	r, _ := newTestResolver(t)
	for _, capacity := range []uint32{1, 3, 10, 64} {
		view, err := r.ComputeOccupancy(context.Background(), 7, capacity)
		require.NoError(t, err)
		require.Len(t, view, int(capacity))
		for seat := uint32(1); seat <= capacity; seat++ {
			occupied, ok := view[seat]
			assert.True(t, ok, "seat %d missing from view", seat)
			assert.False(t, occupied)
		}
	}
}

func TestComputeOccupancyIsIdempotent(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx := context.Background()
	_, err := r.AttemptBook(ctx, 5, 1, 6, 2, 100, model.PaymentOnsite)
	require.NoError(t, err)
	first, err := r.ComputeOccupancy(ctx, 5, 6)
	require.NoError(t, err)
	second, err := r.ComputeOccupancy(ctx, 5, 6)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAttemptBookMarksSeatOccupied(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx := context.Background()

	b, err := r.AttemptBook(ctx, 9, 2, 4, 2, 42, model.PaymentPending)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, b.Status)
	assert.Equal(t, uint32(2), b.SeatNumber)
	assert.NotZero(t, b.ID)

	view, err := r.ComputeOccupancy(ctx, 9, 4)
	require.NoError(t, err)
	assert.Equal(t, map[uint32]bool{1: false, 2: true, 3: false, 4: false}, view)
}

func TestAttemptBookRejectsOutOfRangeSeatWithoutStoreAccess(t *testing.T) {
	store := &countingStore{Store: NewMemStore()}
	r := NewResolver(store, nil)
	ctx := context.Background()

	for _, seat := range []uint32{0, 5} {
		_, err := r.AttemptBook(ctx, 1, 1, 4, seat, 7, model.PaymentPending)
		assert.ErrorIs(t, err, ErrInvalidInput, "seat %d", seat)
	}
	assert.Zero(t, store.calls, "out-of-range seats must not touch the store")
}

func TestAttemptBookConflictOnOccupiedSeat(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx := context.Background()

	_, err := r.AttemptBook(ctx, 3, 1, 4, 1, 10, model.PaymentPending)
	require.NoError(t, err)
	_, err = r.AttemptBook(ctx, 3, 1, 4, 1, 11, model.PaymentPending)
	assert.ErrorIs(t, err, ErrSeatConflict)

	// Same seat in a different slot stays bookable.
	_, err = r.AttemptBook(ctx, 4, 1, 4, 1, 11, model.PaymentPending)
	assert.NoError(t, err)
}

func TestAttemptBookConflictWhenPreCheckIsStale(t *testing.T) {
	// Force both callers past the advisory pre-check by hiding occupancy,
	// so the conditional insert is the only line of defense.
	mem := NewMemStore()
	store := &blindStore{Store: mem}
	r := NewResolver(store, nil)
	ctx := context.Background()

	_, err := r.AttemptBook(ctx, 8, 1, 4, 3, 1, model.PaymentPending)
	require.NoError(t, err)
	_, err = r.AttemptBook(ctx, 8, 1, 4, 3, 2, model.PaymentPending)
	assert.ErrorIs(t, err, ErrSeatConflict)
}

func TestConcurrentAttemptsAdmitExactlyOne(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = r.AttemptBook(ctx, 1, 1, 4, 3, uint64(100+i), model.PaymentPending)
		}(i)
	}
	wg.Wait()

	winners, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, ErrSeatConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, attempts-1, conflicts)
}

func TestCancelledSeatBecomesBookableAgain(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx := context.Background()

	b, err := r.AttemptBook(ctx, 2, 1, 4, 4, 5, model.PaymentPending)
	require.NoError(t, err)
	require.NoError(t, r.TransitionStatus(ctx, b.ID, model.StatusCancelled))

	view, err := r.ComputeOccupancy(ctx, 2, 4)
	require.NoError(t, err)
	assert.False(t, view[4])

	_, err = r.AttemptBook(ctx, 2, 1, 4, 4, 6, model.PaymentPending)
	assert.NoError(t, err)
}

func TestTransitionStatus(t *testing.T) {
	r, store := newTestResolver(t)
	ctx := context.Background()

	book := func() uint64 {
		b, err := r.AttemptBook(ctx, 6, 1, 64, nextFreeSeat(t, r, 6, 64), 1, model.PaymentPending)
		require.NoError(t, err)
		return b.ID
	}

	t.Run("pending to confirmed", func(t *testing.T) {
		id := book()
		require.NoError(t, r.TransitionStatus(ctx, id, model.StatusConfirmed))
		got, ok := store.Get(id)
		require.True(t, ok)
		assert.Equal(t, model.StatusConfirmed, got.Status)
	})

	t.Run("pending to cancelled", func(t *testing.T) {
		id := book()
		require.NoError(t, r.TransitionStatus(ctx, id, model.StatusCancelled))
	})

	t.Run("confirmed is terminal", func(t *testing.T) {
		id := book()
		require.NoError(t, r.TransitionStatus(ctx, id, model.StatusConfirmed))
		assert.ErrorIs(t, r.TransitionStatus(ctx, id, model.StatusCancelled), ErrInvalidTransition)
	})

	t.Run("cancelled stays cancelled", func(t *testing.T) {
		id := book()
		require.NoError(t, r.TransitionStatus(ctx, id, model.StatusCancelled))
		assert.ErrorIs(t, r.TransitionStatus(ctx, id, model.StatusConfirmed), ErrInvalidTransition)
		got, ok := store.Get(id)
		require.True(t, ok)
		assert.Equal(t, model.StatusCancelled, got.Status)
	})

	t.Run("never back to pending", func(t *testing.T) {
		id := book()
		assert.ErrorIs(t, r.TransitionStatus(ctx, id, model.StatusPending), ErrInvalidTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		assert.ErrorIs(t, r.TransitionStatus(ctx, 999999, model.StatusConfirmed), ErrNotFound)
	})

	t.Run("garbage status", func(t *testing.T) {
		id := book()
		assert.ErrorIs(t, r.TransitionStatus(ctx, id, model.BookingStatus("paid")), ErrInvalidTransition)
	})
}

func TestStoreFailureSurfacesAsUnavailable(t *testing.T) {
	r := NewResolver(&failingStore{}, nil)
	ctx := context.Background()

	_, err := r.ComputeOccupancy(ctx, 1, 4)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = r.AttemptBook(ctx, 1, 1, 4, 2, 1, model.PaymentPending)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrSeatConflict, "store failure must stay distinct from a conflict")
}

// nextFreeSeat finds an unoccupied seat so subtests stay independent.
func nextFreeSeat(t *testing.T, r *Resolver, slotID uint64, capacity uint32) uint32 {
	t.Helper()
	view, err := r.ComputeOccupancy(context.Background(), slotID, capacity)
	require.NoError(t, err)
	for seat := uint32(1); seat <= capacity; seat++ {
		if !view[seat] {
			return seat
		}
	}
	t.Fatal("slot full")
	return 0
}

// countingStore counts every call that reaches the underlying store.
type countingStore struct {
	Store
	calls int
}

func (c *countingStore) OccupiedSeats(ctx context.Context, slotID uint64) ([]uint32, error) {
	c.calls++
	return c.Store.OccupiedSeats(ctx, slotID)
}

func (c *countingStore) InsertPending(ctx context.Context, b *model.Booking) error {
	c.calls++
	return c.Store.InsertPending(ctx, b)
}

// blindStore reports every slot as empty, simulating a stale read, while
// delegating writes to the real store.
type blindStore struct{ Store }

func (b *blindStore) OccupiedSeats(ctx context.Context, slotID uint64) ([]uint32, error) {
	return nil, nil
}

// failingStore fails every operation with an opaque error.
type failingStore struct{}

var errDown = errors.New("connection refused")

func (failingStore) OccupiedSeats(ctx context.Context, slotID uint64) ([]uint32, error) {
	return nil, errDown
}
func (failingStore) InsertPending(ctx context.Context, b *model.Booking) error { return errDown }
func (failingStore) GetStatus(ctx context.Context, bookingID uint64) (model.BookingStatus, error) {
	return "", errDown
}
func (failingStore) UpdateStatus(ctx context.Context, bookingID uint64, from, to model.BookingStatus) error {
	return errDown
}
