package booking

import (
	"context"
	"sync"
	"time"

	"github.com/yourspace/yourspace-api/internal/model"
)

// MemStore is an in-memory Store used by tests and local development. It
// reproduces the production guarantee with a mutex: the unique-index check
// and the insert happen under one lock, so concurrent InsertPending calls
// for the same seat admit exactly one booking.
type MemStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]*model.Booking
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{nextID: 1, rows: make(map[uint64]*model.Booking)}
}

// OccupiedSeats returns seats of pending/confirmed bookings in the slot.
func (m *MemStore) OccupiedSeats(ctx context.Context, slotID uint64) ([]uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var seats []uint32
	for _, b := range m.rows {
		if b.SlotID == slotID && b.Status.Occupies() {
			seats = append(seats, b.SeatNumber)
		}
	}
	return seats, nil
}

// InsertPending inserts a pending booking unless a non-cancelled booking
// already holds the same (slot, seat) pair.
func (m *MemStore) InsertPending(ctx context.Context, b *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.SlotID == b.SlotID && row.SeatNumber == b.SeatNumber && row.Status.Occupies() {
			return ErrSeatConflict
		}
	}
	now := time.Now().UTC()
	stored := *b
	stored.ID = m.nextID
	stored.Status = model.StatusPending
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.nextID++
	m.rows[stored.ID] = &stored
	*b = stored
	return nil
}

// GetStatus returns the booking's current status.
func (m *MemStore) GetStatus(ctx context.Context, bookingID uint64) (model.BookingStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[bookingID]
	if !ok {
		return "", ErrNotFound
	}
	return row.Status, nil
}

// UpdateStatus applies from->to conditionally on the current status.
func (m *MemStore) UpdateStatus(ctx context.Context, bookingID uint64, from, to model.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[bookingID]
	if !ok {
		return ErrNotFound
	}
	if row.Status != from {
		return ErrInvalidTransition
	}
	row.Status = to
	row.UpdatedAt = time.Now().UTC()
	return nil
}

// Get returns a copy of a stored booking; test helper.
func (m *MemStore) Get(bookingID uint64) (model.Booking, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[bookingID]
	if !ok {
		return model.Booking{}, false
	}
	return *row, true
}
