package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yourspace/yourspace-api/internal/model"
)

// ErrSlotNotFound indicates that a slot was not located in the DB.
var ErrSlotNotFound = errors.New("slot not found")

// SlotRepo manages persistence for slots. Slots are created and deleted by
// administrators only; users read them when choosing a booking window.
// Date and time columns are stored as DATE and TIME values and surfaced as
// "2006-01-02" / "15:04" strings, matching what the clients enter.
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo constructs a SlotRepo with the given DB handle.
func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

const slotColumns = `id, space_id, DATE_FORMAT(date,'%Y-%m-%d'), TIME_FORMAT(start_time,'%H:%i'), TIME_FORMAT(end_time,'%H:%i'), capacity, created_at, updated_at`

func scanSlot(row interface{ Scan(...interface{}) error }) (*model.Slot, error) {
	var (
		s        model.Slot
		capacity sql.NullInt64
	)
	if err := row.Scan(&s.ID, &s.SpaceID, &s.Date, &s.StartTime, &s.EndTime,
		&capacity, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if capacity.Valid && capacity.Int64 > 0 {
		c := uint32(capacity.Int64)
		s.Capacity = &c
	}
	return &s, nil
}

// Create inserts a new slot for a space and populates the generated ID and
// timestamps on the given model. Capacity may be nil, in which case the
// space's own capacity applies to bookings in this slot.
func (r *SlotRepo) Create(ctx context.Context, s *model.Slot) error {
	var capacity interface{}
	if s.Capacity != nil {
		capacity = *s.Capacity
	}
	const q = `INSERT INTO slots (space_id, date, start_time, end_time, capacity) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.SpaceID, s.Date, s.StartTime, s.EndTime, capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	stored, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *stored
	return nil
}

// GetByID retrieves a slot by its ID, returning ErrSlotNotFound when no
// matching row exists.
func (r *SlotRepo) GetByID(ctx context.Context, id uint64) (*model.Slot, error) {
	s, err := scanSlot(r.db.QueryRowContext(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListBySpace returns all slots of a space ordered by date and start time.
// When date is non-empty ("2006-01-02") only that day's slots are
// returned; this backs the date picker on the space page.
func (r *SlotRepo) ListBySpace(ctx context.Context, spaceID uint64, date string) ([]model.Slot, error) {
	q := `SELECT ` + slotColumns + ` FROM slots WHERE space_id = ?`
	args := []interface{}{spaceID}
	if date != "" {
		q += ` AND date = ?`
		args = append(args, date)
	}
	q += ` ORDER BY date, start_time`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a slot. It refuses with ErrConflict while the slot still
// carries pending or confirmed bookings and returns ErrSlotNotFound when
// the slot does not exist.
func (r *SlotRepo) Delete(ctx context.Context, id uint64) error {
	const check = `SELECT COUNT(*) FROM bookings WHERE slot_id = ? AND status IN ('pending','confirmed')`
	var active int
	if err := r.db.QueryRowContext(ctx, check, id).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSlotNotFound
	}
	return nil
}
