package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/yourspace/yourspace-api/internal/booking"
	"github.com/yourspace/yourspace-api/internal/model"
)

// BookingRepo provides persistence for bookings. It is the production
// implementation of the resolver's Store interface: the atomic
// insert-if-absent is carried by the bookings table's unique key on
// (slot_id, active_seat), where active_seat is a generated column that is
// NULL for cancelled rows. Cancelled bookings therefore never collide and
// the seat frees up the moment a booking is cancelled, while two racing
// inserts for a live seat can never both commit.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, user_id, space_id, slot_id, seat_number, status, payment_status, created_at, updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (*model.Booking, error) {
	var b model.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.SpaceID, &b.SlotID, &b.SeatNumber,
		&b.Status, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// OccupiedSeats returns the seat numbers of all pending or confirmed
// bookings in the slot. Ordering by seat number gives deterministic output.
func (r *BookingRepo) OccupiedSeats(ctx context.Context, slotID uint64) ([]uint32, error) {
	const q = `SELECT seat_number FROM bookings
	           WHERE slot_id = ? AND status IN ('pending','confirmed')
	           ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, slotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var seats []uint32
	for rows.Next() {
		var seat uint32
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// InsertPending inserts a new pending booking. The unique key on
// (slot_id, active_seat) is the serialization point: when a concurrent
// attempt already claimed the seat, MySQL rejects the insert with a
// duplicate-entry error (1062) which is mapped to booking.ErrSeatConflict.
// On success the stored row is read back to populate ID and timestamps.
func (r *BookingRepo) InsertPending(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, space_id, slot_id, seat_number, status, payment_status)
	           VALUES (?, ?, ?, ?, 'pending', ?)`
	res, err := r.db.ExecContext(ctx, q, b.UserID, b.SpaceID, b.SlotID, b.SeatNumber, b.PaymentStatus)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return booking.ErrSeatConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	stored, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *stored
	return nil
}

// GetStatus returns the current status of a booking.
func (r *BookingRepo) GetStatus(ctx context.Context, bookingID uint64) (model.BookingStatus, error) {
	var status model.BookingStatus
	err := r.db.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = ?`, bookingID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", booking.ErrNotFound
		}
		return "", err
	}
	return status, nil
}

// UpdateStatus moves a booking from `from` to `to`. The WHERE clause makes
// the update conditional on the expected current status so that two
// concurrent transitions can never both apply; when zero rows change, the
// row is re-read to tell a missing booking from a lost race.
func (r *BookingRepo) UpdateStatus(ctx context.Context, bookingID uint64, from, to model.BookingStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ? AND status = ?`,
		to, bookingID, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetStatus(ctx, bookingID); err != nil {
			return err // booking.ErrNotFound or a store failure
		}
		return booking.ErrInvalidTransition
	}
	return nil
}

// SetPaymentStatus records the payment state of a booking. It is called
// alongside a confirm transition (paid online) or by an admin confirming
// an onsite payment.
func (r *BookingRepo) SetPaymentStatus(ctx context.Context, bookingID uint64, p model.PaymentStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = ? WHERE id = ?`, p, bookingID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetStatus(ctx, bookingID); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a booking by its ID, returning booking.ErrNotFound
// when no matching row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// BookingDetail extends a booking with the slot window and space name it
// belongs to. It is returned by ListByUser for the dashboard and profile
// views, which render bookings with their human context.
type BookingDetail struct {
	model.Booking
	SpaceName string `json:"space_name"`
	SlotDate  string `json:"slot_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ListByUser returns all bookings made by a user, newest first, each
// joined with its slot window and space name. When the user has no
// bookings an empty slice is returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.user_id, b.space_id, b.slot_id, b.seat_number, b.status, b.payment_status, b.created_at, b.updated_at,
	                  sp.name,
	                  DATE_FORMAT(sl.date,'%Y-%m-%d'), TIME_FORMAT(sl.start_time,'%H:%i'), TIME_FORMAT(sl.end_time,'%H:%i')
	           FROM bookings b
	           JOIN spaces sp ON sp.id = b.space_id
	           JOIN slots sl ON sl.id = b.slot_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.SpaceID, &d.SlotID, &d.SeatNumber,
			&d.Status, &d.PaymentStatus, &d.CreatedAt, &d.UpdatedAt,
			&d.SpaceName, &d.SlotDate, &d.StartTime, &d.EndTime); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SlotBooking is a booking row as shown to administrators inspecting a
// slot: the seat, status and who holds it.
type SlotBooking struct {
	ID            uint64              `json:"id"`
	UserID        uint64              `json:"user_id"`
	SeatNumber    uint32              `json:"seat_number"`
	Status        model.BookingStatus `json:"status"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	BookerName    string              `json:"booker_name"`
}

// ListBySlot returns all bookings in a slot (cancelled ones included, so
// admins see history) joined with the booker's profile name. Users without
// a profile row appear with an empty name.
func (r *BookingRepo) ListBySlot(ctx context.Context, slotID uint64) ([]SlotBooking, error) {
	const q = `SELECT b.id, b.user_id, b.seat_number, b.status, b.payment_status,
	                  COALESCE(p.full_name, '')
	           FROM bookings b
	           LEFT JOIN profiles p ON p.user_id = b.user_id
	           WHERE b.slot_id = ?
	           ORDER BY b.seat_number, b.created_at`
	rows, err := r.db.QueryContext(ctx, q, slotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]SlotBooking, 0)
	for rows.Next() {
		var sb SlotBooking
		if err := rows.Scan(&sb.ID, &sb.UserID, &sb.SeatNumber, &sb.Status, &sb.PaymentStatus, &sb.BookerName); err != nil {
			return nil, err
		}
		out = append(out, sb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
