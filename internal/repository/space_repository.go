// Package repository contains data access logic for the booking domain.
// This file defines repository methods for spaces. A Space is a bookable
// physical area; its capacity bounds the seat numbers accepted for every
// slot it owns.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/yourspace/yourspace-api/internal/model"
)

// ErrSpaceNotFound indicates that a space was not located in the DB.
var ErrSpaceNotFound = errors.New("space not found")

// SpaceRepo manages persistence for spaces.
type SpaceRepo struct {
	db *sql.DB
}

// NewSpaceRepo constructs a SpaceRepo with the given DB handle.
func NewSpaceRepo(db *sql.DB) *SpaceRepo {
	return &SpaceRepo{db: db}
}

// DB exposes the underlying sql.DB. It allows callers to begin
// transactions spanning multiple repositories.
func (r *SpaceRepo) DB() *sql.DB {
	return r.db
}

const spaceColumns = `id, name, type, capacity, price_cents_per_hour, description, amenities, created_at, updated_at`

// scanSpace scans one spaces row, decoding the amenities JSON column into
// a string slice. A NULL or malformed amenities value yields an empty list
// rather than an error; amenity labels are presentation data.
func scanSpace(row interface{ Scan(...interface{}) error }) (*model.Space, error) {
	var (
		s         model.Space
		desc      sql.NullString
		amenities sql.NullString
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Type, &s.Capacity, &s.PriceCentsPerHour,
		&desc, &amenities, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		s.Description = &d
	}
	if amenities.Valid && amenities.String != "" {
		_ = json.Unmarshal([]byte(amenities.String), &s.Amenities)
	}
	return &s, nil
}

// Create inserts a new space and populates the generated ID and DB-default
// timestamps on the given model.
func (r *SpaceRepo) Create(ctx context.Context, s *model.Space) error {
	var amenities interface{}
	if len(s.Amenities) > 0 {
		raw, err := json.Marshal(s.Amenities)
		if err != nil {
			return err
		}
		amenities = string(raw)
	}
	const q = `INSERT INTO spaces (name, type, capacity, price_cents_per_hour, description, amenities) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Type, s.Capacity, s.PriceCentsPerHour, s.Description, amenities)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	stored, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *stored
	return nil
}

// GetByID retrieves a space by its ID. It returns ErrSpaceNotFound when no
// matching row exists.
func (r *SpaceRepo) GetByID(ctx context.Context, id uint64) (*model.Space, error) {
	s, err := scanSpace(r.db.QueryRowContext(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpaceNotFound
		}
		return nil, err
	}
	return s, nil
}

// List returns all spaces, newest first, optionally filtered by type. An
// empty spaceType returns every space.
func (r *SpaceRepo) List(ctx context.Context, spaceType model.SpaceType) ([]model.Space, error) {
	q := `SELECT ` + spaceColumns + ` FROM spaces`
	args := []interface{}{}
	if spaceType != "" {
		q += ` WHERE type = ?`
		args = append(args, spaceType)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Space, 0)
	for rows.Next() {
		s, err := scanSpace(rows)
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

// Update overwrites the mutable columns of a space. It returns
// ErrSpaceNotFound when the row does not exist.
func (r *SpaceRepo) Update(ctx context.Context, s *model.Space) error {
	var amenities interface{}
	if len(s.Amenities) > 0 {
		raw, err := json.Marshal(s.Amenities)
		if err != nil {
			return err
		}
		amenities = string(raw)
	}
	const q = `UPDATE spaces SET name = ?, type = ?, capacity = ?, price_cents_per_hour = ?, description = ?, amenities = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Type, s.Capacity, s.PriceCentsPerHour, s.Description, amenities, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either missing or unchanged; distinguish by reading the row.
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a space. It refuses with ErrConflict while any of its
// slots still carry pending or confirmed bookings, so history behind
// active claims is never orphaned.
func (r *SpaceRepo) Delete(ctx context.Context, id uint64) error {
	const check = `SELECT COUNT(*) FROM bookings WHERE space_id = ? AND status IN ('pending','confirmed')`
	var active int
	if err := r.db.QueryRowContext(ctx, check, id).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM spaces WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSpaceNotFound
	}
	return nil
}
