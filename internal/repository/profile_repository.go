package repository

import (
	"context"
	"database/sql"

	"github.com/yourspace/yourspace-api/internal/model"
)

// ProfileRepo persists user profiles in the 'profiles' table. Every user
// gets at most one profile row, keyed by user_id; reads fall back to an
// empty profile so handlers never have to special-case first access.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// GetByUserID fetches a user's profile. When the user has never saved one,
// a zero-value profile with default settings is returned instead of an
// error.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (model.Profile, error) {
	var p model.Profile
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,full_name,phone,avatar_url,theme,notifications_enabled,updated_at FROM profiles WHERE user_id=? LIMIT 1",
		userID).Scan(&p.UserID, &p.FullName, &p.Phone, &p.AvatarURL, &p.Theme, &p.NotificationsEnabled, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Profile{UserID: userID, Theme: "light", NotificationsEnabled: true}, nil
	}
	return p, err
}

// Upsert writes a user's profile fields, creating the row on first save.
func (r *ProfileRepo) Upsert(ctx context.Context, p *model.Profile) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO profiles (user_id, full_name, phone, theme, notifications_enabled)
		 VALUES (?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE full_name=VALUES(full_name), phone=VALUES(phone),
		 theme=VALUES(theme), notifications_enabled=VALUES(notifications_enabled)`,
		p.UserID, p.FullName, p.Phone, p.Theme, p.NotificationsEnabled)
	return err
}

// SetAvatar records the public URL of a user's uploaded avatar image,
// creating the profile row if needed.
func (r *ProfileRepo) SetAvatar(ctx context.Context, userID uint64, url string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO profiles (user_id, avatar_url) VALUES (?,?)
		 ON DUPLICATE KEY UPDATE avatar_url=VALUES(avatar_url)`,
		userID, url)
	return err
}
