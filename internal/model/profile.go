package model

import "time"

// Profile carries the user-editable presentation data attached to an
// account: display name, phone, avatar and UI preferences. It corresponds
// to a row in the `profiles` table keyed by the user ID.
//
// Fields:
//  UserID               – primary key, references users.id.
//  FullName             – display name shown in bookings and listings.
//  Phone                – optional contact number.
//  AvatarURL            – optional public path of the uploaded avatar.
//  Theme                – UI theme preference ("light" or "dark").
//  NotificationsEnabled – whether booking notifications are delivered.
//  CreatedAt            – creation timestamp.
//  UpdatedAt            – last update timestamp.
type Profile struct {
	UserID               uint64    `json:"user_id"`
	FullName             string    `json:"full_name"`
	Phone                *string   `json:"phone,omitempty"`
	AvatarURL            *string   `json:"avatar_url,omitempty"`
	Theme                string    `json:"theme"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
