package model

import "time"

// User mirrors the `users` table. Role is either USER or ADMIN and is
// embedded in issued access tokens so middleware can enforce it without a
// database round trip.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – normalized (lower-cased, trimmed) unique email.
//  PasswordHash – bcrypt hash of the password.
//  Role         – USER or ADMIN.
//  IsActive     – soft-disable flag.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken models an entry in the `refresh_tokens` table. The plain
// token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (nil if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
