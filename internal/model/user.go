package model

import "time"

// Role names stored in the `users.role` column and carried in the JWT
// "role" claim.  Guides are not a role of their own: a guide is a
// regular client whose guide profile has been approved (see Guide).
const (
	RoleClient    = "CLIENT"
	RoleModerator = "MODERATOR"
)

// User represents a row of the `users` table.  The same account may own
// a client profile, a guide profile and a moderator profile; those live
// in their own tables and reference the user by ID.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name shown to guides and moderators.
//  Email        – unique email address, stored lower-cased.
//  Phone        – optional contact phone (nullable).
//  PasswordHash – bcrypt hashed password.
//  Role         – CLIENT or MODERATOR.
//  IsActive     – whether the account is active.
//  IsGuide      – the user asked to work as a guide; the actual guide
//                 profile only exists once a moderator approves it.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.user_id
	Name         string    // users.name
	Email        string    // users.email
	Phone        *string   // users.phone (nullable)
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	IsGuide      bool      // users.is_guide
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user; only the SHA-256 hash of the token
// value is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
