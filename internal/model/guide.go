package model

import "time"

// Guide is the per-user guide profile.  Its existence is what makes a
// user a guide; users with users.is_guide=true but no row here are
// still waiting for moderator approval.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning user (unique, one profile per user).
//  Photo     – optional profile photo URL (nullable).
//  CreatedAt – timestamp of creation.
type Guide struct {
	ID        uint64    // guides.guide_id
	UserID    uint64    // guides.user_id
	Photo     *string   // guides.photo (nullable)
	CreatedAt time.Time // guides.created_at
}
