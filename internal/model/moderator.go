package model

import "time"

// Moderator is the per-user moderator profile.  When a moderator
// approves an excursion their moderator ID is stamped onto the
// excursion for audit, which is why the profile exists as a row and
// not just as a role string.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning user (unique).
//  CreatedAt – timestamp of creation.
type Moderator struct {
	ID        uint64    // moderators.moderator_id
	UserID    uint64    // moderators.user_id
	CreatedAt time.Time // moderators.created_at
}
