package model

import "time"

// Client is the per-user client profile referenced by bookings.  The
// profile is created lazily the first time a user books an excursion;
// there is at most one row per user (unique key on user_id), so
// repeated bookings by the same user reuse the same profile.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning user (unique).
//  CreatedAt – timestamp of creation.
type Client struct {
	ID        uint64    // clients.client_id
	UserID    uint64    // clients.user_id
	CreatedAt time.Time // clients.created_at
}
