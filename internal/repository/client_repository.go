package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/excursion-booking/internal/model"
)

// ClientRepo provides access to the `clients` table.  Client profiles
// are created lazily on first booking; the unique key on user_id
// guarantees at most one profile per user.
type ClientRepo struct{ DB *sql.DB }

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{DB: db} }

// GetByUserID fetches a user's client profile.  sql.ErrNoRows when the
// user never booked anything.
func (r *ClientRepo) GetByUserID(ctx context.Context, userID uint64) (model.Client, error) {
	var c model.Client
	err := r.DB.QueryRowContext(ctx,
		"SELECT client_id,user_id,created_at FROM clients WHERE user_id=? LIMIT 1",
		userID).Scan(&c.ID, &c.UserID, &c.CreatedAt)
	return c, err
}

// EnsureTx resolves or lazily creates the client profile for a user
// inside the admission transaction, returning the client ID.  The
// select-then-insert stays race-free because callers already hold the
// excursion row lock, and the unique key on user_id backstops any
// insert that still collides.
func (r *ClientRepo) EnsureTx(ctx context.Context, tx *sql.Tx, userID uint64) (uint64, error) {
	var id uint64
	err := tx.QueryRowContext(ctx,
		"SELECT client_id FROM clients WHERE user_id=? LIMIT 1", userID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, "INSERT INTO clients (user_id) VALUES (?)", userID)
	if err != nil {
		return 0, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(newID), nil
}
