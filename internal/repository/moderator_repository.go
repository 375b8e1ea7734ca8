package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/excursion-booking/internal/model"
)

// ModeratorRepo provides access to the `moderators` table.  Moderator
// profiles exist so approvals can be stamped with a stable identity on
// the excursion row.
type ModeratorRepo struct{ DB *sql.DB }

func NewModeratorRepo(db *sql.DB) *ModeratorRepo { return &ModeratorRepo{DB: db} }

// Ensure returns the moderator profile for a user, creating it on first
// approval.  Idempotent via the unique key on user_id.
func (r *ModeratorRepo) Ensure(ctx context.Context, userID uint64) (model.Moderator, error) {
	var m model.Moderator
	err := r.DB.QueryRowContext(ctx,
		"SELECT moderator_id,user_id,created_at FROM moderators WHERE user_id=? LIMIT 1",
		userID).Scan(&m.ID, &m.UserID, &m.CreatedAt)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Moderator{}, err
	}
	res, err := r.DB.ExecContext(ctx, "INSERT INTO moderators (user_id) VALUES (?)", userID)
	if err != nil {
		return model.Moderator{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Moderator{}, err
	}
	return model.Moderator{ID: uint64(id), UserID: userID}, nil
}
