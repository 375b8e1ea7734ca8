package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/excursion-booking/internal/model"
)

// GuideRepo provides access to the `guides` table.  A row here is what
// makes a user a guide; the approval flow creates and deletes rows, and
// guide-scoped handlers look profiles up per request as the capability
// check.
type GuideRepo struct{ DB *sql.DB }

func NewGuideRepo(db *sql.DB) *GuideRepo { return &GuideRepo{DB: db} }

// ErrGuideNotFound is returned when a user has no approved guide
// profile.  Handlers translate this into HTTP 403 on guide-scoped
// routes.
var ErrGuideNotFound = errors.New("guide profile not found")

func scanGuide(row *sql.Row) (model.Guide, error) {
	var (
		g     model.Guide
		photo sql.NullString
	)
	err := row.Scan(&g.ID, &g.UserID, &photo, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return g, ErrGuideNotFound
	}
	if photo.Valid {
		p := photo.String
		g.Photo = &p
	}
	return g, err
}

// GetByUserID fetches the guide profile owned by a user.
func (r *GuideRepo) GetByUserID(ctx context.Context, userID uint64) (model.Guide, error) {
	return scanGuide(r.DB.QueryRowContext(ctx,
		"SELECT guide_id,user_id,photo,created_at FROM guides WHERE user_id=? LIMIT 1", userID))
}

// GetByID fetches a guide profile by its own id.
func (r *GuideRepo) GetByID(ctx context.Context, id uint64) (model.Guide, error) {
	return scanGuide(r.DB.QueryRowContext(ctx,
		"SELECT guide_id,user_id,photo,created_at FROM guides WHERE guide_id=? LIMIT 1", id))
}

// Ensure returns the guide profile for a user, creating it when absent.
// The unique key on user_id keeps this idempotent: at most one profile
// per user regardless of how often approval runs.
func (r *GuideRepo) Ensure(ctx context.Context, userID uint64) (model.Guide, error) {
	g, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, ErrGuideNotFound) {
		return model.Guide{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO guides (user_id) VALUES (?)", userID)
	if err != nil {
		return model.Guide{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Guide{}, err
	}
	return model.Guide{ID: uint64(id), UserID: userID}, nil
}

// DeleteByUserID removes a user's guide profile (guide application
// rejected).  Deleting a missing profile is not an error.
func (r *GuideRepo) DeleteByUserID(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM guides WHERE user_id=?", userID)
	return err
}

// UpdatePhoto replaces the guide's profile photo.
func (r *GuideRepo) UpdatePhoto(ctx context.Context, guideID uint64, photo string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE guides SET photo=? WHERE guide_id=?", photo, guideID)
	return err
}

// GuideWithUser joins a guide profile with its user's contact fields
// for moderator listings.
type GuideWithUser struct {
	GuideID   uint64  `json:"guide_id"`
	UserID    uint64  `json:"user_id"`
	Photo     *string `json:"photo"`
	UserName  string  `json:"user_name"`
	UserEmail string  `json:"user_email"`
	UserPhone *string `json:"user_phone"`
	Approved  bool    `json:"is_guide_approved"`
}

// ListWithUsers returns every approved guide with user contact data,
// newest first.
func (r *GuideRepo) ListWithUsers(ctx context.Context) ([]GuideWithUser, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT g.guide_id, g.user_id, g.photo, u.name, u.email, u.phone
		FROM guides g
		JOIN users u ON u.user_id = g.user_id
		ORDER BY g.guide_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GuideWithUser{}
	for rows.Next() {
		var (
			g     GuideWithUser
			photo sql.NullString
			phone sql.NullString
		)
		if err := rows.Scan(&g.GuideID, &g.UserID, &photo, &g.UserName, &g.UserEmail, &phone); err != nil {
			return nil, err
		}
		if photo.Valid {
			p := photo.String
			g.Photo = &p
		}
		if phone.Valid {
			p := phone.String
			g.UserPhone = &p
		}
		g.Approved = true
		out = append(out, g)
	}
	return out, rows.Err()
}

// ListPendingUsers returns users who asked to become guides but have no
// guide profile yet, i.e. the moderator approval queue.
func (r *GuideRepo) ListPendingUsers(ctx context.Context) ([]GuideWithUser, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT u.user_id, u.name, u.email, u.phone
		FROM users u
		LEFT JOIN guides g ON g.user_id = u.user_id
		WHERE u.is_guide = TRUE AND g.guide_id IS NULL
		ORDER BY u.user_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GuideWithUser{}
	for rows.Next() {
		var (
			g     GuideWithUser
			phone sql.NullString
		)
		if err := rows.Scan(&g.UserID, &g.UserName, &g.UserEmail, &phone); err != nil {
			return nil, err
		}
		if phone.Valid {
			p := phone.String
			g.UserPhone = &p
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
