package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/excursion-booking/internal/model"
)

// ExcursionRepo provides CRUD and lifecycle operations for excursions.
// The capacity-relevant reads come in two flavours: plain reads for
// listings, and GetForUpdateTx which takes a row-level lock so the
// admission path can count occupancy and insert a booking without a
// concurrent admission interleaving on the same excursion.
type ExcursionRepo struct{ DB *sql.DB }

func NewExcursionRepo(db *sql.DB) *ExcursionRepo { return &ExcursionRepo{DB: db} }

const excursionColumns = `excursion_id,title,country,city,difficulty,description,photos,
	price_per_person,accepted_payment_methods,status,available_slots,guide_id,moderator_id,
	created_at,updated_at`

type excursionScanner interface{ Scan(dest ...interface{}) error }

func scanExcursion(row excursionScanner) (model.Excursion, error) {
	var (
		e           model.Excursion
		description sql.NullString
		photos      sql.NullString
		slots       sql.NullInt64
		moderatorID sql.NullInt64
	)
	err := row.Scan(&e.ID, &e.Title, &e.Country, &e.City, &e.Difficulty,
		&description, &photos, &e.PricePerPerson, &e.AcceptedPaymentMethods,
		&e.Status, &slots, &e.GuideID, &moderatorID, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return e, ErrExcursionNotFound
	}
	if description.Valid {
		d := description.String
		e.Description = &d
	}
	if photos.Valid {
		p := photos.String
		e.Photos = &p
	}
	if slots.Valid {
		n := int(slots.Int64)
		e.AvailableSlots = &n
	}
	if moderatorID.Valid {
		m := uint64(moderatorID.Int64)
		e.ModeratorID = &m
	}
	return e, err
}

func nullableStr(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullableInt(n *int) interface{} {
	if n == nil {
		return nil
	}
	return *n
}

// Create inserts a new excursion and populates its generated ID.
// Status must already be set by the caller (guides create straight into
// pending_review).
func (r *ExcursionRepo) Create(ctx context.Context, e *model.Excursion) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO excursions
			(title, country, city, difficulty, description, photos,
			 price_per_person, accepted_payment_methods, status, available_slots, guide_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		e.Title, e.Country, e.City, e.Difficulty,
		nullableStr(e.Description), nullableStr(e.Photos),
		e.PricePerPerson, e.AcceptedPaymentMethods, string(e.Status),
		nullableInt(e.AvailableSlots), e.GuideID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByID fetches an excursion by id.
func (r *ExcursionRepo) GetByID(ctx context.Context, id uint64) (model.Excursion, error) {
	return scanExcursion(r.DB.QueryRowContext(ctx,
		"SELECT "+excursionColumns+" FROM excursions WHERE excursion_id=? LIMIT 1", id))
}

// GetForUpdateTx fetches an excursion inside a transaction while
// holding an exclusive row lock until the transaction resolves.
// Concurrent admissions targeting the same excursion serialize on this
// lock, which is what keeps the count-then-insert capacity check
// correct.
func (r *ExcursionRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Excursion, error) {
	return scanExcursion(tx.QueryRowContext(ctx,
		"SELECT "+excursionColumns+" FROM excursions WHERE excursion_id=? LIMIT 1 FOR UPDATE", id))
}

// Update rewrites every guide-editable field and the status in one
// statement.  The caller decides the status via the lifecycle rules
// (approved excursions regress to pending_review on edit).
func (r *ExcursionRepo) Update(ctx context.Context, e *model.Excursion) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE excursions SET
			title=?, country=?, city=?, difficulty=?, description=?, photos=?,
			price_per_person=?, accepted_payment_methods=?, available_slots=?, status=?
		WHERE excursion_id=?`,
		e.Title, e.Country, e.City, e.Difficulty,
		nullableStr(e.Description), nullableStr(e.Photos),
		e.PricePerPerson, e.AcceptedPaymentMethods,
		nullableInt(e.AvailableSlots), string(e.Status), e.ID)
	return err
}

// Approve stamps the moderator and moves the excursion to approved.
func (r *ExcursionRepo) Approve(ctx context.Context, id, moderatorID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE excursions SET status=?, moderator_id=? WHERE excursion_id=?",
		string(model.StatusApproved), moderatorID, id)
	return err
}

// SearchFilters narrows the public excursion search.  Country and city
// match case-insensitive substrings; People filters out excursions
// whose per-bucket capacity could never hold the party.
type SearchFilters struct {
	Country string
	City    string
	People  int
}

// Search returns approved excursions matching the filters, newest
// first.
func (r *ExcursionRepo) Search(ctx context.Context, f SearchFilters) ([]model.Excursion, error) {
	query := "SELECT " + excursionColumns + " FROM excursions WHERE status=?"
	args := []interface{}{string(model.StatusApproved)}
	if s := strings.TrimSpace(f.Country); s != "" {
		query += " AND country LIKE ?"
		args = append(args, "%"+s+"%")
	}
	if s := strings.TrimSpace(f.City); s != "" {
		query += " AND city LIKE ?"
		args = append(args, "%"+s+"%")
	}
	if f.People > 0 {
		query += " AND (available_slots IS NULL OR available_slots >= ?)"
		args = append(args, f.People)
	}
	query += " ORDER BY excursion_id DESC"
	return r.queryExcursions(ctx, query, args...)
}

// ListByGuide returns all excursions owned by a guide, any status,
// newest first.
func (r *ExcursionRepo) ListByGuide(ctx context.Context, guideID uint64) ([]model.Excursion, error) {
	return r.queryExcursions(ctx,
		"SELECT "+excursionColumns+" FROM excursions WHERE guide_id=? ORDER BY excursion_id DESC",
		guideID)
}

// ListByStatus returns excursions in the given status, or every
// excursion when status is empty.  Used by moderation and admin
// listings.
func (r *ExcursionRepo) ListByStatus(ctx context.Context, status model.ExcursionStatus) ([]model.Excursion, error) {
	if status == "" {
		return r.queryExcursions(ctx,
			"SELECT "+excursionColumns+" FROM excursions ORDER BY excursion_id DESC")
	}
	return r.queryExcursions(ctx,
		"SELECT "+excursionColumns+" FROM excursions WHERE status=? ORDER BY excursion_id DESC",
		string(status))
}

func (r *ExcursionRepo) queryExcursions(ctx context.Context, query string, args ...interface{}) ([]model.Excursion, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Excursion{}
	for rows.Next() {
		e, err := scanExcursion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
