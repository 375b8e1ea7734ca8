package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/excursion-booking/internal/model"
	"github.com/iliyamo/excursion-booking/internal/utils"
)

// UserRepo provides access to the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a user and returns its ID.  Email is normalized to
// lower case; isGuide records the intent to work as a guide, the actual
// guide profile is created later by moderator approval.
func (r *UserRepo) Create(ctx context.Context, name, email, phone, password, role string, isGuide bool, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var phoneVal interface{}
	if p := strings.TrimSpace(phone); p != "" {
		phoneVal = p
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, phone, password_hash, role, is_guide) VALUES (?,?,?,?,?,?)",
		name, email, phoneVal, hash, role, isGuide)
	if err != nil {
		// MySQL duplicate-key error on the unique email index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const userColumns = "user_id,name,email,phone,password_hash,role,is_active,is_guide,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u     model.User
		phone sql.NullString
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &phone, &u.PasswordHash,
		&u.Role, &u.IsActive, &u.IsGuide, &u.CreatedAt, &u.UpdatedAt)
	if phone.Valid {
		p := phone.String
		u.Phone = &p
	}
	return u, err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE user_id=? LIMIT 1", id))
}

// SetGuideFlag flips the is_guide aspiration flag, used by the guide
// approval flow.
func (r *UserRepo) SetGuideFlag(ctx context.Context, id uint64, isGuide bool) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_guide=? WHERE user_id=?", isGuide, id)
	return err
}

// PromoteToModerator sets the MODERATOR role on a user identified by
// email.  Used by the makemoderator maintenance command.
func (r *UserRepo) PromoteToModerator(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=? WHERE email=?", model.RoleModerator, email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
