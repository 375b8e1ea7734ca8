package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/excursion-booking/internal/availability"
	"github.com/iliyamo/excursion-booking/internal/model"
)

// BookingRepo provides access to the `bookings` table and the occupancy
// queries of the capacity ledger.  Occupancy is never cached or stored
// as a counter anywhere: every check recomputes the sum over committed
// booking rows, so cancellation releases seats with no separate
// decrement path and there is no counter to drift.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// activeStatuses are the booking statuses that occupy seats.
const activeStatuses = "'confirmed','pending'"

// OccupancyTx sums the party sizes of active bookings in one capacity
// bucket, inside the caller's transaction.  The admission path calls
// this while holding the excursion row lock so the count cannot be
// invalidated by a concurrent insert before the booking commits.
func (r *BookingRepo) OccupancyTx(ctx context.Context, tx *sql.Tx, excursionID uint64, date time.Time) (int, error) {
	var occupied int
	err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(number_of_people), 0)
		FROM bookings
		WHERE excursion_id = ?
		  AND DATE(date) = DATE(?)
		  AND HOUR(date) = HOUR(?)
		  AND status IN (`+activeStatuses+`)`,
		excursionID, date, date).Scan(&occupied)
	return occupied, err
}

// OccupancyRange loads every active booking of an excursion between the
// two dates (inclusive, by calendar day) and folds them into an
// occupancy map for the availability projection.  Read-only; safe to
// run concurrently with admissions, at the cost of the projection being
// advisory.
func (r *BookingRepo) OccupancyRange(ctx context.Context, excursionID uint64, from, to time.Time) (availability.Occupancy, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT date, number_of_people
		FROM bookings
		WHERE excursion_id = ?
		  AND DATE(date) >= DATE(?)
		  AND DATE(date) <= DATE(?)
		  AND status IN (`+activeStatuses+`)`,
		excursionID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occ := availability.Occupancy{}
	for rows.Next() {
		var (
			date   time.Time
			people int
		)
		if err := rows.Scan(&date, &people); err != nil {
			return nil, err
		}
		occ.Add(date, people)
	}
	return occ, rows.Err()
}

// CreateTx inserts a booking within the admission transaction and
// populates the generated ID.  The payment row must already exist in
// the same transaction; both commit or neither does.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO bookings
			(excursion_id, client_id, payment_id, date, number_of_people, status, payment_status)
		VALUES (?,?,?,?,?,?,?)`,
		b.ExcursionID, b.ClientID, b.PaymentID, b.Date, b.NumberOfPeople,
		b.Status, b.PaymentStatus)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// CancelOwn marks a client's booking cancelled.  The seat release is
// implicit: cancelled rows stop matching the occupancy queries.
// Returns ErrBookingNotFound when the booking does not exist or belongs
// to a different client.
func (r *BookingRepo) CancelOwn(ctx context.Context, bookingID, clientID uint64) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bookings SET status=?
		WHERE booking_id=? AND client_id=? AND status<>?`,
		model.BookingCancelled, bookingID, clientID, model.BookingCancelled)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// BookingDetail is a booking joined with its excursion and payment for
// client-facing listings.
type BookingDetail struct {
	ID               uint64    `json:"booking_id"`
	ExcursionID      uint64    `json:"excursion_id"`
	ExcursionTitle   string    `json:"excursion_title"`
	ExcursionCity    string    `json:"excursion_city"`
	ExcursionCountry string    `json:"excursion_country"`
	Date             time.Time `json:"date"`
	NumberOfPeople   int       `json:"number_of_people"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	Amount           float64   `json:"amount"`
	PaymentMethod    string    `json:"payment_method"`
}

// ListByClient returns a client's bookings with excursion and payment
// context, most recent excursion date first.
func (r *BookingRepo) ListByClient(ctx context.Context, clientID uint64) ([]BookingDetail, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.booking_id, b.excursion_id, e.title, e.city, e.country,
		       b.date, b.number_of_people, b.status, b.payment_status,
		       p.amount, p.payment_method
		FROM bookings b
		JOIN excursions e ON e.excursion_id = b.excursion_id
		JOIN payments p ON p.payment_id = b.payment_id
		WHERE b.client_id = ?
		ORDER BY b.date DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BookingDetail{}
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.ExcursionID, &d.ExcursionTitle, &d.ExcursionCity,
			&d.ExcursionCountry, &d.Date, &d.NumberOfPeople, &d.Status,
			&d.PaymentStatus, &d.Amount, &d.PaymentMethod); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetOwnerClientID returns the client_id of a booking, used for
// ownership checks before cancellation.
func (r *BookingRepo) GetOwnerClientID(ctx context.Context, bookingID uint64) (uint64, error) {
	var clientID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT client_id FROM bookings WHERE booking_id=? LIMIT 1", bookingID).Scan(&clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrBookingNotFound
	}
	return clientID, err
}

// CalendarEntry is one row of a guide's booking calendar, including the
// client's contact details so the guide can reach the group.
type CalendarEntry struct {
	BookingID      uint64    `json:"booking_id"`
	ExcursionID    uint64    `json:"excursion_id"`
	ExcursionTitle string    `json:"excursion_title"`
	Date           time.Time `json:"date"`
	NumberOfPeople int       `json:"number_of_people"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	ClientName     string    `json:"client_name"`
	ClientEmail    string    `json:"client_email"`
	ClientPhone    *string   `json:"client_phone"`
}

// ListForGuide returns the active bookings across all of a guide's
// excursions, soonest first.
func (r *BookingRepo) ListForGuide(ctx context.Context, guideID uint64) ([]CalendarEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.booking_id, e.excursion_id, e.title, b.date, b.number_of_people,
		       b.status, b.payment_status, u.name, u.email, u.phone
		FROM bookings b
		JOIN excursions e ON e.excursion_id = b.excursion_id
		JOIN clients c ON c.client_id = b.client_id
		JOIN users u ON u.user_id = c.user_id
		WHERE e.guide_id = ?
		  AND b.status IN (`+activeStatuses+`)
		ORDER BY b.date ASC`, guideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CalendarEntry{}
	for rows.Next() {
		var (
			entry CalendarEntry
			phone sql.NullString
		)
		if err := rows.Scan(&entry.BookingID, &entry.ExcursionID, &entry.ExcursionTitle,
			&entry.Date, &entry.NumberOfPeople, &entry.Status, &entry.PaymentStatus,
			&entry.ClientName, &entry.ClientEmail, &phone); err != nil {
			return nil, err
		}
		if phone.Valid {
			p := phone.String
			entry.ClientPhone = &p
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// AdminBooking is a booking joined with excursion and client data for
// the admin listing.
type AdminBooking struct {
	BookingID      uint64    `json:"booking_id"`
	Date           time.Time `json:"date"`
	NumberOfPeople int       `json:"number_of_people"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	ExcursionID    uint64    `json:"excursion_id"`
	ExcursionTitle string    `json:"excursion_title"`
	ClientID       uint64    `json:"client_id"`
	ClientName     string    `json:"client_name"`
	ClientEmail    string    `json:"client_email"`
	TotalAmount    float64   `json:"total_amount"`
}

const adminBookingQuery = `
	SELECT b.booking_id, b.date, b.number_of_people, b.status, b.payment_status,
	       e.excursion_id, e.title, c.client_id, u.name, u.email, p.amount
	FROM bookings b
	JOIN excursions e ON e.excursion_id = b.excursion_id
	JOIN clients c ON c.client_id = b.client_id
	JOIN users u ON u.user_id = c.user_id
	JOIN payments p ON p.payment_id = b.payment_id`

func scanAdminBooking(rows interface{ Scan(...interface{}) error }) (AdminBooking, error) {
	var a AdminBooking
	err := rows.Scan(&a.BookingID, &a.Date, &a.NumberOfPeople, &a.Status, &a.PaymentStatus,
		&a.ExcursionID, &a.ExcursionTitle, &a.ClientID, &a.ClientName, &a.ClientEmail,
		&a.TotalAmount)
	return a, err
}

// ListAll returns every booking with excursion and client context,
// newest date first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]AdminBooking, error) {
	rows, err := r.DB.QueryContext(ctx, adminBookingQuery+" ORDER BY b.date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AdminBooking{}
	for rows.Next() {
		a, err := scanAdminBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetAdminByID returns one booking with full context.
func (r *BookingRepo) GetAdminByID(ctx context.Context, bookingID uint64) (AdminBooking, error) {
	a, err := scanAdminBooking(r.DB.QueryRowContext(ctx,
		adminBookingQuery+" WHERE b.booking_id = ? LIMIT 1", bookingID))
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrBookingNotFound
	}
	return a, err
}
