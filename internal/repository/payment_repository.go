package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/excursion-booking/internal/model"
)

// PaymentRepo provides access to the `payments` table.  Payments are
// only ever created inside the admission transaction, before the
// booking row that references them, so a booking can never commit
// without its amount record.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// CreateTx inserts a payment within the admission transaction and
// populates the generated ID the booking insert needs.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO payments (amount, payment_method) VALUES (?,?)",
		p.Amount, p.Method)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}
