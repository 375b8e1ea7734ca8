package model

import "time"

// Payment is the amount record created for every booking.  No real
// settlement happens anywhere in this service: the row exists so the
// booking can reference a stable payment identity, and TransactionID
// stays null until an external processor would fill it in.
//
// Fields:
//  ID            – primary key identifier.
//  Amount        – price per person × party size.
//  Method        – payment method label, "online" for bookings made
//                  through the API.
//  TransactionID – external settlement reference (nullable).
type Payment struct {
	ID            uint64    // payments.payment_id
	Amount        float64   // payments.amount
	Method        string    // payments.payment_method
	TransactionID *string   // payments.transaction_id (nullable)
	CreatedAt     time.Time // payments.created_at
}
