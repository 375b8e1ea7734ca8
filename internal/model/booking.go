package model

import "time"

// Booking status values.  Confirmed and pending bookings occupy seats
// in their capacity bucket; cancelled bookings release them simply by
// no longer matching the occupancy query.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Payment status values carried on the booking row.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Booking represents a row of the `bookings` table.  Date is stored as
// a UTC-naive DATETIME; incoming timezone-aware values are converted to
// UTC before insert and naive values are assumed to already be UTC.
//
// Fields:
//  ID             – primary key identifier.
//  ExcursionID    – booked excursion.
//  ClientID       – booking client profile.
//  PaymentID      – payment record created together with the booking.
//  Date           – excursion start, normalized to UTC.
//  NumberOfPeople – party size, at least 1.
//  Status         – pending | confirmed | cancelled.
//  PaymentStatus  – pending | paid | failed.
type Booking struct {
	ID             uint64    // bookings.booking_id
	ExcursionID    uint64    // bookings.excursion_id
	ClientID       uint64    // bookings.client_id
	PaymentID      uint64    // bookings.payment_id
	Date           time.Time // bookings.date
	NumberOfPeople int       // bookings.number_of_people
	Status         string    // bookings.status
	PaymentStatus  string    // bookings.payment_status
	CreatedAt      time.Time // bookings.created_at
}
