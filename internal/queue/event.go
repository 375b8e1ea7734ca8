// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully admitted.
// It carries enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID      uint64  `json:"booking_id"`
	ExcursionID    uint64  `json:"excursion_id"`
	ExcursionTitle string  `json:"excursion_title"`
	City           string  `json:"city"`
	Country        string  `json:"country"`
	ClientID       uint64  `json:"client_id"`
	Date           string  `json:"date"`
	NumberOfPeople int     `json:"number_of_people"`
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"payment_method"`
	ConfirmedAt    string  `json:"confirmed_at"`
}
