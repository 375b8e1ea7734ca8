// Package booking holds the admission rules for booking requests: the
// validations and capacity decision that run before any row is written.
// The handler wires these into a single database transaction; the
// functions here stay pure so the decision path can be tested without a
// database and is guaranteed to match the availability projection.
package booking

import (
	"errors"
	"time"

	"github.com/iliyamo/excursion-booking/internal/availability"
)

// Sentinel errors surfaced by the admission path.  Handlers map them to
// HTTP statuses: ErrCapacityExceeded -> 400, ErrPartySize and
// ErrBadDate -> 422.
var (
	ErrCapacityExceeded = errors.New("no available slots for the chosen date and time")
	ErrPartySize        = errors.New("number_of_people must be at least 1")
	ErrBadDate          = errors.New("date must be an ISO 8601 timestamp")
)

// naiveLayouts are accepted for timezone-less timestamps.  Per the
// storage contract such values are assumed to already be UTC; they are
// never reinterpreted as some local time.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseDate parses a requested booking timestamp.  Timezone-aware
// values (RFC 3339) are converted to UTC; naive values are taken as UTC
// as-is.  The returned time is always UTC so bucket derivation and the
// stored DATETIME agree.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadDate
}

// ValidateParty rejects party sizes below 1 before anything touches the
// store.
func ValidateParty(people int) error {
	if people < 1 {
		return ErrPartySize
	}
	return nil
}

// Decide is the capacity gate of the admission controller.  Occupied is
// the summed party size of confirmed+pending bookings already in the
// requested bucket, counted inside the same transaction that will
// insert the new booking.  Unlimited capacity never rejects.
func Decide(capacity *int, occupied, people int) error {
	if !availability.Sufficient(capacity, occupied, people) {
		return ErrCapacityExceeded
	}
	return nil
}

// Amount computes the payment amount for a booking.
func Amount(pricePerPerson float64, people int) float64 {
	return pricePerPerson * float64(people)
}
