package model

import (
	"errors"
	"time"
)

// ExcursionStatus enumerates the moderation lifecycle of an excursion.
// The legal transitions form a small one-directional chain with a
// single regression edge:
//
//	draft -> pending_review -> approved -> pending_review (guide edit)
//
// New excursions skip draft entirely and enter at pending_review.
// There is no rejected state; rejecting a guide is a separate flow on
// the guide profile and never touches excursion status.
type ExcursionStatus string

const (
	StatusDraft         ExcursionStatus = "draft"
	StatusPendingReview ExcursionStatus = "pending_review"
	StatusApproved      ExcursionStatus = "approved"
)

// ErrInvalidTransition is returned by Transition when the requested
// status change is not in the transition table.
var ErrInvalidTransition = errors.New("invalid excursion status transition")

// excursionTransitions is the explicit transition table.  Anything not
// listed here is illegal.
var excursionTransitions = map[ExcursionStatus][]ExcursionStatus{
	StatusDraft:         {StatusPendingReview},
	StatusPendingReview: {StatusApproved},
	StatusApproved:      {StatusPendingReview},
}

// Valid reports whether s is one of the known statuses.
func (s ExcursionStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingReview, StatusApproved:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to `to` is legal.
func (s ExcursionStatus) CanTransition(to ExcursionStatus) bool {
	for _, next := range excursionTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns `to` when the move is legal and
// ErrInvalidTransition otherwise.  Callers persist the returned status;
// the current value is never mutated in place.
func (s ExcursionStatus) Transition(to ExcursionStatus) (ExcursionStatus, error) {
	if !s.CanTransition(to) {
		return s, ErrInvalidTransition
	}
	return to, nil
}

// AfterEdit returns the status an excursion must hold after a guide
// edits any field: approved excursions regress to pending_review and
// need re-moderation, everything else keeps its current status.
func (s ExcursionStatus) AfterEdit() ExcursionStatus {
	if s == StatusApproved {
		return StatusPendingReview
	}
	return s
}

// Excursion represents a row of the `excursions` table.  Capacity is
// per (date, hour) bucket, not global: AvailableSlots caps the summed
// party sizes of non-cancelled bookings inside a single bucket, and a
// nil value means unlimited.  Occupancy is always derived from booking
// rows; no counter on this struct is ever decremented.
//
// Fields:
//  ID                     – primary key identifier.
//  Title                  – excursion title.
//  Country, City          – location used by search filters.
//  Difficulty             – free-form difficulty label (easy/medium/hard).
//  Description            – optional long text (nullable).
//  Photos                 – optional comma-separated photo URLs (nullable).
//  PricePerPerson         – price per participant.
//  AcceptedPaymentMethods – comma-separated list, e.g. "online,cash".
//  Status                 – lifecycle status, see ExcursionStatus.
//  AvailableSlots         – per-bucket seat capacity, nil = unlimited.
//  GuideID                – owning guide profile.
//  ModeratorID            – moderator who approved it (nullable until
//                           first approval).
type Excursion struct {
	ID                     uint64          // excursions.excursion_id
	Title                  string          // excursions.title
	Country                string          // excursions.country
	City                   string          // excursions.city
	Difficulty             string          // excursions.difficulty
	Description            *string         // excursions.description (nullable)
	Photos                 *string         // excursions.photos (nullable)
	PricePerPerson         float64         // excursions.price_per_person
	AcceptedPaymentMethods string          // excursions.accepted_payment_methods
	Status                 ExcursionStatus // excursions.status
	AvailableSlots         *int            // excursions.available_slots (nullable)
	GuideID                uint64          // excursions.guide_id
	ModeratorID            *uint64         // excursions.moderator_id (nullable)
	CreatedAt              time.Time       // excursions.created_at
	UpdatedAt              time.Time       // excursions.updated_at
}

// Bookable reports whether clients may book this excursion.  Only
// approved excursions are visible to the booking path.
func (e *Excursion) Bookable() bool { return e.Status == StatusApproved }
