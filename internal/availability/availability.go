// Package availability computes remaining seat capacity for excursion
// time buckets and projects it over the booking horizon.  Everything in
// this package is a pure function over data the caller already loaded:
// it never touches the database, so the same arithmetic backs both the
// read-only available-dates projection and the admission check that
// runs inside a booking transaction.
package availability

import (
	"fmt"
	"time"
)

// SlotHours are the fixed daily departure slots, expressed as hour-of-day
// buckets.  Capacity pools on the hour bucket, not the exact timestamp:
// a 09:15 booking and a 09:45 booking compete for the same pool as
// 09:00.  Keeping the slots on whole hours makes the projection and the
// admission check agree on bucket boundaries.
var SlotHours = []int{9, 12, 15, 18}

// HorizonDays is how many calendar days ahead of "today" the projection
// covers.
const HorizonDays = 30

// Bucket is the key over which seat capacity is pooled: one excursion
// calendar day plus one hour-of-day.  Timestamps must already be
// UTC-normalized before deriving a bucket from them.
type Bucket struct {
	Year  int
	Month time.Month
	Day   int
	Hour  int
}

// BucketFor truncates a UTC timestamp to its capacity bucket.
func BucketFor(t time.Time) Bucket {
	return Bucket{Year: t.Year(), Month: t.Month(), Day: t.Day(), Hour: t.Hour()}
}

// Occupancy maps buckets to the summed party sizes of the confirmed and
// pending bookings inside them.  Cancelled bookings must not be added.
type Occupancy map[Bucket]int

// Add folds one booking into the map.
func (o Occupancy) Add(date time.Time, people int) {
	o[BucketFor(date)] += people
}

// Remaining returns the seats left in a bucket with the given capacity
// and occupancy.  The second return value is false when capacity is
// unlimited (nil), in which case the int is meaningless.  The result is
// not clamped; callers that surface it to clients clamp at zero so a
// historically overbooked bucket reads as full rather than negative.
func Remaining(capacity *int, occupied int) (int, bool) {
	if capacity == nil {
		return 0, false
	}
	return *capacity - occupied, true
}

// Sufficient reports whether a party of the given size fits into a
// bucket.  Unlimited capacity always fits; otherwise the unclamped
// remainder must cover the whole party (no partial admission).
func Sufficient(capacity *int, occupied, people int) bool {
	remaining, limited := Remaining(capacity, occupied)
	if !limited {
		return true
	}
	return remaining >= people
}

// TimeSlot is one (date, time) cell of the projection as returned by
// the available-dates endpoint.  AvailableSlots is nil for unlimited
// excursions and clamped at zero otherwise.
type TimeSlot struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	Available      bool   `json:"available"`
	AvailableSlots *int   `json:"available_slots"`
}

// Project builds the ordered slot sequence for the next HorizonDays
// days starting at today, for a party of the given size.  It is purely
// advisory: a slot reported available can still be lost to a concurrent
// booking between this read and a later admission.
func Project(capacity *int, occ Occupancy, people int, today time.Time) []TimeSlot {
	today = today.UTC()
	slots := make([]TimeSlot, 0, HorizonDays*len(SlotHours))
	for offset := 0; offset < HorizonDays; offset++ {
		day := today.AddDate(0, 0, offset)
		for _, hour := range SlotHours {
			b := Bucket{Year: day.Year(), Month: day.Month(), Day: day.Day(), Hour: hour}
			slot := TimeSlot{
				Date: day.Format("2006-01-02"),
				Time: fmt.Sprintf("%02d:00", hour),
			}
			remaining, limited := Remaining(capacity, occ[b])
			if !limited {
				slot.Available = true
			} else {
				slot.Available = remaining >= people
				clamped := remaining
				if clamped < 0 {
					clamped = 0
				}
				slot.AvailableSlots = &clamped
			}
			slots = append(slots, slot)
		}
	}
	return slots
}
