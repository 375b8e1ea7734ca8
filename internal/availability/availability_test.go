package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestBucketForPoolsWithinHour(t *testing.T) {
	a := BucketFor(time.Date(2026, 7, 14, 9, 15, 0, 0, time.UTC))
	b := BucketFor(time.Date(2026, 7, 14, 9, 45, 0, 0, time.UTC))
	c := BucketFor(time.Date(2026, 7, 14, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, a, b, "bookings inside the same hour share a bucket")
	assert.NotEqual(t, a, c, "different hours are different buckets")
}

func TestOccupancyAddAccumulates(t *testing.T) {
	occ := Occupancy{}
	date := time.Date(2026, 7, 14, 9, 15, 0, 0, time.UTC)
	occ.Add(date, 3)
	occ.Add(date.Add(30*time.Minute), 2)

	assert.Equal(t, 5, occ[BucketFor(date)])
}

func TestRemaining(t *testing.T) {
	tests := []struct {
		name     string
		capacity *int
		occupied int
		want     int
		limited  bool
	}{
		{name: "unlimited", capacity: nil, occupied: 100, want: 0, limited: false},
		{name: "free bucket", capacity: intPtr(20), occupied: 0, want: 20, limited: true},
		{name: "partially booked", capacity: intPtr(20), occupied: 17, want: 3, limited: true},
		{name: "exactly full", capacity: intPtr(20), occupied: 20, want: 0, limited: true},
		{name: "overbooked goes negative", capacity: intPtr(20), occupied: 25, want: -5, limited: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, limited := Remaining(tt.capacity, tt.occupied)
			assert.Equal(t, tt.limited, limited)
			if limited {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSufficient(t *testing.T) {
	tests := []struct {
		name     string
		capacity *int
		occupied int
		people   int
		want     bool
	}{
		{name: "unlimited always fits", capacity: nil, occupied: 10000, people: 50, want: true},
		{name: "party fits remainder", capacity: intPtr(20), occupied: 17, people: 3, want: true},
		{name: "party exceeds remainder", capacity: intPtr(20), occupied: 18, people: 3, want: false},
		{name: "no partial admission", capacity: intPtr(20), occupied: 19, people: 2, want: false},
		{name: "full bucket rejects single", capacity: intPtr(20), occupied: 20, people: 1, want: false},
		{name: "overbooked bucket rejects", capacity: intPtr(20), occupied: 25, people: 1, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sufficient(tt.capacity, tt.occupied, tt.people))
		})
	}
}

func TestProjectShapeAndOrder(t *testing.T) {
	today := time.Date(2026, 7, 14, 11, 30, 0, 0, time.UTC)
	slots := Project(intPtr(20), Occupancy{}, 1, today)

	require.Len(t, slots, HorizonDays*len(SlotHours))

	// First day's slots come first, in fixed hour order.
	assert.Equal(t, "2026-07-14", slots[0].Date)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "12:00", slots[1].Time)
	assert.Equal(t, "15:00", slots[2].Time)
	assert.Equal(t, "18:00", slots[3].Time)
	assert.Equal(t, "2026-07-15", slots[4].Date)

	// Last cell is the 18:00 slot 29 days out.
	last := slots[len(slots)-1]
	assert.Equal(t, "2026-08-12", last.Date)
	assert.Equal(t, "18:00", last.Time)
}

func TestProjectUnlimitedCapacity(t *testing.T) {
	today := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	occ := Occupancy{}
	occ.Add(time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC), 500)

	for _, slot := range Project(nil, occ, 40, today) {
		assert.True(t, slot.Available)
		assert.Nil(t, slot.AvailableSlots, "unlimited excursions report no count")
	}
}

func TestProjectSubtractsOccupancyPerBucket(t *testing.T) {
	today := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	occ := Occupancy{}
	occ.Add(time.Date(2026, 7, 14, 9, 15, 0, 0, time.UTC), 12)
	occ.Add(time.Date(2026, 7, 14, 9, 45, 0, 0, time.UTC), 5)

	slots := Project(intPtr(20), occ, 4, today)

	nine := slots[0]
	require.NotNil(t, nine.AvailableSlots)
	assert.Equal(t, 3, *nine.AvailableSlots, "12+5 occupied out of 20")
	assert.False(t, nine.Available, "party of 4 does not fit in 3")

	noon := slots[1]
	require.NotNil(t, noon.AvailableSlots)
	assert.Equal(t, 20, *noon.AvailableSlots, "other buckets unaffected")
	assert.True(t, noon.Available)
}

func TestProjectClampsOverbookedBucketToZero(t *testing.T) {
	today := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	occ := Occupancy{}
	occ.Add(time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC), 27)

	slots := Project(intPtr(20), occ, 1, today)

	nine := slots[0]
	require.NotNil(t, nine.AvailableSlots)
	assert.Equal(t, 0, *nine.AvailableSlots, "overbooked bucket reads as full, never negative")
	assert.False(t, nine.Available)
}

// The projection and the admission gate must agree: any slot the
// projection reports available for a party must also pass Sufficient
// with the same inputs, and vice versa.
func TestProjectionAgreesWithSufficient(t *testing.T) {
	capacity := intPtr(10)
	today := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	occ := Occupancy{}
	occ.Add(time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC), 7)
	occ.Add(time.Date(2026, 7, 14, 12, 0, 0, 0, time.UTC), 10)
	occ.Add(time.Date(2026, 7, 15, 15, 0, 0, 0, time.UTC), 13)

	for people := 1; people <= 4; people++ {
		slots := Project(capacity, occ, people, today)
		for i, slot := range slots {
			day := today.AddDate(0, 0, i/len(SlotHours))
			b := Bucket{Year: day.Year(), Month: day.Month(), Day: day.Day(), Hour: SlotHours[i%len(SlotHours)]}
			assert.Equal(t, Sufficient(capacity, occ[b], people), slot.Available,
				"slot %s %s people=%d", slot.Date, slot.Time, people)
		}
	}
}
