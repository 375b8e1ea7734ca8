package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		err   bool
	}{
		{
			name:  "rfc3339 utc",
			input: "2026-07-14T09:00:00Z",
			want:  time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "aware offset converts to utc",
			input: "2026-07-14T12:00:00+03:00",
			want:  time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "naive with seconds assumed utc",
			input: "2026-07-14T09:00:00",
			want:  time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "naive without seconds",
			input: "2026-07-14T09:00",
			want:  time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "naive with space separator",
			input: "2026-07-14 09:00:00",
			want:  time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC),
		},
		{name: "date only rejected", input: "2026-07-14", err: true},
		{name: "garbage rejected", input: "next tuesday", err: true},
		{name: "empty rejected", input: "", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.err {
				assert.ErrorIs(t, err, ErrBadDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestValidateParty(t *testing.T) {
	assert.NoError(t, ValidateParty(1))
	assert.NoError(t, ValidateParty(40))
	assert.ErrorIs(t, ValidateParty(0), ErrPartySize)
	assert.ErrorIs(t, ValidateParty(-3), ErrPartySize)
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		capacity *int
		occupied int
		people   int
		err      error
	}{
		{name: "party of 3 into 5 remaining", capacity: intPtr(20), occupied: 15, people: 3},
		{name: "party of 3 into 2 remaining", capacity: intPtr(20), occupied: 18, people: 3, err: ErrCapacityExceeded},
		{name: "exact fill admitted", capacity: intPtr(20), occupied: 17, people: 3},
		{name: "full bucket rejects", capacity: intPtr(20), occupied: 20, people: 1, err: ErrCapacityExceeded},
		{name: "unlimited admits any party", capacity: nil, occupied: 9999, people: 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decide(tt.capacity, tt.occupied, tt.people)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAmount(t *testing.T) {
	assert.InDelta(t, 150.0, Amount(50.0, 3), 1e-9)
	assert.InDelta(t, 49.99, Amount(49.99, 1), 1e-9)
	assert.InDelta(t, 0.0, Amount(0, 7), 1e-9)
}
