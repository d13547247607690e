package daypart_test

import (
	"testing"
	"time"

	"github.com/ldmoreira/stewardbot/internal/daypart"
)

func TestLocalHour(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		now    time.Time
		offset int
		want   int
	}{
		{name: "zero offset", now: base, offset: 0, want: 14},
		{name: "positive offset", now: base, offset: 3, want: 17},
		{name: "offset wraps past midnight", now: base, offset: 11, want: 1},
		{name: "negative offset", now: base, offset: -5, want: 9},
		{name: "negative offset wraps below zero", now: base, offset: -15, want: 23},
		{name: "large positive offset", now: base, offset: 26, want: 16},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := daypart.LocalHour(tc.now, tc.offset); got != tc.want {
				t.Errorf("LocalHour(%v, %d) = %d, want %d", tc.now, tc.offset, got, tc.want)
			}
		})
	}
}

// TestGreetingPartition verifies that every hour of the day maps to exactly
// one salutation window with the documented boundaries.
func TestGreetingPartition(t *testing.T) {
	t.Parallel()

	for hour := 0; hour < 24; hour++ {
		var want daypart.Salutation
		switch {
		case hour >= 5 && hour < 12:
			want = daypart.Morning
		case hour >= 12 && hour < 18:
			want = daypart.Afternoon
		default:
			want = daypart.Evening
		}
		if got := daypart.Greeting(hour); got != want {
			t.Errorf("Greeting(%d) = %v, want %v", hour, got, want)
		}
	}
}

func TestWindowOfPartition(t *testing.T) {
	t.Parallel()

	for hour := 0; hour < 24; hour++ {
		want := daypart.Night
		if hour >= 6 && hour < 22 {
			want = daypart.Day
		}
		if got := daypart.WindowOf(hour); got != want {
			t.Errorf("WindowOf(%d) = %v, want %v", hour, got, want)
		}
	}
}

func TestClassifiersAcceptOutOfRangeHours(t *testing.T) {
	t.Parallel()

	if got := daypart.Greeting(29); got != daypart.Morning {
		t.Errorf("Greeting(29) = %v, want Morning", got)
	}
	if got := daypart.WindowOf(-2); got != daypart.Night {
		t.Errorf("WindowOf(-2) = %v, want Night", got)
	}
}
