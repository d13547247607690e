package bot

import (
	"testing"
	"time"
)

func TestNextOccurrence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		now    time.Time // UTC
		hour   int
		minute int
		offset int
		want   time.Time // UTC
	}{
		{
			name: "later today",
			now:  time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
			hour: 14, minute: 30, offset: 0,
			want: time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "already passed rolls to tomorrow",
			now:  time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC),
			hour: 14, minute: 30, offset: 0,
			want: time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "exact match rolls to tomorrow",
			now:  time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
			hour: 14, minute: 30, offset: 0,
			want: time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "positive offset shifts the local day",
			// 23:00 UTC is 01:00 on June 2nd at +02:00, so 09:00 local is
			// still upcoming that day: fires 07:00 UTC.
			now:  time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC),
			hour: 9, minute: 0, offset: 2,
			want: time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC),
		},
		{
			name: "negative offset",
			// 02:00 UTC is 23:00 May 31st at -03:00; 09:00 local fires at
			// 12:00 UTC on June 1st.
			now:  time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC),
			hour: 9, minute: 0, offset: -3,
			want: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := NextOccurrence(tc.now, tc.hour, tc.minute, tc.offset)
			if !got.Equal(tc.want) {
				t.Errorf("NextOccurrence(%v, %02d:%02d, %+d) = %v, want %v",
					tc.now, tc.hour, tc.minute, tc.offset, got.UTC(), tc.want)
			}
			if !got.After(tc.now) {
				t.Errorf("NextOccurrence returned %v, not strictly after now %v", got.UTC(), tc.now)
			}
		})
	}
}
