package event

import (
	"testing"
	"time"
)

func TestParseDateTime(t *testing.T) {
	london := mustLondon(t)
	duration := 3 * time.Hour

	tests := []struct {
		name      string
		text      string
		wantOK    bool
		wantAll   bool
		wantStart time.Time
	}{
		{
			name:      "date with time",
			text:      "Concert A\n27 Sep 2025\n17:00\nFind out more",
			wantOK:    true,
			wantAll:   false,
			wantStart: time.Date(2025, 9, 27, 17, 0, 0, 0, london),
		},
		{
			name:      "date with TBC time",
			text:      "Festival B\n28 Sep 2025\nTBC\nFind out more",
			wantOK:    true,
			wantAll:   true,
			wantStart: time.Date(2025, 9, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "lowercase tbc",
			text:      "Festival B\n28 Sep 2025\ntbc",
			wantOK:    true,
			wantAll:   true,
			wantStart: time.Date(2025, 9, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "date without time token",
			text:      "Open Day\n01 Oct 2025\nFree entry",
			wantOK:    true,
			wantAll:   true,
			wantStart: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "out of range clock falls back to all-day",
			text:      "Late Show\n27 Sep 2025\n27:00",
			wantOK:    true,
			wantAll:   true,
			wantStart: time.Date(2025, 9, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "no date token",
			text:   "Coming soon\n17:00\nFind out more",
			wantOK: false,
		},
		{
			name:   "date token with invalid month",
			text:   "Event\n27 Xyz 2025\n17:00",
			wantOK: false,
		},
		{
			name:   "empty text",
			text:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, allDay, ok := ParseDateTime(tt.text, london, duration)

			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if allDay != tt.wantAll {
				t.Errorf("allDay = %v, want %v", allDay, tt.wantAll)
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}

			if allDay {
				if want := start.AddDate(0, 0, 1); !end.Equal(want) {
					t.Errorf("all-day end = %v, want start + 1 day (%v)", end, want)
				}
			} else {
				if got := end.Sub(start); got != duration {
					t.Errorf("timed duration = %v, want %v", got, duration)
				}
			}
		})
	}
}
