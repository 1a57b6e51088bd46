package officehour

import (
	"testing"
	"time"
)

func TestDefaultWindow(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"monday opening", time.Date(2026, 1, 19, 9, 0, 0, 0, WIB), true},
		{"monday before opening", time.Date(2026, 1, 19, 8, 59, 0, 0, WIB), false},
		{"friday last minute", time.Date(2026, 1, 23, 16, 59, 0, 0, WIB), true},
		{"friday closing", time.Date(2026, 1, 23, 17, 0, 0, 0, WIB), false},
		{"saturday noon", time.Date(2026, 1, 24, 12, 0, 0, 0, WIB), false},
		{"sunday noon", time.Date(2026, 1, 25, 12, 0, 0, 0, WIB), false},
		// 03:00 UTC is 10:00 WIB.
		{"utc input converted", time.Date(2026, 1, 20, 3, 0, 0, 0, time.UTC), true},
		// Friday 23:00 UTC is already Saturday in WIB.
		{"utc friday night", time.Date(2026, 1, 23, 23, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := Default.IsOpen(tc.at); got != tc.want {
			t.Fatalf("%s: IsOpen = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNextOpening(t *testing.T) {
	sat := time.Date(2026, 1, 24, 12, 0, 0, 0, WIB)
	want := time.Date(2026, 1, 26, 9, 0, 0, 0, WIB)
	if got := Default.Next(sat); !got.Equal(want) {
		t.Fatalf("Next(saturday) = %v, want %v", got, want)
	}
	open := time.Date(2026, 1, 21, 10, 0, 0, 0, WIB)
	if got := Default.Next(open); !got.Equal(open) {
		t.Fatalf("Next(open) = %v, want unchanged", got)
	}
	early := time.Date(2026, 1, 21, 7, 30, 0, 0, WIB)
	if got := Default.Next(early); !got.Equal(time.Date(2026, 1, 21, 9, 0, 0, 0, WIB)) {
		t.Fatalf("Next(early) = %v", got)
	}
	if got := (Window{}).Next(sat); !got.IsZero() {
		t.Fatalf("empty window should never open, got %v", got)
	}
}
