package booking

import (
	"fmt"
	"testing"
)

func TestConvertToMinutesTwentyFourHour(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"13:05", 785},
		{"08:30", 510},
		{"00:00", 0},
		{"23:59", 1439},
		{"9:15", 555},
	}

	for _, tt := range tests {
		if got := ConvertToMinutes(tt.label); got != tt.want {
			t.Errorf("ConvertToMinutes(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestConvertToMinutesTwelveHour(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"9:00 AM", 540},
		{"1:00 PM", 780},
		{"12:00 AM", 0},
		{"12:00 PM", 720},
		{"12:30 PM", 750},
		{"11:45 PM", 1425},
		{"9 AM", 540},   // minutes optional
		{"9AM", 540},    // whitespace optional
		{"9:00 am", 540}, // case-insensitive
		{"  1:00 PM  ", 780},
	}

	for _, tt := range tests {
		if got := ConvertToMinutes(tt.label); got != tt.want {
			t.Errorf("ConvertToMinutes(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestConvertToMinutesUnparseable(t *testing.T) {
	for _, label := range []string{"", "noon", "half past nine", "25 o'clock", "xx:yy"} {
		if got := ConvertToMinutes(label); got != 0 {
			t.Errorf("ConvertToMinutes(%q) = %d, want 0", label, got)
		}
	}
}

// Colon-form labels are 24-hour time even when they look like they could
// be 12-hour clock values.
func TestConvertToMinutesColonFormNeverShifted(t *testing.T) {
	if got := ConvertToMinutes("1:00"); got != 60 {
		t.Errorf("ConvertToMinutes(\"1:00\") = %d, want 60", got)
	}
	if got := ConvertToMinutes("12:00"); got != 720 {
		t.Errorf("ConvertToMinutes(\"12:00\") = %d, want 720", got)
	}
}

func TestConvertToMinutesTwelveHourRoundTrip(t *testing.T) {
	for _, meridiem := range []string{"AM", "PM"} {
		for h := 1; h <= 12; h++ {
			for m := 0; m < 60; m += 7 {
				label := fmt.Sprintf("%d:%02d %s", h, m, meridiem)

				hours24 := h
				if meridiem == "PM" && h != 12 {
					hours24 = h + 12
				}
				if meridiem == "AM" && h == 12 {
					hours24 = 0
				}
				want := hours24*60 + m

				if got := ConvertToMinutes(label); got != want {
					t.Fatalf("ConvertToMinutes(%q) = %d, want %d", label, got, want)
				}
			}
		}
	}
}
