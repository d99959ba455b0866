package shared_test

import (
	"testing"
	"time"
	"tonsor/shared"
)

func TestWeekdayNumber(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{
			name: "monday is 1",
			date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "saturday is 6",
			date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			want: 6,
		},
		{
			name: "sunday is 7",
			date: time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.WeekdayNumber(tt.date); got != tt.want {
				t.Errorf("WeekdayNumber() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		hour   int
		minute int
		want   string
	}{
		{9, 0, "09:00"},
		{9, 15, "09:15"},
		{10, 45, "10:45"},
		{0, 0, "00:00"},
	}

	for _, tt := range tests {
		if got := shared.FormatClock(tt.hour, tt.minute); got != tt.want {
			t.Errorf("FormatClock(%d, %d) = %s, want %s", tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestSlotID(t *testing.T) {
	if got := shared.SlotID("2024-06-10", "14:00"); got != "2024-06-10-14:00" {
		t.Errorf("SlotID() = %s", got)
	}
}

func TestParseHour(t *testing.T) {
	tests := []struct {
		name     string
		clock    string
		fallback int
		want     int
	}{
		{"full clock", "09:30:00", 17, 9},
		{"short clock", "19:00", 9, 19},
		{"empty uses fallback", "", 9, 9},
		{"garbage uses fallback", "xx:00", 17, 17},
		{"out of range uses fallback", "99:00", 17, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.ParseHour(tt.clock, tt.fallback); got != tt.want {
				t.Errorf("ParseHour(%q) = %d, want %d", tt.clock, got, tt.want)
			}
		})
	}
}
