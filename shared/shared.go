package shared

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// WeekdayNumber maps a time.Weekday onto the 1-7 scheme the staff records use:
// Monday is 1, Sunday is 7.
func WeekdayNumber(t time.Time) int {
	day := int(t.Weekday())
	if day == 0 {
		return 7
	}

	return day
}

// FormatClock renders an hour/minute pair as a zero-padded HH:MM clock.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// SlotID derives the grid-unique slot identifier from a date and a clock.
func SlotID(date, clock string) string {
	return date + "-" + clock
}

// ParseHour extracts the hour from an "HH:MM" or "HH:MM:SS" clock string,
// falling back to the given default when the value is empty or malformed.
func ParseHour(clock string, fallback int) int {
	if clock == "" {
		return fallback
	}

	if len(clock) < 2 {
		return fallback
	}

	hour, err := strconv.Atoi(clock[:2])
	if err != nil {
		log.Warn().Str("clock", clock).Msg("failed to parse hour from clock string")

		return fallback
	}

	if hour < 0 || hour > 23 {
		return fallback
	}

	return hour
}

// Ptr returns a pointer to the given value.
func Ptr[T any](value T) *T {
	return &value
}
