package timezone_test

import (
	"testing"
	"time"
	"tonsor/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationIsInitialized(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestToAppTimeKeepsTheInstant(t *testing.T) {
	instant := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	converted := timezone.ToAppTime(instant)

	assert.True(t, converted.Equal(instant))
	assert.Equal(t, timezone.GetLocation(), converted.Location())
}

func TestParseUsesTheAppLocation(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02", "2025-06-02")
	require.NoError(t, err)

	assert.Equal(t, timezone.GetLocation(), parsed.Location())
	assert.Equal(t, time.Monday, parsed.Weekday())
}

func TestFormatRoundTrip(t *testing.T) {
	instant := time.Date(2025, 6, 2, 14, 30, 0, 0, timezone.GetLocation())

	assert.Equal(t, "2025-06-02 14:30", timezone.Format(instant, "2006-01-02 15:04"))
}
