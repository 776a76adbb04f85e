package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketbook/internal/dates"
)

func TestWireRoundTripKeepsCalendarDate(t *testing.T) {
	east := time.FixedZone("UTC+11", 11*3600)
	west := time.FixedZone("UTC-8", -8*3600)

	inputs := []time.Time{
		time.Date(2025, 3, 1, 0, 0, 0, 0, east),
		time.Date(2025, 3, 1, 23, 59, 59, 0, west),
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 18, 30, 0, 0, time.Local),
	}

	for _, in := range inputs {
		got, err := dates.FromWire(dates.ToWire(in))
		require.NoError(t, err)

		y1, m1, d1 := in.Date()
		y2, m2, d2 := got.UTC().Date()

		assert.Equal(t, y1, y2)
		assert.Equal(t, m1, m2)
		assert.Equal(t, d1, d2)
	}
}

func TestNormalize(t *testing.T) {
	in := time.Date(2025, 6, 15, 22, 45, 3, 0, time.FixedZone("UTC+2", 2*3600))
	got := dates.Normalize(in)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestFromWireRejectsGarbage(t *testing.T) {
	_, err := dates.FromWire("yesterday")
	assert.Error(t, err)
}

func TestFormatParseDate(t *testing.T) {
	day, err := dates.ParseDate("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", dates.FormatDate(day))
}
