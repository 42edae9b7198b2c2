package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "08:00", want: "08:00:00"},
		{in: "20:30:15", want: "20:30:15"},
		{in: " 9:05 ", want: "09:05:00"},
		{in: "24:00", want: "24:00:00"},
		{in: "24:00:00", want: "24:00:00"},
		{in: "24:01", wantErr: true},
		{in: "25:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, IsClock(tt.in))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.True(t, IsClock(tt.in))
		})
	}
}

func TestParseClockOrdering(t *testing.T) {
	nine, err := ParseClock("09:00")
	require.NoError(t, err)
	ten, err := ParseClock("10:00:00")
	require.NoError(t, err)

	assert.True(t, nine < ten)

	last, err := ParseClock("23:59:59")
	require.NoError(t, err)
	assert.True(t, last < EndOfDay)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-07-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", FormatDate(d))

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
	_, err = ParseDate("01/07/2024")
	assert.Error(t, err)
}

func TestDateHelpers(t *testing.T) {
	first, err := ParseDate("2024-07-01")
	require.NoError(t, err)
	second, err := ParseDate("2024-07-02")
	require.NoError(t, err)
	third, err := ParseDate("2024-07-03")
	require.NoError(t, err)

	assert.True(t, SameDay(first, first))
	assert.False(t, SameDay(first, second))

	assert.True(t, DateWithin(second, first, third))
	assert.True(t, DateWithin(first, first, third))
	assert.True(t, DateWithin(third, first, third))
	assert.False(t, DateWithin(third, first, second))
}
