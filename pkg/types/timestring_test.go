package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TimeString
		wantErr  bool
	}{
		{name: "valid morning time", input: "09:00", expected: "09:00"},
		{name: "valid afternoon time", input: "15:30", expected: "15:30"},
		{name: "midnight", input: "00:00", expected: "00:00"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "with seconds", input: "09:00:00", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 9, 1, 15, 30, 45, 0, time.UTC)
	assert.Equal(t, TimeString("15:30"), NewTimeString(moment))
}

func TestTimeString_HourMinute(t *testing.T) {
	slot := TimeString("15:30")
	assert.Equal(t, 15, slot.Hour())
	assert.Equal(t, 30, slot.Minute())

	broken := TimeString("not-a-time")
	assert.Equal(t, -1, broken.Hour())
	assert.Equal(t, -1, broken.Minute())
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.True(t, TimeString("15:00").IsAfter("12:30"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("advances within the hour", func(t *testing.T) {
		result, err := TimeString("09:00").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("09:30"), result)
	})

	t.Run("crosses the hour boundary", func(t *testing.T) {
		result, err := TimeString("09:45").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("10:15"), result)
	})

	t.Run("invalid source fails", func(t *testing.T) {
		_, err := TimeString("garbage").AddMinutes(30)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("10:00").Validate())
	assert.Error(t, TimeString("10:60").Validate())
	assert.Error(t, TimeString("").Validate())
}
