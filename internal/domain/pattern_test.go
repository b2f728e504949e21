package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

func TestSlotWindow_Slots(t *testing.T) {
	tests := []struct {
		name     string
		window   SlotWindow
		expected []types.TimeString
	}{
		{
			name:     "afternoon window with default step",
			window:   SlotWindow{Start: "15:00", End: "17:30"},
			expected: []types.TimeString{"15:00", "15:30", "16:00", "16:30", "17:00", "17:30"},
		},
		{
			name:     "single slot window",
			window:   SlotWindow{Start: "18:00", End: "18:00"},
			expected: []types.TimeString{"18:00"},
		},
		{
			name:     "custom step",
			window:   SlotWindow{Start: "09:00", End: "10:00", StepMinutes: 60},
			expected: []types.TimeString{"09:00", "10:00"},
		},
		{
			name:     "closing boundary included even when step overshoots",
			window:   SlotWindow{Start: "09:00", End: "09:45"},
			expected: []types.TimeString{"09:00", "09:30", "09:45"},
		},
		{
			name:     "inverted window yields nothing",
			window:   SlotWindow{Start: "17:00", End: "09:00"},
			expected: []types.TimeString{},
		},
		{
			name:     "window at midnight terminates",
			window:   SlotWindow{Start: "23:00", End: "23:45"},
			expected: []types.TimeString{"23:00", "23:30", "23:45"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.window.Slots())
		})
	}
}

func TestWeeklyPattern_BaseSlots(t *testing.T) {
	pattern := StandardWeeklyPattern()

	t.Run("monday is afternoon only", func(t *testing.T) {
		slots := pattern.BaseSlots(time.Monday)
		assert.Equal(t, []types.TimeString{"15:00", "15:30", "16:00", "16:30", "17:00", "17:30"}, slots)
	})

	t.Run("tuesday has both halves", func(t *testing.T) {
		slots := pattern.BaseSlots(time.Tuesday)
		require.Len(t, slots, 14)
		assert.Equal(t, types.TimeString("09:00"), slots[0])
		assert.Equal(t, types.TimeString("12:30"), slots[7])
		assert.Equal(t, types.TimeString("15:00"), slots[8])
		assert.Equal(t, types.TimeString("17:30"), slots[13])
	})

	t.Run("saturday has shifted afternoon window", func(t *testing.T) {
		slots := pattern.BaseSlots(time.Saturday)
		assert.Contains(t, slots, types.TimeString("14:30"))
		assert.Contains(t, slots, types.TimeString("17:00"))
		assert.NotContains(t, slots, types.TimeString("17:30"))
	})

	t.Run("sunday is globally closed", func(t *testing.T) {
		assert.Empty(t, pattern.BaseSlots(time.Sunday))
	})

	t.Run("slots are chronologically ordered without duplicates", func(t *testing.T) {
		for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
			slots := pattern.BaseSlots(weekday)
			for i := 1; i < len(slots); i++ {
				assert.True(t, slots[i-1].IsBefore(slots[i]),
					"weekday %s: slot %s must precede %s", weekday, slots[i-1], slots[i])
			}
		}
	})
}

func TestWeeklyPattern_ExtendedPattern(t *testing.T) {
	pattern := ExtendedWeeklyPattern()

	t.Run("working days get the trailing slot", func(t *testing.T) {
		for _, weekday := range []time.Weekday{time.Monday, time.Tuesday, time.Saturday} {
			slots := pattern.BaseSlots(weekday)
			require.NotEmpty(t, slots)
			assert.Equal(t, types.TimeString("18:00"), slots[len(slots)-1])
		}
	})

	t.Run("sunday stays closed", func(t *testing.T) {
		assert.Empty(t, pattern.BaseSlots(time.Sunday))
	})
}

// Паттерн хранится в колонке weekly_pattern в том же виде, что и в сидах:
// ключи окон - строковые значения time.Weekday
func TestWeeklyPattern_StoredForm(t *testing.T) {
	stored := `{
		"windows": {
			"1": [{"start": "15:00", "end": "17:30"}],
			"2": [{"start": "09:00", "end": "12:30"}, {"start": "15:00", "end": "17:30"}]
		}
	}`

	var pattern WeeklyPattern
	require.NoError(t, json.Unmarshal([]byte(stored), &pattern))

	t.Run("standard monday yields six afternoon slots", func(t *testing.T) {
		slots := pattern.BaseSlots(time.Monday)
		require.Len(t, slots, 6)
		for _, slot := range slots {
			assert.GreaterOrEqual(t, slot.Hour(), 15)
		}
	})

	t.Run("full day yields fourteen slots", func(t *testing.T) {
		assert.Len(t, pattern.BaseSlots(time.Tuesday), 14)
	})
}

func TestWeeklyPattern_AutoClosureType(t *testing.T) {
	standard := StandardWeeklyPattern()

	t.Run("monday derives morning closure", func(t *testing.T) {
		closureType := standard.AutoClosureType(time.Monday)
		require.NotNil(t, closureType)
		assert.Equal(t, ClosureMorning, *closureType)
	})

	t.Run("full working day needs no closure", func(t *testing.T) {
		assert.Nil(t, standard.AutoClosureType(time.Tuesday))
		assert.Nil(t, standard.AutoClosureType(time.Saturday))
	})

	t.Run("sunday returns nil, materializer skips the day entirely", func(t *testing.T) {
		assert.Nil(t, standard.AutoClosureType(time.Sunday))
	})

	t.Run("day without windows derives full closure", func(t *testing.T) {
		pattern := WeeklyPattern{Windows: map[time.Weekday][]SlotWindow{
			time.Tuesday: {{Start: "09:00", End: "12:30"}},
		}}
		closureType := pattern.AutoClosureType(time.Wednesday)
		require.NotNil(t, closureType)
		assert.Equal(t, ClosureFull, *closureType)
	})

	t.Run("morning only day derives afternoon closure", func(t *testing.T) {
		pattern := WeeklyPattern{Windows: map[time.Weekday][]SlotWindow{
			time.Friday: {{Start: "09:00", End: "12:30"}},
		}}
		closureType := pattern.AutoClosureType(time.Friday)
		require.NotNil(t, closureType)
		assert.Equal(t, ClosureAfternoon, *closureType)
	})
}

func TestWeeklyPattern_IsOpen(t *testing.T) {
	pattern := StandardWeeklyPattern()

	assert.True(t, pattern.IsOpen(time.Monday))
	assert.True(t, pattern.IsOpen(time.Friday))
	assert.False(t, pattern.IsOpen(time.Sunday))
}
