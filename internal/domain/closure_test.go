package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	d, err := time.Parse(DateFormat, value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolveClosure_SpecificPrecedence(t *testing.T) {
	tuesday := date("2026-09-01")

	tests := []struct {
		name      string
		specifics []*SpecificClosure
		expected  ClosureType
	}{
		{
			name: "full closure wins over partial",
			specifics: []*SpecificClosure{
				{Type: ClosureMorning},
				{Type: ClosureFull},
			},
			expected: ClosureFull,
		},
		{
			name: "morning and afternoon together fold to full",
			specifics: []*SpecificClosure{
				{Type: ClosureMorning},
				{Type: ClosureAfternoon},
			},
			expected: ClosureFull,
		},
		{
			name:      "single morning closure stays morning",
			specifics: []*SpecificClosure{{Type: ClosureMorning}},
			expected:  ClosureMorning,
		},
		{
			name:      "single afternoon closure stays afternoon",
			specifics: []*SpecificClosure{{Type: ClosureAfternoon}},
			expected:  ClosureAfternoon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := ResolveClosure(tt.specifics, nil, nil, tuesday, false)
			assert.True(t, decision.Closed)
			assert.Equal(t, tt.expected, decision.Type)
			assert.Equal(t, SourceSpecific, decision.Source)
		})
	}
}

func TestResolveClosure_SpecificOverridesRecurring(t *testing.T) {
	// 2026-09-01 - вторник
	tuesday := date("2026-09-01")
	recurring := []*RecurringClosure{{Weekdays: []time.Weekday{time.Tuesday}}}

	decision := ResolveClosure(
		[]*SpecificClosure{{Type: ClosureMorning}},
		recurring,
		nil,
		tuesday,
		false,
	)

	assert.True(t, decision.Closed)
	assert.Equal(t, ClosureMorning, decision.Type)
	assert.Equal(t, SourceSpecific, decision.Source)
}

func TestResolveClosure_Recurring(t *testing.T) {
	tuesday := date("2026-09-01")
	recurring := []*RecurringClosure{{Weekdays: []time.Weekday{time.Tuesday}}}

	t.Run("recurring rule closes the matching weekday", func(t *testing.T) {
		decision := ResolveClosure(nil, recurring, nil, tuesday, false)
		assert.True(t, decision.Closed)
		assert.Equal(t, ClosureFull, decision.Type)
		assert.Equal(t, SourceRecurring, decision.Source)
	})

	t.Run("rule does not apply to other weekdays", func(t *testing.T) {
		wednesday := date("2026-09-02")
		decision := ResolveClosure(nil, recurring, nil, wednesday, false)
		assert.False(t, decision.Closed)
	})

	t.Run("exception flag suppresses recurring rule", func(t *testing.T) {
		decision := ResolveClosure(nil, recurring, nil, tuesday, true)
		assert.False(t, decision.Closed)
	})

	t.Run("removed full closure ledger entry suppresses recurring rule", func(t *testing.T) {
		removed := []*RemovedAutoClosure{{Type: ClosureFull}}
		decision := ResolveClosure(nil, recurring, removed, tuesday, false)
		assert.False(t, decision.Closed)
	})

	t.Run("removed partial closure does not suppress recurring rule", func(t *testing.T) {
		removed := []*RemovedAutoClosure{{Type: ClosureMorning}}
		decision := ResolveClosure(nil, recurring, removed, tuesday, false)
		assert.True(t, decision.Closed)
	})
}

func TestResolveClosure_Open(t *testing.T) {
	decision := ResolveClosure(nil, nil, nil, date("2026-09-01"), false)

	assert.False(t, decision.Closed)
	assert.Equal(t, SourceNone, decision.Source)
	assert.Empty(t, decision.IntegrityWarnings)
}

func TestResolveClosure_IntegrityWarnings(t *testing.T) {
	// Явное закрытие и запись журнала удаления того же типа противоречат друг другу:
	// явное побеждает, но противоречие поднимается наверх предупреждением
	decision := ResolveClosure(
		[]*SpecificClosure{{Type: ClosureMorning}},
		nil,
		[]*RemovedAutoClosure{{Type: ClosureMorning}},
		date("2026-09-01"),
		false,
	)

	assert.True(t, decision.Closed)
	assert.Equal(t, ClosureMorning, decision.Type)
	assert.Len(t, decision.IntegrityWarnings, 1)
}

func TestSpecificClosure_IsSystemAuto(t *testing.T) {
	auto := &SpecificClosure{CreatedBy: CreatorSystemAuto}
	manual := &SpecificClosure{CreatedBy: "42"}

	assert.True(t, auto.IsSystemAuto())
	assert.False(t, manual.IsSystemAuto())
}
