package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input string
		want  Priority
	}{
		{"high", PriorityHigh},
		{"Medium", PriorityMedium},
		{" LOW ", PriorityLow},
	}
	for _, tc := range tests {
		got, err := ParsePriority(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParsePriority("someday")
	assert.Error(t, err)
}

func TestPriorityRankAndLabels(t *testing.T) {
	assert.Equal(t, 0, PriorityHigh.Rank())
	assert.Equal(t, 1, PriorityMedium.Rank())
	assert.Equal(t, 2, PriorityLow.Rank())

	for _, priority := range Priorities {
		assert.Equal(t, priority, PriorityFromLabel(priority.Label()))
	}
	assert.Equal(t, PriorityMedium, PriorityFromLabel("nonsense"))
}

func TestNominal(t *testing.T) {
	config := DefaultTimerConfig()
	assert.Equal(t, 1500, config.Nominal(PhaseWork))
	assert.Equal(t, 300, config.Nominal(PhaseBreak))

	assert.Equal(t, 1500, TimerConfig{}.Nominal(PhaseWork))
}
