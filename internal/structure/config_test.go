package structure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchedule = `
level "1" {
  small_blind   = 50
  big_blind     = 100
  ante          = 100
  duration      = "20m"
  denominations = [25, 100, 500]
  min_increment = 25
}

level "2" {
  small_blind   = 100
  big_blind     = 200
  denominations = [100, 500]
}
`

func writeSchedule(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tourney.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSchedule(t *testing.T) {
	s, err := LoadSchedule(writeSchedule(t, testSchedule))
	require.NoError(t, err)
	require.Equal(t, 2, s.NumLevels())

	bl, ok := s.BlindLevel(1)
	require.True(t, ok)
	assert.Equal(t, 50, bl.SmallBlind)
	assert.Equal(t, 100, bl.BigBlind)
	assert.Equal(t, 20*time.Minute, bl.Duration)
	assert.Equal(t, 25, bl.MinBettingIncrement)

	// Level 2 omits min_increment, so it falls back to the smallest
	// denomination, and retiring the 25 chip is a race-off.
	bl2, ok := s.BlindLevel(2)
	require.True(t, ok)
	assert.Equal(t, 100, bl2.MinBettingIncrement)

	event, ok := s.ChipRaceOff(2)
	require.True(t, ok)
	assert.Equal(t, []int{25}, event.RemovedChips)
	assert.Equal(t, 100, event.NewMinIncrement)
}

func TestLoadScheduleMissingFileUsesDefault(t *testing.T) {
	s, err := LoadSchedule(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, 25, s.NumLevels())
}

func TestScheduleValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "non-contiguous levels",
			content: `
level "1" { small_blind = 50  big_blind = 100 }
level "3" { small_blind = 100 big_blind = 200 }
`,
		},
		{
			name: "big blind not above small blind",
			content: `
level "1" { small_blind = 100 big_blind = 100 }
`,
		},
		{
			name: "blind not attainable with increment",
			content: `
level "1" {
  small_blind   = 50
  big_blind     = 130
  min_increment = 25
}
`,
		},
		{
			name:    "empty schedule",
			content: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSchedule(writeSchedule(t, tt.content))
			assert.Error(t, err)
		})
	}
}
