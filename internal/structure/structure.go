package structure

import (
	"math"
	"time"
)

// Phase identifies how deep into the tournament a blind level sits
type Phase int

const (
	Early Phase = iota
	EarlyMid
	Mid
	MidLate
	Late
	FinalTable
)

// String returns the string representation of a tournament phase
func (p Phase) String() string {
	switch p {
	case Early:
		return "EARLY"
	case EarlyMid:
		return "EARLY_MID"
	case Mid:
		return "MID"
	case MidLate:
		return "MID_LATE"
	case Late:
		return "LATE"
	case FinalTable:
		return "FINAL_TABLE"
	default:
		return "UNKNOWN"
	}
}

// BlindLevel is one row of the static blind schedule
type BlindLevel struct {
	Level               int
	SmallBlind          int
	BigBlind            int
	Ante                int
	Duration            time.Duration
	ChipDenominations   []int // ordered smallest to largest
	MinBettingIncrement int
}

// RaceOffEvent describes a chip denomination retirement between two
// consecutive blind levels.
type RaceOffEvent struct {
	Level           int
	RemovedChips    []int
	NewMinIncrement int
}

const (
	// DefaultMinIncrement is used when a level is outside the schedule
	DefaultMinIncrement = 100

	levelsPerPhase = 4
)

// FallbackDenominations is the denomination set assumed for levels
// outside the schedule.
var FallbackDenominations = []int{25, 100, 500, 1000}

// Structure is the static blind-level table plus derived lookups.
// It is created once and never mutated, so it is safe for concurrent
// readers.
type Structure struct {
	levels []BlindLevel
}

// New builds a Structure from an explicit schedule. Levels must be
// numbered contiguously from 1.
func New(levels []BlindLevel) *Structure {
	return &Structure{levels: levels}
}

// NewDefault returns the standard 25-level tournament schedule.
func NewDefault() *Structure {
	return New(defaultSchedule())
}

// NumLevels returns the number of levels in the schedule.
func (s *Structure) NumLevels() int {
	return len(s.levels)
}

// BlindLevel returns the schedule row for the given level, or false if
// the level is outside the table. Callers apply their own default.
func (s *Structure) BlindLevel(level int) (BlindLevel, bool) {
	if level < 1 || level > len(s.levels) {
		return BlindLevel{}, false
	}
	return s.levels[level-1], true
}

// ActiveChipDenominations returns the denomination set in play at the
// given level, or the fallback set if the level is undefined.
func (s *Structure) ActiveChipDenominations(level int) []int {
	bl, ok := s.BlindLevel(level)
	if !ok {
		return append([]int(nil), FallbackDenominations...)
	}
	return append([]int(nil), bl.ChipDenominations...)
}

// MinBettingIncrement returns the smallest legal bet granularity for
// the level, or DefaultMinIncrement if the level is undefined.
func (s *Structure) MinBettingIncrement(level int) int {
	bl, ok := s.BlindLevel(level)
	if !ok || bl.MinBettingIncrement <= 0 {
		return DefaultMinIncrement
	}
	return bl.MinBettingIncrement
}

// RoundToChipIncrement rounds an amount to the nearest multiple of the
// level's minimum betting increment, half away from zero. The result
// is idempotent: rounding twice gives the same answer as once.
func (s *Structure) RoundToChipIncrement(amount, level int) int {
	inc := s.MinBettingIncrement(level)
	return int(math.Round(float64(amount)/float64(inc))) * inc
}

// ValidateChipAmount reports whether an amount is attainable with the
// level's minimum betting increment.
func (s *Structure) ValidateChipAmount(amount, level int) bool {
	return amount%s.MinBettingIncrement(level) == 0
}

// Phase maps a level to its tournament phase. Levels beyond the
// schedule report Late rather than FinalTable.
func (s *Structure) Phase(level int) Phase {
	if level < 1 || level > len(s.levels) {
		return Late
	}
	phase := Phase((level - 1) / levelsPerPhase)
	if phase > FinalTable {
		return FinalTable
	}
	return phase
}

// ChipRaceOff compares the denomination sets of level and level-1 and
// reports a race-off event when denominations were retired.
func (s *Structure) ChipRaceOff(level int) (RaceOffEvent, bool) {
	cur, ok := s.BlindLevel(level)
	if !ok || level < 2 {
		return RaceOffEvent{}, false
	}
	prev, ok := s.BlindLevel(level - 1)
	if !ok {
		return RaceOffEvent{}, false
	}

	active := make(map[int]bool, len(cur.ChipDenominations))
	for _, d := range cur.ChipDenominations {
		active[d] = true
	}

	var removed []int
	for _, d := range prev.ChipDenominations {
		if !active[d] {
			removed = append(removed, d)
		}
	}
	if len(removed) == 0 {
		return RaceOffEvent{}, false
	}

	return RaceOffEvent{
		Level:           level,
		RemovedChips:    removed,
		NewMinIncrement: cur.MinBettingIncrement,
	}, true
}

func defaultSchedule() []BlindLevel {
	type row struct {
		sb, bb, ante, inc int
		denoms            []int
	}

	var (
		d25  = []int{25, 100, 500, 1000}
		d100 = []int{100, 500, 1000, 5000}
		d500 = []int{500, 1000, 5000, 25000}
		d1k  = []int{1000, 5000, 25000}
		d5k  = []int{5000, 25000, 100000}
	)

	rows := []row{
		{100, 200, 200, 25, d25},
		{150, 300, 300, 25, d25},
		{200, 400, 400, 25, d25},
		{250, 500, 500, 25, d25},
		{300, 600, 600, 100, d100},
		{400, 800, 800, 100, d100},
		{500, 1000, 1000, 100, d100},
		{600, 1200, 1200, 100, d100},
		{800, 1600, 1600, 100, d100},
		{1000, 2000, 2000, 100, d100},
		{1200, 2400, 2400, 100, d100},
		{1500, 3000, 3000, 500, d500},
		{2000, 4000, 4000, 500, d500},
		{2500, 5000, 5000, 500, d500},
		{3000, 6000, 6000, 500, d500},
		{4000, 8000, 8000, 500, d500},
		{5000, 10000, 10000, 1000, d1k},
		{6000, 12000, 12000, 1000, d1k},
		{8000, 16000, 16000, 1000, d1k},
		{10000, 20000, 20000, 1000, d1k},
		{15000, 30000, 30000, 5000, d5k},
		{20000, 40000, 40000, 5000, d5k},
		{30000, 60000, 60000, 5000, d5k},
		{40000, 80000, 80000, 5000, d5k},
		{50000, 100000, 100000, 5000, d5k},
	}

	levels := make([]BlindLevel, len(rows))
	for i, r := range rows {
		levels[i] = BlindLevel{
			Level:               i + 1,
			SmallBlind:          r.sb,
			BigBlind:            r.bb,
			Ante:                r.ante,
			Duration:            40 * time.Minute,
			ChipDenominations:   r.denoms,
			MinBettingIncrement: r.inc,
		}
	}
	return levels
}
