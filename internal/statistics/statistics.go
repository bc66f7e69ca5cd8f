// Package statistics aggregates tournament results across hands and
// players. All aggregates are running sums so memory stays flat over
// long simulations, except Values which is kept for percentiles.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// HandRecord is the outcome of a single completed hand.
type HandRecord struct {
	HandNumber     int
	Level          int     // blind level in effect
	PotChips       int     // total chips in the pot
	PotBB          float64 // pot in big blinds at the level played
	WinnerIDs      []string
	WentToShowdown bool
	StreetReached  string // preflop, flop, turn, river
	Seed           int64  // per-hand seed for replay
}

// Elimination records a player busting out.
type Elimination struct {
	PlayerID   string
	Place      int // 1 is the champion
	HandNumber int
	Level      int
}

// PlayerStats tracks one player's results across a tournament.
type PlayerStats struct {
	HandsPlayed  int
	HandsWon     int
	ShowdownWins int
	ChipsWon     int
}

// WinRate returns the fraction of played hands the player won.
func (p PlayerStats) WinRate() float64 {
	if p.HandsPlayed == 0 {
		return 0
	}
	return float64(p.HandsWon) / float64(p.HandsPlayed)
}

// Tournament aggregates results for one tournament run.
type Tournament struct {
	Hands   int
	SumBB   float64
	SumBB2  float64   // sum of squares for variance
	Values  []float64 // pot sizes in bb, kept for percentiles
	Players map[string]*PlayerStats

	ShowdownHands    int
	NonShowdownHands int
	ShowdownBB       float64
	NonShowdownBB    float64
	AllBB            float64

	MaxPotChips int
	MaxPotBB    float64
	MaxPotLevel int

	HandsPerLevel map[int]int
	Eliminations  []Elimination
}

// NewTournament creates an empty aggregate.
func NewTournament() *Tournament {
	return &Tournament{
		Players:       make(map[string]*PlayerStats),
		HandsPerLevel: make(map[int]int),
	}
}

// player returns the stats bucket for id, creating it on first use.
func (t *Tournament) player(id string) *PlayerStats {
	p, ok := t.Players[id]
	if !ok {
		p = &PlayerStats{}
		t.Players[id] = p
	}
	return p
}

// AddHand incorporates a completed hand. participants are the IDs dealt
// into the hand; winnings maps winner IDs to chips taken from the pot.
func (t *Tournament) AddHand(record HandRecord, participants []string, winnings map[string]int) {
	t.Hands++
	t.SumBB += record.PotBB
	t.SumBB2 += record.PotBB * record.PotBB
	t.Values = append(t.Values, record.PotBB)
	t.HandsPerLevel[record.Level]++

	if record.WentToShowdown {
		t.ShowdownHands++
		t.ShowdownBB += record.PotBB
	} else {
		t.NonShowdownHands++
		t.NonShowdownBB += record.PotBB
	}
	t.AllBB += record.PotBB

	if record.PotChips > t.MaxPotChips {
		t.MaxPotChips = record.PotChips
		t.MaxPotBB = record.PotBB
		t.MaxPotLevel = record.Level
	}

	for _, id := range participants {
		t.player(id).HandsPlayed++
	}
	for _, id := range record.WinnerIDs {
		p := t.player(id)
		p.HandsWon++
		if record.WentToShowdown {
			p.ShowdownWins++
		}
	}
	for id, chips := range winnings {
		t.player(id).ChipsWon += chips
	}
}

// AddElimination records a bust-out.
func (t *Tournament) AddElimination(e Elimination) {
	t.Eliminations = append(t.Eliminations, e)
}

// Mean returns the mean pot size in big blinds.
func (t *Tournament) Mean() float64 {
	if t.Hands == 0 {
		return 0
	}
	return t.SumBB / float64(t.Hands)
}

// Variance returns the sample variance of pot sizes.
func (t *Tournament) Variance() float64 {
	if t.Hands < 2 {
		return 0
	}
	mean := t.Mean()
	return (t.SumBB2 - float64(t.Hands)*mean*mean) / float64(t.Hands-1)
}

// StdDev returns the sample standard deviation of pot sizes.
func (t *Tournament) StdDev() float64 {
	return math.Sqrt(t.Variance())
}

// StdError returns the standard error of the mean pot size.
func (t *Tournament) StdError() float64 {
	if t.Hands == 0 {
		return 0
	}
	return t.StdDev() / math.Sqrt(float64(t.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// pot size.
func (t *Tournament) ConfidenceInterval95() (float64, float64) {
	mean := t.Mean()
	margin := 1.96 * t.StdError()
	return mean - margin, mean + margin
}

// Median returns the median pot size in big blinds.
func (t *Tournament) Median() float64 {
	return t.Percentile(0.5)
}

// Percentile returns the pot size at the given percentile (0.0 to 1.0),
// linearly interpolated.
func (t *Tournament) Percentile(p float64) float64 {
	if len(t.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(t.Values))
	copy(sorted, t.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// ShowdownRate returns the fraction of hands that reached showdown.
func (t *Tournament) ShowdownRate() float64 {
	if t.Hands == 0 {
		return 0
	}
	return float64(t.ShowdownHands) / float64(t.Hands)
}

// Champion returns the ID of the first-place finisher, if recorded.
func (t *Tournament) Champion() (string, bool) {
	for _, e := range t.Eliminations {
		if e.Place == 1 {
			return e.PlayerID, true
		}
	}
	return "", false
}

// IsLedgerBalanced checks that the showdown/non-showdown split accounts
// for every big blind in the pot totals.
func (t *Tournament) IsLedgerBalanced() bool {
	return math.Abs(t.AllBB-t.ShowdownBB-t.NonShowdownBB) <= 1e-6
}

// Validate checks the aggregate for internal consistency.
func (t *Tournament) Validate() error {
	if !t.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: all=%.6f showdown=%.6f non-showdown=%.6f",
			t.AllBB, t.ShowdownBB, t.NonShowdownBB)
	}

	if t.Hands <= 0 {
		return fmt.Errorf("invalid hand count: %d", t.Hands)
	}

	if len(t.Values) != t.Hands {
		return fmt.Errorf("values length (%d) does not match hand count (%d)", len(t.Values), t.Hands)
	}

	if t.ShowdownHands+t.NonShowdownHands != t.Hands {
		return fmt.Errorf("showdown split (%d + %d) does not match hand count (%d)",
			t.ShowdownHands, t.NonShowdownHands, t.Hands)
	}

	levelTotal := 0
	for _, n := range t.HandsPerLevel {
		levelTotal += n
	}
	if levelTotal != t.Hands {
		return fmt.Errorf("per-level hands total (%d) does not match hand count (%d)", levelTotal, t.Hands)
	}

	for id, p := range t.Players {
		if p.HandsWon > p.HandsPlayed {
			return fmt.Errorf("player %s won more hands (%d) than played (%d)", id, p.HandsWon, p.HandsPlayed)
		}
		if p.ShowdownWins > p.HandsWon {
			return fmt.Errorf("player %s has more showdown wins (%d) than wins (%d)", id, p.ShowdownWins, p.HandsWon)
		}
	}

	seen := make(map[int]string, len(t.Eliminations))
	for _, e := range t.Eliminations {
		if prev, dup := seen[e.Place]; dup {
			return fmt.Errorf("place %d assigned to both %s and %s", e.Place, prev, e.PlayerID)
		}
		seen[e.Place] = e.PlayerID
	}

	return nil
}
