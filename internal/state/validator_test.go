package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/internal/deck"
	"github.com/lox/pokertourney/internal/randutil"
)

// newTestState deals a consistent three-handed flop state: every card
// accounted for, blinds posted, pot matching contributions.
func newTestState(t *testing.T) *GameState {
	t.Helper()

	d := deck.New(randutil.New(99))
	d.Shuffle()

	gs := &GameState{
		Phase:        Playing,
		SmallBlind:   100,
		BigBlind:     200,
		Pot:          600,
		CurrentBet:   0,
		DealerButton: 0,
		ActivePlayer: 1,
		HandNumber:   1,
		BettingRound: Flop,
	}

	for i := 0; i < 3; i++ {
		gs.Players = append(gs.Players, &Player{
			ID:                []string{"alice", "bob", "carol"}[i],
			Seat:              i,
			Chips:             10000,
			HoleCards:         d.DealN(2),
			IsHuman:           i == 0,
			IsActive:          true,
			TotalContribution: 200,
		})
	}

	gs.BurnCards = d.DealN(1)
	gs.CommunityCards = d.DealN(3)
	gs.Deck = d.Cards()

	return gs
}

func TestValidStatePasses(t *testing.T) {
	gs := newTestState(t)
	report := Validate(gs)
	assert.Empty(t, report.Errors, "errors: %v", report.Errors)
	assert.True(t, report.OK())
}

func TestQuickValidate(t *testing.T) {
	gs := newTestState(t)
	assert.True(t, QuickValidate(gs))

	assert.False(t, QuickValidate(nil))
	assert.False(t, QuickValidate(&GameState{}))

	gs.Pot = -1
	assert.False(t, QuickValidate(gs))
	gs.Pot = 0
	gs.CurrentBet = -1
	assert.False(t, QuickValidate(gs))
}

func TestValidatePlayersErrors(t *testing.T) {
	t.Run("empty players", func(t *testing.T) {
		report := ValidatePlayers(&GameState{})
		assert.False(t, report.OK())
	})

	t.Run("duplicate id", func(t *testing.T) {
		gs := newTestState(t)
		gs.Players[1].ID = gs.Players[0].ID
		report := ValidatePlayers(gs)
		require.False(t, report.OK())
		assert.Contains(t, report.Errors[0], "duplicate player id")
	})

	t.Run("duplicate seat", func(t *testing.T) {
		gs := newTestState(t)
		gs.Players[2].Seat = gs.Players[0].Seat
		assert.False(t, ValidatePlayers(gs).OK())
	})

	t.Run("seat out of range", func(t *testing.T) {
		gs := newTestState(t)
		gs.Players[0].Seat = MaxSeats
		assert.False(t, ValidatePlayers(gs).OK())
	})

	t.Run("negative chips", func(t *testing.T) {
		gs := newTestState(t)
		gs.Players[0].Chips = -5
		assert.False(t, ValidatePlayers(gs).OK())
	})

	t.Run("one hole card", func(t *testing.T) {
		gs := newTestState(t)
		gs.Players[0].HoleCards = gs.Players[0].HoleCards[:1]
		assert.False(t, ValidatePlayers(gs).OK())
	})

	t.Run("too many players", func(t *testing.T) {
		gs := newTestState(t)
		for i := 3; i <= MaxSeats; i++ {
			gs.Players = append(gs.Players, &Player{ID: string(rune('a' + i)), Seat: i, IsActive: true})
		}
		assert.False(t, ValidatePlayers(gs).OK())
	})
}

func TestValidatePlayersWarnings(t *testing.T) {
	t.Run("all-in flag with chips", func(t *testing.T) {
		gs := newTestState(t)
		gs.Players[0].IsAllIn = true
		report := ValidatePlayers(gs)
		assert.True(t, report.OK())
		assert.NotEmpty(t, report.Warnings)
	})

	t.Run("zero chips active without all-in flag", func(t *testing.T) {
		gs := newTestState(t)
		gs.Players[0].Chips = 0
		report := ValidatePlayers(gs)
		assert.True(t, report.OK())
		assert.NotEmpty(t, report.Warnings)
	})

	t.Run("no humans warns", func(t *testing.T) {
		gs := newTestState(t)
		gs.Players[0].IsHuman = false
		report := ValidatePlayers(gs)
		assert.True(t, report.OK())
		assert.NotEmpty(t, report.Warnings)
	})

	t.Run("single active player warns", func(t *testing.T) {
		gs := newTestState(t)
		gs.Players[1].IsActive = false
		gs.Players[2].IsActive = false
		gs.ActivePlayer = 0
		report := ValidatePlayers(gs)
		assert.True(t, report.OK())
		assert.NotEmpty(t, report.Warnings)
	})
}

func TestValidateCards(t *testing.T) {
	t.Run("community count must match street", func(t *testing.T) {
		gs := newTestState(t)
		gs.BettingRound = Turn // board still has 3 cards
		report := ValidateCards(gs)
		require.False(t, report.OK())
		assert.Contains(t, report.Errors[0], "community")
	})

	t.Run("duplicate card detected", func(t *testing.T) {
		gs := newTestState(t)
		gs.CommunityCards[0] = gs.Players[0].HoleCards[0]
		report := ValidateCards(gs)
		require.False(t, report.OK())
	})

	t.Run("missing cards warn", func(t *testing.T) {
		gs := newTestState(t)
		gs.Deck = gs.Deck[:len(gs.Deck)-2]
		report := ValidateCards(gs)
		assert.True(t, report.OK())
		assert.NotEmpty(t, report.Warnings)
	})

	t.Run("malformed card", func(t *testing.T) {
		gs := newTestState(t)
		gs.CommunityCards[0] = deck.Card{Suit: 9, Rank: 1}
		assert.False(t, ValidateCards(gs).OK())
	})

	t.Run("full deal accounts for 52", func(t *testing.T) {
		gs := newTestState(t)
		report := ValidateCards(gs)
		assert.True(t, report.OK())
		assert.Empty(t, report.Warnings)
	})
}

func TestValidateBetting(t *testing.T) {
	t.Run("blind ordering", func(t *testing.T) {
		gs := newTestState(t)
		gs.SmallBlind = 200
		gs.BigBlind = 200
		assert.False(t, ValidateBetting(gs).OK())
	})

	t.Run("negative pot", func(t *testing.T) {
		gs := newTestState(t)
		gs.Pot = -10
		assert.False(t, ValidateBetting(gs).OK())
	})

	t.Run("unknown betting round", func(t *testing.T) {
		gs := newTestState(t)
		gs.BettingRound = Street(9)
		assert.False(t, ValidateBetting(gs).OK())
	})

	t.Run("unmatched bet after acting warns", func(t *testing.T) {
		gs := newTestState(t)
		gs.CurrentBet = 400
		gs.Players[0].HasActed = true
		gs.Players[0].CurrentBet = 200
		report := ValidateBetting(gs)
		assert.True(t, report.OK())
		assert.NotEmpty(t, report.Warnings)
	})
}

func TestValidateFlow(t *testing.T) {
	t.Run("active player out of range", func(t *testing.T) {
		gs := newTestState(t)
		gs.ActivePlayer = 7
		assert.False(t, ValidateFlow(gs).OK())
	})

	t.Run("active player folded", func(t *testing.T) {
		gs := newTestState(t)
		gs.Players[gs.ActivePlayer].IsActive = false
		assert.False(t, ValidateFlow(gs).OK())
	})

	t.Run("all-in active player warns", func(t *testing.T) {
		gs := newTestState(t)
		p := gs.Players[gs.ActivePlayer]
		p.IsAllIn = true
		p.Chips = 0
		report := ValidateFlow(gs)
		assert.True(t, report.OK())
		assert.NotEmpty(t, report.Warnings)
	})

	t.Run("button out of range", func(t *testing.T) {
		gs := newTestState(t)
		gs.DealerButton = -1
		assert.False(t, ValidateFlow(gs).OK())
	})

	t.Run("hand number", func(t *testing.T) {
		gs := newTestState(t)
		gs.HandNumber = 0
		assert.False(t, ValidateFlow(gs).OK())
	})

	t.Run("high action count warns", func(t *testing.T) {
		gs := newTestState(t)
		gs.ActionCount = 150
		report := ValidateFlow(gs)
		assert.True(t, report.OK())
		assert.NotEmpty(t, report.Warnings)
	})
}
