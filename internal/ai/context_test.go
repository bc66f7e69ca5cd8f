package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokertourney/internal/deck"
	"github.com/lox/pokertourney/internal/rules"
	"github.com/lox/pokertourney/internal/state"
)

func TestPositionMultiplier(t *testing.T) {
	assert.Equal(t, 1.15, Button.Multiplier())
	assert.Equal(t, 1.05, Cutoff.Multiplier())
	assert.Equal(t, 0.95, SmallBlind.Multiplier())
	assert.Equal(t, 1.0, BigBlind.Multiplier())
	assert.Equal(t, 0.85, UnderTheGun.Multiplier())
	assert.Equal(t, 0.95, Middle.Multiplier())
	assert.Equal(t, 0.95, Unknown.Multiplier())
}

func TestPositionForSeat(t *testing.T) {
	tests := []struct {
		name       string
		seat       int
		button     int
		numPlayers int
		want       Position
	}{
		{"button", 3, 3, 6, Button},
		{"small blind", 4, 3, 6, SmallBlind},
		{"big blind", 5, 3, 6, BigBlind},
		{"utg wraps around", 0, 3, 6, UnderTheGun},
		{"middle", 1, 3, 6, Middle},
		{"cutoff", 2, 3, 6, Cutoff},
		{"heads-up button", 0, 0, 2, Button},
		{"heads-up big blind", 1, 0, 2, BigBlind},
		{"three-handed has no utg", 2, 0, 3, BigBlind},
		{"single player", 0, 0, 1, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PositionForSeat(tt.seat, tt.button, tt.numPlayers))
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	ctx := GameContext{CallAmount: 500}.ApplyDefaults()

	assert.Equal(t, 1000, ctx.PotSize)
	assert.Equal(t, 5000, ctx.PlayerChips)
	assert.Equal(t, 6, ctx.TotalPlayers)
	assert.Equal(t, 1, ctx.TournamentLevel)
	assert.Equal(t, Unknown, ctx.Position)
	assert.Equal(t, 2.0, ctx.PotOdds)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	ctx := GameContext{PotSize: 300, PlayerChips: 42, PotOdds: 9, Position: Button}.ApplyDefaults()

	assert.Equal(t, 300, ctx.PotSize)
	assert.Equal(t, 42, ctx.PlayerChips)
	assert.Equal(t, 9.0, ctx.PotOdds)
	assert.Equal(t, Button, ctx.Position)
}

func TestContextFromState(t *testing.T) {
	gs := &state.GameState{
		Phase:         state.Playing,
		Pot:           900,
		CurrentBet:    300,
		LastRaiseSize: 200,
		SmallBlind:    100,
		BigBlind:      200,
		DealerButton:  0,
		ActivePlayer:  1,
		HandNumber:    3,
		BettingRound:  state.Flop,
		CommunityCards: deck.MustParseCards("Ah7d2c"),
		Players: []*state.Player{
			{ID: "a", Seat: 0, Chips: 4000, IsActive: true, CurrentBet: 300, HoleCards: deck.MustParseCards("KsKd")},
			{ID: "b", Seat: 1, Chips: 6000, IsActive: true, CurrentBet: 100, HoleCards: deck.MustParseCards("QhJh")},
			{ID: "c", Seat: 2, Chips: 5000, IsActive: true, CurrentBet: 200, HoleCards: deck.MustParseCards("9c9s")},
		},
	}

	ctx := ContextFromState(gs, 1, 4)

	assert.Equal(t, 200, ctx.CallAmount)
	assert.Equal(t, 900, ctx.PotSize)
	assert.Equal(t, 6000, ctx.PlayerChips)
	assert.Equal(t, 100, ctx.PlayerCurrentBet)
	assert.Equal(t, 500, ctx.MinRaise)
	assert.InDelta(t, 4.5, ctx.PotOdds, 1e-9)
	assert.Equal(t, SmallBlind, ctx.Position)
	assert.Equal(t, state.Flop, ctx.BettingRound)
	assert.Equal(t, 4, ctx.TournamentLevel)
	assert.ElementsMatch(t,
		[]rules.Action{rules.Fold, rules.Call, rules.Raise, rules.AllIn},
		ctx.AvailableActions)
}
