package ai

import (
	"github.com/lox/pokertourney/internal/deck"
	"github.com/lox/pokertourney/internal/rules"
	"github.com/lox/pokertourney/internal/state"
)

// Position labels a seat relative to the button.
type Position string

const (
	Button      Position = "button"
	Cutoff      Position = "cutoff"
	SmallBlind  Position = "small_blind"
	BigBlind    Position = "big_blind"
	UnderTheGun Position = "under_the_gun"
	Middle      Position = "middle"
	Unknown     Position = "unknown"
)

// Multiplier returns the positional strength multiplier. Late position
// plays more hands, early position fewer.
func (p Position) Multiplier() float64 {
	switch p {
	case Button:
		return 1.15
	case Cutoff:
		return 1.05
	case SmallBlind:
		return 0.95
	case BigBlind:
		return 1.0
	case UnderTheGun:
		return 0.85
	default:
		return 0.95
	}
}

// GameContext is the structured decision input for the AI engine.
// Adapters build it from a GameState (or any other source); the engine
// never reads table state directly.
type GameContext struct {
	AvailableActions []rules.Action
	HoleCards        []deck.Card
	CommunityCards   []deck.Card
	CallAmount       int
	PotSize          int
	PlayerChips      int
	PlayerCurrentBet int
	MinRaise         int // minimum raise-to total
	PotOdds          float64
	TotalPlayers     int
	Position         Position
	BettingRound     state.Street
	TournamentLevel  int
}

// ApplyDefaults fills absent fields with the documented defaults so a
// sparsely populated context still produces a sane decision.
func (ctx GameContext) ApplyDefaults() GameContext {
	if ctx.PotSize == 0 {
		ctx.PotSize = 1000
	}
	if ctx.PlayerChips == 0 {
		ctx.PlayerChips = 5000
	}
	if ctx.TotalPlayers == 0 {
		ctx.TotalPlayers = 6
	}
	if ctx.TournamentLevel == 0 {
		ctx.TournamentLevel = 1
	}
	if ctx.Position == "" {
		ctx.Position = Unknown
	}
	if ctx.PotOdds == 0 && ctx.CallAmount > 0 {
		ctx.PotOdds = float64(ctx.PotSize) / float64(ctx.CallAmount)
	}
	return ctx
}

// PositionForSeat derives the position label of a seat index within the
// ordering of players, given the dealer button index.
func PositionForSeat(seatIndex, buttonIndex, numPlayers int) Position {
	if numPlayers < 2 {
		return Unknown
	}

	offset := ((seatIndex - buttonIndex) % numPlayers + numPlayers) % numPlayers
	switch offset {
	case 0:
		return Button
	case 1:
		if numPlayers == 2 {
			return BigBlind // heads-up: button posts the small blind
		}
		return SmallBlind
	case 2:
		return BigBlind
	case 3:
		if numPlayers > 3 {
			return UnderTheGun
		}
	}
	if offset == numPlayers-1 && numPlayers > 3 {
		return Cutoff
	}
	return Middle
}

// ContextFromState builds a GameContext for the player at index idx.
func ContextFromState(gs *state.GameState, idx, tournamentLevel int) GameContext {
	p := gs.Players[idx]
	callAmount := gs.CurrentBet - p.CurrentBet
	if callAmount < 0 {
		callAmount = 0
	}

	potOdds := 0.0
	if callAmount > 0 {
		potOdds = float64(gs.Pot) / float64(callAmount)
	}

	return GameContext{
		AvailableActions: rules.AvailableActions(p.Actor(), gs.BetState()),
		HoleCards:        p.HoleCards,
		CommunityCards:   gs.CommunityCards,
		CallAmount:       callAmount,
		PotSize:          gs.Pot,
		PlayerChips:      p.Chips,
		PlayerCurrentBet: p.CurrentBet,
		MinRaise:         rules.MinRaiseTotal(gs.BetState()),
		PotOdds:          potOdds,
		TotalPlayers:     len(gs.Players),
		Position:         PositionForSeat(idx, gs.DealerButton, len(gs.Players)),
		BettingRound:     gs.BettingRound,
		TournamentLevel:  tournamentLevel,
	}
}
