// Package state holds the per-hand game state and its invariant
// validator. The validator is a set of pure functions: four
// independently composable sections (players, cards, betting, flow)
// each report blocking errors and advisory warnings, and Validate
// aggregates them. Callers run it before applying a state transition.
package state

import (
	"github.com/lox/pokertourney/internal/deck"
	"github.com/lox/pokertourney/internal/rules"
)

// Phase represents the lifecycle of a game
type Phase int

const (
	Setup Phase = iota
	Playing
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case Playing:
		return "playing"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// IsKnown reports whether s is one of the four betting rounds.
func (s Street) IsKnown() bool {
	return s >= Preflop && s <= River
}

// CommunityCardCount returns the number of community cards that must be
// on the board during this street.
func (s Street) CommunityCardCount() int {
	switch s {
	case Flop:
		return 3
	case Turn:
		return 4
	case River:
		return 5
	default:
		return 0
	}
}

// MaxSeats is the largest number of players at a single table.
const MaxSeats = 9

// Player represents a seat in a hand. Players are owned by a GameState
// and mutated only through validated actions.
type Player struct {
	ID                string
	Seat              int
	Chips             int
	HoleCards         []deck.Card
	IsHuman           bool
	IsActive          bool
	CurrentBet        int
	TotalContribution int
	HasActed          bool
	IsAllIn           bool
}

// Actor returns the legality-engine view of this player.
func (p *Player) Actor() rules.Actor {
	return rules.Actor{
		Chips:      p.Chips,
		CurrentBet: p.CurrentBet,
		IsActive:   p.IsActive,
		IsAllIn:    p.IsAllIn,
	}
}

// SidePot is a pot a subset of players is eligible for, created by an
// all-in for less than the full bet.
type SidePot struct {
	Amount   int
	Eligible []string // player IDs
}

// GameState is the full state of one hand at one table.
type GameState struct {
	Phase          Phase
	Players        []*Player
	Deck           []deck.Card
	CommunityCards []deck.Card
	BurnCards      []deck.Card
	Pot            int
	SidePots       []SidePot
	CurrentBet     int
	LastRaiseSize  int
	DealerButton   int
	SmallBlind     int
	BigBlind       int
	ActivePlayer   int
	HandNumber     int
	BettingRound   Street
	ActionCount    int
}

// BetState returns the legality-engine view of the betting state.
func (gs *GameState) BetState() rules.BetState {
	return rules.BetState{
		CurrentBet:    gs.CurrentBet,
		LastRaiseSize: gs.LastRaiseSize,
		BigBlind:      gs.BigBlind,
	}
}

// ActivePlayers returns the players still in the hand.
func (gs *GameState) ActivePlayers() []*Player {
	var active []*Player
	for _, p := range gs.Players {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}
