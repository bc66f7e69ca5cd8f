package state

import (
	"fmt"

	"github.com/lox/pokertourney/internal/deck"
	"github.com/lox/pokertourney/internal/rules"
)

// Report collects errors and warnings from one or more validation
// sections. Errors block the transition; warnings do not.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the state passed with no blocking errors.
func (r Report) OK() bool {
	return len(r.Errors) == 0
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) merge(other Report) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Validate runs every section against the state.
func Validate(gs *GameState) Report {
	var report Report
	report.merge(ValidatePlayers(gs))
	report.merge(ValidateCards(gs))
	report.merge(ValidateBetting(gs))
	report.merge(ValidateFlow(gs))
	return report
}

// QuickValidate is a cheap boolean gate for hot paths: non-empty
// players and non-negative pot and current bet. It does not replace the
// full validator.
func QuickValidate(gs *GameState) bool {
	if gs == nil || len(gs.Players) == 0 {
		return false
	}
	return gs.Pot >= 0 && gs.CurrentBet >= 0
}

// ValidatePlayers checks the player array: size, required fields,
// unique ids and seats, chip and bet sanity, and hole card shape.
func ValidatePlayers(gs *GameState) Report {
	var report Report

	if len(gs.Players) == 0 {
		report.errorf("players array is empty")
		return report
	}
	if len(gs.Players) > MaxSeats {
		report.errorf("too many players: %d (max %d)", len(gs.Players), MaxSeats)
	}

	seenIDs := make(map[string]bool, len(gs.Players))
	seenSeats := make(map[int]bool, len(gs.Players))
	humans := 0
	active := 0

	for i, p := range gs.Players {
		if p == nil {
			report.errorf("player %d is nil", i)
			continue
		}
		if p.ID == "" {
			report.errorf("player %d has no id", i)
		} else if seenIDs[p.ID] {
			report.errorf("duplicate player id %q", p.ID)
		}
		seenIDs[p.ID] = true

		if p.Seat < 0 || p.Seat >= MaxSeats {
			report.errorf("player %q seat %d out of range [0,%d]", p.ID, p.Seat, MaxSeats-1)
		} else if seenSeats[p.Seat] {
			report.errorf("duplicate seat %d", p.Seat)
		}
		seenSeats[p.Seat] = true

		if p.Chips < 0 {
			report.errorf("player %q has negative chips: %d", p.ID, p.Chips)
		}
		if p.CurrentBet < 0 {
			report.errorf("player %q has negative current bet: %d", p.ID, p.CurrentBet)
		}

		if n := len(p.HoleCards); n != 0 && n != 2 {
			report.errorf("player %q has %d hole cards (must be 0 or 2)", p.ID, n)
		}
		for _, c := range p.HoleCards {
			if !deck.IsValid(c) {
				report.errorf("player %q holds malformed card %v", p.ID, c)
			}
		}

		if p.IsAllIn && p.Chips > 0 {
			report.warnf("player %q flagged all-in but has %d chips", p.ID, p.Chips)
		}
		if !p.IsAllIn && p.IsActive && p.Chips == 0 {
			report.warnf("player %q is active with zero chips but not flagged all-in", p.ID)
		}

		if p.IsHuman {
			humans++
		}
		if p.IsActive {
			active++
		}
	}

	if humans == 0 {
		report.warnf("no human players in game")
	} else if humans > 1 {
		report.warnf("%d human players in game", humans)
	}
	if active < 2 {
		report.warnf("fewer than 2 active players: %d", active)
	}

	return report
}

// ValidateCards checks the card arrays: shape, per-street community
// count, the 52-card budget, and duplicate detection across the full
// combined set.
func ValidateCards(gs *GameState) Report {
	var report Report

	if len(gs.CommunityCards) > 5 {
		report.errorf("too many community cards: %d", len(gs.CommunityCards))
	}
	if len(gs.BurnCards) > 4 {
		report.errorf("too many burn cards: %d", len(gs.BurnCards))
	}

	if expected := gs.BettingRound.CommunityCardCount(); len(gs.CommunityCards) != expected {
		report.errorf("betting round %s requires %d community cards, found %d",
			gs.BettingRound, expected, len(gs.CommunityCards))
	}

	seen := make(map[string]bool, 52)
	total := 0
	check := func(where string, cards []deck.Card) {
		for _, c := range cards {
			if !deck.IsValid(c) {
				report.errorf("%s contains malformed card %v", where, c)
				continue
			}
			if seen[c.Key()] {
				report.errorf("duplicate card %s in %s", c, where)
			}
			seen[c.Key()] = true
			total++
		}
	}

	check("deck", gs.Deck)
	check("community", gs.CommunityCards)
	check("burn", gs.BurnCards)
	for _, p := range gs.Players {
		if p != nil {
			check(fmt.Sprintf("player %q hole cards", p.ID), p.HoleCards)
		}
	}

	if total > 52 {
		report.errorf("%d cards in play exceeds a 52-card deck", total)
	} else if total < 52 {
		report.warnf("only %d of 52 cards accounted for", total)
	}

	return report
}

// ValidateBetting checks pot and blind arithmetic and flags players
// whose bets are inconsistent with the table's current bet.
func ValidateBetting(gs *GameState) Report {
	var report Report

	if gs.Pot < 0 {
		report.errorf("pot is negative: %d", gs.Pot)
	}
	if gs.CurrentBet < 0 {
		report.errorf("current bet is negative: %d", gs.CurrentBet)
	}
	if gs.SmallBlind <= 0 {
		report.errorf("small blind must be positive, got %d", gs.SmallBlind)
	}
	if gs.BigBlind <= 0 {
		report.errorf("big blind must be positive, got %d", gs.BigBlind)
	}
	if gs.BigBlind > 0 && gs.SmallBlind > 0 && gs.BigBlind <= gs.SmallBlind {
		report.errorf("big blind %d must exceed small blind %d", gs.BigBlind, gs.SmallBlind)
	}

	for _, p := range gs.Players {
		if p == nil {
			continue
		}
		// A player who has acted, still has chips, and is not all-in
		// should have matched the current bet. Inconsistent but not
		// illegal (they may have acted before a raise), so warn only.
		if p.IsActive && p.HasActed && !p.IsAllIn && p.Chips > 0 && p.CurrentBet < gs.CurrentBet {
			report.warnf("player %q has acted but bet %d is below current bet %d",
				p.ID, p.CurrentBet, gs.CurrentBet)
		}
	}

	if !gs.BettingRound.IsKnown() {
		report.errorf("unknown betting round %d", int(gs.BettingRound))
	}

	return report
}

// ValidateFlow checks turn-order bookkeeping: active player and button
// indexes, hand number, and the action counter.
func ValidateFlow(gs *GameState) Report {
	var report Report

	if gs.ActivePlayer < 0 || gs.ActivePlayer >= len(gs.Players) {
		report.errorf("active player index %d out of range", gs.ActivePlayer)
	} else if p := gs.Players[gs.ActivePlayer]; p != nil {
		if !p.IsActive {
			report.errorf("active player %q is not active in the hand", p.ID)
		}
		// The legality engine offers no actions to an all-in player;
		// the hand should have skipped them.
		if p.IsActive && len(rules.AvailableActions(p.Actor(), gs.BetState())) == 0 {
			report.warnf("active player %q has no available actions (all-in?)", p.ID)
		}
	}

	if gs.DealerButton < 0 || gs.DealerButton >= len(gs.Players) {
		report.errorf("dealer button index %d out of range", gs.DealerButton)
	}
	if gs.HandNumber < 1 {
		report.errorf("hand number must be >= 1, got %d", gs.HandNumber)
	}
	if gs.ActionCount < 0 {
		report.errorf("action count is negative: %d", gs.ActionCount)
	} else if gs.ActionCount > 100 {
		report.warnf("action count %d is unusually high, possible stuck loop", gs.ActionCount)
	}

	return report
}
