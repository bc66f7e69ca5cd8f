// Package rules computes which betting actions a player may take and
// validates proposed actions against the current betting state. It is
// stateless: every function is pure in its inputs.
package rules

import "fmt"

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	case AllIn:
		return "allin"
	default:
		return "unknown"
	}
}

// IsKnown reports whether a is one of the recognized action types.
func (a Action) IsKnown() bool {
	return a >= Fold && a <= AllIn
}

// Actor is the view of a player the legality engine needs.
type Actor struct {
	Chips      int
	CurrentBet int // chips committed this betting round
	IsActive   bool
	IsAllIn    bool
}

// BetState is the view of the table's betting state.
type BetState struct {
	CurrentBet    int
	LastRaiseSize int
	BigBlind      int
}

// Result carries the outcome of validating a proposed action. Errors
// are blocking; warnings are advisory.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Valid = false
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// MinRaiseTotal returns the smallest legal raise-to amount: the current
// bet plus the larger of the last raise size and the big blind.
func MinRaiseTotal(bet BetState) int {
	raise := bet.LastRaiseSize
	if bet.BigBlind > raise {
		raise = bet.BigBlind
	}
	return bet.CurrentBet + raise
}

// AvailableActions returns the legal actions for the player given the
// betting state. Inactive and all-in players have no actions.
func AvailableActions(player Actor, bet BetState) []Action {
	if !player.IsActive || player.IsAllIn {
		return nil
	}

	var actions []Action
	callAmount := bet.CurrentBet - player.CurrentBet

	if callAmount == 0 {
		actions = append(actions, Check)
	}
	if callAmount > 0 && callAmount <= player.Chips {
		actions = append(actions, Call)
	}
	if callAmount > 0 {
		actions = append(actions, Fold)
	}
	if player.Chips >= MinRaiseTotal(bet)-player.CurrentBet {
		actions = append(actions, Raise)
	}
	if player.Chips > 0 {
		actions = append(actions, AllIn)
	}

	return actions
}

// contains reports whether action is in the available set.
func contains(actions []Action, action Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// ValidateAction checks a proposed action and amount against the
// betting state. The returned Result is blocking only when Errors is
// non-empty; warnings flag legal-but-suspect play.
func ValidateAction(action Action, amount int, player Actor, bet BetState) Result {
	result := Result{Valid: true}

	if !action.IsKnown() {
		result.errorf("unrecognized action type %d", int(action))
		return result
	}

	if !player.IsActive {
		result.errorf("player is not active in this hand")
		return result
	}
	if player.IsAllIn {
		result.errorf("player is already all-in")
		return result
	}

	available := AvailableActions(player, bet)
	if !contains(available, action) {
		result.errorf("action %s is not available", action)
	}

	callAmount := bet.CurrentBet - player.CurrentBet

	switch action {
	case Raise:
		if amount <= 0 {
			result.errorf("raise amount must be positive, got %d", amount)
			return result
		}
		minTotal := MinRaiseTotal(bet)
		maxTotal := player.CurrentBet + player.Chips
		if amount < minTotal {
			result.errorf("raise to %d is below minimum %d", amount, minTotal)
		}
		if amount > maxTotal {
			result.errorf("raise to %d exceeds maximum %d", amount, maxTotal)
		}
		if additional := amount - player.CurrentBet; additional > player.Chips {
			result.errorf("raise requires %d more chips but player has %d", additional, player.Chips)
		}

	case Call:
		if callAmount <= 0 {
			result.warnf("nothing to call, player should check instead")
		}
		if callAmount > player.Chips {
			result.errorf("call of %d exceeds player's %d chips", callAmount, player.Chips)
		}

	case AllIn:
		if player.Chips <= 0 {
			result.errorf("cannot go all-in with no chips")
		}

	case Check:
		if bet.CurrentBet > player.CurrentBet {
			result.errorf("cannot check facing a bet of %d", bet.CurrentBet)
		}
	}

	return result
}
