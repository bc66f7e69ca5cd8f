package ai

import (
	rand "math/rand/v2"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/handeval"
	"github.com/lox/pokertourney/internal/rules"
	"github.com/lox/pokertourney/internal/state"
)

// Decision is the engine's chosen action. Amount is the raise-to total
// and is zero for everything but raises.
type Decision struct {
	Action    rules.Action
	Amount    int
	Reasoning string
}

// Rounder rounds a proposed bet to the tournament's valid chip
// increment for a level. Satisfied by *structure.Structure.
type Rounder interface {
	RoundToChipIncrement(amount, level int) int
	MinBettingIncrement(level int) int
}

// behavior pairs a profile with its derived thresholds so both swap
// together.
type behavior struct {
	profile    PersonalityProfile
	thresholds BehaviorThresholds
}

// Engine makes decisions for one AI player. The random source is
// injected so play is reproducible under a fixed seed; the profile is
// swapped as a whole object, making concurrent decisions for different
// players safe.
type Engine struct {
	behavior atomic.Pointer[behavior]
	rounder  Rounder
	rng      *rand.Rand
	logger   *log.Logger
}

// NewEngine creates a decision engine from a personality profile.
func NewEngine(profile PersonalityProfile, rounder Rounder, rng *rand.Rand, logger *log.Logger) *Engine {
	e := &Engine{
		rounder: rounder,
		rng:     rng,
		logger:  logger,
	}
	e.UpdateProfile(profile)
	return e
}

// NewEngineForStyle creates an engine from a legacy style tag, falling
// back to the balanced profile for unknown tags.
func NewEngineForStyle(style string, rounder Rounder, rng *rand.Rand, logger *log.Logger) *Engine {
	profile, ok := ProfileForStyle(style)
	if !ok {
		logger.Warn("unknown player style, using balanced", "style", style)
		profile = styleProfiles["balanced"]
	}
	return NewEngine(profile, rounder, rng, logger)
}

// UpdateProfile replaces the engine's personality wholesale and
// recomputes the derived thresholds.
func (e *Engine) UpdateProfile(profile PersonalityProfile) {
	p := profile.Clamp()
	e.behavior.Store(&behavior{profile: p, thresholds: ComputeThresholds(p)})
}

// Profile returns the engine's current personality profile.
func (e *Engine) Profile() PersonalityProfile {
	return e.behavior.Load().profile
}

// Thresholds returns the derived behavior thresholds.
func (e *Engine) Thresholds() BehaviorThresholds {
	return e.behavior.Load().thresholds
}

// Decide picks an action for the given context. The pipeline is
// deterministic apart from three Bernoulli draws (bluff, semi-bluff,
// value-raise) and the raise-size jitter, all drawn from the injected
// random source.
func (e *Engine) Decide(ctx GameContext) Decision {
	ctx = ctx.ApplyDefaults()
	b := e.behavior.Load()
	p, th := b.profile, b.thresholds

	if len(ctx.AvailableActions) == 0 {
		return Decision{Action: rules.Fold, Reasoning: "no available actions"}
	}

	raw := handeval.Evaluate(ctx.HoleCards, ctx.CommunityCards)

	// Positional adjustment scales with adaptability: an adaptable
	// player leans on position, an oblivious one ignores it.
	positionAdjustment := 1 + p.Adaptability*(ctx.Position.Multiplier()-1)
	adjusted := raw * positionAdjustment

	// Short stacks loosen up with risk tolerance
	finalStrength := adjusted
	if ctx.PotSize > 0 && float64(ctx.PlayerChips)/float64(ctx.PotSize) < 10 {
		finalStrength = adjusted * (1 + p.RiskTolerance*0.3)
	}

	foldThreshold := 40 + 40*p.Tightness
	callThreshold := 60 + 60*p.Tightness
	raiseThreshold := 100 + 80*p.Tightness + 100*p.Aggression
	allInThreshold := 350 + 150*p.RiskTolerance

	potOddsThreshold := 1.8 + 0.7*p.Tightness
	hasGoodPotOdds := ctx.PotOdds >= potOddsThreshold
	hasGreatPotOdds := ctx.PotOdds >= 1.3*potOddsThreshold

	bluff, semiBluff, valueRaise := e.drawRaiseFlags(ctx, th, finalStrength, callThreshold, raiseThreshold)

	e.logger.Debug("ai decision inputs",
		"raw", raw,
		"final", finalStrength,
		"position", ctx.Position,
		"potOdds", ctx.PotOdds,
		"bluff", bluff,
		"semiBluff", semiBluff,
		"valueRaise", valueRaise)

	// Resolve in strict priority, falling through when the preferred
	// action is not available.
	if finalStrength >= allInThreshold && has(ctx.AvailableActions, rules.AllIn) {
		return Decision{Action: rules.AllIn, Reasoning: "monster hand"}
	}

	if (finalStrength >= raiseThreshold || bluff || semiBluff || valueRaise) && has(ctx.AvailableActions, rules.Raise) {
		amount := e.raiseAmount(ctx, p, th, finalStrength, raiseThreshold, bluff)
		reason := "strength raise"
		switch {
		case bluff:
			reason = "bluff"
		case semiBluff:
			reason = "semi-bluff"
		case valueRaise:
			reason = "value raise"
		}
		return Decision{Action: rules.Raise, Amount: amount, Reasoning: reason}
	}

	if has(ctx.AvailableActions, rules.Call) {
		// A bet over half the pot or most of the stack needs a
		// materially stronger hand to continue.
		required := callThreshold
		bigBet := float64(ctx.CallAmount) > 0.5*float64(ctx.PotSize) ||
			float64(ctx.CallAmount) > 0.8*float64(ctx.PlayerChips)
		if bigBet {
			required = callThreshold * 1.5
		}
		switch {
		case finalStrength >= required:
			return Decision{Action: rules.Call, Reasoning: "strength call"}
		case hasGreatPotOdds && !bigBet:
			return Decision{Action: rules.Call, Reasoning: "great pot odds"}
		case hasGoodPotOdds && finalStrength >= foldThreshold && !bigBet:
			return Decision{Action: rules.Call, Reasoning: "pot odds call"}
		}
	}

	if finalStrength >= foldThreshold && has(ctx.AvailableActions, rules.Check) {
		return Decision{Action: rules.Check, Reasoning: "free card"}
	}

	if has(ctx.AvailableActions, rules.Fold) {
		return Decision{Action: rules.Fold, Reasoning: "below fold threshold"}
	}

	// Should not happen with a correctly computed available-action set
	return Decision{Action: ctx.AvailableActions[0], Reasoning: "emergency fallback"}
}

// drawRaiseFlags draws the three independent Bernoulli variables that
// let the engine raise without a threshold-beating hand.
func (e *Engine) drawRaiseFlags(ctx GameContext, th BehaviorThresholds, finalStrength, callThreshold, raiseThreshold float64) (bluff, semiBluff, valueRaise bool) {
	bluffProb := th.BluffFrequency
	if ctx.Position == Button {
		bluffProb *= 1.5
	}
	if ctx.BettingRound == state.Turn || ctx.BettingRound == state.River {
		bluffProb *= 1.3
	}
	bluff = e.rng.Float64() < bluffProb

	semiBluff = ctx.BettingRound == state.Flop &&
		finalStrength >= callThreshold && finalStrength < raiseThreshold &&
		e.rng.Float64() < th.RaiseFrequency*0.5

	valueRaise = finalStrength >= raiseThreshold*0.85 &&
		e.rng.Float64() < th.RaiseFrequency

	return bluff, semiBluff, valueRaise
}

// raiseAmount sizes a raise: pick a pot-fraction sub-range by strategy,
// scale for personality, clamp to the legal window, and round to the
// level's chip increment so the amount is attainable with active
// denominations.
func (e *Engine) raiseAmount(ctx GameContext, p PersonalityProfile, th BehaviorThresholds, finalStrength, raiseThreshold float64, bluff bool) int {
	var fraction float64
	switch {
	case bluff:
		fraction = 0.4 + e.rng.Float64()*0.2 // 0.4-0.6x pot
	case finalStrength >= raiseThreshold*1.2:
		fraction = 0.75 + e.rng.Float64()*0.4 // 0.75-1.15x pot, value
	default:
		fraction = 0.5 + e.rng.Float64()*0.3 // 0.5-0.8x pot
	}

	fraction *= th.BettingSizeMultiplier * (1 + 0.2*p.Aggression + 0.1*p.RiskTolerance)

	amount := int(float64(ctx.PotSize) * fraction)

	minTotal := ctx.MinRaise
	maxTotal := ctx.PlayerCurrentBet + ctx.PlayerChips
	if amount < minTotal {
		amount = minTotal
	}
	if amount > maxTotal {
		amount = maxTotal
	}

	inc := e.rounder.MinBettingIncrement(ctx.TournamentLevel)
	rounded := e.rounder.RoundToChipIncrement(amount, ctx.TournamentLevel)
	for rounded < minTotal {
		rounded += inc
	}
	for rounded > maxTotal && rounded-inc >= minTotal {
		rounded -= inc
	}
	if rounded > maxTotal {
		rounded = maxTotal // stack size itself may be off-increment
	}
	return rounded
}

func has(actions []rules.Action, action rules.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
