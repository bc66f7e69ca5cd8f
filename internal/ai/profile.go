// Package ai implements the personality-driven decision engine for
// non-human players. A PersonalityProfile parameterizes the engine
// along four continuous axes; everything else is derived from it, the
// structured game context, and three injected random draws.
package ai

// PersonalityProfile is the 4-dimensional behavioral parameterization
// of an AI player. Each axis is in [0,1]. Profiles are immutable:
// updates swap the whole value, never individual fields, so concurrent
// readers never observe a half-updated profile.
type PersonalityProfile struct {
	Tightness     float64
	Aggression    float64
	Adaptability  float64
	RiskTolerance float64
}

// Clamp returns the profile with every axis clamped into [0,1].
func (p PersonalityProfile) Clamp() PersonalityProfile {
	return PersonalityProfile{
		Tightness:     clamp01(p.Tightness),
		Aggression:    clamp01(p.Aggression),
		Adaptability:  clamp01(p.Adaptability),
		RiskTolerance: clamp01(p.RiskTolerance),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BehaviorThresholds are derived play parameters, a pure deterministic
// function of a profile. They are recomputed whenever the profile is
// replaced.
type BehaviorThresholds struct {
	HandSelectionThreshold float64
	RaiseFrequency         float64
	BluffFrequency         float64
	FoldThreshold          float64
	AdaptabilityFactor     float64
	PositionSensitivity    float64
	VarianceTolerance      float64
	BettingSizeMultiplier  float64
}

// ComputeThresholds derives behavior thresholds from a profile.
func ComputeThresholds(p PersonalityProfile) BehaviorThresholds {
	return BehaviorThresholds{
		HandSelectionThreshold: 0.3 + 0.5*p.Tightness,
		RaiseFrequency:         0.1 + 0.4*p.Aggression,
		BluffFrequency:         0.05 + 0.25*p.Aggression*(1-p.Tightness),
		FoldThreshold:          0.2 + 0.4*p.Tightness,
		AdaptabilityFactor:     p.Adaptability,
		PositionSensitivity:    0.5 + 0.5*p.Adaptability,
		VarianceTolerance:      p.RiskTolerance,
		BettingSizeMultiplier:  0.8 + 0.6*p.Aggression + 0.2*p.RiskTolerance,
	}
}

// styleProfiles maps legacy player-style tags to profiles. The table is
// a pure lookup; callers receive a copy they own.
var styleProfiles = map[string]PersonalityProfile{
	"rock":            {Tightness: 0.9, Aggression: 0.2, Adaptability: 0.3, RiskTolerance: 0.2},
	"tag":             {Tightness: 0.7, Aggression: 0.7, Adaptability: 0.6, RiskTolerance: 0.5},
	"lag":             {Tightness: 0.25, Aggression: 0.8, Adaptability: 0.7, RiskTolerance: 0.7},
	"maniac":          {Tightness: 0.1, Aggression: 0.95, Adaptability: 0.4, RiskTolerance: 0.9},
	"calling-station": {Tightness: 0.3, Aggression: 0.15, Adaptability: 0.2, RiskTolerance: 0.4},
	"balanced":        {Tightness: 0.5, Aggression: 0.5, Adaptability: 0.5, RiskTolerance: 0.5},
}

// ProfileForStyle returns the profile for a legacy style tag.
func ProfileForStyle(style string) (PersonalityProfile, bool) {
	p, ok := styleProfiles[style]
	return p, ok
}

// Styles returns the known legacy style tags.
func Styles() []string {
	styles := make([]string, 0, len(styleProfiles))
	for s := range styleProfiles {
		styles = append(styles, s)
	}
	return styles
}
