package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeThresholds(t *testing.T) {
	th := ComputeThresholds(PersonalityProfile{Tightness: 0.5, Aggression: 0.5, Adaptability: 0.5, RiskTolerance: 0.5})

	assert.InDelta(t, 0.55, th.HandSelectionThreshold, 1e-9)
	assert.InDelta(t, 0.3, th.RaiseFrequency, 1e-9)
	assert.InDelta(t, 0.1125, th.BluffFrequency, 1e-9)
	assert.InDelta(t, 0.4, th.FoldThreshold, 1e-9)
	assert.InDelta(t, 0.5, th.AdaptabilityFactor, 1e-9)
	assert.InDelta(t, 0.75, th.PositionSensitivity, 1e-9)
	assert.InDelta(t, 0.5, th.VarianceTolerance, 1e-9)
	assert.InDelta(t, 1.2, th.BettingSizeMultiplier, 1e-9)
}

func TestThresholdsMoveWithAxes(t *testing.T) {
	loose := ComputeThresholds(PersonalityProfile{Tightness: 0.1, Aggression: 0.8})
	tight := ComputeThresholds(PersonalityProfile{Tightness: 0.9, Aggression: 0.8})

	assert.Less(t, loose.HandSelectionThreshold, tight.HandSelectionThreshold)
	assert.Less(t, loose.FoldThreshold, tight.FoldThreshold)
	// A tight player bluffs less at the same aggression.
	assert.Greater(t, loose.BluffFrequency, tight.BluffFrequency)
}

func TestClamp(t *testing.T) {
	p := PersonalityProfile{Tightness: -1, Aggression: 1.5, Adaptability: 0.5, RiskTolerance: 100}.Clamp()
	assert.Equal(t, PersonalityProfile{Tightness: 0, Aggression: 1, Adaptability: 0.5, RiskTolerance: 1}, p)
}

func TestStyleProfiles(t *testing.T) {
	require.NotEmpty(t, Styles())

	for _, style := range Styles() {
		p, ok := ProfileForStyle(style)
		require.True(t, ok)
		assert.Equal(t, p, p.Clamp(), "style %s has out-of-range axes", style)
	}

	rock, _ := ProfileForStyle("rock")
	maniac, _ := ProfileForStyle("maniac")
	assert.Greater(t, rock.Tightness, maniac.Tightness)
	assert.Less(t, rock.Aggression, maniac.Aggression)

	_, ok := ProfileForStyle("nit")
	assert.False(t, ok)
}
