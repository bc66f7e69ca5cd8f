package handeval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/internal/deck"
)

func score(t *testing.T, hole, board string) float64 {
	t.Helper()
	var community []deck.Card
	if board != "" {
		community = deck.MustParseCards(board)
	}
	return Evaluate(deck.MustParseCards(hole), community)
}

func TestPreflopPairTiers(t *testing.T) {
	aces := score(t, "AsAh", "")
	kings := score(t, "KsKh", "")
	deuces := score(t, "2s2h", "")

	assert.Greater(t, aces, kings, "AA should outrank KK")
	assert.Greater(t, kings, deuces, "KK should outrank 22")

	// Strictly increasing by rank within the pair tier
	prev := deuces
	for _, hand := range []string{"3s3h", "4s4h", "5s5h", "6s6h", "7s7h", "8s8h", "9s9h", "TsTh", "JsJh", "QsQh", "KsKh", "AsAh"} {
		cur := score(t, hand, "")
		require.Greater(t, cur, prev, "pair %s", hand)
		prev = cur
	}
}

func TestPreflopSuitedAndConnectedBonuses(t *testing.T) {
	assert.Greater(t, score(t, "AsKs", ""), score(t, "AsKh", ""), "suited AK should outrank offsuit AK")
	assert.Greater(t, score(t, "9s8s", ""), score(t, "9s8h", ""), "suited connector bonus")
	assert.Greater(t, score(t, "9s8h", ""), score(t, "9s7h", ""), "connectors beat one-gappers of the same high card")
	assert.Greater(t, score(t, "AsKh", ""), score(t, "7s2h", ""))
}

func TestPostflopCategoryOrdering(t *testing.T) {
	highCard := score(t, "AsKh", "9d5c2s")
	pair := score(t, "AsAh", "9d5c2s")
	twoPair := score(t, "As9h", "Ad9d2s")
	trips := score(t, "AsAh", "Ad5c2s")
	straight := score(t, "6s7h", "8d9cTs")
	flush := score(t, "AsKs", "9s5s2s")
	fullHouse := score(t, "AsAh", "Ad5c5s")
	quads := score(t, "AsAh", "AdAc2s")
	straightFlush := score(t, "6s7s", "8s9sTs")

	ordered := []float64{highCard, pair, twoPair, trips, straight, flush, fullHouse, quads, straightFlush}
	for i := 1; i < len(ordered); i++ {
		require.Greater(t, ordered[i], ordered[i-1], "category %d should outrank category %d", i, i-1)
	}
}

func TestPostflopBands(t *testing.T) {
	// Any flush beats any high card and loses to any full house
	weakFlush := score(t, "2s3s", "7s8s9sAhKd")
	bigHighCard := score(t, "AsKh", "QdJc9s")
	smallFullHouse := score(t, "2s2h", "2d3c3s")

	assert.Less(t, bigHighCard, 29.0, "high card band stays below 29")
	assert.GreaterOrEqual(t, weakFlush, 500.0)
	assert.Less(t, weakFlush, 600.0)
	assert.GreaterOrEqual(t, smallFullHouse, 600.0)
	assert.Less(t, smallFullHouse, 700.0)
	assert.Greater(t, weakFlush, bigHighCard)
	assert.Greater(t, smallFullHouse, weakFlush)
}

func TestWheelStraight(t *testing.T) {
	wheel := score(t, "As2h", "3d4c5s")
	assert.GreaterOrEqual(t, wheel, 400.0)
	assert.Less(t, wheel, 500.0)

	sixHigh := score(t, "2s3h", "4d5c6s")
	assert.Greater(t, sixHigh, wheel, "six-high straight beats the wheel")
}

func TestKickersBreakTiesWithinBand(t *testing.T) {
	pairAceKicker := score(t, "9s9h", "Ad5c2s")
	pairQueenKicker := score(t, "9s9h", "Qd5c2s")
	assert.Greater(t, pairAceKicker, pairQueenKicker)

	twoPairBig := score(t, "AsKh", "AdKc2s")
	twoPairSmall := score(t, "AsQh", "AdQc2s")
	assert.Greater(t, twoPairBig, twoPairSmall)
}

func TestTurnAndRiverBoards(t *testing.T) {
	flop := score(t, "AsKs", "Qs5h2d")
	turn := score(t, "AsKs", "Qs5h2dJs")
	river := score(t, "AsKs", "Qs5h2dJsTs")

	// Draw completes by the river: royal-flush cards score in the top band
	assert.Less(t, flop, 100.0)
	assert.Less(t, turn, 100.0)
	assert.GreaterOrEqual(t, river, 800.0)
}

func TestMalformedHoleCards(t *testing.T) {
	assert.Equal(t, 0.0, Evaluate(nil, nil))
	assert.Equal(t, 0.0, Evaluate(deck.MustParseCards("As"), nil))
}
