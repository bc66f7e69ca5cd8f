// Package handeval scores hole cards against the board with a fast
// additive heuristic. Scores land in disjoint bands per hand category
// so that any hand of a stronger category outranks every hand of a
// weaker one, with kicker ranks breaking ties inside a band.
//
// The postflop scorer is deliberately approximate: it classifies from
// rank and suit multiplicities over all six or seven cards rather than
// searching every five-card combination. Keep it that way; the AI
// thresholds are calibrated against these bands.
package handeval

import "github.com/lox/pokertourney/internal/deck"

// Category score bands. Each category occupies a disjoint range.
const (
	bandPair          = 100.0
	bandTwoPair       = 200.0
	bandTrips         = 300.0
	bandStraight      = 400.0
	bandFlush         = 500.0
	bandFullHouse     = 600.0
	bandFourOfAKind   = 700.0
	bandStraightFlush = 800.0
)

// Evaluate scores a two-card hole pair plus zero to five community
// cards. With an empty board it uses the preflop tiers; otherwise the
// postflop category bands.
func Evaluate(hole []deck.Card, community []deck.Card) float64 {
	if len(hole) != 2 {
		return 0
	}
	if len(community) == 0 {
		return evaluatePreflop(hole[0], hole[1])
	}
	return evaluatePostflop(hole, community)
}

// evaluatePreflop scores a starting hand. Pairs sit in tiers by rank;
// non-pairs score from the high/low rank combination plus suited and
// connected bonuses. Strictly increasing by rank within each tier.
func evaluatePreflop(a, b deck.Card) float64 {
	if a.Rank == b.Rank {
		// 22 scores 120, aces 264
		return 120 + float64(a.Value()-2)*12
	}

	high, low := a.Value(), b.Value()
	if low > high {
		high, low = low, high
	}

	score := float64(high)*8 + float64(low)*2
	if a.Suit == b.Suit {
		score += 20
	}
	if high-low == 1 || (high == 14 && low == 2) {
		score += 15
	} else if high-low == 2 {
		score += 7
	}
	return score
}

func evaluatePostflop(hole, community []deck.Card) float64 {
	cards := make([]deck.Card, 0, 7)
	cards = append(cards, hole...)
	cards = append(cards, community...)

	var rankCount [15]int
	var suitCount [4]int
	for _, c := range cards {
		rankCount[c.Value()]++
		suitCount[c.Suit]++
	}

	flushHigh := flushHighCard(cards, suitCount)
	straightHigh := straightHighCard(rankCount)

	var (
		quadRank  int
		tripRanks []int
		pairRanks []int // descending
	)
	for r := 14; r >= 2; r-- {
		switch rankCount[r] {
		case 4:
			quadRank = r
		case 3:
			tripRanks = append(tripRanks, r)
		case 2:
			pairRanks = append(pairRanks, r)
		}
	}

	switch {
	case straightHigh > 0 && flushHigh > 0:
		// Approximation: a straight and a flush present in the same
		// seven cards counts as a straight flush.
		return bandStraightFlush + float64(straightHigh)*6

	case quadRank > 0:
		return bandFourOfAKind + float64(quadRank)*6 + kickerFraction(rankCount, quadRank)

	case len(tripRanks) > 0 && (len(pairRanks) > 0 || len(tripRanks) > 1):
		pair := 0
		if len(tripRanks) > 1 {
			pair = tripRanks[1]
		}
		if len(pairRanks) > 0 && pairRanks[0] > pair {
			pair = pairRanks[0]
		}
		return bandFullHouse + float64(tripRanks[0])*6 + float64(pair)/4

	case flushHigh > 0:
		return bandFlush + float64(flushHigh)*6

	case straightHigh > 0:
		return bandStraight + float64(straightHigh)*6

	case len(tripRanks) > 0:
		return bandTrips + float64(tripRanks[0])*6 + kickerFraction(rankCount, tripRanks[0])

	case len(pairRanks) > 1:
		return bandTwoPair + float64(pairRanks[0])*6 + float64(pairRanks[1])/4

	case len(pairRanks) == 1:
		return bandPair + float64(pairRanks[0])*6 + kickerFraction(rankCount, pairRanks[0])

	default:
		return highCardScore(rankCount)
	}
}

// flushHighCard returns the highest card rank of any five-plus suited
// cards, or 0 when no flush is present.
func flushHighCard(cards []deck.Card, suitCount [4]int) int {
	for suit, n := range suitCount {
		if n < 5 {
			continue
		}
		high := 0
		for _, c := range cards {
			if int(c.Suit) == suit && c.Value() > high {
				high = c.Value()
			}
		}
		return high
	}
	return 0
}

// straightHighCard returns the top rank of the highest five-card run,
// including the wheel (A-2-3-4-5, which reports 5), or 0 when there is
// no straight.
func straightHighCard(rankCount [15]int) int {
	for high := 14; high >= 6; high-- {
		run := true
		for r := high; r > high-5; r-- {
			if rankCount[r] == 0 {
				run = false
				break
			}
		}
		if run {
			return high
		}
	}
	// Wheel: ace plays low
	if rankCount[14] > 0 && rankCount[2] > 0 && rankCount[3] > 0 && rankCount[4] > 0 && rankCount[5] > 0 {
		return 5
	}
	return 0
}

// kickerFraction adds a sub-integer tie-break from the best kicker
// outside the made hand.
func kickerFraction(rankCount [15]int, exclude int) float64 {
	for r := 14; r >= 2; r-- {
		if r != exclude && rankCount[r] > 0 {
			return float64(r) / 20
		}
	}
	return 0
}

// highCardScore stays below 29 so that every made hand outranks it:
// twice the top rank (at most 28) plus fractional lower kickers.
func highCardScore(rankCount [15]int) float64 {
	score := 0.0
	seen := 0
	for r := 14; r >= 2 && seen < 3; r-- {
		if rankCount[r] == 0 {
			continue
		}
		switch seen {
		case 0:
			score += float64(r) * 2
		case 1:
			score += float64(r) / 20
		case 2:
			score += float64(r) / 400
		}
		seen++
	}
	return score
}
