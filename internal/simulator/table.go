package simulator

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/ai"
	"github.com/lox/pokertourney/internal/deck"
	"github.com/lox/pokertourney/internal/handeval"
	"github.com/lox/pokertourney/internal/rules"
	"github.com/lox/pokertourney/internal/state"
	"github.com/lox/pokertourney/internal/structure"
)

// maxActionsPerHand bounds the betting loop so a broken decision source
// cannot spin a hand forever.
const maxActionsPerHand = 200

// seat is one player at a table across hands.
type seat struct {
	ID     string
	Chips  int
	Engine *ai.Engine
}

// Table plays hands for a group of seats. It owns its random source so
// concurrent tables never contend.
type table struct {
	id        int
	seats     []*seat
	button    int
	structure *structure.Structure
	rng       *rand.Rand
	logger    *log.Logger
}

func (t *table) engineFor(id string) *ai.Engine {
	for _, s := range t.seats {
		if s.ID == id {
			return s.Engine
		}
	}
	return nil
}

// handOutcome summarizes one completed hand.
type handOutcome struct {
	handNumber     int
	tableID        int
	Pot            int
	WinnerIDs      []string
	Winnings       map[string]int
	Participants   []string
	Busted         []string
	WentToShowdown bool
	StreetReached  state.Street
	Actions        []ActionRecord
	Board          []deck.Card
}

// playHand runs a complete hand at the given blind level. Seats with
// zero chips must be removed before calling.
func (t *table) playHand(handNumber int, level structure.BlindLevel) (*handOutcome, error) {
	if len(t.seats) < 2 {
		return nil, fmt.Errorf("table %d: need at least 2 players, have %d", t.id, len(t.seats))
	}

	gs, err := t.setupHand(handNumber, level)
	if err != nil {
		return nil, err
	}

	outcome := &handOutcome{
		Winnings: make(map[string]int),
	}
	for _, p := range gs.Players {
		outcome.Participants = append(outcome.Participants, p.ID)
	}

	for street := state.Preflop; street <= state.River; street++ {
		gs.BettingRound = street
		if err := t.dealStreet(gs, street); err != nil {
			return nil, err
		}

		if report := state.Validate(gs); !report.OK() {
			return nil, fmt.Errorf("table %d hand %d %s: invalid state: %v",
				t.id, handNumber, street, report.Errors)
		}

		if err := t.runBettingRound(gs, level, outcome); err != nil {
			return nil, err
		}
		outcome.StreetReached = street

		if len(gs.ActivePlayers()) <= 1 {
			break
		}
		if t.allCommitted(gs) && street < state.River {
			continue // run out the board with no further betting
		}
	}

	t.settle(gs, outcome)
	t.syncSeats(gs, outcome)
	t.button = (t.button + 1) % len(t.seats)

	outcome.Board = gs.CommunityCards
	return outcome, nil
}

// setupHand builds a fresh GameState: shuffled deck, hole cards, antes
// and blinds posted.
func (t *table) setupHand(handNumber int, level structure.BlindLevel) (*state.GameState, error) {
	d := deck.New(t.rng)
	d.Shuffle()

	gs := &state.GameState{
		Phase:        state.Playing,
		SmallBlind:   level.SmallBlind,
		BigBlind:     level.BigBlind,
		DealerButton: t.button,
		HandNumber:   handNumber,
		BettingRound: state.Preflop,
	}

	for i, s := range t.seats {
		gs.Players = append(gs.Players, &state.Player{
			ID:        s.ID,
			Seat:      i,
			Chips:     s.Chips,
			HoleCards: d.DealN(2),
			IsActive:  true,
		})
	}

	// Antes are dead money straight into the pot.
	if level.Ante > 0 {
		for _, p := range gs.Players {
			ante := min(level.Ante, p.Chips)
			p.Chips -= ante
			p.TotalContribution += ante
			gs.Pot += ante
			if p.Chips == 0 {
				p.IsAllIn = true
			}
		}
	}

	n := len(gs.Players)
	sbIdx := (t.button + 1) % n
	bbIdx := (t.button + 2) % n
	if n == 2 {
		sbIdx, bbIdx = t.button, (t.button+1)%n
	}
	t.postBlind(gs, gs.Players[sbIdx], level.SmallBlind)
	t.postBlind(gs, gs.Players[bbIdx], level.BigBlind)
	gs.CurrentBet = level.BigBlind
	gs.LastRaiseSize = level.BigBlind
	gs.ActivePlayer = t.nextToAct(gs, bbIdx)

	gs.Deck = d.Cards()
	return gs, nil
}

func (t *table) postBlind(gs *state.GameState, p *state.Player, blind int) {
	posted := min(blind, p.Chips)
	p.Chips -= posted
	p.CurrentBet = posted
	p.TotalContribution += posted
	if p.Chips == 0 {
		p.IsAllIn = true
	}
}

// dealStreet burns and deals the community cards for the street, and
// resets per-street betting state on later streets.
func (t *table) dealStreet(gs *state.GameState, street state.Street) error {
	if street == state.Preflop {
		return nil
	}

	// Sweep street bets into the pot before the next deal.
	for _, p := range gs.Players {
		gs.Pot += p.CurrentBet
		p.CurrentBet = 0
		p.HasActed = false
	}
	gs.CurrentBet = 0
	gs.LastRaiseSize = 0

	need := street.CommunityCardCount() - len(gs.CommunityCards)
	if need <= 0 {
		return nil
	}
	if len(gs.Deck) < need+1 {
		return fmt.Errorf("deck exhausted on %s", street)
	}
	gs.BurnCards = append(gs.BurnCards, gs.Deck[0])
	gs.CommunityCards = append(gs.CommunityCards, gs.Deck[1:1+need]...)
	gs.Deck = gs.Deck[1+need:]

	gs.ActivePlayer = t.nextToAct(gs, gs.DealerButton)
	return nil
}

// runBettingRound queries each player in turn until the betting closes.
func (t *table) runBettingRound(gs *state.GameState, level structure.BlindLevel, outcome *handOutcome) error {
	if t.allCommitted(gs) {
		return nil
	}

	for !t.bettingClosed(gs) {
		if gs.ActionCount >= maxActionsPerHand {
			return fmt.Errorf("hand %d exceeded %d actions", gs.HandNumber, maxActionsPerHand)
		}

		p := gs.Players[gs.ActivePlayer]
		engine := t.engineFor(p.ID)

		ctx := ai.ContextFromState(gs, gs.ActivePlayer, level.Level)
		decision := engine.Decide(ctx)

		result := rules.ValidateAction(decision.Action, decision.Amount, p.Actor(), gs.BetState())
		if !result.Valid {
			// A rejected decision folds the player rather than
			// aborting the tournament.
			t.logger.Warn("rejected action",
				"player", p.ID,
				"action", decision.Action,
				"amount", decision.Amount,
				"errors", result.Errors)
			decision = ai.Decision{Action: rules.Fold, Reasoning: "rejected: " + result.Errors[0]}
		}

		t.apply(gs, p, decision)
		gs.ActionCount++

		outcome.Actions = append(outcome.Actions, ActionRecord{
			PlayerID: p.ID,
			Street:   gs.BettingRound,
			Action:   decision.Action,
			Amount:   decision.Amount,
			Reason:   decision.Reasoning,
		})

		if len(gs.ActivePlayers()) <= 1 || t.allCommitted(gs) {
			return nil
		}
		gs.ActivePlayer = t.nextToAct(gs, gs.ActivePlayer)
	}
	return nil
}

// apply mutates the state for a validated decision.
func (t *table) apply(gs *state.GameState, p *state.Player, d ai.Decision) {
	switch d.Action {
	case rules.Fold:
		p.IsActive = false

	case rules.Check:
		// no chips move

	case rules.Call:
		amount := min(gs.CurrentBet-p.CurrentBet, p.Chips)
		t.commit(gs, p, amount)

	case rules.Raise:
		raiseSize := d.Amount - gs.CurrentBet
		t.commit(gs, p, d.Amount-p.CurrentBet)
		gs.CurrentBet = d.Amount
		gs.LastRaiseSize = raiseSize
		t.reopenBetting(gs, p)

	case rules.AllIn:
		total := p.CurrentBet + p.Chips
		t.commit(gs, p, p.Chips)
		if total > gs.CurrentBet {
			raiseSize := total - gs.CurrentBet
			// An undersized all-in does not reopen the betting.
			if raiseSize >= gs.LastRaiseSize {
				gs.LastRaiseSize = raiseSize
				t.reopenBetting(gs, p)
			}
			gs.CurrentBet = total
		}
	}
	p.HasActed = true
}

func (t *table) commit(gs *state.GameState, p *state.Player, amount int) {
	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalContribution += amount
	if p.Chips == 0 {
		p.IsAllIn = true
	}
}

func (t *table) reopenBetting(gs *state.GameState, raiser *state.Player) {
	for _, p := range gs.Players {
		if p != raiser && p.IsActive && !p.IsAllIn {
			p.HasActed = false
		}
	}
}

// bettingClosed reports whether every player still able to act has
// acted and matched the current bet.
func (t *table) bettingClosed(gs *state.GameState) bool {
	for _, p := range gs.Players {
		if !p.IsActive || p.IsAllIn {
			continue
		}
		if !p.HasActed || p.CurrentBet < gs.CurrentBet {
			return false
		}
	}
	return true
}

// allCommitted reports whether no further betting is possible because
// at most one non-folded player still has chips behind.
func (t *table) allCommitted(gs *state.GameState) bool {
	able := 0
	for _, p := range gs.Players {
		if p.IsActive && !p.IsAllIn {
			able++
		}
	}
	return able <= 1 && t.bettingClosed(gs)
}

// nextToAct returns the first player after idx who can still act. When
// everyone is folded or all-in it falls back to the first player still
// in the hand so the state stays addressable.
func (t *table) nextToAct(gs *state.GameState, idx int) int {
	n := len(gs.Players)
	for i := 1; i <= n; i++ {
		j := (idx + i) % n
		p := gs.Players[j]
		if p.IsActive && !p.IsAllIn {
			return j
		}
	}
	for j, p := range gs.Players {
		if p.IsActive {
			return j
		}
	}
	return idx
}

// settle sweeps the final street's bets, builds the pots and awards
// them to the best eligible hands.
func (t *table) settle(gs *state.GameState, outcome *handOutcome) {
	for _, p := range gs.Players {
		gs.Pot += p.CurrentBet
		p.CurrentBet = 0
	}
	outcome.Pot = gs.Pot

	active := gs.ActivePlayers()
	if len(active) == 1 {
		winner := active[0]
		winner.Chips += gs.Pot
		outcome.WinnerIDs = []string{winner.ID}
		outcome.Winnings[winner.ID] = gs.Pot
		gs.Pot = 0
		return
	}

	outcome.WentToShowdown = true

	scores := make(map[string]float64, len(active))
	for _, p := range active {
		scores[p.ID] = handeval.Evaluate(p.HoleCards, gs.CommunityCards)
	}

	winners := make(map[string]bool)
	for _, pot := range buildPots(gs) {
		best := -1.0
		for _, id := range pot.Eligible {
			if scores[id] > best {
				best = scores[id]
			}
		}
		var share []string
		for _, id := range pot.Eligible {
			if scores[id] == best {
				share = append(share, id)
			}
		}
		if len(share) == 0 {
			continue
		}
		each := pot.Amount / len(share)
		remainder := pot.Amount % len(share)
		for i, id := range share {
			amount := each
			if i < remainder {
				amount++ // odd chips to the earliest winners
			}
			t.playerByID(gs, id).Chips += amount
			outcome.Winnings[id] += amount
			winners[id] = true
		}
	}
	gs.Pot = 0

	for id := range winners {
		outcome.WinnerIDs = append(outcome.WinnerIDs, id)
	}
	sort.Strings(outcome.WinnerIDs)
}

// buildPots layers the pot by contribution caps so a short all-in only
// contests the chips it covered.
func buildPots(gs *state.GameState) []state.SidePot {
	caps := make(map[int]bool)
	for _, p := range gs.ActivePlayers() {
		caps[p.TotalContribution] = true
	}
	// A folded player may have contributed past every live cap; that
	// remainder still belongs to the pot, contested by everyone live.
	maxContribution := 0
	for _, p := range gs.Players {
		if p.TotalContribution > maxContribution {
			maxContribution = p.TotalContribution
		}
	}
	caps[maxContribution] = true
	levels := make([]int, 0, len(caps))
	for c := range caps {
		levels = append(levels, c)
	}
	sort.Ints(levels)

	var pots []state.SidePot
	prev := 0
	for _, level := range levels {
		pot := state.SidePot{}
		for _, p := range gs.Players {
			pot.Amount += min(p.TotalContribution, level) - min(p.TotalContribution, prev)
		}
		for _, p := range gs.ActivePlayers() {
			if p.TotalContribution >= level {
				pot.Eligible = append(pot.Eligible, p.ID)
			}
		}
		if len(pot.Eligible) == 0 {
			for _, p := range gs.ActivePlayers() {
				pot.Eligible = append(pot.Eligible, p.ID)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = level
	}
	return pots
}

// syncSeats copies chips back to the persistent seats and drops busted
// players from the table.
func (t *table) syncSeats(gs *state.GameState, outcome *handOutcome) {
	chips := make(map[string]int, len(gs.Players))
	for _, p := range gs.Players {
		chips[p.ID] = p.Chips
	}

	kept := t.seats[:0]
	for _, s := range t.seats {
		s.Chips = chips[s.ID]
		if s.Chips == 0 {
			outcome.Busted = append(outcome.Busted, s.ID)
			continue
		}
		kept = append(kept, s)
	}
	// Keep the button on a live seat.
	if t.button >= len(kept) && len(kept) > 0 {
		t.button %= len(kept)
	}
	t.seats = kept
}

func (t *table) playerByID(gs *state.GameState, id string) *state.Player {
	for _, p := range gs.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
