// Package simulator runs multi-table tournaments: it deals hands,
// routes decisions through the AI engines, validates every transition,
// and aggregates results.
package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertourney/internal/ai"
	"github.com/lox/pokertourney/internal/randutil"
	"github.com/lox/pokertourney/internal/statistics"
	"github.com/lox/pokertourney/internal/structure"
	"github.com/lox/pokertourney/internal/tourneyid"
)

// Config holds everything needed to run a tournament.
type Config struct {
	Roster    *Roster
	Structure *structure.Structure
	Seed      int64
	MaxHands  int          // safety cap, 0 means the default
	Clock     quartz.Clock // drives blind level progression
	Logger    *log.Logger
}

const defaultMaxHands = 10000

// Result is the outcome of a completed tournament.
type Result struct {
	ID          string
	Champion    string
	HandsPlayed int
	FinalLevel  int
	Stats       *statistics.Tournament
	History     *History
}

// Tournament runs one tournament to completion.
type Tournament struct {
	id      string
	config  Config
	tables  []*table
	stats   *statistics.Tournament
	history *History
	start   time.Time
}

// ID returns the tournament's identifier.
func (t *Tournament) ID() string {
	return t.id
}

// New creates a tournament from a validated config.
func New(config Config) (*Tournament, error) {
	if config.Roster == nil || len(config.Roster.Entrants) < 2 {
		return nil, fmt.Errorf("tournament needs at least 2 entrants")
	}
	if config.Structure == nil {
		config.Structure = structure.NewDefault()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.MaxHands == 0 {
		config.MaxHands = defaultMaxHands
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	id := tourneyid.NewWithRandSource(randutil.New(config.Seed))
	t := &Tournament{
		id:      id,
		config:  config,
		stats:   statistics.NewTournament(),
		history: &History{},
	}
	t.config.Logger = t.config.Logger.With("tournament", id)
	t.seatEntrants()
	return t, nil
}

// seatEntrants builds the initial tables, spreading players round-robin
// and giving every player an engine with its own deterministic stream.
func (t *Tournament) seatEntrants() {
	r := t.config.Roster

	var seats []*seat
	for i, e := range r.Entrants {
		engine := ai.NewEngine(
			e.Profile,
			t.config.Structure,
			randutil.New(t.config.Seed+int64(i)+1),
			t.config.Logger.With("player", e.ID),
		)
		seats = append(seats, &seat{ID: e.ID, Chips: r.StartingChips, Engine: engine})
	}

	numTables := (len(seats) + r.TableSize - 1) / r.TableSize
	t.tables = make([]*table, numTables)
	for i := range t.tables {
		t.tables[i] = &table{
			id:        i,
			structure: t.config.Structure,
			rng:       randutil.New(t.config.Seed ^ int64(i+1)*0x9e3779b9),
			logger:    t.config.Logger.With("table", i),
		}
	}
	for i, s := range seats {
		tab := t.tables[i%numTables]
		tab.seats = append(tab.seats, s)
	}
}

// Run plays the tournament until one player holds all the chips or the
// hand cap is reached.
func (t *Tournament) Run(ctx context.Context) (*Result, error) {
	t.start = t.config.Clock.Now()
	handNumber := 0
	prevLevel := 1

	for t.remainingPlayers() > 1 && handNumber < t.config.MaxHands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// currentLevel caps at the last defined level, so the lookup
		// always succeeds.
		levelNum := t.currentLevel()
		level, _ := t.config.Structure.BlindLevel(levelNum)

		if levelNum != prevLevel {
			t.logLevelChange(prevLevel, levelNum)
			prevLevel = levelNum
		}

		outcomes, err := t.playRound(ctx, &handNumber, level)
		if err != nil {
			return nil, err
		}
		t.record(outcomes, level)
		t.rebalance()
	}

	result := &Result{
		ID:          t.id,
		HandsPlayed: handNumber,
		FinalLevel:  prevLevel,
		Stats:       t.stats,
		History:     t.history,
	}
	if champ, ok := t.stats.Champion(); ok {
		result.Champion = champ
	}

	if err := t.stats.Validate(); err != nil {
		return nil, fmt.Errorf("result validation: %w", err)
	}
	return result, nil
}

// playRound plays one hand at every live table concurrently.
func (t *Tournament) playRound(ctx context.Context, handNumber *int, level structure.BlindLevel) ([]*handOutcome, error) {
	type job struct {
		table *table
		hand  int
	}

	var jobs []job
	for _, tab := range t.tables {
		if len(tab.seats) >= 2 {
			*handNumber++
			jobs = append(jobs, job{table: tab, hand: *handNumber})
		}
	}

	outcomes := make([]*handOutcome, len(jobs))
	g, _ := errgroup.WithContext(ctx)
	for i, j := range jobs {
		g.Go(func() error {
			outcome, err := j.table.playHand(j.hand, level)
			if err != nil {
				return err
			}
			outcome.handNumber = j.hand
			outcome.tableID = j.table.id
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// record folds a round of outcomes into the statistics and history, and
// assigns finishing places to busted players.
func (t *Tournament) record(outcomes []*handOutcome, level structure.BlindLevel) {
	type bust struct {
		id   string
		hand int
	}
	var busts []bust

	for _, o := range outcomes {
		t.stats.AddHand(statistics.HandRecord{
			HandNumber:     o.handNumber,
			Level:          level.Level,
			PotChips:       o.Pot,
			PotBB:          float64(o.Pot) / float64(level.BigBlind),
			WinnerIDs:      o.WinnerIDs,
			WentToShowdown: o.WentToShowdown,
			StreetReached:  o.StreetReached.String(),
			Seed:           t.config.Seed,
		}, o.Participants, o.Winnings)

		t.history.Append(HandHistoryEntry{
			HandNumber: o.handNumber,
			TableID:    o.tableID,
			Level:      level.Level,
			Pot:        o.Pot,
			Board:      o.Board,
			WinnerIDs:  o.WinnerIDs,
			Showdown:   o.WentToShowdown,
			Actions:    o.Actions,
		})

		for _, id := range o.Busted {
			busts = append(busts, bust{id: id, hand: o.handNumber})
		}
	}

	// Seats are already gone, so the next free place counts down from
	// remaining plus everyone who busted this round.
	place := t.remainingPlayers() + len(busts)
	for _, b := range busts {
		t.stats.AddElimination(statistics.Elimination{
			PlayerID:   b.id,
			Place:      place,
			HandNumber: b.hand,
			Level:      level.Level,
		})
		t.config.Logger.Info("player eliminated", "player", b.id, "place", place, "hand", b.hand)
		place--
	}

	// The last player standing is the champion.
	if t.remainingPlayers() == 1 {
		for _, tab := range t.tables {
			for _, s := range tab.seats {
				t.stats.AddElimination(statistics.Elimination{
					PlayerID: s.ID,
					Place:    1,
					Level:    level.Level,
				})
			}
		}
	}
}

// rebalance reseats everyone when tables can be consolidated or have
// fallen below two players.
func (t *Tournament) rebalance() {
	total := t.remainingPlayers()
	if total < 2 {
		return
	}

	tableSize := t.config.Roster.TableSize
	needed := (total + tableSize - 1) / tableSize

	short := false
	for _, tab := range t.tables {
		if len(tab.seats) == 1 {
			short = true
		}
	}
	if needed >= len(t.liveTables()) && !short {
		return
	}

	var seats []*seat
	for _, tab := range t.tables {
		seats = append(seats, tab.seats...)
		tab.seats = nil
		tab.button = 0
	}
	kept := t.tables[:needed]
	for i, s := range seats {
		kept[i%needed].seats = append(kept[i%needed].seats, s)
	}
	t.tables = kept
	t.config.Logger.Info("tables rebalanced", "tables", needed, "players", total)
}

func (t *Tournament) liveTables() []*table {
	var live []*table
	for _, tab := range t.tables {
		if len(tab.seats) > 0 {
			live = append(live, tab)
		}
	}
	return live
}

func (t *Tournament) remainingPlayers() int {
	n := 0
	for _, tab := range t.tables {
		n += len(tab.seats)
	}
	return n
}

// currentLevel maps elapsed clock time onto the blind schedule.
func (t *Tournament) currentLevel() int {
	elapsed := t.config.Clock.Now().Sub(t.start)
	for level := 1; level <= t.config.Structure.NumLevels(); level++ {
		bl, _ := t.config.Structure.BlindLevel(level)
		if elapsed < bl.Duration {
			return level
		}
		elapsed -= bl.Duration
	}
	return t.config.Structure.NumLevels()
}

// logLevelChange logs the new blinds and any chip race-off the level
// change triggers.
func (t *Tournament) logLevelChange(from, to int) {
	level, ok := t.config.Structure.BlindLevel(to)
	if !ok {
		return
	}
	t.config.Logger.Info("blind level up",
		"level", to,
		"small_blind", level.SmallBlind,
		"big_blind", level.BigBlind,
		"ante", level.Ante,
		"phase", t.config.Structure.Phase(to))

	for l := from + 1; l <= to; l++ {
		if event, ok := t.config.Structure.ChipRaceOff(l); ok {
			t.config.Logger.Info("chip race-off",
				"level", l,
				"removed", event.RemovedChips,
				"min_increment", event.NewMinIncrement)
		}
	}
}
