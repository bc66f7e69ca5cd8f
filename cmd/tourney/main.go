package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokertourney/internal/fileutil"
	"github.com/lox/pokertourney/internal/simulator"
	"github.com/lox/pokertourney/internal/statistics"
	"github.com/lox/pokertourney/internal/structure"
)

type CLI struct {
	Roster   string `default:"tournament.hcl" help:"Roster config file (HCL)"`
	Schedule string `default:"schedule.hcl" help:"Blind schedule file (HCL)"`
	Players  int    `default:"9" help:"Field size when no roster file exists"`
	Seed     int64  `default:"0" help:"RNG seed (0 for random)"`
	MaxHands int    `default:"10000" help:"Hand cap before the tournament is abandoned"`
	History  bool   `help:"Print the full hand history after the run"`
	Output   string `help:"Write the hand history to this file"`
	Verbose  bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	kctx.FatalIfErrorf(run(cli, logger))
}

func run(cli CLI, logger *log.Logger) error {
	roster, err := simulator.LoadRoster(cli.Roster)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}
	if len(roster.Entrants) == 0 {
		roster = simulator.DefaultRoster(cli.Players)
	}

	schedule, err := structure.LoadSchedule(cli.Schedule)
	if err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}

	tournament, err := simulator.New(simulator.Config{
		Roster:    roster,
		Structure: schedule,
		Seed:      cli.Seed,
		MaxHands:  cli.MaxHands,
		Clock:     quartz.NewReal(),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Starting tournament: %d players, seed %d\n", len(roster.Entrants), cli.Seed)

	start := time.Now()
	result, err := tournament.Run(ctx)
	if err != nil {
		return err
	}
	printResult(result, schedule, time.Since(start))

	if cli.History {
		fmt.Printf("\n=== HAND HISTORY ===\n")
		for _, entry := range result.History.Entries() {
			fmt.Println(entry)
		}
	}

	if cli.Output != "" {
		var buf strings.Builder
		fmt.Fprintf(&buf, "tournament %s seed %d\n", result.ID, cli.Seed)
		for _, entry := range result.History.Entries() {
			buf.WriteString(entry.String())
			buf.WriteByte('\n')
		}
		if err := fileutil.WriteFileAtomic(cli.Output, []byte(buf.String()), 0o644); err != nil {
			return fmt.Errorf("writing history: %w", err)
		}
		logger.Info("hand history written", "path", cli.Output, "hands", result.History.Len())
	}
	return nil
}

func printResult(result *simulator.Result, schedule *structure.Structure, duration time.Duration) {
	stats := result.Stats

	fmt.Printf("\n=== TOURNAMENT RESULT ===\n")
	fmt.Printf("Tournament ID: %s\n", result.ID)
	if result.Champion != "" {
		fmt.Printf("Champion: %s\n", result.Champion)
	} else {
		fmt.Printf("No champion: hand cap reached\n")
	}
	fmt.Printf("Hands played: %d in %v\n", result.HandsPlayed, duration.Round(time.Millisecond))
	fmt.Printf("Final level: %d (%s)\n", result.FinalLevel, schedule.Phase(result.FinalLevel))

	fmt.Printf("\n=== STANDINGS ===\n")
	standings := make([]statistics.Elimination, len(stats.Eliminations))
	copy(standings, stats.Eliminations)
	sort.Slice(standings, func(i, j int) bool { return standings[i].Place < standings[j].Place })
	for _, e := range standings {
		player := stats.Players[e.PlayerID]
		line := fmt.Sprintf("%2d. %-20s", e.Place, e.PlayerID)
		if player != nil {
			line += fmt.Sprintf(" %4d hands, %3d won (%.1f%%)",
				player.HandsPlayed, player.HandsWon, player.WinRate()*100)
		}
		if e.Place > 1 {
			line += fmt.Sprintf("  out on hand %d (level %d)", e.HandNumber, e.Level)
		}
		fmt.Println(line)
	}

	fmt.Printf("\n=== POT STATISTICS ===\n")
	low, high := stats.ConfidenceInterval95()
	fmt.Printf("Mean pot: %.2f bb (95%% CI [%.2f, %.2f])\n", stats.Mean(), low, high)
	fmt.Printf("Median pot: %.2f bb, P95: %.2f bb\n", stats.Median(), stats.Percentile(0.95))
	fmt.Printf("Max pot: %d chips (%.1f bb, level %d)\n", stats.MaxPotChips, stats.MaxPotBB, stats.MaxPotLevel)
	fmt.Printf("Showdown rate: %.1f%%\n", stats.ShowdownRate()*100)

	fmt.Printf("\n=== HANDS PER LEVEL ===\n")
	levels := make([]int, 0, len(stats.HandsPerLevel))
	for l := range stats.HandsPerLevel {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	for _, l := range levels {
		bl, _ := schedule.BlindLevel(l)
		fmt.Printf("Level %2d (%d/%d ante %d): %d hands\n",
			l, bl.SmallBlind, bl.BigBlind, bl.Ante, stats.HandsPerLevel[l])
	}
}
