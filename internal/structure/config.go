package structure

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ScheduleConfig represents a blind schedule loaded from HCL
type ScheduleConfig struct {
	Levels []LevelConfig `hcl:"level,block"`
}

// LevelConfig defines one blind level in HCL
type LevelConfig struct {
	Label         string `hcl:"number,label"`
	SmallBlind    int    `hcl:"small_blind"`
	BigBlind      int    `hcl:"big_blind"`
	Ante          int    `hcl:"ante,optional"`
	Duration      string `hcl:"duration,optional"`
	Denominations []int  `hcl:"denominations,optional"`
	MinIncrement  int    `hcl:"min_increment,optional"`
}

// LoadSchedule loads a blind schedule from an HCL file. A missing file
// yields the default 25-level schedule.
func LoadSchedule(filename string) (*Structure, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return NewDefault(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ScheduleConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return config.Build()
}

// Build converts the decoded config into a Structure, applying
// defaults and validating the schedule.
func (c *ScheduleConfig) Build() (*Structure, error) {
	if len(c.Levels) == 0 {
		return nil, fmt.Errorf("schedule must define at least one level")
	}

	levels := make([]BlindLevel, 0, len(c.Levels))
	for _, lc := range c.Levels {
		num, err := strconv.Atoi(lc.Label)
		if err != nil {
			return nil, fmt.Errorf("level %q: label must be a number", lc.Label)
		}

		duration := 40 * time.Minute
		if lc.Duration != "" {
			duration, err = time.ParseDuration(lc.Duration)
			if err != nil {
				return nil, fmt.Errorf("level %d: invalid duration: %w", num, err)
			}
		}

		denoms := lc.Denominations
		if len(denoms) == 0 {
			denoms = append([]int(nil), FallbackDenominations...)
		}
		sort.Ints(denoms)

		inc := lc.MinIncrement
		if inc == 0 {
			inc = denoms[0]
		}

		levels = append(levels, BlindLevel{
			Level:               num,
			SmallBlind:          lc.SmallBlind,
			BigBlind:            lc.BigBlind,
			Ante:                lc.Ante,
			Duration:            duration,
			ChipDenominations:   denoms,
			MinBettingIncrement: inc,
		})
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })

	for i, bl := range levels {
		if bl.Level != i+1 {
			return nil, fmt.Errorf("levels must be numbered contiguously from 1, got %d at position %d", bl.Level, i+1)
		}
		if bl.SmallBlind <= 0 {
			return nil, fmt.Errorf("level %d: small blind must be positive", bl.Level)
		}
		if bl.BigBlind <= bl.SmallBlind {
			return nil, fmt.Errorf("level %d: big blind must be greater than small blind", bl.Level)
		}
		if bl.MinBettingIncrement <= 0 {
			return nil, fmt.Errorf("level %d: min increment must be positive", bl.Level)
		}
		if bl.BigBlind%bl.MinBettingIncrement != 0 {
			return nil, fmt.Errorf("level %d: big blind %d not attainable with increment %d", bl.Level, bl.BigBlind, bl.MinBettingIncrement)
		}
	}

	return New(levels), nil
}
