package simulator

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokertourney/internal/ai"
	"github.com/lox/pokertourney/internal/state"
)

// RosterConfig is the HCL shape of a tournament roster file:
//
//	starting_chips = 10000
//	table_size     = 9
//
//	player "alice" {
//	  style = "tag"
//	}
//
//	player "bob" {
//	  profile {
//	    tightness      = 0.8
//	    aggression     = 0.3
//	    adaptability   = 0.5
//	    risk_tolerance = 0.4
//	  }
//	}
type RosterConfig struct {
	StartingChips int            `hcl:"starting_chips,optional"`
	TableSize     int            `hcl:"table_size,optional"`
	Players       []PlayerConfig `hcl:"player,block"`
}

// PlayerConfig configures one tournament entrant. Exactly one of Style
// or Profile must be set.
type PlayerConfig struct {
	Name    string         `hcl:"name,label"`
	Style   string         `hcl:"style,optional"`
	Profile *ProfileConfig `hcl:"profile,block"`
}

// ProfileConfig is an explicit personality, all axes in [0,1].
type ProfileConfig struct {
	Tightness     float64 `hcl:"tightness"`
	Aggression    float64 `hcl:"aggression"`
	Adaptability  float64 `hcl:"adaptability"`
	RiskTolerance float64 `hcl:"risk_tolerance"`
}

// Entrant is a resolved roster entry.
type Entrant struct {
	ID      string
	Profile ai.PersonalityProfile
}

// Roster is a validated tournament field.
type Roster struct {
	StartingChips int
	TableSize     int
	Entrants      []Entrant
}

// LoadRoster reads and validates a roster file. A missing file yields
// the default nine-handed field.
func LoadRoster(filename string) (*Roster, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultRoster(9), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", filename, diags.Error())
	}

	var config RosterConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %s", filename, diags.Error())
	}

	return config.Build()
}

// Build applies defaults and validates the configuration.
func (c *RosterConfig) Build() (*Roster, error) {
	r := &Roster{
		StartingChips: c.StartingChips,
		TableSize:     c.TableSize,
	}
	if r.StartingChips == 0 {
		r.StartingChips = 10000
	}
	if r.TableSize == 0 {
		r.TableSize = state.MaxSeats
	}

	if r.StartingChips < 0 {
		return nil, fmt.Errorf("starting_chips must be positive, got %d", r.StartingChips)
	}
	if r.TableSize < 2 || r.TableSize > state.MaxSeats {
		return nil, fmt.Errorf("table_size must be between 2 and %d, got %d", state.MaxSeats, r.TableSize)
	}
	if len(c.Players) < 2 {
		return nil, fmt.Errorf("roster needs at least 2 players, got %d", len(c.Players))
	}

	seen := make(map[string]bool, len(c.Players))
	for _, pc := range c.Players {
		if pc.Name == "" {
			return nil, fmt.Errorf("player with empty name")
		}
		if seen[pc.Name] {
			return nil, fmt.Errorf("duplicate player %q", pc.Name)
		}
		seen[pc.Name] = true

		profile, err := pc.resolve()
		if err != nil {
			return nil, err
		}
		r.Entrants = append(r.Entrants, Entrant{ID: pc.Name, Profile: profile})
	}

	return r, nil
}

func (pc PlayerConfig) resolve() (ai.PersonalityProfile, error) {
	if pc.Profile != nil {
		if pc.Style != "" {
			return ai.PersonalityProfile{}, fmt.Errorf("player %q: style and profile are mutually exclusive", pc.Name)
		}
		p := ai.PersonalityProfile{
			Tightness:     pc.Profile.Tightness,
			Aggression:    pc.Profile.Aggression,
			Adaptability:  pc.Profile.Adaptability,
			RiskTolerance: pc.Profile.RiskTolerance,
		}
		if p != p.Clamp() {
			return ai.PersonalityProfile{}, fmt.Errorf("player %q: profile axes must be in [0,1]", pc.Name)
		}
		return p, nil
	}

	style := pc.Style
	if style == "" {
		style = "balanced"
	}
	profile, ok := ai.ProfileForStyle(style)
	if !ok {
		return ai.PersonalityProfile{}, fmt.Errorf("player %q: unknown style %q", pc.Name, style)
	}
	return profile, nil
}

// defaultStyles is the spread used when no roster file is given.
var defaultStyles = []string{"tag", "lag", "rock", "maniac", "calling-station", "balanced"}

// DefaultRoster builds a field of n players cycling through the known
// styles.
func DefaultRoster(n int) *Roster {
	r := &Roster{StartingChips: 10000, TableSize: state.MaxSeats}
	for i := 0; i < n; i++ {
		style := defaultStyles[i%len(defaultStyles)]
		profile, _ := ai.ProfileForStyle(style)
		r.Entrants = append(r.Entrants, Entrant{
			ID:      fmt.Sprintf("%s-%d", style, i+1),
			Profile: profile,
		})
	}
	return r
}
