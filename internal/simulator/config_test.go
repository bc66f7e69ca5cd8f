package simulator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/internal/ai"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRoster(t *testing.T) {
	path := writeRoster(t, `
starting_chips = 20000
table_size     = 6

player "alice" {
  style = "tag"
}

player "bob" {
  profile {
    tightness      = 0.8
    aggression     = 0.3
    adaptability   = 0.5
    risk_tolerance = 0.4
  }
}

player "carol" {}
`)

	roster, err := LoadRoster(path)
	require.NoError(t, err)

	assert.Equal(t, 20000, roster.StartingChips)
	assert.Equal(t, 6, roster.TableSize)
	require.Len(t, roster.Entrants, 3)

	tag, _ := ai.ProfileForStyle("tag")
	assert.Equal(t, tag, roster.Entrants[0].Profile)

	assert.Equal(t, 0.8, roster.Entrants[1].Profile.Tightness)
	assert.Equal(t, 0.3, roster.Entrants[1].Profile.Aggression)

	// No style and no profile means balanced.
	balanced, _ := ai.ProfileForStyle("balanced")
	assert.Equal(t, balanced, roster.Entrants[2].Profile)
}

func TestLoadRosterMissingFileUsesDefault(t *testing.T) {
	roster, err := LoadRoster(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Len(t, roster.Entrants, 9)
	assert.Equal(t, 10000, roster.StartingChips)
}

func TestRosterValidation(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{
			name: "unknown style",
			config: `
player "a" { style = "gto-wizard" }
player "b" {}
`,
		},
		{
			name: "style and profile both set",
			config: `
player "a" {
  style = "tag"
  profile {
    tightness      = 0.5
    aggression     = 0.5
    adaptability   = 0.5
    risk_tolerance = 0.5
  }
}
player "b" {}
`,
		},
		{
			name: "profile out of range",
			config: `
player "a" {
  profile {
    tightness      = 1.5
    aggression     = 0.5
    adaptability   = 0.5
    risk_tolerance = 0.5
  }
}
player "b" {}
`,
		},
		{
			name: "duplicate player",
			config: `
player "a" {}
player "a" {}
`,
		},
		{
			name:   "too few players",
			config: `player "a" {}`,
		},
		{
			name: "table size too large",
			config: `
table_size = 12
player "a" {}
player "b" {}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRoster(writeRoster(t, tt.config))
			assert.Error(t, err)
		})
	}
}

func TestDefaultRosterCyclesStyles(t *testing.T) {
	roster := DefaultRoster(8)
	require.Len(t, roster.Entrants, 8)

	ids := make(map[string]bool)
	for _, e := range roster.Entrants {
		assert.False(t, ids[e.ID], "duplicate id %s", e.ID)
		ids[e.ID] = true
	}
	assert.Equal(t, "tag-1", roster.Entrants[0].ID)
	assert.Equal(t, "lag-8", roster.Entrants[7].ID)
}
