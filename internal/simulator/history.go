package simulator

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lox/pokertourney/internal/deck"
	"github.com/lox/pokertourney/internal/rules"
	"github.com/lox/pokertourney/internal/state"
)

// ActionRecord is one decision taken during a hand.
type ActionRecord struct {
	PlayerID string
	Street   state.Street
	Action   rules.Action
	Amount   int
	Reason   string
}

// HandHistoryEntry is the replayable record of one hand.
type HandHistoryEntry struct {
	HandNumber int
	TableID    int
	Level      int
	Pot        int
	Board      []deck.Card
	WinnerIDs  []string
	Showdown   bool
	Actions    []ActionRecord
}

// String renders the entry in a compact single-hand log format.
func (e HandHistoryEntry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "hand #%d table %d level %d pot %d", e.HandNumber, e.TableID, e.Level, e.Pot)
	if len(e.Board) > 0 {
		b.WriteString(" board ")
		for _, c := range e.Board {
			b.WriteString(c.String())
		}
	}
	fmt.Fprintf(&b, " winners %s", strings.Join(e.WinnerIDs, ","))
	for _, a := range e.Actions {
		fmt.Fprintf(&b, "\n  [%s] %s %s", a.Street, a.PlayerID, a.Action)
		if a.Action == rules.Raise {
			fmt.Fprintf(&b, " to %d", a.Amount)
		}
	}
	return b.String()
}

// History is an in-memory, append-only hand history shared by all
// tables in a tournament.
type History struct {
	mu      sync.Mutex
	entries []HandHistoryEntry
}

// Append records a completed hand.
func (h *History) Append(e HandHistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, e)
}

// Entries returns a copy of the recorded hands.
func (h *History) Entries() []HandHistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]HandHistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recorded hands.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
