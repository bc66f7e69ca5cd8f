package deck

import (
	"testing"

	"github.com/lox/pokertourney/internal/randutil"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := New(randutil.New(1))

	if d.CardsRemaining() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.CardsRemaining())
	}

	seen := make(map[string]bool)
	for _, c := range d.Cards() {
		if seen[c.Key()] {
			t.Errorf("duplicate card %s", c)
		}
		seen[c.Key()] = true
	}
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	d1 := New(randutil.New(42))
	d2 := New(randutil.New(42))
	d1.Shuffle()
	d2.Shuffle()

	for i, c := range d1.Cards() {
		if d2.Cards()[i] != c {
			t.Fatalf("decks diverged at %d: %v vs %v", i, c, d2.Cards()[i])
		}
	}
}

func TestDealExhaustsDeck(t *testing.T) {
	d := New(randutil.New(7))
	d.Shuffle()

	cards := d.DealN(52)
	if len(cards) != 52 {
		t.Fatalf("expected 52 dealt cards, got %d", len(cards))
	}
	if !d.IsEmpty() {
		t.Error("deck should be empty after dealing 52")
	}
	if _, ok := d.Deal(); ok {
		t.Error("dealing from an empty deck should fail")
	}

	d.Reset()
	if d.CardsRemaining() != 52 {
		t.Errorf("reset should restore 52 cards, got %d", d.CardsRemaining())
	}
}
