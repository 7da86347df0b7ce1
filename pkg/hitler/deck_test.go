package hitler

import (
	"math/rand"
	"testing"
)

func fullDeck() PolicyDeck {
	cards := make([]Party, 0, DeckSize)
	for i := 0; i < NumLibPolicy; i++ {
		cards = append(cards, Liberal)
	}
	for i := 0; i < NumFasPolicy; i++ {
		cards = append(cards, Fascist)
	}
	rand.New(rand.NewSource(1)).Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return NewPolicyDeck(cards)
}

func TestPeekEqualsDrawThenPutBack(t *testing.T) {
	d := fullDeck()
	rng := rand.New(rand.NewSource(42))

	peeked, afterPeek, reshuffled := d.Peek(0, 0, 3, rng)
	if reshuffled {
		t.Fatal("fresh deck should never reshuffle for a 3-card peek")
	}
	if len(peeked) != 3 {
		t.Fatalf("expected 3 peeked cards, got %d", len(peeked))
	}
	if afterPeek.Len() != d.Len() {
		t.Fatalf("peek should not change deck length: got %d, want %d", afterPeek.Len(), d.Len())
	}
	for i, c := range afterPeek.Cards() {
		if c != d.Cards()[i] {
			t.Fatalf("peek did not restore original order at index %d: got %v, want %v", i, c, d.Cards()[i])
		}
	}
}

func TestDrawRemovesFromTop(t *testing.T) {
	d := fullDeck()
	top3 := d.Cards()[d.Len()-3:]
	rng := rand.New(rand.NewSource(7))

	drawn, next, reshuffled := d.Draw(0, 0, 3, rng)
	if reshuffled {
		t.Fatal("unexpected reshuffle")
	}
	if next.Len() != d.Len()-3 {
		t.Fatalf("expected deck to shrink by 3, got %d from %d", next.Len(), d.Len())
	}
	for i, c := range drawn {
		if c != top3[len(top3)-1-i] {
			t.Fatalf("draw order mismatch at %d: got %v, want %v", i, c, top3[len(top3)-1-i])
		}
	}
}

func TestDrawReshufflesOnUnderflow(t *testing.T) {
	d := NewPolicyDeck([]Party{Liberal, Fascist})
	rng := rand.New(rand.NewSource(3))

	_, next, reshuffled := d.Draw(3, 8, 3, rng)
	if !reshuffled {
		t.Fatal("expected a reshuffle when the deck underflows")
	}
	wantLen := (NumLibPolicy - 3) + (NumFasPolicy - 8) - 3
	if next.Len() != wantLen {
		t.Fatalf("post-reshuffle-and-draw length = %d, want %d", next.Len(), wantLen)
	}
}

func TestValidPolicyCount(t *testing.T) {
	draw := []Party{Liberal, Liberal, Fascist, Fascist, Fascist, Fascist}
	discard := []Party{Fascist, Fascist}
	proposal := []Party{Liberal, Liberal}
	if !ValidPolicyCount(draw, discard, proposal, 5, 2) {
		t.Fatal("expected a consistent policy count to validate")
	}
	if ValidPolicyCount(draw, discard, proposal, 6, 2) {
		t.Fatal("expected an inconsistent fascist count to fail validation")
	}
}
