package agent

import (
	"math/rand"
	"testing"

	"github.com/freeeve/secrethitler/pkg/hitler"
)

func fullDeckCards() []hitler.Party {
	cards := make([]hitler.Party, 0, hitler.DeckSize)
	for i := 0; i < hitler.NumLibPolicy; i++ {
		cards = append(cards, hitler.Liberal)
	}
	for i := 0; i < hitler.NumFasPolicy; i++ {
		cards = append(cards, hitler.Fascist)
	}
	return cards
}

func newGame(t *testing.T, n int) hitler.PublicState {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	shuffled := fullDeckCards()
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	pub, _, err := hitler.StartState(n, 0, hitler.RoleComposition[n], hitler.NewPolicyDeck(shuffled))
	if err != nil {
		t.Fatalf("StartState: %v", err)
	}
	return pub
}

func TestForKindUnknown(t *testing.T) {
	if _, err := ForKind("bogus", 0, 7, hitler.RoleLiberal, 100, 0.1); err == nil {
		t.Fatal("expected an error for an unknown agent kind")
	}
}

func TestRandomReturnsLegalAction(t *testing.T) {
	pub := newGame(t, 5)
	a := NewRandom(pub.President, 5, hitler.RoleLiberal)
	legal := pub.LegalActions(hitler.HiddenState{}, pub.President)
	move := a.GetAction(pub, legal)
	if !containsAction(legal, move) {
		t.Fatalf("Random returned %v, not among %v", move, legal)
	}
}

func TestSelfishAlwaysPlaysOwnPartyAsChancellor(t *testing.T) {
	pub := newGame(t, 5)
	pub.Phase = hitler.PhaseChancellorSelectPolicy
	pub.Chancellor = 2
	a := NewSelfish(2, 5, hitler.RoleLiberal)
	legal := []hitler.Action{
		hitler.PolicyChoice{Policy: hitler.Liberal},
		hitler.PolicyChoice{Policy: hitler.Fascist},
	}
	move := a.GetAction(pub, legal)
	if move != (hitler.PolicyChoice{Policy: hitler.Liberal}) {
		t.Fatalf("expected the liberal chancellor to play liberal, got %v", move)
	}
}

func TestSelfishDiscardsOpposingPartyAsPresident(t *testing.T) {
	pub := newGame(t, 5)
	pub.Phase = hitler.PhasePresidentSelectPolicy
	a := NewSelfish(pub.President, 5, hitler.RoleFascist)
	legal := []hitler.Action{
		hitler.PolicyChoice{Policy: hitler.Liberal},
		hitler.PolicyChoice{Policy: hitler.Fascist},
	}
	move := a.GetAction(pub, legal)
	if move != (hitler.PolicyChoice{Policy: hitler.Liberal}) {
		t.Fatalf("expected the fascist president to discard liberal, got %v", move)
	}
}

func TestPIMCReturnsLegalAction(t *testing.T) {
	pub := newGame(t, 5)
	a := NewPIMC(pub.President, 5, hitler.RoleLiberal, 20, 0.1, "PIMC-test")
	legal := pub.LegalActions(hitler.HiddenState{}, pub.President)
	move := a.GetAction(pub, legal)
	if !containsAction(legal, move) {
		t.Fatalf("PIMC returned %v, not among %v", move, legal)
	}
}

func TestSOISMCTSReturnsLegalAction(t *testing.T) {
	pub := newGame(t, 5)
	a := NewSOISMCTS(pub.President, 5, hitler.RoleLiberal, 20, "SO-ISMCTS-test")
	legal := pub.LegalActions(hitler.HiddenState{}, pub.President)
	move := a.GetAction(pub, legal)
	if !containsAction(legal, move) {
		t.Fatalf("SO-ISMCTS returned %v, not among %v", move, legal)
	}
}
