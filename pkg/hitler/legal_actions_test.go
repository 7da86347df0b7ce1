package hitler

import "testing"

func TestLegalActionsNominationExcludesPrevGov(t *testing.T) {
	pub, hidden := newGame(t, 7)
	pub.PrevGov = &PrevGov{President: 3, Chancellor: 5}

	actions := pub.LegalActions(hidden, 0)
	for _, a := range actions {
		n, ok := a.(Nominate)
		if !ok {
			t.Fatalf("expected only Nominate actions, got %T", a)
		}
		if n.Chancellor == 0 || n.Chancellor == 3 || n.Chancellor == 5 {
			t.Fatalf("nomination %v should have excluded self and prev_gov seats", n)
		}
	}
}

func TestLegalActionsVote(t *testing.T) {
	pub, hidden := newGame(t, 7)
	pub.Phase = PhaseVote
	actions := pub.LegalActions(hidden, 0)
	if len(actions) != 2 {
		t.Fatalf("expected 2 vote actions, got %d", len(actions))
	}
}

func TestLegalActionsPolicyChoiceDedupsSameParty(t *testing.T) {
	pub, hidden := newGame(t, 7)
	pub.Phase = PhasePresidentSelectPolicy
	hidden.ProposedPolicies = []Party{Fascist, Fascist, Liberal}
	actions := pub.LegalActions(hidden, 0)
	if len(actions) != 2 {
		t.Fatalf("expected 2 distinct policy choices, got %d: %v", len(actions), actions)
	}
}

func TestLegalActionsVetoOnlyWhenAvailable(t *testing.T) {
	pub, hidden := newGame(t, 7)
	pub.Phase = PhaseChancellorSelectPolicy
	pub.Chancellor = 2
	hidden.ProposedPolicies = []Party{Liberal, Fascist}

	actions := pub.LegalActions(hidden, 2)
	for _, a := range actions {
		if _, ok := a.(VetoAction); ok {
			t.Fatal("veto should not be offered before the 5th fascist policy")
		}
	}

	pub.FasPolicy = FasPolicyWin - 1
	pub.PresidentVeto = true
	actions = pub.LegalActions(hidden, 2)
	found := false
	for _, a := range actions {
		if _, ok := a.(VetoAction); ok {
			found = true
		}
	}
	if !found {
		t.Fatal("expected veto to be offered once available")
	}
}

func TestLegalActionsPresidentPower(t *testing.T) {
	pub, hidden := newGame(t, 7)
	pub.Phase = PhasePresidentPower
	pub.President = 0
	pub.FasPolicy = 4 // PowerTrack[7][4] == bullet

	actions := pub.LegalActions(hidden, 0)
	if len(actions) != len(pub.AlivePlayers)-1 {
		t.Fatalf("expected one bullet action per other alive player, got %d", len(actions))
	}
	for _, a := range actions {
		b, ok := a.(Bullet)
		if !ok {
			t.Fatalf("expected Bullet actions, got %T", a)
		}
		if b.Target == 0 {
			t.Fatal("bullet should not target self")
		}
	}
}

func TestLegalActionsNonMoverPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic when asking a non-moving player for legal actions")
		}
	}()
	pub, hidden := newGame(t, 7)
	pub.President = 0
	pub.LegalActions(hidden, 1)
}
