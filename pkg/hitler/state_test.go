package hitler

import "testing"

func TestPublicStateCloneIndependent(t *testing.T) {
	pub, _ := newGame(t, 7)
	pub.PrevGov = &PrevGov{President: 1, Chancellor: 2}
	lib := Liberal
	pub.GameEnd = &lib

	c := pub.Clone()
	c.AlivePlayers[0] = 99
	c.PrevGov.Chancellor = 55
	*c.GameEnd = Fascist

	if pub.AlivePlayers[0] == 99 {
		t.Error("clone should not alias AlivePlayers")
	}
	if pub.PrevGov.Chancellor == 55 {
		t.Error("clone should not alias PrevGov")
	}
	if *pub.GameEnd == Fascist {
		t.Error("clone should not alias GameEnd")
	}
}

func TestCloneIntoReusesCapacity(t *testing.T) {
	pub, _ := newGame(t, 10)
	var dst PublicState
	dst.AlivePlayers = make([]int, 0, 10)
	backing := dst.AlivePlayers[:cap(dst.AlivePlayers)]

	pub.CloneInto(&dst)
	if len(dst.AlivePlayers) != len(pub.AlivePlayers) {
		t.Fatalf("expected %d alive players, got %d", len(pub.AlivePlayers), len(dst.AlivePlayers))
	}
	if &dst.AlivePlayers[0] != &backing[0] {
		t.Fatal("expected CloneInto to reuse dst's existing backing array")
	}
	for i, p := range pub.AlivePlayers {
		if dst.AlivePlayers[i] != p {
			t.Fatalf("alive players mismatch at %d: got %d want %d", i, dst.AlivePlayers[i], p)
		}
	}
}

func TestNextPresidentSkipsDeadPlayers(t *testing.T) {
	alive := []int{0, 1, 3, 4}
	next, cleared := nextPresident(1, 5, alive, noSeat)
	if next != 3 {
		t.Fatalf("expected next president 3 (skipping dead seat 2), got %d", next)
	}
	if cleared != noSeat {
		t.Fatalf("expected se_prev_pres cleared, got %d", cleared)
	}
}

func TestNextPresidentWrapsAround(t *testing.T) {
	alive := []int{0, 1, 2}
	next, _ := nextPresident(2, 3, alive, noSeat)
	if next != 0 {
		t.Fatalf("expected wraparound to seat 0, got %d", next)
	}
}

func TestNextPresidentConsumesSEPrevPres(t *testing.T) {
	alive := []int{0, 1, 2, 3, 4}
	next, cleared := nextPresident(4, 5, alive, 1)
	if next != 2 {
		t.Fatalf("expected next president 2 (after se_prev_pres=1), got %d", next)
	}
	if cleared != noSeat {
		t.Fatal("expected se_prev_pres to be consumed")
	}
}

func TestMovingPlayersTerminalPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic calling MovingPlayers on a terminal state")
		}
	}()
	pub, _ := newGame(t, 7)
	pub.Phase = PhaseEnd
	pub.MovingPlayers()
}

func TestMovingPlayersPresidentPowerNoneReturnsEmpty(t *testing.T) {
	pub, _ := newGame(t, 7)
	pub.Phase = PhasePresidentPower
	pub.FasPolicy = 0 // PowerTrack[7][0] == none
	if got := pub.MovingPlayers(); got != nil {
		t.Fatalf("expected no moving players when the power track slot is none, got %v", got)
	}
}

func TestVetoAvailableOnlyAtFasPolicyWinMinusOne(t *testing.T) {
	pub, _ := newGame(t, 7)
	pub.PresidentVeto = true
	for fas := 0; fas <= FasPolicyWin; fas++ {
		pub.FasPolicy = fas
		want := fas == FasPolicyWin-1
		if got := pub.VetoAvailable(); got != want {
			t.Errorf("fas_policy=%d: VetoAvailable()=%v, want %v", fas, got, want)
		}
	}
}

func TestStartStateRejectsBadPlayerCount(t *testing.T) {
	if _, _, err := StartState(4, 0, RoleComposition[5], fullDeck()); err == nil {
		t.Fatal("expected an error for an out-of-range player count")
	}
}

func TestStartStateRejectsMismatchedRoleCount(t *testing.T) {
	if _, _, err := StartState(7, 0, RoleComposition[5], fullDeck()); err == nil {
		t.Fatal("expected an error when role tuple length does not match player count")
	}
}
