package runner

import (
	"context"
	"math/rand"
	"testing"

	"github.com/freeeve/secrethitler/internal/agent"
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

func newGame(t *testing.T, n int, rng *rand.Rand) (hitler.PublicState, hitler.HiddenState, []hitler.SecretRole) {
	t.Helper()
	shuffled := fullDeckCards()
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	roles := append([]hitler.SecretRole(nil), hitler.RoleComposition[n]...)
	rng.Shuffle(len(roles), func(i, j int) { roles[i], roles[j] = roles[j], roles[i] })
	pub, hidden, err := hitler.StartState(n, 0, roles, hitler.NewPolicyDeck(shuffled))
	if err != nil {
		t.Fatalf("StartState: %v", err)
	}
	return pub, hidden, roles
}

func TestRunGameReachesTerminalWithRandomAgents(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	n := 5
	pub, hidden, roles := newGame(t, n, rng)

	agents := make([]agent.Agent, n)
	for i := 0; i < n; i++ {
		agents[i] = agent.NewRandom(i, n, roles[i])
	}
	RevealFascistTeam(agents, roles, n)

	result, err := RunGame(context.Background(), pub, hidden, agents, rng)
	if err != nil {
		t.Fatalf("RunGame: %v", err)
	}
	if result.TotalSteps == 0 {
		t.Fatal("expected at least one step")
	}
	if len(result.TerminalValue) != n {
		t.Fatalf("expected %d terminal values, got %d", n, len(result.TerminalValue))
	}
}

func TestRevealFascistTeamNarrowsFascistAndSmallGameHitler(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := 5
	_, _, roles := newGame(t, n, rng)

	agents := make([]agent.Agent, n)
	for i := 0; i < n; i++ {
		agents[i] = agent.NewRandom(i, n, roles[i])
	}
	RevealFascistTeam(agents, roles, n)

	for i, a := range agents {
		role := roles[i]
		if role == hitler.RoleFascist || role == hitler.RoleHitler {
			beliefs := a.Beliefs().HiddenRoleBeliefs
			if len(beliefs) != 1 {
				t.Fatalf("expected seat %d (%v) to have a fully collapsed belief, got %d hypotheses", i, role, len(beliefs))
			}
		}
	}
}
