// Package belief tracks an agent's evolving hypotheses about concealed
// game state: which role tuple is in play, what's known about the top of
// the deck, and what the president privately passed to the chancellor.
// Grounded on the Agent base class in agents/agent.py.
package belief

import "github.com/freeeve/secrethitler/pkg/hitler"

// Beliefs is one agent's private model of hidden state, narrowed over the
// course of a game as observations and terminal-replay filtering rule out
// hypotheses.
type Beliefs struct {
	PlayerID         int
	Role             hitler.SecretRole
	Party            hitler.Party
	HiddenRoleBeliefs [][]hitler.SecretRole
	DeckKnowledge    []hitler.Party
	PresidentPass    []hitler.Party
}

// New builds an agent's initial beliefs for a game of n players, narrowed
// immediately to every role hypothesis consistent with the agent's own
// known role.
func New(playerID int, role hitler.SecretRole, n int) *Beliefs {
	b := &Beliefs{
		PlayerID: playerID,
		Role:     role,
		Party:    role.Party(),
	}
	b.HiddenRoleBeliefs = filterOnRole(hitler.PossibleRoles(n), playerID, role)
	return b
}

// CommunicateHiddenState collapses all role-hypothesis uncertainty, used
// when hidden state is deliberately shared (e.g. the fascist team's
// mutual-knowledge reveal at game start). Grounded on
// Agent.communicate_hidden_state.
func (b *Beliefs) CommunicateHiddenState(roles []hitler.SecretRole) {
	b.HiddenRoleBeliefs = [][]hitler.SecretRole{append([]hitler.SecretRole(nil), roles...)}
}

// HandleObservation narrows beliefs given a private observation delivered
// to this agent. Grounded on Agent.handle_observation.
func (b *Beliefs) HandleObservation(obs hitler.Observation) {
	switch o := obs.(type) {
	case hitler.DeckpeekObservation:
		b.DeckKnowledge = append([]hitler.Party(nil), o.Policies...)
	case hitler.InvestigateObservation:
		b.HiddenRoleBeliefs = filterOnParty(b.HiddenRoleBeliefs, o.Target, o.Party)
	case hitler.PresidentPassObservation:
		b.PresidentPass = append([]hitler.Party(nil), o.Policies...)
	}
}

// HandleTransition updates beliefs after every transition, regardless of
// whether this agent moved. It discards role hypotheses that would have
// produced a terminal state had the just-applied moves been replayed
// under them (a hypothesis is wrong if the real transition didn't end the
// game but that hypothesis says it would have), then ages out stale deck
// knowledge and clears the remembered president-pass once the
// legislative session it belonged to has closed. Grounded on
// Agent.handle_transition.
func (b *Beliefs) HandleTransition(oldPub hitler.PublicState, newPub hitler.PublicState, oldHidden hitler.HiddenState, moves []hitler.Action, rng hitler.Rand) {
	b.filterOnTerminalReplay(oldPub, newPub, oldHidden, moves, rng)

	drawn := oldHidden.PolicyDeck.Len() - newPub.PolicyDeckSize
	switch {
	case drawn > 0 && drawn <= len(b.DeckKnowledge):
		b.DeckKnowledge = b.DeckKnowledge[drawn:]
	case drawn > 0:
		b.DeckKnowledge = nil
	case drawn < 0:
		// The deck grew, so it was reshuffled; every previously known
		// top card is gone.
		b.DeckKnowledge = nil
	}

	if newPub.Phase != hitler.PhaseChancellorSelectPolicy && newPub.Phase != hitler.PhaseVeto {
		b.PresidentPass = nil
	}
}

func (b *Beliefs) filterOnTerminalReplay(oldPub, newPub hitler.PublicState, oldHidden hitler.HiddenState, moves []hitler.Action, rng hitler.Rand) {
	if newPub.IsTerminal() {
		return
	}
	var survivors [][]hitler.SecretRole
	for _, roles := range b.HiddenRoleBeliefs {
		hypothetical := oldHidden
		hypothetical.HiddenRoles = roles
		replayed, _, _ := hitler.Transition(oldPub, hypothetical, moves, rng)
		if !replayed.IsTerminal() {
			survivors = append(survivors, roles)
		}
	}
	b.HiddenRoleBeliefs = survivors
}

func filterOnRole(roles [][]hitler.SecretRole, player int, role hitler.SecretRole) [][]hitler.SecretRole {
	var out [][]hitler.SecretRole
	for _, r := range roles {
		if r[player] == role {
			out = append(out, r)
		}
	}
	return out
}

func filterOnParty(roles [][]hitler.SecretRole, player int, party hitler.Party) [][]hitler.SecretRole {
	var out [][]hitler.SecretRole
	for _, r := range roles {
		if r[player].Party() == party {
			out = append(out, r)
		}
	}
	return out
}
