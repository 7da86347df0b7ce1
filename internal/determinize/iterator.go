// Package determinize samples concrete hidden states consistent with a
// public state and an agent's private knowledge, for use as search roots
// in PIMC and SO-ISMCTS. Grounded on determinization_iterator in
// agents/mcts_common.py.
//
// The original enumerates every literal permutation of the deck's
// remaining cards from a precomputed combinatorial table
// (POSSIBLE_DECKS, built offline via sympy's multiset_permutations) and
// shuffles that enumeration before walking it. No equivalent precomputed
// table exists in this port's dependency set, and building one at
// runtime would be wasted work: only the card composition (how many
// fascist/liberal cards fall in the draw pile vs. the discard pile)
// determines validity, and the agent never observes deck order beyond
// its known top cards. So this implementation draws samples directly:
// for each sample, it randomly partitions the remaining unseen cards
// between the draw pile and the discard pile, installs the agent's known
// top cards on top of the draw pile, and picks one hidden-role
// hypothesis and one proposed-policy composition — which is
// statistically equivalent to shuffling the full enumeration and taking
// the first N entries.
package determinize

import (
	"math/rand"

	"github.com/freeeve/secrethitler/pkg/hitler"
)

// Sample draws n hidden states consistent with state's public counters,
// roleHypotheses' surviving role tuples, topCards (the agent's known
// prefix of the draw pile, in draw order), and presidentPass (the
// policies the agent knows the president passed, when in the veto
// phase). legalActions supplies the proposal's party composition during
// presidentSelectPolicy and chancellorSelectPolicy.
func Sample(n int, roleHypotheses [][]hitler.SecretRole, state hitler.PublicState, legalActions []hitler.Action, topCards, presidentPass []hitler.Party, rng *rand.Rand) []hitler.HiddenState {
	if len(roleHypotheses) == 0 {
		return nil
	}
	proposals := possibleProposals(state.Phase, legalActions, presidentPass)
	if len(proposals) == 0 {
		return nil
	}

	proposalLen := len(proposals[0])
	unseenDrawCount := state.PolicyDeckSize - len(topCards)
	discardCount := hitler.DeckSize - state.PolicyDeckSize - proposalLen - state.FasPolicy - state.LibPolicy

	samples := make([]hitler.HiddenState, 0, n)
	for i := 0; i < n; i++ {
		proposal := proposals[rng.Intn(len(proposals))]

		fasRemaining := hitler.NumFasPolicy - state.FasPolicy - countParty(hitler.Fascist, proposal, topCards)
		libRemaining := hitler.NumLibPolicy - state.LibPolicy - countParty(hitler.Liberal, proposal, topCards)
		if fasRemaining < 0 || libRemaining < 0 {
			continue
		}

		unseen := make([]hitler.Party, 0, fasRemaining+libRemaining)
		for j := 0; j < fasRemaining; j++ {
			unseen = append(unseen, hitler.Fascist)
		}
		for j := 0; j < libRemaining; j++ {
			unseen = append(unseen, hitler.Liberal)
		}
		rng.Shuffle(len(unseen), func(a, b int) { unseen[a], unseen[b] = unseen[b], unseen[a] })

		unseenDraw := append([]hitler.Party(nil), unseen[:unseenDrawCount]...)
		discard := append([]hitler.Party(nil), unseen[unseenDrawCount:unseenDrawCount+discardCount]...)

		cards := make([]hitler.Party, 0, len(unseenDraw)+len(topCards))
		cards = append(cards, unseenDraw...)
		for k := len(topCards) - 1; k >= 0; k-- {
			cards = append(cards, topCards[k])
		}

		roles := roleHypotheses[rng.Intn(len(roleHypotheses))]

		candidate := hitler.HiddenState{
			HiddenRoles:      append([]hitler.SecretRole(nil), roles...),
			PolicyDeck:       hitler.NewPolicyDeck(cards),
			DiscardPile:      discard,
			ProposedPolicies: append([]hitler.Party(nil), proposal...),
		}
		if !hitler.ValidPolicyCount(candidate.PolicyDeck.Cards(), candidate.DiscardPile, candidate.ProposedPolicies, state.FasPolicy, state.LibPolicy) {
			continue
		}
		samples = append(samples, candidate)
	}
	return samples
}

// proposalSize returns the true number of policy cards held during phase
// (the I3 invariant pkg/hitler/legal_actions.go enforces), independent
// of how many distinct PolicyChoice actions are legal.
func proposalSize(phase hitler.Phase) int {
	switch phase {
	case hitler.PhasePresidentSelectPolicy:
		return 3
	case hitler.PhaseChancellorSelectPolicy:
		return 2
	default:
		return 0
	}
}

// proposalParties returns the distinct party values observable among the
// legal PolicyChoice actions for phase, in no particular order.
func proposalParties(legalActions []hitler.Action) []hitler.Party {
	seen := map[hitler.Party]bool{}
	var out []hitler.Party
	for _, a := range legalActions {
		if pc, ok := a.(hitler.PolicyChoice); ok && !seen[pc.Policy] {
			seen[pc.Policy] = true
			out = append(out, pc.Policy)
		}
	}
	return out
}

// possibleProposals enumerates every card-count distribution consistent
// with the phase's true hand size and the parties legalActions shows are
// present. Grounded on _possible_proposals in mcts_common.py, but
// necessarily a real enumeration rather than a single known candidate:
// the Python original's legal_actions carries one action per physical
// card (no deduplication), so its hand composition is recoverable
// exactly from legal_actions alone. This port's legal_actions.go
// deliberately collapses same-party cards to one action per distinct
// party (spec.md's §4.2 action-space design), which discards the
// multiplicity a presidentSelectPolicy/chancellorSelectPolicy hand
// actually has. When both parties are legal, every count split that
// sums to the phase's true hand size (3 or 2) and keeps at least one
// card of each present party is an equally plausible hand from the
// querying agent's own point of view, so Sample sees every split as a
// candidate and draws one per iteration; ValidPolicyCount still rejects
// whichever splits break global card conservation.
func possibleProposals(phase hitler.Phase, legalActions []hitler.Action, presidentPass []hitler.Party) [][]hitler.Party {
	switch phase {
	case hitler.PhasePresidentSelectPolicy, hitler.PhaseChancellorSelectPolicy:
		parties := proposalParties(legalActions)
		size := proposalSize(phase)
		switch len(parties) {
		case 1:
			return [][]hitler.Party{repeatParty(parties[0], size)}
		case 2:
			proposals := make([][]hitler.Party, 0, size-1)
			for count := 1; count < size; count++ {
				proposal := append(repeatParty(parties[0], count), repeatParty(parties[1], size-count)...)
				proposals = append(proposals, proposal)
			}
			return proposals
		default:
			return nil
		}
	case hitler.PhaseVeto:
		return [][]hitler.Party{append([]hitler.Party(nil), presidentPass...)}
	default:
		return [][]hitler.Party{nil}
	}
}

func repeatParty(p hitler.Party, n int) []hitler.Party {
	out := make([]hitler.Party, n)
	for i := range out {
		out[i] = p
	}
	return out
}

func countParty(p hitler.Party, lists ...[]hitler.Party) int {
	n := 0
	for _, l := range lists {
		for _, c := range l {
			if c == p {
				n++
			}
		}
	}
	return n
}
