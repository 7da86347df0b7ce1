package search

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/freeeve/secrethitler/internal/determinize"
	"github.com/freeeve/secrethitler/pkg/hitler"
)

// opponentMove samples a move for a non-searching player under the
// tremble policy: uniform over legal actions, blended with a uniform
// tremble term weighted by tremble. Grounded on pimc_agent.py's
// get_opponent_moves_probs/select_opponent_move; since the base policy
// there is itself always uniform over legal actions, blending it with a
// uniform tremble term is mathematically a no-op regardless of
// tremble's value (a property of the original, not a shortcut taken
// here) — this still computes the blend explicitly rather than skipping
// it, so a future non-uniform base policy would pick up tremble
// correctly without the blend having to be added back in.
func opponentMove(rng *rand.Rand, pub hitler.PublicState, hidden hitler.HiddenState, player int, tremble float64) hitler.Action {
	legal := pub.LegalActions(hidden, player)
	if len(legal) == 1 {
		return legal[0]
	}
	base := 1 / float64(len(legal))
	probs := make([]float64, len(legal))
	for i := range probs {
		probs[i] = (1-tremble)*base + tremble*base
	}
	return RandomChoice(rng, legal, probs)
}

// pimcNode is a single-player UCB1 search tree node. Non-searching
// players move between decision points under the tremble policy, so
// every child transition here represents one decision by the searched
// player followed by however many opponent replies are needed to reach
// the player's next turn (or terminal). Grounded on pimc_agent.py's Node.
type pimcNode struct {
	parent       *pimcNode
	incomingEdge hitler.Action
	isTerminal   bool
	terminalValue float64

	legalActions []hitler.Action
	chooseCounts map[hitler.Action]int
	totalPayoffs map[hitler.Action]float64
	totalChoices int
	children     map[string]*pimcNode
}

func newPimcNode(legal []hitler.Action, edge hitler.Action, parent *pimcNode, terminal bool, terminalValue float64) *pimcNode {
	n := &pimcNode{parent: parent, incomingEdge: edge, isTerminal: terminal, terminalValue: terminalValue}
	if !terminal {
		n.legalActions = legal
		n.chooseCounts = make(map[hitler.Action]int, len(legal))
		n.totalPayoffs = make(map[hitler.Action]float64, len(legal))
		n.children = make(map[string]*pimcNode)
		for _, a := range legal {
			n.chooseCounts[a] = 0
			n.totalPayoffs[a] = 0
		}
	}
	return n
}

// selectMove applies UCB1, preferring any never-chosen move uniformly at
// random before ranking by upper confidence bound. Grounded on Node.select_move.
func (n *pimcNode) selectMove(rng *rand.Rand) hitler.Action {
	ucbMax := math.Inf(-1)
	var best hitler.Action
	var unseen []hitler.Action
	for _, move := range n.legalActions {
		count := n.chooseCounts[move]
		if count == 0 {
			unseen = append(unseen, move)
			continue
		}
		ucb := n.totalPayoffs[move]/float64(count) + math.Sqrt(2*math.Log(float64(n.totalChoices))/float64(count))
		if ucb > ucbMax {
			ucbMax = ucb
			best = move
		}
	}
	if len(unseen) != 0 {
		return unseen[rng.Intn(len(unseen))]
	}
	return best
}

func childKey(move hitler.Action, pub hitler.PublicState, hidden hitler.HiddenState) string {
	return fmt.Sprintf("%s|%s", move, stateKey(pub, hidden))
}

func stateKey(pub hitler.PublicState, hidden hitler.HiddenState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p=%d/%d phase=%v pres=%d chan=%d se=%d fas=%d lib=%d chaos=%d deck=%d veto=%v",
		pub.StartingNumPlayers, pub.CurrentNumPlayers, pub.Phase, pub.President, pub.Chancellor,
		pub.SEPrevPres, pub.FasPolicy, pub.LibPolicy, pub.Chaos, pub.PolicyDeckSize, pub.PresidentVeto)
	fmt.Fprintf(&sb, " alive=%v", pub.AlivePlayers)
	if pub.PrevGov != nil {
		fmt.Fprintf(&sb, " prevgov=%+v", *pub.PrevGov)
	}
	if pub.GameEnd != nil {
		fmt.Fprintf(&sb, " end=%v/%v", *pub.GameEnd, pub.GameEndReason)
	}
	fmt.Fprintf(&sb, " roles=%v draw=%v discard=%v proposed=%v",
		hidden.HiddenRoles, hidden.PolicyDeck.Cards(), hidden.DiscardPile, hidden.ProposedPolicies)
	return sb.String()
}

// nextNode applies move for player plus opponent replies (under the
// tremble policy) until it's either terminal or the player's turn again,
// reusing an existing child if this resulting state has already been
// reached. Grounded on pimc_agent.py's next_node.
func nextNode(rng *rand.Rand, node *pimcNode, pub hitler.PublicState, hidden hitler.HiddenState, player int, move hitler.Action, tremble float64) (*pimcNode, hitler.PublicState, hitler.HiddenState, bool) {
	movers := pub.MovingPlayers()
	moves := make([]hitler.Action, len(movers))
	for i, p := range movers {
		if p == player {
			moves[i] = move
		} else {
			moves[i] = opponentMove(rng, pub, hidden, p, tremble)
		}
	}
	pub, hidden, _ = hitler.Transition(pub, hidden, moves, rng)
	for !pub.IsTerminal() && !containsPlayer(pub.MovingPlayers(), player) {
		movers = pub.MovingPlayers()
		moves = make([]hitler.Action, len(movers))
		for i, p := range movers {
			moves[i] = opponentMove(rng, pub, hidden, p, tremble)
		}
		pub, hidden, _ = hitler.Transition(pub, hidden, moves, rng)
	}

	key := childKey(move, pub, hidden)
	if child, ok := node.children[key]; ok {
		return child, pub, hidden, false
	}

	terminal := pub.IsTerminal()
	var legal []hitler.Action
	var terminalValue float64
	if terminal {
		terminalValue = pub.TerminalValue(hidden)[player]
	} else {
		legal = pub.LegalActions(hidden, player)
	}
	child := newPimcNode(legal, move, node, terminal, terminalValue)
	node.children[key] = child
	return child, pub, hidden, true
}

func containsPlayer(players []int, player int) bool {
	for _, p := range players {
		if p == player {
			return true
		}
	}
	return false
}

// NodeValueFunc estimates the value of a just-expanded leaf for the
// searching player, typically by random playout. Grounded on
// pimc_agent.py's node_value_func parameter (playout_value_func).
type NodeValueFunc func(pub hitler.PublicState, hidden hitler.HiddenState, player int, rng *rand.Rand) float64

// PlayoutValueFunc estimates leaf value via a single uniform-random
// rollout to terminal. Grounded on pimc_agent.py's playout_value_func
// (NUM_PLAYOUTS=1).
func PlayoutValueFunc(pub hitler.PublicState, hidden hitler.HiddenState, player int, rng *rand.Rand) float64 {
	return Simulate(pub, hidden, rng)[player]
}

func findLeafAndPayoff(rng *rand.Rand, node *pimcNode, pub hitler.PublicState, hidden hitler.HiddenState, player int, valueFunc NodeValueFunc, tremble float64) (*pimcNode, float64) {
	if node.isTerminal {
		return node, node.terminalValue
	}
	move := node.selectMove(rng)
	child, nextPub, nextHidden, isNew := nextNode(rng, node, pub, hidden, player, move, tremble)
	if isNew {
		return child, valueFunc(nextPub, nextHidden, player, rng)
	}
	return findLeafAndPayoff(rng, child, nextPub, nextHidden, player, valueFunc, tremble)
}

func searchAndBackprop(rng *rand.Rand, node *pimcNode, pub hitler.PublicState, hidden hitler.HiddenState, player int, valueFunc NodeValueFunc, tremble float64) {
	leaf, payoff := findLeafAndPayoff(rng, node, pub, hidden, player, valueFunc, tremble)
	for leaf.parent != nil {
		action := leaf.incomingEdge
		leaf.parent.totalChoices++
		leaf.parent.chooseCounts[action]++
		leaf.parent.totalPayoffs[action] += payoff
		leaf = leaf.parent
	}
}

// PIMCSearch runs perfect-information Monte Carlo search over
// numIterations determinizations consistent with roleHypotheses,
// deckKnowledge and presidentPass, and returns the move selected at the
// root (UCB1, same selection rule used mid-tree). tremble parameterizes
// the opponent model's tremble term (internal/config.Config's
// OpponentTremble, sourced from OPPONENT_TREMBLE). Grounded on
// pimc_agent.py's search_mcts, which likewise returns root.select_move()
// rather than a separate max-visit-count rule.
func PIMCSearch(rng *rand.Rand, pub hitler.PublicState, player int, roleHypotheses [][]hitler.SecretRole, legalActions []hitler.Action, numIterations int, deckKnowledge, presidentPass []hitler.Party, tremble float64) hitler.Action {
	root := newPimcNode(legalActions, nil, nil, false, 0)
	for _, hidden := range determinize.Sample(numIterations, roleHypotheses, pub, legalActions, deckKnowledge, presidentPass, rng) {
		if sameActions(pub.LegalActions(hidden, player), legalActions) {
			searchAndBackprop(rng, root, pub, hidden, player, PlayoutValueFunc, tremble)
		}
	}
	return root.selectMove(rng)
}

func sameActions(a, b []hitler.Action) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
