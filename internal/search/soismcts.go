package search

import (
	"math"
	"math/rand"
	"strings"

	"github.com/freeeve/secrethitler/internal/determinize"
	"github.com/freeeve/secrethitler/pkg/hitler"
)

// Exp3Exploration is the UCB1 exploration constant used at
// single-mover nodes. Grounded on soismcts_agent.py's literal 2000
// constant in Node.select_child.
const Exp3Exploration = 2000.0

// ismctsNode is one information-set node: children are keyed by the
// joint move (one action per simultaneously-moving player) that reaches
// them. Grounded on soismcts_agent.py's Node.
type ismctsNode struct {
	parent            *ismctsNode
	incomingEdge      []hitler.Action
	children          map[string]*ismctsNode
	childMoves        map[string][]hitler.Action
	totalReward       float64
	availabilityCount int
	visitCount        int
	exp3Sum           map[int]map[string]float64
}

func newIsmctsNode(parent *ismctsNode, incomingEdge []hitler.Action) *ismctsNode {
	return &ismctsNode{
		parent:       parent,
		incomingEdge: incomingEdge,
		children:     make(map[string]*ismctsNode),
		childMoves:   make(map[string][]hitler.Action),
		exp3Sum:      make(map[int]map[string]float64),
	}
}

func jointKey(moves []hitler.Action) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, "\x1f")
}

// compatibleChildren enumerates the cartesian product of every moving
// player's legal actions at (pub, hidden). Grounded on
// Node.compatible_children.
func (n *ismctsNode) compatibleChildren(pub hitler.PublicState, hidden hitler.HiddenState) [][]hitler.Action {
	movers := pub.MovingPlayers()
	perPlayer := make([][]hitler.Action, len(movers))
	for i, p := range movers {
		perPlayer[i] = pub.LegalActions(hidden, p)
	}
	return cartesianProduct(perPlayer)
}

func cartesianProduct(lists [][]hitler.Action) [][]hitler.Action {
	if len(lists) == 0 {
		return [][]hitler.Action{{}}
	}
	rest := cartesianProduct(lists[1:])
	out := make([][]hitler.Action, 0, len(lists[0])*len(rest))
	for _, head := range lists[0] {
		for _, tail := range rest {
			combo := make([]hitler.Action, 0, 1+len(tail))
			combo = append(combo, head)
			combo = append(combo, tail...)
			out = append(out, combo)
		}
	}
	return out
}

// unexploredChildren returns every compatible joint move not yet
// expanded into a child node. Grounded on Node.unexplored_children.
func (n *ismctsNode) unexploredChildren(pub hitler.PublicState, hidden hitler.HiddenState) [][]hitler.Action {
	var out [][]hitler.Action
	for _, moves := range n.compatibleChildren(pub, hidden) {
		if _, ok := n.children[jointKey(moves)]; !ok {
			out = append(out, moves)
		}
	}
	return out
}

// calculateExp3Probs returns the EXP3 selection distribution for player
// over their currently-available actions. Grounded on
// Node.calculate_exp3_probs exactly, including the 700-cap on the
// exponent to avoid overflow.
func (n *ismctsNode) calculateExp3Probs(pub hitler.PublicState, hidden hitler.HiddenState, player int) ([]hitler.Action, []float64) {
	available := pub.LegalActions(hidden, player)
	k := float64(len(available))
	var gamma float64
	if n.visitCount == 0 {
		gamma = 1.0
	} else {
		gamma = math.Min(1.0, math.Sqrt(k*math.Log(k)/(float64(n.visitCount)*(math.E-1))))
	}
	eta := gamma / k
	sums := n.exp3Sum[player]
	probs := make([]float64, len(available))
	for i, action := range available {
		var denom float64
		for _, a := range available {
			exponent := eta * (sums[a.String()] - sums[action.String()])
			if exponent > 700 {
				exponent = 700
			}
			denom += math.Exp(exponent)
		}
		probs[i] = gamma/k + (1.0-gamma)/denom
	}
	return available, probs
}

// selectChild picks the next joint move to descend to: UCB1 over
// already-expanded children when exactly one player is moving, EXP3 per
// mover otherwise. Grounded on Node.select_child.
func (n *ismctsNode) selectChild(rng *rand.Rand, pub hitler.PublicState, hidden hitler.HiddenState) []hitler.Action {
	movers := pub.MovingPlayers()
	if len(movers) == 1 {
		available := n.compatibleChildren(pub, hidden)
		if len(available) == 1 {
			return available[0]
		}
		bestVal := math.Inf(-1)
		var best []hitler.Action
		for _, moves := range available {
			child := n.children[jointKey(moves)]
			val := child.totalReward/float64(child.visitCount) +
				Exp3Exploration*math.Sqrt(math.Log(float64(child.availabilityCount))/float64(child.visitCount))
			if val > bestVal {
				bestVal = val
				best = moves
			}
		}
		return best
	}
	move := make([]hitler.Action, len(movers))
	for i, player := range movers {
		actions, probs := n.calculateExp3Probs(pub, hidden, player)
		if len(actions) == 1 {
			move[i] = actions[0]
		} else {
			move[i] = RandomChoice(rng, actions, probs)
		}
	}
	return move
}

type traceEntry struct {
	pub    hitler.PublicState
	hidden hitler.HiddenState
}

// selectLeaf descends from node while every compatible child is already
// expanded, recording each transitioned (public, hidden) pair to trace
// since re-running Transition during backpropagation would draw a
// different (non-deterministic) deck shuffle. Grounded on select_leaf.
func selectLeaf(rng *rand.Rand, node *ismctsNode, pub hitler.PublicState, hidden hitler.HiddenState, trace *[]traceEntry) (*ismctsNode, hitler.PublicState, hitler.HiddenState) {
	if pub.IsTerminal() {
		return node, pub, hidden
	}
	if len(node.unexploredChildren(pub, hidden)) != 0 {
		return node, pub, hidden
	}
	moves := node.selectChild(rng, pub, hidden)
	child := node.children[jointKey(moves)]
	nextPub, nextHidden, _ := hitler.Transition(pub, hidden, moves, rng)
	*trace = append(*trace, traceEntry{nextPub, nextHidden})
	return selectLeaf(rng, child, nextPub, nextHidden, trace)
}

// expandIfNeeded adds one new child for a uniformly random unexplored
// joint move. Grounded on expand_if_needed.
func expandIfNeeded(rng *rand.Rand, node *ismctsNode, pub hitler.PublicState, hidden hitler.HiddenState, trace *[]traceEntry) (*ismctsNode, hitler.PublicState, hitler.HiddenState) {
	if pub.IsTerminal() {
		return node, pub, hidden
	}
	unexplored := node.unexploredChildren(pub, hidden)
	moves := unexplored[rng.Intn(len(unexplored))]

	child := newIsmctsNode(node, moves)
	key := jointKey(moves)
	node.children[key] = child
	node.childMoves[key] = moves

	nextPub, nextHidden, _ := hitler.Transition(pub, hidden, moves, rng)
	*trace = append(*trace, traceEntry{nextPub, nextHidden})
	return child, nextPub, nextHidden
}

// backpropagate walks from leaf back up to the root to recover the move
// history, then walks back down replaying the recorded trace (not fresh
// transitions, since the deck shuffle is non-deterministic) to update
// visit counts, UCB1 rewards and EXP3 sums along the path. Grounded on
// backpropagate, including its quirk of crediting a mover's first-ever
// EXP3 sample with the raw reward (unscaled by selection probability)
// and every later sample with the importance-weighted reward.
func backpropagate(initialPub hitler.PublicState, initialHidden hitler.HiddenState, leaf *ismctsNode, rewards []float64, trace []traceEntry) {
	var actionHistory [][]hitler.Action
	node := leaf
	for node.parent != nil {
		actionHistory = append(actionHistory, node.incomingEdge)
		node = node.parent
	}
	for i, j := 0, len(actionHistory)-1; i < j; i, j = i+1, j-1 {
		actionHistory[i], actionHistory[j] = actionHistory[j], actionHistory[i]
	}

	pub, hidden := initialPub, initialHidden
	for i, action := range actionHistory {
		movers := pub.MovingPlayers()
		for _, neighbor := range node.compatibleChildren(pub, hidden) {
			if child, ok := node.children[jointKey(neighbor)]; ok {
				child.availabilityCount++
			}
		}
		key := jointKey(action)
		child := node.children[key]
		child.visitCount++

		if len(movers) == 1 {
			child.totalReward += rewards[movers[0]]
		} else {
			for idx, player := range movers {
				move := action[idx]
				if node.exp3Sum[player] == nil {
					node.exp3Sum[player] = make(map[string]float64)
				}
				sums := node.exp3Sum[player]
				if _, seen := sums[move.String()]; !seen {
					sums[move.String()] += rewards[player]
				} else {
					actions, probs := node.calculateExp3Probs(pub, hidden, player)
					prob := 1.0
					for k, a := range actions {
						if a == move {
							prob = probs[k]
							break
						}
					}
					sums[move.String()] += rewards[player] / prob
				}
			}
		}

		node = child
		pub, hidden = trace[i].pub, trace[i].hidden
	}
}

// SOISMCTSSearch runs single-observer information-set MCTS over
// numIterations determinizations and returns the searcher's move from
// the most-visited root child. Grounded on soismcts_agent.py's
// search_ismcts.
func SOISMCTSSearch(rng *rand.Rand, searcher int, pub hitler.PublicState, roleHypotheses [][]hitler.SecretRole, numIterations int, legalActions []hitler.Action, deckKnowledge, presidentPass []hitler.Party) (hitler.Action, *ismctsNode) {
	root := newIsmctsNode(nil, nil)

	for _, initHidden := range determinize.Sample(numIterations, roleHypotheses, pub, legalActions, deckKnowledge, presidentPass, rng) {
		if !sameActions(pub.LegalActions(initHidden, searcher), legalActions) {
			continue
		}
		var trace []traceEntry
		node, gs, hs := selectLeaf(rng, root, pub, initHidden, &trace)
		node, gs, hs = expandIfNeeded(rng, node, gs, hs, &trace)
		rewards := Simulate(gs, hs, rng)
		backpropagate(pub, initHidden, node, rewards, trace)
	}

	bestVisits := -1
	var bestKey string
	for key, child := range root.children {
		if child.visitCount > bestVisits {
			bestVisits = child.visitCount
			bestKey = key
		}
	}
	moves := root.childMoves[bestKey]
	idx := indexOfPlayer(pub.MovingPlayers(), searcher)
	return moves[idx], root
}

func indexOfPlayer(players []int, player int) int {
	for i, p := range players {
		if p == player {
			return i
		}
	}
	return -1
}
