// Package search implements the two tree-search policies agents use to
// pick moves under hidden information: single-player PIMC with a
// tremble-policy opponent model, and multi-player SO-ISMCTS with EXP3 at
// simultaneous-mover nodes. Both share the uniform-random playout in
// this file. Grounded on agents/mcts_common.py, agents/pimc_agent.py and
// agents/soismcts_agent.py.
package search

import (
	"math/rand"

	"github.com/freeeve/secrethitler/pkg/hitler"
)

// RandomChoice picks a uniformly random element, or a weighted element
// when probs is non-nil. Grounded on mcts_common.py's random_choice.
func RandomChoice(rng *rand.Rand, actions []hitler.Action, probs []float64) hitler.Action {
	if probs == nil {
		return actions[rng.Intn(len(actions))]
	}
	r := rng.Float64()
	var cum float64
	for i, p := range probs {
		cum += p
		if r <= cum {
			return actions[i]
		}
	}
	return actions[len(actions)-1]
}

// Simulate rolls a state out to terminal with every mover choosing
// uniformly at random among its legal actions, and returns the terminal
// per-player value vector. Grounded on mcts_common.py's simulate.
func Simulate(pub hitler.PublicState, hidden hitler.HiddenState, rng *rand.Rand) []float64 {
	for !pub.IsTerminal() {
		movers := pub.MovingPlayers()
		moves := make([]hitler.Action, len(movers))
		for i, p := range movers {
			legal := pub.LegalActions(hidden, p)
			moves[i] = RandomChoice(rng, legal, nil)
		}
		pub, hidden, _ = hitler.Transition(pub, hidden, moves, rng)
	}
	return pub.TerminalValue(hidden)
}
