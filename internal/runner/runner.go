// Package runner drives a single game from its starting state to
// terminal, dispatching legal-action queries, observations and
// transition notifications to each seated agent. Grounded on
// battlefield/tournament.py's run_game; structurally on
// internal/bot/arena.go's RunGame config/result shape.
package runner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/secrethitler/internal/agent"
	"github.com/freeeve/secrethitler/pkg/hitler"
)

// Result describes how a completed game ended.
type Result struct {
	WinningParty hitler.Party
	Reason       hitler.GameEndReason
	TerminalValue []float64
	TotalSteps   int
}

// RevealFascistTeam gives the fascist team (and, in games under 7
// players, Hitler too) full knowledge of the hidden role assignment at
// game start, matching Secret Hitler's own table-talk rules. Grounded
// on run_sh_game.py's pre-game reveal loop.
func RevealFascistTeam(agents []agent.Agent, roles []hitler.SecretRole, numPlayers int) {
	for _, a := range agents {
		role := roles[a.PlayerID()]
		revealed := role == hitler.RoleFascist || (role == hitler.RoleHitler && numPlayers < 7)
		if revealed {
			a.Beliefs().CommunicateHiddenState(roles)
		}
	}
}

// RunGame plays pub/hidden to terminal using agents (indexed by player
// seat), logs one info line with the winner, reason and step count once
// the game ends, and returns the terminal outcome. Grounded on
// battlefield/tournament.py's run_game exactly: movers act, the state
// transitions, private observations reach only the movers, and every
// agent (moving or not) gets handle_transition so its beliefs stay
// current.
func RunGame(ctx context.Context, pub hitler.PublicState, hidden hitler.HiddenState, agents []agent.Agent, rng hitler.Rand) (*Result, error) {
	steps := 0
	for !pub.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		steps++

		movers := pub.MovingPlayers()
		moves := make([]hitler.Action, len(movers))
		for i, p := range movers {
			legal := pub.LegalActions(hidden, p)
			moves[i] = agents[p].GetAction(pub, legal)
		}

		newPub, newHidden, observation := hitler.Transition(pub, hidden, moves, rng)

		if observation != nil {
			for _, p := range movers {
				agents[p].HandleObservation(observation)
			}
		}
		for _, a := range agents {
			a.HandleTransition(pub, newPub, hidden, moves)
		}

		pub, hidden = newPub, newHidden
	}

	if pub.GameEnd == nil {
		return nil, fmt.Errorf("runner: game reached phase end with no GameEnd party recorded")
	}
	log.Info().
		Str("winner", pub.GameEnd.String()).
		Str("reason", fmt.Sprint(pub.GameEndReason)).
		Int("steps", steps).
		Msg("game finished")

	return &Result{
		WinningParty:  *pub.GameEnd,
		Reason:        pub.GameEndReason,
		TerminalValue: pub.TerminalValue(hidden),
		TotalSteps:    steps,
	}, nil
}
