package agent

import (
	"github.com/freeeve/secrethitler/internal/searchrand"
	"github.com/freeeve/secrethitler/pkg/hitler"
)

// Selfish plays randomly except that it always tries to enact its own
// party's policies when legislating: as president it discards the
// opposing party's card when it can, and as chancellor it plays its own
// party's card when it can. Grounded on agents/selfish_agent.py's
// SelfishAgent.
type Selfish struct {
	Base
}

func NewSelfish(playerID, numPlayers int, role hitler.SecretRole) *Selfish {
	return &Selfish{Base: NewBase("Selfish Agent", playerID, role, numPlayers)}
}

func (s *Selfish) GetAction(pub hitler.PublicState, legal []hitler.Action) hitler.Action {
	party := s.Beliefs().Party
	switch pub.Phase {
	case hitler.PhasePresidentSelectPolicy:
		discard := hitler.PolicyChoice{Policy: party.Opposite()}
		if !containsAction(legal, discard) {
			discard = hitler.PolicyChoice{Policy: party}
		}
		return discard
	case hitler.PhaseChancellorSelectPolicy:
		play := hitler.PolicyChoice{Policy: party}
		if !containsAction(legal, play) {
			play = hitler.PolicyChoice{Policy: party.Opposite()}
		}
		return play
	default:
		return legal[searchrand.Intn(len(legal))]
	}
}

func containsAction(legal []hitler.Action, a hitler.Action) bool {
	for _, l := range legal {
		if l == a {
			return true
		}
	}
	return false
}
