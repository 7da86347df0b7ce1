package agent

import (
	"github.com/freeeve/secrethitler/internal/searchrand"
	"github.com/freeeve/secrethitler/pkg/hitler"
)

// Random plays a uniformly random legal action every turn. Grounded on
// agents/random_agent.py's RandomAgent.
type Random struct {
	Base
}

func NewRandom(playerID, numPlayers int, role hitler.SecretRole) *Random {
	return &Random{Base: NewBase("Random Agent", playerID, role, numPlayers)}
}

func (r *Random) GetAction(pub hitler.PublicState, legal []hitler.Action) hitler.Action {
	return legal[searchrand.Intn(len(legal))]
}
