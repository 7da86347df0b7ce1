package agent

import (
	"github.com/freeeve/secrethitler/internal/search"
	"github.com/freeeve/secrethitler/internal/searchrand"
	"github.com/freeeve/secrethitler/pkg/hitler"
)

// SOISMCTS chooses moves via single-observer information-set MCTS over
// Iterations determinizations. Grounded on agents/soismcts_agent.py's
// SOISMCTSAgentBase (SOISMCTSAgent100 and SOISMCTSAgent10000 are the
// same search at different budgets).
type SOISMCTS struct {
	Base
	Iterations int
}

func NewSOISMCTS(playerID, numPlayers int, role hitler.SecretRole, iterations int, name string) *SOISMCTS {
	return &SOISMCTS{Base: NewBase(name, playerID, role, numPlayers), Iterations: iterations}
}

func (s *SOISMCTS) GetAction(pub hitler.PublicState, legal []hitler.Action) hitler.Action {
	if len(legal) == 1 {
		return legal[0]
	}
	b := s.Beliefs()
	move, _ := search.SOISMCTSSearch(searchrand.Source(), s.PlayerID(), pub, b.HiddenRoleBeliefs, s.Iterations, legal, b.DeckKnowledge, b.PresidentPass)
	return move
}
