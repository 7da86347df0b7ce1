package agent

import (
	"github.com/freeeve/secrethitler/internal/search"
	"github.com/freeeve/secrethitler/internal/searchrand"
	"github.com/freeeve/secrethitler/pkg/hitler"
)

// PIMC chooses moves via perfect-information Monte Carlo search over
// Iterations determinizations consistent with its current beliefs, with
// non-searching players modeled under a Tremble-weighted policy.
// Grounded on agents/pimc_agent.py's PIMCAgentBase (PIMCAgent100 and
// PIMCAgent10000 were the same search at different budgets; this port
// collapses them into one iteration-parameterized type, see
// agent.ForKind).
type PIMC struct {
	Base
	Iterations int
	Tremble    float64
}

func NewPIMC(playerID, numPlayers int, role hitler.SecretRole, iterations int, tremble float64, name string) *PIMC {
	return &PIMC{Base: NewBase(name, playerID, role, numPlayers), Iterations: iterations, Tremble: tremble}
}

func (p *PIMC) GetAction(pub hitler.PublicState, legal []hitler.Action) hitler.Action {
	if len(legal) == 1 {
		return legal[0]
	}
	b := p.Beliefs()
	return search.PIMCSearch(searchrand.Source(), pub, p.PlayerID(), b.HiddenRoleBeliefs, legal, p.Iterations, b.DeckKnowledge, b.PresidentPass, p.Tremble)
}
