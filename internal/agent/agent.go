// Package agent implements the players that choose moves during a game:
// a uniform-random baseline, a one-ply heuristic baseline, and two
// search-backed agents (PIMC and SO-ISMCTS), both running at a caller-
// supplied iteration budget rather than the fixed 100/10000 pair the
// original splits into separate named agents. Grounded structurally on
// internal/bot/strategy.go's small interface + `ForDifficulty`-style
// factory idiom, and semantically on agents/agent.py,
// agents/random_agent.py, agents/selfish_agent.py, agents/pimc_agent.py
// and agents/soismcts_agent.py.
package agent

import (
	"fmt"

	"github.com/freeeve/secrethitler/internal/belief"
	"github.com/freeeve/secrethitler/internal/searchrand"
	"github.com/freeeve/secrethitler/pkg/hitler"
)

// Agent chooses a move given the public state and the set of actions
// legal for it, and is kept informed of every transition and private
// observation so its Beliefs stay current. Grounded on agents/agent.py's
// Agent base class.
type Agent interface {
	Name() string
	PlayerID() int
	GetAction(pub hitler.PublicState, legal []hitler.Action) hitler.Action
	HandleTransition(oldPub, newPub hitler.PublicState, oldHidden hitler.HiddenState, moves []hitler.Action)
	HandleObservation(obs hitler.Observation)
	Beliefs() *belief.Beliefs
}

// Base carries the state every concrete agent shares: identity and
// evolving beliefs. Embed it and implement GetAction to build a new
// agent kind.
type Base struct {
	name   string
	beliefs *belief.Beliefs
}

// NewBase builds the shared agent state for player playerID in an
// n-player game holding role.
func NewBase(name string, playerID int, role hitler.SecretRole, n int) Base {
	return Base{name: name, beliefs: belief.New(playerID, role, n)}
}

func (b *Base) Name() string              { return b.name }
func (b *Base) PlayerID() int             { return b.beliefs.PlayerID }
func (b *Base) Beliefs() *belief.Beliefs   { return b.beliefs }

// HandleTransition and HandleObservation delegate directly to Beliefs,
// using the package-level search RNG for any terminal-replay filtering.
// Grounded on Agent.handle_transition/Agent.handle_observation.
func (b *Base) HandleTransition(oldPub, newPub hitler.PublicState, oldHidden hitler.HiddenState, moves []hitler.Action) {
	b.beliefs.HandleTransition(oldPub, newPub, oldHidden, moves, searchrand.Source())
}

func (b *Base) HandleObservation(obs hitler.Observation) {
	b.beliefs.HandleObservation(obs)
}

// Kinds lists the agent names ForKind accepts, in the order the CLI
// documents them.
var Kinds = []string{"random", "selfish", "soismcts", "pimc"}

// ForKind builds a concrete agent of the named kind. iterations sets the
// search budget for "soismcts" and "pimc"; tremble sets "pimc"'s
// opponent-model tremble weight. Both are ignored by the other kinds.
// Grounded structurally on bot.StrategyForDifficulty's
// name-to-implementation switch.
func ForKind(kind string, playerID, numPlayers int, role hitler.SecretRole, iterations int, tremble float64) (Agent, error) {
	switch kind {
	case "random":
		return NewRandom(playerID, numPlayers, role), nil
	case "selfish":
		return NewSelfish(playerID, numPlayers, role), nil
	case "pimc":
		return NewPIMC(playerID, numPlayers, role, iterations, tremble, fmt.Sprintf("PIMC-%d Agent", iterations)), nil
	case "soismcts":
		return NewSOISMCTS(playerID, numPlayers, role, iterations, fmt.Sprintf("SO-ISMCTS-%d Agent", iterations)), nil
	default:
		return nil, fmt.Errorf("agent: unknown kind %q", kind)
	}
}
