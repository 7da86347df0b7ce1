package hitler

import "fmt"

// Action is any move a moving player may submit to transition. Grounded on
// the namedtuple action types in secrethitler/constants.py
// (VoteAction/NominateChancellorAction/PolicyChoiceAction/VetoAction/
// DeckpeekPowerAction/BulletPowerAction/InvestigateAction/
// SpecialElectionAction); Go lacks tagged unions, so each variant is its
// own comparable struct satisfying this marker interface, mirroring the
// per-field Order struct in pkg/diplomacy/order.go more than a single
// enum-plus-union would.
type Action interface {
	isAction()
	String() string
}

// Nominate proposes a chancellor candidate.
type Nominate struct{ Chancellor int }

func (Nominate) isAction()          {}
func (a Nominate) String() string   { return fmt.Sprintf("Nominate(%d)", a.Chancellor) }

// Vote casts a ja/nein ballot.
type Vote struct{ Ja bool }

func (Vote) isAction()        {}
func (a Vote) String() string { return fmt.Sprintf("Vote(ja=%v)", a.Ja) }

// PolicyChoice selects which policy to keep/discard/play depending on phase.
type PolicyChoice struct{ Policy Party }

func (PolicyChoice) isAction()        {}
func (a PolicyChoice) String() string { return fmt.Sprintf("PolicyChoice(%s)", a.Policy) }

// VetoAction proposes or responds to discarding both proposed policies.
type VetoAction struct{ Veto bool }

func (VetoAction) isAction()        {}
func (a VetoAction) String() string { return fmt.Sprintf("Veto(%v)", a.Veto) }

// DeckpeekAck acknowledges a deck-peek power; it has no operand.
type DeckpeekAck struct{}

func (DeckpeekAck) isAction()        {}
func (DeckpeekAck) String() string   { return "DeckpeekAck" }

// Bullet executes a presidential bullet power against a target seat.
type Bullet struct{ Target int }

func (Bullet) isAction()        {}
func (a Bullet) String() string { return fmt.Sprintf("Bullet(%d)", a.Target) }

// Investigate reveals a target seat's party to the president.
type Investigate struct{ Target int }

func (Investigate) isAction()        {}
func (a Investigate) String() string { return fmt.Sprintf("Investigate(%d)", a.Target) }

// SpecialElection names the next president out of turn.
type SpecialElection struct{ Target int }

func (SpecialElection) isAction()        {}
func (a SpecialElection) String() string { return fmt.Sprintf("SpecialElection(%d)", a.Target) }

// Observation is a private notification delivered only to the moving
// players of the step that produced it. Grounded on
// DeckpeekPowerObservation/InvestigatePowerObservation/
// PresidentPassObservation in secrethitler/constants.py.
type Observation interface {
	isObservation()
}

// DeckpeekObservation reveals the top 3 cards of the deck to the president.
type DeckpeekObservation struct{ Policies []Party }

func (DeckpeekObservation) isObservation() {}

// InvestigateObservation reveals a target's party to the president.
type InvestigateObservation struct {
	Target int
	Party  Party
}

func (InvestigateObservation) isObservation() {}

// PresidentPassObservation reveals the two policies the president passed
// to the chancellor.
type PresidentPassObservation struct{ Policies []Party }

func (PresidentPassObservation) isObservation() {}
