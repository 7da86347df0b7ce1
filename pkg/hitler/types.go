// Package hitler implements the deterministic rules engine for Secret
// Hitler: role/party/phase/power primitives, the policy deck, the hidden
// and public state types, and the pure transition function.
package hitler

import "fmt"

// Party is one of the two political factions a secret role belongs to.
type Party int

const (
	Fascist Party = iota
	Liberal
)

func (p Party) String() string {
	switch p {
	case Fascist:
		return "fascist"
	case Liberal:
		return "liberal"
	default:
		return fmt.Sprintf("Party(%d)", int(p))
	}
}

// Opposite returns the other party.
func (p Party) Opposite() Party {
	if p == Fascist {
		return Liberal
	}
	return Fascist
}

// Parties lists both parties, used when enumerating possible policy values.
func Parties() []Party {
	return []Party{Liberal, Fascist}
}

// SecretRole is the concealed role held by a seat.
type SecretRole int

const (
	RoleFascist SecretRole = iota
	RoleLiberal
	RoleHitler
)

func (r SecretRole) String() string {
	switch r {
	case RoleFascist:
		return "fascist"
	case RoleLiberal:
		return "liberal"
	case RoleHitler:
		return "hitler"
	default:
		return fmt.Sprintf("SecretRole(%d)", int(r))
	}
}

// Party maps a secret role to its political party; Hitler counts as fascist.
func (r SecretRole) Party() Party {
	if r == RoleLiberal {
		return Liberal
	}
	return Fascist
}

// Phase is a stage in the per-round state machine.
type Phase int

const (
	PhaseNomination Phase = iota
	PhaseVote
	PhasePresidentSelectPolicy
	PhaseChancellorSelectPolicy
	PhaseVeto
	PhasePresidentPower
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseNomination:
		return "nomination"
	case PhaseVote:
		return "vote"
	case PhasePresidentSelectPolicy:
		return "presidentSelectPolicy"
	case PhaseChancellorSelectPolicy:
		return "chancellorSelectPolicy"
	case PhaseVeto:
		return "veto"
	case PhasePresidentPower:
		return "presidentPower"
	case PhaseEnd:
		return "end"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Power is a presidential power triggered by enacting a fascist policy.
type Power int

const (
	PowerDeckpeek Power = iota
	PowerBullet
	PowerInvestigate
	PowerSpecialElection
	PowerNone
)

func (p Power) String() string {
	switch p {
	case PowerDeckpeek:
		return "deckpeek"
	case PowerBullet:
		return "bullet"
	case PowerInvestigate:
		return "investigate"
	case PowerSpecialElection:
		return "specialelection"
	case PowerNone:
		return "none"
	default:
		return fmt.Sprintf("Power(%d)", int(p))
	}
}

// GameEndReason records why the game ended.
type GameEndReason int

const (
	ReasonHitlerKilled GameEndReason = iota
	ReasonHitlerElected
	ReasonFiveLiberalPolicies
	ReasonSixFascistPolicies
)

func (r GameEndReason) String() string {
	switch r {
	case ReasonHitlerKilled:
		return "hitler_killed"
	case ReasonHitlerElected:
		return "hitler_elected"
	case ReasonFiveLiberalPolicies:
		return "five_liberal_policies"
	case ReasonSixFascistPolicies:
		return "six_fascist_policies"
	default:
		return fmt.Sprintf("GameEndReason(%d)", int(r))
	}
}

const (
	NumLibPolicy  = 6
	NumFasPolicy  = 11
	DeckSize      = NumFasPolicy + NumLibPolicy
	LibPolicyWin  = 5
	FasPolicyWin  = 6
	ChaosLimit    = 3
	HitlerZone    = 3
	OpponentTremble = 0.1
)

// PlayerCount gives (numLiberal, numFascist) for a starting player count.
var PlayerCount = map[int][2]int{
	5:  {3, 2},
	6:  {4, 2},
	7:  {4, 3},
	8:  {5, 3},
	9:  {5, 4},
	10: {6, 4},
}

// RoleComposition gives the canonical (not permuted) role assignment used
// to seed the permutation set for a given starting player count.
var RoleComposition = map[int][]SecretRole{
	5:  append(rep(RoleFascist, 1), append([]SecretRole{RoleHitler}, rep(RoleLiberal, 3)...)...),
	6:  append(rep(RoleFascist, 1), append([]SecretRole{RoleHitler}, rep(RoleLiberal, 4)...)...),
	7:  append(rep(RoleFascist, 2), append([]SecretRole{RoleHitler}, rep(RoleLiberal, 4)...)...),
	8:  append(rep(RoleFascist, 2), append([]SecretRole{RoleHitler}, rep(RoleLiberal, 5)...)...),
	9:  append(rep(RoleFascist, 3), append([]SecretRole{RoleHitler}, rep(RoleLiberal, 5)...)...),
	10: append(rep(RoleFascist, 3), append([]SecretRole{RoleHitler}, rep(RoleLiberal, 6)...)...),
}

func rep(r SecretRole, n int) []SecretRole {
	out := make([]SecretRole, n)
	for i := range out {
		out[i] = r
	}
	return out
}

// PowerTrack gives the 6-slot power track (indexed by fascist policies
// enacted so far, 0..5) for a given starting player count.
var PowerTrack = map[int][6]Power{
	5:  {PowerNone, PowerNone, PowerNone, PowerDeckpeek, PowerBullet, PowerBullet},
	6:  {PowerNone, PowerNone, PowerNone, PowerDeckpeek, PowerBullet, PowerBullet},
	7:  {PowerNone, PowerNone, PowerInvestigate, PowerSpecialElection, PowerBullet, PowerBullet},
	8:  {PowerNone, PowerNone, PowerInvestigate, PowerSpecialElection, PowerBullet, PowerBullet},
	9:  {PowerNone, PowerInvestigate, PowerInvestigate, PowerSpecialElection, PowerBullet, PowerBullet},
	10: {PowerNone, PowerInvestigate, PowerInvestigate, PowerSpecialElection, PowerBullet, PowerBullet},
}
