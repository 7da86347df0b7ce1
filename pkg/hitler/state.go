package hitler

// PrevGov records the previous government's president/chancellor seats
// for the nomination-restriction rule. President is -1 when cleared by
// the 5-alive-player carve-out; a chaos enactment clears the whole
// PrevGov (PublicState.PrevGov becomes nil).
type PrevGov struct {
	President int // -1 if none
	Chancellor int
}

// PublicState is the common-knowledge portion of the game. Grounded on
// SecretHitlerState in secrethitler/state.py.
type PublicState struct {
	StartingNumPlayers int
	CurrentNumPlayers  int
	AlivePlayers       []int
	President          int
	Chancellor         int // -1 if none
	SEPrevPres         int // -1 if not mid special-election term
	Phase              Phase
	FasPolicy          int
	LibPolicy          int
	Chaos              int
	PolicyDeckSize     int
	PrevGov            *PrevGov // nil if none
	PresidentVeto      bool
	GameEnd            *Party // non-nil iff Phase == end
	GameEndReason      GameEndReason
}

const noSeat = -1

// Powers returns the power track for this game's starting player count.
func (s PublicState) Powers() [6]Power {
	return PowerTrack[s.StartingNumPlayers]
}

// VetoAvailable mirrors the Python source's precomputed `self.veto` field:
// true once the 5th fascist policy is enacted, for as long as the
// president hasn't already exercised (and lost) the veto this session.
func (s PublicState) VetoAvailable() bool {
	return s.FasPolicy == FasPolicyWin-1 && s.PresidentVeto
}

// Clone returns a deep copy of s.
func (s PublicState) Clone() PublicState {
	out := s
	out.AlivePlayers = append([]int(nil), s.AlivePlayers...)
	if s.PrevGov != nil {
		pg := *s.PrevGov
		out.PrevGov = &pg
	}
	if s.GameEnd != nil {
		g := *s.GameEnd
		out.GameEnd = &g
	}
	return out
}

// CloneInto deep-copies s into dst, reusing dst's backing slice when it
// has enough capacity. Grounded on GameState.CloneInto in
// pkg/diplomacy/state.go.
func (s PublicState) CloneInto(dst *PublicState) {
	dst.StartingNumPlayers = s.StartingNumPlayers
	dst.CurrentNumPlayers = s.CurrentNumPlayers
	if cap(dst.AlivePlayers) >= len(s.AlivePlayers) {
		dst.AlivePlayers = dst.AlivePlayers[:len(s.AlivePlayers)]
		copy(dst.AlivePlayers, s.AlivePlayers)
	} else {
		dst.AlivePlayers = append([]int(nil), s.AlivePlayers...)
	}
	dst.President = s.President
	dst.Chancellor = s.Chancellor
	dst.SEPrevPres = s.SEPrevPres
	dst.Phase = s.Phase
	dst.FasPolicy = s.FasPolicy
	dst.LibPolicy = s.LibPolicy
	dst.Chaos = s.Chaos
	dst.PolicyDeckSize = s.PolicyDeckSize
	if s.PrevGov == nil {
		dst.PrevGov = nil
	} else {
		pg := *s.PrevGov
		dst.PrevGov = &pg
	}
	dst.PresidentVeto = s.PresidentVeto
	if s.GameEnd == nil {
		dst.GameEnd = nil
	} else {
		g := *s.GameEnd
		dst.GameEnd = &g
	}
	dst.GameEndReason = s.GameEndReason
}

// StartState builds the initial public/hidden state pair for n players.
// Grounded on SecretHitlerState.start_state, with the hidden role
// assignment and shuffled deck built by the caller (real play uses a
// system RNG; see cmd/sh_game).
func StartState(n int, president int, hiddenRoles []SecretRole, deck PolicyDeck) (PublicState, HiddenState, error) {
	if n < 5 || n > 10 {
		return PublicState{}, HiddenState{}, newIllegalArgument("player count %d outside [5,10]", n)
	}
	if len(hiddenRoles) != n {
		return PublicState{}, HiddenState{}, newIllegalArgument("hidden role tuple length %d != %d players", len(hiddenRoles), n)
	}
	alive := make([]int, n)
	for i := range alive {
		alive[i] = i
	}
	pub := PublicState{
		StartingNumPlayers: n,
		CurrentNumPlayers:  n,
		AlivePlayers:       alive,
		President:          president,
		Chancellor:         noSeat,
		SEPrevPres:         noSeat,
		Phase:              PhaseNomination,
		FasPolicy:          0,
		LibPolicy:          0,
		Chaos:              0,
		PolicyDeckSize:     deck.Len(),
		PrevGov:            nil,
		PresidentVeto:      true,
	}
	hidden := HiddenState{
		HiddenRoles:      append([]SecretRole(nil), hiddenRoles...),
		PolicyDeck:       deck,
		DiscardPile:      nil,
		ProposedPolicies: nil,
	}
	return pub, hidden, nil
}

// IsTerminal reports whether the game has ended.
func (s PublicState) IsTerminal() bool { return s.Phase == PhaseEnd }

// TerminalValue returns the zero-sum payoff for each seat in hidden's role
// tuple. Grounded on SecretHitlerState.terminal_value.
func (s PublicState) TerminalValue(hidden HiddenState) []float64 {
	counts := PlayerCount[s.StartingNumPlayers]
	numLib, numFas := counts[0], counts[1]

	libAmount := -1.0
	fasAmount := float64(numLib) / float64(numFas)
	if s.GameEnd != nil && *s.GameEnd == Liberal {
		libAmount = 1.0
		fasAmount = -float64(numLib) / float64(numFas)
	}

	values := make([]float64, len(hidden.HiddenRoles))
	for i, role := range hidden.HiddenRoles {
		if role == RoleLiberal {
			values[i] = libAmount
		} else {
			values[i] = fasAmount
		}
	}
	return values
}

// MovingPlayers returns the seats expected to submit a move this step.
// Grounded on SecretHitlerState.moving_players.
func (s PublicState) MovingPlayers() []int {
	if s.IsTerminal() {
		raiseInvariant("moving-players-terminal", "the game has ended")
	}
	switch s.Phase {
	case PhasePresidentSelectPolicy, PhaseNomination:
		return []int{s.President}
	case PhasePresidentPower:
		if s.Powers()[s.FasPolicy] == PowerNone {
			return nil
		}
		return []int{s.President}
	case PhaseVote:
		return append([]int(nil), s.AlivePlayers...)
	case PhaseChancellorSelectPolicy:
		return []int{s.Chancellor}
	case PhaseVeto:
		return []int{s.President}
	default:
		raiseInvariant("moving-players-phase", "%v is not a valid phase", s.Phase)
		return nil
	}
}

func isAlive(alive []int, p int) bool {
	for _, a := range alive {
		if a == p {
			return true
		}
	}
	return false
}

// nextPresident advances the presidency to the next alive seat after
// current (or after sePrevPres when set), consuming sePrevPres in the
// process. Grounded on SecretHitlerState._next_president.
func nextPresident(current, startingNumPlayers int, alive []int, sePrevPres int) (next int, clearedSEPrevPres int) {
	from := current
	if sePrevPres != noSeat {
		from = sePrevPres
	}
	next = (from + 1) % startingNumPlayers
	for !isAlive(alive, next) {
		next = (next + 1) % startingNumPlayers
	}
	return next, noSeat
}

// gameEndingPolicy reports whether the given enacted counts trigger a
// policy-threshold win, and which one. Grounded on
// SecretHitlerState._game_ending_policy.
func gameEndingPolicy(fasPolicy, libPolicy int) (*Party, GameEndReason, bool) {
	if fasPolicy == FasPolicyWin {
		p := Fascist
		return &p, ReasonSixFascistPolicies, true
	}
	if libPolicy == LibPolicyWin {
		p := Liberal
		return &p, ReasonFiveLiberalPolicies, true
	}
	return nil, 0, false
}
