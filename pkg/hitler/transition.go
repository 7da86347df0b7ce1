package hitler

// Transition applies moves (one per seat in MovingPlayers order) to
// (public, hidden) and returns the resulting (public', hidden',
// observation). rng supplies the randomness backing any deck
// draw/reshuffle this step performs; real play and search playouts each
// pass their own source (see internal/searchrand), keeping Transition
// itself a pure function of its (state, hidden, moves, rng) inputs.
//
// Grounded on SecretHitlerState.transition in secrethitler/state.py,
// including its entry-point I1/I2 conservation assertions.
func Transition(s PublicState, hidden HiddenState, moves []Action, rng Rand) (PublicState, HiddenState, Observation) {
	moving := s.MovingPlayers()
	if len(moves) != len(moving) {
		raiseInvariant("moves-count", "expected %d moves for phase %v, got %d", len(moving), s.Phase, len(moves))
	}
	if s.PolicyDeckSize != hidden.PolicyDeck.Len() {
		raiseInvariant("I1", "public deck size %d != hidden deck length %d", s.PolicyDeckSize, hidden.PolicyDeck.Len())
	}
	total := hidden.PolicyDeck.Len() + len(hidden.DiscardPile) + len(hidden.ProposedPolicies) + s.FasPolicy + s.LibPolicy
	if total != DeckSize {
		raiseInvariant("I1", "deck+discard+proposed+enacted = %d, want %d", total, DeckSize)
	}
	fas := countParty(Fascist, hidden.PolicyDeck.Cards(), hidden.DiscardPile, hidden.ProposedPolicies) + s.FasPolicy
	if fas != NumFasPolicy {
		raiseInvariant("I2", "fascist card count %d != %d", fas, NumFasPolicy)
	}
	lib := countParty(Liberal, hidden.PolicyDeck.Cards(), hidden.DiscardPile, hidden.ProposedPolicies) + s.LibPolicy
	if lib != NumLibPolicy {
		raiseInvariant("I2", "liberal card count %d != %d", lib, NumLibPolicy)
	}

	switch s.Phase {
	case PhaseNomination:
		n, ok := moves[0].(Nominate)
		if !ok {
			raiseInvariant("illegal-action", "expected Nominate in phase nomination, got %v", moves[0])
		}
		return s.nominateChancellorTransition(n.Chancellor), hidden, nil

	case PhaseVote:
		votes := make([]Vote, len(moves))
		for i, m := range moves {
			v, ok := m.(Vote)
			if !ok {
				raiseInvariant("illegal-action", "expected Vote in phase vote, got %v", m)
			}
			votes[i] = v
		}
		return s.voteTransition(hidden, votes, rng)

	case PhasePresidentSelectPolicy:
		pc, ok := moves[0].(PolicyChoice)
		if !ok {
			raiseInvariant("illegal-action", "expected PolicyChoice in phase presidentSelectPolicy, got %v", moves[0])
		}
		return s.presidentSelectTransition(hidden, pc.Policy)

	case PhaseChancellorSelectPolicy:
		return s.chancellorSelectTransition(hidden, moves[0])

	case PhaseVeto:
		va, ok := moves[0].(VetoAction)
		if !ok {
			raiseInvariant("illegal-action", "expected Veto in phase veto, got %v", moves[0])
		}
		return s.vetoTransition(hidden, va.Veto, rng)

	case PhasePresidentPower:
		return s.presidentPowerTransition(hidden, moves[0], rng)
	}

	raiseInvariant("illegal-phase", "invalid phase %v", s.Phase)
	return PublicState{}, HiddenState{}, nil
}

func (s PublicState) nominateChancellorTransition(chancellor int) PublicState {
	out := s.Clone()
	out.Chancellor = chancellor
	out.Phase = PhaseVote
	return out
}

func (s PublicState) voteTransition(hidden HiddenState, votes []Vote, rng Rand) (PublicState, HiddenState, Observation) {
	if len(votes) != len(s.AlivePlayers) {
		raiseInvariant("moves-count", "vote requires one ballot per alive player: got %d, want %d", len(votes), len(s.AlivePlayers))
	}
	ja := 0
	for _, v := range votes {
		if v.Ja {
			ja++
		}
	}
	if float64(ja) > float64(s.CurrentNumPlayers)/2.0 {
		return s.votePassTransition(hidden, rng)
	}
	return s.voteFailTransition(hidden, rng)
}

func (s PublicState) voteFailTransition(hidden HiddenState, rng Rand) (PublicState, HiddenState, Observation) {
	president, sePrevPres := nextPresident(s.President, s.StartingNumPlayers, s.AlivePlayers, s.SEPrevPres)

	if s.Chaos+1 >= ChaosLimit {
		return s.chaosHelper(hidden, president, sePrevPres, false, rng)
	}

	out := s.Clone()
	out.Chancellor = noSeat
	out.Phase = PhaseNomination
	out.Chaos = s.Chaos + 1
	out.President = president
	out.SEPrevPres = sePrevPres
	return out, hidden, nil
}

func (s PublicState) votePassTransition(hidden HiddenState, rng Rand) (PublicState, HiddenState, Observation) {
	if s.FasPolicy >= HitlerZone && hidden.HiddenRoles[s.Chancellor] == RoleHitler {
		out := s.Clone()
		out.Phase = PhaseEnd
		fascist := Fascist
		out.GameEnd = &fascist
		out.GameEndReason = ReasonHitlerElected
		return out, hidden, nil
	}

	prevPres := s.President
	if s.CurrentNumPlayers <= 5 {
		prevPres = noSeat
	}
	prevGov := &PrevGov{President: prevPres, Chancellor: s.Chancellor}

	proposed, newDeck, reshuffled := hidden.PolicyDeck.Draw(s.LibPolicy, s.FasPolicy, 3, rng)
	discard := hidden.DiscardPile
	if reshuffled {
		discard = nil
	}

	out := s.Clone()
	out.Phase = PhasePresidentSelectPolicy
	out.PrevGov = prevGov
	out.PolicyDeckSize = newDeck.Len()

	newHidden := hidden.clone()
	newHidden.ProposedPolicies = proposed
	newHidden.PolicyDeck = newDeck
	newHidden.DiscardPile = discard

	return out, newHidden, nil
}

func (s PublicState) presidentSelectTransition(hidden HiddenState, discard Party) (PublicState, HiddenState, Observation) {
	passed, ok := removeOne(hidden.ProposedPolicies, discard)
	if !ok {
		raiseInvariant("illegal-action", "discarded policy %v not among proposed policies %v", discard, hidden.ProposedPolicies)
	}

	out := s.Clone()
	out.Phase = PhaseChancellorSelectPolicy

	newHidden := hidden.clone()
	newHidden.ProposedPolicies = passed
	newHidden.DiscardPile = append(append([]Party(nil), hidden.DiscardPile...), discard)

	return out, newHidden, PresidentPassObservation{Policies: append([]Party(nil), passed...)}
}

func (s PublicState) chancellorSelectTransition(hidden HiddenState, move Action) (PublicState, HiddenState, Observation) {
	if _, ok := move.(VetoAction); ok {
		out := s.Clone()
		out.Phase = PhaseVeto
		return out, hidden, nil
	}

	pc, ok := move.(PolicyChoice)
	if !ok {
		raiseInvariant("illegal-action", "invalid chancellor action %v", move)
	}
	policy := pc.Policy
	remaining, ok := removeOne(hidden.ProposedPolicies, policy)
	if !ok {
		raiseInvariant("illegal-action", "played policy %v not among proposed policies %v", policy, hidden.ProposedPolicies)
	}
	if len(remaining) != 1 {
		raiseInvariant("I3", "expected exactly 1 discarded policy, got %d", len(remaining))
	}
	discarded := remaining[0]

	fasPolicy, libPolicy := s.FasPolicy, s.LibPolicy
	if policy == Fascist {
		fasPolicy++
	} else {
		libPolicy++
	}

	var phase Phase
	switch {
	case fasPolicy == FasPolicyWin || libPolicy == LibPolicyWin:
		phase = PhaseEnd
	case policy == Fascist && PowerTrack[s.StartingNumPlayers][fasPolicy] != PowerNone:
		phase = PhasePresidentPower
	default:
		phase = PhaseNomination
	}

	gameEnd, reason, ended := gameEndingPolicy(fasPolicy, libPolicy)

	president, sePrevPres := s.President, s.SEPrevPres
	if phase == PhaseNomination {
		president, sePrevPres = nextPresident(s.President, s.StartingNumPlayers, s.AlivePlayers, s.SEPrevPres)
	}

	out := s.Clone()
	out.FasPolicy = fasPolicy
	out.LibPolicy = libPolicy
	out.Chaos = 0
	out.Phase = phase
	out.GameEnd = gameEnd
	out.President = president
	out.SEPrevPres = sePrevPres
	out.Chancellor = noSeat
	out.PresidentVeto = true
	if ended {
		out.GameEndReason = reason
	}

	newHidden := hidden.clone()
	newHidden.ProposedPolicies = nil
	newHidden.DiscardPile = append(append([]Party(nil), hidden.DiscardPile...), discarded)

	return out, newHidden, nil
}

func (s PublicState) vetoTransition(hidden HiddenState, veto bool, rng Rand) (PublicState, HiddenState, Observation) {
	if !veto {
		out := s.Clone()
		out.Phase = PhaseChancellorSelectPolicy
		out.PresidentVeto = false
		return out, hidden, nil
	}

	hs := hidden.clone()
	hs.DiscardPile = append(append([]Party(nil), hidden.DiscardPile...), hidden.ProposedPolicies...)
	hs.ProposedPolicies = nil

	president, sePrevPres := nextPresident(s.President, s.StartingNumPlayers, s.AlivePlayers, s.SEPrevPres)

	if s.Chaos+1 >= ChaosLimit {
		return s.chaosHelper(hs, president, sePrevPres, true, rng)
	}

	out := s.Clone()
	out.Phase = PhaseNomination
	out.Chancellor = noSeat
	out.President = president
	out.SEPrevPres = sePrevPres
	return out, hs, nil
}

func (s PublicState) presidentPowerTransition(hidden HiddenState, move Action, rng Rand) (PublicState, HiddenState, Observation) {
	switch a := move.(type) {
	case DeckpeekAck:
		return s.deckpeekTransition(hidden, rng)
	case Bullet:
		return s.bulletTransition(hidden, a.Target)
	case Investigate:
		return s.investigateTransition(hidden, a.Target)
	case SpecialElection:
		return s.specialElectionTransition(hidden, a.Target)
	default:
		raiseInvariant("illegal-action", "invalid presidential power action %v", move)
		return PublicState{}, HiddenState{}, nil
	}
}

func (s PublicState) deckpeekTransition(hidden HiddenState, rng Rand) (PublicState, HiddenState, Observation) {
	president, sePrevPres := nextPresident(s.President, s.StartingNumPlayers, s.AlivePlayers, s.SEPrevPres)
	policies, newDeck, reshuffled := hidden.PolicyDeck.Peek(s.LibPolicy, s.FasPolicy, 3, rng)
	discard := hidden.DiscardPile
	if reshuffled {
		discard = nil
	}

	out := s.Clone()
	out.President = president
	out.SEPrevPres = sePrevPres
	out.Phase = PhaseNomination
	out.PolicyDeckSize = newDeck.Len()

	newHidden := hidden.clone()
	newHidden.PolicyDeck = newDeck
	newHidden.DiscardPile = discard

	return out, newHidden, DeckpeekObservation{Policies: policies}
}

func (s PublicState) bulletTransition(hidden HiddenState, target int) (PublicState, HiddenState, Observation) {
	if hidden.HiddenRoles[target] == RoleHitler {
		out := s.Clone()
		out.Phase = PhaseEnd
		lib := Liberal
		out.GameEnd = &lib
		out.GameEndReason = ReasonHitlerKilled
		return out, hidden, nil
	}

	aliveAfter := removeSeat(s.AlivePlayers, target)
	president, sePrevPres := nextPresident(s.President, s.StartingNumPlayers, aliveAfter, s.SEPrevPres)

	prevGov := s.PrevGov
	if s.CurrentNumPlayers <= 5 {
		if s.PrevGov == nil {
			raiseInvariant("prev-gov", "5-player bullet rule requires a previous government")
		}
		pg := *s.PrevGov
		pg.President = noSeat
		prevGov = &pg
	}

	out := s.Clone()
	out.Phase = PhaseNomination
	out.CurrentNumPlayers = s.CurrentNumPlayers - 1
	out.AlivePlayers = aliveAfter
	out.President = president
	out.SEPrevPres = sePrevPres
	out.PrevGov = prevGov
	return out, hidden, nil
}

// investigateTransition reveals the target's party to the president.
//
// TODO: prevent player from being investigated twice. Preserved from the
// original source unchanged: nothing stops the president from targeting
// the same seat in a later investigate power.
func (s PublicState) investigateTransition(hidden HiddenState, target int) (PublicState, HiddenState, Observation) {
	president, sePrevPres := nextPresident(s.President, s.StartingNumPlayers, s.AlivePlayers, s.SEPrevPres)
	party := Fascist
	if hidden.HiddenRoles[target] == RoleLiberal {
		party = Liberal
	}

	out := s.Clone()
	out.President = president
	out.SEPrevPres = sePrevPres
	out.Phase = PhaseNomination

	return out, hidden, InvestigateObservation{Target: target, Party: party}
}

func (s PublicState) specialElectionTransition(hidden HiddenState, target int) (PublicState, HiddenState, Observation) {
	out := s.Clone()
	out.President = target
	out.SEPrevPres = s.President
	out.Phase = PhaseNomination
	return out, hidden, nil
}

// chaosHelper draws one policy silently (reshuffling if necessary),
// resets the failed-election counter, and clears the previous government.
// clearChancellor distinguishes the two call sites: the veto path clears
// the chancellor seat explicitly while the failed-vote path does not,
// exactly mirroring the asymmetric kwargs passed to _chaos_helper in
// state.py (vote_fail_transition omits a chancellor override;
// veto_transition's veto=true branch passes chancellor=None).
func (s PublicState) chaosHelper(hidden HiddenState, president, sePrevPres int, clearChancellor bool, rng Rand) (PublicState, HiddenState, Observation) {
	policy, newDeck, reshuffled := hidden.PolicyDeck.Draw(s.LibPolicy, s.FasPolicy, 1, rng)
	discard := hidden.DiscardPile
	if reshuffled {
		discard = nil
	}

	fasPolicy, libPolicy := s.FasPolicy, s.LibPolicy
	if policy[0] == Fascist {
		fasPolicy++
	} else {
		libPolicy++
	}

	phase := PhaseNomination
	if fasPolicy == FasPolicyWin || libPolicy == LibPolicyWin {
		phase = PhaseEnd
	}
	gameEnd, reason, ended := gameEndingPolicy(fasPolicy, libPolicy)

	out := s.Clone()
	out.Chaos = 0
	out.PrevGov = nil
	out.GameEnd = gameEnd
	out.FasPolicy = fasPolicy
	out.LibPolicy = libPolicy
	out.Phase = phase
	if ended {
		out.GameEndReason = reason
	}
	out.PolicyDeckSize = newDeck.Len()
	out.President = president
	out.SEPrevPres = sePrevPres
	if clearChancellor {
		out.Chancellor = noSeat
	}

	newHidden := hidden.clone()
	newHidden.PolicyDeck = newDeck
	newHidden.DiscardPile = discard

	return out, newHidden, nil
}

// removeOne returns a copy of parties with the first element equal to p
// removed, and whether such an element was found.
func removeOne(parties []Party, p Party) ([]Party, bool) {
	for i, c := range parties {
		if c == p {
			out := make([]Party, 0, len(parties)-1)
			out = append(out, parties[:i]...)
			out = append(out, parties[i+1:]...)
			return out, true
		}
	}
	return nil, false
}

func removeSeat(seats []int, target int) []int {
	out := make([]int, 0, len(seats)-1)
	for _, s := range seats {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}
