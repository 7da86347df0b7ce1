package hitler

// LegalActions returns the legal actions available to player in this
// state. Grounded on SecretHitlerState.legal_actions in
// secrethitler/state.py.
func (s PublicState) LegalActions(hidden HiddenState, player int) []Action {
	if !containsInt(s.MovingPlayers(), player) {
		raiseInvariant("legal-actions-non-mover", "asked a non-moving player %d for legal actions in phase %v", player, s.Phase)
	}

	switch s.Phase {
	case PhaseNomination:
		excluded := map[int]bool{player: true}
		if s.PrevGov != nil {
			if s.PrevGov.President != noSeat {
				excluded[s.PrevGov.President] = true
			}
			excluded[s.PrevGov.Chancellor] = true
		}
		var actions []Action
		for _, p := range s.AlivePlayers {
			if !excluded[p] {
				actions = append(actions, Nominate{Chancellor: p})
			}
		}
		return actions

	case PhaseVote:
		return []Action{Vote{Ja: true}, Vote{Ja: false}}

	case PhasePresidentSelectPolicy:
		if len(hidden.ProposedPolicies) != 3 {
			raiseInvariant("I3", "presidentSelectPolicy requires 3 proposed policies, got %d", len(hidden.ProposedPolicies))
		}
		return policyChoices(hidden.ProposedPolicies)

	case PhaseChancellorSelectPolicy:
		if len(hidden.ProposedPolicies) != 2 {
			raiseInvariant("I3", "chancellorSelectPolicy requires 2 proposed policies, got %d", len(hidden.ProposedPolicies))
		}
		actions := policyChoices(hidden.ProposedPolicies)
		if s.VetoAvailable() {
			actions = append(actions, VetoAction{Veto: true})
		}
		return actions

	case PhaseVeto:
		return []Action{VetoAction{Veto: true}, VetoAction{Veto: false}}

	case PhasePresidentPower:
		power := s.Powers()[s.FasPolicy]
		switch power {
		case PowerDeckpeek:
			return []Action{DeckpeekAck{}}
		case PowerBullet:
			return otherAliveActions(s.AlivePlayers, player, func(p int) Action { return Bullet{Target: p} })
		case PowerInvestigate:
			return otherAliveActions(s.AlivePlayers, player, func(p int) Action { return Investigate{Target: p} })
		case PowerSpecialElection:
			return otherAliveActions(s.AlivePlayers, player, func(p int) Action { return SpecialElection{Target: p} })
		default:
			raiseInvariant("legal-actions-power-none", "presidentPower phase reached with power none")
		}
	}

	raiseInvariant("legal-actions-phase", "invalid phase %v", s.Phase)
	return nil
}

// policyChoices returns one PolicyChoice action per distinct party value
// present in the proposed policies (cards of the same party are
// indistinguishable, so duplicates collapse to one action).
func policyChoices(proposed []Party) []Action {
	seen := map[Party]bool{}
	var out []Action
	for _, p := range proposed {
		if !seen[p] {
			seen[p] = true
			out = append(out, PolicyChoice{Policy: p})
		}
	}
	return out
}

func otherAliveActions(alive []int, self int, build func(int) Action) []Action {
	var out []Action
	for _, p := range alive {
		if p != self {
			out = append(out, build(p))
		}
	}
	return out
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
