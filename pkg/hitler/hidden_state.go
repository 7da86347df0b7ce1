package hitler

// HiddenState is the concealed portion of the world: the role assignment,
// the ordered draw pile, the (unordered, by count) discard pile, and
// whatever policies are currently "in hand" during a legislative session.
// Grounded on secrethitler/hidden_state.py.
type HiddenState struct {
	HiddenRoles      []SecretRole
	PolicyDeck       PolicyDeck
	DiscardPile      []Party
	ProposedPolicies []Party
}

// clone returns a deep copy of h so transitions never alias caller state.
func (h HiddenState) clone() HiddenState {
	return HiddenState{
		HiddenRoles:      append([]SecretRole(nil), h.HiddenRoles...),
		PolicyDeck:       h.PolicyDeck.clone(),
		DiscardPile:      append([]Party(nil), h.DiscardPile...),
		ProposedPolicies: append([]Party(nil), h.ProposedPolicies...),
	}
}

// countParty returns how many of the given party appear across deck,
// discard and proposal, used by ValidPolicyCount and the I1/I2 checks.
func countParty(p Party, lists ...[]Party) int {
	n := 0
	for _, l := range lists {
		for _, c := range l {
			if c == p {
				n++
			}
		}
	}
	return n
}

// ValidPolicyCount checks whether a candidate (draw pile, discard pile,
// proposal) triple is consistent with policy conservation given the
// already-enacted fascist/liberal counts. Grounded on
// HiddenSecretHitlerState.valid_policy_count in hidden_state.py.
func ValidPolicyCount(drawPile, discardPile, proposal []Party, fasPolicy, libPolicy int) bool {
	total := len(drawPile) + len(discardPile) + len(proposal) + fasPolicy + libPolicy
	if total != DeckSize {
		return false
	}
	fas := countParty(Fascist, drawPile, discardPile, proposal) + fasPolicy
	lib := countParty(Liberal, drawPile, discardPile, proposal) + libPolicy
	return fas == NumFasPolicy && lib == NumLibPolicy
}
