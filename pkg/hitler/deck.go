package hitler

// Rand is the minimal randomness surface the deck needs: a uniform
// shuffle. Real play and search playouts each supply their own source (see
// internal/searchrand), keeping PolicyDeck itself deterministic given its
// input.
type Rand interface {
	Shuffle(n int, swap func(i, j int))
}

// PolicyDeck is an ordered sequence of policy cards with a well-defined
// top (the end drawn from). Grounded on secrethitler/policy_deck.py: the
// deck is backed by a deque there; here a slice with the top at index
// len-1 plays the same role, so Draw/Peek pop off the end exactly as the
// Python `deque.pop()` does.
type PolicyDeck struct {
	cards []Party // cards[len-1] is the top
}

// NewPolicyDeck wraps an existing card sequence, top at the end.
func NewPolicyDeck(cards []Party) PolicyDeck {
	return PolicyDeck{cards: append([]Party(nil), cards...)}
}

// Len returns the number of cards remaining.
func (d PolicyDeck) Len() int { return len(d.cards) }

// Count returns how many cards of the given party remain in the deck.
func (d PolicyDeck) Count(p Party) int {
	n := 0
	for _, c := range d.cards {
		if c == p {
			n++
		}
	}
	return n
}

// Cards returns a copy of the deck contents, top at index len-1.
func (d PolicyDeck) Cards() []Party {
	return append([]Party(nil), d.cards...)
}

func (d PolicyDeck) clone() PolicyDeck {
	return PolicyDeck{cards: append([]Party(nil), d.cards...)}
}

// reset rebuilds and shuffles a full deck reflecting how many of each
// party have already been enacted.
func reset(libEnacted, fasEnacted int, rng Rand) PolicyDeck {
	liberal := NumLibPolicy - libEnacted
	fascist := NumFasPolicy - fasEnacted
	cards := make([]Party, 0, liberal+fascist)
	for i := 0; i < liberal; i++ {
		cards = append(cards, Liberal)
	}
	for i := 0; i < fascist; i++ {
		cards = append(cards, Fascist)
	}
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return PolicyDeck{cards: cards}
}

// Draw removes n cards from the top, reshuffling a fresh deck first if
// fewer than n cards remain. Returns the drawn cards in draw order and the
// resulting deck; reshuffled is true iff a reshuffle occurred (the caller
// must clear the discard pile atomically with the new deck in that case,
// preserving I1/I2).
func (d PolicyDeck) Draw(libPolicy, fasPolicy, n int, rng Rand) (drawn []Party, next PolicyDeck, reshuffled bool) {
	next = d.clone()
	if d.Len() < n {
		next = reset(libPolicy, fasPolicy, rng)
		reshuffled = true
	}
	drawn = make([]Party, n)
	for i := 0; i < n; i++ {
		last := len(next.cards) - 1
		drawn[i] = next.cards[last]
		next.cards = next.cards[:last]
	}
	return drawn, next, reshuffled
}

// Peek is Draw followed by reinstalling the drawn cards on top in their
// original order, so that draw-then-putback and peek are observationally
// indistinguishable (spec.md §8 property 4).
func (d PolicyDeck) Peek(libPolicy, fasPolicy, n int, rng Rand) (peeked []Party, next PolicyDeck, reshuffled bool) {
	peeked, next, reshuffled = d.Draw(libPolicy, fasPolicy, n, rng)
	for i := len(peeked) - 1; i >= 0; i-- {
		next.cards = append(next.cards, peeked[i])
	}
	return peeked, next, reshuffled
}
