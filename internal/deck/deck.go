package deck

import rand "math/rand/v2"

// Deck is an ordered stack of cards dealt from the top.
type Deck struct {
	cards []Card
	next  int
}

// New builds a full 52-card deck excluding the given dead cards.
func New(dead ...Card) *Deck {
	seen := make(map[Card]bool, len(dead))
	for _, c := range dead {
		seen[c] = true
	}
	cards := make([]Card, 0, 52-len(dead))
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := Card{Rank: rank, Suit: suit}
			if !seen[c] {
				cards = append(cards, c)
			}
		}
	}
	return &Deck{cards: cards}
}

// Shuffle randomizes the remaining cards using the provided RNG.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards)-d.next, func(i, j int) {
		d.cards[d.next+i], d.cards[d.next+j] = d.cards[d.next+j], d.cards[d.next+i]
	})
}

// Deal removes and returns the top n cards. Panics if the deck is short,
// which can only happen through a programming error since callers deal at
// most 2+5 cards from a 45+ card stub.
func (d *Deck) Deal(n int) []Card {
	out := d.cards[d.next : d.next+n]
	d.next += n
	return out
}

// Remaining reports how many cards are left undealt.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
