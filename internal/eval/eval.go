// Package eval adapts the paulhankin/poker evaluator into the hand-ranking
// oracle the equity estimator consumes: an opaque comparable value per hand
// plus a category classification for the straight-or-better draw signal.
package eval

import (
	"errors"
	"fmt"

	poker "github.com/paulhankin/poker"

	"github.com/lox/bountyholdem/internal/deck"
)

// ErrEvaluation is returned when a hand cannot be ranked. No safe default
// action exists for a decision without equity, so callers propagate it.
var ErrEvaluation = errors.New("hand evaluation failed")

// Value is an opaque hand strength. Larger values beat smaller values.
type Value int16

// Beats reports whether v strictly beats other. Ties are not wins.
func (v Value) Beats(other Value) bool {
	return v > other
}

func toLibrary(c deck.Card) (poker.Card, error) {
	var s poker.Suit
	switch c.Suit {
	case deck.Clubs:
		s = poker.Club
	case deck.Diamonds:
		s = poker.Diamond
	case deck.Hearts:
		s = poker.Heart
	case deck.Spades:
		s = poker.Spade
	default:
		return 0, fmt.Errorf("%w: bad suit %d", ErrEvaluation, c.Suit)
	}
	// Library ranks run 1..13 with ace low.
	r := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		r = poker.Rank(1)
	}
	card, err := poker.MakeCard(s, r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}
	return card, nil
}

// Rank evaluates the best 5-card hand from 5, 6, or 7 cards.
func Rank(cards []deck.Card) (Value, error) {
	n := len(cards)
	if n < 5 || n > 7 {
		return 0, fmt.Errorf("%w: need 5-7 cards, got %d", ErrEvaluation, n)
	}
	lib := make([]poker.Card, n)
	for i, c := range cards {
		pc, err := toLibrary(c)
		if err != nil {
			return 0, err
		}
		lib[i] = pc
	}
	switch n {
	case 5:
		var a [5]poker.Card
		copy(a[:], lib)
		return Value(poker.Eval5(&a)), nil
	case 7:
		var a [7]poker.Card
		copy(a[:], lib)
		return Value(poker.Eval7(&a)), nil
	default:
		return best5of6(lib), nil
	}
}

// best5of6 evaluates all six 5-card subsets of a 6-card hand.
func best5of6(lib []poker.Card) Value {
	var best Value
	var five [5]poker.Card
	for skip := 0; skip < 6; skip++ {
		k := 0
		for i, c := range lib {
			if i == skip {
				continue
			}
			five[k] = c
			k++
		}
		if v := Value(poker.Eval5(&five)); skip == 0 || v > best {
			best = v
		}
	}
	return best
}

// Describe returns a human-readable description of the hand, for logging.
func Describe(cards []deck.Card) (string, error) {
	lib := make([]poker.Card, len(cards))
	for i, c := range cards {
		pc, err := toLibrary(c)
		if err != nil {
			return "", err
		}
		lib[i] = pc
	}
	desc, err := poker.Describe(lib)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEvaluation, err)
	}
	return desc, nil
}
