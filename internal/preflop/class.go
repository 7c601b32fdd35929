// Package preflop canonicalizes two hole cards into one of the 169
// abstract starting-hand classes and ranks those classes with a fixed
// strength table, optionally adjusted by the round's bounty rank.
package preflop

import (
	"fmt"

	"github.com/lox/bountyholdem/internal/deck"
)

// Class is the canonical key for a starting hand: high rank character, low
// rank character, then "s" for suited or "o" for offsuit. Pairs are always
// offsuit ("AAo"). Classification is suit- and order-symmetric.
type Class string

// HighRank returns the class's first rank character.
func (c Class) HighRank() byte { return c[0] }

// LowRank returns the class's second rank character.
func (c Class) LowRank() byte { return c[1] }

// Suited reports whether the class is suited.
func (c Class) Suited() bool { return c[2] == 's' }

// ContainsRank reports whether either card of the class has the given rank.
func (c Class) ContainsRank(r deck.Rank) bool {
	ch := r.String()[0]
	return c[0] == ch || c[1] == ch
}

// Classify canonicalizes two hole cards into their starting-hand class.
func Classify(a, b deck.Card) Class {
	hi, lo := a, b
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}
	if hi.Rank == lo.Rank {
		return Class(hi.Rank.String() + lo.Rank.String() + "o")
	}
	suffix := "o"
	if hi.Suit == lo.Suit {
		suffix = "s"
	}
	return Class(hi.Rank.String() + lo.Rank.String() + suffix)
}

// ClassifyStrings parses and classifies hole cards given in wire form
// (e.g. "Ah", "Kd"). Exactly two cards are required; malformed input is a
// contract violation and fails with deck.ErrInvalidCard.
func ClassifyStrings(cards []string) (Class, error) {
	if len(cards) != 2 {
		return "", fmt.Errorf("%w: want 2 hole cards, got %d", deck.ErrInvalidCard, len(cards))
	}
	a, err := deck.ParseCard(cards[0])
	if err != nil {
		return "", err
	}
	b, err := deck.ParseCard(cards[1])
	if err != nil {
		return "", err
	}
	return Classify(a, b), nil
}
