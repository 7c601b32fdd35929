// Package deck provides the card value types shared by the classifier,
// the equity estimator and the engine protocol.
package deck

import (
	"errors"
	"fmt"
)

// ErrInvalidCard is returned when a card string has an unrecognized rank or
// suit character. Malformed cards indicate a contract violation from the
// engine and must not be masked downstream.
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the lowercase suit character used on the wire ("s", "h",
// "d", "c").
func (s Suit) String() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// Rank represents a card rank, deuce through ace, aces high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the single rank character ("2".."9", "T", "J", "Q", "K", "A").
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + int(r)))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// ParseRank converts a rank character to a Rank.
func ParseRank(c byte) (Rank, error) {
	switch c {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return Rank(c - '0'), nil
	case 'T':
		return Ten, nil
	case 'J':
		return Jack, nil
	case 'Q':
		return Queen, nil
	case 'K':
		return King, nil
	case 'A':
		return Ace, nil
	default:
		return 0, fmt.Errorf("%w: rank %q", ErrInvalidCard, string(c))
	}
}

// ParseSuit converts a suit character to a Suit.
func ParseSuit(c byte) (Suit, error) {
	switch c {
	case 's':
		return Spades, nil
	case 'h':
		return Hearts, nil
	case 'd':
		return Diamonds, nil
	case 'c':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("%w: suit %q", ErrInvalidCard, string(c))
	}
}

// Card represents a playing card. Immutable value type.
type Card struct {
	Rank Rank
	Suit Suit
}

// ParseCard parses a two-character card string such as "Ah" or "Ts".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	rank, err := ParseRank(s[0])
	if err != nil {
		return Card{}, err
	}
	suit, err := ParseSuit(s[1])
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a slice of card strings, failing on the first bad card.
func ParseCards(strs []string) ([]Card, error) {
	cards := make([]Card, 0, len(strs))
	for _, s := range strs {
		c, err := ParseCard(s)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// String returns the wire representation of the card (e.g. "Ah").
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}
