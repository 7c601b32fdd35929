package eval

import (
	"math/bits"

	"github.com/lox/bountyholdem/internal/deck"
)

// Category enumerates poker hand categories from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// IsNut reports whether the category is straight or better, the bar the
// estimator uses for its draw signal.
func (c Category) IsNut() bool {
	return c >= Straight
}

// Categorize classifies the best 5-card hand available in 5-7 cards using
// per-suit rank bitmasks. The suit intersections expose quads, trips and
// pairs without counting loops; the shifted-AND cascade finds straights.
func Categorize(cards []deck.Card) Category {
	var suitMasks [4]uint16
	var rankMask uint16
	for _, c := range cards {
		bit := uint16(1) << (int(c.Rank) - int(deck.Two))
		suitMasks[c.Suit] |= bit
		rankMask |= bit
	}

	flush := false
	for _, sm := range suitMasks {
		if bits.OnesCount16(sm) >= 5 {
			if straightHigh(sm) > 0 {
				return StraightFlush
			}
			flush = true
		}
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quads := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	trips := tripCandidates &^ quads
	pairs := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	switch {
	case quads != 0:
		return FourOfAKind
	case trips != 0 && (pairs != 0 || bits.OnesCount16(trips) > 1):
		return FullHouse
	case flush:
		return Flush
	case straightHigh(rankMask) > 0:
		return Straight
	case trips != 0:
		return ThreeOfAKind
	case bits.OnesCount16(pairs) >= 2:
		return TwoPair
	case pairs != 0:
		return Pair
	default:
		return HighCard
	}
}

// straightHigh returns the high-card bit index of the best straight in the
// rank mask, or 0 when none exists. Bit 0 is the deuce, bit 12 the ace.
func straightHigh(mask uint16) uint8 {
	const wheel = 0x100F // A-2-3-4-5
	mask &= 0x1FFF
	if mask&wheel == wheel {
		return 3
	}
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq == 0 {
		return 0
	}
	return uint8(bits.Len16(seq)-1) + 4
}
