package game

import "github.com/lox/bountyholdem/internal/deck"

// Match constants fixed by the engine.
const (
	StartingStack = 400
	SmallBlind    = 1
	BigBlind      = 2
	NumRounds     = 1000
)

// Streets are keyed by the number of community cards revealed.
const (
	StreetPreflop = 0
	StreetFlop    = 3
	StreetTurn    = 4
	StreetRiver   = 5
)

// Snapshot is the full public view of one decision point, assembled by the
// client from the engine's action request plus round-start state.
type Snapshot struct {
	Street     int
	HoleCards  []deck.Card
	Board      []deck.Card
	BountyRank deck.Rank

	MyPip    int
	OppPip   int
	MyStack  int
	OppStack int

	Legal    ActionSet
	MinRaise int
	MaxRaise int

	// BigBlindSeat is true when the hero posted the big blind this round
	// (and therefore acts first postflop).
	BigBlindSeat bool

	RoundNum int
	Bankroll int
}

// ContinueCost is the number of chips needed to stay in the pot.
func (s Snapshot) ContinueCost() int { return s.OppPip - s.MyPip }

// MyContribution is the hero's total chips committed this round.
func (s Snapshot) MyContribution() int { return StartingStack - s.MyStack }

// OppContribution is the opponent's total chips committed this round.
func (s Snapshot) OppContribution() int { return StartingStack - s.OppStack }

// MaxRaiseCost is the cost of the largest legal raise from the hero's
// current pip.
func (s Snapshot) MaxRaiseCost() int { return s.MaxRaise - s.MyPip }

// ClampRaise bounds a desired raise target to the engine's legal window.
func (s Snapshot) ClampRaise(amount int) int {
	if amount < s.MinRaise {
		return s.MinRaise
	}
	if amount > s.MaxRaise {
		return s.MaxRaise
	}
	return amount
}
