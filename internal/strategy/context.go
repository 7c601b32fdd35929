package strategy

import (
	"github.com/lox/bountyholdem/internal/game"
)

// BluffGate tracks whether the delayed check-bluff line is still available
// this round. Once fired it stays suppressed so the line triggers at most
// once per round.
type BluffGate uint8

const (
	BluffEligible BluffGate = iota
	BluffSuppressed
)

// RoundContext is the per-round betting state. It is discarded and rebuilt
// at every round start.
type RoundContext struct {
	// Aggressor records whether we made the last raise across streets.
	Aggressor bool

	// ChecksInARow counts consecutive opponent checks observed since the
	// flop. It resets to zero whenever the opponent puts chips in.
	ChecksInARow int

	// CheckBluffGate suppresses further delayed bluffs once one has fired.
	CheckBluffGate BluffGate

	// RaisesThisStreet counts our own raises on the current street. It is
	// zeroed whenever we act with nothing committed on the street.
	RaisesThisStreet int

	// HaveBounty is true when either hole card matches the bounty rank.
	HaveBounty bool

	OneCheckBluffed bool
	TwoCheckBluffed bool

	// prevOppContribution is the opponent's total commitment at our last
	// observation, used to detect checks when we act out of position.
	prevOppContribution int
}

// NewRoundContext builds fresh per-round state.
func NewRoundContext(haveBounty bool) *RoundContext {
	return &RoundContext{HaveBounty: haveBounty}
}

// observeOpponentChecks updates the check streak from the snapshot before
// any decision is made. In position the opponent has already acted on this
// street, so a zero pip means a check. Out of position we compare the
// opponent's total commitment against the previous observation instead.
func (rc *RoundContext) observeOpponentChecks(snap game.Snapshot) {
	inPosition := !snap.BigBlindSeat
	switch snap.Street {
	case game.StreetFlop:
		if inPosition {
			rc.bumpStreak(snap.OppPip == 0)
		} else {
			rc.prevOppContribution = snap.OppContribution()
		}
	case game.StreetTurn:
		if inPosition {
			rc.bumpStreak(snap.OppPip == 0)
		} else {
			checked := snap.OppContribution() == rc.prevOppContribution
			rc.prevOppContribution = snap.OppContribution()
			rc.bumpStreak(checked)
		}
	case game.StreetRiver:
		if inPosition {
			if snap.OppPip == 0 {
				rc.ChecksInARow = 1
			} else {
				rc.ChecksInARow = 0
			}
		} else {
			checked := snap.OppContribution() == rc.prevOppContribution
			rc.prevOppContribution = snap.OppContribution()
			rc.bumpStreak(checked)
		}
	}
}

func (rc *RoundContext) bumpStreak(checked bool) {
	if checked {
		rc.ChecksInARow++
	} else {
		rc.ChecksInARow = 0
	}
}
