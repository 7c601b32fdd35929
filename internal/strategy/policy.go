// Package strategy implements the per-decision betting policy: preflop
// play from the ranked class table, postflop play from Monte-Carlo equity,
// plus the delayed check-bluff and bounty-pressure lines.
package strategy

import (
	"errors"
	"fmt"
	"math"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/bountyholdem/internal/deck"
	"github.com/lox/bountyholdem/internal/equity"
	"github.com/lox/bountyholdem/internal/game"
	"github.com/lox/bountyholdem/internal/preflop"
	"github.com/lox/bountyholdem/internal/randutil"
)

// ErrNoRound is returned when Decide is called before BeginRound.
var ErrNoRound = errors.New("strategy: no round in progress")

// EquityEstimator abstracts the Monte-Carlo estimator so tests can pin
// equity values.
type EquityEstimator interface {
	Estimate(hole, board []deck.Card, street int) (equity.Estimate, error)
}

// Recorder receives the policy's classification of its own aggressive
// actions, for end-of-match reporting.
type Recorder interface {
	RecordValueBet()
	RecordSemibluff()
	RecordBountyBluff()
	RecordBluff()
}

// Policy makes one decision per action request. It owns the per-round
// context and the bounty-adjusted preflop table, both rebuilt by
// BeginRound.
type Policy struct {
	tuning    Tuning
	rng       *rand.Rand
	logger    *log.Logger
	estimator EquityEstimator
	recorder  Recorder

	table preflop.Table
	hole  []deck.Card
	ctx   *RoundContext
}

// NewPolicy wires up a policy. The RNG drives every randomized branch, so
// a fixed seed makes the whole policy reproducible given fixed estimates.
func NewPolicy(tuning Tuning, rng *rand.Rand, logger *log.Logger, est EquityEstimator, rec Recorder) *Policy {
	return &Policy{
		tuning:    tuning,
		rng:       rng,
		logger:    logger,
		estimator: est,
		recorder:  rec,
	}
}

// BeginRound resets per-round state for a new deal.
func (p *Policy) BeginRound(hole []deck.Card, bounty deck.Rank) error {
	if len(hole) != 2 {
		return fmt.Errorf("strategy: expected 2 hole cards, got %d", len(hole))
	}
	class := preflop.Classify(hole[0], hole[1])
	p.table = preflop.WithBounty(bounty)
	p.hole = hole
	p.ctx = NewRoundContext(class.ContainsRank(bounty))
	return nil
}

// Round exposes the current round context for end-of-round bookkeeping.
func (p *Policy) Round() *RoundContext { return p.ctx }

// Decide returns the action for one snapshot. Every returned raise amount
// is clamped to the engine's legal window.
func (p *Policy) Decide(snap game.Snapshot) (game.Action, error) {
	if p.ctx == nil {
		return game.Action{}, ErrNoRound
	}
	p.ctx.observeOpponentChecks(snap)

	if act, ok := p.coast(snap); ok {
		return act, nil
	}

	switch snap.Street {
	case game.StreetPreflop:
		return p.decidePreflop(snap)
	case game.StreetFlop, game.StreetTurn:
		return p.decideFlopTurn(snap)
	case game.StreetRiver:
		return p.decideRiver(snap)
	default:
		return p.decideFallback(snap), nil
	}
}

// coast folds out the rest of the match once the bankroll lead exceeds
// what the remaining blinds could possibly claw back.
func (p *Policy) coast(snap game.Snapshot) (game.Action, bool) {
	roundsLeft := game.NumRounds - snap.RoundNum + 1
	locked := roundsLeft*p.tuning.CoastCostPerRound < snap.Bankroll ||
		(roundsLeft*p.tuning.CoastLooseCost < snap.Bankroll && roundsLeft > p.tuning.CoastLooseRounds)
	if !locked {
		return game.Action{}, false
	}
	if snap.Legal.Contains(game.Check) {
		return game.CheckAction(), true
	}
	return game.FoldAction(), true
}

func (p *Policy) decidePreflop(snap game.Snapshot) (game.Action, error) {
	class := preflop.Classify(p.hole[0], p.hole[1])
	rank, err := p.table.Rank(class)
	if err != nil {
		return game.Action{}, err
	}

	if !snap.Legal.Contains(game.Raise) {
		// Facing an all-in: only premium hands continue.
		if rank <= p.tuning.PremiumCallRank {
			return game.CallAction(), nil
		}
		return game.FoldAction(), nil
	}

	switch {
	case !snap.BigBlindSeat && snap.MyContribution() == game.SmallBlind:
		return p.openFromButton(snap, rank), nil
	case snap.BigBlindSeat && snap.MyContribution() == game.BigBlind:
		return p.defendBigBlind(snap, rank), nil
	default:
		return p.facingReraise(snap, rank), nil
	}
}

// openFromButton plays the first decision of the round, skewing sizes
// larger with stronger hands.
func (p *Policy) openFromButton(snap game.Snapshot, rank int) game.Action {
	t := p.tuning
	switch {
	case rank <= t.OpenStrongRank:
		p.ctx.Aggressor = true
		return game.RaiseAction(snap.ClampRaise(randutil.Pick(p.rng, 8, 9, 10, 11, 9, 10, 11, 11, 11)))
	case rank <= t.OpenMediumRank:
		return game.RaiseAction(snap.ClampRaise(randutil.Pick(p.rng, 8, 9, 10, 8, 9, 10, 11)))
	case rank <= t.OpenWideRank:
		return game.RaiseAction(snap.ClampRaise(randutil.Pick(p.rng, 8, 8, 8, 8, 9, 10, 11)))
	default:
		return game.FoldAction()
	}
}

// defendBigBlind handles the blind's response to an open, widening or
// tightening with the open size.
func (p *Policy) defendBigBlind(snap game.Snapshot, rank int) game.Action {
	t := p.tuning
	opp := snap.OppContribution()
	switch {
	case opp <= 9:
		switch {
		case rank <= t.OpenStrongRank:
			p.ctx.Aggressor = true
			return game.RaiseAction(snap.ClampRaise(min(game.StartingStack, 4*opp)))
		case snap.Legal.Contains(game.Check):
			return game.CheckAction()
		case rank <= t.OpenWideRank:
			return game.CallAction()
		default:
			return game.FoldAction()
		}
	case opp <= 15:
		switch {
		case rank <= 10:
			p.ctx.Aggressor = true
			return game.RaiseAction(snap.ClampRaise(min(game.StartingStack, int(2.5*float64(opp)))))
		case snap.Legal.Contains(game.Check):
			return game.CheckAction()
		case rank <= 60:
			return game.CallAction()
		default:
			return game.FoldAction()
		}
	default:
		if rank <= 10 {
			return game.CallAction()
		}
		return game.FoldAction()
	}
}

// facingReraise handles third and later preflop bets. The opponent's
// plausible range narrows as their commitment grows, so the continue
// threshold scales with their contribution.
func (p *Policy) facingReraise(snap game.Snapshot, rank int) game.Action {
	opp := snap.OppContribution()
	rangeSize := 2 + float64(game.StartingStack)/float64(opp)
	switch {
	case float64(rank) <= rangeSize/3:
		if randutil.Chance(p.rng, 0.2) {
			p.ctx.Aggressor = true
			return game.RaiseAction(snap.ClampRaise(min(game.StartingStack, 3*opp)))
		}
		return game.CallAction()
	case float64(rank) <= rangeSize*1.25:
		return game.CallAction()
	default:
		return game.FoldAction()
	}
}

func (p *Policy) decideFlopTurn(snap game.Snapshot) (game.Action, error) {
	if snap.MyPip == 0 {
		p.ctx.RaisesThisStreet = 0
	}
	if snap.MyStack == 0 {
		return game.CheckAction(), nil
	}

	est, err := p.estimator.Estimate(p.hole, snap.Board, snap.Street)
	if err != nil {
		return game.Action{}, err
	}
	p.logger.Debug("estimate", "street", snap.Street, "equity", est.Equity, "nut", est.NutPotential)

	boardBounty := boardHasBounty(snap.Board, snap.BountyRank)
	pot := potSize(snap)

	// Delayed check-bluff: the opponent has checked into us while we can
	// only check or shove-size raise, and our showdown value is thin.
	if snap.Legal.Contains(game.Raise) && !snap.Legal.Contains(game.Call) && p.ctx.CheckBluffGate == BluffEligible {
		if p.ctx.ChecksInARow == 2 && est.Equity < 0.5 {
			p.ctx.CheckBluffGate = BluffSuppressed
			p.ctx.TwoCheckBluffed = true
			p.ctx.Aggressor = true
			return p.potRaise(snap, pot, randutil.Pick(p.rng, 0.6, 0.7, 0.8)), nil
		}
		if p.ctx.ChecksInARow == 1 && est.Equity < 0.5 && randutil.Chance(p.rng, p.tuning.OneCheckBluffPct) {
			p.ctx.CheckBluffGate = BluffSuppressed
			p.ctx.OneCheckBluffed = true
			p.ctx.Aggressor = true
			return p.potRaise(snap, pot, randutil.Pick(p.rng, 0.6, 0.7, 0.8)), nil
		}
	}

	if snap.MyPip == 0 && snap.OppPip == 0 {
		if p.ctx.Aggressor {
			return p.leadAsAggressor(snap, est, pot, boardBounty), nil
		}
		return game.CheckAction(), nil
	}

	return p.facingBet(snap, est, pot, boardBounty, true), nil
}

// leadAsAggressor continues the story from the last raise: bet for value,
// semibluff draws, lean on the bounty, and otherwise mix in small bluffs.
func (p *Policy) leadAsAggressor(snap game.Snapshot, est equity.Estimate, pot int, boardBounty bool) game.Action {
	t := p.tuning
	switch {
	case est.Equity > t.ValueEquity:
		p.recorder.RecordValueBet()
		p.ctx.RaisesThisStreet++
		return p.potRaise(snap, pot, randutil.Pick(p.rng, 0.5, 0.6, 0.7))
	case est.NutPotential > t.SemibluffDraw:
		p.recorder.RecordSemibluff()
		p.ctx.RaisesThisStreet++
		return p.potRaise(snap, pot, randutil.Pick(p.rng, 0.5, 0.6, 0.7))
	case p.ctx.HaveBounty || boardBounty:
		if est.Equity+p.rng.Float64() > 0.9 {
			p.recorder.RecordBountyBluff()
			p.ctx.RaisesThisStreet++
			return p.potRaise(snap, pot, randutil.Pick(p.rng, 0.4, 0.5, 0.6))
		}
		return game.CheckAction()
	case randutil.Chance(p.rng, t.BaselineBluffPct):
		p.recorder.RecordBluff()
		p.ctx.RaisesThisStreet++
		return p.potRaise(snap, pot, randutil.Pick(p.rng, 0.2, 0.3, 0.4))
	default:
		return game.CheckAction()
	}
}

// facingBet prices a continue against the opponent's bet, scaled to bet
// size relative to our committed stack. Bounty boards loosen the value
// thresholds since winning the pot pays extra. withDraws enables the
// semibluff-raise responses, which only make sense with cards to come.
func (p *Policy) facingBet(snap game.Snapshot, est equity.Estimate, pot int, boardBounty bool, withDraws bool) game.Action {
	sizeBet := float64(snap.ContinueCost()) / float64(2*snap.MyContribution())
	amountRaise := snap.ClampRaise(int(0.75 * float64(pot)))
	var x, y float64
	if boardBounty {
		x, y = 0.15, 0.05
	}

	switch {
	case sizeBet < 0.6:
		if est.Equity > 0.85-x {
			if p.ctx.RaisesThisStreet == 0 {
				p.recorder.RecordValueBet()
				return p.raiseOrCall(snap, amountRaise, true)
			}
			if p.ctx.RaisesThisStreet == 1 && est.Equity > 0.95 {
				p.recorder.RecordValueBet()
				return p.raiseOrCall(snap, amountRaise, true)
			}
		} else if withDraws && est.NutPotential > 0.15-y {
			p.recorder.RecordSemibluff()
			return p.raiseOrCall(snap, amountRaise, true)
		} else if est.Equity > 0.45 {
			return game.CallAction()
		}
		if sizeBet < 0.3 && est.Equity > 0.25 {
			p.ctx.Aggressor = false
			return game.CallAction()
		}
		return game.FoldAction()
	case sizeBet < 1.0:
		if est.Equity > 0.925-x {
			p.recorder.RecordValueBet()
			return p.raiseOrCall(snap, amountRaise, true)
		}
		if withDraws && est.NutPotential > 0.25-1.5*y {
			p.recorder.RecordSemibluff()
			return p.raiseOrCall(snap, amountRaise, false)
		}
		if est.Equity > 0.6 {
			p.ctx.Aggressor = false
			return game.CallAction()
		}
		return game.FoldAction()
	default:
		if est.Equity > 0.925-x {
			p.recorder.RecordValueBet()
			return p.raiseOrCall(snap, amountRaise, true)
		}
		if withDraws && est.NutPotential > 0.25-1.5*y {
			p.recorder.RecordSemibluff()
			return p.raiseOrCall(snap, amountRaise, true)
		}
		if est.Equity > 0.8 {
			p.ctx.Aggressor = false
			return game.CallAction()
		}
		return game.FoldAction()
	}
}

func (p *Policy) decideRiver(snap game.Snapshot) (game.Action, error) {
	if snap.MyPip == 0 {
		p.ctx.RaisesThisStreet = 0
	}
	if snap.MyStack == 0 {
		return game.CheckAction(), nil
	}

	pot := potSize(snap)

	// River check-bluffs fire on the streak alone: with no cards to come
	// there is no equity gate worth waiting on.
	if snap.Legal.Contains(game.Raise) && !snap.Legal.Contains(game.Call) && p.ctx.CheckBluffGate == BluffEligible {
		if p.ctx.ChecksInARow == 2 {
			p.ctx.TwoCheckBluffed = true
			return p.potRaise(snap, pot, randutil.Pick(p.rng, 0.6, 0.7, 0.8)), nil
		}
		if p.ctx.ChecksInARow == 1 && randutil.Chance(p.rng, p.tuning.OneCheckBluffPct) {
			p.ctx.OneCheckBluffed = true
			return p.potRaise(snap, pot, randutil.Pick(p.rng, 0.6, 0.7, 0.8)), nil
		}
	}

	est, err := p.estimator.Estimate(p.hole, snap.Board, snap.Street)
	if err != nil {
		return game.Action{}, err
	}
	p.logger.Debug("estimate", "street", snap.Street, "equity", est.Equity)

	boardBounty := boardHasBounty(snap.Board, snap.BountyRank)

	// Short stacks need thicker value to stack off, so the lead threshold
	// tightens as our stack shrinks.
	var additive float64
	switch {
	case snap.MyStack <= 220:
		additive = 0.25
	case snap.MyStack <= 300:
		additive = 0.20
	case snap.MyStack <= 360:
		additive = 0.10
	}

	if snap.MyPip == 0 && snap.OppPip == 0 {
		if p.ctx.Aggressor {
			switch {
			case est.Equity > p.tuning.ValueEquity+additive:
				p.recorder.RecordValueBet()
				p.ctx.RaisesThisStreet++
				return p.potRaise(snap, pot, randutil.Pick(p.rng, 0.5, 0.6, 0.7)), nil
			case p.ctx.HaveBounty || boardBounty:
				if randutil.Chance(p.rng, 0.7) {
					p.recorder.RecordBountyBluff()
					p.ctx.RaisesThisStreet++
					return p.potRaise(snap, pot, randutil.Pick(p.rng, 0.4, 0.5, 0.6)), nil
				}
				return game.CheckAction(), nil
			case randutil.Chance(p.rng, p.tuning.BaselineBluffPct):
				p.recorder.RecordBluff()
				p.ctx.RaisesThisStreet++
				return p.potRaise(snap, pot, randutil.Pick(p.rng, 0.2, 0.3, 0.4)), nil
			default:
				return game.CheckAction(), nil
			}
		}
		if boardBounty || est.Equity > p.tuning.ValueEquity {
			p.ctx.RaisesThisStreet++
			return p.potRaise(snap, pot, randutil.Pick(p.rng, 0.4, 0.5, 0.6)), nil
		}
		return game.CheckAction(), nil
	}

	return p.facingBet(snap, est, pot, boardBounty, false), nil
}

// decideFallback covers streets the engine should never send. Kept so a
// protocol surprise degrades to sane play instead of a dead connection.
func (p *Policy) decideFallback(snap game.Snapshot) game.Action {
	if snap.Legal.Contains(game.Raise) && randutil.Chance(p.rng, 0.5) {
		return game.RaiseAction(snap.MinRaise)
	}
	if snap.Legal.Contains(game.Check) {
		return game.CheckAction()
	}
	if randutil.Chance(p.rng, 0.25) {
		return game.FoldAction()
	}
	return game.CallAction()
}

func (p *Policy) raiseOrCall(snap game.Snapshot, amount int, markAggressor bool) game.Action {
	if snap.Legal.Contains(game.Raise) {
		if markAggressor {
			p.ctx.Aggressor = true
		}
		return game.RaiseAction(amount)
	}
	p.ctx.Aggressor = false
	return game.CallAction()
}

// potRaise raises to a pot fraction, clamped to the legal window.
func (p *Policy) potRaise(snap game.Snapshot, pot int, pct float64) game.Action {
	target := int(math.Round(pct * float64(pot)))
	if target < 2 {
		target = 2
	}
	return game.RaiseAction(snap.ClampRaise(target))
}

// potSize counts both players' committed chips plus a call of the
// opponent's outstanding bet.
func potSize(snap game.Snapshot) int {
	return snap.MyContribution() + snap.OppContribution() + 2*snap.OppPip
}

func boardHasBounty(board []deck.Card, bounty deck.Rank) bool {
	for _, c := range board {
		if c.Rank == bounty {
			return true
		}
	}
	return false
}
