package strategy

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bountyholdem/internal/deck"
	"github.com/lox/bountyholdem/internal/equity"
	"github.com/lox/bountyholdem/internal/game"
	"github.com/lox/bountyholdem/internal/randutil"
)

type stubEstimator struct {
	est equity.Estimate
}

func (s stubEstimator) Estimate(hole, board []deck.Card, street int) (equity.Estimate, error) {
	return s.est, nil
}

type fakeRecorder struct {
	valueBets, semibluffs, bountyBluffs, bluffs int
}

func (r *fakeRecorder) RecordValueBet()    { r.valueBets++ }
func (r *fakeRecorder) RecordSemibluff()   { r.semibluffs++ }
func (r *fakeRecorder) RecordBountyBluff() { r.bountyBluffs++ }
func (r *fakeRecorder) RecordBluff()       { r.bluffs++ }

func newTestPolicy(t *testing.T, est equity.Estimate) (*Policy, *fakeRecorder) {
	t.Helper()
	rec := &fakeRecorder{}
	p := NewPolicy(DefaultTuning(), randutil.New(1), log.New(io.Discard), stubEstimator{est: est}, rec)
	return p, rec
}

func beginRound(t *testing.T, p *Policy, hole []string, bounty deck.Rank) {
	t.Helper()
	cards, err := deck.ParseCards(hole)
	require.NoError(t, err)
	require.NoError(t, p.BeginRound(cards, bounty))
}

func TestDecideBeforeBeginRound(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{})
	_, err := p.Decide(game.Snapshot{})
	assert.ErrorIs(t, err, ErrNoRound)
}

func TestBeginRoundRequiresTwoHoleCards(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{})
	cards, err := deck.ParseCards([]string{"Ah"})
	require.NoError(t, err)
	assert.Error(t, p.BeginRound(cards, deck.Two))
}

func buttonPreflop(legal game.ActionSet) game.Snapshot {
	return game.Snapshot{
		Street:   game.StreetPreflop,
		MyPip:    1,
		OppPip:   2,
		MyStack:  399,
		OppStack: 398,
		Legal:    legal,
		MinRaise: 4,
		MaxRaise: 400,
		RoundNum: 1,
	}
}

func TestPreflopButtonOpensPremium(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{})
	beginRound(t, p, []string{"Ah", "Ad"}, deck.Two)

	act, err := p.Decide(buttonPreflop(game.NewActionSet(game.Fold, game.Call, game.Raise)))
	require.NoError(t, err)
	assert.Equal(t, game.Raise, act.Kind)
	assert.GreaterOrEqual(t, act.Amount, 8)
	assert.LessOrEqual(t, act.Amount, 11)
	assert.True(t, p.Round().Aggressor)
}

func TestPreflopButtonFoldsTrash(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{})
	beginRound(t, p, []string{"7h", "2c"}, deck.Ace)

	act, err := p.Decide(buttonPreflop(game.NewActionSet(game.Fold, game.Call, game.Raise)))
	require.NoError(t, err)
	assert.Equal(t, game.Fold, act.Kind)
}

func TestPreflopBountyTurnsTrashIntoOpen(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{})
	beginRound(t, p, []string{"7h", "2c"}, deck.Seven)

	act, err := p.Decide(buttonPreflop(game.NewActionSet(game.Fold, game.Call, game.Raise)))
	require.NoError(t, err)
	assert.Equal(t, game.Raise, act.Kind)
	assert.True(t, p.Round().Aggressor)
}

func TestPreflopFacingShove(t *testing.T) {
	snap := game.Snapshot{
		Street:   game.StreetPreflop,
		MyPip:    2,
		OppPip:   400,
		MyStack:  398,
		OppStack: 0,
		Legal:    game.NewActionSet(game.Fold, game.Call),
		RoundNum: 1,
	}

	p, _ := newTestPolicy(t, equity.Estimate{})
	beginRound(t, p, []string{"Ah", "Ad"}, deck.Two)
	act, err := p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Call, act.Kind)

	p, _ = newTestPolicy(t, equity.Estimate{})
	beginRound(t, p, []string{"9h", "4c"}, deck.Two)
	act, err = p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Fold, act.Kind)
}

func TestPreflopBigBlindChecksWeakHandAfterLimp(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{})
	beginRound(t, p, []string{"9h", "4c"}, deck.Two)

	act, err := p.Decide(game.Snapshot{
		Street:       game.StreetPreflop,
		MyPip:        2,
		OppPip:       2,
		MyStack:      398,
		OppStack:     398,
		Legal:        game.NewActionSet(game.Check, game.Raise),
		MinRaise:     4,
		MaxRaise:     400,
		BigBlindSeat: true,
		RoundNum:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, game.Check, act.Kind)
}

func TestPreflopBigBlindReraisesPremium(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{})
	beginRound(t, p, []string{"Kh", "Kd"}, deck.Two)

	act, err := p.Decide(game.Snapshot{
		Street:       game.StreetPreflop,
		MyPip:        2,
		OppPip:       8,
		MyStack:      398,
		OppStack:     392,
		Legal:        game.NewActionSet(game.Fold, game.Call, game.Raise),
		MinRaise:     14,
		MaxRaise:     400,
		BigBlindSeat: true,
		RoundNum:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, game.Raise, act.Kind)
	assert.Equal(t, 32, act.Amount, "4x the open of 8")
	assert.True(t, p.Round().Aggressor)
}

func TestCoastOutPrefersCheck(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{})
	beginRound(t, p, []string{"Ah", "Ad"}, deck.Two)

	// 11 rounds left cannot claw back a 400 chip lead.
	snap := buttonPreflop(game.NewActionSet(game.Fold, game.Check, game.Call, game.Raise))
	snap.RoundNum = 990
	snap.Bankroll = 400

	act, err := p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Check, act.Kind)

	snap.Legal = game.NewActionSet(game.Fold, game.Call, game.Raise)
	act, err = p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Fold, act.Kind)
}

func flopSnapshot() game.Snapshot {
	return game.Snapshot{
		Street:   game.StreetFlop,
		Board:    mustCards("7c", "8s", "2d"),
		MyPip:    0,
		OppPip:   0,
		MyStack:  390,
		OppStack: 390,
		Legal:    game.NewActionSet(game.Check, game.Raise),
		MinRaise: 2,
		MaxRaise: 400,
		RoundNum: 1,
	}
}

func mustCards(strs ...string) []deck.Card {
	cards, err := deck.ParseCards(strs)
	if err != nil {
		panic(err)
	}
	return cards
}

func TestFlopAggressorValueBets(t *testing.T) {
	p, rec := newTestPolicy(t, equity.Estimate{Equity: 0.8})
	beginRound(t, p, []string{"Ah", "Ad"}, deck.Two)
	p.Round().Aggressor = true

	act, err := p.Decide(flopSnapshot())
	require.NoError(t, err)
	assert.Equal(t, game.Raise, act.Kind)
	// Pot is 20, sizing mixes 50-70%.
	assert.GreaterOrEqual(t, act.Amount, 10)
	assert.LessOrEqual(t, act.Amount, 14)
	assert.Equal(t, 1, rec.valueBets)
	assert.Equal(t, 1, p.Round().RaisesThisStreet)
}

func TestFlopAggressorSemibluffsDraws(t *testing.T) {
	p, rec := newTestPolicy(t, equity.Estimate{Equity: 0.4, NutPotential: 0.2})
	beginRound(t, p, []string{"9h", "8d"}, deck.Two)
	p.Round().Aggressor = true

	snap := flopSnapshot()
	snap.BigBlindSeat = true
	act, err := p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Raise, act.Kind)
	// Semibluffs size like value bets: 50-70% of the 20 chip pot.
	assert.GreaterOrEqual(t, act.Amount, 10)
	assert.LessOrEqual(t, act.Amount, 14)
	assert.Equal(t, 1, rec.semibluffs)
	assert.Zero(t, rec.valueBets)
}

func TestSemibluffSizingMatchesValueSizing(t *testing.T) {
	// Sweep seeds so every element of the sizing mix is drawn at least
	// once; none may fall below half pot.
	for seed := int64(0); seed < 50; seed++ {
		rec := &fakeRecorder{}
		p := NewPolicy(DefaultTuning(), randutil.New(seed), log.New(io.Discard),
			stubEstimator{est: equity.Estimate{Equity: 0.4, NutPotential: 0.2}}, rec)
		beginRound(t, p, []string{"9h", "8d"}, deck.Two)
		p.Round().Aggressor = true

		snap := flopSnapshot()
		snap.BigBlindSeat = true
		act, err := p.Decide(snap)
		require.NoError(t, err)
		require.Equal(t, game.Raise, act.Kind)
		assert.GreaterOrEqual(t, act.Amount, 10, "seed %d", seed)
		assert.LessOrEqual(t, act.Amount, 14, "seed %d", seed)
	}
}

func TestFlopNonAggressorChecksBehind(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{Equity: 0.9})
	beginRound(t, p, []string{"Ah", "Ad"}, deck.Two)

	act, err := p.Decide(flopSnapshot())
	require.NoError(t, err)
	assert.Equal(t, game.Check, act.Kind)
}

func TestFlopFacingBigBetLowEquityFolds(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{Equity: 0.5})
	beginRound(t, p, []string{"Ah", "Kd"}, deck.Two)

	snap := flopSnapshot()
	snap.OppPip = 30
	snap.OppStack = 360
	snap.Legal = game.NewActionSet(game.Fold, game.Call, game.Raise)

	act, err := p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Fold, act.Kind)
}

func TestFlopFacingSmallBetDecentEquityCalls(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{Equity: 0.5})
	beginRound(t, p, []string{"Ah", "Kd"}, deck.Two)

	snap := flopSnapshot()
	snap.OppPip = 4
	snap.OppStack = 386
	snap.Legal = game.NewActionSet(game.Fold, game.Call, game.Raise)

	act, err := p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Call, act.Kind)
}

func TestFlopFacingBetStrongEquityRaises(t *testing.T) {
	p, rec := newTestPolicy(t, equity.Estimate{Equity: 0.9})
	beginRound(t, p, []string{"Ah", "Ad"}, deck.Two)

	snap := flopSnapshot()
	snap.OppPip = 4
	snap.OppStack = 386
	snap.Legal = game.NewActionSet(game.Fold, game.Call, game.Raise)

	act, err := p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Raise, act.Kind)
	assert.Equal(t, 1, rec.valueBets)
	assert.True(t, p.Round().Aggressor)
	assert.GreaterOrEqual(t, act.Amount, snap.MinRaise)
	assert.LessOrEqual(t, act.Amount, snap.MaxRaise)
}

func TestTwoCheckBluffFiresOnce(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{Equity: 0.3})
	beginRound(t, p, []string{"9h", "4c"}, deck.Two)
	p.Round().ChecksInARow = 1
	p.Round().prevOppContribution = 10

	snap := flopSnapshot()
	snap.Street = game.StreetTurn
	snap.Board = mustCards("7c", "8s", "2d", "Kh")
	snap.BigBlindSeat = true
	snap.Legal = game.NewActionSet(game.Fold, game.Check, game.Raise)

	act, err := p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Raise, act.Kind)
	assert.True(t, p.Round().TwoCheckBluffed)
	assert.Equal(t, BluffSuppressed, p.Round().CheckBluffGate)
	assert.True(t, p.Round().Aggressor)

	// The gate stays shut for the rest of the round.
	p.Round().Aggressor = false
	act, err = p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Check, act.Kind)
}

func TestTwoCheckBluffNeedsThinEquity(t *testing.T) {
	p, rec := newTestPolicy(t, equity.Estimate{Equity: 0.7})
	beginRound(t, p, []string{"Ah", "Ad"}, deck.Two)
	p.Round().ChecksInARow = 2
	p.Round().Aggressor = true

	snap := flopSnapshot()
	snap.BigBlindSeat = true
	snap.Legal = game.NewActionSet(game.Fold, game.Check, game.Raise)

	act, err := p.Decide(snap)
	require.NoError(t, err)
	// Strong equity takes the value line instead of the bluff.
	assert.Equal(t, game.Raise, act.Kind)
	assert.False(t, p.Round().TwoCheckBluffed)
	assert.Equal(t, 1, rec.valueBets)
}

func TestFlatCallSurrendersInitiative(t *testing.T) {
	// A preflop aggressor who only calls a bet no longer owns the
	// betting lead; the next street must not be led on the flag alone.
	tests := []struct {
		name   string
		oppPip int
		equity float64
	}{
		{"medium bet", 14, 0.7}, // sizeBet 0.7
		{"overbet", 30, 0.85},   // sizeBet 1.5
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPolicy(t, equity.Estimate{Equity: tt.equity})
			beginRound(t, p, []string{"Ah", "Kd"}, deck.Two)
			p.Round().Aggressor = true

			snap := flopSnapshot()
			snap.OppPip = tt.oppPip
			snap.OppStack = 390 - tt.oppPip
			snap.Legal = game.NewActionSet(game.Fold, game.Call, game.Raise)

			act, err := p.Decide(snap)
			require.NoError(t, err)
			assert.Equal(t, game.Call, act.Kind)
			assert.False(t, p.Round().Aggressor)
		})
	}
}

func riverSnapshot() game.Snapshot {
	return game.Snapshot{
		Street:       game.StreetRiver,
		Board:        mustCards("7c", "8s", "2d", "Kh", "3c"),
		MyStack:      390,
		OppStack:     390,
		Legal:        game.NewActionSet(game.Check, game.Raise),
		MinRaise:     2,
		MaxRaise:     400,
		BigBlindSeat: true,
		RoundNum:     1,
	}
}

func TestRiverNonAggressorLeadsWithStrongHand(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{Equity: 0.7})
	beginRound(t, p, []string{"Kd", "Ks"}, deck.Two)

	act, err := p.Decide(riverSnapshot())
	require.NoError(t, err)
	assert.Equal(t, game.Raise, act.Kind)
	// Pot is 20, sizing mixes 40-60%.
	assert.GreaterOrEqual(t, act.Amount, 8)
	assert.LessOrEqual(t, act.Amount, 12)
}

func TestRiverShortStackTightensValueThreshold(t *testing.T) {
	p, rec := newTestPolicy(t, equity.Estimate{Equity: 0.7})
	beginRound(t, p, []string{"Kd", "Ks"}, deck.Two)
	p.Round().Aggressor = true

	snap := riverSnapshot()
	snap.MyStack = 200

	_, err := p.Decide(snap)
	require.NoError(t, err)
	assert.Zero(t, rec.valueBets, "0.7 equity is not enough to stack off a short stack")
}

func TestRiverAggressorValueBets(t *testing.T) {
	p, rec := newTestPolicy(t, equity.Estimate{Equity: 0.95})
	beginRound(t, p, []string{"Kd", "Ks"}, deck.Two)
	p.Round().Aggressor = true

	snap := riverSnapshot()
	snap.MyStack = 200

	act, err := p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Raise, act.Kind)
	assert.Equal(t, 1, rec.valueBets)
}

func TestRiverFacingBetIgnoresDraws(t *testing.T) {
	// On the river the semibluff responses are disabled even with a high
	// recorded nut potential.
	p, rec := newTestPolicy(t, equity.Estimate{Equity: 0.3, NutPotential: 0.9})
	beginRound(t, p, []string{"9h", "4c"}, deck.Two)

	snap := riverSnapshot()
	snap.OppPip = 10
	snap.OppStack = 380
	snap.Legal = game.NewActionSet(game.Fold, game.Call, game.Raise)

	act, err := p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Fold, act.Kind)
	assert.Zero(t, rec.semibluffs)
}

func TestAllInChecksDown(t *testing.T) {
	p, _ := newTestPolicy(t, equity.Estimate{Equity: 0.99})
	beginRound(t, p, []string{"Ah", "Ad"}, deck.Two)

	snap := flopSnapshot()
	snap.MyStack = 0
	snap.Legal = game.NewActionSet(game.Check)

	act, err := p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Check, act.Kind)
}

func TestBountyBoardLoosensFacingBetThreshold(t *testing.T) {
	// 0.75 equity folds to an overbet normally, but continues when the
	// board carries the bounty.
	est := equity.Estimate{Equity: 0.78}

	snap := flopSnapshot()
	snap.OppPip = 20
	snap.OppStack = 370
	snap.Legal = game.NewActionSet(game.Fold, game.Call, game.Raise)

	p, _ := newTestPolicy(t, est)
	beginRound(t, p, []string{"Ah", "Kd"}, deck.Five)
	act, err := p.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, game.Fold, act.Kind)

	p, _ = newTestPolicy(t, est)
	beginRound(t, p, []string{"Ah", "Kd"}, deck.Seven)
	act, err = p.Decide(snap)
	require.NoError(t, err)
	assert.NotEqual(t, game.Fold, act.Kind)
}
