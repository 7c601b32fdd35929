package client

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/bountyholdem/internal/deck"
	"github.com/lox/bountyholdem/internal/game"
	"github.com/lox/bountyholdem/internal/protocol"
	"github.com/lox/bountyholdem/internal/session"
	"github.com/lox/bountyholdem/internal/strategy"
)

// roundState carries the round-start facts every subsequent action request
// in the round needs.
type roundState struct {
	roundNum  int
	bankroll  int
	hole      []deck.Card
	bounty    deck.Rank
	bigBlind  bool
	gameClock float64
}

// Runner drives one match: it reads engine messages, keeps round state,
// asks the policy for decisions and writes them back.
type Runner struct {
	transport Transport
	policy    *strategy.Policy
	match     *session.Match
	logger    *log.Logger
	clock     quartz.Clock

	round *roundState
}

// NewRunner wires a runner. A nil clock defaults to the real clock; tests
// inject a mock to assert decision timing.
func NewRunner(transport Transport, policy *strategy.Policy, match *session.Match, logger *log.Logger, clock quartz.Clock) *Runner {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Runner{
		transport: transport,
		policy:    policy,
		match:     match,
		logger:    logger,
		clock:     clock,
	}
}

// Run processes messages until the engine ends the match, the connection
// drops, or the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = r.transport.Close()
	}()

	for {
		data, err := r.transport.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading engine message: %w", err)
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			return err
		}

		switch m := msg.(type) {
		case *protocol.RoundStart:
			if err := r.handleRoundStart(m); err != nil {
				return err
			}
		case *protocol.ActionRequest:
			if err := r.handleActionRequest(m); err != nil {
				return err
			}
		case *protocol.RoundOver:
			r.handleRoundOver(m)
		case *protocol.MatchOver:
			r.logger.Info("match over", "bankroll", r.match.Bankroll)
			return nil
		}
	}
}

func (r *Runner) handleRoundStart(m *protocol.RoundStart) error {
	hole, err := deck.ParseCards(m.HoleCards)
	if err != nil {
		return fmt.Errorf("round %d hole cards: %w", m.Round, err)
	}
	if len(m.BountyRank) != 1 {
		return fmt.Errorf("round %d bounty: %w: %q", m.Round, deck.ErrInvalidCard, m.BountyRank)
	}
	bounty, err := deck.ParseRank(m.BountyRank[0])
	if err != nil {
		return fmt.Errorf("round %d bounty: %w", m.Round, err)
	}

	r.round = &roundState{
		roundNum:  m.Round,
		bankroll:  m.Bankroll,
		hole:      hole,
		bounty:    bounty,
		bigBlind:  m.BigBlind,
		gameClock: m.GameClock,
	}
	r.match.StartRound(m.Round, m.Bankroll, m.GameClock)
	return r.policy.BeginRound(hole, bounty)
}

func (r *Runner) handleActionRequest(m *protocol.ActionRequest) error {
	if r.round == nil {
		return fmt.Errorf("action request before round start")
	}

	snap, err := r.snapshot(m)
	if err != nil {
		return err
	}

	start := r.clock.Now()
	action, err := r.policy.Decide(snap)
	if err != nil {
		return fmt.Errorf("round %d street %d: %w", r.round.roundNum, m.Street, err)
	}
	elapsed := r.clock.Since(start)

	if err := validateAction(action, snap); err != nil {
		return fmt.Errorf("round %d street %d: %w", r.round.roundNum, m.Street, err)
	}

	r.logger.Debug("action",
		"round", r.round.roundNum,
		"street", m.Street,
		"action", action.Kind,
		"amount", action.Amount,
		"took", elapsed,
	)

	data, err := protocol.EncodeAction(action)
	if err != nil {
		return err
	}
	return r.transport.WriteMessage(data)
}

func (r *Runner) handleRoundOver(m *protocol.RoundOver) {
	rc := r.policy.Round()
	oneCheck, twoCheck := false, false
	if rc != nil {
		oneCheck, twoCheck = rc.OneCheckBluffed, rc.TwoCheckBluffed
	}
	r.match.EndRound(m.Delta, oneCheck, twoCheck)
	if m.BountyHit {
		r.logger.Debug("bounty hit", "round", r.round.roundNum, "delta", m.Delta)
	}
	r.round = nil
}

func (r *Runner) snapshot(m *protocol.ActionRequest) (game.Snapshot, error) {
	board, err := deck.ParseCards(m.Board)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("round %d board: %w", r.round.roundNum, err)
	}
	legal, err := m.LegalSet()
	if err != nil {
		return game.Snapshot{}, err
	}
	return game.Snapshot{
		Street:       m.Street,
		HoleCards:    r.round.hole,
		Board:        board,
		BountyRank:   r.round.bounty,
		MyPip:        m.MyPip,
		OppPip:       m.OppPip,
		MyStack:      m.MyStack,
		OppStack:     m.OppStack,
		Legal:        legal,
		MinRaise:     m.MinRaise,
		MaxRaise:     m.MaxRaise,
		BigBlindSeat: r.round.bigBlind,
		RoundNum:     r.round.roundNum,
		Bankroll:     r.round.bankroll,
	}, nil
}

// validateAction rejects decisions the engine would refuse, so a policy
// bug surfaces as a loud local error instead of a forfeit.
func validateAction(a game.Action, snap game.Snapshot) error {
	if !snap.Legal.Contains(a.Kind) {
		return fmt.Errorf("illegal action %s (legal: %v)", a.Kind, snap.Legal.Kinds())
	}
	if a.Kind == game.Raise && (a.Amount < snap.MinRaise || a.Amount > snap.MaxRaise) {
		return fmt.Errorf("raise %d outside legal window [%d, %d]", a.Amount, snap.MinRaise, snap.MaxRaise)
	}
	return nil
}
