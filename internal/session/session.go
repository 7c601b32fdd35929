// Package session tracks cross-round match state: the aggregate bet-type
// counters, bankroll, and the end-of-match report.
package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Match lives for the whole match: initialized once at match start,
// updated at round boundaries, read out at match end. There is exactly one
// match per process, so it is plain owned state rather than a singleton.
type Match struct {
	logger *log.Logger

	RoundNum int
	Bankroll int

	ValueBets    int
	Semibluffs   int
	BountyBluffs int
	Bluffs       int

	OneCheckBluffs int
	OneCheckDelta  int
	TwoCheckBluffs int
	TwoCheckDelta  int

	// MinClock is the lowest remaining game clock observed, in seconds.
	MinClock float64
}

// NewMatch creates the session for a fresh match.
func NewMatch(logger *log.Logger) *Match {
	return &Match{logger: logger, MinClock: -1}
}

// StartRound records round-start state from the engine.
func (m *Match) StartRound(roundNum, bankroll int, gameClock float64) {
	m.RoundNum = roundNum
	m.Bankroll = bankroll
	if m.MinClock < 0 || gameClock < m.MinClock {
		m.MinClock = gameClock
	}
	m.logger.Debug("round start", "round", roundNum, "bankroll", bankroll, "clock", gameClock)
}

// EndRound folds the round's bankroll delta into the check-bluff
// accumulators when the round contained a one- or two-check bluff.
func (m *Match) EndRound(delta int, oneCheckBluffed, twoCheckBluffed bool) {
	m.Bankroll += delta
	if oneCheckBluffed {
		m.OneCheckBluffs++
		m.OneCheckDelta += delta
	}
	if twoCheckBluffed {
		m.TwoCheckBluffs++
		m.TwoCheckDelta += delta
	}
	m.logger.Debug("round over", "round", m.RoundNum, "delta", delta, "bankroll", m.Bankroll)
}

// RecordValueBet, RecordSemibluff, RecordBountyBluff and RecordBluff are
// invoked by the betting policy as it classifies its own aggression.
func (m *Match) RecordValueBet()    { m.ValueBets++ }
func (m *Match) RecordSemibluff()   { m.Semibluffs++ }
func (m *Match) RecordBountyBluff() { m.BountyBluffs++ }
func (m *Match) RecordBluff()       { m.Bluffs++ }

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true)
	reportLabelStyle = lipgloss.NewStyle().Faint(true).Width(24)
)

// Report renders the end-of-match summary.
func (m *Match) Report() string {
	var b strings.Builder
	b.WriteString(reportTitleStyle.Render("match summary"))
	b.WriteString("\n")
	row := func(label string, value string) {
		b.WriteString(reportLabelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("final bankroll", fmt.Sprintf("%+d", m.Bankroll))
	row("value bets", fmt.Sprintf("%d", m.ValueBets))
	row("semibluffs", fmt.Sprintf("%d", m.Semibluffs))
	row("bounty bluffs", fmt.Sprintf("%d", m.BountyBluffs))
	row("total bluffs", fmt.Sprintf("%d", m.Bluffs))
	row("one-check bluffs", fmt.Sprintf("%d (%+d chips)", m.OneCheckBluffs, m.OneCheckDelta))
	row("two-check bluffs", fmt.Sprintf("%d (%+d chips)", m.TwoCheckBluffs, m.TwoCheckDelta))
	if m.MinClock >= 0 {
		row("min clock seen", fmt.Sprintf("%.2fs", m.MinClock))
	}
	return b.String()
}
