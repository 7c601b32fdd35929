// Package protocol defines the JSON messages exchanged with the match
// engine. Each message carries a type tag; Decode probes the tag and
// returns the concrete message struct.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/lox/bountyholdem/internal/game"
)

// Message type tags.
const (
	TypeRoundStart    = "round_start"
	TypeActionRequest = "action_request"
	TypeRoundOver     = "round_over"
	TypeMatchOver     = "match_over"
	TypeAction        = "action"
)

// RoundStart announces a new round: the deal, the bounty, and which blind
// the bot posted.
type RoundStart struct {
	Type       string   `json:"type"`
	Round      int      `json:"round"`
	Bankroll   int      `json:"bankroll"`
	GameClock  float64  `json:"game_clock"`
	HoleCards  []string `json:"hole_cards"`
	BountyRank string   `json:"bounty_rank"`
	BigBlind   bool     `json:"big_blind"`
}

// ActionRequest asks for one decision. Pips and stacks are the engine's
// authoritative view; legal actions and raise bounds define the window
// the reply must fall in.
type ActionRequest struct {
	Type         string   `json:"type"`
	Street       int      `json:"street"`
	Board        []string `json:"board"`
	MyPip        int      `json:"my_pip"`
	OppPip       int      `json:"opp_pip"`
	MyStack      int      `json:"my_stack"`
	OppStack     int      `json:"opp_stack"`
	LegalActions []string `json:"legal_actions"`
	MinRaise     int      `json:"min_raise"`
	MaxRaise     int      `json:"max_raise"`
}

// LegalSet converts the wire action names into a capability set.
func (r ActionRequest) LegalSet() (game.ActionSet, error) {
	var set game.ActionSet
	for _, name := range r.LegalActions {
		kind, ok := game.ActionKindFromString(name)
		if !ok {
			return 0, fmt.Errorf("protocol: unknown legal action %q", name)
		}
		set |= game.NewActionSet(kind)
	}
	if set == 0 {
		return 0, fmt.Errorf("protocol: empty legal action set")
	}
	return set, nil
}

// RoundOver reports the settled outcome of a round.
type RoundOver struct {
	Type         string   `json:"type"`
	Delta        int      `json:"delta"`
	OppHoleCards []string `json:"opp_hole_cards,omitempty"`
	BountyHit    bool     `json:"bounty_hit"`
}

// MatchOver terminates the session.
type MatchOver struct {
	Type string `json:"type"`
}

// ActionMessage is the bot's reply to an ActionRequest.
type ActionMessage struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// EncodeAction serializes a decision for the wire.
func EncodeAction(a game.Action) ([]byte, error) {
	msg := ActionMessage{Type: TypeAction, Action: a.Kind.String()}
	if a.Kind == game.Raise {
		msg.Amount = a.Amount
	}
	return json.Marshal(msg)
}

// Decode parses one engine message, returning *RoundStart, *ActionRequest,
// *RoundOver or *MatchOver.
func Decode(data []byte) (any, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("protocol: decoding message: %w", err)
	}
	switch probe.Type {
	case TypeRoundStart:
		msg := &RoundStart{}
		return msg, json.Unmarshal(data, msg)
	case TypeActionRequest:
		msg := &ActionRequest{}
		return msg, json.Unmarshal(data, msg)
	case TypeRoundOver:
		msg := &RoundOver{}
		return msg, json.Unmarshal(data, msg)
	case TypeMatchOver:
		msg := &MatchOver{}
		return msg, json.Unmarshal(data, msg)
	default:
		return nil, fmt.Errorf("protocol: unknown message type %q", probe.Type)
	}
}
