// Package game defines the action vocabulary and per-decision state
// snapshot shared by the betting policy, the engine protocol and the
// client runner.
package game

// ActionKind identifies one of the four legal action types.
type ActionKind uint8

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
)

// String returns the wire name of the action kind.
func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// ActionKindFromString converts a wire name to an ActionKind.
func ActionKindFromString(s string) (ActionKind, bool) {
	switch s {
	case "fold":
		return Fold, true
	case "check":
		return Check, true
	case "call":
		return Call, true
	case "raise":
		return Raise, true
	default:
		return 0, false
	}
}

// Action is a concrete decision. Amount is meaningful only for raises,
// where it is the total pip target and must lie within the engine's
// reported raise bounds.
type Action struct {
	Kind   ActionKind
	Amount int
}

// FoldAction, CheckAction and CallAction construct amount-less actions.
func FoldAction() Action  { return Action{Kind: Fold} }
func CheckAction() Action { return Action{Kind: Check} }
func CallAction() Action  { return Action{Kind: Call} }

// RaiseAction constructs a raise to the given total pip amount.
func RaiseAction(amount int) Action { return Action{Kind: Raise, Amount: amount} }

// ActionSet is the capability set of legal action kinds for one decision
// point, as reported by the engine.
type ActionSet uint8

// NewActionSet builds a set from the given kinds.
func NewActionSet(kinds ...ActionKind) ActionSet {
	var s ActionSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Contains reports whether the kind is legal.
func (s ActionSet) Contains(k ActionKind) bool {
	return s&(1<<k) != 0
}

// Kinds returns the legal kinds in declaration order.
func (s ActionSet) Kinds() []ActionKind {
	var out []ActionKind
	for k := Fold; k <= Raise; k++ {
		if s.Contains(k) {
			out = append(out, k)
		}
	}
	return out
}
