package quiz

import (
	"fmt"
	"slices"
)

// RoutePolicy names how a question decides what follows it.
type RoutePolicy int

const (
	// RouteLinear continues in catalog order, or jumps to Route.Next when set.
	RouteLinear RoutePolicy = iota
	// RouteFlagOutcome terminates with Route.Outcome as soon as any selected
	// option carries one of Route.Flags.
	RouteFlagOutcome
	// RouteValueOutcome terminates with Route.Outcome when the answer is one
	// of Route.Values.
	RouteValueOutcome
)

func (p RoutePolicy) String() string {
	switch p {
	case RouteLinear:
		return "linear"
	case RouteFlagOutcome:
		return "flag-outcome"
	case RouteValueOutcome:
		return "value-outcome"
	default:
		return fmt.Sprintf("RoutePolicy(%d)", int(p))
	}
}

// MarshalText encodes the policy by name.
func (p RoutePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a policy name.
func (p *RoutePolicy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "linear", "":
		*p = RouteLinear
	case "flag-outcome":
		*p = RouteFlagOutcome
	case "value-outcome":
		*p = RouteValueOutcome
	default:
		return fmt.Errorf("unknown route policy %q", b)
	}
	return nil
}

// Route is the routing rule attached to a question. It is plain data; the
// behaviour lives in Decide.
type Route struct {
	Policy  RoutePolicy `json:"policy"`
	Flags   []string    `json:"flags,omitempty"`
	Values  []string    `json:"values,omitempty"`
	Outcome Outcome     `json:"outcome,omitempty"`
	// Next is the question that follows when the route does not terminate.
	// Empty means the next question in catalog order.
	Next string `json:"next,omitempty"`
}

// DecisionKind says what happens after an answer is recorded.
type DecisionKind int

const (
	DecisionContinue  DecisionKind = iota // next question in catalog order
	DecisionJump                          // go to Decision.Next
	DecisionTerminate                     // end the quiz with Decision.Outcome
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionContinue:
		return "continue"
	case DecisionJump:
		return "jump"
	case DecisionTerminate:
		return "terminate"
	default:
		return fmt.Sprintf("DecisionKind(%d)", int(k))
	}
}

// Decision is the routing result for one question.
type Decision struct {
	Kind    DecisionKind
	Next    string
	Outcome Outcome
}

// Decide evaluates q's route against the answers recorded so far. It is
// total: every answer shape, including a missing answer or an empty
// selection, yields a decision.
func Decide(q Question, snap Snapshot) Decision {
	r := q.Route
	switch r.Policy {
	case RouteFlagOutcome:
		if ans, ok := snap.Get(q.ID); ok {
			for _, v := range ans.values {
				opt, ok := q.Option(v)
				if ok && opt.Flag != "" && slices.Contains(r.Flags, opt.Flag) {
					return Decision{Kind: DecisionTerminate, Outcome: r.Outcome}
				}
			}
		}
	case RouteValueOutcome:
		if ans, ok := snap.Get(q.ID); ok {
			for _, v := range ans.values {
				if slices.Contains(r.Values, v) {
					return Decision{Kind: DecisionTerminate, Outcome: r.Outcome}
				}
			}
		}
	}

	if r.Next != "" {
		return Decision{Kind: DecisionJump, Next: r.Next}
	}
	return Decision{Kind: DecisionContinue}
}

// EarlyOutcome replays routing over a complete answer set from the first
// question and reports the outcome of the first route that ends the quiz.
// Unanswered questions continue in catalog order.
func (c *Catalog) EarlyOutcome(snap Snapshot) (Outcome, bool) {
	seen := make(map[string]bool, c.Len())
	for i := 0; i < c.Len(); {
		q, _ := c.At(i)
		if seen[q.ID] {
			break
		}
		seen[q.ID] = true

		d := Decide(q, snap)
		switch d.Kind {
		case DecisionTerminate:
			return d.Outcome, true
		case DecisionJump:
			next, ok := c.IndexOf(d.Next)
			if !ok {
				return "", false
			}
			i = next
		default:
			i++
		}
	}
	return "", false
}
