// Package scoring turns a completed answer set into a recommendation.
package scoring

import (
	"slices"

	"github.com/abhisek/probatequiz/internal/quiz"
)

// Result is the final recommendation of one quiz run.
type Result struct {
	Primary    quiz.Outcome `json:"primary"`
	Secondary  quiz.Outcome `json:"secondary,omitempty"`
	Scores     Scores       `json:"scores"`
	Confidence float64      `json:"confidence"`
	Flags      []string     `json:"flags"`

	// Rule names the override that short-circuited ranking, if any.
	Rule string `json:"rule,omitempty"`
}

// ShortCircuited reports whether an override or a routing termination
// produced the result instead of ranking.
func (r Result) ShortCircuited() bool {
	return r.Rule != ""
}

// RuleRouting is the Rule name of results produced by early termination.
const RuleRouting = "routing"

// Terminal builds the result for a quiz that a route ended early. No tally
// is computed for it.
func Terminal(o quiz.Outcome) Result {
	return Result{
		Primary:    o,
		Confidence: 1.0,
		Flags:      []string{},
		Rule:       RuleRouting,
	}
}

// rankWeights are the multipliers for the first rank positions; later
// positions weigh 1.
var rankWeights = []int{4, 3, 2, 1}

// RankWeight returns the multiplier for the item at list position i of a
// rank answer.
func RankWeight(i int) int {
	if i >= 0 && i < len(rankWeights) {
		return rankWeights[i]
	}
	return 1
}

// Engine scores answer snapshots against a catalog. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	catalog *quiz.Catalog
	rules   []Rule
}

// New returns an engine with the default override rules.
func New(c *quiz.Catalog) *Engine {
	return NewWithRules(c, DefaultRules())
}

// NewWithRules returns an engine that applies rules in the given order.
func NewWithRules(c *quiz.Catalog, rules []Rule) *Engine {
	return &Engine{catalog: c, rules: slices.Clone(rules)}
}

// Rules returns the override rules in evaluation order.
func (e *Engine) Rules() []Rule {
	return slices.Clone(e.rules)
}

// Tally sums every resolvable answer in catalog order. Unknown questions
// and option values contribute nothing.
func (e *Engine) Tally(snap quiz.Snapshot) *Tally {
	t := &Tally{
		Answers:    snap,
		Flags:      []string{},
		byQuestion: make(map[string][]string),
	}
	for _, q := range e.catalog.Questions() {
		ans, ok := snap.Get(q.ID)
		if !ok {
			continue
		}
		for i, v := range ans.Values() {
			opt, ok := q.Option(v)
			if !ok {
				continue
			}
			weight := 1
			if q.Kind == quiz.KindRank {
				weight = RankWeight(i)
			}
			t.Raw.addPoints(opt.Points, weight)
			if opt.Flag != "" {
				t.Flags = append(t.Flags, opt.Flag)
				t.byQuestion[q.ID] = append(t.byQuestion[q.ID], opt.Flag)
			}
		}
	}
	t.Scores = t.Raw
	return t
}

// Score produces the recommendation for snap. Calling it twice on the same
// snapshot yields identical results.
func (e *Engine) Score(snap quiz.Snapshot) Result {
	t := e.Tally(snap)

	for _, r := range e.rules {
		if r.Applies == nil || !r.Applies(t) {
			continue
		}
		if r.Adjust != nil {
			r.Adjust(t)
		}
		if r.Resolve != nil {
			res := r.Resolve(t)
			res.Scores = t.Scores
			res.Flags = slices.Clone(t.Flags)
			res.Rule = r.Name
			return res
		}
	}

	ranked := t.Scores.Ranked()
	primary, secondary := ranked[0], ranked[1]
	p, s := t.Scores.Get(primary), t.Scores.Get(secondary)
	return Result{
		Primary:    quiz.TierOutcome(primary),
		Secondary:  quiz.TierOutcome(secondary),
		Scores:     t.Scores,
		Confidence: Confidence(p, s),
		Flags:      slices.Clone(t.Flags),
	}
}

// Confidence is p/(p+s+1), clamped at zero for negative input.
func Confidence(p, s int) float64 {
	if p <= 0 {
		return 0
	}
	if s < 0 {
		s = 0
	}
	return float64(p) / float64(p+s+1)
}
