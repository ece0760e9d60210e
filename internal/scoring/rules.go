package scoring

import (
	"slices"

	"github.com/abhisek/probatequiz/internal/quiz"
)

// Tally is the working state the override rules see: the answers, the raw
// point vector and the biased vector rules may adjust.
type Tally struct {
	Answers quiz.Snapshot
	// Raw is the vector before any rule ran.
	Raw Scores
	// Scores is the vector after the rules applied so far.
	Scores Scores
	// Flags are collected in catalog order, then selection order.
	Flags []string

	byQuestion map[string][]string
}

// HasFlag reports whether the answer to question qid carried flag.
func (t *Tally) HasFlag(qid, flag string) bool {
	return slices.Contains(t.byQuestion[qid], flag)
}

// Rule is one override. Adjust biases the tally and lets evaluation
// continue; Resolve ends it with a result. A rule may set both.
type Rule struct {
	Name    string
	Applies func(t *Tally) bool
	Adjust  func(t *Tally)
	Resolve func(t *Tally) Result
}

// Bonus sizes of the default rules.
const (
	TopBracketBonus = 10
	DisputeBonus    = 15
)

// Names of the default rules.
const (
	RuleTopBracket  = "top-bracket-bonus"
	RuleDisputes    = "family-disputes"
	RuleAttorney    = "attorney-required"
	RuleLivingTrust = "living-trust-upsell"
)

// DefaultRules returns the probate override rules in evaluation order.
//
// The attorney check runs before the living-trust upsell so disputes in a
// high-value estate always resolve to an attorney.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: RuleTopBracket,
			Applies: func(t *Tally) bool {
				return t.Answers.Has(quiz.QEstateValue, quiz.EstateOver2M)
			},
			Adjust: func(t *Tally) {
				t.Scores.Add(quiz.Tier5, TopBracketBonus)
			},
		},
		{
			Name:    RuleDisputes,
			Applies: hasDisputes,
			Adjust: func(t *Tally) {
				t.Scores.Set(quiz.Tier1, 0)
				t.Scores.Set(quiz.Tier2, 0)
				t.Scores.Add(quiz.Tier5, DisputeBonus)
			},
		},
		{
			Name: RuleAttorney,
			Applies: func(t *Tally) bool {
				return hasDisputes(t) && highValueEstate(t.Answers)
			},
			Resolve: func(t *Tally) Result {
				return Result{
					Primary:    quiz.OutcomeAttorneyNeeded,
					Secondary:  quiz.TierOutcome(t.Scores.Top()),
					Confidence: 1.0,
				}
			},
		},
		{
			Name: RuleLivingTrust,
			Applies: func(t *Tally) bool {
				return t.HasFlag(quiz.QAssets, quiz.FlagLivingTrust)
			},
			Resolve: func(t *Tally) Result {
				return Result{
					Primary:    quiz.OutcomeProbateAudit,
					Secondary:  quiz.TierOutcome(t.Raw.Top()),
					Confidence: 1.0,
				}
			},
		},
	}
}

func hasDisputes(t *Tally) bool {
	return t.HasFlag(quiz.QComplications, quiz.FlagFamilyDispute)
}

// highValueEstate reports whether the estate falls in one of the two
// highest brackets.
func highValueEstate(snap quiz.Snapshot) bool {
	return snap.Has(quiz.QEstateValue, quiz.EstateOver2M) ||
		snap.Has(quiz.QEstateValue, quiz.Estate500kTo2M)
}
