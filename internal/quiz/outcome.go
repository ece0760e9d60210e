package quiz

// Tier is one of the five service levels the assessment can recommend.
type Tier string

const (
	Tier1 Tier = "tier1" // DIY
	Tier2 Tier = "tier2" // AI-powered
	Tier3 Tier = "tier3" // Concierge
	Tier4 Tier = "tier4" // Full service
	Tier5 Tier = "tier5" // Attorney-backed
)

// NumTiers is the number of scored tiers.
const NumTiers = 5

// AllTiers returns the tiers in declaration order. Ranking ties are broken
// by this order.
func AllTiers() []Tier {
	return []Tier{Tier1, Tier2, Tier3, Tier4, Tier5}
}

// TierIndex returns the declaration position of t, or -1 if t is not a tier.
func TierIndex(t Tier) int {
	switch t {
	case Tier1:
		return 0
	case Tier2:
		return 1
	case Tier3:
		return 2
	case Tier4:
		return 3
	case Tier5:
		return 4
	default:
		return -1
	}
}

// Valid reports whether t is one of the declared tiers.
func (t Tier) Valid() bool {
	return TierIndex(t) >= 0
}

// Outcome is what an assessment resolves to: either a Tier or one of the
// Special Outcomes that sit outside the tier ladder.
type Outcome string

const (
	OutcomeProbateAudit   Outcome = "PROBATE_AUDIT_UPSELL"
	OutcomeAttorneyNeeded Outcome = "ATTORNEY_NEEDED"
	OutcomeWaitlist       Outcome = "WAITLIST"
)

// TierOutcome lifts a tier into an Outcome.
func TierOutcome(t Tier) Outcome {
	return Outcome(t)
}

// SpecialOutcomes returns the special outcomes in display order.
func SpecialOutcomes() []Outcome {
	return []Outcome{OutcomeProbateAudit, OutcomeAttorneyNeeded, OutcomeWaitlist}
}

// IsSpecial reports whether o is a Special Outcome.
func (o Outcome) IsSpecial() bool {
	switch o {
	case OutcomeProbateAudit, OutcomeAttorneyNeeded, OutcomeWaitlist:
		return true
	}
	return false
}

// Tier returns the tier o names, if any.
func (o Outcome) Tier() (Tier, bool) {
	t := Tier(o)
	return t, t.Valid()
}

// Valid reports whether o is a tier or a special outcome.
func (o Outcome) Valid() bool {
	_, isTier := o.Tier()
	return isTier || o.IsSpecial()
}
