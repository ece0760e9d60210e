package quiz

// Question IDs of the built-in probate assessment.
const (
	QEstateValue   = "q1"
	QAssets        = "q2"
	QComplications = "q3"
	QPaperwork     = "q4"
	QTiming        = "q5"
	QPriorities    = "q6"
	QState         = "q7"
	QContact       = "q8"
)

// Estate-value brackets referenced by the scoring rules.
const (
	EstateUnder100K = "under_100k"
	Estate500kTo2M  = "500k_to_2m"
	EstateOver2M    = "over_2m"
)

// Option values referenced outside the catalog.
const (
	AssetLivingTrust = "living_trust"
	ComplicationFeud = "disputes"
	StateOther       = "Other"
)

// Flags carried by options.
const (
	FlagLivingTrust      = "LIVING_TRUST"
	FlagProbateAvoidable = "PROBATE_AVOIDABLE"
	FlagFamilyDispute    = "FAMILY_DISPUTE"
)

// Form field names of the contact question.
const (
	FieldFirstName    = "firstName"
	FieldEmailAddress = "email"
	FieldPhoneNumber  = "phone"
	FieldScheduleCall = "scheduleCall"
)

// defaultCatalog is built at package initialisation; an invalid definition
// panics before anything can be served.
var defaultCatalog = MustCatalog(seedQuestions())

// Default returns the built-in probate assessment catalog.
func Default() *Catalog { return defaultCatalog }

func seedQuestions() []Question {
	return []Question{
		{
			ID:            QEstateValue,
			Prompt:        "What's the estimated total value of the estate?",
			Subtitle:      "Include: real estate, bank accounts, investments, vehicles",
			HelperText:    "Don't worry about being exact. A rough estimate is fine.",
			HelperTooltip: "We'll help you calculate the precise value later.",
			Kind:          KindSingle,
			Options: []Option{
				{Value: EstateUnder100K, Label: "Under $100K", Points: Points{Tier1: 3, Tier2: 2}},
				{Value: "100k_to_184k", Label: "$100K - $184K", Points: Points{Tier2: 3, Tier3: 1}},
				{Value: "184k_to_500k", Label: "$184K - $500K", Points: Points{Tier2: 2, Tier3: 3}},
				{Value: Estate500kTo2M, Label: "$500K - $2M", Points: Points{Tier3: 2, Tier4: 3}},
				{Value: EstateOver2M, Label: "Over $2M", Points: Points{Tier4: 2, Tier5: 3}},
				{Value: "unsure", Label: "I'm not sure"},
			},
		},
		{
			ID:       QAssets,
			Prompt:   "Did the deceased have any of these?",
			Subtitle: "Select all that apply",
			Kind:     KindMulti,
			Options: []Option{
				{
					Value:     AssetLivingTrust,
					Label:     "Living Trust (revocable or irrevocable)",
					Flag:      FlagLivingTrust,
					Explainer: "Assets in a trust typically skip probate!",
				},
				{
					Value:     "pod_accounts",
					Label:     "Bank accounts with beneficiaries (POD/TOD)",
					Flag:      FlagProbateAvoidable,
					Explainer: "These transfer directly to beneficiaries.",
				},
				{
					Value:     "joint_accounts",
					Label:     "Joint ownership on property or accounts",
					Flag:      FlagProbateAvoidable,
					Explainer: "Joint tenancy transfers automatically.",
				},
				{
					Value:     "life_insurance",
					Label:     "Life insurance with named beneficiaries",
					Flag:      FlagProbateAvoidable,
					Explainer: "Life insurance proceeds skip probate.",
				},
				{
					Value:     "retirement_accounts",
					Label:     "Retirement accounts (IRA, 401k) with beneficiaries",
					Flag:      FlagProbateAvoidable,
					Explainer: "These go directly to beneficiaries.",
				},
				{Value: NoneValue, Label: "None of these"},
			},
			Route: Route{
				Policy:  RouteFlagOutcome,
				Flags:   []string{FlagLivingTrust, FlagProbateAvoidable},
				Outcome: OutcomeProbateAudit,
			},
		},
		{
			ID:       QComplications,
			Prompt:   "Are any of these true about the situation?",
			Subtitle: "Select all that apply",
			Kind:     KindMulti,
			Options: []Option{
				{
					Value:  ComplicationFeud,
					Label:  "Family members disagree about the will or distribution",
					Points: Points{Tier4: 5, Tier5: 5},
					Flag:   FlagFamilyDispute,
				},
				{Value: "no_will", Label: "There is no will"},
				{Value: "business", Label: "The deceased owned a business", Points: Points{Tier4: 3, Tier5: 2}},
				{Value: "multiple_states", Label: "There's property in multiple states", Points: Points{Tier4: 2, Tier5: 2}},
				{Value: "minor_children", Label: "Beneficiaries include minor children (under 18)"},
				{Value: "unclear_will", Label: "The will is unclear or missing pages", Points: Points{Tier4: 2, Tier5: 3}},
				{Value: "debts", Label: "There are significant debts or creditor claims", Points: Points{Tier3: 1, Tier4: 2, Tier5: 2}},
				{Value: NoneValue, Label: "None of these apply", Points: Points{Tier1: 2, Tier2: 2}},
			},
		},
		{
			ID:     QPaperwork,
			Prompt: "How comfortable are you with legal paperwork and forms?",
			Kind:   KindSingle,
			Options: []Option{
				{
					Value:     "very",
					Label:     "Very Comfortable",
					Quote:     `"I can handle this myself with guidance"`,
					Explainer: "I'm detail-oriented and comfortable navigating bureaucracy.",
					Points:    Points{Tier1: 5, Tier2: 3},
				},
				{
					Value:     "somewhat",
					Label:     "Somewhat Comfortable",
					Quote:     `"I'd like step-by-step guidance"`,
					Explainer: "I can do paperwork but want to make sure I get it right.",
					Points:    Points{Tier2: 5, Tier3: 3},
				},
				{
					Value:     "not_really",
					Label:     "Not Very Comfortable",
					Quote:     `"I want help with the hard parts"`,
					Explainer: "Legal forms stress me out. I need hands-on support.",
					Points:    Points{Tier3: 5, Tier4: 3},
				},
				{
					Value:     "not_at_all",
					Label:     "Not At All Comfortable",
					Quote:     `"Please just do it for me"`,
					Explainer: "I'm overwhelmed and want someone else to handle it.",
					Points:    Points{Tier4: 5},
				},
			},
		},
		{
			ID:         QTiming,
			Prompt:     "When did the death occur?",
			HelperText: "This helps us understand timeline urgency. California requires probate filing within certain timeframes.",
			Kind:       KindSingle,
			Options: []Option{
				{Value: "0_30_days", Label: "Within the last 30 days", Description: "Recent loss. Need to move quickly."},
				{Value: "31_90_days", Label: "1-3 months ago", Description: "Getting started with probate process."},
				{Value: "90_plus", Label: "More than 3 months ago", Description: "Time-sensitive deadlines may be approaching."},
			},
		},
		{
			ID:       QPriorities,
			Prompt:   "What's most important to you?",
			Subtitle: "Rank these priorities (move your top choice to the front)",
			Kind:     KindRank,
			Options: []Option{
				{
					Value:     "cost",
					Label:     "Lowest cost possible",
					Explainer: "I want to minimize expenses, even if it takes more time.",
					Points:    Points{Tier1: 3, Tier2: 2},
				},
				{
					Value:     "speed",
					Label:     "Getting it done quickly",
					Explainer: "Time is more important than cost.",
					Points:    Points{Tier3: 3, Tier4: 2},
				},
				{
					Value:     "accuracy",
					Label:     "Making sure it's done correctly",
					Explainer: "Accuracy and avoiding mistakes is my priority.",
					Points:    Points{Tier3: 2, Tier4: 3},
				},
				{
					Value:     "hands_off",
					Label:     "Not having to think about it",
					Explainer: "I want someone else to handle the details.",
					Points:    Points{Tier4: 5},
				},
			},
		},
		{
			ID:         QState,
			Prompt:     "What state did the deceased live in?",
			HelperText: "We currently serve California, Florida, and Texas. We're expanding to 15 more states in 2025.",
			Kind:       KindDropdown,
			Options: []Option{
				{Value: "California", Label: "California"},
				{Value: "Florida", Label: "Florida"},
				{Value: "Texas", Label: "Texas"},
				{Value: StateOther, Label: "Other"},
			},
			Route: Route{
				Policy:  RouteValueOutcome,
				Values:  []string{StateOther},
				Outcome: OutcomeWaitlist,
			},
		},
		{
			ID:     QContact,
			Prompt: "Where should we send your personalized plan?",
			Kind:   KindForm,
			Fields: []Field{
				{Name: FieldFirstName, Label: "First Name", Type: FieldText, Required: true},
				{Name: FieldEmailAddress, Label: "Email", Type: FieldEmail, Required: true},
				{Name: FieldPhoneNumber, Label: "Phone (Optional)", Type: FieldPhone, Placeholder: "For complex cases only"},
				{Name: FieldScheduleCall, Label: "I'd like to schedule a free 15-minute consultation call", Type: FieldCheckbox},
			},
		},
	}
}
