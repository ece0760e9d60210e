// Package tierinfo holds the display metadata of every outcome. The quiz
// engine only emits outcome identifiers; this table turns them into names,
// prices and features.
package tierinfo

import (
	"github.com/abhisek/probatequiz/internal/quiz"
)

// Info describes one outcome.
type Info struct {
	ID          quiz.Outcome `json:"id"`
	Name        string       `json:"name"`
	Price       string       `json:"price"`
	Tagline     string       `json:"tagline"`
	Description string       `json:"description"`
	Includes    []string     `json:"includes"`
	Timeline    string       `json:"timeline"`
	NextStep    string       `json:"nextStep"`
	CTA         string       `json:"cta"`
}

var table = map[quiz.Outcome]Info{
	quiz.TierOutcome(quiz.Tier1): {
		Name:        "DIY Probate",
		Price:       "$499",
		Tagline:     "Do it yourself with our tools",
		Description: "Perfect for simple estates where you want to handle everything yourself",
		Includes: []string{
			"Step-by-step DIY portal with templates",
			"AI-composed court forms you can file yourself",
			"Email support during business hours",
			"Estate checklist + deadline tracker",
		},
		Timeline: "8-10 months (self-paced)",
		NextStep: "Download your starter packet",
		CTA:      "Start DIY Probate",
	},
	quiz.TierOutcome(quiz.Tier2): {
		Name:        "AI-Powered Probate",
		Price:       "$999",
		Tagline:     "AI speed + your oversight",
		Description: "AI handles the paperwork, you review and file",
		Includes: []string{
			"AI generates all required documents in 24 hours",
			"Guided filing instructions for your county",
			"Live chat support for quick questions",
			"Deadline reminders + step-by-step roadmap",
		},
		Timeline: "7-8 months on average",
		NextStep: "Upload will and death certificate",
		CTA:      "Start AI-Powered Probate",
	},
	quiz.TierOutcome(quiz.Tier3): {
		Name:        "Concierge Probate",
		Price:       "$1,999",
		Tagline:     "AI speed + human review",
		Description: "AI speed with human experts reviewing every step",
		Includes: []string{
			"AI generates all court documents in 24 hours",
			"Licensed paralegal review + 30-minute prep call",
			"We file everything with the court for you",
			"Hearing preparation coaching and checklists",
			"Phone support throughout business hours",
			"6-month completion guarantee",
		},
		Timeline: "6-7 months from start to finish",
		NextStep: "Upload will and death certificate",
		CTA:      "Start My Concierge Probate",
	},
	quiz.TierOutcome(quiz.Tier4): {
		Name:        "Full Service Probate",
		Price:       "$3,499",
		Tagline:     "We handle everything",
		Description: "Complete hands-off service. We do it all for you",
		Includes: []string{
			"Dedicated case lead + full-service document prep",
			"We manage court filings, deadlines, and logistics",
			"Asset discovery support + creditor coordination",
			"Court hearing attendance where permitted",
			"Weekly progress updates + status dashboard",
		},
		Timeline: "5-6 months from onboarding",
		NextStep: "Schedule onboarding call",
		CTA:      "Begin Full Service Probate",
	},
	quiz.TierOutcome(quiz.Tier5): {
		Name:        "Premium Estate Settlement",
		Price:       "$6,999",
		Tagline:     "Attorney-backed protection",
		Description: "Licensed attorney oversight for complex cases",
		Includes: []string{
			"Licensed probate attorney oversight",
			"Litigation support + mediation coordination",
			"Business valuation + multi-state coordination",
			"Estate tax planning (Form 706) when needed",
			"Unlimited strategy sessions",
		},
		Timeline: "Varies by complexity",
		NextStep: "Book attorney consultation",
		CTA:      "Start Premium Estate Settlement",
	},
	quiz.OutcomeProbateAudit: {
		Name:        "Probate Avoidance Audit",
		Price:       "$499",
		Tagline:     "You might not need probate!",
		Description: "Get certainty about whether probate is needed",
		Includes: []string{
			"Asset-by-asset review (probate vs. non-probate)",
			"Written plan outlining exact forms and steps",
			"30-minute consultation call with our specialists",
			"$499 credit toward any service tier if probate is still required",
		},
		Timeline: "48-hour turnaround",
		NextStep: "Order your audit",
		CTA:      "Get Probate Audit ($499)",
	},
	quiz.OutcomeAttorneyNeeded: {
		Name:        "Premium Estate Settlement",
		Price:       "$6,999",
		Tagline:     "Attorney-backed protection",
		Description: "Your situation requires legal expertise",
		Includes: []string{
			"Licensed probate attorney oversight from start to finish",
			"Litigation support + mediation if disputes escalate",
			"Business valuation coordination & tax planning",
			"Protection against executor liability claims",
			"Unlimited consultations with your legal team",
		},
		Timeline: "Varies by complexity",
		NextStep: "Schedule a free attorney consultation",
		CTA:      "Schedule Free Attorney Consultation",
	},
	quiz.OutcomeWaitlist: {
		Name:        "Coming Soon",
		Price:       "TBD",
		Tagline:     "We're expanding to your state",
		Description: "Join the waitlist to be notified when we launch",
		Includes: []string{
			"Early bird special: $500 off when we launch in your state",
			"Free probate guide",
		},
		Timeline: "Launching in more states this year",
		NextStep: "Join the waitlist",
		CTA:      "Notify Me",
	},
}

// Lookup returns the metadata of o.
func Lookup(o quiz.Outcome) (Info, bool) {
	info, ok := table[o]
	if !ok {
		return Info{}, false
	}
	info.ID = o
	info.Includes = append([]string(nil), info.Includes...)
	return info, true
}

// All returns the metadata of every outcome: tiers first, then special
// outcomes.
func All() []Info {
	var out []Info
	for _, t := range quiz.AllTiers() {
		info, _ := Lookup(quiz.TierOutcome(t))
		out = append(out, info)
	}
	for _, o := range quiz.SpecialOutcomes() {
		info, _ := Lookup(o)
		out = append(out, info)
	}
	return out
}

// ComparisonRow is one line of the side-by-side tier comparison.
type ComparisonRow struct {
	Label  string               `json:"label"`
	Values map[quiz.Tier]string `json:"values"`
}

// ComparisonTiers are the tiers shown side by side.
func ComparisonTiers() []quiz.Tier {
	return []quiz.Tier{quiz.Tier2, quiz.Tier3, quiz.Tier4}
}

func row(label, t2, t3, t4 string) ComparisonRow {
	return ComparisonRow{Label: label, Values: map[quiz.Tier]string{quiz.Tier2: t2, quiz.Tier3: t3, quiz.Tier4: t4}}
}

// Comparison returns the comparison rows for ComparisonTiers.
func Comparison() []ComparisonRow {
	return []ComparisonRow{
		row("Price", "$999", "$1,999", "$3,499"),
		row("AI document generation", "✓", "✓", "✓"),
		row("Paralegal / human review", "-", "✓ (30 min call)", "✓ (unlimited)"),
		row("We file with the court", "-", "✓", "✓"),
		row("Asset discovery", "You handle", "You handle (we guide)", "We handle"),
		row("Creditor management", "You handle", "You handle", "We handle"),
		row("Court hearing support", "Prep guide", "We attend (where allowed)", "We attend"),
		row("Phone support", "-", "✓", "✓"),
		row("Timeline guarantee", "-", "6 months", "6 months"),
	}
}
