package advisor

import (
	"github.com/abhisek/probatequiz/internal/quiz"
)

var estateContext = map[string]string{
	quiz.EstateUnder100K: "is on the simpler side, perfect for lighter-weight support.",
	"100k_to_184k":       "sits just below California's small-estate threshold.",
	"184k_to_500k":       "is mid-range and benefits from guided expertise.",
	quiz.Estate500kTo2M:  "is substantial. Structure and oversight prevent delays.",
	quiz.EstateOver2M:    "has higher stakes that deserve professional review.",
	"unsure":             "needs clarity, and we'll help you confirm exact numbers.",
}

var paperworkContext = map[string]string{
	"very":       "You're confident handling details once you have a roadmap.",
	"somewhat":   "You want step-by-step guidance to avoid mistakes.",
	"not_really": "You'd prefer experts to tackle the tricky sections.",
	"not_at_all": "You want a team to handle the paperwork for you.",
}

var priorityContext = map[string]string{
	"cost":      "Budget matters most. You still get professional guardrails without attorney fees.",
	"speed":     "Speed is critical. We keep the process moving week by week.",
	"accuracy":  "Accuracy is your priority. Every document is human-reviewed before filing.",
	"hands_off": "You want peace of mind. Our team handles the heavy lifting.",
}

// tierReasons explains a ranked tier from the estate value, paperwork
// comfort, disputes and top priority answers.
func tierReasons(snap quiz.Snapshot) []string {
	var out []string
	if a, ok := snap.Get(quiz.QEstateValue); ok && a.Value() != "" {
		ctx, ok := estateContext[a.Value()]
		if !ok {
			ctx = "benefits from guided support."
		}
		out = append(out, "Your estate "+ctx)
	}
	if a, ok := snap.Get(quiz.QPaperwork); ok {
		if s, ok := paperworkContext[a.Value()]; ok {
			out = append(out, s)
		}
	}
	if snap.Has(quiz.QComplications, quiz.ComplicationFeud) {
		out = append(out, "There may be tension, so professional oversight protects you.")
	} else {
		out = append(out, "No disputes flagged, perfect for a streamlined process.")
	}
	if a, ok := snap.Get(quiz.QPriorities); ok && a.Len() > 0 {
		if s, ok := priorityContext[a.Values()[0]]; ok {
			out = append(out, s)
		}
	}
	return out
}

var beneficiaryAssets = []string{"pod_accounts", "joint_accounts", "life_insurance", "retirement_accounts"}

func auditReasons(snap quiz.Snapshot) []string {
	var out []string
	if snap.Has(quiz.QEstateValue, quiz.EstateUnder100K) || snap.Has(quiz.QEstateValue, "100k_to_184k") {
		out = append(out, "Estate under $184,500: California's small-estate affidavit can release funds in 6-8 weeks with no court hearing.")
	}
	if snap.Has(quiz.QAssets, quiz.AssetLivingTrust) {
		out = append(out, "Living trust detected: assets titled in a trust transfer directly to beneficiaries, no probate required.")
	}
	for _, v := range beneficiaryAssets {
		if snap.Has(quiz.QAssets, v) {
			out = append(out, "Beneficiary designations in place: POD/TOD accounts, joint ownership, life insurance and retirement accounts bypass probate automatically.")
			break
		}
	}
	return out
}

var attorneyRisks = []struct{ value, reason string }{
	{"business", "Business interests involved: operating businesses and partnerships need specialised legal and tax expertise."},
	{"multiple_states", "Assets in multiple states: multi-jurisdiction estates trigger ancillary probate and added filings."},
	{"debts", "Significant debts or creditor claims: aggressive creditors can file objections that delay probate."},
	{"unclear_will", "Will issues present: a missing or vague will invites challenges."},
}

func attorneyReasons(snap quiz.Snapshot) []string {
	out := []string{"Family dispute detected: contested estates demand litigation-ready representation."}
	for _, r := range attorneyRisks {
		if snap.Has(quiz.QComplications, r.value) {
			out = append(out, r.reason)
		}
	}
	return out
}

func waitlistReasons(snap quiz.Snapshot) []string {
	state := "your state"
	if a, ok := snap.Get(quiz.QState); ok && a.Value() != "" && a.Value() != quiz.StateOther {
		state = a.Value()
	}
	return []string{
		"We're expanding to " + state + " soon. Be the first to know.",
		"Waitlist members get $500 off when we launch and a free probate guide.",
	}
}
