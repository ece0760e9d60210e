// Package advisor turns a scoring result into a short, personal
// explanation. The explanation is always built from templates; when a
// language model is configured it rewrites the wording, and any failure
// falls back to the template.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/probatequiz/internal/llm"
	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/scoring"
	"github.com/abhisek/probatequiz/internal/tierinfo"
)

// Purpose labels advisor calls in the LLM event log.
const Purpose = "explain"

// Source says who wrote an Explanation.
type Source string

const (
	SourceTemplate Source = "template"
	SourceLLM      Source = "llm"
)

// Explanation is the personalised summary shown next to a result.
type Explanation struct {
	Outcome  quiz.Outcome `json:"outcome"`
	Headline string       `json:"headline"`
	Summary  string       `json:"summary"`
	Reasons  []string     `json:"reasons"`
	NextStep string       `json:"nextStep"`
	Timeline string       `json:"timeline"`
	Source   Source       `json:"source"`
}

// Advisor writes explanations. The zero provider means templates only.
type Advisor struct {
	catalog  *quiz.Catalog
	provider llm.Provider
}

// New returns an advisor over c. p may be nil.
func New(c *quiz.Catalog, p llm.Provider) *Advisor {
	return &Advisor{catalog: c, provider: p}
}

// Explain describes res for the person who gave answers. It never fails:
// an unusable model reply is logged and replaced by the template.
func (a *Advisor) Explain(ctx context.Context, answers quiz.Snapshot, res scoring.Result) Explanation {
	ex := Template(answers, res)
	if a.provider == nil {
		return ex
	}
	rewritten, err := a.rewrite(ctx, answers, ex)
	if err != nil {
		log.Warn().Err(err).Str("outcome", string(res.Primary)).Msg("advisor fell back to template")
		return ex
	}
	return rewritten
}

// Template builds the explanation without a model.
func Template(answers quiz.Snapshot, res scoring.Result) Explanation {
	info, _ := tierinfo.Lookup(res.Primary)
	ex := Explanation{
		Outcome:  res.Primary,
		NextStep: info.NextStep,
		Timeline: info.Timeline,
		Source:   SourceTemplate,
	}

	switch res.Primary {
	case quiz.OutcomeProbateAudit:
		ex.Headline = "Great news! You might avoid probate entirely."
		ex.Summary = "Based on your answers, full probate may not be required. Let's confirm the fastest, cheapest path forward."
		ex.Reasons = auditReasons(answers)
	case quiz.OutcomeAttorneyNeeded:
		ex.Headline = "Your situation requires legal expertise."
		ex.Summary = "Contested or complex estates can expose you to personal liability. Our attorney-led team should be involved from day one."
		ex.Reasons = attorneyReasons(answers)
	case quiz.OutcomeWaitlist:
		ex.Headline = "We're not in your state yet, but we will be soon!"
		ex.Summary = info.Description + "."
		ex.Reasons = waitlistReasons(answers)
	default:
		ex.Headline = fmt.Sprintf("Here's your personalized plan: %s.", info.Name)
		ex.Summary = "We matched your answers with the probate path that balances cost, speed and support."
		ex.Reasons = tierReasons(answers)
	}
	if ex.Reasons == nil {
		ex.Reasons = []string{}
	}
	return ex
}

var rewriteSchema = &llm.Schema{
	Name:        "probate-explanation",
	Description: "A warm, plain-language explanation of a probate service recommendation.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{"type": "string", "description": "One sentence, under 90 characters."},
			"summary":  map[string]any{"type": "string", "description": "Two sentences at most."},
			"reasons": map[string]any{
				"type":        "array",
				"description": "One short sentence per reason, grounded in the answers.",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    5,
			},
		},
		"required":             []string{"headline", "summary", "reasons"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You explain the result of a probate assessment to a grieving family member.
Write plainly and kindly. Do not give legal advice, do not promise outcomes,
do not mention prices or other services, and never contradict the recommendation.
Only use facts present in the answers and the draft.`

type rewriteReply struct {
	Headline string   `json:"headline"`
	Summary  string   `json:"summary"`
	Reasons  []string `json:"reasons"`
}

func (a *Advisor) rewrite(ctx context.Context, answers quiz.Snapshot, draft Explanation) (Explanation, error) {
	ctx = llm.WithPurpose(ctx, Purpose)
	resp, err := a.provider.Generate(ctx, llm.Request{
		System:    systemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: a.prompt(answers, draft)}},
		Schema:    rewriteSchema,
		MaxTokens: 600,
	})
	if err != nil {
		return Explanation{}, err
	}

	var reply rewriteReply
	if err := json.Unmarshal(resp.Content, &reply); err != nil {
		return Explanation{}, fmt.Errorf("decode explanation: %w", err)
	}
	if strings.TrimSpace(reply.Headline) == "" || len(reply.Reasons) == 0 {
		return Explanation{}, fmt.Errorf("explanation reply is empty")
	}

	out := draft
	out.Headline = strings.TrimSpace(reply.Headline)
	out.Summary = strings.TrimSpace(reply.Summary)
	out.Reasons = reply.Reasons
	out.Source = SourceLLM
	return out, nil
}

// prompt lists the recommendation, the draft and every answer by label.
func (a *Advisor) prompt(answers quiz.Snapshot, draft Explanation) string {
	var b strings.Builder
	info, _ := tierinfo.Lookup(draft.Outcome)
	fmt.Fprintf(&b, "Recommendation: %s (%s)\n\n", info.Name, info.Tagline)
	fmt.Fprintf(&b, "Draft headline: %s\nDraft summary: %s\nDraft reasons:\n", draft.Headline, draft.Summary)
	for _, r := range draft.Reasons {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	b.WriteString("\nAnswers:\n")
	for _, q := range a.catalog.Questions() {
		ans, ok := answers.Get(q.ID)
		if !ok || q.Kind == quiz.KindForm {
			continue
		}
		var labels []string
		for _, v := range ans.Values() {
			if opt, ok := q.Option(v); ok {
				labels = append(labels, opt.Label)
			} else {
				labels = append(labels, v)
			}
		}
		fmt.Fprintf(&b, "- %s %s\n", q.Prompt, strings.Join(labels, "; "))
	}
	return b.String()
}
