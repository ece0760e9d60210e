package quiz

import (
	"strings"
	"testing"
)

func TestDefault_SeedCatalogPasses(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("seed catalog validation failed: %v", err)
	}
	if got := Default().Len(); got != 8 {
		t.Errorf("Len() = %d, want 8", got)
	}
}

func TestCatalog_Lookups(t *testing.T) {
	c := Default()

	q, ok := c.At(0)
	if !ok || q.ID != QEstateValue {
		t.Fatalf("At(0) = %q, %v; want %q", q.ID, ok, QEstateValue)
	}
	if _, ok := c.At(-1); ok {
		t.Error("At(-1) should be out of range")
	}
	if _, ok := c.At(c.Len()); ok {
		t.Error("At(Len()) should be out of range")
	}

	q, ok = c.ByID(QState)
	if !ok || q.Kind != KindDropdown {
		t.Fatalf("ByID(q7) = %+v, %v", q, ok)
	}
	if _, ok := c.ByID("q99"); ok {
		t.Error("ByID(q99) should not be found")
	}

	i, ok := c.IndexOf(QPriorities)
	if !ok || i != 5 {
		t.Errorf("IndexOf(q6) = %d, %v; want 5, true", i, ok)
	}
	if _, ok := c.IndexOf("missing"); ok {
		t.Error("IndexOf(missing) should not be found")
	}
}

func TestCatalog_QuestionsIsCopy(t *testing.T) {
	c := Default()
	qs := c.Questions()
	qs[0].ID = "mutated"
	if q, _ := c.At(0); q.ID != QEstateValue {
		t.Errorf("catalog mutated through Questions(): got %q", q.ID)
	}
}

func TestNewCatalog_Errors(t *testing.T) {
	single := func(id string, opts ...string) Question {
		q := Question{ID: id, Prompt: id, Kind: KindSingle}
		for _, v := range opts {
			q.Options = append(q.Options, Option{Value: v, Label: v})
		}
		return q
	}

	tests := []struct {
		name string
		qs   []Question
		want string
	}{
		{
			name: "empty",
			qs:   nil,
			want: "no questions",
		},
		{
			name: "duplicate question id",
			qs:   []Question{single("a", "x"), single("a", "y")},
			want: `duplicate question ID: "a"`,
		},
		{
			name: "duplicate option value",
			qs:   []Question{single("a", "x", "x")},
			want: `duplicate option value "x"`,
		},
		{
			name: "dangling jump",
			qs: func() []Question {
				q := single("a", "x")
				q.Route.Next = "nowhere"
				return []Question{q}
			}(),
			want: `nonexistent question "nowhere"`,
		},
		{
			name: "self jump",
			qs: func() []Question {
				q := single("a", "x")
				q.Route.Next = "a"
				return []Question{q, single("b", "y")}
			}(),
			want: "jumps to itself",
		},
		{
			name: "unknown kind",
			qs:   []Question{{ID: "a", Kind: "slider", Options: []Option{{Value: "x"}}}},
			want: "unknown interaction type",
		},
		{
			name: "negative points",
			qs: []Question{{ID: "a", Kind: KindSingle, Options: []Option{
				{Value: "x", Points: Points{Tier1: -1}},
			}}},
			want: "points must be >= 0",
		},
		{
			name: "unknown tier",
			qs: []Question{{ID: "a", Kind: KindSingle, Options: []Option{
				{Value: "x", Points: Points{"tier9": 1}},
			}}},
			want: `unknown tier "tier9"`,
		},
		{
			name: "route outcome is a tier",
			qs: []Question{{ID: "a", Kind: KindDropdown,
				Options: []Option{{Value: "x"}},
				Route:   Route{Policy: RouteValueOutcome, Values: []string{"x"}, Outcome: TierOutcome(Tier3)},
			}},
			want: "is not a special outcome",
		},
		{
			name: "route flag nobody carries",
			qs: []Question{{ID: "a", Kind: KindMulti,
				Options: []Option{{Value: "x", Flag: "F"}},
				Route:   Route{Policy: RouteFlagOutcome, Flags: []string{"G"}, Outcome: OutcomeWaitlist},
			}},
			want: `no option carries flag "G"`,
		},
		{
			name: "route value not an option",
			qs: []Question{{ID: "a", Kind: KindDropdown,
				Options: []Option{{Value: "x"}},
				Route:   Route{Policy: RouteValueOutcome, Values: []string{"y"}, Outcome: OutcomeWaitlist},
			}},
			want: `unknown option value "y"`,
		},
		{
			name: "form without fields",
			qs:   []Question{{ID: "a", Kind: KindForm}},
			want: "form declares no fields",
		},
		{
			name: "choice without options",
			qs:   []Question{{ID: "a", Kind: KindMulti}},
			want: "has no options",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCatalog(tt.qs)
			if err == nil {
				t.Fatalf("expected error, got catalog with %d questions", c.Len())
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestNewCatalog_ReportsAllProblems(t *testing.T) {
	qs := []Question{
		{ID: "a", Kind: KindSingle, Options: []Option{{Value: "x"}, {Value: "x"}}, Route: Route{Next: "zz"}},
	}
	_, err := NewCatalog(qs)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"duplicate option value", "nonexistent question"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestMustCatalog_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCatalog should panic on an invalid definition")
		}
	}()
	MustCatalog([]Question{{ID: "a", Kind: KindSingle}})
}

func TestSeed_OptionValuesUnique(t *testing.T) {
	for _, q := range Default().Questions() {
		seen := map[string]bool{}
		for _, v := range q.OptionValues() {
			if seen[v] {
				t.Errorf("question %s: duplicate value %q", q.ID, v)
			}
			seen[v] = true
		}
	}
}

func TestSeed_ContactRequiredFields(t *testing.T) {
	q, _ := Default().ByID(QContact)
	got := q.RequiredFields()
	if len(got) != 2 || got[0] != FieldFirstName || got[1] != FieldEmailAddress {
		t.Errorf("RequiredFields() = %v, want [firstName email]", got)
	}
}
