package quiz

import (
	"fmt"
	"strings"
)

// validateQuestions performs all structural checks on a question set.
// Returns a combined error describing all problems found, or nil if valid.
func validateQuestions(qs []Question) error {
	var errs []string

	if len(qs) == 0 {
		return fmt.Errorf("catalog validation failed:\n  catalog has no questions")
	}

	ids := make(map[string]bool, len(qs))
	for _, q := range qs {
		if q.ID == "" {
			errs = append(errs, "question with empty ID")
			continue
		}
		if ids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		ids[q.ID] = true
	}

	for _, q := range qs {
		prefix := fmt.Sprintf("question %q", q.ID)

		if !q.Kind.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown interaction type %q", prefix, q.Kind))
		}
		if q.Kind == KindForm {
			if len(q.Fields) == 0 {
				errs = append(errs, fmt.Sprintf("%s: form declares no fields", prefix))
			}
		} else if q.Kind.Valid() && len(q.Options) == 0 {
			errs = append(errs, fmt.Sprintf("%s: %s question has no options", prefix, q.Kind))
		}

		values := make(map[string]bool, len(q.Options))
		flags := make(map[string]bool)
		for _, o := range q.Options {
			if o.Value == "" {
				errs = append(errs, fmt.Sprintf("%s: option with empty value", prefix))
				continue
			}
			if values[o.Value] {
				errs = append(errs, fmt.Sprintf("%s: duplicate option value %q", prefix, o.Value))
			}
			values[o.Value] = true
			if o.Flag != "" {
				flags[o.Flag] = true
			}
			for t, p := range o.Points {
				if !t.Valid() {
					errs = append(errs, fmt.Sprintf("%s option %q: unknown tier %q", prefix, o.Value, t))
				}
				if p < 0 {
					errs = append(errs, fmt.Sprintf("%s option %q: points must be >= 0, got %d for %s", prefix, o.Value, p, t))
				}
			}
		}

		fields := make(map[string]bool, len(q.Fields))
		for _, f := range q.Fields {
			if fields[f.Name] {
				errs = append(errs, fmt.Sprintf("%s: duplicate field %q", prefix, f.Name))
			}
			fields[f.Name] = true
		}

		errs = append(errs, validateRoute(q, ids, values, flags)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateRoute(q Question, ids, values, flags map[string]bool) []string {
	var errs []string
	r := q.Route
	prefix := fmt.Sprintf("question %q route", q.ID)

	if r.Next != "" {
		switch {
		case r.Next == q.ID:
			errs = append(errs, fmt.Sprintf("%s: jumps to itself", prefix))
		case !ids[r.Next]:
			errs = append(errs, fmt.Sprintf("%s: references nonexistent question %q", prefix, r.Next))
		}
	}

	switch r.Policy {
	case RouteLinear:
		if r.Outcome != "" || len(r.Flags) > 0 || len(r.Values) > 0 {
			errs = append(errs, fmt.Sprintf("%s: linear route must not declare an outcome, flags or values", prefix))
		}
		return errs
	case RouteFlagOutcome:
		if len(r.Flags) == 0 {
			errs = append(errs, fmt.Sprintf("%s: flag-outcome route declares no flags", prefix))
		}
		for _, f := range r.Flags {
			if !flags[f] {
				errs = append(errs, fmt.Sprintf("%s: no option carries flag %q", prefix, f))
			}
		}
	case RouteValueOutcome:
		if len(r.Values) == 0 {
			errs = append(errs, fmt.Sprintf("%s: value-outcome route declares no values", prefix))
		}
		for _, v := range r.Values {
			if !values[v] {
				errs = append(errs, fmt.Sprintf("%s: unknown option value %q", prefix, v))
			}
		}
	default:
		return append(errs, fmt.Sprintf("%s: unknown policy %s", prefix, r.Policy))
	}

	if !r.Outcome.IsSpecial() {
		errs = append(errs, fmt.Sprintf("%s: outcome %q is not a special outcome", prefix, r.Outcome))
	}
	if q.Kind == KindForm {
		errs = append(errs, fmt.Sprintf("%s: form questions cannot terminate early", prefix))
	}
	return errs
}
