package quiz

import "slices"

// NoneValue is the multi-select option that excludes every other choice.
const NoneValue = "none"

// ToggleSelection returns the new selection after turning value on or off.
// Selecting NoneValue clears everything else; selecting anything else clears
// NoneValue. The input slice is not modified.
func ToggleSelection(current []string, value string, on bool) []string {
	if !on {
		return slices.DeleteFunc(slices.Clone(current), func(v string) bool { return v == value })
	}
	if value == NoneValue {
		return []string{NoneValue}
	}
	out := slices.DeleteFunc(slices.Clone(current), func(v string) bool { return v == NoneValue })
	if !slices.Contains(out, value) {
		out = append(out, value)
	}
	return out
}

// PromoteRank moves value to the front of order, keeping the relative order
// of the rest. Unknown values leave the order unchanged.
func PromoteRank(order []string, value string) []string {
	i := slices.Index(order, value)
	if i < 0 {
		return slices.Clone(order)
	}
	out := make([]string, 0, len(order))
	out = append(out, value)
	out = append(out, order[:i]...)
	out = append(out, order[i+1:]...)
	return out
}
