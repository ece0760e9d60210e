package scoring

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/abhisek/probatequiz/internal/quiz"
)

// Scores is the per-tier point vector, indexed by tier declaration order.
type Scores [quiz.NumTiers]int

// Get returns the points of t; unknown tiers score zero.
func (s Scores) Get(t quiz.Tier) int {
	i := quiz.TierIndex(t)
	if i < 0 {
		return 0
	}
	return s[i]
}

// Add adds n points to t. Unknown tiers are ignored.
func (s *Scores) Add(t quiz.Tier, n int) {
	if i := quiz.TierIndex(t); i >= 0 {
		s[i] += n
	}
}

// Set overwrites the points of t.
func (s *Scores) Set(t quiz.Tier, n int) {
	if i := quiz.TierIndex(t); i >= 0 {
		s[i] = n
	}
}

// addPoints adds weight times every entry of p.
func (s *Scores) addPoints(p quiz.Points, weight int) {
	for t, n := range p {
		s.Add(t, n*weight)
	}
}

// Ranked returns the tiers ordered by score, highest first. Equal scores
// keep declaration order.
func (s Scores) Ranked() []quiz.Tier {
	tiers := quiz.AllTiers()
	slices.SortStableFunc(tiers, func(a, b quiz.Tier) int {
		return s.Get(b) - s.Get(a)
	})
	return tiers
}

// Top returns the highest-scoring tier.
func (s Scores) Top() quiz.Tier {
	return s.Ranked()[0]
}

// Total returns the sum of all tier scores.
func (s Scores) Total() int {
	n := 0
	for _, v := range s {
		n += v
	}
	return n
}

// Map returns the scores keyed by tier.
func (s Scores) Map() map[quiz.Tier]int {
	m := make(map[quiz.Tier]int, quiz.NumTiers)
	for i, t := range quiz.AllTiers() {
		m[t] = s[i]
	}
	return m
}

// MarshalJSON encodes the vector as {"tier1": n, ...}.
func (s Scores) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// UnmarshalJSON decodes a tier-keyed object. Missing tiers are zero.
func (s *Scores) UnmarshalJSON(data []byte) error {
	var m map[quiz.Tier]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = Scores{}
	for t, n := range m {
		if !t.Valid() {
			return fmt.Errorf("unknown tier %q", t)
		}
		s.Set(t, n)
	}
	return nil
}
