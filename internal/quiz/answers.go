package quiz

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Answer is the value recorded for one question: a single token for
// single-choice, dropdown and form questions, or an ordered list of tokens
// for multi-select and rank questions (list order is rank order).
//
// An Answer never exposes its backing slice, so copies are safe to share.
type Answer struct {
	values []string
	list   bool
}

// Single builds a single-valued answer.
func Single(v string) Answer {
	return Answer{values: []string{v}}
}

// List builds a list-valued answer. The slice is copied.
func List(vs ...string) Answer {
	return Answer{values: slices.Clone(vs), list: true}
}

// IsList reports whether the answer is list-valued.
func (a Answer) IsList() bool { return a.list }

// Value returns the single value, or the first list entry.
func (a Answer) Value() string {
	if len(a.values) == 0 {
		return ""
	}
	return a.values[0]
}

// Values returns a copy of all values in order.
func (a Answer) Values() []string {
	return slices.Clone(a.values)
}

// Len returns the number of values.
func (a Answer) Len() int { return len(a.values) }

// Contains reports whether v was selected.
func (a Answer) Contains(v string) bool {
	return slices.Contains(a.values, v)
}

// Equal reports whether two answers have the same shape and values.
func (a Answer) Equal(b Answer) bool {
	return a.list == b.list && slices.Equal(a.values, b.values)
}

// MarshalJSON encodes a single answer as a string and a list as an array.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.list {
		if a.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.values)
	}
	return json.Marshal(a.Value())
}

// UnmarshalJSON accepts either a string or an array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Single(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("answer must be a string or an array of strings")
	}
	*a = List(list...)
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (a *Answer) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = Single(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*a = List(list...)
		return nil
	default:
		return fmt.Errorf("line %d: answer must be a scalar or a list", node.Line)
	}
}

// Answers is the mutable answer store of one quiz run. It is confined to a
// single session and is not safe for concurrent use.
type Answers struct {
	m map[string]Answer
}

// NewAnswers returns an empty store.
func NewAnswers() *Answers {
	return &Answers{m: make(map[string]Answer)}
}

// Set records a, replacing any previous answer for the question entirely.
func (s *Answers) Set(questionID string, a Answer) {
	s.m[questionID] = a
}

// Get returns the current answer for a question.
func (s *Answers) Get(questionID string) (Answer, bool) {
	a, ok := s.m[questionID]
	return a, ok
}

// Len returns the number of answered questions.
func (s *Answers) Len() int { return len(s.m) }

// Snapshot returns an immutable copy of every answer recorded so far.
func (s *Answers) Snapshot() Snapshot {
	return Snapshot{m: maps.Clone(s.m)}
}

// Snapshot is a read-only view of an answer set. Routing and scoring only
// ever see snapshots, so no evaluation can change state another step
// depends on.
type Snapshot struct {
	m map[string]Answer
}

// NewSnapshot copies m into a snapshot.
func NewSnapshot(m map[string]Answer) Snapshot {
	return Snapshot{m: maps.Clone(m)}
}

// Get returns the answer for a question.
func (s Snapshot) Get(questionID string) (Answer, bool) {
	a, ok := s.m[questionID]
	return a, ok
}

// Has reports whether value was given for the question.
func (s Snapshot) Has(questionID, value string) bool {
	a, ok := s.m[questionID]
	return ok && a.Contains(value)
}

// Len returns the number of answered questions.
func (s Snapshot) Len() int { return len(s.m) }

// IDs returns the answered question IDs, sorted.
func (s Snapshot) IDs() []string {
	return slices.Sorted(maps.Keys(s.m))
}

// Map returns a copy of the underlying answers.
func (s Snapshot) Map() map[string]Answer {
	out := maps.Clone(s.m)
	if out == nil {
		out = make(map[string]Answer)
	}
	return out
}

// MarshalJSON encodes the snapshot as a question-id keyed object.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// UnmarshalJSON decodes a question-id keyed object.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var m map[string]Answer
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	s.m = m
	return nil
}

// ParseAnswers decodes a YAML or JSON document mapping question IDs to
// answers, e.g. `q1: under_100k` and `q3: [none]`.
func ParseAnswers(data []byte) (Snapshot, error) {
	var m map[string]Answer
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Snapshot{}, fmt.Errorf("parse answers: %w", err)
	}
	return Snapshot{m: m}, nil
}
