package quiz

import "slices"

// Catalog is the ordered, immutable list of questions. The zero value is
// empty; build one with NewCatalog.
type Catalog struct {
	questions []Question
	index     map[string]int
}

// NewCatalog validates qs and builds a catalog over a private copy of it.
// All definition problems are reported together.
func NewCatalog(qs []Question) (*Catalog, error) {
	if err := validateQuestions(qs); err != nil {
		return nil, err
	}
	c := &Catalog{
		questions: slices.Clone(qs),
		index:     make(map[string]int, len(qs)),
	}
	for i, q := range c.questions {
		c.index[q.ID] = i
	}
	return c, nil
}

// MustCatalog is like NewCatalog but panics on a definition error.
func MustCatalog(qs []Question) *Catalog {
	c, err := NewCatalog(qs)
	if err != nil {
		panic(err)
	}
	return c
}

// At returns the question at position i.
func (c *Catalog) At(i int) (Question, bool) {
	if i < 0 || i >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[i], true
}

// ByID returns the question with the given id.
func (c *Catalog) ByID(id string) (Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// IndexOf returns the position of the question with the given id.
func (c *Catalog) IndexOf(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Len returns the number of questions.
func (c *Catalog) Len() int { return len(c.questions) }

// Questions returns the questions in order. The slice is a copy.
func (c *Catalog) Questions() []Question {
	return slices.Clone(c.questions)
}

// Validate re-checks the catalog definition.
func (c *Catalog) Validate() error {
	return validateQuestions(c.questions)
}
