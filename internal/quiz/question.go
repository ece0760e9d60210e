package quiz

// Kind is the interaction type of a question.
type Kind string

const (
	KindSingle   Kind = "single"
	KindMulti    Kind = "multi-select"
	KindDropdown Kind = "dropdown"
	KindForm     Kind = "form"
	KindRank     Kind = "rank"
)

// Valid reports whether k is a known interaction type.
func (k Kind) Valid() bool {
	switch k {
	case KindSingle, KindMulti, KindDropdown, KindForm, KindRank:
		return true
	}
	return false
}

// IsList reports whether answers to this kind are ordered lists of values.
func (k Kind) IsList() bool {
	return k == KindMulti || k == KindRank
}

// NeedsConfirm reports whether the user must explicitly confirm before the
// flow advances. Only single-choice questions auto-advance.
func (k Kind) NeedsConfirm() bool {
	return k != KindSingle
}

// Points maps tiers to the points an option contributes.
type Points map[Tier]int

// Option is one selectable answer of a question.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Points      Points `json:"points,omitempty"`
	Flag        string `json:"flag,omitempty"`
	Explainer   string `json:"explainer,omitempty"`
	Description string `json:"description,omitempty"`
	Quote       string `json:"quote,omitempty"`
}

// FieldType is the input type of a form field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "tel"
	FieldCheckbox FieldType = "checkbox"
)

// Field is one input of a form question.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// Question is an immutable catalog entry.
type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	Subtitle      string   `json:"subtitle,omitempty"`
	HelperText    string   `json:"helperText,omitempty"`
	HelperTooltip string   `json:"helperTooltip,omitempty"`
	Kind          Kind     `json:"kind"`
	Options       []Option `json:"options,omitempty"`
	Fields        []Field  `json:"fields,omitempty"`
	Route         Route    `json:"route"`
}

// Option returns the option whose value is v.
func (q Question) Option(v string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == v {
			return o, true
		}
	}
	return Option{}, false
}

// OptionValues returns the option values in declaration order.
func (q Question) OptionValues() []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Value
	}
	return out
}

// RequiredFields returns the names of required form fields.
func (q Question) RequiredFields() []string {
	var out []string
	for _, f := range q.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}
