package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/probatequiz/internal/ui/theme"
)

// Marker selects how an OptionList shows chosen options.
type Marker int

const (
	MarkerRadio    Marker = iota // (•) for the chosen option
	MarkerCheckbox               // [x] for each chosen option
	MarkerRank                   // 1. 2. 3. in list order
)

// OptionItem is one row of an OptionList.
type OptionItem struct {
	Label  string
	Detail string // dimmed second line, may be empty
}

// OptionList is a vertical list with a cursor. It only moves the cursor;
// the owner decides what a key press means.
type OptionList struct {
	Items  []OptionItem
	Marker Marker
	Cursor int
}

// NewOptionList creates a list with the cursor on the first row.
func NewOptionList(items []OptionItem, marker Marker) OptionList {
	return OptionList{Items: items, Marker: marker}
}

// Update moves the cursor on up/down.
func (l OptionList) Update(msg tea.Msg) OptionList {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return l
	}
	switch kmsg.String() {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
	case "down", "j":
		if l.Cursor < len(l.Items)-1 {
			l.Cursor++
		}
	}
	return l
}

// View renders the list. chosen reports whether row i is selected.
func (l OptionList) View(chosen func(i int) bool) string {
	var b strings.Builder
	for i, item := range l.Items {
		cursor := "  "
		if i == l.Cursor {
			cursor = "▸ "
		}

		on := chosen != nil && chosen(i)
		var mark string
		switch l.Marker {
		case MarkerRadio:
			mark = "( ) "
			if on {
				mark = "(•) "
			}
		case MarkerCheckbox:
			mark = "[ ] "
			if on {
				mark = "[x] "
			}
		case MarkerRank:
			mark = fmt.Sprintf("%d. ", i+1)
		}

		style := theme.Unselected
		switch {
		case i == l.Cursor:
			style = theme.Selected
		case on:
			style = theme.Chosen
		}
		b.WriteString(style.Render(cursor + mark + item.Label))
		b.WriteString("\n")
		if item.Detail != "" {
			b.WriteString(theme.Hint.Render("      " + item.Detail))
			b.WriteString("\n")
		}
	}
	return b.String()
}
