package session

import (
	"fmt"
	"math"
)

// Progress is the position of a session within the catalog.
type Progress struct {
	Position int     `json:"position"` // 1-based
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

// Label returns e.g. "Question 3 of 8 (38%)".
func (p Progress) Label() string {
	return fmt.Sprintf("Question %d of %d (%d%%)", p.Position, p.Total, int(math.Round(p.Percent)))
}

// Fraction returns the progress in [0, 1].
func (p Progress) Fraction() float64 {
	return p.Percent / 100
}

func progressAt(index, total int) Progress {
	if total == 0 {
		return Progress{}
	}
	pos := index + 1
	if pos > total {
		pos = total
	}
	return Progress{
		Position: pos,
		Total:    total,
		Percent:  float64(pos) / float64(total) * 100,
	}
}
