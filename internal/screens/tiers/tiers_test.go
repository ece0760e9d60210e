package tiers

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestTiers_CursorShowsDetails(t *testing.T) {
	s := New()
	if !strings.Contains(s.View(120, 40), "Perfect for simple estates") {
		t.Error("expected DIY details first")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	view := s.View(120, 40)
	if !strings.Contains(view, "AI handles the paperwork") {
		t.Errorf("expected tier 2 details:\n%s", view)
	}
	if !strings.Contains(view, "Court hearing support") {
		t.Error("tall terminals show the comparison")
	}
}
