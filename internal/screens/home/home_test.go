package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/router"
	"github.com/abhisek/probatequiz/internal/scoring"
	"github.com/abhisek/probatequiz/internal/screens/assessment"
	"github.com/abhisek/probatequiz/internal/screens/tiers"
)

func newTestHome() *HomeScreen {
	c := quiz.Default()
	return New(assessment.Deps{Catalog: c, Engine: scoring.New(c)})
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func down() tea.KeyPressMsg  { return tea.KeyPressMsg{Code: tea.KeyDown} }

func TestHome_StartAssessment(t *testing.T) {
	h := newTestHome()
	_, cmd := h.Update(enter())
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*assessment.Screen); !ok {
		t.Errorf("expected assessment screen, got %T", msg.Screen)
	}
}

func TestHome_Tiers(t *testing.T) {
	h := newTestHome()
	h.Update(down())
	_, cmd := h.Update(enter())
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*tiers.Screen); !ok {
		t.Errorf("expected tiers screen, got %T", msg.Screen)
	}
}

func TestHome_Quit(t *testing.T) {
	h := newTestHome()
	h.Update(down())
	h.Update(down())
	_, cmd := h.Update(enter())
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
}

func TestHome_View(t *testing.T) {
	if newTestHome().View(100, 30) == "" {
		t.Error("expected a view")
	}
}

func TestRenderBanner_Compact(t *testing.T) {
	if got := RenderBanner(20); !strings.Contains(got, "P R O B A T E") {
		t.Errorf("narrow banner = %q", got)
	}
	if got := RenderBanner(80); strings.Contains(got, "P R O B A T E") {
		t.Error("wide terminals get the block wordmark")
	}
}
