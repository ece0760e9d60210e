package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/router"
	"github.com/abhisek/probatequiz/internal/scoring"
	"github.com/abhisek/probatequiz/internal/screens/tiers"
)

func newTestModel() AppModel {
	c := quiz.Default()
	return newAppModel(Options{Catalog: c, Engine: scoring.New(c)})
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
}

func TestApp_EscPopsToHome(t *testing.T) {
	m := newTestModel()
	esc := tea.KeyPressMsg{Code: tea.KeyEscape}

	if _, cmd := m.Update(esc); cmd != nil {
		t.Error("esc on the home screen does nothing")
	}

	m.Update(router.PushScreenMsg{Screen: tiers.New()})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	_, cmd := m.Update(esc)
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestApp_TracksWindowSize(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	am := updated.(AppModel)
	if am.width != 100 || am.height != 40 {
		t.Errorf("size = %dx%d", am.width, am.height)
	}
}
