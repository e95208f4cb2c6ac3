package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"neighborly/internal/core"
	"neighborly/internal/planner"
)

func fallbackPlan() *core.Plan {
	req := core.PlanningRequest{EventType: "Block Party", Organizer: "Maple Street Association", EventDate: "bad-date"}.WithDefaults()
	return &core.Plan{
		Request:     req,
		Ideas:       core.Outcome[core.IdeaSet]{Value: planner.FallbackIdeas(), Source: core.SourceFallback, Reason: core.FailureConfiguration},
		Invitations: core.Outcome[[]core.Invitation]{Value: planner.FallbackInvitations(req), Source: core.SourceFallback, Reason: core.FailureConfiguration},
		Timeline:    core.Outcome[[]core.TimelinePeriod]{Value: planner.FallbackTimeline(req), Source: core.SourceFallback, Reason: core.FailureConfiguration},
	}
}

func press(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next
}

func TestNavigation(t *testing.T) {
	var m tea.Model = newModel(fallbackPlan())

	m = press(m, "up")
	if got := m.(model).selectedIdx; got != 0 {
		t.Errorf("selection should not go above first section, got %d", got)
	}

	m = press(m, "down")
	m = press(m, "j")
	m = press(m, "down")
	if got := m.(model).selectedIdx; got != 2 {
		t.Errorf("selection should stop at last section, got %d", got)
	}

	m = press(m, "k")
	if got := m.(model).selectedIdx; got != 1 {
		t.Errorf("expected Invitations selected, got %d", got)
	}
}

func TestView_ShowsSelectedSection(t *testing.T) {
	var m tea.Model = newModel(fallbackPlan())

	view := m.View()
	if !strings.Contains(view, "Outdoor Movie Night") {
		t.Error("initial view should show ideas")
	}

	m = press(m, "down")
	m = press(m, "down")
	view = m.View()
	if !strings.Contains(view, "Event Day") {
		t.Error("timeline view should show the event day period")
	}
	if !strings.Contains(view, "(fallback)") {
		t.Error("fallback sections should be marked")
	}
}

func TestQuit(t *testing.T) {
	var m tea.Model = newModel(fallbackPlan())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if next.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestWindowResize(t *testing.T) {
	var m tea.Model = newModel(fallbackPlan())

	m, _ = m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	if got := m.(model).width; got != 160 {
		t.Errorf("expected width 160, got %d", got)
	}
}
