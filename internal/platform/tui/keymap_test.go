package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/frogger/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{keyMsg(tea.KeyUp), core.ActionUp, false},
		{runeKey('w'), core.ActionUp, false},
		{runeKey('k'), core.ActionUp, false},
		{keyMsg(tea.KeyDown), core.ActionDown, false},
		{runeKey('s'), core.ActionDown, false},
		{runeKey('j'), core.ActionDown, false},
		{keyMsg(tea.KeyLeft), core.ActionLeft, false},
		{runeKey('a'), core.ActionLeft, false},
		{runeKey('h'), core.ActionLeft, false},
		{keyMsg(tea.KeyRight), core.ActionRight, false},
		{runeKey('d'), core.ActionRight, false},
		{runeKey('l'), core.ActionRight, false},
		{runeKey('p'), core.ActionPause, false},
		{runeKey('r'), core.ActionRestart, false},
		{keyMsg(tea.KeyEsc), core.ActionBack, false},
		{runeKey('b'), core.ActionBack, false},
		{runeKey('q'), core.ActionQuit, true},
		{keyMsg(tea.KeyCtrlC), core.ActionQuit, true},
		{runeKey('x'), core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := km.MapKey(tc.msg)
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{keyMsg(tea.KeyUp), MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{keyMsg(tea.KeyDown), MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{keyMsg(tea.KeyEnter), MenuActionSelect},
		{keyMsg(tea.KeyEsc), MenuActionBack},
		{keyMsg(tea.KeyTab), MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColored(2, 0, "cd", core.ColorRed)
	s.SetColored(0, 1, '@', core.Color(200)) // Unknown color falls back to default

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "cd") || !strings.Contains(out, "@") {
		t.Errorf("rendered output missing text: %q", out)
	}
}
