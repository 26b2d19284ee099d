package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "None"},
		{ActionUp, "Up"},
		{ActionLeft, "Left"},
		{ActionRestart, "Restart"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.want {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.want)
		}
	}
}

func TestActionIsDirectional(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if !a.IsDirectional() {
			t.Errorf("%v should be directional", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionPause, ActionRestart, ActionQuit, ActionBack, ActionConfirm} {
		if a.IsDirectional() {
			t.Errorf("%v should not be directional", a)
		}
	}
}
