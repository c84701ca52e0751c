package core

import "testing"

func TestActionFromKeyCode(t *testing.T) {
	tests := []struct {
		code int
		want Action
	}{
		{38, ActionUp},
		{40, ActionDown},
		{37, ActionLeft},
		{39, ActionRight},
		{32, ActionNone},
		{0, ActionNone},
	}

	for _, tc := range tests {
		if got := ActionFromKeyCode(tc.code); got != tc.want {
			t.Errorf("ActionFromKeyCode(%d) = %v, expected %v", tc.code, got, tc.want)
		}
	}
}

func TestInputFrameKeepsDirectionOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionPause)
	f.Set(ActionLeft)

	dirs := f.Directions()
	if len(dirs) != 2 || dirs[0] != ActionUp || dirs[1] != ActionLeft {
		t.Errorf("Directions() = %v, expected [Up Left]", dirs)
	}
	if !f.Has(ActionPause) {
		t.Error("Pause should be recorded")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionUp) || len(f.Directions()) != 0 {
		t.Error("Clear should drop all actions")
	}
	if !clone.Has(ActionUp) || len(clone.Directions()) != 2 {
		t.Error("Clone should be independent of the original")
	}
}
