package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shrinking-snake/internal/storage"
)

func sendScoreboard(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sb
}

func TestScoreboardListsTopRuns(t *testing.T) {
	store := openTestStore(t)
	for _, score := range []int{3, 9, 5} {
		if _, err := store.SaveRun(storage.Run{Score: score, Side: 752, Length: 5 + score, Cause: "self-collision", Duration: time.Minute}); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 120, 30)
	if len(m.runs) != 3 {
		t.Fatalf("runs = %d, expected 3", len(m.runs))
	}
	if m.runs[0].Score != 9 {
		t.Errorf("top run score = %d, expected 9", m.runs[0].Score)
	}
	if !m.showSidebar {
		t.Error("sidebar should show on a wide screen")
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES", "Top runs", "Games:    3", "Best:     9"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestScoreboardToggleView(t *testing.T) {
	store := openTestStore(t)
	for _, score := range []int{8, 1} {
		if _, err := store.SaveRun(storage.Run{Score: score, Side: 800, Length: 5, Cause: "self-collision"}); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 80, 24)
	m = sendScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewRecent {
		t.Fatalf("tab should switch to recent runs")
	}
	if len(m.runs) != 2 || m.runs[0].Score != 1 {
		t.Errorf("recent runs = %+v, expected the last saved run first", m.runs)
	}

	m = sendScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewTop {
		t.Error("second tab should switch back to top runs")
	}
}

func TestScoreboardEmptyAndUnavailable(t *testing.T) {
	empty := NewScoreboardModel(openTestStore(t), 80, 24)
	if !strings.Contains(empty.View(), "No runs recorded yet") {
		t.Error("empty store should say no runs are recorded")
	}

	missing := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(missing.View(), "unavailable") {
		t.Error("nil store should say scores are unavailable")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	back := sendScoreboard(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.IsGoingBack() || back.IsQuitting() {
		t.Error("esc should go back without quitting")
	}

	quit := sendScoreboard(t, m, runeKey('q'))
	if !quit.IsQuitting() || quit.IsGoingBack() {
		t.Error("q should quit without going back")
	}
}

func TestScoreboardResizeHidesSidebar(t *testing.T) {
	m := NewScoreboardModel(nil, 120, 30)
	m = sendScoreboard(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if m.showSidebar {
		t.Error("sidebar should hide on a narrow screen")
	}
}
