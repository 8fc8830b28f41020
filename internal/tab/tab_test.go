package tab

import (
	"testing"

	"github.com/screenmux/screenmux/internal/screenmsg"
)

func TestAddPaneFocusesFirstPaneForNewClients(t *testing.T) {
	tb := New(0, 0, "tab 1", true)
	tb.AddPane(screenmsg.PaneID{ID: 1}, "shell")
	tb.AddClient(1)

	focused, ok := tb.FocusedPane(1)
	if !ok {
		t.Fatal("expected a focused pane")
	}
	if focused.ID != 1 {
		t.Errorf("got pane %d, want 1", focused.ID)
	}
}

func TestClosePaneReassignsFocus(t *testing.T) {
	tb := New(0, 0, "tab 1", true)
	tb.AddPane(screenmsg.PaneID{ID: 1}, "a")
	tb.AddPane(screenmsg.PaneID{ID: 2}, "b")
	tb.AddClient(1)
	tb.SetFocusedPane(1, screenmsg.PaneID{ID: 1})

	tb.ClosePane(screenmsg.PaneID{ID: 1})

	focused, ok := tb.FocusedPane(1)
	if !ok {
		t.Fatal("expected client to still have a focused pane")
	}
	if focused.ID != 2 {
		t.Errorf("got pane %d, want 2", focused.ID)
	}
	if tb.PaneCount() != 1 {
		t.Errorf("got %d panes, want 1", tb.PaneCount())
	}
}

func TestClosingLastPaneClearsFocus(t *testing.T) {
	tb := New(0, 0, "tab 1", true)
	tb.AddPane(screenmsg.PaneID{ID: 1}, "a")
	tb.AddClient(1)

	tb.ClosePane(screenmsg.PaneID{ID: 1})

	if _, ok := tb.FocusedPane(1); ok {
		t.Error("expected no focused pane after closing the only pane")
	}
}

func TestFocusNextPaneWrapsAround(t *testing.T) {
	tb := New(0, 0, "tab 1", true)
	tb.AddPane(screenmsg.PaneID{ID: 1}, "a")
	tb.AddPane(screenmsg.PaneID{ID: 2}, "b")
	tb.AddClient(1)
	tb.SetFocusedPane(1, screenmsg.PaneID{ID: 2})

	tb.FocusNextPane(1)

	focused, _ := tb.FocusedPane(1)
	if focused.ID != 1 {
		t.Errorf("got pane %d, want wraparound to 1", focused.ID)
	}
}

func TestToggleSyncPanes(t *testing.T) {
	tb := New(0, 0, "tab 1", true)
	if tb.IsSyncPanesActive() {
		t.Fatal("expected sync panes off by default")
	}
	tb.ToggleSyncPanes()
	if !tb.IsSyncPanesActive() {
		t.Error("expected sync panes on after toggle")
	}
}
