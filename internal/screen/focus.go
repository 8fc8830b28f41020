package screen

import "github.com/screenmux/screenmux/internal/screenmsg"

// moveFocusLeftOrPreviousTab moves focus to the pane left of the current
// one within the active tab; if already at the tab's leftmost pane, it
// falls through to switching to the previous tab. Grounded on
// Screen::move_focus_left_or_previous_tab (this build's Tab has no spatial
// layout, so "left" degenerates to "previous in pane order").
func (s *Screen) moveFocusLeftOrPreviousTab(client screenmsg.ClientID) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	t, ok := s.getActiveTab(resolved)
	if !ok {
		return nil
	}
	panes := t.Panes()
	if focused, ok := t.FocusedPane(resolved); len(panes) <= 1 || (ok && focused == panes[0]) {
		return s.switchTabPrev(resolved)
	}
	t.FocusPreviousPane(resolved)
	return nil
}

// moveFocusRightOrNextTab is move_focus_left_or_previous_tab's mirror.
func (s *Screen) moveFocusRightOrNextTab(client screenmsg.ClientID) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	t, ok := s.getActiveTab(resolved)
	if !ok {
		return nil
	}
	panes := t.Panes()
	if focused, ok := t.FocusedPane(resolved); len(panes) <= 1 || (ok && focused == panes[len(panes)-1]) {
		return s.switchTabNext(resolved)
	}
	t.FocusNextPane(resolved)
	return nil
}

func (s *Screen) focusNextPane(client screenmsg.ClientID) {
	if t, ok := s.getActiveTab(client); ok {
		t.FocusNextPane(client)
	}
}

func (s *Screen) focusPreviousPane(client screenmsg.ClientID) {
	if t, ok := s.getActiveTab(client); ok {
		t.FocusPreviousPane(client)
	}
}
