package screen

import (
	"context"
	"fmt"

	"github.com/screenmux/screenmux/internal/screenmsg"
	"github.com/screenmux/screenmux/internal/tab"
)

// newTab creates a tab, attaches client to it (mirrored sessions move every
// connected client), and makes it the client's active tab. Grounded on
// Screen::new_tab.
func (s *Screen) newTab(client screenmsg.ClientID, layout screenmsg.PaneLayoutSpec, newPaneIDs []uint32) error {
	resolved, ok := s.resolveClient(client)
	if ok {
		client = resolved
	}

	id := s.tabs.NextTabID()
	position := s.tabs.Len()
	t := tab.New(id, position, "", s.drawPaneFrames)
	for i, title := range layout.PaneTitles {
		paneID := screenmsg.PaneID{ID: nextID(newPaneIDs, i, &s.nextTerminalPane)}
		t.AddPane(paneID, title)
	}
	if len(layout.PaneTitles) == 0 {
		t.AddPane(screenmsg.PaneID{ID: nextID(newPaneIDs, 0, &s.nextTerminalPane)}, "")
	}
	t.Resize(s.size)

	if s.sessionMirrored {
		if active, ok := s.getActiveTab(client); ok {
			for _, c := range active.Clients() {
				active.RemoveClient(c)
				t.AddClient(c)
			}
		}
		for c := range s.connectedClients {
			s.updateClientTabFocus(c, id)
		}
	} else if active, ok := s.getActiveTab(client); ok {
		active.RemoveClient(client)
		t.AddClient(client)
		s.updateClientTabFocus(client, id)
	} else {
		t.AddClient(client)
	}

	s.tabs.Insert(t)
	if _, ok := s.activeTabIndices[client]; !ok {
		return s.addClient(client)
	}
	return nil
}

func nextID(explicit []uint32, i int, counter *uint32) uint32 {
	if i < len(explicit) {
		return explicit[i]
	}
	*counter++
	return *counter
}

// updateClientTabFocus records client's new active tab and pushes the
// tab it came from onto its history stack, deduplicating the destination.
func (s *Screen) updateClientTabFocus(client screenmsg.ClientID, newTab screenmsg.TabID) {
	old, had := s.activeTabIndices[client]
	s.activeTabIndices[client] = newTab
	if !had {
		return
	}
	hist := s.tabHistory[client]
	filtered := hist[:0]
	for _, id := range hist {
		if id != newTab {
			filtered = append(filtered, id)
		}
	}
	s.tabHistory[client] = append(filtered, old)
}

// addClient attaches a newly connecting client to the first existing
// client's active tab, falling back to tab 0, then to the lowest tab id.
// Grounded on Screen::add_client.
func (s *Screen) addClient(client screenmsg.ClientID) error {
	var history []screenmsg.TabID
	for _, h := range s.tabHistory {
		history = append([]screenmsg.TabID(nil), h...)
		break
	}

	var targetTab screenmsg.TabID
	found := false
	for _, id := range s.activeTabIndices {
		targetTab = id
		found = true
		break
	}
	if !found {
		if _, ok := s.tabs.Get(0); ok {
			targetTab, found = 0, true
		} else {
			for _, t := range s.tabs.Ordered() {
				targetTab, found = t.ID(), true
				break
			}
		}
	}
	if !found {
		return fmt.Errorf("screen: no tab to attach client %s to", client)
	}

	s.activeTabIndices[client] = targetTab
	s.connectedClients[client] = struct{}{}
	s.tabHistory[client] = history

	t, ok := s.tabs.Get(targetTab)
	if !ok {
		return fmt.Errorf("screen: attach target tab %s missing", targetTab)
	}
	t.AddClient(client)
	return nil
}

// removeClient detaches a disconnecting client from every tab and its own
// bookkeeping. Grounded on Screen::remove_client.
func (s *Screen) removeClient(client screenmsg.ClientID) {
	for _, t := range s.tabs.Ordered() {
		t.RemoveClient(client)
	}
	delete(s.activeTabIndices, client)
	delete(s.tabHistory, client)
	delete(s.connectedClients, client)
	delete(s.modeInfo, client)
}

// switchActiveTab moves client (or, in a mirrored session, every client)
// from its current tab to the tab at newPos. Grounded on
// Screen::switch_active_tab.
func (s *Screen) switchActiveTab(newPos int, client screenmsg.ClientID) error {
	target, ok := s.tabs.TabAtPosition(newPos)
	if !ok {
		return nil
	}
	current, ok := s.getActiveTab(client)
	if !ok {
		return fmt.Errorf("screen: no active tab for client %s", client)
	}
	if current.Position() == newPos {
		return nil
	}

	if s.sessionMirrored {
		for _, c := range current.Clients() {
			current.RemoveClient(c)
			target.AddClient(c)
		}
		for c := range s.connectedClients {
			s.updateClientTabFocus(c, target.ID())
		}
	} else {
		current.RemoveClient(client)
		target.AddClient(client)
		s.updateClientTabFocus(client, target.ID())
	}
	return nil
}

// switchTabNext/switchTabPrev move a client's focus to the adjacent tab by
// position, wrapping around. Grounded on Screen::switch_tab_next/prev.
func (s *Screen) switchTabNext(client screenmsg.ClientID) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	active, ok := s.getActiveTab(resolved)
	if !ok {
		return fmt.Errorf("screen: no active tab for client %s", resolved)
	}
	if s.tabs.Len() == 0 {
		return nil
	}
	newPos := (active.Position() + 1) % s.tabs.Len()
	return s.switchActiveTab(newPos, resolved)
}

func (s *Screen) switchTabPrev(client screenmsg.ClientID) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	active, ok := s.getActiveTab(resolved)
	if !ok {
		return fmt.Errorf("screen: no active tab for client %s", resolved)
	}
	if s.tabs.Len() == 0 {
		return nil
	}
	newPos := active.Position() - 1
	if newPos < 0 {
		newPos = s.tabs.Len() - 1
	}
	return s.switchActiveTab(newPos, resolved)
}

// goToTab switches to the tab at the given 1-based index, saturating to 0
// rather than underflowing when index is 0. Grounded on Screen::go_to_tab's
// tab_index.saturating_sub(1).
func (s *Screen) goToTab(index int, client screenmsg.ClientID) error {
	pos := index - 1
	if pos < 0 {
		pos = 0
	}
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	return s.switchActiveTab(pos, resolved)
}

// toggleTab pops the client's previous tab off its history stack and
// switches to it. Grounded on Screen::toggle_tab / get_previous_tab.
func (s *Screen) toggleTab(client screenmsg.ClientID) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	hist := s.tabHistory[resolved]
	if len(hist) == 0 {
		return nil
	}
	prevID := hist[len(hist)-1]
	s.tabHistory[resolved] = hist[:len(hist)-1]

	prev, ok := s.tabs.Get(prevID)
	if !ok {
		return nil
	}
	return s.goToTab(prev.Position()+1, resolved)
}

// closeTab closes client's currently active tab. Grounded on
// Screen::close_tab / close_tab_at_index.
func (s *Screen) closeTab(ctx context.Context, client screenmsg.ClientID) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	t, ok := s.getActiveTab(resolved)
	if !ok {
		return fmt.Errorf("screen: no active tab for client %s", resolved)
	}
	return s.closeTabAtIndex(ctx, t.ID())
}

func (s *Screen) closeTabAtIndex(ctx context.Context, id screenmsg.TabID) error {
	t, ok := s.tabs.Get(id)
	if !ok {
		return fmt.Errorf("screen: no tab %s to close", id)
	}
	closedPosition := t.Position()
	paneIDs := t.Panes()
	s.tabs.Remove(id)

	_ = s.senders.Pty.Send(ctx, screenmsg.PtyInstruction{Kind: screenmsg.PtyCloseTab, ClosedPanes: paneIDs})

	if s.tabs.Len() == 0 {
		s.activeTabIndices = make(map[screenmsg.ClientID]screenmsg.TabID)
		_ = s.senders.Server.Send(ctx, screenmsg.ServerInstruction{Kind: screenmsg.ServerRenderNone})
		return nil
	}

	var displaced []screenmsg.ClientID
	for c, active := range s.activeTabIndices {
		if active == id {
			displaced = append(displaced, c)
		}
	}
	for _, c := range displaced {
		delete(s.activeTabIndices, c)
	}
	s.moveClientsFromClosedTab(displaced)

	for _, remaining := range s.tabs.Ordered() {
		if remaining.Position() > closedPosition {
			remaining.SetPosition(remaining.Position() - 1)
		}
	}
	return nil
}

// moveClientsFromClosedTab rehomes clients whose tab just closed: to the
// tab on top of their own history stack if it still exists, else to the
// session's first tab. Grounded on Screen::move_clients_from_closed_tab.
func (s *Screen) moveClientsFromClosedTab(clients []screenmsg.ClientID) {
	ordered := s.tabs.Ordered()
	if len(ordered) == 0 {
		return
	}
	firstTab := ordered[0]

	for _, c := range clients {
		hist := s.tabHistory[c]
		placed := false
		if len(hist) > 0 {
			prevID := hist[len(hist)-1]
			if prevTab, ok := s.tabs.Get(prevID); ok {
				s.tabHistory[c] = hist[:len(hist)-1]
				s.activeTabIndices[c] = prevID
				prevTab.AddClient(c)
				placed = true
			}
		}
		if !placed {
			s.activeTabIndices[c] = firstTab.ID()
			firstTab.AddClient(c)
		}
	}
}

// updateTabs pushes a TabInfo snapshot per connected client to the plugin
// host. Grounded on Screen::update_tabs.
func (s *Screen) updateTabs(ctx context.Context) error {
	for client, activeID := range s.activeTabIndices {
		var infos []screenmsg.TabInfo
		for _, t := range s.tabs.Ordered() {
			var others []screenmsg.ClientID
			if !s.sessionMirrored {
				for c, id := range s.activeTabIndices {
					if id == t.ID() && c != client {
						others = append(others, c)
					}
				}
			}
			infos = append(infos, screenmsg.TabInfo{
				Position:                t.Position(),
				Name:                    t.Name(),
				Active:                  t.ID() == activeID,
				IsFullscreenActive:      t.IsFullscreenActive(),
				IsSyncPanesActive:       t.IsSyncPanesActive(),
				AreFloatingPanesVisible: t.AreFloatingPanesVisible(),
				OtherFocusedClients:     others,
			})
		}
		_ = s.senders.Plugin.Send(ctx, screenmsg.PluginInstruction{
			Client: &client,
			Event:  screenmsg.Event{Kind: screenmsg.EventTabUpdate, Tabs: infos},
		})
	}
	return nil
}

// updateActiveTabName applies one input byte sequence to the active tab's
// pending name edit: NUL clears, DEL/backspace pops a character, printable
// ASCII appends, anything else is ignored. Grounded on
// Screen::update_active_tab_name.
func (s *Screen) updateActiveTabName(buf []byte, client screenmsg.ClientID) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	t, ok := s.getActiveTab(resolved)
	if !ok {
		return fmt.Errorf("screen: no active tab for client %s", resolved)
	}

	switch {
	case len(buf) == 1 && buf[0] == 0x00:
		t.SetName("")
	case len(buf) == 1 && (buf[0] == 0x7F || buf[0] == 0x08):
		name := t.Name()
		if len(name) > 0 {
			t.SetName(name[:len(name)-1])
		}
	default:
		allPrintable := len(buf) > 0
		for _, b := range buf {
			if b < 0x20 || b > 0x7E {
				allPrintable = false
				break
			}
		}
		if allPrintable {
			t.SetName(t.Name() + string(buf))
		}
	}
	return nil
}
