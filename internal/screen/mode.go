package screen

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/screenmux/screenmux/internal/screenmsg"
)

var searchRelatedModes = map[screenmsg.InputMode]bool{
	screenmsg.ModeEnterSearch: true,
	screenmsg.ModeSearch:      true,
	screenmsg.ModeScroll:      true,
}

// changeMode applies a client's mode transition: entering RenameTab or
// RenamePane snapshots the tab name or the focused pane's title so it can
// be restored on cancel. Tabs in this build hold no search buffer or
// scrollback offset, so leaving a search-related mode or Scroll clears
// nothing. Grounded on Screen::change_mode.
func (s *Screen) changeMode(info screenmsg.ModeInfo, client screenmsg.ClientID) error {
	previous := s.defaultModeInfo.Mode
	if m, ok := s.modeInfo[client]; ok {
		previous = m.Mode
	}

	if searchRelatedModes[previous] && !searchRelatedModes[info.Mode] {
		if t, ok := s.getActiveTab(client); ok {
			_ = t // clearing search state is a tab-local concern; no search
			// buffer is modeled in this build, so there is nothing to clear.
		}
	}

	if info.Mode == screenmsg.ModeRenameTab {
		if t, ok := s.getActiveTab(client); ok {
			s.prevTabName[t.ID()] = t.Name()
		}
	}

	if info.Mode == screenmsg.ModeRenamePane {
		if t, ok := s.getActiveTab(client); ok {
			if pane, ok := t.FocusedPane(client); ok {
				s.prevPaneName[pane] = t.PaneTitle(pane)
			}
		}
	}

	s.style = info.Style
	s.modeInfo[client] = info
	for _, t := range s.tabs.Ordered() {
		t.ChangeModeInfo(info, client)
		t.MarkActiveForRerender(client)
	}
	return nil
}

// changeModeForAllClients applies a mode transition to every connected
// client and notifies each one so their local input layer follows along.
// Grounded on Screen::change_mode_for_all_clients.
func (s *Screen) changeModeForAllClients(ctx context.Context, info screenmsg.ModeInfo) error {
	clients := make([]screenmsg.ClientID, 0, len(s.activeTabIndices))
	for client := range s.activeTabIndices {
		if err := s.changeMode(info, client); err != nil {
			return err
		}
		clients = append(clients, client)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, client := range clients {
		c := client
		g.Go(func() error {
			return s.senders.Server.Send(gctx, screenmsg.ServerInstruction{
				Kind:   screenmsg.ServerSwitchToMode,
				Client: c,
				Mode:   info,
			})
		})
	}
	return g.Wait()
}

// undoActiveRenameTab restores the name snapshotted when RenameTab mode was
// entered, if the client actually changed it. Grounded on
// Screen::undo_active_rename_tab.
func (s *Screen) undoActiveRenameTab(client screenmsg.ClientID) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	t, ok := s.getActiveTab(resolved)
	if !ok {
		return nil
	}
	prev, ok := s.prevTabName[t.ID()]
	if ok && prev != t.Name() {
		t.SetName(prev)
	}
	return nil
}
