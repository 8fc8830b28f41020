package screen

import (
	"context"
	"fmt"

	"github.com/screenmux/screenmux/internal/frame"
	"github.com/screenmux/screenmux/internal/screenmsg"
	"github.com/screenmux/screenmux/internal/tab"
)

// newPane spawns a pty-backed pane in the target tab (a client's active tab
// by default) and focuses it for that client.
func (s *Screen) newPane(ctx context.Context, target screenmsg.ClientOrTabIndex, run *screenmsg.RunCommand) error {
	t, client, err := s.resolveTarget(target)
	if err != nil {
		return err
	}

	s.nextTerminalPane++
	paneID := screenmsg.PaneID{ID: s.nextTerminalPane}
	title := ""
	if run != nil {
		title = run.Command
	}
	t.AddPane(paneID, title)
	if client != nil {
		t.SetFocusedPane(*client, paneID)
	}

	instr := screenmsg.PtyInstruction{Kind: screenmsg.PtySpawnTerminal, Pane: paneID, Size: s.size}
	if run != nil {
		instr.RunCommand = *run
	}
	return s.senders.Pty.Send(ctx, instr)
}

func (s *Screen) resolveTarget(target screenmsg.ClientOrTabIndex) (t tab.Capability, client *screenmsg.ClientID, err error) {
	if target.TabID != nil {
		tb, ok := s.tabs.Get(*target.TabID)
		if !ok {
			return nil, nil, fmt.Errorf("screen: tab %s not found", *target.TabID)
		}
		return tb, nil, nil
	}
	if target.ClientID != nil {
		resolved, ok := s.resolveClient(*target.ClientID)
		if !ok {
			return nil, nil, fmt.Errorf("screen: no client to target")
		}
		tb, ok := s.getActiveTab(resolved)
		if !ok {
			return nil, nil, fmt.Errorf("screen: no active tab for client %s", resolved)
		}
		return tb, &resolved, nil
	}
	return nil, nil, fmt.Errorf("screen: empty pane target")
}

// closePane closes one pane in client's active tab, asks the pty subsystem
// to tear it down, and auto-closes the tab if it was the last pane.
func (s *Screen) closePane(ctx context.Context, client screenmsg.ClientID, pane screenmsg.PaneID) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	t, ok := s.getActiveTab(resolved)
	if !ok {
		return fmt.Errorf("screen: no active tab for client %s", resolved)
	}
	closed := t.ClosePane(pane)
	if len(closed) > 0 {
		_ = s.senders.Pty.Send(ctx, screenmsg.PtyInstruction{Kind: screenmsg.PtyClosePane, Pane: pane})
	}
	if t.PaneCount() == 0 {
		return s.closeTabAtIndex(ctx, t.ID())
	}
	return nil
}

// closeFocusedPane closes whichever pane client currently has focused.
func (s *Screen) closeFocusedPane(ctx context.Context, client screenmsg.ClientID) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	t, ok := s.getActiveTab(resolved)
	if !ok {
		return nil
	}
	pane, ok := t.FocusedPane(resolved)
	if !ok {
		return nil
	}
	return s.closePane(ctx, resolved, pane)
}

// writeCharacter delivers input bytes to a client's focused pane, or to
// every pane in the active tab when sync-panes is on. Grounded on the
// spec's sync-panes broadcast behavior, mirrored from zellij's
// write_to_active_terminal.
func (s *Screen) writeCharacter(ctx context.Context, client screenmsg.ClientID, bytes []byte) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	t, ok := s.getActiveTab(resolved)
	if !ok {
		return nil
	}

	if t.IsSyncPanesActive() {
		for _, pane := range t.Panes() {
			if err := s.senders.Pty.Send(ctx, screenmsg.PtyInstruction{Kind: screenmsg.PtyWriteBytes, Pane: pane, Bytes: bytes}); err != nil {
				return err
			}
		}
		return nil
	}

	pane, ok := t.FocusedPane(resolved)
	if !ok {
		return nil
	}
	return s.senders.Pty.Send(ctx, screenmsg.PtyInstruction{Kind: screenmsg.PtyWriteBytes, Pane: pane, Bytes: bytes})
}

// holdPane freezes a pane's frame at its exit status instead of closing it,
// so the undertitle can offer a re-run, mirroring zellij's held-pane state.
func (s *Screen) holdPane(client screenmsg.ClientID, pane screenmsg.PaneID, exitCode *int, run screenmsg.RunCommand) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	t, ok := s.getActiveTab(resolved)
	if !ok {
		return nil
	}
	status := frame.ExitStatus{Exited: exitCode == nil}
	if exitCode != nil {
		status.Code = *exitCode
	}
	t.HoldPane(pane, status, run)
	return nil
}

// updatePaneName appends/clears the active pane's name using the same
// byte protocol as tab rename: NUL clears, DEL/backspace pops, printable
// ASCII appends.
func (s *Screen) updatePaneName(buf []byte, client screenmsg.ClientID) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	t, ok := s.getActiveTab(resolved)
	if !ok {
		return nil
	}
	pane, ok := t.FocusedPane(resolved)
	if !ok {
		return nil
	}
	current := t.PaneTitle(pane)

	switch {
	case len(buf) == 1 && buf[0] == 0x00:
		t.SetPaneTitle(pane, "")
	case len(buf) == 1 && (buf[0] == 0x7F || buf[0] == 0x08):
		if len(current) > 0 {
			t.SetPaneTitle(pane, current[:len(current)-1])
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
			t.SetPaneTitle(pane, current+string(buf))
		}
	}
	return nil
}

// undoRenamePane restores a pane's name to what it was before RenamePane
// mode was entered, if it was snapshotted and has since changed.
func (s *Screen) undoRenamePane(client screenmsg.ClientID) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	t, ok := s.getActiveTab(resolved)
	if !ok {
		return nil
	}
	pane, ok := t.FocusedPane(resolved)
	if !ok {
		return nil
	}
	if prev, ok := s.prevPaneName[pane]; ok && prev != t.PaneTitle(pane) {
		t.SetPaneTitle(pane, prev)
	}
	return nil
}

// copySelection forwards selected text to the configured clipboard sink.
func (s *Screen) copySelection(client screenmsg.ClientID, selection string) error {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return nil
	}
	t, ok := s.getActiveTab(resolved)
	if !ok {
		return nil
	}
	return t.Copy(selection, s.copyOptions)
}

func (s *Screen) toggleActiveTerminalFullscreen(client screenmsg.ClientID) {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return
	}
	if t, ok := s.getActiveTab(resolved); ok {
		t.ToggleFullscreen(resolved)
	}
}

func (s *Screen) togglePaneFrames(client screenmsg.ClientID) {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return
	}
	if t, ok := s.getActiveTab(resolved); ok {
		t.TogglePaneFrames()
	}
}

func (s *Screen) toggleFloatingPanes(client screenmsg.ClientID) {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return
	}
	if t, ok := s.getActiveTab(resolved); ok {
		t.ToggleFloatingPanes()
	}
}

func (s *Screen) toggleActiveSyncTab(client screenmsg.ClientID) {
	resolved, ok := s.resolveClient(client)
	if !ok {
		return
	}
	if t, ok := s.getActiveTab(resolved); ok {
		t.ToggleSyncPanes()
	}
}
