// Package tab implements the Tab Collection: an ordered set of tabs, each
// owning a pane layout, with a default Tab type the Screen drives through
// the Capability interface. Grounded on zellij's Tab struct in screen.rs
// (tabs: BTreeMap<usize, Tab>) and tab.rs's pane bookkeeping.
package tab

import (
	"fmt"
	"sort"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/screenmux/screenmux/internal/frame"
	"github.com/screenmux/screenmux/internal/render"
	"github.com/screenmux/screenmux/internal/screenmsg"
)

// Capability is the operation set the Screen drives a tab through. A tab
// never reaches back into the Screen; every cross-tab effect (migrating
// clients, closing the tab) is the Screen's job once a Capability call
// returns.
type Capability interface {
	ID() screenmsg.TabID
	Name() string
	SetName(name string)
	Position() int
	SetPosition(pos int)

	AddClient(client screenmsg.ClientID)
	RemoveClient(client screenmsg.ClientID)
	Clients() []screenmsg.ClientID
	HasClient(client screenmsg.ClientID) bool

	AddPane(pane screenmsg.PaneID, title string)
	ClosePane(pane screenmsg.PaneID) []screenmsg.PaneID
	PaneCount() int
	Panes() []screenmsg.PaneID
	FocusedPane(client screenmsg.ClientID) (screenmsg.PaneID, bool)
	SetFocusedPane(client screenmsg.ClientID, pane screenmsg.PaneID)
	FocusNextPane(client screenmsg.ClientID)
	FocusPreviousPane(client screenmsg.ClientID)

	WriteCharacter(pane screenmsg.PaneID, bytes []byte)
	PaneTitle(pane screenmsg.PaneID) string
	SetPaneTitle(pane screenmsg.PaneID, title string)

	ToggleFullscreen(client screenmsg.ClientID)
	IsFullscreenActive() bool
	ToggleSyncPanes()
	IsSyncPanesActive() bool
	TogglePaneFrames()
	DrawPaneFrames() bool
	ToggleFloatingPanes()
	AreFloatingPanesVisible() bool

	Resize(size screenmsg.Size)
	Render(out *render.Output, style screenmsg.Style)

	Copy(selection string, opts screenmsg.CopyOptions) error

	HoldPane(pane screenmsg.PaneID, status frame.ExitStatus, rerun screenmsg.RunCommand)
	HeldStatus(pane screenmsg.PaneID) (frame.ExitStatus, bool)

	ChangeModeInfo(info screenmsg.ModeInfo, client screenmsg.ClientID)
	MarkActiveForRerender(client screenmsg.ClientID)
}

// Tab is the default Capability implementation: one pane list, per-client
// focus, and the session-wide toggles zellij tracks per tab (fullscreen,
// sync, frames, floating visibility).
type Tab struct {
	mu sync.Mutex

	id       screenmsg.TabID
	name     string
	position int

	clients map[screenmsg.ClientID]struct{}
	focus   map[screenmsg.ClientID]screenmsg.PaneID

	panes      []screenmsg.PaneID
	titles     map[screenmsg.PaneID]string
	held       map[screenmsg.PaneID]frame.ExitStatus
	rerun      map[screenmsg.PaneID]screenmsg.RunCommand
	floatingOn bool

	fullscreenClients map[screenmsg.ClientID]struct{}
	syncPanes         bool
	drawFrames        bool

	modeInfo      map[screenmsg.ClientID]screenmsg.ModeInfo
	forceRerender map[screenmsg.PaneID]struct{}

	size screenmsg.Size
}

// New creates an empty tab at position pos with the given id and name.
func New(id screenmsg.TabID, pos int, name string, drawFrames bool) *Tab {
	return &Tab{
		id:                id,
		name:              name,
		position:          pos,
		clients:           make(map[screenmsg.ClientID]struct{}),
		focus:             make(map[screenmsg.ClientID]screenmsg.PaneID),
		titles:            make(map[screenmsg.PaneID]string),
		held:              make(map[screenmsg.PaneID]frame.ExitStatus),
		rerun:             make(map[screenmsg.PaneID]screenmsg.RunCommand),
		fullscreenClients: make(map[screenmsg.ClientID]struct{}),
		drawFrames:        drawFrames,
		floatingOn:        true,
		modeInfo:          make(map[screenmsg.ClientID]screenmsg.ModeInfo),
		forceRerender:     make(map[screenmsg.PaneID]struct{}),
	}
}

func (t *Tab) ID() screenmsg.TabID { return t.id }

func (t *Tab) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name
}

func (t *Tab) SetName(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.name = name
}

func (t *Tab) Position() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.position
}

func (t *Tab) SetPosition(pos int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.position = pos
}

func (t *Tab) AddClient(client screenmsg.ClientID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clients[client] = struct{}{}
	if len(t.panes) > 0 {
		if _, ok := t.focus[client]; !ok {
			t.focus[client] = t.panes[0]
		}
	}
}

func (t *Tab) RemoveClient(client screenmsg.ClientID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.clients, client)
	delete(t.focus, client)
	delete(t.fullscreenClients, client)
}

func (t *Tab) Clients() []screenmsg.ClientID {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]screenmsg.ClientID, 0, len(t.clients))
	for c := range t.clients {
		ids = append(ids, c)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (t *Tab) HasClient(client screenmsg.ClientID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.clients[client]
	return ok
}

func (t *Tab) AddPane(pane screenmsg.PaneID, title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.panes = append(t.panes, pane)
	t.titles[pane] = title
	for c := range t.clients {
		if _, ok := t.focus[c]; !ok {
			t.focus[c] = pane
		}
	}
}

// ClosePane removes pane, moves every client focused on it to the pane now
// at its index (or the new last pane; clients lose focus when no pane is
// left), and returns a slice holding the closed pane's id, or nil when
// pane is not in this tab. The Screen uses a non-empty result to tell the
// pty subsystem to close the pane.
func (t *Tab) ClosePane(pane screenmsg.PaneID) []screenmsg.PaneID {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i, p := range t.panes {
		if p == pane {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	t.panes = append(t.panes[:idx:idx], t.panes[idx+1:]...)
	delete(t.titles, pane)
	delete(t.held, pane)
	delete(t.rerun, pane)

	var next screenmsg.PaneID
	hasNext := false
	if len(t.panes) > 0 {
		next = t.panes[minInt(idx, len(t.panes)-1)]
		hasNext = true
	}
	for c, focused := range t.focus {
		if focused == pane {
			if hasNext {
				t.focus[c] = next
			} else {
				delete(t.focus, c)
			}
		}
	}
	return []screenmsg.PaneID{pane}
}

func (t *Tab) PaneCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.panes)
}

func (t *Tab) Panes() []screenmsg.PaneID {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]screenmsg.PaneID, len(t.panes))
	copy(out, t.panes)
	return out
}

func (t *Tab) FocusedPane(client screenmsg.ClientID) (screenmsg.PaneID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.focus[client]
	return p, ok
}

func (t *Tab) SetFocusedPane(client screenmsg.ClientID, pane screenmsg.PaneID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.focus[client] = pane
}

func (t *Tab) FocusNextPane(client screenmsg.ClientID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shiftFocus(client, 1)
}

func (t *Tab) FocusPreviousPane(client screenmsg.ClientID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shiftFocus(client, -1)
}

func (t *Tab) shiftFocus(client screenmsg.ClientID, delta int) {
	if len(t.panes) == 0 {
		return
	}
	current, ok := t.focus[client]
	idx := 0
	if ok {
		for i, p := range t.panes {
			if p == current {
				idx = i
				break
			}
		}
	}
	idx = (idx + delta + len(t.panes)) % len(t.panes)
	t.focus[client] = t.panes[idx]
}

func (t *Tab) WriteCharacter(pane screenmsg.PaneID, bytes []byte) {
	// Byte delivery to the pty is the Screen's job via PtyInstruction;
	// this hook exists for tabs that need to mirror input to a search
	// buffer or similar tab-local state. No-op by default.
	_ = pane
	_ = bytes
}

func (t *Tab) PaneTitle(pane screenmsg.PaneID) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.titles[pane]
}

func (t *Tab) SetPaneTitle(pane screenmsg.PaneID, title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.titles[pane] = title
}

func (t *Tab) ToggleFullscreen(client screenmsg.ClientID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.fullscreenClients[client]; ok {
		delete(t.fullscreenClients, client)
	} else {
		t.fullscreenClients[client] = struct{}{}
	}
}

func (t *Tab) IsFullscreenActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.fullscreenClients) > 0
}

func (t *Tab) ToggleSyncPanes() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.syncPanes = !t.syncPanes
}

func (t *Tab) IsSyncPanesActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.syncPanes
}

func (t *Tab) TogglePaneFrames() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.drawFrames = !t.drawFrames
}

func (t *Tab) DrawPaneFrames() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.drawFrames
}

func (t *Tab) ToggleFloatingPanes() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.floatingOn = !t.floatingOn
}

func (t *Tab) AreFloatingPanesVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.floatingOn
}

func (t *Tab) Resize(size screenmsg.Size) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.size = size
}

// Render lays out panes in a single column (the layout engine proper is
// out of scope for this subsystem) and asks the frame renderer to draw a
// border around each when frames are enabled.
func (t *Tab) Render(out *render.Output, style screenmsg.Style) {
	t.mu.Lock()
	panes := append([]screenmsg.PaneID(nil), t.panes...)
	size := t.size
	drawFrames := t.drawFrames
	clients := make([]screenmsg.ClientID, 0, len(t.clients))
	for c := range t.clients {
		clients = append(clients, c)
	}
	focus := make(map[screenmsg.ClientID]screenmsg.PaneID, len(t.focus))
	for c, p := range t.focus {
		focus[c] = p
	}
	held := make(map[screenmsg.PaneID]frame.ExitStatus, len(t.held))
	for p, s := range t.held {
		held[p] = s
	}
	titles := make(map[screenmsg.PaneID]string, len(t.titles))
	for p, title := range t.titles {
		titles[p] = title
	}
	t.mu.Unlock()

	if len(panes) == 0 || size.Rows == 0 || size.Cols == 0 {
		return
	}
	rowsPer := size.Rows / len(panes)
	if rowsPer == 0 {
		rowsPer = 1
	}

	for i, pane := range panes {
		geom := screenmsg.Viewport{X: 0, Y: i * rowsPer, Rows: rowsPer, Cols: size.Cols}
		if !drawFrames {
			continue
		}

		var focusedClient *screenmsg.ClientID
		var otherFocused []screenmsg.ClientID
		for _, c := range clients {
			if focus[c] == pane {
				cc := c
				if focusedClient == nil {
					focusedClient = &cc
				} else {
					otherFocused = append(otherFocused, cc)
				}
			}
		}

		var exitStatus *frame.ExitStatus
		if s, ok := held[pane]; ok {
			exitStatus = &s
		}

		chunks := frame.Render(frame.Params{
			Geom:                geom,
			Title:               titles[pane],
			Style:               style,
			FocusedClient:       focusedClient,
			IsMainClient:        focusedClient != nil,
			OtherFocusedClients: otherFocused,
			ExitStatus:          exitStatus,
		})
		for _, c := range clients {
			for _, chunk := range chunks {
				out.AddChunk(c, chunk)
			}
		}
	}
}

// Copy writes selection to the system clipboard through atotto/clipboard,
// whichever clipboard opts selects (the primary selection is not written
// separately). A non-empty opts.Command is not run: Copy returns an error
// for it instead.
func (t *Tab) Copy(selection string, opts screenmsg.CopyOptions) error {
	if opts.Command != "" {
		return fmt.Errorf("tab: external copy command %q not supported by this build", opts.Command)
	}
	return clipboard.WriteAll(selection)
}

func (t *Tab) HoldPane(pane screenmsg.PaneID, status frame.ExitStatus, rerun screenmsg.RunCommand) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held[pane] = status
	t.rerun[pane] = rerun
}

func (t *Tab) HeldStatus(pane screenmsg.PaneID) (frame.ExitStatus, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.held[pane]
	return s, ok
}

// ChangeModeInfo records a client's current mode against this tab, so the
// tab's own rendering (e.g. a status bar pane) can reflect it. Grounded on
// Tab::change_mode_info.
func (t *Tab) ChangeModeInfo(info screenmsg.ModeInfo, client screenmsg.ClientID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modeInfo[client] = info
}

// MarkActiveForRerender flags the client's focused pane as needing a forced
// rerender on the next render pass, regardless of whether its content
// actually changed. Grounded on Tab::mark_active_pane_for_rerender.
func (t *Tab) MarkActiveForRerender(client screenmsg.ClientID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pane, ok := t.focus[client]
	if !ok {
		return
	}
	t.forceRerender[pane] = struct{}{}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
