// Package screen implements the Screen state machine: the single-consumer
// dispatch loop that owns tab/client bookkeeping and drives renders. It is
// grounded on zellij's Screen struct and screen_thread_main in screen.rs,
// realized as a Go actor reading off an internal/bus.Bus.
package screen

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/screenmux/screenmux/internal/bus"
	"github.com/screenmux/screenmux/internal/logging"
	"github.com/screenmux/screenmux/internal/render"
	"github.com/screenmux/screenmux/internal/screenconfig"
	"github.com/screenmux/screenmux/internal/screenmsg"
	"github.com/screenmux/screenmux/internal/tab"
)

// Senders bundles the outbound peer channels the Screen publishes to. Each
// Sender targets a bus with its own buffering; a send blocks only while
// that bus's buffer is full.
type Senders struct {
	Server bus.Sender[screenmsg.ServerInstruction]
	Pty    bus.Sender[screenmsg.PtyInstruction]
	Plugin bus.Sender[screenmsg.PluginInstruction]
}

// Screen is the session-wide state machine. All mutable state is guarded by
// mu; the dispatch loop (Run) is the only caller that mutates it.
type Screen struct {
	mu sync.Mutex

	in      *bus.Bus[screenmsg.Instruction]
	senders Senders

	size            screenmsg.Size
	maxPanes        int
	style           screenmsg.Style
	drawPaneFrames  bool
	sessionMirrored bool
	copyOptions     screenmsg.CopyOptions
	defaultModeInfo screenmsg.ModeInfo
	pixelDimensions screenmsg.PixelDimensions

	tabs             *tab.Collection
	activeTabIndices map[screenmsg.ClientID]screenmsg.TabID
	connectedClients map[screenmsg.ClientID]struct{}
	tabHistory       map[screenmsg.ClientID][]screenmsg.TabID
	modeInfo         map[screenmsg.ClientID]screenmsg.ModeInfo
	prevTabName      map[screenmsg.TabID]string
	prevPaneName     map[screenmsg.PaneID]string
	nextTerminalPane uint32
	colorRegisters   map[int]string
}

// New builds a Screen reading instructions from in and publishing to
// senders, configured per cfg.
func New(in *bus.Bus[screenmsg.Instruction], senders Senders, cfg screenconfig.Config) *Screen {
	return &Screen{
		in:               in,
		senders:          senders,
		size:             cfg.Size,
		maxPanes:         cfg.MaxPanes,
		drawPaneFrames:   cfg.DrawPaneFrames,
		sessionMirrored:  cfg.SessionMirrored,
		copyOptions:      cfg.CopyOptions,
		defaultModeInfo:  cfg.DefaultMode,
		style:            cfg.DefaultMode.Style,
		tabs:             tab.NewCollection(),
		activeTabIndices: make(map[screenmsg.ClientID]screenmsg.TabID),
		connectedClients: make(map[screenmsg.ClientID]struct{}),
		tabHistory:       make(map[screenmsg.ClientID][]screenmsg.TabID),
		modeInfo:         make(map[screenmsg.ClientID]screenmsg.ModeInfo),
		prevTabName:      make(map[screenmsg.TabID]string),
		prevPaneName:     make(map[screenmsg.PaneID]string),
	}
}

// Run drains the instruction bus until ctx is cancelled or the bus closes,
// processing exactly one instruction to completion before receiving the
// next. This is the Screen's sole goroutine; the methods below are only
// safe to call from within it.
func (s *Screen) Run(ctx context.Context) error {
	for {
		instr, err := s.in.Recv(ctx)
		if err != nil {
			return err
		}
		if s.dispatch(ctx, instr) {
			return nil
		}
	}
}

// dispatch executes one instruction end to end and then performs the
// post-action table lookup (unblock_input / update_tabs / render) that
// screen_thread_main runs after every instruction class. It reports whether
// the instruction was Exit, so Run can stop the loop cleanly.
func (s *Screen) dispatch(ctx context.Context, instr screenmsg.Instruction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	action, err := s.handle(ctx, instr)
	if err != nil {
		logging.Error("%v", fmt.Errorf("%s: %w", tag(errorServiceDispatch, instr.Kind.String()), err))
	}
	s.applyPostAction(ctx, action)
	return action.exit
}

func (s *Screen) applyPostAction(ctx context.Context, action postAction) {
	if action.unblockInput {
		s.unblockInput(ctx)
	}
	if action.updateTabs {
		if err := s.updateTabs(ctx); err != nil {
			logging.Error("%v", fmt.Errorf("%s: %w", tag(errorServiceUpdateTabs, ""), err))
		}
	}
	if action.render {
		if err := s.render(ctx); err != nil {
			logging.Error("%v", fmt.Errorf("%s: %w", tag(errorServiceRender, ""), err))
		}
	}
}

// postAction is the Go analogue of screen_thread_main's per-Kind call
// sequence: which of unblock_input/update_tabs/render to run after an
// instruction has been handled.
type postAction struct {
	unblockInput bool
	updateTabs   bool
	render       bool
	exit         bool
}

func (s *Screen) unblockInput(ctx context.Context) {
	_ = s.senders.Server.Send(ctx, screenmsg.ServerInstruction{Kind: screenmsg.ServerUnblockInputThread})
}

// getActiveTab returns the tab a client is currently on, or the tab's zero
// value and false if the client has no active tab.
func (s *Screen) getActiveTab(client screenmsg.ClientID) (tab.Capability, bool) {
	id, ok := s.activeTabIndices[client]
	if !ok {
		return nil, false
	}
	return s.tabs.Get(id)
}

// getFirstClientID returns the lowest-numbered connected client, the
// fallback target for instructions whose nominal client has disconnected.
func (s *Screen) getFirstClientID() (screenmsg.ClientID, bool) {
	if len(s.activeTabIndices) == 0 {
		return 0, false
	}
	ids := make([]screenmsg.ClientID, 0, len(s.activeTabIndices))
	for c := range s.activeTabIndices {
		ids = append(ids, c)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids[0], true
}

// resolveClient implements the "use client if it has an active tab, else
// fall back to the first connected client" pattern nearly every Screen
// method in zellij applies before acting.
func (s *Screen) resolveClient(client screenmsg.ClientID) (screenmsg.ClientID, bool) {
	if _, ok := s.getActiveTab(client); ok {
		return client, true
	}
	return s.getFirstClientID()
}

func (s *Screen) render(ctx context.Context) error {
	out := render.New()
	for _, t := range s.tabs.Ordered() {
		if !s.tabVisibleToAnyClient(t.ID()) {
			continue
		}
		t.Render(out, s.style)
	}
	for _, client := range out.Clients() {
		bytes := out.Serialize(client)
		_ = s.senders.Server.Send(ctx, screenmsg.ServerInstruction{
			Kind:   screenmsg.ServerRender,
			Client: client,
			Output: &screenmsg.SerializedOutput{Bytes: bytes},
		})
	}
	return nil
}

func (s *Screen) tabVisibleToAnyClient(id screenmsg.TabID) bool {
	for _, active := range s.activeTabIndices {
		if active == id {
			return true
		}
	}
	return false
}
