// Package client implements the local terminal client: a Bubble Tea v2
// program that forwards key/mouse/resize events into the Screen as
// instructions and paints whatever bytes the Screen pushes back. It is the
// demo client for a subsystem whose real peers (remote terminal clients over
// a socket) are out of scope; this package exists to drive the Screen end
// to end from a real terminal, grounded on the pack's root Bubble Tea model.
package client

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	zone "github.com/lrstanley/bubblezone"

	"github.com/screenmux/screenmux/internal/bus"
	"github.com/screenmux/screenmux/internal/logging"
	"github.com/screenmux/screenmux/internal/screenmsg"
)

// paneZone is the id bubblezone marks the rendered frame with. The mouse
// handlers do not check reports against it: every left click and wheel
// report is forwarded as an instruction.
const paneZone = "pane"

func init() {
	zone.NewGlobal()
}

// outputMsg carries a rendered frame pushed from the Screen.
type outputMsg struct {
	bytes []byte
}

// unblockMsg notes the Screen has finished handling a blocking instruction
// (tab close, pane close) and input can resume being forwarded.
type unblockMsg struct{}

var keybindings = struct {
	newPane   key.Binding
	closePane key.Binding
	nextTab   key.Binding
	prevTab   key.Binding
	newTab    key.Binding
	nextPane  key.Binding
	quit      key.Binding
}{
	newPane:   key.NewBinding(key.WithKeys("ctrl+n")),
	closePane: key.NewBinding(key.WithKeys("ctrl+w")),
	nextTab:   key.NewBinding(key.WithKeys("ctrl+right")),
	prevTab:   key.NewBinding(key.WithKeys("ctrl+left")),
	newTab:    key.NewBinding(key.WithKeys("ctrl+t")),
	nextPane:  key.NewBinding(key.WithKeys("ctrl+a")),
	quit:      key.NewBinding(key.WithKeys("ctrl+q")),
}

// Model is the root Bubble Tea model for a single connected client.
type Model struct {
	ctx        context.Context
	client     screenmsg.ClientID
	toScreen   bus.Sender[screenmsg.Instruction]
	fromScreen *bus.Bus[screenmsg.ServerInstruction]

	frame         []byte
	width, height int
}

// New builds a client Model identified by id, sending instructions to
// toScreen and expecting its own ServerInstruction traffic on fromScreen.
func New(ctx context.Context, id screenmsg.ClientID, toScreen bus.Sender[screenmsg.Instruction], fromScreen *bus.Bus[screenmsg.ServerInstruction]) Model {
	return Model{ctx: ctx, client: id, toScreen: toScreen, fromScreen: fromScreen}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.send(screenmsg.Instruction{Kind: screenmsg.KindAddClient, Client: m.client}), m.waitForOutput())
}

// waitForOutput blocks on this client's ServerInstruction bus and turns the
// next message into a tea.Msg, re-arming itself from Update.
func (m Model) waitForOutput() tea.Cmd {
	return func() tea.Msg {
		instr, err := m.fromScreen.Recv(m.ctx)
		if err != nil {
			return nil
		}
		switch instr.Kind {
		case screenmsg.ServerRender:
			if instr.Output != nil {
				return outputMsg{bytes: instr.Output.Bytes}
			}
		case screenmsg.ServerUnblockInputThread:
			return unblockMsg{}
		}
		return nil
	}
}

func (m Model) send(instr screenmsg.Instruction) tea.Cmd {
	return func() tea.Msg {
		if err := m.toScreen.Send(m.ctx, instr); err != nil {
			logging.Warn("client: send %s: %v", instr.Kind, err)
		}
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.send(screenmsg.Instruction{Kind: screenmsg.KindTerminalResize, Size: screenmsg.Size{Rows: msg.Height, Cols: msg.Width}})

	case outputMsg:
		m.frame = msg.bytes
		return m, m.waitForOutput()

	case unblockMsg:
		return m, m.waitForOutput()

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			pos := screenmsg.Position{Line: msg.Y, Column: msg.X}
			return m, m.send(screenmsg.Instruction{Kind: screenmsg.KindLeftClick, Client: m.client, Position: pos})
		}
		return m, nil

	case tea.MouseWheelMsg:
		pos := screenmsg.Position{Line: msg.Y, Column: msg.X}
		if msg.Button == tea.MouseWheelUp {
			return m, m.send(screenmsg.Instruction{Kind: screenmsg.KindScrollUpAt, Client: m.client, Position: pos})
		}
		return m, m.send(screenmsg.Instruction{Kind: screenmsg.KindScrollDownAt, Client: m.client, Position: pos})
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keybindings.quit):
		return tea.Quit
	case key.Matches(msg, keybindings.newPane):
		return m.send(screenmsg.Instruction{Kind: screenmsg.KindNewPane, Target: screenmsg.ForClient(m.client)})
	case key.Matches(msg, keybindings.closePane):
		return m.send(screenmsg.Instruction{Kind: screenmsg.KindCloseFocusedPane, Client: m.client})
	case key.Matches(msg, keybindings.newTab):
		return m.send(screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: m.client})
	case key.Matches(msg, keybindings.nextTab):
		return m.send(screenmsg.Instruction{Kind: screenmsg.KindSwitchTabNext, Client: m.client})
	case key.Matches(msg, keybindings.prevTab):
		return m.send(screenmsg.Instruction{Kind: screenmsg.KindSwitchTabPrev, Client: m.client})
	case key.Matches(msg, keybindings.nextPane):
		return m.send(screenmsg.Instruction{Kind: screenmsg.KindFocusNextPane, Client: m.client})
	default:
		bytes := keyToBytes(msg)
		if bytes == nil {
			return nil
		}
		return m.send(screenmsg.Instruction{Kind: screenmsg.KindWriteCharacter, Client: m.client, Bytes: bytes})
	}
}

func (m Model) View() string {
	return zone.Scan(zone.Mark(paneZone, string(m.frame)))
}
