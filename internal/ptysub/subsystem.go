// Package ptysub is the pty-side peer of the Screen's message bus: it owns
// one ptyglue.Terminal per terminal pane, forwards PtyInstruction requests
// (spawn/write/resize/close) to those terminals, and feeds their output back
// to the Screen as PtyBytes instructions. The read-and-batch loop is
// grounded on the pack's shared PTY reader (buffer on a ticker, flush early
// past a byte threshold), adapted from a tea.Msg sink to a bus.Sender.
package ptysub

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/screenmux/screenmux/internal/bus"
	"github.com/screenmux/screenmux/internal/logging"
	"github.com/screenmux/screenmux/internal/ptyglue"
	"github.com/screenmux/screenmux/internal/safego"
	"github.com/screenmux/screenmux/internal/screenmsg"
)

const (
	readBufferSize  = 16 * 1024
	frameInterval   = 16 * time.Millisecond
	maxPendingBytes = 64 * 1024
)

// Subsystem drains a PtyInstruction bus and drives the pty-backed terminals
// it spawns in response.
type Subsystem struct {
	mu        sync.Mutex
	terminals map[screenmsg.PaneID]*ptyglue.Terminal

	in       *bus.Bus[screenmsg.PtyInstruction]
	toScreen bus.Sender[screenmsg.Instruction]
}

// New builds a Subsystem reading spawn/write/resize/close requests from in
// and reporting pane output and exits back to toScreen.
func New(in *bus.Bus[screenmsg.PtyInstruction], toScreen bus.Sender[screenmsg.Instruction]) *Subsystem {
	return &Subsystem{
		terminals: make(map[screenmsg.PaneID]*ptyglue.Terminal),
		in:        in,
		toScreen:  toScreen,
	}
}

// Run drains the pty instruction bus until ctx is cancelled or it closes.
func (s *Subsystem) Run(ctx context.Context) error {
	for {
		instr, err := s.in.Recv(ctx)
		if err != nil {
			s.closeAll()
			return err
		}
		s.dispatch(ctx, instr)
	}
}

func (s *Subsystem) dispatch(ctx context.Context, instr screenmsg.PtyInstruction) {
	switch instr.Kind {
	case screenmsg.PtySpawnTerminal, screenmsg.PtySpawnTerminalVertically, screenmsg.PtySpawnTerminalHorizontally:
		s.spawn(ctx, instr.Pane, instr.RunCommand, instr.Size)
	case screenmsg.PtyWriteBytes:
		s.write(instr.Pane, instr.Bytes)
	case screenmsg.PtyResizePane:
		s.resize(instr.Pane, instr.Size)
	case screenmsg.PtyClosePane:
		s.close(instr.Pane)
	case screenmsg.PtyCloseTab:
		for _, pane := range instr.ClosedPanes {
			s.close(pane)
		}
	}
}

func (s *Subsystem) spawn(ctx context.Context, pane screenmsg.PaneID, run screenmsg.RunCommand, size screenmsg.Size) {
	rows, cols := uint16(size.Rows), uint16(size.Cols)
	term, err := ptyglue.Spawn(run, rows, cols)
	if err != nil {
		logging.Error("ptysub: spawn %s: %v", pane, err)
		return
	}

	s.mu.Lock()
	s.terminals[pane] = term
	s.mu.Unlock()

	safego.Go("ptysub-reader", func() {
		s.readLoop(ctx, pane, term)
	})
}

// readLoop batches terminal output on a ticker, same shape as the pack's
// shared PTY reader, and forwards it as PtyBytes instructions. On EOF it
// waits for the child and reports the exit as a HoldPane instruction so the
// pane freezes on its final frame instead of vanishing.
func (s *Subsystem) readLoop(ctx context.Context, pane screenmsg.PaneID, term *ptyglue.Terminal) {
	dataCh := make(chan []byte, 64)
	errCh := make(chan error, 1)

	safego.Go("ptysub-read-raw", func() {
		buf := make([]byte, readBufferSize)
		for {
			n, err := term.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case dataCh <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				errCh <- err
				close(dataCh)
				return
			}
		}
	})

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	var pending []byte
	flush := func() {
		if len(pending) == 0 {
			return
		}
		_ = s.toScreen.Send(ctx, screenmsg.Instruction{Kind: screenmsg.KindPtyBytes, Pane: pane, Bytes: pending})
		pending = nil
	}

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-dataCh:
			if !ok {
				flush()
				s.reportExit(ctx, pane, term)
				return
			}
			pending = append(pending, data...)
			if len(pending) >= maxPendingBytes {
				flush()
			}
		case <-ticker.C:
			flush()
			select {
			case err := <-errCh:
				if err != nil && err != io.EOF {
					logging.Warn("ptysub: pane %s read error: %v", pane, err)
				}
			default:
			}
		}
	}
}

func (s *Subsystem) reportExit(ctx context.Context, pane screenmsg.PaneID, term *ptyglue.Terminal) {
	term.Wait()
	_, code := term.ExitStatus()
	_ = s.toScreen.Send(ctx, screenmsg.Instruction{
		Kind:       screenmsg.KindHoldPane,
		Pane:       pane,
		ExitCode:   code,
		RunCommand: term.RunCommand(),
	})
}

func (s *Subsystem) write(pane screenmsg.PaneID, data []byte) {
	s.mu.Lock()
	term, ok := s.terminals[pane]
	s.mu.Unlock()
	if !ok {
		return
	}
	if _, err := term.Write(data); err != nil {
		logging.Warn("ptysub: write to pane %s: %v", pane, err)
	}
}

func (s *Subsystem) resize(pane screenmsg.PaneID, size screenmsg.Size) {
	s.mu.Lock()
	term, ok := s.terminals[pane]
	s.mu.Unlock()
	if !ok {
		return
	}
	if err := term.SetSize(uint16(size.Rows), uint16(size.Cols)); err != nil {
		logging.Warn("ptysub: resize pane %s: %v", pane, err)
	}
}

func (s *Subsystem) close(pane screenmsg.PaneID) {
	s.mu.Lock()
	term, ok := s.terminals[pane]
	delete(s.terminals, pane)
	s.mu.Unlock()
	if !ok {
		return
	}
	if err := term.Close(); err != nil {
		logging.Warn("ptysub: close pane %s: %v", pane, err)
	}
}

func (s *Subsystem) closeAll() {
	s.mu.Lock()
	terms := s.terminals
	s.terminals = make(map[screenmsg.PaneID]*ptyglue.Terminal)
	s.mu.Unlock()
	for pane, term := range terms {
		if err := term.Close(); err != nil {
			logging.Warn("ptysub: close pane %s: %v", pane, err)
		}
	}
}
