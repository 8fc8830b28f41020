package screen

import (
	"context"
	"testing"
	"time"

	"github.com/screenmux/screenmux/internal/bus"
	"github.com/screenmux/screenmux/internal/screenconfig"
	"github.com/screenmux/screenmux/internal/screenmsg"
)

func newTestScreen(t *testing.T) (*Screen, *bus.Bus[screenmsg.ServerInstruction], *bus.Bus[screenmsg.PtyInstruction]) {
	t.Helper()
	cfg := screenconfig.DefaultConfig()
	toServer := bus.New[screenmsg.ServerInstruction](32)
	toPty := bus.New[screenmsg.PtyInstruction](32)
	toPlugin := bus.New[screenmsg.PluginInstruction](32)
	drain(t, toPlugin)

	s := New(bus.New[screenmsg.Instruction](32), Senders{
		Server: toServer.Sender(),
		Pty:    toPty.Sender(),
		Plugin: toPlugin.Sender(),
	}, cfg)
	return s, toServer, toPty
}

func drain[T any](t *testing.T, b *bus.Bus[T]) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		for {
			if _, err := b.Recv(ctx); err != nil {
				return
			}
		}
	}()
}

func run(t *testing.T, s *Screen, instr screenmsg.Instruction) {
	t.Helper()
	s.dispatch(context.Background(), instr)
}

func TestAddClientAttachesToFirstTab(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)
	drain(t, toPty)

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})
	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindAddClient, Client: 2})

	if _, ok := s.activeTabIndices[2]; !ok {
		t.Fatal("client 2 should have an active tab after AddClient")
	}
	if s.activeTabIndices[1] != s.activeTabIndices[2] {
		t.Fatal("new client should attach to the existing tab")
	}
}

func TestUnknownClientFallsBackToFirstConnected(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)
	drain(t, toPty)

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})
	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewPane, Target: screenmsg.ForClient(99)})

	tb, _ := s.getActiveTab(1)
	if tb.PaneCount() != 2 {
		t.Fatalf("expected the fallback client's tab to gain a pane, got %d panes", tb.PaneCount())
	}
}

func TestMirroredSessionSharesActiveTab(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)
	drain(t, toPty)
	s.sessionMirrored = true

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})
	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindAddClient, Client: 2})
	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})

	if s.activeTabIndices[1] != s.activeTabIndices[2] {
		t.Fatal("mirrored clients must share the active tab after a switch")
	}
}

func TestIndependentSessionTracksTabsPerClient(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)
	drain(t, toPty)

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})
	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindAddClient, Client: 2})
	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})

	if s.activeTabIndices[1] == s.activeTabIndices[2] {
		t.Fatal("independent clients should not be forced onto the same tab by another client's new tab")
	}
}

func TestCloseTabRehomesViaHistory(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)
	drain(t, toPty)

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1}) // tab A
	firstTab := s.activeTabIndices[1]
	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1}) // tab B, A pushed to history

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindCloseTab, Client: 1})

	if s.activeTabIndices[1] != firstTab {
		t.Fatalf("closing the active tab should rehome the client onto its history, got %v want %v", s.activeTabIndices[1], firstTab)
	}
}

func TestToggleTabReturnsToPrevious(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)
	drain(t, toPty)

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})
	first := s.activeTabIndices[1]
	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})
	second := s.activeTabIndices[1]

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindToggleTab, Client: 1})
	if s.activeTabIndices[1] != first {
		t.Fatalf("toggle should return to tab %v, got %v", first, s.activeTabIndices[1])
	}

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindToggleTab, Client: 1})
	if s.activeTabIndices[1] != second {
		t.Fatalf("toggling twice should return to tab %v, got %v", second, s.activeTabIndices[1])
	}
}

func TestTabRenameByteProtocol(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)
	drain(t, toPty)

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})
	tb, _ := s.getActiveTab(1)

	for _, b := range []byte("dev") {
		run(t, s, screenmsg.Instruction{Kind: screenmsg.KindUpdateTabName, Client: 1, Bytes: []byte{b}})
	}
	if got := tb.Name(); got != "dev" {
		t.Fatalf("expected tab name %q, got %q", "dev", got)
	}

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindUpdateTabName, Client: 1, Bytes: []byte{0x7f}})
	if got := tb.Name(); got != "de" {
		t.Fatalf("backspace byte should pop a character, got %q", got)
	}

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindUpdateTabName, Client: 1, Bytes: []byte{0x00}})
	if got := tb.Name(); got != "" {
		t.Fatalf("NUL byte should clear the name, got %q", got)
	}
}

func TestWriteCharacterBroadcastsWithSyncPanesOn(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})
	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewPane, Target: screenmsg.ForClient(1)})
	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindToggleActiveSyncTab, Client: 1})

	// NewTab creates its first pane locally without spawning a pty; NewPane
	// is the one call that asks the pty subsystem to spawn a terminal.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := toPty.Recv(ctx); err != nil {
		t.Fatalf("expected spawn instruction: %v", err)
	}

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindWriteCharacter, Client: 1, Bytes: []byte("x")})

	seen := 0
	for i := 0; i < 2; i++ {
		instr, err := toPty.Recv(ctx)
		if err != nil {
			t.Fatalf("expected a write to every pane in the synced tab: %v", err)
		}
		if instr.Kind == screenmsg.PtyWriteBytes {
			seen++
		}
	}
	if seen != 2 {
		t.Fatalf("expected 2 broadcast writes with sync-panes on, got %d", seen)
	}
}

func TestConfirmPromptReplaysWrappedInstruction(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)
	drain(t, toPty)

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})
	tab1 := s.activeTabIndices[1]
	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})

	wrapped := screenmsg.Instruction{Kind: screenmsg.KindCloseTab, Client: 1}
	run(t, s, screenmsg.Instruction{
		Kind:    screenmsg.KindConfirmPrompt,
		Client:  1,
		Overlay: screenmsg.Overlay{InstructionOnConfirm: &wrapped},
	})

	if s.activeTabIndices[1] != tab1 {
		t.Fatalf("confirming the prompt should have closed the active tab and rehomed onto %v, got %v", tab1, s.activeTabIndices[1])
	}
}

func TestExitStopsTheDispatchLoop(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)
	drain(t, toPty)

	if stop := s.dispatch(context.Background(), screenmsg.Instruction{Kind: screenmsg.KindExit}); !stop {
		t.Fatal("Exit should signal the dispatch loop to stop")
	}
}

func TestDenyPromptDropsInstruction(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)
	drain(t, toPty)

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindNewTab, Client: 1})
	before := s.tabs.Len()

	run(t, s, screenmsg.Instruction{Kind: screenmsg.KindDenyPrompt, Client: 1})

	if s.tabs.Len() != before {
		t.Fatal("DenyPrompt must not apply any wrapped instruction")
	}
}
