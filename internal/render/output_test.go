package render

import (
	"bytes"
	"testing"

	"github.com/screenmux/screenmux/internal/screenmsg"
)

func TestClientsCollectsEveryContributor(t *testing.T) {
	o := New()
	o.AddChunk(1, CharacterChunk{Origin: screenmsg.Position{}, Bytes: []byte("a")})
	o.SetCursor(2, screenmsg.Position{Line: 1, Column: 1})
	o.HideCursor(3)

	got := o.Clients()
	want := []screenmsg.ClientID{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i, c := range want {
		if got[i] != c {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSerializeIncludesChunkBytes(t *testing.T) {
	o := New()
	o.AddChunk(1, CharacterChunk{Origin: screenmsg.Position{Line: 2, Column: 3}, Bytes: []byte("hello")})

	out := o.Serialize(1)
	if !bytes.Contains(out, []byte("hello")) {
		t.Fatalf("expected serialized output to contain pane bytes, got %q", out)
	}
}

func TestSerializeHidesCursorWhenRequested(t *testing.T) {
	o := New()
	o.SetCursor(1, screenmsg.Position{Line: 0, Column: 0})
	o.HideCursor(1)

	out := o.Serialize(1)
	// HideCursor was the last call for this client, so no cursor-show
	// sequence should be present.
	if bytes.Contains(out, []byte("\x1b[?25h")) {
		t.Fatalf("expected cursor to stay hidden, got %q", out)
	}
}

func TestAddChunksForAllFansOutToEveryClient(t *testing.T) {
	o := New()
	chunk := CharacterChunk{Bytes: []byte("shared")}
	o.AddChunksForAll([]screenmsg.ClientID{1, 2, 3}, chunk)

	for _, c := range []screenmsg.ClientID{1, 2, 3} {
		if len(o.perClient[c]) != 1 {
			t.Fatalf("expected client %v to receive the shared chunk", c)
		}
	}
}
