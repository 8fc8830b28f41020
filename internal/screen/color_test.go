package screen

import (
	"testing"

	"github.com/screenmux/screenmux/internal/screenmsg"
)

func TestXparseColorScalesSixteenBitChannels(t *testing.T) {
	r, g, b, ok := xparseColor("11;rgb:ffff/8080/0000")
	if !ok {
		t.Fatal("expected a match")
	}
	if r != 0xff || g != 0x80 || b != 0x00 {
		t.Fatalf("got r=%x g=%x b=%x", r, g, b)
	}
}

func TestXparseColorHandlesShortChannels(t *testing.T) {
	r, g, b, ok := xparseColor("rgb:f/8/0")
	if !ok {
		t.Fatal("expected a match")
	}
	_ = r
	_ = g
	_ = b
}

func TestXparseColorRejectsGarbage(t *testing.T) {
	if _, _, _, ok := xparseColor("not a color response"); ok {
		t.Fatal("expected no match")
	}
}

func TestUpdateTerminalBackgroundColorSetsPalette(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)
	drain(t, toPty)

	s.updateTerminalBackgroundColor("11;rgb:1234/5678/9abc")

	if s.style.Colors.Bg.RGB == nil {
		t.Fatal("expected background color to be set")
	}
}

func TestUpdateTerminalColorRegistersOverwritesSameIndex(t *testing.T) {
	s, toServer, toPty := newTestScreen(t)
	drain(t, toServer)
	drain(t, toPty)

	s.updateTerminalColorRegisters([]screenmsg.ColorRegister{
		{Register: 4, Sequence: "first"},
		{Register: 4, Sequence: "second"},
	})

	if s.colorRegisters[4] != "second" {
		t.Fatalf("expected later register update to win, got %q", s.colorRegisters[4])
	}
}
