package frame

import (
	"testing"

	"github.com/screenmux/screenmux/internal/screenmsg"
)

func baseParams(rows, cols int) Params {
	return Params{
		Geom:  screenmsg.Viewport{X: 0, Y: 0, Rows: rows, Cols: cols},
		Title: "bash",
	}
}

func TestRenderProducesOneChunkPerMiddleRowPair(t *testing.T) {
	p := baseParams(5, 20)
	chunks := Render(p)

	// row 0 (title) + row 4 (bottom) = 1 chunk each, rows 1-3 = 2 chunks each.
	want := 1 + 1 + 3*2
	if len(chunks) != want {
		t.Fatalf("expected %d chunks, got %d", want, len(chunks))
	}
}

func TestRenderTitleRowIsFirstChunk(t *testing.T) {
	p := baseParams(3, 20)
	chunks := Render(p)
	if chunks[0].Origin.Line != 0 || chunks[0].Origin.Column != 0 {
		t.Fatalf("title chunk should originate at the pane's top-left, got %+v", chunks[0].Origin)
	}
}

func TestHeldPaneUsesUndertitleNotPlainBorder(t *testing.T) {
	p := baseParams(3, 40)
	p.ExitStatus = &ExitStatus{Code: 0, Exited: false}
	chunks := Render(p)
	last := chunks[len(chunks)-1]
	if len(last.Bytes) == 0 {
		t.Fatal("held pane's bottom row should not be empty")
	}
}

func TestCornerUsesRoundedGlyphsWhenRequested(t *testing.T) {
	p := baseParams(3, 10)
	p.Style.RoundedCorners = true
	if got := corner(p, topLeft); got != topLeftRound {
		t.Fatalf("expected rounded top-left corner %q, got %q", topLeftRound, got)
	}

	p.Style.RoundedCorners = false
	if got := corner(p, topLeft); got != topLeft {
		t.Fatalf("expected square top-left corner %q, got %q", topLeft, got)
	}
}

func TestPaletteColorRendersRGBHex(t *testing.T) {
	c := screenmsg.RGBColor(0x11, 0x22, 0x33)
	if got := paletteColor(c); string(got) != "#112233" {
		t.Fatalf("expected #112233, got %s", got)
	}
}

func TestClientColorCyclesDeterministically(t *testing.T) {
	palette := screenmsg.Palette{
		Green: screenmsg.RGBColor(0, 255, 0),
		Blue:  screenmsg.RGBColor(0, 0, 255),
		Red:   screenmsg.RGBColor(255, 0, 0),
	}
	c0, _ := clientColor(palette, 0)
	c3, _ := clientColor(palette, 3)
	if c0 != c3 {
		t.Fatal("client colors should cycle with period 3")
	}
}
