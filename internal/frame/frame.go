// Package frame renders a pane's border, title bar and undertitle as a pure
// function of its geometry, title text, scroll position and focus clients.
// It is grounded line-for-line on zellij's pane boundary renderer and does
// not itself touch the bus or any shared state.
package frame

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/screenmux/screenmux/internal/render"
	"github.com/screenmux/screenmux/internal/screenmsg"
)

// Glyphs used for the frame's corners and edges; swapped for round-corner
// variants when the active Style asks for them.
const (
	topLeft        = "┌"
	topLeftRound   = "╭"
	topRight       = "┐"
	topRightRound  = "╮"
	bottomLeft     = "└"
	bottomLeftRound = "╰"
	bottomRight    = "┘"
	bottomRightRound = "╯"
	horizontal     = "─"
	vertical       = "│"
	verticalLeft   = "┤"
	verticalRight  = "├"
)

// ExitStatus records how a held pane's backing process finished, for the
// undertitle rendered across the bottom border.
type ExitStatus struct {
	Code   int
	Exited bool // true when the process exited by signal, Code not meaningful
}

// Params describes everything the frame renderer needs about one pane for
// one frame; it carries no identity beyond what it prints.
type Params struct {
	Geom                    screenmsg.Viewport
	Title                   string
	ScrollPosition          int
	ScrollLength            int
	Style                   screenmsg.Style
	Color                   *screenmsg.PaletteColor
	FocusedClient           *screenmsg.ClientID
	IsMainClient            bool
	OtherFocusedClients     []screenmsg.ClientID
	OtherCursorsExistInSession bool
	ExitStatus              *ExitStatus
}

// Render produces the CharacterChunks for a pane frame: one chunk for the
// title on row 0, one for the undertitle (or plain border) on the last row,
// and two (the left and right vertical bars) for every row in between.
func Render(p Params) []render.CharacterChunk {
	var chunks []render.CharacterChunk
	for row := 0; row < p.Geom.Rows; row++ {
		switch {
		case row == 0:
			chunks = append(chunks, render.CharacterChunk{
				Origin: screenmsg.Position{Line: p.Geom.Y, Column: p.Geom.X},
				Bytes:  []byte(renderTitle(p)),
			})
		case row == p.Geom.Rows-1:
			if p.ExitStatus != nil {
				chunks = append(chunks, render.CharacterChunk{
					Origin: screenmsg.Position{Line: p.Geom.Y + row, Column: p.Geom.X},
					Bytes:  []byte(renderHeldUndertitle(p)),
				})
			} else {
				chunks = append(chunks, render.CharacterChunk{
					Origin: screenmsg.Position{Line: p.Geom.Y + row, Column: p.Geom.X},
					Bytes:  []byte(plainBottomRow(p)),
				})
			}
		default:
			left := style(p).Render(vertical)
			right := style(p).Render(vertical)
			chunks = append(chunks, render.CharacterChunk{
				Origin: screenmsg.Position{Line: p.Geom.Y + row, Column: p.Geom.X},
				Bytes:  []byte(left),
			})
			chunks = append(chunks, render.CharacterChunk{
				Origin: screenmsg.Position{Line: p.Geom.Y + row, Column: maxInt(p.Geom.X+p.Geom.Cols-1, p.Geom.X)},
				Bytes:  []byte(right),
			})
		}
	}
	return chunks
}

func style(p Params) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	if p.Color != nil {
		s = s.Foreground(paletteColor(*p.Color))
	}
	return s
}

func paletteColor(c screenmsg.PaletteColor) lipgloss.Color {
	if c.RGB != nil {
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.RGB[0], c.RGB[1], c.RGB[2]))
	}
	if c.ANSICode != nil {
		return lipgloss.Color(fmt.Sprintf("%d", *c.ANSICode))
	}
	return lipgloss.Color("")
}

func corner(p Params, straight string) string {
	if !p.Style.RoundedCorners {
		return straight
	}
	switch straight {
	case topLeft:
		return topLeftRound
	case topRight:
		return topRightRound
	case bottomLeft:
		return bottomLeftRound
	case bottomRight:
		return bottomRightRound
	default:
		return straight
	}
}

func plainBottomRow(p Params) string {
	var b strings.Builder
	for col := 0; col < p.Geom.Cols; col++ {
		switch {
		case col == 0:
			b.WriteString(style(p).Render(corner(p, bottomLeft)))
		case col == p.Geom.Cols-1:
			b.WriteString(style(p).Render(corner(p, bottomRight)))
		default:
			b.WriteString(style(p).Render(horizontal))
		}
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clientCursor(p Params, client screenmsg.ClientID) string {
	color, ok := clientColor(p.Style.Colors, client)
	s := lipgloss.NewStyle()
	if ok {
		s = s.Background(paletteColor(color))
	}
	return s.Render(" ")
}

// clientColor cycles a small fixed palette by client id, mirroring the
// session's per-client cursor color assignment.
func clientColor(p screenmsg.Palette, client screenmsg.ClientID) (screenmsg.PaletteColor, bool) {
	choices := []screenmsg.PaletteColor{p.Green, p.Blue, p.Red}
	if len(choices) == 0 {
		return screenmsg.PaletteColor{}, false
	}
	idx := int(client) % len(choices)
	if idx < 0 {
		idx += len(choices)
	}
	return choices[idx], true
}

func width(s string) int { return runewidth.StringWidth(s) }
