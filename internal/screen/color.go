package screen

import (
	"regexp"
	"strconv"

	"github.com/screenmux/screenmux/internal/screenmsg"
)

// xparseColorRe matches the "rgb:RRRR/GGGG/BBBB" body of an OSC 10/11/4
// color-query response, with each channel 1-4 hex digits. Grounded on the
// OSC rgb: reply format parsed via regexp in the pack's terminal-color
// handling.
var xparseColorRe = regexp.MustCompile(`rgb:([0-9A-Fa-f]{1,4})/([0-9A-Fa-f]{1,4})/([0-9A-Fa-f]{1,4})`)

// xparseColor extracts an 8-bit RGB triple from an xterm color-query
// response string, scaling down 16-bit channels when present.
func xparseColor(s string) (r, g, b uint8, ok bool) {
	m := xparseColorRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, false
	}
	channel := func(hex string) uint8 {
		v, _ := strconv.ParseUint(hex, 16, 16)
		maxVal := uint64(1)<<(4*uint(len(hex))) - 1
		return uint8(v * 255 / maxVal)
	}
	return channel(m[1]), channel(m[2]), channel(m[3]), true
}

// updateTerminalBackgroundColor parses an OSC 11 response and updates the
// palette background color used by the frame renderer.
func (s *Screen) updateTerminalBackgroundColor(raw string) {
	if r, g, b, ok := xparseColor(raw); ok {
		s.style.Colors.Bg = screenmsg.RGBColor(r, g, b)
	}
}

// updateTerminalForegroundColor parses an OSC 10 response and updates the
// palette foreground color used by the frame renderer.
func (s *Screen) updateTerminalForegroundColor(raw string) {
	if r, g, b, ok := xparseColor(raw); ok {
		s.style.Colors.Fg = screenmsg.RGBColor(r, g, b)
	}
}

// updateTerminalColorRegisters records OSC 4 palette entries reported by the
// terminal emulator, keyed by register index. Later entries for the same
// register overwrite earlier ones, matching the original's insert-into-map
// semantics.
func (s *Screen) updateTerminalColorRegisters(registers []screenmsg.ColorRegister) {
	if s.colorRegisters == nil {
		s.colorRegisters = make(map[int]string)
	}
	for _, reg := range registers {
		s.colorRegisters[reg.Register] = reg.Sequence
	}
}
