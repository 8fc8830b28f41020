package screenmsg

// InputMode is the client-local input mode (leader-key state machine driven
// by the keybinding layer; opaque to the Screen beyond the few modes it
// special-cases on entry/exit).
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeLocked
	ModeScroll
	ModeEnterSearch
	ModeSearch
	ModeRenameTab
	ModeRenamePane
	ModeResize
	ModeMove
	ModePane
	ModeTab
)

// PaletteColor is either the terminal's own ANSI index or an explicit RGB
// triple parsed out of an xparse_color string.
type PaletteColor struct {
	RGB      *[3]uint8
	ANSICode *uint8
}

// RGBColor builds a PaletteColor carrying an explicit RGB triple.
func RGBColor(r, g, b uint8) PaletteColor {
	v := [3]uint8{r, g, b}
	return PaletteColor{RGB: &v}
}

// Palette is the terminal emulator's background/foreground/accent colors.
type Palette struct {
	Bg    PaletteColor
	Fg    PaletteColor
	Black PaletteColor
	Red   PaletteColor
	Green PaletteColor
	Blue  PaletteColor
}

// Style bundles the palette with rendering preferences that the pane frame
// renderer and the Screen itself need (corner glyphs, client cursor colors).
type Style struct {
	Colors         Palette
	RoundedCorners bool
}

// ModeInfo is the per-client snapshot of input mode plus the style that
// should be active while in that mode.
type ModeInfo struct {
	Mode  InputMode
	Style Style
}

// TabInfo is the per-tab, per-client summary pushed to the plugin host on
// every update_tabs() pass.
type TabInfo struct {
	Position                int
	Name                    string
	Active                  bool
	PanesToHide             int
	IsFullscreenActive      bool
	IsSyncPanesActive       bool
	AreFloatingPanesVisible bool
	OtherFocusedClients     []ClientID
}
