// Package screenconfig holds the Screen's startup configuration: initial
// grid size, per-session toggles and the default copy sink, modeled on the
// teacher's own application Config/DefaultConfig shape.
package screenconfig

import (
	"github.com/screenmux/screenmux/internal/screenmsg"
)

// Config configures a Screen before its first client connects.
type Config struct {
	Size            screenmsg.Size
	MaxPanes        int
	DrawPaneFrames  bool
	SessionMirrored bool
	CopyOptions     screenmsg.CopyOptions
	DefaultMode     screenmsg.ModeInfo
	BusDepth        int
}

// DefaultConfig returns the configuration a freshly started session boots
// with: independent (non-mirrored) clients, frames on, no pane cap.
func DefaultConfig() Config {
	return Config{
		Size:            screenmsg.Size{Rows: 24, Cols: 80},
		MaxPanes:        0,
		DrawPaneFrames:  true,
		SessionMirrored: false,
		CopyOptions: screenmsg.CopyOptions{
			Clipboard:    screenmsg.ClipboardSystem,
			CopyOnSelect: true,
		},
		DefaultMode: screenmsg.ModeInfo{Mode: screenmsg.ModeNormal},
		BusDepth:    64,
	}
}
