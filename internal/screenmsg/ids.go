// Package screenmsg holds the vocabulary shared between the Screen state
// machine and its peer subsystems: client/tab identifiers, the instruction
// set the Screen consumes, and the notifications it emits.
package screenmsg

import "fmt"

// ClientID identifies a connected terminal client.
type ClientID int

func (c ClientID) String() string { return fmt.Sprintf("client(%d)", int(c)) }

// TabID is assigned once at tab creation and never reused within a session.
type TabID int

func (t TabID) String() string { return fmt.Sprintf("tab(%d)", int(t)) }

// PaneID identifies a pane within a tab. Terminal panes carry the pid of
// their backing process; plugin/editor panes carry a synthetic id.
type PaneID struct {
	ID       uint32
	IsPlugin bool
}

func (p PaneID) String() string {
	if p.IsPlugin {
		return fmt.Sprintf("plugin-pane(%d)", p.ID)
	}
	return fmt.Sprintf("terminal-pane(%d)", p.ID)
}

// Position is a 0-indexed (line, column) location used by mouse events and
// scroll/search reporting.
type Position struct {
	Line   int
	Column int
}

// ClientOrTabIndex distinguishes whether NewPane targets a specific client's
// active tab or a tab directly by id (used when a pane is spawned without a
// requesting client, e.g. a plugin-driven split).
type ClientOrTabIndex struct {
	ClientID *ClientID
	TabID    *TabID
}

// ForClient builds a ClientOrTabIndex targeting a client's active tab.
func ForClient(c ClientID) ClientOrTabIndex { return ClientOrTabIndex{ClientID: &c} }

// ForTab builds a ClientOrTabIndex targeting a tab directly.
func ForTab(t TabID) ClientOrTabIndex { return ClientOrTabIndex{TabID: &t} }
