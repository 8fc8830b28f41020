// Package render accumulates the per-client frame the Screen produces on
// each render() pass and serializes it into the raw ANSI byte stream a
// client's terminal expects, using charmbracelet/x/ansi for cursor
// placement sequences rather than hand-rolled escape codes.
package render

import (
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/screenmux/screenmux/internal/screenmsg"
)

// CharacterChunk is one pane's contribution to a client's frame: its
// on-screen origin plus the raw bytes (pane content, possibly wrapped in a
// frame) that should be written starting at that origin.
type CharacterChunk struct {
	Origin screenmsg.Position
	Bytes  []byte
}

// Output accumulates CharacterChunks per client across a single render
// pass. The Screen iterates every visible pane, asks it to render, and adds
// the result here; Serialize then flattens each client's chunks into one
// byte stream.
type Output struct {
	perClient map[screenmsg.ClientID][]CharacterChunk
	cursorAt  map[screenmsg.ClientID]screenmsg.Position
	hideCur   map[screenmsg.ClientID]bool
}

// New returns an empty Output ready to accumulate chunks.
func New() *Output {
	return &Output{
		perClient: make(map[screenmsg.ClientID][]CharacterChunk),
		cursorAt:  make(map[screenmsg.ClientID]screenmsg.Position),
		hideCur:   make(map[screenmsg.ClientID]bool),
	}
}

// AddChunk appends a pane's content for a specific client.
func (o *Output) AddChunk(client screenmsg.ClientID, chunk CharacterChunk) {
	o.perClient[client] = append(o.perClient[client], chunk)
}

// AddChunksForAll appends an identical chunk to every client in clients,
// used when a pane frame's non-focused-clients share one rendering.
func (o *Output) AddChunksForAll(clients []screenmsg.ClientID, chunk CharacterChunk) {
	for _, c := range clients {
		o.AddChunk(c, chunk)
	}
}

// SetCursor records where the terminal cursor should land for a client
// after the frame is drawn, e.g. at the focused pane's cursor position.
func (o *Output) SetCursor(client screenmsg.ClientID, pos screenmsg.Position) {
	o.cursorAt[client] = pos
	o.hideCur[client] = false
}

// HideCursor marks a client's cursor as hidden for this frame (no focused
// pane, or the focused pane is a non-interactive overlay).
func (o *Output) HideCursor(client screenmsg.ClientID) {
	o.hideCur[client] = true
}

// Clients returns the set of client ids that received at least one chunk
// or cursor instruction this pass, for the Screen to know who to push to.
func (o *Output) Clients() []screenmsg.ClientID {
	seen := make(map[screenmsg.ClientID]struct{})
	for c := range o.perClient {
		seen[c] = struct{}{}
	}
	for c := range o.cursorAt {
		seen[c] = struct{}{}
	}
	for c := range o.hideCur {
		seen[c] = struct{}{}
	}
	ids := make([]screenmsg.ClientID, 0, len(seen))
	for c := range seen {
		ids = append(ids, c)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Serialize flattens one client's accumulated chunks into a single ANSI
// byte stream: each chunk is preceded by a cursor-position escape so panes
// can be placed independent of write order, followed by a final cursor
// placement (or hide) for the client's own cursor.
func (o *Output) Serialize(client screenmsg.ClientID) []byte {
	var b strings.Builder

	chunks := o.perClient[client]
	for _, chunk := range chunks {
		b.WriteString(ansi.CursorPosition(chunk.Origin.Line+1, chunk.Origin.Column+1))
		b.Write(chunk.Bytes)
	}

	if o.hideCur[client] {
		b.WriteString(ansi.HideCursor)
	} else if pos, ok := o.cursorAt[client]; ok {
		b.WriteString(ansi.CursorPosition(pos.Line+1, pos.Column+1))
		b.WriteString(ansi.ShowCursor)
	}

	return []byte(b.String())
}
