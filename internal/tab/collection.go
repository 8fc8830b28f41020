package tab

import (
	"sort"
	"sync"

	"github.com/screenmux/screenmux/internal/screenmsg"
)

// Collection is the ordered set of a session's tabs, keyed by id but
// iterated in position order, mirroring zellij's BTreeMap<usize, Tab>
// keyed by position (the Screen renumbers Position on every structural
// change so iteration order and the keys agree).
type Collection struct {
	mu   sync.Mutex
	tabs map[screenmsg.TabID]Capability
}

// NewCollection returns an empty tab collection.
func NewCollection() *Collection {
	return &Collection{tabs: make(map[screenmsg.TabID]Capability)}
}

// Insert adds t to the collection.
func (c *Collection) Insert(t Capability) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tabs[t.ID()] = t
}

// Remove deletes the tab with id from the collection.
func (c *Collection) Remove(id screenmsg.TabID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tabs, id)
}

// Get returns the tab with id, if present.
func (c *Collection) Get(id screenmsg.TabID) (Capability, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tabs[id]
	return t, ok
}

// Len returns the number of tabs currently held.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tabs)
}

// Ordered returns every tab sorted by Position, the order the tab bar and
// index-based operations (GoToTab, SwitchTabNext/Prev) use.
func (c *Collection) Ordered() []Capability {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Capability, 0, len(c.tabs))
	for _, t := range c.tabs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position() < out[j].Position() })
	return out
}

// NextTabID returns the smallest non-negative TabID not currently in use,
// mirroring get_new_tab_index's "first gap, else one past the max" rule.
func (c *Collection) NextTabID() screenmsg.TabID {
	c.mu.Lock()
	defer c.mu.Unlock()
	used := make(map[screenmsg.TabID]struct{}, len(c.tabs))
	for id := range c.tabs {
		used[id] = struct{}{}
	}
	for i := screenmsg.TabID(0); ; i++ {
		if _, ok := used[i]; !ok {
			return i
		}
	}
}

// RenumberPositions reassigns Position 0..n-1 to every tab in id order.
// The Screen does not call it: closing a tab shifts the positions of the
// tabs after it down by one instead.
func (c *Collection) RenumberPositions() {
	c.mu.Lock()
	ordered := make([]Capability, 0, len(c.tabs))
	for _, t := range c.tabs {
		ordered = append(ordered, t)
	}
	c.mu.Unlock()

	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID() < ordered[j].ID() })
	for i, t := range ordered {
		t.SetPosition(i)
	}
}

// TabAtPosition returns the tab whose Position equals pos.
func (c *Collection) TabAtPosition(pos int) (Capability, bool) {
	for _, t := range c.Ordered() {
		if t.Position() == pos {
			return t, true
		}
	}
	return nil, false
}
