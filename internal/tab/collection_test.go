package tab

import "testing"

func TestNextTabIDFillsGaps(t *testing.T) {
	c := NewCollection()
	c.Insert(New(0, 0, "a", true))
	c.Insert(New(2, 1, "b", true))

	if got := c.NextTabID(); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestRenumberPositions(t *testing.T) {
	c := NewCollection()
	c.Insert(New(5, 3, "a", true))
	c.Insert(New(2, 1, "b", true))

	c.RenumberPositions()

	first, ok := c.Get(2)
	if !ok || first.Position() != 0 {
		t.Errorf("tab 2 at position %d, want 0", first.Position())
	}
	second, ok := c.Get(5)
	if !ok || second.Position() != 1 {
		t.Errorf("tab 5 at position %d, want 1", second.Position())
	}
}

func TestOrderedSortsByPosition(t *testing.T) {
	c := NewCollection()
	c.Insert(New(0, 2, "a", true))
	c.Insert(New(1, 0, "b", true))
	c.Insert(New(2, 1, "c", true))

	ordered := c.Ordered()
	if len(ordered) != 3 {
		t.Fatalf("got %d tabs, want 3", len(ordered))
	}
	for i, tb := range ordered {
		if tb.Position() != i {
			t.Errorf("tab at index %d has position %d", i, tb.Position())
		}
	}
}
