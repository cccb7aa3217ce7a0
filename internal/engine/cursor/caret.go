package cursor

import "fmt"

// Caret is a host cursor: a stable object that keeps its identity while the
// document changes underneath it. Carets are created and owned by a CursorSet.
//
// Caret is not safe for concurrent use; the owning engine serializes access.
type Caret struct {
	id  int
	sel Selection
}

// ID returns the caret's identifier, unique within its CursorSet.
func (c *Caret) ID() int {
	return c.id
}

// Offset returns the caret's head offset.
func (c *Caret) Offset() Offset {
	return c.sel.Head
}

// Selection returns the caret's current selection.
func (c *Caret) Selection() Selection {
	return c.sel
}

// HasSelection returns true if the caret carries a non-empty selection.
func (c *Caret) HasSelection() bool {
	return !c.sel.IsEmpty()
}

// MoveTo collapses the caret to the given offset.
func (c *Caret) MoveTo(offset Offset) {
	if offset < 0 {
		offset = 0
	}
	c.sel = NewCursorSelection(offset)
}

// Select sets the caret's selection.
func (c *Caret) Select(sel Selection) {
	c.sel = sel
}

// String returns a string representation of the caret.
func (c *Caret) String() string {
	return fmt.Sprintf("Caret#%d(%s)", c.id, c.sel)
}
