package cursor

import "sort"

// CursorSet manages the carets of a document.
// Carets are kept in document order. Unlike a selection set, carets that
// land on the same offset are not merged: each keeps its identity until it
// is removed explicitly.
type CursorSet struct {
	carets  []*Caret
	primary *Caret
	nextID  int
}

// NewCursorSet creates a cursor set with a single caret at offset.
func NewCursorSet(offset Offset) *CursorSet {
	cs := &CursorSet{}
	cs.primary = cs.Add(NewCursorSelection(offset))
	return cs
}

// Add creates a caret with the given selection and returns it.
func (cs *CursorSet) Add(sel Selection) *Caret {
	c := &Caret{id: cs.nextID, sel: sel}
	cs.nextID++
	cs.carets = append(cs.carets, c)
	cs.sort()
	return c
}

// Remove removes a caret from the set. The last caret cannot be removed.
// If the primary caret is removed, the first remaining caret becomes primary.
func (cs *CursorSet) Remove(c *Caret) bool {
	if len(cs.carets) <= 1 {
		return false
	}
	for i, existing := range cs.carets {
		if existing == c {
			cs.carets = append(cs.carets[:i], cs.carets[i+1:]...)
			if cs.primary == c {
				cs.primary = cs.carets[0]
			}
			return true
		}
	}
	return false
}

// Clear removes every caret except the primary.
func (cs *CursorSet) Clear() {
	cs.carets = []*Caret{cs.primary}
}

// Primary returns the primary caret.
func (cs *CursorSet) Primary() *Caret {
	return cs.primary
}

// SetPrimary makes c the primary caret. c must belong to the set.
func (cs *CursorSet) SetPrimary(c *Caret) bool {
	for _, existing := range cs.carets {
		if existing == c {
			cs.primary = c
			return true
		}
	}
	return false
}

// All returns the carets in document order.
// The returned slice is safe to modify without affecting the CursorSet.
func (cs *CursorSet) All() []*Caret {
	result := make([]*Caret, len(cs.carets))
	copy(result, cs.carets)
	return result
}

// Count returns the number of carets.
func (cs *CursorSet) Count() int {
	return len(cs.carets)
}

// IsMulti returns true if there are multiple carets.
func (cs *CursorSet) IsMulti() bool {
	return len(cs.carets) > 1
}

// Clamp clamps every caret to the valid range [0, maxOffset].
func (cs *CursorSet) Clamp(maxOffset Offset) {
	for _, c := range cs.carets {
		c.sel = c.sel.Clamp(maxOffset)
	}
}

// sort orders carets by head offset, keeping creation order for ties.
func (cs *CursorSet) sort() {
	sort.SliceStable(cs.carets, func(i, j int) bool {
		return cs.carets[i].sel.Head < cs.carets[j].sel.Head
	})
}
