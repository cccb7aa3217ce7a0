package buffer

import "fmt"

// Edit describes a change applied to the buffer: the replaced range and the
// length of the text that took its place.
type Edit struct {
	Range  Range // The range that was replaced
	NewLen int   // Length of the inserted text in characters
}

// NewInsert creates an Edit describing an insertion at offset.
func NewInsert(offset Offset, n int) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewLen: n}
}

// NewDelete creates an Edit describing the removal of [start, end).
func NewDelete(start, end Offset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, +%d)", e.Range.Start, e.NewLen)
	}
	if e.NewLen == 0 {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with +%d", e.Range.String(), e.NewLen)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewLen == 0
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() int {
	return e.NewLen - e.Range.Len()
}
