package cursor

import "github.com/dshills/vimcore/internal/engine/buffer"

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// TransformOffset updates an offset after an edit.
// Returns the new offset position.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset Offset, edit Edit) Offset {
	if edit.Range.End <= offset {
		return offset + edit.Delta()
	}
	if edit.Range.Start >= offset {
		return offset
	}
	return edit.Range.Start + edit.NewLen
}

// TransformOffsetSticky is like TransformOffset but decides what happens when
// text is inserted exactly at the offset. A sticky offset stays before the
// inserted text; a non-sticky one moves past it.
func TransformOffsetSticky(offset Offset, edit Edit, sticky bool) Offset {
	if edit.Range.IsEmpty() && edit.Range.Start == offset {
		if sticky {
			return offset
		}
		return offset + edit.NewLen
	}
	return TransformOffset(offset, edit)
}

// TransformSelection updates a selection after an edit.
// The anchor sticks in place for insertions at it; the head moves past them.
func TransformSelection(sel Selection, edit Edit) Selection {
	if sel.IsEmpty() {
		head := TransformOffsetSticky(sel.Head, edit, false)
		return Selection{Anchor: head, Head: head}
	}
	return Selection{
		Anchor: TransformOffsetSticky(sel.Anchor, edit, true),
		Head:   TransformOffsetSticky(sel.Head, edit, false),
	}
}

// TransformCursorSet updates every caret in a cursor set after an edit.
func TransformCursorSet(cs *CursorSet, edit Edit) {
	if edit.IsNoOp() {
		return
	}
	for _, c := range cs.carets {
		c.sel = TransformSelection(c.sel, edit)
	}
	cs.sort()
}
