// Package cursor provides carets and selections for the editor engine.
//
// The cursor package handles:
//
//   - Text selections with an anchor/head model via Selection
//   - Host carets with stable identity via Caret
//   - Multi-caret support with CursorSet
//   - Caret transformation after buffer edits
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text.
//
// Caret Identity:
//
// A Caret is a pointer-identified object. Callers may hold on to a *Caret
// across edits; TransformCursorSet moves it in place. Carets are never merged
// behind the caller's back, so two carets may share an offset.
//
// Basic usage:
//
//	cs := cursor.NewCursorSet(10)
//	second := cs.Add(cursor.NewCursorSelection(50))
//
//	edit := buffer.NewInsert(0, 5)
//	cursor.TransformCursorSet(cs, edit)
//	// cs.Primary().Offset() == 15, second.Offset() == 55
//
// Thread Safety:
//
// Selection is an immutable value type and safe for concurrent use. Caret
// and CursorSet are not thread-safe and must be protected by the owner.
package cursor
