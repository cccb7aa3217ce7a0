// Package editor is the editable-text abstraction every editing command goes
// through. Commands see documents, lines and carets only through the Editor
// and Caret interfaces, never through a concrete host buffer.
package editor

import (
	"errors"

	"github.com/google/uuid"
)

// Errors returned by editor operations.
var (
	// ErrOutOfRange indicates a pointer or line outside the document.
	ErrOutOfRange = errors.New("position out of range")

	// ErrInvalidRange indicates left > right or a bound outside the document.
	ErrInvalidRange = errors.New("invalid range")

	// ErrGuardedRangeUnresolvable indicates no deletable range avoids the
	// document's guarded ranges.
	ErrGuardedRangeUnresolvable = errors.New("no deletable range avoids the guarded text")

	// ErrNotWritable indicates the host refused modification.
	ErrNotWritable = errors.New("document is not writable")
)

// Editor is a document as seen by editing commands.
//
// Editors must never be compared with ==. Use Same, which compares host
// identity. Implementations make value comparison a compile error.
type Editor interface {
	// ID returns the identity of the host document.
	ID() uuid.UUID

	// Same reports whether other wraps the same host document.
	Same(other Editor) bool

	// FileSize returns the number of characters in the document.
	FileSize() int

	// LineCount returns the number of lines. It is at least 1, even for an
	// empty document.
	LineCount() int

	// CharAt returns the character at p. It fails with ErrOutOfRange unless
	// 0 <= p < FileSize().
	CharAt(p Pointer) (rune, error)

	// Text returns the characters in [left, right). It fails with
	// ErrInvalidRange if left > right or a bound is outside the document.
	Text(left, right Offset) (string, error)

	// InsertText inserts text at, shifting later content right. Inserting ""
	// does nothing.
	InsertText(at Offset, text string) error

	// DeleteRange removes [left, right). It does not check guarded ranges;
	// callers resolve a deletable range with SearchDeletable first.
	DeleteRange(left, right Offset) error

	// AddLine inserts a line break so that a new line exists at index at.
	AddLine(at LineOffset) (LinePointer, error)

	// LineRange returns [lineStart, lineEnd) for the line. lineEnd excludes the
	// terminator, so it is the same for "xyz" and "xyz\n".
	LineRange(line LinePointer) (Offset, Offset)

	// LineOf returns the line containing offset.
	LineOf(offset Offset) LinePointer

	// IsWritable reports whether the host allows modification and grants
	// this write request. Commands check it once before mutating.
	IsWritable() bool

	// Carets returns the carets commands should act on, in document order.
	// In block selection mode this is only the primary caret.
	Carets() []Caret

	// ForEachCaret calls fn for every caret Carets would return.
	ForEachCaret(fn func(Caret))

	// PrimaryCaret returns the primary caret.
	PrimaryCaret() Caret

	// SearchDeletable finds a range equivalent to r that avoids every guarded
	// range, together with how its newline is attached.
	SearchDeletable(r Range, shift LineDeleteShift) (Range, LineDeleteShift, error)
}

// Caret is a view of a host caret. It is created on demand and never owns
// the host caret it wraps.
type Caret interface {
	// Editor returns the editor the caret belongs to.
	Editor() Editor

	// Offset returns the caret position.
	Offset() Offset

	// Selection returns the selected range, if the caret has one.
	Selection() (Range, bool)

	// MoveToOffset moves the caret, dropping any selection.
	MoveToOffset(offset Offset) error

	// Same reports whether other wraps the same host caret.
	Same(other Caret) bool
}
