package editor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/vimcore/internal/engine"
)

// EngineEditor is the Editor implementation over an in-memory engine.
//
// The zero-size func field makes EngineEditor values incomparable, so an
// accidental a == b on values fails to compile. Two *EngineEditor for the
// same engine are different pointers but the same editor; use Same.
type EngineEditor struct {
	_    [0]func()
	host *engine.Engine
}

// For wraps e. The wrapper holds a non-owning reference to the engine.
func For(e *engine.Engine) *EngineEditor {
	return &EngineEditor{host: e}
}

// Host returns the wrapped engine.
func (ed *EngineEditor) Host() *engine.Engine {
	return ed.host
}

// ID returns the engine's identity.
func (ed *EngineEditor) ID() uuid.UUID {
	return ed.host.ID()
}

// Same reports whether other wraps the same engine.
func (ed *EngineEditor) Same(other Editor) bool {
	return other != nil && ed.ID() == other.ID()
}

// FileSize returns the number of characters in the document.
func (ed *EngineEditor) FileSize() int {
	return ed.host.Len()
}

// LineCount returns the number of lines, at least 1.
func (ed *EngineEditor) LineCount() int {
	return max(ed.host.LineCount(), 1)
}

// CharAt returns the character at p.
func (ed *EngineEditor) CharAt(p Pointer) (rune, error) {
	r, err := ed.host.RuneAt(int(p))
	if err != nil {
		return 0, fmt.Errorf("%w: pointer %d, file size %d", ErrOutOfRange, p, ed.FileSize())
	}
	return r, nil
}

// Text returns the characters in [left, right).
func (ed *EngineEditor) Text(left, right Offset) (string, error) {
	if err := ed.checkRange(left, right); err != nil {
		return "", err
	}
	return ed.host.TextRange(int(left), int(right))
}

// InsertText inserts text at the given offset.
func (ed *EngineEditor) InsertText(at Offset, text string) error {
	if text == "" {
		return nil
	}
	if at < 0 || int(at) > ed.FileSize() {
		return fmt.Errorf("%w: offset %d, file size %d", ErrOutOfRange, at, ed.FileSize())
	}
	_, err := ed.host.Insert(int(at), text)
	return err
}

// DeleteRange removes [left, right). Guarded text is refused by the engine
// with engine.ErrGuarded.
func (ed *EngineEditor) DeleteRange(left, right Offset) error {
	if err := ed.checkRange(left, right); err != nil {
		return err
	}
	_, err := ed.host.Delete(int(left), int(right))
	return err
}

func (ed *EngineEditor) checkRange(left, right Offset) error {
	if left < 0 || left > right || int(right) > ed.FileSize() {
		return fmt.Errorf("%w: %s, file size %d", ErrInvalidRange, NewRange(left, right), ed.FileSize())
	}
	return nil
}

// AddLine inserts a line break so a new line exists at index at.
//
// For an existing line the break goes before the previous line's
// terminator, the way pressing Enter at the end of that line would. This
// keeps marks on the previous line where they are. If a guard covering that
// terminator ends right after it, the break goes after it instead. Past the
// last line the break is appended to the document. Lines beyond that are
// refused before anything changes.
func (ed *EngineEditor) AddLine(at LineOffset) (LinePointer, error) {
	if at < 0 || int(at) > ed.LineCount() {
		return LinePointer{}, fmt.Errorf("%w: line %d of %d", ErrOutOfRange, at, ed.LineCount())
	}

	var offset int
	if int(at) < ed.LineCount() {
		offset = max(ed.host.LineStartOffset(int(at))-1, 0)
		if g, ok := ed.host.OffsetGuard(offset); ok && g.End == offset+1 {
			offset++
		}
	} else {
		offset = ed.FileSize()
	}

	if _, err := ed.host.Insert(offset, "\n"); err != nil {
		return LinePointer{}, err
	}
	return NewLinePointer(at, ed)
}

// LineRange returns [lineStart, lineEnd) for the line.
func (ed *EngineEditor) LineRange(line LinePointer) (Offset, Offset) {
	l := int(line.Line())
	return Offset(ed.host.LineStartOffset(l)), Offset(ed.host.LineEndOffset(l))
}

// LineOf returns the line containing offset. Offsets past the end map to the
// last line.
func (ed *EngineEditor) LineOf(offset Offset) LinePointer {
	return LinePointer{line: LineOffset(ed.host.LineAt(int(offset))), ed: ed}
}

// IsWritable reports whether the engine allows modification and grants this
// write request. Both are always consulted.
func (ed *EngineEditor) IsWritable() bool {
	allowed := ed.host.IsModificationAllowed()
	requested := ed.host.RequestWriting()
	return allowed && requested
}

// SearchDeletable resolves r against the engine's guards.
func (ed *EngineEditor) SearchDeletable(r Range, shift LineDeleteShift) (Range, LineDeleteShift, error) {
	return SearchDeletable(ed.host, r, shift)
}

// IsGuarded reports whether err was caused by an edit touching a guard.
func IsGuarded(err error) bool {
	return errors.Is(err, engine.ErrGuarded)
}
