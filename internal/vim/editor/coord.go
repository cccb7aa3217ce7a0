package editor

import "fmt"

// Offset is an absolute, zero-based character position in a document, used
// as an insertion or range boundary. Valid offsets satisfy 0 <= o <= FileSize.
type Offset int

// Pointer is a character position used for reads. It is kept distinct from
// Offset so "where to insert" and "what to read" are never mixed up.
type Pointer int

// LineOffset is a zero-based line index, valid only as of the moment it is
// computed.
type LineOffset int

// Range is a right-exclusive span of offsets: [Start, End).
type Range struct {
	Start Offset
	End   Offset
}

// NewRange creates a range from start and end offsets.
func NewRange(start, end Offset) Range {
	return Range{Start: start, End: end}
}

// Shift moves each endpoint by its delta. Results are floored at zero.
func (r Range) Shift(dStart, dEnd int) Range {
	return Range{
		Start: floor(r.Start + Offset(dStart)),
		End:   floor(r.End + Offset(dEnd)),
	}
}

// IsEmpty returns true if the range covers no characters.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if Start <= End.
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

func floor(o Offset) Offset {
	if o < 0 {
		return 0
	}
	return o
}

// LinePointer is a line reference bound to the editor that created it.
// It holds no storage of its own: only the line index and the editor.
// Line pointers must not be passed to a different editor.
type LinePointer struct {
	line LineOffset
	ed   Editor
}

// NewLinePointer binds line to ed. The line must exist in ed.
func NewLinePointer(line LineOffset, ed Editor) (LinePointer, error) {
	if line < 0 || int(line) >= ed.LineCount() {
		return LinePointer{}, fmt.Errorf("%w: line %d of %d", ErrOutOfRange, line, ed.LineCount())
	}
	return LinePointer{line: line, ed: ed}, nil
}

// Line returns the referenced line index.
func (p LinePointer) Line() LineOffset {
	return p.line
}

// Editor returns the editor the pointer is bound to.
func (p LinePointer) Editor() Editor {
	return p.ed
}

// IsValid reports whether the pointer is bound and its line still exists.
func (p LinePointer) IsValid() bool {
	return p.ed != nil && p.line >= 0 && int(p.line) < p.ed.LineCount()
}

// String returns a human-readable representation of the pointer.
func (p LinePointer) String() string {
	return fmt.Sprintf("line %d", p.line)
}
