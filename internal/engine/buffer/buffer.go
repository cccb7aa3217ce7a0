package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrGuarded          = errors.New("modification touches a guarded range")
)

// Offset is a character (rune) position in the buffer.
type Offset = int

// Buffer is an in-memory text document addressed by character offsets.
// It maintains a line index and a sorted set of guarded (read-only) ranges.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       []rune
	lineStarts []Offset // start offset of every line; empty for empty text
	guards     []Guard  // sorted by Start, non-overlapping
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferFromString creates a buffer with initial content.
// CRLF and CR line endings are normalized to LF.
func NewBufferFromString(s string) *Buffer {
	b := NewBuffer()
	b.text = []rune(normalizeLineEndings(s))
	b.reindex()
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	// Read everything first; CRLF pairs may straddle read boundaries.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data)), nil
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// reindex rebuilds the line start table. Caller must hold the write lock.
func (b *Buffer) reindex() {
	b.lineStarts = b.lineStarts[:0]
	if len(b.text) == 0 {
		return
	}
	b.lineStarts = append(b.lineStarts, 0)
	for i, r := range b.text {
		if r == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.text)
}

// TextRange returns text in the range [start, end).
func (b *Buffer) TextRange(start, end Offset) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if start < 0 || start > end || end > len(b.text) {
		return "", ErrRangeInvalid
	}
	return string(b.text[start:end]), nil
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// RuneAt returns the character at the given offset.
func (b *Buffer) RuneAt(offset Offset) (rune, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= len(b.text) {
		return 0, ErrOffsetOutOfRange
	}
	return b.text[offset], nil
}

// LineCount returns the number of lines. An empty buffer has zero lines;
// text ending in a newline has a trailing empty line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// LineStartOffset returns the offset of the first character of a line.
// Lines past the end map to the end of the buffer.
func (b *Buffer) LineStartOffset(line int) Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineStart(line)
}

func (b *Buffer) lineStart(line int) Offset {
	if line <= 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.text)
	}
	return b.lineStarts[line]
}

// LineEndOffset returns the offset of the end of a line, before its newline.
// The result is the same for "xyz" and "xyz\n".
func (b *Buffer) LineEndOffset(line int) Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 {
		line = 0
	}
	if line+1 < len(b.lineStarts) {
		return b.lineStarts[line+1] - 1
	}
	return len(b.text)
}

// LineAt returns the line containing the given offset.
// Offsets past the end map to the last line.
func (b *Buffer) LineAt(offset Offset) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.lineStarts) == 0 || offset <= 0 {
		return 0
	}
	// First line whose start is beyond offset, minus one.
	i := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	})
	return i - 1
}

// LineText returns the text of a line without its newline.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lineStarts) {
		return ""
	}
	end := len(b.text)
	if line+1 < len(b.lineStarts) {
		end = b.lineStarts[line+1] - 1
	}
	return string(b.text[b.lineStarts[line]:end])
}

// Write Operations

// Insert inserts text at the given offset and returns the edit applied.
// The text is stored as given; only loading normalizes line endings.
// Inserting strictly inside a guarded range fails with ErrGuarded.
func (b *Buffer) Insert(offset Offset, text string) (Edit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > len(b.text) {
		return Edit{}, ErrOffsetOutOfRange
	}
	if g, ok := b.guardAt(NewRange(offset, offset)); ok {
		return Edit{}, &GuardError{Guard: g}
	}

	ins := []rune(text)
	edit := NewInsert(offset, len(ins))
	if len(ins) == 0 {
		return edit, nil
	}

	out := make([]rune, 0, len(b.text)+len(ins))
	out = append(out, b.text[:offset]...)
	out = append(out, ins...)
	out = append(out, b.text[offset:]...)
	b.text = out
	b.reindex()
	b.shiftGuards(edit)

	return edit, nil
}

// Delete removes text in the range [start, end) and returns the removed text.
// Deleting any character of a guarded range fails with ErrGuarded.
func (b *Buffer) Delete(start, end Offset) (string, Edit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > len(b.text) {
		return "", Edit{}, ErrRangeInvalid
	}
	edit := NewDelete(start, end)
	if start == end {
		return "", edit, nil
	}
	if g, ok := b.guardAt(NewRange(start, end)); ok {
		return "", Edit{}, &GuardError{Guard: g}
	}

	removed := string(b.text[start:end])
	b.text = append(b.text[:start], b.text[end:]...)
	b.reindex()
	b.shiftGuards(edit)

	return removed, edit, nil
}
