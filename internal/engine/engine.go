package engine

import (
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/cursor"
)

// Re-export commonly used types for convenience.
type (
	// Offset is a character position in the buffer.
	Offset = buffer.Offset

	// Range represents a character range in the buffer.
	Range = buffer.Range

	// Edit represents an applied edit.
	Edit = buffer.Edit

	// Guard is a read-only range.
	Guard = buffer.Guard

	// Selection represents a caret selection.
	Selection = cursor.Selection

	// Caret is a host caret.
	Caret = cursor.Caret
)

// Engine is the main facade for the host document.
// It combines text storage, guarded ranges and carets into a unified,
// thread-safe API.
type Engine struct {
	mu sync.RWMutex

	id uuid.UUID

	// Core components
	buf     *buffer.Buffer
	cursors *cursor.CursorSet

	// Configuration
	readOnly       bool
	blockSelection bool
	requester      WriteRequester

	// Bumped on every applied edit
	revision uint64

	// Initialization
	initContent string
	initGuards  []Range
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	e.init(buffer.NewBufferFromString(e.initContent))
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	buf, err := buffer.NewBufferFromReader(r)
	if err != nil {
		return nil, err
	}
	e.init(buf)
	return e, nil
}

func (e *Engine) init(buf *buffer.Buffer) {
	if e.id == uuid.Nil {
		e.id = uuid.New()
	}
	e.buf = buf
	e.cursors = cursor.NewCursorSet(0)
	for _, g := range e.initGuards {
		_, _ = e.buf.AddGuard(g.Start, g.End)
	}
	e.initGuards = nil
	e.initContent = ""
}

// ID returns the engine's identity.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// TextRange returns text in the range [start, end).
func (e *Engine) TextRange(start, end Offset) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.TextRange(start, end)
}

// Len returns the number of characters in the buffer.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// LineCount returns the number of lines. An empty document has zero lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// LineText returns the text of a specific line (without newline).
func (e *Engine) LineText(line int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineText(line)
}

// RuneAt returns the character at the given offset.
func (e *Engine) RuneAt(offset Offset) (rune, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RuneAt(offset)
}

// LineStartOffset returns the offset of the start of a line.
func (e *Engine) LineStartOffset(line int) Offset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineStartOffset(line)
}

// LineEndOffset returns the offset of the end of a line (before newline).
func (e *Engine) LineEndOffset(line int) Offset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineEndOffset(line)
}

// LineAt returns the line containing offset.
func (e *Engine) LineAt(offset Offset) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineAt(offset)
}

// Revision returns a counter bumped by every applied edit.
func (e *Engine) Revision() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revision
}

// ============================================================================
// Write Operations
// ============================================================================

// Insert inserts text at the given offset.
func (e *Engine) Insert(offset Offset, text string) (Edit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return Edit{}, ErrReadOnly
	}

	edit, err := e.buf.Insert(offset, text)
	if err != nil {
		return Edit{}, err
	}
	e.applied(edit)
	return edit, nil
}

// Delete removes text in the range [start, end) and returns it.
func (e *Engine) Delete(start, end Offset) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return "", ErrReadOnly
	}

	removed, edit, err := e.buf.Delete(start, end)
	if err != nil {
		return "", err
	}
	e.applied(edit)
	return removed, nil
}

// applied updates carets and the revision after an edit. Caller must hold
// the write lock.
func (e *Engine) applied(edit Edit) {
	if edit.IsNoOp() {
		return
	}
	cursor.TransformCursorSet(e.cursors, edit)
	e.revision++
}

// ============================================================================
// Write Permission
// ============================================================================

// IsModificationAllowed returns false for read-only engines.
func (e *Engine) IsModificationAllowed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.readOnly
}

// SetReadOnly toggles read-only mode.
func (e *Engine) SetReadOnly(readOnly bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.readOnly = readOnly
}

// RequestWriting asks the installed WriteRequester for permission to modify
// the document. Without a requester the request is always granted.
func (e *Engine) RequestWriting() bool {
	e.mu.RLock()
	fn := e.requester
	e.mu.RUnlock()

	if fn == nil {
		return true
	}
	return fn()
}

// ============================================================================
// Guards
// ============================================================================

// AddGuard marks [start, end) as read-only.
func (e *Engine) AddGuard(start, end Offset) (Guard, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.AddGuard(start, end)
}

// Guards returns all guards in document order.
func (e *Engine) Guards() []Guard {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Guards()
}

// RangeGuard returns the guard intersecting [start, end), if any.
func (e *Engine) RangeGuard(start, end Offset) (Guard, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RangeGuard(start, end)
}

// OffsetGuard returns the guard containing the character at offset, if any.
func (e *Engine) OffsetGuard(offset Offset) (Guard, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.OffsetGuard(offset)
}
