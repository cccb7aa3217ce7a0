package engine

import "github.com/dshills/vimcore/internal/engine/cursor"

// Carets returns all carets in document order.
func (e *Engine) Carets() []*Caret {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.All()
}

// PrimaryCaret returns the primary caret.
func (e *Engine) PrimaryCaret() *Caret {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Primary()
}

// CaretCount returns the number of carets.
func (e *Engine) CaretCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Count()
}

// AddCaret adds a caret at offset, clamped to the document.
func (e *Engine) AddCaret(offset Offset) *Caret {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursors.Add(cursor.NewCursorSelection(e.clampLocked(offset)))
}

// RemoveCaret removes a secondary caret. The last caret is never removed.
func (e *Engine) RemoveCaret(c *Caret) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursors.Remove(c)
}

// ClearCarets removes every caret but the primary.
func (e *Engine) ClearCarets() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.Clear()
}

// MoveCaret collapses c to offset, clamped to the document.
func (e *Engine) MoveCaret(c *Caret, offset Offset) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ownsLocked(c) {
		return ErrUnknownCaret
	}
	c.MoveTo(e.clampLocked(offset))
	return nil
}

// SelectCaret sets the selection of c, clamped to the document.
func (e *Engine) SelectCaret(c *Caret, sel Selection) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ownsLocked(c) {
		return ErrUnknownCaret
	}
	c.Select(sel.Clamp(e.buf.Len()))
	return nil
}

// CaretOffset returns the head offset of c.
func (e *Engine) CaretOffset(c *Caret) Offset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return c.Offset()
}

// CaretSelection returns the selection of c.
func (e *Engine) CaretSelection(c *Caret) Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return c.Selection()
}

// RunForEachCaret calls fn once per caret in document order. Edits made by
// fn move the remaining carets in place; carets removed by an earlier call
// are skipped. The engine lock is not held while fn runs.
func (e *Engine) RunForEachCaret(fn func(*Caret)) {
	for _, c := range e.Carets() {
		e.mu.RLock()
		alive := e.ownsLocked(c)
		e.mu.RUnlock()
		if alive {
			fn(c)
		}
	}
}

// IsBlockSelection reports whether the engine is in block selection mode.
func (e *Engine) IsBlockSelection() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.blockSelection
}

// SetBlockSelection toggles block selection mode.
func (e *Engine) SetBlockSelection(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.blockSelection = on
}

func (e *Engine) ownsLocked(c *Caret) bool {
	for _, existing := range e.cursors.All() {
		if existing == c {
			return true
		}
	}
	return false
}

func (e *Engine) clampLocked(offset Offset) Offset {
	if offset < 0 {
		return 0
	}
	if n := e.buf.Len(); offset > n {
		return n
	}
	return offset
}
