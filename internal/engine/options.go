package engine

import (
	"github.com/google/uuid"

	"github.com/dshills/vimcore/internal/engine/buffer"
)

// WriteRequester is consulted before the engine is modified, in the way a
// version control integration asks to check a file out. Returning false
// refuses the write.
type WriteRequester func() bool

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithWriteRequester installs the hook consulted by RequestWriting.
func WithWriteRequester(fn WriteRequester) Option {
	return func(e *Engine) {
		e.requester = fn
	}
}

// WithGuard marks [start, end) of the initial content as read-only.
// Invalid ranges are ignored.
func WithGuard(start, end int) Option {
	return func(e *Engine) {
		e.initGuards = append(e.initGuards, buffer.NewRange(start, end))
	}
}

// WithBlockSelection starts the engine in block (column) selection mode.
func WithBlockSelection() Option {
	return func(e *Engine) {
		e.blockSelection = true
	}
}

// WithID sets the engine's identity instead of generating a random one.
func WithID(id uuid.UUID) Option {
	return func(e *Engine) {
		e.id = id
	}
}
