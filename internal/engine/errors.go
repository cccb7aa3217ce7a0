package engine

import (
	"errors"

	"github.com/dshills/vimcore/internal/engine/buffer"
)

// Errors returned by engine operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the valid buffer range.
	ErrOffsetOutOfRange = buffer.ErrOffsetOutOfRange

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = buffer.ErrRangeInvalid

	// ErrGuarded indicates an edit touched a guarded range.
	ErrGuarded = buffer.ErrGuarded

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrUnknownCaret indicates a caret that does not belong to the engine.
	ErrUnknownCaret = errors.New("caret does not belong to this engine")
)
