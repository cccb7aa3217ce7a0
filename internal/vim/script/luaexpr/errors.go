package luaexpr

import "errors"

// Errors for expression evaluation.
var (
	// ErrExecutionTimeout is returned when evaluation exceeds its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoEditor is raised inside Lua when a vim function needs an editor
	// and the evaluation has none.
	ErrNoEditor = errors.New("no editor")
)
