// Package script defines what the expression pipeline needs from a
// scripting language: a parser, an evaluable expression, and the closed set
// of values an evaluation can produce.
package script

import (
	"context"
	"errors"

	"github.com/dshills/vimcore/internal/vim/editor"
	"github.com/dshills/vimcore/internal/vim/register"
)

// Errors returned by the expression pipeline.
var (
	// ErrInvalidExpression indicates text that does not parse as exactly one
	// expression.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrNotStringable indicates a value that cannot be inserted as text.
	ErrNotStringable = errors.New("using Dictionary as a String")
)

// Env is what an expression can see while it is evaluated.
type Env struct {
	Editor    editor.Editor
	Registers *register.Store
}

// Expression is a parsed expression.
type Expression interface {
	// Evaluate computes the value of the expression. Evaluation stops when
	// ctx is done.
	Evaluate(ctx context.Context, env Env) (Value, error)
}

// Parser turns text into an Expression.
type Parser interface {
	// ParseExpression parses text as a single expression. It fails with an
	// error wrapping ErrInvalidExpression when text is not one.
	ParseExpression(text string) (Expression, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(text string) (Expression, error)

// ParseExpression calls f(text).
func (f ParserFunc) ParseExpression(text string) (Expression, error) {
	return f(text)
}

// Const is an Expression that always evaluates to the same value.
type Const struct {
	V Value
}

// Evaluate returns c.V.
func (c Const) Evaluate(context.Context, Env) (Value, error) {
	return c.V, nil
}
