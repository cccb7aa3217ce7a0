package luaexpr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/ast"
	"github.com/yuin/gopher-lua/parse"

	"github.com/dshills/vimcore/internal/logging"
	"github.com/dshills/vimcore/internal/vim/script"
)

// Default limits for evaluation.
const (
	DefaultExecutionTimeout = 2 * time.Second
	DefaultCallStackSize    = 256
)

const chunkName = "=expr"

// Parser parses Lua expressions. It is safe for concurrent use.
type Parser struct {
	timeout       time.Duration
	callStackSize int
	logger        *logging.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithExecutionTimeout bounds a single evaluation. Zero or negative leaves
// the default.
func WithExecutionTimeout(d time.Duration) Option {
	return func(p *Parser) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithCallStackSize bounds the Lua call depth of a single evaluation.
func WithCallStackSize(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.callStackSize = n
		}
	}
}

// WithLogger sets the logger used for evaluation diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		timeout:       DefaultExecutionTimeout,
		callStackSize: DefaultCallStackSize,
		logger:        logging.NullLogger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseExpression parses text as exactly one Lua expression.
func (p *Parser) ParseExpression(text string) (script.Expression, error) {
	chunk, err := parse.Parse(strings.NewReader("return "+text), chunkName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", script.ErrInvalidExpression, err)
	}
	if len(chunk) != 1 {
		return nil, fmt.Errorf("%w: expected a single expression", script.ErrInvalidExpression)
	}
	ret, ok := chunk[0].(*ast.ReturnStmt)
	if !ok || len(ret.Exprs) != 1 {
		return nil, fmt.Errorf("%w: expected a single expression", script.ErrInvalidExpression)
	}

	proto, err := lua.Compile(chunk, chunkName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", script.ErrInvalidExpression, err)
	}
	return &expression{parser: p, source: text, proto: proto}, nil
}

type expression struct {
	parser *Parser
	source string
	proto  *lua.FunctionProto
}

// Evaluate runs the compiled expression in a fresh sandboxed state.
func (x *expression) Evaluate(ctx context.Context, env script.Env) (script.Value, error) {
	L := newState(x.parser.callStackSize)
	defer L.Close()

	ctx, cancel := context.WithTimeout(ctx, x.parser.timeout)
	defer cancel()
	L.SetContext(ctx)

	installVim(L, env)

	start := time.Now()
	err := doWithRecovery(func() error {
		L.Push(L.NewFunctionFromProto(x.proto))
		return L.PCall(0, 1, nil)
	})
	x.parser.logger.Debug("lua expression %q evaluated in %s (err=%v)", x.source, time.Since(start), err)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrExecutionTimeout, x.parser.timeout)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("evaluate %q: %w", x.source, err)
	}

	lv := L.Get(-1)
	L.Pop(1)
	return toValue(lv), nil
}
