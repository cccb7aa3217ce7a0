package action

import (
	"context"
	"errors"
	"strings"

	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/logging"
	"github.com/dshills/vimcore/internal/vim/editor"
	"github.com/dshills/vimcore/internal/vim/register"
	"github.com/dshills/vimcore/internal/vim/script"
)

// emptyExpression is evaluated when the prompt is left blank and the
// expression register holds nothing.
const emptyExpression = "''"

// ExpressionEvaluation inserts the value of an expression read at the "="
// prompt, as if it had been typed.
type ExpressionEvaluation struct {
	s   Services
	log *logging.Logger
}

// NewExpressionEvaluation creates the action. Input, Parser, Registers and
// Replayer are required.
func NewExpressionEvaluation(s Services) *ExpressionEvaluation {
	return &ExpressionEvaluation{s: s, log: s.logger("expression")}
}

// Execute runs the action against ed.
func (a *ExpressionEvaluation) Execute(ctx context.Context, ed editor.Editor) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = report(a.s, a.log, recovered(r))
		}
	}()

	a.log.Debug("processing expression evaluation")

	err := a.run(ctx, ed)
	switch {
	case err == nil:
		return Success()
	case errors.Is(err, ErrCancelled):
		return Cancelled()
	default:
		return report(a.s, a.log, err)
	}
}

func (a *ExpressionEvaluation) run(ctx context.Context, ed editor.Editor) error {
	input, err := a.s.Input.InputString(ed, "=", "")
	if err != nil {
		return err
	}
	if strings.TrimSpace(input) == "" {
		input = a.s.Registers.Text(register.Expression)
		if strings.TrimSpace(input) == "" {
			input = emptyExpression
		}
	}

	expr, err := a.s.Parser.ParseExpression(input)
	if err != nil || expr == nil {
		if err == nil {
			err = script.ErrInvalidExpression
		}
		return userError(err, "E15: Invalid expression: %s", input)
	}

	// The register keeps the expression even if evaluation fails below.
	if err := a.s.Registers.StoreTextSpecial(register.Expression, input); err != nil {
		return err
	}

	value, err := expr.Evaluate(ctx, script.Env{Editor: ed, Registers: a.s.Registers})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return userError(err, "E5108: Error executing lua %v", err)
	}

	text, err := script.InsertText(value)
	if err != nil {
		if errors.Is(err, script.ErrNotStringable) {
			return userError(err, "E731: using Dictionary as a String")
		}
		return err
	}

	return a.perform(text, ed)
}

// perform types text with clipboard registers kept local.
func (a *ExpressionEvaluation) perform(text string, ed editor.Editor) error {
	release := a.s.Registers.SuppressClipboard()
	defer release()

	return classifyEdit(a.s.Replayer.ExecuteNormalWithoutMapping(key.ParseKeys(text), ed))
}
