// Package action implements the editing commands built on the editor
// abstraction: the expression register insert, line deletion and line
// opening.
//
// Actions never return errors. Every failure ends as a Result; failures
// meant for the user are also shown through Status, and anything else is
// logged.
package action

import (
	"errors"
	"fmt"

	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/logging"
	"github.com/dshills/vimcore/internal/vim/editor"
	"github.com/dshills/vimcore/internal/vim/register"
	"github.com/dshills/vimcore/internal/vim/script"
)

// ErrCancelled is returned by an Input when the user abandons the prompt.
var ErrCancelled = errors.New("input cancelled")

// Input reads a line of text from the user.
type Input interface {
	InputString(ed editor.Editor, prompt, initial string) (string, error)
}

// Replayer types keys into an editor without applying mappings.
type Replayer interface {
	ExecuteNormalWithoutMapping(keys []key.Event, ed editor.Editor) error
}

// Status is the user-facing message and error bell.
type Status interface {
	ShowMessage(msg string)
	IndicateError()
}

// Services are the collaborators shared by actions.
type Services struct {
	Input     Input
	Parser    script.Parser
	Registers *register.Store
	Replayer  Replayer
	Status    Status
	Logger    *logging.Logger
}

func (s Services) logger(component string) *logging.Logger {
	l := s.Logger
	if l == nil {
		l = logging.NullLogger
	}
	return l.WithComponent(component)
}

// UserError is a failure reported to the user with a Vim-style message.
type UserError struct {
	Msg string
	Err error
}

func (e *UserError) Error() string {
	return e.Msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func userError(err error, format string, args ...any) *UserError {
	return &UserError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// Messages for common failures.
const (
	msgNotWritable = "E21: Cannot make changes, 'modifiable' is off"
	msgGuarded     = "Cannot modify guarded text"
)

// report turns err into a failed Result. User errors are shown; anything
// else is logged. Both ring the error bell.
func report(s Services, log *logging.Logger, err error) Result {
	var ue *UserError
	if errors.As(err, &ue) {
		if s.Status != nil {
			s.Status.ShowMessage(ue.Msg)
			s.Status.IndicateError()
		}
		return Error(err).WithMessage(ue.Msg)
	}

	log.Error("%v", err)
	if s.Status != nil {
		s.Status.IndicateError()
	}
	return Error(err)
}

// recovered converts a panic value to an error.
func recovered(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}

// classifyEdit maps editing failures the user can cause to user errors.
func classifyEdit(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, editor.ErrNotWritable):
		return userError(err, msgNotWritable)
	case editor.IsGuarded(err), errors.Is(err, editor.ErrGuardedRangeUnresolvable):
		return userError(err, msgGuarded)
	default:
		return err
	}
}

func isUnresolvable(err error) bool {
	return errors.Is(err, editor.ErrGuardedRangeUnresolvable)
}
