// Package replay types key events into an editor as if entered in insert
// mode, with no key mappings applied.
package replay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/logging"
	"github.com/dshills/vimcore/internal/vim/editor"
	"github.com/dshills/vimcore/internal/vim/register"
)

// ErrUnsupportedKey is returned for keys insert mode replay cannot type.
var ErrUnsupportedKey = errors.New("unsupported key")

// Typist replays key events into an editor.
type Typist struct {
	logger    *logging.Logger
	registers *register.Store
}

// Option configures a Typist.
type Option func(*Typist)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(t *Typist) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithRegisters makes the typist record typed text in the '.' register.
func WithRegisters(s *register.Store) Option {
	return func(t *Typist) {
		t.registers = s
	}
}

// New creates a Typist.
func New(opts ...Option) *Typist {
	t := &Typist{logger: logging.NullLogger}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ExecuteNormalWithoutMapping types keys at every caret of ed in document
// order. Escape ends typing for the current caret. If any key fails, every
// edit made so far is undone and the carets are put back before the error
// is returned.
func (t *Typist) ExecuteNormalWithoutMapping(keys []key.Event, ed editor.Editor) error {
	if len(keys) == 0 {
		return nil
	}
	if !ed.IsWritable() {
		return editor.ErrNotWritable
	}

	t.logger.Debug("replaying %d keys", len(keys))

	j := newJournal(ed)
	var (
		err   error
		typed string
		first = true
	)
	ed.ForEachCaret(func(c editor.Caret) {
		if err != nil {
			return
		}
		var s string
		s, err = t.typeAt(c, keys, j)
		if first {
			typed, first = s, false
		}
	})

	if err != nil {
		n := j.len()
		if rbErr := j.rollback(); rbErr != nil {
			t.logger.Error("rollback of %d edits failed: %v", n, rbErr)
			return errors.Join(err, rbErr)
		}
		t.logger.Debug("rolled back %d edits after: %v", n, err)
		return err
	}

	if t.registers != nil && typed != "" {
		t.registers.SetLastInserted(typed)
	}
	return nil
}

// typeAt types keys at one caret and returns the text it inserted.
func (t *Typist) typeAt(c editor.Caret, keys []key.Event, j *journal) (string, error) {
	ed := c.Editor()
	var typed strings.Builder

	for _, ev := range keys {
		at := c.Offset()

		switch ev.Key {
		case key.KeyEscape:
			return typed.String(), nil

		case key.KeyRune, key.KeyEnter, key.KeyTab:
			if ev.IsModified() {
				return typed.String(), fmt.Errorf("%w: %s", ErrUnsupportedKey, ev)
			}
			text := ev.Text
			switch ev.Key {
			case key.KeyEnter:
				text = "\n"
			case key.KeyTab:
				text = "\t"
			}
			if err := j.insert(at, text); err != nil {
				return typed.String(), fmt.Errorf("type %s at %d: %w", ev, at, err)
			}
			typed.WriteString(text)
			if err := c.MoveToOffset(at + editor.Offset(len([]rune(text)))); err != nil {
				return typed.String(), err
			}

		case key.KeyBackspace:
			if at == 0 {
				continue
			}
			if err := deleteChar(ed, j, at-1); err != nil {
				return typed.String(), err
			}
			if err := c.MoveToOffset(at - 1); err != nil {
				return typed.String(), err
			}

		case key.KeyDelete:
			if int(at) >= ed.FileSize() {
				continue
			}
			if err := deleteChar(ed, j, at); err != nil {
				return typed.String(), err
			}

		case key.KeyLeft:
			if at > 0 {
				if err := c.MoveToOffset(at - 1); err != nil {
					return typed.String(), err
				}
			}

		case key.KeyRight:
			if int(at) < ed.FileSize() {
				if err := c.MoveToOffset(at + 1); err != nil {
					return typed.String(), err
				}
			}

		case key.KeyHome, key.KeyEnd:
			start, end := ed.LineRange(ed.LineOf(at))
			target := start
			if ev.Key == key.KeyEnd {
				target = end
			}
			if err := c.MoveToOffset(target); err != nil {
				return typed.String(), err
			}

		default:
			return typed.String(), fmt.Errorf("%w: %s", ErrUnsupportedKey, ev)
		}
	}
	return typed.String(), nil
}

// deleteChar deletes the character at offset unless a guard covers it.
func deleteChar(ed editor.Editor, j *journal, at editor.Offset) error {
	r, _, err := ed.SearchDeletable(editor.NewRange(at, at+1), editor.NoNL)
	if err != nil {
		return fmt.Errorf("delete at %d: %w", at, err)
	}
	return j.delete(r.Start, r.End)
}
