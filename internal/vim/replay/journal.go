package replay

import (
	"errors"
	"fmt"

	"github.com/dshills/vimcore/internal/vim/editor"
)

// operation is one applied edit and the text needed to reverse it.
type operation struct {
	at      editor.Offset
	oldText string // removed text, empty for an insertion
	newText string // inserted text, empty for a deletion
}

func (op operation) undo(ed editor.Editor) error {
	if op.newText != "" {
		end := op.at + editor.Offset(len([]rune(op.newText)))
		if err := ed.DeleteRange(op.at, end); err != nil {
			return err
		}
	}
	if op.oldText != "" {
		return ed.InsertText(op.at, op.oldText)
	}
	return nil
}

// caretMark is a caret position recorded before replay.
type caretMark struct {
	caret  editor.Caret
	offset editor.Offset
}

// journal records edits made during one replay so they can be reversed.
type journal struct {
	ed    editor.Editor
	ops   []operation
	marks []caretMark
}

func newJournal(ed editor.Editor) *journal {
	j := &journal{ed: ed}
	for _, c := range ed.Carets() {
		j.marks = append(j.marks, caretMark{caret: c, offset: c.Offset()})
	}
	return j
}

func (j *journal) insert(at editor.Offset, text string) error {
	if err := j.ed.InsertText(at, text); err != nil {
		return err
	}
	j.ops = append(j.ops, operation{at: at, newText: text})
	return nil
}

func (j *journal) delete(left, right editor.Offset) error {
	removed, err := j.ed.Text(left, right)
	if err != nil {
		return err
	}
	if err := j.ed.DeleteRange(left, right); err != nil {
		return err
	}
	j.ops = append(j.ops, operation{at: left, oldText: removed})
	return nil
}

// len returns the number of recorded edits.
func (j *journal) len() int {
	return len(j.ops)
}

// rollback reverses every recorded edit, newest first, then restores the
// caret positions.
func (j *journal) rollback() error {
	var errs []error
	for i := len(j.ops) - 1; i >= 0; i-- {
		if err := j.ops[i].undo(j.ed); err != nil {
			errs = append(errs, fmt.Errorf("undo edit at %d: %w", j.ops[i].at, err))
		}
	}
	j.ops = nil
	for _, m := range j.marks {
		if err := m.caret.MoveToOffset(m.offset); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
