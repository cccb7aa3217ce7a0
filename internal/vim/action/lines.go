package action

import (
	"sort"
	"strings"

	"github.com/dshills/vimcore/internal/logging"
	"github.com/dshills/vimcore/internal/vim/editor"
	"github.com/dshills/vimcore/internal/vim/register"
)

// DeleteLines deletes whole lines at every caret, like "dd".
type DeleteLines struct {
	s   Services
	log *logging.Logger
}

// NewDeleteLines creates the action. Registers is required.
func NewDeleteLines(s Services) *DeleteLines {
	return &DeleteLines{s: s, log: s.logger("delete-lines")}
}

// lineSpan is an inclusive range of line indexes.
type lineSpan struct {
	first, last int
}

// lineDeletion is the resolved deletion for one span of lines.
type lineDeletion struct {
	r     editor.Range
	shift editor.LineDeleteShift
	text  string // register text: the deleted lines, each ending in "\n"
}

// Execute deletes count lines starting at the line of each caret. Carets
// whose lines touch or overlap delete one joined span. Every range is
// resolved against guards before anything is deleted. If one cannot be
// resolved nothing is deleted.
func (a *DeleteLines) Execute(ed editor.Editor, count int) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = report(a.s, a.log, recovered(r))
		}
	}()

	if count < 1 {
		count = 1
	}
	if !ed.IsWritable() {
		return report(a.s, a.log, userError(editor.ErrNotWritable, msgNotWritable))
	}

	lines := ed.LineCount()
	var spans []lineSpan
	ed.ForEachCaret(func(c editor.Caret) {
		first := int(ed.LineOf(c.Offset()).Line())
		spans = append(spans, lineSpan{first: first, last: min(first+count-1, lines-1)})
	})

	var dels []lineDeletion
	for _, span := range mergeSpans(spans) {
		d, err := planLineDeletion(ed, span)
		if err != nil {
			if editor.IsGuarded(err) || isUnresolvable(err) {
				a.log.Debug("line deletion refused: %v", err)
				return NoOpWithMessage(msgGuarded)
			}
			return report(a.s, a.log, err)
		}
		dels = append(dels, d)
	}

	// Delete back to front so earlier ranges stay valid.
	for i := len(dels) - 1; i >= 0; i-- {
		a.log.Debug("deleting lines %s (%s)", dels[i].r, dels[i].shift)
		if err := ed.DeleteRange(dels[i].r.Start, dels[i].r.End); err != nil {
			return report(a.s, a.log, classifyEdit(err))
		}
	}

	if a.s.Registers != nil {
		var text strings.Builder
		for _, d := range dels {
			text.WriteString(d.text)
		}
		a.s.Registers.SetDelete(text.String(), register.LineWise, false)
	}

	ed.ForEachCaret(func(c editor.Caret) {
		start, _ := ed.LineRange(ed.LineOf(c.Offset()))
		_ = c.MoveToOffset(start)
	})
	return Success()
}

// mergeSpans sorts spans and joins those that overlap or are adjacent, so
// no two deletions share a line or the newline between two lines.
func mergeSpans(spans []lineSpan) []lineSpan {
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].first < spans[j].first
	})
	var out []lineSpan
	for _, sp := range spans {
		if n := len(out); n > 0 && sp.first <= out[n-1].last+1 {
			out[n-1].last = max(out[n-1].last, sp.last)
			continue
		}
		out = append(out, sp)
	}
	return out
}

// planLineDeletion computes and resolves the range deleting the lines of
// span. The newline after the last line goes with it; at the end of the
// document the newline before the first line goes instead.
func planLineDeletion(ed editor.Editor, span lineSpan) (lineDeletion, error) {
	first, err := editor.NewLinePointer(editor.LineOffset(span.first), ed)
	if err != nil {
		return lineDeletion{}, err
	}
	last, err := editor.NewLinePointer(editor.LineOffset(span.last), ed)
	if err != nil {
		return lineDeletion{}, err
	}

	start, _ := ed.LineRange(first)
	_, end := ed.LineRange(last)
	content, err := ed.Text(start, end)
	if err != nil {
		return lineDeletion{}, err
	}

	var (
		r     editor.Range
		shift editor.LineDeleteShift
	)
	switch {
	case span.last < ed.LineCount()-1:
		r, shift = editor.NewRange(start, end+1), editor.NLOnEnd
	case span.first > 0:
		r, shift = editor.NewRange(start-1, end), editor.NLOnStart
	default:
		r, shift = editor.NewRange(0, editor.Offset(ed.FileSize())), editor.NoNL
	}

	resolved, shift, err := ed.SearchDeletable(r, shift)
	if err != nil {
		return lineDeletion{}, err
	}
	return lineDeletion{r: resolved, shift: shift, text: content + "\n"}, nil
}

// OpenLine opens a new empty line above or below each caret, like "o" and
// "O", and moves the caret onto it.
type OpenLine struct {
	s   Services
	log *logging.Logger
}

// NewOpenLine creates the action.
func NewOpenLine(s Services) *OpenLine {
	return &OpenLine{s: s, log: s.logger("open-line")}
}

// Execute opens a line below each caret when below is true and above it
// otherwise.
func (a *OpenLine) Execute(ed editor.Editor, below bool) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = report(a.s, a.log, recovered(r))
		}
	}()

	if !ed.IsWritable() {
		return report(a.s, a.log, userError(editor.ErrNotWritable, msgNotWritable))
	}

	var err error
	ed.ForEachCaret(func(c editor.Caret) {
		if err != nil {
			return
		}
		at := ed.LineOf(c.Offset()).Line()
		if below {
			at++
		}
		var lp editor.LinePointer
		if lp, err = ed.AddLine(at); err != nil {
			return
		}
		start, _ := ed.LineRange(lp)
		err = c.MoveToOffset(start)
	})
	if err != nil {
		return report(a.s, a.log, classifyEdit(err))
	}
	return Success()
}
