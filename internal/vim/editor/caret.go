package editor

import "github.com/dshills/vimcore/internal/engine"

// engineCaret wraps a host caret of an EngineEditor.
type engineCaret struct {
	_    [0]func()
	ed   *EngineEditor
	host *engine.Caret
}

func (ed *EngineEditor) wrap(c *engine.Caret) Caret {
	return &engineCaret{ed: ed, host: c}
}

// Carets returns the primary caret in block selection mode and every host
// caret otherwise.
func (ed *EngineEditor) Carets() []Caret {
	if ed.host.IsBlockSelection() {
		return []Caret{ed.PrimaryCaret()}
	}
	hosts := ed.host.Carets()
	carets := make([]Caret, len(hosts))
	for i, c := range hosts {
		carets[i] = ed.wrap(c)
	}
	return carets
}

// ForEachCaret calls fn for the primary caret in block selection mode and
// for every host caret otherwise.
func (ed *EngineEditor) ForEachCaret(fn func(Caret)) {
	if ed.host.IsBlockSelection() {
		fn(ed.PrimaryCaret())
		return
	}
	ed.host.RunForEachCaret(func(c *engine.Caret) {
		fn(ed.wrap(c))
	})
}

// PrimaryCaret returns the primary caret.
func (ed *EngineEditor) PrimaryCaret() Caret {
	return ed.wrap(ed.host.PrimaryCaret())
}

func (c *engineCaret) Editor() Editor {
	return c.ed
}

func (c *engineCaret) Offset() Offset {
	return Offset(c.ed.host.CaretOffset(c.host))
}

func (c *engineCaret) Selection() (Range, bool) {
	sel := c.ed.host.CaretSelection(c.host)
	if sel.IsEmpty() {
		return Range{}, false
	}
	return NewRange(Offset(sel.Start()), Offset(sel.End())), true
}

func (c *engineCaret) MoveToOffset(offset Offset) error {
	return c.ed.host.MoveCaret(c.host, int(offset))
}

func (c *engineCaret) Same(other Caret) bool {
	o, ok := other.(*engineCaret)
	return ok && o.host == c.host
}
