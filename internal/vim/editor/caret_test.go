package editor

import (
	"testing"

	"github.com/dshills/vimcore/internal/engine"
)

func TestCaretsNormalMode(t *testing.T) {
	ed := newEditor("aa\nbb\ncc")
	ed.Host().AddCaret(3)
	ed.Host().AddCaret(6)

	carets := ed.Carets()
	if len(carets) != ed.Host().CaretCount() {
		t.Fatalf("expected %d carets, got %d", ed.Host().CaretCount(), len(carets))
	}
	for i, want := range []Offset{0, 3, 6} {
		if carets[i].Offset() != want {
			t.Errorf("caret %d at %d, want %d", i, carets[i].Offset(), want)
		}
	}

	calls := 0
	ed.ForEachCaret(func(Caret) { calls++ })
	if calls != 3 {
		t.Errorf("ForEachCaret called %d times, want 3", calls)
	}
}

func TestCaretsBlockSelectionMode(t *testing.T) {
	ed := newEditor("aa\nbb\ncc", engine.WithBlockSelection())
	ed.Host().AddCaret(3)
	ed.Host().AddCaret(6)

	carets := ed.Carets()
	if len(carets) != 1 {
		t.Fatalf("expected 1 caret in block mode, got %d", len(carets))
	}
	if !carets[0].Same(ed.PrimaryCaret()) {
		t.Error("block mode caret should be the primary")
	}

	var seen []Caret
	ed.ForEachCaret(func(c Caret) { seen = append(seen, c) })
	if len(seen) != 1 || !seen[0].Same(ed.PrimaryCaret()) {
		t.Errorf("ForEachCaret in block mode visited %d carets", len(seen))
	}
}

func TestCaretWrappersAreNotCached(t *testing.T) {
	ed := newEditor("abc")

	a, b := ed.PrimaryCaret(), ed.PrimaryCaret()
	if a == b {
		t.Error("expected a fresh wrapper per call")
	}
	if !a.Same(b) {
		t.Error("wrappers of one host caret should be the same caret")
	}
	if !a.Editor().Same(ed) {
		t.Error("caret reports the wrong editor")
	}
}

func TestCaretMoveAndSelection(t *testing.T) {
	ed := newEditor("hello world")
	c := ed.PrimaryCaret()

	if _, ok := c.Selection(); ok {
		t.Error("new caret should have no selection")
	}
	if err := ed.Host().SelectCaret(ed.Host().PrimaryCaret(), engine.Selection{Anchor: 6, Head: 2}); err != nil {
		t.Fatalf("SelectCaret failed: %v", err)
	}
	r, ok := c.Selection()
	if !ok || r != NewRange(2, 6) {
		t.Errorf("Selection() = %s %v, want [2:6)", r, ok)
	}

	if err := c.MoveToOffset(8); err != nil {
		t.Fatalf("MoveToOffset failed: %v", err)
	}
	if c.Offset() != 8 {
		t.Errorf("Offset() = %d, want 8", c.Offset())
	}
	if _, ok := c.Selection(); ok {
		t.Error("move should drop the selection")
	}
}

func TestCaretFollowsInsert(t *testing.T) {
	ed := newEditor("abc")
	c := ed.PrimaryCaret()
	if err := c.MoveToOffset(1); err != nil {
		t.Fatalf("MoveToOffset failed: %v", err)
	}

	if err := ed.InsertText(0, "xx"); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}
	if c.Offset() != 3 {
		t.Errorf("caret at %d, want 3", c.Offset())
	}
}
