package editor

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/dshills/vimcore/internal/engine"
)

func newEditor(text string, opts ...engine.Option) *EngineEditor {
	return For(engine.New(append([]engine.Option{engine.WithContent(text)}, opts...)...))
}

func TestLineCountAtLeastOne(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"abc\n", 2},
		{"a\nb\nc", 3},
	}

	for _, tt := range tests {
		if got := newEditor(tt.text).LineCount(); got != tt.want {
			t.Errorf("LineCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestLineCountAfterClearingDelete(t *testing.T) {
	ed := newEditor("one\ntwo\n")

	if err := ed.DeleteRange(0, Offset(ed.FileSize())); err != nil {
		t.Fatalf("DeleteRange failed: %v", err)
	}
	if ed.FileSize() != 0 {
		t.Errorf("expected empty document, got size %d", ed.FileSize())
	}
	if ed.LineCount() != 1 {
		t.Errorf("expected 1 line after clearing, got %d", ed.LineCount())
	}
}

func TestCharAt(t *testing.T) {
	ed := newEditor("héllo")

	r, err := ed.CharAt(1)
	if err != nil {
		t.Fatalf("CharAt failed: %v", err)
	}
	if r != 'é' {
		t.Errorf("expected 'é', got %q", r)
	}

	for _, p := range []Pointer{-1, 5, 10} {
		if _, err := ed.CharAt(p); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("CharAt(%d): expected ErrOutOfRange, got %v", p, err)
		}
	}
}

func TestText(t *testing.T) {
	ed := newEditor("abcdef")

	got, err := ed.Text(1, 4)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if got != "bcd" {
		t.Errorf("expected 'bcd', got %q", got)
	}

	for _, r := range []Range{{4, 1}, {-1, 2}, {2, 7}} {
		if _, err := ed.Text(r.Start, r.End); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("Text%s: expected ErrInvalidRange, got %v", r, err)
		}
	}
}

func TestInsertShiftsLaterText(t *testing.T) {
	const text = "the quick brown fox"
	n := len(text)

	for _, ins := range []string{"XYZ", "a\r\nb", "\r", "\n\n", "e\u0301\u00e9"} {
		shift := utf8.RuneCountInString(ins)
		for at := 0; at <= n; at++ {
			for start := at; start <= n; start++ {
				for end := start; end <= n; end += 3 {
					ed := newEditor(text)
					want, err := ed.Text(Offset(start), Offset(end))
					if err != nil {
						t.Fatalf("Text failed: %v", err)
					}

					if err := ed.InsertText(Offset(at), ins); err != nil {
						t.Fatalf("InsertText failed: %v", err)
					}
					if ed.FileSize() != n+shift {
						t.Fatalf("insert %q: size = %d, want %d", ins, ed.FileSize(), n+shift)
					}
					got, err := ed.Text(Offset(start+shift), Offset(end+shift))
					if err != nil {
						t.Fatalf("Text after insert failed: %v", err)
					}
					if got != want {
						t.Errorf("insert %q at %d: [%d:%d) = %q, want %q", ins, at, start, end, got, want)
					}
				}
			}
		}
	}
}

func TestInsertKeepsCarriageReturns(t *testing.T) {
	ed := newEditor("xyz")

	if err := ed.InsertText(0, "a\r\nb"); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}
	got, err := ed.Text(4, 7)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if got != "xyz" {
		t.Errorf("Text(4, 7) = %q, want %q", got, "xyz")
	}
	if ed.Host().Text() != "a\r\nbxyz" {
		t.Errorf("text = %q", ed.Host().Text())
	}
}

func TestInsertEmptyIsNoOp(t *testing.T) {
	ed := newEditor("abc", engine.WithReadOnly())

	// Empty text never reaches the engine, so even read-only is fine.
	if err := ed.InsertText(1, ""); err != nil {
		t.Errorf("InsertText(\"\") failed: %v", err)
	}
}

func TestInsertOutOfRange(t *testing.T) {
	ed := newEditor("abc")

	if err := ed.InsertText(4, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestDeleteRangeSurfacesGuard(t *testing.T) {
	ed := newEditor("0123456789", engine.WithGuard(3, 6))

	err := ed.DeleteRange(2, 4)
	if !IsGuarded(err) {
		t.Fatalf("expected guard error, got %v", err)
	}
	if ed.FileSize() != 10 {
		t.Errorf("guarded delete changed the document")
	}
}

func TestAddLine(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		guards [][2]int
		at     LineOffset
		want   string
	}{
		{"before previous terminator", "aa\nbb\ncc", nil, 1, "aa\n\nbb\ncc"},
		{"middle line", "aa\nbb\ncc", nil, 2, "aa\nbb\n\ncc"},
		{"first line", "aa\nbb", nil, 0, "\naa\nbb"},
		{"past last line appends", "aa\nbb", nil, 2, "aa\nbb\n"},
		{"empty document", "", nil, 0, "\n"},
		{"empty document past end", "", nil, 1, "\n"},
		{"guard ending at terminator", "aa\nbb", [][2]int{{0, 3}}, 1, "aa\n\nbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []engine.Option
			for _, g := range tt.guards {
				opts = append(opts, engine.WithGuard(g[0], g[1]))
			}
			ed := newEditor(tt.text, opts...)

			p, err := ed.AddLine(tt.at)
			if err != nil {
				t.Fatalf("AddLine failed: %v", err)
			}
			if got := ed.Host().Text(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
			if p.Line() != tt.at || !p.IsValid() {
				t.Errorf("pointer = %s valid=%v, want line %d", p, p.IsValid(), tt.at)
			}
			if !p.Editor().Same(ed) {
				t.Error("pointer bound to another editor")
			}
		})
	}
}

func TestAddLineInsideGuardFails(t *testing.T) {
	// The previous terminator sits strictly inside the guard.
	ed := newEditor("aa\nbb", engine.WithGuard(1, 5))

	if _, err := ed.AddLine(1); !IsGuarded(err) {
		t.Errorf("expected guard error, got %v", err)
	}
}

func TestAddLinePastEndLeavesDocument(t *testing.T) {
	tests := []struct {
		text string
		at   LineOffset
	}{
		{"", 2},
		{"\n", 5},
		{"aa\nbb", 3},
		{"aa", -1},
	}

	for _, tt := range tests {
		ed := newEditor(tt.text)
		if _, err := ed.AddLine(tt.at); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("AddLine(%d) on %q: expected ErrOutOfRange, got %v", tt.at, tt.text, err)
		}
		if got := ed.Host().Text(); got != tt.text {
			t.Errorf("AddLine(%d) changed %q to %q", tt.at, tt.text, got)
		}
	}
}

func TestAddLineRepeatedlyAtEnd(t *testing.T) {
	ed := newEditor("")

	for i := 0; i < 3; i++ {
		at := LineOffset(ed.LineCount())
		p, err := ed.AddLine(at)
		if err != nil {
			t.Fatalf("AddLine(%d) failed: %v", at, err)
		}
		if p.Line() != at || !p.IsValid() {
			t.Errorf("pointer = %s valid=%v, want line %d", p, p.IsValid(), at)
		}
	}
	if got := ed.Host().Text(); got != "\n\n\n" {
		t.Errorf("text = %q, want three newlines", got)
	}
}

func TestLineRange(t *testing.T) {
	with := newEditor("xyz\n")
	without := newEditor("xyz")

	ws, we := with.LineRange(with.LineOf(0))
	ns, ne := without.LineRange(without.LineOf(0))
	if ws != 0 || we != 3 || ns != 0 || ne != 3 {
		t.Errorf("got [%d:%d) and [%d:%d), want [0:3) for both", ws, we, ns, ne)
	}
}

func TestLineOf(t *testing.T) {
	ed := newEditor("ab\ncd\nef")

	for offset, want := range map[Offset]LineOffset{0: 0, 2: 0, 3: 1, 6: 2, 8: 2} {
		if got := ed.LineOf(offset).Line(); got != want {
			t.Errorf("LineOf(%d) = %d, want %d", offset, got, want)
		}
	}
}

func TestNewLinePointerOutOfRange(t *testing.T) {
	ed := newEditor("a\nb")

	if _, err := NewLinePointer(2, ed); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestIsWritable(t *testing.T) {
	tests := []struct {
		name     string
		readOnly bool
		grant    bool
		want     bool
	}{
		{"writable", false, true, true},
		{"read-only", true, true, false},
		{"write refused", false, false, false},
		{"both", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requested := 0
			opts := []engine.Option{engine.WithWriteRequester(func() bool {
				requested++
				return tt.grant
			})}
			if tt.readOnly {
				opts = append(opts, engine.WithReadOnly())
			}
			ed := newEditor("abc", opts...)

			if got := ed.IsWritable(); got != tt.want {
				t.Errorf("IsWritable() = %v, want %v", got, tt.want)
			}
			if requested != 1 {
				t.Errorf("write requester called %d times, want 1", requested)
			}
		})
	}
}

func TestSameUsesHostIdentity(t *testing.T) {
	host := engine.New(engine.WithContent("abc"))
	a, b := For(host), For(host)
	other := For(engine.New(engine.WithContent("abc")))

	if a == b {
		t.Error("wrappers should be distinct pointers")
	}
	if !a.Same(b) {
		t.Error("wrappers of one engine should be the same editor")
	}
	if a.Same(other) {
		t.Error("wrappers of equal text in different engines should differ")
	}
	if a.Same(nil) {
		t.Error("Same(nil) should be false")
	}
}
