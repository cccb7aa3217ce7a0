package editor

import (
	"errors"
	"testing"

	"github.com/dshills/vimcore/internal/engine"
	"github.com/dshills/vimcore/internal/engine/buffer"
)

func TestSearchDeletableUnguarded(t *testing.T) {
	e := engine.New(engine.WithContent("abc\ndef\nghi"))

	for _, shift := range []LineDeleteShift{NoNL, NLOnEnd, NLOnStart} {
		r, got, err := SearchDeletable(e, NewRange(4, 8), shift)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", shift, err)
		}
		if r != NewRange(4, 8) || got != shift {
			t.Errorf("%s: got %s %s, want unchanged", shift, r, got)
		}
	}
}

func TestSearchDeletableTransitions(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		guards    [][2]int
		r         Range
		shift     LineDeleteShift
		wantRange Range
		wantShift LineDeleteShift
		wantErr   bool
	}{
		{
			name:      "last line newline guarded shifts left",
			text:      "abc\ndef\n",
			guards:    [][2]int{{7, 8}},
			r:         NewRange(4, 8),
			shift:     NLOnEnd,
			wantRange: NewRange(3, 7),
			wantShift: NLOnStart,
		},
		{
			name:      "leading newline guarded drops it",
			text:      "abc\ndef",
			guards:    [][2]int{{3, 4}},
			r:         NewRange(3, 7),
			shift:     NLOnStart,
			wantRange: NewRange(4, 7),
			wantShift: NoNL,
		},
		{
			name:      "both newlines guarded keeps content only",
			text:      "ab\ncd\nef",
			guards:    [][2]int{{2, 3}, {5, 6}},
			r:         NewRange(3, 6),
			shift:     NLOnEnd,
			wantRange: NewRange(3, 5),
			wantShift: NoNL,
		},
		{
			name:    "content guarded is unresolvable",
			text:    "ab\ncd\nef",
			guards:  [][2]int{{3, 5}},
			r:       NewRange(3, 6),
			shift:   NLOnEnd,
			wantErr: true,
		},
		{
			name:    "no newline and guarded",
			text:    "abc",
			guards:  [][2]int{{1, 2}},
			r:       NewRange(0, 3),
			shift:   NoNL,
			wantErr: true,
		},
		{
			name:    "start guarded content",
			text:    "ab\ncd",
			guards:  [][2]int{{3, 4}},
			r:       NewRange(2, 5),
			shift:   NLOnStart,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := []engine.Option{engine.WithContent(tt.text)}
			for _, g := range tt.guards {
				opts = append(opts, engine.WithGuard(g[0], g[1]))
			}
			e := engine.New(opts...)

			r, shift, err := SearchDeletable(e, tt.r, tt.shift)
			if tt.wantErr {
				if !errors.Is(err, ErrGuardedRangeUnresolvable) {
					t.Fatalf("expected ErrGuardedRangeUnresolvable, got %s %s %v", r, shift, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r != tt.wantRange || shift != tt.wantShift {
				t.Errorf("got %s %s, want %s %s", r, shift, tt.wantRange, tt.wantShift)
			}
		})
	}
}

func TestSearchDeletableFloorsAtZero(t *testing.T) {
	e := engine.New(engine.WithContent("abc\n"), engine.WithGuard(3, 4))

	r, shift, err := SearchDeletable(e, NewRange(0, 4), NLOnEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (-1,-1) floors to [0:3), which is unguarded.
	if r != NewRange(0, 3) || shift != NLOnStart {
		t.Errorf("got %s %s, want [0:3) NLOnStart", r, shift)
	}
}

func TestSearchDeletableUnknownShift(t *testing.T) {
	e := engine.New(engine.WithContent("abc"))

	_, _, err := SearchDeletable(e, NewRange(0, 1), LineDeleteShift(42))
	if err == nil {
		t.Fatal("expected error for unknown shift")
	}
	if errors.Is(err, ErrGuardedRangeUnresolvable) {
		t.Error("unknown shift should not look like a guard failure")
	}
}

// overlapsAny checks a range against guards the slow way.
func overlapsAny(r Range, guards []buffer.Guard) bool {
	for _, g := range guards {
		s, e := int(r.Start), int(r.End)
		if s == e {
			if g.Start < s && s < g.End {
				return true
			}
			continue
		}
		if s < g.End && g.Start < e {
			return true
		}
	}
	return false
}

// candidates lists every range the resolver may return for r and shift.
func candidates(r Range, shift LineDeleteShift) []Range {
	var out []Range
	for _, step := range shiftTable[shift] {
		out = append(out, r.Shift(step.dStart, step.dEnd))
	}
	return out
}

func TestSearchDeletableNeverReturnsGuardedRange(t *testing.T) {
	const text = "ab\ncd\nef"
	n := len(text)

	var configs [][][2]int
	for s := 0; s < n; s++ {
		for e := s + 1; e <= n; e++ {
			configs = append(configs, [][2]int{{s, e}})
			for s2 := e + 1; s2 < n; s2++ {
				for e2 := s2 + 1; e2 <= n; e2++ {
					configs = append(configs, [][2]int{{s, e}, {s2, e2}})
				}
			}
		}
	}

	for _, cfg := range configs {
		var opts []engine.Option
		opts = append(opts, engine.WithContent(text))
		for _, g := range cfg {
			opts = append(opts, engine.WithGuard(g[0], g[1]))
		}
		e := engine.New(opts...)
		guards := e.Guards()

		for start := 0; start <= n; start++ {
			for end := start; end <= n; end++ {
				for _, shift := range []LineDeleteShift{NoNL, NLOnEnd, NLOnStart} {
					in := NewRange(Offset(start), Offset(end))
					r, _, err := SearchDeletable(e, in, shift)

					var anyFree bool
					for _, c := range candidates(in, shift) {
						if c.IsValid() && !overlapsAny(c, guards) {
							anyFree = true
						}
					}

					if err != nil {
						if anyFree {
							t.Errorf("guards %v, %s %s: failed although a free candidate exists", cfg, in, shift)
						}
						continue
					}
					if overlapsAny(r, guards) {
						t.Errorf("guards %v, %s %s: returned guarded range %s", cfg, in, shift, r)
					}
					if r.Start < 0 || r.End < 0 || !r.IsValid() {
						t.Errorf("guards %v, %s %s: returned bad range %s", cfg, in, shift, r)
					}
				}
			}
		}
	}
}

func TestLineDeleteShiftString(t *testing.T) {
	for shift, want := range map[LineDeleteShift]string{
		NoNL:               "NoNL",
		NLOnEnd:            "NLOnEnd",
		NLOnStart:          "NLOnStart",
		LineDeleteShift(9): "LineDeleteShift(9)",
	} {
		if got := shift.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
