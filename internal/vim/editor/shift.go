package editor

import (
	"fmt"

	"github.com/dshills/vimcore/internal/engine/buffer"
)

// LineDeleteShift tells how a line deletion range carries its newline.
type LineDeleteShift int

const (
	// NoNL means the range holds no newline.
	NoNL LineDeleteShift = iota
	// NLOnEnd means the range includes the newline after the content.
	NLOnEnd
	// NLOnStart means the range includes the newline before the content.
	NLOnStart
)

// String returns the name of the shift.
func (s LineDeleteShift) String() string {
	switch s {
	case NoNL:
		return "NoNL"
	case NLOnEnd:
		return "NLOnEnd"
	case NLOnStart:
		return "NLOnStart"
	default:
		return fmt.Sprintf("LineDeleteShift(%d)", int(s))
	}
}

// GuardQuery is the read-only guard lookup a document exposes.
type GuardQuery interface {
	RangeGuard(start, end int) (buffer.Guard, bool)
}

// shiftStep is one transition of the resolver: move the endpoints of the
// candidate and, if the result is unguarded, accept it with the next shift.
type shiftStep struct {
	dStart, dEnd int
	next         LineDeleteShift
}

// shiftTable lists the transitions tried for each shift, in order.
var shiftTable = map[LineDeleteShift][]shiftStep{
	NoNL: {
		{0, 0, NoNL},
	},
	NLOnEnd: {
		{0, 0, NLOnEnd},
		{-1, -1, NLOnStart},
		{0, -1, NoNL},
	},
	NLOnStart: {
		{0, 0, NLOnStart},
		{1, 0, NoNL},
	},
}

// SearchDeletable runs the guarded-range resolver against guards. It never
// modifies the document. The first unguarded candidate wins; when none is
// left the result is ErrGuardedRangeUnresolvable.
func SearchDeletable(guards GuardQuery, r Range, shift LineDeleteShift) (Range, LineDeleteShift, error) {
	steps, ok := shiftTable[shift]
	if !ok {
		return Range{}, shift, fmt.Errorf("unknown line delete shift %s", shift)
	}
	for _, step := range steps {
		candidate := r.Shift(step.dStart, step.dEnd)
		if !candidate.IsValid() {
			continue
		}
		if _, guarded := guards.RangeGuard(int(candidate.Start), int(candidate.End)); !guarded {
			return candidate, step.next, nil
		}
	}
	return Range{}, shift, fmt.Errorf("%w: %s %s", ErrGuardedRangeUnresolvable, r, shift)
}
