package buffer

import (
	"errors"
	"testing"
)

func TestAddGuardMergesOverlapping(t *testing.T) {
	b := NewBufferFromString("0123456789")

	if _, err := b.AddGuard(2, 4); err != nil {
		t.Fatalf("AddGuard failed: %v", err)
	}
	if _, err := b.AddGuard(7, 9); err != nil {
		t.Fatalf("AddGuard failed: %v", err)
	}
	g, err := b.AddGuard(3, 7)
	if err != nil {
		t.Fatalf("AddGuard failed: %v", err)
	}

	if g.Range != NewRange(2, 9) {
		t.Errorf("expected merged guard [2:9), got %s", g)
	}
	if n := len(b.Guards()); n != 1 {
		t.Errorf("expected 1 guard after merge, got %d", n)
	}
}

func TestAddGuardInvalid(t *testing.T) {
	b := NewBufferFromString("abc")

	for _, r := range []Range{{2, 2}, {2, 1}, {0, 4}, {-1, 1}} {
		if _, err := b.AddGuard(r.Start, r.End); !errors.Is(err, ErrRangeInvalid) {
			t.Errorf("AddGuard%s: expected ErrRangeInvalid, got %v", r, err)
		}
	}
}

func TestRangeGuard(t *testing.T) {
	b := NewBufferFromString("0123456789")
	if _, err := b.AddGuard(3, 6); err != nil {
		t.Fatalf("AddGuard failed: %v", err)
	}

	tests := []struct {
		name    string
		r       Range
		guarded bool
	}{
		{"before", NewRange(0, 3), false},
		{"after", NewRange(6, 10), false},
		{"touching start", NewRange(2, 4), true},
		{"touching end", NewRange(5, 7), true},
		{"covering", NewRange(0, 10), true},
		{"inside", NewRange(4, 5), true},
		{"empty at start", NewRange(3, 3), false},
		{"empty at end", NewRange(6, 6), false},
		{"empty inside", NewRange(4, 4), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := b.RangeGuard(tt.r.Start, tt.r.End)
			if ok != tt.guarded {
				t.Errorf("RangeGuard%s = %v, want %v", tt.r, ok, tt.guarded)
			}
		})
	}
}

func TestOffsetGuard(t *testing.T) {
	b := NewBufferFromString("0123456789")
	if _, err := b.AddGuard(3, 6); err != nil {
		t.Fatalf("AddGuard failed: %v", err)
	}

	for offset, want := range map[int]bool{2: false, 3: true, 5: true, 6: false} {
		if _, ok := b.OffsetGuard(offset); ok != want {
			t.Errorf("OffsetGuard(%d) = %v, want %v", offset, ok, want)
		}
	}
}

func TestEditsRefuseGuards(t *testing.T) {
	b := NewBufferFromString("0123456789")
	if _, err := b.AddGuard(3, 6); err != nil {
		t.Fatalf("AddGuard failed: %v", err)
	}

	if _, err := b.Insert(4, "x"); !errors.Is(err, ErrGuarded) {
		t.Errorf("insert inside guard: expected ErrGuarded, got %v", err)
	}
	if _, _, err := b.Delete(5, 7); !errors.Is(err, ErrGuarded) {
		t.Errorf("delete overlapping guard: expected ErrGuarded, got %v", err)
	}

	var guardErr *GuardError
	_, _, err := b.Delete(0, 4)
	if !errors.As(err, &guardErr) {
		t.Fatalf("expected *GuardError, got %T", err)
	}
	if guardErr.Guard.Range != NewRange(3, 6) {
		t.Errorf("expected guard [3:6), got %s", guardErr.Guard)
	}
	if b.Text() != "0123456789" {
		t.Errorf("refused edits changed text: %q", b.Text())
	}
}

func TestGuardsShiftWithEdits(t *testing.T) {
	b := NewBufferFromString("0123456789")
	if _, err := b.AddGuard(3, 6); err != nil {
		t.Fatalf("AddGuard failed: %v", err)
	}

	// Insert at the guard start pushes it right.
	if _, err := b.Insert(3, "ab"); err != nil {
		t.Fatalf("insert at guard boundary failed: %v", err)
	}
	if g := b.Guards()[0]; g.Range != NewRange(5, 8) {
		t.Errorf("after insert: expected [5:8), got %s", g)
	}

	// Insert at the guard end leaves it in place.
	if _, err := b.Insert(8, "c"); err != nil {
		t.Fatalf("insert at guard end failed: %v", err)
	}
	if g := b.Guards()[0]; g.Range != NewRange(5, 8) {
		t.Errorf("after trailing insert: expected [5:8), got %s", g)
	}

	// Delete before the guard pulls it left.
	if _, _, err := b.Delete(0, 2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if g := b.Guards()[0]; g.Range != NewRange(3, 6) {
		t.Errorf("after delete: expected [3:6), got %s", g)
	}
}
