package buffer

import (
	"fmt"
	"sort"
)

// Guard is a range of the buffer that the host has marked non-editable.
type Guard struct {
	Range
}

// String returns a human-readable representation of the guard.
func (g Guard) String() string {
	return "guard" + g.Range.String()
}

// GuardError reports an edit rejected because it touches a guard.
type GuardError struct {
	Guard Guard
}

// Error implements the error interface.
func (e *GuardError) Error() string {
	return fmt.Sprintf("%s: %s", ErrGuarded.Error(), e.Guard)
}

// Unwrap returns ErrGuarded so callers can use errors.Is.
func (e *GuardError) Unwrap() error {
	return ErrGuarded
}

// AddGuard marks [start, end) as read-only. Guards that overlap or touch an
// existing guard are merged into it so the set stays sorted and disjoint.
func (b *Buffer) AddGuard(start, end Offset) (Guard, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start >= end || end > len(b.text) {
		return Guard{}, ErrRangeInvalid
	}

	g := Guard{Range: NewRange(start, end)}
	merged := b.guards[:0:0]
	for _, existing := range b.guards {
		if existing.Start <= g.End && g.Start <= existing.End {
			g.Range = g.Union(existing.Range)
			continue
		}
		merged = append(merged, existing)
	}
	merged = append(merged, g)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Start < merged[j].Start
	})
	b.guards = merged
	return g, nil
}

// RemoveGuards clears every guard.
func (b *Buffer) RemoveGuards() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.guards = nil
}

// Guards returns a copy of all guards in start order.
func (b *Buffer) Guards() []Guard {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Guard, len(b.guards))
	copy(out, b.guards)
	return out
}

// RangeGuard returns the first guard intersecting [start, end).
func (b *Buffer) RangeGuard(start, end Offset) (Guard, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.guardAt(NewRange(start, end))
}

// OffsetGuard returns the guard containing the character at offset.
func (b *Buffer) OffsetGuard(offset Offset) (Guard, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, g := range b.guards {
		if g.Contains(offset) {
			return g, true
		}
		if g.Start > offset {
			break
		}
	}
	return Guard{}, false
}

// guardAt finds a guard intersecting r. An empty range intersects a guard only
// when it lies strictly inside it. Caller must hold the lock.
func (b *Buffer) guardAt(r Range) (Guard, bool) {
	for _, g := range b.guards {
		if r.IsEmpty() {
			if g.Start < r.Start && r.Start < g.End {
				return g, true
			}
		} else if g.Overlaps(r) {
			return g, true
		}
		if g.Start >= r.End && !r.IsEmpty() {
			break
		}
	}
	return Guard{}, false
}

// shiftGuards moves guards after an edit. Edits never cut into a guard, so
// only guards at or after the edit move. Caller must hold the write lock.
func (b *Buffer) shiftGuards(e Edit) {
	for i, g := range b.guards {
		if g.Start >= e.Range.End {
			b.guards[i].Range = g.Shift(e.Delta())
		}
	}
}
