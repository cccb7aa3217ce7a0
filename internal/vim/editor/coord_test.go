package editor

import "testing"

func TestRangeShiftFloorsAtZero(t *testing.T) {
	tests := []struct {
		r            Range
		dStart, dEnd int
		want         Range
	}{
		{NewRange(3, 7), -1, -1, NewRange(2, 6)},
		{NewRange(0, 4), -1, -1, NewRange(0, 3)},
		{NewRange(0, 0), -1, -1, NewRange(0, 0)},
		{NewRange(2, 5), 1, 0, NewRange(3, 5)},
	}

	for _, tt := range tests {
		if got := tt.r.Shift(tt.dStart, tt.dEnd); got != tt.want {
			t.Errorf("%s.Shift(%d, %d) = %s, want %s", tt.r, tt.dStart, tt.dEnd, got, tt.want)
		}
	}
}

func TestLinePointerZeroValueIsInvalid(t *testing.T) {
	var p LinePointer
	if p.IsValid() {
		t.Error("zero LinePointer should be invalid")
	}
}
