package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 5, 20, 15)
	if r.Right() != 30 || r.Bottom() != 20 {
		t.Errorf("Right/Bottom = %d/%d, expected 30/20", r.Right(), r.Bottom())
	}
}

func TestBoxContainsPointInclusive(t *testing.T) {
	b := Box{X: 100, Y: 200, Size: 75}

	tests := []struct {
		name     string
		px, py   float64
		expected bool
	}{
		{"center", 137.5, 237.5, true},
		{"top-left corner", 100, 200, true},
		{"bottom-right corner", 175, 275, true},
		{"left edge", 100, 250, true},
		{"right edge", 175, 250, true},
		{"just left", 99.999, 250, false},
		{"just right", 175.001, 250, false},
		{"just above", 150, 199.9, false},
		{"just below", 150, 275.1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.ContainsPoint(tc.px, tc.py); got != tc.expected {
				t.Errorf("ContainsPoint(%v, %v) = %v, expected %v", tc.px, tc.py, got, tc.expected)
			}
		})
	}
}
