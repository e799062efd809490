package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestRectFIntersects(t *testing.T) {
	player := RectF{X: 50, Y: 290, W: 30, H: 30}

	tests := []struct {
		name     string
		other    RectF
		expected bool
	}{
		{"overlap", RectF{X: 75, Y: 280, W: 10, H: 40}, true},
		{"touching right edge", RectF{X: 80, Y: 280, W: 10, H: 40}, false},
		{"touching left edge", RectF{X: 40, Y: 280, W: 10, H: 40}, false},
		{"above", RectF{X: 55, Y: 250, W: 40, H: 20}, false},
		{"sharing top edge", RectF{X: 55, Y: 270, W: 40, H: 20}, false},
		{"fractional overlap", RectF{X: 79.9, Y: 300, W: 10, H: 20}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := player.Intersects(tc.other); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.other.Intersects(player); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}
