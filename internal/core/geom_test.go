package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "shared vertical edge (tile sized)",
			a:        NewRect(0, 0, 50, 50),
			b:        NewRect(50, 0, 50, 50),
			expected: false,
		},
		{
			name:     "shared horizontal edge",
			a:        NewRect(0, 0, 50, 50),
			b:        NewRect(0, 50, 50, 50),
			expected: false,
		},
		{
			name:     "shared corner only",
			a:        NewRect(0, 0, 50, 50),
			b:        NewRect(50, 50, 50, 50),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "single pixel overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9, 9, 10, 10),
			expected: true,
		},
		{
			name:     "frog on a car lane",
			a:        NewRect(275, 450, 50, 50),
			b:        NewRect(240, 450, 100, 50),
			expected: true,
		},
		{
			name:     "frog one lane below a car",
			a:        NewRect(275, 500, 50, 50),
			b:        NewRect(240, 450, 100, 50),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Collision must be symmetric
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectEdgesAndOffset(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	moved := r.Offset(-5, 50)
	if moved != NewRect(0, 60, 20, 15) {
		t.Errorf("Offset() = %+v, expected {0 60 20 15}", moved)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		a, n, expected int
	}{
		{601, 600, 1},
		{600, 600, 0},
		{599, 600, 599},
		{0, 600, 0},
		{-3, 600, 597},
		{-600, 600, 0},
		{-1201, 600, 599},
	}

	for _, tc := range tests {
		result := Mod(tc.a, tc.n)
		if result != tc.expected {
			t.Errorf("Mod(%d, %d) = %d, expected %d", tc.a, tc.n, result, tc.expected)
		}
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
