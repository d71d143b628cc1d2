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

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	inner := outer.Centered(20, 6)

	if inner.X != 30 || inner.Y != 9 {
		t.Errorf("Centered() origin = (%d, %d), expected (30, 9)", inner.X, inner.Y)
	}
	if inner.W != 20 || inner.H != 6 {
		t.Errorf("Centered() size = %dx%d, expected 20x6", inner.W, inner.H)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Errorf("Lerp(0, 10, 0.5) = %f, expected 5", got)
	}
	if got := Lerp(-3, 3, 0); got != -3 {
		t.Errorf("Lerp(-3, 3, 0) = %f, expected -3", got)
	}
}

func TestAbs(t *testing.T) {
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned wrong value")
	}
	if AbsF(-1.5) != 1.5 || AbsF(2) != 2 {
		t.Error("AbsF returned wrong value")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex      string
		expected Color
	}{
		{"#3b82f6", ColorBrightBlue},
		{"#ef4444", ColorBrightRed},
		{"#10b981", ColorBrightGreen},
		{"#f59e0b", ColorOrange},
		{"#8b5cf6", ColorBrightMagenta},
		{"#6b7280", ColorGray},
		{"#ffffff", ColorBrightWhite},
		{"nope", ColorDefault},
		{"#zzzzzz", ColorDefault},
	}

	for _, tc := range tests {
		t.Run(tc.hex, func(t *testing.T) {
			if got := ParseHexColor(tc.hex); got != tc.expected {
				t.Errorf("ParseHexColor(%q) = %d, expected %d", tc.hex, got, tc.expected)
			}
		})
	}
}
