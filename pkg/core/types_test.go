package core

import "testing"

func TestBounds_Center(t *testing.T) {
	tests := []struct {
		bounds    Bounds
		expectedX int
		expectedY int
	}{
		{Bounds{X: 0, Y: 0, Width: 100, Height: 100}, 50, 50},
		{Bounds{X: 10, Y: 20, Width: 100, Height: 200}, 60, 120},
		{Bounds{X: 0, Y: 0, Width: 0, Height: 0}, 0, 0},
	}

	for _, tt := range tests {
		x, y := tt.bounds.Center()
		if x != tt.expectedX || y != tt.expectedY {
			t.Errorf("Bounds%+v.Center() = (%d, %d), want (%d, %d)",
				tt.bounds, x, y, tt.expectedX, tt.expectedY)
		}
	}
}

func TestBounds_Contains(t *testing.T) {
	bounds := Bounds{X: 10, Y: 10, Width: 100, Height: 100}

	tests := []struct {
		x, y     int
		expected bool
	}{
		{50, 50, true},    // Center
		{10, 10, true},    // Top-left corner
		{109, 109, true},  // Just inside bottom-right
		{110, 110, false}, // Exactly at boundary (exclusive)
		{0, 0, false},     // Outside
		{200, 200, false}, // Far outside
	}

	for _, tt := range tests {
		if got := bounds.Contains(tt.x, tt.y); got != tt.expected {
			t.Errorf("Bounds.Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestBounds_Empty(t *testing.T) {
	tests := []struct {
		bounds Bounds
		empty  bool
	}{
		{Bounds{}, true},
		{Bounds{X: 5, Y: 5, Width: 0, Height: 10}, true},
		{Bounds{X: 5, Y: 5, Width: 10, Height: 0}, true},
		{Bounds{Width: -1, Height: 10}, true},
		{Bounds{Width: 1, Height: 1}, false},
	}

	for _, tt := range tests {
		if got := tt.bounds.Empty(); got != tt.empty {
			t.Errorf("Bounds%+v.Empty() = %v, want %v", tt.bounds, got, tt.empty)
		}
	}
}

func TestDirection_RoundTrip(t *testing.T) {
	for _, d := range []Direction{Up, Right, Down, Left} {
		parsed, err := ParseDirection(d.String())
		if err != nil {
			t.Fatalf("ParseDirection(%q) failed: %v", d.String(), err)
		}
		if parsed != d {
			t.Errorf("ParseDirection(%q) = %v, want %v", d.String(), parsed, d)
		}
	}

	if _, err := ParseDirection("diagonal"); err == nil {
		t.Error("expected error for unknown direction")
	}
	if got := Direction(42).String(); got != "direction(42)" {
		t.Errorf("Direction(42).String() = %q", got)
	}
}

func TestElementType_XCUIType(t *testing.T) {
	if got := TypeTable.XCUIType(); got != "XCUIElementTypeTable" {
		t.Errorf("XCUIType() = %q, want XCUIElementTypeTable", got)
	}

	tests := []struct {
		name string
		want ElementType
	}{
		{"XCUIElementTypeStaticText", TypeStaticText},
		{"XCUIElementTypeCell", TypeCell},
		{"XCUIElementTypeWindow", TypeOther},
		{"Button", TypeOther},
		{"", TypeOther},
	}
	for _, tt := range tests {
		if got := ParseXCUIType(tt.name); got != tt.want {
			t.Errorf("ParseXCUIType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestElementType_Valid(t *testing.T) {
	if !TypeKeyboard.Valid() {
		t.Error("TypeKeyboard should be valid")
	}
	if ElementType("Gizmo").Valid() {
		t.Error("unknown type should not be valid")
	}
}
