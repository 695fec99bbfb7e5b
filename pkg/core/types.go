package core

import "fmt"

// ElementType is the structural kind of a widget, fixed per element tag
// when a screen declares its resolver.
type ElementType string

// Element kinds understood by every host.
const (
	TypeAny             ElementType = "Any"
	TypeOther           ElementType = "Other"
	TypeTable           ElementType = "Table"
	TypeCell            ElementType = "Cell"
	TypeTextField       ElementType = "TextField"
	TypeSecureTextField ElementType = "SecureTextField"
	TypeImage           ElementType = "Image"
	TypeStaticText      ElementType = "StaticText"
	TypeButton          ElementType = "Button"
	TypeNavigationBar   ElementType = "NavigationBar"
	TypeAlert           ElementType = "Alert"
	TypeSheet           ElementType = "Sheet"
	TypePickerWheel     ElementType = "PickerWheel"
	TypeSlider          ElementType = "Slider"
	TypeKeyboard        ElementType = "Keyboard"
	TypeScrollView      ElementType = "ScrollView"
)

var knownTypes = map[ElementType]bool{
	TypeAny: true, TypeOther: true, TypeTable: true, TypeCell: true,
	TypeTextField: true, TypeSecureTextField: true, TypeImage: true,
	TypeStaticText: true, TypeButton: true, TypeNavigationBar: true,
	TypeAlert: true, TypeSheet: true, TypePickerWheel: true,
	TypeSlider: true, TypeKeyboard: true, TypeScrollView: true,
}

// Valid reports whether t is one of the declared element kinds.
func (t ElementType) Valid() bool {
	return knownTypes[t]
}

// XCUIType returns the XCUIElementType name used in WDA class chains and page source.
func (t ElementType) XCUIType() string {
	return "XCUIElementType" + string(t)
}

// ParseXCUIType converts an XCUIElementType name back to an ElementType.
// Unknown names map to TypeOther.
func ParseXCUIType(name string) ElementType {
	const prefix = "XCUIElementType"
	if len(name) > len(prefix) && name[:len(prefix)] == prefix {
		t := ElementType(name[len(prefix):])
		if t.Valid() {
			return t
		}
	}
	return TypeOther
}

// Direction is one of the four swipe directions.
type Direction int

// Swipe directions.
const (
	Up Direction = iota
	Right
	Down
	Left
)

// String returns the lowercase direction name used by WDA.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection parses "up", "right", "down" or "left".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "right":
		return Right, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	}
	return 0, fmt.Errorf("invalid direction: %q", s)
}

// Bounds represents element position and size
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of the bounds
func (b Bounds) Center() (int, int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Contains checks if a point is within the bounds
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Empty reports whether the bounds have no area.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Point is a screen coordinate in points.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}
