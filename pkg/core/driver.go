package core

import "time"

// QueryRoot is anything elements can be searched under: the whole application,
// a query result, or a single element such as a table cell.
type QueryRoot interface {
	// Descendants returns a query over every descendant of the given kind.
	Descendants(kind ElementType) Query
}

// Query is a lazy set of elements of one kind under a root.
// Nothing is fetched until an element from it is queried or acted on.
type Query interface {
	QueryRoot

	// Matching returns the element whose accessibility identifier is id.
	// Hosts fall back to the accessibility label when no identifier matches.
	Matching(id string) Element

	// Element returns the element at the zero-based ordinal position.
	Element(index int) Element

	// First returns the first match of the query.
	First() Element

	// Count returns how many elements currently match.
	Count() (int, error)
}

// Element is a handle into the live element tree of the application under test.
// Implementations re-resolve the handle on every call; a handle never caches
// the state of the tree between calls.
type Element interface {
	QueryRoot

	// State queries. Host transport failures read as "absent".
	Exists() bool
	Frame() Bounds
	IsHittable() bool
	Value() (string, bool)
	Label() string

	// WaitForExistence polls until the element exists or the timeout elapses.
	// Exhausting the timeout is not an error; it reports false.
	WaitForExistence(timeout time.Duration) bool

	// Gestures.
	Tap() error
	TapAt(offset Point) error
	TypeText(text string) error
	Swipe(direction Direction) error
	AdjustPickerWheel(value string) error
	AdjustSlider(position float64) error

	// Describe returns a human readable locator for failure messages.
	Describe() string
}

// Application is the application under test.
// It is passed explicitly to every page object instead of being reached through
// ambient global state.
type Application interface {
	QueryRoot

	// Launch starts (or relaunches) the application with launch arguments.
	Launch(arguments []string) error

	// Terminate stops the application.
	Terminate() error

	// TapCoordinate taps a point relative to the application's top-left corner.
	TapCoordinate(p Point) error

	// Springboard returns the root for system UI outside the app,
	// such as permission prompts.
	Springboard() QueryRoot
}

// DeleteKey is typed once per character to clear a text input.
const DeleteKey = "\b"
