package mock

import (
	"fmt"
	"strconv"
	"time"

	"github.com/devicelab-dev/pageobject/pkg/core"
	"github.com/devicelab-dev/pageobject/pkg/logger"
)

type query struct {
	app        *App
	desc       string
	candidates func() []*Node
}

func (q *query) Descendants(kind core.ElementType) core.Query {
	return &query{
		app:  q.app,
		desc: q.desc + "/" + string(kind),
		candidates: func() []*Node {
			var out []*Node
			seen := make(map[*Node]bool)
			for _, n := range q.candidates() {
				for _, d := range n.descendants(kind, nil) {
					if !seen[d] {
						seen[d] = true
						out = append(out, d)
					}
				}
			}
			return out
		},
	}
}

func (q *query) Matching(id string) core.Element {
	return &element{
		app:  q.app,
		desc: fmt.Sprintf("%s[%q]", q.desc, id),
		resolve: func() *Node {
			candidates := q.candidates()
			for _, n := range candidates {
				if n.Identifier == id {
					return n
				}
			}
			for _, n := range candidates {
				if n.Label == id {
					return n
				}
			}
			return nil
		},
	}
}

func (q *query) Element(index int) core.Element {
	return &element{
		app:  q.app,
		desc: q.desc + "[" + strconv.Itoa(index) + "]",
		resolve: func() *Node {
			candidates := q.candidates()
			if index < 0 || index >= len(candidates) {
				return nil
			}
			return candidates[index]
		},
	}
}

func (q *query) First() core.Element {
	return &element{
		app:  q.app,
		desc: q.desc + ".first",
		resolve: func() *Node {
			candidates := q.candidates()
			if len(candidates) == 0 {
				return nil
			}
			return candidates[0]
		},
	}
}

func (q *query) Count() (int, error) {
	return len(q.candidates()), nil
}

// element is a lazy locator; resolve walks the current tree on every call.
type element struct {
	app     *App
	desc    string
	resolve func() *Node
}

func (e *element) Descendants(kind core.ElementType) core.Query {
	return &query{
		app:  e.app,
		desc: e.desc + "/" + string(kind),
		candidates: func() []*Node {
			n := e.resolve()
			if n == nil {
				return nil
			}
			return n.descendants(kind, nil)
		},
	}
}

func (e *element) Exists() bool {
	return e.resolve() != nil
}

func (e *element) Frame() core.Bounds {
	if n := e.resolve(); n != nil {
		return n.Bounds
	}
	return core.Bounds{}
}

func (e *element) IsHittable() bool {
	n := e.resolve()
	return n != nil && n.Hittable && !n.Bounds.Empty()
}

// Value reports the placeholder for an empty text input, like XCUITest does.
func (e *element) Value() (string, bool) {
	n := e.resolve()
	if n == nil {
		return "", false
	}
	if (!n.HasValue || n.Value == "") && n.PlaceholderValue != "" {
		return n.PlaceholderValue, true
	}
	return n.Value, n.HasValue
}

func (e *element) Label() string {
	if n := e.resolve(); n != nil {
		return n.Label
	}
	return ""
}

func (e *element) WaitForExistence(timeout time.Duration) bool {
	return e.app.waitFor(timeout, e.Exists)
}

func (e *element) Describe() string {
	return e.desc
}

// target resolves the node for a gesture, requiring it to be hittable.
func (e *element) target() (*Node, error) {
	n := e.resolve()
	if n == nil {
		return nil, core.ErrElementNotFound.WithMessagef("no match for %s", e.desc)
	}
	if !n.Hittable || n.Bounds.Empty() {
		return nil, core.ErrElementNotHittable.WithMessagef("%s is not hittable", e.desc)
	}
	return n, nil
}

func (e *element) Tap() error {
	n, err := e.target()
	if err != nil {
		return err
	}
	if err := e.app.record(Gesture{Kind: GestureTap, Target: e.desc}); err != nil {
		return err
	}
	logger.Debug("mock: tap %s", e.desc)
	e.app.activate(n)
	return nil
}

func (e *element) TapAt(offset core.Point) error {
	n, err := e.target()
	if err != nil {
		return err
	}
	if err := e.app.record(Gesture{Kind: GestureTapAt, Target: e.desc, Point: offset}); err != nil {
		return err
	}
	e.app.activate(n)
	return nil
}

func (e *element) TypeText(text string) error {
	n := e.resolve()
	if n == nil {
		return core.ErrElementNotFound.WithMessagef("no match for %s", e.desc)
	}
	if e.app.focused != n {
		return fmt.Errorf("%s has no keyboard focus", e.desc)
	}
	if err := e.app.record(Gesture{Kind: GestureType, Target: e.desc, Text: text}); err != nil {
		return err
	}

	value := []rune(n.Value)
	for _, r := range text {
		if string(r) == core.DeleteKey {
			if len(value) > 0 {
				value = value[:len(value)-1]
			}
			continue
		}
		value = append(value, r)
	}
	n.Value = string(value)
	n.HasValue = true
	return nil
}

func (e *element) Swipe(d core.Direction) error {
	n := e.resolve()
	if n == nil {
		return core.ErrElementNotFound.WithMessagef("no match for %s", e.desc)
	}
	if err := e.app.record(Gesture{Kind: GestureSwipe, Target: e.desc, Direction: d}); err != nil {
		return err
	}
	logger.Debug("mock: swipe %s on %s", d, e.desc)
	n.swiped(d)
	return nil
}

func (e *element) AdjustPickerWheel(value string) error {
	n, err := e.target()
	if err != nil {
		return err
	}
	if n.Type != core.TypePickerWheel {
		return fmt.Errorf("%s is a %s, not a picker wheel", e.desc, n.Type)
	}
	if err := e.app.record(Gesture{Kind: GesturePickerWheel, Target: e.desc, Text: value}); err != nil {
		return err
	}
	n.Value = value
	n.HasValue = true
	return nil
}

func (e *element) AdjustSlider(position float64) error {
	n, err := e.target()
	if err != nil {
		return err
	}
	if n.Type != core.TypeSlider {
		return fmt.Errorf("%s is a %s, not a slider", e.desc, n.Type)
	}
	if err := e.app.record(Gesture{Kind: GestureSlider, Target: e.desc, Position: position}); err != nil {
		return err
	}
	n.Value = strconv.Itoa(int(position*100+0.5)) + "%"
	n.HasValue = true
	return nil
}
