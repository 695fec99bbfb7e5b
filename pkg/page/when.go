package page

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/devicelab-dev/pageobject/pkg/core"
)

// locationAlertWait is how long WhenAcceptLocationRequest waits for the system prompt.
const locationAlertWait = 300 * time.Millisecond

// WhenTap taps the element for e, at its center or at the At offset.
func (p *Page[E, S]) WhenTap(e E, opts ...CallOption) S {
	p.t.Helper()
	p.tap("WhenTap", e, newCall(opts))
	return p.self
}

func (p *Page[E, S]) tap(op string, e E, c call) (core.Element, bool) {
	p.t.Helper()
	el, ok := p.element(op, e, p.app)
	if !ok || !p.prepare(op, el, c) {
		return nil, false
	}

	var err error
	if c.at != nil {
		err = el.TapAt(*c.at)
	} else {
		err = el.Tap()
	}
	if !p.gesture(op, p.describe(e), err) {
		return nil, false
	}
	return el, true
}

// WhenTapCell taps the cell at index of the table for e. It waits for the
// table and its first cell to appear, then reveals the target cell with the
// Swiping action if one is given.
func (p *Page[E, S]) WhenTapCell(table E, index int, opts ...CallOption) S {
	p.t.Helper()
	const op = "WhenTapCell"
	c := newCall(opts)

	tableEl, ok := p.element(op, table, p.app)
	if !ok {
		return p.self
	}
	if c.within > 0 {
		tableEl.WaitForExistence(c.within)
	}

	cells := tableEl.Descendants(core.TypeCell)
	if c.within > 0 {
		cells.Element(0).WaitForExistence(c.within)
	}

	cell := cells.Element(index)
	if !p.prepare(op, cell, call{swipe: c.swipe}) {
		return p.self
	}
	p.gesture(op, cell.Describe(), cell.Tap())
	return p.self
}

// WhenTapCoordinates taps a point measured from the application's top-left corner.
func (p *Page[E, S]) WhenTapCoordinates(point core.Point) S {
	p.t.Helper()
	p.gesture("WhenTapCoordinates", "application", p.app.TapCoordinate(point))
	return p.self
}

// WhenTapBackButton taps the first button of the navigation bar.
func (p *Page[E, S]) WhenTapBackButton(opts ...CallOption) S {
	p.t.Helper()
	c := newCall(opts)
	back := p.app.Descendants(core.TypeNavigationBar).Descendants(core.TypeButton).Element(0)
	if c.within > 0 {
		back.WaitForExistence(c.within)
	}
	p.gesture("WhenTapBackButton", back.Describe(), back.Tap())
	return p.self
}

// WhenTapAlertButton taps the button at index of the visible alert.
func (p *Page[E, S]) WhenTapAlertButton(index int, opts ...CallOption) S {
	p.t.Helper()
	p.tapContainerButton("WhenTapAlertButton", core.TypeAlert, index, newCall(opts))
	return p.self
}

// WhenTapActionSheetButton taps the button at index of the visible action sheet.
func (p *Page[E, S]) WhenTapActionSheetButton(index int, opts ...CallOption) S {
	p.t.Helper()
	p.tapContainerButton("WhenTapActionSheetButton", core.TypeSheet, index, newCall(opts))
	return p.self
}

func (p *Page[E, S]) tapContainerButton(op string, kind core.ElementType, index int, c call) {
	p.t.Helper()
	container := p.app.Descendants(kind).First()
	if c.within > 0 {
		container.WaitForExistence(c.within)
	}
	button := container.Descendants(core.TypeButton).Element(index)
	p.gesture(op, button.Describe(), button.Tap())
}

// WhenType taps the element for e to focus it and types text. Unless
// Replacing(false) is given, the current value is deleted first.
func (p *Page[E, S]) WhenType(text string, e E, opts ...CallOption) S {
	p.t.Helper()
	const op = "WhenType"
	c := newCall(opts)

	el, ok := p.tap(op, e, c)
	if !ok {
		return p.self
	}

	if c.replace {
		if current, ok := el.Value(); ok && current != "" {
			if !p.gesture(op, p.describe(e), el.TypeText(deleteKeys(current))) {
				return p.self
			}
		}
	}
	p.gesture(op, p.describe(e), el.TypeText(text))
	return p.self
}

// deleteKeys returns one delete key per character of s.
func deleteKeys(s string) string {
	return strings.Repeat(core.DeleteKey, utf8.RuneCountInString(s))
}

// WhenSelectDatePicker sets the picker wheels to values, one value per
// wheel by position. Wheels are adjusted from last to first.
func (p *Page[E, S]) WhenSelectDatePicker(values []string, opts ...CallOption) S {
	p.t.Helper()
	const op = "WhenSelectDatePicker"
	c := newCall(opts)

	wheels := p.app.Descendants(core.TypePickerWheel)
	if c.within > 0 {
		wheels.Element(0).WaitForExistence(c.within)
	}
	for i := len(values) - 1; i >= 0; i-- {
		wheel := wheels.Element(i)
		if !p.gesture(op, wheel.Describe(), wheel.AdjustPickerWheel(values[i])) {
			return p.self
		}
	}
	return p.self
}

// WhenAcceptLocationRequest taps "Allow" on the system location prompt if it shows up.
func (p *Page[E, S]) WhenAcceptLocationRequest() S {
	p.t.Helper()
	allow := p.app.Springboard().Descendants(core.TypeButton).Matching("Allow")
	if allow.WaitForExistence(locationAlertWait) {
		p.gesture("WhenAcceptLocationRequest", allow.Describe(), allow.Tap())
	}
	return p.self
}

// WhenSwipe performs the swipe action, swiping its target MaxSwipes times.
func (p *Page[E, S]) WhenSwipe(action *SwipeAction, opts ...CallOption) S {
	p.t.Helper()
	const op = "WhenSwipe"
	if action == nil || action.Target == nil {
		p.t.Fatalf("%s: no swipe target", op)
		return p.self
	}

	c := newCall(opts)
	if c.within > 0 {
		action.Target.WaitForExistence(c.within)
	}
	p.gesture(op, action.Target.Describe(), action.Perform())
	return p.self
}

// WhenSlide moves the slider for e to position, from 0 (minimum) to 1 (maximum).
func (p *Page[E, S]) WhenSlide(e E, position float64, opts ...CallOption) S {
	p.t.Helper()
	const op = "WhenSlide"
	if position < 0 || position > 1 {
		p.t.Fatalf("%s for element %s: position %v outside [0, 1]", op, p.describe(e), position)
		return p.self
	}

	el, ok := p.element(op, e, p.app)
	if !ok || !p.prepare(op, el, newCall(opts)) {
		return p.self
	}
	p.gesture(op, p.describe(e), el.AdjustSlider(position))
	return p.self
}
