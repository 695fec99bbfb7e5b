package page

import (
	"time"

	"github.com/devicelab-dev/pageobject/pkg/core"
)

// ThenIShouldSeeText checks that a static text matching text is on screen.
func (p *Page[E, S]) ThenIShouldSeeText(text string, opts ...CallOption) S {
	p.t.Helper()
	c := newCall(opts)
	el := p.app.Descendants(core.TypeStaticText).Matching(text)
	if !p.exists(el, c.within) {
		p.t.Errorf("ThenIShouldSeeText expected text %q", text)
	}
	return p.self
}

// ThenIShouldSee checks that the element for e exists, and with WithText
// that its value or label equals the text.
func (p *Page[E, S]) ThenIShouldSee(e E, opts ...CallOption) S {
	p.t.Helper()
	const op = "ThenIShouldSee"
	c := newCall(opts)

	el, ok := p.element(op, e, p.app)
	if !ok || !p.prepare(op, el, call{swipe: c.swipe}) {
		return p.self
	}
	p.assertElement(op, e, el, c)
	return p.self
}

// ThenIShouldSeeCell checks the element for cellElement inside the cell at
// index of the table for table.
func (p *Page[E, S]) ThenIShouldSeeCell(table E, index int, cellElement E, opts ...CallOption) S {
	p.t.Helper()
	const op = "ThenIShouldSeeCell"
	c := newCall(opts)

	cell, ok := p.cell(op, table, index, c)
	if !ok {
		return p.self
	}
	el, ok := p.element(op, cellElement, cell)
	if !ok {
		return p.self
	}
	p.assertElement(op, cellElement, el, c)
	return p.self
}

// ThenIShouldSeeCellText checks that the cell at index (zero-based) of the
// table for table contains a static text matching text.
func (p *Page[E, S]) ThenIShouldSeeCellText(table E, index int, text string, opts ...CallOption) S {
	p.t.Helper()
	const op = "ThenIShouldSeeCellText"
	c := newCall(opts)

	cell, ok := p.cell(op, table, index, c)
	if !ok {
		return p.self
	}
	staticText := cell.Descendants(core.TypeStaticText).Matching(text)
	if !p.exists(staticText, c.within) {
		p.t.Errorf("%s for element %s expected text %q in cell %d", op, p.describe(table), text, index)
	}
	return p.self
}

// ThenIShouldNotSee fails if the element for e is on screen and hittable,
// after the After delay.
func (p *Page[E, S]) ThenIShouldNotSee(e E, opts ...CallOption) S {
	p.t.Helper()
	const op = "ThenIShouldNotSee"
	c := newCall(opts)

	el, ok := p.element(op, e, p.app)
	if !ok {
		return p.self
	}
	if c.after > 0 {
		time.Sleep(c.after)
	}
	if el.Exists() && el.IsHittable() {
		p.t.Errorf("%s for element %s", op, p.describe(e))
	}
	return p.self
}

// ThenIShouldSeeNavigationBar checks the navigation bar title.
func (p *Page[E, S]) ThenIShouldSeeNavigationBar(title string, opts ...CallOption) S {
	p.t.Helper()
	c := newCall(opts)
	el := p.app.Descendants(core.TypeNavigationBar).Descendants(core.TypeOther).Matching(title)
	if !p.exists(el, c.within) {
		p.t.Errorf("ThenIShouldSeeNavigationBar expected text %q", title)
	}
	return p.self
}

// ThenIShouldSeeKeyboard checks that exactly one keyboard is shown.
func (p *Page[E, S]) ThenIShouldSeeKeyboard(opts ...CallOption) S {
	p.t.Helper()
	p.assertCount("ThenIShouldSeeKeyboard", p.app.Descendants(core.TypeKeyboard), 1, newCall(opts))
	return p.self
}

// ThenIShouldNotSeeKeyboard checks that no keyboard is shown.
func (p *Page[E, S]) ThenIShouldNotSeeKeyboard(opts ...CallOption) S {
	p.t.Helper()
	p.assertCount("ThenIShouldNotSeeKeyboard", p.app.Descendants(core.TypeKeyboard), 0, newCall(opts))
	return p.self
}

// ThenIShouldSeeAlert checks that an alert showing message is up and that
// its label is title.
func (p *Page[E, S]) ThenIShouldSeeAlert(title, message string, opts ...CallOption) S {
	p.t.Helper()
	c := newCall(opts)
	alert := p.app.Descendants(core.TypeAlert).First()
	msg := alert.Descendants(core.TypeStaticText).Matching(message)
	if !p.exists(msg, c.within) {
		p.t.Errorf("ThenIShouldSeeAlert: alert not found with message %q", message)
		return p.self
	}
	if got := alert.Label(); got != title {
		p.t.Errorf("ThenIShouldSeeAlert: expected title %q, found %q", title, got)
	}
	return p.self
}

// ThenIShouldNotSeeAlert checks that no alert is shown.
func (p *Page[E, S]) ThenIShouldNotSeeAlert(opts ...CallOption) S {
	p.t.Helper()
	p.assertCount("ThenIShouldNotSeeAlert", p.app.Descendants(core.TypeAlert), 0, newCall(opts))
	return p.self
}

// cell resolves the table, waits for it, and reveals the cell at index.
func (p *Page[E, S]) cell(op string, table E, index int, c call) (core.Element, bool) {
	p.t.Helper()
	tableEl, ok := p.element(op, table, p.app)
	if !ok {
		return nil, false
	}
	if c.within > 0 {
		tableEl.WaitForExistence(c.within)
	}
	cell := tableEl.Descendants(core.TypeCell).Element(index)
	if !p.prepare(op, cell, call{swipe: c.swipe}) {
		return nil, false
	}
	return cell, true
}

func (p *Page[E, S]) exists(el core.Element, within time.Duration) bool {
	if within > 0 {
		return el.WaitForExistence(within)
	}
	return el.Exists()
}

// assertElement checks existence and, with WithText, the text of el.
// The value is compared before the label; either matching passes.
func (p *Page[E, S]) assertElement(op string, e E, el core.Element, c call) {
	p.t.Helper()
	if !p.exists(el, c.within) {
		p.t.Errorf("%s for element %s: %v", op, p.describe(e), core.ErrElementNotFound)
		return
	}
	if c.text == nil {
		return
	}

	want := *c.text
	value, hasValue := el.Value()
	if hasValue && value == want {
		return
	}
	label := el.Label()
	if label == want {
		return
	}

	observed := "nil"
	if hasValue {
		observed = "\"" + value + "\""
	}
	p.t.Errorf("%s for element %s: %v: expected %q, found value %s and label %q",
		op, p.describe(e), core.ErrTextMismatch, want, observed, label)
}

func (p *Page[E, S]) assertCount(op string, q core.Query, want int, c call) {
	p.t.Helper()
	if !p.eventually(c.within, countIs(q, want)) {
		p.t.Errorf("%s: expected %d, found %s", op, want, count(q))
	}
}
