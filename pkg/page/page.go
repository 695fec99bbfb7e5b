// Package page implements chainable page objects: screens whose elements are
// addressed by namespaced accessibility identifiers and driven through
// When actions and Then assertions.
//
// A concrete page embeds *Page with itself as the self type, so base steps
// and its own steps chain in any order:
//
//	type HomePage struct {
//		*page.Page[aip.HomeElement, *HomePage]
//	}
//
//	home.WhenTapCell(aip.HomeTableView, 0).ThenIShouldSee(aip.MainView)
package page

import (
	"fmt"
	"time"

	"github.com/devicelab-dev/pageobject/pkg/aip"
	"github.com/devicelab-dev/pageobject/pkg/core"
	"github.com/devicelab-dev/pageobject/pkg/logger"
)

// Reporter receives failures. *testing.T satisfies it.
//
// Errorf records a failed assertion and lets the chain continue.
// Fatalf is used for host gesture failures and declaration errors, which
// leave later steps without meaning; *testing.T stops the test there.
type Reporter interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

// Page is the shared implementation of a page object for a screen with tags E.
// Every step returns the self value S.
type Page[E aip.Element, S any] struct {
	t        Reporter
	app      core.Application
	resolver Resolver[E]
	self     S
	ns       aip.Namespace
	settings settings
}

// New creates a page bound to app. self is what every step returns.
func New[E aip.Element, S any](t Reporter, app core.Application, r Resolver[E], self S, opts ...Option) *Page[E, S] {
	s := settings{pollInterval: DefaultPollInterval}
	var ns aip.Namespace
	if kr, ok := r.(interface{ Provider() *aip.Provider[E] }); ok && kr.Provider() != nil {
		ns = kr.Provider().Namespace()
		s.name = string(ns)
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &Page[E, S]{
		t:        t,
		app:      app,
		resolver: r,
		self:     self,
		ns:       ns,
		settings: s,
	}
}

// App returns the application under test.
func (p *Page[E, S]) App() core.Application {
	return p.app
}

// T returns the reporter the page records failures with.
func (p *Page[E, S]) T() Reporter {
	return p.t
}

// Name returns the page name used in messages.
func (p *Page[E, S]) Name() string {
	return p.settings.name
}

// Self returns the value every step returns.
func (p *Page[E, S]) Self() S {
	return p.self
}

// Resolve returns the element for tag e under root.
func (p *Page[E, S]) Resolve(e E, root core.QueryRoot) (core.Element, error) {
	return p.resolver.Resolve(e, root)
}

// Element returns the element for tag e in the application.
// An unmapped tag is reported with Fatalf and yields nil.
func (p *Page[E, S]) Element(e E) core.Element {
	p.t.Helper()
	el, ok := p.element("Element", e, p.app)
	if !ok {
		return nil
	}
	return el
}

// SwipeOn returns a swipe action whose target is the element for tag e.
func (p *Page[E, S]) SwipeOn(e E, d core.Direction, maxSwipes int) *SwipeAction {
	p.t.Helper()
	el, ok := p.element("SwipeOn", e, p.app)
	if !ok {
		return nil
	}
	return NewSwipeAction(el, d, maxSwipes)
}

// Delay sleeps d.
func (p *Page[E, S]) Delay(d time.Duration) S {
	logger.Debug("%s: delay %s", p.settings.name, d)
	time.Sleep(d)
	return p.self
}

// Terminate stops the application under test.
func (p *Page[E, S]) Terminate() S {
	p.t.Helper()
	logger.Info("%s: terminate application", p.settings.name)
	if err := p.app.Terminate(); err != nil {
		p.t.Fatalf("Terminate: %v", err)
	}
	return p.self
}

func (p *Page[E, S]) describe(e E) string {
	if p.ns == "" {
		return string(e)
	}
	return aip.Identifier(p.ns, e)
}

// element resolves e under root and reports declaration errors with Fatalf.
func (p *Page[E, S]) element(op string, e E, root core.QueryRoot) (core.Element, bool) {
	p.t.Helper()
	el, err := p.resolver.Resolve(e, root)
	if err != nil {
		logger.Error("%s for element %s: %v", op, p.describe(e), err)
		p.t.Fatalf("%s for element %s: %v", op, p.describe(e), err)
		return nil, false
	}
	if el == nil {
		p.t.Fatalf("%s for element %s: %v", op, p.describe(e), core.ErrUnmappedElement)
		return nil, false
	}
	return el, true
}

// prepare runs the optional existence wait and reveal loop shared by all
// element steps. It returns false after a fatal host failure.
func (p *Page[E, S]) prepare(op string, el core.Element, c call) bool {
	p.t.Helper()
	if c.within > 0 {
		el.WaitForExistence(c.within)
	}
	swipes, err := FindSwipingIfNeeded(el, c.swipe)
	if err != nil {
		p.t.Fatalf("%s: swipe to reveal %s: %v", op, el.Describe(), err)
		return false
	}
	if swipes > 0 {
		logger.Debug("%s: revealed %s after %d swipes", op, el.Describe(), swipes)
	}
	return true
}

// gesture reports a host gesture error with Fatalf.
func (p *Page[E, S]) gesture(op string, target string, err error) bool {
	p.t.Helper()
	if err != nil {
		logger.Error("%s on %s failed: %v", op, target, err)
		p.t.Fatalf("%s on %s: %v", op, target, err)
		return false
	}
	logger.Debug("%s on %s", op, target)
	return true
}

// eventually polls cond every poll interval until it holds or timeout elapses.
func (p *Page[E, S]) eventually(timeout time.Duration, cond func() bool) bool {
	return core.Poll(timeout, p.settings.pollInterval, cond)
}

func countIs(q core.Query, want int) func() bool {
	return func() bool {
		n, err := q.Count()
		return err == nil && n == want
	}
}

func count(q core.Query) string {
	n, err := q.Count()
	if err != nil {
		return fmt.Sprintf("unknown (%v)", err)
	}
	return fmt.Sprint(n)
}
