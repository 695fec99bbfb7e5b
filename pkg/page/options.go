package page

import (
	"time"

	"github.com/devicelab-dev/pageobject/pkg/core"
)

// DefaultPollInterval is how often count-based checks re-query the tree.
const DefaultPollInterval = 100 * time.Millisecond

// Option configures a Page.
type Option func(*settings)

type settings struct {
	name         string
	pollInterval time.Duration
}

// WithName sets the name used in log lines and failure messages.
// Defaults to the resolver's namespace when it has one.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithPollInterval sets the poll interval for count-based checks
// (keyboard, alerts) that run with Within.
func WithPollInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// CallOption configures a single When or Then call.
type CallOption func(*call)

type call struct {
	within  time.Duration
	swipe   *SwipeAction
	at      *core.Point
	text    *string
	replace bool
	after   time.Duration
}

func newCall(opts []CallOption) call {
	c := call{replace: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Within waits up to d for the target to exist before acting or asserting.
// Without it the target is checked once.
func Within(d time.Duration) CallOption {
	return func(c *call) {
		c.within = d
	}
}

// Swiping reveals the target with a bounded swipe loop before acting or asserting.
func Swiping(a *SwipeAction) CallOption {
	return func(c *call) {
		c.swipe = a
	}
}

// At taps at an offset in points from the element's top-left corner instead of its center.
func At(offset core.Point) CallOption {
	return func(c *call) {
		c.at = &offset
	}
}

// WithText additionally requires the element's value or label to equal text.
func WithText(text string) CallOption {
	return func(c *call) {
		c.text = &text
	}
}

// Replacing controls whether WhenType clears the current value first. Default true.
func Replacing(replace bool) CallOption {
	return func(c *call) {
		c.replace = replace
	}
}

// After sleeps d before a negative check.
func After(d time.Duration) CallOption {
	return func(c *call) {
		c.after = d
	}
}
