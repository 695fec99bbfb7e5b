package wda

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/devicelab-dev/pageobject/pkg/core"
	"github.com/devicelab-dev/pageobject/pkg/logger"
)

// DefaultPollInterval is the interval between lookups while waiting for an element.
const DefaultPollInterval = 100 * time.Millisecond

// Host drives an app on a device or simulator through WebDriverAgent.
// Every element is a class chain locator that is looked up again on each call.
type Host struct {
	client       *Client
	bundleID     string
	pollInterval time.Duration
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithPollInterval sets the interval between lookups in WaitForExistence.
func WithPollInterval(d time.Duration) HostOption {
	return func(h *Host) {
		if d > 0 {
			h.pollInterval = d
		}
	}
}

// NewHost returns a host for the app with bundleID.
func NewHost(client *Client, bundleID string, opts ...HostOption) *Host {
	h := &Host{
		client:       client,
		bundleID:     bundleID,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Client returns the underlying WDA client.
func (h *Host) Client() *Client {
	return h.client
}

// Launch implements core.Application. It opens a session on first use and
// relaunches the app with arguments.
func (h *Host) Launch(arguments []string) error {
	if !h.client.HasSession() {
		if err := h.client.CreateSession(""); err != nil {
			return core.ErrLaunchFailed.WithCause(err)
		}
	}
	logger.Info("wda: launch %s %v", h.bundleID, arguments)
	if err := h.client.LaunchApp(h.bundleID, arguments, nil); err != nil {
		return core.ErrLaunchFailed.WithMessagef("launch %s", h.bundleID).WithCause(err)
	}
	return nil
}

// Terminate implements core.Application.
func (h *Host) Terminate() error {
	if !h.client.HasSession() {
		return core.ErrNoSession
	}
	logger.Info("wda: terminate %s", h.bundleID)
	return h.client.TerminateApp(h.bundleID)
}

// TapCoordinate implements core.Application.
func (h *Host) TapCoordinate(p core.Point) error {
	return h.client.Tap(p.X, p.Y)
}

// Springboard implements core.Application. WDA searches the active
// application, which is SpringBoard while a system prompt is shown.
func (h *Host) Springboard() core.QueryRoot {
	return h
}

// Descendants implements core.QueryRoot.
func (h *Host) Descendants(kind core.ElementType) core.Query {
	return &query{host: h, chain: segment(kind)}
}

func segment(kind core.ElementType) string {
	return "**/" + kind.XCUIType()
}

// quote escapes s for a single-quoted NSPredicate string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, `'`, `\'`) + "'"
}

type query struct {
	host  *Host
	chain string
}

func (q *query) Descendants(kind core.ElementType) core.Query {
	return &query{host: q.host, chain: q.chain + "/" + segment(kind)}
}

func (q *query) Matching(id string) core.Element {
	predicate := fmt.Sprintf("[`name == %s OR label == %s`]", quote(id), quote(id))
	return &element{host: q.host, chain: q.chain + predicate}
}

// Element uses the 1-based class chain index.
func (q *query) Element(index int) core.Element {
	if index < 0 {
		return &element{host: q.host, chain: q.chain + "[" + strconv.Itoa(index) + "]", invalid: true}
	}
	return &element{host: q.host, chain: q.chain + "[" + strconv.Itoa(index+1) + "]"}
}

func (q *query) First() core.Element {
	return q.Element(0)
}

func (q *query) Count() (int, error) {
	ids, err := q.host.client.FindElements(UsingClassChain, q.chain)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

type element struct {
	host    *Host
	chain   string
	invalid bool
}

func (e *element) Descendants(kind core.ElementType) core.Query {
	return &query{host: e.host, chain: e.chain + "/" + segment(kind)}
}

// find looks the element up. A missing element is core.ErrElementNotFound.
func (e *element) find() (string, error) {
	if e.invalid {
		return "", core.ErrElementNotFound.WithMessagef("invalid index in %s", e.chain)
	}
	ids, err := e.host.client.FindElements(UsingClassChain, e.chain)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", core.ErrElementNotFound.WithMessagef("no match for %s", e.chain)
	}
	return ids[0], nil
}

func (e *element) Exists() bool {
	_, err := e.find()
	return err == nil
}

func (e *element) Frame() core.Bounds {
	id, err := e.find()
	if err != nil {
		return core.Bounds{}
	}
	b, err := e.host.client.ElementRect(id)
	if err != nil {
		return core.Bounds{}
	}
	return b
}

func (e *element) attribute(name string) (string, bool) {
	id, err := e.find()
	if err != nil {
		return "", false
	}
	v, ok, err := e.host.client.ElementAttribute(id, name)
	if err != nil {
		return "", false
	}
	return v, ok
}

func (e *element) IsHittable() bool {
	v, _ := e.attribute("hittable")
	return v == "true" || v == "1"
}

func (e *element) Value() (string, bool) {
	return e.attribute("value")
}

func (e *element) Label() string {
	v, _ := e.attribute("label")
	return v
}

// WaitForExistence looks the element up every poll interval until it
// exists or timeout elapses.
func (e *element) WaitForExistence(timeout time.Duration) bool {
	return core.Poll(timeout, e.host.pollInterval, e.Exists)
}

func (e *element) Describe() string {
	return e.chain
}

func (e *element) withID(op string, fn func(id string) error) error {
	id, err := e.find()
	if err != nil {
		return err
	}
	if err := fn(id); err != nil {
		if IsNoSuchElement(err) {
			return core.ErrElementNotFound.WithMessagef("%s: %s went away", op, e.chain).WithCause(err)
		}
		return fmt.Errorf("%s %s: %w", op, e.chain, err)
	}
	return nil
}

func (e *element) Tap() error {
	return e.withID("tap", e.host.client.ElementClick)
}

func (e *element) TapAt(offset core.Point) error {
	return e.withID("tap", func(id string) error {
		b, err := e.host.client.ElementRect(id)
		if err != nil {
			return err
		}
		return e.host.client.Tap(float64(b.X)+offset.X, float64(b.Y)+offset.Y)
	})
}

func (e *element) TypeText(text string) error {
	return e.withID("type", func(id string) error {
		return e.host.client.ElementSendKeys(id, text)
	})
}

func (e *element) Swipe(d core.Direction) error {
	return e.withID("swipe", func(id string) error {
		return e.host.client.ElementSwipe(id, d.String())
	})
}

func (e *element) AdjustPickerWheel(value string) error {
	return e.withID("adjust picker wheel", func(id string) error {
		return e.host.client.ElementSendKeys(id, value)
	})
}

func (e *element) AdjustSlider(position float64) error {
	if position < 0 || position > 1 {
		return errors.New("slider position must be within [0, 1]")
	}
	return e.withID("adjust slider", func(id string) error {
		return e.host.client.ElementSendKeys(id, strconv.FormatFloat(position, 'f', 2, 64))
	})
}
