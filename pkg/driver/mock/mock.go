// Package mock provides an in-memory host query engine for testing page objects
// without a device.
package mock

import (
	"fmt"
	"sync"
	"time"

	"github.com/devicelab-dev/pageobject/pkg/core"
	"github.com/devicelab-dev/pageobject/pkg/logger"
)

// GestureKind names a recorded gesture.
type GestureKind string

// Recorded gesture kinds.
const (
	GestureTap           GestureKind = "tap"
	GestureTapAt         GestureKind = "tapAt"
	GestureTapCoordinate GestureKind = "tapCoordinate"
	GestureType          GestureKind = "type"
	GestureSwipe         GestureKind = "swipe"
	GesturePickerWheel   GestureKind = "pickerWheel"
	GestureSlider        GestureKind = "slider"
	GestureLaunch        GestureKind = "launch"
	GestureTerminate     GestureKind = "terminate"
)

// Gesture is one recorded interaction.
type Gesture struct {
	Kind      GestureKind
	Target    string
	Direction core.Direction
	Text      string
	Point     core.Point
	Position  float64
}

// Config configures mock host behavior.
type Config struct {
	// PollInterval between existence checks in WaitForExistence.
	PollInterval time.Duration

	// OnLaunch builds the tree for a launch. Returning an error fails Launch.
	OnLaunch func(app *App, arguments []string) error

	// ScreenWidth and ScreenHeight bound the application window.
	ScreenWidth  int
	ScreenHeight int
}

// App is a mock implementation of core.Application.
type App struct {
	Config Config

	root        *Node
	springboard *Node
	keyboard    *Node
	focused     *Node
	arguments   []string
	running     bool

	mu       sync.Mutex
	gestures []Gesture
	pending  []scheduled
	failures map[GestureKind]error
}

type scheduled struct {
	at time.Time
	fn func()
}

// New creates a mock application. The tree is empty until Launch or SetRoot.
func New(cfg Config) *App {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Millisecond
	}
	if cfg.ScreenWidth == 0 {
		cfg.ScreenWidth = 390
	}
	if cfg.ScreenHeight == 0 {
		cfg.ScreenHeight = 844
	}
	a := &App{
		Config:   cfg,
		failures: make(map[GestureKind]error),
	}
	a.reset()
	return a
}

func (a *App) reset() {
	window := core.Bounds{Width: a.Config.ScreenWidth, Height: a.Config.ScreenHeight}
	a.root = NewNode(core.TypeOther, "").WithBounds(window)
	a.springboard = NewNode(core.TypeOther, "").WithBounds(window)
	a.keyboard = NewNode(core.TypeKeyboard, "").
		WithBounds(core.Bounds{Y: a.Config.ScreenHeight - 300, Width: a.Config.ScreenWidth, Height: 300})
	a.keyboard.Hidden = true
	a.focused = nil
}

// Root returns the application's window node. Screens attach below it.
func (a *App) Root() *Node {
	return a.root
}

// SetRoot replaces the application's tree and marks the app running.
func (a *App) SetRoot(n *Node) {
	a.reset()
	a.root = n
	a.running = true
}

// SpringboardRoot returns the node holding system UI.
func (a *App) SpringboardRoot() *Node {
	return a.springboard
}

// Arguments returns the arguments of the last launch.
func (a *App) Arguments() []string {
	return append([]string(nil), a.arguments...)
}

// Running reports whether the app has been launched and not terminated.
func (a *App) Running() bool {
	return a.running
}

// Schedule runs fn on the first tree query at or after the given delay.
// It models asynchronous UI updates such as animations and network loads.
func (a *App) Schedule(after time.Duration, fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = append(a.pending, scheduled{at: time.Now().Add(after), fn: fn})
}

// FailNext makes the next gesture of kind fail with err.
func (a *App) FailNext(kind GestureKind, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[kind] = err
}

// Gestures returns every recorded gesture in order.
func (a *App) Gestures() []Gesture {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Gesture(nil), a.gestures...)
}

// Count returns how many gestures of kind were recorded.
func (a *App) Count(kind GestureKind) int {
	n := 0
	for _, g := range a.Gestures() {
		if g.Kind == kind {
			n++
		}
	}
	return n
}

// ResetGestures clears the gesture log.
func (a *App) ResetGestures() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gestures = nil
}

// Focus gives n keyboard focus and shows the keyboard.
func (a *App) Focus(n *Node) {
	a.focused = n
	a.keyboard.Hidden = false
}

// Blur removes keyboard focus and hides the keyboard.
func (a *App) Blur() {
	a.focused = nil
	a.keyboard.Hidden = true
}

// Focused returns the node with keyboard focus.
func (a *App) Focused() *Node {
	return a.focused
}

func (a *App) record(g Gesture) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.gestures = append(a.gestures, g)
	if err, ok := a.failures[g.Kind]; ok {
		delete(a.failures, g.Kind)
		return err
	}
	return nil
}

// settle runs scheduled mutations that are due.
func (a *App) settle() {
	a.mu.Lock()
	now := time.Now()
	var due []func()
	remaining := a.pending[:0]
	for _, s := range a.pending {
		if !now.Before(s.at) {
			due = append(due, s.fn)
		} else {
			remaining = append(remaining, s)
		}
	}
	a.pending = remaining
	a.mu.Unlock()

	for _, fn := range due {
		fn()
	}
}

// roots returns the top-level nodes searched by application queries.
func (a *App) roots() []*Node {
	a.settle()
	if !a.running {
		return nil
	}
	return []*Node{a.root, a.keyboard}
}

// Descendants implements core.QueryRoot.
func (a *App) Descendants(kind core.ElementType) core.Query {
	return &query{
		app:  a,
		desc: string(kind),
		candidates: func() []*Node {
			var out []*Node
			for _, r := range a.roots() {
				if r.Hidden {
					continue
				}
				if kind == core.TypeAny || r.Type == kind {
					out = append(out, r)
				}
				out = r.descendants(kind, out)
			}
			return out
		},
	}
}

// Launch implements core.Application.
func (a *App) Launch(arguments []string) error {
	if err := a.record(Gesture{Kind: GestureLaunch, Text: fmt.Sprint(arguments)}); err != nil {
		return err
	}
	logger.Debug("mock: launch %v", arguments)

	a.reset()
	a.arguments = append([]string(nil), arguments...)
	a.running = true
	if a.Config.OnLaunch != nil {
		if err := a.Config.OnLaunch(a, arguments); err != nil {
			a.running = false
			return err
		}
	}
	return nil
}

// Terminate implements core.Application.
func (a *App) Terminate() error {
	if err := a.record(Gesture{Kind: GestureTerminate}); err != nil {
		return err
	}
	a.reset()
	a.running = false
	return nil
}

// TapCoordinate implements core.Application. It taps the deepest hittable
// node whose frame contains the point.
func (a *App) TapCoordinate(p core.Point) error {
	if err := a.record(Gesture{Kind: GestureTapCoordinate, Point: p}); err != nil {
		return err
	}

	var hit *Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Hidden {
			return
		}
		if n.Hittable && n.Bounds.Contains(int(p.X), int(p.Y)) {
			hit = n
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range a.roots() {
		walk(r)
	}
	if hit != nil {
		a.activate(hit)
	}
	return nil
}

// Springboard implements core.Application.
func (a *App) Springboard() core.QueryRoot {
	return &springboardRoot{app: a}
}

type springboardRoot struct {
	app *App
}

func (s *springboardRoot) Descendants(kind core.ElementType) core.Query {
	a := s.app
	return &query{
		app:  a,
		desc: "springboard/" + string(kind),
		candidates: func() []*Node {
			a.settle()
			return a.springboard.descendants(kind, nil)
		},
	}
}

// activate runs the tap behavior of n.
func (a *App) activate(n *Node) {
	if n.Type == core.TypeTextField || n.Type == core.TypeSecureTextField {
		a.Focus(n)
	}
	if h := n.tapHandler(); h != nil {
		h(n)
	}
}

// waitFor polls until cond holds or the timeout elapses.
func (a *App) waitFor(timeout time.Duration, cond func() bool) bool {
	return core.Poll(timeout, a.Config.PollInterval, cond)
}
