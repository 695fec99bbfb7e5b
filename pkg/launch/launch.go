// Package launch builds and interprets the launch arguments that boot the
// application under test straight into one scenario.
package launch

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/devicelab-dev/pageobject/pkg/core"
	"github.com/devicelab-dev/pageobject/pkg/logger"
)

// Launch argument keys, as read from the argument domain ("-key value").
const (
	ScenarioKey           = "coordinatorUnderUITest"
	AnimationsDisabledKey = "disableAnimations"
	DebugDisabledKey      = "FIRDebugDisabled"
)

// Arguments returns the launch arguments for a test run: analytics debug
// logging disabled, the scenario selector when selector is not empty, then custom.
func Arguments(selector string, custom ...string) []string {
	args := []string{"-" + DebugDisabledKey}
	if selector != "" {
		args = append(args, "-"+ScenarioKey, selector)
	}
	return append(args, custom...)
}

// ParseDefaults reads "-key value" pairs. A key followed by another key, or
// by nothing, is present with an empty value. Words that are not keys are ignored.
func ParseDefaults(args []string) map[string]string {
	defaults := make(map[string]string)
	for i := 0; i < len(args); i++ {
		key, ok := argumentKey(args[i])
		if !ok {
			continue
		}
		if i+1 < len(args) {
			if _, next := argumentKey(args[i+1]); !next {
				defaults[key] = args[i+1]
				i++
				continue
			}
		}
		defaults[key] = ""
	}
	return defaults
}

func argumentKey(arg string) (string, bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false
	}
	return strings.TrimPrefix(arg, "-"), true
}

// Selector returns the scenario selected by args.
func Selector(args []string) (string, bool) {
	s, ok := ParseDefaults(args)[ScenarioKey]
	return s, ok
}

// AnimationsDisabled reports whether args ask the app to turn animations off.
func AnimationsDisabled(args []string) bool {
	_, ok := ParseDefaults(args)[AnimationsDisabledKey]
	return ok
}

// StartFunc boots one scenario.
type StartFunc func(args []string) error

// Router picks the scenario to boot from the launch arguments.
type Router struct {
	mu        sync.RWMutex
	scenarios map[string]StartFunc
	fallback  StartFunc
}

// NewRouter returns a router that boots fallback when no scenario is selected.
func NewRouter(fallback StartFunc) *Router {
	return &Router{
		scenarios: make(map[string]StartFunc),
		fallback:  fallback,
	}
}

// Register adds a scenario under name.
func (r *Router) Register(name string, start StartFunc) error {
	if name == "" || start == nil {
		return fmt.Errorf("register scenario %q: name and start function are required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.scenarios[name]; exists {
		return fmt.Errorf("scenario %q already registered", name)
	}
	r.scenarios[name] = start
	return nil
}

// Scenarios returns the registered scenario names, sorted.
func (r *Router) Scenarios() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Start boots the selected scenario, or the default flow when args select none.
// An unknown selector fails with core.ErrUnknownScenario.
func (r *Router) Start(args []string) error {
	selector, ok := Selector(args)
	if !ok {
		logger.Info("launch: starting default flow")
		if r.fallback == nil {
			return nil
		}
		return r.fallback(args)
	}

	r.mu.RLock()
	start, found := r.scenarios[selector]
	r.mu.RUnlock()
	if !found {
		logger.Error("launch: unknown scenario %q", selector)
		return core.ErrUnknownScenario.
			WithMessagef("coordinator under UI test not found: %q", selector).
			WithDetails(map[string]interface{}{"selector": selector, "known": r.Scenarios()})
	}

	logger.Info("launch: starting scenario %s", selector)
	return start(args)
}
