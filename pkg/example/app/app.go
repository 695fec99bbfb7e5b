// Package app is the example application under test, simulated on the mock
// host. It boots into the screen named by the launch arguments and navigates
// between screens the way a navigation controller does.
package app

import (
	"fmt"

	"github.com/devicelab-dev/pageobject/pkg/driver/mock"
	"github.com/devicelab-dev/pageobject/pkg/launch"
	"github.com/devicelab-dev/pageobject/pkg/logger"
)

// Scenario identifiers accepted by the scenario launch argument.
const (
	HomeScenario      = "HomeCoordinator"
	LabelScenario     = "LabelCoordinator"
	ButtonScenario    = "ButtonCoordinator"
	TextFieldScenario = "TextFieldCoordinator"
	ImageScenario     = "ImageCoordinator"
)

// App is one installation of the example app on a mock host.
type App struct {
	host   *mock.App
	router *launch.Router

	window     *mock.Node
	nav        *navigation
	animations bool
	buttonTaps int
}

// Install makes host run the example app on every launch.
func Install(host *mock.App) *App {
	a := &App{host: host, animations: true}
	a.router = launch.NewRouter(a.startMain)

	scenarios := map[string]func() *screen{
		HomeScenario:      a.homeScreen,
		LabelScenario:     a.labelScreen,
		ButtonScenario:    a.buttonScreen,
		TextFieldScenario: a.textFieldScreen,
		ImageScenario:     a.imageScreen,
	}
	for name, build := range scenarios {
		build := build
		if err := a.router.Register(name, func([]string) error {
			a.nav.setRoot(build())
			return nil
		}); err != nil {
			panic(err)
		}
	}

	host.Config.OnLaunch = a.launch
	return a
}

// Scenarios returns the scenario identifiers the app understands.
func (a *App) Scenarios() []string {
	return a.router.Scenarios()
}

// AnimationsEnabled reports whether the last launch left animations on.
func (a *App) AnimationsEnabled() bool {
	return a.animations
}

// ButtonTaps counts taps on the button screen's button since launch.
func (a *App) ButtonTaps() int {
	return a.buttonTaps
}

// Screen returns the title of the screen on top of the navigation stack.
func (a *App) Screen() string {
	if a.nav == nil || a.nav.top() == nil {
		return ""
	}
	return a.nav.top().title
}

func (a *App) launch(host *mock.App, args []string) error {
	logger.Info("example app: launch %v", args)

	a.window = host.Root()
	a.nav = newNavigation(host, a.window)
	a.buttonTaps = 0

	if err := a.router.Start(args); err != nil {
		return fmt.Errorf("example app: %w", err)
	}

	a.animations = !launch.AnimationsDisabled(args)
	return nil
}

func (a *App) startMain([]string) error {
	a.nav.setRoot(a.mainScreen())
	return nil
}

func (a *App) selectCell(cell HomeCell) {
	logger.Debug("example app: selected %s", cell)
	switch cell {
	case CellLabel:
		a.nav.push(a.labelScreen())
	case CellButton:
		a.nav.push(a.buttonScreen())
	case CellTextField:
		a.nav.push(a.textFieldScreen())
	case CellImage:
		a.nav.push(a.imageScreen())
	case CellAlert:
		a.showAlert()
	}
}
