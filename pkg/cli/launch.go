package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/pageobject/pkg/core"
	"github.com/devicelab-dev/pageobject/pkg/driver/wda"
	"github.com/devicelab-dev/pageobject/pkg/launch"
	"github.com/devicelab-dev/pageobject/pkg/logger"
)

var launchCommand = &cli.Command{
	Name:      "launch",
	Usage:     "Launch the app under test straight into a scenario",
	ArgsUsage: "[scenario]",
	Description: `Launch the app through WebDriverAgent with the scenario selector and any
extra launch arguments. Without a scenario argument the config's scenario is used.

Examples:
  pageobject -b com.example.app launch HomeCoordinator
  pageobject launch TextFieldCoordinator --arg -disableAnimations`,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "arg",
			Aliases: []string{"a"},
			Usage:   "Extra launch argument (repeatable)",
		},
	},
	Action: runLaunch,
}

func runLaunch(c *cli.Context) error {
	cfg := loadedConfig(c)
	if cfg.WDA.BundleID == "" {
		return core.ErrMissingRequired.WithMessage("bundle id is required (--bundle-id or wda.bundleId)")
	}

	selector := c.Args().First()
	if selector == "" {
		selector = cfg.Scenario
	}

	custom := append(append([]string{}, cfg.LaunchArguments...), c.StringSlice("arg")...)
	args := launch.Arguments(selector, custom...)

	host := wda.NewHost(wda.NewClient(cfg.WDA.URL), cfg.WDA.BundleID,
		wda.WithPollInterval(cfg.Timeouts.Poll.Std()))
	logger.Info("cli: launch %s scenario=%q", cfg.WDA.BundleID, selector)
	if err := host.Launch(args); err != nil {
		return err
	}

	if selector == "" {
		fmt.Fprintf(c.App.Writer, "%s launched %s\n", paint(colorGreen, "✓"), cfg.WDA.BundleID)
	} else {
		fmt.Fprintf(c.App.Writer, "%s launched %s into %s\n", paint(colorGreen, "✓"), cfg.WDA.BundleID, paint(colorBold, selector))
	}
	return nil
}
