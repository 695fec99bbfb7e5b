// Package cli provides the pageobject command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/pageobject/pkg/config"
	"github.com/devicelab-dev/pageobject/pkg/logger"

	// Registers the example screens so `ids` and `source --ids` know them.
	_ "github.com/devicelab-dev/pageobject/pkg/example/aip"
)

// Version is set at build time.
var Version = "dev"

const configKey = "config"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Config file (default: config.yaml or config.yml in the working directory)",
		EnvVars: []string{"PAGEOBJECT_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "wda-url",
		Usage:   "WebDriverAgent server URL",
		EnvVars: []string{"PAGEOBJECT_WDA_URL", "WDA_URL"},
	},
	&cli.StringFlag{
		Name:    "bundle-id",
		Aliases: []string{"b"},
		Usage:   "Bundle identifier of the app under test",
		EnvVars: []string{"PAGEOBJECT_BUNDLE_ID"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Log to stderr at debug level",
		EnvVars: []string{"PAGEOBJECT_VERBOSE"},
	},
	&cli.BoolFlag{
		Name:  "no-ansi",
		Usage: "Disable ANSI colors",
	},
}

// NewApp builds the CLI application.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "pageobject",
		Usage:   "Accessibility identifier page objects for iOS UI tests",
		Version: Version,
		Description: `pageobject inspects the accessibility identifiers declared by page objects
and drives the app under test through WebDriverAgent.

Examples:
  pageobject ids --format yaml
  pageobject status --timeout 30s
  pageobject launch HomeCoordinator
  pageobject source --ids`,
		Flags:  GlobalFlags,
		Before: setup,
		After:  teardown,
		Commands: []*cli.Command{
			idsCommand,
			launchCommand,
			sourceCommand,
			statusCommand,
		},
	}
}

// Execute runs the CLI.
func Execute() {
	if err := NewApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the config, applies flag overrides and starts logging.
func setup(c *cli.Context) error {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if url := c.String("wda-url"); url != "" {
		cfg.WDA.URL = url
	}
	if bundleID := c.String("bundle-id"); bundleID != "" {
		cfg.WDA.BundleID = bundleID
	}
	if c.Bool("no-ansi") {
		colorsEnabled = false
	}

	switch {
	case c.Bool("verbose"):
		logger.InitWriter(c.App.ErrWriter)
		cfg.LogLevel = "debug"
	case cfg.LogFile != "":
		path, err := cfg.LogPath()
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		if err := logger.Init(path); err != nil {
			return err
		}
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func teardown(c *cli.Context) error {
	logger.Close()
	return nil
}

// loadedConfig returns the config prepared by setup.
func loadedConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}
