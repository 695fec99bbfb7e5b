package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/pageobject/pkg/driver/wda"
)

var statusCommand = &cli.Command{
	Name:  "status",
	Usage: "Wait until WebDriverAgent answers /status",
	Description: `Poll the WebDriverAgent status endpoint until it answers or the timeout elapses.

Examples:
  pageobject status
  pageobject --wda-url http://192.168.1.20:8100 status --timeout 1m`,
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "How long to wait for the server",
			Value: 30 * time.Second,
		},
	},
	Action: runStatus,
}

func runStatus(c *cli.Context) error {
	cfg := loadedConfig(c)
	client := wda.NewClient(cfg.WDA.URL)

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	if err := client.WaitForStatus(ctx, cfg.Timeouts.Poll.Std()); err != nil {
		fmt.Fprintf(c.App.Writer, "%s %s\n", paint(colorRed, "✗"), client.BaseURL())
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s %s ready\n", paint(colorGreen, "✓"), client.BaseURL())
	return nil
}
