package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/pageobject/pkg/aip"
	"github.com/devicelab-dev/pageobject/pkg/driver/mock"
	"github.com/devicelab-dev/pageobject/pkg/driver/wda"
)

var sourceCommand = &cli.Command{
	Name:  "source",
	Usage: "Print the page source of the app under test",
	Description: `Fetch the XML page source from WebDriverAgent, or read a saved capture with --file.
With --ids, list the elements that carry an accessibility identifier and mark the ones
no screen declares. With --namespace, also check that every identifier of that screen
is present.

Examples:
  pageobject source > home.xml
  pageobject source --ids
  pageobject source --file home.xml --namespace home`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "file",
			Usage: "Read a saved page source instead of asking WebDriverAgent",
		},
		&cli.BoolFlag{
			Name:  "ids",
			Usage: "List identified elements instead of printing XML",
		},
		&cli.StringFlag{
			Name:    "namespace",
			Aliases: []string{"n"},
			Usage:   "Report identifiers of this screen missing from the source (implies --ids)",
		},
	},
	Action: runSource,
}

func runSource(c *cli.Context) error {
	xmlData, err := readSource(c)
	if err != nil {
		return err
	}

	ns := aip.Namespace(c.String("namespace"))
	if !c.Bool("ids") && ns == "" {
		_, err := io.WriteString(c.App.Writer, xmlData)
		return err
	}

	root, err := mock.ParseSource(xmlData)
	if err != nil {
		return fmt.Errorf("parse page source: %w", err)
	}
	return checkIdentifiers(c.App.Writer, root, ns)
}

func readSource(c *cli.Context) (string, error) {
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path) //#nosec G304 -- user-provided capture
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	client := wda.NewClient(loadedConfig(c).WDA.URL)
	if err := client.CreateSession(""); err != nil {
		return "", err
	}
	defer client.DeleteSession()
	return client.Source()
}

// checkIdentifiers lists identified nodes under root. When ns is set, it
// fails if any identifier declared for ns is absent.
func checkIdentifiers(w io.Writer, root *mock.Node, ns aip.Namespace) error {
	declared := make(map[string]bool)
	for _, e := range aip.DefaultRegistry.Identifiers() {
		declared[e.Identifier] = true
	}

	seen := make(map[string]bool)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	root.Find(func(n *mock.Node) bool {
		if n.Identifier == "" {
			return false
		}
		seen[n.Identifier] = true
		mark := paint(colorGray, "?")
		if declared[n.Identifier] {
			mark = paint(colorGreen, "✓")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, n.Type, n.Identifier, n.Label)
		return false
	})
	if err := tw.Flush(); err != nil {
		return err
	}

	if ns == "" {
		return nil
	}
	tokens, ok := aip.DefaultRegistry.Lookup(ns)
	if !ok {
		return fmt.Errorf("unknown screen %q", ns)
	}
	var missing []string
	for _, token := range tokens {
		id := string(ns) + aip.Separator + token
		if !seen[id] {
			missing = append(missing, id)
			fmt.Fprintf(w, "%s missing %s\n", paint(colorRed, "✗"), id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%d of %d identifiers of screen %q missing", len(missing), len(tokens), ns)
	}
	return nil
}
