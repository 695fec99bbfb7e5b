package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/pageobject/pkg/aip"
)

var idsCommand = &cli.Command{
	Name:  "ids",
	Usage: "List the accessibility identifiers declared by every screen",
	Description: `Print every registered identifier, sorted by screen namespace and then by
declaration order. Use the output to check the identifiers assigned in the app.

Examples:
  pageobject ids
  pageobject ids --namespace home
  pageobject ids --format json`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (text, json, yaml)",
			Value:   "text",
		},
		&cli.StringFlag{
			Name:    "namespace",
			Aliases: []string{"n"},
			Usage:   "Only list this screen",
		},
	},
	Action: runIDs,
}

func runIDs(c *cli.Context) error {
	entries := aip.DefaultRegistry.Identifiers()
	if ns := c.String("namespace"); ns != "" {
		if _, ok := aip.DefaultRegistry.Lookup(aip.Namespace(ns)); !ok {
			return fmt.Errorf("unknown screen %q", ns)
		}
		entries = filterNamespace(entries, aip.Namespace(ns))
	}
	return writeEntries(c.App.Writer, c.String("format"), entries)
}

func filterNamespace(entries []aip.Entry, ns aip.Namespace) []aip.Entry {
	var out []aip.Entry
	for _, e := range entries {
		if e.Namespace == ns {
			out = append(out, e)
		}
	}
	return out
}

func writeEntries(w io.Writer, format string, entries []aip.Entry) error {
	if entries == nil {
		entries = []aip.Entry{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		var last aip.Namespace
		for _, e := range entries {
			if e.Namespace != last {
				fmt.Fprintf(tw, "%s\n", paint(colorBold, string(e.Namespace)))
				last = e.Namespace
			}
			fmt.Fprintf(tw, "  %s\t%s\n", e.Element, paint(colorCyan, e.Identifier))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q (text, json, yaml)", format)
	}
}
