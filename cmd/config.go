package cmd

import (
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/nibzard/todoboard/internal/config"
)

// configCommand prints the effective configuration and where each value
// came from.
func (e *env) configCommand(args []string) error {
	fs := flag.NewFlagSet("todoboard config", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	example := fs.Bool("example", false, "Print an example config file instead")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Fprint(e.stdout, config.ExampleConfig())
		return nil
	}

	if file := e.cfg.GetConfigFile(); file != "" {
		fmt.Fprintf(e.stdout, "Config file: %s\n\n", file)
	} else {
		fmt.Fprint(e.stdout, "Config file: (none)\n\n")
	}
	tw := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
	for _, entry := range e.cfg.Entries() {
		value := entry.Value
		if value == "" {
			value = `""`
		}
		fmt.Fprintf(tw, "%s\t%s\t(%s)\n", entry.Key, value, entry.Source)
	}
	return tw.Flush()
}
