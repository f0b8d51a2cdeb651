package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/todoboard/internal/logging"
	"github.com/nibzard/todoboard/internal/ui"
)

// tuiCommand launches the interactive board. Logs go to the configured file
// since the screen belongs to the UI.
func (e *env) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todoboard tui", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !ui.IsTTY(e.stdout) {
		return fmt.Errorf("tui requires a TTY (try 'todoboard ls')")
	}

	cfg := e.cfg.Config
	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	opts := logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, true, cfg.LogCaller)
	logger := logging.New(logFile, opts)

	c, err := e.collect(logger)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	logger.Info("starting board", "url", c.BaseURL())

	return ui.RunTUI(ctx, c,
		ui.WithLogger(logger),
		ui.WithRefreshInterval(cfg.RefreshInterval()),
		ui.WithLocation(e.loc),
		ui.WithSource(c.BaseURL()),
	)
}
