// Package cmd implements the CLI command structure for todoboard.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todoboard/internal/client"
	"github.com/nibzard/todoboard/internal/config"
	"github.com/nibzard/todoboard/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// env carries what every subcommand needs.
type env struct {
	cfg     *config.ConfigWithSources
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  *log.Logger
	now     func() time.Time
	loc     *time.Location
	collect func(logger *log.Logger) (*client.Client, error)
}

// Run executes the todoboard CLI.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

// RunWithIO executes the CLI against the given streams.
func RunWithIO(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todoboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}

	e := &env{
		cfg:    cws,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		now:    time.Now,
		loc:    time.Local,
	}
	cfg := cws.Config
	e.logger = logging.New(stderr, logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller))
	e.collect = func(logger *log.Logger) (*client.Client, error) {
		return client.New(client.Options{
			BaseURL:           cfg.BaseURL,
			Token:             cfg.APIToken,
			Timeout:           cfg.RequestTimeout(),
			ValidateResponses: cfg.ValidateResponses,
			Logger:            logger,
		})
	}

	if *showVersion {
		return e.versionCommand()
	}

	// Determine the subcommand
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return e.tuiCommand(ctx, remainingArgs)
	case "ls", "list":
		return e.lsCommand(ctx, remainingArgs)
	case "show":
		return e.showCommand(ctx, remainingArgs)
	case "add":
		return e.addCommand(ctx, remainingArgs)
	case "edit":
		return e.editCommand(ctx, remainingArgs)
	case "rm", "delete":
		return e.rmCommand(ctx, remainingArgs)
	case "export":
		return e.exportCommand(ctx, remainingArgs)
	case "config":
		return e.configCommand(remainingArgs)
	case "version":
		return e.versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// client builds a collection client logging to the CLI logger.
func (e *env) client() (*client.Client, error) {
	c, err := e.collect(e.logger)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	return c, nil
}

// versionCommand prints version information.
func (e *env) versionCommand() error {
	fmt.Fprintf(e.stdout, "todoboard version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Todoboard - a terminal client for a remote todo collection")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todoboard [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui              Launch the interactive board (default command)")
	fmt.Fprintln(w, "  ls [--json]      List todos with their current progress")
	fmt.Fprintln(w, "  show <id>        Show one todo")
	fmt.Fprintln(w, "  add              Create a todo")
	fmt.Fprintln(w, "  edit <id>        Replace fields of a todo")
	fmt.Fprintln(w, "  rm <id> [--yes]  Delete a todo")
	fmt.Fprintln(w, "  export           Write a snapshot as json, csv or pdf")
	fmt.Fprintln(w, "  config           Print the effective configuration")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add/Edit Options:")
	fmt.Fprintln(w, "  -title string")
	fmt.Fprintln(w, "        Title")
	fmt.Fprintln(w, "  -description string")
	fmt.Fprintln(w, "        Description")
	fmt.Fprintln(w, "  -completed")
	fmt.Fprintln(w, "        Mark as completed")
	fmt.Fprintln(w, "  -start string")
	fmt.Fprintln(w, "        Start time in local time (YYYY-MM-DDTHH:MM)")
	fmt.Fprintln(w, "  -end string")
	fmt.Fprintln(w, "        End time in local time (YYYY-MM-DDTHH:MM)")
	fmt.Fprintln(w, "  -progress string")
	fmt.Fprintln(w, "        Progress between 0 and 100 (empty derives it from the time window)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (json|csv|pdf) (default \"json\")")
	fmt.Fprintln(w, "  -out string")
	fmt.Fprintln(w, "        Output file (default stdout)")
}
