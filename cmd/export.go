package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/nibzard/todoboard/internal/export"
	"github.com/nibzard/todoboard/internal/todo"
)

// exportCommand writes a snapshot of the collection.
func (e *env) exportCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todoboard export", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	format := fs.String("format", "json", "Output format ("+strings.Join(export.Formats, "|")+")")
	outPath := fs.String("out", "", "Output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !knownFormat(*format) {
		return fmt.Errorf("unknown export format %q (want one of %s)", *format, strings.Join(export.Formats, ", "))
	}

	c, err := e.client()
	if err != nil {
		return err
	}
	tasks, err := c.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch todos: %w", err)
	}

	if *outPath == "" {
		return writeExport(e.stdout, *format, tasks, e.now())
	}

	f, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := writeExport(f, *format, tasks, e.now()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	e.logger.Info("export written", "path", *outPath, "format", *format, "todos", len(tasks))
	return nil
}

func writeExport(w io.Writer, format string, tasks []todo.Task, now time.Time) error {
	if err := export.Write(w, format, tasks, now); err != nil {
		return fmt.Errorf("writing %s export: %w", format, err)
	}
	return nil
}

func knownFormat(format string) bool {
	return slices.Contains(export.Formats, strings.ToLower(strings.TrimSpace(format)))
}
