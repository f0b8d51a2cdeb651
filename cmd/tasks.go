package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nibzard/todoboard/internal/export"
	"github.com/nibzard/todoboard/internal/todo"
	"github.com/nibzard/todoboard/internal/ui"
	"github.com/nibzard/todoboard/internal/utils"
)

// lsCommand lists todos with progress computed now.
func (e *env) lsCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todoboard ls", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	asJSON := fs.Bool("json", false, "Print records as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	c, err := e.client()
	if err != nil {
		return err
	}
	tasks, err := c.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch todos: %w", err)
	}

	if *asJSON {
		return export.Write(e.stdout, "json", tasks, e.now())
	}
	printItems(e.stdout, ui.BuildItems(tasks, e.now(), e.loc))
	return nil
}

// showCommand prints one todo.
func (e *env) showCommand(ctx context.Context, args []string) error {
	id, err := singleID("show", args)
	if err != nil {
		return err
	}
	c, err := e.client()
	if err != nil {
		return err
	}
	task, err := c.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch todo: %w", err)
	}

	item := ui.NewItem(*task, todo.ComputeProgress(*task, e.now()), e.loc)
	fmt.Fprintf(e.stdout, "ID:          %s\n", item.ID)
	fmt.Fprintf(e.stdout, "Title:       %s\n", item.Title)
	if item.Description != "" {
		fmt.Fprintf(e.stdout, "Description: %s\n", item.Description)
	}
	fmt.Fprintf(e.stdout, "Completed:   %t\n", item.Completed)
	fmt.Fprintf(e.stdout, "Start:       %s\n", item.Start)
	fmt.Fprintf(e.stdout, "End:         %s\n", item.End)
	fmt.Fprintf(e.stdout, "Progress:    %s\n", item.ProgressText)
	return nil
}

// taskFlags binds the add/edit flags onto a form.
type taskFlags struct {
	fs   *flag.FlagSet
	form ui.Form
}

func newTaskFlags(name string, out io.Writer) *taskFlags {
	tf := &taskFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	tf.fs.SetOutput(out)
	tf.fs.StringVar(&tf.form.Title, "title", "", "Title")
	tf.fs.StringVar(&tf.form.Description, "description", "", "Description")
	tf.fs.BoolVar(&tf.form.Completed, "completed", false, "Mark as completed")
	tf.fs.StringVar(&tf.form.Start, "start", "", "Start time in local time (YYYY-MM-DDTHH:MM)")
	tf.fs.StringVar(&tf.form.End, "end", "", "End time in local time (YYYY-MM-DDTHH:MM)")
	tf.fs.StringVar(&tf.form.Progress, "progress", "", "Progress between 0 and 100")
	return tf
}

// overlay copies the explicitly set flags onto f.
func (tf *taskFlags) overlay(f *ui.Form) {
	tf.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "title":
			f.Title = tf.form.Title
		case "description":
			f.Description = tf.form.Description
		case "completed":
			f.Completed = tf.form.Completed
		case "start":
			f.Start = tf.form.Start
		case "end":
			f.End = tf.form.End
		case "progress":
			f.Progress = tf.form.Progress
		}
	})
}

// addCommand creates a todo from flags.
func (e *env) addCommand(ctx context.Context, args []string) error {
	tf := newTaskFlags("todoboard add", e.stderr)
	if err := tf.fs.Parse(args); err != nil {
		return err
	}
	if tf.fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", tf.fs.Args())
	}

	task, err := tf.form.Build(e.loc)
	if err != nil {
		return err
	}
	c, err := e.client()
	if err != nil {
		return err
	}
	created, err := c.Create(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to save todo: %w", err)
	}

	if created.ID != "" {
		fmt.Fprintf(e.stdout, "Created todo %s\n", created.ID)
	} else {
		fmt.Fprintln(e.stdout, "Created todo")
	}
	return nil
}

// editCommand fetches a todo, overlays the given flags and replaces it.
func (e *env) editCommand(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("edit requires a todo id")
	}
	id := todo.ID(args[0])

	tf := newTaskFlags("todoboard edit", e.stderr)
	if err := tf.fs.Parse(args[1:]); err != nil {
		return err
	}
	if tf.fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", tf.fs.Args())
	}

	c, err := e.client()
	if err != nil {
		return err
	}
	current, err := c.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch todo: %w", err)
	}

	form := ui.FormFromTask(*current, e.loc)
	form.ID = id
	tf.overlay(&form)
	task, err := form.Build(e.loc)
	if err != nil {
		return err
	}
	if _, err := c.Update(ctx, id, task); err != nil {
		return fmt.Errorf("failed to save todo: %w", err)
	}
	fmt.Fprintf(e.stdout, "Updated todo %s\n", id)
	return nil
}

// rmCommand deletes a todo after confirmation.
func (e *env) rmCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todoboard rm", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	fs.BoolVar(yes, "y", false, "Skip the confirmation prompt")

	var rest []string
	for len(args) > 0 {
		if err := fs.Parse(args); err != nil {
			return err
		}
		args = fs.Args()
		if len(args) > 0 {
			rest = append(rest, args[0])
			args = args[1:]
		}
	}
	id, err := singleID("rm", rest)
	if err != nil {
		return err
	}

	if !*yes && !confirm(e.stdin, e.stdout, fmt.Sprintf("Delete todo %s? [y/N] ", id)) {
		fmt.Fprintln(e.stdout, "Aborted.")
		return nil
	}

	c, err := e.client()
	if err != nil {
		return err
	}
	if err := c.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	fmt.Fprintf(e.stdout, "Deleted todo %s\n", id)
	return nil
}

func singleID(command string, args []string) (todo.ID, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("%s requires a todo id", command)
	case 1:
		return todo.ID(strings.TrimSpace(args[0])), nil
	default:
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func printItems(w io.Writer, items []ui.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No todos found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tTITLE\tSTART\tEND\tPROGRESS")
	for _, item := range items {
		done := " "
		if item.Completed {
			done = "x"
		}
		fmt.Fprintf(tw, "%s\t[%s]\t%s\t%s\t%s\t%s\n",
			item.ID, done, utils.Truncate(item.Title, 40), item.Start, item.End, item.ProgressText)
	}
	tw.Flush()
}
