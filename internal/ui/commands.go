package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todoboard/internal/todo"
)

// Collection is the remote store the view controller talks to.
// *client.Client satisfies it.
type Collection interface {
	List(ctx context.Context) ([]todo.Task, error)
	Get(ctx context.Context, id todo.ID) (*todo.Task, error)
	Create(ctx context.Context, task todo.Task) (*todo.Task, error)
	Update(ctx context.Context, id todo.ID, task todo.Task) (*todo.Task, error)
	Delete(ctx context.Context, id todo.ID) error
}

type tickMsg time.Time

type listedMsg struct {
	tasks []todo.Task
	err   error
}

type fetchedMsg struct {
	task *todo.Task
	err  error
}

type savedMsg struct {
	task    *todo.Task
	created bool
	err     error
}

type deletedMsg struct {
	id  todo.ID
	err error
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func listCmd(ctx context.Context, c Collection) tea.Cmd {
	return func() tea.Msg {
		tasks, err := c.List(ctx)
		return listedMsg{tasks: tasks, err: err}
	}
}

func getCmd(ctx context.Context, c Collection, id todo.ID) tea.Cmd {
	return func() tea.Msg {
		task, err := c.Get(ctx, id)
		return fetchedMsg{task: task, err: err}
	}
}

func saveCmd(ctx context.Context, c Collection, task todo.Task) tea.Cmd {
	return func() tea.Msg {
		if task.IsNew() {
			created, err := c.Create(ctx, task)
			return savedMsg{task: created, created: true, err: err}
		}
		updated, err := c.Update(ctx, task.ID, task)
		return savedMsg{task: updated, err: err}
	}
}

func deleteCmd(ctx context.Context, c Collection, id todo.ID) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: c.Delete(ctx, id)}
	}
}
