package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todoboard/internal/client"
	"github.com/nibzard/todoboard/internal/logging"
	"github.com/nibzard/todoboard/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
)

// ConfirmDeletePrompt is shown before a record is removed.
const ConfirmDeletePrompt = "Are you sure you want to delete this todo? (y/n)"

// Option configures a Model.
type Option func(*Model)

// WithRefreshInterval sets how often display progress is recomputed.
func WithRefreshInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// WithLogger sets the logger used for failed operations.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock overrides the time source used for progress.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLocation sets the zone used to show and parse times.
func WithLocation(loc *time.Location) Option {
	return func(m *Model) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// WithSource sets the label shown under the title, usually the base URL.
func WithSource(source string) Option {
	return func(m *Model) {
		m.source = source
	}
}

// Model is the Bubble Tea model of the todo board.
type Model struct {
	ctx          context.Context
	collection   Collection
	logger       *log.Logger
	now          func() time.Time
	loc          *time.Location
	tickInterval time.Duration
	source       string

	state         State
	form          Form
	mode          mode
	pendingDelete *todo.Task
	notice        string
	inFlight      int
	showHelp      bool
	width         int
	styles        styles
}

// NewModel returns a model that reads and writes through collection.
func NewModel(ctx context.Context, collection Collection, opts ...Option) *Model {
	m := &Model{
		ctx:          ctx,
		collection:   collection,
		logger:       logging.Discard(),
		now:          time.Now,
		loc:          time.Local,
		tickInterval: time.Second,
		styles:       defaultStyles(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current working set.
func (m *Model) State() *State {
	return &m.state
}

// Form returns the entry form.
func (m *Model) Form() *Form {
	return &m.form
}

// Notice returns the message currently blocking input, if any.
func (m *Model) Notice() string {
	return m.notice
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.list(), tickCmd(m.tickInterval))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.notice != "" {
			m.notice = ""
			return m, nil
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	case tickMsg:
		m.state.Recompute(m.now())
		return m, tickCmd(m.tickInterval)
	case listedMsg:
		m.done()
		if msg.err != nil {
			m.state.Fail(msg.err)
			m.fail("Failed to fetch todos", msg.err)
			return m, nil
		}
		m.state.Replace(msg.tasks, m.now())
		return m, nil
	case fetchedMsg:
		m.done()
		if msg.err != nil {
			m.fail("Failed to fetch todo", msg.err)
			return m, nil
		}
		m.form = FormFromTask(*msg.task, m.loc)
		m.mode = modeForm
		return m, nil
	case savedMsg:
		m.done()
		if msg.err != nil {
			m.fail("Failed to save todo", msg.err)
			return m, nil
		}
		if msg.task != nil {
			m.logger.Info("saved todo", "id", msg.task.ID, "created", msg.created)
		}
		m.form.Reset()
		m.mode = modeList
		return m, m.list()
	case deletedMsg:
		m.done()
		if msg.err != nil {
			m.fail("Failed to delete todo", msg.err)
			return m, nil
		}
		m.logger.Info("deleted todo", "id", msg.id)
		return m, m.list()
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.state.Move(-1)
	case "down", "j":
		m.state.Move(1)
	case "n":
		m.form.Reset()
		m.mode = modeForm
	case "e", "enter":
		if t := m.state.Selected(); t != nil {
			return m, m.start(getCmd(m.ctx, m.collection, t.ID))
		}
	case "d", "x":
		if t := m.state.Selected(); t != nil {
			selected := *t
			m.pendingDelete = &selected
			m.mode = modeConfirmDelete
		}
	case "r", "f5":
		return m, m.list()
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form.Reset()
		m.mode = modeList
		return m, nil
	case "enter", "ctrl+s":
		return m, m.submit()
	case "tab", "down":
		m.form.Next()
	case "shift+tab", "up":
		m.form.Prev()
	case "backspace":
		m.form.Backspace()
	case "ctrl+u":
		m.form.Clear()
	default:
		switch msg.Type {
		case tea.KeySpace:
			m.form.Insert(" ")
		case tea.KeyRunes:
			m.form.Insert(string(msg.Runes))
		}
	}
	return m, nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.pendingDelete
	switch msg.String() {
	case "y", "Y":
		m.pendingDelete = nil
		m.mode = modeList
		if pending == nil {
			return m, nil
		}
		return m, m.start(deleteCmd(m.ctx, m.collection, pending.ID))
	case "n", "N", "esc", "q":
		m.pendingDelete = nil
		m.mode = modeList
	}
	return m, nil
}

func (m *Model) submit() tea.Cmd {
	task, err := m.form.Build(m.loc)
	if err != nil {
		m.notice = client.Message(err)
		return nil
	}
	return m.start(saveCmd(m.ctx, m.collection, task))
}

func (m *Model) list() tea.Cmd {
	return m.start(listCmd(m.ctx, m.collection))
}

func (m *Model) start(cmd tea.Cmd) tea.Cmd {
	m.inFlight++
	return cmd
}

func (m *Model) done() {
	if m.inFlight > 0 {
		m.inFlight--
	}
}

func (m *Model) fail(prefix string, err error) {
	m.logger.Error(prefix, "err", err)
	m.notice = prefix + ": " + client.Message(err)
}
