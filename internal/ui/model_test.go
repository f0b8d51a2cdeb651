package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todoboard/internal/client"
	"github.com/nibzard/todoboard/internal/logging"
	"github.com/nibzard/todoboard/internal/todo"
)

type fakeCollection struct {
	tasks []todo.Task

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	lists, gets, creates, updates, deletes int
	lastSaved                              todo.Task
	lastID                                 todo.ID
}

func (f *fakeCollection) List(ctx context.Context) ([]todo.Task, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]todo.Task(nil), f.tasks...), nil
}

func (f *fakeCollection) Get(ctx context.Context, id todo.ID) (*todo.Task, error) {
	f.gets++
	f.lastID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, t := range f.tasks {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, &client.NotFoundError{ID: id}
}

func (f *fakeCollection) Create(ctx context.Context, task todo.Task) (*todo.Task, error) {
	f.creates++
	f.lastSaved = task
	if f.createErr != nil {
		return nil, f.createErr
	}
	task.ID = "100"
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *fakeCollection) Update(ctx context.Context, id todo.ID, task todo.Task) (*todo.Task, error) {
	f.updates++
	f.lastID = id
	f.lastSaved = task
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &task, nil
}

func (f *fakeCollection) Delete(ctx context.Context, id todo.ID) error {
	f.deletes++
	f.lastID = id
	return f.deleteErr
}

func (f *fakeCollection) calls() int {
	return f.lists + f.gets + f.creates + f.updates + f.deletes
}

func newTestModel(t *testing.T, fc *fakeCollection, now *time.Time, opts ...Option) *Model {
	t.Helper()
	opts = append([]Option{
		WithClock(func() time.Time { return *now }),
		WithLocation(time.UTC),
	}, opts...)
	return NewModel(context.Background(), fc, opts...)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func typeText(t *testing.T, m *Model, s string) {
	t.Helper()
	for _, r := range s {
		if cmd := press(t, m, string(r)); cmd != nil {
			t.Fatalf("typing %q returned a command", r)
		}
	}
}

// run executes cmd and feeds its message back into the model, returning the
// follow-up command.
func run(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	_, next := m.Update(cmd())
	return next
}

func loaded(t *testing.T, fc *fakeCollection, now *time.Time) *Model {
	t.Helper()
	m := newTestModel(t, fc, now)
	if next := run(t, m, listCmd(m.ctx, fc)); next != nil {
		t.Fatal("initial load returned a follow-up command")
	}
	fc.lists = 0
	return m
}

func TestInitIssuesCommands(t *testing.T) {
	now := base
	fc := &fakeCollection{}
	m := newTestModel(t, fc, &now)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() = nil")
	}
	if fc.calls() != 0 {
		t.Errorf("Init() called the collection %d times before running commands", fc.calls())
	}
}

func TestLoadFailureShowsNotice(t *testing.T) {
	now := base
	fc := &fakeCollection{listErr: &client.TransportError{Op: "list todos", Err: errors.New("connection refused")}}
	m := newTestModel(t, fc, &now)

	if next := run(t, m, listCmd(m.ctx, fc)); next != nil {
		t.Error("failed load returned a follow-up command")
	}
	if !strings.HasPrefix(m.Notice(), "Failed to fetch todos: ") {
		t.Errorf("Notice() = %q", m.Notice())
	}
	if !strings.Contains(m.Notice(), "connection refused") {
		t.Errorf("Notice() = %q, want transport text", m.Notice())
	}

	press(t, m, "j")
	if m.Notice() != "" {
		t.Fatalf("notice not dismissed: %q", m.Notice())
	}
	if view := m.View(); !strings.Contains(view, "Error loading todos") {
		t.Errorf("View() missing error panel:\n%s", view)
	}
}

func TestCreateRefetchesOnce(t *testing.T) {
	now := base
	fc := &fakeCollection{}
	m := loaded(t, fc, &now)

	press(t, m, "n")
	typeText(t, m, "Buy milk")
	press(t, m, "tab", "tab", "tab", "tab", "tab")
	typeText(t, m, "25")

	save := press(t, m, "ctrl+s")
	refetch := run(t, m, save)
	if fc.creates != 1 || fc.updates != 0 {
		t.Fatalf("creates = %d, updates = %d", fc.creates, fc.updates)
	}
	if fc.lastSaved.Title != "Buy milk" || fc.lastSaved.Progress != 25 {
		t.Errorf("saved = %+v", fc.lastSaved)
	}

	if next := run(t, m, refetch); next != nil {
		t.Error("re-fetch returned a follow-up command")
	}
	if fc.lists != 1 {
		t.Errorf("lists = %d, want exactly 1", fc.lists)
	}
	if m.Form().Title != "" || m.mode != modeList {
		t.Errorf("form not reset: %+v, mode %v", m.Form(), m.mode)
	}
	if len(m.State().Tasks) != 1 {
		t.Errorf("working set = %d records, want 1", len(m.State().Tasks))
	}
}

func TestSaveFailureDoesNotRefetch(t *testing.T) {
	now := base
	fc := &fakeCollection{createErr: &client.ValidationError{StatusCode: 400, Message: "Title is required"}}
	m := loaded(t, fc, &now)

	press(t, m, "n")
	typeText(t, m, "draft")
	if next := run(t, m, press(t, m, "enter")); next != nil {
		t.Fatal("failed save returned a follow-up command")
	}
	if fc.lists != 0 {
		t.Errorf("lists = %d, want 0", fc.lists)
	}
	if got, want := m.Notice(), "Failed to save todo: Title is required"; got != want {
		t.Errorf("Notice() = %q, want %q", got, want)
	}
	if m.Form().Title != "draft" || m.mode != modeForm {
		t.Errorf("form lost after failure: %+v", m.Form())
	}
}

func TestOutOfRangeProgressIssuesNoRequest(t *testing.T) {
	now := base
	fc := &fakeCollection{}
	m := loaded(t, fc, &now)

	press(t, m, "n")
	typeText(t, m, "x")
	m.Form().Focus = FieldProgress
	typeText(t, m, "150")

	if cmd := press(t, m, "ctrl+s"); cmd != nil {
		t.Fatal("rejected submit returned a command")
	}
	if fc.calls() != 0 {
		t.Errorf("collection called %d times", fc.calls())
	}
	if m.Notice() != ErrProgressRange {
		t.Errorf("Notice() = %q, want %q", m.Notice(), ErrProgressRange)
	}
}

func TestEditAndCancel(t *testing.T) {
	now := base
	task := windowTask("7", "Review")
	task.Progress = 30
	fc := &fakeCollection{tasks: []todo.Task{task}}
	m := loaded(t, fc, &now)

	if next := run(t, m, press(t, m, "e")); next != nil {
		t.Fatal("fetch returned a follow-up command")
	}
	if fc.gets != 1 || fc.lastID != "7" {
		t.Fatalf("gets = %d, lastID = %q", fc.gets, fc.lastID)
	}
	f := m.Form()
	if !f.Editing() || f.Title != "Review" || f.Progress != "30" || f.Start != "2024-03-01T11:00" {
		t.Fatalf("form = %+v", f)
	}
	if view := m.View(); !strings.Contains(view, "esc cancel edit") {
		t.Errorf("View() missing cancel affordance:\n%s", view)
	}

	press(t, m, "esc")
	if m.Form().Editing() || m.mode != modeList {
		t.Errorf("esc did not reset the form: %+v", m.Form())
	}
	if view := m.View(); strings.Contains(view, "esc cancel edit") {
		t.Errorf("View() still shows cancel affordance:\n%s", view)
	}
	if fc.updates != 0 {
		t.Errorf("updates = %d after cancel", fc.updates)
	}
}

func TestEditSubmitUpdates(t *testing.T) {
	now := base
	fc := &fakeCollection{tasks: []todo.Task{windowTask("7", "Review")}}
	m := loaded(t, fc, &now)

	run(t, m, press(t, m, "enter"))
	typeText(t, m, "!")
	refetch := run(t, m, press(t, m, "enter"))
	if fc.updates != 1 || fc.creates != 0 || fc.lastID != "7" {
		t.Fatalf("updates = %d, creates = %d, lastID = %q", fc.updates, fc.creates, fc.lastID)
	}
	if fc.lastSaved.Title != "Review!" {
		t.Errorf("saved title = %q", fc.lastSaved.Title)
	}
	run(t, m, refetch)
	if fc.lists != 1 {
		t.Errorf("lists = %d, want 1", fc.lists)
	}
}

func TestEditNotFound(t *testing.T) {
	now := base
	fc := &fakeCollection{tasks: []todo.Task{windowTask("7", "Review")}}
	m := loaded(t, fc, &now)
	fc.getErr = &client.NotFoundError{ID: "7"}

	if next := run(t, m, press(t, m, "e")); next != nil {
		t.Fatal("failed fetch returned a follow-up command")
	}
	if got, want := m.Notice(), "Failed to fetch todo: todo 7 not found"; got != want {
		t.Errorf("Notice() = %q, want %q", got, want)
	}
	if m.mode != modeList {
		t.Errorf("mode = %v, want list", m.mode)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	now := base
	fc := &fakeCollection{tasks: []todo.Task{windowTask("1", "a"), windowTask("2", "b")}}
	m := loaded(t, fc, &now)

	press(t, m, "j")
	if cmd := press(t, m, "d"); cmd != nil {
		t.Fatal("d returned a command before confirmation")
	}
	if !strings.Contains(m.View(), ConfirmDeletePrompt) {
		t.Error("confirmation prompt not shown")
	}
	if cmd := press(t, m, "n"); cmd != nil {
		t.Fatal("declining returned a command")
	}
	if fc.calls() != 0 {
		t.Fatalf("collection called %d times after declining", fc.calls())
	}

	press(t, m, "d")
	refetch := run(t, m, press(t, m, "y"))
	if fc.deletes != 1 || fc.lastID != "2" {
		t.Fatalf("deletes = %d, lastID = %q", fc.deletes, fc.lastID)
	}
	run(t, m, refetch)
	if fc.lists != 1 {
		t.Errorf("lists = %d, want 1", fc.lists)
	}
}

func TestDeleteFailure(t *testing.T) {
	now := base
	fc := &fakeCollection{tasks: []todo.Task{windowTask("1", "a")}}
	m := loaded(t, fc, &now)
	fc.deleteErr = &client.TransportError{Op: "delete todo", StatusCode: 500}

	press(t, m, "d")
	if next := run(t, m, press(t, m, "y")); next != nil {
		t.Fatal("failed delete returned a follow-up command")
	}
	if got, want := m.Notice(), "Failed to delete todo: HTTP error: 500"; got != want {
		t.Errorf("Notice() = %q, want %q", got, want)
	}
	if fc.lists != 0 {
		t.Errorf("lists = %d, want 0", fc.lists)
	}
}

func TestTickRecomputesWithoutRequests(t *testing.T) {
	now := base
	fc := &fakeCollection{tasks: []todo.Task{windowTask("1", "a")}}
	m := loaded(t, fc, &now)

	if !strings.Contains(m.View(), "50.0%") {
		t.Fatalf("View() missing initial progress:\n%s", m.View())
	}

	now = base.Add(30 * time.Minute)
	_, cmd := m.Update(tickMsg(now))
	if cmd == nil {
		t.Error("tick did not reschedule")
	}
	if fc.calls() != 0 {
		t.Errorf("tick called the collection %d times", fc.calls())
	}
	if !strings.Contains(m.View(), "75.0%") {
		t.Errorf("View() missing recomputed progress:\n%s", m.View())
	}
	if m.State().Tasks[0].Progress != todo.NoProgress {
		t.Errorf("tick wrote progress into the cache: %v", m.State().Tasks[0].Progress)
	}
}

func TestNoticeSwallowsNextKey(t *testing.T) {
	now := base
	fc := &fakeCollection{}
	m := loaded(t, fc, &now)
	m.notice = "something failed"

	if cmd := press(t, m, "q"); cmd != nil {
		t.Fatal("dismissing key was acted on")
	}
	if m.Notice() != "" {
		t.Errorf("Notice() = %q after key press", m.Notice())
	}
	if m.mode != modeList {
		t.Errorf("mode = %v", m.mode)
	}
}

func TestQuitKeys(t *testing.T) {
	now := base
	m := loaded(t, &fakeCollection{}, &now)

	press(t, m, "n")
	typeText(t, m, "q")
	if m.Form().Title != "q" {
		t.Errorf("q in form should be typed, title = %q", m.Form().Title)
	}
	if cmd := press(t, m, "ctrl+c"); cmd == nil {
		t.Error("ctrl+c did not quit")
	}
}

func TestViewRendersItems(t *testing.T) {
	now := base
	done := windowTask("2", "Finished")
	done.Completed = true
	fc := &fakeCollection{tasks: []todo.Task{
		{ID: "1", Title: "No\x07times", Progress: todo.NoProgress},
		done,
	}}
	m := loaded(t, fc, &now)

	view := m.View()
	for _, want := range []string{"Notimes", "Start: N/A  End: N/A", "0.0%", "Finished", "100.0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "\x07") {
		t.Error("View() contains a control character from user text")
	}
}

func TestMutationsAreLogged(t *testing.T) {
	now := base
	fc := &fakeCollection{tasks: []todo.Task{windowTask("1", "a")}}
	var logs bytes.Buffer
	m := newTestModel(t, fc, &now, WithLogger(logging.New(&logs, logging.DefaultOptions())))
	run(t, m, listCmd(m.ctx, fc))

	press(t, m, "n")
	typeText(t, m, "b")
	run(t, m, press(t, m, "enter"))
	if out := logs.String(); !strings.Contains(out, "saved todo") || !strings.Contains(out, "id=100") || !strings.Contains(out, "created=true") {
		t.Errorf("save not logged with id:\n%s", out)
	}

	press(t, m, "d")
	run(t, m, press(t, m, "y"))
	if out := logs.String(); !strings.Contains(out, "deleted todo") || !strings.Contains(out, "id=1") {
		t.Errorf("delete not logged with id:\n%s", out)
	}
}

func TestHelpDescribesCompletedToggle(t *testing.T) {
	now := base
	m := loaded(t, &fakeCollection{}, &now)
	press(t, m, "?")
	if view := m.View(); !strings.Contains(view, "Toggle completed (on the Completed field)") {
		t.Errorf("help missing completed toggle scope:\n%s", view)
	}
}

func TestBarFill(t *testing.T) {
	tests := []struct {
		pct  float64
		want int
	}{
		{pct: 0, want: 0},
		{pct: -5, want: 0},
		{pct: 50, want: 15},
		{pct: 100, want: 30},
		{pct: 150, want: 30},
	}
	for _, tt := range tests {
		if got := barFill(tt.pct, 30); got != tt.want {
			t.Errorf("barFill(%v, 30) = %d, want %d", tt.pct, got, tt.want)
		}
	}
}
