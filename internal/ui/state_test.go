package ui

import (
	"testing"
	"time"

	"github.com/nibzard/todoboard/internal/todo"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func windowTask(id todo.ID, title string) todo.Task {
	return todo.Task{
		ID:        id,
		Title:     title,
		StartTime: todo.NewTime(base.Add(-time.Hour)),
		EndTime:   todo.NewTime(base.Add(time.Hour)),
		Progress:  todo.NoProgress,
	}
}

func TestBuildItems(t *testing.T) {
	tasks := []todo.Task{
		windowTask("1", "Write report"),
		{ID: "2", Title: "Bare\x1b[31m", Progress: todo.NoProgress},
		{ID: "3", Title: "Done", Completed: true, Progress: 10},
	}

	items := BuildItems(tasks, base, time.UTC)
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}

	if items[0].ProgressText != "50.0%" {
		t.Errorf("items[0].ProgressText = %q, want %q", items[0].ProgressText, "50.0%")
	}
	if items[0].Start != "2024-03-01 11:00" || items[0].End != "2024-03-01 13:00" {
		t.Errorf("items[0] times = %q, %q", items[0].Start, items[0].End)
	}

	if items[1].Start != Placeholder || items[1].End != Placeholder {
		t.Errorf("items[1] times = %q, %q, want placeholders", items[1].Start, items[1].End)
	}
	if items[1].Title != "Bare[31m" {
		t.Errorf("items[1].Title = %q, want control characters stripped", items[1].Title)
	}
	if items[1].Progress != 0 {
		t.Errorf("items[1].Progress = %v, want 0", items[1].Progress)
	}

	if !items[2].Completed || items[2].ProgressText != "100.0%" {
		t.Errorf("items[2] = %+v, want completed at 100%%", items[2])
	}
}

func TestStateReplaceKeepsSelection(t *testing.T) {
	var s State
	s.Replace([]todo.Task{windowTask("1", "a"), windowTask("2", "b"), windowTask("3", "c")}, base)
	s.Move(1)
	if got := s.Selected(); got == nil || got.ID != "2" {
		t.Fatalf("Selected() = %+v, want id 2", got)
	}

	s.Replace([]todo.Task{windowTask("3", "c"), windowTask("2", "b")}, base)
	if got := s.Selected(); got == nil || got.ID != "2" {
		t.Fatalf("Selected() after replace = %+v, want id 2", got)
	}

	s.Replace([]todo.Task{windowTask("9", "z")}, base)
	if s.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 when selection disappears", s.Cursor)
	}
}

func TestStateRecomputeLeavesRecords(t *testing.T) {
	var s State
	s.Replace([]todo.Task{windowTask("1", "a")}, base)
	if s.Display[0] != 50 {
		t.Fatalf("Display[0] = %v, want 50", s.Display[0])
	}

	s.Recompute(base.Add(30 * time.Minute))
	if s.Display[0] != 75 {
		t.Errorf("Display[0] = %v, want 75", s.Display[0])
	}
	if s.Tasks[0].Progress != todo.NoProgress {
		t.Errorf("stored progress = %v, want unchanged", s.Tasks[0].Progress)
	}
}

func TestStateMove(t *testing.T) {
	var s State
	s.Move(1)
	if s.Cursor != 0 || s.Selected() != nil {
		t.Fatalf("empty state: Cursor = %d, Selected = %v", s.Cursor, s.Selected())
	}

	s.Replace([]todo.Task{windowTask("1", "a"), windowTask("2", "b")}, base)
	s.Move(-5)
	if s.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", s.Cursor)
	}
	s.Move(5)
	if s.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", s.Cursor)
	}
}
