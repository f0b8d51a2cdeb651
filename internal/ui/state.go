package ui

import (
	"fmt"
	"time"

	"github.com/nibzard/todoboard/internal/todo"
	"github.com/nibzard/todoboard/internal/utils"
)

// DisplayLayout formats start and end times in list views.
const DisplayLayout = "2006-01-02 15:04"

// Placeholder is shown for an absent timestamp.
const Placeholder = "N/A"

// Item is the view-model for one rendered task. All text fields are safe to
// write to a terminal.
type Item struct {
	ID           todo.ID
	Title        string
	Description  string
	Start        string
	End          string
	Progress     float64
	ProgressText string
	Completed    bool
}

// BuildItems maps tasks onto view-models using progress computed at now.
func BuildItems(tasks []todo.Task, now time.Time, loc *time.Location) []Item {
	items := make([]Item, len(tasks))
	for i, t := range tasks {
		items[i] = NewItem(t, todo.ComputeProgress(t, now), loc)
	}
	return items
}

// NewItem builds the view-model for t with an already computed progress.
func NewItem(t todo.Task, progress float64, loc *time.Location) Item {
	progress = todo.Clamp(progress)
	return Item{
		ID:           t.ID,
		Title:        utils.StripControl(t.Title),
		Description:  utils.StripControl(t.Description),
		Start:        formatTime(t.StartTime, loc),
		End:          formatTime(t.EndTime, loc),
		Progress:     progress,
		ProgressText: fmt.Sprintf("%.1f%%", progress),
		Completed:    t.Completed,
	}
}

func formatTime(t *todo.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return Placeholder
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DisplayLayout)
}

// State is the in-memory working set. The Bubble Tea update loop is its only
// writer; the cached records are never modified by progress recomputation.
type State struct {
	Tasks   []todo.Task
	Display []float64 // display progress, parallel to Tasks
	Cursor  int
	Loaded  bool
	LoadErr error
}

// Replace swaps in a freshly fetched list, keeping the cursor on the same
// record when it still exists.
func (s *State) Replace(tasks []todo.Task, now time.Time) {
	var selected todo.ID
	if cur := s.Selected(); cur != nil {
		selected = cur.ID
	}

	s.Tasks = tasks
	s.Loaded = true
	s.LoadErr = nil
	s.Recompute(now)

	s.Cursor = 0
	for i := range s.Tasks {
		if selected != "" && s.Tasks[i].ID == selected {
			s.Cursor = i
			break
		}
	}
}

// Fail records a load failure. The previous working set stays visible.
func (s *State) Fail(err error) {
	s.LoadErr = err
}

// Recompute refreshes display progress for every record.
func (s *State) Recompute(now time.Time) {
	if cap(s.Display) < len(s.Tasks) {
		s.Display = make([]float64, len(s.Tasks))
	}
	s.Display = s.Display[:len(s.Tasks)]
	for i, t := range s.Tasks {
		s.Display[i] = todo.ComputeProgress(t, now)
	}
}

// Items returns view-models for the working set using the last recomputed
// progress values.
func (s *State) Items(loc *time.Location) []Item {
	items := make([]Item, len(s.Tasks))
	for i, t := range s.Tasks {
		var progress float64
		if i < len(s.Display) {
			progress = s.Display[i]
		}
		items[i] = NewItem(t, progress, loc)
	}
	return items
}

// Selected returns the record under the cursor, or nil.
func (s *State) Selected() *todo.Task {
	if s.Cursor < 0 || s.Cursor >= len(s.Tasks) {
		return nil
	}
	return &s.Tasks[s.Cursor]
}

// Move shifts the cursor by delta, staying within the list.
func (s *State) Move(delta int) {
	if len(s.Tasks) == 0 {
		s.Cursor = 0
		return
	}
	s.Cursor += delta
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= len(s.Tasks) {
		s.Cursor = len(s.Tasks) - 1
	}
}
