package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/todoboard/internal/client"
	"github.com/nibzard/todoboard/internal/todo"
)

// ErrProgressRange is the rejection message for out-of-range progress input.
const ErrProgressRange = "Progress must be between 0 and 100"

// Field identifies one input of the entry form.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldCompleted
	FieldStart
	FieldEnd
	FieldProgress
	fieldCount
)

var fieldLabels = [fieldCount]string{
	FieldTitle:       "Title",
	FieldDescription: "Description",
	FieldCompleted:   "Completed",
	FieldStart:       "Start",
	FieldEnd:         "End",
	FieldProgress:    "Progress",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldLabels[f]
}

// Form holds the raw text of the entry form. Times use todo.InputLayout in
// local time; an empty progress field means no stored value.
type Form struct {
	ID          todo.ID
	Title       string
	Description string
	Completed   bool
	Start       string
	End         string
	Progress    string
	Focus       Field
}

// Editing reports whether the form targets an existing record.
func (f *Form) Editing() bool {
	return f.ID != ""
}

// Reset clears the form back to the creation state.
func (f *Form) Reset() {
	*f = Form{}
}

// FormFromTask fills a form for editing t. Progress is shown only when it is
// positive.
func FormFromTask(t todo.Task, loc *time.Location) Form {
	f := Form{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Start:       inputTime(t.StartTime, loc),
		End:         inputTime(t.EndTime, loc),
	}
	if t.Progress > 0 {
		f.Progress = strconv.FormatFloat(t.Progress, 'f', -1, 64)
	}
	return f
}

func inputTime(t *todo.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(todo.InputLayout)
}

// Build converts the form into a record ready to submit. Rejections are
// *client.ValidationError values with no status code.
func (f *Form) Build(loc *time.Location) (todo.Task, error) {
	if loc == nil {
		loc = time.Local
	}
	progress, err := ParseProgress(f.Progress)
	if err != nil {
		return todo.Task{}, err
	}
	start, err := parseInputTime(FieldStart, f.Start, loc)
	if err != nil {
		return todo.Task{}, err
	}
	end, err := parseInputTime(FieldEnd, f.End, loc)
	if err != nil {
		return todo.Task{}, err
	}
	return todo.Task{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Completed:   f.Completed,
		StartTime:   start,
		EndTime:     end,
		Progress:    progress,
	}, nil
}

// ParseProgress reads a progress field. Empty input yields todo.NoProgress.
func ParseProgress(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return todo.NoProgress, nil
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || !todo.InRange(p) {
		return 0, &client.ValidationError{Message: ErrProgressRange}
	}
	return p, nil
}

func parseInputTime(field Field, s string, loc *time.Location) (*todo.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{todo.InputLayout, DisplayLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return todo.NewTime(t), nil
		}
	}
	return nil, &client.ValidationError{
		Message: fmt.Sprintf("%s time must look like %s", field, todo.InputLayout),
	}
}

// value returns a pointer to the text behind the focused field, or nil for
// the completed toggle.
func (f *Form) value() *string {
	switch f.Focus {
	case FieldTitle:
		return &f.Title
	case FieldDescription:
		return &f.Description
	case FieldStart:
		return &f.Start
	case FieldEnd:
		return &f.End
	case FieldProgress:
		return &f.Progress
	}
	return nil
}

// Next moves focus forward, wrapping at the end.
func (f *Form) Next() {
	f.Focus = (f.Focus + 1) % fieldCount
}

// Prev moves focus backward, wrapping at the start.
func (f *Form) Prev() {
	f.Focus = (f.Focus + fieldCount - 1) % fieldCount
}

// Insert appends text to the focused field. On the completed field any
// input toggles the flag.
func (f *Form) Insert(s string) {
	v := f.value()
	if v == nil {
		f.Completed = !f.Completed
		return
	}
	*v += s
}

// Backspace removes the last rune of the focused field.
func (f *Form) Backspace() {
	v := f.value()
	if v == nil || *v == "" {
		return
	}
	r := []rune(*v)
	*v = string(r[:len(r)-1])
}

// Clear empties the focused field.
func (f *Form) Clear() {
	if v := f.value(); v != nil {
		*v = ""
		return
	}
	f.Completed = false
}
