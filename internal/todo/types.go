package todo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InputLayout is the datetime-local layout used by forms and by the
// create/update payload.
const InputLayout = "2006-01-02T15:04"

var decodeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	InputLayout,
}

// ID identifies a task in the remote collection. The store assigns it; an
// empty ID marks a record that has not been created yet.
type ID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("parse id: %w", err)
		}
		*id = ID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("parse id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes canonical integer identifiers as numbers. Anything
// else, including zero-padded digits, stays a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) numeric() bool {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

// String returns the identifier as used in URLs.
func (id ID) String() string {
	return string(id)
}

// Time is a nullable timestamp tolerant of the layouts the collection emits.
type Time struct {
	time.Time
}

// NewTime wraps t, returning nil for the zero time.
func NewTime(t time.Time) *Time {
	if t.IsZero() {
		return nil
	}
	return &Time{Time: t}
}

// ParseTime parses a timestamp in any of the accepted layouts.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range decodeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", s)
}

// UnmarshalJSON implements the json.Unmarshaler interface for Time.
func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Time.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Time.UTC().Format(InputLayout) + `"`), nil
}

// Task is one todo record.
type Task struct {
	ID          ID      `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	StartTime   *Time   `json:"start_time"`
	EndTime     *Time   `json:"end_time"`
	Progress    float64 `json:"progress"`
	CreatedAt   *Time   `json:"created_at,omitempty"`
}

// UnmarshalJSON decodes a record, mapping a missing progress to NoProgress
// and zero timestamps to nil.
func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	aux := &struct {
		Progress *float64 `json:"progress"`
		*alias
	}{
		alias: (*alias)(t),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	t.Progress = NoProgress
	if aux.Progress != nil {
		t.Progress = *aux.Progress
	}
	t.StartTime = normalizeTime(t.StartTime)
	t.EndTime = normalizeTime(t.EndTime)
	t.CreatedAt = normalizeTime(t.CreatedAt)
	return nil
}

func normalizeTime(t *Time) *Time {
	if t == nil || t.Time.IsZero() {
		return nil
	}
	return t
}

// IsNew reports whether the record has not been stored yet.
func (t *Task) IsNew() bool {
	return t.ID == ""
}

// Interval returns the start and end times when both are present.
func (t *Task) Interval() (start, end time.Time, ok bool) {
	if t.StartTime == nil || t.EndTime == nil {
		return time.Time{}, time.Time{}, false
	}
	if t.StartTime.IsZero() || t.EndTime.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return t.StartTime.Time, t.EndTime.Time, true
}

// Payload is the body sent on create and update.
type Payload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	StartTime   *Time   `json:"start_time"`
	EndTime     *Time   `json:"end_time"`
	Progress    float64 `json:"progress"`
}

// Payload returns the create/update body for the record. The collection
// rejects negative progress, so NoProgress is sent as 0.
func (t *Task) Payload() Payload {
	progress := t.Progress
	if progress < MinProgress {
		progress = MinProgress
	}
	return Payload{
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		StartTime:   normalizeTime(t.StartTime),
		EndTime:     normalizeTime(t.EndTime),
		Progress:    progress,
	}
}
