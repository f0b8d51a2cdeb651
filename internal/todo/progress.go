package todo

import (
	"math"
	"time"
)

const (
	MinProgress = 0.0
	MaxProgress = 100.0
	// NoProgress marks a record whose progress should be derived from time.
	NoProgress = -1.0
)

// InRange reports whether p is a valid stored progress value.
func InRange(p float64) bool {
	return p >= MinProgress && p <= MaxProgress
}

// Clamp limits p to [0,100]. NaN becomes 0.
func Clamp(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return MinProgress
	case p < MinProgress:
		return MinProgress
	case p > MaxProgress:
		return MaxProgress
	}
	return p
}

// ComputeProgress returns the progress to display for t at now.
//
// A completed task is always 100. A stored progress in [0,100] is returned
// as is. Otherwise the value is interpolated linearly between start and end
// time; a missing, empty or inverted interval yields 0 regardless of now.
func ComputeProgress(t Task, now time.Time) float64 {
	if t.Completed {
		return MaxProgress
	}
	if InRange(t.Progress) {
		return t.Progress
	}
	start, end, ok := t.Interval()
	if !ok {
		return MinProgress
	}
	total := end.Sub(start)
	if total <= 0 {
		return MinProgress
	}
	if now.Before(start) {
		return MinProgress
	}
	if now.After(end) {
		return MaxProgress
	}
	elapsed := now.Sub(start)
	return Clamp(MaxProgress * float64(elapsed) / float64(total))
}
