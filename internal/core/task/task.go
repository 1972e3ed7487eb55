// Package task defines the task domain model for personal work tracking.
package task

import (
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the minute-precision timestamp format used everywhere a
// task timestamp crosses a boundary (file, API, CLI). No timezone, no seconds.
const TimeLayout = "2006-01-02 15:04"

// DefaultEstimatedMinutes is substituted when an estimate cannot be parsed.
const DefaultEstimatedMinutes = 30

// DefaultLeadMinutes is the reminder lead window used when a task carries
// no override.
const DefaultLeadMinutes = 60

// Priority orders tasks by importance.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Rank returns the sort rank of a priority, CRITICAL first.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// ParsePriority maps a string to a Priority, case-insensitively.
// Unknown or empty input falls back to MEDIUM rather than erroring.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToUpper(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	case PriorityCritical:
		return PriorityCritical
	default:
		return PriorityMedium
	}
}

// Status represents the lifecycle state of a task.
// PENDING → IN_PROGRESS → COMPLETED; PENDING or IN_PROGRESS → CANCELLED.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Terminal reports whether the status is an end state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParseStatus maps a string to a Status, case-insensitively.
// Unknown or empty input falls back to PENDING rather than erroring.
func ParseStatus(s string) Status {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusInProgress:
		return StatusInProgress
	case StatusCompleted:
		return StatusCompleted
	case StatusCancelled:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// Task is the sole durable entity. The ID is opaque and immutable after
// creation. Optional fields are pointers; nil means absent.
type Task struct {
	ID               string
	Title            string
	Description      string
	Priority         Priority
	Due              *time.Time
	EstimatedMinutes int
	Status           Status
	CreatedAt        *time.Time
	CompletedAt      *time.Time
	Tags             []string
	Category         string
	ActualMinutes    *int
	LeadMinutes      *int // reminder lead override; nil means DefaultLeadMinutes
	SortOrder        *int // manual position; nil sorts after all ordered tasks
	Recurrence       string
}

// Clone returns a deep copy so callers can mutate without aliasing the
// store's tag slice.
func (t Task) Clone() Task {
	out := t
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	return out
}

// HasTag reports whether the task carries the tag, case-insensitively.
func (t Task) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if strings.EqualFold(v, tag) {
			return true
		}
	}
	return false
}

// Lead returns the effective reminder lead window in minutes, clamped to
// at least one minute.
func (t Task) Lead() int {
	if t.LeadMinutes == nil {
		return DefaultLeadMinutes
	}
	return max(1, *t.LeadMinutes)
}

// ClampEstimate enforces the estimatedMinutes >= 1 invariant.
func ClampEstimate(minutes int) int {
	return max(1, minutes)
}

// ParseEstimate converts raw caller input to an estimate. Empty or
// unparsable input substitutes DefaultEstimatedMinutes; anything else is
// clamped to at least one minute. Inputs are never rejected.
func ParseEstimate(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultEstimatedMinutes
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return DefaultEstimatedMinutes
	}
	return ClampEstimate(n)
}

// NormalizeTags splits a raw semicolon-delimited tag string into trimmed,
// lowercased tags, dropping empties. Order is preserved for display.
func NormalizeTags(raw string) []string {
	var tags []string
	for _, s := range strings.Split(raw, ";") {
		v := strings.ToLower(strings.TrimSpace(s))
		if v != "" {
			tags = append(tags, v)
		}
	}
	return tags
}

// ParseTime parses a minute-precision timestamp, returning nil for empty
// or malformed input per the never-reject substitution policy.
func ParseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	ts, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return nil
	}
	return &ts
}

// FormatTime renders a timestamp in the wire format; nil renders empty.
func FormatTime(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format(TimeLayout)
}
