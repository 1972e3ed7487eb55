package task

import (
	"cmp"
	"slices"
	"time"
)

const terminalScore = -1000

// Score computes the "what to do next" weight of a single task at the
// given instant. Higher is more urgent. Terminal tasks always score
// terminalScore so they sort after every actionable task.
//
// The weights are fixed constants; the function is pure and recomputed in
// full on every call since personal task counts are small.
func Score(t Task, now time.Time) int {
	if t.Status.Terminal() {
		return terminalScore
	}

	s := 0

	switch t.Priority {
	case PriorityCritical:
		s += 100
	case PriorityHigh:
		s += 70
	case PriorityMedium, "":
		s += 30
	}

	if t.Due != nil {
		minutes := int(t.Due.Sub(now).Minutes())
		switch {
		case minutes < 0: // overdue
			s += 100
		case minutes <= 60:
			s += 40
		case minutes <= 240:
			s += 25
		case minutes <= 24*60:
			s += 10
		}
	}

	// Short tasks first, to build momentum.
	switch est := ClampEstimate(t.EstimatedMinutes); {
	case est <= 30:
		s += 10
	case est <= 60:
		s += 5
	}

	// Age bonus nudges stale tasks forward.
	if t.CreatedAt != nil {
		switch days := int(now.Sub(*t.CreatedAt).Hours() / 24); {
		case days >= 7:
			s += 20
		case days >= 3:
			s += 10
		}
	}

	if t.Status == StatusInProgress {
		s += 15
	}

	return s
}

// Suggest returns a new slice ordered best-first: score descending, then
// due ascending with nil last, then priority rank, then estimate ascending.
// The input slice is not modified.
func Suggest(tasks []Task, now time.Time) []Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b Task) int {
		if c := cmp.Compare(Score(b, now), Score(a, now)); c != 0 {
			return c
		}
		if c := compareDue(a.Due, b.Due); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.EstimatedMinutes, b.EstimatedMinutes)
	})
	return out
}

// compareDue orders timestamps ascending with nil sorting last.
func compareDue(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}
