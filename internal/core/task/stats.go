package task

import (
	"fmt"
	"strings"
	"time"
)

// Stats is an aggregate summary over a task snapshot, consumed for display.
type Stats struct {
	Total     int
	Active    int // pending or in-progress
	Completed int
	Cancelled int
	Overdue   int

	AvgEstimatedMinutes float64

	// AvgCompletion is the mean created→completed latency across tasks
	// that have both timestamps. Samples is how many contributed.
	AvgCompletion time.Duration
	Samples       int
}

// BuildStats computes summary statistics for a snapshot at the given instant.
func BuildStats(tasks []Task, now time.Time) Stats {
	var st Stats
	st.Total = len(tasks)

	var estSum int
	var latencySum time.Duration

	for _, t := range tasks {
		estSum += t.EstimatedMinutes

		switch t.Status {
		case StatusCompleted:
			st.Completed++
		case StatusCancelled:
			st.Cancelled++
		default:
			st.Active++
			if t.Due != nil && t.Due.Before(now) {
				st.Overdue++
			}
		}

		if t.Status == StatusCompleted && t.CreatedAt != nil && t.CompletedAt != nil {
			latencySum += t.CompletedAt.Sub(*t.CreatedAt)
			st.Samples++
		}
	}

	if st.Total > 0 {
		st.AvgEstimatedMinutes = float64(estSum) / float64(st.Total)
	}
	if st.Samples > 0 {
		st.AvgCompletion = latencySum / time.Duration(st.Samples)
	}

	return st
}

// Report renders the stats as a plain-text block.
func (s Stats) Report() string {
	var b strings.Builder
	b.WriteString("Task statistics\n")
	fmt.Fprintf(&b, "- total:          %d\n", s.Total)
	fmt.Fprintf(&b, "- active:         %d\n", s.Active)
	fmt.Fprintf(&b, "- completed:      %d\n", s.Completed)
	fmt.Fprintf(&b, "- cancelled:      %d\n", s.Cancelled)
	fmt.Fprintf(&b, "- overdue:        %d\n", s.Overdue)
	fmt.Fprintf(&b, "- avg estimate:   %.1f min\n", s.AvgEstimatedMinutes)
	fmt.Fprintf(&b, "- avg completion: %s\n", s.humanAvgCompletion())
	return b.String()
}

func (s Stats) humanAvgCompletion() string {
	if s.Samples == 0 {
		return "n/a"
	}
	minutes := int(s.AvgCompletion.Minutes())
	if h := minutes / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
