// Package styles provides shared lipgloss styles for CLI output.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nextup/nextup/internal/core/task"
)

var (
	critical = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	high     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	medium   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	low      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	done      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cancelled = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	active    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	overdue = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	// Header styles the table header row.
	Header = lipgloss.NewStyle().Bold(true)
)

// Priority renders a priority name with its severity color.
func Priority(p task.Priority) string {
	switch p {
	case task.PriorityCritical:
		return critical.Render(string(p))
	case task.PriorityHigh:
		return high.Render(string(p))
	case task.PriorityLow:
		return low.Render(string(p))
	default:
		return medium.Render(string(p))
	}
}

// Status renders a status name with its lifecycle color.
func Status(s task.Status) string {
	switch s {
	case task.StatusCompleted:
		return done.Render(string(s))
	case task.StatusCancelled:
		return cancelled.Render(string(s))
	case task.StatusInProgress:
		return active.Render(string(s))
	default:
		return string(s)
	}
}

// Due renders a due timestamp, highlighting it when past.
func Due(s string, isOverdue bool) string {
	if isOverdue {
		return overdue.Render(s)
	}
	return s
}
