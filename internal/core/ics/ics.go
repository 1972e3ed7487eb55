// Package ics renders tasks as an iCalendar (RFC 5545) document.
package ics

import (
	"strings"
	"time"

	"github.com/nextup/nextup/internal/core/task"
)

const timeLayout = "20060102T150405"

// Build renders one VEVENT per task that has a due timestamp. The event
// ends at the due timestamp and starts estimate minutes before it.
func Build(tasks []task.Task) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//nextup//EN\r\n")

	for _, t := range tasks {
		if t.Due == nil {
			continue
		}

		end := *t.Due
		start := end.Add(-time.Duration(task.ClampEstimate(t.EstimatedMinutes)) * time.Minute)

		b.WriteString("BEGIN:VEVENT\r\n")
		b.WriteString("UID:" + t.ID + "\r\n")
		b.WriteString("DTSTART:" + start.Format(timeLayout) + "\r\n")
		b.WriteString("DTEND:" + end.Format(timeLayout) + "\r\n")
		b.WriteString("SUMMARY:" + escape(t.Title) + "\r\n")
		b.WriteString("DESCRIPTION:" + escape(t.Description) + "\r\n")
		b.WriteString("END:VEVENT\r\n")
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func escape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
