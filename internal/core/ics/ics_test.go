package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextup/nextup/internal/core/task"
)

func TestBuild(t *testing.T) {
	due := time.Date(2026, 9, 4, 17, 0, 0, 0, time.Local)

	tasks := []task.Task{
		{
			ID:               "t1",
			Title:            "ship release; notify team, celebrate",
			Description:      "line one\nline two",
			Due:              &due,
			EstimatedMinutes: 45,
		},
		{ID: "undated", Title: "no event for me"},
	}

	out := Build(tasks)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"), "tasks without a due timestamp are skipped")

	assert.Contains(t, out, "UID:t1\r\n")
	assert.Contains(t, out, "DTEND:20260904T170000\r\n")
	assert.Contains(t, out, "DTSTART:20260904T161500\r\n", "event starts estimate minutes before due")
	assert.Contains(t, out, `SUMMARY:ship release\; notify team\, celebrate`)
	assert.Contains(t, out, `DESCRIPTION:line one\nline two`)

	for _, line := range strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n") {
		require.NotContains(t, line, "\n", "all line endings are CRLF")
	}
}

func TestBuildEmpty(t *testing.T) {
	out := Build(nil)
	assert.Equal(t, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//nextup//EN\r\nEND:VCALENDAR\r\n", out)
}
