package web

import (
	"net/http"
	"time"

	"github.com/nextup/nextup/internal/core/ics"
	"github.com/nextup/nextup/internal/core/task"
)

// handleICS serves GET /ics, exporting tasks due within the requested
// date range as an iCalendar document.
func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start := now.AddDate(0, 0, -7).Format("2006-01-02")
	end := now.AddDate(0, 0, 35).Format("2006-01-02")

	if qs, qe, ok := dateRange(r.URL.Query().Get("start"), r.URL.Query().Get("end")); ok {
		start, end = qs, qe
	}

	var inRange []task.Task
	for _, t := range s.tasks.ListAll() {
		if t.Due == nil {
			continue
		}
		day := t.Due.Format("2006-01-02")
		if day >= start && day <= end {
			inRange = append(inRange, t)
		}
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=tasks.ics")
	_, _ = w.Write([]byte(ics.Build(inRange)))
}
