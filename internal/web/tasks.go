package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nextup/nextup/internal/core/task"
	"github.com/nextup/nextup/internal/nextup"
)

// handleListTasks serves GET /tasks. Supports status/priority/tag filters,
// a due-date range (start/end, day precision), and ?suggested=true for the
// heuristic ordering.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status, priority, tag := q.Get("status"), q.Get("priority"), q.Get("tag")

	var tasks []task.Task
	if status != "" || priority != "" || tag != "" {
		tasks = s.tasks.Filter(status, priority, tag)
	} else {
		tasks = s.tasks.ListAll()
	}

	if start, end, ok := dateRange(q.Get("start"), q.Get("end")); ok {
		filtered := tasks[:0]
		for _, t := range tasks {
			if t.Due == nil {
				continue
			}
			day := t.Due.Format("2006-01-02")
			if day >= start && day <= end {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	if q.Get("suggested") == "true" {
		tasks = s.tasks.Suggest(tasks)
	}

	writeJSON(w, http.StatusOK, toTaskListJSON(tasks))
}

// handleCreateTask serves POST /tasks with form-encoded fields. Malformed
// enum and numeric inputs substitute defaults, they never reject.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "bad_form")
		return
	}

	created, err := s.tasks.Create(nextup.CreateInput{
		Title:            r.PostFormValue("title"),
		Description:      r.PostFormValue("description"),
		Priority:         task.ParsePriority(r.PostFormValue("priority")),
		Due:              task.ParseTime(r.PostFormValue("dueDateTime")),
		EstimatedMinutes: task.ParseEstimate(r.PostFormValue("estimatedMinutes")),
		RawTags:          r.PostFormValue("tags"),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create task")
		writeJSON(w, http.StatusInternalServerError, okJSON{OK: false, Error: "persist_failed"})
		return
	}

	writeJSON(w, http.StatusCreated, toTaskJSON(created))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "bad_form")
		return
	}

	var in nextup.UpdateInput
	if v, ok := formValue(r, "title"); ok {
		in.Title = &v
	}
	if v, ok := formValue(r, "description"); ok {
		in.Description = &v
	}
	if v, ok := formValue(r, "priority"); ok {
		p := task.ParsePriority(v)
		in.Priority = &p
	}
	if v, ok := formValue(r, "dueDateTime"); ok {
		in.Due = task.ParseTime(v)
	}
	if v, ok := formValue(r, "estimatedMinutes"); ok {
		est := task.ParseEstimate(v)
		in.EstimatedMinutes = &est
	}
	if v, ok := formValue(r, "tags"); ok {
		in.RawTags = &v
	}

	s.respondLifecycle(w, s.tasks.Update(chi.URLParam(r, "id"), in))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	removed, err := s.tasks.Delete(chi.URLParam(r, "id"))
	if err != nil {
		s.log.Error().Err(err).Msg("delete task")
		writeJSON(w, http.StatusInternalServerError, okJSON{OK: false, Error: "persist_failed"})
		return
	}
	if !removed {
		writeNotFound(w)
		return
	}
	writeOK(w)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	s.respondLifecycle(w, s.tasks.Complete(chi.URLParam(r, "id")))
}

func (s *Server) handleStartTask(w http.ResponseWriter, r *http.Request) {
	s.respondLifecycle(w, s.tasks.Start(chi.URLParam(r, "id")))
}

func (s *Server) handleSnoozeTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "bad_form")
		return
	}

	minutes := 15
	if n, err := strconv.Atoi(r.PostFormValue("minutes")); err == nil {
		minutes = n
	}

	s.respondLifecycle(w, s.tasks.Snooze(chi.URLParam(r, "id"), minutes))
}

func (s *Server) handleRescheduleTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "bad_form")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", r.PostFormValue("date"), time.Local)
	if err != nil {
		writeBadRequest(w, "date_required")
		return
	}

	s.respondLifecycle(w, s.tasks.Reschedule(chi.URLParam(r, "id"), date, nil))
}

func (s *Server) handleRecordDuration(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "bad_form")
		return
	}

	minutes := task.ParseEstimate(r.PostFormValue("minutes"))
	s.respondLifecycle(w, s.tasks.RecordActual(chi.URLParam(r, "id"), minutes))
}

// handleReorder serves PATCH /tasks/reorder with from/to task IDs.
func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "bad_form")
		return
	}

	err := s.tasks.Reorder(r.PostFormValue("from"), r.PostFormValue("to"))
	if errors.Is(err, task.ErrNotFound) {
		writeBadRequest(w, "unknown_id")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("reorder tasks")
		writeJSON(w, http.StatusInternalServerError, okJSON{OK: false, Error: "persist_failed"})
		return
	}
	writeOK(w)
}

// respondLifecycle maps a lifecycle operation result onto the ok/404/500
// envelope: not-found is a caller problem, anything else is persistence.
func (s *Server) respondLifecycle(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeOK(w)
	case errors.Is(err, task.ErrNotFound):
		writeNotFound(w)
	default:
		s.log.Error().Err(err).Msg("task operation failed")
		writeJSON(w, http.StatusInternalServerError, okJSON{OK: false, Error: "persist_failed"})
	}
}

func formValue(r *http.Request, key string) (string, bool) {
	vs, ok := r.PostForm[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// dateRange validates a start/end day pair, returning the normalized
// day strings for lexicographic comparison.
func dateRange(start, end string) (string, string, bool) {
	if start == "" || end == "" {
		return "", "", false
	}
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return "", "", false
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return "", "", false
	}
	return s.Format("2006-01-02"), e.Format("2006-01-02"), true
}
