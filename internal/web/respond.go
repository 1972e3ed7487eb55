package web

import (
	"encoding/json"
	"net/http"

	"github.com/nextup/nextup/internal/core/task"
)

// taskJSON is the wire shape of a task. Timestamps use the same
// minute-precision format as the data file.
type taskJSON struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Priority         string   `json:"priority"`
	Status           string   `json:"status"`
	DueDateTime      string   `json:"dueDateTime"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	Category         string   `json:"category"`
	ActualMinutes    *int     `json:"actualMinutes"`
	ReminderBefore   *int     `json:"reminderBeforeMinutes"`
	SortOrder        *int     `json:"sortOrder"`
	CreatedAt        string   `json:"createdAt"`
	CompletedAt      string   `json:"completedAt"`
	Tags             []string `json:"tags"`
}

func toTaskJSON(t task.Task) taskJSON {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return taskJSON{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		Priority:         string(t.Priority),
		Status:           string(t.Status),
		DueDateTime:      task.FormatTime(t.Due),
		EstimatedMinutes: t.EstimatedMinutes,
		Category:         t.Category,
		ActualMinutes:    t.ActualMinutes,
		ReminderBefore:   t.LeadMinutes,
		SortOrder:        t.SortOrder,
		CreatedAt:        task.FormatTime(t.CreatedAt),
		CompletedAt:      task.FormatTime(t.CompletedAt),
		Tags:             tags,
	}
}

func toTaskListJSON(tasks []task.Task) []taskJSON {
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskJSON(t))
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// okJSON is the success/failure envelope for lifecycle operations.
type okJSON struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, okJSON{OK: true})
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, okJSON{OK: false, Error: "not_found"})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, okJSON{OK: false, Error: msg})
}
