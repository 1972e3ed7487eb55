package web

import (
	"net/http"
	"time"

	"github.com/nextup/nextup/internal/core/note"
)

type noteJSON struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

func toNoteListJSON(notes []note.Note) []noteJSON {
	out := make([]noteJSON, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteJSON{
			ID:      n.ID,
			Date:    n.Date.Format(note.DateLayout),
			Content: n.Content,
		})
	}
	return out
}

// handleListNotes serves GET /notes?start=&end= with a default window of
// a week back through five weeks ahead.
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start := now.AddDate(0, 0, -7)
	end := now.AddDate(0, 0, 35)

	if v := r.URL.Query().Get("start"); v != "" {
		if d, err := time.ParseInLocation(note.DateLayout, v, time.Local); err == nil {
			start = d
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		if d, err := time.ParseInLocation(note.DateLayout, v, time.Local); err == nil {
			end = d
		}
	}

	writeJSON(w, http.StatusOK, toNoteListJSON(s.notes.ListRange(start, end)))
}

func (s *Server) handleUpsertNote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "bad_form")
		return
	}

	date, err := time.ParseInLocation(note.DateLayout, r.PostFormValue("date"), time.Local)
	if err != nil {
		writeBadRequest(w, "date_required")
		return
	}

	n, err := s.notes.Upsert(date, r.PostFormValue("content"), r.PostFormValue("id"))
	if err != nil {
		s.log.Error().Err(err).Msg("upsert note")
		writeJSON(w, http.StatusInternalServerError, okJSON{OK: false, Error: "persist_failed"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "id": n.ID})
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "bad_form")
		return
	}

	if id := r.PostFormValue("id"); id != "" {
		if err := s.notes.Delete(id); err != nil {
			s.log.Error().Err(err).Msg("delete note")
			writeJSON(w, http.StatusInternalServerError, okJSON{OK: false, Error: "persist_failed"})
			return
		}
	}
	writeOK(w)
}
