package nextup

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/nextup/nextup/internal/core/note"
)

// NoteService manages calendar notes.
type NoteService struct {
	store note.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewNoteService creates a note service over the given store.
func NewNoteService(store note.Store, log zerolog.Logger) *NoteService {
	return &NoteService{
		store: store,
		log:   log.With().Str("component", "notes").Logger(),
		now:   time.Now,
	}
}

// ListRange returns notes dated within [start, end] inclusive.
func (s *NoteService) ListRange(start, end time.Time) []note.Note {
	return s.store.ListRange(start, end)
}

// Upsert creates or replaces the note for a date. A nil id mints a new
// note; updatedAt is always refreshed, createdAt only set on creation.
func (s *NoteService) Upsert(date time.Time, content, id string) (note.Note, error) {
	now := s.now()
	n := note.Note{
		ID:        id,
		Date:      date,
		Content:   content,
		UpdatedAt: &now,
	}
	if id == "" {
		n.CreatedAt = &now
	}
	return s.store.Upsert(n)
}

// Delete removes a note.
func (s *NoteService) Delete(id string) error {
	return s.store.Delete(id)
}
