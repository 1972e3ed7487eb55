package csvfile

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nextup/nextup/internal/core/note"
	"github.com/nextup/nextup/internal/core/task"
)

var noteHeader = []string{"id", "date", "content", "createdAt", "updatedAt"}

// NoteStore implements note.Store on a CSV file, with the same
// load-then-rewrite discipline as TaskStore.
type NoteStore struct {
	path string
	log  zerolog.Logger

	mu    sync.Mutex
	notes []note.Note
}

var _ note.Store = (*NoteStore)(nil)

// OpenNoteStore opens (or creates) the notes file and loads all rows.
func OpenNoteStore(path string, log zerolog.Logger) (*NoteStore, error) {
	s := &NoteStore{
		path: path,
		log:  log.With().Str("component", "notestore").Logger(),
	}

	if err := ensureFile(path, noteHeader); err != nil {
		return nil, fmt.Errorf("ensure notes file: %w", err)
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("load notes file: %w", err)
	}

	return s, nil
}

func (s *NoteStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var notes []note.Note
	for i, rec := range SplitRecords(string(data)) {
		if i == 0 || strings.TrimSpace(rec) == "" {
			continue
		}
		n, err := decodeNote(ParseRecord(rec))
		if err != nil {
			s.log.Debug().Err(err).Int("row", i).Msg("dropping unparsable note row")
			continue
		}
		notes = append(notes, n)
	}

	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()
	return nil
}

// ListRange returns notes dated within [start, end] inclusive.
func (s *NoteStore) ListRange(start, end time.Time) []note.Note {
	startDay := start.Format(note.DateLayout)
	endDay := end.Format(note.DateLayout)

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []note.Note
	for _, n := range s.notes {
		day := n.Date.Format(note.DateLayout)
		if day >= startDay && day <= endDay {
			out = append(out, n)
		}
	}
	return out
}

// Upsert inserts or replaces the note, minting an ID when absent.
func (s *NoteStore) Upsert(n note.Note) (note.Note, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.notes {
		if s.notes[i].ID == n.ID {
			s.notes[i] = n
			replaced = true
			break
		}
	}
	if !replaced {
		s.notes = append(s.notes, n)
	}

	return n, s.saveLocked()
}

// Delete removes the note if present.
func (s *NoteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return s.saveLocked()
		}
	}
	return nil
}

func (s *NoteStore) saveLocked() error {
	var b strings.Builder
	b.WriteString(Join(noteHeader))
	b.WriteByte('\n')
	for _, n := range s.notes {
		b.WriteString(Join([]string{
			n.ID,
			n.Date.Format(note.DateLayout),
			n.Content,
			task.FormatTime(n.CreatedAt),
			task.FormatTime(n.UpdatedAt),
		}))
		b.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write notes file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace notes file: %w", err)
	}
	return nil
}

func decodeNote(cols []string) (note.Note, error) {
	if len(cols) < 5 {
		return note.Note{}, fmt.Errorf("short row: %d columns", len(cols))
	}

	n := note.Note{ID: cols[0], Content: cols[2]}
	if n.ID == "" {
		return note.Note{}, fmt.Errorf("missing id")
	}

	date, err := time.ParseInLocation(note.DateLayout, cols[1], time.Local)
	if err != nil {
		return note.Note{}, fmt.Errorf("bad date %q", cols[1])
	}
	n.Date = date

	if n.CreatedAt, err = decodeTime(cols[3]); err != nil {
		return note.Note{}, err
	}
	if n.UpdatedAt, err = decodeTime(cols[4]); err != nil {
		return note.Note{}, err
	}

	return n, nil
}
