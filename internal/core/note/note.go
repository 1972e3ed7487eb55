// Package note defines the calendar note domain model.
package note

import (
	"errors"
	"time"
)

// DateLayout is the day-precision format notes are keyed by.
const DateLayout = "2006-01-02"

// ErrNotFound is returned when a note does not exist.
var ErrNotFound = errors.New("note not found")

// Note is a free-form text entry attached to a calendar day.
type Note struct {
	ID        string
	Date      time.Time // day precision; clock component ignored
	Content   string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// Store persists calendar notes.
type Store interface {
	// ListRange returns notes whose date falls within [start, end],
	// inclusive on both ends.
	ListRange(start, end time.Time) []Note

	// Upsert inserts or replaces the note with the same ID, minting an
	// ID if the note has none, and returns the stored note.
	Upsert(n Note) (Note, error)

	// Delete removes a note. Deleting an unknown ID is a no-op.
	Delete(id string) error
}
