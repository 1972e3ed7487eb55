package task

import "errors"

// ErrNotFound is returned when a task does not exist in the store.
var ErrNotFound = errors.New("task not found")

// Store is the durable task directory. Implementations must serialize all
// reads and writes behind a single mutual-exclusion boundary so the backing
// file and the in-memory collection never diverge mid-operation.
type Store interface {
	// List returns a snapshot of every task in insertion order.
	List() []Task

	// Get returns a single task by ID.
	// Returns ErrNotFound if the task does not exist.
	Get(id string) (Task, error)

	// Upsert inserts or replaces the task with the same ID and rewrites
	// the backing file. A write failure is returned to the caller; the
	// in-memory collection keeps the attempted mutation.
	Upsert(t Task) error

	// Delete removes a task permanently. The boolean reports whether a
	// task was actually removed.
	Delete(id string) (bool, error)
}
