package csvfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nextup/nextup/internal/core/task"
)

// taskHeader is the exact column order of tasks.csv. Changing it breaks
// every existing data file.
var taskHeader = []string{
	"id", "title", "description", "priority", "dueDateTime",
	"estimatedMinutes", "status", "createdAt", "completedAt", "tags",
	"category", "actualMinutes", "reminderBeforeMinutes", "sortOrder",
	"recurrence",
}

// TaskStore implements task.Store on top of a single CSV file. The whole
// file is rewritten on every mutation, which keeps it free of duplicate
// rows at the cost of O(n) I/O per write. One mutex guards both the
// in-memory slice and the file; nothing touches either outside it.
type TaskStore struct {
	path string
	log  zerolog.Logger

	mu    sync.Mutex
	tasks []task.Task
}

var _ task.Store = (*TaskStore)(nil)

// OpenTaskStore opens (or creates) the backing file and loads all rows.
// Rows that fail to parse are dropped and logged, never fatal: a partially
// corrupt file still yields a usable store.
func OpenTaskStore(path string, log zerolog.Logger) (*TaskStore, error) {
	s := &TaskStore{
		path: path,
		log:  log.With().Str("component", "taskstore").Logger(),
	}

	if err := ensureFile(path, taskHeader); err != nil {
		return nil, fmt.Errorf("ensure tasks file: %w", err)
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("load tasks file: %w", err)
	}

	return s, nil
}

// ensureFile creates the file with only the header row when it is absent.
func ensureFile(path string, header []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(Join(header)+"\n"), 0o644)
}

func (s *TaskStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	records := SplitRecords(string(data))
	var tasks []task.Task
	for i, rec := range records {
		if i == 0 || strings.TrimSpace(rec) == "" {
			continue
		}
		t, err := decodeTask(ParseRecord(rec))
		if err != nil {
			s.log.Debug().Err(err).Int("row", i).Msg("dropping unparsable task row")
			continue
		}
		tasks = append(tasks, t)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// List returns a snapshot copy in insertion order.
func (s *TaskStore) List() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	return out
}

// Get returns the task with the given ID.
func (s *TaskStore) Get(id string) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

// Upsert replaces the task with the same ID or appends it, then rewrites
// the file. On write failure the in-memory slice keeps the mutation and
// the error is surfaced to the caller.
func (s *TaskStore) Upsert(t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t = t.Clone()
	replaced := false
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		s.tasks = append(s.tasks, t)
	}

	return s.saveLocked()
}

// Delete removes the task permanently. Reports whether a row was removed.
func (s *TaskStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true, s.saveLocked()
		}
	}
	return false, nil
}

// saveLocked rewrites the whole file: header plus one row per task. It
// writes to a temp file and renames so a crash mid-write never leaves a
// half-written tasks.csv. Callers must hold s.mu.
func (s *TaskStore) saveLocked() error {
	var b strings.Builder
	b.WriteString(Join(taskHeader))
	b.WriteByte('\n')
	for _, t := range s.tasks {
		b.WriteString(Join(encodeTask(t)))
		b.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace tasks file: %w", err)
	}
	return nil
}

func encodeTask(t task.Task) []string {
	return []string{
		t.ID,
		t.Title,
		t.Description,
		string(t.Priority),
		task.FormatTime(t.Due),
		strconv.Itoa(t.EstimatedMinutes),
		string(t.Status),
		task.FormatTime(t.CreatedAt),
		task.FormatTime(t.CompletedAt),
		strings.Join(t.Tags, ";"),
		t.Category,
		formatOptInt(t.ActualMinutes),
		formatOptInt(t.LeadMinutes),
		formatOptInt(t.SortOrder),
		t.Recurrence,
	}
}

// decodeTask parses one row positionally. Empty required columns take
// documented defaults; a non-empty column that fails to parse errors out
// the whole row (the caller drops it).
func decodeTask(cols []string) (task.Task, error) {
	if len(cols) < 9 {
		return task.Task{}, fmt.Errorf("short row: %d columns", len(cols))
	}

	t := task.Task{
		ID:          cols[0],
		Title:       cols[1],
		Description: cols[2],
	}
	if t.ID == "" {
		return task.Task{}, fmt.Errorf("missing id")
	}

	var err error
	if t.Priority, err = decodePriority(cols[3]); err != nil {
		return task.Task{}, err
	}
	if t.Due, err = decodeTime(cols[4]); err != nil {
		return task.Task{}, err
	}
	if cols[5] == "" {
		t.EstimatedMinutes = task.DefaultEstimatedMinutes
	} else if t.EstimatedMinutes, err = strconv.Atoi(cols[5]); err != nil {
		return task.Task{}, fmt.Errorf("estimatedMinutes: %w", err)
	}
	if t.Status, err = decodeStatus(cols[6]); err != nil {
		return task.Task{}, err
	}
	if t.CreatedAt, err = decodeTime(cols[7]); err != nil {
		return task.Task{}, err
	}
	if t.CompletedAt, err = decodeTime(cols[8]); err != nil {
		return task.Task{}, err
	}

	if len(cols) > 9 && cols[9] != "" {
		for _, s := range strings.Split(cols[9], ";") {
			if v := strings.TrimSpace(s); v != "" {
				t.Tags = append(t.Tags, v)
			}
		}
	}
	if len(cols) > 10 {
		t.Category = cols[10]
	}
	if len(cols) > 11 {
		if t.ActualMinutes, err = decodeOptInt(cols[11]); err != nil {
			return task.Task{}, fmt.Errorf("actualMinutes: %w", err)
		}
	}
	if len(cols) > 12 {
		if t.LeadMinutes, err = decodeOptInt(cols[12]); err != nil {
			return task.Task{}, fmt.Errorf("reminderBeforeMinutes: %w", err)
		}
	}
	if len(cols) > 13 {
		if t.SortOrder, err = decodeOptInt(cols[13]); err != nil {
			return task.Task{}, fmt.Errorf("sortOrder: %w", err)
		}
	}
	if len(cols) > 14 {
		t.Recurrence = cols[14]
	}

	return t, nil
}

func decodePriority(s string) (task.Priority, error) {
	switch p := task.Priority(s); p {
	case "":
		return task.PriorityMedium, nil
	case task.PriorityLow, task.PriorityMedium, task.PriorityHigh, task.PriorityCritical:
		return p, nil
	default:
		return "", fmt.Errorf("bad priority %q", s)
	}
}

func decodeStatus(s string) (task.Status, error) {
	switch st := task.Status(s); st {
	case "":
		return task.StatusPending, nil
	case task.StatusPending, task.StatusInProgress, task.StatusCompleted, task.StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("bad status %q", s)
	}
}

func decodeTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	ts, err := time.ParseInLocation(task.TimeLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("bad timestamp %q", s)
	}
	return &ts, nil
}

func decodeOptInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func formatOptInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
