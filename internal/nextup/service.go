// Package nextup wires the task domain into application services: the
// lifecycle service, the note service, and the background reminder loop.
package nextup

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nextup/nextup/internal/core/task"
)

// Service owns every task state transition. Nothing else mutates tasks;
// the suggestion engine and the reminder loop only read snapshots it
// returns.
type Service struct {
	store task.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewService creates a lifecycle service over the given store.
func NewService(store task.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("component", "tasks").Logger(),
		now:   time.Now,
	}
}

// CreateInput carries the caller-supplied fields for a new task. Raw
// values are clamped and defaulted, never rejected.
type CreateInput struct {
	Title            string
	Description      string
	Priority         task.Priority
	Due              *time.Time
	EstimatedMinutes int    // 0 means unset
	RawTags          string // semicolon-delimited
}

// Create mints a new PENDING task and persists it.
func (s *Service) Create(in CreateInput) (task.Task, error) {
	now := s.now()

	t := task.Task{
		ID:               uuid.NewString(),
		Title:            in.Title,
		Description:      in.Description,
		Priority:         in.Priority,
		Due:              in.Due,
		EstimatedMinutes: task.DefaultEstimatedMinutes,
		Status:           task.StatusPending,
		CreatedAt:        &now,
		Tags:             task.NormalizeTags(in.RawTags),
	}
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}
	if in.EstimatedMinutes != 0 {
		t.EstimatedMinutes = task.ClampEstimate(in.EstimatedMinutes)
	}

	if err := s.store.Upsert(t); err != nil {
		return task.Task{}, fmt.Errorf("persist new task: %w", err)
	}

	s.log.Info().Str("task_id", t.ID).Str("title", t.Title).Msg("task created")
	return t, nil
}

// Get returns a task by ID.
func (s *Service) Get(id string) (task.Task, error) {
	return s.store.Get(id)
}

// ListAll returns every task ordered by sort order ascending with nil
// last, ties broken by created timestamp ascending with nil last.
func (s *Service) ListAll() []task.Task {
	list := s.store.List()
	slices.SortStableFunc(list, func(a, b task.Task) int {
		if c := compareOptInt(a.SortOrder, b.SortOrder); c != 0 {
			return c
		}
		return compareOptTime(a.CreatedAt, b.CreatedAt)
	})
	return list
}

// Complete marks the task COMPLETED and stamps completedAt with the
// current instant. Re-completing refreshes the stamp; completion is
// re-triggerable, not idempotent in time.
func (s *Service) Complete(id string) error {
	t, err := s.store.Get(id)
	if err != nil {
		return err
	}

	now := s.now()
	t.Status = task.StatusCompleted
	t.CompletedAt = &now
	return s.store.Upsert(t)
}

// Start moves the task to IN_PROGRESS regardless of its prior state.
func (s *Service) Start(id string) error {
	t, err := s.store.Get(id)
	if err != nil {
		return err
	}

	t.Status = task.StatusInProgress
	return s.store.Upsert(t)
}

// Cancel moves the task to CANCELLED. Terminal; no operation revives it.
func (s *Service) Cancel(id string) error {
	t, err := s.store.Get(id)
	if err != nil {
		return err
	}

	t.Status = task.StatusCancelled
	return s.store.Upsert(t)
}

// Delete removes the task permanently. Reports whether one was removed.
func (s *Service) Delete(id string) (bool, error) {
	return s.store.Delete(id)
}

// Snooze pushes the due timestamp forward by at least one minute. A task
// with no due timestamp is anchored to now first.
func (s *Service) Snooze(id string, minutes int) error {
	t, err := s.store.Get(id)
	if err != nil {
		return err
	}

	base := s.now()
	if t.Due != nil {
		base = *t.Due
	}
	due := base.Add(time.Duration(max(1, minutes)) * time.Minute)
	t.Due = &due
	return s.store.Upsert(t)
}

// Reschedule replaces the due timestamp's date component. The existing
// time of day is kept unless timeOfDay overrides it; a task with no prior
// due timestamp defaults to noon.
func (s *Service) Reschedule(id string, date time.Time, timeOfDay *time.Duration) error {
	t, err := s.store.Get(id)
	if err != nil {
		return err
	}

	clock := 12 * time.Hour
	if timeOfDay != nil {
		clock = *timeOfDay
	} else if t.Due != nil {
		d := *t.Due
		clock = time.Duration(d.Hour())*time.Hour + time.Duration(d.Minute())*time.Minute
	}

	due := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local).Add(clock)
	t.Due = &due
	return s.store.Upsert(t)
}

// UpdateInput carries a partial update. Nil fields are left unchanged;
// RawTags, when set, fully replaces the prior tag set.
type UpdateInput struct {
	Title            *string
	Description      *string
	Priority         *task.Priority
	Due              *time.Time
	EstimatedMinutes *int
	RawTags          *string
}

// Update applies a partial update to a task.
func (s *Service) Update(id string, in UpdateInput) error {
	t, err := s.store.Get(id)
	if err != nil {
		return err
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Due != nil {
		t.Due = in.Due
	}
	if in.EstimatedMinutes != nil {
		t.EstimatedMinutes = task.ClampEstimate(*in.EstimatedMinutes)
	}
	if in.RawTags != nil {
		t.Tags = task.NormalizeTags(*in.RawTags)
	}

	return s.store.Upsert(t)
}

// RecordActual stores the minutes actually spent on a task.
func (s *Service) RecordActual(id string, minutes int) error {
	t, err := s.store.Get(id)
	if err != nil {
		return err
	}

	m := max(1, minutes)
	t.ActualMinutes = &m
	return s.store.Upsert(t)
}

// SetLead overrides the reminder lead window for a task.
func (s *Service) SetLead(id string, minutes int) error {
	t, err := s.store.Get(id)
	if err != nil {
		return err
	}

	m := max(1, minutes)
	t.LeadMinutes = &m
	return s.store.Upsert(t)
}

// Filter returns tasks matching every non-empty predicate, matched
// case-insensitively, ordered by created timestamp ascending with nil last.
func (s *Service) Filter(status, priority, tag string) []task.Task {
	var out []task.Task
	for _, t := range s.store.List() {
		if status != "" && !strings.EqualFold(string(t.Status), status) {
			continue
		}
		if priority != "" && !strings.EqualFold(string(t.Priority), priority) {
			continue
		}
		if tag != "" && !t.HasTag(tag) {
			continue
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, func(a, b task.Task) int {
		return compareOptTime(a.CreatedAt, b.CreatedAt)
	})
	return out
}

// Reorder moves fromID immediately before toID's position in the current
// display order, then reassigns every task's sort order to its new index.
// O(n) writes per call, acceptable at personal scale.
func (s *Service) Reorder(fromID, toID string) error {
	list := s.ListAll()

	fromIdx, toIdx := -1, -1
	for i, t := range list {
		if t.ID == fromID {
			fromIdx = i
		}
		if t.ID == toID {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 {
		return task.ErrNotFound
	}

	moving := list[fromIdx]
	list = append(list[:fromIdx], list[fromIdx+1:]...)
	if toIdx > fromIdx {
		toIdx--
	}
	list = slices.Insert(list, toIdx, moving)

	for i := range list {
		idx := i
		list[i].SortOrder = &idx
		if err := s.store.Upsert(list[i]); err != nil {
			return fmt.Errorf("resequence task %s: %w", list[i].ID, err)
		}
	}
	return nil
}

// CompleteByTag completes every non-completed task carrying the tag and
// returns how many were changed.
func (s *Service) CompleteByTag(tag string) (int, error) {
	count := 0
	for _, t := range s.store.List() {
		if t.Status == task.StatusCompleted || !t.HasTag(tag) {
			continue
		}
		now := s.now()
		t.Status = task.StatusCompleted
		t.CompletedAt = &now
		if err := s.store.Upsert(t); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// ListActionable returns tasks that are PENDING or IN_PROGRESS, unordered.
func (s *Service) ListActionable() []task.Task {
	var out []task.Task
	for _, t := range s.store.List() {
		if !t.Status.Terminal() {
			out = append(out, t)
		}
	}
	return out
}

// ListOverdue returns actionable tasks whose due timestamp has passed.
func (s *Service) ListOverdue() []task.Task {
	now := s.now()
	var out []task.Task
	for _, t := range s.ListActionable() {
		if t.Due != nil && t.Due.Before(now) {
			out = append(out, t)
		}
	}
	return out
}

// ListDueWithin returns actionable tasks due between now and now+window,
// excluding already-overdue ones.
func (s *Service) ListDueWithin(window time.Duration) []task.Task {
	now := s.now()
	threshold := now.Add(window)
	var out []task.Task
	for _, t := range s.ListActionable() {
		if t.Due != nil && !t.Due.Before(now) && t.Due.Before(threshold) {
			out = append(out, t)
		}
	}
	return out
}

// Suggest returns the heuristic best-first ordering of a snapshot.
func (s *Service) Suggest(tasks []task.Task) []task.Task {
	return task.Suggest(tasks, s.now())
}

// Stats builds the aggregate summary for a snapshot.
func (s *Service) Stats(tasks []task.Task) task.Stats {
	return task.BuildStats(tasks, s.now())
}

func compareOptInt(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*a, *b)
	}
}

func compareOptTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}
