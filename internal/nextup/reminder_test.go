package nextup

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextup/nextup/internal/core/notify"
	"github.com/nextup/nextup/internal/core/task"
)

type captureSink struct {
	got []notify.Notification
}

func (s *captureSink) Notify(n notify.Notification) { s.got = append(s.got, n) }

func TestClassify(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	withDue := func(d time.Time) task.Task {
		return task.Task{Status: task.StatusPending, Due: &d}
	}

	t.Run("no due never classifies", func(t *testing.T) {
		assert.Empty(t, Classify(task.Task{Status: task.StatusPending}, now))
	})

	t.Run("terminal never classifies", func(t *testing.T) {
		tk := withDue(now.Add(-time.Hour))
		tk.Status = task.StatusCompleted
		assert.Empty(t, Classify(tk, now))
	})

	t.Run("past due is overdue", func(t *testing.T) {
		assert.Equal(t, notify.CategoryOverdue, Classify(withDue(now.Add(-time.Minute)), now))
	})

	t.Run("inside lead window is due soon", func(t *testing.T) {
		assert.Equal(t, notify.CategoryDueSoon, Classify(withDue(now.Add(45*time.Minute)), now))
		assert.Equal(t, notify.CategoryDueSoon, Classify(withDue(now.Add(60*time.Minute)), now), "window is inclusive")
	})

	t.Run("beyond lead window is silent", func(t *testing.T) {
		assert.Empty(t, Classify(withDue(now.Add(61*time.Minute)), now))
	})

	t.Run("per-task lead override", func(t *testing.T) {
		lead := 180
		tk := withDue(now.Add(2 * time.Hour))
		tk.LeadMinutes = &lead
		assert.Equal(t, notify.CategoryDueSoon, Classify(tk, now))
	})
}

func TestReminderTickTransitions(t *testing.T) {
	svc := newTestService(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	due := now.Add(90 * time.Minute)
	created := mustCreate(t, svc, CreateInput{Title: "deadline", Due: &due})

	sink := &captureSink{}
	r := NewReminder(svc, sink, time.Second, time.Second, zerolog.Nop())
	r.now = func() time.Time { return now }

	// Outside the lead window: silent.
	r.Tick()
	assert.Empty(t, sink.got)

	// Entering the lead window: exactly one DUE_SOON.
	now = due.Add(-30 * time.Minute)
	r.Tick()
	r.Tick()
	require.Len(t, sink.got, 1)
	assert.Equal(t, notify.CategoryDueSoon, sink.got[0].Category)
	assert.Equal(t, created.ID, sink.got[0].TaskID)

	// Crossing the due time: exactly one OVERDUE.
	now = due.Add(time.Minute)
	r.Tick()
	r.Tick()
	require.Len(t, sink.got, 2)
	assert.Equal(t, notify.CategoryOverdue, sink.got[1].Category)

	// Completing the task silences further ticks.
	require.NoError(t, svc.Complete(created.ID))
	r.Tick()
	assert.Len(t, sink.got, 2)
}

func TestReminderSkipsUndatedTasks(t *testing.T) {
	svc := newTestService(t)
	mustCreate(t, svc, CreateInput{Title: "no deadline"})

	sink := &captureSink{}
	r := NewReminder(svc, sink, time.Second, time.Second, zerolog.Nop())

	r.Tick()
	assert.Empty(t, sink.got)
}

func TestReminderStartStopIdempotent(t *testing.T) {
	svc := newTestService(t)
	r := NewReminder(svc, &captureSink{}, time.Hour, time.Hour, zerolog.Nop())

	r.Start()
	r.Start() // second start is a no-op
	r.Stop()
	r.Stop() // second stop is a no-op

	r.Start() // restart after stop is allowed
	r.Stop()
}
