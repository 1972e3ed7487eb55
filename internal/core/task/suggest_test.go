package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tp(t time.Time) *time.Time { return &t }

func TestScore(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	t.Run("terminal tasks sink", func(t *testing.T) {
		assert.Equal(t, terminalScore, Score(Task{Status: StatusCompleted, Priority: PriorityCritical}, now))
		assert.Equal(t, terminalScore, Score(Task{Status: StatusCancelled}, now))
	})

	t.Run("priority weights", func(t *testing.T) {
		base := Task{Status: StatusPending, EstimatedMinutes: 120}
		critical, low := base, base
		critical.Priority = PriorityCritical
		low.Priority = PriorityLow

		assert.Equal(t, 100, Score(critical, now))
		assert.Equal(t, 0, Score(low, now))
	})

	t.Run("urgency bands", func(t *testing.T) {
		base := Task{Status: StatusPending, Priority: PriorityLow, EstimatedMinutes: 120}

		overdue := base
		overdue.Due = tp(now.Add(-time.Minute))
		assert.Equal(t, 100, Score(overdue, now))

		within := base
		within.Due = tp(now.Add(45 * time.Minute))
		assert.Equal(t, 40, Score(within, now))

		afternoon := base
		afternoon.Due = tp(now.Add(3 * time.Hour))
		assert.Equal(t, 25, Score(afternoon, now))

		tomorrow := base
		tomorrow.Due = tp(now.Add(20 * time.Hour))
		assert.Equal(t, 10, Score(tomorrow, now))

		nextWeek := base
		nextWeek.Due = tp(now.Add(7 * 24 * time.Hour))
		assert.Equal(t, 0, Score(nextWeek, now))
	})

	t.Run("short tasks get momentum bonus", func(t *testing.T) {
		base := Task{Status: StatusPending, Priority: PriorityLow}

		short := base
		short.EstimatedMinutes = 20
		assert.Equal(t, 10, Score(short, now))

		hour := base
		hour.EstimatedMinutes = 60
		assert.Equal(t, 5, Score(hour, now))

		long := base
		long.EstimatedMinutes = 180
		assert.Equal(t, 0, Score(long, now))
	})

	t.Run("stale tasks nudge forward", func(t *testing.T) {
		base := Task{Status: StatusPending, Priority: PriorityLow, EstimatedMinutes: 120}

		week := base
		week.CreatedAt = tp(now.Add(-8 * 24 * time.Hour))
		assert.Equal(t, 20, Score(week, now))

		days := base
		days.CreatedAt = tp(now.Add(-4 * 24 * time.Hour))
		assert.Equal(t, 10, Score(days, now))

		fresh := base
		fresh.CreatedAt = tp(now.Add(-time.Hour))
		assert.Equal(t, 0, Score(fresh, now))
	})

	t.Run("in progress bonus", func(t *testing.T) {
		tk := Task{Status: StatusInProgress, Priority: PriorityLow, EstimatedMinutes: 120}
		assert.Equal(t, 15, Score(tk, now))
	})
}

func TestSuggestOrdering(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	t.Run("critical before low", func(t *testing.T) {
		tasks := []Task{
			{ID: "low", Priority: PriorityLow, Status: StatusPending, EstimatedMinutes: 120},
			{ID: "crit", Priority: PriorityCritical, Status: StatusPending, EstimatedMinutes: 120},
		}
		got := Suggest(tasks, now)
		assert.Equal(t, "crit", got[0].ID)
	})

	t.Run("slightly overdue outranks due in hours", func(t *testing.T) {
		tasks := []Task{
			{ID: "later", Priority: PriorityMedium, Status: StatusPending, EstimatedMinutes: 120, Due: tp(now.Add(3 * time.Hour))},
			{ID: "overdue", Priority: PriorityMedium, Status: StatusPending, EstimatedMinutes: 120, Due: tp(now.Add(-time.Minute))},
		}
		got := Suggest(tasks, now)
		assert.Equal(t, "overdue", got[0].ID)
	})

	t.Run("terminal tasks always last", func(t *testing.T) {
		tasks := []Task{
			{ID: "done", Priority: PriorityCritical, Status: StatusCompleted, Due: tp(now.Add(-time.Hour))},
			{ID: "open", Priority: PriorityLow, Status: StatusPending, EstimatedMinutes: 240},
		}
		got := Suggest(tasks, now)
		assert.Equal(t, "open", got[0].ID)
		assert.Equal(t, "done", got[1].ID)
	})

	t.Run("tie broken by due then estimate", func(t *testing.T) {
		// Same score: both MEDIUM, no due, same estimate band.
		tasks := []Task{
			{ID: "nodue", Priority: PriorityMedium, Status: StatusPending, EstimatedMinutes: 120},
			{ID: "dated", Priority: PriorityMedium, Status: StatusPending, EstimatedMinutes: 120, Due: tp(now.Add(60 * time.Hour))},
		}
		got := Suggest(tasks, now)
		assert.Equal(t, "dated", got[0].ID, "nil due sorts after a concrete due")

		tasks = []Task{
			{ID: "big", Priority: PriorityMedium, Status: StatusPending, EstimatedMinutes: 200},
			{ID: "small", Priority: PriorityMedium, Status: StatusPending, EstimatedMinutes: 90},
		}
		got = Suggest(tasks, now)
		assert.Equal(t, "small", got[0].ID, "smaller estimate wins a tie")
	})

	t.Run("input is not mutated", func(t *testing.T) {
		tasks := []Task{
			{ID: "b", Priority: PriorityLow, Status: StatusPending, EstimatedMinutes: 120},
			{ID: "a", Priority: PriorityCritical, Status: StatusPending, EstimatedMinutes: 120},
		}
		_ = Suggest(tasks, now)
		require.Equal(t, "b", tasks[0].ID)
	})
}
