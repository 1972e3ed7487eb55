package nextup

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextup/nextup/internal/core/task"
	"github.com/nextup/nextup/internal/data/csvfile"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := csvfile.OpenTaskStore(filepath.Join(t.TempDir(), "tasks.csv"), zerolog.Nop())
	require.NoError(t, err)
	return NewService(store, zerolog.Nop())
}

func mustCreate(t *testing.T, svc *Service, in CreateInput) task.Task {
	t.Helper()
	created, err := svc.Create(in)
	require.NoError(t, err)
	return created
}

func TestServiceCreate(t *testing.T) {
	svc := newTestService(t)

	t.Run("defaults applied", func(t *testing.T) {
		got := mustCreate(t, svc, CreateInput{Title: "write tests"})

		assert.NotEmpty(t, got.ID)
		assert.Equal(t, task.PriorityMedium, got.Priority)
		assert.Equal(t, task.StatusPending, got.Status)
		assert.Equal(t, task.DefaultEstimatedMinutes, got.EstimatedMinutes)
		require.NotNil(t, got.CreatedAt)
		assert.Nil(t, got.Due)
	})

	t.Run("estimate clamps, tags normalize", func(t *testing.T) {
		got := mustCreate(t, svc, CreateInput{
			Title:            "tagged",
			EstimatedMinutes: -10,
			RawTags:          " Work ; HOME ;;",
		})

		assert.Equal(t, 1, got.EstimatedMinutes)
		assert.Equal(t, []string{"work", "home"}, got.Tags)
	})

	t.Run("persisted", func(t *testing.T) {
		got := mustCreate(t, svc, CreateInput{Title: "durable", Priority: task.PriorityHigh})

		back, err := svc.Get(got.ID)
		require.NoError(t, err)
		assert.Equal(t, "durable", back.Title)
		assert.Equal(t, task.PriorityHigh, back.Priority)
	})
}

func TestServiceLifecycle(t *testing.T) {
	svc := newTestService(t)
	created := mustCreate(t, svc, CreateInput{Title: "lifecycle"})

	t.Run("start then complete", func(t *testing.T) {
		require.NoError(t, svc.Start(created.ID))
		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, task.StatusInProgress, got.Status)

		require.NoError(t, svc.Complete(created.ID))
		got, err = svc.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, task.StatusCompleted, got.Status)
		require.NotNil(t, got.CompletedAt)
	})

	t.Run("re-complete refreshes the stamp", func(t *testing.T) {
		first, err := svc.Get(created.ID)
		require.NoError(t, err)

		later := first.CompletedAt.Add(time.Hour)
		svc.now = func() time.Time { return later }

		require.NoError(t, svc.Complete(created.ID))
		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.True(t, got.CompletedAt.Equal(later))
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.Complete("nope"), task.ErrNotFound)
		assert.ErrorIs(t, svc.Start("nope"), task.ErrNotFound)
		assert.ErrorIs(t, svc.Cancel("nope"), task.ErrNotFound)

		removed, err := svc.Delete("nope")
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestServiceSnooze(t *testing.T) {
	svc := newTestService(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	t.Run("no due anchors to now", func(t *testing.T) {
		created := mustCreate(t, svc, CreateInput{Title: "no due"})
		require.NoError(t, svc.Snooze(created.ID, 15))

		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Due)
		assert.True(t, got.Due.Equal(now.Add(15*time.Minute)))
	})

	t.Run("existing due shifts from itself", func(t *testing.T) {
		due := now.Add(time.Hour)
		created := mustCreate(t, svc, CreateInput{Title: "dated", Due: &due})
		require.NoError(t, svc.Snooze(created.ID, 30))

		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.True(t, got.Due.Equal(due.Add(30*time.Minute)))
	})

	t.Run("non-positive minutes clamp to one", func(t *testing.T) {
		created := mustCreate(t, svc, CreateInput{Title: "clamped"})
		require.NoError(t, svc.Snooze(created.ID, 0))

		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.True(t, got.Due.Equal(now.Add(time.Minute)))
	})
}

func TestServiceReschedule(t *testing.T) {
	svc := newTestService(t)
	target := time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local)

	t.Run("keeps the clock time", func(t *testing.T) {
		due := time.Date(2026, 9, 1, 17, 30, 0, 0, time.Local)
		created := mustCreate(t, svc, CreateInput{Title: "evening", Due: &due})

		require.NoError(t, svc.Reschedule(created.ID, target, nil))
		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.True(t, got.Due.Equal(time.Date(2026, 9, 10, 17, 30, 0, 0, time.Local)))
	})

	t.Run("no prior due defaults to noon", func(t *testing.T) {
		created := mustCreate(t, svc, CreateInput{Title: "undated"})

		require.NoError(t, svc.Reschedule(created.ID, target, nil))
		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.True(t, got.Due.Equal(time.Date(2026, 9, 10, 12, 0, 0, 0, time.Local)))
	})

	t.Run("explicit time overrides", func(t *testing.T) {
		due := time.Date(2026, 9, 1, 17, 30, 0, 0, time.Local)
		created := mustCreate(t, svc, CreateInput{Title: "overridden", Due: &due})

		clock := 9*time.Hour + 15*time.Minute
		require.NoError(t, svc.Reschedule(created.ID, target, &clock))
		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.True(t, got.Due.Equal(time.Date(2026, 9, 10, 9, 15, 0, 0, time.Local)))
	})
}

func TestServiceUpdate(t *testing.T) {
	svc := newTestService(t)
	created := mustCreate(t, svc, CreateInput{Title: "before", RawTags: "old"})

	t.Run("nil fields untouched", func(t *testing.T) {
		title := "after"
		require.NoError(t, svc.Update(created.ID, UpdateInput{Title: &title}))

		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)
		assert.Equal(t, []string{"old"}, got.Tags, "tags unchanged without RawTags")
	})

	t.Run("tags fully replace", func(t *testing.T) {
		raw := "a;b"
		require.NoError(t, svc.Update(created.ID, UpdateInput{RawTags: &raw}))

		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got.Tags)
	})

	t.Run("estimate clamps", func(t *testing.T) {
		est := -5
		require.NoError(t, svc.Update(created.ID, UpdateInput{EstimatedMinutes: &est}))

		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.EstimatedMinutes)
	})
}

func TestServiceFilter(t *testing.T) {
	svc := newTestService(t)

	a := mustCreate(t, svc, CreateInput{Title: "a", Priority: task.PriorityHigh, RawTags: "work"})
	mustCreate(t, svc, CreateInput{Title: "b", Priority: task.PriorityLow, RawTags: "home"})
	c := mustCreate(t, svc, CreateInput{Title: "c", Priority: task.PriorityHigh, RawTags: "work;deep"})
	require.NoError(t, svc.Complete(c.ID))

	t.Run("case-insensitive status and tag", func(t *testing.T) {
		got := svc.Filter("pending", "", "WORK")
		require.Len(t, got, 1)
		assert.Equal(t, a.ID, got[0].ID)
	})

	t.Run("predicates combine", func(t *testing.T) {
		got := svc.Filter("completed", "high", "deep")
		require.Len(t, got, 1)
		assert.Equal(t, c.ID, got[0].ID)
	})

	t.Run("no predicates returns everything", func(t *testing.T) {
		assert.Len(t, svc.Filter("", "", ""), 3)
	})
}

func TestServiceReorder(t *testing.T) {
	svc := newTestService(t)

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	ids := make([]string, 0, 3)
	for i, title := range []string{"first", "second", "third"} {
		at := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return at }
		ids = append(ids, mustCreate(t, svc, CreateInput{Title: title}).ID)
	}

	t.Run("moves before target and resequences densely", func(t *testing.T) {
		require.NoError(t, svc.Reorder(ids[2], ids[0]))

		got := svc.ListAll()
		require.Len(t, got, 3)
		assert.Equal(t, ids[2], got[0].ID)
		assert.Equal(t, ids[0], got[1].ID)
		assert.Equal(t, ids[1], got[2].ID)

		for i, tk := range got {
			require.NotNil(t, tk.SortOrder)
			assert.Equal(t, i, *tk.SortOrder, "sort order is the dense index")
		}
	})

	t.Run("moving forward accounts for removal shift", func(t *testing.T) {
		// current order: third, first, second; move third before second
		require.NoError(t, svc.Reorder(ids[2], ids[1]))

		got := svc.ListAll()
		assert.Equal(t, ids[0], got[0].ID)
		assert.Equal(t, ids[2], got[1].ID)
		assert.Equal(t, ids[1], got[2].ID)
	})

	t.Run("unknown ids error", func(t *testing.T) {
		assert.ErrorIs(t, svc.Reorder("nope", ids[0]), task.ErrNotFound)
		assert.ErrorIs(t, svc.Reorder(ids[0], "nope"), task.ErrNotFound)
	})
}

func TestServiceListAllOrdering(t *testing.T) {
	svc := newTestService(t)

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return base }
	older := mustCreate(t, svc, CreateInput{Title: "older"})

	svc.now = func() time.Time { return base.Add(time.Minute) }
	newer := mustCreate(t, svc, CreateInput{Title: "newer"})

	t.Run("created ascending without sort order", func(t *testing.T) {
		got := svc.ListAll()
		require.Len(t, got, 2)
		assert.Equal(t, older.ID, got[0].ID)
		assert.Equal(t, newer.ID, got[1].ID)
	})

	t.Run("sort order wins over created", func(t *testing.T) {
		require.NoError(t, svc.Reorder(newer.ID, older.ID))

		got := svc.ListAll()
		assert.Equal(t, newer.ID, got[0].ID)
		assert.Equal(t, older.ID, got[1].ID)
	})
}

func TestServiceCompleteByTag(t *testing.T) {
	svc := newTestService(t)

	a := mustCreate(t, svc, CreateInput{Title: "a", RawTags: "batch"})
	b := mustCreate(t, svc, CreateInput{Title: "b", RawTags: "batch"})
	other := mustCreate(t, svc, CreateInput{Title: "c", RawTags: "other"})
	require.NoError(t, svc.Complete(b.ID))

	n, err := svc.CompleteByTag("batch")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "already-completed tasks are skipped")

	got, err := svc.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, got.Status)

	got, err = svc.Get(other.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusPending, got.Status)
}

func TestServiceDueQueries(t *testing.T) {
	svc := newTestService(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	past := now.Add(-time.Hour)
	soon := now.Add(30 * time.Minute)
	far := now.Add(48 * time.Hour)

	overdue := mustCreate(t, svc, CreateInput{Title: "overdue", Due: &past})
	upcoming := mustCreate(t, svc, CreateInput{Title: "soon", Due: &soon})
	mustCreate(t, svc, CreateInput{Title: "far", Due: &far})
	mustCreate(t, svc, CreateInput{Title: "undated"})

	done := mustCreate(t, svc, CreateInput{Title: "done", Due: &past})
	require.NoError(t, svc.Complete(done.ID))

	t.Run("overdue excludes terminal", func(t *testing.T) {
		got := svc.ListOverdue()
		require.Len(t, got, 1)
		assert.Equal(t, overdue.ID, got[0].ID)
	})

	t.Run("due within window excludes overdue", func(t *testing.T) {
		got := svc.ListDueWithin(time.Hour)
		require.Len(t, got, 1)
		assert.Equal(t, upcoming.ID, got[0].ID)
	})

	t.Run("actionable excludes terminal", func(t *testing.T) {
		assert.Len(t, svc.ListActionable(), 4)
	})
}

func TestServiceRecordActualAndLead(t *testing.T) {
	svc := newTestService(t)
	created := mustCreate(t, svc, CreateInput{Title: "tracked"})

	require.NoError(t, svc.RecordActual(created.ID, 0))
	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ActualMinutes)
	assert.Equal(t, 1, *got.ActualMinutes, "actual minutes clamp to one")

	require.NoError(t, svc.SetLead(created.ID, 120))
	got, err = svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, got.Lead())
}
