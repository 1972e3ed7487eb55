package nextup

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nextup/nextup/internal/core/notify"
	"github.com/nextup/nextup/internal/core/task"
)

// Reminder periodically scans actionable tasks and emits at most one
// notification per task per category transition. The last-notified map is
// owned exclusively by the loop goroutine and is not persisted, so a
// restart may re-notify once.
type Reminder struct {
	svc  *Service
	sink notify.Sink
	log  zerolog.Logger

	initialDelay time.Duration
	interval     time.Duration
	now          func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc

	lastCategory map[string]notify.Category
}

// NewReminder creates a reminder loop that first fires after initialDelay
// and then every interval.
func NewReminder(svc *Service, sink notify.Sink, initialDelay, interval time.Duration, log zerolog.Logger) *Reminder {
	return &Reminder{
		svc:          svc,
		sink:         sink,
		log:          log.With().Str("component", "reminder").Logger(),
		initialDelay: initialDelay,
		interval:     interval,
		now:          time.Now,
		lastCategory: make(map[string]notify.Category),
	}
}

// Start launches the loop. Calling Start while already running is a no-op;
// the loop is never double-scheduled.
func (r *Reminder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go r.run(ctx)

	r.log.Debug().
		Dur("initial_delay", r.initialDelay).
		Dur("interval", r.interval).
		Msg("reminder loop started")
}

// Stop cancels the loop immediately. It does not wait for an in-flight
// tick; stopping an already-stopped loop is a no-op.
func (r *Reminder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel == nil {
		return
	}
	r.cancel()
	r.cancel = nil
	r.log.Debug().Msg("reminder loop stopped")
}

func (r *Reminder) run(ctx context.Context) {
	timer := time.NewTimer(r.initialDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}
	r.Tick()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick runs one scan. The store lock is held only for the snapshot read
// inside ListActionable; classification and emission happen outside it.
func (r *Reminder) Tick() {
	now := r.now()

	for _, t := range r.svc.ListActionable() {
		if t.Due == nil {
			continue
		}

		category := Classify(t, now)
		if category == "" {
			continue
		}
		if r.lastCategory[t.ID] == category {
			continue
		}
		r.lastCategory[t.ID] = category

		r.sink.Notify(notify.Notification{
			TaskID:   t.ID,
			Title:    t.Title,
			Category: category,
			Due:      *t.Due,
		})
	}
}

// Classify returns the reminder category of a task at the given instant,
// or "" when no notification is pending. Tasks without a due timestamp
// never classify.
func Classify(t task.Task, now time.Time) notify.Category {
	if t.Due == nil || t.Status.Terminal() {
		return ""
	}
	if t.Due.Before(now) {
		return notify.CategoryOverdue
	}
	lead := time.Duration(t.Lead()) * time.Minute
	if !t.Due.After(now.Add(lead)) {
		return notify.CategoryDueSoon
	}
	return ""
}
