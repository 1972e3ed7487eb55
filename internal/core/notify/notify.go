// Package notify carries reminder events from the background loop to an
// external sink. Delivery beyond a textual event is out of scope.
package notify

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Category classifies how close a task is to its due timestamp.
type Category string

const (
	// CategoryDueSoon means the due timestamp is within the task's lead window.
	CategoryDueSoon Category = "DUE_SOON"
	// CategoryOverdue means the due timestamp has passed.
	CategoryOverdue Category = "OVERDUE"
)

// Notification is a single reminder event for a task.
type Notification struct {
	TaskID   string
	Title    string
	Category Category
	Due      time.Time
}

// Sink receives reminder notifications.
type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(n Notification)

// Notify calls f(n).
func (f SinkFunc) Notify(n Notification) { f(n) }

// WriterSink renders notifications as one-line textual events and logs them.
type WriterSink struct {
	Out io.Writer
	Log zerolog.Logger
}

// Notify writes the event to Out and emits a structured log record.
func (s *WriterSink) Notify(n Notification) {
	due := n.Due.Format("2006-01-02 15:04")

	var line string
	switch n.Category {
	case CategoryOverdue:
		line = fmt.Sprintf("[reminder] task %q was due %s and is overdue", n.Title, due)
	default:
		line = fmt.Sprintf("[reminder] task %q is due soon (%s)", n.Title, due)
	}

	if s.Out != nil {
		fmt.Fprintln(s.Out, line)
	}

	s.Log.Info().
		Str("task_id", n.TaskID).
		Str("category", string(n.Category)).
		Time("due", n.Due).
		Msg("reminder notification")
}
