package notify

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWriterSink(t *testing.T) {
	due := time.Date(2026, 9, 4, 17, 0, 0, 0, time.Local)

	t.Run("due soon line", func(t *testing.T) {
		var buf bytes.Buffer
		s := &WriterSink{Out: &buf, Log: zerolog.Nop()}
		s.Notify(Notification{TaskID: "t1", Title: "ship it", Category: CategoryDueSoon, Due: due})

		assert.Equal(t, "[reminder] task \"ship it\" is due soon (2026-09-04 17:00)\n", buf.String())
	})

	t.Run("overdue line", func(t *testing.T) {
		var buf bytes.Buffer
		s := &WriterSink{Out: &buf, Log: zerolog.Nop()}
		s.Notify(Notification{TaskID: "t1", Title: "ship it", Category: CategoryOverdue, Due: due})

		assert.Equal(t, "[reminder] task \"ship it\" was due 2026-09-04 17:00 and is overdue\n", buf.String())
	})

	t.Run("nil writer only logs", func(t *testing.T) {
		s := &WriterSink{Log: zerolog.Nop()}
		s.Notify(Notification{Category: CategoryDueSoon, Due: due}) // must not panic
	})
}

func TestSinkFunc(t *testing.T) {
	var got Notification
	SinkFunc(func(n Notification) { got = n }).Notify(Notification{TaskID: "x"})
	assert.Equal(t, "x", got.TaskID)
}
