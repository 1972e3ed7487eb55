package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/core/styles"
	"github.com/nextup/nextup/internal/core/task"
	"github.com/nextup/nextup/internal/nextup"
	"github.com/nextup/nextup/pkg/iojson"
)

type SuggestCmd struct {
	flags *Flags
	app   *nextup.App

	// flags
	limit      int
	jsonOutput bool
}

// NewSuggestCmd creates a new suggest command
func NewSuggestCmd(flags *Flags, app *nextup.App) *SuggestCmd {
	return &SuggestCmd{flags: flags, app: app}
}

// Register adds the suggest command to the application
func (cmd *SuggestCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "suggest",
		Usage:     "Rank active tasks by what to work on next",
		UsageText: "nextup suggest [--limit N] [--json]",
		Description: `Scores every active task by priority, urgency against the due time,
estimate size, age, and in-progress momentum, then prints best first.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "show at most this many tasks (0 shows all)",
				Destination: &cmd.limit,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SuggestCmd) run(ctx context.Context, c *cli.Command) error {
	ranked := cmd.app.Tasks.Suggest(cmd.app.Tasks.ListActionable())
	if cmd.limit > 0 && len(ranked) > cmd.limit {
		ranked = ranked[:cmd.limit]
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, t := range ranked {
			if err := iojson.WriteLine(out, taskRow(t)); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	if len(ranked) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to do")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, styles.Header.Render("#\tID\tTITLE\tPRIORITY\tDUE\tEST\tSTATUS"))

	for i, t := range ranked {
		due := task.FormatTime(t.Due)
		if due == "" {
			due = "-"
		}
		isOverdue := t.Due != nil && t.Due.Before(now)

		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%dm\t%s\n",
			i+1,
			shortID(t.ID),
			t.Title,
			styles.Priority(t.Priority),
			styles.Due(due, isOverdue),
			t.EstimatedMinutes,
			styles.Status(t.Status),
		)
	}

	return w.Flush()
}
