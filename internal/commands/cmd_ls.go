package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/core/styles"
	"github.com/nextup/nextup/internal/core/task"
	"github.com/nextup/nextup/internal/nextup"
	"github.com/nextup/nextup/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *nextup.App

	// flags
	status     string
	priority   string
	tag        string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *nextup.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List tasks",
		UsageText: "nextup ls [--status S] [--priority P] [--tag T] [--json]",
		Description: `Displays a table of tasks in display order (manual sort order first,
then creation order). Filter flags combine; matching is case-insensitive.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Usage:       "filter by status (PENDING, IN_PROGRESS, COMPLETED, CANCELLED)",
				Destination: &cmd.status,
			},
			&cli.StringFlag{
				Name:        "priority",
				Usage:       "filter by priority",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "tag",
				Usage:       "filter by tag",
				Destination: &cmd.tag,
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

// Run executes the listing; exported so main can use it as the default
// action when no subcommand is given.
func (cmd *LsCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	var tasks []task.Task
	if cmd.status != "" || cmd.priority != "" || cmd.tag != "" {
		tasks = cmd.app.Tasks.Filter(cmd.status, cmd.priority, cmd.tag)
	} else {
		tasks = cmd.app.Tasks.ListAll()
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, t := range tasks {
			if err := iojson.WriteLine(out, taskRow(t)); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, styles.Header.Render("ID\tTITLE\tPRIORITY\tDUE\tEST\tSTATUS\tTAGS"))

	for _, t := range tasks {
		due := task.FormatTime(t.Due)
		if due == "" {
			due = "-"
		}
		isOverdue := t.Due != nil && t.Due.Before(now) && !t.Status.Terminal()

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dm\t%s\t%s\n",
			shortID(t.ID),
			t.Title,
			styles.Priority(t.Priority),
			styles.Due(due, isOverdue),
			t.EstimatedMinutes,
			styles.Status(t.Status),
			strings.Join(t.Tags, ";"),
		)
	}

	return w.Flush()
}

// taskInfo is the JSON output format for nextup ls --json.
type taskInfo struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Priority string   `json:"priority"`
	Status   string   `json:"status"`
	Due      string   `json:"due,omitempty"`
	Estimate int      `json:"estimated_minutes"`
	Tags     []string `json:"tags,omitempty"`
}

func taskRow(t task.Task) taskInfo {
	return taskInfo{
		ID:       t.ID,
		Title:    t.Title,
		Priority: string(t.Priority),
		Status:   string(t.Status),
		Due:      task.FormatTime(t.Due),
		Estimate: t.EstimatedMinutes,
		Tags:     t.Tags,
	}
}

// shortID trims a UUID down to its first segment for table display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
