package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/nextup"
)

type SnoozeCmd struct {
	flags *Flags
	app   *nextup.App

	// flags
	minutes int
}

// NewSnoozeCmd creates a new snooze command
func NewSnoozeCmd(flags *Flags, app *nextup.App) *SnoozeCmd {
	return &SnoozeCmd{flags: flags, app: app}
}

// Register adds the snooze command to the application
func (cmd *SnoozeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "snooze",
		Usage:     "Push a task's due time into the future",
		UsageText: "nextup snooze <id> [--minutes N]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "minutes",
				Aliases:     []string{"m"},
				Usage:       "minutes to push the due time by",
				Value:       15,
				Destination: &cmd.minutes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SnoozeCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := resolveTaskID(cmd.app, c.Args().First())
	if err != nil {
		return err
	}

	if err := cmd.app.Tasks.Snooze(id, cmd.minutes); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "snoozed %s by %d minute(s)\n", shortID(id), cmd.minutes)
	return nil
}
