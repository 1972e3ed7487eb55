package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/nextup"
)

type RmCmd struct {
	flags *Flags
	app   *nextup.App

	// flags
	cancel bool
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *nextup.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Delete a task, or cancel it instead of deleting",
		UsageText: "nextup rm <id> [--cancel]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "cancel",
				Usage:       "mark the task cancelled rather than removing the record",
				Destination: &cmd.cancel,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := resolveTaskID(cmd.app, c.Args().First())
	if err != nil {
		return err
	}

	if cmd.cancel {
		if err := cmd.app.Tasks.Cancel(id); err != nil {
			return err
		}

		fmt.Fprintf(c.Root().Writer, "cancelled %s\n", shortID(id))
		return nil
	}

	removed, err := cmd.app.Tasks.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("no task found for %q", id)
	}

	fmt.Fprintf(c.Root().Writer, "deleted %s\n", shortID(id))
	return nil
}
