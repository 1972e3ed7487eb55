package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/nextup"
)

type DoneCmd struct {
	flags *Flags
	app   *nextup.App

	// flags
	tag string
}

// NewDoneCmd creates a new done command
func NewDoneCmd(flags *Flags, app *nextup.App) *DoneCmd {
	return &DoneCmd{flags: flags, app: app}
}

// Register adds the done command to the application
func (cmd *DoneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "done",
		Usage:     "Mark a task (or every task carrying a tag) completed",
		UsageText: "nextup done <id> | nextup done --tag <tag>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "tag",
				Aliases:     []string{"t"},
				Usage:       "complete all active tasks carrying this tag",
				Destination: &cmd.tag,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DoneCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.tag != "" {
		n, err := cmd.app.Tasks.CompleteByTag(cmd.tag)
		if err != nil {
			return err
		}

		fmt.Fprintf(c.Root().Writer, "completed %d task(s) tagged %q\n", n, cmd.tag)
		return nil
	}

	id, err := resolveTaskID(cmd.app, c.Args().First())
	if err != nil {
		return err
	}

	if err := cmd.app.Tasks.Complete(id); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "completed %s\n", shortID(id))
	return nil
}
