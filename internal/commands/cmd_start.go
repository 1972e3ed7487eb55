package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/nextup"
)

type StartCmd struct {
	flags *Flags
	app   *nextup.App
}

// NewStartCmd creates a new start command
func NewStartCmd(flags *Flags, app *nextup.App) *StartCmd {
	return &StartCmd{flags: flags, app: app}
}

// Register adds the start command to the application
func (cmd *StartCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "start",
		Usage:     "Mark a task in progress",
		UsageText: "nextup start <id>",
		Action:    cmd.run,
	})

	return app
}

func (cmd *StartCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := resolveTaskID(cmd.app, c.Args().First())
	if err != nil {
		return err
	}

	if err := cmd.app.Tasks.Start(id); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "started %s\n", shortID(id))
	return nil
}
