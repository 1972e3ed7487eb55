package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/nextup"
)

type ReorderCmd struct {
	flags *Flags
	app   *nextup.App
}

// NewReorderCmd creates a new reorder command
func NewReorderCmd(flags *Flags, app *nextup.App) *ReorderCmd {
	return &ReorderCmd{flags: flags, app: app}
}

// Register adds the reorder command to the application
func (cmd *ReorderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "reorder",
		Usage:     "Move a task to sit directly before another in the manual order",
		UsageText: "nextup reorder <id> <before-id>",
		Action:    cmd.run,
	})

	return app
}

func (cmd *ReorderCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("reorder takes exactly two task ids")
	}

	fromID, err := resolveTaskID(cmd.app, c.Args().Get(0))
	if err != nil {
		return err
	}
	toID, err := resolveTaskID(cmd.app, c.Args().Get(1))
	if err != nil {
		return err
	}

	if err := cmd.app.Tasks.Reorder(fromID, toID); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "moved %s before %s\n", shortID(fromID), shortID(toID))
	return nil
}
