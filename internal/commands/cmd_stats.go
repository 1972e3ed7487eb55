package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/nextup"
	"github.com/nextup/nextup/pkg/iojson"
)

type StatsCmd struct {
	flags *Flags
	app   *nextup.App

	// flags
	jsonOutput bool
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags, app *nextup.App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Summarize task counts and completion times",
		UsageText: "nextup stats [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	stats := cmd.app.Tasks.Stats(cmd.app.Tasks.ListAll())

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLine(out, stats)
	}

	fmt.Fprint(out, stats.Report())
	return nil
}
