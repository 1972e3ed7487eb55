package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/nextup"
)

type RescheduleCmd struct {
	flags *Flags
	app   *nextup.App

	// flags
	date      string
	timeOfDay string
}

// NewRescheduleCmd creates a new reschedule command
func NewRescheduleCmd(flags *Flags, app *nextup.App) *RescheduleCmd {
	return &RescheduleCmd{flags: flags, app: app}
}

// Register adds the reschedule command to the application
func (cmd *RescheduleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "reschedule",
		Usage:     "Move a task to another day, keeping its clock time unless one is given",
		UsageText: "nextup reschedule <id> --date 2006-01-02 [--time 15:04]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "date",
				Aliases:     []string{"d"},
				Usage:       "target day, e.g. 2026-09-04",
				Required:    true,
				Destination: &cmd.date,
			},
			&cli.StringFlag{
				Name:        "time",
				Usage:       "clock time on the target day, e.g. 17:00",
				Destination: &cmd.timeOfDay,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RescheduleCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := resolveTaskID(cmd.app, c.Args().First())
	if err != nil {
		return err
	}

	date, err := time.ParseInLocation("2006-01-02", cmd.date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", cmd.date, err)
	}

	var timeOfDay *time.Duration
	if cmd.timeOfDay != "" {
		clock, err := time.Parse("15:04", cmd.timeOfDay)
		if err != nil {
			return fmt.Errorf("invalid time %q: %w", cmd.timeOfDay, err)
		}

		d := time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute
		timeOfDay = &d
	}

	if err := cmd.app.Tasks.Reschedule(id, date, timeOfDay); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "rescheduled %s to %s\n", shortID(id), cmd.date)
	return nil
}
