package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/core/task"
	"github.com/nextup/nextup/internal/nextup"
)

type EditCmd struct {
	flags *Flags
	app   *nextup.App

	// flags
	title       string
	description string
	priority    string
	due         string
	estimate    int
	tags        string
	lead        int
	actual      int
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *nextup.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Change fields on an existing task",
		UsageText: "nextup edit <id> [--title T] [--priority P] [--due \"2006-01-02 15:04\"] ...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Destination: &cmd.description,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "LOW, MEDIUM, HIGH, or CRITICAL",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "due",
				Usage:       "due timestamp, e.g. \"2026-09-04 17:00\"",
				Destination: &cmd.due,
			},
			&cli.IntFlag{
				Name:        "estimate",
				Aliases:     []string{"e"},
				Usage:       "estimated minutes",
				Destination: &cmd.estimate,
			},
			&cli.StringFlag{
				Name:        "tags",
				Aliases:     []string{"t"},
				Usage:       "semicolon-delimited tags, replaces the current set",
				Destination: &cmd.tags,
			},
			&cli.IntFlag{
				Name:        "lead",
				Usage:       "reminder lead window in minutes",
				Destination: &cmd.lead,
			},
			&cli.IntFlag{
				Name:        "actual",
				Usage:       "minutes actually spent",
				Destination: &cmd.actual,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := resolveTaskID(cmd.app, c.Args().First())
	if err != nil {
		return err
	}

	var in nextup.UpdateInput
	if c.IsSet("title") {
		in.Title = &cmd.title
	}
	if c.IsSet("description") {
		in.Description = &cmd.description
	}
	if c.IsSet("priority") {
		p := task.ParsePriority(cmd.priority)
		in.Priority = &p
	}
	if c.IsSet("due") {
		in.Due = task.ParseTime(cmd.due)
	}
	if c.IsSet("estimate") {
		in.EstimatedMinutes = &cmd.estimate
	}
	if c.IsSet("tags") {
		in.RawTags = &cmd.tags
	}

	if err := cmd.app.Tasks.Update(id, in); err != nil {
		return err
	}

	if c.IsSet("lead") {
		if err := cmd.app.Tasks.SetLead(id, cmd.lead); err != nil {
			return err
		}
	}
	if c.IsSet("actual") {
		if err := cmd.app.Tasks.RecordActual(id, cmd.actual); err != nil {
			return err
		}
	}

	fmt.Fprintf(c.Root().Writer, "updated %s\n", shortID(id))
	return nil
}
