package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/core/task"
	"github.com/nextup/nextup/internal/nextup"
)

type AddCmd struct {
	flags *Flags
	app   *nextup.App

	// flags
	description string
	priority    string
	due         string
	estimate    string
	tags        string
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *nextup.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a new task",
		UsageText: "nextup add <title> [--priority P] [--due \"2006-01-02 15:04\"] [--estimate MIN] [--tags a;b]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "longer task description",
				Destination: &cmd.description,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "LOW, MEDIUM, HIGH, or CRITICAL (invalid input falls back to MEDIUM)",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "due",
				Usage:       "due timestamp, e.g. \"2026-09-04 17:00\"",
				Destination: &cmd.due,
			},
			&cli.StringFlag{
				Name:        "estimate",
				Aliases:     []string{"e"},
				Usage:       "estimated minutes (defaults to 30)",
				Destination: &cmd.estimate,
			},
			&cli.StringFlag{
				Name:        "tags",
				Aliases:     []string{"t"},
				Usage:       "semicolon-delimited tags",
				Destination: &cmd.tags,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	title := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if title == "" {
		return fmt.Errorf("a task title is required")
	}

	created, err := cmd.app.Tasks.Create(nextup.CreateInput{
		Title:            title,
		Description:      cmd.description,
		Priority:         task.ParsePriority(cmd.priority),
		Due:              task.ParseTime(cmd.due),
		EstimatedMinutes: task.ParseEstimate(cmd.estimate),
		RawTags:          cmd.tags,
	})
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "added %s\n", created.ID)
	return nil
}
