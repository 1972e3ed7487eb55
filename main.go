package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/commands"
	"github.com/nextup/nextup/internal/core/config"
	"github.com/nextup/nextup/internal/data/csvfile"
	"github.com/nextup/nextup/internal/nextup"
	"github.com/nextup/nextup/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		nextupApp = &nextup.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "nextup",
		Usage:     "Track tasks and figure out what to do next",
		UsageText: "nextup [global options] command [command options]",
		Description: `Nextup keeps a personal task list in a plain CSV file and ranks what
you should work on next by priority, deadlines, and estimate size.

Run 'nextup add <title>' to capture a task and 'nextup suggest' for the
ranked list. 'nextup serve' starts the HTTP API with due-time reminders.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("NEXTUP_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/nextup.log)",
				Sources:     cli.EnvVars("NEXTUP_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("NEXTUP_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("NEXTUP_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := os.MkdirAll(flags.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data dir: %w", err)
			}

			// Always log to a file; use explicit path or default to <datadir>/nextup.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "nextup.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			taskStore, err := csvfile.OpenTaskStore(cfg.TasksPath(), log.With().Str("component", "taskstore").Logger())
			if err != nil {
				return ctx, fmt.Errorf("open task store: %w", err)
			}

			noteStore, err := csvfile.OpenNoteStore(cfg.NotesPath(), log.With().Str("component", "notestore").Logger())
			if err != nil {
				return ctx, fmt.Errorf("open note store: %w", err)
			}

			svcLogger := log.With().Str("component", "nextup").Logger()

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*nextupApp = *nextup.NewApp(
				nextup.NewService(taskStore, svcLogger),
				nextup.NewNoteService(noteStore, svcLogger),
				cfg,
				svcLogger,
			)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	lsCmd := commands.NewLsCmd(flags, nextupApp)

	app = commands.NewAddCmd(flags, nextupApp).Register(app)
	app = lsCmd.Register(app)
	app = commands.NewDoneCmd(flags, nextupApp).Register(app)
	app = commands.NewStartCmd(flags, nextupApp).Register(app)
	app = commands.NewRmCmd(flags, nextupApp).Register(app)
	app = commands.NewSnoozeCmd(flags, nextupApp).Register(app)
	app = commands.NewRescheduleCmd(flags, nextupApp).Register(app)
	app = commands.NewEditCmd(flags, nextupApp).Register(app)
	app = commands.NewReorderCmd(flags, nextupApp).Register(app)
	app = commands.NewSuggestCmd(flags, nextupApp).Register(app)
	app = commands.NewStatsCmd(flags, nextupApp).Register(app)
	app = commands.NewServeCmd(flags, nextupApp).Register(app)

	// Listing is the default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'nextup --help' for usage", c.Args().First())
		}
		return lsCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
