package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/nextup/nextup/internal/core/notify"
	"github.com/nextup/nextup/internal/nextup"
	"github.com/nextup/nextup/internal/web"
)

type ServeCmd struct {
	flags *Flags
	app   *nextup.App

	// flags
	addr        string
	noReminders bool
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags, app *nextup.App) *ServeCmd {
	return &ServeCmd{flags: flags, app: app}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Run the HTTP API and the background reminder loop",
		UsageText: "nextup serve [--addr host:port]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address, overrides the config file",
				Destination: &cmd.addr,
			},
			&cli.BoolFlag{
				Name:        "no-reminders",
				Usage:       "serve the API without the reminder loop",
				Destination: &cmd.noReminders,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, c *cli.Command) error {
	addr := cmd.app.Config.Server.Addr
	if cmd.addr != "" {
		addr = cmd.addr
	}

	if !cmd.noReminders {
		sink := &notify.WriterSink{Out: os.Stdout, Log: cmd.app.Log}
		reminder := nextup.NewReminder(
			cmd.app.Tasks,
			sink,
			cmd.app.Config.Reminders.InitialDelay(),
			cmd.app.Config.Reminders.Interval(),
			cmd.app.Log,
		)
		reminder.Start()
		defer reminder.Stop()
	}

	srv := web.NewServer(addr, cmd.app.Tasks, cmd.app.Notes, cmd.app.Log)

	errCh := make(chan error, 1)
	go func() {
		cmd.app.Log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
