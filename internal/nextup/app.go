package nextup

import (
	"github.com/rs/zerolog"

	"github.com/nextup/nextup/internal/core/config"
)

// App aggregates the services commands need. It is allocated up front in
// main and populated in the CLI Before hook so command constructors can
// hold a stable pointer.
type App struct {
	Tasks  *Service
	Notes  *NoteService
	Config *config.Config
	Log    zerolog.Logger
}

// NewApp bundles the services into an App.
func NewApp(tasks *Service, notes *NoteService, cfg *config.Config, log zerolog.Logger) *App {
	return &App{
		Tasks:  tasks,
		Notes:  notes,
		Config: cfg,
		Log:    log,
	}
}
