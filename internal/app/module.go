package app

import (
	"os"

	"github.com/shandysiswandi/retailingest/internal/ingest"
)

func (a *App) initModules() {
	mod, err := ingest.New(ingest.Dependency{
		Config:    a.config,
		Logger:    a.logger,
		Goroutine: a.goroutine,
		Router:    a.router,
		Context:   a.ctx,
		ID:        a.uuid,
	})
	if err != nil {
		a.logger.Error("failed to init module ingest", "error", err)
		os.Exit(1)
	}

	a.ingest = mod
}
