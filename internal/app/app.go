package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/retailingest/internal/ingest"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkglog"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config
	logger *slog.Logger

	// libraries
	uuid      pkguid.StringID
	goroutine *pkgroutine.Manager

	// modules
	ingest *ingest.Module

	// server, only in server mode
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New() *App {
	// bootstrap logger until the configured one is built
	pkglog.InitLogging(pkglog.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLogger()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}

// ServerEnabled reports whether the app serves the ops HTTP surface instead
// of running a single batch.
func (a *App) ServerEnabled() bool {
	return a.httpServer != nil
}
