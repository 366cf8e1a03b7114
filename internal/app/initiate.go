package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"

	"github.com/shandysiswandi/retailingest/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkglog"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkguid"
)

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if os.Getenv("LOCAL") == "true" {
		return "./config/config.yaml"
	}
	return "/config/config.yaml"
}

func (a *App) initConfig() {
	path := configPath()

	cfg, err := pkgconfig.NewViper(path, pkgconfig.WithDefaults(defaults()))
	switch {
	case errors.Is(err, pkgconfig.ErrNotFound):
		slog.Warn("config file not found, using built-in defaults", "path", path)
		cfg = pkgconfig.NewDefaults(defaults())
	case err != nil:
		slog.Error("failed to init config", "path", path, "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg
}

func (a *App) initLogger() {
	a.logger = pkglog.InitLogging(pkglog.Options{
		Level:  a.config.GetString("log.level"),
		Format: a.config.GetString("log.format"),
	})
}

func (a *App) initLibraries() {
	// one run at a time: the ledger has a single writer
	a.goroutine = pkgroutine.NewManager(1)
	a.uuid = pkguid.NewUUID()
}

func (a *App) initHTTPServer() {
	if !a.config.GetBool("server.enabled") {
		return
	}

	a.router = pkgrouter.NewRouter(a.uuid, a.logger)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{pkgrouter.HeaderRequestID},
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
