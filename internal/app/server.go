package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// RunOnce executes a single batch. Dataset failures are logged, never
// returned, so the process exits 0 either way.
func (a *App) RunOnce() {
	a.ingest.Run(a.ctx)
}

func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})

	go func() {
		a.logger.Info("http server listening", "address", a.httpServer.Addr)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("failed to listen and serve http server", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

		<-sigint

		if a.cancel != nil {
			a.cancel()
		}

		terminateChan <- struct{}{}
		close(terminateChan)

		a.logger.Info("application gracefully shutdown")
	}()

	return terminateChan
}

func (a *App) Stop(ctx context.Context) {
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.logger.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
		}
	}

	// running goroutines see the cancellation through their root context
	if a.cancel != nil {
		a.cancel()
	}

	a.logger.InfoContext(ctx, "waiting for all goroutine to finish")
	if err := a.goroutine.Wait(); err != nil {
		a.logger.ErrorContext(ctx, "error from goroutines executions", "error", err)
	}

	for name, closer := range a.closerFn {
		if err := closer(ctx); err != nil {
			a.logger.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
		}
	}
}
