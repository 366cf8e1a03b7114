package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/retailingest/internal/app"
)

func main() {
	application := app.New()

	if !application.ServerEnabled() {
		application.RunOnce()                  // One batch; failures are logged, exit status stays 0
		application.Stop(context.Background()) // Release resources
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	application.Stop(ctx)       // Stop the application gracefully
}
