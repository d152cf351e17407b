// Command server runs the service request HTTP API.
//
// Configuration is read from CONFIG_PATH (or config.yaml) and the
// environment. SIGINT and SIGTERM trigger a graceful shutdown; SIGHUP
// reloads the directory seed.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/tenantdesk-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
