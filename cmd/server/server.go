package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

// Run serves HTTP until SIGINT or SIGTERM, then shuts the server down and
// releases every resource. It returns the process exit code.
func (app *application) Run(ctx context.Context) int {
	addr := fmt.Sprintf(":%d", app.config.Server.Port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		app.logger.Error("failed to listen", "addr", addr, "error", err)
		_ = app.cleanup()
		return 1
	}

	server := &http.Server{
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		app.logger.Info("starting server", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("server failed", "error", err)
		}
	}()

	timeout := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
	wait := gfshutdown.GracefulShutdown(ctx, timeout, map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			app.logger.Info("shutting down server")
			// Shutdown does not wait for hijacked websocket connections,
			// so the hub is closed separately in cleanup.
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return app.cleanup()
		},
	})

	code := <-wait
	app.logger.Info("server shutdown completed", "exit_code", code)
	return code
}
