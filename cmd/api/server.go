package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"billpop-backend/pkg/container"
	"billpop-backend/pkg/logger"
)

// Serve wires the container, starts the HTTP server and blocks until
// a shutdown signal arrives, then drains in-flight requests.
func Serve() error {
	c, err := container.NewContainer()
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer c.Cleanup()

	router := SetupRouter(c)

	srv := &http.Server{
		Addr:         ":" + c.Config.App.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚀 Server starting", map[string]interface{}{
			"port": c.Config.App.Port,
			"env":  c.Config.App.Environment,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info("🛑 Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("✅ Server stopped gracefully", nil)
	return nil
}
