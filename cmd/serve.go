package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		root, err := NewCompositionRoot(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := root.Close(); err != nil {
				logger.Error("shutdown failed", zap.Error(err))
			}
		}()

		jobManager := root.Jobs()
		if err := jobManager.StartAll(); err != nil {
			return err
		}
		defer jobManager.StopAll()

		e := root.Server().Echo()
		serverErr := make(chan error, 1)
		go func() {
			addr := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
			logger.Info("http server listening", zap.String("addr", addr), zap.String("storage", cfg.Storage))
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
			close(serverErr)
		}()

		select {
		case err := <-serverErr:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		return e.Shutdown(shutdownCtx)
	},
}
