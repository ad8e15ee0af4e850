package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"personal-planner/config/setup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, err := setup.InitStore(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to initialize store", "error", err)
			return err
		}

		application, err := setup.InitApp(cfg, store, logger)
		if err != nil {
			store.Close()
			return err
		}

		fiberApp := setup.NewFiberApp(cfg, logger)
		setup.ApplyMiddleware(fiberApp, cfg, logger)
		setup.RegisterRoutes(fiberApp, application)

		logger.Info("starting server", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)

		errCh := make(chan error, 1)
		go func() {
			errCh <- fiberApp.Listen(":" + cfg.Port)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			logger.Error("server failed", "error", err)
			setup.Shutdown(application, logger)
			return err
		case <-quit:
		}

		logger.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}

		setup.Shutdown(application, logger)
		logger.Info("server stopped")
		return nil
	},
}
