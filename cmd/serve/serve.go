// Package serve implements the HTTP serving command: it generates the
// sitemaps, optionally keeps regenerating them on a schedule, and serves
// the documents until interrupted.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/gositemap/cmd/common"
	"github.com/jonesrussell/gositemap/internal/api"
	"github.com/jonesrussell/gositemap/internal/database"
	"github.com/jonesrussell/gositemap/internal/generator"
	"github.com/jonesrussell/gositemap/internal/job"
)

const defaultShutdownTimeout = 30 * time.Second

// Command returns the serve command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Generate sitemaps and serve them over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
}

// run starts the service and blocks until SIGINT or SIGTERM.
func run(ctx context.Context) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	var db *sqlx.DB
	if deps.Config.Sources.Postgres.Enabled {
		db, err = database.NewPostgresConnection(deps.Config.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()
	}

	providers, err := generator.Providers(deps.Config, deps.Logger, db)
	if err != nil {
		return err
	}

	gen := generator.New(deps.Config, deps.Logger, providers)
	sched := job.NewScheduler(deps.Logger, func(runCtx context.Context) error {
		_, runErr := gen.Run(runCtx)
		return runErr
	})

	// Initial pass so the server has documents to serve from the start.
	if len(providers) > 0 {
		if runErr := sched.RunNow(ctx); runErr != nil {
			return fmt.Errorf("initial generation: %w", runErr)
		}
	}

	if deps.Config.Schedule.Enabled {
		if startErr := sched.Start(deps.Config.Schedule.Cron); startErr != nil {
			return startErr
		}
	}

	server := api.NewServer(deps.Config, deps.Logger, sched).HTTPServer()

	errChan := make(chan error, 1)
	go func() {
		deps.Logger.Info("Starting HTTP server", "address", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case serveErr := <-errChan:
		return fmt.Errorf("http server: %w", serveErr)
	case <-signalCtx.Done():
		deps.Logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if deps.Config.Schedule.Enabled {
		if stopErr := sched.Stop(shutdownCtx); stopErr != nil {
			deps.Logger.Error("Failed to stop scheduler", "error", stopErr)
		}
	}

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		return fmt.Errorf("shutdown http server: %w", shutdownErr)
	}

	deps.Logger.Info("Server stopped")

	return nil
}
