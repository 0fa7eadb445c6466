package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bobocheung/Distributed-Web-Crawler/internal/api"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/scheduler"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/task"
)

// newServeCmd creates the 'serve' subcommand: the long-running scheduler,
// worker pool, and operational HTTP endpoint.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Runs the scheduler, worker pool, and ops endpoint",
		Long: `Starts the periodic crawl scheduler with its coverage quota balancer,
a pool of task workers consuming the queue, and an HTTP endpoint serving
health, Prometheus metrics, and the crawl-failure ledger.`,

		RunE: runServeCommand,
	}
	return cmd
}

func runServeCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	cfg := appInstance.Config()
	logger := appInstance.Logger()
	ctx := cmd.Context()

	runner := task.NewRunner(appInstance.Queue(), task.DefaultRetryPolicy(), cfg.Workers.Count, logger)
	appInstance.Handlers().Register(runner)

	sched := scheduler.New(scheduler.Config{
		Interval:      cfg.SchedulerInterval(),
		Window:        cfg.CoverageWindow(),
		MinPerCountry: cfg.Scheduler.MinPerCountry,
		MinPerLang:    cfg.Scheduler.MinPerLang,
	}, appInstance.Registry(), appInstance.Store(), appInstance.Queue(), logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewServer(appInstance.Ledger(), logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		runner.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		sched.Run(ctx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("ops endpoint listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("ops endpoint: %w", err)
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("ops endpoint shutdown", zap.Error(err))
	}
	wg.Wait()
	return nil
}
