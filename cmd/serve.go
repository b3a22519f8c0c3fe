package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cdr.dev/slog/v3"
	"github.com/bnema/riftwatch/internal/adapters/httpapi"
	"github.com/bnema/riftwatch/internal/application"
	"github.com/coder/quartz"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(app *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Track the roster and deliver notifications until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("http") {
				app.cfg.HTTP.Listen = listen
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, app)
		},
	}

	cmd.Flags().StringVar(&listen, "http", "", "Address for the health, metrics and status API (empty disables it)")

	return cmd
}

func runServe(ctx context.Context, app *app) error {
	if err := app.cfg.RequireCredentials(); err != nil {
		return err
	}

	store, err := app.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			app.log.Warn(ctx, "close database", slog.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := application.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	client := app.riotClient()
	registrar := application.NewRegistrar(store, client, client, app.log)

	entries, err := app.rosterEntries(ctx)
	if err != nil {
		return err
	}
	report, err := registrar.SyncRoster(ctx, entries, nil)
	if err != nil {
		return fmt.Errorf("sync roster: %w", err)
	}
	for _, failure := range report.Failed {
		app.log.Warn(ctx, "summoner not tracked",
			slog.F("riot_id", failure.Entry.RiotID()),
			slog.Error(failure.Err),
		)
	}
	if count, err := registrar.SyncChampions(ctx); err != nil {
		app.log.Warn(ctx, "champion catalog sync incomplete", slog.F("stored", count), slog.Error(err))
	}

	clock := quartz.NewReal()
	tracker := application.NewTracker(store, client, clock, app.log, metrics, application.TrackerConfig{
		MatchFetchAttempts: app.cfg.Tracker.MatchFetchAttempts,
		MatchFetchDelay:    app.cfg.Tracker.MatchFetchDelay,
		FinalizedLookback:  app.cfg.Tracker.FinalizedLookback,
	})
	aggregator := application.NewAggregator(store, app.notifier(), clock, app.log, metrics, application.AggregatorConfig{
		Interval:    app.cfg.Notifications.Interval,
		GraceWindow: app.cfg.Notifications.GraceWindow,
	})
	supervisor := application.NewSupervisor(store, tracker, clock, app.log, metrics, application.SupervisorConfig{
		PollInterval: app.cfg.Tracker.PollInterval,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return supervisor.Run(gctx)
	})
	g.Go(func() error {
		return aggregator.Run(gctx)
	})
	if app.cfg.HTTP.Listen != "" {
		server := httpapi.NewServer(application.NewStatusService(store), reg, app.log)
		g.Go(func() error {
			return server.ListenAndServe(gctx, app.cfg.HTTP.Listen)
		})
	}

	app.log.Info(ctx, "riftwatch running",
		slog.F("summoners", len(report.Synced)),
		slog.F("poll_interval", app.cfg.Tracker.PollInterval),
	)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	app.log.Info(context.WithoutCancel(ctx), "riftwatch stopped")
	return nil
}
