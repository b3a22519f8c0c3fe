package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cdr.dev/slog/v3"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports"
	"github.com/coder/quartz"
	"github.com/coder/retry"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPollInterval = 180 * time.Second

	defaultRestartFloor = time.Second
	defaultRestartCeil  = time.Minute
)

var errPollPanic = errors.New("poll panicked")

// Poller runs one poll cycle for a summoner. *Tracker implements it.
type Poller interface {
	Poll(ctx context.Context, summoner domain.Summoner) error
}

type SupervisorConfig struct {
	PollInterval time.Duration
	// RestartFloor and RestartCeil bound the backoff between restarts of a
	// crashed summoner loop.
	RestartFloor time.Duration
	RestartCeil  time.Duration
}

func DefaultSupervisorConfig() SupervisorConfig {
	return SupervisorConfig{
		PollInterval: DefaultPollInterval,
		RestartFloor: defaultRestartFloor,
		RestartCeil:  defaultRestartCeil,
	}
}

// Supervisor runs one independent poll loop per tracked summoner.
type Supervisor struct {
	summoners ports.SummonerRepository
	poller    Poller
	clock     quartz.Clock
	log       slog.Logger
	metrics   *Metrics
	cfg       SupervisorConfig
}

func NewSupervisor(summoners ports.SummonerRepository, poller Poller, clock quartz.Clock, log slog.Logger, metrics *Metrics, cfg SupervisorConfig) *Supervisor {
	if clock == nil {
		clock = quartz.NewReal()
	}
	defaults := DefaultSupervisorConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaults.PollInterval
	}
	if cfg.RestartFloor <= 0 {
		cfg.RestartFloor = defaults.RestartFloor
	}
	if cfg.RestartCeil < cfg.RestartFloor {
		cfg.RestartCeil = cfg.RestartFloor
	}

	return &Supervisor{
		summoners: summoners,
		poller:    poller,
		clock:     clock,
		log:       log.Named("supervisor"),
		metrics:   metrics,
		cfg:       cfg,
	}
}

// Run blocks until ctx is done. Summoners added after Run starts are picked
// up on the next start.
func (s *Supervisor) Run(ctx context.Context) error {
	summoners, err := s.summoners.ListSummoners(ctx)
	if err != nil {
		return fmt.Errorf("list summoners: %w", err)
	}
	if len(summoners) == 0 {
		s.log.Warn(ctx, "no summoners to track")
		<-ctx.Done()
		return nil
	}

	s.log.Info(ctx, "starting poll loops",
		slog.F("summoners", len(summoners)),
		slog.F("interval", s.cfg.PollInterval),
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, summoner := range summoners {
		g.Go(func() error {
			s.loop(gctx, summoner)
			return nil
		})
	}
	return g.Wait()
}

func (s *Supervisor) loop(ctx context.Context, summoner domain.Summoner) {
	log := s.log.With(slog.F("summoner", summoner.RiotID()))
	defer log.Debug(ctx, "poll loop exited")

	for retrier := retry.New(s.cfg.RestartFloor, s.cfg.RestartCeil); retrier.Wait(ctx); {
		err := s.watch(ctx, log, summoner, retrier)
		if ctx.Err() != nil {
			return
		}
		s.metrics.recordLoopRestart()
		log.Error(ctx, "poll loop stopped, restarting", slog.Error(err))
	}
}

// watch polls until ctx is done or a poll panics. The interval is measured
// from the end of one poll to the start of the next. Every completed interval
// poll resets the restart backoff.
func (s *Supervisor) watch(ctx context.Context, log slog.Logger, summoner domain.Summoner, retrier *retry.Retrier) error {
	if err := s.pollSafely(ctx, log, summoner); err != nil {
		return err
	}

	timer := s.clock.NewTimer(s.cfg.PollInterval, "supervisor", "poll")
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		if err := s.pollSafely(ctx, log, summoner); err != nil {
			return err
		}
		retrier.Reset()
		timer.Reset(s.cfg.PollInterval, "supervisor", "poll")
	}
}

// pollSafely swallows poll errors and converts panics into errPollPanic.
func (s *Supervisor) pollSafely(ctx context.Context, log slog.Logger, summoner domain.Summoner) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errPollPanic, r)
		}
	}()

	if pollErr := s.poller.Poll(ctx, summoner); pollErr != nil && ctx.Err() == nil {
		s.metrics.recordPollError()
		log.Warn(ctx, "poll failed", slog.Error(pollErr))
	}
	return nil
}
