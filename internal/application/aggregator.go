package application

import (
	"context"
	"fmt"
	"time"

	"cdr.dev/slog/v3"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports"
	"github.com/coder/quartz"
)

const (
	DefaultNotificationInterval = 5 * time.Second
	DefaultGraceWindow          = 30 * time.Second
)

type AggregatorConfig struct {
	Interval time.Duration
	// GraceWindow is the minimum age of an event before it is delivered, so
	// teammates detected a few polls apart land in the same message.
	GraceWindow time.Duration
}

func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		Interval:    DefaultNotificationInterval,
		GraceWindow: DefaultGraceWindow,
	}
}

// CycleReport summarizes one ProcessPending run.
type CycleReport struct {
	Pending   int
	Deferred  int
	Groups    int
	Delivered int
	Failed    int
	Dropped   int
}

// Aggregator drains the notification queue, merging events that share a
// correlation key into one message per group.
type Aggregator struct {
	repo     ports.Repository
	notifier ports.Notifier
	clock    quartz.Clock
	log      slog.Logger
	metrics  *Metrics
	cfg      AggregatorConfig
}

func NewAggregator(repo ports.Repository, notifier ports.Notifier, clock quartz.Clock, log slog.Logger, metrics *Metrics, cfg AggregatorConfig) *Aggregator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultNotificationInterval
	}
	if cfg.GraceWindow < 0 {
		cfg.GraceWindow = 0
	}

	return &Aggregator{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		log:      log.Named("aggregator"),
		metrics:  metrics,
		cfg:      cfg,
	}
}

// Run processes the queue immediately and then on every interval until ctx
// is done.
func (a *Aggregator) Run(ctx context.Context) error {
	a.cycle(ctx)

	waiter := a.clock.TickerFunc(ctx, a.cfg.Interval, func() error {
		a.cycle(ctx)
		return nil
	}, "aggregator", "cycle")

	err := waiter.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (a *Aggregator) cycle(ctx context.Context) {
	report, err := a.ProcessPending(ctx)
	if err != nil {
		if ctx.Err() == nil {
			a.log.Error(ctx, "process pending events", slog.Error(err))
		}
		return
	}
	if report.Groups > 0 {
		a.log.Debug(ctx, "aggregation cycle",
			slog.F("pending", report.Pending),
			slog.F("deferred", report.Deferred),
			slog.F("delivered", report.Delivered),
			slog.F("failed", report.Failed),
			slog.F("dropped", report.Dropped),
		)
	}
}

type eventGroup struct {
	key    domain.GroupKey
	events []domain.NotificationEvent
}

// ProcessPending runs one aggregation cycle. Groups whose delivery fails stay
// pending for the next cycle.
func (a *Aggregator) ProcessPending(ctx context.Context) (CycleReport, error) {
	var report CycleReport

	pending, err := a.repo.ListPendingEvents(ctx)
	if err != nil {
		return report, fmt.Errorf("list pending events: %w", err)
	}
	report.Pending = len(pending)
	a.metrics.setPending(len(pending))
	if len(pending) == 0 {
		return report, nil
	}

	now := a.clock.Now()
	groups := make([]*eventGroup, 0)
	byKey := make(map[domain.GroupKey]*eventGroup)
	for _, event := range pending {
		if now.Sub(event.CreatedAt) < a.cfg.GraceWindow {
			report.Deferred++
			continue
		}
		key := event.GroupKey()
		group, ok := byKey[key]
		if !ok {
			group = &eventGroup{key: key}
			byKey[key] = group
			groups = append(groups, group)
		}
		group.events = append(group.events, event)
	}
	report.Groups = len(groups)
	if len(groups) == 0 {
		return report, nil
	}

	summoners, err := a.repo.ListSummoners(ctx)
	if err != nil {
		return report, fmt.Errorf("list summoners: %w", err)
	}
	byID := make(map[domain.SummonerID]domain.Summoner, len(summoners))
	for _, summoner := range summoners {
		byID[summoner.ID] = summoner
	}

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		delivered, err := a.deliver(ctx, group, byID)
		switch {
		case err != nil:
			report.Failed++
			a.metrics.recordNotification(string(group.key.Kind), DeliveryStatusFailed)
			a.log.Warn(ctx, "deliver notification",
				slog.F("kind", group.key.Kind),
				slog.F("correlation_key", group.key.CorrelationKey),
				slog.F("events", len(group.events)),
				slog.Error(err),
			)
			continue
		case !delivered:
			report.Dropped++
			a.metrics.recordNotification(string(group.key.Kind), DeliveryStatusDropped)
			a.log.Warn(ctx, "dropping notification for unknown summoners",
				slog.F("kind", group.key.Kind),
				slog.F("correlation_key", group.key.CorrelationKey),
			)
		default:
			report.Delivered++
			a.metrics.recordNotification(string(group.key.Kind), DeliveryStatusSuccess)
		}

		ids := make([]string, 0, len(group.events))
		for _, event := range group.events {
			ids = append(ids, event.ID)
		}
		if err := a.repo.MarkEventsProcessed(ctx, ids, a.clock.Now()); err != nil {
			return report, fmt.Errorf("mark events processed: %w", err)
		}
	}

	return report, nil
}

// deliver sends one group. It reports false without error when none of the
// group's summoners are known.
func (a *Aggregator) deliver(ctx context.Context, group *eventGroup, summoners map[domain.SummonerID]domain.Summoner) (bool, error) {
	switch group.key.Kind {
	case domain.EventGameStarted:
		summary := startedSummary(group.events, summoners)
		if len(summary.Players) == 0 {
			return false, nil
		}
		return true, a.notifier.SendGameStarted(ctx, summary)
	case domain.EventGameEnded:
		summary := endedSummary(group.key.CorrelationKey, group.events, summoners)
		if len(summary.Players) == 0 {
			return false, nil
		}
		return true, a.notifier.SendGameEnded(ctx, summary)
	default:
		return false, nil
	}
}

func startedSummary(events []domain.NotificationEvent, summoners map[domain.SummonerID]domain.Summoner) domain.StartedSummary {
	first := events[0].Payload
	summary := domain.StartedSummary{
		GameID:   first.GameID,
		GameMode: first.GameMode,
		QueueID:  first.QueueID,
	}

	seen := make(map[domain.SummonerID]struct{}, len(events))
	for _, event := range events {
		summoner, ok := summoners[event.SummonerID]
		if !ok {
			continue
		}
		if _, dup := seen[summoner.ID]; dup {
			continue
		}
		seen[summoner.ID] = struct{}{}
		summary.Players = append(summary.Players, domain.StartedPlayer{
			Summoner:     summoner,
			ChampionName: event.Payload.ChampionName,
		})
	}
	return summary
}

func endedSummary(matchID string, events []domain.NotificationEvent, summoners map[domain.SummonerID]domain.Summoner) domain.EndedSummary {
	first := events[0].Payload
	summary := domain.EndedSummary{
		MatchID:  matchID,
		GameMode: first.GameMode,
		QueueID:  first.QueueID,
		Featured: first.Featured,
	}

	seen := make(map[domain.SummonerID]struct{}, len(events))
	for _, event := range events {
		if event.Payload.Result == nil {
			continue
		}
		summoner, ok := summoners[event.SummonerID]
		if !ok {
			continue
		}
		if _, dup := seen[summoner.ID]; dup {
			continue
		}
		seen[summoner.ID] = struct{}{}
		summary.Players = append(summary.Players, domain.EndedPlayer{
			Summoner: summoner,
			Result:   *event.Payload.Result,
		})
	}
	return summary
}
