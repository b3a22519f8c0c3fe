package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cdr.dev/slog/v3"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports"
	"github.com/cenkalti/backoff/v4"
	"github.com/coder/quartz"
)

const (
	DefaultMatchFetchAttempts = 6
	DefaultMatchFetchDelay    = 10 * time.Second
	DefaultFinalizedLookback  = 2 * time.Hour
)

var errMatchPending = errors.New("match result not published yet")

type TrackerConfig struct {
	// MatchFetchAttempts is the total number of finished-match lookups,
	// including the first.
	MatchFetchAttempts int
	MatchFetchDelay    time.Duration
	// FinalizedLookback bounds how old a match discovered through history
	// may be and still be announced. Zero disables the bound.
	FinalizedLookback time.Duration
}

func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		MatchFetchAttempts: DefaultMatchFetchAttempts,
		MatchFetchDelay:    DefaultMatchFetchDelay,
		FinalizedLookback:  DefaultFinalizedLookback,
	}
}

// Tracker diffs the source's view of one summoner against persisted state
// and performs the writes each transition requires.
type Tracker struct {
	repo    ports.Repository
	source  ports.SourceClient
	clock   quartz.Clock
	log     slog.Logger
	metrics *Metrics
	cfg     TrackerConfig
}

func NewTracker(repo ports.Repository, source ports.SourceClient, clock quartz.Clock, log slog.Logger, metrics *Metrics, cfg TrackerConfig) *Tracker {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if cfg.MatchFetchAttempts < 1 {
		cfg.MatchFetchAttempts = 1
	}

	return &Tracker{
		repo:    repo,
		source:  source,
		clock:   clock,
		log:     log.Named("tracker"),
		metrics: metrics,
		cfg:     cfg,
	}
}

// Poll runs one check-and-handle cycle for summoner.
func (t *Tracker) Poll(ctx context.Context, summoner domain.Summoner) error {
	transition, err := t.CheckGameState(ctx, summoner)
	if err != nil {
		return fmt.Errorf("check game state: %w", err)
	}
	t.metrics.recordTransition(transition.Kind.String())

	switch transition.Kind {
	case domain.GameStarted:
		return t.HandleGameStarted(ctx, summoner, *transition.Game)
	case domain.GameEnded:
		_, err := t.HandleGameEnded(ctx, summoner, transition.GameID, transition.Featured)
		return err
	default:
		return nil
	}
}

// CheckGameState classifies the summoner's state. Rules apply in order:
// live without tracked is a start; live with a different tracked game ends
// the tracked one (the new game is picked up next poll); tracked without live
// is an end; neither falls back to match history.
func (t *Tracker) CheckGameState(ctx context.Context, summoner domain.Summoner) (domain.Transition, error) {
	current, err := t.source.ActiveGame(ctx, summoner)
	if err != nil {
		return domain.Transition{}, fmt.Errorf("get active game: %w", err)
	}

	tracked, err := t.repo.ListActiveGames(ctx, summoner.ID)
	if err != nil {
		return domain.Transition{}, fmt.Errorf("list active games: %w", err)
	}

	var trackedGame *domain.ActiveGame
	if len(tracked) > 0 {
		trackedGame = &tracked[0]
	}

	switch {
	case current != nil && trackedGame == nil:
		return domain.Started(*current), nil
	case current != nil && trackedGame.GameID != current.GameID:
		return domain.Ended(trackedGame.GameID, false), nil
	case current == nil && trackedGame != nil:
		return domain.Ended(trackedGame.GameID, false), nil
	case current == nil && trackedGame == nil:
		return t.checkMatchHistory(ctx, summoner)
	default:
		return domain.Transition{Kind: domain.NoChange}, nil
	}
}

// checkMatchHistory catches games the spectator endpoint never reported.
func (t *Tracker) checkMatchHistory(ctx context.Context, summoner domain.Summoner) (domain.Transition, error) {
	noChange := domain.Transition{Kind: domain.NoChange}

	matchID, err := t.source.RecentMatchID(ctx, summoner)
	if err != nil {
		return domain.Transition{}, fmt.Errorf("get recent match id: %w", err)
	}
	if matchID == "" {
		return noChange, nil
	}

	_, err = t.repo.GetMatch(ctx, summoner.ID, matchID)
	if err == nil {
		return noChange, nil
	}
	if !errors.Is(err, domain.ErrMatchNotFound) {
		return domain.Transition{}, fmt.Errorf("get match: %w", err)
	}

	gameID, err := domain.ParseMatchGameID(matchID)
	if err != nil {
		t.log.Debug(ctx, "ignoring unparsable match id",
			slog.F("summoner", summoner.RiotID()),
			slog.F("match_id", matchID),
		)
		return noChange, nil
	}

	return domain.Ended(gameID, true), nil
}

// HandleGameStarted records the active game and enqueues a started event.
// Nothing is enqueued when the insert fails.
func (t *Tracker) HandleGameStarted(ctx context.Context, summoner domain.Summoner, game domain.GameInfo) error {
	if _, err := t.repo.InsertActiveGame(ctx, domain.ActiveGame{
		SummonerID: summoner.ID,
		GameID:     game.GameID,
		ChampionID: game.ChampionID,
		GameMode:   game.GameMode,
		QueueID:    game.QueueID,
		StartedAt:  game.StartedAt,
		CreatedAt:  t.clock.Now(),
	}); err != nil {
		return fmt.Errorf("insert active game: %w", err)
	}

	championName := t.championName(ctx, game.ChampionID)
	if _, err := t.repo.EnqueueEvent(ctx, domain.NotificationEvent{
		SummonerID:     summoner.ID,
		Kind:           domain.EventGameStarted,
		CorrelationKey: domain.StartedCorrelationKey(game.GameID),
		Payload: domain.EventPayload{
			GameID:       game.GameID,
			ChampionID:   game.ChampionID,
			ChampionName: championName,
			GameMode:     game.GameMode,
			QueueID:      game.QueueID,
		},
		CreatedAt: t.clock.Now(),
	}); err != nil {
		return fmt.Errorf("enqueue game started: %w", err)
	}

	t.log.Info(ctx, "game started",
		slog.F("summoner", summoner.RiotID()),
		slog.F("game_id", game.GameID),
		slog.F("champion", championName),
		slog.F("mode", game.GameMode),
	)
	return nil
}

// HandleGameEnded clears the active game, waits for the match to be
// published, records it and enqueues an ended event. When the match never
// shows up it returns nil, nil and nothing is recorded.
func (t *Tracker) HandleGameEnded(ctx context.Context, summoner domain.Summoner, gameID int64, featured bool) (*domain.MatchResult, error) {
	if err := t.repo.DeleteActiveGame(ctx, summoner.ID, gameID); err != nil {
		return nil, fmt.Errorf("delete active game: %w", err)
	}

	matchID := domain.MatchID(summoner.Region, gameID)
	result, err := t.fetchMatchWithRetry(ctx, summoner, matchID)
	if err != nil {
		if errors.Is(err, errMatchPending) {
			t.metrics.recordMatchFetch(FetchOutcomeExhausted)
			t.log.Warn(ctx, "match result never became available",
				slog.F("summoner", summoner.RiotID()),
				slog.F("match_id", matchID),
				slog.F("attempts", t.cfg.MatchFetchAttempts),
			)
			return nil, nil
		}
		t.metrics.recordMatchFetch(FetchOutcomeError)
		return nil, fmt.Errorf("fetch match %s: %w", matchID, err)
	}
	t.metrics.recordMatchFetch(FetchOutcomeFound)

	now := t.clock.Now()
	_, inserted, err := t.repo.InsertMatch(ctx, domain.MatchRecord{
		SummonerID: summoner.ID,
		Result:     *result,
		FinishedAt: result.EndedAt,
		CreatedAt:  now,
	})
	switch {
	case err != nil:
		t.log.Error(ctx, "record match", slog.F("match_id", result.MatchID), slog.Error(err))
	case !inserted:
		t.log.Debug(ctx, "match already recorded", slog.F("match_id", result.MatchID))
	}

	if featured && t.cfg.FinalizedLookback > 0 && !result.EndedAt.IsZero() && now.Sub(result.EndedAt) > t.cfg.FinalizedLookback {
		t.log.Info(ctx, "skipping notification for old match",
			slog.F("summoner", summoner.RiotID()),
			slog.F("match_id", result.MatchID),
			slog.F("ended_at", result.EndedAt),
		)
		return result, nil
	}

	if _, err := t.repo.EnqueueEvent(ctx, domain.NotificationEvent{
		SummonerID:     summoner.ID,
		Kind:           domain.EventGameEnded,
		CorrelationKey: domain.EndedCorrelationKey(result.MatchID),
		Payload: domain.EventPayload{
			GameID:       result.GameID,
			ChampionID:   result.ChampionID,
			ChampionName: result.ChampionName,
			GameMode:     result.GameMode,
			QueueID:      result.QueueID,
			Featured:     featured,
			Result:       result,
		},
		CreatedAt: now,
	}); err != nil {
		return result, fmt.Errorf("enqueue game ended: %w", err)
	}

	t.log.Info(ctx, "game ended",
		slog.F("summoner", summoner.RiotID()),
		slog.F("match_id", result.MatchID),
		slog.F("win", result.Win),
		slog.F("kda", result.KDA()),
	)
	return result, nil
}

func (t *Tracker) fetchMatchWithRetry(ctx context.Context, summoner domain.Summoner, matchID string) (*domain.MatchResult, error) {
	var result *domain.MatchResult
	operation := func() error {
		r, err := t.source.MatchResult(ctx, matchID, summoner)
		if err != nil {
			return backoff.Permanent(err)
		}
		if r == nil {
			return errMatchPending
		}
		result = r
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(t.cfg.MatchFetchDelay), uint64(t.cfg.MatchFetchAttempts-1)),
		ctx,
	)
	notify := func(err error, next time.Duration) {
		t.log.Debug(ctx, "match result pending", slog.F("match_id", matchID), slog.F("retry_in", next))
	}

	if err := backoff.RetryNotifyWithTimer(operation, policy, notify, &clockTimer{clock: t.clock}); err != nil {
		return nil, err
	}
	return result, nil
}

func (t *Tracker) championName(ctx context.Context, championID int) string {
	name, err := t.repo.GetChampionName(ctx, championID)
	if err == nil {
		return name
	}
	if !errors.Is(err, domain.ErrChampionNotFound) {
		t.log.Warn(ctx, "lookup champion name", slog.F("champion_id", championID), slog.Error(err))
	}
	return fmt.Sprintf("Champion #%d", championID)
}

// clockTimer drives backoff waits from a quartz clock.
type clockTimer struct {
	clock quartz.Clock
	timer *quartz.Timer
}

func (c *clockTimer) Start(d time.Duration) {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.clock.NewTimer(d, "tracker", "match_fetch")
}

func (c *clockTimer) Stop() {
	if c.timer != nil {
		c.timer.Stop()
	}
}

func (c *clockTimer) C() <-chan time.Time {
	return c.timer.C
}
