package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/riftwatch/internal/adapters/storage/memory"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports/mocks"
	"github.com/coder/quartz"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	trackerEpoch = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	faker        = domain.Summoner{ID: "s-1", PUUID: "puuid-1", GameName: "Faker", TagLine: "KR1", Region: "euw1"}
)

type trackerFixture struct {
	tracker *Tracker
	source  *mocks.MockSourceClient
	store   *memory.Store
	clock   *quartz.Mock
	metrics *Metrics
}

func newTrackerFixture(t *testing.T, cfg TrackerConfig) trackerFixture {
	t.Helper()

	clock := quartz.NewMock(t)
	clock.Set(trackerEpoch)
	store := memory.New().WithClock(func() time.Time { return clock.Now() })
	source := mocks.NewMockSourceClient(t)
	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	return trackerFixture{
		tracker: NewTracker(store, source, clock, testLogger(t), metrics, cfg),
		source:  source,
		store:   store,
		clock:   clock,
		metrics: metrics,
	}
}

func matchesFor(t *testing.T, f trackerFixture) []domain.MatchRecord {
	t.Helper()
	records, err := f.store.ListMatches(context.Background(), faker.ID, 0)
	require.NoError(t, err)
	return records
}

func TestCheckGameState(t *testing.T) {
	live := &domain.GameInfo{GameID: 100, ChampionID: 157, GameMode: "CLASSIC", QueueID: 420}

	tests := []struct {
		name      string
		current   *domain.GameInfo
		tracked   []int64
		recentID  string
		recorded  bool
		want      domain.Transition
		noHistory bool
	}{
		{
			name:      "live game without tracked game starts",
			current:   live,
			want:      domain.Started(*live),
			noHistory: true,
		},
		{
			name:      "same game is no change",
			current:   live,
			tracked:   []int64{100},
			want:      domain.Transition{Kind: domain.NoChange},
			noHistory: true,
		},
		{
			name:      "different live game ends the tracked one",
			current:   live,
			tracked:   []int64{99},
			want:      domain.Ended(99, false),
			noHistory: true,
		},
		{
			name:      "tracked game without live game ends",
			tracked:   []int64{99},
			want:      domain.Ended(99, false),
			noHistory: true,
		},
		{
			name:     "unrecorded history match ends as featured",
			recentID: "EUW1_7001",
			want:     domain.Ended(7001, true),
		},
		{
			name:     "recorded history match is no change",
			recentID: "EUW1_7001",
			recorded: true,
			want:     domain.Transition{Kind: domain.NoChange},
		},
		{
			name: "empty history is no change",
			want: domain.Transition{Kind: domain.NoChange},
		},
		{
			name:     "unparsable history match is no change",
			recentID: "EUW1_abc",
			want:     domain.Transition{Kind: domain.NoChange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTrackerFixture(t, DefaultTrackerConfig())
			ctx := context.Background()

			for _, gameID := range tt.tracked {
				_, err := f.store.InsertActiveGame(ctx, domain.ActiveGame{SummonerID: faker.ID, GameID: gameID})
				require.NoError(t, err)
			}
			if tt.recorded {
				_, _, err := f.store.InsertMatch(ctx, domain.MatchRecord{SummonerID: faker.ID, Result: domain.MatchResult{MatchID: tt.recentID}})
				require.NoError(t, err)
			}

			f.source.EXPECT().ActiveGame(mockAnyContext(), faker).Return(tt.current, nil)
			if !tt.noHistory {
				f.source.EXPECT().RecentMatchID(mockAnyContext(), faker).Return(tt.recentID, nil)
			}

			got, err := f.tracker.CheckGameState(ctx, faker)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckGameStateSourceError(t *testing.T) {
	f := newTrackerFixture(t, DefaultTrackerConfig())
	f.source.EXPECT().ActiveGame(mockAnyContext(), faker).Return(nil, domain.ErrSource)

	_, err := f.tracker.CheckGameState(context.Background(), faker)
	require.ErrorIs(t, err, domain.ErrSource)
}

func TestHandleGameStartedRecordsAndEnqueues(t *testing.T) {
	f := newTrackerFixture(t, DefaultTrackerConfig())
	ctx := context.Background()
	require.NoError(t, f.store.UpsertChampion(ctx, domain.Champion{ID: 157, Name: "Yasuo"}))

	game := domain.GameInfo{GameID: 100, ChampionID: 157, GameMode: "CLASSIC", QueueID: 420, StartedAt: trackerEpoch.Add(-time.Minute)}
	require.NoError(t, f.tracker.HandleGameStarted(ctx, faker, game))

	games, err := f.store.ListActiveGames(ctx, faker.ID)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, int64(100), games[0].GameID)
	assert.Equal(t, trackerEpoch, games[0].CreatedAt)

	events := f.store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventGameStarted, events[0].Kind)
	assert.Equal(t, domain.StartedCorrelationKey(100), events[0].CorrelationKey)
	assert.Equal(t, "Yasuo", events[0].Payload.ChampionName)
	assert.Equal(t, 420, events[0].Payload.QueueID)
}

func TestHandleGameStartedUnknownChampion(t *testing.T) {
	f := newTrackerFixture(t, DefaultTrackerConfig())

	require.NoError(t, f.tracker.HandleGameStarted(context.Background(), faker, domain.GameInfo{GameID: 100, ChampionID: 999}))

	events := f.store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "Champion #999", events[0].Payload.ChampionName)
}

func TestHandleGameStartedInsertFailureEnqueuesNothing(t *testing.T) {
	f := newTrackerFixture(t, DefaultTrackerConfig())
	f.store.FailInsertActiveGame = domain.ErrStorage

	err := f.tracker.HandleGameStarted(context.Background(), faker, domain.GameInfo{GameID: 100})
	require.ErrorIs(t, err, domain.ErrStorage)
	assert.Empty(t, f.store.Events())
}

func TestHandleGameEndedRetriesUntilPublished(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := TrackerConfig{MatchFetchAttempts: 3, MatchFetchDelay: 10 * time.Second}
	f := newTrackerFixture(t, cfg)
	_, err := f.store.InsertActiveGame(ctx, domain.ActiveGame{SummonerID: faker.ID, GameID: 100})
	require.NoError(t, err)

	result := &domain.MatchResult{MatchID: "EUW1_100", GameID: 100, Win: true, ChampionName: "Yasuo", EndedAt: trackerEpoch}
	f.source.EXPECT().MatchResult(mockAnyContext(), "EUW1_100", faker).Return(nil, nil).Times(2)
	f.source.EXPECT().MatchResult(mockAnyContext(), "EUW1_100", faker).Return(result, nil).Once()

	trap := f.clock.Trap().NewTimer("tracker", "match_fetch")
	defer trap.Close()

	type outcome struct {
		result *domain.MatchResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := f.tracker.HandleGameEnded(ctx, faker, 100, false)
		done <- outcome{r, err}
	}()

	for range 2 {
		call := trap.MustWait(ctx)
		assert.Equal(t, 10*time.Second, call.Duration)
		call.MustRelease(ctx)
		f.clock.Advance(call.Duration).MustWait(ctx)
	}

	got := <-done
	require.NoError(t, got.err)
	assert.Equal(t, result, got.result)

	games, err := f.store.ListActiveGames(ctx, faker.ID)
	require.NoError(t, err)
	assert.Empty(t, games)

	require.Len(t, matchesFor(t, f), 1)
	events := f.store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventGameEnded, events[0].Kind)
	assert.Equal(t, "EUW1_100", events[0].CorrelationKey)
	require.NotNil(t, events[0].Payload.Result)
	assert.True(t, events[0].Payload.Result.Win)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.matchFetches.WithLabelValues(FetchOutcomeFound)))
}

func TestHandleGameEndedExhaustedRecordsNothing(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	f := newTrackerFixture(t, TrackerConfig{MatchFetchAttempts: 3, MatchFetchDelay: time.Second})
	f.source.EXPECT().MatchResult(mockAnyContext(), "EUW1_100", faker).Return(nil, nil).Times(3)

	trap := f.clock.Trap().NewTimer("tracker", "match_fetch")
	defer trap.Close()

	type outcome struct {
		result *domain.MatchResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := f.tracker.HandleGameEnded(ctx, faker, 100, false)
		done <- outcome{r, err}
	}()

	for range 2 {
		call := trap.MustWait(ctx)
		call.MustRelease(ctx)
		f.clock.Advance(call.Duration).MustWait(ctx)
	}

	got := <-done
	require.NoError(t, got.err)
	assert.Nil(t, got.result)
	assert.Empty(t, matchesFor(t, f))
	assert.Empty(t, f.store.Events())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.matchFetches.WithLabelValues(FetchOutcomeExhausted)))
}

func TestHandleGameEndedSourceErrorStopsRetrying(t *testing.T) {
	f := newTrackerFixture(t, TrackerConfig{MatchFetchAttempts: 5, MatchFetchDelay: time.Second})
	f.source.EXPECT().MatchResult(mockAnyContext(), "EUW1_100", faker).Return(nil, domain.ErrSource).Once()

	result, err := f.tracker.HandleGameEnded(context.Background(), faker, 100, false)
	require.ErrorIs(t, err, domain.ErrSource)
	assert.Nil(t, result)
	assert.Empty(t, f.store.Events())
}

func TestHandleGameEndedDuplicateRecordStillNotifies(t *testing.T) {
	ctx := context.Background()
	f := newTrackerFixture(t, TrackerConfig{MatchFetchAttempts: 1})

	result := &domain.MatchResult{MatchID: "EUW1_100", GameID: 100, EndedAt: trackerEpoch}
	_, _, err := f.store.InsertMatch(ctx, domain.MatchRecord{SummonerID: faker.ID, Result: *result})
	require.NoError(t, err)
	f.source.EXPECT().MatchResult(mockAnyContext(), "EUW1_100", faker).Return(result, nil)

	got, err := f.tracker.HandleGameEnded(ctx, faker, 100, false)
	require.NoError(t, err)
	assert.Equal(t, result, got)
	assert.Len(t, matchesFor(t, f), 1)
	assert.Len(t, f.store.Events(), 1)
}

func TestHandleGameEndedOldFeaturedMatchIsNotAnnounced(t *testing.T) {
	ctx := context.Background()
	f := newTrackerFixture(t, TrackerConfig{MatchFetchAttempts: 1, FinalizedLookback: 2 * time.Hour})

	result := &domain.MatchResult{MatchID: "EUW1_7001", GameID: 7001, EndedAt: trackerEpoch.Add(-3 * time.Hour)}
	f.source.EXPECT().MatchResult(mockAnyContext(), "EUW1_7001", faker).Return(result, nil)

	got, err := f.tracker.HandleGameEnded(ctx, faker, 7001, true)
	require.NoError(t, err)
	assert.Equal(t, result, got)
	assert.Len(t, matchesFor(t, f), 1)
	assert.Empty(t, f.store.Events())
}

func TestHandleGameEndedRecentFeaturedMatchIsAnnounced(t *testing.T) {
	ctx := context.Background()
	f := newTrackerFixture(t, TrackerConfig{MatchFetchAttempts: 1, FinalizedLookback: 2 * time.Hour})

	result := &domain.MatchResult{MatchID: "EUW1_7001", GameID: 7001, GameMode: "CHERRY", EndedAt: trackerEpoch.Add(-10 * time.Minute)}
	f.source.EXPECT().MatchResult(mockAnyContext(), "EUW1_7001", faker).Return(result, nil)

	_, err := f.tracker.HandleGameEnded(ctx, faker, 7001, true)
	require.NoError(t, err)

	events := f.store.Events()
	require.Len(t, events, 1)
	assert.True(t, events[0].Payload.Featured)
}

func TestPollStartThenEnd(t *testing.T) {
	ctx := context.Background()
	f := newTrackerFixture(t, TrackerConfig{MatchFetchAttempts: 1})
	game := &domain.GameInfo{GameID: 100, ChampionID: 157, GameMode: "ARAM", QueueID: 450}
	result := &domain.MatchResult{MatchID: "EUW1_100", GameID: 100, GameMode: "ARAM", QueueID: 450, EndedAt: trackerEpoch}

	f.source.EXPECT().ActiveGame(mockAnyContext(), faker).Return(game, nil).Twice()
	require.NoError(t, f.tracker.Poll(ctx, faker))
	require.NoError(t, f.tracker.Poll(ctx, faker))
	require.Len(t, f.store.Events(), 1)

	f.source.EXPECT().ActiveGame(mockAnyContext(), faker).Return(nil, nil).Once()
	f.source.EXPECT().MatchResult(mockAnyContext(), "EUW1_100", faker).Return(result, nil).Once()
	require.NoError(t, f.tracker.Poll(ctx, faker))

	events := f.store.Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventGameEnded, events[1].Kind)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.transitions.WithLabelValues("started")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.transitions.WithLabelValues("ended")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.transitions.WithLabelValues("no_change")))
}

func TestPollWrapsErrors(t *testing.T) {
	f := newTrackerFixture(t, DefaultTrackerConfig())
	f.source.EXPECT().ActiveGame(mockAnyContext(), faker).Return(nil, errors.New("boom"))

	err := f.tracker.Poll(context.Background(), faker)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check game state")
}

func activeGameCount(t *testing.T, f trackerFixture) int {
	t.Helper()
	games, err := f.store.ListActiveGames(context.Background(), faker.ID)
	require.NoError(t, err)
	return len(games)
}

func TestPollSwitchingGamesKeepsOneActiveGame(t *testing.T) {
	ctx := context.Background()
	f := newTrackerFixture(t, TrackerConfig{MatchFetchAttempts: 1})
	first := &domain.GameInfo{GameID: 100, ChampionID: 157, GameMode: "CLASSIC", QueueID: 420}
	second := &domain.GameInfo{GameID: 200, ChampionID: 103, GameMode: "CLASSIC", QueueID: 420}
	firstResult := &domain.MatchResult{MatchID: "EUW1_100", GameID: 100, GameMode: "CLASSIC", QueueID: 420, EndedAt: trackerEpoch}

	f.source.EXPECT().ActiveGame(mockAnyContext(), faker).Return(first, nil).Once()
	f.source.EXPECT().ActiveGame(mockAnyContext(), faker).Return(second, nil).Twice()
	f.source.EXPECT().ActiveGame(mockAnyContext(), faker).Return(nil, nil).Once()
	f.source.EXPECT().MatchResult(mockAnyContext(), "EUW1_100", faker).Return(firstResult, nil).Once()
	f.source.EXPECT().MatchResult(mockAnyContext(), "EUW1_200", faker).Return(nil, nil).Once()

	var counts []int
	for range 4 {
		require.NoError(t, f.tracker.Poll(ctx, faker))
		count := activeGameCount(t, f)
		require.LessOrEqual(t, count, 1)
		counts = append(counts, count)
	}
	assert.Equal(t, []int{1, 0, 1, 0}, counts)

	events := f.store.Events()
	require.Len(t, events, 3)
	assert.Equal(t, domain.StartedCorrelationKey(100), events[0].CorrelationKey)
	assert.Equal(t, domain.EndedCorrelationKey("EUW1_100"), events[1].CorrelationKey)
	assert.Equal(t, domain.StartedCorrelationKey(200), events[2].CorrelationKey)

	records := matchesFor(t, f)
	require.Len(t, records, 1)
	assert.Equal(t, "EUW1_100", records[0].Result.MatchID)
}

func TestPollFirstTrackedGameIsAuthoritative(t *testing.T) {
	ctx := context.Background()
	f := newTrackerFixture(t, TrackerConfig{MatchFetchAttempts: 1})
	for _, gameID := range []int64{100, 200} {
		_, err := f.store.InsertActiveGame(ctx, domain.ActiveGame{SummonerID: faker.ID, GameID: gameID})
		require.NoError(t, err)
	}

	f.source.EXPECT().ActiveGame(mockAnyContext(), faker).Return(&domain.GameInfo{GameID: 200}, nil).Once()
	transition, err := f.tracker.CheckGameState(ctx, faker)
	require.NoError(t, err)
	assert.Equal(t, domain.Ended(100, false), transition)

	f.source.EXPECT().ActiveGame(mockAnyContext(), faker).Return(nil, nil).Twice()
	f.source.EXPECT().MatchResult(mockAnyContext(), "EUW1_100", faker).
		Return(&domain.MatchResult{MatchID: "EUW1_100", GameID: 100, EndedAt: trackerEpoch}, nil).Once()
	f.source.EXPECT().MatchResult(mockAnyContext(), "EUW1_200", faker).
		Return(&domain.MatchResult{MatchID: "EUW1_200", GameID: 200, EndedAt: trackerEpoch}, nil).Once()

	require.NoError(t, f.tracker.Poll(ctx, faker))
	games, err := f.store.ListActiveGames(ctx, faker.ID)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, int64(200), games[0].GameID)

	require.NoError(t, f.tracker.Poll(ctx, faker))
	assert.Zero(t, activeGameCount(t, f))

	events := f.store.Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EndedCorrelationKey("EUW1_100"), events[0].CorrelationKey)
	assert.Equal(t, domain.EndedCorrelationKey("EUW1_200"), events[1].CorrelationKey)
}
