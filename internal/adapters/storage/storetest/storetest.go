// Package storetest holds behaviour checks shared by every ports.Repository
// implementation.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises repo through the full tracker lifecycle. open must return an
// empty repository.
func Run(t *testing.T, open func(t *testing.T) ports.Repository) {
	t.Helper()

	t.Run("SummonerUpsertIsKeyedByPUUID", func(t *testing.T) {
		repo := open(t)
		ctx := context.Background()

		first, err := repo.UpsertSummoner(ctx, domain.Summoner{PUUID: "puuid-1", GameName: "Faker", TagLine: "KR1", Region: "kr"})
		require.NoError(t, err)
		require.NotEmpty(t, first.ID)

		renamed, err := repo.UpsertSummoner(ctx, domain.Summoner{PUUID: "puuid-1", GameName: "Hide on bush", TagLine: "KR1", Region: "kr"})
		require.NoError(t, err)
		assert.Equal(t, first.ID, renamed.ID)
		assert.Equal(t, "Hide on bush", renamed.GameName)

		got, err := repo.GetSummonerByPUUID(ctx, "puuid-1")
		require.NoError(t, err)
		assert.Equal(t, "Hide on bush", got.GameName)

		_, err = repo.GetSummonerByPUUID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrSummonerNotFound)

		summoners, err := repo.ListSummoners(ctx)
		require.NoError(t, err)
		assert.Len(t, summoners, 1)
	})

	t.Run("ActiveGameInsertListDelete", func(t *testing.T) {
		repo := open(t)
		ctx := context.Background()
		summoner := seedSummoner(t, repo, "puuid-1")

		startedAt := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
		_, err := repo.InsertActiveGame(ctx, domain.ActiveGame{
			SummonerID: summoner.ID,
			GameID:     101,
			ChampionID: 157,
			GameMode:   "CLASSIC",
			QueueID:    420,
			StartedAt:  startedAt,
		})
		require.NoError(t, err)

		games, err := repo.ListActiveGames(ctx, summoner.ID)
		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, int64(101), games[0].GameID)
		assert.Equal(t, 157, games[0].ChampionID)
		assert.Equal(t, 420, games[0].QueueID)
		assert.True(t, startedAt.Equal(games[0].StartedAt))

		require.NoError(t, repo.DeleteActiveGame(ctx, summoner.ID, 101))
		require.NoError(t, repo.DeleteActiveGame(ctx, summoner.ID, 101), "deleting an absent game succeeds")

		games, err = repo.ListActiveGames(ctx, summoner.ID)
		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("MatchInsertIsIdempotent", func(t *testing.T) {
		repo := open(t)
		ctx := context.Background()
		summoner := seedSummoner(t, repo, "puuid-1")

		result := domain.MatchResult{
			MatchID:      "EUW1_101",
			GameID:       101,
			Win:          true,
			Kills:        7,
			Deaths:       2,
			Assists:      9,
			ChampionName: "Yasuo",
			EndedAt:      time.Date(2026, 3, 1, 20, 30, 0, 0, time.UTC),
			Opponent:     &domain.LaneOpponent{ChampionName: "Yone", TotalCS: 180},
		}

		_, inserted, err := repo.InsertMatch(ctx, domain.MatchRecord{SummonerID: summoner.ID, Result: result})
		require.NoError(t, err)
		assert.True(t, inserted)

		_, inserted, err = repo.InsertMatch(ctx, domain.MatchRecord{SummonerID: summoner.ID, Result: result})
		require.NoError(t, err)
		assert.False(t, inserted)

		got, err := repo.GetMatch(ctx, summoner.ID, "EUW1_101")
		require.NoError(t, err)
		assert.Equal(t, result, got.Result)

		_, err = repo.GetMatch(ctx, summoner.ID, "EUW1_999")
		require.ErrorIs(t, err, domain.ErrMatchNotFound)

		records, err := repo.ListMatches(ctx, summoner.ID, 10)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("ListMatchesNewestFirst", func(t *testing.T) {
		repo := open(t)
		ctx := context.Background()
		summoner := seedSummoner(t, repo, "puuid-1")

		base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
		for i, matchID := range []string{"EUW1_1", "EUW1_2", "EUW1_3"} {
			_, _, err := repo.InsertMatch(ctx, domain.MatchRecord{
				SummonerID: summoner.ID,
				Result:     domain.MatchResult{MatchID: matchID, EndedAt: base.Add(time.Duration(i) * time.Hour)},
			})
			require.NoError(t, err)
		}

		records, err := repo.ListMatches(ctx, summoner.ID, 2)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "EUW1_3", records[0].Result.MatchID)
		assert.Equal(t, "EUW1_2", records[1].Result.MatchID)
	})

	t.Run("ChampionUpsertAndLookup", func(t *testing.T) {
		repo := open(t)
		ctx := context.Background()

		require.NoError(t, repo.UpsertChampion(ctx, domain.Champion{ID: 157, Name: "Yasuo"}))
		require.NoError(t, repo.UpsertChampion(ctx, domain.Champion{ID: 157, Name: "Yasuo the Unforgiven"}))

		name, err := repo.GetChampionName(ctx, 157)
		require.NoError(t, err)
		assert.Equal(t, "Yasuo the Unforgiven", name)

		_, err = repo.GetChampionName(ctx, 1)
		require.ErrorIs(t, err, domain.ErrChampionNotFound)
	})

	t.Run("QueueOrdersAndMarksProcessed", func(t *testing.T) {
		repo := open(t)
		ctx := context.Background()
		summoner := seedSummoner(t, repo, "puuid-1")

		base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
		late, err := repo.EnqueueEvent(ctx, domain.NotificationEvent{
			SummonerID:     summoner.ID,
			Kind:           domain.EventGameEnded,
			CorrelationKey: "EUW1_101",
			Payload: domain.EventPayload{
				GameID: 101,
				Result: &domain.MatchResult{MatchID: "EUW1_101", Win: true, EndedAt: base},
			},
			CreatedAt: base.Add(time.Minute),
		})
		require.NoError(t, err)
		require.NotEmpty(t, late.ID)

		early, err := repo.EnqueueEvent(ctx, domain.NotificationEvent{
			SummonerID:     summoner.ID,
			Kind:           domain.EventGameStarted,
			CorrelationKey: "101",
			Payload:        domain.EventPayload{GameID: 101, ChampionName: "Yasuo"},
			CreatedAt:      base,
		})
		require.NoError(t, err)

		pending, err := repo.ListPendingEvents(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, early.ID, pending[0].ID)
		assert.Equal(t, late.ID, pending[1].ID)
		assert.Equal(t, "Yasuo", pending[0].Payload.ChampionName)
		require.NotNil(t, pending[1].Payload.Result)
		assert.True(t, pending[1].Payload.Result.Win)

		processedAt := base.Add(2 * time.Minute)
		require.NoError(t, repo.MarkEventsProcessed(ctx, []string{early.ID}, processedAt))

		pending, err = repo.ListPendingEvents(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, late.ID, pending[0].ID)

		require.NoError(t, repo.MarkEventsProcessed(ctx, nil, processedAt))
		require.NoError(t, repo.MarkEventsProcessed(ctx, []string{late.ID, "unknown"}, processedAt))

		pending, err = repo.ListPendingEvents(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		repo := open(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, listErr := repo.ListSummoners(ctx)
		_, insertErr := repo.InsertActiveGame(ctx, domain.ActiveGame{SummonerID: "s-1", GameID: 1})
		_, _, matchErr := repo.InsertMatch(ctx, domain.MatchRecord{SummonerID: "s-1", Result: domain.MatchResult{MatchID: "EUW1_1"}})
		_, enqueueErr := repo.EnqueueEvent(ctx, domain.NotificationEvent{SummonerID: "s-1", Kind: domain.EventGameStarted})
		markErr := repo.MarkEventsProcessed(ctx, []string{"e-1"}, time.Now())

		for _, err := range []error{listErr, insertErr, matchErr, enqueueErr, markErr} {
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrStorage), "%v is not a storage error", err)
			assert.True(t, errors.Is(err, context.Canceled), "%v does not wrap the context error", err)
		}
	})
}

func seedSummoner(t *testing.T, repo ports.Repository, puuid string) domain.Summoner {
	t.Helper()

	summoner, err := repo.UpsertSummoner(context.Background(), domain.Summoner{
		PUUID:    puuid,
		GameName: "Player " + puuid,
		TagLine:  "EUW",
		Region:   "euw1",
	})
	require.NoError(t, err)
	return summoner
}
