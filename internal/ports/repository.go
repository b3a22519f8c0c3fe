package ports

import (
	"context"
	"time"

	"github.com/bnema/riftwatch/internal/domain"
)

type SummonerRepository interface {
	// UpsertSummoner inserts or refreshes a summoner keyed by PUUID and
	// returns the stored row.
	UpsertSummoner(ctx context.Context, summoner domain.Summoner) (domain.Summoner, error)
	GetSummonerByPUUID(ctx context.Context, puuid string) (domain.Summoner, error)
	ListSummoners(ctx context.Context) ([]domain.Summoner, error)
}

type ActiveGameRepository interface {
	InsertActiveGame(ctx context.Context, game domain.ActiveGame) (domain.ActiveGame, error)
	ListActiveGames(ctx context.Context, summonerID domain.SummonerID) ([]domain.ActiveGame, error)
	// DeleteActiveGame succeeds when no row matches.
	DeleteActiveGame(ctx context.Context, summonerID domain.SummonerID, gameID int64) error
}

type MatchRepository interface {
	// InsertMatch reports inserted=false without error when the
	// (summoner, match id) pair is already recorded.
	InsertMatch(ctx context.Context, record domain.MatchRecord) (domain.MatchRecord, bool, error)
	GetMatch(ctx context.Context, summonerID domain.SummonerID, matchID string) (domain.MatchRecord, error)
	ListMatches(ctx context.Context, summonerID domain.SummonerID, limit int) ([]domain.MatchRecord, error)
}

type ChampionRepository interface {
	UpsertChampion(ctx context.Context, champion domain.Champion) error
	GetChampionName(ctx context.Context, championID int) (string, error)
}

type NotificationQueue interface {
	EnqueueEvent(ctx context.Context, event domain.NotificationEvent) (domain.NotificationEvent, error)
	// ListPendingEvents returns unprocessed events oldest first.
	ListPendingEvents(ctx context.Context) ([]domain.NotificationEvent, error)
	// MarkEventsProcessed flips every id in one transaction.
	MarkEventsProcessed(ctx context.Context, ids []string, at time.Time) error
}

type Repository interface {
	SummonerRepository
	ActiveGameRepository
	MatchRepository
	ChampionRepository
	NotificationQueue
	Close() error
}
