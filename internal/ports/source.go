package ports

import (
	"context"

	"github.com/bnema/riftwatch/internal/domain"
)

// SourceClient reads game state from the upstream API. Not-found results are
// nil or empty, never an error.
type SourceClient interface {
	ActiveGame(ctx context.Context, summoner domain.Summoner) (*domain.GameInfo, error)
	MatchResult(ctx context.Context, matchID string, summoner domain.Summoner) (*domain.MatchResult, error)
	RecentMatchID(ctx context.Context, summoner domain.Summoner) (string, error)
}

// Account is the identity returned by the account API for a Riot ID.
type Account struct {
	PUUID    string
	GameName string
	TagLine  string
}

type AccountResolver interface {
	AccountByRiotID(ctx context.Context, gameName, tagLine, region string) (Account, error)
}

type ChampionCatalog interface {
	Champions(ctx context.Context) ([]domain.Champion, error)
}
