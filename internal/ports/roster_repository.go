package ports

import (
	"context"

	"github.com/bnema/riftwatch/internal/domain"
)

type RosterRepository interface {
	List(ctx context.Context) ([]domain.RosterEntry, error)
	// Add replaces an entry with the same Riot ID.
	Add(ctx context.Context, entry domain.RosterEntry) error
	Remove(ctx context.Context, gameName, tagLine string) error
}
