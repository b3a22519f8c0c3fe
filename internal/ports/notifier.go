package ports

import (
	"context"

	"github.com/bnema/riftwatch/internal/domain"
)

type Notifier interface {
	SendGameStarted(ctx context.Context, summary domain.StartedSummary) error
	SendGameEnded(ctx context.Context, summary domain.EndedSummary) error
}
