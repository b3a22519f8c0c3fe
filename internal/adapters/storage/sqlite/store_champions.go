package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bnema/riftwatch/internal/domain"
)

// UpsertChampion stores or renames a champion.
func (s *Store) UpsertChampion(ctx context.Context, champion domain.Champion) error {
	if err := ctx.Err(); err != nil {
		return storageErr("upsert champion", err)
	}

	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO champions (champion_id, name, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (champion_id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`,
		champion.ID,
		champion.Name,
		toMillis(s.now()),
	); err != nil {
		return storageErr("upsert champion", err)
	}
	return nil
}

// GetChampionName returns the display name of a champion id.
func (s *Store) GetChampionName(ctx context.Context, championID int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", storageErr("get champion", err)
	}

	var name string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT name FROM champions WHERE champion_id = ?`, championID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrChampionNotFound
	}
	if err != nil {
		return "", storageErr("get champion", err)
	}
	return name, nil
}
