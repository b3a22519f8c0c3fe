package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/riftwatch/internal/domain"
	"github.com/google/uuid"
)

const summonerColumns = `id, puuid, game_name, tag_line, region, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// UpsertSummoner inserts a summoner or refreshes the display name and region
// of the row with the same PUUID.
func (s *Store) UpsertSummoner(ctx context.Context, summoner domain.Summoner) (domain.Summoner, error) {
	if err := ctx.Err(); err != nil {
		return domain.Summoner{}, storageErr("upsert summoner", err)
	}
	if strings.TrimSpace(summoner.PUUID) == "" {
		return domain.Summoner{}, fmt.Errorf("%w: summoner puuid is required", domain.ErrStorage)
	}

	id := string(summoner.ID)
	if id == "" {
		id = uuid.NewString()
	}
	now := s.now()

	row := s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO summoners (`+summonerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (puuid) DO UPDATE SET
		   game_name = excluded.game_name,
		   tag_line = excluded.tag_line,
		   region = excluded.region,
		   updated_at = excluded.updated_at
		 RETURNING `+summonerColumns,
		id,
		summoner.PUUID,
		summoner.GameName,
		summoner.TagLine,
		summoner.Region,
		toMillis(now),
		toMillis(now),
	)

	stored, err := scanSummoner(row)
	if err != nil {
		return domain.Summoner{}, storageErr("upsert summoner", err)
	}
	return stored, nil
}

// GetSummonerByPUUID returns the summoner with the given PUUID.
func (s *Store) GetSummonerByPUUID(ctx context.Context, puuid string) (domain.Summoner, error) {
	if err := ctx.Err(); err != nil {
		return domain.Summoner{}, storageErr("get summoner", err)
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+summonerColumns+` FROM summoners WHERE puuid = ?`, puuid)
	summoner, err := scanSummoner(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Summoner{}, domain.ErrSummonerNotFound
	}
	if err != nil {
		return domain.Summoner{}, storageErr("get summoner", err)
	}
	return summoner, nil
}

// ListSummoners returns every tracked summoner ordered by creation.
func (s *Store) ListSummoners(ctx context.Context) ([]domain.Summoner, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageErr("list summoners", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+summonerColumns+` FROM summoners ORDER BY created_at, game_name`)
	if err != nil {
		return nil, storageErr("list summoners", err)
	}
	defer rows.Close()

	var summoners []domain.Summoner
	for rows.Next() {
		summoner, err := scanSummoner(rows)
		if err != nil {
			return nil, storageErr("scan summoner", err)
		}
		summoners = append(summoners, summoner)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate summoners", err)
	}
	return summoners, nil
}

func scanSummoner(row rowScanner) (domain.Summoner, error) {
	var (
		summoner  domain.Summoner
		id        string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&id, &summoner.PUUID, &summoner.GameName, &summoner.TagLine, &summoner.Region, &createdAt, &updatedAt); err != nil {
		return domain.Summoner{}, err
	}
	summoner.ID = domain.SummonerID(id)
	summoner.CreatedAt = fromMillis(createdAt)
	summoner.UpdatedAt = fromMillis(updatedAt)
	return summoner, nil
}
