package sqlite

import (
	"context"

	"github.com/bnema/riftwatch/internal/domain"
	"github.com/google/uuid"
)

const activeGameColumns = `id, summoner_id, game_id, champion_id, game_mode, queue_id, started_at, created_at`

// InsertActiveGame records a game a summoner is currently playing.
func (s *Store) InsertActiveGame(ctx context.Context, game domain.ActiveGame) (domain.ActiveGame, error) {
	if err := ctx.Err(); err != nil {
		return domain.ActiveGame{}, storageErr("insert active game", err)
	}

	if game.ID == "" {
		game.ID = uuid.NewString()
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = s.now()
	}
	if game.StartedAt.IsZero() {
		game.StartedAt = game.CreatedAt
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO active_games (`+activeGameColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID,
		string(game.SummonerID),
		game.GameID,
		game.ChampionID,
		game.GameMode,
		game.QueueID,
		toMillis(game.StartedAt),
		toMillis(game.CreatedAt),
	)
	if err != nil {
		return domain.ActiveGame{}, storageErr("insert active game", err)
	}

	game.StartedAt = game.StartedAt.UTC().Truncate(timeResolution)
	game.CreatedAt = game.CreatedAt.UTC().Truncate(timeResolution)
	return game, nil
}

// ListActiveGames returns the summoner's tracked games, oldest first.
func (s *Store) ListActiveGames(ctx context.Context, summonerID domain.SummonerID) ([]domain.ActiveGame, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageErr("list active games", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+activeGameColumns+` FROM active_games WHERE summoner_id = ? ORDER BY created_at, id`,
		string(summonerID),
	)
	if err != nil {
		return nil, storageErr("list active games", err)
	}
	defer rows.Close()

	var games []domain.ActiveGame
	for rows.Next() {
		var (
			game        domain.ActiveGame
			summonerCol string
			startedAt   int64
			createdAt   int64
		)
		if err := rows.Scan(&game.ID, &summonerCol, &game.GameID, &game.ChampionID, &game.GameMode, &game.QueueID, &startedAt, &createdAt); err != nil {
			return nil, storageErr("scan active game", err)
		}
		game.SummonerID = domain.SummonerID(summonerCol)
		game.StartedAt = fromMillis(startedAt)
		game.CreatedAt = fromMillis(createdAt)
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate active games", err)
	}
	return games, nil
}

// DeleteActiveGame removes the (summoner, game) row. A missing row is not an error.
func (s *Store) DeleteActiveGame(ctx context.Context, summonerID domain.SummonerID, gameID int64) error {
	if err := ctx.Err(); err != nil {
		return storageErr("delete active game", err)
	}

	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM active_games WHERE summoner_id = ? AND game_id = ?`,
		string(summonerID),
		gameID,
	); err != nil {
		return storageErr("delete active game", err)
	}
	return nil
}
