package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/bnema/riftwatch/internal/domain"
	"github.com/google/uuid"
)

const matchColumns = `id, summoner_id, result_json, finished_at, created_at`

// InsertMatch records a finished match. A second insert for the same
// (summoner, match id) leaves the first row untouched and reports
// inserted=false.
func (s *Store) InsertMatch(ctx context.Context, record domain.MatchRecord) (domain.MatchRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.MatchRecord{}, false, storageErr("insert match", err)
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now()
	}
	if record.FinishedAt.IsZero() {
		record.FinishedAt = record.Result.EndedAt
	}
	if record.FinishedAt.IsZero() {
		record.FinishedAt = record.CreatedAt
	}

	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return domain.MatchRecord{}, false, storageErr("encode match result", err)
	}

	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO match_history (
		   id, summoner_id, match_id, game_id, win, champion_name, queue_id, result_json, finished_at, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (summoner_id, match_id) DO NOTHING`,
		record.ID,
		string(record.SummonerID),
		record.Result.MatchID,
		record.Result.GameID,
		boolToInt(record.Result.Win),
		record.Result.ChampionName,
		record.Result.QueueID,
		string(resultJSON),
		toMillis(record.FinishedAt),
		toMillis(record.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.MatchRecord{}, false, nil
		}
		return domain.MatchRecord{}, false, storageErr("insert match", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.MatchRecord{}, false, storageErr("insert match rows affected", err)
	}
	if affected == 0 {
		return domain.MatchRecord{}, false, nil
	}

	record.FinishedAt = record.FinishedAt.UTC().Truncate(timeResolution)
	record.CreatedAt = record.CreatedAt.UTC().Truncate(timeResolution)
	return record, true, nil
}

// GetMatch returns the summoner's record for matchID.
func (s *Store) GetMatch(ctx context.Context, summonerID domain.SummonerID, matchID string) (domain.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.MatchRecord{}, storageErr("get match", err)
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM match_history WHERE summoner_id = ? AND match_id = ?`,
		string(summonerID),
		matchID,
	)
	record, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MatchRecord{}, domain.ErrMatchNotFound
	}
	if err != nil {
		return domain.MatchRecord{}, storageErr("get match", err)
	}
	return record, nil
}

// ListMatches returns the summoner's most recent matches, newest first.
func (s *Store) ListMatches(ctx context.Context, summonerID domain.SummonerID, limit int) ([]domain.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageErr("list matches", err)
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM match_history WHERE summoner_id = ? ORDER BY finished_at DESC, id LIMIT ?`,
		string(summonerID),
		limit,
	)
	if err != nil {
		return nil, storageErr("list matches", err)
	}
	defer rows.Close()

	var records []domain.MatchRecord
	for rows.Next() {
		record, err := scanMatch(rows)
		if err != nil {
			return nil, storageErr("scan match", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate matches", err)
	}
	return records, nil
}

func scanMatch(row rowScanner) (domain.MatchRecord, error) {
	var (
		record     domain.MatchRecord
		summonerID string
		resultJSON string
		finishedAt int64
		createdAt  int64
	)
	if err := row.Scan(&record.ID, &summonerID, &resultJSON, &finishedAt, &createdAt); err != nil {
		return domain.MatchRecord{}, err
	}
	if err := json.Unmarshal([]byte(resultJSON), &record.Result); err != nil {
		return domain.MatchRecord{}, err
	}
	record.SummonerID = domain.SummonerID(summonerID)
	record.FinishedAt = fromMillis(finishedAt)
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}
