// Package memory provides an in-process repository for tests and for running
// without a database file.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type matchKey struct {
	summonerID domain.SummonerID
	matchID    string
}

type Store struct {
	mu sync.RWMutex

	now         func() time.Time
	summoners   []domain.Summoner
	activeGames []domain.ActiveGame
	matches     map[matchKey]domain.MatchRecord
	champions   map[int]string
	events      []domain.NotificationEvent

	// FailInsertActiveGame makes InsertActiveGame return err when set.
	FailInsertActiveGame error
}

var _ ports.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		now:       time.Now,
		matches:   map[matchKey]domain.MatchRecord{},
		champions: map[int]string{},
	}
}

// WithClock overrides the time source used for defaulted timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Close() error { return nil }

func (s *Store) UpsertSummoner(ctx context.Context, summoner domain.Summoner) (domain.Summoner, error) {
	if err := checkContext(ctx); err != nil {
		return domain.Summoner{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	for i := range s.summoners {
		if s.summoners[i].PUUID == summoner.PUUID {
			s.summoners[i].GameName = summoner.GameName
			s.summoners[i].TagLine = summoner.TagLine
			s.summoners[i].Region = summoner.Region
			s.summoners[i].UpdatedAt = now
			return s.summoners[i], nil
		}
	}

	if summoner.ID == "" {
		summoner.ID = domain.SummonerID(uuid.NewString())
	}
	summoner.CreatedAt = now
	summoner.UpdatedAt = now
	s.summoners = append(s.summoners, summoner)
	return summoner, nil
}

func (s *Store) GetSummonerByPUUID(ctx context.Context, puuid string) (domain.Summoner, error) {
	if err := checkContext(ctx); err != nil {
		return domain.Summoner{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, summoner := range s.summoners {
		if summoner.PUUID == puuid {
			return summoner, nil
		}
	}
	return domain.Summoner{}, domain.ErrSummonerNotFound
}

func (s *Store) ListSummoners(ctx context.Context) ([]domain.Summoner, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Summoner(nil), s.summoners...), nil
}

func (s *Store) InsertActiveGame(ctx context.Context, game domain.ActiveGame) (domain.ActiveGame, error) {
	if err := checkContext(ctx); err != nil {
		return domain.ActiveGame{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailInsertActiveGame != nil {
		return domain.ActiveGame{}, s.FailInsertActiveGame
	}

	if game.ID == "" {
		game.ID = uuid.NewString()
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = s.now().UTC()
	}
	if game.StartedAt.IsZero() {
		game.StartedAt = game.CreatedAt
	}
	s.activeGames = append(s.activeGames, game)
	return game, nil
}

func (s *Store) ListActiveGames(ctx context.Context, summonerID domain.SummonerID) ([]domain.ActiveGame, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var games []domain.ActiveGame
	for _, game := range s.activeGames {
		if game.SummonerID == summonerID {
			games = append(games, game)
		}
	}
	return games, nil
}

func (s *Store) DeleteActiveGame(ctx context.Context, summonerID domain.SummonerID, gameID int64) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.activeGames[:0]
	for _, game := range s.activeGames {
		if game.SummonerID == summonerID && game.GameID == gameID {
			continue
		}
		kept = append(kept, game)
	}
	s.activeGames = kept
	return nil
}

func (s *Store) InsertMatch(ctx context.Context, record domain.MatchRecord) (domain.MatchRecord, bool, error) {
	if err := checkContext(ctx); err != nil {
		return domain.MatchRecord{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := matchKey{summonerID: record.SummonerID, matchID: record.Result.MatchID}
	if _, ok := s.matches[key]; ok {
		return domain.MatchRecord{}, false, nil
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now().UTC()
	}
	if record.FinishedAt.IsZero() {
		record.FinishedAt = record.Result.EndedAt
	}
	if record.FinishedAt.IsZero() {
		record.FinishedAt = record.CreatedAt
	}
	s.matches[key] = record
	return record, true, nil
}

func (s *Store) GetMatch(ctx context.Context, summonerID domain.SummonerID, matchID string) (domain.MatchRecord, error) {
	if err := checkContext(ctx); err != nil {
		return domain.MatchRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.matches[matchKey{summonerID: summonerID, matchID: matchID}]
	if !ok {
		return domain.MatchRecord{}, domain.ErrMatchNotFound
	}
	return record, nil
}

func (s *Store) ListMatches(ctx context.Context, summonerID domain.SummonerID, limit int) ([]domain.MatchRecord, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []domain.MatchRecord
	for key, record := range s.matches {
		if key.summonerID == summonerID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].FinishedAt.Equal(records[j].FinishedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].FinishedAt.After(records[j].FinishedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *Store) UpsertChampion(ctx context.Context, champion domain.Champion) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.champions[champion.ID] = champion.Name
	return nil
}

func (s *Store) GetChampionName(ctx context.Context, championID int) (string, error) {
	if err := checkContext(ctx); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.champions[championID]
	if !ok {
		return "", domain.ErrChampionNotFound
	}
	return name, nil
}

func (s *Store) EnqueueEvent(ctx context.Context, event domain.NotificationEvent) (domain.NotificationEvent, error) {
	if err := checkContext(ctx); err != nil {
		return domain.NotificationEvent{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == "" {
		event.ID = ulid.Make().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.now().UTC()
	}
	event.Processed = false
	event.ProcessedAt = nil
	s.events = append(s.events, event)
	return event, nil
}

func (s *Store) ListPendingEvents(ctx context.Context) ([]domain.NotificationEvent, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []domain.NotificationEvent
	for _, event := range s.events {
		if !event.Processed {
			pending = append(pending, event)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].ID < pending[j].ID
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

func (s *Store) MarkEventsProcessed(ctx context.Context, ids []string, at time.Time) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	for i := range s.events {
		if _, ok := wanted[s.events[i].ID]; !ok || s.events[i].Processed {
			continue
		}
		processedAt := at
		s.events[i].Processed = true
		s.events[i].ProcessedAt = &processedAt
	}
	return nil
}

// Events returns every event, processed or not, in insertion order.
func (s *Store) Events() []domain.NotificationEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.NotificationEvent(nil), s.events...)
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return nil
}
