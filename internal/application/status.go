package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports"
)

const recentMatchWindow = 10

// SummonerStatus is what the status views show for one tracked summoner.
type SummonerStatus struct {
	Summoner   domain.Summoner
	ActiveGame *domain.ActiveGame
	LastMatch  *domain.MatchRecord
	// RecentWins and RecentLosses cover the last recorded matches, newest
	// first, up to ten.
	RecentWins   int
	RecentLosses int
}

// StatusService answers read-only questions about tracked state.
type StatusService struct {
	repo ports.Repository
}

func NewStatusService(repo ports.Repository) *StatusService {
	return &StatusService{repo: repo}
}

// Summoners lists every tracked summoner sorted by Riot ID.
func (s *StatusService) Summoners(ctx context.Context) ([]SummonerStatus, error) {
	summoners, err := s.repo.ListSummoners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list summoners: %w", err)
	}
	sort.Slice(summoners, func(i, j int) bool {
		return strings.ToLower(summoners[i].RiotID()) < strings.ToLower(summoners[j].RiotID())
	})

	statuses := make([]SummonerStatus, 0, len(summoners))
	for _, summoner := range summoners {
		status := SummonerStatus{Summoner: summoner}

		games, err := s.repo.ListActiveGames(ctx, summoner.ID)
		if err != nil {
			return nil, fmt.Errorf("list active games for %s: %w", summoner.RiotID(), err)
		}
		if len(games) > 0 {
			game := games[0]
			status.ActiveGame = &game
		}

		matches, err := s.repo.ListMatches(ctx, summoner.ID, recentMatchWindow)
		if err != nil {
			return nil, fmt.Errorf("list matches for %s: %w", summoner.RiotID(), err)
		}
		if len(matches) > 0 {
			match := matches[0]
			status.LastMatch = &match
		}
		for _, match := range matches {
			if match.Result.Win {
				status.RecentWins++
			} else {
				status.RecentLosses++
			}
		}

		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (s *StatusService) PendingEvents(ctx context.Context) ([]domain.NotificationEvent, error) {
	events, err := s.repo.ListPendingEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending events: %w", err)
	}
	return events, nil
}
