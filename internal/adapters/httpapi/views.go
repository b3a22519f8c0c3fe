package httpapi

import (
	"time"

	"github.com/bnema/riftwatch/internal/application"
	"github.com/bnema/riftwatch/internal/domain"
)

type SummonerView struct {
	RiotID       string           `json:"riot_id"`
	Region       string           `json:"region"`
	PUUID        string           `json:"puuid"`
	InGame       bool             `json:"in_game"`
	ActiveGame   *ActiveGameView  `json:"active_game,omitempty"`
	LastMatch    *LastMatchView   `json:"last_match,omitempty"`
	RecentRecord RecentRecordView `json:"recent_record"`
}

type ActiveGameView struct {
	GameID    int64     `json:"game_id"`
	GameMode  string    `json:"game_mode"`
	Queue     string    `json:"queue"`
	StartedAt time.Time `json:"started_at"`
}

type LastMatchView struct {
	MatchID    string    `json:"match_id"`
	Win        bool      `json:"win"`
	Champion   string    `json:"champion"`
	KDA        string    `json:"kda"`
	GameMode   string    `json:"game_mode"`
	FinishedAt time.Time `json:"finished_at"`
}

type RecentRecordView struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

type EventView struct {
	ID             string           `json:"id"`
	Kind           domain.EventKind `json:"kind"`
	CorrelationKey string           `json:"correlation_key"`
	SummonerID     string           `json:"summoner_id"`
	Featured       bool             `json:"featured,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	AgeSeconds     int64            `json:"age_seconds"`
}

// SummonerViews converts statuses to their JSON shape. It never returns nil.
func SummonerViews(statuses []application.SummonerStatus) []SummonerView {
	views := make([]SummonerView, 0, len(statuses))
	for _, status := range statuses {
		view := SummonerView{
			RiotID:       status.Summoner.RiotID(),
			Region:       status.Summoner.Region,
			PUUID:        status.Summoner.PUUID,
			InGame:       status.ActiveGame != nil,
			RecentRecord: RecentRecordView{Wins: status.RecentWins, Losses: status.RecentLosses},
		}
		if game := status.ActiveGame; game != nil {
			view.ActiveGame = &ActiveGameView{
				GameID:    game.GameID,
				GameMode:  game.GameMode,
				Queue:     domain.QueueName(game.QueueID),
				StartedAt: game.StartedAt,
			}
		}
		if match := status.LastMatch; match != nil {
			view.LastMatch = &LastMatchView{
				MatchID:    match.Result.MatchID,
				Win:        match.Result.Win,
				Champion:   match.Result.ChampionName,
				KDA:        match.Result.KDA(),
				GameMode:   match.Result.GameMode,
				FinishedAt: match.FinishedAt,
			}
		}
		views = append(views, view)
	}
	return views
}

func EventViews(events []domain.NotificationEvent, now time.Time) []EventView {
	views := make([]EventView, 0, len(events))
	for _, event := range events {
		views = append(views, EventView{
			ID:             event.ID,
			Kind:           event.Kind,
			CorrelationKey: event.CorrelationKey,
			SummonerID:     string(event.SummonerID),
			Featured:       event.Payload.Featured,
			CreatedAt:      event.CreatedAt,
			AgeSeconds:     int64(now.Sub(event.CreatedAt) / time.Second),
		})
	}
	return views
}
