package domain

import (
	"strconv"
	"time"
)

type EventKind string

const (
	EventGameStarted EventKind = "GAME_STARTED"
	EventGameEnded   EventKind = "GAME_ENDED"
)

// EventPayload is everything the notifier needs to render one player's part
// of a grouped notification.
type EventPayload struct {
	GameID       int64        `json:"game_id"`
	ChampionID   int          `json:"champion_id"`
	ChampionName string       `json:"champion_name"`
	GameMode     string       `json:"game_mode"`
	QueueID      int          `json:"queue_id"`
	Featured     bool         `json:"featured,omitempty"`
	Result       *MatchResult `json:"result,omitempty"`
}

type NotificationEvent struct {
	ID             string
	SummonerID     SummonerID
	Kind           EventKind
	CorrelationKey string
	Payload        EventPayload
	Processed      bool
	CreatedAt      time.Time
	ProcessedAt    *time.Time
}

// StartedCorrelationKey groups started events of players in the same game.
func StartedCorrelationKey(gameID int64) string {
	return strconv.FormatInt(gameID, 10)
}

// EndedCorrelationKey groups ended events of players in the same match.
func EndedCorrelationKey(matchID string) string {
	return matchID
}

type GroupKey struct {
	Kind           EventKind
	CorrelationKey string
}

func (e NotificationEvent) GroupKey() GroupKey {
	return GroupKey{Kind: e.Kind, CorrelationKey: e.CorrelationKey}
}
