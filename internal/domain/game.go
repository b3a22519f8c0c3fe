package domain

import (
	"fmt"
	"time"
)

// GameInfo is the live view of a game a summoner is currently playing.
type GameInfo struct {
	GameID     int64
	ChampionID int
	GameMode   string
	QueueID    int
	StartedAt  time.Time
}

type ActiveGame struct {
	ID         string
	SummonerID SummonerID
	GameID     int64
	ChampionID int
	GameMode   string
	QueueID    int
	StartedAt  time.Time
	CreatedAt  time.Time
}

func (g ActiveGame) Info() GameInfo {
	return GameInfo{
		GameID:     g.GameID,
		ChampionID: g.ChampionID,
		GameMode:   g.GameMode,
		QueueID:    g.QueueID,
		StartedAt:  g.StartedAt,
	}
}

// LaneOpponent holds the end-of-game numbers of the player on the other team
// who shared the summoner's position.
type LaneOpponent struct {
	ChampionName string `json:"champion_name"`
	TotalCS      int    `json:"total_cs"`
	TotalGold    int    `json:"total_gold"`
	TotalDamage  int    `json:"total_damage"`
}

type MatchResult struct {
	MatchID      string        `json:"match_id"`
	GameID       int64         `json:"game_id"`
	Win          bool          `json:"win"`
	Kills        int           `json:"kills"`
	Deaths       int           `json:"deaths"`
	Assists      int           `json:"assists"`
	ChampionID   int           `json:"champion_id"`
	ChampionName string        `json:"champion_name"`
	Role         string        `json:"role"`
	DurationSecs int           `json:"duration_secs"`
	GameMode     string        `json:"game_mode"`
	QueueID      int           `json:"queue_id"`
	TotalCS      int           `json:"total_cs"`
	TotalGold    int           `json:"total_gold"`
	TotalDamage  int           `json:"total_damage"`
	EndedAt      time.Time     `json:"ended_at"`
	Opponent     *LaneOpponent `json:"opponent,omitempty"`
}

func (r MatchResult) KDA() string {
	return fmt.Sprintf("%d/%d/%d", r.Kills, r.Deaths, r.Assists)
}

type MatchRecord struct {
	ID         string
	SummonerID SummonerID
	Result     MatchResult
	FinishedAt time.Time
	CreatedAt  time.Time
}

type Champion struct {
	ID   int
	Name string
}

// QueueName maps a queue id to the name players know it by.
func QueueName(queueID int) string {
	switch queueID {
	case 0:
		return "Unknown"
	case 420:
		return "Ranked Solo/Duo"
	case 440:
		return "Ranked Flex"
	case 400:
		return "Draft Pick"
	case 430:
		return "Blind Pick"
	case 450:
		return "ARAM"
	case 490:
		return "Quickplay"
	case 1700:
		return "Arena"
	default:
		return fmt.Sprintf("Queue %d", queueID)
	}
}
