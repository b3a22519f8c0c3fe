package riot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/bnema/riftwatch/internal/domain"
)

type matchPayload struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info struct {
		GameID           int64                `json:"gameId"`
		GameDuration     int                  `json:"gameDuration"`
		GameEndTimestamp int64                `json:"gameEndTimestamp"`
		GameMode         string               `json:"gameMode"`
		QueueID          int                  `json:"queueId"`
		Participants     []participantPayload `json:"participants"`
	} `json:"info"`
}

type participantPayload struct {
	PUUID                       string `json:"puuid"`
	ChampionID                  int    `json:"championId"`
	ChampionName                string `json:"championName"`
	Win                         bool   `json:"win"`
	Kills                       int    `json:"kills"`
	Deaths                      int    `json:"deaths"`
	Assists                     int    `json:"assists"`
	TeamID                      int    `json:"teamId"`
	TeamPosition                string `json:"teamPosition"`
	TotalMinionsKilled          int    `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int    `json:"neutralMinionsKilled"`
	GoldEarned                  int    `json:"goldEarned"`
	TotalDamageDealtToChampions int    `json:"totalDamageDealtToChampions"`
}

func (p participantPayload) cs() int {
	return p.TotalMinionsKilled + p.NeutralMinionsKilled
}

// MatchResult returns the summoner's line of a finished match, or nil while
// the match is not yet published or the summoner is not in it.
func (c *Client) MatchResult(ctx context.Context, matchID string, summoner domain.Summoner) (*domain.MatchResult, error) {
	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/%s",
		c.routeURL(domain.Regional(summoner.Region)),
		url.PathEscape(matchID),
	)

	var payload matchPayload
	if err := c.getJSON(ctx, endpoint, true, &payload); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, sourceErr("get match", err)
	}

	return toMatchResult(payload, summoner.PUUID), nil
}

// RecentMatchID returns the id of the summoner's latest finished match, or ""
// when the history is empty.
func (c *Client) RecentMatchID(ctx context.Context, summoner domain.Summoner) (string, error) {
	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?count=1",
		c.routeURL(domain.Regional(summoner.Region)),
		url.PathEscape(summoner.PUUID),
	)

	var ids []string
	if err := c.getJSON(ctx, endpoint, true, &ids); err != nil {
		if errors.Is(err, errNotFound) {
			return "", nil
		}
		return "", sourceErr("list recent matches", err)
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

func toMatchResult(payload matchPayload, puuid string) *domain.MatchResult {
	var self *participantPayload
	for i := range payload.Info.Participants {
		if payload.Info.Participants[i].PUUID == puuid {
			self = &payload.Info.Participants[i]
			break
		}
	}
	if self == nil {
		return nil
	}

	result := &domain.MatchResult{
		MatchID:      payload.Metadata.MatchID,
		GameID:       payload.Info.GameID,
		Win:          self.Win,
		Kills:        self.Kills,
		Deaths:       self.Deaths,
		Assists:      self.Assists,
		ChampionID:   self.ChampionID,
		ChampionName: self.ChampionName,
		Role:         self.TeamPosition,
		DurationSecs: payload.Info.GameDuration,
		GameMode:     payload.Info.GameMode,
		QueueID:      payload.Info.QueueID,
		TotalCS:      self.cs(),
		TotalGold:    self.GoldEarned,
		TotalDamage:  self.TotalDamageDealtToChampions,
	}
	if payload.Info.GameEndTimestamp > 0 {
		result.EndedAt = time.UnixMilli(payload.Info.GameEndTimestamp).UTC()
	}

	if self.TeamPosition != "" {
		for _, other := range payload.Info.Participants {
			if other.TeamPosition == self.TeamPosition && other.TeamID != self.TeamID && other.PUUID != puuid {
				result.Opponent = &domain.LaneOpponent{
					ChampionName: other.ChampionName,
					TotalCS:      other.cs(),
					TotalGold:    other.GoldEarned,
					TotalDamage:  other.TotalDamageDealtToChampions,
				}
				break
			}
		}
	}

	return result
}
