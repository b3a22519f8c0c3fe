package riot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/bnema/riftwatch/internal/domain"
)

type currentGamePayload struct {
	GameID            int64  `json:"gameId"`
	GameMode          string `json:"gameMode"`
	GameQueueConfigID int    `json:"gameQueueConfigId"`
	GameStartTime     int64  `json:"gameStartTime"`
	Participants      []struct {
		PUUID      string `json:"puuid"`
		ChampionID int    `json:"championId"`
	} `json:"participants"`
}

// ActiveGame returns the game the summoner is in, or nil when idle.
func (c *Client) ActiveGame(ctx context.Context, summoner domain.Summoner) (*domain.GameInfo, error) {
	endpoint := fmt.Sprintf("%s/lol/spectator/v5/active-games/by-summoner/%s",
		c.routeURL(domain.Platform(summoner.Region)),
		url.PathEscape(summoner.PUUID),
	)

	var payload currentGamePayload
	if err := c.getJSON(ctx, endpoint, true, &payload); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, sourceErr("get active game", err)
	}

	game := domain.GameInfo{
		GameID:   payload.GameID,
		GameMode: payload.GameMode,
		QueueID:  payload.GameQueueConfigID,
	}
	for _, participant := range payload.Participants {
		if participant.PUUID == summoner.PUUID {
			game.ChampionID = participant.ChampionID
			break
		}
	}
	if payload.GameStartTime > 0 {
		game.StartedAt = time.UnixMilli(payload.GameStartTime).UTC()
	} else {
		game.StartedAt = time.Now().UTC()
	}

	return &game, nil
}
