package riot

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports"
)

type accountPayload struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// AccountByRiotID resolves a Riot ID to its PUUID through the regional route of region.
func (c *Client) AccountByRiotID(ctx context.Context, gameName, tagLine, region string) (ports.Account, error) {
	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.routeURL(domain.Regional(region)),
		url.PathEscape(gameName),
		url.PathEscape(tagLine),
	)

	var payload accountPayload
	if err := c.getJSON(ctx, endpoint, true, &payload); err != nil {
		if errors.Is(err, errNotFound) {
			return ports.Account{}, fmt.Errorf("%w: %s#%s", domain.ErrAccountNotFound, gameName, tagLine)
		}
		return ports.Account{}, sourceErr("get account", err)
	}

	account := ports.Account{PUUID: payload.PUUID, GameName: payload.GameName, TagLine: payload.TagLine}
	if account.GameName == "" {
		account.GameName = gameName
	}
	if account.TagLine == "" {
		account.TagLine = tagLine
	}
	return account, nil
}
