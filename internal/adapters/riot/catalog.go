package riot

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/bnema/riftwatch/internal/domain"
)

type championCatalogPayload struct {
	Data map[string]struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

// Champions downloads the champion list of the latest Data Dragon release.
func (c *Client) Champions(ctx context.Context) ([]domain.Champion, error) {
	var versions []string
	if err := c.getJSON(ctx, c.ddragonURL+"/api/versions.json", false, &versions); err != nil {
		return nil, sourceErr("get ddragon versions", err)
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: ddragon returned no versions", domain.ErrSource)
	}

	var payload championCatalogPayload
	endpoint := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", c.ddragonURL, url.PathEscape(versions[0]))
	if err := c.getJSON(ctx, endpoint, false, &payload); err != nil {
		return nil, sourceErr("get champion catalog", err)
	}

	champions := make([]domain.Champion, 0, len(payload.Data))
	for _, entry := range payload.Data {
		id, err := strconv.Atoi(entry.Key)
		if err != nil {
			continue
		}
		champions = append(champions, domain.Champion{ID: id, Name: entry.Name})
	}
	sort.Slice(champions, func(i, j int) bool { return champions[i].ID < champions[j].ID })

	return champions, nil
}
