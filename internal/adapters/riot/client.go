// Package riot reads live games, match history, accounts and the champion
// catalog from the Riot Games API.
package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cdr.dev/slog/v3"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports"
)

const (
	apiKeyHeader      = "X-Riot-Token"
	userAgent         = "riftwatch"
	maxResponseBytes  = 4 << 20
	defaultTimeout    = 10 * time.Second
	defaultDDragonURL = "https://ddragon.leagueoflegends.com"
)

var errNotFound = errors.New("not found")

type Options struct {
	APIKey string
	// BaseURL replaces every routed host (platform and regional) when set.
	BaseURL string
	// DDragonURL replaces the static data host when set.
	DDragonURL string
	HTTPClient *http.Client
	Logger     slog.Logger
}

type Client struct {
	apiKey     string
	baseURL    string
	ddragonURL string
	httpClient *http.Client
	logger     slog.Logger
}

var (
	_ ports.SourceClient    = (*Client)(nil)
	_ ports.AccountResolver = (*Client)(nil)
	_ ports.ChampionCatalog = (*Client)(nil)
)

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	ddragonURL := opts.DDragonURL
	if ddragonURL == "" {
		ddragonURL = defaultDDragonURL
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		ddragonURL: strings.TrimRight(ddragonURL, "/"),
		httpClient: httpClient,
		logger:     opts.Logger.Named("riot"),
	}
}

func (c *Client) routeURL(route string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return "https://" + strings.ToLower(route) + ".api.riotgames.com"
}

// getJSON decodes a successful response into out. A 404 returns errNotFound.
func (c *Client) getJSON(ctx context.Context, endpoint string, authenticated bool, out any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Accept", "application/json")
	if authenticated {
		request.Header.Set(apiKeyHeader, c.apiKey)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if response.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		c.logger.Debug(ctx, "riot api request failed",
			slog.F("endpoint", request.URL.Path),
			slog.F("status", response.StatusCode),
		)
		return fmt.Errorf("status %d: %s", response.StatusCode, truncate(strings.TrimSpace(string(body)), 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

func sourceErr(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrSource, op, err)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
