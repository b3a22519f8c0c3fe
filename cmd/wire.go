package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"cdr.dev/slog/v3"
	"cdr.dev/slog/v3/sloggers/sloghuman"
	discordadapter "github.com/bnema/riftwatch/internal/adapters/discord"
	statusadapter "github.com/bnema/riftwatch/internal/adapters/render/status"
	tomlrepo "github.com/bnema/riftwatch/internal/adapters/repo/toml"
	riotadapter "github.com/bnema/riftwatch/internal/adapters/riot"
	"github.com/bnema/riftwatch/internal/adapters/storage/memory"
	"github.com/bnema/riftwatch/internal/adapters/storage/sqlite"
	"github.com/bnema/riftwatch/internal/application"
	"github.com/bnema/riftwatch/internal/config"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg            config.Config
	viper          *viper.Viper
	log            slog.Logger
	roster         *tomlrepo.Repository
	statusRenderer func([]application.SummonerStatus, statusadapter.RenderOptions) (string, error)
	riotBaseURL    string
	ddragonURL     string
	httpClient     *http.Client
	now            func() time.Time
}

func wireApp() (*app, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := config.NewViper()
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.Make(sloghuman.Sink(os.Stderr)).Leveled(level)

	roster, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire roster repository: %w", err)
	}

	return &app{
		cfg:            cfg,
		viper:          v,
		log:            logger,
		roster:         roster,
		statusRenderer: statusadapter.Render,
		riotBaseURL:    envOrDefault("RIFTWATCH_RIOT_BASE_URL", ""),
		ddragonURL:     envOrDefault("RIFTWATCH_DDRAGON_URL", ""),
		httpClient:     &http.Client{Timeout: cfg.Riot.Timeout},
		now:            time.Now,
	}, nil
}

// openStore opens the configured repository. Callers close it.
func (a *app) openStore(ctx context.Context) (ports.Repository, error) {
	switch a.cfg.Database.Driver {
	case config.DriverMemory:
		a.log.Warn(ctx, "using in-memory storage, state is lost on exit")
		return memory.New(), nil
	default:
		store, err := sqlite.Open(ctx, a.cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		return store, nil
	}
}

func (a *app) riotClient() *riotadapter.Client {
	return riotadapter.NewClient(riotadapter.Options{
		APIKey:     a.cfg.Riot.APIKey,
		BaseURL:    a.riotBaseURL,
		DDragonURL: a.ddragonURL,
		HTTPClient: a.httpClient,
		Logger:     a.log,
	})
}

func (a *app) notifier() *discordadapter.WebhookNotifier {
	return discordadapter.NewWebhookNotifier(a.cfg.Discord.WebhookURL, a.cfg.Discord.Username, a.cfg.Discord.Timeout, a.log)
}

// rosterEntries merges the summoners setting with the roster file. The file
// wins when both name the same Riot ID.
func (a *app) rosterEntries(ctx context.Context) ([]domain.RosterEntry, error) {
	fromConfig, err := a.cfg.RosterEntries()
	if err != nil {
		return nil, err
	}
	fromFile, err := a.roster.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	entries := make([]domain.RosterEntry, 0, len(fromConfig)+len(fromFile))
	for _, entry := range fromConfig {
		if !containsRiotID(fromFile, entry) {
			entries = append(entries, entry)
		}
	}
	for _, entry := range fromFile {
		if entry.Region == "" {
			entry.Region = a.cfg.Riot.Region
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func containsRiotID(entries []domain.RosterEntry, target domain.RosterEntry) bool {
	for _, entry := range entries {
		if entry.SameRiotID(target) {
			return true
		}
	}
	return false
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
