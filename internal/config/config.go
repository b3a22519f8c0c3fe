// Package config loads riftwatch settings from defaults, a TOML file, .env
// files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cdr.dev/slog/v3"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "RIFTWATCH"
	configFileEnv  = "RIFTWATCH_CONFIG"
	configDir      = ".config/riftwatch"
	dataDir        = ".local/share/riftwatch"
	configName     = "config"
	configType     = "toml"
	legacyPollSecs = "POLLING_INTERVAL_SECS"

	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Riot          RiotConfig          `mapstructure:"riot"`
	Discord       DiscordConfig       `mapstructure:"discord"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Roster        RosterConfig        `mapstructure:"roster"`
	Summoners     string              `mapstructure:"summoners"`
	Tracker       TrackerConfig       `mapstructure:"tracker"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	HTTP          HTTPConfig          `mapstructure:"http"`
	Log           LogConfig           `mapstructure:"log"`
}

type RiotConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Region  string        `mapstructure:"region"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DiscordConfig struct {
	WebhookURL string        `mapstructure:"webhook_url"`
	Username   string        `mapstructure:"username"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" toml:"driver"`
	Path   string `mapstructure:"path" toml:"path"`
}

type RosterConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

type TrackerConfig struct {
	PollInterval       time.Duration `mapstructure:"poll_interval"`
	MatchFetchAttempts int           `mapstructure:"match_fetch_attempts"`
	MatchFetchDelay    time.Duration `mapstructure:"match_fetch_delay"`
	FinalizedLookback  time.Duration `mapstructure:"finalized_lookback"`
}

type NotificationsConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	GraceWindow time.Duration `mapstructure:"grace_window"`
}

type HTTPConfig struct {
	Listen string `mapstructure:"listen" toml:"listen"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
}

// legacyEnv maps keys to the variable names used by earlier deployments.
var legacyEnv = map[string]string{
	"riot.api_key":        "RIOT_API_KEY",
	"riot.region":         "DEFAULT_REGION",
	"discord.webhook_url": "DISCORD_WEBHOOK_URL",
	"summoners":           "SUMMONER_NAMES",
	"database.path":       "DATABASE_PATH",
}

// NewViper returns a viper instance with defaults and environment bindings
// registered. The config file is read by Load.
func NewViper() *viper.Viper {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	v.SetDefault("riot.region", domain.DefaultRegion)
	v.SetDefault("riot.timeout", 10*time.Second)
	v.SetDefault("discord.username", "riftwatch")
	v.SetDefault("discord.timeout", 10*time.Second)
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", filepath.Join(home, dataDir, "riftwatch.db"))
	v.SetDefault("roster.path", filepath.Join(home, configDir, "roster.toml"))
	v.SetDefault("summoners", "")
	v.SetDefault("tracker.poll_interval", 180*time.Second)
	v.SetDefault("tracker.match_fetch_attempts", 6)
	v.SetDefault("tracker.match_fetch_delay", 10*time.Second)
	v.SetDefault("tracker.finalized_lookback", 2*time.Hour)
	v.SetDefault("notifications.interval", 5*time.Second)
	v.SetDefault("notifications.grace_window", 30*time.Second)
	v.SetDefault("http.listen", "")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		_ = v.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), legacy)
	}

	if path := os.Getenv(configFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(home, configDir))
	}

	return v
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load reads the config file (if any), applies the environment and
// validates the result.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = NewViper()
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if raw := strings.TrimSpace(os.Getenv(legacyPollSecs)); raw != "" && os.Getenv(envPrefix+"_TRACKER_POLL_INTERVAL") == "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidConfig, legacyPollSecs, raw)
		}
		v.Set("tracker.poll_interval", time.Duration(secs)*time.Second)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Riot.APIKey = strings.TrimSpace(c.Riot.APIKey)
	c.Riot.Region = strings.ToLower(strings.TrimSpace(c.Riot.Region))
	c.Discord.WebhookURL = strings.TrimSpace(c.Discord.WebhookURL)
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.Database.Path = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(c.Database.Path), "sqlite://"), "sqlite:")
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// Validate checks everything that does not need credentials. Commands that
// talk to Riot or Discord call RequireCredentials as well.
func (c Config) Validate() error {
	var errs []error

	if !domain.KnownRegion(c.Riot.Region) {
		errs = append(errs, fmt.Errorf("riot.region: unknown region %q", c.Riot.Region))
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path: must be set for the sqlite driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("database.driver: must be %q or %q, got %q", DriverSQLite, DriverMemory, c.Database.Driver))
	}
	if c.Tracker.PollInterval <= 0 {
		errs = append(errs, errors.New("tracker.poll_interval: must be positive"))
	}
	if c.Tracker.MatchFetchAttempts < 1 {
		errs = append(errs, errors.New("tracker.match_fetch_attempts: must be at least 1"))
	}
	if c.Tracker.MatchFetchDelay < 0 {
		errs = append(errs, errors.New("tracker.match_fetch_delay: must not be negative"))
	}
	if c.Notifications.Interval <= 0 {
		errs = append(errs, errors.New("notifications.interval: must be positive"))
	}
	if c.Notifications.GraceWindow < 0 {
		errs = append(errs, errors.New("notifications.grace_window: must not be negative"))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.RosterEntries(); err != nil {
		errs = append(errs, fmt.Errorf("summoners: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c Config) RequireCredentials() error {
	var missing []string
	if c.Riot.APIKey == "" {
		missing = append(missing, "riot.api_key (RIOT_API_KEY)")
	}
	if c.Discord.WebhookURL == "" {
		missing = append(missing, "discord.webhook_url (DISCORD_WEBHOOK_URL)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}

func (c Config) RequireRiotKey() error {
	if c.Riot.APIKey == "" {
		return fmt.Errorf("%w: missing riot.api_key (RIOT_API_KEY)", ErrInvalidConfig)
	}
	return nil
}

// RosterEntries parses the summoners setting. Entries without a region use
// riot.region.
func (c Config) RosterEntries() ([]domain.RosterEntry, error) {
	return domain.ParseRosterList(c.Summoners, c.Riot.Region)
}

func (c LogConfig) SlogLevel() (slog.Level, error) {
	switch c.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level: unknown level %q", c.Level)
	}
}
