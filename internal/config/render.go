package config

import (
	"net/url"

	toml "github.com/pelletier/go-toml/v2"
)

const redacted = "<redacted>"

type displayFile struct {
	Summoners     string              `toml:"summoners"`
	Riot          displayRiot         `toml:"riot"`
	Discord       displayDiscord      `toml:"discord"`
	Database      DatabaseConfig      `toml:"database"`
	Roster        RosterConfig        `toml:"roster"`
	Tracker       displayTracker      `toml:"tracker"`
	Notifications displayNotification `toml:"notifications"`
	HTTP          HTTPConfig          `toml:"http"`
	Log           LogConfig           `toml:"log"`
}

type displayRiot struct {
	APIKey  string `toml:"api_key"`
	Region  string `toml:"region"`
	Timeout string `toml:"timeout"`
}

type displayDiscord struct {
	WebhookURL string `toml:"webhook_url"`
	Username   string `toml:"username"`
	Timeout    string `toml:"timeout"`
}

type displayTracker struct {
	PollInterval       string `toml:"poll_interval"`
	MatchFetchAttempts int    `toml:"match_fetch_attempts"`
	MatchFetchDelay    string `toml:"match_fetch_delay"`
	FinalizedLookback  string `toml:"finalized_lookback"`
}

type displayNotification struct {
	Interval    string `toml:"interval"`
	GraceWindow string `toml:"grace_window"`
}

// TOML renders the effective configuration with credentials redacted.
func (c Config) TOML() ([]byte, error) {
	return toml.Marshal(displayFile{
		Summoners: c.Summoners,
		Riot: displayRiot{
			APIKey:  redact(c.Riot.APIKey),
			Region:  c.Riot.Region,
			Timeout: c.Riot.Timeout.String(),
		},
		Discord: displayDiscord{
			WebhookURL: redactURL(c.Discord.WebhookURL),
			Username:   c.Discord.Username,
			Timeout:    c.Discord.Timeout.String(),
		},
		Database: c.Database,
		Roster:   c.Roster,
		Tracker: displayTracker{
			PollInterval:       c.Tracker.PollInterval.String(),
			MatchFetchAttempts: c.Tracker.MatchFetchAttempts,
			MatchFetchDelay:    c.Tracker.MatchFetchDelay.String(),
			FinalizedLookback:  c.Tracker.FinalizedLookback.String(),
		},
		Notifications: displayNotification{
			Interval:    c.Notifications.Interval.String(),
			GraceWindow: c.Notifications.GraceWindow.String(),
		},
		HTTP: c.HTTP,
		Log:  c.Log,
	})
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}

// redactURL keeps the host so users can tell which webhook is configured.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return redacted
	}
	return u.Scheme + "://" + u.Host + "/" + redacted
}
