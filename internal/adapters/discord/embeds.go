package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/riftwatch/internal/domain"
)

const (
	colorStarted = 0x3498DB
	colorWin     = 0x2ECC71
	colorLoss    = 0xE74C3C
	colorMixed   = 0xF1C40F

	// Discord rejects embeds with more than 25 fields and messages with more
	// than 10 embeds.
	maxEmbedFields   = 25
	maxMessageEmbeds = 10

	startedFieldsPerPlayer = 1
	endedFieldsPerPlayer   = 3
)

type embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields,omitempty"`
	Footer      *embedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

func startedEmbed(summary domain.StartedSummary, now time.Time) embed {
	names := make([]string, 0, len(summary.Players))
	for _, player := range summary.Players {
		names = append(names, player.Summoner.GameName)
	}
	queue := domain.QueueName(summary.QueueID)

	e := embed{
		Title:       "🎮 Game Started!",
		Description: fmt.Sprintf("%s started a %s game (%s)", formatList(names), summary.GameMode, queue),
		Color:       colorStarted,
		Footer:      &embedFooter{Text: fmt.Sprintf("League of Legends · %s · %s", summary.GameMode, queue)},
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
	for _, player := range summary.Players {
		champion := player.ChampionName
		if champion == "" {
			champion = "Unknown"
		}
		e.Fields = append(e.Fields, embedField{Name: player.Summoner.RiotID(), Value: champion, Inline: true})
	}
	return e
}

func endedEmbed(summary domain.EndedSummary, now time.Time) embed {
	wins, losses := summary.Record()

	color := colorMixed
	switch {
	case losses == 0:
		color = colorWin
	case wins == 0:
		color = colorLoss
	}

	title := "Game Lost!"
	if wins > losses {
		title = "Game Won!"
	}

	description := fmt.Sprintf("%s game ended! Check your stats.", summary.GameMode)
	footer := fmt.Sprintf("League of Legends · %s", summary.GameMode)
	if summary.QueueID != 0 {
		footer += " · " + domain.QueueName(summary.QueueID)
	}
	if summary.Featured {
		description = fmt.Sprintf("%s featured mode ended! Match history may take a bit to update.", summary.GameMode)
		footer += " (Featured)"
	}

	e := embed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer:      &embedFooter{Text: footer},
		Timestamp:   now.UTC().Format(time.RFC3339),
	}

	for _, player := range summary.Players {
		result := player.Result

		prefix, outcome := "💔", "L"
		if result.Win {
			prefix, outcome = "🏆", "W"
		}
		role := result.Role
		if role == "" {
			role = "Unknown"
		}

		e.Fields = append(e.Fields,
			embedField{
				Name:   fmt.Sprintf("%s %s", prefix, player.Summoner.GameName),
				Value:  fmt.Sprintf("💎 %s · %s · %s %s", result.ChampionName, role, outcome, result.KDA()),
				Inline: true,
			},
			embedField{
				Name:   "📊 Stats",
				Value:  statsLine(result.TotalCS, result.TotalGold, result.TotalDamage, result.DurationSecs),
				Inline: true,
			},
			embedField{
				Name:   "⚔️ vs",
				Value:  opponentLine(result.Opponent, result.DurationSecs),
				Inline: true,
			},
		)
	}
	return e
}

// paginate splits e into embeds that each stay within the field limit. A
// player's fields are never split across embeds. The first embed keeps the
// title and description, the last keeps the footer and timestamp.
func paginate(e embed, fieldsPerPlayer int) []embed {
	perEmbed := maxEmbedFields / fieldsPerPlayer * fieldsPerPlayer
	if len(e.Fields) <= perEmbed {
		return []embed{e}
	}

	var pages []embed
	for start := 0; start < len(e.Fields) && len(pages) < maxMessageEmbeds; start += perEmbed {
		end := min(start+perEmbed, len(e.Fields))
		pages = append(pages, embed{Color: e.Color, Fields: e.Fields[start:end]})
	}
	pages[0].Title = e.Title
	pages[0].Description = e.Description
	pages[len(pages)-1].Footer = e.Footer
	pages[len(pages)-1].Timestamp = e.Timestamp
	return pages
}

func formatList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

func statsLine(cs, gold, damage, durationSecs int) string {
	minutes := float64(durationSecs) / 60
	var csPerMin, goldPerMin float64
	if minutes > 0 {
		csPerMin = float64(cs) / minutes
		goldPerMin = float64(gold) / minutes
	}

	dmg := fmt.Sprintf("%d", damage)
	if damage > 1000 {
		dmg = fmt.Sprintf("%.1fk", float64(damage)/1000)
	}

	return fmt.Sprintf("%.1f CS/min · %.0f GPM · %s dmg", csPerMin, goldPerMin, dmg)
}

func opponentLine(opponent *domain.LaneOpponent, durationSecs int) string {
	if opponent == nil || opponent.ChampionName == "" {
		return "⚔️ vs Unknown (no role data)"
	}
	return fmt.Sprintf("%s (%s)", opponent.ChampionName, statsLine(opponent.TotalCS, opponent.TotalGold, opponent.TotalDamage, durationSecs))
}
