package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/riftwatch/internal/application"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const formBarWidth = 20

type RenderOptions struct {
	Now time.Time
	// StaleAfter flags active games older than this, which usually means an
	// end was missed.
	StaleAfter time.Duration
}

func renderView(statuses []application.SummonerStatus, opts RenderOptions, s styles) string {
	inGame := 0
	for _, status := range statuses {
		if status.ActiveGame != nil {
			inGame++
		}
	}

	lines := []string{
		s.title.Render("Tracked Summoners"),
		s.header.Render(fmt.Sprintf("summoners: %d · in game: %d", len(statuses), inGame)),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No summoners tracked yet. Add one with `riftwatch roster add` and run `riftwatch sync`."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderSummoner(status, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSummoner(status application.SummonerStatus, opts RenderOptions, s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.summoner.Render(fmt.Sprintf("%s (%s)", status.Summoner.RiotID(), status.Summoner.Region)),
		gameLine(status.ActiveGame, opts, s),
		lastMatchLine(status.LastMatch, opts, s),
		formLine(status.RecentWins, status.RecentLosses, s),
	)
}

func gameLine(game *domain.ActiveGame, opts RenderOptions, s styles) string {
	label := s.key.Render("game:")
	if game == nil {
		return label + " " + s.detail.Render("idle")
	}

	started := game.StartedAt
	if started.IsZero() {
		started = game.CreatedAt
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		label,
		" ",
		s.live.Render("● in game"),
		" ",
		s.detail.Render(fmt.Sprintf("%s · %s", game.GameMode, domain.QueueName(game.QueueID))),
		" ",
		s.meta.Render(fmt.Sprintf("(started %s)", relative(started, opts.Now))),
	)

	if !opts.Now.IsZero() && opts.StaleAfter > 0 && opts.Now.Sub(started) > opts.StaleAfter {
		line += " " + s.warning.Render("[stale]")
	}
	return line
}

func lastMatchLine(match *domain.MatchRecord, opts RenderOptions, s styles) string {
	label := s.key.Render("last match:")
	if match == nil {
		return label + " " + s.empty.Render("none recorded")
	}

	result := match.Result
	outcome := s.loss.Render("L")
	if result.Win {
		outcome = s.win.Render("W")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		label,
		" ",
		outcome,
		" ",
		s.detail.Render(fmt.Sprintf("%s %s · %s", result.KDA(), championLabel(result.ChampionName), result.GameMode)),
		" ",
		s.meta.Render(fmt.Sprintf("(%s)", relative(match.FinishedAt, opts.Now))),
	)
}

func formLine(wins, losses int, s styles) string {
	label := s.key.Render("form:")
	total := wins + losses
	if total == 0 {
		return label + " " + s.empty.Render("n/a")
	}

	winRate := float64(wins) / float64(total) * 100
	return lipgloss.JoinHorizontal(lipgloss.Top,
		label,
		" ",
		renderFormBar(winRate, formBarWidth, s),
		" ",
		lipgloss.NewStyle().Foreground(interpolateColor(winRate, 0, 100)).Render(fmt.Sprintf("%dW %dL", wins, losses)),
		" ",
		s.meta.Render(fmt.Sprintf("(%s%% over %d)", humanize.FtoaWithDigits(winRate, 0), total)),
	)
}

func renderFormBar(winPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(winPercent) / 100))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func championLabel(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Unknown"
	}
	return name
}

func relative(then, now time.Time) string {
	if then.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		now = time.Now()
	}
	return humanize.RelTime(then, now, "ago", "from now")
}

// interpolateColor maps value onto the 256-color ramp from red (196) through
// yellow (226) to green (46).
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	switch {
	case normalized < 0.4:
		return lipgloss.Color("196")
	case normalized < 0.5:
		return lipgloss.Color("208")
	case normalized < 0.6:
		return lipgloss.Color("226")
	default:
		return lipgloss.Color("46")
	}
}
