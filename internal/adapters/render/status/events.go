package status

import (
	"fmt"

	"github.com/bnema/riftwatch/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func renderEventTable(events []domain.NotificationEvent, names map[domain.SummonerID]string, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Pending Notifications"),
		s.header.Render(fmt.Sprintf("events: %d", len(events))),
	}
	if len(events) == 0 {
		lines = append(lines, s.empty.Render("Queue is empty."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.meta).
		Headers("KIND", "GROUP", "SUMMONER", "DETAIL", "QUEUED").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.key.Bold(true).Padding(0, 1)
			}
			return s.detail.Padding(0, 1)
		})

	for _, event := range events {
		name, ok := names[event.SummonerID]
		if !ok {
			name = string(event.SummonerID)
		}
		t.Row(kindLabel(event.Kind), event.CorrelationKey, name, eventDetail(event), relative(event.CreatedAt, opts.Now))
	}

	lines = append(lines, t.Render())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func kindLabel(kind domain.EventKind) string {
	switch kind {
	case domain.EventGameStarted:
		return "started"
	case domain.EventGameEnded:
		return "ended"
	default:
		return string(kind)
	}
}

func eventDetail(event domain.NotificationEvent) string {
	p := event.Payload
	if p.Result != nil {
		outcome := "L"
		if p.Result.Win {
			outcome = "W"
		}
		detail := fmt.Sprintf("%s %s %s", outcome, championLabel(p.Result.ChampionName), p.Result.KDA())
		if p.Featured {
			detail += " (featured)"
		}
		return detail
	}
	return fmt.Sprintf("%s · %s", championLabel(p.ChampionName), p.GameMode)
}
