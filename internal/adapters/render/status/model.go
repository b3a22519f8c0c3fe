package status

import (
	"errors"
	"io"

	"github.com/bnema/riftwatch/internal/application"
	"github.com/bnema/riftwatch/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type layoutMsg struct{}

// snapshot is a bubbletea model that lays out one frame and quits.
type snapshot struct {
	layout func(styles) string
	styles styles
	frame  string
}

func (m snapshot) Init() tea.Cmd {
	return func() tea.Msg {
		return layoutMsg{}
	}
}

func (m snapshot) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(layoutMsg); ok {
		m.frame = m.layout(m.styles)
		return m, tea.Quit
	}
	return m, nil
}

func (m snapshot) View() string {
	return m.frame
}

func renderSnapshot(layout func(styles) string) (string, error) {
	p := tea.NewProgram(
		snapshot{layout: layout, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(snapshot)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

// Render lays out summoner statuses.
func Render(statuses []application.SummonerStatus, opts RenderOptions) (string, error) {
	return renderSnapshot(func(s styles) string {
		return renderView(statuses, opts, s)
	})
}

// RenderEvents lays out the pending notification backlog. names maps
// summoner ids to Riot IDs; unknown ids are shown as-is.
func RenderEvents(events []domain.NotificationEvent, names map[domain.SummonerID]string, opts RenderOptions) (string, error) {
	return renderSnapshot(func(s styles) string {
		return renderEventTable(events, names, opts, s)
	})
}
