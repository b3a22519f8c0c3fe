package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cdr.dev/slog/v3/sloggers/slogtest"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	caps    = domain.Summoner{ID: "s-1", GameName: "Caps", TagLine: "EUW"}
	jankos  = domain.Summoner{ID: "s-2", GameName: "Jankos", TagLine: "EUW"}
	rekkles = domain.Summoner{ID: "s-3", GameName: "Rekkles", TagLine: "EUW"}
)

func TestFormatList(t *testing.T) {
	assert.Equal(t, "", formatList(nil))
	assert.Equal(t, "A", formatList([]string{"A"}))
	assert.Equal(t, "A and B", formatList([]string{"A", "B"}))
	assert.Equal(t, "A, B, and C", formatList([]string{"A", "B", "C"}))
}

func TestStatsLine(t *testing.T) {
	assert.Equal(t, "7.2 CS/min · 450 GPM · 32.1k dmg", statsLine(216, 13500, 32100, 1800))
	assert.Equal(t, "0.0 CS/min · 0 GPM · 900 dmg", statsLine(10, 100, 900, 0))
}

func TestOpponentLine(t *testing.T) {
	assert.Equal(t, "⚔️ vs Unknown (no role data)", opponentLine(nil, 1800))
	assert.Equal(t,
		"Yone (6.1 CS/min · 367 GPM · 21.0k dmg)",
		opponentLine(&domain.LaneOpponent{ChampionName: "Yone", TotalCS: 184, TotalGold: 11000, TotalDamage: 21000}, 1800),
	)
}

func TestStartedEmbed(t *testing.T) {
	e := startedEmbed(domain.StartedSummary{
		GameID:   1,
		GameMode: "CLASSIC",
		QueueID:  420,
		Players: []domain.StartedPlayer{
			{Summoner: caps, ChampionName: "Yasuo"},
			{Summoner: jankos},
		},
	}, time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC))

	assert.Equal(t, "🎮 Game Started!", e.Title)
	assert.Equal(t, "Caps and Jankos started a CLASSIC game (Ranked Solo/Duo)", e.Description)
	assert.Equal(t, colorStarted, e.Color)
	assert.Equal(t, "League of Legends · CLASSIC · Ranked Solo/Duo", e.Footer.Text)
	assert.Equal(t, "2026-03-01T20:00:00Z", e.Timestamp)
	assert.Equal(t, []embedField{
		{Name: "Caps#EUW", Value: "Yasuo", Inline: true},
		{Name: "Jankos#EUW", Value: "Unknown", Inline: true},
	}, e.Fields)
}

func TestEndedEmbedColorsAndTitle(t *testing.T) {
	win := domain.MatchResult{Win: true, ChampionName: "Yasuo", Role: "MIDDLE", Kills: 1, Deaths: 2, Assists: 3}
	loss := domain.MatchResult{Win: false, ChampionName: "Lee Sin", Role: "JUNGLE"}

	tests := []struct {
		name      string
		players   []domain.EndedPlayer
		wantColor int
		wantTitle string
	}{
		{name: "all wins", players: []domain.EndedPlayer{{Summoner: caps, Result: win}}, wantColor: colorWin, wantTitle: "Game Won!"},
		{name: "all losses", players: []domain.EndedPlayer{{Summoner: caps, Result: loss}}, wantColor: colorLoss, wantTitle: "Game Lost!"},
		{
			name:      "mixed majority win",
			players:   []domain.EndedPlayer{{Summoner: caps, Result: win}, {Summoner: jankos, Result: win}, {Summoner: rekkles, Result: loss}},
			wantColor: colorMixed,
			wantTitle: "Game Won!",
		},
		{
			name:      "mixed tie is lost",
			players:   []domain.EndedPlayer{{Summoner: caps, Result: win}, {Summoner: jankos, Result: loss}},
			wantColor: colorMixed,
			wantTitle: "Game Lost!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := endedEmbed(domain.EndedSummary{GameMode: "CLASSIC", QueueID: 420, Players: tt.players}, time.Now())
			assert.Equal(t, tt.wantColor, e.Color)
			assert.Equal(t, tt.wantTitle, e.Title)
			assert.Len(t, e.Fields, 3*len(tt.players))
		})
	}
}

func TestEndedEmbedFieldsAndFeaturedFooter(t *testing.T) {
	e := endedEmbed(domain.EndedSummary{
		MatchID:  "EUW1_1",
		GameMode: "CHERRY",
		QueueID:  1700,
		Featured: true,
		Players: []domain.EndedPlayer{{
			Summoner: caps,
			Result:   domain.MatchResult{Win: true, ChampionName: "Yasuo", Kills: 10, Deaths: 3, Assists: 7, DurationSecs: 1800, TotalCS: 216, TotalGold: 13500, TotalDamage: 32100},
		}},
	}, time.Now())

	assert.Equal(t, "CHERRY featured mode ended! Match history may take a bit to update.", e.Description)
	assert.Equal(t, "League of Legends · CHERRY · Arena (Featured)", e.Footer.Text)
	require.Len(t, e.Fields, 3)
	assert.Equal(t, "🏆 Caps", e.Fields[0].Name)
	assert.Equal(t, "💎 Yasuo · Unknown · W 10/3/7", e.Fields[0].Value)
	assert.Equal(t, "7.2 CS/min · 450 GPM · 32.1k dmg", e.Fields[1].Value)
	assert.Equal(t, "⚔️ vs Unknown (no role data)", e.Fields[2].Value)
}

func TestEndedEmbedNonFeatured(t *testing.T) {
	e := endedEmbed(domain.EndedSummary{GameMode: "ARAM", QueueID: 450}, time.Now())
	assert.Equal(t, "ARAM game ended! Check your stats.", e.Description)
	assert.Equal(t, "League of Legends · ARAM · ARAM", e.Footer.Text)
}

func TestWebhookNotifierPostsEmbed(t *testing.T) {
	var got webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, "riftwatch", time.Second, slogtest.Make(t, nil))
	err := notifier.SendGameStarted(context.Background(), domain.StartedSummary{
		GameMode: "CLASSIC",
		QueueID:  400,
		Players:  []domain.StartedPlayer{{Summoner: caps, ChampionName: "Yasuo"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "riftwatch", got.Username)
	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "Caps started a CLASSIC game (Draft Pick)", got.Embeds[0].Description)
}

func TestWebhookNotifierSplitsLargeGroups(t *testing.T) {
	var got webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	players := make([]domain.EndedPlayer, 0, 9)
	for i := range 9 {
		summoner := domain.Summoner{ID: domain.SummonerID(fmt.Sprintf("s-%d", i)), GameName: fmt.Sprintf("Player%d", i), TagLine: "EUW"}
		players = append(players, domain.EndedPlayer{Summoner: summoner, Result: domain.MatchResult{Win: i%2 == 0, ChampionName: "Yasuo"}})
	}

	notifier := NewWebhookNotifier(server.URL, "", time.Second, slogtest.Make(t, nil))
	err := notifier.SendGameEnded(context.Background(), domain.EndedSummary{GameMode: "CHERRY", QueueID: 1700, Players: players})
	require.NoError(t, err)

	require.Len(t, got.Embeds, 2)
	total := 0
	for _, e := range got.Embeds {
		assert.LessOrEqual(t, len(e.Fields), maxEmbedFields)
		assert.Zero(t, len(e.Fields)%endedFieldsPerPlayer)
		total += len(e.Fields)
	}
	assert.Equal(t, 27, total)

	assert.Equal(t, "Game Won!", got.Embeds[0].Title)
	assert.NotEmpty(t, got.Embeds[0].Description)
	assert.Nil(t, got.Embeds[0].Footer)
	assert.Empty(t, got.Embeds[1].Title)
	require.NotNil(t, got.Embeds[1].Footer)
	assert.Equal(t, "League of Legends · CHERRY · Arena", got.Embeds[1].Footer.Text)
	assert.Equal(t, "🏆 Player8", got.Embeds[1].Fields[0].Name)
}

func TestPaginateCapsEmbedsPerMessage(t *testing.T) {
	e := embed{Title: "big", Color: colorStarted, Footer: &embedFooter{Text: "footer"}}
	for i := range 400 {
		e.Fields = append(e.Fields, embedField{Name: fmt.Sprintf("p%d", i), Value: "Yasuo"})
	}

	pages := paginate(e, startedFieldsPerPlayer)
	require.Len(t, pages, maxMessageEmbeds)
	for _, page := range pages {
		assert.Len(t, page.Fields, maxEmbedFields)
		assert.Equal(t, colorStarted, page.Color)
	}
	assert.Equal(t, "big", pages[0].Title)
	assert.Equal(t, "footer", pages[maxMessageEmbeds-1].Footer.Text)

	small := embed{Title: "small", Fields: e.Fields[:3]}
	assert.Equal(t, []embed{small}, paginate(small, startedFieldsPerPlayer))
}

func TestWebhookNotifierNon2xxIsDeliveryError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unknown webhook", http.StatusNotFound)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, "", time.Second, slogtest.Make(t, nil))
	err := notifier.SendGameEnded(context.Background(), domain.EndedSummary{GameMode: "CLASSIC"})
	require.ErrorIs(t, err, domain.ErrDelivery)
	assert.Contains(t, err.Error(), "404")
}

func TestWebhookNotifierRequiresURL(t *testing.T) {
	notifier := NewWebhookNotifier("", "", 0, slogtest.Make(t, nil))
	err := notifier.SendGameEnded(context.Background(), domain.EndedSummary{})
	require.ErrorIs(t, err, domain.ErrDelivery)
}
