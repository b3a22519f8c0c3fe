// Package discord delivers grouped game notifications to a Discord channel
// webhook.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cdr.dev/slog/v3"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports"
)

const defaultTimeout = 10 * time.Second

type webhookPayload struct {
	Username string  `json:"username,omitempty"`
	Embeds   []embed `json:"embeds"`
}

type WebhookNotifier struct {
	url      string
	username string
	log      slog.Logger
	cl       *http.Client
	now      func() time.Time
}

var _ ports.Notifier = (*WebhookNotifier)(nil)

func NewWebhookNotifier(url, username string, timeout time.Duration, log slog.Logger) *WebhookNotifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &WebhookNotifier{
		url:      url,
		username: username,
		log:      log.Named("discord"),
		cl:       &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

func (w *WebhookNotifier) SendGameStarted(ctx context.Context, summary domain.StartedSummary) error {
	return w.send(ctx, paginate(startedEmbed(summary, w.now()), startedFieldsPerPlayer))
}

func (w *WebhookNotifier) SendGameEnded(ctx context.Context, summary domain.EndedSummary) error {
	return w.send(ctx, paginate(endedEmbed(summary, w.now()), endedFieldsPerPlayer))
}

func (w *WebhookNotifier) send(ctx context.Context, embeds []embed) error {
	if strings.TrimSpace(w.url) == "" {
		return fmt.Errorf("%w: webhook url is not configured", domain.ErrDelivery)
	}

	m, err := json.Marshal(webhookPayload{Username: w.username, Embeds: embeds})
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %w", domain.ErrDelivery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(m))
	if err != nil {
		return fmt.Errorf("%w: create HTTP request: %w", domain.ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.cl.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send HTTP request: %w", domain.ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 > 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("%w: non-2xx response (%d): %s", domain.ErrDelivery, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	w.log.Debug(ctx, "webhook delivered", slog.F("title", embeds[0].Title), slog.F("embeds", len(embeds)))
	return nil
}
