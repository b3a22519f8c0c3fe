package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"cdr.dev/slog/v3"
	"github.com/bnema/riftwatch/internal/adapters/httpapi"
	statusadapter "github.com/bnema/riftwatch/internal/adapters/render/status"
	"github.com/bnema/riftwatch/internal/application"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/spf13/cobra"
)

// Games are flagged once they outlast the longest realistic match.
const staleGameAfter = 90 * time.Minute

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show tracked summoners, live games and recent form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStatusService(cmd, app, func(svc *application.StatusService) error {
				statuses, err := svc.Summoners(cmd.Context())
				if err != nil {
					return fmt.Errorf("load status: %w", err)
				}
				return writeStatusesOutput(cmd, app, statuses, asJSON)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newEventsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show notifications waiting to be delivered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStatusService(cmd, app, func(svc *application.StatusService) error {
				events, err := svc.PendingEvents(cmd.Context())
				if err != nil {
					return fmt.Errorf("load pending events: %w", err)
				}
				if asJSON {
					return writeJSON(cmd, httpapi.EventViews(events, app.now()))
				}

				statuses, err := svc.Summoners(cmd.Context())
				if err != nil {
					return fmt.Errorf("load summoners: %w", err)
				}
				names := make(map[domain.SummonerID]string, len(statuses))
				for _, status := range statuses {
					names[status.Summoner.ID] = sanitizeForTerminal(status.Summoner.RiotID())
				}

				rendered, err := statusadapter.RenderEvents(events, names, statusadapter.RenderOptions{Now: app.now()})
				if err != nil {
					return fmt.Errorf("render events: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func withStatusService(cmd *cobra.Command, app *app, fn func(*application.StatusService) error) error {
	store, err := app.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			app.log.Warn(cmd.Context(), "close database", slog.Error(err))
		}
	}()

	return fn(application.NewStatusService(store))
}

func writeStatusesOutput(cmd *cobra.Command, app *app, statuses []application.SummonerStatus, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, httpapi.SummonerViews(statuses))
	}

	rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{
		Now:        app.now(),
		StaleAfter: staleGameAfter,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
