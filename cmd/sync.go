package cmd

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"cdr.dev/slog/v3"
	"github.com/bnema/riftwatch/internal/application"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/spf13/cobra"
)

type syncOutput struct {
	Synced        []syncedSummoner `json:"synced"`
	Failed        []syncFailure    `json:"failed"`
	Champions     int              `json:"champions"`
	ChampionError string           `json:"champion_error,omitempty"`
}

type syncedSummoner struct {
	RiotID string `json:"riot_id"`
	Region string `json:"region"`
	PUUID  string `json:"puuid"`
}

type syncFailure struct {
	RiotID string `json:"riot_id"`
	Error  string `json:"error"`
}

func newSyncCmd(app *app) *cobra.Command {
	var asJSON bool
	var skipChampions bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Resolve the roster against the Riot API and refresh the champion table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, app, asJSON, skipChampions)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&skipChampions, "skip-champions", false, "Do not refresh the champion table")

	return cmd
}

func runSync(cmd *cobra.Command, app *app, asJSON, skipChampions bool) error {
	if err := app.cfg.RequireRiotKey(); err != nil {
		return err
	}

	ctx := cmd.Context()
	entries, err := app.rosterEntries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("roster is empty: add summoners with %q or set SUMMONER_NAMES", "riftwatch roster add")
	}

	store, err := app.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			app.log.Warn(ctx, "close database", slog.Error(err))
		}
	}()

	client := app.riotClient()
	registrar := application.NewRegistrar(store, client, client, app.log)

	var report application.SyncReport
	var champions int
	var championErr error
	work := func(ctx context.Context, progress func(string)) error {
		var err error
		report, err = registrar.SyncRoster(ctx, entries, func(done, total int, entry domain.RosterEntry) {
			progress(fmt.Sprintf("Resolved %s (%d/%d)", entry.RiotID(), done, total))
		})
		if err != nil {
			return err
		}
		if !skipChampions {
			progress("Fetching champion catalog...")
			champions, championErr = registrar.SyncChampions(ctx)
		}
		return nil
	}

	if asJSON {
		err = work(ctx, func(string) {})
	} else {
		err = runSyncSpinner(ctx, cmd.ErrOrStderr(), "Resolving summoners...", work)
	}
	if err != nil {
		return err
	}

	out := syncOutput{
		Synced:    make([]syncedSummoner, 0, len(report.Synced)),
		Failed:    make([]syncFailure, 0, len(report.Failed)),
		Champions: champions,
	}
	for _, summoner := range report.Synced {
		out.Synced = append(out.Synced, syncedSummoner{RiotID: summoner.RiotID(), Region: summoner.Region, PUUID: summoner.PUUID})
	}
	for _, failure := range report.Failed {
		out.Failed = append(out.Failed, syncFailure{RiotID: failure.Entry.RiotID(), Error: failure.Err.Error()})
	}
	if championErr != nil {
		out.ChampionError = championErr.Error()
	}

	if err := writeSyncOutput(cmd, out, asJSON, skipChampions); err != nil {
		return err
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d summoners could not be synced", len(report.Failed), len(entries))
	}
	return nil
}

func writeSyncOutput(cmd *cobra.Command, out syncOutput, asJSON, skipChampions bool) error {
	if asJSON {
		return writeJSON(cmd, out)
	}

	w := cmd.OutOrStdout()
	for _, summoner := range out.Synced {
		if _, err := fmt.Fprintf(w, "synced  %s (%s)\n", sanitizeForTerminal(summoner.RiotID), summoner.Region); err != nil {
			return err
		}
	}
	for _, failure := range out.Failed {
		if _, err := fmt.Fprintf(w, "failed  %s: %s\n", sanitizeForTerminal(failure.RiotID), failure.Error); err != nil {
			return err
		}
	}
	if skipChampions {
		return nil
	}
	if out.ChampionError != "" {
		_, err := fmt.Fprintf(w, "champions: %d stored, errors: %s\n", out.Champions, out.ChampionError)
		return err
	}
	_, err := fmt.Fprintf(w, "champions: %d stored\n", out.Champions)
	return err
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
