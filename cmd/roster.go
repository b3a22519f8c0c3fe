package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/riftwatch/internal/domain"
	"github.com/spf13/cobra"
)

func newRosterCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the tracked summoners",
	}

	cmd.AddCommand(
		newRosterAddCmd(app),
		newRosterListCmd(app),
		newRosterRemoveCmd(app),
	)

	return cmd
}

func newRosterAddCmd(app *app) *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "add <name#tag>...",
		Short: "Add summoners to the roster file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			region = strings.ToLower(strings.TrimSpace(region))
			if region == "" {
				region = app.cfg.Riot.Region
			}
			if !domain.KnownRegion(region) {
				return fmt.Errorf("unknown region %q", region)
			}

			entries := make([]domain.RosterEntry, 0, len(args))
			for _, arg := range args {
				gameName, tagLine, err := domain.ParseRiotID(arg)
				if err != nil {
					return err
				}
				entries = append(entries, domain.RosterEntry{GameName: gameName, TagLine: tagLine, Region: region})
			}

			for _, entry := range entries {
				if err := app.roster.Add(cmd.Context(), entry); err != nil {
					return fmt.Errorf("add %s: %w", entry.RiotID(), err)
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", entry.RiotID(), entry.Region); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "Platform region (default: riot.region)")

	return cmd
}

type rosterListItem struct {
	RiotID string `json:"riot_id"`
	Region string `json:"region"`
	Source string `json:"source"`
}

func newRosterListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the roster from the config and the roster file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fromFile, err := app.roster.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("read roster: %w", err)
			}
			merged, err := app.rosterEntries(cmd.Context())
			if err != nil {
				return err
			}

			items := make([]rosterListItem, 0, len(merged))
			for _, entry := range merged {
				source := "config"
				if containsRiotID(fromFile, entry) {
					source = "file"
				}
				items = append(items, rosterListItem{RiotID: entry.RiotID(), Region: entry.Region, Source: source})
			}

			if asJSON {
				return writeJSON(cmd, items)
			}

			if len(items) == 0 {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "roster is empty (%s)\n", app.roster.Path())
				return err
			}
			for _, item := range items {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", item.RiotID, item.Region, item.Source); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newRosterRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name#tag>",
		Aliases: []string{"rm"},
		Short:   "Remove a summoner from the roster file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameName, tagLine, err := domain.ParseRiotID(args[0])
			if err != nil {
				return err
			}

			if err := app.roster.Remove(cmd.Context(), gameName, tagLine); err != nil {
				if errors.Is(err, domain.ErrRosterEntryNotFound) {
					return fmt.Errorf("%s is not in the roster file; entries from SUMMONER_NAMES are edited in the environment", args[0])
				}
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s#%s\n", gameName, tagLine)
			return err
		},
	}
}
