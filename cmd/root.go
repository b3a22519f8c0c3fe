package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "riftwatch",
		Short:         "Track League of Legends games and announce them on Discord",
		Long:          "riftwatch polls the Riot API for a roster of summoners, records when their games start and finish, and posts grouped notifications to a Discord webhook.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.AddCommand(newVersionCmd())

	app, err := wireApp()
	if err != nil {
		rootCmd.Args = cobra.ArbitraryArgs
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newServeCmd(app),
		newSyncCmd(app),
		newRosterCmd(app),
		newStatusCmd(app),
		newEventsCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
