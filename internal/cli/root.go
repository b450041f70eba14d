package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Embedded feature store for user-activity signals",
	Long:  "Cadence computes, versions, and caches scalar features derived from a user's activity history. Single Go binary, local SQLite persistence.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(vectorCmd)
	rootCmd.AddCommand(clearCmd)
}
