package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearUserID string

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached features",
	Long:  "Clears the entire cache and persisted snapshot, or just one user's entries with --user.",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().StringVarP(&clearUserID, "user", "u", "", "clear only this user's cached features")
}

func runClear(cmd *cobra.Command, args []string) error {
	store, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if clearUserID != "" {
		store.InvalidateUserFeatures(clearUserID)
		store.Flush()
		fmt.Printf("cleared cached features for user %s\n", clearUserID)
		return nil
	}

	store.ClearCache()
	store.Flush()
	fmt.Println("cleared feature cache and snapshot")
	return nil
}
