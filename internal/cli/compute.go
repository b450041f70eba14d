package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	computeActivityPath string
	computeVersion      string
)

var computeCmd = &cobra.Command{
	Use:   "compute <feature>",
	Short: "Compute a single feature for an activity file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompute,
}

func init() {
	computeCmd.Flags().StringVarP(&computeActivityPath, "activity", "a", "", "path to activity JSON file (required)")
	computeCmd.Flags().StringVar(&computeVersion, "feature-version", "", "feature version pin (default 1.0)")
	computeCmd.MarkFlagRequired("activity")
}

func runCompute(cmd *cobra.Command, args []string) error {
	act, err := loadActivity(computeActivityPath)
	if err != nil {
		return err
	}

	store, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Flush()

	value, err := store.GetFeatureVersion(args[0], act, computeVersion)
	if err != nil {
		return err
	}
	fmt.Printf("%s = %g\n", args[0], value)
	return nil
}
