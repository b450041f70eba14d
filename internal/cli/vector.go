package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var vectorActivityPath string

var vectorCmd = &cobra.Command{
	Use:   "vector <feature,feature,...>",
	Short: "Compute a feature vector for an activity file",
	Long:  "Computes each named feature independently. Unknown features report 0 rather than failing the batch.",
	Args:  cobra.ExactArgs(1),
	RunE:  runVector,
}

func init() {
	vectorCmd.Flags().StringVarP(&vectorActivityPath, "activity", "a", "", "path to activity JSON file (required)")
	vectorCmd.MarkFlagRequired("activity")
}

func runVector(cmd *cobra.Command, args []string) error {
	act, err := loadActivity(vectorActivityPath)
	if err != nil {
		return err
	}

	store, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Flush()

	names := strings.Split(args[0], ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}

	vec := store.GetFeatureVector(names, act)

	sorted := make([]string, 0, len(vec))
	for name := range vec {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)
	for _, name := range sorted {
		fmt.Printf("%-26s %g\n", name, vec[name])
	}
	return nil
}
