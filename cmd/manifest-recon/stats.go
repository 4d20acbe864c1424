package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manifest-recon/internal/store"
	"github.com/pdiddy/manifest-recon/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show classification counts from a stored reconciliation",
	Long: `Stats reads the sqlite database written by run --db and prints the
per-classification counts and the unmatched names, without re-reading the
source manifests.`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	dbPath := stringOr(cmd, "db", "store.db_path")
	if dbPath == "" {
		return fmt.Errorf("--db is required (or set store.db_path in the config file)")
	}

	s, err := store.New(types.StoreConfig{DBPath: dbPath})
	if err != nil {
		return err
	}
	defer s.Close()

	sum, err := s.Stats(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}

	fmt.Printf("%d rows: %d from reference A, %d from reference B, %d unmatched\n",
		sum.Rows, sum.MatchedA, sum.MatchedB, sum.Unmatched)
	for _, name := range sum.UnmatchedNames {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func init() {
	statsCmd.Flags().String("db", "", "sqlite database written by run --db")
	statsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(statsCmd)
}
