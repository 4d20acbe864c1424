// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manifest-recon/internal/manifest"
	"github.com/pdiddy/manifest-recon/internal/reconcile"
	"github.com/pdiddy/manifest-recon/internal/store"
	"github.com/pdiddy/manifest-recon/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile the primary manifest against the two references",
	Long: `Run loads the primary manifest and both reference manifests, classifies
every primary row by normalized name and ticket (reference A first, then B),
and writes the enriched table with a match_source column.

The pass always completes: unmatched rows are written with an empty
match_source cell and listed in the summary for manual review.`,
	RunE: runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := reconcileConfig(cmd)
	if err != nil {
		return err
	}

	primary, err := manifest.Load(cfg.PrimaryPath)
	if err != nil {
		return err
	}
	refA, err := manifest.Load(cfg.RefAPath)
	if err != nil {
		return err
	}
	refB, err := manifest.Load(cfg.RefBPath)
	if err != nil {
		return err
	}

	out := reconcile.Run(primary, refA, refB)

	if err := manifest.WriteEnriched(cfg.OutputPath, primary, out.Matches); err != nil {
		return err
	}

	if cfg.ReportPath != "" {
		data, err := reconcile.MarshalReport(cfg, out.Summary, time.Now())
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.ReportPath, data, 0o644); err != nil {
			return fmt.Errorf("writing report %s: %w", cfg.ReportPath, err)
		}
	}

	if dbPath := stringOr(cmd, "db", "store.db_path"); dbPath != "" {
		s, err := store.New(types.StoreConfig{DBPath: dbPath})
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Save(context.Background(), primary, out.Matches); err != nil {
			return err
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return reconcile.FormatJSON(out, os.Stdout)
	}
	reconcile.FormatSummary(out, os.Stdout)
	return nil
}

// reconcileConfig assembles the pass configuration from flags, falling
// back to the config file for anything unset. The three inputs and the
// output are required.
func reconcileConfig(cmd *cobra.Command) (types.ReconcileConfig, error) {
	cfg := types.ReconcileConfig{
		PrimaryPath: stringOr(cmd, "primary", "reconcile.primary_path"),
		RefAPath:    stringOr(cmd, "ref-a", "reconcile.ref_a_path"),
		RefBPath:    stringOr(cmd, "ref-b", "reconcile.ref_b_path"),
		OutputPath:  stringOr(cmd, "out", "reconcile.output_path"),
		ReportPath:  stringOr(cmd, "report", "reconcile.report_path"),
	}

	for _, req := range []struct{ flag, val string }{
		{"primary", cfg.PrimaryPath},
		{"ref-a", cfg.RefAPath},
		{"ref-b", cfg.RefBPath},
		{"out", cfg.OutputPath},
	} {
		if req.val == "" {
			return cfg, fmt.Errorf("--%s is required (or set it in the config file)", req.flag)
		}
	}
	return cfg, nil
}

// stringOr reads a flag, falling back to the viper key when the flag is
// unset.
func stringOr(cmd *cobra.Command, flag, key string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return viper.GetString(key)
}

func init() {
	runCmd.Flags().String("primary", "", "primary manifest CSV (combined table)")
	runCmd.Flags().String("ref-a", "", "reference manifest A CSV (tested first)")
	runCmd.Flags().String("ref-b", "", "reference manifest B CSV (tested second)")
	runCmd.Flags().String("out", "", "enriched output CSV path")
	runCmd.Flags().String("report", "", "optional YAML report path")
	runCmd.Flags().String("db", "", "optional sqlite database to persist the result")
	runCmd.Flags().Bool("json", false, "print the summary as JSON")

	rootCmd.AddCommand(runCmd)
}
