// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the manifest-recon CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the manifest-recon CLI.
var rootCmd = &cobra.Command{
	Use:   "manifest-recon",
	Short: "Reconcile a passenger manifest against two reference manifests",
	Long: `manifest-recon matches each row of a combined passenger manifest against
two independently curated reference manifests by normalized name and ticket
number, labels every row with its provenance, and writes the enriched table.

Unmatched rows never abort the pass; they are listed in the summary for
manual review. Use the run subcommand for the reconciliation pass, stats to
query a previously stored result, and tools to manage developer tooling.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./manifest-recon.yaml or ~/.config/manifest-recon/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("manifest-recon")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "manifest-recon"))
		}
	}

	viper.SetEnvPrefix("MANIFEST_RECON")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
