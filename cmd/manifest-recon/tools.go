// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manifest-recon/internal/toolchain"
	"github.com/pdiddy/manifest-recon/pkg/types"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Manage developer tooling",
}

var toolsEnsureCmd = &cobra.Command{
	Use:   "ensure <tool>",
	Short: "Install a tool if it is not already present",
	Long: `Ensure checks whether the named tool is on PATH and installs it from the
requested source otherwise. Sources: proxy (default registry), github
(source-control host; tool must be a full module path), or the named
alternate registries mirror-a and mirror-b.

An unrecognized source or a tool absent from the default registry is fatal.`,
	Args: cobra.ExactArgs(1),
	RunE: runToolsEnsure,
}

func runToolsEnsure(cmd *cobra.Command, args []string) error {
	srcFlag, _ := cmd.Flags().GetString("source")
	src, err := toolchain.ParseSource(srcFlag)
	if err != nil {
		return err
	}

	cfg := types.ToolchainConfig{
		GoBin:   viper.GetString("toolchain.go_bin"),
		Mirrors: viper.GetStringMapString("toolchain.mirrors"),
	}

	capture, err := toolchain.EnsureInstalled(toolchain.NewResolver(cfg), args[0], src)
	for _, line := range capture.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", line)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		for _, line := range capture.Notes {
			fmt.Fprintln(os.Stderr, line)
		}
	}
	for _, line := range capture.Stdout {
		fmt.Println(line)
	}
	return err
}

func init() {
	toolsEnsureCmd.Flags().String("source", "", "install source: proxy, github, mirror-a, or mirror-b")
	toolsEnsureCmd.Flags().Bool("verbose", false, "print diagnostic notes")

	toolsCmd.AddCommand(toolsEnsureCmd)
	rootCmd.AddCommand(toolsCmd)
}
