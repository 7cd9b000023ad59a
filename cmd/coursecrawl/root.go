// Package main provides the entry point for the coursecrawl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for coursecrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coursecrawl",
		Short: "Crawler for the UTokyo online course catalogue",
		Long: `coursecrawl fetches course listings and detail records from the UTokyo
online course catalogue (https://catalog.he.u-tokyo.ac.jp).

It paginates through search results, fetches every matching course's
detail page with bounded concurrency, and exports the outcome as JSON,
CSV, or Markdown. Results are saved to a local SQLite database so runs
can be listed and compared later.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewLookupCmd())
	cmd.AddCommand(NewRunsCmd())
	cmd.AddCommand(NewPresetsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
