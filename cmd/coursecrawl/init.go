package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/coursecrawl.yaml
var configTemplate embed.FS

// configFileName is the default presets file name.
const configFileName = ".coursecrawl"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new coursecrawl presets file",
		Long: `Init creates a new .coursecrawl presets file in the current directory.

The generated file includes:
- Commented examples of named search presets
- Documentation for every preset field

Examples:
  # Create .coursecrawl in current directory
  coursecrawl init

  # Create the presets file at a specific path
  coursecrawl init -o mypresets.yaml

  # Force overwrite existing file
  coursecrawl init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the presets file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing presets file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("presets file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/coursecrawl.yaml")
	if err != nil {
		return fmt.Errorf("failed to read presets template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write presets file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write presets file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created presets file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to define named searches, then run:")
	fmt.Fprintln(cmd.OutOrStdout(), "  coursecrawl crawl --preset <name>")

	return nil
}
