package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/utcatalog/coursecrawl/internal/config"
)

// NewPresetsCmd creates the presets command.
func NewPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the named searches in the presets file",
		Long: `Presets lists the named searches defined in the .coursecrawl presets
file, with the filters each one sets.

Examples:
  # List presets from the discovered presets file
  coursecrawl presets

  # List presets from a specific file
  coursecrawl presets -c mypresets.yaml`,
		Args: cobra.NoArgs,
		RunE: runPresetsCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Presets file path (default: .coursecrawl in current or home directory)")

	return cmd
}

// runPresetsCmd executes the presets command.
func runPresetsCmd(cmd *cobra.Command, _ []string) error {
	configFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	configPath := config.FindConfigFile(configFlag)
	if configPath == "" {
		if configFlag != "" {
			return fmt.Errorf("presets file not found: %s", configFlag)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No presets file found.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'coursecrawl init' to create one.")
		return nil
	}

	cf, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load presets file %s: %w", configPath, err)
	}

	out := cmd.OutOrStdout()
	names := cf.PresetNames()
	if len(names) == 0 {
		fmt.Fprintf(out, "No presets defined in %s\n", configPath)
		return nil
	}
	sort.Strings(names)

	fmt.Fprintf(out, "Presets in %s (%d):\n\n", configPath, len(names))
	for _, name := range names {
		preset, _ := cf.GetPreset(name)
		fmt.Fprintf(out, "  %s\n", name)
		for _, line := range describePreset(preset) {
			fmt.Fprintf(out, "    %s\n", line)
		}
	}

	fmt.Fprintln(out, "\nUse 'coursecrawl crawl --preset <name>' to run one.")
	return nil
}

// describePreset renders the filters a preset sets, one per line.
func describePreset(p config.Preset) []string {
	var lines []string
	if p.Keyword != "" {
		lines = append(lines, "keyword:     "+p.Keyword)
	}
	if p.Institution != "" {
		lines = append(lines, "institution: "+p.Institution)
	}
	if p.Faculty != 0 {
		lines = append(lines, fmt.Sprintf("faculty:     %d", p.Faculty))
	}
	if len(p.Grades) > 0 {
		lines = append(lines, "grades:      "+joinInts(p.Grades))
	}
	if len(p.Semesters) > 0 {
		lines = append(lines, "semesters:   "+strings.Join(p.Semesters, ", "))
	}
	if len(p.Weekdays) > 0 {
		lines = append(lines, "weekdays:    "+strings.Join(p.Weekdays, ", "))
	}
	if len(p.Periods) > 0 {
		lines = append(lines, "periods:     "+joinInts(p.Periods))
	}
	if len(p.Languages) > 0 {
		lines = append(lines, "languages:   "+strings.Join(p.Languages, ", "))
	}
	if len(lines) == 0 {
		lines = append(lines, "(no filters)")
	}
	return lines
}

// joinInts renders an int slice as a comma-separated list.
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
