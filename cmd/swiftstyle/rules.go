package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swiftstyle/internal/config"
	"swiftstyle/internal/diagfmt"
	"swiftstyle/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the style rules and their effective settings",
	Long:  "Rules lists every built-in rule with its severity and enabled state, after the nearest swiftstyle.toml is applied.",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "table", "output format (table|plain|json)")
	rulesCmd.Flags().String("config", "", "config file (default: nearest swiftstyle.toml)")
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if _, err := resolveColor(cmd); err != nil {
		return err
	}

	reg := rules.Builtin()
	cfg, err := config.ForTarget(".", configPath)
	if err != nil {
		return err
	}
	if err := cfg.Apply(reg); err != nil {
		return err
	}

	switch format {
	case "table":
		return diagfmt.RulesTable(os.Stdout, reg)
	case "plain":
		return diagfmt.RulesPlain(os.Stdout, reg)
	case "json":
		return diagfmt.RulesJSON(os.Stdout, reg)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
