package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swiftstyle/internal/config"
	"swiftstyle/internal/engine"
	"swiftstyle/internal/fix"
	"swiftstyle/internal/rules"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.swift|directory>...",
	Short: "Apply the fixes the style rules suggest",
	Long:  "Fix runs the style rules, gathers the fixes attached to their findings, and applies them according to the chosen strategy.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every always-safe fix")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fixes of one rule, by name")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing")
	fixCmd.Flags().StringSlice("disable", nil, "disable rules by name")
	fixCmd.Flags().StringSlice("only", nil, "run only the named rules")
	fixCmd.Flags().String("config", "", "config file (default: nearest swiftstyle.toml)")
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fmt.Errorf("failed to get once flag: %w", err)
	}
	targetRule, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	disable, err := cmd.Flags().GetStringSlice("disable")
	if err != nil {
		return fmt.Errorf("failed to get disable flag: %w", err)
	}
	only, err := cmd.Flags().GetStringSlice("only")
	if err != nil {
		return fmt.Errorf("failed to get only flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	if targetRule != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}
	mode := fix.ApplyModeOnce
	switch {
	case targetRule != "":
		mode = fix.ApplyModeID
	case applyAll:
		mode = fix.ApplyModeAll
	}

	reg := rules.Builtin()
	cfg, err := config.ForTarget(args[0], configPath)
	if err != nil {
		return err
	}
	if err := cfg.Apply(reg); err != nil {
		return err
	}
	if err := config.ApplyFlags(reg, disable, only); err != nil {
		return err
	}
	if targetRule != "" {
		if _, ok := reg.Lookup(targetRule); !ok {
			return fmt.Errorf("%w %q", config.ErrUnknownRule, targetRule)
		}
	}

	// No cache: edits are computed against the bytes on disk right now.
	result, err := engine.CheckMany(cmd.Context(), args, engine.Options{
		Registry:       reg,
		MaxDiagnostics: maxDiagnostics,
		Exclude:        cfg.Exclude,
	})
	if err != nil {
		return err
	}

	res, applyErr := fix.Apply(result.FileSet, result.Bag.Items(), fix.ApplyOptions{
		Mode:   mode,
		Rule:   targetRule,
		DryRun: dryRun,
	})
	return reportApplyResult(res, applyErr)
}

func reportApplyResult(res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}
	out := os.Stdout

	verb := "applied"
	if res.DryRun {
		verb = "would apply"
	}
	if len(res.Applied) > 0 {
		fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			fmt.Fprintf(out, "  %s [%s] — %s (%d edit(s), %s)\n",
				item.Title, item.Code.ID(), item.Path, item.EditCount, item.Applicability)
		}
	}
	if len(res.FileChanges) > 0 {
		header := "updated files:"
		if res.DryRun {
			header = "files that would change:"
		}
		fmt.Fprintln(out, header)
		for _, change := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edit(s))\n", change.Path, change.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "skipped fixes:")
		for _, skip := range res.Skipped {
			title := skip.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Fprintf(out, "  %s: %s\n", title, skip.Reason)
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(out, "no applicable fixes found")
			return nil
		}
		return applyErr
	}
	if len(res.Applied) == 0 {
		fmt.Fprintln(out, "no fixes applied")
	}
	return nil
}
