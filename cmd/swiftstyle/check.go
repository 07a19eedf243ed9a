package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"swiftstyle/internal/cache"
	"swiftstyle/internal/config"
	"swiftstyle/internal/diagfmt"
	"swiftstyle/internal/engine"
	"swiftstyle/internal/observ"
	"swiftstyle/internal/rules"
	"swiftstyle/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.swift|directory>...",
	Short: "Check Swift sources against the style rules",
	Long:  `Check runs the style rules over the given files, or over every *.swift file under the given directories, and reports what they find.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory runs (0=auto)")
	checkCmd.Flags().StringSlice("disable", nil, "disable rules by name")
	checkCmd.Flags().StringSlice("only", nil, "run only the named rules")
	checkCmd.Flags().Bool("no-warnings", false, "drop warning diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().String("config", "", "config file (default: nearest swiftstyle.toml)")
	checkCmd.Flags().Bool("no-cache", false, "disable the result cache")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "show fix previews in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("watch", false, "re-run whenever a watched file changes")
	checkCmd.Flags().String("ui", "auto", "interactive progress for directory runs (auto|on|off)")
}

// renderOptions bundles everything the report renderers need.
type renderOptions struct {
	format string
	pretty diagfmt.PrettyOpts
	json   diagfmt.JSONOpts
	quiet  bool
	args   []string
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	disable, err := cmd.Flags().GetStringSlice("disable")
	if err != nil {
		return fmt.Errorf("failed to get disable flag: %w", err)
	}
	only, err := cmd.Flags().GetStringSlice("only")
	if err != nil {
		return fmt.Errorf("failed to get only flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("--no-warnings and --warnings-as-errors cannot be used together")
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiMode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}

	// Configuration errors fail the run before any file is touched.
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

	opts := engine.Options{
		Registry:         reg,
		MaxDiagnostics:   maxDiagnostics,
		Jobs:             jobs,
		Exclude:          cfg.Exclude,
		NoWarnings:       cfg.NoWarnings || noWarnings,
		WarningsAsErrors: cfg.WarningsAsErrors || warningsAsErrors,
	}
	if !noCache {
		if store, cacheErr := cache.Open("swiftstyle"); cacheErr == nil {
			opts.Cache = store
		}
		// An unopenable cache is not worth failing the run over.
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	showFixes := suggest || preview
	render := renderOptions{
		format: format,
		pretty: diagfmt.PrettyOpts{
			Color:       useColor,
			PathMode:    pathMode,
			ShowNotes:   withNotes,
			ShowFixes:   showFixes,
			ShowPreview: preview,
		},
		json: diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  preview,
		},
		quiet: quiet,
		args:  args,
	}

	if watch {
		return runCheckWatch(cmd, args, opts, render)
	}

	if showTimings {
		opts.Timer = observ.NewTimer()
	}

	var result *engine.Result
	if format == "pretty" && shouldUseTUI(uiMode) {
		result, err = runCheckWithUI(cmd, args, opts)
	} else {
		result, err = engine.CheckMany(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	if err := renderReport(os.Stdout, result, reg, render); err != nil {
		return err
	}
	if opts.Timer != nil {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
	}
	if code := result.ExitCode(); code != 0 {
		return silentExit(cmd, code)
	}
	return nil
}

func renderReport(w io.Writer, result *engine.Result, reg *rules.Registry, opts renderOptions) error {
	switch opts.format {
	case "pretty":
		if err := diagfmt.Pretty(w, result.Bag, result.FileSet, opts.pretty); err != nil {
			return err
		}
		if !opts.quiet {
			printSummary(w, result)
		}
	case "short":
		if err := diagfmt.Short(w, result.Bag, result.FileSet, opts.pretty.PathMode); err != nil {
			return err
		}
	case "json":
		if err := diagfmt.JSON(w, result.Bag, result.FileSet, opts.json); err != nil {
			return err
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "swiftstyle",
			ToolVersion:    version.Version,
			InvocationArgs: opts.args,
		}
		if err := diagfmt.Sarif(w, result.Bag, result.FileSet, reg, meta); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", opts.format)
	}
	return nil
}

func printSummary(w io.Writer, result *engine.Result) {
	errs, warns, _ := result.Bag.CountBySeverity()
	checked := len(result.Files)
	if result.Bag.Len() == 0 {
		fmt.Fprintf(w, "checked %d file(s), no issues found\n", checked)
		return
	}
	fmt.Fprintf(w, "checked %d file(s): %d error(s), %d warning(s)\n", checked, errs, warns)
}
