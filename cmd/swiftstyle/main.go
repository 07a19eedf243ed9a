package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"swiftstyle/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "swiftstyle",
	Short: "A style checker for Swift sources",
	Long:  `swiftstyle checks Swift source files against a set of style rules and can apply the fixes the rules suggest.`,
}

// exitError carries a process exit status through cobra without printing
// anything; the diagnostics were already reported.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show pipeline timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")

	// Ctrl-C cancels the context; in-flight runs stop between files and the
	// watch loop exits cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		// Anything cobra reports itself is a usage or configuration
		// failure, not a lint finding.
		os.Exit(2)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveColor applies the persistent --color flag to the global color state
// and reports whether output should be colored.
func resolveColor(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		color.NoColor = false
		return true, nil
	case "off":
		color.NoColor = true
		return false, nil
	case "auto":
		use := isTerminal(os.Stdout)
		color.NoColor = !use
		return use, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// silentExit suppresses cobra's error and usage output and returns the exit
// status for main to pass through.
func silentExit(cmd *cobra.Command, code int) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return exitError{code: code}
}
