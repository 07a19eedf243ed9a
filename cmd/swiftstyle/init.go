package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"swiftstyle/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Write a starter swiftstyle.toml",
	Long: `Init writes a commented starter swiftstyle.toml into the given directory,
or into the current directory when none is given. An existing config is never
overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(_ *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	cfgPath := filepath.Join(target, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.WriteFile(cfgPath, []byte(config.Starter), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfgPath, err)
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", cfgPath)
	return nil
}
