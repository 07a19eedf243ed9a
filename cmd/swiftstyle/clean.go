package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swiftstyle/internal/cache"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the result cache",
	Long:  "Clean removes every cached lint result. The next run re-lints everything from scratch.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	store, err := cache.Open("swiftstyle")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	dir := store.Dir()
	if err := store.DropAll(); err != nil {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	fmt.Fprintf(os.Stdout, "removed %s\n", dir)
	return nil
}
