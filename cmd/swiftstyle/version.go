package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"swiftstyle/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show swiftstyle build metadata",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("full", false, "include commit hash and build date")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("failed to get full flag: %w", err)
	}
	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "pretty":
		renderVersionPretty(cmd.OutOrStdout(), full, useColor)
		return nil
	case "json":
		return renderVersionJSON(cmd.OutOrStdout(), full)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderVersionPretty(out io.Writer, full, useColor bool) {
	banner := version.Version
	if useColor {
		banner = version.Colored()
	}
	fmt.Fprintf(out, "swiftstyle %s\n", banner)
	if !full {
		return
	}
	fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
	fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
}

func renderVersionJSON(out io.Writer, full bool) error {
	payload := versionPayload{
		Tool:    "swiftstyle",
		Version: version.Version,
	}
	if full {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
