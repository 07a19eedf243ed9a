package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredPlain(t *testing.T) {
	origNoColor := color.NoColor
	origVersion := Version
	defer func() {
		color.NoColor = origNoColor
		Version = origVersion
	}()
	color.NoColor = true

	Version = "1.2.3"
	if got := Colored(); got != "1.2.3" {
		t.Errorf("Colored() = %q, want %q", got, "1.2.3")
	}

	Version = "0.3.0-dev"
	if got := Colored(); got != "0.3.0-dev" {
		t.Errorf("Colored() = %q, want %q", got, "0.3.0-dev")
	}
}

func TestColoredUnparseable(t *testing.T) {
	origVersion := Version
	defer func() { Version = origVersion }()

	Version = "snapshot"
	if got := Colored(); got != "snapshot" {
		t.Errorf("Colored() = %q, want the version unchanged", got)
	}
}

func TestOverridableBuildMetadata(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit = "abc123def456"
	BuildDate = "2026-08-23T10:30:00Z"
	if GitCommit != "abc123def456" || BuildDate != "2026-08-23T10:30:00Z" {
		t.Errorf("metadata not settable: %q %q", GitCommit, BuildDate)
	}
}
