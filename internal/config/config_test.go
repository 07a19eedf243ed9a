package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/rules"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
exclude = ["Generated", ".build"]
warnings-as-errors = true
no-warnings = false

[rules]
disabled = ["final-class"]
only = []

[severity]
"force-unwrap" = "error"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != "Generated" {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if !cfg.WarningsAsErrors {
		t.Error("WarningsAsErrors not set")
	}
	if cfg.NoWarnings {
		t.Error("NoWarnings should be false")
	}
	if len(cfg.Rules.Disabled) != 1 || cfg.Rules.Disabled[0] != "final-class" {
		t.Errorf("Rules.Disabled = %v", cfg.Rules.Disabled)
	}
	if cfg.Severity["force-unwrap"] != "error" {
		t.Errorf("Severity = %v", cfg.Severity)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), FileName)); err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "warnigs-as-errors = true\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load accepted a typoed key")
	}
	if !strings.Contains(err.Error(), "unknown key") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "exclude = [\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
	if !strings.Contains(err.Error(), "failed to parse TOML") {
		t.Errorf("err = %v", err)
	}
}

func TestApplyDisablesAndOverrides(t *testing.T) {
	cfg := &Config{
		Rules:    RulesSection{Disabled: []string{"final-class"}},
		Severity: map[string]string{"force-unwrap": "error"},
	}
	reg := rules.Builtin()

	if err := cfg.Apply(reg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if reg.Enabled("final-class") {
		t.Error("final-class still enabled")
	}
	rule, ok := reg.Lookup("force-unwrap")
	if !ok {
		t.Fatal("force-unwrap not registered")
	}
	if sev := reg.EffectiveSeverity(rule); sev != diag.SevError {
		t.Errorf("effective severity = %v, want error", sev)
	}
}

func TestApplyOnlyList(t *testing.T) {
	cfg := &Config{Rules: RulesSection{Only: []string{"prefer-let"}}}
	reg := rules.Builtin()

	if err := cfg.Apply(reg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	active := reg.Active()
	if len(active) != 1 || active[0].Name != "prefer-let" {
		t.Errorf("active rules = %d", len(active))
	}
}

func TestApplyUnknownRule(t *testing.T) {
	cfg := &Config{
		Path:  "proj/swiftstyle.toml",
		Rules: RulesSection{Disabled: []string{"no-such-rule"}},
	}

	err := cfg.Apply(rules.Builtin())
	if !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("err = %v, want ErrUnknownRule", err)
	}
	if !strings.Contains(err.Error(), "proj/swiftstyle.toml") {
		t.Errorf("err %v does not name the config file", err)
	}
	if !strings.Contains(err.Error(), "no-such-rule") {
		t.Errorf("err %v does not name the rule", err)
	}
}

func TestApplyUnknownRuleInSeverity(t *testing.T) {
	cfg := &Config{Severity: map[string]string{"no-such-rule": "error"}}

	if err := cfg.Apply(rules.Builtin()); !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("err = %v, want ErrUnknownRule", err)
	}
}

func TestApplyInvalidSeverityValue(t *testing.T) {
	cfg := &Config{Severity: map[string]string{"force-unwrap": "fatal"}}

	err := cfg.Apply(rules.Builtin())
	if err == nil {
		t.Fatal("Apply accepted an invalid severity")
	}
	if !strings.Contains(err.Error(), "invalid severity") {
		t.Errorf("err = %v", err)
	}
}

func TestApplyFlagsOverrideAndValidate(t *testing.T) {
	reg := rules.Builtin()
	if err := ApplyFlags(reg, []string{"type-name"}, nil); err != nil {
		t.Fatalf("ApplyFlags: %v", err)
	}
	if reg.Enabled("type-name") {
		t.Error("type-name still enabled")
	}

	if err := ApplyFlags(reg, []string{"bogus"}, nil); !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("err = %v, want ErrUnknownRule", err)
	}
	if err := ApplyFlags(reg, nil, []string{"bogus"}); !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("err = %v, want ErrUnknownRule", err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "no-warnings = true\n")
	leaf := filepath.Join(root, "Sources", "App")
	if err := os.MkdirAll(leaf, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, ok, err := Find(leaf)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatal("config not found")
	}
	if found != path {
		t.Errorf("found %q, want %q", found, path)
	}
}

func TestFindNothing(t *testing.T) {
	// os.TempDir ancestors should not carry a stray swiftstyle.toml, but a
	// developer checkout might; only assert when nothing was found at all.
	_, ok, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok {
		t.Skip("a swiftstyle.toml above the temp dir shadows this test")
	}
}

func TestForTargetExplicitWins(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "no-warnings = true\n")
	explicit := filepath.Join(dir, "other.toml")
	if err := os.WriteFile(explicit, []byte("warnings-as-errors = true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := ForTarget(dir, explicit)
	if err != nil {
		t.Fatalf("ForTarget: %v", err)
	}
	if !cfg.WarningsAsErrors || cfg.NoWarnings {
		t.Errorf("explicit config not used: %+v", cfg)
	}
}

func TestForTargetUsesFileParent(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "no-warnings = true\n")
	target := filepath.Join(dir, "main.swift")
	if err := os.WriteFile(target, []byte("let x = 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := ForTarget(target, "")
	if err != nil {
		t.Fatalf("ForTarget: %v", err)
	}
	if !cfg.NoWarnings {
		t.Errorf("nearest config not used: %+v", cfg)
	}
}

func TestStarterIsValid(t *testing.T) {
	path := writeConfig(t, t.TempDir(), Starter)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(Starter): %v", err)
	}
	if err := cfg.Apply(rules.Builtin()); err != nil {
		t.Fatalf("Apply(Starter): %v", err)
	}
	if len(cfg.Exclude) != 2 {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
}
