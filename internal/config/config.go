// Package config loads swiftstyle.toml and applies it to a rule registry.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/rules"
)

// FileName is the config file searched for next to and above the lint targets.
const FileName = "swiftstyle.toml"

// ErrUnknownRule marks a config entry or flag naming a rule that does not
// exist. Callers treat it as a configuration error: report and exit before
// any file is checked.
var ErrUnknownRule = errors.New("unknown rule")

// Config mirrors swiftstyle.toml. The zero value is the default
// configuration.
type Config struct {
	Exclude          []string          `toml:"exclude"`
	WarningsAsErrors bool              `toml:"warnings-as-errors"`
	NoWarnings       bool              `toml:"no-warnings"`
	Rules            RulesSection      `toml:"rules"`
	Severity         map[string]string `toml:"severity"`

	// Path records where the config was loaded from, empty for the default.
	Path string `toml:"-"`
}

// RulesSection selects which rules run.
type RulesSection struct {
	Disabled []string `toml:"disabled"`
	Only     []string `toml:"only"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{}
}

// Load parses a swiftstyle.toml. Keys the schema does not know are an error,
// so a typoed option cannot silently do nothing.
func Load(path string) (*Config, error) {
	cfg := &Config{Path: path}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// Find walks up from startDir to locate the nearest swiftstyle.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// ForTarget resolves the config for a lint target: the explicit path when
// given, otherwise the nearest swiftstyle.toml at or above the target,
// otherwise the default.
func ForTarget(target, explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	start := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		start = filepath.Dir(target)
	}
	cfgPath, ok, err := Find(start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(cfgPath)
}

// Apply validates every rule reference and applies rule selection and
// severity overrides to the registry. The first unknown name wins; nothing
// is applied half-way by a later failure that matters, since selection is
// idempotent and the caller abandons the registry on error.
func (c *Config) Apply(reg *rules.Registry) error {
	if len(c.Rules.Only) > 0 {
		if err := reg.Only(c.Rules.Only...); err != nil {
			return wrapRuleErr(c.origin()+": [rules].only", err)
		}
	}
	for _, name := range c.Rules.Disabled {
		if err := reg.Disable(name); err != nil {
			return wrapRuleErr(c.origin()+": [rules].disabled", err)
		}
	}

	names := make([]string, 0, len(c.Severity))
	for name := range c.Severity {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sev, ok := diag.ParseSeverity(c.Severity[name])
		if !ok {
			return fmt.Errorf("%s: [severity] %q: invalid severity %q", c.origin(), name, c.Severity[name])
		}
		if err := reg.Override(name, sev); err != nil {
			return wrapRuleErr(c.origin()+": [severity]", err)
		}
	}
	return nil
}

// ApplyFlags applies --disable and --only with the same unknown-rule policy
// as the file. Flags run after Apply, so they win over the file.
func ApplyFlags(reg *rules.Registry, disable, only []string) error {
	if len(only) > 0 {
		if err := reg.Only(only...); err != nil {
			return wrapRuleErr("--only", err)
		}
	}
	for _, name := range disable {
		if err := reg.Disable(name); err != nil {
			return wrapRuleErr("--disable", err)
		}
	}
	return nil
}

func (c *Config) origin() string {
	if c.Path != "" {
		return c.Path
	}
	return "config"
}

func wrapRuleErr(context string, err error) error {
	var unknown *rules.UnknownRuleError
	if errors.As(err, &unknown) {
		return fmt.Errorf("%s: %w %q", context, ErrUnknownRule, unknown.Name)
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Starter is the swiftstyle.toml written by the init command.
const Starter = `# swiftstyle configuration

# Paths matching these patterns are skipped when walking directories.
exclude = [".build", "Generated"]

# Treat every warning as an error.
warnings-as-errors = false

# Drop warning diagnostics entirely.
no-warnings = false

[rules]
# Rules to turn off. Run "swiftstyle rules" for the full list.
disabled = []

# When non-empty, run only these rules.
only = []

# Per-rule severity overrides: "warning" or "error".
[severity]
# "force-unwrap" = "error"
`
