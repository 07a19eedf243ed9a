package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"swiftstyle/internal/rules"
)

// RuleInfo is one rule of the `rules --format json` output.
type RuleInfo struct {
	Name      string `json:"name"`
	Summary   string `json:"summary"`
	Rationale string `json:"rationale,omitempty"`
	Severity  string `json:"severity"`
	Fixable   bool   `json:"fixable"`
	Enabled   bool   `json:"enabled"`
}

// BuildRuleInfos lists every registered rule in registration order, with the
// registry's effective severity and enabled state.
func BuildRuleInfos(reg *rules.Registry) []RuleInfo {
	all := reg.All()
	infos := make([]RuleInfo, len(all))
	for i, rule := range all {
		infos[i] = RuleInfo{
			Name:      rule.Name,
			Summary:   rule.Summary,
			Rationale: rule.Rationale,
			Severity:  reg.EffectiveSeverity(rule).String(),
			Fixable:   rule.Fixable,
			Enabled:   reg.Enabled(rule.Name),
		}
	}
	return infos
}

// RulesTable renders the rule listing as a bordered table.
func RulesTable(w io.Writer, reg *rules.Registry) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Severity", "Fixable", "Enabled", "Summary"})

	for _, info := range BuildRuleInfos(reg) {
		t.AppendRow(table.Row{
			info.Name,
			info.Severity,
			yesNo(info.Fixable),
			yesNo(info.Enabled),
			info.Summary,
		})
	}
	t.Render()
	return nil
}

// RulesPlain renders one rule per line, grep-friendly.
func RulesPlain(w io.Writer, reg *rules.Registry) error {
	for _, info := range BuildRuleInfos(reg) {
		state := ""
		if !info.Enabled {
			state = " (disabled)"
		}
		if _, err := fmt.Fprintf(w, "%-22s %-8s %s%s\n", info.Name, info.Severity, info.Summary, state); err != nil {
			return err
		}
	}
	return nil
}

// RulesJSON renders the rule listing as a JSON array.
func RulesJSON(w io.Writer, reg *rules.Registry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildRuleInfos(reg))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
