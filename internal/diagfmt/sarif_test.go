package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/rules"
	"swiftstyle/internal/source"
)

func TestSarifDocument(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.swift", []byte("let x = value!\n"))

	reg := rules.Builtin()
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.StyleForceUnwrap,
		Message:  "force unwrapping can crash at runtime",
		Primary:  source.Span{File: fileID, Start: 8, End: 14},
	})
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  "expected an expression",
		Primary:  source.Span{File: fileID, Start: 0, End: 1},
	})

	meta := SarifRunMeta{
		ToolName:       "swiftstyle",
		ToolVersion:    "1.2.3",
		InfoURI:        "https://example.com/swiftstyle",
		InvocationArgs: []string{"swiftstyle", "check", "."},
	}

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, reg, meta); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	if !strings.Contains(buf.String(), `"$schema": "https://json.schemastore.org/sarif-2.1.0.json"`) {
		t.Errorf("expected $schema key, got:\n%s", buf.String())
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF output: %v\n%s", err, buf.String())
	}

	if log.Version != "2.1.0" {
		t.Errorf("version: got %s", log.Version)
	}
	if len(log.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(log.Runs))
	}
	run := log.Runs[0]

	driver := run.Tool.Driver
	if driver.Name != "swiftstyle" || driver.Version != "1.2.3" {
		t.Errorf("driver: got %s %s", driver.Name, driver.Version)
	}
	if driver.InformationURI != meta.InfoURI {
		t.Errorf("informationUri: got %s", driver.InformationURI)
	}
	if len(driver.Rules) != reg.Len() {
		t.Fatalf("expected %d rules, got %d", reg.Len(), len(driver.Rules))
	}
	if driver.Rules[0].ID != "force-unwrap" {
		t.Errorf("first rule: got %s", driver.Rules[0].ID)
	}
	for _, rule := range driver.Rules {
		if rule.ShortDescription.Text == "" {
			t.Errorf("rule %s has no shortDescription", rule.ID)
		}
		if rule.FullDescription == nil || rule.FullDescription.Text == "" {
			t.Errorf("rule %s has no fullDescription", rule.ID)
		}
		if rule.DefaultConfig.Level != "warning" {
			t.Errorf("rule %s level: got %s", rule.ID, rule.DefaultConfig.Level)
		}
	}

	if len(run.Invocations) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(run.Invocations))
	}
	if !run.Invocations[0].ExecutionSuccessful {
		t.Error("expected executionSuccessful")
	}
	if len(run.Invocations[0].Arguments) != 3 {
		t.Errorf("arguments: got %v", run.Invocations[0].Arguments)
	}

	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}

	styleRes := run.Results[0]
	if styleRes.RuleID != "force-unwrap" {
		t.Errorf("result ruleId: got %s", styleRes.RuleID)
	}
	if styleRes.RuleIndex == nil || *styleRes.RuleIndex != 0 {
		t.Errorf("result ruleIndex: got %v", styleRes.RuleIndex)
	}
	if styleRes.Level != "warning" {
		t.Errorf("result level: got %s", styleRes.Level)
	}
	loc := styleRes.Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "test.swift" {
		t.Errorf("artifact uri: got %s", loc.ArtifactLocation.URI)
	}
	region := loc.Region
	if region.StartLine != 1 || region.StartColumn != 9 || region.EndLine != 1 || region.EndColumn != 15 {
		t.Errorf("region: got %+v", region)
	}

	// Parser codes are not registry rules; they carry no ruleIndex.
	synRes := run.Results[1]
	if synRes.RuleID != diag.SynUnexpectedToken.ID() {
		t.Errorf("syntax ruleId: got %s", synRes.RuleID)
	}
	if synRes.RuleIndex != nil {
		t.Errorf("syntax ruleIndex: got %d, want absent", *synRes.RuleIndex)
	}
	if synRes.Level != "error" {
		t.Errorf("syntax level: got %s", synRes.Level)
	}
}

func TestSarifLevels(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.swift", []byte("let x = v!\n"))

	bag := diag.NewBag(8)
	for _, sev := range []diag.Severity{diag.SevInfo, diag.SevWarning, diag.SevError} {
		bag.Add(diag.Diagnostic{
			Severity: sev,
			Code:     diag.StyleForceUnwrap,
			Message:  "force unwrapping can crash at runtime",
			Primary:  source.Span{File: fileID, Start: 8, End: 10},
		})
	}

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, rules.Builtin(), SarifRunMeta{ToolName: "swiftstyle"}); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF output: %v", err)
	}

	want := []string{"note", "warning", "error"}
	results := log.Runs[0].Results
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, level := range want {
		if results[i].Level != level {
			t.Errorf("result %d level: got %s, want %s", i, results[i].Level, level)
		}
	}
}

func TestSarifEmptyBag(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(0)

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, rules.Builtin(), SarifRunMeta{ToolName: "swiftstyle"}); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	// Importers want an empty results array, not null.
	if !strings.Contains(buf.String(), `"results": []`) {
		t.Errorf("expected empty results array, got:\n%s", buf.String())
	}
}
