package diag

import (
	"testing"
)

func TestCodeIDBlocks(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{IOLoadFileError, "IO4001"},
		{IntRulePanic, "INT5001"},
		{ObsTimings, "OBS6001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("Code(%d).ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestStyleCodesRenderAsRuleNames(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{StyleForceUnwrap, "force-unwrap"},
		{StylePreferLet, "prefer-let"},
		{StyleExplicitAccess, "explicit-access"},
		{StyleEnumDefaultCase, "enum-default-case"},
		{StyleFinalClass, "final-class"},
		{StyleColonSpacing, "colon-spacing"},
		{StyleTrailingWhitespace, "trailing-whitespace"},
		{StyleTypeName, "type-name"},
		{StyleIdentifierName, "identifier-name"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("Code(%d).ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestStyleNamesAreUnique(t *testing.T) {
	seen := make(map[string]Code)
	for code, name := range styleNames {
		if prev, ok := seen[name]; ok {
			t.Errorf("rule name %q used by both %d and %d", name, prev, code)
		}
		seen[name] = code
	}
}

func TestCodeClassification(t *testing.T) {
	if !StyleForceUnwrap.IsStyle() {
		t.Error("StyleForceUnwrap must be a style code")
	}
	if SynUnexpectedToken.IsStyle() {
		t.Error("SynUnexpectedToken must not be a style code")
	}
	if !IntRulePanic.IsInternal() {
		t.Error("IntRulePanic must be internal")
	}
	if StyleForceUnwrap.IsInternal() {
		t.Error("StyleForceUnwrap must not be internal")
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
		ok   bool
	}{
		{"info", SevInfo, true},
		{"warning", SevWarning, true},
		{"error", SevError, true},
		{"Error", SevInfo, false},
		{"fatal", SevInfo, false},
		{"", SevInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseSeverity(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseSeverity(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
