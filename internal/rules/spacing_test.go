package rules_test

import (
	"testing"

	"swiftstyle/internal/diag"
)

func TestColonSpacing(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"space before", "let x : Int = 1\n", 1},
		{"proper annotation passes", "let ok: Int = 1\n", 0},
		{"missing space after", "f(label:value)\n", 1},
		{"two spaces after", "let d = [\"a\":  1]\n", 1},
		{"space before and none after", "let m = [1 :2]\n", 1},
		{"ternary exempt", "let t = flag ? 1 : 2\n", 0},
		{"dictionary type passes", "let dict: [String: Int] = makeDict()\n", 0},
		{"empty dictionary literal exempt", "let empty: [String: Int] = [:]\n", 0},
		{"label at line end passes", "switch x {\ncase .a:\n    use()\ndefault:\n    break\n}\n", 0},
		{"colon inside string passes", "let s = \"a: b\"\n", 0},
		{"signature passes", "func move(from start: Int, to finish: Int) { }\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countDiags(t, "colon-spacing", tt.src); got != tt.want {
				t.Errorf("diagnostics = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestColonSpacingMessages(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"before", "let x : Int = 1\n", "no space before ':'"},
		{"missing after", "f(label:value)\n", "missing space after ':'"},
		{"wide after", "let d = [\"a\":  1]\n", "more than one space after ':'"},
		{"both sides", "let m = [1 :2]\n", "':' hugs the left side and takes one space after"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, _ := runRule(t, "colon-spacing", tt.src)
			if len(diags) != 1 {
				t.Fatalf("diagnostics = %d, want 1", len(diags))
			}
			if diags[0].Message != tt.want {
				t.Errorf("message = %q, want %q", diags[0].Message, tt.want)
			}
		})
	}
}

// Both violations on one colon fold into a single diagnostic with a two-edit
// fix, so deduplication cannot swallow half the repair.
func TestColonSpacingFix(t *testing.T) {
	src := "let m = [1 :2]\n"
	diags, _ := runRule(t, "colon-spacing", src)
	if len(diags) != 1 || len(diags[0].Fixes) != 1 {
		t.Fatalf("want one diagnostic with one fix, got %+v", diags)
	}
	fix := diags[0].Fixes[0]
	if fix.Applicability != diag.AlwaysSafe || !fix.IsPreferred {
		t.Errorf("fix = %+v, want preferred always-safe", fix)
	}
	if len(fix.Edits) != 2 {
		t.Fatalf("edits = %d, want 2", len(fix.Edits))
	}
	del, ins := fix.Edits[0], fix.Edits[1]
	if del.NewText != "" || src[del.Span.Start:del.Span.End] != " " {
		t.Errorf("first edit %+v, want deletion of the space before", del)
	}
	if ins.NewText != " " || ins.Span.Len() != 0 {
		t.Errorf("second edit %+v, want a space inserted after", ins)
	}
	if got := src[diags[0].Primary.Start:diags[0].Primary.End]; got != ":" {
		t.Errorf("primary span covers %q, want \":\"", got)
	}
}

func TestTrailingWhitespace(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"two spaces", "let x = 1  \n", 1},
		{"tab", "let y = 2\t\n", 1},
		{"clean", "let a = 1\nlet b = 2\n", 0},
		{"spaces-only line", "let a = 1\n   \nlet b = 2\n", 1},
		{"run at eof without newline", "let z = 3  ", 1},
		{"multiline string content exempt", "let s = \"\"\"\nline one  \ndone\n\"\"\"\n", 0},
		{"two dirty lines", "let a = 1 \nlet b = 2\t\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countDiags(t, "trailing-whitespace", tt.src); got != tt.want {
				t.Errorf("diagnostics = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTrailingWhitespaceFix(t *testing.T) {
	src := "let x = 1  \n"
	diags, fs := runRule(t, "trailing-whitespace", src)
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	d := diags[0]
	if d.Message != "trailing whitespace" {
		t.Errorf("message = %q", d.Message)
	}
	if got := fs.Text(d.Primary); got != "  " {
		t.Errorf("primary span covers %q, want two spaces", got)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("fixes = %+v, want one single-edit fix", d.Fixes)
	}
	fix := d.Fixes[0]
	if fix.Applicability != diag.AlwaysSafe || !fix.IsPreferred {
		t.Errorf("fix = %+v, want preferred always-safe", fix)
	}
	if edit := fix.Edits[0]; edit.NewText != "" || edit.Span != d.Primary {
		t.Errorf("edit = %+v, want deletion of the run", edit)
	}
}
