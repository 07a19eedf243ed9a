package rules_test

import (
	"strings"
	"testing"

	"swiftstyle/internal/diag"
)

func TestPreferLet(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"unmutated top level", "var total = 0\nprint(total)\n", 1},
		{"unused var", "var unused = 1\n", 1},
		{"compound assign counts", "var i = 0\ni += 1\n", 0},
		{"plain store counts", "var i = 0\ni = 2\n", 0},
		{"subscript store counts", "var m = [1, 2]\nm[0] = 5\n", 0},
		{"member store counts", "var user = makeUser()\nuser.name = \"Ada\"\n", 0},
		{"inout pass counts", "var buffer = makeBuffer()\nfill(&buffer)\n", 0},
		{"method call counts", "var items = [1]\nitems.append(2)\n", 0},
		{"computed property exempt", "var total: Int {\n    return 1\n}\n", 0},
		{"observer exempt", "var score = 0 {\n    didSet {\n        persist()\n    }\n}\n", 0},
		{"tuple binding exempt", "var (a, b) = makePair()\n", 0},
		{"weak exempt", "final class View {\n    weak var delegate: AnyObject?\n}\n", 0},
		{"lazy exempt", "final class Store {\n    lazy var cache = makeCache()\n}\n", 0},
		{"wrapped property exempt", "final class Model {\n    @Published var value = 0\n}\n", 0},
		{"let not visited", "let x = 1\nprint(x)\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countDiags(t, "prefer-let", tt.src); got != tt.want {
				t.Errorf("diagnostics = %d, want %d", got, tt.want)
			}
		})
	}
}

// A store through self inside a sibling method must count as mutation of the
// stored property.
func TestPreferLetSelfStore(t *testing.T) {
	mutated := `
final class Counter {
    var n = 0
    func bump() {
        self.n = 1
    }
}
`
	if got := countDiags(t, "prefer-let", mutated); got != 0 {
		t.Errorf("mutated property flagged: %d diagnostics", got)
	}

	readOnly := `
final class Counter {
    var n = 0
    func read() -> Int {
        return n
    }
}
`
	diags, _ := runRule(t, "prefer-let", readOnly)
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	if want := "'n' is never mutated; use 'let'"; diags[0].Message != want {
		t.Errorf("message = %q, want %q", diags[0].Message, want)
	}
}

func TestPreferLetConditionBinding(t *testing.T) {
	if got := countDiags(t, "prefer-let", "if var x = opt {\n    x += 1\n}\n"); got != 0 {
		t.Errorf("mutated condition binding flagged: %d diagnostics", got)
	}

	diags, _ := runRule(t, "prefer-let", "if var x = opt {\n    print(x)\n}\n")
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	if want := "'x' is never mutated; use 'let'"; diags[0].Message != want {
		t.Errorf("message = %q, want %q", diags[0].Message, want)
	}
}

func TestPreferLetMultiBinding(t *testing.T) {
	diags, _ := runRule(t, "prefer-let", "var x = 1, y = 2\nprint(x + y)\n")
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	if want := "bindings are never mutated; use 'let'"; diags[0].Message != want {
		t.Errorf("message = %q, want %q", diags[0].Message, want)
	}

	// one mutated binding keeps the whole declaration on 'var'
	if got := countDiags(t, "prefer-let", "var x = 1, y = 2\nx = 3\n"); got != 0 {
		t.Errorf("partially mutated declaration flagged: %d diagnostics", got)
	}
}

func TestPreferLetFix(t *testing.T) {
	src := "var limit = 10\nprint(limit)\n"
	diags, _ := runRule(t, "prefer-let", src)
	if len(diags) != 1 || len(diags[0].Fixes) != 1 {
		t.Fatalf("want one diagnostic with one fix, got %+v", diags)
	}
	fix := diags[0].Fixes[0]
	if fix.Applicability != diag.SafeWithHeuristics {
		t.Errorf("applicability = %v", fix.Applicability)
	}
	if !fix.IsPreferred {
		t.Error("fix not marked preferred")
	}
	if len(fix.Edits) != 1 {
		t.Fatalf("edits = %d", len(fix.Edits))
	}
	edit := fix.Edits[0]
	if got := src[edit.Span.Start:edit.Span.End]; got != "var" {
		t.Errorf("edit replaces %q, want \"var\"", got)
	}
	if edit.OldText != "var" || edit.NewText != "let" {
		t.Errorf("edit = %q -> %q", edit.OldText, edit.NewText)
	}
	if !strings.Contains(diags[0].Message, "limit") {
		t.Errorf("message = %q, want the binding name in it", diags[0].Message)
	}
}
