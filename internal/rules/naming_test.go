package rules_test

import (
	"testing"
)

func TestTypeName(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"snake class", "class good_name { }\n", 1},
		{"acronym run passes", "struct HTTPServer { }\n", 0},
		{"lowercase enum", "enum state { }\n", 1},
		{"snake actor", "actor data_store { }\n", 1},
		{"lowercase typealias", "typealias handler = () -> Void\n", 1},
		{"unicode uppercase passes", "class Über { }\n", 0},
		{"backticked exempt", "class `bad_name` { }\n", 0},
		{"protocol passes", "protocol Renderer { }\n", 0},
		{"mid underscore", "struct Frame_Buffer { }\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countDiags(t, "type-name", tt.src); got != tt.want {
				t.Errorf("diagnostics = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTypeNameMessage(t *testing.T) {
	diags, fs := runRule(t, "type-name", "struct http_response { }\n")
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	if want := `type name "http_response" should be UpperCamelCase`; diags[0].Message != want {
		t.Errorf("message = %q, want %q", diags[0].Message, want)
	}
	if got := fs.Text(diags[0].Primary); got != "http_response" {
		t.Errorf("primary span covers %q, want the name", got)
	}
}

func TestIdentifierName(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"snake binding", "let user_name = \"\"\n", 1},
		{"screaming binding", "var MAXSIZE = 10\n", 1},
		{"snake func", "func do_thing() { }\n", 1},
		{"snake param", "func render(bad_param: Int) { }\n", 1},
		{"good names pass", "let userName = 1\nfunc doThing(with value: Int) { }\n", 0},
		{"static constant exempt", "final class Config {\n    static let MAX_RETRIES = 3\n}\n", 0},
		{"class member exempt", "final class Config {\n    class var SHARED: Int {\n        return 1\n    }\n}\n", 0},
		{"leading underscore passes", "let _privateThing = 1\n", 0},
		{"backticked keyword passes", "let `default` = 1\n", 0},
		{"wildcard params exempt", "func log(_ message: String) { }\nfunc fire(_: Int) { }\n", 0},
		{"closure param", "let f = { (bad_name: Int) in\n    use(bad_name)\n}\n", 1},
		{"operator func exempt", "final class Vec {\n    static func == (l: Vec, r: Vec) -> Bool {\n        return true\n    }\n}\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countDiags(t, "identifier-name", tt.src); got != tt.want {
				t.Errorf("diagnostics = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIdentifierNameMessages(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"binding", "let user_name = \"\"\n", `binding name "user_name" should be lowerCamelCase`},
		{"function", "func do_thing() { }\n", `function name "do_thing" should be lowerCamelCase`},
		{"parameter", "func render(bad_param: Int) { }\n", `parameter name "bad_param" should be lowerCamelCase`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, _ := runRule(t, "identifier-name", tt.src)
			if len(diags) != 1 {
				t.Fatalf("diagnostics = %d, want 1", len(diags))
			}
			if diags[0].Message != tt.want {
				t.Errorf("message = %q, want %q", diags[0].Message, tt.want)
			}
		})
	}
}
