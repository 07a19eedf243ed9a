package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"class":     KwClass,
		"let":       KwLet,
		"var":       KwVar,
		"func":      KwFunc,
		"enum":      KwEnum,
		"switch":    KwSwitch,
		"default":   KwDefault,
		"guard":     KwGuard,
		"open":      KwOpen,
		"private":   KwPrivate,
		"await":     KwAwait,
		"is":        KwIs,
		"nil":       KwNil,
		"true":      KwTrue,
		"false":     KwFalse,
		"self":      KwSelf,
		"Self":      KwSelfType,
		"Any":       KwAny,
		"subscript": KwSubscript,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// Contextual keywords and plain identifiers stay Ident.
	notKw := []string{
		"Class", "LET", "Guard", // keywords are case sensitive
		"final", "override", "lazy", "weak", "actor", "some", // contextual
		"Int", "String", "Optional", // type names are Ident
		"identifier", "toString",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestIsDeclModifier(t *testing.T) {
	for _, s := range []string{"final", "override", "lazy", "weak", "mutating", "indirect"} {
		if !IsDeclModifier(s) {
			t.Fatalf("IsDeclModifier(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"class", "name", "Final", "publish"} {
		if IsDeclModifier(s) {
			t.Fatalf("IsDeclModifier(%q) = true, want false", s)
		}
	}
}
