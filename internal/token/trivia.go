package token

import "swiftstyle/internal/source"

// Directive is a tool instruction carried inside a comment, such as
// "// swiftstyle:ignore force-unwrap prefer-let".
type Directive struct {
	Name string   // "ignore" or "ignore-file"
	Args []string // rule names; empty means every rule
}

// TriviaKind classifies whitespace and comments attached to tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
	TriviaDocBlock
	TriviaDirective
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDocLine:
		return "DocLine"
	case TriviaDocBlock:
		return "DocBlock"
	case TriviaDirective:
		return "Directive"
	}
	return "TriviaKind(?)"
}

type Trivia struct {
	Kind      TriviaKind
	Span      source.Span
	Text      string
	Directive *Directive // only when Kind == TriviaDirective
}
