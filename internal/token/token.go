package token

import (
	"swiftstyle/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, string, or nil literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case LParen, RParen, LBrace, RBrace, LBracket, RBracket,
		Comma, Colon, Semicolon, At, Pound, Underscore, Backslash,
		Dot, DotDotDot, DotDotLt, Arrow, Assign,
		Plus, Minus, Star, Slash, Percent,
		PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign,
		AmpAssign, PipeAssign, CaretAssign, ShlAssign, ShrAssign,
		EqEq, EqEqEq, Bang, BangEq, BangEqEq,
		Lt, LtEq, Gt, GtEq, Shl, Shr,
		Amp, Pipe, Caret, Tilde, AndAnd, OrOr,
		Question, QuestionQuestion, Op:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAssociatedtype && t.Kind <= KwTry
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// StartsLine reports whether a newline separates this token from the
// previous one. Swift terminates statements at line breaks, so the parser
// consults this instead of looking for semicolons.
func (t Token) StartsLine() bool {
	for _, tv := range t.Leading {
		if tv.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

// IdentText returns the identifier name with backtick escapes stripped.
// For non-identifiers it returns Text unchanged.
func (t Token) IdentText() string {
	if t.Kind == Ident && len(t.Text) >= 2 && t.Text[0] == '`' && t.Text[len(t.Text)-1] == '`' {
		return t.Text[1 : len(t.Text)-1]
	}
	return t.Text
}
