package lexer

import (
	"swiftstyle/internal/diag"
	"swiftstyle/internal/token"
)

const utf8RuneSelf = 0x80

// maxTokenLength bounds identifiers so pathological input cannot balloon
// downstream buffers.
const maxTokenLength = 4096

// scanIdentOrKeyword scans an identifier and classifies it via LookupKeyword.
// Keywords are case sensitive. Token.Text is exactly the source slice.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	if r < utf8RuneSelf {
		// ASCII
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
		for {
			b := lx.cursor.Peek()
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
		}
	} else {
		// Unicode
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.bumpRune()
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if sp.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, sp, "identifier too long")
		lx.cursor.Off = lx.cursor.limit()
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	lex := lx.file.Content[sp.Start:sp.End]
	text := string(lex)

	if len(lex) == 1 && lex[0] == '_' {
		return token.Token{Kind: token.Underscore, Span: sp, Text: text}
	}

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}

	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanBacktickIdent scans `name`, which lets reserved words act as
// identifiers. Text keeps the backticks; Token.IdentText strips them.
func (lx *Lexer) scanBacktickIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '`'

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '`' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			if sp.Len() <= 2 {
				lx.errLex(diag.LexUnterminatedIdent, sp, "empty backtick identifier")
				return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			return token.Token{Kind: token.Ident, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedIdent, sp, "unterminated backtick identifier")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanDollarIdent scans $0-style closure arguments and $property projections.
func (lx *Lexer) scanDollarIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'

	b := lx.cursor.Peek()
	switch {
	case isDec(b):
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	case isIdentStartByte(b) || b >= utf8RuneSelf:
		for {
			r, sz := lx.peekRune()
			if sz == 0 || !isIdentContinueRune(r) {
				break
			}
			lx.bumpRune()
		}
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "'$' must be followed by a number or identifier")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.DollarIdent, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
