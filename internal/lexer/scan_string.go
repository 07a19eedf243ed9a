package lexer

import (
	"swiftstyle/internal/diag"
	"swiftstyle/internal/token"
)

// scanString scans every Swift string form into a single StringLit token:
// "...", """...""", #"..."#, ##"..."## and their multiline raw combinations.
// pounds is the number of leading '#' delimiters (0 for plain strings).
// Interpolation bodies \( ... ) are skipped with balanced parens, including
// nested string literals inside them.
func (lx *Lexer) scanString(pounds int) token.Token {
	start := lx.cursor.Mark()
	for i := 0; i < pounds; i++ {
		lx.cursor.Bump() // '#'
	}
	lx.cursor.Bump() // opening '"'

	multiline := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '"' && b1 == '"' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		multiline = true
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == '"' {
			if lx.tryCloseQuote(multiline, pounds) {
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			lx.cursor.Bump()
			continue
		}

		if b == '\n' && !multiline {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}

		if b == '\\' {
			if pounds > 0 && !lx.poundsFollow(pounds) {
				// In raw strings a bare backslash is literal content.
				lx.cursor.Bump()
				continue
			}
			lx.cursor.Bump() // '\'
			for i := 0; i < pounds; i++ {
				lx.cursor.Bump() // '#'
			}
			lx.scanEscape(multiline)
			continue
		}

		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanEscape consumes the escape body after the backslash (and raw-string
// pounds) have been consumed.
func (lx *Lexer) scanEscape(multiline bool) {
	if lx.cursor.EOF() {
		return
	}
	esc := lx.cursor.Peek()
	switch esc {
	case '(':
		lx.cursor.Bump()
		lx.skipInterpolation()
	case 'u':
		lx.cursor.Bump()
		if lx.cursor.Peek() == '{' {
			lx.cursor.Bump()
			for !lx.cursor.EOF() && lx.cursor.Peek() != '}' && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.cursor.Eat('}')
		}
	case 'n', 't', 'r', '0', '\\', '"', '\'':
		lx.cursor.Bump()
	case '\n':
		// Only multiline strings allow a line-continuation backslash; in a
		// single-line string the newline stays put for the caller to report.
		if multiline {
			lx.cursor.Bump()
		}
	default:
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(m), "invalid escape sequence in string literal")
	}
}

// skipInterpolation consumes a balanced interpolation body; the cursor stands
// right after the opening '('. Nested strings are skipped as whole literals so
// their parens and quotes cannot unbalance the scan.
func (lx *Lexer) skipInterpolation() {
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		b := lx.cursor.Peek()
		switch b {
		case '(':
			lx.cursor.Bump()
			depth++
		case ')':
			lx.cursor.Bump()
			depth--
		case '"':
			lx.scanString(0)
		case '#':
			m := lx.cursor.Mark()
			p := 0
			for lx.cursor.Peek() == '#' {
				lx.cursor.Bump()
				p++
			}
			if lx.cursor.Peek() == '"' {
				lx.cursor.Reset(m)
				lx.scanString(p)
			}
		default:
			lx.cursor.Bump()
		}
	}
}

// tryCloseQuote consumes the closing delimiter when the cursor stands on it:
// one quote (plus pounds) for single-line strings, three quotes (plus pounds)
// for multiline ones.
func (lx *Lexer) tryCloseQuote(multiline bool, pounds int) bool {
	quotes := uint32(1)
	if multiline {
		quotes = 3
	}
	need := quotes + uint32(pounds)

	off := lx.cursor.Off
	if off+need > lx.cursor.limit() {
		return false
	}
	for i := uint32(0); i < quotes; i++ {
		if lx.file.Content[off+i] != '"' {
			return false
		}
	}
	for i := uint32(0); i < uint32(pounds); i++ {
		if lx.file.Content[off+quotes+i] != '#' {
			return false
		}
	}
	lx.cursor.Off = off + need
	return true
}

// poundsFollow reports whether exactly the raw delimiter's pounds follow the
// current backslash.
func (lx *Lexer) poundsFollow(pounds int) bool {
	off := lx.cursor.Off + 1 // past '\'
	if off+uint32(pounds) > lx.cursor.limit() {
		return false
	}
	for i := uint32(0); i < uint32(pounds); i++ {
		if lx.file.Content[off+i] != '#' {
			return false
		}
	}
	return true
}
