package lexer

import (
	"swiftstyle/internal/diag"
	"swiftstyle/internal/token"
)

// Supported: 0, 123, 0b..., 0o..., 0x... (incl. hex floats 0x1.8p3),
// 1.5, 1e-3, 1.5e+10, with '_' group separators.
// A '.' is only part of the number when a digit follows, so "1...5" lexes as
// IntLit DotDotDot IntLit and "1.description" as IntLit Dot Ident.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			if !bumpDigits(lx, func(b byte) bool { return b == '0' || b == '1' }) {
				return lx.badNumber(start, "expected binary digit after '0b'")
			}
			goto emit
		case 'o', 'O':
			lx.cursor.Bump()
			if !bumpDigits(lx, func(b byte) bool { return b >= '0' && b <= '7' }) {
				return lx.badNumber(start, "expected octal digit after '0o'")
			}
			goto emit
		case 'x', 'X':
			lx.cursor.Bump()
			if !bumpDigits(lx, isHex) {
				return lx.badNumber(start, "expected hex digit after '0x'")
			}
			// hex float: 0x1.8p3
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isHex(b1) {
				lx.cursor.Bump()
				bumpDigits(lx, isHex)
				kind = token.FloatLit
			}
			if lx.cursor.Peek() == 'p' || lx.cursor.Peek() == 'P' {
				kind = token.FloatLit
				lx.cursor.Bump()
				if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
					lx.cursor.Bump()
				}
				if !bumpDigits(lx, isDec) {
					return lx.badNumber(start, "expected digit after hex float exponent")
				}
			} else if kind == token.FloatLit {
				// Swift requires the p exponent on hex fractions.
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "hex float requires a 'p' exponent")
			}
			goto emit
		default:
			// plain "0", possibly with a fraction
		}
	}

	// decimal integer part
	bumpDigits(lx, isDec)

	// fraction: only when a digit follows the dot
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		bumpDigits(lx, isDec)
	}

	// exponent
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		_, b1, ok := lx.cursor.Peek2()
		isExp := ok && (isDec(b1) || ((b1 == '+' || b1 == '-') && lx.thirdIsDec()))
		if isExp {
			kind = token.FloatLit
			lx.cursor.Bump()
			if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
				lx.cursor.Bump()
			}
			bumpDigits(lx, isDec)
		}
	}

emit:
	// Swift allows no identifier characters glued onto a number: "1abc" and
	// "1e" are errors, not IntLit Ident.
	if b := lx.cursor.Peek(); isIdentStartByte(b) || b >= utf8RuneSelf {
		if lx.bumpIdentTail() {
			return lx.badNumber(start, "invalid suffix on numeric literal")
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// bumpIdentTail consumes identifier characters directly after a number and
// reports whether it consumed any.
func (lx *Lexer) bumpIdentTail() bool {
	any := false
	for {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			any = true
			continue
		}
		if b >= utf8RuneSelf {
			r, _ := lx.peekRune()
			if isIdentContinueRune(r) {
				lx.bumpRune()
				any = true
				continue
			}
		}
		return any
	}
}

// bumpDigits consumes digits matched by ok plus '_' separators. Returns false
// when not a single digit was consumed.
func bumpDigits(lx *Lexer, ok func(byte) bool) bool {
	any := false
	for {
		b := lx.cursor.Peek()
		if ok(b) {
			any = true
			lx.cursor.Bump()
			continue
		}
		if b == '_' && any {
			lx.cursor.Bump()
			continue
		}
		return any
	}
}

func (lx *Lexer) thirdIsDec() bool {
	_, _, b2, ok := lx.cursor.Peek3()
	return ok && isDec(b2)
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
