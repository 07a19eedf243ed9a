package lexer

import (
	"swiftstyle/internal/diag"
	"swiftstyle/internal/token"
)

// Greedy matching: three-byte operators first, then two-byte, then singles.
// Swift glues adjacent operator characters into one token, so after a known
// form matches the run may still continue; when it does, the whole run becomes
// a single Op token (a custom operator such as <*> or =-). Dots extend only
// dot-leading operators.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}
	emitOp := func(k token.Kind, dotted bool) token.Token {
		extended := false
		for {
			b := lx.cursor.Peek()
			if !isOperatorByte(b) && !(dotted && b == '.') {
				break
			}
			lx.cursor.Bump()
			extended = true
		}
		if extended {
			return emit(token.Op)
		}
		return emit(k)
	}

	// Ranges, identity comparisons, compound shifts.
	switch {
	case lx.try3('.', '.', '.'):
		return emitOp(token.DotDotDot, true)
	case lx.try3('.', '.', '<'):
		return emitOp(token.DotDotLt, true)
	case lx.try3('<', '<', '='):
		return emitOp(token.ShlAssign, false)
	case lx.try3('>', '>', '='):
		return emitOp(token.ShrAssign, false)
	case lx.try3('=', '=', '='):
		return emitOp(token.EqEqEq, false)
	case lx.try3('!', '=', '='):
		return emitOp(token.BangEqEq, false)
	}

	// Arrows, logic, comparisons, shifts, coalescing, compound assignment.
	switch {
	case lx.try2('-', '>'):
		return emitOp(token.Arrow, false)
	case lx.try2('&', '&'):
		return emitOp(token.AndAnd, false)
	case lx.try2('|', '|'):
		return emitOp(token.OrOr, false)
	case lx.try2('=', '='):
		return emitOp(token.EqEq, false)
	case lx.try2('!', '='):
		return emitOp(token.BangEq, false)
	case lx.try2('<', '='):
		return emitOp(token.LtEq, false)
	case lx.try2('>', '='):
		return emitOp(token.GtEq, false)
	case lx.try2('<', '<'):
		return emitOp(token.Shl, false)
	case lx.try2('>', '>'):
		return emitOp(token.Shr, false)
	case lx.try2('?', '?'):
		return emitOp(token.QuestionQuestion, false)
	case lx.try2('+', '='):
		return emitOp(token.PlusAssign, false)
	case lx.try2('-', '='):
		return emitOp(token.MinusAssign, false)
	case lx.try2('*', '='):
		return emitOp(token.StarAssign, false)
	case lx.try2('/', '='):
		return emitOp(token.SlashAssign, false)
	case lx.try2('%', '='):
		return emitOp(token.PercentAssign, false)
	case lx.try2('&', '='):
		return emitOp(token.AmpAssign, false)
	case lx.try2('|', '='):
		return emitOp(token.PipeAssign, false)
	case lx.try2('^', '='):
		return emitOp(token.CaretAssign, false)
	case lx.try2('.', '.'):
		// Unknown dot-leading operator such as "..".
		return emitOp(token.Op, true)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emitOp(token.Plus, false)
	case '-':
		return emitOp(token.Minus, false)
	case '*':
		return emitOp(token.Star, false)
	case '/':
		return emitOp(token.Slash, false)
	case '%':
		return emitOp(token.Percent, false)
	case '=':
		return emitOp(token.Assign, false)
	case '!':
		return emitOp(token.Bang, false)
	case '<':
		return emitOp(token.Lt, false)
	case '>':
		return emitOp(token.Gt, false)
	case '&':
		return emitOp(token.Amp, false)
	case '|':
		return emitOp(token.Pipe, false)
	case '^':
		return emitOp(token.Caret, false)
	case '~':
		return emitOp(token.Tilde, false)
	case '?':
		return emitOp(token.Question, false)
	case '.':
		return emit(token.Dot)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '@':
		return emit(token.At)
	case '_':
		return emit(token.Underscore)
	case '\\':
		return emit(token.Backslash)
	default:
		if ch >= utf8RuneSelf {
			// Consume the full rune, not just its first byte.
			lx.cursor.Reset(start)
			lx.bumpRune()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}
