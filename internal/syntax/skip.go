package syntax

import (
	"slices"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
	"swiftstyle/internal/token"
)

// The skippers below consume regions the linter never inspects, such as
// generic parameter lists, type references and where clauses, keeping only
// their spans. They stay tolerant: on malformed input they stop at the
// nearest plausible boundary instead of erroring, so the surrounding
// declaration still parses.

// cover extends sp to include other, seeding from the zero value.
func cover(sp, other source.Span) source.Span {
	if sp == (source.Span{}) {
		return other
	}
	return sp.Cover(other)
}

// skipBalanced consumes the opening delimiter at the cursor and everything up
// to its matching closer, treating all three bracket kinds as nesting. Returns
// the covered span. The cursor must sit on (, [ or {.
func (p *Parser) skipBalanced() source.Span {
	open := p.advance()
	sp := open.Span
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		}
		sp = sp.Cover(p.advance().Span)
	}
	if depth > 0 {
		p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed '"+open.Text+"'")
	}
	return sp
}

// skipGenericParams consumes a <...> clause, counting '>>' as two closing
// angles. A '{' or ';' before the clause closes means the '<' was not a
// generic bracket after all; the skipper stops there rather than swallowing
// the body. The cursor must sit on '<'.
func (p *Parser) skipGenericParams() source.Span {
	sp := p.advance().Span // <
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Shr:
			depth -= 2
		case token.GtEq:
			// ">=" at the end of a clause is '>' followed by '='.
			depth--
			if depth <= 0 {
				sp = sp.Cover(p.advance().Span)
				return sp
			}
		case token.LBrace, token.Semicolon, token.RBrace:
			return sp
		}
		sp = sp.Cover(p.advance().Span)
	}
	return sp
}

// skipType consumes a type reference: identifiers, dots, optional and IUO
// marks, generic arguments, tuples, array and dictionary sugar, function
// arrows, composition '&'. It tracks parens, brackets and angles so commas
// inside them do not end the type, and stops at any of the stop kinds, an
// unbalanced closer, a '{' at depth zero, or a token that begins a new line
// outside any nesting. Returns the covered span; a zero span means no type
// tokens were consumed.
func (p *Parser) skipType(stop ...token.Kind) source.Span {
	var sp source.Span
	depth := 0
	angle := 0
	first := true
	for !p.at(token.EOF) {
		tok := p.peek()
		if depth == 0 && angle == 0 {
			if slices.Contains(stop, tok.Kind) {
				break
			}
			if tok.Kind == token.LBrace {
				break
			}
			if !first && tok.StartsLine() && !typeContinues(tok.Kind) {
				break
			}
		}
		switch tok.Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				return sp
			}
			depth--
		case token.Lt:
			angle++
		case token.Gt:
			if angle == 0 {
				return sp
			}
			angle--
		case token.Shr:
			if angle < 2 {
				return sp
			}
			angle -= 2
		}
		sp = cover(sp, p.advance().Span)
		first = false
	}
	return sp
}

// typeContinues reports whether a token starting a new line keeps the
// current type reference going rather than beginning a new construct.
func typeContinues(k token.Kind) bool {
	switch k {
	case token.Dot, token.Arrow, token.Amp, token.Question, token.Colon:
		return true
	default:
		return false
	}
}

// skipWhereClause consumes 'where' and its constraint list, stopping before
// the '{' that opens the body, at an unbalanced closer, or at a new line that
// does not continue a constraint. The cursor must sit on 'where'.
func (p *Parser) skipWhereClause() source.Span {
	sp := p.advance().Span // where
	depth := 0
	angle := 0
	prev := token.KwWhere
	for !p.at(token.EOF) {
		tok := p.peek()
		if depth == 0 && angle == 0 {
			if tok.Kind == token.LBrace || tok.Kind == token.Semicolon {
				break
			}
			if tok.StartsLine() && !typeContinues(tok.Kind) && !whereContinues(prev) {
				break
			}
		}
		switch tok.Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				return sp
			}
			depth--
		case token.Lt:
			angle++
		case token.Gt:
			if angle > 0 {
				angle--
			}
		case token.Shr:
			if angle > 1 {
				angle -= 2
			}
		}
		prev = tok.Kind
		sp = sp.Cover(p.advance().Span)
	}
	return sp
}

// whereContinues reports whether a line ending in this token leaves the
// where clause open, so the next line is still part of it.
func whereContinues(k token.Kind) bool {
	switch k {
	case token.Comma, token.Colon, token.EqEq, token.Amp, token.KwWhere:
		return true
	default:
		return false
	}
}

// skipAttribute consumes one @attribute together with its dotted name,
// generic arguments and argument parens. The cursor must sit on '@'.
func (p *Parser) skipAttribute() source.Span {
	sp := p.advance().Span // @
	if p.at(token.Ident) {
		sp = sp.Cover(p.advance().Span)
		for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
			p.advance()
			sp = sp.Cover(p.advance().Span)
		}
	}
	if p.at(token.Lt) {
		sp = sp.Cover(p.skipGenericParams())
	}
	if p.at(token.LParen) {
		sp = sp.Cover(p.skipBalanced())
	}
	return sp
}
