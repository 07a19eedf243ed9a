package syntax

import (
	"swiftstyle/internal/diag"
	"swiftstyle/internal/token"
)

// parseClosureExpr parses a closure literal. When a signature is present its
// parameter names become Param children, so naming checks see closure
// parameters the same way they see function parameters. The cursor must sit
// on '{'.
func (p *Parser) parseClosureExpr() NodeID {
	lb := p.advance() // {
	var params []NodeID
	if p.closureSignatureAhead() {
		params = p.parseClosureSignature()
	}
	body, sp := p.parseCodeBlockRest(lb)
	kids := append(params, body)
	return p.tree.add(Node{Kind: ClosureExpr, Span: sp, Children: kids})
}

// closureSignatureAhead scans forward for an 'in' at bracket depth zero over
// signature-shaped tokens. "{ x, y in" has one; "{ x.compute() }" does not.
// The scan is bounded, so a pathological header just parses as a body.
func (p *Parser) closureSignatureAhead() bool {
	depth := 0
	for i := 0; i < 48; i++ {
		t := p.peekN(i)
		switch t.Kind {
		case token.KwIn:
			if depth == 0 {
				return true
			}
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			if depth == 0 {
				return false
			}
			depth--
		case token.Ident, token.Underscore, token.Comma, token.Colon, token.Dot,
			token.Question, token.Lt, token.Gt, token.Shr, token.Arrow, token.Amp,
			token.At, token.KwThrows, token.KwRethrows, token.KwSelf, token.KwAny,
			token.KwSelfType, token.KwInout, token.Assign:
			// plausible inside a signature or capture list
		default:
			return false
		}
	}
	return false
}

// parseClosureSignature parses "[captures] (params) throws -> Type in" or
// the bare-name form "a, b in", returning the Param nodes.
func (p *Parser) parseClosureSignature() []NodeID {
	var params []NodeID
	if p.at(token.LBracket) {
		p.skipBalanced() // capture list
	}
	if p.at(token.LParen) {
		params, _ = p.parseParamClause()
	} else {
		for p.at(token.Ident) || p.at(token.Underscore) {
			t := p.advance()
			name := t.IdentText()
			if t.Kind == token.Underscore {
				name = "_"
			}
			params = append(params, p.tree.add(Node{Kind: Param, Span: t.Span, NameSpan: t.Span, Name: name}))
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	for p.at(token.KwThrows) || p.at(token.KwRethrows) || p.atContextual("async") {
		p.advance()
		if p.at(token.LParen) {
			p.skipBalanced() // typed throws
		}
	}
	if p.eat(token.Arrow) {
		p.skipType(token.KwIn)
	}
	p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after the closure signature")
	return params
}
