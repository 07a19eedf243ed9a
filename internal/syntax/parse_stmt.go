package syntax

import (
	"slices"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
	"swiftstyle/internal/token"
)

var stmtStarters = slices.Concat(declStarters, []token.Kind{
	token.KwIf, token.KwGuard, token.KwSwitch, token.KwFor, token.KwWhile,
	token.KwRepeat, token.KwDo, token.KwDefer, token.KwReturn, token.KwThrow,
	token.KwBreak, token.KwContinue, token.KwFallthrough,
})

var caseBodyResync = slices.Concat(stmtStarters, []token.Kind{token.KwDefault})

// parseStmtOrDecl parses one statement or declaration at statement position.
// A true result with NoNodeID means tokens were consumed without producing a
// node, as for compiler directives.
func (p *Parser) parseStmtOrDecl(ctx declContext) (NodeID, bool) {
	if p.at(token.Pound) {
		p.skipPoundDirective()
		return NoNodeID, true
	}
	if p.declAhead() {
		return p.parseDecl(ctx)
	}

	switch p.peek().Kind {
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwGuard:
		return p.parseGuardStmt()
	case token.KwSwitch:
		return p.parseSwitchStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwRepeat:
		return p.parseRepeatStmt()
	case token.KwDo:
		return p.parseDoStmt()
	case token.KwDefer:
		return p.parseDeferStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwThrow:
		return p.parseThrowStmt()
	case token.KwBreak:
		return p.parseBreakOrContinue(BreakStmt)
	case token.KwContinue:
		return p.parseBreakOrContinue(ContinueStmt)
	case token.KwFallthrough:
		t := p.advance()
		return p.tree.add(Node{Kind: FallthroughStmt, Span: t.Span}), true
	}

	// labeled loops: "outer: for ... { break outer }"
	if p.at(token.Ident) && p.peekN(1).Kind == token.Colon && labelable(p.peekN(2).Kind) {
		p.advance()
		p.advance()
		return p.parseStmtOrDecl(ctx)
	}

	return p.parseExpr()
}

func labelable(k token.Kind) bool {
	switch k {
	case token.KwFor, token.KwWhile, token.KwRepeat, token.KwSwitch, token.KwDo, token.KwIf:
		return true
	default:
		return false
	}
}

// parseCodeBlock parses a braced statement list.
func (p *Parser) parseCodeBlock() (NodeID, source.Span) {
	lb, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{'")
	if !ok {
		sp := p.diagSpan()
		return p.tree.add(Node{Kind: CodeBlock, Span: sp}), sp
	}
	return p.parseCodeBlockRest(lb)
}

// parseCodeBlockRest finishes a code block whose '{' is already consumed.
func (p *Parser) parseCodeBlockRest(lb token.Token) (NodeID, source.Span) {
	sp := lb.Span
	var kids []NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.failed {
		if p.eat(token.Semicolon) {
			continue
		}
		before := p.pos
		id, ok := p.parseStmtOrDecl(localContext)
		if ok {
			if id.IsValid() {
				kids = append(kids, id)
			}
			continue
		}
		if p.pos == before {
			p.advance()
		}
		p.resyncUntil(stmtStarters...)
	}
	if rb, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close the block"); ok {
		sp = sp.Cover(rb.Span)
	} else {
		sp = sp.Cover(p.lastSpan)
	}
	id := p.tree.add(Node{Kind: CodeBlock, Span: sp, Children: kids})
	return id, sp
}

func (p *Parser) parseIfStmt() (NodeID, bool) {
	start := p.advance().Span // if
	kids := p.parseConditionList()
	body, end := p.parseCodeBlock()
	kids = append(kids, body)
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			elseIf, _ := p.parseIfStmt()
			kids = append(kids, elseIf)
			end = p.tree.Node(elseIf).Span
		} else {
			blk, sp := p.parseCodeBlock()
			kids = append(kids, blk)
			end = sp
		}
	}
	return p.tree.add(Node{Kind: IfStmt, Span: start.Cover(end), Children: kids}), true
}

func (p *Parser) parseGuardStmt() (NodeID, bool) {
	start := p.advance().Span // guard
	kids := p.parseConditionList()
	p.expect(token.KwElse, diag.SynUnexpectedToken, "expected 'else' in guard statement")
	body, end := p.parseCodeBlock()
	kids = append(kids, body)
	return p.tree.add(Node{Kind: GuardStmt, Span: start.Cover(end), Children: kids}), true
}

func (p *Parser) parseWhileStmt() (NodeID, bool) {
	start := p.advance().Span // while
	kids := p.parseConditionList()
	body, end := p.parseCodeBlock()
	kids = append(kids, body)
	return p.tree.add(Node{Kind: WhileStmt, Span: start.Cover(end), Children: kids}), true
}

func (p *Parser) parseRepeatStmt() (NodeID, bool) {
	start := p.advance().Span // repeat
	body, end := p.parseCodeBlock()
	kids := []NodeID{body}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after the repeat body"); ok {
		if cond, ok := p.parseExprNoTrailing(); ok {
			kids = append(kids, cond)
			end = p.tree.Node(cond).Span
		}
	}
	return p.tree.add(Node{Kind: RepeatStmt, Span: start.Cover(end), Children: kids}), true
}

func (p *Parser) parseForStmt() (NodeID, bool) {
	start := p.advance().Span // for
	var kids []NodeID
	p.eat(token.KwCase)
	bound, _ := p.scanPattern(token.KwIn, token.LBrace)
	kids = append(kids, bound...)
	p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' in for statement")
	if seq, ok := p.parseExprNoTrailing(); ok {
		kids = append(kids, seq)
	}
	if p.eat(token.KwWhere) {
		if e, ok := p.parseExprNoTrailing(); ok {
			kids = append(kids, e)
		}
	}
	body, end := p.parseCodeBlock()
	kids = append(kids, body)
	return p.tree.add(Node{Kind: ForStmt, Span: start.Cover(end), Children: kids}), true
}

func (p *Parser) parseDoStmt() (NodeID, bool) {
	start := p.advance().Span // do
	if p.at(token.KwThrows) { // do throws(E) { ... }
		p.advance()
		if p.at(token.LParen) {
			p.skipBalanced()
		}
	}
	body, end := p.parseCodeBlock()
	kids := []NodeID{body}
	for p.at(token.KwCatch) {
		c := p.parseCatchClause()
		kids = append(kids, c)
		end = p.tree.Node(c).Span
	}
	return p.tree.add(Node{Kind: DoStmt, Span: start.Cover(end), Children: kids}), true
}

func (p *Parser) parseCatchClause() NodeID {
	start := p.advance().Span // catch
	var kids []NodeID
	if !p.at(token.LBrace) {
		bound, _ := p.scanPattern(token.LBrace, token.KwWhere)
		kids = append(kids, bound...)
		if p.eat(token.KwWhere) {
			if e, ok := p.parseExprNoTrailing(); ok {
				kids = append(kids, e)
			}
		}
	}
	body, end := p.parseCodeBlock()
	kids = append(kids, body)
	return p.tree.add(Node{Kind: CatchClause, Span: start.Cover(end), Children: kids})
}

func (p *Parser) parseDeferStmt() (NodeID, bool) {
	start := p.advance().Span // defer
	body, end := p.parseCodeBlock()
	return p.tree.add(Node{Kind: DeferStmt, Span: start.Cover(end), Children: []NodeID{body}}), true
}

func (p *Parser) parseReturnStmt() (NodeID, bool) {
	kw := p.advance() // return
	sp := kw.Span
	var kids []NodeID
	if p.returnOperandAhead() {
		if e, ok := p.parseExpr(); ok {
			kids = append(kids, e)
			sp = sp.Cover(p.tree.Node(e).Span)
		}
	}
	return p.tree.add(Node{Kind: ReturnStmt, Span: sp, Children: kids}), true
}

// returnOperandAhead reports whether 'return' is followed by a value on the
// same line. A token on the next line belongs to the next statement.
func (p *Parser) returnOperandAhead() bool {
	t := p.peek()
	switch t.Kind {
	case token.EOF, token.RBrace, token.Semicolon, token.KwCase, token.KwDefault:
		return false
	}
	return !t.StartsLine()
}

func (p *Parser) parseThrowStmt() (NodeID, bool) {
	kw := p.advance() // throw
	sp := kw.Span
	var kids []NodeID
	if e, ok := p.parseExpr(); ok {
		kids = append(kids, e)
		sp = sp.Cover(p.tree.Node(e).Span)
	}
	return p.tree.add(Node{Kind: ThrowStmt, Span: sp, Children: kids}), true
}

func (p *Parser) parseBreakOrContinue(kind NodeKind) (NodeID, bool) {
	kw := p.advance()
	sp := kw.Span
	if p.at(token.Ident) && !p.peek().StartsLine() {
		sp = sp.Cover(p.advance().Span) // loop label
	}
	return p.tree.add(Node{Kind: kind, Span: sp}), true
}

// parseConditionList parses the comma-separated conditions of if, guard and
// while: boolean expressions, optional bindings, case patterns and
// availability checks.
func (p *Parser) parseConditionList() []NodeID {
	var out []NodeID
	for {
		switch {
		case p.at(token.KwLet), p.at(token.KwVar):
			out = append(out, p.parseOptionalBinding())
		case p.at(token.KwCase):
			p.advance()
			bound, _ := p.scanPattern(token.Assign, token.LBrace, token.Comma)
			out = append(out, bound...)
			if p.eat(token.Assign) {
				if e, ok := p.parseExprNoTrailing(); ok {
					out = append(out, e)
				}
			}
		case p.at(token.Pound):
			// #available(iOS 15, *) and #unavailable(...)
			p.advance()
			if p.at(token.Ident) {
				p.advance()
			}
			if p.at(token.LParen) {
				p.skipBalanced()
			}
		default:
			e, ok := p.parseExprNoTrailing()
			if !ok {
				return out
			}
			out = append(out, e)
		}
		if !p.eat(token.Comma) {
			return out
		}
	}
}

// parseOptionalBinding parses "let x = expr", the shorthand "let x", and
// "var x = expr" in a condition list. The binding becomes a LetDecl or
// VarDecl with a single PatternBinding child, same shape as a declaration.
func (p *Parser) parseOptionalBinding() NodeID {
	kw := p.advance() // let or var
	kind := LetDecl
	if kw.Kind == token.KwVar {
		kind = VarDecl
	}

	var name string
	var nameSpan source.Span
	switch {
	case p.at(token.Ident):
		t := p.advance()
		name, nameSpan = t.IdentText(), t.Span
	case p.at(token.KwSelf):
		t := p.advance()
		name, nameSpan = "self", t.Span
	case p.at(token.Underscore):
		t := p.advance()
		name, nameSpan = "_", t.Span
	default:
		p.err(diag.SynExpectIdentifier, "expected a binding name after '"+kw.Text+"'")
		return p.tree.add(Node{Kind: kind, Span: kw.Span})
	}

	sp := nameSpan
	var kids []NodeID
	if p.at(token.Colon) {
		annSpan := p.advance().Span
		if tsp := p.skipType(token.Assign, token.Comma); tsp != (source.Span{}) {
			annSpan = annSpan.Cover(tsp)
		}
		kids = append(kids, p.tree.add(Node{Kind: TypeAnnotation, Span: annSpan}))
		sp = sp.Cover(annSpan)
	}
	if p.at(token.Assign) {
		initSpan := p.advance().Span
		var initKids []NodeID
		if e, ok := p.parseExprNoTrailing(); ok {
			initKids = append(initKids, e)
			initSpan = initSpan.Cover(p.tree.Node(e).Span)
		}
		kids = append(kids, p.tree.add(Node{Kind: Initializer, Span: initSpan, Children: initKids}))
		sp = sp.Cover(initSpan)
	}
	b := p.tree.add(Node{Kind: PatternBinding, Span: sp, NameSpan: nameSpan, Name: name, Children: kids})
	// NameSpan is the introducer keyword, same as the declaration form.
	return p.tree.add(Node{Kind: kind, Span: kw.Span.Cover(sp), NameSpan: kw.Span, Children: []NodeID{b}})
}

// scanPattern skips a pattern, capturing "let name" and "var name" bindings
// as declaration nodes. Payload names in forms like "case let .foo(a, b)"
// are not captured; the pattern itself is never linted.
func (p *Parser) scanPattern(stop ...token.Kind) ([]NodeID, source.Span) {
	var out []NodeID
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
			if !first && tok.StartsLine() {
				break
			}
		}
		switch tok.Kind {
		case token.KwLet, token.KwVar:
			if p.peekN(1).Kind == token.Ident {
				kw := p.advance()
				nameTok := p.advance()
				kind := LetDecl
				if kw.Kind == token.KwVar {
					kind = VarDecl
				}
				b := p.tree.add(Node{
					Kind:     PatternBinding,
					Span:     nameTok.Span,
					NameSpan: nameTok.Span,
					Name:     nameTok.IdentText(),
				})
				out = append(out, p.tree.add(Node{
					Kind:     kind,
					Span:     kw.Span.Cover(nameTok.Span),
					Children: []NodeID{b},
				}))
				sp = cover(sp, nameTok.Span)
				first = false
				continue
			}
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				return out, sp
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
		sp = cover(sp, p.advance().Span)
		first = false
	}
	return out, sp
}

func (p *Parser) parseSwitchStmt() (NodeID, bool) {
	start := p.advance().Span // switch
	var kids []NodeID
	if subj, ok := p.parseExprNoTrailing(); ok {
		kids = append(kids, subj)
	}
	end := p.lastSpan
	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' after the switch subject"); !ok {
		return p.tree.add(Node{Kind: SwitchStmt, Span: start.Cover(end), Children: kids}), true
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.failed {
		if p.eat(token.Semicolon) {
			continue
		}
		if p.at(token.Pound) {
			p.skipPoundDirective()
			continue
		}
		before := p.pos
		switch {
		case p.at(token.KwCase):
			kids = append(kids, p.parseCaseClause())
		case p.at(token.KwDefault):
			kids = append(kids, p.parseDefaultClause(nil))
		case p.at(token.At):
			// @unknown default:
			attrs := p.parseAttributes()
			if p.at(token.KwDefault) {
				kids = append(kids, p.parseDefaultClause(attrs))
			}
		default:
			p.err(diag.SynExpectCaseLabel, "expected 'case' or 'default' in switch body")
			if p.pos == before {
				p.advance()
			}
			p.resyncUntil(token.KwCase, token.KwDefault)
		}
	}
	if rb, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close the switch"); ok {
		end = rb.Span
	} else {
		end = p.lastSpan
	}
	return p.tree.add(Node{Kind: SwitchStmt, Span: start.Cover(end), Children: kids}), true
}

func (p *Parser) parseCaseClause() NodeID {
	start := p.advance().Span // case
	var kids []NodeID
	for {
		bound, _ := p.scanPattern(token.Colon, token.Comma, token.KwWhere)
		kids = append(kids, bound...)
		if p.eat(token.KwWhere) {
			if e, ok := p.parseExprNoTrailing(); ok {
				kids = append(kids, e)
			}
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after the case pattern")
	body, end := p.parseCaseBody(start)
	kids = append(kids, body...)
	return p.tree.add(Node{Kind: CaseClause, Span: start.Cover(end), Children: kids})
}

// parseDefaultClause parses "default: ..."; attrs carries a preceding
// @unknown so checks can tell the two forms apart.
func (p *Parser) parseDefaultClause(attrs []NodeID) NodeID {
	start := p.advance().Span // default
	p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after 'default'")
	body, end := p.parseCaseBody(start)
	kids := append(attrs, body...)
	return p.tree.add(Node{Kind: DefaultClause, Span: start.Cover(end), NameSpan: start, Children: kids})
}

// parseCaseBody parses statements until the next case label or the end of
// the switch.
func (p *Parser) parseCaseBody(start source.Span) ([]NodeID, source.Span) {
	var kids []NodeID
	end := start
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.failed {
		if p.at(token.KwCase) || p.at(token.KwDefault) {
			break
		}
		if p.at(token.At) && p.peekN(1).Kind == token.Ident && p.peekN(1).Text == "unknown" {
			break
		}
		if p.eat(token.Semicolon) {
			continue
		}
		before := p.pos
		id, ok := p.parseStmtOrDecl(localContext)
		if ok {
			if id.IsValid() {
				kids = append(kids, id)
				end = p.tree.Node(id).Span
			}
			continue
		}
		if p.pos == before {
			p.advance()
		}
		p.resyncUntil(caseBodyResync...)
	}
	return kids, end
}
