package syntax

import (
	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
	"swiftstyle/internal/token"
)

// The expression parser is precedence-flat: infix chains fold left into
// BinaryExpr nodes without a precedence table, because style checks care
// about which constructs appear, not how they associate. Postfix position is
// where the interesting nodes come from: force unwraps, optional chaining,
// calls and member access.

// parseExpr parses an expression, trailing closures allowed.
func (p *Parser) parseExpr() (NodeID, bool) {
	return p.parseExprSeq(true)
}

// parseExprNoTrailing parses an expression in a position where a '{' begins
// a statement body rather than a trailing closure: if, guard, while, switch
// and for headers.
func (p *Parser) parseExprNoTrailing() (NodeID, bool) {
	return p.parseExprSeq(false)
}

func (p *Parser) parseExprSeq(trailing bool) (NodeID, bool) {
	lhs, ok := p.parseUnary(trailing)
	if !ok {
		return NoNodeID, false
	}
	return p.parseBinaryRest(lhs, trailing)
}

// parseBinaryRest folds infix operators, assignments, casts and the ternary
// onto lhs. An operator that begins a new line ends the expression: Swift
// treats it as the start of the next statement. The ternary '?' and ':' are
// exempt, since wrapping them is an accepted multi-line style.
func (p *Parser) parseBinaryRest(lhs NodeID, trailing bool) (NodeID, bool) {
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Assign,
			token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign,
			token.PercentAssign, token.AmpAssign, token.PipeAssign, token.CaretAssign,
			token.ShlAssign, token.ShrAssign:
			if tok.StartsLine() {
				return lhs, true
			}
			op := p.advance()
			sp := p.tree.Node(lhs).Span.Cover(op.Span)
			kids := []NodeID{lhs}
			if rhs, ok := p.parseExprSeq(trailing); ok {
				kids = append(kids, rhs)
				sp = sp.Cover(p.tree.Node(rhs).Span)
			}
			return p.tree.add(Node{Kind: AssignExpr, Span: sp, NameSpan: op.Span, Name: op.Text, Children: kids}), true

		case token.Question:
			lhs = p.parseTernaryRest(lhs, trailing)

		case token.KwAs:
			if tok.StartsLine() {
				return lhs, true
			}
			lhs = p.parseCastRest(lhs)

		case token.KwIs:
			if tok.StartsLine() {
				return lhs, true
			}
			op := p.advance()
			sp := p.tree.Node(lhs).Span.Cover(op.Span)
			if tsp := p.skipCastType(); tsp != (source.Span{}) {
				sp = sp.Cover(tsp)
			}
			lhs = p.tree.add(Node{Kind: BinaryExpr, Span: sp, NameSpan: op.Span, Name: "is", Children: []NodeID{lhs}})

		case token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
			token.EqEq, token.EqEqEq, token.BangEq, token.BangEqEq,
			token.Lt, token.LtEq, token.Gt, token.GtEq, token.Shl, token.Shr,
			token.Amp, token.Pipe, token.Caret, token.AndAnd, token.OrOr,
			token.QuestionQuestion, token.DotDotDot, token.DotDotLt, token.Op:
			if tok.StartsLine() {
				return lhs, true
			}
			op := p.advance()
			sp := p.tree.Node(lhs).Span.Cover(op.Span)
			kids := []NodeID{lhs}
			if rhs, ok := p.parseUnary(trailing); ok {
				kids = append(kids, rhs)
				sp = sp.Cover(p.tree.Node(rhs).Span)
			}
			lhs = p.tree.add(Node{Kind: BinaryExpr, Span: sp, NameSpan: op.Span, Name: op.Text, Children: kids})

		default:
			return lhs, true
		}
	}
}

// parseTernaryRest parses "? then : else" after the condition.
func (p *Parser) parseTernaryRest(cond NodeID, trailing bool) NodeID {
	p.advance() // ?
	sp := p.tree.Node(cond).Span
	kids := []NodeID{cond}
	if then, ok := p.parseExprSeq(trailing); ok {
		kids = append(kids, then)
		sp = sp.Cover(p.tree.Node(then).Span)
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in ternary expression"); ok {
		if els, ok := p.parseExprSeq(trailing); ok {
			kids = append(kids, els)
			sp = sp.Cover(p.tree.Node(els).Span)
		}
	}
	return p.tree.add(Node{Kind: TernaryExpr, Span: sp, Children: kids})
}

// parseCastRest parses "as Type", "as? Type" and "as! Type" after the value.
// Only the forced form gets its own node kind.
func (p *Parser) parseCastRest(lhs NodeID) NodeID {
	kw := p.advance() // as
	kind := BinaryExpr
	name := "as"
	markSpan := kw.Span
	switch {
	case p.at(token.Bang) && p.adjacent(kw.Span.End):
		markSpan = p.advance().Span
		kind = ForceCastExpr
		name = "as!"
	case p.at(token.Question) && p.adjacent(kw.Span.End):
		p.advance()
		name = "as?"
	}
	sp := p.tree.Node(lhs).Span.Cover(markSpan)
	if tsp := p.skipCastType(); tsp != (source.Span{}) {
		sp = sp.Cover(tsp)
	} else {
		p.err(diag.SynExpectTypeName, "expected a type after '"+name+"'")
	}
	return p.tree.add(Node{Kind: kind, Span: sp, NameSpan: markSpan, Name: name, Children: []NodeID{lhs}})
}

// skipCastType consumes the type reference after as or is. Unlike skipType
// it runs in expression position, so it only takes tokens that cannot
// continue a value expression: a '+' after the type belongs to the enclosing
// arithmetic, not the type.
func (p *Parser) skipCastType() source.Span {
	var sp source.Span
	for {
		tok := p.peek()
		if sp != (source.Span{}) && tok.StartsLine() {
			return sp
		}
		switch tok.Kind {
		case token.Ident, token.KwAny, token.KwSelfType:
			sp = cover(sp, p.advance().Span)
		case token.Dot:
			if n := p.peekN(1); n.Kind != token.Ident && n.Kind != token.KwSelfType {
				return sp
			}
			p.advance()
			sp = cover(sp, p.advance().Span)
		case token.Question:
			// optional marks bind tightly to the type
			if sp == (source.Span{}) || !p.adjacent(sp.End) {
				return sp
			}
			sp = cover(sp, p.advance().Span)
		case token.LBracket, token.LParen:
			sp = cover(sp, p.skipBalanced())
		case token.Lt:
			sp = cover(sp, p.skipGenericParams())
		case token.Arrow:
			sp = cover(sp, p.advance().Span)
		case token.Amp:
			if p.peekN(1).Kind != token.Ident {
				return sp
			}
			sp = cover(sp, p.advance().Span)
		default:
			return sp
		}
	}
}

// parseUnary parses prefix operators, try and await marks, and inout
// arguments, then hands off to postfix parsing.
func (p *Parser) parseUnary(trailing bool) (NodeID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwTry:
		kw := p.advance()
		force := false
		switch {
		case p.at(token.Bang) && p.adjacent(kw.Span.End):
			p.advance()
			force = true
		case p.at(token.Question) && p.adjacent(kw.Span.End):
			p.advance()
		}
		operand, ok := p.parseUnary(trailing)
		if !ok {
			return NoNodeID, false
		}
		if !force {
			return operand, true
		}
		sp := kw.Span.Cover(p.tree.Node(operand).Span)
		return p.tree.add(Node{Kind: ForceTryExpr, Span: sp, NameSpan: kw.Span, Name: "try!", Children: []NodeID{operand}}), true

	case token.KwAwait:
		p.advance()
		return p.parseUnary(trailing)

	case token.Amp:
		t := p.advance()
		operand, ok := p.parseUnary(trailing)
		if !ok {
			return NoNodeID, false
		}
		sp := t.Span.Cover(p.tree.Node(operand).Span)
		return p.tree.add(Node{Kind: InoutExpr, Span: sp, Children: []NodeID{operand}}), true

	case token.Minus, token.Plus, token.Bang, token.Tilde, token.Op:
		t := p.advance()
		operand, ok := p.parseUnary(trailing)
		if !ok {
			return NoNodeID, false
		}
		sp := t.Span.Cover(p.tree.Node(operand).Span)
		return p.tree.add(Node{Kind: PrefixExpr, Span: sp, NameSpan: t.Span, Name: t.Text, Children: []NodeID{operand}}), true

	default:
		return p.parsePostfix(trailing)
	}
}

// adjacent reports whether the next token starts exactly at offset end, with
// no space between. Postfix marks like '!' and '?.' only count when glued to
// their operand.
func (p *Parser) adjacent(end uint32) bool {
	return p.peek().Span.Start == end
}

func (p *Parser) parsePostfix(trailing bool) (NodeID, bool) {
	lhs, ok := p.parsePrimary()
	if !ok {
		return NoNodeID, false
	}
	return p.parsePostfixRest(lhs, trailing)
}

// parsePostfixRest folds postfix marks onto lhs: member access, calls,
// subscripts, force unwraps, optional chaining and trailing closures.
// Member access may continue on a new line (leading-dot chains); everything
// else must stay on the same line as its operand.
func (p *Parser) parsePostfixRest(lhs NodeID, trailing bool) (NodeID, bool) {
	for {
		tok := p.peek()
		end := p.tree.Node(lhs).Span.End
		switch tok.Kind {
		case token.Dot:
			id, ok := p.parseMemberRest(lhs)
			if !ok {
				return lhs, true
			}
			lhs = id

		case token.LParen:
			if tok.StartsLine() {
				return lhs, true
			}
			lhs = p.parseCallRest(lhs)

		case token.LBracket:
			if tok.StartsLine() {
				return lhs, true
			}
			lhs = p.parseSubscriptRest(lhs)

		case token.Bang:
			if !p.adjacent(end) {
				return lhs, true
			}
			bang := p.advance()
			sp := p.tree.Node(lhs).Span.Cover(bang.Span)
			lhs = p.tree.add(Node{Kind: ForceUnwrapExpr, Span: sp, NameSpan: bang.Span, Children: []NodeID{lhs}})

		case token.Op:
			// a glued run of '!' is that many force unwraps
			if !p.adjacent(end) || !allBangs(tok.Text) {
				return lhs, true
			}
			run := p.advance()
			for i := uint32(0); i < uint32(len(run.Text)); i++ {
				bangSpan := source.Span{File: run.Span.File, Start: run.Span.Start + i, End: run.Span.Start + i + 1}
				sp := p.tree.Node(lhs).Span.Cover(bangSpan)
				lhs = p.tree.add(Node{Kind: ForceUnwrapExpr, Span: sp, NameSpan: bangSpan, Children: []NodeID{lhs}})
			}

		case token.Question:
			// '?' glued to the value and to a following '.', '[' or '('
			// is optional chaining; anything else is the ternary
			if !p.adjacent(end) {
				return lhs, true
			}
			switch n := p.peekN(1); n.Kind {
			case token.Dot, token.LBracket, token.LParen:
				if n.Span.Start != tok.Span.End {
					return lhs, true
				}
			default:
				return lhs, true
			}
			q := p.advance()
			sp := p.tree.Node(lhs).Span.Cover(q.Span)
			lhs = p.tree.add(Node{Kind: OptionalChainExpr, Span: sp, NameSpan: q.Span, Children: []NodeID{lhs}})

		case token.Lt:
			n, ok := p.genericArgsAhead()
			if !ok || !p.adjacent(end) {
				return lhs, true
			}
			k := p.tree.Node(lhs).Kind
			if k != IdentExpr && k != MemberExpr {
				return lhs, true
			}
			sp := p.tree.Node(lhs).Span
			for j := 0; j < n; j++ {
				sp = sp.Cover(p.advance().Span)
			}
			p.tree.Node(lhs).Span = sp

		case token.LBrace:
			if !trailing || tok.StartsLine() || p.trailingClosureBlocked() {
				return lhs, true
			}
			lhs = p.parseTrailingClosures(lhs)

		default:
			return lhs, true
		}
	}
}

func allBangs(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '!' {
			return false
		}
	}
	return len(s) > 0
}

// trailingClosureBlocked keeps "var x = Foo() { didSet { ... } }" parsing as
// an observer block rather than a trailing closure.
func (p *Parser) trailingClosureBlocked() bool {
	t := p.peekN(1)
	return t.Kind == token.Ident && (t.Text == "willSet" || t.Text == "didSet")
}

// parseMemberRest parses ".name" after a value. Dots at the start of a line
// keep chains like ".map { }.filter { }" in one expression.
func (p *Parser) parseMemberRest(lhs NodeID) (NodeID, bool) {
	var name string
	var nameSpan source.Span
	switch n := p.peekN(1); n.Kind {
	case token.Ident, token.DollarIdent:
		name = n.IdentText()
		nameSpan = n.Span
	case token.KwInit, token.KwSelf, token.KwSelfType, token.IntLit:
		name = n.Text
		nameSpan = n.Span
	default:
		return NoNodeID, false
	}
	p.advance() // .
	p.advance() // name
	sp := p.tree.Node(lhs).Span.Cover(nameSpan)
	return p.tree.add(Node{Kind: MemberExpr, Span: sp, NameSpan: nameSpan, Name: name, Children: []NodeID{lhs}}), true
}

// parseCallRest parses "(args)" after a callee, then any trailing closures
// are picked up by the postfix loop.
func (p *Parser) parseCallRest(callee NodeID) NodeID {
	kids := []NodeID{callee}
	argSpan := p.parseArgList(token.RParen, &kids)
	sp := p.tree.Node(callee).Span.Cover(argSpan)
	return p.tree.add(Node{Kind: CallExpr, Span: sp, Children: kids})
}

func (p *Parser) parseSubscriptRest(base NodeID) NodeID {
	kids := []NodeID{base}
	argSpan := p.parseArgList(token.RBracket, &kids)
	sp := p.tree.Node(base).Span.Cover(argSpan)
	return p.tree.add(Node{Kind: SubscriptExpr, Span: sp, Children: kids})
}

// parseArgList parses a parenthesized or bracketed argument list, appending
// argument expressions to kids. Labels are consumed but not recorded.
func (p *Parser) parseArgList(close token.Kind, kids *[]NodeID) source.Span {
	sp := p.advance().Span // ( or [
	for !p.at(close) && !p.at(token.EOF) && !p.failed {
		if t := p.peek(); (t.Kind == token.Ident || t.IsKeyword()) && p.peekN(1).Kind == token.Colon {
			p.advance()
			p.advance()
		}
		before := p.pos
		if e, ok := p.parseExpr(); ok {
			*kids = append(*kids, e)
		}
		if p.eat(token.Comma) {
			continue
		}
		if p.at(close) {
			break
		}
		if p.pos == before {
			p.advance()
		}
		p.resyncUntil(token.Comma)
		p.eat(token.Comma)
	}
	if t, ok := p.expect(close, diag.SynUnclosedDelimiter, "expected '"+closeText(close)+"' to close the argument list"); ok {
		sp = sp.Cover(t.Span)
	} else {
		sp = sp.Cover(p.lastSpan)
	}
	return sp
}

func closeText(k token.Kind) string {
	if k == token.RBracket {
		return "]"
	}
	return ")"
}

// parseTrailingClosures parses one trailing closure plus any labeled
// followers, wrapping lhs in a CallExpr when it is not one already.
func (p *Parser) parseTrailingClosures(lhs NodeID) NodeID {
	closure := p.parseClosureExpr()
	sp := p.tree.Node(lhs).Span.Cover(p.tree.Node(closure).Span)
	kids := []NodeID{lhs, closure}
	for p.at(token.Ident) && !p.peek().StartsLine() &&
		p.peekN(1).Kind == token.Colon && p.peekN(2).Kind == token.LBrace {
		p.advance() // label
		p.advance() // :
		c := p.parseClosureExpr()
		kids = append(kids, c)
		sp = sp.Cover(p.tree.Node(c).Span)
	}
	return p.tree.add(Node{Kind: CallExpr, Span: sp, Children: kids})
}

// genericArgsAhead checks whether the '<' at the cursor opens an explicit
// generic argument list, like Dictionary<String, Int>(). It scans forward
// for a matching '>' over type-shaped tokens and accepts only when the
// follow token fits; otherwise the '<' is a plain comparison.
func (p *Parser) genericArgsAhead() (int, bool) {
	depth := 0
	for i := 0; i < 64; i++ {
		t := p.peekN(i)
		switch t.Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
			if depth == 0 {
				return i + 1, genericFollow(p.peekN(i + 1).Kind)
			}
		case token.Shr:
			depth -= 2
			if depth == 0 {
				return i + 1, genericFollow(p.peekN(i + 1).Kind)
			}
			if depth < 0 {
				return 0, false
			}
		case token.Ident, token.Dot, token.Comma, token.Question, token.Colon,
			token.LBracket, token.RBracket, token.LParen, token.RParen,
			token.Arrow, token.Amp, token.KwAny, token.KwSelfType, token.Underscore:
			// type-shaped, keep scanning
		default:
			return 0, false
		}
	}
	return 0, false
}

func genericFollow(k token.Kind) bool {
	switch k {
	case token.LParen, token.Dot, token.RParen, token.RBracket, token.RBrace,
		token.Comma, token.Semicolon, token.Colon, token.EOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePrimary() (NodeID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident, token.DollarIdent:
		t := p.advance()
		return p.tree.add(Node{Kind: IdentExpr, Span: t.Span, NameSpan: t.Span, Name: t.IdentText()}), true

	case token.KwSelf, token.KwSelfType, token.KwSuper, token.KwAny:
		t := p.advance()
		return p.tree.add(Node{Kind: IdentExpr, Span: t.Span, NameSpan: t.Span, Name: t.Text}), true

	case token.Underscore:
		// discard target: _ = ignored()
		t := p.advance()
		return p.tree.add(Node{Kind: IdentExpr, Span: t.Span, NameSpan: t.Span, Name: "_"}), true

	case token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse, token.KwNil:
		t := p.advance()
		return p.tree.add(Node{Kind: LiteralExpr, Span: t.Span}), true

	case token.Dot:
		// implicit member: .shared, .init(x)
		id, ok := p.parseImplicitMember()
		return id, ok

	case token.LParen:
		return p.parseTupleExpr()

	case token.LBracket:
		return p.parseCollectionExpr()

	case token.LBrace:
		return p.parseClosureExpr(), true

	case token.KwIf:
		return p.parseIfStmt()

	case token.KwSwitch:
		return p.parseSwitchStmt()

	case token.Backslash:
		return p.parseKeyPathExpr()

	case token.Pound:
		// #selector(...), #function, #colorLiteral(...)
		sp := p.advance().Span
		if p.at(token.Ident) || p.peek().IsKeyword() {
			sp = sp.Cover(p.advance().Span)
		}
		if p.at(token.LParen) {
			sp = sp.Cover(p.skipBalanced())
		}
		return p.tree.add(Node{Kind: LiteralExpr, Span: sp}), true

	default:
		p.err(diag.SynUnexpectedToken, "expected an expression")
		return NoNodeID, false
	}
}

// parseImplicitMember parses ".name" with no base, the contextual member
// shorthand used for enum cases and static members.
func (p *Parser) parseImplicitMember() (NodeID, bool) {
	dot := p.advance()
	var name string
	var nameSpan source.Span
	switch n := p.peek(); n.Kind {
	case token.Ident:
		name = n.IdentText()
		nameSpan = n.Span
		p.advance()
	case token.KwInit, token.KwSelf:
		name = n.Text
		nameSpan = n.Span
		p.advance()
	default:
		p.err(diag.SynExpectIdentifier, "expected a member name after '.'")
		return NoNodeID, false
	}
	sp := dot.Span.Cover(nameSpan)
	return p.tree.add(Node{Kind: MemberExpr, Span: sp, NameSpan: nameSpan, Name: name}), true
}

// parseTupleExpr parses "(a, b)" and "(label: x)". A single unlabeled
// element is plain grouping but keeps the TupleExpr node.
func (p *Parser) parseTupleExpr() (NodeID, bool) {
	var kids []NodeID
	sp := p.parseArgList(token.RParen, &kids)
	return p.tree.add(Node{Kind: TupleExpr, Span: sp, Children: kids}), true
}

// parseCollectionExpr parses array and dictionary literals. Dictionary
// values follow their keys as flat children.
func (p *Parser) parseCollectionExpr() (NodeID, bool) {
	sp := p.advance().Span // [
	var kids []NodeID
	if p.at(token.Colon) { // [:]
		p.advance()
	}
	for !p.at(token.RBracket) && !p.at(token.EOF) && !p.failed {
		before := p.pos
		if e, ok := p.parseExpr(); ok {
			kids = append(kids, e)
		}
		if p.eat(token.Colon) {
			if v, ok := p.parseExpr(); ok {
				kids = append(kids, v)
			}
		}
		if p.eat(token.Comma) {
			continue
		}
		if p.at(token.RBracket) {
			break
		}
		if p.pos == before {
			p.advance()
		}
		p.resyncUntil(token.Comma)
		p.eat(token.Comma)
	}
	if t, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close the literal"); ok {
		sp = sp.Cover(t.Span)
	} else {
		sp = sp.Cover(p.lastSpan)
	}
	return p.tree.add(Node{Kind: ArrayExpr, Span: sp, Children: kids}), true
}

// parseKeyPathExpr parses "\.name" and "\Type.path[0]" key paths.
func (p *Parser) parseKeyPathExpr() (NodeID, bool) {
	sp := p.advance().Span // backslash
	for {
		switch p.peek().Kind {
		case token.Ident, token.KwSelf, token.KwSelfType, token.IntLit:
			sp = sp.Cover(p.advance().Span)
		case token.Dot:
			sp = sp.Cover(p.advance().Span)
		case token.LBracket:
			sp = sp.Cover(p.skipBalanced())
		case token.Question, token.Bang:
			if !p.adjacent(sp.End) {
				return p.tree.add(Node{Kind: LiteralExpr, Span: sp}), true
			}
			sp = sp.Cover(p.advance().Span)
		default:
			return p.tree.add(Node{Kind: LiteralExpr, Span: sp}), true
		}
	}
}
