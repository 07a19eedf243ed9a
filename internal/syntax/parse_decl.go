package syntax

import (
	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
	"swiftstyle/internal/token"
)

// declContext tells parseDecl what encloses the declaration, which changes
// what is legal there: 'case' declares an enum case only inside an enum body,
// and accessor blocks attach differently at local scope.
type declContext uint8

const (
	topLevelContext declContext = iota
	memberContext
	enumMemberContext
	localContext
)

// declAhead reports whether the cursor sits on something that can only be a
// declaration. Contextual modifier words count only when a declaration
// keyword follows, so "final = 5" still parses as an expression.
func (p *Parser) declAhead() bool {
	tok := p.peek()
	switch {
	case tok.Kind.IsDeclIntro(), tok.Kind.IsAccessLevel(), tok.Kind == token.KwStatic, tok.Kind == token.At:
		return true
	case tok.Kind == token.Ident:
		if tok.Text == "actor" && p.peekN(1).Kind == token.Ident {
			return true
		}
		return token.IsDeclModifier(tok.Text) && p.declishAfterModifier(1)
	default:
		return false
	}
}

// declishAfterModifier reports whether the token n ahead can follow a
// declaration modifier and still lead into a declaration.
func (p *Parser) declishAfterModifier(n int) bool {
	t := p.peekN(n)
	switch {
	case t.Kind.IsDeclIntro(), t.Kind.IsAccessLevel(), t.Kind == token.KwStatic, t.Kind == token.At:
		return true
	case t.Kind == token.Ident:
		return token.IsDeclModifier(t.Text) || t.Text == "actor"
	default:
		return false
	}
}

// parseDecl parses one declaration. It returns false only when the cursor
// does not sit on a declaration at all; once an intro keyword is consumed the
// parser always produces a node, however incomplete.
func (p *Parser) parseDecl(ctx declContext) (NodeID, bool) {
	start := p.peek().Span
	attrs := p.parseAttributes()
	mods := p.parseModifiers()

	switch {
	case p.at(token.KwImport):
		return p.parseImportDecl(start, attrs, mods)
	case p.at(token.KwClass):
		return p.parseTypeDecl(ClassDecl, start, attrs, mods)
	case p.at(token.KwStruct):
		return p.parseTypeDecl(StructDecl, start, attrs, mods)
	case p.at(token.KwEnum):
		return p.parseTypeDecl(EnumDecl, start, attrs, mods)
	case p.at(token.KwProtocol):
		return p.parseTypeDecl(ProtocolDecl, start, attrs, mods)
	case p.at(token.KwExtension):
		return p.parseTypeDecl(ExtensionDecl, start, attrs, mods)
	case p.atContextual("actor") && p.peekN(1).Kind == token.Ident:
		return p.parseTypeDecl(ActorDecl, start, attrs, mods)
	case p.at(token.KwFunc):
		return p.parseFuncDecl(start, attrs, mods)
	case p.at(token.KwInit):
		return p.parseInitDecl(start, attrs, mods)
	case p.at(token.KwDeinit):
		return p.parseDeinitDecl(start, attrs, mods)
	case p.at(token.KwSubscript):
		return p.parseSubscriptDecl(start, attrs, mods)
	case p.at(token.KwVar):
		return p.parseVarDecl(VarDecl, start, attrs, mods)
	case p.at(token.KwLet):
		return p.parseVarDecl(LetDecl, start, attrs, mods)
	case p.at(token.KwTypealias):
		return p.parseTypealiasDecl(start, attrs, mods)
	case p.at(token.KwAssociatedtype):
		return p.parseAssociatedtypeDecl(start, attrs, mods)
	case p.at(token.KwOperator):
		return p.parseOperatorDecl(start, mods)
	case p.at(token.KwPrecedencegroup):
		return p.parsePrecedenceGroupDecl(start)
	case p.at(token.KwCase):
		if ctx == enumMemberContext {
			return p.parseEnumCaseDecl(start, attrs, mods)
		}
		p.err(diag.SynUnexpectedToken, "'case' is only valid inside an enum or a switch")
		return NoNodeID, false
	default:
		if len(attrs) > 0 || mods != 0 {
			p.err(diag.SynExpectDeclaration, "expected a declaration after modifiers")
		} else {
			p.err(diag.SynExpectDeclaration, "expected a declaration")
		}
		return NoNodeID, false
	}
}

// parseAttributes collects leading @attributes into Attribute nodes.
func (p *Parser) parseAttributes() []NodeID {
	var out []NodeID
	for p.at(token.At) {
		sp := p.advance().Span
		name := ""
		var nameSpan source.Span
		if p.at(token.Ident) {
			tok := p.advance()
			name = tok.IdentText()
			nameSpan = tok.Span
			sp = sp.Cover(tok.Span)
			for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
				p.advance()
				t := p.advance()
				name += "." + t.IdentText()
				nameSpan = nameSpan.Cover(t.Span)
				sp = sp.Cover(t.Span)
			}
		} else {
			p.err(diag.SynExpectIdentifier, "expected an attribute name after '@'")
		}
		if p.at(token.Lt) {
			sp = sp.Cover(p.skipGenericParams())
		}
		if p.at(token.LParen) {
			sp = sp.Cover(p.skipBalanced())
		}
		out = append(out, p.tree.add(Node{Kind: Attribute, Span: sp, NameSpan: nameSpan, Name: name}))
	}
	return out
}

// parseModifiers consumes the run of declaration modifiers before an intro
// keyword. 'class' is taken as a member modifier only when a member intro
// follows; contextual words like 'final' or 'lazy' are taken only when the
// rest of the line still looks like a declaration.
func (p *Parser) parseModifiers() Modifiers {
	var mods Modifiers
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.KwPublic:
			mods |= ModPublic
		case token.KwPrivate:
			mods |= ModPrivate
		case token.KwFileprivate:
			mods |= ModFileprivate
		case token.KwInternal:
			mods |= ModInternal
		case token.KwOpen:
			mods |= ModOpen
		case token.KwStatic:
			mods |= ModStatic
		case token.KwClass:
			switch p.peekN(1).Kind {
			case token.KwFunc, token.KwVar, token.KwLet, token.KwSubscript, token.KwInit:
				mods |= ModClassMember
			default:
				return mods
			}
		case token.Ident:
			if !token.IsDeclModifier(tok.Text) || !p.declishAfterModifier(1) {
				return mods
			}
			mods |= modifierBits[tok.Text]
		default:
			return mods
		}
		p.advance()
		// private(set), unowned(unsafe)
		if p.at(token.LParen) {
			p.skipBalanced()
		}
	}
}

// parseTypeDecl parses class, struct, enum, actor, protocol and extension
// declarations, which all share the shape
//
//	intro Name<Generics>: Inherited where Constraints { members }
func (p *Parser) parseTypeDecl(kind NodeKind, start source.Span, attrs []NodeID, mods Modifiers) (NodeID, bool) {
	p.advance() // intro keyword, or the contextual 'actor'
	children := attrs

	var name string
	var nameSpan source.Span
	if p.at(token.Ident) {
		tok := p.advance()
		name = tok.IdentText()
		nameSpan = tok.Span
		// extensions name an existing, possibly nested, type
		for kind == ExtensionDecl && p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
			p.advance()
			t := p.advance()
			name += "." + t.IdentText()
			nameSpan = nameSpan.Cover(t.Span)
		}
	} else {
		p.err(diag.SynExpectTypeName, "expected a type name")
	}
	if p.at(token.Lt) {
		p.skipGenericParams()
	}
	if inh := p.parseInheritanceClause(); inh.IsValid() {
		children = append(children, inh)
	}
	if p.at(token.KwWhere) {
		p.skipWhereClause()
	}

	bodyCtx := memberContext
	if kind == EnumDecl {
		bodyCtx = enumMemberContext
	}
	members, end := p.parseMemberBlock(bodyCtx)
	children = append(children, members...)

	id := p.tree.add(Node{
		Kind:     kind,
		Span:     start.Cover(end),
		NameSpan: nameSpan,
		Name:     name,
		Mods:     mods,
		Children: children,
	})
	return id, true
}

// parseMemberBlock parses a braced list of member declarations with per
// member recovery, so one broken member does not take the rest down.
func (p *Parser) parseMemberBlock(ctx declContext) ([]NodeID, source.Span) {
	lb, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' to begin the body")
	if !ok {
		return nil, p.lastSpan
	}
	end := lb.Span
	var members []NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.failed {
		if p.eat(token.Semicolon) {
			continue
		}
		if p.at(token.Pound) {
			p.skipPoundDirective()
			continue
		}
		before := p.pos
		id, ok := p.parseDecl(ctx)
		if ok {
			members = append(members, id)
			continue
		}
		if p.pos == before {
			p.advance()
		}
		p.resyncUntil(declStarters...)
	}
	if rb, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close the body"); ok {
		end = rb.Span
	} else {
		end = p.lastSpan
	}
	return members, end
}

// parseInheritanceClause parses ": Base, Proto1 & Proto2" after a type name.
// Each comma-separated entry becomes an InheritedType carrying the first
// type name in the entry.
func (p *Parser) parseInheritanceClause() NodeID {
	if !p.at(token.Colon) {
		return NoNodeID
	}
	sp := p.advance().Span
	var entries []NodeID
	for {
		e := p.parseInheritedType()
		if !e.IsValid() {
			break
		}
		entries = append(entries, e)
		sp = sp.Cover(p.tree.Node(e).Span)
		if !p.eat(token.Comma) {
			break
		}
	}
	if len(entries) == 0 {
		p.err(diag.SynExpectTypeName, "expected a type after ':'")
	}
	return p.tree.add(Node{Kind: InheritanceClause, Span: sp, Children: entries})
}

func (p *Parser) parseInheritedType() NodeID {
	for p.at(token.At) {
		p.skipAttribute() // @unchecked Sendable
	}
	tok := p.peek()
	if tok.Kind != token.Ident && tok.Kind != token.KwAny {
		return NoNodeID
	}
	first := p.advance()
	// 'any P' and 'some P' introduce the real name
	if first.Kind == token.Ident && (first.Text == "any" || first.Text == "some") && p.at(token.Ident) {
		first = p.advance()
	}
	name := first.IdentText()
	nameSpan := first.Span
	sp := first.Span
	for {
		switch {
		case p.at(token.Dot) && p.peekN(1).Kind == token.Ident:
			p.advance()
			t := p.advance()
			name += "." + t.IdentText()
			sp = sp.Cover(t.Span)
		case p.at(token.Lt):
			sp = sp.Cover(p.skipGenericParams())
		case p.at(token.Amp) && (p.peekN(1).Kind == token.Ident || p.peekN(1).Kind == token.KwAny):
			p.advance()
			sp = sp.Cover(p.advance().Span)
		default:
			return p.tree.add(Node{Kind: InheritedType, Span: sp, NameSpan: nameSpan, Name: name})
		}
	}
}

// parseEnumCaseDecl parses "case a, b(Int), c = 3" inside an enum body. Each
// name becomes an EnumCaseElement child.
func (p *Parser) parseEnumCaseDecl(start source.Span, attrs []NodeID, mods Modifiers) (NodeID, bool) {
	p.advance() // case
	children := attrs
	end := p.lastSpan
	for {
		if !p.at(token.Ident) {
			p.err(diag.SynExpectIdentifier, "expected an enum case name")
			break
		}
		nameTok := p.advance()
		sp := nameTok.Span
		if p.at(token.LParen) {
			sp = sp.Cover(p.skipBalanced()) // associated values
		}
		if p.eat(token.Assign) { // raw value
			if p.at(token.Minus) {
				sp = sp.Cover(p.advance().Span)
			}
			if p.peek().IsLiteral() {
				sp = sp.Cover(p.advance().Span)
			} else {
				p.err(diag.SynUnexpectedToken, "expected a literal raw value")
			}
		}
		children = append(children, p.tree.add(Node{
			Kind:     EnumCaseElement,
			Span:     sp,
			NameSpan: nameTok.Span,
			Name:     nameTok.IdentText(),
		}))
		end = sp
		if !p.eat(token.Comma) {
			break
		}
	}
	id := p.tree.add(Node{Kind: EnumCaseDecl, Span: start.Cover(end), Mods: mods, Children: children})
	return id, true
}

// parseVarDecl parses var and let declarations with one or more bindings.
func (p *Parser) parseVarDecl(kind NodeKind, start source.Span, attrs []NodeID, mods Modifiers) (NodeID, bool) {
	kw := p.advance() // var or let
	children := attrs
	end := p.lastSpan
	for {
		b := p.parsePatternBinding()
		if !b.IsValid() {
			break
		}
		children = append(children, b)
		end = p.tree.Node(b).Span
		if !p.eat(token.Comma) {
			break
		}
	}
	// NameSpan is the introducer keyword so checks can rewrite it.
	id := p.tree.add(Node{Kind: kind, Span: start.Cover(end), NameSpan: kw.Span, Mods: mods, Children: children})
	return id, true
}

// parsePatternBinding parses one "name: Type = value { accessors }" unit.
// Tuple destructuring keeps an empty name; checks that need a single
// identifier skip those bindings.
func (p *Parser) parsePatternBinding() NodeID {
	var name string
	var nameSpan, sp source.Span
	switch {
	case p.at(token.Ident):
		t := p.advance()
		name, nameSpan, sp = t.IdentText(), t.Span, t.Span
	case p.at(token.Underscore):
		t := p.advance()
		name, nameSpan, sp = "_", t.Span, t.Span
	case p.at(token.KwSelf):
		// "let self = self" in closures after weak capture
		t := p.advance()
		name, nameSpan, sp = "self", t.Span, t.Span
	case p.at(token.LParen):
		sp = p.skipBalanced()
	default:
		p.err(diag.SynExpectIdentifier, "expected a binding name")
		return NoNodeID
	}

	var kids []NodeID
	hasInit := false
	if p.at(token.Colon) {
		annSpan := p.advance().Span
		if tsp := p.skipType(token.Assign, token.Comma, token.Semicolon); tsp != (source.Span{}) {
			annSpan = annSpan.Cover(tsp)
		} else {
			p.err(diag.SynExpectTypeName, "expected a type after ':'")
		}
		kids = append(kids, p.tree.add(Node{Kind: TypeAnnotation, Span: annSpan}))
		sp = sp.Cover(annSpan)
	}
	if p.at(token.Assign) {
		initSpan := p.advance().Span
		var initKids []NodeID
		if e, ok := p.parseExpr(); ok {
			initKids = append(initKids, e)
			initSpan = initSpan.Cover(p.tree.Node(e).Span)
		}
		kids = append(kids, p.tree.add(Node{Kind: Initializer, Span: initSpan, Children: initKids}))
		sp = sp.Cover(initSpan)
		hasInit = true
	}
	if p.at(token.LBrace) && (!hasInit || p.accessorWordNext()) {
		ab := p.parseAccessorBlock()
		kids = append(kids, ab)
		sp = sp.Cover(p.tree.Node(ab).Span)
	}
	return p.tree.add(Node{Kind: PatternBinding, Span: sp, NameSpan: nameSpan, Name: name, Children: kids})
}

// accessorWordNext reports whether the '{' at the cursor opens an accessor
// list rather than a closure.
func (p *Parser) accessorWordNext() bool {
	t := p.peekN(1)
	if t.Kind != token.Ident {
		return false
	}
	switch t.Text {
	case "get", "set", "willSet", "didSet", "unsafeAddress", "unsafeMutableAddress", "_read", "_modify":
		return true
	default:
		return false
	}
}

// parseAccessorBlock parses "{ get { ... } set { ... } }" and friends. A body
// that does not start with an accessor keyword is an implicit getter and is
// parsed as a plain code block under a synthetic get accessor.
func (p *Parser) parseAccessorBlock() NodeID {
	lb := p.advance() // {
	sp := lb.Span
	var kids []NodeID

	structured := p.accessorListStart()
	if structured {
		for !p.at(token.RBrace) && !p.at(token.EOF) && !p.failed {
			a := p.parseAccessor()
			if !a.IsValid() {
				p.resyncUntil()
				break
			}
			kids = append(kids, a)
		}
	} else {
		body, bodySpan := p.parseCodeBlockRest(lb)
		kids = append(kids, p.tree.add(Node{Kind: Accessor, Span: bodySpan, Name: "get", Children: []NodeID{body}}))
		return p.tree.add(Node{Kind: AccessorBlock, Span: bodySpan, Children: kids})
	}

	if rb, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close the accessor block"); ok {
		sp = sp.Cover(rb.Span)
	} else {
		sp = sp.Cover(p.lastSpan)
	}
	return p.tree.add(Node{Kind: AccessorBlock, Span: sp, Children: kids})
}

// accessorListStart reports whether the block just opened contains named
// accessors. Attributes and mutating markers may precede the first name.
func (p *Parser) accessorListStart() bool {
	i := 0
	for {
		t := p.peekN(i)
		switch {
		case t.Kind == token.At:
			// assume an attribute means accessors; statements cannot
			// start with '@'
			return true
		case t.Kind == token.Ident && (t.Text == "mutating" || t.Text == "nonmutating"):
			i++
		case t.Kind == token.Ident:
			switch t.Text {
			case "get", "set", "willSet", "didSet", "unsafeAddress", "unsafeMutableAddress", "_read", "_modify":
				return true
			}
			return false
		default:
			return false
		}
	}
}

func (p *Parser) parseAccessor() NodeID {
	start := p.peek().Span
	for p.at(token.At) {
		p.skipAttribute()
	}
	for p.atContextual("mutating") || p.atContextual("nonmutating") {
		p.advance()
	}
	if !p.at(token.Ident) {
		p.err(diag.SynExpectIdentifier, "expected an accessor name")
		return NoNodeID
	}
	nameTok := p.advance()
	sp := start.Cover(nameTok.Span)
	if p.at(token.LParen) {
		sp = sp.Cover(p.skipBalanced()) // willSet(newValue)
	}
	for p.at(token.KwThrows) || p.at(token.KwRethrows) || p.atContextual("async") {
		sp = sp.Cover(p.advance().Span)
	}
	var kids []NodeID
	if p.at(token.LBrace) {
		body, bodySpan := p.parseCodeBlock()
		kids = append(kids, body)
		sp = sp.Cover(bodySpan)
	}
	return p.tree.add(Node{Kind: Accessor, Span: sp, NameSpan: nameTok.Span, Name: nameTok.Text, Children: kids})
}

// parseFuncDecl parses a function declaration. Operator functions keep the
// operator spelling as their name.
func (p *Parser) parseFuncDecl(start source.Span, attrs []NodeID, mods Modifiers) (NodeID, bool) {
	p.advance() // func

	var name string
	var nameSpan source.Span
	tok := p.peek()
	switch {
	case tok.Kind == token.Ident:
		t := p.advance()
		name, nameSpan = t.IdentText(), t.Span
	case isOperatorName(tok.Kind):
		t := p.advance()
		name, nameSpan = t.Text, t.Span
	default:
		p.err(diag.SynExpectIdentifier, "expected a function name after 'func'")
	}

	if p.at(token.Lt) {
		p.skipGenericParams()
	}
	params, end := p.parseParamClause()
	children := append(attrs, params...)

	end = p.parseEffects(end)
	if p.eat(token.Arrow) {
		if tsp := p.skipType(token.KwWhere, token.Semicolon); tsp != (source.Span{}) {
			end = tsp
		}
	}
	if p.at(token.KwWhere) {
		end = p.skipWhereClause()
	}
	if p.at(token.LBrace) {
		body, bodySpan := p.parseCodeBlock()
		children = append(children, body)
		end = bodySpan
	}

	id := p.tree.add(Node{
		Kind:     FuncDecl,
		Span:     start.Cover(end),
		NameSpan: nameSpan,
		Name:     name,
		Mods:     mods,
		Children: children,
	})
	return id, true
}

// parseEffects consumes async, reasync, throws and rethrows markers after a
// parameter clause, plus typed throws "throws(E)".
func (p *Parser) parseEffects(end source.Span) source.Span {
	for {
		switch {
		case p.at(token.KwThrows), p.at(token.KwRethrows):
			end = p.advance().Span
			if p.at(token.LParen) {
				end = p.skipBalanced()
			}
		case p.atContextual("async"), p.atContextual("reasync"):
			end = p.advance().Span
		default:
			return end
		}
	}
}

// isOperatorName reports whether the kind can serve as an operator function
// name, such as func == or func <*>.
func isOperatorName(k token.Kind) bool {
	switch k {
	case token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket,
		token.Comma, token.Colon, token.Semicolon, token.At, token.Pound, token.Underscore,
		token.Backslash:
		return false
	default:
		return token.Token{Kind: k}.IsPunctOrOp()
	}
}

// parseParamClause parses "(label name: Type = default, ...)" into Param
// nodes. The internal name is the binding name the body sees.
func (p *Parser) parseParamClause() ([]NodeID, source.Span) {
	lp, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to begin the parameter list")
	if !ok {
		return nil, p.lastSpan
	}
	end := lp.Span
	var params []NodeID
	for !p.at(token.RParen) && !p.at(token.EOF) && !p.failed {
		before := p.pos
		if prm := p.parseParam(); prm.IsValid() {
			params = append(params, prm)
		}
		if p.eat(token.Comma) {
			continue
		}
		if p.at(token.RParen) {
			break
		}
		if p.pos == before {
			p.advance()
		}
		p.resyncUntil(token.Comma)
		p.eat(token.Comma)
	}
	if rp, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close the parameter list"); ok {
		end = rp.Span
	} else {
		end = p.lastSpan
	}
	return params, end
}

func (p *Parser) parseParam() NodeID {
	start := p.peek().Span
	for p.at(token.At) {
		p.skipAttribute()
	}
	var names []token.Token
	for (p.at(token.Ident) || p.at(token.Underscore)) && len(names) < 2 {
		names = append(names, p.advance())
	}
	if len(names) == 0 {
		p.err(diag.SynExpectIdentifier, "expected a parameter name")
		return NoNodeID
	}
	internal := names[len(names)-1]
	sp := start.Cover(internal.Span)

	var kids []NodeID
	if p.eat(token.Colon) {
		if tsp := p.skipType(token.Comma, token.Assign); tsp != (source.Span{}) {
			kids = append(kids, p.tree.add(Node{Kind: TypeAnnotation, Span: tsp}))
			sp = sp.Cover(tsp)
		} else {
			p.err(diag.SynExpectTypeName, "expected a parameter type after ':'")
		}
	}
	if p.eat(token.Assign) {
		if e, ok := p.parseExpr(); ok {
			kids = append(kids, e)
			sp = sp.Cover(p.tree.Node(e).Span)
		}
	}

	name := internal.IdentText()
	if internal.Kind == token.Underscore {
		name = "_"
	}
	return p.tree.add(Node{Kind: Param, Span: sp, NameSpan: internal.Span, Name: name, Children: kids})
}

func (p *Parser) parseInitDecl(start source.Span, attrs []NodeID, mods Modifiers) (NodeID, bool) {
	kw := p.advance() // init
	nameSpan := kw.Span
	if p.at(token.Question) || p.at(token.Bang) {
		p.advance() // failable marker
	}
	if p.at(token.Lt) {
		p.skipGenericParams()
	}
	params, end := p.parseParamClause()
	children := append(attrs, params...)
	end = p.parseEffects(end)
	if p.at(token.KwWhere) {
		end = p.skipWhereClause()
	}
	if p.at(token.LBrace) {
		body, bodySpan := p.parseCodeBlock()
		children = append(children, body)
		end = bodySpan
	}
	id := p.tree.add(Node{
		Kind:     InitDecl,
		Span:     start.Cover(end),
		NameSpan: nameSpan,
		Name:     "init",
		Mods:     mods,
		Children: children,
	})
	return id, true
}

func (p *Parser) parseDeinitDecl(start source.Span, attrs []NodeID, mods Modifiers) (NodeID, bool) {
	kw := p.advance() // deinit
	children := attrs
	end := kw.Span
	if p.at(token.LBrace) {
		body, bodySpan := p.parseCodeBlock()
		children = append(children, body)
		end = bodySpan
	}
	id := p.tree.add(Node{
		Kind:     DeinitDecl,
		Span:     start.Cover(end),
		NameSpan: kw.Span,
		Name:     "deinit",
		Mods:     mods,
		Children: children,
	})
	return id, true
}

func (p *Parser) parseSubscriptDecl(start source.Span, attrs []NodeID, mods Modifiers) (NodeID, bool) {
	kw := p.advance() // subscript
	if p.at(token.Lt) {
		p.skipGenericParams()
	}
	params, end := p.parseParamClause()
	children := append(attrs, params...)
	if p.eat(token.Arrow) {
		if tsp := p.skipType(token.KwWhere, token.Semicolon); tsp != (source.Span{}) {
			end = tsp
		}
	}
	if p.at(token.KwWhere) {
		end = p.skipWhereClause()
	}
	if p.at(token.LBrace) {
		ab := p.parseAccessorBlock()
		children = append(children, ab)
		end = p.tree.Node(ab).Span
	}
	id := p.tree.add(Node{
		Kind:     SubscriptDecl,
		Span:     start.Cover(end),
		NameSpan: kw.Span,
		Name:     "subscript",
		Mods:     mods,
		Children: children,
	})
	return id, true
}

// parseImportDecl parses "import Foundation" and the scoped form
// "import class UIKit.UIView". The dotted path becomes the name.
func (p *Parser) parseImportDecl(start source.Span, attrs []NodeID, mods Modifiers) (NodeID, bool) {
	p.advance() // import
	switch p.peek().Kind {
	case token.KwClass, token.KwStruct, token.KwEnum, token.KwProtocol,
		token.KwFunc, token.KwVar, token.KwLet, token.KwTypealias:
		if p.peekN(1).Kind == token.Ident {
			p.advance()
		}
	}
	var name string
	var nameSpan source.Span
	if p.at(token.Ident) {
		tok := p.advance()
		name = tok.IdentText()
		nameSpan = tok.Span
		for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
			p.advance()
			t := p.advance()
			name += "." + t.IdentText()
			nameSpan = nameSpan.Cover(t.Span)
		}
	} else {
		p.err(diag.SynExpectIdentifier, "expected a module name after 'import'")
	}
	id := p.tree.add(Node{
		Kind:     ImportDecl,
		Span:     start.Cover(nameSpan),
		NameSpan: nameSpan,
		Name:     name,
		Mods:     mods,
		Children: attrs,
	})
	return id, true
}

func (p *Parser) parseTypealiasDecl(start source.Span, attrs []NodeID, mods Modifiers) (NodeID, bool) {
	p.advance() // typealias
	var name string
	var nameSpan source.Span
	end := p.lastSpan
	if p.at(token.Ident) {
		tok := p.advance()
		name, nameSpan = tok.IdentText(), tok.Span
		end = tok.Span
	} else {
		p.err(diag.SynExpectIdentifier, "expected a name after 'typealias'")
	}
	if p.at(token.Lt) {
		end = p.skipGenericParams()
	}
	if p.eat(token.Assign) {
		if tsp := p.skipType(token.Semicolon); tsp != (source.Span{}) {
			end = tsp
		} else {
			p.err(diag.SynExpectTypeName, "expected a type after '='")
		}
	} else {
		p.err(diag.SynUnexpectedToken, "expected '=' in typealias declaration")
	}
	id := p.tree.add(Node{
		Kind:     TypealiasDecl,
		Span:     start.Cover(end),
		NameSpan: nameSpan,
		Name:     name,
		Mods:     mods,
		Children: attrs,
	})
	return id, true
}

func (p *Parser) parseAssociatedtypeDecl(start source.Span, attrs []NodeID, mods Modifiers) (NodeID, bool) {
	p.advance() // associatedtype
	children := attrs
	var name string
	var nameSpan source.Span
	end := p.lastSpan
	if p.at(token.Ident) {
		tok := p.advance()
		name, nameSpan = tok.IdentText(), tok.Span
		end = tok.Span
	} else {
		p.err(diag.SynExpectIdentifier, "expected a name after 'associatedtype'")
	}
	if inh := p.parseInheritanceClause(); inh.IsValid() {
		children = append(children, inh)
		end = p.tree.Node(inh).Span
	}
	if p.eat(token.Assign) {
		if tsp := p.skipType(token.Semicolon, token.KwWhere); tsp != (source.Span{}) {
			end = tsp
		}
	}
	if p.at(token.KwWhere) {
		end = p.skipWhereClause()
	}
	id := p.tree.add(Node{
		Kind:     AssociatedtypeDecl,
		Span:     start.Cover(end),
		NameSpan: nameSpan,
		Name:     name,
		Mods:     mods,
		Children: children,
	})
	return id, true
}

// parseOperatorDecl parses "infix operator <*>: AdditionPrecedence". The
// fixity word was already consumed as a modifier.
func (p *Parser) parseOperatorDecl(start source.Span, mods Modifiers) (NodeID, bool) {
	p.advance() // operator
	var name string
	var nameSpan source.Span
	end := p.lastSpan
	if isOperatorName(p.peek().Kind) {
		tok := p.advance()
		name, nameSpan = tok.Text, tok.Span
		end = tok.Span
	} else {
		p.err(diag.SynUnexpectedToken, "expected an operator after 'operator'")
	}
	if p.eat(token.Colon) {
		if p.at(token.Ident) {
			end = p.advance().Span // precedence group name
		} else {
			p.err(diag.SynExpectIdentifier, "expected a precedence group name after ':'")
		}
	}
	id := p.tree.add(Node{
		Kind:     OperatorDecl,
		Span:     start.Cover(end),
		NameSpan: nameSpan,
		Name:     name,
		Mods:     mods,
	})
	return id, true
}

func (p *Parser) parsePrecedenceGroupDecl(start source.Span) (NodeID, bool) {
	p.advance() // precedencegroup
	var name string
	var nameSpan source.Span
	end := p.lastSpan
	if p.at(token.Ident) {
		tok := p.advance()
		name, nameSpan = tok.IdentText(), tok.Span
		end = tok.Span
	} else {
		p.err(diag.SynExpectIdentifier, "expected a name after 'precedencegroup'")
	}
	if p.at(token.LBrace) {
		end = p.skipBalanced()
	} else {
		p.err(diag.SynExpectLBrace, "expected '{' to begin the precedence group body")
	}
	id := p.tree.add(Node{
		Kind:     PrecedenceGroupDecl,
		Span:     start.Cover(end),
		NameSpan: nameSpan,
		Name:     name,
	})
	return id, true
}

// skipPoundDirective consumes a compiler directive line such as #if DEBUG,
// #else or #endif. The code between conditional branches still parses, so
// both sides of an #if get linted.
func (p *Parser) skipPoundDirective() {
	p.advance() // #
	for !p.at(token.EOF) && !p.peek().StartsLine() {
		p.advance()
	}
}
