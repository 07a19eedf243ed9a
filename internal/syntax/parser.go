package syntax

import (
	"slices"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/lexer"
	"swiftstyle/internal/source"
	"swiftstyle/internal/token"
)

type Options struct {
	// MaxErrors aborts the parse once reached; 0 means the default cap.
	MaxErrors uint
	Reporter  diag.Reporter
}

// DefaultMaxErrors caps recoverable syntax errors per file. Hitting the cap
// turns the parse into a failure: the input is too broken to lint.
const DefaultMaxErrors = 25

// Result is the outcome of parsing one file. A tolerant parse can carry
// recoverable SYN diagnostics and still succeed; Failed is set only when the
// error cap was hit and the tree cannot be trusted.
type Result struct {
	Tree       *Tree
	ErrorCount uint
	Failed     bool
}

// Parser holds the state for parsing a single file.
type Parser struct {
	fs       *source.FileSet
	lx       *lexer.Lexer
	tree     *Tree
	opts     Options
	queue    []token.Token // lookahead buffer filled from the lexer
	lastSpan source.Span
	pos      int // tokens consumed so far, used for progress checks
	errors   uint
	failed   bool
}

// ParseFile runs the tolerant parser over the file behind lx.
func ParseFile(fs *source.FileSet, file *source.File, opts Options) Result {
	if opts.MaxErrors == 0 {
		opts.MaxErrors = DefaultMaxErrors
	}
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})

	p := Parser{
		fs:   fs,
		lx:   lx,
		tree: NewTree(file.ID, uint(len(file.Content)/16+8)),
		opts: opts,
	}

	p.parseSourceFile()

	return Result{
		Tree:       p.tree,
		ErrorCount: p.errors,
		Failed:     p.failed,
	}
}

// parseSourceFile is the top-level loop. Declarations dominate, but Swift
// permits statements at file scope in script files, so anything that does not
// look like a declaration falls through to the statement parser.
func (p *Parser) parseSourceFile() {
	start := p.peek().Span
	var children []NodeID

	for !p.at(token.EOF) && !p.failed {
		if p.eat(token.Semicolon) {
			continue
		}
		before := p.pos
		id, ok := p.parseStmtOrDecl(topLevelContext)
		if ok {
			if id.IsValid() {
				children = append(children, id)
			}
			continue
		}
		// Recover: make sure the loop advances, then skip to the next
		// declaration starter.
		if p.pos == before {
			p.advance()
		}
		p.resyncUntil(declStarters...)
		p.eat(token.Semicolon)
	}

	// Consume EOF so its leading trivia (trailing comments, ignore-file
	// directives) lands in the tree.
	eof := p.advance()

	p.tree.Root = p.tree.add(Node{
		Kind:     File,
		Span:     start.Cover(eof.Span),
		Children: children,
	})
}

// ===== Token access =====

// peekN looks n tokens ahead without consuming. Past EOF the lexer keeps
// returning EOF, so any depth is safe.
func (p *Parser) peekN(n int) token.Token {
	for len(p.queue) <= n {
		p.queue = append(p.queue, p.lx.Next())
	}
	return p.queue[n]
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atContextual reports whether the next token is the identifier word.
func (p *Parser) atContextual(word string) bool {
	tok := p.peek()
	return tok.Kind == token.Ident && tok.Text == word
}

// advance consumes the next token, recording it in the tree's token stream
// and harvesting its leading trivia into the comment and directive lists.
func (p *Parser) advance() token.Token {
	tok := p.peekN(0)
	p.queue = p.queue[1:]
	p.pos++
	p.tree.Tokens = append(p.tree.Tokens, tok)
	p.harvest(tok)
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat consumes the next token when it matches.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) harvest(tok token.Token) {
	for _, tv := range tok.Leading {
		switch tv.Kind {
		case token.TriviaLineComment, token.TriviaBlockComment, token.TriviaDocLine, token.TriviaDocBlock:
			p.tree.Comments = append(p.tree.Comments, Comment{Span: tv.Span, Text: tv.Text})
		case token.TriviaDirective:
			p.tree.Directives = append(p.tree.Directives, Directive{
				Span: tv.Span,
				Name: tv.Directive.Name,
				Args: tv.Directive.Args,
			})
		}
	}
}

// ===== Diagnostics =====

// diagSpan picks the best span to report at: at EOF the caret lands right
// after the last consumed token instead of on the empty EOF span.
func (p *Parser) diagSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		p.errors++
		if p.errors >= p.opts.MaxErrors && !p.failed {
			p.failed = true
			if p.opts.Reporter != nil {
				p.opts.Reporter.Report(diag.SynTooManyErrors, diag.SevError, sp,
					"too many syntax errors, giving up on this file", nil, nil)
			}
			return
		}
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	}
}

// expect consumes the wanted token or reports, leaving the stream untouched.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.errAt(code, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// ===== Recovery =====

// resyncUntil skips tokens until one of the stop kinds or EOF, keeping
// brace/paren/bracket nesting balanced so a stop token inside a nested body is
// not mistaken for a boundary.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	depth := 0
	for !p.at(token.EOF) {
		k := p.peek().Kind
		if depth == 0 && slices.Contains(stop, k) {
			return
		}
		switch k {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

var declStarters = []token.Kind{
	token.Semicolon,
	token.KwImport, token.KwClass, token.KwStruct, token.KwEnum, token.KwProtocol,
	token.KwExtension, token.KwFunc, token.KwInit, token.KwDeinit, token.KwSubscript,
	token.KwVar, token.KwLet, token.KwTypealias, token.KwAssociatedtype,
	token.KwOperator, token.KwPrecedencegroup, token.KwCase,
	token.KwPublic, token.KwPrivate, token.KwFileprivate, token.KwInternal, token.KwOpen,
	token.KwStatic, token.At,
}
