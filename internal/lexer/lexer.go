package lexer

import (
	"swiftstyle/internal/source"
	"swiftstyle/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // accumulated leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
		hold:   nil,
	}
}

// Next returns the next significant token with its Leading trivia attached.
// After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
			Text: "",
		}
		// EOF keeps its leading trivia so file-level directives before a
		// trailing comment block are still visible to the walker.
		tok.Leading = lx.hold
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '_':
		// A lone "_" is the wildcard token; "_foo" is an identifier.
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '_' && isIdentContinueByte(b1) {
			tok = lx.scanIdentOrKeyword()
		} else {
			tok = lx.scanOperatorOrPunct()
		}

	case ch == '`':
		tok = lx.scanBacktickIdent()

	case ch == '$':
		tok = lx.scanDollarIdent()

	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		// Possible Unicode identifier; scanIdentOrKeyword sorts it out.
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString(0)

	case ch == '#':
		tok = lx.scanPound()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil

	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// scanPound distinguishes raw string literals (#"..."#, ##"..."##) from
// compiler directives (#if, #available), which lex as Pound + following tokens.
func (lx *Lexer) scanPound() token.Token {
	start := lx.cursor.Mark()

	pounds := 0
	for lx.cursor.Peek() == '#' {
		lx.cursor.Bump()
		pounds++
	}
	if lx.cursor.Peek() == '"' {
		lx.cursor.Reset(start)
		return lx.scanString(pounds)
	}

	// Not a raw string: emit one Pound per '#' so "#if" becomes Pound + KwIf.
	lx.cursor.Reset(start)
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Pound, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
