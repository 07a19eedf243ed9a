package lexer

import (
	"strings"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/token"
)

const directivePrefix = "swiftstyle:"

// collectLeadingTrivia gathers consecutive trivia before a significant token.
//   - ' ' and '\t' coalesce into one TriviaSpace
//   - consecutive '\n' coalesce into one TriviaNewline
//   - //... up to \n -> TriviaLineComment, or TriviaDirective for
//     "// swiftstyle:..." comments
//   - ///... up to \n -> TriviaDocLine
//   - /* ... */ -> TriviaBlockComment (nesting supported; unterminated is
//     reported and clipped at EOF), /** ... */ -> TriviaDocBlock
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		// spaces/tabs
		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		// newlines (coalesced)
		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaNewline,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		// comments/doc/directives
		if b == '/' {
			if lx.scanCommentIntoHold() {
				continue
			}
		}

		// no more trivia
		break
	}
}

// scanCommentIntoHold handles //..., ///..., /*...*/ and /**...*/.
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	b := lx.cursor.Peek()
	switch b {
	case '/': // "//" or "///"
		lx.cursor.Bump()
		kind := token.TriviaLineComment
		if lx.cursor.Peek() == '/' {
			lx.cursor.Bump()
			kind = token.TriviaDocLine
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.file.Content[sp.Start:sp.End])

		tv := token.Trivia{Kind: kind, Span: sp, Text: text}
		if kind == token.TriviaLineComment {
			if dir, ok := parseDirective(text); ok {
				tv.Kind = token.TriviaDirective
				tv.Directive = dir
			}
		}
		lx.hold = append(lx.hold, tv)
		return true

	case '*': // "/* ... */" with nesting, "/** ... */" is a doc block
		lx.cursor.Bump()
		kind := token.TriviaBlockComment
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 != '/' {
			kind = token.TriviaDocBlock
		}
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			if b0, b1, ok := lx.cursor.Peek2(); ok {
				if b0 == '/' && b1 == '*' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth++
					continue
				}
				if b0 == '*' && b1 == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth--
					continue
				}
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if depth > 0 {
			lx.errLex(diag.LexUnterminatedComment, sp, "unterminated block comment")
		}
		lx.hold = append(lx.hold, token.Trivia{
			Kind: kind,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
		return true
	default:
		// not a comment, rewind and let it scan as the '/' operator
		lx.cursor.Reset(start)
		return false
	}
}

// parseDirective extracts a tool directive from a line comment.
// Recognized forms:
//
//	// swiftstyle:ignore                  (every rule, current line scope)
//	// swiftstyle:ignore rule1 rule2      (listed rules only)
//	// swiftstyle:ignore-file             (whole file)
func parseDirective(comment string) (*token.Directive, bool) {
	body := strings.TrimPrefix(comment, "//")
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, directivePrefix) {
		return nil, false
	}
	body = body[len(directivePrefix):]

	fields := strings.Fields(body)
	if len(fields) == 0 {
		return nil, false
	}
	name := fields[0]
	if name != "ignore" && name != "ignore-file" {
		return nil, false
	}
	return &token.Directive{Name: name, Args: fields[1:]}, true
}
