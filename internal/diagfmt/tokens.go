package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"swiftstyle/internal/source"
	"swiftstyle/internal/token"
)

// TokenOutput is one token of the `dump --tokens` JSON form.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// Tokens renders the token stream one line per token, with positions and
// leading trivia. Rule authors use this to see what a spacing check sees.
func Tokens(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%4d: %-16s", i+1, tok.Kind); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)

		if names := triviaNames(tok.Leading); len(names) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(names, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// TokensJSON renders the token stream as a JSON array.
func TokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: triviaNames(tok.Leading),
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func triviaNames(trivia []token.Trivia) []string {
	if len(trivia) == 0 {
		return nil
	}
	names := make([]string, len(trivia))
	for i, tv := range trivia {
		names[i] = tv.Kind.String()
	}
	return names
}
