// Package token defines lexical token kinds and trivia for Swift sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Attributes are lexed as '@' (Kind: At) + Ident; no per-attribute token kinds.
//   - Contextual keywords (final, override, lazy, weak, actor, some, any in
//     lowercase type position) are identifiers; declaration parsing recognizes
//     them by text and position.
//   - Tool directives ("// swiftstyle:ignore ...") are represented as leading
//     Trivia (TriviaDirective) and never appear in the main token stream.
package token
