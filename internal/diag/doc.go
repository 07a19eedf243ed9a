// Package diag defines the diagnostic model shared by the lexer, parser, and
// style rules.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by lexing, parsing, and rule checks.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model fix suggestions as structured edits that the fix engine and the CLI
//     can apply.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt,
// whereas application of fixes lives in internal/fix and the engine layer.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//     Style rule codes live in the 3000 block and render as the rule name
//     ("force-unwrap"), which is the identity users see in output, config, and
//     suppression directives.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// Notes should be used sparingly: each note must add new context (e.g. "class
// declared here") rather than repeating the diagnostic message.
//
// # Fix suggestions
//
// Fix represents a possible automated correction. Each fix carries a Title for
// listings, an Applicability confidence level (AlwaysSafe, SafeWithHeuristics,
// ManualReview), and concrete TextEdits. A TextEdit's OldText acts as an
// optional guard that the fix engine uses to validate the context before
// applying edits.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. Rule checks
// construct a ReportBuilder via NewReportBuilder (or the helpers ReportError /
// ReportWarning / ReportInfo) and chain WithNote / WithFix before calling Emit.
// When no extra metadata is needed, phases may call Reporter.Report directly.
// diag.BagReporter aggregates diagnostics into a Bag, which supports sorting,
// deduplication, and merging.
//
// # Consumers
//
//   - internal/diagfmt: renders Diagnostics into pretty/short/json/sarif forms.
//   - internal/fix: applies Fix edits to source files.
//   - internal/engine: collects per-file bags, merges them, derives exit codes,
//     and serialises diagnostics for the result cache.
package diag
