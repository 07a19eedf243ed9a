package diag

import (
	"swiftstyle/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Applicability states how much confidence a fix deserves.
type Applicability uint8

const (
	// AlwaysSafe fixes preserve program behavior unconditionally.
	AlwaysSafe Applicability = iota
	// SafeWithHeuristics fixes rely on single-file analysis and may be wrong
	// across file boundaries.
	SafeWithHeuristics
	// ManualReview fixes change semantics and must be confirmed by a human.
	ManualReview
)

func (a Applicability) String() string {
	switch a {
	case AlwaysSafe:
		return "always-safe"
	case SafeWithHeuristics:
		return "safe-with-heuristics"
	case ManualReview:
		return "manual-review"
	}
	return "unknown"
}

// TextEdit replaces the span with NewText. OldText, when set, is a guard: the
// fix engine refuses the edit if the file no longer contains OldText there.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	Title         string
	Applicability Applicability
	// IsPreferred marks the fix "--once" should pick when several apply.
	IsPreferred bool
	Edits       []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
