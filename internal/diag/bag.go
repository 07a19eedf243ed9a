package diag

import (
	"sort"

	"swiftstyle/internal/source"
)

type Bag struct {
	items []Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   max,
	}
}

// Add appends a diagnostic unless the bag is full. Returns false when the
// limit is reached and the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors reports whether at least one diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether at least one diagnostic has Severity >= Warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// HasInternal reports whether at least one diagnostic is an internal tool
// failure (a crashed rule, a corrupt cache entry).
func (b *Bag) HasInternal() bool {
	for i := range b.items {
		if b.items[i].Code.IsInternal() {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// CountBySeverity returns how many diagnostics sit at each severity.
func (b *Bag) CountBySeverity() (errors, warnings, infos int) {
	for i := range b.items {
		switch {
		case b.items[i].Severity >= SevError:
			errors++
		case b.items[i].Severity == SevWarning:
			warnings++
		default:
			infos++
		}
	}
	return errors, warnings, infos
}

// Items returns a read-only view of the diagnostics. The slice aliases the
// bag's internal storage; callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends diagnostics from another bag, growing max when needed.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	if newTotal > b.max {
		b.max = newTotal
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by file, start, end, severity (desc), code, message
// for a stable and deterministic output order. FileIDs are assigned in sorted
// path order by the engine, so file order equals path order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})
}

type bagDedupKey struct {
	code Code
	span source.Span
}

// Dedup removes diagnostics that share a code and primary span, keeping the
// first occurrence.
func (b *Bag) Dedup() {
	seen := make(map[bagDedupKey]struct{}, len(b.items))
	newitems := b.items[:0]
	for _, d := range b.items {
		key := bagDedupKey{code: d.Code, span: d.Primary}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		newitems = append(newitems, d)
	}
	b.items = newitems
}
