// Package fix applies the text edits attached to diagnostics back to the
// files they came from. Edits are staged per fix: a fix either lands whole or
// is skipped with a reason, never halfway.
package fix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
)

// ErrNoFixes is returned when nothing was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode selects which fixes Apply picks from the candidates.
type ApplyMode uint8

const (
	// ApplyModeOnce applies a single fix: the first diagnostic in source
	// order, its preferred fix if one is marked.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every always-safe fix.
	ApplyModeAll
	// ApplyModeID applies the fixes of one rule, named by Rule.
	ApplyModeID
)

// ApplyOptions configures fix selection.
type ApplyOptions struct {
	Mode ApplyMode
	// Rule is the rule id targeted by ApplyModeID.
	Rule string
	// DryRun stages and reports everything but writes nothing.
	DryRun bool
}

// AppliedFix records one landed fix.
type AppliedFix struct {
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.Applicability
	Path          string
	EditCount     int
}

// SkippedFix records a fix that was passed over, with the reason.
type SkippedFix struct {
	Title  string
	Reason string
}

// FileChange summarises the edits landing in one file.
type FileChange struct {
	Path      string
	EditCount int
}

// ApplyResult aggregates what Apply did, or would do under DryRun.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
	DryRun      bool
}

type candidate struct {
	diag    diag.Diagnostic
	fix     diag.Fix
	diagIdx int
	order   int
}

// Apply gathers the fixes carried by diagnostics, selects per opts, and
// applies the survivors to the files in fs.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
		DryRun:      opts.DryRun,
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, gatherSkips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, gatherSkips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, applySkips, changes, err := applyCandidates(fs, selected, opts.DryRun)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, applySkips...)
	result.FileChanges = append(result.FileChanges, changes...)

	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)

	order := 0
	for diagIdx, d := range diagnostics {
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, diagIdx: diagIdx, order: order})
			order++
		}
	}
	return cands, skips
}

// sortCandidates orders candidates by file, span, insertion order, code,
// preference, and title, so selection and application are deterministic for a
// given diagnostic list.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		if candidates[i].fix.IsPreferred != candidates[j].fix.IsPreferred {
			return candidates[i].fix.IsPreferred
		}
		return candidates[i].fix.Title < candidates[j].fix.Title
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeAll:
		selected := make([]candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.AlwaysSafe {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				Title:  cand.fix.Title,
				Reason: fmt.Sprintf("applicability is %s", cand.fix.Applicability),
			})
		}
		return selected, skipped

	case ApplyModeID:
		selected := make([]candidate, 0)
		skipped := make([]SkippedFix, 0)
		found := false
		for _, cand := range candidates {
			if cand.diag.Code.ID() != opts.Rule {
				continue
			}
			found = true
			if cand.fix.Applicability == diag.ManualReview {
				skipped = append(skipped, SkippedFix{
					Title:  cand.fix.Title,
					Reason: "needs manual review; apply it with --once",
				})
				continue
			}
			selected = append(selected, cand)
		}
		if !found {
			skipped = append(skipped, SkippedFix{
				Title:  opts.Rule,
				Reason: "no fixable findings for this rule",
			})
		}
		return selected, skipped

	case ApplyModeOnce:
		// All fixes of one diagnostic sit adjacent after sorting; pick the
		// preferred one of the first diagnostic, else its first fix.
		first := candidates[0]
		pick := first
		for _, cand := range candidates[1:] {
			if cand.diagIdx != first.diagIdx {
				break
			}
			if cand.fix.IsPreferred && !pick.fix.IsPreferred {
				pick = cand
			}
		}
		return []candidate{pick}, nil

	default:
		return nil, nil
	}
}

func applyCandidates(fs *source.FileSet, selected []candidate, dryRun bool) ([]AppliedFix, []SkippedFix, []FileChange, error) {
	buffers := make(map[source.FileID][]byte)
	appliedEdits := make(map[source.FileID][]diag.TextEdit)
	fileEditCount := make(map[source.FileID]int)

	applied := make([]AppliedFix, 0, len(selected))
	skipped := make([]SkippedFix, 0)

	baseDir := fs.BaseDir()

	for _, cand := range selected {
		buckets := groupEditsByFile(cand.fix.Edits)
		stagedBuffers := make(map[source.FileID][]byte)
		stagedApplied := make(map[source.FileID][]diag.TextEdit)
		stagedCounts := make(map[source.FileID]int)
		totalEdits := 0
		var skipReason string

		for fileID, edits := range buckets {
			file := fs.Get(fileID)
			if file.Flags&source.FileVirtual != 0 {
				skipReason = "target file is virtual"
				break
			}
			if conflictsWithExisting(appliedEdits[fileID], edits) {
				skipReason = fmt.Sprintf("conflicts with an already applied fix in %s", file.FormatPath("auto", baseDir))
				break
			}

			working := buffers[fileID]
			if working == nil {
				working = append([]byte(nil), file.Content...)
			} else {
				working = append([]byte(nil), working...)
			}

			// Back to front, so edits within the fix never shift each other.
			// Offsets are remapped only against edits landed by earlier
			// fixes; the base stays frozen for the whole fix.
			sort.SliceStable(edits, func(i, j int) bool {
				if edits[i].Span.Start == edits[j].Span.Start {
					return edits[i].Span.End > edits[j].Span.End
				}
				return edits[i].Span.Start > edits[j].Span.Start
			})

			base := appliedEdits[fileID]
			for _, edit := range edits {
				start := int(edit.Span.Start) + offsetDelta(base, int(edit.Span.Start))
				end := int(edit.Span.End) + offsetDelta(base, int(edit.Span.End))
				if start < 0 || end < start || end > len(working) {
					skipReason = "edit span out of range"
					break
				}
				if edit.OldText != "" && string(working[start:end]) != edit.OldText {
					skipReason = "file changed since the diagnostic was produced"
					break
				}
				suffix := append([]byte(nil), working[end:]...)
				working = append(append(working[:start], []byte(edit.NewText)...), suffix...)
			}
			if skipReason != "" {
				break
			}

			landed := append([]diag.TextEdit(nil), base...)
			for _, edit := range edits {
				landed = insertEditSorted(landed, edit)
			}

			stagedBuffers[fileID] = working
			stagedApplied[fileID] = landed
			stagedCounts[fileID] = len(edits)
			totalEdits += len(edits)
		}

		if skipReason != "" {
			skipped = append(skipped, SkippedFix{Title: cand.fix.Title, Reason: skipReason})
			continue
		}

		for fileID, buf := range stagedBuffers {
			buffers[fileID] = buf
			appliedEdits[fileID] = stagedApplied[fileID]
			fileEditCount[fileID] += stagedCounts[fileID]
		}

		applied = append(applied, AppliedFix{
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			Path:          fs.Get(cand.diag.Primary.File).FormatPath("auto", baseDir),
			EditCount:     totalEdits,
		})
	}

	if len(applied) == 0 {
		return applied, skipped, nil, nil
	}

	fileChanges := make([]FileChange, 0, len(buffers))
	for fileID, buf := range buffers {
		file := fs.Get(fileID)
		if !dryRun {
			if err := writeFileAtomic(file.Path, buf); err != nil {
				return applied, skipped, fileChanges, fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		fileChanges = append(fileChanges, FileChange{
			Path:      file.FormatPath("relative", baseDir),
			EditCount: fileEditCount[fileID],
		})
	}
	sort.SliceStable(fileChanges, func(i, j int) bool {
		return fileChanges[i].Path < fileChanges[j].Path
	})

	return applied, skipped, fileChanges, nil
}

// writeFileAtomic replaces path via a temp file and rename, keeping the
// original mode. A crash mid-write leaves the original intact.
func writeFileAtomic(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".swiftstyle-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func conflictsWithExisting(existing, edits []diag.TextEdit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev, cand) {
				return true
			}
		}
	}
	return false
}

// spansConflict treats spans as half-open intervals. Two insertions at the
// same point do not conflict; an insertion inside a replaced span does.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func groupEditsByFile(edits []diag.TextEdit) map[source.FileID][]diag.TextEdit {
	buckets := make(map[source.FileID][]diag.TextEdit)
	for _, edit := range edits {
		buckets[edit.Span.File] = append(buckets[edit.Span.File], edit)
	}
	return buckets
}

// offsetDelta returns how far pos has shifted after the landed edits, which
// are kept sorted by start offset.
func offsetDelta(landed []diag.TextEdit, pos int) int {
	delta := 0
	for _, e := range landed {
		if int(e.Span.Start) > pos {
			break
		}
		if int(e.Span.End) <= pos {
			delta += len(e.NewText) - int(e.Span.End-e.Span.Start)
		}
	}
	return delta
}

func insertEditSorted(edits []diag.TextEdit, edit diag.TextEdit) []diag.TextEdit {
	idx := sort.Search(len(edits), func(i int) bool {
		if edits[i].Span.Start == edit.Span.Start {
			return edits[i].Span.End >= edit.Span.End
		}
		return edits[i].Span.Start > edit.Span.Start
	})
	edits = append(edits, diag.TextEdit{})
	copy(edits[idx+1:], edits[idx:])
	edits[idx] = edit
	return edits
}
