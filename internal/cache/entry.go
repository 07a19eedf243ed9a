package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
)

// Schema version of the on-disk payload. It feeds the key digest, so bumping
// it misses every old entry; stale files age out instead of being migrated.
const schemaVersion uint16 = 1

// Key addresses one (file content, ruleset) pair in the store.
type Key [32]byte

func (k Key) Hex() string {
	return hex.EncodeToString(k[:])
}

// KeyFor derives the cache key for one file under one ruleset. The content
// hash, the registry fingerprint and the schema version all feed the digest:
// editing the file, toggling a rule or changing a severity each miss cleanly.
func KeyFor(contentHash [32]byte, fingerprint string) Key {
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], schemaVersion)
	h.Write(schema[:])
	h.Write([]byte(fingerprint))
	h.Write(contentHash[:])
	var key Key
	h.Sum(key[:0])
	return key
}

// Entry is the cached outcome of linting one file. Spans are stored as plain
// byte offsets; FileIDs are per-run and never persisted.
type Entry struct {
	Schema      uint16
	Fingerprint string
	ParseFailed bool
	Diagnostics []Record
}

// Record is one diagnostic with its span flattened to offsets. Enum-typed
// fields are widened to plain integers so the payload never depends on
// in-memory representations.
type Record struct {
	Code     uint16
	Severity uint8
	Start    uint32
	End      uint32
	Message  string
	Notes    []NoteRecord
	Fixes    []FixRecord
}

type NoteRecord struct {
	Start uint32
	End   uint32
	Msg   string
}

type FixRecord struct {
	Title         string
	Applicability uint8
	IsPreferred   bool
	Edits         []EditRecord
}

type EditRecord struct {
	Start   uint32
	End     uint32
	NewText string
	OldText string
}

// Pack flattens diagnostics into a storable entry. All spans must belong to
// the file being cached; the tool runs single-file analysis so they do.
func Pack(diags []diag.Diagnostic, parseFailed bool, fingerprint string) *Entry {
	entry := &Entry{
		Schema:      schemaVersion,
		Fingerprint: fingerprint,
		ParseFailed: parseFailed,
		Diagnostics: make([]Record, len(diags)),
	}
	for i, d := range diags {
		rec := Record{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		if len(d.Notes) > 0 {
			rec.Notes = make([]NoteRecord, len(d.Notes))
			for j, n := range d.Notes {
				rec.Notes[j] = NoteRecord{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg}
			}
		}
		if len(d.Fixes) > 0 {
			rec.Fixes = make([]FixRecord, len(d.Fixes))
			for j, fx := range d.Fixes {
				fr := FixRecord{
					Title:         fx.Title,
					Applicability: uint8(fx.Applicability),
					IsPreferred:   fx.IsPreferred,
					Edits:         make([]EditRecord, len(fx.Edits)),
				}
				for k, e := range fx.Edits {
					fr.Edits[k] = EditRecord{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText, OldText: e.OldText}
				}
				rec.Fixes[j] = fr
			}
		}
		entry.Diagnostics[i] = rec
	}
	return entry
}

// Hydrate rebuilds diagnostics from the entry, remapping every span onto the
// FileID the file received in the current run.
func (e *Entry) Hydrate(file source.FileID) []diag.Diagnostic {
	if len(e.Diagnostics) == 0 {
		return nil
	}
	at := func(start, end uint32) source.Span {
		return source.Span{File: file, Start: start, End: end}
	}
	diags := make([]diag.Diagnostic, len(e.Diagnostics))
	for i, rec := range e.Diagnostics {
		d := diag.Diagnostic{
			Code:     diag.Code(rec.Code),
			Severity: diag.Severity(rec.Severity),
			Message:  rec.Message,
			Primary:  at(rec.Start, rec.End),
		}
		if len(rec.Notes) > 0 {
			d.Notes = make([]diag.Note, len(rec.Notes))
			for j, n := range rec.Notes {
				d.Notes[j] = diag.Note{Span: at(n.Start, n.End), Msg: n.Msg}
			}
		}
		if len(rec.Fixes) > 0 {
			d.Fixes = make([]diag.Fix, len(rec.Fixes))
			for j, fr := range rec.Fixes {
				fx := diag.Fix{
					Title:         fr.Title,
					Applicability: diag.Applicability(fr.Applicability),
					IsPreferred:   fr.IsPreferred,
					Edits:         make([]diag.TextEdit, len(fr.Edits)),
				}
				for k, e := range fr.Edits {
					fx.Edits[k] = diag.TextEdit{Span: at(e.Start, e.End), NewText: e.NewText, OldText: e.OldText}
				}
				d.Fixes[j] = fx
			}
		}
		diags[i] = d
	}
	return diags
}
