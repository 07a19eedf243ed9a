package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	// "a\nb\n" has newlines at offsets 1 and 3.
	id := fs.AddVirtual("a.swift", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}

	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("a.swift", []byte("let a = 1\n"), 0)
	id2 := fs.Add("b.swift", []byte("let b = 2\n"), 0)

	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected Len() = 2, got %d", fs.Len())
	}

	if got := fs.Get(id1).Path; got != "a.swift" {
		t.Errorf("Expected path 'a.swift', got %q", got)
	}
	if got := fs.Get(id2).Path; got != "b.swift" {
		t.Errorf("Expected path 'b.swift', got %q", got)
	}
}

func TestAddComputesDistinctHashes(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("a.swift", []byte("let a = 1\n"), 0)
	id2 := fs.Add("b.swift", []byte("let b = 2\n"), 0)
	id3 := fs.Add("c.swift", []byte("let a = 1\n"), 0)

	h1 := fs.Get(id1).Hash
	h2 := fs.Get(id2).Hash
	h3 := fs.Get(id3).Hash

	if h1 == h2 {
		t.Error("Expected different content to hash differently")
	}
	if h1 != h3 {
		t.Error("Expected identical content to hash identically")
	}
}

func TestCRLFNormalization(t *testing.T) {
	original := []byte("a\r\nb\r\n")
	normalized, changed := normalizeCRLF(original)

	if !changed {
		t.Error("Expected CRLF normalization to be detected")
	}

	expected := []byte("a\nb\n")
	if string(normalized) != string(expected) {
		t.Errorf("Expected normalized content %q, got %q", string(expected), string(normalized))
	}

	// Each \r\n shrinks to one byte.
	if len(normalized) != len(original)-2 {
		t.Errorf("Expected length %d, got %d", len(original)-2, len(normalized))
	}
}

func TestBOMRemoval(t *testing.T) {
	bomContent := []byte{0xEF, 0xBB, 0xBF, 'x', '\n'}
	withoutBOM, hadBOM := removeBOM(bomContent)

	if !hadBOM {
		t.Error("Expected BOM to be detected")
	}

	expected := []byte{'x', '\n'}
	if string(withoutBOM) != string(expected) {
		t.Errorf("Expected content without BOM %q, got %q", string(expected), string(withoutBOM))
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("test.swift", []byte("let a = 1\nvar b = 2\n"))

	tests := []struct {
		name      string
		span      Span
		wantStart LineCol
		wantEnd   LineCol
	}{
		{
			name:      "first token on first line",
			span:      Span{File: id, Start: 0, End: 3},
			wantStart: LineCol{Line: 1, Col: 1},
			wantEnd:   LineCol{Line: 1, Col: 4},
		},
		{
			name:      "token on second line",
			span:      Span{File: id, Start: 10, End: 13},
			wantStart: LineCol{Line: 2, Col: 1},
			wantEnd:   LineCol{Line: 2, Col: 4},
		},
		{
			name:      "span crossing a newline",
			span:      Span{File: id, Start: 8, End: 13},
			wantStart: LineCol{Line: 1, Col: 9},
			wantEnd:   LineCol{Line: 2, Col: 4},
		},
		{
			name:      "end of file",
			span:      Span{File: id, Start: 20, End: 20},
			wantStart: LineCol{Line: 3, Col: 1},
			wantEnd:   LineCol{Line: 3, Col: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := fs.Resolve(tt.span)
			if start != tt.wantStart {
				t.Errorf("Resolve() start = %+v, want %+v", start, tt.wantStart)
			}
			if end != tt.wantEnd {
				t.Errorf("Resolve() end = %+v, want %+v", end, tt.wantEnd)
			}
		})
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()

	// α is two bytes; columns count bytes, not runes.
	content := []byte("α\n")
	id := fs.AddVirtual("test.swift", content)

	span := Span{File: id, Start: 0, End: 2}
	start, end := fs.Resolve(span)

	expectedStart := LineCol{Line: 1, Col: 1}
	expectedEnd := LineCol{Line: 1, Col: 3}

	if start != expectedStart {
		t.Errorf("Expected start %+v, got %+v", expectedStart, start)
	}
	if end != expectedEnd {
		t.Errorf("Expected end %+v, got %+v", expectedEnd, end)
	}
}

func TestText(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("test.swift", []byte("let name = value\n"))

	tests := []struct {
		name     string
		span     Span
		expected string
	}{
		{
			name:     "keyword",
			span:     Span{File: id, Start: 0, End: 3},
			expected: "let",
		},
		{
			name:     "identifier",
			span:     Span{File: id, Start: 4, End: 8},
			expected: "name",
		},
		{
			name:     "zero-length span",
			span:     Span{File: id, Start: 5, End: 5},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fs.Text(tt.span); got != tt.expected {
				t.Errorf("Text() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("test.swift", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	tests := []struct {
		name     string
		lineNum  uint32
		expected string
	}{
		{name: "first line", lineNum: 1, expected: "first"},
		{name: "middle line", lineNum: 2, expected: "second"},
		{name: "last line without newline", lineNum: 3, expected: "third"},
		{name: "line zero", lineNum: 0, expected: ""},
		{name: "past the end", lineNum: 4, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := file.GetLine(tt.lineNum); got != tt.expected {
				t.Errorf("GetLine(%d) = %q, want %q", tt.lineNum, got, tt.expected)
			}
		})
	}
}

func TestEdgeCases(t *testing.T) {
	fs := NewFileSet()

	// Empty file
	id1 := fs.AddVirtual("empty.swift", []byte{})
	file1 := fs.Get(id1)
	if len(file1.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for empty file, got length %d", len(file1.LineIdx))
	}

	// File without newlines
	id2 := fs.AddVirtual("no_newlines.swift", []byte("hello"))
	file2 := fs.Get(id2)
	if len(file2.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for file without newlines, got length %d", len(file2.LineIdx))
	}

	// File that is a single newline
	id3 := fs.AddVirtual("only_newline.swift", []byte("\n"))
	file3 := fs.Get(id3)
	if len(file3.LineIdx) != 1 || file3.LineIdx[0] != 0 {
		t.Errorf("Expected LineIdx [0] for file with only newline, got %v", file3.LineIdx)
	}
}

func TestLoad(t *testing.T) {
	fs := NewFileSet()

	path := filepath.Join(t.TempDir(), "test.swift")
	if err := os.WriteFile(path, []byte("a\nb\n"), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("Expected file content 'a\\nb\\n', got %q", string(file.Content))
	}
	if file.LineIdx[0] != 1 || file.LineIdx[1] != 3 {
		t.Errorf("Expected LineIdx [1 3], got %v", file.LineIdx)
	}
}

func TestLoadBOM(t *testing.T) {
	fs := NewFileSet()

	path := filepath.Join(t.TempDir(), "test.swift")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\nb\n"), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("Expected file content 'a\\nb\\n', got %q", string(file.Content))
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("Expected FileHadBOM flag to be set")
	}
}

func TestLoadCRLF(t *testing.T) {
	fs := NewFileSet()

	path := filepath.Join(t.TempDir(), "test.swift")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("Expected file content 'a\\nb\\n', got %q", string(file.Content))
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("Expected FileNormalizedCRLF flag to be set")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()

	_, err := fs.Load(filepath.Join(t.TempDir(), "does_not_exist.swift"))
	if err == nil {
		t.Fatal("Expected Load to fail for a missing file")
	}
	if fs.Len() != 0 {
		t.Errorf("Expected no files after failed Load, got %d", fs.Len())
	}
}

func TestFormatPath(t *testing.T) {
	file := &File{Path: "src/models/user.swift"}

	if got := file.FormatPath("basename", ""); got != "user.swift" {
		t.Errorf("basename: got %q, want %q", got, "user.swift")
	}
	if got := file.FormatPath("auto", ""); got != "src/models/user.swift" {
		t.Errorf("auto with short relative path: got %q, want %q", got, "src/models/user.swift")
	}
	if got := file.FormatPath("", ""); got != "src/models/user.swift" {
		t.Errorf("unknown mode: got %q, want %q", got, "src/models/user.swift")
	}
}

func TestFormatPathRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "nested", "file.swift")

	file := &File{Path: target}
	got := file.FormatPath("relative", tmp)
	want := filepath.ToSlash(filepath.Join("nested", "file.swift"))
	if got != want {
		t.Errorf("relative: got %q, want %q", got, want)
	}
}
