package source

import (
	"testing"
)

func TestBuildLineIndex(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []uint32
	}{
		{name: "empty", content: "", expected: []uint32{}},
		{name: "no newlines", content: "hello", expected: []uint32{}},
		{name: "trailing newline", content: "a\nb\n", expected: []uint32{1, 3}},
		{name: "no trailing newline", content: "a\nb", expected: []uint32{1}},
		{name: "consecutive newlines", content: "\n\n\n", expected: []uint32{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildLineIndex([]byte(tt.content))
			if len(got) != len(tt.expected) {
				t.Fatalf("buildLineIndex() length = %d, want %d", len(got), len(tt.expected))
			}
			for i, val := range tt.expected {
				if got[i] != val {
					t.Errorf("buildLineIndex()[%d] = %d, want %d", i, got[i], val)
				}
			}
		})
	}
}

func TestToLineCol(t *testing.T) {
	// "a\nb\n" → newlines at 1 and 3.
	lineIdx := []uint32{1, 3}

	tests := []struct {
		name     string
		off      uint32
		expected LineCol
	}{
		{name: "start of first line", off: 0, expected: LineCol{Line: 1, Col: 1}},
		{name: "newline belongs to its line", off: 1, expected: LineCol{Line: 1, Col: 2}},
		{name: "start of second line", off: 2, expected: LineCol{Line: 2, Col: 1}},
		{name: "second newline", off: 3, expected: LineCol{Line: 2, Col: 2}},
		{name: "offset past last newline", off: 4, expected: LineCol{Line: 3, Col: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toLineCol(lineIdx, tt.off)
			if got != tt.expected {
				t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.expected)
			}
		})
	}
}

func TestToLineColSingleLine(t *testing.T) {
	got := toLineCol(nil, 7)
	want := LineCol{Line: 1, Col: 8}
	if got != want {
		t.Errorf("toLineCol(7) = %+v, want %+v", got, want)
	}
}

func TestToLineColManyLines(t *testing.T) {
	// Ten lines of one character each: "0\n1\n2\n...".
	lineIdx := make([]uint32, 10)
	for i := range lineIdx {
		lineIdx[i] = uint32(i*2 + 1)
	}

	for line := uint32(0); line < 10; line++ {
		off := line * 2
		got := toLineCol(lineIdx, off)
		want := LineCol{Line: line + 1, Col: 1}
		if got != want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", off, got, want)
		}
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	content := []byte("a\rb\r\nc")
	got, changed := normalizeCRLF(content)

	if !changed {
		t.Error("Expected change flag for content with CRLF")
	}
	if string(got) != "a\rb\nc" {
		t.Errorf("Expected lone \\r preserved, got %q", string(got))
	}
}

func TestNormalizeCRLFNoCarriageReturns(t *testing.T) {
	content := []byte("a\nb\n")
	got, changed := normalizeCRLF(content)

	if changed {
		t.Error("Expected no change for LF-only content")
	}
	if string(got) != string(content) {
		t.Errorf("Expected content unchanged, got %q", string(got))
	}
}

func TestRemoveBOMShortContent(t *testing.T) {
	content := []byte{0xEF, 0xBB}
	got, hadBOM := removeBOM(content)

	if hadBOM {
		t.Error("Expected no BOM for two-byte content")
	}
	if len(got) != 2 {
		t.Errorf("Expected content unchanged, got %d bytes", len(got))
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "clean relative path", path: "src/main.swift", expected: "src/main.swift"},
		{name: "dot segments removed", path: "src/./sub/../main.swift", expected: "src/main.swift"},
		{name: "trailing slash removed", path: "src/", expected: "src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizePath(tt.path); got != tt.expected {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
