package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgCyan)
	pathColor    = color.New(color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
	ruleColor    = color.New(color.FgHiBlack)
)

// Pretty renders diagnostics for humans: a header line per diagnostic, the
// offending source line, and a caret/tilde underline aligned by display
// width. The bag is expected to be sorted already.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := prettyOne(w, &d, fs, opts); err != nil {
			return err
		}
	}
	return nil
}

// Short renders one line per diagnostic with no source context.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, pathMode PathMode) error {
	opts := PrettyOpts{PathMode: pathMode}
	for _, d := range bag.Items() {
		if _, err := fmt.Fprintln(w, header(&d, fs, opts)); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	if _, err := fmt.Fprintln(w, header(d, fs, opts)); err != nil {
		return err
	}
	if err := writeContext(w, d.Primary, fs, opts); err != nil {
		return err
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			start, _ := fs.Resolve(note.Span)
			label := "note:"
			if opts.Color {
				label = noteColor.Sprint(label)
			}
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s\n",
				displayPath(fs, note.Span.File, opts.PathMode), start.Line, start.Col, label, note.Msg); err != nil {
				return err
			}
		}
	}

	if opts.ShowFixes {
		for _, fx := range d.Fixes {
			if _, err := fmt.Fprintf(w, "  fix (%s): %s\n", fx.Applicability, fx.Title); err != nil {
				return err
			}
			if !opts.ShowPreview {
				continue
			}
			for _, edit := range fx.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, line := range preview.before {
					if _, err := fmt.Fprintf(w, "    - %s\n", line); err != nil {
						return err
					}
				}
				for _, line := range preview.after {
					if _, err := fmt.Fprintf(w, "    + %s\n", line); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// header renders "path:line:col: severity: message (rule-id)".
func header(d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) string {
	start, _ := fs.Resolve(d.Primary)
	path := displayPath(fs, d.Primary.File, opts.PathMode)

	sevLabel := d.Severity.String() + ":"
	if opts.Color {
		switch d.Severity {
		case diag.SevError:
			sevLabel = errorColor.Sprint(sevLabel)
		case diag.SevWarning:
			sevLabel = warningColor.Sprint(sevLabel)
		default:
			sevLabel = infoColor.Sprint(sevLabel)
		}
	}

	loc := fmt.Sprintf("%s:%d:%d:", path, start.Line, start.Col)
	rule := fmt.Sprintf("(%s)", d.Code.ID())
	if opts.Color {
		loc = pathColor.Sprint(loc)
		rule = ruleColor.Sprint(rule)
	}
	return fmt.Sprintf("%s %s %s %s", loc, sevLabel, d.Message, rule)
}

// writeContext prints the source line under the span and a ^~~~ underline.
// Alignment is computed on display width, so wide runes in the prefix do not
// shift the caret.
func writeContext(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts) error {
	start, end := fs.Resolve(span)
	line := fs.Get(span.File).GetLine(start.Line)
	if line == "" && span.Empty() {
		return nil
	}

	// Tabs render as one space each so the underline stays aligned.
	shown := strings.ReplaceAll(line, "\t", " ")
	if _, err := fmt.Fprintf(w, "  %s\n", shown); err != nil {
		return err
	}

	startCol := int(start.Col) - 1
	if startCol > len(line) {
		startCol = len(line)
	}
	spanEnd := len(line)
	if end.Line == start.Line && int(end.Col)-1 < spanEnd {
		spanEnd = int(end.Col) - 1
	}
	if spanEnd < startCol {
		spanEnd = startCol
	}

	pad := runewidth.StringWidth(strings.ReplaceAll(line[:startCol], "\t", " "))
	width := runewidth.StringWidth(strings.ReplaceAll(line[startCol:spanEnd], "\t", " "))
	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	if opts.Color {
		underline = caretColor.Sprint(underline)
	}
	_, err := fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), underline)
	return err
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	base := ""
	if mode == PathModeRelative {
		base = fs.BaseDir()
	}
	return f.FormatPath(mode.name(), base)
}
