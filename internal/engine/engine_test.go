package engine_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"swiftstyle/internal/cache"
	"swiftstyle/internal/diag"
	"swiftstyle/internal/engine"
	"swiftstyle/internal/observ"
	"swiftstyle/internal/rules"
	"swiftstyle/internal/source"
	"swiftstyle/internal/syntax"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckManyMergesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.swift", "class bad_name { }\n")
	writeFile(t, dir, "b.swift", "public final class Good { }\n")

	res, err := engine.CheckMany(context.Background(), []string{dir}, engine.Options{Registry: rules.Builtin()})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(res.Files))
	}
	if res.Bag.Len() != 3 {
		t.Fatalf("diagnostics = %d, want 3:\n%s", res.Bag.Len(),
			diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, false))
	}
	for _, d := range res.Bag.Items() {
		if path := res.FileSet.Get(d.Primary.File).Path; !strings.HasSuffix(path, "a.swift") {
			t.Errorf("diagnostic attributed to %s, want a.swift", path)
		}
	}
	if code := res.ExitCode(); code != 0 {
		t.Errorf("exit code = %d, want 0 for warnings only", code)
	}
}

// FileIDs follow sorted path order, so the merged sort groups diagnostics by
// path without comparing strings.
func TestCheckManySortsByPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "z.swift", "private let a = v!\n")
	writeFile(t, dir, "a.swift", "private let b = w!\n")

	res, err := engine.CheckMany(context.Background(), []string{dir}, engine.Options{Registry: rules.Builtin()})
	if err != nil {
		t.Fatal(err)
	}
	items := res.Bag.Items()
	if len(items) != 2 {
		t.Fatalf("diagnostics = %d, want 2", len(items))
	}
	first := res.FileSet.Get(items[0].Primary.File).Path
	second := res.FileSet.Get(items[1].Primary.File).Path
	if !strings.HasSuffix(first, "a.swift") || !strings.HasSuffix(second, "z.swift") {
		t.Errorf("order = [%s, %s], want a.swift before z.swift", first, second)
	}
}

func TestCheckManyWarningPolicy(t *testing.T) {
	t.Run("warnings as errors", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.swift", "class bad_name { }\n")

		res, err := engine.CheckMany(context.Background(), []string{dir}, engine.Options{
			Registry:         rules.Builtin(),
			WarningsAsErrors: true,
		})
		if err != nil {
			t.Fatal(err)
		}
		if code := res.ExitCode(); code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		for _, d := range res.Bag.Items() {
			if d.Severity != diag.SevError {
				t.Errorf("severity = %v after upgrade, want SevError", d.Severity)
			}
		}
	})

	t.Run("no warnings", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.swift", "class bad_name { }\n")

		res, err := engine.CheckMany(context.Background(), []string{dir}, engine.Options{
			Registry:   rules.Builtin(),
			NoWarnings: true,
		})
		if err != nil {
			t.Fatal(err)
		}
		if res.Bag.Len() != 0 {
			t.Errorf("diagnostics = %d, want 0 with warnings filtered", res.Bag.Len())
		}
		if code := res.ExitCode(); code != 0 {
			t.Errorf("exit code = %d, want 0", code)
		}
	})
}

// A file too broken to parse skips the walk and turns the run into an
// internal failure, which outranks plain error diagnostics.
func TestCheckManyParseFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.swift", "}\n")
	writeFile(t, dir, "ok.swift", "public final class Good { }\n")

	res, err := engine.CheckMany(context.Background(), []string{dir}, engine.Options{
		Registry:       rules.Builtin(),
		MaxDiagnostics: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	var broken *engine.FileResult
	for i := range res.Files {
		if strings.HasSuffix(res.Files[i].Path, "broken.swift") {
			broken = &res.Files[i]
		}
	}
	if broken == nil || !broken.ParseFailed {
		t.Fatal("broken.swift not marked ParseFailed")
	}
	if code := res.ExitCode(); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestCheckManyMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.swift")

	res, err := engine.CheckMany(context.Background(), []string{missing}, engine.Options{Registry: rules.Builtin()})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 1 || !res.Files[0].LoadFailed {
		t.Fatal("missing file not recorded as load failure")
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Fatalf("diagnostics = %+v, want one IOLoadFileError", items)
	}
	if !strings.Contains(items[0].Message, "missing.swift") {
		t.Errorf("message %q does not name the file", items[0].Message)
	}
	if code := res.ExitCode(); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestCheckManyExclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("Generated", "gen.swift"), "class bad_name { }\n")
	writeFile(t, dir, "main.swift", "class bad_name { }\n")

	res, err := engine.CheckMany(context.Background(), []string{dir}, engine.Options{
		Registry: rules.Builtin(),
		Exclude:  []string{"Generated"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 1 || !strings.HasSuffix(res.Files[0].Path, "main.swift") {
		t.Fatalf("files = %+v, want main.swift only", res.Files)
	}
}

func TestCheckManyCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.swift", "class bad_name { }\n")
	store, err := cache.OpenAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	run := func(reg *rules.Registry) *engine.Result {
		t.Helper()
		res, err := engine.CheckMany(context.Background(), []string{dir}, engine.Options{Registry: reg, Cache: store})
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	r1 := run(rules.Builtin())
	if r1.Files[0].FromCache {
		t.Fatal("first run served from cache")
	}

	r2 := run(rules.Builtin())
	if !r2.Files[0].FromCache {
		t.Fatal("second run not served from cache")
	}
	g1 := diag.FormatGoldenDiagnostics(r1.Bag.Items(), r1.FileSet, true)
	g2 := diag.FormatGoldenDiagnostics(r2.Bag.Items(), r2.FileSet, true)
	if g1 != g2 {
		t.Errorf("cached run differs:\n%s\n---\n%s", g1, g2)
	}

	// A different ruleset misses: the fingerprint feeds the key.
	altered := rules.Builtin()
	if err := altered.Disable("type-name"); err != nil {
		t.Fatal(err)
	}
	r3 := run(altered)
	if r3.Files[0].FromCache {
		t.Fatal("run with different ruleset served from cache")
	}
	if r3.Bag.Len() != 2 {
		t.Errorf("diagnostics = %d, want 2 with type-name disabled", r3.Bag.Len())
	}
}

func TestCheckFileVirtualSkipsCache(t *testing.T) {
	cacheDir := t.TempDir()
	store, err := cache.OpenAt(cacheDir)
	if err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("stdin.swift", []byte("private let a = v!\n")))
	res := engine.CheckFile(context.Background(), fs, file, engine.Options{Registry: rules.Builtin(), Cache: store})

	if res.Bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1", res.Bag.Len())
	}
	if res.FromCache {
		t.Error("virtual file served from cache")
	}
	entries, _ := filepath.Glob(filepath.Join(cacheDir, "results", "*.mp"))
	if len(entries) != 0 {
		t.Errorf("virtual file wrote %d cache entries", len(entries))
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []engine.Event
}

func (s *recordSink) OnEvent(e engine.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func TestCheckManyProgressEvents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.swift", "class bad_name { }\n")
	writeFile(t, dir, "b.swift", "public final class Good { }\n")

	sink := &recordSink{}
	_, err := engine.CheckMany(context.Background(), []string{dir}, engine.Options{
		Registry: rules.Builtin(),
		Progress: sink,
		Jobs:     1,
	})
	if err != nil {
		t.Fatal(err)
	}

	queued, done := 0, 0
	for _, ev := range sink.events {
		switch ev.Status {
		case engine.StatusQueued:
			queued++
		case engine.StatusDone:
			done++
		case engine.StatusError:
			t.Errorf("unexpected error event for %s: %v", ev.File, ev.Err)
		}
	}
	if queued != 2 {
		t.Errorf("queued events = %d, want 2", queued)
	}
	if done != 2 {
		t.Errorf("done events = %d, want 2", done)
	}
}

func TestCheckManyCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.swift", "class bad_name { }\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := engine.CheckMany(ctx, []string{dir}, engine.Options{Registry: rules.Builtin()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res == nil {
		t.Fatal("result dropped on cancellation")
	}
	if len(res.Files) != 0 {
		t.Errorf("files = %d, want 0 when canceled before work", len(res.Files))
	}
}

func TestCheckManyTimings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.swift", "public final class Good { }\n")

	timer := observ.NewTimer()
	if _, err := engine.CheckMany(context.Background(), []string{dir}, engine.Options{
		Registry: rules.Builtin(),
		Timer:    timer,
	}); err != nil {
		t.Fatal(err)
	}

	got := make(map[string]bool)
	for _, p := range timer.Report().Phases {
		got[p.Name] = true
	}
	for _, want := range []string{"discover", "load", "lint", "merge"} {
		if !got[want] {
			t.Errorf("phase %q not recorded (have %v)", want, got)
		}
	}
}

// A crashed rule surfaces as an internal diagnostic and forces exit 2 even
// when every file parses.
func TestCheckManyRulePanicExitCode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.swift", "public final class Good { }\n")

	reg := rules.New()
	boom := &rules.Rule{
		Code: diag.Code(3901), Name: "boom", Severity: diag.SevWarning,
		Kinds: []syntax.NodeKind{syntax.ClassDecl},
		Check: func(*rules.Context, syntax.NodeID) []diag.Diagnostic {
			panic("kaboom")
		},
	}
	if err := reg.Register(boom); err != nil {
		t.Fatal(err)
	}

	res, err := engine.CheckMany(context.Background(), []string{dir}, engine.Options{Registry: reg})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Bag.HasInternal() {
		t.Fatal("crash report missing from merged bag")
	}
	if code := res.ExitCode(); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}
