package syntax_test

import (
	"strings"
	"testing"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
	"swiftstyle/internal/syntax"
)

// testReporter collects every diagnostic the parser reports.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) errorCount() int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

func parseSource(input string) (syntax.Result, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.swift", []byte(input))
	file := fs.Get(fileID)
	reporter := &testReporter{}
	res := syntax.ParseFile(fs, file, syntax.Options{Reporter: reporter})
	return res, reporter
}

func mustParse(t *testing.T, input string) *syntax.Tree {
	t.Helper()
	res, reporter := parseSource(input)
	if res.Failed {
		t.Fatalf("parse failed: %v", reporter.diagnostics)
	}
	if reporter.errorCount() > 0 {
		t.Fatalf("unexpected parse errors: %v", reporter.diagnostics)
	}
	return res.Tree
}

// collect returns every node of the kind in pre-order.
func collect(tree *syntax.Tree, kind syntax.NodeKind) []syntax.NodeID {
	var out []syntax.NodeID
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		if tree.Node(id).Kind == kind {
			out = append(out, id)
		}
		return true
	})
	return out
}

func collectNames(tree *syntax.Tree, kind syntax.NodeKind) []string {
	var out []string
	for _, id := range collect(tree, kind) {
		out = append(out, tree.Node(id).Name)
	}
	return out
}

func firstNode(t *testing.T, tree *syntax.Tree, kind syntax.NodeKind) *syntax.Node {
	t.Helper()
	ids := collect(tree, kind)
	if len(ids) == 0 {
		t.Fatalf("no %s node in tree", kind)
	}
	return tree.Node(ids[0])
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseEmptyFile(t *testing.T) {
	tree := mustParse(t, "")
	root := tree.Node(tree.Root)
	if root.Kind != syntax.File {
		t.Fatalf("root kind = %s, want File", root.Kind)
	}
	if len(root.Children) != 0 {
		t.Errorf("empty file has %d children", len(root.Children))
	}
}

func TestImportDecls(t *testing.T) {
	tree := mustParse(t, "import Foundation\nimport class UIKit.UIView\n")
	got := collectNames(tree, syntax.ImportDecl)
	want := []string{"Foundation", "UIKit.UIView"}
	if !equalStrings(got, want) {
		t.Errorf("imports = %v, want %v", got, want)
	}
}

func TestClassDecl(t *testing.T) {
	tree := mustParse(t, `
public final class Cache<Key: Hashable>: NSObject, Sendable {
    let storage: [Key: Int] = [:]

    func lookup(_ key: Key) -> Int? {
        return storage[key]
    }
}
`)
	cls := firstNode(t, tree, syntax.ClassDecl)
	if cls.Name != "Cache" {
		t.Errorf("class name = %q, want Cache", cls.Name)
	}
	if !cls.Mods.Has(syntax.ModPublic) || !cls.Mods.Has(syntax.ModFinal) {
		t.Errorf("class mods = %b, want public final", cls.Mods)
	}
	inherited := collectNames(tree, syntax.InheritedType)
	if !equalStrings(inherited, []string{"NSObject", "Sendable"}) {
		t.Errorf("inherited types = %v", inherited)
	}

	let := firstNode(t, tree, syntax.LetDecl)
	if len(let.Children) != 1 {
		t.Fatalf("let decl has %d bindings, want 1", len(let.Children))
	}
	binding := tree.Node(let.Children[0])
	if binding.Kind != syntax.PatternBinding || binding.Name != "storage" {
		t.Errorf("binding = %s %q", binding.Kind, binding.Name)
	}
	if tree.FirstChild(let.Children[0], syntax.TypeAnnotation) == syntax.NoNodeID {
		t.Error("storage binding has no type annotation")
	}
	if tree.FirstChild(let.Children[0], syntax.Initializer) == syntax.NoNodeID {
		t.Error("storage binding has no initializer")
	}

	fn := firstNode(t, tree, syntax.FuncDecl)
	if fn.Name != "lookup" {
		t.Errorf("func name = %q", fn.Name)
	}
	params := collectNames(tree, syntax.Param)
	if !equalStrings(params, []string{"key"}) {
		t.Errorf("params = %v, want [key]", params)
	}
	if len(collect(tree, syntax.ReturnStmt)) != 1 {
		t.Error("missing return statement")
	}
	if len(collect(tree, syntax.SubscriptExpr)) != 1 {
		t.Error("missing subscript expression in body")
	}
}

func TestStructEnumActor(t *testing.T) {
	tree := mustParse(t, `
struct Point {
    var x = 0.0
    var y = 0.0
}

actor Worker {
    var pending = 0
}

enum State: Int {
    case idle = 0
    case running, paused
    case failed(Int)
}
`)
	if got := collectNames(tree, syntax.StructDecl); !equalStrings(got, []string{"Point"}) {
		t.Errorf("structs = %v", got)
	}
	if got := collectNames(tree, syntax.ActorDecl); !equalStrings(got, []string{"Worker"}) {
		t.Errorf("actors = %v", got)
	}
	if got := collectNames(tree, syntax.EnumDecl); !equalStrings(got, []string{"State"}) {
		t.Errorf("enums = %v", got)
	}
	if got := len(collect(tree, syntax.EnumCaseDecl)); got != 3 {
		t.Errorf("enum case decls = %d, want 3", got)
	}
	elems := collectNames(tree, syntax.EnumCaseElement)
	want := []string{"idle", "running", "paused", "failed"}
	if !equalStrings(elems, want) {
		t.Errorf("case elements = %v, want %v", elems, want)
	}
}

func TestProtocolDecl(t *testing.T) {
	tree := mustParse(t, `
protocol Store {
    associatedtype Element

    var count: Int { get }

    func insert(_ element: Element) throws
}
`)
	if got := collectNames(tree, syntax.ProtocolDecl); !equalStrings(got, []string{"Store"}) {
		t.Errorf("protocols = %v", got)
	}
	if got := collectNames(tree, syntax.AssociatedtypeDecl); !equalStrings(got, []string{"Element"}) {
		t.Errorf("associatedtypes = %v", got)
	}
	accessors := collectNames(tree, syntax.Accessor)
	if !equalStrings(accessors, []string{"get"}) {
		t.Errorf("accessors = %v, want [get]", accessors)
	}
	fn := firstNode(t, tree, syntax.FuncDecl)
	for _, c := range fn.Children {
		if tree.Node(c).Kind == syntax.CodeBlock {
			t.Error("protocol requirement should have no body")
		}
	}
}

func TestExtensionDecl(t *testing.T) {
	tree := mustParse(t, `
extension Array.SubSequence where Element: Equatable {
    func dedup() -> [Element] { return [] }
}
`)
	ext := firstNode(t, tree, syntax.ExtensionDecl)
	if ext.Name != "Array.SubSequence" {
		t.Errorf("extension name = %q", ext.Name)
	}
}

func TestVarForms(t *testing.T) {
	tree := mustParse(t, `
var a = 1, b = 2
let (x, y) = makePair()

var total: Int {
    return a + b
}

var score = 0 {
    didSet {
        persist()
    }
}
`)
	vars := collect(tree, syntax.VarDecl)
	if len(vars) != 3 {
		t.Fatalf("var decls = %d, want 3", len(vars))
	}
	multi := tree.Node(vars[0])
	if len(multi.Children) != 2 {
		t.Errorf("first var has %d bindings, want 2", len(multi.Children))
	}

	lets := collect(tree, syntax.LetDecl)
	if len(lets) != 1 {
		t.Fatalf("let decls = %d, want 1", len(lets))
	}
	tuple := tree.Node(tree.Node(lets[0]).Children[0])
	if tuple.Name != "" {
		t.Errorf("tuple binding name = %q, want empty", tuple.Name)
	}

	blocks := collect(tree, syntax.AccessorBlock)
	if len(blocks) != 2 {
		t.Fatalf("accessor blocks = %d, want 2", len(blocks))
	}
	accessors := collectNames(tree, syntax.Accessor)
	if !equalStrings(accessors, []string{"get", "didSet"}) {
		t.Errorf("accessors = %v, want [get didSet]", accessors)
	}
}

func TestForceUnwrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"simple", "let x = value!", 1},
		{"chained", "let y = a!.b!", 2},
		{"glued run", "let z = m!!", 2},
		{"iuo type is not an unwrap", "var w: Int! = nil", 0},
		{"prefix negation is not an unwrap", "let ok = !done", 0},
		{"inequality is not an unwrap", "let ne = a != b", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.input)
			got := collect(tree, syntax.ForceUnwrapExpr)
			if len(got) != tt.want {
				t.Fatalf("force unwraps = %d, want %d", len(got), tt.want)
			}
			for _, id := range got {
				if tree.Node(id).NameSpan.Len() != 1 {
					t.Errorf("unwrap mark span = %v, want single '!'", tree.Node(id).NameSpan)
				}
			}
		})
	}
}

func TestForcedCastAndTry(t *testing.T) {
	tree := mustParse(t, `
let a = x as! String
let b = x as? Int
let c = try! load()
let d = try? load()
let e = try load()
`)
	if got := len(collect(tree, syntax.ForceCastExpr)); got != 1 {
		t.Errorf("forced casts = %d, want 1", got)
	}
	if got := len(collect(tree, syntax.ForceTryExpr)); got != 1 {
		t.Errorf("forced tries = %d, want 1", got)
	}
}

func TestOptionalChaining(t *testing.T) {
	tree := mustParse(t, "let name = user?.profile?.name\nlet pick = flag ? a : b\n")
	if got := len(collect(tree, syntax.OptionalChainExpr)); got != 2 {
		t.Errorf("optional chains = %d, want 2", got)
	}
	if got := len(collect(tree, syntax.TernaryExpr)); got != 1 {
		t.Errorf("ternaries = %d, want 1", got)
	}
}

func TestGenericArgumentsInExpressions(t *testing.T) {
	tree := mustParse(t, "let d = Dictionary<String, Int>()")
	if got := len(collect(tree, syntax.CallExpr)); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
	if got := len(collect(tree, syntax.BinaryExpr)); got != 0 {
		t.Errorf("binary exprs = %d, want 0", got)
	}

	tree = mustParse(t, "let cmp = a < b")
	if got := len(collect(tree, syntax.BinaryExpr)); got != 1 {
		t.Errorf("comparison parsed as %d binary exprs, want 1", got)
	}
}

func TestIfLetAndGuard(t *testing.T) {
	tree := mustParse(t, `
func handle(value: Int?) {
    if let value, value > 0 {
        use(value)
    }
    guard let v = value else {
        return
    }
    use(v)
}
`)
	ifs := collect(tree, syntax.IfStmt)
	if len(ifs) != 1 {
		t.Fatalf("if stmts = %d, want 1", len(ifs))
	}
	guards := collect(tree, syntax.GuardStmt)
	if len(guards) != 1 {
		t.Fatalf("guard stmts = %d, want 1", len(guards))
	}
	// shorthand binding plus the guard binding
	lets := collect(tree, syntax.LetDecl)
	if len(lets) != 2 {
		t.Errorf("condition bindings = %d, want 2", len(lets))
	}
	guardLet := tree.Node(tree.Node(guards[0]).Children[0])
	if guardLet.Kind != syntax.LetDecl {
		t.Fatalf("first guard child = %s, want LetDecl", guardLet.Kind)
	}
	b := tree.Node(guardLet.Children[0])
	if b.Name != "v" || tree.FirstChild(guardLet.Children[0], syntax.Initializer) == syntax.NoNodeID {
		t.Errorf("guard binding = %q, initializer missing", b.Name)
	}
}

func TestSwitchStmt(t *testing.T) {
	tree := mustParse(t, `
func react(to state: State) {
    switch state {
    case .idle:
        start()
    case .failed(let error) where error.isFatal:
        log(error)
        fallthrough
    default:
        break
    }
}
`)
	if got := len(collect(tree, syntax.SwitchStmt)); got != 1 {
		t.Fatalf("switch stmts = %d", got)
	}
	if got := len(collect(tree, syntax.CaseClause)); got != 2 {
		t.Errorf("case clauses = %d, want 2", got)
	}
	if got := len(collect(tree, syntax.DefaultClause)); got != 1 {
		t.Errorf("default clauses = %d, want 1", got)
	}
	if got := len(collect(tree, syntax.FallthroughStmt)); got != 1 {
		t.Errorf("fallthroughs = %d, want 1", got)
	}
	// the payload binding in .failed(let error)
	lets := collect(tree, syntax.LetDecl)
	if len(lets) != 1 {
		t.Fatalf("pattern bindings = %d, want 1", len(lets))
	}
	if name := tree.Node(tree.Node(lets[0]).Children[0]).Name; name != "error" {
		t.Errorf("pattern binding name = %q, want error", name)
	}
}

func TestUnknownDefault(t *testing.T) {
	tree := mustParse(t, `
switch direction {
case .up:
    climb()
@unknown default:
    stay()
}
`)
	if got := len(collect(tree, syntax.DefaultClause)); got != 1 {
		t.Errorf("default clauses = %d, want 1", got)
	}
}

func TestClosures(t *testing.T) {
	tree := mustParse(t, `
let doubled = numbers.map { $0 * 2 }
let sorted = items.sorted { (a, b) in a < b }
run(on: queue) { result in
    handle(result)
} completion: {
    finish()
}
`)
	closures := collect(tree, syntax.ClosureExpr)
	if len(closures) != 4 {
		t.Fatalf("closures = %d, want 4", len(closures))
	}
	params := collectNames(tree, syntax.Param)
	want := []string{"a", "b", "result"}
	if !equalStrings(params, want) {
		t.Errorf("closure params = %v, want %v", params, want)
	}
}

func TestOperatorDecls(t *testing.T) {
	tree := mustParse(t, `
infix operator <*>: AdditionPrecedence

struct Vec {
    static func == (lhs: Vec, rhs: Vec) -> Bool {
        return true
    }
}
`)
	op := firstNode(t, tree, syntax.OperatorDecl)
	if op.Name != "<*>" {
		t.Errorf("operator name = %q, want <*>", op.Name)
	}
	fn := firstNode(t, tree, syntax.FuncDecl)
	if fn.Name != "==" {
		t.Errorf("operator func name = %q, want ==", fn.Name)
	}
	if !fn.Mods.Has(syntax.ModStatic) {
		t.Error("operator func should be static")
	}
}

func TestInitDeinitSubscript(t *testing.T) {
	tree := mustParse(t, `
final class Connection {
    let socket: Int

    init?(raw: String) {
        guard let value = Int(raw) else { return nil }
        socket = value
    }

    deinit {
        close(socket)
    }

    subscript(index: Int) -> Int {
        get { return socket }
        set { update(newValue) }
    }
}
`)
	if len(collect(tree, syntax.InitDecl)) != 1 {
		t.Error("missing init decl")
	}
	if len(collect(tree, syntax.DeinitDecl)) != 1 {
		t.Error("missing deinit decl")
	}
	if len(collect(tree, syntax.SubscriptDecl)) != 1 {
		t.Error("missing subscript decl")
	}
	accessors := collectNames(tree, syntax.Accessor)
	if !equalStrings(accessors, []string{"get", "set"}) {
		t.Errorf("subscript accessors = %v", accessors)
	}
	if len(collect(tree, syntax.AssignExpr)) != 2 {
		t.Error("expected assignments in init and set")
	}
}

func TestDoCatch(t *testing.T) {
	tree := mustParse(t, `
do {
    try perform()
} catch let error as NetworkError {
    report(error)
} catch {
    fallback()
}
`)
	if got := len(collect(tree, syntax.DoStmt)); got != 1 {
		t.Fatalf("do stmts = %d", got)
	}
	if got := len(collect(tree, syntax.CatchClause)); got != 2 {
		t.Errorf("catch clauses = %d, want 2", got)
	}
	lets := collectNames(tree, syntax.LetDecl)
	if len(lets) != 1 {
		t.Errorf("catch bindings = %d, want 1", len(lets))
	}
}

func TestTypealias(t *testing.T) {
	tree := mustParse(t, "typealias Handler = (Int) -> Void\n")
	ta := firstNode(t, tree, syntax.TypealiasDecl)
	if ta.Name != "Handler" {
		t.Errorf("typealias name = %q", ta.Name)
	}
}

func TestAttributes(t *testing.T) {
	tree := mustParse(t, `
@available(iOS 13.0, *)
@objc
public class Screen {
    @Published var visible = false
}
`)
	attrs := collectNames(tree, syntax.Attribute)
	want := []string{"available", "objc", "Published"}
	if !equalStrings(attrs, want) {
		t.Errorf("attributes = %v, want %v", attrs, want)
	}
}

func TestTopLevelStatements(t *testing.T) {
	tree := mustParse(t, `
print("hello")
let name = "world"
if name.isEmpty {
    exit(1)
}
`)
	root := tree.Node(tree.Root)
	if len(root.Children) != 3 {
		t.Fatalf("top-level children = %d, want 3", len(root.Children))
	}
	kinds := []syntax.NodeKind{
		tree.Node(root.Children[0]).Kind,
		tree.Node(root.Children[1]).Kind,
		tree.Node(root.Children[2]).Kind,
	}
	if kinds[0] != syntax.CallExpr || kinds[1] != syntax.LetDecl || kinds[2] != syntax.IfStmt {
		t.Errorf("top-level kinds = %v", kinds)
	}
}

func TestLabeledLoop(t *testing.T) {
	tree := mustParse(t, `
outer: for i in 0..<10 {
    if i == 5 {
        break outer
    }
}
`)
	if len(collect(tree, syntax.ForStmt)) != 1 {
		t.Error("missing for stmt")
	}
	if len(collect(tree, syntax.BreakStmt)) != 1 {
		t.Error("missing break stmt")
	}
}

func TestConditionalCompilation(t *testing.T) {
	tree := mustParse(t, `
#if DEBUG
let verbose = true
#else
let verbose = false
#endif
`)
	if got := len(collect(tree, syntax.LetDecl)); got != 2 {
		t.Errorf("let decls = %d, want both #if branches", got)
	}
}

func TestRecoveryBetweenDecls(t *testing.T) {
	res, reporter := parseSource(`
class Good1 { }

%%%

class Good2 { }
`)
	if res.Failed {
		t.Fatal("recoverable garbage must not fail the parse")
	}
	if reporter.errorCount() == 0 {
		t.Error("garbage should report a syntax error")
	}
	got := collectNames(res.Tree, syntax.ClassDecl)
	if !equalStrings(got, []string{"Good1", "Good2"}) {
		t.Errorf("classes after recovery = %v", got)
	}
}

func TestErrorCap(t *testing.T) {
	res, reporter := parseSource(strings.Repeat(") ", 40))
	if !res.Failed {
		t.Fatal("parse should fail once the error cap is hit")
	}
	if res.ErrorCount < syntax.DefaultMaxErrors {
		t.Errorf("error count = %d, want at least %d", res.ErrorCount, syntax.DefaultMaxErrors)
	}
	last := reporter.diagnostics[len(reporter.diagnostics)-1]
	if last.Code != diag.SynTooManyErrors {
		t.Errorf("last diagnostic = %v, want SynTooManyErrors", last.Code)
	}
}

func TestDirectivesHarvested(t *testing.T) {
	tree := mustParse(t, `// swiftstyle:ignore force-unwrap
let x = y!
// swiftstyle:ignore-file
`)
	if len(tree.Directives) != 2 {
		t.Fatalf("directives = %d, want 2", len(tree.Directives))
	}
	if tree.Directives[0].Name != "ignore" || len(tree.Directives[0].Args) != 1 {
		t.Errorf("first directive = %+v", tree.Directives[0])
	}
	if tree.Directives[1].Name != "ignore-file" {
		t.Errorf("second directive = %+v", tree.Directives[1])
	}
	// parsing records the unwrap; suppression is a later stage
	if len(collect(tree, syntax.ForceUnwrapExpr)) != 1 {
		t.Error("force unwrap missing from tree")
	}
}

func TestCommentsHarvested(t *testing.T) {
	tree := mustParse(t, `// header note
/// Doc for f.
func f() { }
`)
	if len(tree.Comments) != 2 {
		t.Fatalf("comments = %d, want 2", len(tree.Comments))
	}
}

func TestTokenStreamRecorded(t *testing.T) {
	tree := mustParse(t, "let answer = 42\n")
	if len(tree.Tokens) == 0 {
		t.Fatal("token stream is empty")
	}
	for i := 1; i < len(tree.Tokens); i++ {
		if tree.Tokens[i].Span.Start < tree.Tokens[i-1].Span.End {
			t.Fatalf("tokens out of order at %d", i)
		}
	}
}

func TestNodeSpansCoverBodies(t *testing.T) {
	input := "class Box {\n    var value = 0\n}\n"
	tree := mustParse(t, input)
	cls := firstNode(t, tree, syntax.ClassDecl)
	text := input[cls.Span.Start:cls.Span.End]
	if !strings.HasPrefix(text, "class Box") || !strings.HasSuffix(text, "}") {
		t.Errorf("class span covers %q", text)
	}
}
