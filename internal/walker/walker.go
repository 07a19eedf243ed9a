package walker

import (
	"fmt"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/rules"
	"swiftstyle/internal/source"
	"swiftstyle/internal/syntax"
)

// Walk runs every active rule of the registry over the tree and reports the
// surviving diagnostics. One pre-order pass visits each node once; the rules
// whose kind filter matches run in registration order. A rule with an empty
// filter sees every node.
func Walk(fs *source.FileSet, file *source.File, tree *syntax.Tree, reg *rules.Registry, rep diag.Reporter) {
	if tree == nil || !tree.Root.IsValid() {
		return
	}
	active := reg.Active()
	if len(active) == 0 {
		return
	}

	// Kind-indexed dispatch so the hot loop never scans rules that cannot
	// match the node.
	var table [syntax.KindCount][]*rules.Rule
	for _, rule := range active {
		if len(rule.Kinds) == 0 {
			for k := range table {
				table[k] = append(table[k], rule)
			}
			continue
		}
		for _, k := range rule.Kinds {
			table[k] = append(table[k], rule)
		}
	}

	sup := buildSuppressions(fs, tree)
	ctx := rules.NewContext(fs, file, tree)

	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		for _, rule := range table[tree.Node(id).Kind] {
			found, err := checkNode(rule, ctx, id)
			if err != nil {
				// The crash report itself is never suppressible.
				rep.Report(diag.IntRulePanic, diag.SevError, tree.Node(id).Span,
					fmt.Sprintf("rule %q panicked: %v", rule.Name, err), nil, nil)
				continue
			}
			sev := reg.EffectiveSeverity(rule)
			for _, d := range found {
				d.Code = rule.Code
				d.Severity = sev
				start, _ := fs.Resolve(d.Primary)
				if sup.drops(rule.Name, start.Line) {
					continue
				}
				rep.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
			}
		}
		return true
	})
}

// checkNode runs one rule on one node, converting a panic into an error so
// the traversal and the remaining rules on the node keep going.
func checkNode(rule *rules.Rule, ctx *rules.Context, id syntax.NodeID) (found []diag.Diagnostic, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			found = nil
			err = fmt.Errorf("%v", rec)
		}
	}()
	return rule.Check(ctx, id), nil
}

// suppressions indexes the file's harvested ignore directives by line.
type suppressions struct {
	fileAll   bool
	fileRules map[string]bool
	lines     map[uint32]lineMask
}

type lineMask struct {
	all   bool
	rules map[string]bool
}

// buildSuppressions reads the tree's directives: "ignore" covers its own line
// and the line below, "ignore-file" covers the whole file. No arguments means
// every rule. Unknown directive names are left for other tools.
func buildSuppressions(fs *source.FileSet, tree *syntax.Tree) suppressions {
	var sup suppressions
	for _, dir := range tree.Directives {
		switch dir.Name {
		case "ignore-file":
			if len(dir.Args) == 0 {
				sup.fileAll = true
				continue
			}
			if sup.fileRules == nil {
				sup.fileRules = make(map[string]bool)
			}
			for _, name := range dir.Args {
				sup.fileRules[name] = true
			}
		case "ignore":
			start, _ := fs.Resolve(dir.Span)
			sup.mark(start.Line, dir.Args)
			sup.mark(start.Line+1, dir.Args)
		}
	}
	return sup
}

func (s *suppressions) mark(line uint32, args []string) {
	if s.lines == nil {
		s.lines = make(map[uint32]lineMask)
	}
	m := s.lines[line]
	if len(args) == 0 {
		m.all = true
	} else {
		if m.rules == nil {
			m.rules = make(map[string]bool)
		}
		for _, name := range args {
			m.rules[name] = true
		}
	}
	s.lines[line] = m
}

// drops reports whether the named rule is suppressed on the line.
func (s *suppressions) drops(rule string, line uint32) bool {
	if s.fileAll || s.fileRules[rule] {
		return true
	}
	m, ok := s.lines[line]
	if !ok {
		return false
	}
	return m.all || m.rules[rule]
}
