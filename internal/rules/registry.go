package rules

import (
	"fmt"

	"swiftstyle/internal/diag"
)

// DuplicateRuleError reports a Register collision on name or code.
type DuplicateRuleError struct {
	Name string
	Code diag.Code
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %q (code %d) is already registered", e.Name, e.Code)
}

// UnknownRuleError reports a rule name that no registered rule carries.
type UnknownRuleError struct {
	Name string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule %q", e.Name)
}

// Registry holds rules in registration order together with their enabled
// state and per-rule severity overrides.
type Registry struct {
	rules    []*Rule
	byName   map[string]int
	byCode   map[diag.Code]int
	disabled map[string]bool
	override map[string]diag.Severity
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byName:   make(map[string]int),
		byCode:   make(map[diag.Code]int),
		disabled: make(map[string]bool),
		override: make(map[string]diag.Severity),
	}
}

// Register adds a rule. Name and code must both be unused.
func (r *Registry) Register(rule *Rule) error {
	if _, ok := r.byName[rule.Name]; ok {
		return &DuplicateRuleError{Name: rule.Name, Code: rule.Code}
	}
	if _, ok := r.byCode[rule.Code]; ok {
		return &DuplicateRuleError{Name: rule.Name, Code: rule.Code}
	}
	idx := len(r.rules)
	r.rules = append(r.rules, rule)
	r.byName[rule.Name] = idx
	r.byCode[rule.Code] = idx
	return nil
}

// Lookup finds a rule by its stable name.
func (r *Registry) Lookup(name string) (*Rule, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.rules[idx], true
}

// Disable turns a rule off. Disabled rules stay registered and listable.
func (r *Registry) Disable(name string) error {
	if _, ok := r.byName[name]; !ok {
		return &UnknownRuleError{Name: name}
	}
	r.disabled[name] = true
	return nil
}

// Enable turns a previously disabled rule back on.
func (r *Registry) Enable(name string) error {
	if _, ok := r.byName[name]; !ok {
		return &UnknownRuleError{Name: name}
	}
	delete(r.disabled, name)
	return nil
}

// Only restricts the active set to exactly the named rules.
func (r *Registry) Only(names ...string) error {
	for _, name := range names {
		if _, ok := r.byName[name]; !ok {
			return &UnknownRuleError{Name: name}
		}
	}
	allow := make(map[string]bool, len(names))
	for _, name := range names {
		allow[name] = true
	}
	for _, rule := range r.rules {
		r.disabled[rule.Name] = !allow[rule.Name]
	}
	return nil
}

// Override replaces the rule's default severity for this registry.
func (r *Registry) Override(name string, sev diag.Severity) error {
	if _, ok := r.byName[name]; !ok {
		return &UnknownRuleError{Name: name}
	}
	r.override[name] = sev
	return nil
}

// EffectiveSeverity resolves the severity a rule's diagnostics carry,
// override first, default otherwise.
func (r *Registry) EffectiveSeverity(rule *Rule) diag.Severity {
	if sev, ok := r.override[rule.Name]; ok {
		return sev
	}
	return rule.Severity
}

// Active returns the enabled rules in registration order.
func (r *Registry) Active() []*Rule {
	out := make([]*Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if !r.disabled[rule.Name] {
			out = append(out, rule)
		}
	}
	return out
}

// All returns every registered rule in registration order, disabled included.
func (r *Registry) All() []*Rule {
	return append([]*Rule(nil), r.rules...)
}

// Enabled reports whether the named rule is registered and active.
func (r *Registry) Enabled(name string) bool {
	_, ok := r.byName[name]
	return ok && !r.disabled[name]
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Fingerprint identifies the active configuration for cache keying: which
// rules run and at which severity. Registration order makes it stable.
func (r *Registry) Fingerprint() string {
	out := make([]byte, 0, len(r.rules)*16)
	for _, rule := range r.rules {
		if r.disabled[rule.Name] {
			continue
		}
		out = fmt.Appendf(out, "%s=%d;", rule.Name, r.EffectiveSeverity(rule))
	}
	return string(out)
}

// Builtin returns a registry with the built-in rule set registered in fixed
// order. The table is static and collision-checked by tests, so a failure
// here is a programming error.
func Builtin() *Registry {
	r := New()
	for _, rule := range builtinRules {
		if err := r.Register(rule); err != nil {
			panic(fmt.Errorf("builtin rule table: %w", err))
		}
	}
	return r
}

// builtinRules lists the built-in rules in their fixed registration order.
var builtinRules = []*Rule{
	forceUnwrapRule,
	preferLetRule,
	explicitAccessRule,
	enumDefaultCaseRule,
	finalClassRule,
	colonSpacingRule,
	trailingWhitespaceRule,
	typeNameRule,
	identifierNameRule,
}
