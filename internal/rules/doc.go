// Package rules defines style rules as data and the registry that holds them.
//
// A Rule is a plain struct: identity (code + stable name), default severity,
// documentation strings, the node kinds it wants to see, and a Check function.
// There is no rule interface and no per-rule type; adding a rule means adding
// one value to the built-in table. Checks are stateless and return diagnostics
// instead of reporting them, so the walker owns stamping (code, effective
// severity), suppression, and panic isolation.
//
// The Registry preserves registration order, which is the only ordering
// rules ever get: the walker dispatches a node to active rules in that order,
// and the `rules` subcommand lists them the same way. Name and code collisions
// are rejected at Register time (DuplicateRuleError); disable/enable/override
// by unknown name is an UnknownRuleError so configuration typos fail fast.
package rules
