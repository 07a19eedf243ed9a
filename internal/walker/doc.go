// Package walker dispatches the active rules over a parsed file in a single
// depth-first pre-order traversal.
//
// The walker owns everything a rule check should not have to think about:
// kind filtering, deterministic ordering (node order first, registration
// order within a node), stamping each diagnostic with its rule's code and
// effective severity, honoring "swiftstyle:ignore" suppression directives,
// and isolating panics so one broken rule cannot take down the run.
package walker
