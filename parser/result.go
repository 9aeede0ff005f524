// ==============================================================================================
// FILE: parser/result.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: The backtracking helper (ParseResult in the distilled-from
//          grammar) that lets the recursive-descent parser try productions
//          speculatively without losing the earliest, deepest diagnostic.
// ==============================================================================================

package parser

import (
	"eloq/ast"
	"eloq/diag"
)

// Result tracks one parse attempt: its node (on success), its error (if
// any), how many tokens the attempt has advanced, how many tokens the
// last registration advanced, and how many tokens a failed speculative
// attempt needs rewound.
//
// The commit-counter discipline here is load-bearing (spec.md §9): Failure
// only overrides an existing error when no token has been consumed past
// the last decision point. Without that guard, every alternative production
// tried and abandoned during backtracking would stomp the deepest,
// most-informative error with whatever shallow mismatch was tried last.
type Result struct {
	Node                        ast.Node
	Err                         *diag.Diagnostic
	AdvanceCount                int
	LastRegisteredAdvanceCount  int
	ToReverseCount              int
}

func NewResult() *Result {
	return &Result{}
}

// RegisterAdvancement records that the parser consumed one token as part
// of the current attempt, independent of any sub-result.
func (r *Result) RegisterAdvancement() {
	r.LastRegisteredAdvanceCount = 1
	r.AdvanceCount++
}

// Register incorporates a completed sub-result: its advancement count
// folds into this result's, and its error (if any) becomes this result's
// error. Register is unconditional — use it when the caller has already
// committed to this production and a failure should propagate.
func (r *Result) Register(other *Result) ast.Node {
	r.LastRegisteredAdvanceCount = other.AdvanceCount
	r.AdvanceCount += other.AdvanceCount
	if other.Err != nil {
		r.Err = other.Err
	}
	return other.Node
}

// TryRegister incorporates a speculative sub-result. On failure it does
// NOT propagate the error into r; instead it records how many tokens the
// caller must reverse and returns nil, letting the caller rewind and try
// a different production.
func (r *Result) TryRegister(other *Result) ast.Node {
	if other.Err != nil {
		r.ToReverseCount = other.AdvanceCount
		return nil
	}
	return r.Register(other)
}

// Success finalizes r with node as the parsed result.
func (r *Result) Success(node ast.Node) *Result {
	r.Node = node
	return r
}

// Failure records err as r's error, but only overrides an error already
// present when no token has been consumed past the last decision point —
// the rule that keeps backtracking from discarding the deepest diagnostic.
func (r *Result) Failure(err *diag.Diagnostic) *Result {
	if r.Err == nil || r.LastRegisteredAdvanceCount == 0 {
		r.Err = err
	}
	return r
}
