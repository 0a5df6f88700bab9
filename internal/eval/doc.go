// Package eval folds a parsed Program into a ProgramEnv.
//
// Evaluation is a finite-state machine: every statement is a transition
// out of the current State, and statements that are not valid in that
// state abort the fold. The resulting env holds the named field groups in
// declaration order and the single generator definition, and is read-only
// afterwards.
package eval
