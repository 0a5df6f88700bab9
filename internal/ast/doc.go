// Package ast holds the flat statement stream produced by the parser.
//
// A fuzl program is not a tree: the parser emits a sequence of Stmt
// values that the evaluator replays as state-machine transitions. Each
// statement keeps the source span it came from and prints in a canonical
// one-line form, so Program.String can be diffed in tests.
package ast
