// Package diag defines the diagnostic model shared by every stage of the
// fuzl pipeline.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX/SYN/SEM/GEN/IO prefixes), a short Message, the Primary
// source.Span and optional Notes pointing at related spans.
//
// Stages emit through a Reporter so they do not depend on storage. The
// lexer reports warnings for illegal characters; the driver converts parser,
// evaluator and generator errors into diagnostics with the same codes so the
// CLI renders every failure uniformly. BagReporter collects into a Bag,
// which supports sorting, deduplication and a size limit.
//
// Rendering lives in internal/diagfmt.
package diag
