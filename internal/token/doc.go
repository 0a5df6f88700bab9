// Package token defines lexical token kinds and trivia for the fuzl language.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Comments ("#" to end of line) and whitespace are leading Trivia and
//     never appear in the main token stream.
//   - Keywords, type names and reserved words are matched case-insensitively;
//     Text keeps the original spelling.
//   - A token sequence produced by the lexer ends with exactly one EOF.
package token
