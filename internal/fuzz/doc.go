// Package fuzztests houses Go fuzz harnesses for the fuzl pipeline
// (source -> lexer -> parser -> eval -> generate). They guard against
// panics, broken token/statement invariants and output overflowing OUT_MAX.
//
// Назначение: прогонять произвольные байты через весь конвейер.
//
// Не делает: запись файлов, запуск CLI.
package fuzztests
