package lexer

import (
	"bajzel/internal/diag"
	"bajzel/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда предупреждения игнорируем (но продолжаем лексить)
}

func (lx *Lexer) warnLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
