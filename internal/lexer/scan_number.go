package lexer

import (
	"strconv"

	"bajzel/internal/diag"
	"bajzel/internal/token"
)

// scanNumber: '-'? [0-9]+ that fits int64. A run that overflows does not
// match at all; the caller then lexes '-' as Minus and the digits as
// Invalid one by one until the remaining tail fits.
func (lx *Lexer) scanNumber() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Eat('-')
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.IntLit, start)

	v, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		lx.cursor.Reset(start)
		if tok.Span.End != lx.overflowEnd {
			lx.overflowEnd = tok.Span.End
			lx.warnLex(diag.LexBadNumber, tok.Span, "integer literal overflows i64")
		}
		return token.Token{}, false
	}
	tok.Int = v
	return tok, true
}
