package lexer

import (
	"bajzel/internal/token"
)

// scanOperatorOrPunct: "->" first, then single-byte operators and punctuation.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, bool) {
	start := lx.cursor.Mark()
	if lx.try2('-', '>') {
		return lx.emit(token.Arrow, start), true
	}

	var k token.Kind
	switch lx.cursor.Peek() {
	case '=':
		k = token.Assign
	case '+':
		k = token.Plus
	case '-':
		k = token.Minus
	case '*':
		k = token.Star
	case '(':
		k = token.LParen
	case ')':
		k = token.RParen
	case ',':
		k = token.Comma
	case '$':
		k = token.Dollar
	case ':':
		k = token.Colon
	default:
		return token.Token{}, false
	}
	lx.cursor.Bump()
	return lx.emit(k, start), true
}
