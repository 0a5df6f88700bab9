package lexer

import (
	"strconv"

	"bajzel/internal/diag"
	"bajzel/internal/token"
)

func (lx *Lexer) bumpIdent() {
	if !isLetter(lx.cursor.Peek()) {
		return
	}
	lx.cursor.Bump()
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// scanIdentOrKeyword: [A-Za-z][A-Za-z0-9_]* then a case-folded lookup
// into types, reserved words and keywords.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.bumpIdent()
	tok := lx.emit(token.Ident, start)
	tok.Kind = token.Classify(tok.Text)
	tok.Value = tok.Text
	return tok
}

// scanTypeArray: ident '[' '-'? digits ']'. The sign is dropped.
func (lx *Lexer) scanTypeArray() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.bumpIdent()
	nameEnd := lx.cursor.Off

	if !lx.cursor.Eat('[') {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	negative := lx.cursor.Eat('-')
	digitsStart := lx.cursor.Off
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	digits := string(lx.file.Content[digitsStart:lx.cursor.Off])
	size, err := strconv.ParseUint(digits, 10, 32)
	if digits == "" || err != nil || !lx.cursor.Eat(']') {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}

	tok := lx.emit(token.TypeArray, start)
	tok.Value = string(lx.file.Content[uint32(start):nameEnd])
	tok.Size = uint32(size)
	if negative {
		lx.warnLex(diag.LexBadNumber, tok.Span, "negative array size, sign ignored")
	}
	return tok, true
}
