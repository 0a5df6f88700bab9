package lexer

import (
	"bytes"
	"strconv"

	"bajzel/internal/token"
)

// scanString: '"' ≥1 code point '"'. Escapes are not supported and
// newlines are allowed. "" and an unterminated quote do not match.
func (lx *Lexer) scanString() (token.Token, bool) {
	start := lx.cursor.Mark()
	rest := lx.cursor.Rest()
	end := bytes.IndexByte(rest[1:], '"')
	if end <= 0 {
		return token.Token{}, false
	}
	content := string(rest[1 : 1+end])

	lx.cursor.Advance(uint32(end) + 2) // #nosec G115 -- bounded by file length
	tok := lx.emit(token.StringLit, start)
	tok.Value = content
	return tok, true
}

// scanBytes: '`' hex (' ' hex)* '`', each chunk one or two hex digits.
func (lx *Lexer) scanBytes() (token.Token, bool) {
	start := lx.cursor.Mark()
	rest := lx.cursor.Rest()
	end := bytes.IndexByte(rest[1:], '`')
	if end < 0 {
		return token.Token{}, false
	}

	chunks := bytes.Split(rest[1:1+end], []byte{' '})
	out := make([]byte, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk) == 0 || len(chunk) > 2 || !isHex(chunk[0]) || !isHex(chunk[len(chunk)-1]) {
			return token.Token{}, false
		}
		v, err := strconv.ParseUint(string(chunk), 16, 8)
		if err != nil {
			return token.Token{}, false
		}
		out = append(out, byte(v))
	}

	lx.cursor.Advance(uint32(end) + 2) // #nosec G115 -- bounded by file length
	tok := lx.emit(token.BytesLit, start)
	tok.Bytes = out
	return tok, true
}
