package lexer

import (
	"fmt"

	"bajzel/internal/diag"
	"bajzel/internal/source"
	"bajzel/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia

	// end of the last digit run that overflowed int64; its digits become
	// Invalid tokens without a per-digit warning
	overflowEnd uint32
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize lexes the whole file. The result always ends with exactly one EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	var tok token.Token
	if lx.cursor.EOF() {
		tok = token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	} else {
		tok = lx.scanToken()
	}

	// trailing comments end up on EOF so nothing from the source is dropped
	if len(lx.hold) > 0 {
		tok.Leading = lx.hold
		lx.hold = nil
	}
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// scanToken tries every rule in priority order; the first match wins.
func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()

	if ch == '"' {
		if tok, ok := lx.scanString(); ok {
			return tok
		}
	}
	if ch == '`' {
		if tok, ok := lx.scanBytes(); ok {
			return tok
		}
		return lx.scanIllegal(diag.LexBadBytes, "malformed byte sequence literal")
	}
	if isLetter(ch) {
		if tok, ok := lx.scanTypeArray(); ok {
			return tok
		}
		return lx.scanIdentOrKeyword()
	}
	if isDec(ch) || (ch == '-' && isDec(lx.cursor.PeekAt(1))) {
		if tok, ok := lx.scanNumber(); ok {
			return tok
		}
	}
	if tok, ok := lx.scanOperatorOrPunct(); ok {
		return tok
	}
	return lx.scanIllegal(diag.LexUnknownChar, "")
}

// scanIllegal consumes one code point as an Invalid token.
func (lx *Lexer) scanIllegal(code diag.Code, msg string) token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	if tok.Span.End <= lx.overflowEnd && isDec(tok.Text[0]) {
		return tok
	}
	if msg == "" {
		msg = fmt.Sprintf("illegal character %q", tok.Text)
	}
	lx.warnLex(code, tok.Span, msg)
	return tok
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
