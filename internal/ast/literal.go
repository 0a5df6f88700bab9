package ast

import (
	"strconv"
	"strings"

	"bajzel/internal/source"
	"bajzel/internal/token"
)

type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitString
	LitBytes
	LitReserved
)

func (k LiteralKind) String() string {
	switch k {
	case LitInt:
		return "integer"
	case LitString:
		return "string"
	case LitBytes:
		return "bytes"
	case LitReserved:
		return "reserved"
	}
	return "?"
}

// Literal is a constant value written in the source.
type Literal struct {
	Kind     LiteralKind
	Int      int64
	Str      string
	Bytes    []byte
	Reserved token.ReservedWord
	Span     source.Span
}

func IntLiteral(v int64, sp source.Span) Literal {
	return Literal{Kind: LitInt, Int: v, Span: sp}
}

func StringLiteral(s string, sp source.Span) Literal {
	return Literal{Kind: LitString, Str: s, Span: sp}
}

func BytesLiteral(b []byte, sp source.Span) Literal {
	return Literal{Kind: LitBytes, Bytes: b, Span: sp}
}

func ReservedLiteral(r token.ReservedWord, sp source.Span) Literal {
	return Literal{Kind: LitReserved, Reserved: r, Span: sp}
}

// LiteralFromToken converts a literal token; ok is false for other kinds.
func LiteralFromToken(tok token.Token) (Literal, bool) {
	switch tok.Kind {
	case token.IntLit:
		return IntLiteral(tok.Int, tok.Span), true
	case token.StringLit:
		return StringLiteral(tok.Value, tok.Span), true
	case token.BytesLit:
		return BytesLiteral(tok.Bytes, tok.Span), true
	case token.Reserved:
		return ReservedLiteral(tok.Reserved(), tok.Span), true
	default:
		return Literal{}, false
	}
}

func (l Literal) String() string {
	switch l.Kind {
	case LitInt:
		return strconv.FormatInt(l.Int, 10)
	case LitString:
		return `"` + l.Str + `"`
	case LitBytes:
		var sb strings.Builder
		sb.WriteByte('`')
		for i, b := range l.Bytes {
			if i > 0 {
				sb.WriteByte(' ')
			}
			const hex = "0123456789abcdef"
			sb.WriteByte(hex[b>>4])
			sb.WriteByte(hex[b&0x0f])
		}
		sb.WriteByte('`')
		return sb.String()
	case LitReserved:
		return l.Reserved.String()
	}
	return "?"
}
