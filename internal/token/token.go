package token

import (
	"bajzel/internal/source"
)

// Token represents a single source token with its location, trivia and
// decoded payload.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia

	// Value is the string content of StringLit, the array-type name of
	// TypeArray, and the spelling of Ident/Type/Reserved.
	Value string
	Int   int64  // IntLit
	Bytes []byte // BytesLit
	Size  uint32 // TypeArray
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Reserved returns the reserved word of a Reserved token.
func (t Token) Reserved() ReservedWord {
	if t.Kind != Reserved {
		return ReservedNone
	}
	r, _ := LookupReserved(t.Text)
	return r
}
