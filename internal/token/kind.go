package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is a single illegal code point.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	// Type is a field type name (u8, be_u16, string, ...).
	Type
	// TypeArray is "name[size]".
	TypeArray
	// Reserved is NULL, LF or RF.
	Reserved

	KwAs       // as
	KwDefine   // define
	KwFrom     // from
	KwGenerate // generate
	KwWhere    // where
	KwWith     // with

	IntLit    // 123, -7
	StringLit // "abc"
	BytesLit  // `de ad`

	Assign // =
	Plus   // +
	Minus  // -
	Star   // *
	Arrow  // ->

	LParen // (
	RParen // )
	Comma  // ,
	Dollar // $
	Colon  // :
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	Type:       "Type",
	TypeArray:  "TypeArray",
	Reserved:   "Reserved",
	KwAs:       "KwAs",
	KwDefine:   "KwDefine",
	KwFrom:     "KwFrom",
	KwGenerate: "KwGenerate",
	KwWhere:    "KwWhere",
	KwWith:     "KwWith",
	IntLit:     "IntLit",
	StringLit:  "StringLit",
	BytesLit:   "BytesLit",
	Assign:     "Assign",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Arrow:      "Arrow",
	LParen:     "LParen",
	RParen:     "RParen",
	Comma:      "Comma",
	Dollar:     "Dollar",
	Colon:      "Colon",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is one of the Kw* kinds.
func (k Kind) IsKeyword() bool {
	return k >= KwAs && k <= KwWith
}

// IsLiteral reports whether k can start a literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, StringLit, BytesLit, Reserved:
		return true
	default:
		return false
	}
}
