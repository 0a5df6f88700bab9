package token

import (
	"golang.org/x/text/cases"
)

var keywords = map[string]Kind{
	"as":       KwAs,
	"define":   KwDefine,
	"from":     KwFrom,
	"generate": KwGenerate,
	"where":    KwWhere,
	"with":     KwWith,
}

var types = map[string]struct{}{
	"i8": {}, "i16": {}, "i32": {}, "i64": {},
	"u8": {}, "u16": {}, "u32": {}, "u64": {},
	"le_u16": {}, "le_u32": {}, "le_u64": {},
	"le_i16": {}, "le_i32": {}, "le_i64": {},
	"be_u16": {}, "be_u32": {}, "be_u64": {},
	"be_i16": {}, "be_i32": {}, "be_i64": {},
	"bytes":  {},
	"ref":    {},
	"string": {},
}

// ReservedWord names the built-in constant byte values.
type ReservedWord uint8

const (
	ReservedNone ReservedWord = iota
	ReservedNull              // NULL -> 0x00
	ReservedLF                // LF   -> 0x0A
	ReservedRF                // RF   -> 0x0D
)

var reserved = map[string]ReservedWord{
	"null": ReservedNull,
	"lf":   ReservedLF,
	"rf":   ReservedRF,
}

func (r ReservedWord) String() string {
	switch r {
	case ReservedNull:
		return "NULL"
	case ReservedLF:
		return "LF"
	case ReservedRF:
		return "RF"
	}
	return "?"
}

// Byte returns the byte value a reserved word stands for.
func (r ReservedWord) Byte() byte {
	switch r {
	case ReservedLF:
		return '\n'
	case ReservedRF:
		return '\r'
	default:
		return 0
	}
}

// cases.Caser keeps state between calls and must not be shared across goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}

// LookupKeyword folds the lexeme and returns its keyword kind.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywords[fold(s)]
	return k, ok
}

// IsTypeName reports whether s names a field type (case-insensitive).
func IsTypeName(s string) bool {
	_, ok := types[fold(s)]
	return ok
}

// LookupReserved folds s and returns the reserved word it names.
func LookupReserved(s string) (ReservedWord, bool) {
	r, ok := reserved[fold(s)]
	return r, ok
}

// Classify returns the kind an identifier-shaped lexeme lexes to.
// Types win over reserved words, which win over keywords.
func Classify(s string) Kind {
	f := fold(s)
	if _, ok := types[f]; ok {
		return Type
	}
	if _, ok := reserved[f]; ok {
		return Reserved
	}
	if k, ok := keywords[f]; ok {
		return k
	}
	return Ident
}
