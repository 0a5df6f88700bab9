package token

import (
	"testing"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"define":   KwDefine,
		"DEFINE":   KwDefine,
		"Generate": KwGenerate,
		"as":       KwAs,
		"WITH":     KwWith,
		"where":    KwWhere,
		"From":     KwFrom,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}
	for _, s := range []string{"defines", "u8", "null", "x"} {
		if _, ok := LookupKeyword(s); ok {
			t.Errorf("LookupKeyword(%q) unexpectedly ok", s)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"u8", Type},
		{"U8", Type},
		{"be_u16", Type},
		{"LE_I64", Type},
		{"string", Type},
		{"bytes", Type},
		{"ref", Type},
		{"NULL", Reserved},
		{"lf", Reserved},
		{"Rf", Reserved},
		{"define", KwDefine},
		{"tcp", Ident},
		{"u128", Ident},
	}
	for _, tt := range tests {
		if got := Classify(tt.in); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestReservedBytes(t *testing.T) {
	cases := map[string]byte{"NULL": 0x00, "lf": 0x0A, "RF": 0x0D}
	for s, want := range cases {
		r, ok := LookupReserved(s)
		if !ok {
			t.Fatalf("LookupReserved(%q) failed", s)
		}
		if r.Byte() != want {
			t.Errorf("%s.Byte() = %#x, want %#x", s, r.Byte(), want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KwDefine.String() != "KwDefine" || EOF.String() != "EOF" || Colon.String() != "Colon" {
		t.Error("unexpected kind names")
	}
	if Kind(250).String() != "Kind(?)" {
		t.Error("out-of-range kind should print placeholder")
	}
}
