package lexer_test

import (
	"bytes"
	"strings"
	"testing"

	"bajzel/internal/diag"
	"bajzel/internal/lexer"
	"bajzel/internal/source"
	"bajzel/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.New(sev, code, primary, msg))
}

func lex(t *testing.T, src string) ([]token.Token, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.fuzl", []byte(src)))
	rep := &testReporter{}
	return lexer.Tokenize(f, lexer.Options{Reporter: rep}), rep
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func kindsString(ks []token.Kind) string {
	parts := make([]string, len(ks))
	for i, k := range ks {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"only comment", "# nothing here", []token.Kind{token.EOF}},
		{"empty comment", "#\nDEFINE", []token.Kind{token.KwDefine, token.EOF}},
		{"define", "DEFINE tcp", []token.Kind{token.KwDefine, token.Ident, token.EOF}},
		{"generate with", "GENERATE msg WITH", []token.Kind{token.KwGenerate, token.Ident, token.KwWith, token.EOF}},
		{"typed field", "u8 AS a -> RANGE(1 10)", []token.Kind{
			token.Type, token.KwAs, token.Ident, token.Arrow, token.Ident,
			token.LParen, token.IntLit, token.IntLit, token.RParen, token.EOF,
		}},
		{"param", "OUT_MAX = 100", []token.Kind{token.Ident, token.Assign, token.IntLit, token.EOF}},
		{"reserved", "TERM = LF", []token.Kind{token.Ident, token.Assign, token.Reserved, token.EOF}},
		{"punct", "( ) , $ : + * =", []token.Kind{
			token.LParen, token.RParen, token.Comma, token.Dollar, token.Colon,
			token.Plus, token.Star, token.Assign, token.EOF,
		}},
		{"double minus", "--1", []token.Kind{token.Minus, token.IntLit, token.EOF}},
		{"minus before ident", "-x", []token.Kind{token.Minus, token.Ident, token.EOF}},
		{"array type", "u8[4]", []token.Kind{token.TypeArray, token.EOF}},
		{"string and bytes", "\"abc\" `de ad`", []token.Kind{token.StringLit, token.BytesLit, token.EOF}},
		{"empty string is illegal", "\"\"", []token.Kind{token.Invalid, token.Invalid, token.EOF}},
		{"illegal", "@", []token.Kind{token.Invalid, token.EOF}},
		{"multibyte illegal", "é", []token.Kind{token.Invalid, token.EOF}},
		{"underscore start", "_a", []token.Kind{token.Invalid, token.Ident, token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, _ := lex(t, tt.src)
			if got := kinds(toks); kindsString(got) != kindsString(tt.want) {
				t.Fatalf("kinds = %s\nwant    %s", kindsString(got), kindsString(tt.want))
			}
		})
	}
}

func TestPayloads(t *testing.T) {
	toks, _ := lex(t, "-42 \"a b\nc\" `0 ff 1A` be_u16[-3] Null")

	if toks[0].Kind != token.IntLit || toks[0].Int != -42 {
		t.Errorf("int: %+v", toks[0])
	}
	if toks[1].Value != "a b\nc" {
		t.Errorf("string value = %q", toks[1].Value)
	}
	if !bytes.Equal(toks[2].Bytes, []byte{0x00, 0xff, 0x1a}) {
		t.Errorf("bytes = % x", toks[2].Bytes)
	}
	if toks[3].Kind != token.TypeArray || toks[3].Value != "be_u16" || toks[3].Size != 3 {
		t.Errorf("array type: %+v", toks[3])
	}
	if toks[4].Reserved() != token.ReservedNull || toks[4].Text != "Null" {
		t.Errorf("reserved: %+v", toks[4])
	}
}

func TestDocumentedExamples(t *testing.T) {
	toks, _ := lex(t, "--1")
	if kindsString(kinds(toks)) != kindsString([]token.Kind{token.Minus, token.IntLit, token.EOF}) || toks[1].Int != -1 {
		t.Errorf("--1 = %+v", toks)
	}

	toks, _ = lex(t, "DEFINE AS WITH WHERE")
	want := []token.Kind{token.KwDefine, token.KwAs, token.KwWith, token.KwWhere, token.EOF}
	if got := kinds(toks); kindsString(got) != kindsString(want) {
		t.Errorf("keywords = %s, want %s", kindsString(got), kindsString(want))
	}

	toks, _ = lex(t, "`de ad c0 0f fe`")
	if toks[0].Kind != token.BytesLit || !bytes.Equal(toks[0].Bytes, []byte{0xde, 0xad, 0xc0, 0x0f, 0xfe}) {
		t.Errorf("bytes = %v % x", toks[0].Kind, toks[0].Bytes)
	}
	if toks[1].Kind != token.EOF {
		t.Errorf("trailing token %v", toks[1].Kind)
	}
}

func TestSpansMatchText(t *testing.T) {
	src := "DEFINE x # comment\n  u8 AS a -> LEN(3)\nGENERATE x"
	toks, _ := lex(t, src)
	for _, tok := range toks {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("%v: span text %q != Text %q", tok.Kind, got, tok.Text)
		}
	}
}

func TestCommentsAreLeadingTrivia(t *testing.T) {
	toks, _ := lex(t, "# header\nDEFINE x # trailing")
	if toks[0].Kind != token.KwDefine {
		t.Fatalf("first token = %v", toks[0].Kind)
	}
	var comments []string
	for _, tr := range toks[0].Leading {
		if tr.Kind == token.TriviaComment {
			comments = append(comments, tr.Text)
		}
	}
	if len(comments) != 1 || comments[0] != "# header" {
		t.Errorf("leading comments = %q", comments)
	}
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF || len(eof.Leading) == 0 || eof.Leading[len(eof.Leading)-1].Text != "# trailing" {
		t.Errorf("trailing comment not attached to EOF: %+v", eof.Leading)
	}
}

func TestIntegerOverflowTail(t *testing.T) {
	// 20 nines overflow i64; the two leading digits turn into Invalid
	// until the 18-digit tail fits.
	toks, rep := lex(t, "-99999999999999999999")
	want := []token.Kind{token.Minus, token.Invalid, token.Invalid, token.IntLit, token.EOF}
	if got := kinds(toks); kindsString(got) != kindsString(want) {
		t.Fatalf("kinds = %s, want %s", kindsString(got), kindsString(want))
	}
	if toks[3].Int != 999999999999999999 {
		t.Errorf("tail = %d", toks[3].Int)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
		t.Errorf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestMalformedBytes(t *testing.T) {
	toks, rep := lex(t, "`zz`")
	if toks[0].Kind != token.Invalid || toks[0].Text != "`" {
		t.Fatalf("first token = %+v", toks[0])
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "zz" {
		t.Errorf("interior = %+v", toks[1])
	}
	if len(rep.diagnostics) == 0 || rep.diagnostics[0].Code != diag.LexBadBytes {
		t.Errorf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestNegativeArraySizeWarns(t *testing.T) {
	_, rep := lex(t, "u8[-2]")
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Severity != diag.SevWarning {
		t.Fatalf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("p.fuzl", []byte("WHERE"))), lexer.Options{})
	if lx.Peek().Kind != token.KwWhere || lx.Next().Kind != token.KwWhere {
		t.Fatal("Peek consumed the token")
	}
	for range 3 {
		if lx.Next().Kind != token.EOF {
			t.Fatal("Next after EOF must keep returning EOF")
		}
	}
}
