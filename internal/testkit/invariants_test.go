package testkit_test

import (
	"testing"

	"bajzel/internal/eval"
	"bajzel/internal/generate"
	"bajzel/internal/lexer"
	"bajzel/internal/parser"
	"bajzel/internal/source"
	"bajzel/internal/testkit"
	"bajzel/internal/token"
)

func TestInvariantsHoldForPipeline(t *testing.T) {
	srcs := []string{
		"",
		"# only a comment",
		"DEFINE m \"a\" u8 AS x -> RANGE(1 2), FORMAT(\"hex\")\nGENERATE m WITH TERM = LF # tail",
		"DEFINE m `de ad` @ 99999999999999999999 u8[4]",
	}
	for _, src := range srcs {
		fs := source.NewFileSet()
		f := fs.Get(fs.AddVirtual("k.fuzl", []byte(src)))
		toks := lexer.Tokenize(f, lexer.Options{})
		if err := testkit.CheckTokenInvariants(toks, f); err != nil {
			t.Errorf("%q: %v", src, err)
			continue
		}
		prog, err := parser.ParseTokens(toks, parser.Options{})
		if err != nil {
			continue
		}
		if err := testkit.CheckProgramInvariants(prog, f); err != nil {
			t.Errorf("%q: %v", src, err)
		}
		env, err := eval.Evaluate(prog)
		if err != nil {
			continue
		}
		out, err := generate.New(generate.NewRand(1)).Generate(env)
		if err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckOutputInvariants(out, env); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestTokenInvariantViolations(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("v.fuzl", []byte("DEFINE m")))
	good := lexer.Tokenize(f, lexer.Options{})

	noEOF := good[:len(good)-1]
	if testkit.CheckTokenInvariants(noEOF, f) == nil {
		t.Error("missing EOF accepted")
	}

	badText := append([]token.Token(nil), good...)
	badText[0].Text = "GENERATE"
	if testkit.CheckTokenInvariants(badText, f) == nil {
		t.Error("text mismatch accepted")
	}

	swapped := append([]token.Token(nil), good...)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	if testkit.CheckTokenInvariants(swapped, f) == nil {
		t.Error("out of order spans accepted")
	}
}
