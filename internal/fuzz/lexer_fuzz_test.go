package fuzztests

import (
	"testing"

	"bajzel/internal/diag"
	"bajzel/internal/lexer"
	"bajzel/internal/source"
	"bajzel/internal/testkit"
	"bajzel/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.fuzl", clampInput(input)))

		bag := diag.NewBag(64)
		toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err := testkit.CheckTokenInvariants(toks, file); err != nil {
			t.Fatalf("token invariants: %v", err)
		}
		for _, tok := range toks {
			if tok.Kind == token.Invalid && len(tok.Text) == 0 {
				t.Fatalf("empty Invalid token at %v", tok.Span)
			}
		}
	})
}
