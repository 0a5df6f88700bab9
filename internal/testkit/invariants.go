// Package testkit holds pipeline invariant checks shared by tests and fuzzers.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"bajzel/internal/ast"
	"bajzel/internal/eval"
	"bajzel/internal/source"
	"bajzel/internal/token"
)

// CheckTokenInvariants verifies a lexer result against its file:
// 1) exactly one EOF, at the end, zero-width at len(content)
// 2) token and trivia spans are in bounds, ordered and non-overlapping
// 3) every token's Text is the source slice under its span
func CheckTokenInvariants(toks []token.Token, f *source.File) error {
	if f == nil {
		return fmt.Errorf("nil file")
	}
	if len(toks) == 0 {
		return fmt.Errorf("no tokens")
	}
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var pos uint32
	check := func(what string, sp source.Span) error {
		if sp.File != f.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, f.ID)
		}
		if sp.End < sp.Start || sp.End > end {
			return fmt.Errorf("%s span %v out of bounds (len %d)", what, sp, end)
		}
		if sp.Start < pos {
			return fmt.Errorf("%s span %v overlaps previous end %d", what, sp, pos)
		}
		pos = sp.End
		return nil
	}

	for i, tok := range toks {
		for _, tr := range tok.Leading {
			if err := check("trivia", tr.Span); err != nil {
				return fmt.Errorf("token %d: %w", i, err)
			}
		}
		if err := check(tok.Kind.String(), tok.Span); err != nil {
			return fmt.Errorf("token %d: %w", i, err)
		}
		if tok.Kind == token.EOF {
			if i != len(toks)-1 {
				return fmt.Errorf("EOF at %d of %d tokens", i, len(toks))
			}
			if !tok.Span.Empty() || tok.Span.End != end {
				return fmt.Errorf("EOF span %v, want empty at %d", tok.Span, end)
			}
			continue
		}
		if tok.Span.Empty() {
			return fmt.Errorf("token %d (%s) has an empty span", i, tok.Kind)
		}
		if got := string(f.Content[tok.Span.Start:tok.Span.End]); got != tok.Text {
			return fmt.Errorf("token %d text %q, source %q", i, tok.Text, got)
		}
	}
	if toks[len(toks)-1].Kind != token.EOF {
		return fmt.Errorf("last token is %s, want EOF", toks[len(toks)-1].Kind)
	}
	return nil
}

// CheckProgramInvariants verifies a parser result: exactly one Run, last,
// zero-width; all statement spans inside the file.
func CheckProgramInvariants(prog *ast.Program, f *source.File) error {
	if prog == nil || f == nil {
		return fmt.Errorf("nil program or file")
	}
	if prog.Len() == 0 {
		return fmt.Errorf("empty program")
	}
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	for i, st := range prog.Stmts {
		sp := st.Span()
		if sp.File != f.ID || sp.End < sp.Start || sp.End > end {
			return fmt.Errorf("stmt %d (%s) span %v out of bounds", i, st.Kind(), sp)
		}
		if _, ok := st.(*ast.Run); ok {
			if i != prog.Len()-1 {
				return fmt.Errorf("Run at %d of %d statements", i, prog.Len())
			}
			if !sp.Empty() {
				return fmt.Errorf("Run span %v is not empty", sp)
			}
		}
	}
	if _, ok := prog.Stmts[prog.Len()-1].(*ast.Run); !ok {
		return fmt.Errorf("program does not end with Run")
	}
	return nil
}

// CheckOutputInvariants verifies a generated message against env:
// the length never exceeds OUT_MAX.
func CheckOutputInvariants(out []byte, env *eval.ProgramEnv) error {
	gen, err := env.Generator()
	if err != nil {
		return err
	}
	if uint64(len(out)) > uint64(gen.OutMax) {
		return fmt.Errorf("output length %d exceeds OUT_MAX %d", len(out), gen.OutMax)
	}
	return nil
}
