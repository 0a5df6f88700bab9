package parser

import (
	"fmt"

	"bajzel/internal/ast"
	"bajzel/internal/diag"
	"bajzel/internal/token"
)

type Options struct {
	Reporter diag.Reporter // может быть nil
}

// Error is a hard parse failure: no statement form matches at Tok.
type Error struct {
	Tok  token.Token
	Next token.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected %s %q (next: %s %q)",
		e.Tok.Kind, e.Tok.Text, e.Next.Kind, e.Next.Text)
}

// ParseTokens parses a whole token sequence into a Program.
//
//	program := statement* EOF
//
// A Run statement spanning EOF is appended exactly once.
func ParseTokens(toks []token.Token, opts Options) (*ast.Program, error) {
	s := NewStream(toks)

	groups, rest, _ := many0(statement())(s)
	eof, _, ok := tag(token.EOF)(rest)
	if !ok {
		err := &Error{Tok: rest.Peek(), Next: rest.PeekNext()}
		if opts.Reporter != nil {
			msg := fmt.Sprintf("unexpected %s %q", err.Tok.Kind, err.Tok.Text)
			if err.Tok.Kind == token.Invalid {
				msg = fmt.Sprintf("illegal character %q", err.Tok.Text)
			}
			b := diag.ReportError(opts.Reporter, diag.SynUnexpectedToken, err.Tok.Span, msg)
			if err.Next.Kind != token.EOF {
				b.WithNote(err.Next.Span, fmt.Sprintf("followed by %s %q", err.Next.Kind, err.Next.Text))
			}
			b.Emit()
		}
		return nil, err
	}

	n := 1
	for _, g := range groups {
		n += len(g)
	}
	prog := &ast.Program{Stmts: make([]ast.Stmt, 0, n)}
	for _, g := range groups {
		prog.Stmts = append(prog.Stmts, g...)
	}
	prog.Stmts = append(prog.Stmts, &ast.Run{Sp: eofSpan(eof)})
	return prog, nil
}
