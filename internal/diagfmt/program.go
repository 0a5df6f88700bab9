package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"bajzel/internal/ast"
	"bajzel/internal/source"
)

// StmtOutput is one statement in the parse dump.
type StmtOutput struct {
	Kind string       `json:"kind"`
	Text string       `json:"text"`
	Span *source.Span `json:"span,omitempty"`
}

// FormatProgramPretty prints one canonical statement per line, prefixed by
// its position when fs is not nil.
func FormatProgramPretty(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	for i, st := range prog.Stmts {
		pos := ""
		if fs != nil && int(st.Span().File) < fs.Len() {
			start, _ := fs.Resolve(st.Span())
			pos = fmt.Sprintf("%d:%d", start.Line, start.Col)
		}
		if _, err := fmt.Fprintf(w, "%3d: %-8s %-22s %s\n", i+1, pos, st.Kind(), st); err != nil {
			return err
		}
	}
	return nil
}

// FormatProgramJSON dumps the statement stream.
func FormatProgramJSON(w io.Writer, prog *ast.Program) error {
	out := make([]StmtOutput, 0, prog.Len())
	for _, st := range prog.Stmts {
		sp := st.Span()
		out = append(out, StmtOutput{Kind: st.Kind().String(), Text: st.String(), Span: &sp})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
