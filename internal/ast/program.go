package ast

import "strings"

// Program is the parser output: statements in source order, always
// terminated by exactly one Run.
type Program struct {
	Stmts []Stmt
}

func (p *Program) Len() int { return len(p.Stmts) }

// String prints one canonical statement per line.
func (p *Program) String() string {
	var sb strings.Builder
	for i, s := range p.Stmts {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}
