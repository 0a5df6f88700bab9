package eval

import (
	"fmt"

	"bajzel/internal/ast"
	"bajzel/internal/token"

	"fortio.org/safecast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultOutMin = 0
	DefaultOutMax = 4096
)

// GenDefinition names the group to emit and bounds the output.
type GenDefinition struct {
	Name   string
	OutMin uint32
	OutMax uint32
	Term   []byte
}

func NewGenDefinition(name string) *GenDefinition {
	return &GenDefinition{Name: name, OutMin: DefaultOutMin, OutMax: DefaultOutMax}
}

// UpdateParam applies NAME = value. Names are case-insensitive.
func (g *GenDefinition) UpdateParam(name string, value ast.Expr) error {
	switch cases.Upper(language.Und).String(name) {
	case "OUT_MIN":
		v, err := outLen("OUT_MIN", value)
		if err != nil {
			return err
		}
		g.OutMin = v
		return nil
	case "OUT_MAX":
		v, err := outLen("OUT_MAX", value)
		if err != nil {
			return err
		}
		g.OutMax = v
		return nil
	case "TERM":
		return g.appendTerm(value)
	}
	return syntaxErr("unsupported generator parameter (%s)", name)
}

func outLen(name string, value ast.Expr) (uint32, error) {
	lit, err := scalar(name, value)
	if err != nil {
		return 0, err
	}
	if lit.Kind != ast.LitInt {
		return 0, syntaxErr("%s: expected an integer", name)
	}
	v, err := safecast.Conv[uint32](lit.Int)
	if err != nil {
		return 0, syntaxErr("%s: %d does not fit into u32", name, lit.Int)
	}
	return v, nil
}

// appendTerm adds to the terminator; repeated TERM assignments concatenate.
func (g *GenDefinition) appendTerm(value ast.Expr) error {
	lit, err := scalar("TERM", value)
	if err != nil {
		return err
	}
	switch lit.Kind {
	case ast.LitInt:
		if lit.Int < 0 || lit.Int > 255 {
			return syntaxErr("TERM: Decimal ASCII value expected, got %d", lit.Int)
		}
		g.Term = append(g.Term, byte(lit.Int))
	case ast.LitString:
		g.Term = append(g.Term, lit.Str...)
	case ast.LitBytes:
		g.Term = append(g.Term, lit.Bytes...)
	case ast.LitReserved:
		if lit.Reserved == token.ReservedNone {
			return syntaxErr("TERM: unsupported reserved literal")
		}
		g.Term = append(g.Term, lit.Reserved.Byte())
	default:
		return syntaxErr("TERM: expected a single literal")
	}
	return nil
}

func (g *GenDefinition) String() string {
	return fmt.Sprintf("GENERATE %s (OUT_MIN=%d, OUT_MAX=%d, TERM=% x)", g.Name, g.OutMin, g.OutMax, g.Term)
}
