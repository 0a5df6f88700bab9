package ast

import (
	"strings"

	"bajzel/internal/source"
)

// Expr is either a single literal or a group of expressions.
type Expr interface {
	Span() source.Span
	String() string
	exprNode()
}

type LiteralExpr struct {
	Lit Literal
}

type GroupExpr struct {
	Items []Expr
	Sp    source.Span
}

func (e *LiteralExpr) Span() source.Span { return e.Lit.Span }
func (e *LiteralExpr) String() string    { return e.Lit.String() }
func (*LiteralExpr) exprNode()           {}

func (e *GroupExpr) Span() source.Span { return e.Sp }

func (e *GroupExpr) String() string {
	return "(" + e.inner() + ")"
}

func (e *GroupExpr) inner() string {
	parts := make([]string, len(e.Items))
	for i, it := range e.Items {
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}

func (*GroupExpr) exprNode() {}

// Lit builds a LiteralExpr.
func Lit(l Literal) *LiteralExpr { return &LiteralExpr{Lit: l} }

// Group builds a GroupExpr spanning its items.
func Group(items ...Expr) *GroupExpr {
	g := &GroupExpr{Items: items}
	for i, it := range items {
		if i == 0 {
			g.Sp = it.Span()
			continue
		}
		g.Sp = g.Sp.Cover(it.Span())
	}
	return g
}

// argString prints an attribute argument list without the outer parens
// of a group, so RANGE(1 10) round-trips.
func argString(e Expr) string {
	if g, ok := e.(*GroupExpr); ok {
		return g.inner()
	}
	return e.String()
}
