package parser

import (
	"bajzel/internal/ast"
	"bajzel/internal/source"
	"bajzel/internal/token"
)

// statement := group_header | gen_header | field_decl | where_header
//
//	| field_update | param_assign
func statement() fn[[]ast.Stmt] {
	return alt(
		single(groupHeader),
		single(generatorHeader),
		fieldDecl,
		single(whereHeader),
		fieldUpdate,
		single(paramAssign),
	)
}

func single[T ast.Stmt](p fn[T]) fn[[]ast.Stmt] {
	return mapTo(p, func(v T) []ast.Stmt { return []ast.Stmt{v} })
}

// DEFINE ident
func groupHeader(s Stream) (*ast.StartGroupDefinition, Stream, bool) {
	kw, rest, ok := tag(token.KwDefine)(s)
	if !ok {
		return nil, s, false
	}
	name, rest, ok := tag(token.Ident)(rest)
	if !ok {
		return nil, s, false
	}
	return &ast.StartGroupDefinition{Name: name.Text, Sp: kw.Span.Cover(name.Span)}, rest, true
}

// GENERATE ident [WITH]
func generatorHeader(s Stream) (*ast.StartGeneratorDefinition, Stream, bool) {
	kw, rest, ok := tag(token.KwGenerate)(s)
	if !ok {
		return nil, s, false
	}
	name, rest, ok := tag(token.Ident)(rest)
	if !ok {
		return nil, s, false
	}
	sp := kw.Span.Cover(name.Span)
	with, rest, _ := opt(tag(token.KwWith))(rest)
	if with.found {
		sp = sp.Cover(with.val.Span)
	}
	return &ast.StartGeneratorDefinition{Name: name.Text, Sp: sp}, rest, true
}

// WHERE
func whereHeader(s Stream) (*ast.StartFieldsSection, Stream, bool) {
	kw, rest, ok := tag(token.KwWhere)(s)
	if !ok {
		return nil, s, false
	}
	return &ast.StartFieldsSection{Sp: kw.Span}, rest, true
}

// field_decl: the variable form is tried first, the constant form is the fallback.
func fieldDecl(s Stream) ([]ast.Stmt, Stream, bool) {
	return alt(variableField, single(constField))(s)
}

// type [AS ident] ['->' clauses]; clauses require the alias.
func variableField(s Stream) ([]ast.Stmt, Stream, bool) {
	typ, rest, ok := tag(token.Type)(s)
	if !ok {
		return nil, s, false
	}
	alias, rest, _ := opt(preceded(tag(token.KwAs), tag(token.Ident)))(rest)

	decl := &ast.DefineVariableField{Type: typ.Text, Sp: typ.Span}
	if alias.found {
		decl.Alias = alias.val.Text
		decl.Sp = decl.Sp.Cover(alias.val.Span)
	}
	out := []ast.Stmt{decl}

	if rest.Peek().Kind != token.Arrow {
		return out, rest, true
	}
	if !alias.found {
		return nil, s, false
	}
	arrow := rest.Peek()
	updates, rest, ok := clauses(rest.Advance())
	if !ok {
		return nil, s, false
	}
	out = append(out, &ast.MakeCurrentField{Name: decl.Alias, Sp: alias.val.Span.Cover(arrow.Span)})
	out = append(out, updates...)
	return out, rest, true
}

// literal [AS ident]
func constField(s Stream) (*ast.DefineConstField, Stream, bool) {
	lit, rest, ok := literal(s)
	if !ok {
		return nil, s, false
	}
	decl := &ast.DefineConstField{Value: lit, Sp: lit.Span}
	alias, rest, _ := opt(preceded(tag(token.KwAs), tag(token.Ident)))(rest)
	if alias.found {
		decl.Alias = alias.val.Text
		decl.Sp = decl.Sp.Cover(alias.val.Span)
	}
	return decl, rest, true
}

// ident '->' clauses
func fieldUpdate(s Stream) ([]ast.Stmt, Stream, bool) {
	name, rest, ok := tag(token.Ident)(s)
	if !ok {
		return nil, s, false
	}
	arrow, rest, ok := tag(token.Arrow)(rest)
	if !ok {
		return nil, s, false
	}
	updates, rest, ok := clauses(rest)
	if !ok {
		return nil, s, false
	}
	out := make([]ast.Stmt, 0, len(updates)+1)
	out = append(out, &ast.MakeCurrentField{Name: name.Text, Sp: name.Span.Cover(arrow.Span)})
	return append(out, updates...), rest, true
}

// ident '=' expr
func paramAssign(s Stream) (*ast.UpdateParam, Stream, bool) {
	name, rest, ok := tag(token.Ident)(s)
	if !ok {
		return nil, s, false
	}
	if _, rest, ok = tag(token.Assign)(rest); !ok {
		return nil, s, false
	}
	value, rest, ok := expr(rest)
	if !ok {
		return nil, s, false
	}
	return &ast.UpdateParam{Name: name.Text, Value: value, Sp: name.Span.Cover(value.Span())}, rest, true
}

// clauses := clause ([','] clause)*
func clauses(s Stream) ([]ast.Stmt, Stream, bool) {
	first, rest, ok := clause(s)
	if !ok {
		return nil, s, false
	}
	next := alt(preceded(tag(token.Comma), clause), clause)
	more, rest, _ := many0(next)(rest)

	out := make([]ast.Stmt, 0, len(more)+1)
	out = append(out, first)
	for _, u := range more {
		out = append(out, u)
	}
	return out, rest, true
}

// clause := ident '(' expr+ ')'
func clause(s Stream) (*ast.UpdateField, Stream, bool) {
	name, rest, ok := tag(token.Ident)(s)
	if !ok {
		return nil, s, false
	}
	if _, rest, ok = tag(token.LParen)(rest); !ok {
		return nil, s, false
	}
	args, rest, ok := many1(expr)(rest)
	if !ok {
		return nil, s, false
	}
	closing, rest, ok := tag(token.RParen)(rest)
	if !ok {
		return nil, s, false
	}

	var value ast.Expr
	if len(args) == 1 {
		value = args[0]
	} else {
		value = ast.Group(args...)
	}
	return &ast.UpdateField{Attr: name.Text, Value: value, Sp: name.Span.Cover(closing.Span)}, rest, true
}

// expr := literal
func expr(s Stream) (ast.Expr, Stream, bool) {
	lit, rest, ok := literal(s)
	if !ok {
		return nil, s, false
	}
	return ast.Lit(lit), rest, true
}

func literal(s Stream) (ast.Literal, Stream, bool) {
	lit, ok := ast.LiteralFromToken(s.Peek())
	if !ok {
		return ast.Literal{}, s, false
	}
	return lit, s.Advance(), true
}

// eofSpan is the zero-width span Run is attached to.
func eofSpan(tok token.Token) source.Span {
	sp := tok.Span
	sp.Start = sp.End
	return sp
}
