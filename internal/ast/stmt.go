package ast

import (
	"bajzel/internal/source"
)

type StmtKind uint8

const (
	StmtStartGroupDefinition StmtKind = iota
	StmtStartGeneratorDefinition
	StmtDefineVariableField
	StmtDefineConstField
	StmtMakeCurrentField
	StmtUpdateField
	StmtStartFieldsSection
	StmtUpdateParam
	StmtRun
)

var stmtKindNames = [...]string{
	StmtStartGroupDefinition:     "StartGroupDefinition",
	StmtStartGeneratorDefinition: "StartGeneratorDefinition",
	StmtDefineVariableField:      "DefineVariableField",
	StmtDefineConstField:         "DefineConstField",
	StmtMakeCurrentField:         "MakeCurrentField",
	StmtUpdateField:              "UpdateField",
	StmtStartFieldsSection:       "StartFieldsSection",
	StmtUpdateParam:              "UpdateParam",
	StmtRun:                      "Run",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt(?)"
}

// Stmt is one of the pointer types below.
type Stmt interface {
	Kind() StmtKind
	Span() source.Span
	String() string
}

// StartGroupDefinition opens "DEFINE name".
type StartGroupDefinition struct {
	Name string
	Sp   source.Span
}

// StartGeneratorDefinition opens "GENERATE name".
type StartGeneratorDefinition struct {
	Name string
	Sp   source.Span
}

// DefineVariableField declares a randomized field of type Type.
type DefineVariableField struct {
	Type  string
	Alias string // "" when absent
	Sp    source.Span
}

// DefineConstField declares a constant field.
type DefineConstField struct {
	Value Literal
	Alias string
	Sp    source.Span
}

// MakeCurrentField selects the field that following UpdateField statements modify.
type MakeCurrentField struct {
	Name string
	Sp   source.Span
}

// UpdateField applies an attribute such as RANGE(1 10) to the current field.
type UpdateField struct {
	Attr  string
	Value Expr
	Sp    source.Span
}

// StartFieldsSection is WHERE.
type StartFieldsSection struct {
	Sp source.Span
}

// UpdateParam sets a generator parameter: NAME = value.
type UpdateParam struct {
	Name  string
	Value Expr
	Sp    source.Span
}

// Run terminates every program.
type Run struct {
	Sp source.Span
}

func (*StartGroupDefinition) Kind() StmtKind     { return StmtStartGroupDefinition }
func (*StartGeneratorDefinition) Kind() StmtKind { return StmtStartGeneratorDefinition }
func (*DefineVariableField) Kind() StmtKind      { return StmtDefineVariableField }
func (*DefineConstField) Kind() StmtKind         { return StmtDefineConstField }
func (*MakeCurrentField) Kind() StmtKind         { return StmtMakeCurrentField }
func (*UpdateField) Kind() StmtKind              { return StmtUpdateField }
func (*StartFieldsSection) Kind() StmtKind       { return StmtStartFieldsSection }
func (*UpdateParam) Kind() StmtKind              { return StmtUpdateParam }
func (*Run) Kind() StmtKind                      { return StmtRun }

func (s *StartGroupDefinition) Span() source.Span     { return s.Sp }
func (s *StartGeneratorDefinition) Span() source.Span { return s.Sp }
func (s *DefineVariableField) Span() source.Span      { return s.Sp }
func (s *DefineConstField) Span() source.Span         { return s.Sp }
func (s *MakeCurrentField) Span() source.Span         { return s.Sp }
func (s *UpdateField) Span() source.Span              { return s.Sp }
func (s *StartFieldsSection) Span() source.Span       { return s.Sp }
func (s *UpdateParam) Span() source.Span              { return s.Sp }
func (s *Run) Span() source.Span                      { return s.Sp }

func (s *StartGroupDefinition) String() string     { return "DEFINE " + s.Name }
func (s *StartGeneratorDefinition) String() string { return "GENERATE " + s.Name }

func (s *DefineVariableField) String() string {
	return withAlias(s.Type, s.Alias)
}

func (s *DefineConstField) String() string {
	return withAlias(s.Value.String(), s.Alias)
}

func (s *MakeCurrentField) String() string { return s.Name + " ->" }

func (s *UpdateField) String() string {
	return s.Attr + "(" + argString(s.Value) + ")"
}

func (*StartFieldsSection) String() string { return "WHERE" }

func (s *UpdateParam) String() string { return s.Name + " = " + s.Value.String() }

func (*Run) String() string { return "RUN" }

func withAlias(head, alias string) string {
	if alias == "" {
		return head
	}
	return head + " AS " + alias
}
