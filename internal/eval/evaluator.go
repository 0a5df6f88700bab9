package eval

import (
	"fmt"

	"bajzel/internal/ast"
)

// State is the evaluator position in the program structure.
type State uint8

const (
	Started State = iota
	DefiningFields
	DefiningFieldAttr
	UpdatingFieldAttrs
	DefiningGenerator
	Finished
)

func (s State) String() string {
	switch s {
	case Started:
		return "Started"
	case DefiningFields:
		return "DefiningFields"
	case DefiningFieldAttr:
		return "DefiningFieldAttr"
	case UpdatingFieldAttrs:
		return "UpdatingFieldAttrs"
	case DefiningGenerator:
		return "DefiningGenerator"
	case Finished:
		return "Finished"
	}
	return "State(?)"
}

// Evaluator replays statements one by one. After the first error it
// refuses further input.
type Evaluator struct {
	state State
	env   *ProgramEnv
	err   error
}

func New() *Evaluator {
	return &Evaluator{state: Started, env: NewProgramEnv()}
}

func (ev *Evaluator) State() State { return ev.state }

// Evaluate folds prog into an environment. No env is returned on error.
func Evaluate(prog *ast.Program) (*ProgramEnv, error) {
	ev := New()
	for _, stmt := range prog.Stmts {
		if err := ev.Step(stmt); err != nil {
			return nil, err
		}
	}
	return ev.Finish()
}

// Step applies one statement.
func (ev *Evaluator) Step(stmt ast.Stmt) error {
	if ev.err != nil {
		return ev.err
	}
	var (
		next State
		err  error
	)
	switch ev.state {
	case Started:
		next, err = ev.started(stmt)
	case DefiningFields:
		next, err = ev.definingFields(stmt)
	case DefiningFieldAttr:
		next, err = ev.definingFieldAttr(stmt)
	case UpdatingFieldAttrs:
		next, err = ev.updatingFieldAttrs(stmt)
	case DefiningGenerator:
		next, err = ev.definingGenerator(stmt)
	case Finished:
		err = syntaxErr("%s after the end of the program", stmt.Kind())
	default:
		panic(fmt.Sprintf("eval: unknown state %d", ev.state))
	}
	if err != nil {
		ev.err = at(err, stmt.Span())
		return ev.err
	}
	if next == DefiningFields {
		ev.env.curField = nil
	}
	ev.state = next
	return nil
}

// Finish returns the environment if the program reached Finished.
func (ev *Evaluator) Finish() (*ProgramEnv, error) {
	if ev.err != nil {
		return nil, ev.err
	}
	if ev.state != Finished {
		return nil, &Error{
			Kind: KindProgramNotFinished,
			Msg:  fmt.Sprintf("statement stream ended in state %s", ev.state),
		}
	}
	return ev.env, nil
}

func (ev *Evaluator) started(stmt ast.Stmt) (State, error) {
	if s, ok := stmt.(*ast.StartGroupDefinition); ok {
		return DefiningFields, ev.env.createGroup(s.Name)
	}
	return Started, syntaxErr("at least one DEFINE section is required")
}

func (ev *Evaluator) definingFields(stmt ast.Stmt) (State, error) {
	switch s := stmt.(type) {
	case *ast.DefineConstField, *ast.DefineVariableField:
		return DefiningFields, ev.defineField(s)
	case *ast.MakeCurrentField:
		return DefiningFieldAttr, ev.env.useField(s.Name)
	case *ast.StartFieldsSection:
		return UpdatingFieldAttrs, nil
	case *ast.StartGroupDefinition, *ast.StartGeneratorDefinition:
		return ev.startSection(s)
	}
	return ev.unexpected(stmt)
}

func (ev *Evaluator) definingFieldAttr(stmt ast.Stmt) (State, error) {
	switch s := stmt.(type) {
	case *ast.UpdateField:
		return DefiningFieldAttr, ev.env.updateField(s.Attr, s.Value)
	case *ast.DefineConstField, *ast.DefineVariableField:
		return DefiningFields, ev.defineField(s)
	case *ast.StartGroupDefinition, *ast.StartGeneratorDefinition:
		return ev.startSection(s)
	}
	return ev.unexpected(stmt)
}

func (ev *Evaluator) updatingFieldAttrs(stmt ast.Stmt) (State, error) {
	switch s := stmt.(type) {
	case *ast.MakeCurrentField:
		return UpdatingFieldAttrs, ev.env.useField(s.Name)
	case *ast.UpdateField:
		return UpdatingFieldAttrs, ev.env.updateField(s.Attr, s.Value)
	case *ast.StartGroupDefinition, *ast.StartGeneratorDefinition:
		return ev.startSection(s)
	}
	return ev.unexpected(stmt)
}

func (ev *Evaluator) definingGenerator(stmt ast.Stmt) (State, error) {
	switch s := stmt.(type) {
	case *ast.UpdateParam:
		return DefiningGenerator, ev.env.updateParam(s.Name, s.Value)
	case *ast.Run:
		return Finished, ev.env.validate()
	}
	return ev.unexpected(stmt)
}

// startSection handles DEFINE and GENERATE, which are valid from every
// field-defining state.
func (ev *Evaluator) startSection(stmt ast.Stmt) (State, error) {
	switch s := stmt.(type) {
	case *ast.StartGroupDefinition:
		return DefiningFields, ev.env.createGroup(s.Name)
	case *ast.StartGeneratorDefinition:
		return DefiningGenerator, ev.env.createGenerator(s.Name)
	}
	return ev.unexpected(stmt)
}

func (ev *Evaluator) defineField(stmt ast.Stmt) error {
	var (
		def   FieldDefinition
		alias string
		err   error
	)
	switch s := stmt.(type) {
	case *ast.DefineVariableField:
		def, err = ResolveFieldType(s.Type)
		alias = s.Alias
	case *ast.DefineConstField:
		def, err = ResolveConstField(s.Value)
		alias = s.Alias
	}
	if err != nil {
		return err
	}
	return ev.env.createField(def, alias)
}

func (ev *Evaluator) unexpected(stmt ast.Stmt) (State, error) {
	if _, ok := stmt.(*ast.StartGeneratorDefinition); ok && ev.env.gen != nil {
		return ev.state, syntaxErr("single GENERATE section allowed")
	}
	return ev.state, syntaxErr("%s (%s) is not allowed in state %s", stmt.Kind(), stmt, ev.state)
}
