package eval

import (
	"bajzel/internal/ast"
	"bajzel/internal/diag"
)

// Field is a definition plus the alias it can be addressed by.
type Field struct {
	Def   FieldDefinition
	Alias string // "" if the field is anonymous
}

// GroupDefinition is an ordered list of fields; order is emission order.
type GroupDefinition struct {
	Name   string
	Fields []*Field
}

// FindField returns the field with the given alias.
func (g *GroupDefinition) FindField(alias string) (*Field, bool) {
	if alias == "" {
		return nil, false
	}
	for _, f := range g.Fields {
		if f.Alias == alias {
			return f, true
		}
	}
	return nil, false
}

// ProgramEnv is the evaluator result: groups in declaration order and at
// most one generator.
type ProgramEnv struct {
	groups map[string]*GroupDefinition
	order  []string
	gen    *GenDefinition

	// addressing context, only meaningful while evaluating
	curGroup *GroupDefinition
	curField *Field
}

func NewProgramEnv() *ProgramEnv {
	return &ProgramEnv{groups: make(map[string]*GroupDefinition)}
}

// Group looks a group up by name.
func (env *ProgramEnv) Group(name string) (*GroupDefinition, error) {
	g, ok := env.groups[name]
	if !ok {
		return nil, notConstructed("group %q is not defined", name)
	}
	return g, nil
}

// Generator returns the single generator definition.
func (env *ProgramEnv) Generator() (*GenDefinition, error) {
	if env.gen == nil {
		return nil, notConstructed("GENERATE section is missing")
	}
	return env.gen, nil
}

// Groups returns every group in declaration order.
func (env *ProgramEnv) Groups() []*GroupDefinition {
	out := make([]*GroupDefinition, 0, len(env.order))
	for _, name := range env.order {
		out = append(out, env.groups[name])
	}
	return out
}

// createGroup adds a group and makes it current.
func (env *ProgramEnv) createGroup(name string) error {
	if _, dup := env.groups[name]; dup {
		return syntaxErr("group %q is already defined", name).withCode(diag.SemaDuplicateGroup)
	}
	g := &GroupDefinition{Name: name}
	env.groups[name] = g
	env.order = append(env.order, name)
	env.curGroup = g
	env.curField = nil
	return nil
}

func (env *ProgramEnv) createGenerator(name string) error {
	if env.gen != nil {
		return syntaxErr("single GENERATE section allowed")
	}
	env.gen = NewGenDefinition(name)
	return nil
}

func (env *ProgramEnv) createField(def FieldDefinition, alias string) error {
	g := env.curGroup
	if g == nil {
		return syntaxErr("field defined outside of a DEFINE section")
	}
	if _, dup := g.FindField(alias); dup {
		return syntaxErr("alias %q is already used in group %q", alias, g.Name).withCode(diag.SemaDuplicateAlias)
	}
	g.Fields = append(g.Fields, &Field{Def: def, Alias: alias})
	return nil
}

// useField makes the aliased field of the current group current.
func (env *ProgramEnv) useField(alias string) error {
	if env.curGroup == nil {
		return syntaxErr("no current group")
	}
	f, ok := env.curGroup.FindField(alias)
	if !ok {
		return syntaxErr("field %q is not defined in group %q", alias, env.curGroup.Name).withCode(diag.SemaUnknownField)
	}
	env.curField = f
	return nil
}

func (env *ProgramEnv) updateField(attr string, value ast.Expr) error {
	if env.curField == nil {
		return syntaxErr("%s: no field selected", attr)
	}
	return env.curField.Def.update(attr, value)
}

func (env *ProgramEnv) updateParam(name string, value ast.Expr) error {
	if env.gen == nil {
		return syntaxErr("%s: no GENERATE section", name)
	}
	return env.gen.UpdateParam(name, value)
}

// validate runs the checks that need the whole program.
func (env *ProgramEnv) validate() error {
	if len(env.groups) == 0 {
		return syntaxErr("at least one DEFINE section is required")
	}
	if env.gen == nil {
		return syntaxErr("GENERATE section is required")
	}
	if _, ok := env.groups[env.gen.Name]; !ok {
		return syntaxErr("GENERATE %s: group %q is not defined", env.gen.Name, env.gen.Name).withCode(diag.SemaUnknownGroup)
	}
	if env.gen.OutMin > env.gen.OutMax {
		return syntaxErr("OUT_MIN (%d) is greater than OUT_MAX (%d)", env.gen.OutMin, env.gen.OutMax)
	}
	return nil
}
