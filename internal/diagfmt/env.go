package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"bajzel/internal/eval"
)

// Current snapshot schema - increment when EnvSnapshot changes shape
const envSnapshotSchema uint16 = 1

// EnvSnapshot is a serializable view of an evaluated ProgramEnv.
// Groups and fields keep declaration order.
type EnvSnapshot struct {
	Schema    uint16             `json:"schema" msgpack:"schema"`
	Groups    []GroupSnapshot    `json:"groups" msgpack:"groups"`
	Generator *GeneratorSnapshot `json:"generator,omitempty" msgpack:"generator,omitempty"`
}

type GroupSnapshot struct {
	Name   string          `json:"name" msgpack:"name"`
	Fields []FieldSnapshot `json:"fields" msgpack:"fields"`
}

// FieldSnapshot flattens every FieldDefinition variant; unused members are omitted.
// Numeric bounds are rendered in decimal so signed formats read naturally.
type FieldSnapshot struct {
	Alias   string `json:"alias,omitempty" msgpack:"alias,omitempty"`
	Kind    string `json:"kind" msgpack:"kind"`
	Value   []byte `json:"value,omitempty" msgpack:"value,omitempty"`
	Format  string `json:"format,omitempty" msgpack:"format,omitempty"`
	Order   string `json:"order,omitempty" msgpack:"order,omitempty"`
	Display string `json:"display,omitempty" msgpack:"display,omitempty"`
	Min     string `json:"min,omitempty" msgpack:"min,omitempty"`
	Max     string `json:"max,omitempty" msgpack:"max,omitempty"`
	LenMin  uint32 `json:"len_min,omitempty" msgpack:"len_min,omitempty"`
	LenMax  uint32 `json:"len_max,omitempty" msgpack:"len_max,omitempty"`
}

type GeneratorSnapshot struct {
	Name   string `json:"name" msgpack:"name"`
	OutMin uint32 `json:"out_min" msgpack:"out_min"`
	OutMax uint32 `json:"out_max" msgpack:"out_max"`
	Term   []byte `json:"term,omitempty" msgpack:"term,omitempty"`
}

// Snapshot captures env. A missing generator is left nil.
func Snapshot(env *eval.ProgramEnv) EnvSnapshot {
	snap := EnvSnapshot{Schema: envSnapshotSchema}
	for _, g := range env.Groups() {
		gs := GroupSnapshot{Name: g.Name, Fields: make([]FieldSnapshot, 0, len(g.Fields))}
		for _, f := range g.Fields {
			gs.Fields = append(gs.Fields, fieldSnapshot(f))
		}
		snap.Groups = append(snap.Groups, gs)
	}
	if gen, err := env.Generator(); err == nil {
		snap.Generator = &GeneratorSnapshot{
			Name:   gen.Name,
			OutMin: gen.OutMin,
			OutMax: gen.OutMax,
			Term:   gen.Term,
		}
	}
	return snap
}

func fieldSnapshot(f *eval.Field) FieldSnapshot {
	fs := FieldSnapshot{Alias: f.Alias, Kind: f.Def.Kind().String()}
	switch d := f.Def.(type) {
	case *eval.ConstString:
		fs.Value = d.Value
	case *eval.TextNumber:
		fs.Format = d.Format.String()
		fs.Display = d.Display.String()
		fs.Min = d.Format.ValueString(d.Min)
		fs.Max = d.Format.ValueString(d.Max)
	case *eval.ByteNumber:
		fs.Format = d.Format.String()
		fs.Order = d.Order.String()
		fs.Min = d.Format.ValueString(d.Min)
		fs.Max = d.Format.ValueString(d.Max)
	case *eval.AsciiString:
		fs.LenMin, fs.LenMax = d.LenMin, d.LenMax
	case *eval.Bytes:
		fs.LenMin, fs.LenMax = d.LenMin, d.LenMax
	}
	return fs
}

// FormatEnvPretty prints groups, their fields and the generator.
func FormatEnvPretty(w io.Writer, env *eval.ProgramEnv) error {
	for _, g := range env.Groups() {
		if _, err := fmt.Fprintf(w, "DEFINE %s\n", g.Name); err != nil {
			return err
		}
		for i, f := range g.Fields {
			alias := f.Alias
			if alias == "" {
				alias = "_"
			}
			fmt.Fprintf(w, "  %2d %-12s %s\n", i, alias, f.Def)
		}
	}
	if gen, err := env.Generator(); err == nil {
		fmt.Fprintln(w, gen)
	}
	return nil
}

// FormatEnvJSON writes the env snapshot as indented JSON.
func FormatEnvJSON(w io.Writer, env *eval.ProgramEnv) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Snapshot(env))
}

// FormatEnvMsgpack writes the env snapshot as a single msgpack document.
func FormatEnvMsgpack(w io.Writer, env *eval.ProgramEnv) error {
	snap := Snapshot(env)
	return msgpack.NewEncoder(w).Encode(&snap)
}

// DecodeEnvMsgpack reads a snapshot written by FormatEnvMsgpack.
func DecodeEnvMsgpack(r io.Reader) (EnvSnapshot, error) {
	var snap EnvSnapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return EnvSnapshot{}, err
	}
	if snap.Schema != envSnapshotSchema {
		return EnvSnapshot{}, fmt.Errorf("env snapshot schema %d, want %d", snap.Schema, envSnapshotSchema)
	}
	return snap, nil
}
