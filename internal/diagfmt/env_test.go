package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"bajzel/internal/diagfmt"
	"bajzel/internal/eval"
	"bajzel/internal/lexer"
	"bajzel/internal/parser"
	"bajzel/internal/source"
)

const envProgram = `
DEFINE header
  "HDR" be_u16 AS size -> RANGE(1 512)
DEFINE body
  string AS name -> LEN(1 8)
  i8 AS temp
  bytes AS blob
  WHERE
  temp -> RANGE(-5 5), FORMAT("hex")
GENERATE body WITH OUT_MAX = 64 TERM = LF
`

func compileEnv(t *testing.T, src string) *eval.ProgramEnv {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("env.fuzl", []byte(src)))
	prog, err := parser.ParseTokens(lexer.Tokenize(f, lexer.Options{}), parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	env, err := eval.Evaluate(prog)
	if err != nil {
		t.Fatal(err)
	}
	return env
}

func TestSnapshotOrder(t *testing.T) {
	snap := diagfmt.Snapshot(compileEnv(t, envProgram))
	if len(snap.Groups) != 2 || snap.Groups[0].Name != "header" || snap.Groups[1].Name != "body" {
		t.Fatalf("groups = %+v", snap.Groups)
	}
	var aliases []string
	for _, f := range snap.Groups[1].Fields {
		aliases = append(aliases, f.Alias+":"+f.Kind)
	}
	if got := strings.Join(aliases, " "); got != "name:AsciiString temp:TextNumber blob:Bytes" {
		t.Errorf("body fields = %s", got)
	}
	temp := snap.Groups[1].Fields[1]
	if temp.Min != "-5" || temp.Max != "5" || temp.Display != "hex" || temp.Format != "i8" {
		t.Errorf("temp = %+v", temp)
	}
	hdr := snap.Groups[0].Fields
	if string(hdr[0].Value) != "HDR" || hdr[1].Order != "be" || hdr[1].Max != "512" {
		t.Errorf("header = %+v", hdr)
	}
	if snap.Generator == nil || snap.Generator.OutMax != 64 || !bytes.Equal(snap.Generator.Term, []byte{'\n'}) {
		t.Errorf("generator = %+v", snap.Generator)
	}
}

func TestEnvJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := diagfmt.FormatEnvJSON(&buf, compileEnv(t, envProgram)); err != nil {
		t.Fatal(err)
	}
	var snap diagfmt.EnvSnapshot
	if err := json.Unmarshal(buf.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Groups[1].Fields[2].Alias != "blob" || snap.Groups[1].Fields[2].LenMax != eval.DefaultMaxLen {
		t.Errorf("blob = %+v", snap.Groups[1].Fields[2])
	}
}

func TestEnvMsgpackRoundTrip(t *testing.T) {
	env := compileEnv(t, envProgram)
	want := diagfmt.Snapshot(env)

	var buf bytes.Buffer
	if err := diagfmt.FormatEnvMsgpack(&buf, env); err != nil {
		t.Fatal(err)
	}
	got, err := diagfmt.DecodeEnvMsgpack(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Groups) != len(want.Groups) {
		t.Fatalf("groups %d, want %d", len(got.Groups), len(want.Groups))
	}
	for i := range want.Groups {
		if got.Groups[i].Name != want.Groups[i].Name || len(got.Groups[i].Fields) != len(want.Groups[i].Fields) {
			t.Fatalf("group %d = %+v", i, got.Groups[i])
		}
		for j, f := range want.Groups[i].Fields {
			g := got.Groups[i].Fields[j]
			if g.Alias != f.Alias || g.Kind != f.Kind || g.Min != f.Min || g.Max != f.Max ||
				g.LenMin != f.LenMin || g.LenMax != f.LenMax || !bytes.Equal(g.Value, f.Value) {
				t.Errorf("field %d/%d = %+v, want %+v", i, j, g, f)
			}
		}
	}
	if got.Generator == nil || got.Generator.Name != "body" || !bytes.Equal(got.Generator.Term, want.Generator.Term) {
		t.Errorf("generator = %+v", got.Generator)
	}
}

func TestDecodeEnvMsgpackGarbage(t *testing.T) {
	if _, err := diagfmt.DecodeEnvMsgpack(bytes.NewReader([]byte{0xc1})); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestEnvPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := diagfmt.FormatEnvPretty(&buf, compileEnv(t, envProgram)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"DEFINE header\n", "ConstString(\"HDR\")", "TextNumber(i8, -5..5, hex)", "GENERATE body"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
