// Package generate turns an evaluated ProgramEnv into random bytes.
package generate

import (
	"encoding/binary"
	"fmt"
	"math"

	"bajzel/internal/eval"

	"fortio.org/safecast"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// preallocation is capped so a large OUT_MAX does not reserve memory up front
const maxPrealloc = 64 << 10

type Generator struct {
	rng Rand
}

func New(rng Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate emits the generator's target group. The output never exceeds
// OUT_MAX and is not padded to OUT_MIN. TERM is not appended.
func (g *Generator) Generate(env *eval.ProgramEnv) ([]byte, error) {
	def, err := env.Generator()
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	group, err := env.Group(def.Name)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	limit, err := safecast.Conv[int](def.OutMax)
	if err != nil {
		return nil, fmt.Errorf("generate: OUT_MAX: %w", err)
	}
	e := emitter{
		rng:   g.rng,
		limit: limit,
		buf:   make([]byte, 0, min(limit, maxPrealloc)),
	}
	for _, f := range group.Fields {
		if e.avail() == 0 || !e.field(f.Def) {
			break
		}
	}
	return e.buf, nil
}

// AppendTerm appends the generator terminator to out.
func AppendTerm(out []byte, def *eval.GenDefinition) []byte {
	return append(out, def.Term...)
}

type emitter struct {
	rng   Rand
	limit int
	buf   []byte
}

func (e *emitter) avail() int { return e.limit - len(e.buf) }

// put copies as much of p as fits and reports whether all of it did.
func (e *emitter) put(p []byte) bool {
	n := min(len(p), e.avail())
	e.buf = append(e.buf, p[:n]...)
	return n == len(p) && e.avail() > 0
}

// field emits one field; false stops the whole emission.
func (e *emitter) field(def eval.FieldDefinition) bool {
	switch d := def.(type) {
	case *eval.ConstString:
		return e.put(d.Value)
	case *eval.AsciiString:
		n := e.length(d.LenMin, d.LenMax)
		for range n {
			e.buf = append(e.buf, alphanumeric[e.rng.IntN(len(alphanumeric))])
		}
		return e.avail() > 0
	case *eval.Bytes:
		n := e.length(d.LenMin, d.LenMax)
		var word [8]byte
		for i := 0; i < n; i += len(word) {
			binary.LittleEndian.PutUint64(word[:], e.rng.Uint64())
			e.buf = append(e.buf, word[:min(len(word), n-i)]...)
		}
		return e.avail() > 0
	case *eval.TextNumber:
		v := e.draw(d.Min, d.Max)
		return e.put([]byte(d.Format.Format(v, d.Display.Base())))
	case *eval.ByteNumber:
		v := e.draw(d.Min, d.Max)
		var raw [8]byte
		w := d.Format.Width()
		if d.Order == eval.LittleEndian {
			binary.LittleEndian.PutUint64(raw[:], v)
			return e.put(raw[:w])
		}
		binary.BigEndian.PutUint64(raw[:], v)
		return e.put(raw[8-w:])
	}
	panic(fmt.Sprintf("generate: unknown field definition %T", def))
}

// length draws uniformly in [min(lo, avail), min(hi, avail)].
func (e *emitter) length(lo, hi uint32) int {
	a := e.avail()
	l, h := min(int(lo), a), min(int(hi), a)
	if h <= l {
		return l
	}
	return l + e.rng.IntN(h-l+1)
}

// draw picks a bit pattern uniformly in [lo, hi]; the subtraction wraps,
// so signed ranges work the same way as unsigned ones.
func (e *emitter) draw(lo, hi uint64) uint64 {
	span := hi - lo
	if span == math.MaxUint64 {
		return e.rng.Uint64()
	}
	if span == 0 {
		return lo
	}
	return lo + e.rng.Uint64N(span+1)
}
