package eval

import (
	"fmt"

	"bajzel/internal/ast"

	"fortio.org/safecast"
)

// DefaultMaxLen bounds string and bytes fields that have no LEN attribute.
const DefaultMaxLen = 4096

type FieldKind uint8

const (
	FieldConstString FieldKind = iota
	FieldTextNumber
	FieldAsciiString
	FieldByteNumber
	FieldBytes
)

func (k FieldKind) String() string {
	switch k {
	case FieldConstString:
		return "ConstString"
	case FieldTextNumber:
		return "TextNumber"
	case FieldAsciiString:
		return "AsciiString"
	case FieldByteNumber:
		return "ByteNumber"
	case FieldBytes:
		return "Bytes"
	}
	return "?"
}

// FieldDefinition is one of *ConstString, *TextNumber, *AsciiString,
// *ByteNumber or *Bytes.
type FieldDefinition interface {
	Kind() FieldKind
	String() string
	// update applies an attribute; attribute names are case-sensitive.
	update(attr string, value ast.Expr) error
}

// ConstString is copied to the output verbatim.
type ConstString struct {
	Value []byte
}

// TextNumber is a random integer rendered as text.
type TextNumber struct {
	Format  NumberFormat
	Min     uint64
	Max     uint64
	Display DisplayFormat
}

// AsciiString is random alphanumeric text.
type AsciiString struct {
	LenMin uint32
	LenMax uint32
}

// ByteNumber is a random integer rendered as raw bytes.
type ByteNumber struct {
	Format NumberFormat
	Order  ByteOrder
	Min    uint64
	Max    uint64
}

// Bytes is random binary content.
type Bytes struct {
	LenMin uint32
	LenMax uint32
}

func (*ConstString) Kind() FieldKind { return FieldConstString }
func (*TextNumber) Kind() FieldKind  { return FieldTextNumber }
func (*AsciiString) Kind() FieldKind { return FieldAsciiString }
func (*ByteNumber) Kind() FieldKind  { return FieldByteNumber }
func (*Bytes) Kind() FieldKind       { return FieldBytes }

func (d *ConstString) String() string { return fmt.Sprintf("ConstString(%q)", d.Value) }

func (d *TextNumber) String() string {
	return fmt.Sprintf("TextNumber(%s, %s..%s, %s)", d.Format,
		d.Format.ValueString(d.Min), d.Format.ValueString(d.Max), d.Display)
}

func (d *AsciiString) String() string {
	return fmt.Sprintf("AsciiString(len %d..%d)", d.LenMin, d.LenMax)
}

func (d *ByteNumber) String() string {
	return fmt.Sprintf("ByteNumber(%s_%s, %s..%s)", d.Order, d.Format,
		d.Format.ValueString(d.Min), d.Format.ValueString(d.Max))
}

func (d *Bytes) String() string {
	return fmt.Sprintf("Bytes(len %d..%d)", d.LenMin, d.LenMax)
}

func NewTextNumber(f NumberFormat) *TextNumber {
	return &TextNumber{Format: f, Min: f.Min(), Max: f.Max()}
}

func NewByteNumber(f NumberFormat, order ByteOrder) *ByteNumber {
	return &ByteNumber{Format: f, Order: order, Min: f.Min(), Max: f.Max()}
}

// ResolveFieldType maps a variable field type name to its definition.
func ResolveFieldType(kind string) (FieldDefinition, error) {
	var (
		def FieldDefinition
		err error
	)
	switch {
	case len(kind) > 3 && (kind[:3] == "le_" || kind[:3] == "be_"):
		def, err = parseByteNumber(kind)
	case kind == "string":
		def = &AsciiString{LenMin: 0, LenMax: DefaultMaxLen}
	case kind == "bytes":
		def = &Bytes{LenMin: 0, LenMax: DefaultMaxLen}
	case len(kind) > 0 && (kind[0] == 'i' || kind[0] == 'u'):
		var f NumberFormat
		if f, err = ParseNumberFormat(kind); err == nil {
			def = NewTextNumber(f)
		}
	default:
		err = conversionErr(kind)
	}
	if err != nil {
		return nil, &Error{Kind: KindSyntax, Msg: fmt.Sprintf("unsupported variable field type (%s)", kind), Err: err}
	}
	return def, nil
}

func parseByteNumber(kind string) (*ByteNumber, error) {
	order := BigEndian
	if kind[:3] == "le_" {
		order = LittleEndian
	}
	f, err := ParseNumberFormat(kind[3:])
	if err != nil {
		return nil, err
	}
	if f.Width() == 1 {
		return nil, conversionErr(kind)
	}
	return NewByteNumber(f, order), nil
}

// ResolveConstField maps a constant literal to its definition. Integers
// become a TextNumber pinned to the literal value.
func ResolveConstField(lit ast.Literal) (FieldDefinition, error) {
	switch lit.Kind {
	case ast.LitInt:
		v := uint64(lit.Int) // #nosec G115 -- i64 bit pattern
		return &TextNumber{Format: Int64, Min: v, Max: v}, nil
	case ast.LitString:
		return &ConstString{Value: []byte(lit.Str)}, nil
	case ast.LitBytes:
		return nil, syntaxErr("bytes constant fields are not implemented")
	case ast.LitReserved:
		return nil, syntaxErr("reserved constant fields (%s) are not implemented", lit.Reserved)
	}
	return nil, syntaxErr("unsupported constant literal")
}

func (d *ConstString) update(attr string, _ ast.Expr) error {
	return syntaxErr("constant string field does not have any attributes (%s)", attr)
}

func (d *TextNumber) update(attr string, value ast.Expr) error {
	switch attr {
	case "RANGE":
		lo, hi, err := numberRange(d.Format, value)
		if err != nil {
			return err
		}
		d.Min, d.Max = lo, hi
		return nil
	case "FORMAT":
		lit, err := scalar(attr, value)
		if err != nil {
			return err
		}
		display, ok := ParseDisplayFormat(lit.Str)
		if lit.Kind != ast.LitString || !ok {
			return syntaxErr(`FORMAT(name): expected one of "dec", "hex", "oct", "bin"`)
		}
		d.Display = display
		return nil
	}
	return syntaxErr("unsupported text number attribute (%s)", attr)
}

func (d *ByteNumber) update(attr string, value ast.Expr) error {
	if attr != "RANGE" {
		return syntaxErr("unsupported byte number attribute (%s)", attr)
	}
	lo, hi, err := numberRange(d.Format, value)
	if err != nil {
		return err
	}
	d.Min, d.Max = lo, hi
	return nil
}

func (d *AsciiString) update(attr string, value ast.Expr) error {
	if attr != "LEN" {
		return syntaxErr("unsupported string attribute (%s)", attr)
	}
	lo, hi, err := lengthRange(value)
	if err != nil {
		return err
	}
	d.LenMin, d.LenMax = lo, hi
	return nil
}

func (d *Bytes) update(attr string, value ast.Expr) error {
	if attr != "LEN" {
		return syntaxErr("unsupported bytes attribute (%s)", attr)
	}
	lo, hi, err := lengthRange(value)
	if err != nil {
		return err
	}
	d.LenMin, d.LenMax = lo, hi
	return nil
}

// numberRange evaluates RANGE(min max) for format f.
func numberRange(f NumberFormat, value ast.Expr) (lo, hi uint64, err error) {
	g, ok := value.(*ast.GroupExpr)
	if !ok || len(g.Items) != 2 {
		return 0, 0, syntaxErr("RANGE(min max) expects exactly 2 values")
	}
	vals := [2]uint64{}
	for i, item := range g.Items {
		n, err := intValue("RANGE", item)
		if err != nil {
			return 0, 0, err
		}
		v, inRange := f.FromInt64(n)
		if !inRange {
			return 0, 0, syntaxErr("RANGE(min max): %d is out of range for %s", n, f)
		}
		vals[i] = v
	}
	if f.Less(vals[1], vals[0]) {
		return 0, 0, syntaxErr("RANGE(min max): min > max is not allowed")
	}
	return vals[0], vals[1], nil
}

// lengthRange evaluates LEN(n) and LEN(min max).
func lengthRange(value ast.Expr) (lo, hi uint32, err error) {
	switch v := value.(type) {
	case *ast.LiteralExpr:
		if v.Lit.Kind != ast.LitInt {
			return 0, 0, syntaxErr("LEN(value): integer expected, got %s", v.Lit.Kind)
		}
		if v.Lit.Int < 0 {
			return 0, 0, syntaxErr("LEN(value): value < 0 is not allowed")
		}
		n, err := safecast.Conv[uint32](v.Lit.Int)
		if err != nil {
			return 0, 0, syntaxErr("LEN(value): %d is too large", v.Lit.Int)
		}
		return n, n, nil
	case *ast.GroupExpr:
		if len(v.Items) != 2 {
			return 0, 0, syntaxErr("LEN(min max) expects exactly 2 values")
		}
		minV, err := intValue("LEN", v.Items[0])
		if err != nil {
			return 0, 0, err
		}
		maxV, err := intValue("LEN", v.Items[1])
		if err != nil {
			return 0, 0, err
		}
		if minV > maxV {
			return 0, 0, syntaxErr("LEN(min max): min > max is not allowed")
		}
		if minV < 0 {
			return 0, 0, syntaxErr("LEN(min max): min < 0 is not allowed")
		}
		lo, errLo := safecast.Conv[uint32](minV)
		hi, errHi := safecast.Conv[uint32](maxV)
		if errLo != nil || errHi != nil {
			return 0, 0, syntaxErr("LEN(min max): %d is too large", maxV)
		}
		return lo, hi, nil
	}
	return 0, 0, exprErr("LEN: unsupported expression")
}

// scalar unwraps a single literal; a group is an Expr error.
func scalar(name string, value ast.Expr) (ast.Literal, error) {
	lit, ok := value.(*ast.LiteralExpr)
	if !ok {
		return ast.Literal{}, exprErr("%s: group expression not expected", name)
	}
	return lit.Lit, nil
}

// intValue extracts an integer from a scalar expression.
func intValue(name string, value ast.Expr) (int64, error) {
	lit, err := scalar(name, value)
	if err != nil {
		return 0, err
	}
	if lit.Kind != ast.LitInt {
		return 0, syntaxErr("%s: integer expected, got %s", name, lit.Kind)
	}
	return lit.Int, nil
}
