package eval

import (
	"math"
	"strconv"

	"golang.org/x/text/cases"
)

// NumberFormat is the integer type of a numeric field. Values of every
// format are carried as uint64 bit patterns; signed formats use two's
// complement, so int64(v) recovers the value.
type NumberFormat uint8

const (
	Int8 NumberFormat = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
)

var numberFormatNames = [...]string{
	Int8: "i8", Int16: "i16", Int32: "i32", Int64: "i64",
	Uint8: "u8", Uint16: "u16", Uint32: "u32", Uint64: "u64",
}

func (f NumberFormat) String() string {
	if int(f) < len(numberFormatNames) {
		return numberFormatNames[f]
	}
	return "?"
}

// ParseNumberFormat accepts i8..i64 and u8..u64 (case-sensitive).
func ParseNumberFormat(s string) (NumberFormat, error) {
	for f, name := range numberFormatNames {
		if name == s {
			return NumberFormat(f), nil // #nosec G115 -- index of a fixed table
		}
	}
	return 0, conversionErr(s)
}

func (f NumberFormat) Signed() bool { return f <= Int64 }

// Width is the size of the format in bytes.
func (f NumberFormat) Width() int {
	switch f {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32:
		return 4
	default:
		return 8
	}
}

// Min returns the natural minimum as a bit pattern.
func (f NumberFormat) Min() uint64 {
	if !f.Signed() {
		return 0
	}
	bits := uint(f.Width() * 8)
	return uint64(int64(-1) << (bits - 1)) // #nosec G115
}

// Max returns the natural maximum as a bit pattern.
func (f NumberFormat) Max() uint64 {
	bits := uint(f.Width() * 8)
	if f.Signed() {
		return 1<<(bits-1) - 1
	}
	if bits == 64 {
		return math.MaxUint64
	}
	return 1<<bits - 1
}

// Less compares two bit patterns as values of this format.
func (f NumberFormat) Less(a, b uint64) bool {
	if f.Signed() {
		return int64(a) < int64(b) // #nosec G115 -- two's complement reinterpretation
	}
	return a < b
}

// FromInt64 converts a source literal into this format, reporting whether
// it lies inside the natural range.
func (f NumberFormat) FromInt64(v int64) (uint64, bool) {
	if f.Signed() {
		lo, hi := int64(f.Min()), int64(f.Max()) // #nosec G115
		return uint64(v), v >= lo && v <= hi     // #nosec G115
	}
	if v < 0 {
		return 0, false
	}
	u := uint64(v)
	return u, u <= f.Max()
}

// Format renders v as text in the given base.
func (f NumberFormat) Format(v uint64, base int) string {
	if f.Signed() {
		return strconv.FormatInt(int64(v), base) // #nosec G115
	}
	return strconv.FormatUint(v, base)
}

// ValueString renders a bit pattern in decimal.
func (f NumberFormat) ValueString(v uint64) string { return f.Format(v, 10) }

// DisplayFormat selects the base a TextNumber is rendered in.
type DisplayFormat uint8

const (
	Decimal DisplayFormat = iota
	Binary
	Octal
	Hex
)

func (d DisplayFormat) String() string {
	switch d {
	case Binary:
		return "bin"
	case Octal:
		return "oct"
	case Hex:
		return "hex"
	default:
		return "dec"
	}
}

func (d DisplayFormat) Base() int {
	switch d {
	case Binary:
		return 2
	case Octal:
		return 8
	case Hex:
		return 16
	default:
		return 10
	}
}

// ParseDisplayFormat accepts "dec", "hex", "oct" and "bin" in any case.
func ParseDisplayFormat(s string) (DisplayFormat, bool) {
	switch cases.Fold().String(s) {
	case "dec":
		return Decimal, true
	case "bin":
		return Binary, true
	case "oct":
		return Octal, true
	case "hex":
		return Hex, true
	}
	return Decimal, false
}

type ByteOrder uint8

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func (o ByteOrder) String() string {
	if o == LittleEndian {
		return "le"
	}
	return "be"
}
