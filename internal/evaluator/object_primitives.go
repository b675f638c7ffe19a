package evaluator

import (
	"math"
	"strconv"
	"strings"
)

// None is the absence marker. Use the NONE singleton.
type None struct{}

func (n *None) Type() ObjectType { return NONE_OBJ }
func (n *None) Inspect() string  { return "None" }

// String
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }
func (s *String) HashKey() HashKey { return HashKey{Type: STRING_OBJ, Text: s.Value} }
func (s *String) Hash() uint32     { return hashString(s.Value) }

// Integer is a 32-bit signed integer. Arithmetic wraps on overflow.
type Integer struct {
	Value int32
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(int64(i.Value), 10) }
func (i *Integer) HashKey() HashKey {
	return HashKey{Type: INTEGER_OBJ, Bits: uint64(uint32(i.Value))}
}
func (i *Integer) Hash() uint32 { return hashBits(INTEGER_OBJ, uint64(uint32(i.Value))) }

// Float is a 32-bit IEEE float.
type Float struct {
	Value float32
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return formatFloat(f.Value) }
func (f *Float) HashKey() HashKey { return HashKey{Type: FLOAT_OBJ, Bits: floatKeyBits(f.Value)} }
func (f *Float) Hash() uint32     { return hashBits(FLOAT_OBJ, floatKeyBits(f.Value)) }

// floatKeyBits folds -0 onto 0 so that values equal under == share a key.
func floatKeyBits(v float32) uint64 {
	if v == 0 {
		return 0
	}
	return uint64(math.Float32bits(v))
}

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }
func (b *Boolean) HashKey() HashKey {
	if b.Value {
		return HashKey{Type: BOOLEAN_OBJ, Bits: 1}
	}
	return HashKey{Type: BOOLEAN_OBJ}
}
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}

var (
	NONE  = &None{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// formatFloat renders a float with at least one fractional digit, switching
// to scientific notation outside [1e-3, 1e7): 1.0, 0.25, 1.0E10, 1.5E-5.
func formatFloat(v float32) string {
	switch {
	case math.IsNaN(float64(v)):
		return "NaN"
	case math.IsInf(float64(v), 1):
		return "Infinity"
	case math.IsInf(float64(v), -1):
		return "-Infinity"
	}
	abs := math.Abs(float64(v))
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(float64(v), 'f', -1, 32)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(float64(v), 'E', -1, 32)
	mant, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	n, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return mant + "E" + strconv.Itoa(n)
}
