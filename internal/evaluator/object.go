package evaluator

import (
	"hash/fnv"
)

type ObjectType string

const (
	NONE_OBJ     = "NONE"
	STRING_OBJ   = "STRING"
	INTEGER_OBJ  = "INTEGER"
	FLOAT_OBJ    = "FLOAT"
	BOOLEAN_OBJ  = "BOOLEAN"
	LIST_OBJ     = "LIST"
	DICT_OBJ     = "DICT"
	RANGE_OBJ    = "RANGE"
	FUNCTION_OBJ = "FUNCTION"
)

// Object is a runtime value. The set of implementations is closed:
// None, String, Integer, Float, Boolean, List, Dict, Range and Function.
type Object interface {
	Type() ObjectType
	// Inspect renders the value the way Print and Concatenate show it.
	Inspect() string
}

// HashKey is the comparable identity of a Hashable value. Two hashables
// are equal as dictionary keys iff their keys are equal.
type HashKey struct {
	Type ObjectType
	Bits uint64
	Text string
}

// Hashable values may be used as dictionary keys: String, Integer, Float and Boolean.
type Hashable interface {
	Object
	HashKey() HashKey
	Hash() uint32
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func hashBits(t ObjectType, bits uint64) uint32 {
	h := fnv.New32a()
	h.Write([]byte(t))
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(bits >> (8 * i))
	}
	h.Write(buf[:])
	return h.Sum32()
}

// TypeName is the user-facing name of a value's variant, used in error messages.
func TypeName(obj Object) string {
	switch obj.(type) {
	case *None:
		return "None"
	case *String:
		return "String"
	case *Integer:
		return "Int"
	case *Float:
		return "Float"
	case *Boolean:
		return "Bool"
	case *List:
		return "List"
	case *Dict:
		return "Dict"
	case *Range:
		return "Range"
	case *Function:
		return "Function"
	}
	return "<nil>"
}
