package evaluator

// primitiveEqual compares two primitives of the same variant by value.
// comparable is false for mismatched variants and for non-primitives.
func primitiveEqual(a, b Object) (equal bool, comparable bool) {
	switch aVal := a.(type) {
	case *String:
		if bVal, ok := b.(*String); ok {
			return aVal.Value == bVal.Value, true
		}
	case *Boolean:
		if bVal, ok := b.(*Boolean); ok {
			return aVal.Value == bVal.Value, true
		}
	case *Integer:
		if bVal, ok := b.(*Integer); ok {
			return aVal.Value == bVal.Value, true
		}
	case *Float:
		if bVal, ok := b.(*Float); ok {
			return aVal.Value == bVal.Value, true
		}
	}
	return false, false
}
