package evaluator

import (
	"fmt"
)

// Range is the inclusive integer sequence Start..End. It counts up when
// Start <= End and down otherwise.
type Range struct {
	Start int32
	End   int32
}

func (r *Range) Type() ObjectType { return RANGE_OBJ }
func (r *Range) Inspect() string  { return fmt.Sprintf("%d..%d", r.Start, r.End) }

// Step is +1 for ascending ranges and -1 for descending ones.
func (r *Range) Step() int32 {
	if r.Start <= r.End {
		return 1
	}
	return -1
}

// Len is the number of elements; never zero.
func (r *Range) Len() int64 {
	n := int64(r.End) - int64(r.Start)
	if n < 0 {
		n = -n
	}
	return n + 1
}

// Each calls fn for every element in order, stopping at the first error.
// A range can be walked any number of times.
func (r *Range) Each(fn func(i int32) error) error {
	step := int64(r.Step())
	for i, cur := int64(0), int64(r.Start); i < r.Len(); i, cur = i+1, cur+step {
		if err := fn(int32(cur)); err != nil {
			return err
		}
	}
	return nil
}
