package evaluator

import (
	"github.com/funvibe/ember/internal/ast"
)

func (e *Evaluator) evalListExpr(node *ast.ListExpr, env *Environment) (Object, error) {
	elements := make([]Object, 0, len(node.Elements))
	for _, el := range node.Elements {
		val, err := e.Eval(el, env)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return NewList(elements), nil
}

func (e *Evaluator) evalDictExpr(node *ast.DictExpr, env *Environment) (Object, error) {
	dict := NewDict()
	for _, pair := range node.Pairs {
		keyObj, err := e.Eval(pair.Key, env)
		if err != nil {
			return nil, err
		}
		key, ok := keyObj.(Hashable)
		if !ok {
			return nil, unhashable(keyObj)
		}
		val, err := e.Eval(pair.Value, env)
		if err != nil {
			return nil, err
		}
		dict.Put(key, val)
	}
	return dict, nil
}

func (e *Evaluator) evalRangeExpr(node *ast.RangeExpr, env *Environment) (Object, error) {
	low, err := e.Eval(node.Low, env)
	if err != nil {
		return nil, err
	}
	high, err := e.Eval(node.High, env)
	if err != nil {
		return nil, err
	}
	lo, ok1 := low.(*Integer)
	hi, ok2 := high.(*Integer)
	if !ok1 || !ok2 {
		return nil, typeMismatch("range bounds must be Int, got %s..%s", TypeName(low), TypeName(high))
	}
	return &Range{Start: lo.Value, End: hi.Value}, nil
}

// evalCollectionAssign evaluates the collection, then the subscript, then the
// value; the list bounds check happens last.
func (e *Evaluator) evalCollectionAssign(node *ast.CollectionAssign, env *Environment) (Object, error) {
	coll, err := e.Eval(node.Collection, env)
	if err != nil {
		return nil, err
	}

	switch coll := coll.(type) {
	case *List:
		index, err := e.evalListIndex(node.Subscript, env)
		if err != nil {
			return nil, err
		}
		val, err := e.Eval(node.Value, env)
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= coll.Len() {
			return nil, outOfRange(index, coll.Len())
		}
		coll.Elements[index] = val
		return val, nil

	case *Dict:
		key, err := e.evalDictKey(node.Subscript, env)
		if err != nil {
			return nil, err
		}
		val, err := e.Eval(node.Value, env)
		if err != nil {
			return nil, err
		}
		coll.Put(key, val)
		return val, nil
	}
	return nil, notSubscriptable(coll)
}

// evalCollectionDeref reads a list slot or dictionary key. A missing
// dictionary key yields None.
func (e *Evaluator) evalCollectionDeref(node *ast.CollectionDeref, env *Environment) (Object, error) {
	coll, err := e.Eval(node.Collection, env)
	if err != nil {
		return nil, err
	}

	switch coll := coll.(type) {
	case *List:
		index, err := e.evalListIndex(node.Subscript, env)
		if err != nil {
			return nil, err
		}
		if index < 0 {
			return nil, newError(IndexError, "list index must be nonnegative, got %d", index)
		}
		if index >= coll.Len() {
			return nil, outOfRange(index, coll.Len())
		}
		return coll.Elements[index], nil

	case *Dict:
		key, err := e.evalDictKey(node.Subscript, env)
		if err != nil {
			return nil, err
		}
		if val, ok := coll.Get(key); ok {
			return val, nil
		}
		return NONE, nil
	}
	return nil, notSubscriptable(coll)
}

func (e *Evaluator) evalListIndex(subscript ast.Node, env *Environment) (int, error) {
	obj, err := e.Eval(subscript, env)
	if err != nil {
		return 0, err
	}
	index, ok := obj.(*Integer)
	if !ok {
		return 0, newError(IndexError, "list index must be an Int, got %s", TypeName(obj))
	}
	return int(index.Value), nil
}

func (e *Evaluator) evalDictKey(subscript ast.Node, env *Environment) (Hashable, error) {
	obj, err := e.Eval(subscript, env)
	if err != nil {
		return nil, err
	}
	key, ok := obj.(Hashable)
	if !ok {
		return nil, unhashable(obj)
	}
	return key, nil
}

func unhashable(obj Object) *Error {
	return newError(UnhashableKey, "dictionary keys must be String, Int, Float or Bool, got %s", TypeName(obj))
}

func notSubscriptable(obj Object) *Error {
	return newError(NotSubscriptable, "only lists and dictionaries can be subscripted, got %s", TypeName(obj))
}

func outOfRange(index, length int) *Error {
	return newError(IndexError, "list index %d out of range for length %d", index, length)
}
