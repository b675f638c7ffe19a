package evaluator

import (
	"github.com/funvibe/ember/internal/ast"
)

// evalBlock yields the value of the last expression, or None for an empty block.
func (e *Evaluator) evalBlock(node *ast.Block, env *Environment) (Object, error) {
	var result Object = NONE
	for _, expr := range node.Body {
		val, err := e.Eval(expr, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

// evalConditional evaluates only the selected branch.
func (e *Evaluator) evalConditional(node *ast.Conditional, env *Environment) (Object, error) {
	cond, err := e.Eval(node.Cond, env)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(*Boolean)
	if !ok {
		return nil, typeMismatch("condition must evaluate to a Bool, got %s", TypeName(cond))
	}
	if b.Value {
		return e.Eval(node.Then, env)
	}
	return e.Eval(node.Else, env)
}

// evalForLoop binds the loop variable in env itself, so its last value stays
// visible after the loop. Lists are walked live by index; dictionaries
// iterate a snapshot of their keys.
func (e *Evaluator) evalForLoop(node *ast.ForLoop, env *Environment) (Object, error) {
	iterable, err := e.Eval(node.Iterable, env)
	if err != nil {
		return nil, err
	}

	var result Object = NONE
	step := func(item Object) error {
		env.Set(node.Var, item)
		val, err := e.Eval(node.Body, env)
		if err != nil {
			return err
		}
		result = val
		return nil
	}

	switch it := iterable.(type) {
	case *List:
		for i := 0; i < it.Len(); i++ {
			if err := step(it.Elements[i]); err != nil {
				return nil, err
			}
		}
	case *Dict:
		for _, key := range it.Keys() {
			if err := step(key); err != nil {
				return nil, err
			}
		}
	case *Range:
		err := it.Each(func(i int32) error {
			return step(&Integer{Value: i})
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, newError(NotIterable, "can only iterate over lists, dictionaries and integer ranges, got %s", TypeName(iterable))
	}
	return result, nil
}
