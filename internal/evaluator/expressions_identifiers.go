package evaluator

import (
	"github.com/funvibe/ember/internal/ast"
)

func (e *Evaluator) evalAssign(node *ast.Assign, env *Environment) (Object, error) {
	val, err := e.Eval(node.Value, env)
	if err != nil {
		return nil, err
	}
	return env.Set(node.Name, val), nil
}
