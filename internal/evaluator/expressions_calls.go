package evaluator

import (
	"github.com/funvibe/ember/internal/ast"
)

func (e *Evaluator) evalDeclareFn(node *ast.DeclareFn, env *Environment) Object {
	params := make([]string, len(node.Params))
	copy(params, node.Params)
	fn := &Function{
		Name:       node.Name,
		Parameters: params,
		Body:       node.Body,
	}
	return env.Set(node.Name, fn)
}

// evalInvokeFn checks arity before evaluating any argument, evaluates the
// arguments in the caller's scope, then runs the body in a fresh call scope.
func (e *Evaluator) evalInvokeFn(node *ast.InvokeFn, env *Environment) (Object, error) {
	obj, err := env.Get(node.Name)
	if err != nil {
		return nil, err
	}
	fn, ok := obj.(*Function)
	if !ok {
		return nil, newError(NotCallable, "%s is not a function, it is %s", node.Name, TypeName(obj))
	}
	if len(fn.Parameters) != len(node.Args) {
		return nil, newError(ArityMismatch, "%s expects %d arguments but received %d",
			node.Name, len(fn.Parameters), len(node.Args))
	}

	bindings := make(map[string]Object, len(fn.Parameters))
	args := make([]Object, len(node.Args))
	for i, arg := range node.Args {
		val, err := e.Eval(arg, env)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	for i, name := range fn.Parameters {
		bindings[name] = args[i]
	}

	callEnv := NewEnclosedEnvironment(e.callParent(env), bindings)

	e.PushCall(fn.Name, node.Line, node.Column)
	defer e.PopCall()
	return e.Eval(fn.Body, callEnv)
}

// callParent picks the scope a call scope falls back to.
func (e *Evaluator) callParent(caller *Environment) *Environment {
	if e.Scope == ScopeGlobal && e.root != nil {
		return e.root
	}
	return caller
}
