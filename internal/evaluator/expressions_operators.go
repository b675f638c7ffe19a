package evaluator

import (
	"strings"

	"github.com/funvibe/ember/internal/ast"
)

func (e *Evaluator) evalOperands(left, right ast.Node, env *Environment) (Object, Object, error) {
	l, err := e.Eval(left, env)
	if err != nil {
		return nil, nil, err
	}
	r, err := e.Eval(right, env)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func (e *Evaluator) evalArithmetic(node *ast.Arithmetic, env *Environment) (Object, error) {
	left, right, err := e.evalOperands(node.Left, node.Right, env)
	if err != nil {
		return nil, err
	}

	// String repetition, in either operand order
	if node.Op == ast.Mul {
		if s, ok := left.(*String); ok {
			if n, ok := right.(*Integer); ok {
				return repeatString(s, n)
			}
		}
		if n, ok := left.(*Integer); ok {
			if s, ok := right.(*String); ok {
				return repeatString(s, n)
			}
		}
	}

	if l, ok := left.(*Integer); ok {
		if r, ok := right.(*Integer); ok {
			return evalIntegerArithmetic(node.Op, l.Value, r.Value)
		}
	}

	l, ok := toFloat(left)
	if !ok {
		return nil, typeMismatch("undefined arithmetic operation %s on %s and %s", node.Op, TypeName(left), TypeName(right))
	}
	r, ok := toFloat(right)
	if !ok {
		return nil, typeMismatch("undefined arithmetic operation %s on %s and %s", node.Op, TypeName(left), TypeName(right))
	}
	return evalFloatArithmetic(node.Op, l, r)
}

func repeatString(s *String, n *Integer) (Object, error) {
	if n.Value < 0 {
		return nil, typeMismatch("cannot repeat a string %d times", n.Value)
	}
	return &String{Value: strings.Repeat(s.Value, int(n.Value))}, nil
}

// evalIntegerArithmetic wraps on overflow; division truncates toward zero.
func evalIntegerArithmetic(op ast.Operator, l, r int32) (Object, error) {
	switch op {
	case ast.Add:
		return &Integer{Value: l + r}, nil
	case ast.Sub:
		return &Integer{Value: l - r}, nil
	case ast.Mul:
		return &Integer{Value: l * r}, nil
	case ast.Div:
		if r == 0 {
			return nil, newError(DivisionByZero, "cannot divide by zero")
		}
		return &Integer{Value: l / r}, nil
	}
	return nil, typeMismatch("invalid arithmetic operator %s", op)
}

func evalFloatArithmetic(op ast.Operator, l, r float32) (Object, error) {
	switch op {
	case ast.Add:
		return &Float{Value: l + r}, nil
	case ast.Sub:
		return &Float{Value: l - r}, nil
	case ast.Mul:
		return &Float{Value: l * r}, nil
	case ast.Div:
		if r == 0 {
			return nil, newError(DivisionByZero, "cannot divide by zero")
		}
		return &Float{Value: l / r}, nil
	}
	return nil, typeMismatch("invalid arithmetic operator %s", op)
}

func toFloat(obj Object) (float32, bool) {
	switch v := obj.(type) {
	case *Integer:
		return float32(v.Value), true
	case *Float:
		return v.Value, true
	}
	return 0, false
}

func (e *Evaluator) evalEquality(node *ast.Equality, env *Environment) (Object, error) {
	left, right, err := e.evalOperands(node.Left, node.Right, env)
	if err != nil {
		return nil, err
	}
	equal, ok := primitiveEqual(left, right)
	if !ok {
		return nil, typeMismatch("equality check needs two values of the same primitive type, got %s and %s", TypeName(left), TypeName(right))
	}
	switch node.Cmp {
	case ast.EQ:
		return nativeBoolToBooleanObject(equal), nil
	case ast.NE:
		return nativeBoolToBooleanObject(!equal), nil
	}
	return nil, typeMismatch("invalid equality comparator %s", node.Cmp)
}

func (e *Evaluator) evalCompare(node *ast.Compare, env *Environment) (Object, error) {
	left, right, err := e.evalOperands(node.Left, node.Right, env)
	if err != nil {
		return nil, err
	}
	switch l := left.(type) {
	case *Integer:
		if r, ok := right.(*Integer); ok {
			return compareOrdered(node.Cmp, l.Value, r.Value)
		}
	case *Float:
		if r, ok := right.(*Float); ok {
			return compareOrdered(node.Cmp, l.Value, r.Value)
		}
	}
	return nil, typeMismatch("can only compare numbers of the same type, got %s and %s", TypeName(left), TypeName(right))
}

func compareOrdered[T int32 | float32](cmp ast.Comparator, l, r T) (Object, error) {
	switch cmp {
	case ast.LT:
		return nativeBoolToBooleanObject(l < r), nil
	case ast.LE:
		return nativeBoolToBooleanObject(l <= r), nil
	case ast.GT:
		return nativeBoolToBooleanObject(l > r), nil
	case ast.GE:
		return nativeBoolToBooleanObject(l >= r), nil
	}
	return nil, typeMismatch("invalid comparator %s", cmp)
}

func (e *Evaluator) evalConcatenate(node *ast.Concatenate, env *Environment) (Object, error) {
	left, right, err := e.evalOperands(node.Left, node.Right, env)
	if err != nil {
		return nil, err
	}
	return &String{Value: left.Inspect() + right.Inspect()}, nil
}

func (e *Evaluator) evalNegate(node *ast.Negate, env *Environment) (Object, error) {
	operand, err := e.Eval(node.Operand, env)
	if err != nil {
		return nil, err
	}
	b, ok := operand.(*Boolean)
	if !ok {
		return nil, typeMismatch("can only negate Bool, got %s", TypeName(operand))
	}
	return nativeBoolToBooleanObject(!b.Value), nil
}

// evalLogicalOperator evaluates both sides before combining them.
func (e *Evaluator) evalLogicalOperator(node *ast.LogicalOperator, env *Environment) (Object, error) {
	left, right, err := e.evalOperands(node.Left, node.Right, env)
	if err != nil {
		return nil, err
	}
	l, ok1 := left.(*Boolean)
	r, ok2 := right.(*Boolean)
	if !ok1 || !ok2 {
		return nil, typeMismatch("logical operators need Bool operands, got %s and %s", TypeName(left), TypeName(right))
	}
	switch node.Op {
	case ast.And:
		return nativeBoolToBooleanObject(l.Value && r.Value), nil
	case ast.Or:
		return nativeBoolToBooleanObject(l.Value || r.Value), nil
	}
	return nil, typeMismatch("invalid logical operator %s", node.Op)
}
