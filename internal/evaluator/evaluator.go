package evaluator

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/funvibe/ember/internal/ast"
	"github.com/funvibe/ember/internal/config"
)

// CallFrame represents a single frame in the call stack
type CallFrame struct {
	Name   string // Function name
	Line   int    // Call site
	Column int
}

// ScopePolicy decides which scope a function body falls back to when a
// name is not one of its parameters.
type ScopePolicy int

const (
	// ScopeDynamic chains the call scope to the caller's scope, so a body
	// can see the caller's local bindings.
	ScopeDynamic ScopePolicy = iota
	// ScopeGlobal chains the call scope to the root scope of the
	// evaluation, so a body sees only its parameters and global bindings.
	ScopeGlobal
)

func (p ScopePolicy) String() string {
	switch p {
	case ScopeDynamic:
		return config.ScopeDynamic
	case ScopeGlobal:
		return config.ScopeGlobal
	}
	return fmt.Sprintf("ScopePolicy(%d)", int(p))
}

// ParseScopePolicy maps a configuration name to a policy.
func ParseScopePolicy(name string) (ScopePolicy, error) {
	switch name {
	case config.ScopeDynamic, "":
		return ScopeDynamic, nil
	case config.ScopeGlobal:
		return ScopeGlobal, nil
	}
	return 0, fmt.Errorf("unknown scope policy %q (want %s or %s)", name, config.ScopeDynamic, config.ScopeGlobal)
}

type Evaluator struct {
	// Out receives everything written by Print nodes.
	Out io.Writer
	// Scope selects how function call scopes are chained.
	Scope ScopePolicy
	// MaxDepth bounds the nesting of Eval calls.
	MaxDepth int
	// CallStack for stack traces on errors
	CallStack []CallFrame

	// root is the scope handed to the outermost Eval call.
	root *Environment
	// evalDepth tracks the current nesting depth of Eval calls to prevent stack overflow
	evalDepth int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithScope sets the function call scope policy.
func WithScope(p ScopePolicy) Option {
	return func(e *Evaluator) { e.Scope = p }
}

// WithMaxDepth sets the nesting limit; values <= 0 keep the default.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.MaxDepth = n
		}
	}
}

// New creates an evaluator writing to out (os.Stdout when nil).
func New(out io.Writer, opts ...Option) *Evaluator {
	if out == nil {
		out = os.Stdout
	}
	e := &Evaluator{
		Out:      out,
		Scope:    ScopeDynamic,
		MaxDepth: config.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs node in env with a default evaluator writing to out.
func Evaluate(node ast.Node, env *Environment, out io.Writer) (Object, error) {
	return New(out).Eval(node, env)
}

// Eval evaluates node in env. The first call on an idle evaluator marks env
// as the root scope for ScopeGlobal.
func (e *Evaluator) Eval(node ast.Node, env *Environment) (Object, error) {
	if e.evalDepth == 0 {
		e.root = env
		e.CallStack = e.CallStack[:0]
	}
	// Check recursion depth to prevent Go stack overflow
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	if e.evalDepth > e.MaxDepth {
		return nil, newError(StackOverflow, "maximum recursion depth exceeded (%d)", e.MaxDepth)
	}

	obj, err := e.evalCore(node, env)
	if err != nil {
		var rtErr *Error
		if errors.As(err, &rtErr) {
			if rtErr.Line == 0 && node != nil {
				pos := node.Position()
				rtErr.Line = pos.Line
				rtErr.Column = pos.Column
			}
			e.attachStack(rtErr)
		}
		return nil, err
	}
	return obj, nil
}

func (e *Evaluator) evalCore(node ast.Node, env *Environment) (Object, error) {
	switch node := node.(type) {
	// Literals
	case *ast.NoneLiteral:
		return NONE, nil
	case *ast.StringLiteral:
		return evalStringLiteral(node)
	case *ast.IntegerLiteral:
		return evalIntegerLiteral(node)
	case *ast.FloatLiteral:
		return evalFloatLiteral(node)
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Lexeme == "true"), nil

	// Variables
	case *ast.Assign:
		return e.evalAssign(node, env)
	case *ast.Deref:
		return env.Get(node.Name)

	// Collections
	case *ast.ListExpr:
		return e.evalListExpr(node, env)
	case *ast.DictExpr:
		return e.evalDictExpr(node, env)
	case *ast.RangeExpr:
		return e.evalRangeExpr(node, env)
	case *ast.CollectionAssign:
		return e.evalCollectionAssign(node, env)
	case *ast.CollectionDeref:
		return e.evalCollectionDeref(node, env)

	// Operators
	case *ast.Arithmetic:
		return e.evalArithmetic(node, env)
	case *ast.Equality:
		return e.evalEquality(node, env)
	case *ast.Compare:
		return e.evalCompare(node, env)
	case *ast.Concatenate:
		return e.evalConcatenate(node, env)
	case *ast.Negate:
		return e.evalNegate(node, env)
	case *ast.LogicalOperator:
		return e.evalLogicalOperator(node, env)

	// Control flow
	case *ast.Block:
		return e.evalBlock(node, env)
	case *ast.Conditional:
		return e.evalConditional(node, env)
	case *ast.ForLoop:
		return e.evalForLoop(node, env)

	// Functions
	case *ast.DeclareFn:
		return e.evalDeclareFn(node, env), nil
	case *ast.InvokeFn:
		return e.evalInvokeFn(node, env)

	case *ast.Print:
		return e.evalPrint(node, env)

	case nil:
		return nil, typeMismatch("missing expression")
	}
	return nil, typeMismatch("unknown node type %T", node)
}
