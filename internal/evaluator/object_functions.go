package evaluator

import (
	"fmt"
	"strings"

	"github.com/funvibe/ember/internal/ast"
)

// Function is a user defined function. It captures no environment: the
// body runs in a scope built at call time (see ScopePolicy).
type Function struct {
	Name       string
	Parameters []string
	Body       ast.Node
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	return fmt.Sprintf("%s(%s) { ... }", f.Name, strings.Join(f.Parameters, ", "))
}
