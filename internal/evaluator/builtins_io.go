package evaluator

import (
	"io"

	"github.com/funvibe/ember/internal/ast"
)

// evalPrint writes the printed form of its operand to e.Out. A NoneLiteral
// operand prints nothing, which together with Newline emits a bare line break.
func (e *Evaluator) evalPrint(node *ast.Print, env *Environment) (Object, error) {
	var text string
	if _, ok := node.Value.(*ast.NoneLiteral); !ok {
		val, err := e.Eval(node.Value, env)
		if err != nil {
			return nil, err
		}
		text = val.Inspect()
	}
	if node.Newline {
		text += "\n"
	}
	if _, err := io.WriteString(e.Out, text); err != nil {
		return nil, &Error{Kind: OutputFailure, Message: "cannot write output: " + err.Error(), Err: err}
	}
	return NONE, nil
}
