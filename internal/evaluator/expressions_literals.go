package evaluator

import (
	"strconv"
	"strings"

	"github.com/funvibe/ember/internal/ast"
)

// evalStringLiteral strips the surrounding quote characters and unescapes \".
// No other escape sequence is interpreted.
func evalStringLiteral(node *ast.StringLiteral) (Object, error) {
	lex := node.Lexeme
	if len(lex) < 2 {
		return nil, newError(MalformedLiteral, "string literal %q is missing its quotes", lex)
	}
	return &String{Value: strings.ReplaceAll(lex[1:len(lex)-1], `\"`, `"`)}, nil
}

func evalIntegerLiteral(node *ast.IntegerLiteral) (Object, error) {
	v, err := strconv.ParseInt(node.Lexeme, 10, 32)
	if err != nil {
		return nil, &Error{
			Kind:    MalformedLiteral,
			Message: "invalid integer literal " + strconv.Quote(node.Lexeme),
			Err:     err,
		}
	}
	return &Integer{Value: int32(v)}, nil
}

func evalFloatLiteral(node *ast.FloatLiteral) (Object, error) {
	v, err := strconv.ParseFloat(node.Lexeme, 32)
	if err != nil {
		return nil, &Error{
			Kind:    MalformedLiteral,
			Message: "invalid float literal " + strconv.Quote(node.Lexeme),
			Err:     err,
		}
	}
	return &Float{Value: float32(v)}, nil
}
