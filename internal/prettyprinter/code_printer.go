package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/ember/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"=":   0, // Assignment
	"or":  1,
	"and": 2,
	"==":  3,
	"!=":  3,
	"<":   4,
	">":   4,
	"<=":  4,
	">=":  4,
	"..":  5, // Range
	"++":  6, // Concatenation
	"+":   7,
	"-":   7,
	"*":   8,
	"/":   8,
	"not": 9, // Prefix
}

const atomPrecedence = 10

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return atomPrecedence
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders node as pseudo-source.
func Print(node ast.Node) string {
	p := NewCodePrinter()
	p.PrintNode(node)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

// PrintNode renders a top-level node. A top-level block prints its members
// one per line without braces.
func (p *CodePrinter) PrintNode(node ast.Node) {
	if block, ok := node.(*ast.Block); ok {
		for _, expr := range block.Body {
			p.writeIndent()
			p.printExpr(expr, 0, false)
			p.write("\n")
		}
		return
	}
	p.printExpr(node, 0, false)
	p.write("\n")
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Node, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.NoneLiteral:
		p.write("none")
	case *ast.StringLiteral:
		p.write(e.Lexeme)
	case *ast.IntegerLiteral:
		p.write(e.Lexeme)
	case *ast.FloatLiteral:
		p.write(e.Lexeme)
	case *ast.BooleanLiteral:
		p.write(e.Lexeme)
	case *ast.Deref:
		p.write(e.Name)

	case *ast.Assign:
		p.infix("=", parentPrec, isRight, func() { p.write(e.Name) }, func() { p.printExpr(e.Value, 0, true) })
	case *ast.CollectionAssign:
		p.infix("=", parentPrec, isRight, func() {
			p.printExpr(e.Collection, atomPrecedence, false)
			p.write("[")
			p.printExpr(e.Subscript, 0, false)
			p.write("]")
		}, func() { p.printExpr(e.Value, 0, true) })
	case *ast.CollectionDeref:
		p.printExpr(e.Collection, atomPrecedence, false)
		p.write("[")
		p.printExpr(e.Subscript, 0, false)
		p.write("]")

	case *ast.ListExpr:
		p.write("[")
		p.printList(e.Elements)
		p.write("]")
	case *ast.DictExpr:
		p.write("{")
		for i, pair := range e.Pairs {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(pair.Key, 0, false)
			p.write(": ")
			p.printExpr(pair.Value, 0, false)
		}
		p.write("}")
	case *ast.RangeExpr:
		p.binary("..", e.Low, e.High, parentPrec, isRight)

	case *ast.Arithmetic:
		p.binary(e.Op.Symbol(), e.Left, e.Right, parentPrec, isRight)
	case *ast.LogicalOperator:
		p.binary(e.Op.Symbol(), e.Left, e.Right, parentPrec, isRight)
	case *ast.Equality:
		p.binary(e.Cmp.Symbol(), e.Left, e.Right, parentPrec, isRight)
	case *ast.Compare:
		p.binary(e.Cmp.Symbol(), e.Left, e.Right, parentPrec, isRight)
	case *ast.Concatenate:
		p.binary("++", e.Left, e.Right, parentPrec, isRight)
	case *ast.Negate:
		prec := getPrecedence("not")
		if prec < parentPrec {
			p.write("(")
		}
		p.write("not ")
		p.printExpr(e.Operand, prec, true)
		if prec < parentPrec {
			p.write(")")
		}

	case *ast.Block:
		p.printBlock(e)
	case *ast.Conditional:
		if parentPrec > 0 {
			p.write("(")
			defer p.write(")")
		}
		p.write("if ")
		p.printExpr(e.Cond, 0, false)
		p.write(" ")
		p.printBranch(e.Then)
		if _, none := e.Else.(*ast.NoneLiteral); !none {
			p.write(" else ")
			if nested, ok := e.Else.(*ast.Conditional); ok {
				p.printExpr(nested, 0, false)
			} else {
				p.printBranch(e.Else)
			}
		}
	case *ast.ForLoop:
		if parentPrec > 0 {
			p.write("(")
			defer p.write(")")
		}
		p.write("for " + e.Var + " in ")
		p.printExpr(e.Iterable, 0, false)
		p.write(" ")
		p.printBranch(e.Body)

	case *ast.DeclareFn:
		if parentPrec > 0 {
			p.write("(")
			defer p.write(")")
		}
		p.write("fn " + e.Name + "(" + strings.Join(e.Params, ", ") + ") ")
		p.printBranch(e.Body)
	case *ast.InvokeFn:
		p.write(e.Name + "(")
		p.printList(e.Args)
		p.write(")")
	case *ast.Print:
		if e.Newline {
			p.write("println(")
		} else {
			p.write("print(")
		}
		if _, none := e.Value.(*ast.NoneLiteral); !none {
			p.printExpr(e.Value, 0, false)
		}
		p.write(")")

	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printList(nodes []ast.Node) {
	for i, n := range nodes {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(n, 0, false)
	}
}

// binary prints a left-associative infix operator.
func (p *CodePrinter) binary(op string, left, right ast.Node, parentPrec int, isRight bool) {
	p.infix(op, parentPrec, isRight,
		func() { p.printExpr(left, getPrecedence(op), false) },
		func() { p.printExpr(right, getPrecedence(op), true) })
}

func (p *CodePrinter) infix(op string, parentPrec int, isRight bool, left, right func()) {
	prec := getPrecedence(op)
	needParens := prec < parentPrec
	// Same precedence on the right of a left-associative operator
	if prec == parentPrec && isRight && op != "=" {
		needParens = true
	}
	if needParens {
		p.write("(")
	}
	left()
	p.write(" " + op + " ")
	right()
	if needParens {
		p.write(")")
	}
}

// printBranch prints a block body, wrapping a single expression in braces.
func (p *CodePrinter) printBranch(node ast.Node) {
	if block, ok := node.(*ast.Block); ok {
		p.printBlock(block)
		return
	}
	p.write("{ ")
	p.printExpr(node, 0, false)
	p.write(" }")
}

func (p *CodePrinter) printBlock(block *ast.Block) {
	if len(block.Body) == 0 {
		p.write("{ }")
		return
	}
	p.write("{\n")
	p.indent++
	for _, expr := range block.Body {
		p.writeIndent()
		p.printExpr(expr, 0, false)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}
