package treefile

import (
	"bytes"
	"fmt"

	"github.com/funvibe/ember/internal/ast"

	"gopkg.in/yaml.v3"
)

// Encode renders node as a tree document that Parse reads back into an
// equivalent tree. Leaf nodes are written in flow style.
func Encode(node ast.Node) ([]byte, error) {
	root, err := encodeNode(node)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type nodeBuilder struct {
	n *yaml.Node
}

func newNode(typ string) *nodeBuilder {
	b := &nodeBuilder{n: &yaml.Node{Kind: yaml.MappingNode}}
	return b.str("type", typ)
}

func (b *nodeBuilder) flow() *nodeBuilder {
	b.n.Style = yaml.FlowStyle
	return b
}

func (b *nodeBuilder) add(key string, value *yaml.Node) *nodeBuilder {
	b.n.Content = append(b.n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
	return b
}

func (b *nodeBuilder) str(key, value string) *nodeBuilder {
	return b.add(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

// raw adds an untagged scalar so numbers and booleans stay unquoted.
func (b *nodeBuilder) raw(key, value string) *nodeBuilder {
	return b.add(key, &yaml.Node{Kind: yaml.ScalarNode, Value: value})
}

func (b *nodeBuilder) child(key string, node ast.Node) error {
	c, err := encodeNode(node)
	if err != nil {
		return err
	}
	b.add(key, c)
	return nil
}

func (b *nodeBuilder) list(key string, nodes []ast.Node) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, node := range nodes {
		c, err := encodeNode(node)
		if err != nil {
			return err
		}
		seq.Content = append(seq.Content, c)
	}
	b.add(key, seq)
	return nil
}

func (b *nodeBuilder) names(key string, names []string) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, name := range names {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name})
	}
	b.add(key, seq)
}

func (b *nodeBuilder) binary(left, right ast.Node) error {
	if err := b.child("left", left); err != nil {
		return err
	}
	return b.child("right", right)
}

func encodeNode(node ast.Node) (*yaml.Node, error) {
	switch n := node.(type) {
	case *ast.NoneLiteral:
		return newNode(TypeNone).flow().n, nil
	case *ast.StringLiteral:
		return newNode(TypeString).flow().str("lexeme", n.Lexeme).n, nil
	case *ast.IntegerLiteral:
		return newNode(TypeInt).flow().raw("lexeme", n.Lexeme).n, nil
	case *ast.FloatLiteral:
		return newNode(TypeFloat).flow().raw("lexeme", n.Lexeme).n, nil
	case *ast.BooleanLiteral:
		return newNode(TypeBool).flow().raw("lexeme", n.Lexeme).n, nil

	case *ast.Assign:
		b := newNode(TypeAssign).str("name", n.Name)
		return b.n, b.child("value", n.Value)
	case *ast.Deref:
		return newNode(TypeDeref).flow().str("name", n.Name).n, nil

	case *ast.ListExpr:
		b := newNode(TypeList)
		return b.n, b.list("elements", n.Elements)
	case *ast.DictExpr:
		b := newNode(TypeDict)
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, pair := range n.Pairs {
			p := &nodeBuilder{n: &yaml.Node{Kind: yaml.MappingNode}}
			if err := p.child("key", pair.Key); err != nil {
				return nil, err
			}
			if err := p.child("value", pair.Value); err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, p.n)
		}
		b.add("pairs", seq)
		return b.n, nil
	case *ast.RangeExpr:
		b := newNode(TypeRange)
		if err := b.child("low", n.Low); err != nil {
			return nil, err
		}
		return b.n, b.child("high", n.High)
	case *ast.CollectionAssign:
		b := newNode(TypeCollectionAssign)
		if err := b.child("collection", n.Collection); err != nil {
			return nil, err
		}
		if err := b.child("subscript", n.Subscript); err != nil {
			return nil, err
		}
		return b.n, b.child("value", n.Value)
	case *ast.CollectionDeref:
		b := newNode(TypeCollectionDeref)
		if err := b.child("collection", n.Collection); err != nil {
			return nil, err
		}
		return b.n, b.child("subscript", n.Subscript)

	case *ast.Arithmetic:
		b := newNode(TypeArithmetic).str("op", n.Op.String())
		return b.n, b.binary(n.Left, n.Right)
	case *ast.LogicalOperator:
		b := newNode(TypeLogical).str("op", n.Op.String())
		return b.n, b.binary(n.Left, n.Right)
	case *ast.Equality:
		b := newNode(TypeEquality).str("op", n.Cmp.String())
		return b.n, b.binary(n.Left, n.Right)
	case *ast.Compare:
		b := newNode(TypeCompare).str("op", n.Cmp.String())
		return b.n, b.binary(n.Left, n.Right)
	case *ast.Concatenate:
		b := newNode(TypeConcatenate)
		return b.n, b.binary(n.Left, n.Right)
	case *ast.Negate:
		b := newNode(TypeNegate)
		return b.n, b.child("operand", n.Operand)

	case *ast.Block:
		b := newNode(TypeBlock)
		return b.n, b.list("body", n.Body)
	case *ast.Conditional:
		b := newNode(TypeIf)
		if err := b.child("cond", n.Cond); err != nil {
			return nil, err
		}
		if err := b.child("then", n.Then); err != nil {
			return nil, err
		}
		return b.n, b.child("else", n.Else)
	case *ast.ForLoop:
		b := newNode(TypeFor).str("var", n.Var)
		if err := b.child("iterable", n.Iterable); err != nil {
			return nil, err
		}
		return b.n, b.child("body", n.Body)

	case *ast.DeclareFn:
		b := newNode(TypeFn).str("name", n.Name)
		b.names("params", n.Params)
		return b.n, b.child("body", n.Body)
	case *ast.InvokeFn:
		b := newNode(TypeCall).str("name", n.Name)
		return b.n, b.list("args", n.Args)

	case *ast.Print:
		b := newNode(TypePrint)
		if err := b.child("value", n.Value); err != nil {
			return nil, err
		}
		return b.raw("newline", fmt.Sprint(n.Newline)).n, nil
	}
	return nil, fmt.Errorf("cannot encode node of type %T", node)
}
