// Package treefile reads and writes expression trees as YAML documents.
//
// Every node is a mapping with a "type" tag and kind-specific fields, e.g.
//
//	type: Arithmetic
//	op: Add
//	left: {type: Int, lexeme: "1"}
//	right: {type: Deref, name: x}
//
// A sequence at the top level is shorthand for a Block. JSON documents are
// accepted since JSON is a subset of YAML. Decoded nodes carry the line and
// column they came from so runtime errors can point back into the document.
package treefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/ember/internal/ast"

	"gopkg.in/yaml.v3"
)

// DecodeError reports a malformed tree document.
type DecodeError struct {
	Line    int
	Column  int
	Message string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

func errorAt(n *yaml.Node, format string, a ...interface{}) *DecodeError {
	return &DecodeError{Line: n.Line, Column: n.Column, Message: fmt.Sprintf(format, a...)}
}

// Load reads and decodes the tree document at path.
func Load(path string) (ast.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	node, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return node, nil
}

// Parse decodes a single tree document.
func Parse(data []byte) (ast.Node, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DecodeError{Message: "empty document"}
		}
		return nil, &DecodeError{Message: err.Error()}
	}
	if len(doc.Content) == 0 {
		return nil, &DecodeError{Message: "empty document"}
	}
	d := &decoder{expanding: make(map[*yaml.Node]bool)}
	root := doc.Content[0]
	if target := resolveAlias(root); target.Kind == yaml.SequenceNode {
		body, err := d.decodeNodes(root)
		if err != nil {
			return nil, err
		}
		return &ast.Block{Pos: posOf(target), Body: body}, nil
	}
	return d.decodeNode(root)
}

// maxDocumentNodes bounds the size of a document once its aliases are
// expanded.
const maxDocumentNodes = 100000

// decoder holds the state of decoding one document. expanding is the set
// of anchored nodes currently being decoded through an alias.
type decoder struct {
	expanding map[*yaml.Node]bool
	nodes     int
}

// enter follows n if it is an alias. The returned leave func must run once
// the target has been decoded. An alias to a node that encloses it is an
// error.
func (d *decoder) enter(n *yaml.Node) (*yaml.Node, func(), error) {
	if n.Kind != yaml.AliasNode {
		return n, func() {}, nil
	}
	target := resolveAlias(n)
	if target == nil {
		return nil, nil, errorAt(n, "unknown alias *%s", n.Value)
	}
	if d.expanding[target] {
		return nil, nil, errorAt(n, "alias *%s refers to a node that contains it", n.Value)
	}
	d.expanding[target] = true
	return target, func() { delete(d.expanding, target) }, nil
}

func posOf(n *yaml.Node) ast.Pos {
	return ast.Pos{Line: n.Line, Column: n.Column}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// mapping is the field view of one node.
type mapping struct {
	d      *decoder
	node   *yaml.Node
	fields map[string]*yaml.Node
}

func newMapping(d *decoder, n *yaml.Node) (*mapping, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "expected a node mapping, got %s", kindName(n))
	}
	m := &mapping{d: d, node: n, fields: make(map[string]*yaml.Node, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if _, dup := m.fields[key.Value]; dup {
			return nil, errorAt(key, "duplicate field %q", key.Value)
		}
		m.fields[key.Value] = n.Content[i+1]
	}
	return m, nil
}

func (m *mapping) lookup(name string) (*yaml.Node, bool) {
	n, ok := m.fields[name]
	return n, ok && n != nil
}

func (m *mapping) require(name string) (*yaml.Node, error) {
	n, ok := m.lookup(name)
	if !ok {
		return nil, errorAt(m.node, "missing field %q", name)
	}
	return n, nil
}

func (m *mapping) scalar(name string) (string, error) {
	n, err := m.require(name)
	if err != nil {
		return "", err
	}
	n = resolveAlias(n)
	if n.Kind != yaml.ScalarNode {
		return "", errorAt(n, "field %q must be a scalar, got %s", name, kindName(n))
	}
	return n.Value, nil
}

func (m *mapping) child(name string) (ast.Node, error) {
	n, err := m.require(name)
	if err != nil {
		return nil, err
	}
	return m.d.decodeNode(n)
}

// optionalChild decodes name, or returns a NoneLiteral when it is absent.
func (m *mapping) optionalChild(name string) (ast.Node, error) {
	n, ok := m.lookup(name)
	if !ok {
		return &ast.NoneLiteral{Pos: posOf(m.node)}, nil
	}
	return m.d.decodeNode(n)
}

func (m *mapping) children(name string, required bool) ([]ast.Node, error) {
	n, ok := m.lookup(name)
	if !ok {
		if required {
			return nil, errorAt(m.node, "missing field %q", name)
		}
		return []ast.Node{}, nil
	}
	return m.d.decodeNodes(n)
}

func (m *mapping) strings(name string) ([]string, error) {
	n, ok := m.lookup(name)
	if !ok {
		return []string{}, nil
	}
	n = resolveAlias(n)
	if n.Kind != yaml.SequenceNode {
		return nil, errorAt(n, "field %q must be a list of names, got %s", name, kindName(n))
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.ScalarNode {
			return nil, errorAt(item, "field %q must contain names, got %s", name, kindName(item))
		}
		out = append(out, item.Value)
	}
	return out, nil
}

func (m *mapping) flag(name string) (bool, error) {
	n, ok := m.lookup(name)
	if !ok {
		return false, nil
	}
	var b bool
	if err := resolveAlias(n).Decode(&b); err != nil {
		return false, errorAt(n, "field %q must be true or false", name)
	}
	return b, nil
}

// lexeme returns the raw literal text from "lexeme", falling back to "value".
func (m *mapping) lexeme() (string, bool, error) {
	if n, ok := m.lookup("lexeme"); ok {
		n = resolveAlias(n)
		if n.Kind != yaml.ScalarNode {
			return "", false, errorAt(n, "field \"lexeme\" must be a scalar, got %s", kindName(n))
		}
		return n.Value, true, nil
	}
	v, err := m.scalar("value")
	return v, false, err
}

func (d *decoder) decodeNodes(n *yaml.Node) ([]ast.Node, error) {
	n, leave, err := d.enter(n)
	if err != nil {
		return nil, err
	}
	defer leave()
	if n.Kind != yaml.SequenceNode {
		return nil, errorAt(n, "expected a list of nodes, got %s", kindName(n))
	}
	out := make([]ast.Node, 0, len(n.Content))
	for _, item := range n.Content {
		node, err := d.decodeNode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func (d *decoder) decodeNode(n *yaml.Node) (ast.Node, error) {
	n, leave, err := d.enter(n)
	if err != nil {
		return nil, err
	}
	defer leave()
	if d.nodes++; d.nodes > maxDocumentNodes {
		return nil, &DecodeError{Message: fmt.Sprintf("document expands to more than %d nodes", maxDocumentNodes)}
	}
	m, err := newMapping(d, n)
	if err != nil {
		return nil, err
	}
	typ, err := m.scalar("type")
	if err != nil {
		return nil, err
	}
	pos := posOf(n)

	switch typ {
	case TypeNone:
		return &ast.NoneLiteral{Pos: pos}, nil
	case TypeString:
		lex, raw, err := m.lexeme()
		if err != nil {
			return nil, err
		}
		if !raw {
			lex = quoteString(lex)
		}
		return &ast.StringLiteral{Pos: pos, Lexeme: lex}, nil
	case TypeInt:
		lex, _, err := m.lexeme()
		if err != nil {
			return nil, err
		}
		return &ast.IntegerLiteral{Pos: pos, Lexeme: lex}, nil
	case TypeFloat:
		lex, _, err := m.lexeme()
		if err != nil {
			return nil, err
		}
		return &ast.FloatLiteral{Pos: pos, Lexeme: lex}, nil
	case TypeBool:
		lex, _, err := m.lexeme()
		if err != nil {
			return nil, err
		}
		return &ast.BooleanLiteral{Pos: pos, Lexeme: lex}, nil

	case TypeAssign:
		name, err := m.scalar("name")
		if err != nil {
			return nil, err
		}
		value, err := m.child("value")
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Pos: pos, Name: name, Value: value}, nil
	case TypeDeref:
		name, err := m.scalar("name")
		if err != nil {
			return nil, err
		}
		return &ast.Deref{Pos: pos, Name: name}, nil

	case TypeList:
		elements, err := m.children("elements", false)
		if err != nil {
			return nil, err
		}
		return &ast.ListExpr{Pos: pos, Elements: elements}, nil
	case TypeDict:
		pairs, err := decodePairs(m)
		if err != nil {
			return nil, err
		}
		return &ast.DictExpr{Pos: pos, Pairs: pairs}, nil
	case TypeRange:
		low, err := m.child("low")
		if err != nil {
			return nil, err
		}
		high, err := m.child("high")
		if err != nil {
			return nil, err
		}
		return &ast.RangeExpr{Pos: pos, Low: low, High: high}, nil
	case TypeCollectionAssign:
		coll, err := m.child("collection")
		if err != nil {
			return nil, err
		}
		sub, err := m.child("subscript")
		if err != nil {
			return nil, err
		}
		value, err := m.child("value")
		if err != nil {
			return nil, err
		}
		return &ast.CollectionAssign{Pos: pos, Collection: coll, Subscript: sub, Value: value}, nil
	case TypeCollectionDeref:
		coll, err := m.child("collection")
		if err != nil {
			return nil, err
		}
		sub, err := m.child("subscript")
		if err != nil {
			return nil, err
		}
		return &ast.CollectionDeref{Pos: pos, Collection: coll, Subscript: sub}, nil

	case TypeArithmetic:
		op, err := decodeOperator(m, ast.Add, ast.Sub, ast.Mul, ast.Div)
		if err != nil {
			return nil, err
		}
		left, right, err := decodeBinary(m)
		if err != nil {
			return nil, err
		}
		return &ast.Arithmetic{Pos: pos, Op: op, Left: left, Right: right}, nil
	case TypeLogical:
		op, err := decodeOperator(m, ast.And, ast.Or)
		if err != nil {
			return nil, err
		}
		left, right, err := decodeBinary(m)
		if err != nil {
			return nil, err
		}
		return &ast.LogicalOperator{Pos: pos, Op: op, Left: left, Right: right}, nil
	case TypeEquality:
		cmp, err := decodeComparator(m, ast.EQ, ast.NE)
		if err != nil {
			return nil, err
		}
		left, right, err := decodeBinary(m)
		if err != nil {
			return nil, err
		}
		return &ast.Equality{Pos: pos, Cmp: cmp, Left: left, Right: right}, nil
	case TypeCompare:
		cmp, err := decodeComparator(m, ast.LT, ast.LE, ast.GT, ast.GE)
		if err != nil {
			return nil, err
		}
		left, right, err := decodeBinary(m)
		if err != nil {
			return nil, err
		}
		return &ast.Compare{Pos: pos, Cmp: cmp, Left: left, Right: right}, nil
	case TypeConcatenate:
		left, right, err := decodeBinary(m)
		if err != nil {
			return nil, err
		}
		return &ast.Concatenate{Pos: pos, Left: left, Right: right}, nil
	case TypeNegate:
		operand, err := m.child("operand")
		if err != nil {
			return nil, err
		}
		return &ast.Negate{Pos: pos, Operand: operand}, nil

	case TypeBlock:
		body, err := m.children("body", false)
		if err != nil {
			return nil, err
		}
		return &ast.Block{Pos: pos, Body: body}, nil
	case TypeIf:
		cond, err := m.child("cond")
		if err != nil {
			return nil, err
		}
		then, err := m.child("then")
		if err != nil {
			return nil, err
		}
		els, err := m.optionalChild("else")
		if err != nil {
			return nil, err
		}
		return &ast.Conditional{Pos: pos, Cond: cond, Then: then, Else: els}, nil
	case TypeFor:
		name, err := m.scalar("var")
		if err != nil {
			return nil, err
		}
		iterable, err := m.child("iterable")
		if err != nil {
			return nil, err
		}
		body, err := m.child("body")
		if err != nil {
			return nil, err
		}
		return &ast.ForLoop{Pos: pos, Var: name, Iterable: iterable, Body: body}, nil

	case TypeFn:
		name, err := m.scalar("name")
		if err != nil {
			return nil, err
		}
		params, err := m.strings("params")
		if err != nil {
			return nil, err
		}
		body, err := m.child("body")
		if err != nil {
			return nil, err
		}
		return &ast.DeclareFn{Pos: pos, Name: name, Params: params, Body: body}, nil
	case TypeCall:
		name, err := m.scalar("name")
		if err != nil {
			return nil, err
		}
		args, err := m.children("args", false)
		if err != nil {
			return nil, err
		}
		return &ast.InvokeFn{Pos: pos, Name: name, Args: args}, nil

	case TypePrint, TypePrintln:
		value, err := m.optionalChild("value")
		if err != nil {
			return nil, err
		}
		newline := typ == TypePrintln
		if _, ok := m.lookup("newline"); ok {
			if newline, err = m.flag("newline"); err != nil {
				return nil, err
			}
		}
		return &ast.Print{Pos: pos, Value: value, Newline: newline}, nil
	}
	return nil, errorAt(n, "unknown node type %q", typ)
}

func decodeBinary(m *mapping) (ast.Node, ast.Node, error) {
	left, err := m.child("left")
	if err != nil {
		return nil, nil, err
	}
	right, err := m.child("right")
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func decodePairs(m *mapping) ([]ast.DictPair, error) {
	n, ok := m.lookup("pairs")
	if !ok {
		return []ast.DictPair{}, nil
	}
	n, leave, err := m.d.enter(n)
	if err != nil {
		return nil, err
	}
	defer leave()
	if n.Kind != yaml.SequenceNode {
		return nil, errorAt(n, "field \"pairs\" must be a list, got %s", kindName(n))
	}
	pairs := make([]ast.DictPair, 0, len(n.Content))
	for _, item := range n.Content {
		pair, err := decodePair(m.d, item)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func decodePair(d *decoder, n *yaml.Node) (ast.DictPair, error) {
	n, leave, err := d.enter(n)
	if err != nil {
		return ast.DictPair{}, err
	}
	defer leave()
	pm, err := newMapping(d, n)
	if err != nil {
		return ast.DictPair{}, err
	}
	key, err := pm.child("key")
	if err != nil {
		return ast.DictPair{}, err
	}
	value, err := pm.child("value")
	if err != nil {
		return ast.DictPair{}, err
	}
	return ast.DictPair{Key: key, Value: value}, nil
}

func decodeOperator(m *mapping, allowed ...ast.Operator) (ast.Operator, error) {
	name, err := m.scalar("op")
	if err != nil {
		return 0, err
	}
	if op, ok := ast.ParseOperator(name); ok {
		for _, a := range allowed {
			if a == op {
				return op, nil
			}
		}
	}
	return 0, errorAt(m.fields["op"], "invalid operator %q", name)
}

func decodeComparator(m *mapping, allowed ...ast.Comparator) (ast.Comparator, error) {
	name, err := m.scalar("op")
	if err != nil {
		return 0, err
	}
	if cmp, ok := ast.ParseComparator(name); ok {
		for _, a := range allowed {
			if a == cmp {
				return cmp, nil
			}
		}
	}
	return 0, errorAt(m.fields["op"], "invalid comparator %q", name)
}

// quoteString builds a string lexeme whose evaluation yields text.
func quoteString(text string) string {
	return `"` + strings.ReplaceAll(text, `"`, `\"`) + `"`
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "nothing"
}
