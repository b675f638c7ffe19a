package treefile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/ember/internal/ast"
	"github.com/funvibe/ember/internal/evaluator"
)

func evalSource(t *testing.T, src string) (string, string, error) {
	t.Helper()
	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var out bytes.Buffer
	obj, err := evaluator.Evaluate(root, evaluator.NewEnvironment(), &out)
	if err != nil {
		return "", out.String(), err
	}
	return obj.Inspect(), out.String(), nil
}

func TestParseAndEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		result  string
		printed string
	}{
		{
			name:   "int literal",
			src:    "{type: Int, lexeme: 42}",
			result: "42",
		},
		{
			name:   "string value is quoted for us",
			src:    `{type: String, value: 'say "hi"'}`,
			result: `say "hi"`,
		},
		{
			name:   "raw string lexeme",
			src:    `{type: String, lexeme: '"a\"b"'}`,
			result: `a"b`,
		},
		{
			name: "arithmetic",
			src: `
type: Arithmetic
op: Mul
left: {type: Int, lexeme: 6}
right: {type: Int, lexeme: 7}
`,
			result: "42",
		},
		{
			name: "top-level sequence is a block",
			src: `
- {type: Assign, name: x, value: {type: Int, lexeme: 1}}
- type: Println
  value: {type: Deref, name: x}
- {type: Deref, name: x}
`,
			result:  "1",
			printed: "1\n",
		},
		{
			name: "if without else yields none",
			src: `
type: If
cond: {type: Bool, lexeme: false}
then: {type: Int, lexeme: 1}
`,
			result: "None",
		},
		{
			name: "print newline override",
			src: `
- {type: Println, value: {type: String, value: a}, newline: false}
- {type: Print, value: {type: String, value: b}, newline: true}
- {type: Println}
`,
			result:  "None",
			printed: "ab\n\n",
		},
		{
			name: "functions and loops",
			src: `
- type: Fn
  name: square
  params: [n]
  body:
    type: Arithmetic
    op: Mul
    left: {type: Deref, name: n}
    right: {type: Deref, name: n}
- type: For
  var: i
  iterable:
    type: Range
    low: {type: Int, lexeme: 3}
    high: {type: Int, lexeme: 1}
  body:
    type: Println
    value: {type: Call, name: square, args: [{type: Deref, name: i}]}
`,
			result:  "None",
			printed: "9\n4\n1\n",
		},
		{
			name: "dict and subscripts",
			src: `
- type: Assign
  name: d
  value:
    type: Dict
    pairs:
      - key: {type: String, value: k}
        value: {type: List, elements: [{type: Float, lexeme: "1.5"}]}
- type: CollectionAssign
  collection: {type: Deref, name: d}
  subscript: {type: Int, lexeme: 2}
  value: {type: None}
- type: Concatenate
  left: {type: Deref, name: d}
  right:
    type: CollectionDeref
    collection: {type: Deref, name: d}
    subscript: {type: String, value: missing}
`,
			result: `{ "k": [ 1.5 ], 2: None }None`,
		},
		{
			name: "anchors and aliases",
			src: `
- {type: Assign, name: x, value: &two {type: Int, lexeme: 2}}
- {type: Arithmetic, op: Add, left: *two, right: {type: Deref, name: x}}
`,
			result: "4",
		},
		{
			name:   "json document",
			src:    `{"type": "Compare", "op": "LT", "left": {"type": "Int", "lexeme": "1"}, "right": {"type": "Int", "lexeme": "2"}}`,
			result: "true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, printed, err := evalSource(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.result {
				t.Errorf("result = %q, want %q", result, tt.result)
			}
			if printed != tt.printed {
				t.Errorf("printed = %q, want %q", printed, tt.printed)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		line    int
		message string
	}{
		{"empty", "", 0, "empty document"},
		{"scalar root", "42", 1, "expected a node mapping"},
		{"missing type", "{name: x}", 1, `missing field "type"`},
		{"unknown type", "{type: Lambda}", 1, `unknown node type "Lambda"`},
		{"missing child", "type: Assign\nname: x\n", 1, `missing field "value"`},
		{"bad operator", "type: Arithmetic\nop: Mod\nleft: {type: None}\nright: {type: None}\n", 2, `invalid operator "Mod"`},
		{"logical op in arithmetic", "type: Arithmetic\nop: And\nleft: {type: None}\nright: {type: None}\n", 2, `invalid operator "And"`},
		{"compare with EQ", "type: Compare\nop: EQ\nleft: {type: None}\nright: {type: None}\n", 2, `invalid comparator "EQ"`},
		{"duplicate field", "type: Deref\nname: a\nname: b\n", 3, `duplicate field "name"`},
		{"params not a list", "type: Fn\nname: f\nparams: x\nbody: {type: None}\n", 3, "must be a list of names"},
		{"bad newline flag", "{type: Print, newline: maybe}", 1, "must be true or false"},
		{"nested error position", "- {type: None}\n- {type: Deref}\n", 2, `missing field "name"`},
		{"alias inside its own anchor", "&a {type: Block, body: [*a]}", 1, "alias *a refers to a node that contains it"},
		{"alias cycle through pairs", "&p {type: Dict, pairs: [{key: {type: None}, value: *p}]}", 1, "alias *p refers to a node that contains it"},
		{"alias cycle through a list", "&s [{type: Block, body: *s}]", 1, "alias *s refers to a node that contains it"},
		{"exponential aliases", nestedAliases(7), 0, "document expands to more than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %T: %v", err, err)
			}
			if de.Line != tt.line {
				t.Errorf("line = %d, want %d (%v)", de.Line, tt.line, err)
			}
			if !strings.Contains(de.Message, tt.message) {
				t.Errorf("message = %q, want it to contain %q", de.Message, tt.message)
			}
		})
	}
}

// nestedAliases builds a document whose levels each repeat the previous
// level ten times, so it expands to about 10^levels nodes.
func nestedAliases(levels int) string {
	var b strings.Builder
	b.WriteString("- &l0 {type: Int, lexeme: \"1\"}\n")
	for i := 1; i < levels; i++ {
		fmt.Fprintf(&b, "- &l%d {type: List, elements: [", i)
		for j := 0; j < 10; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*l%d", i-1)
		}
		b.WriteString("]}\n")
	}
	return b.String()
}

func TestSharedAliasesDecode(t *testing.T) {
	// The same anchor used twice side by side is not a cycle.
	src := `
- &one {type: Int, lexeme: "1"}
- {type: List, elements: [*one, *one, {type: List, elements: [*one]}]}
`
	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	block := root.(*ast.Block)
	list, ok := block.Body[1].(*ast.ListExpr)
	if !ok || len(list.Elements) != 3 {
		t.Fatalf("expected a three-element list, got %#v", block.Body[1])
	}
}

func TestPositions(t *testing.T) {
	src := `
- {type: Assign, name: x, value: {type: Int, lexeme: 1}}
- type: Arithmetic
  op: Div
  left: {type: Deref, name: x}
  right: {type: Int, lexeme: 0}
`
	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	block, ok := root.(*ast.Block)
	if !ok || len(block.Body) != 2 {
		t.Fatalf("expected a two-element block, got %#v", root)
	}
	if pos := block.Body[1].Position(); pos.Line != 3 || pos.Column != 3 {
		t.Errorf("Arithmetic position = %d:%d, want 3:3", pos.Line, pos.Column)
	}

	_, err = evaluator.Evaluate(root, evaluator.NewEnvironment(), &bytes.Buffer{})
	var rtErr *evaluator.Error
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	if rtErr.Kind != evaluator.DivisionByZero || rtErr.Line != 3 {
		t.Errorf("got %v, want DivisionByZero on line 3", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(`{"type": "Bool", "lexeme": "true"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	node, err := Load(good)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lit, ok := node.(*ast.BooleanLiteral); !ok || lit.Lexeme != "true" {
		t.Errorf("Load = %#v", node)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("type: Nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	var de *DecodeError
	if !errors.As(err, &de) || !strings.Contains(err.Error(), bad) {
		t.Errorf("Load(bad) error = %v, want a DecodeError naming the file", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}
