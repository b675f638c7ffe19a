package evaluator

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/funvibe/ember/internal/ast"
)

func intLit(lex string) ast.Node { return &ast.IntegerLiteral{Lexeme: lex} }
func floatLit(lex string) ast.Node { return &ast.FloatLiteral{Lexeme: lex} }
func strLit(s string) ast.Node { return &ast.StringLiteral{Lexeme: `"` + s + `"`} }
func boolLit(b bool) ast.Node {
	if b {
		return &ast.BooleanLiteral{Lexeme: "true"}
	}
	return &ast.BooleanLiteral{Lexeme: "false"}
}
func ref(name string) ast.Node { return &ast.Deref{Name: name} }
func assign(name string, v ast.Node) ast.Node { return &ast.Assign{Name: name, Value: v} }
func list(els ...ast.Node) ast.Node { return &ast.ListExpr{Elements: els} }
func block(body ...ast.Node) ast.Node { return &ast.Block{Body: body} }
func arith(op ast.Operator, l, r ast.Node) ast.Node {
	return &ast.Arithmetic{Op: op, Left: l, Right: r}
}
func rng(lo, hi ast.Node) ast.Node { return &ast.RangeExpr{Low: lo, High: hi} }
func printlnNode(v ast.Node) ast.Node { return &ast.Print{Value: v, Newline: true} }
func call(name string, args ...ast.Node) ast.Node {
	return &ast.InvokeFn{Name: name, Args: args}
}
func fn(name string, params []string, body ast.Node) ast.Node {
	return &ast.DeclareFn{Name: name, Params: params, Body: body}
}

// run evaluates node in a fresh scope and returns the result with everything printed.
func run(t *testing.T, node ast.Node, opts ...Option) (Object, string, error) {
	t.Helper()
	var out bytes.Buffer
	obj, err := New(&out, opts...).Eval(node, NewEnvironment())
	return obj, out.String(), err
}

func TestEvalExpressions(t *testing.T) {
	tests := []struct {
		name     string
		node     ast.Node
		expected string
	}{
		{"int", intLit("42"), "42"},
		{"negative int", intLit("-7"), "-7"},
		{"float", floatLit("2.5"), "2.5"},
		{"string", strLit("hi"), "hi"},
		{"escaped quote", &ast.StringLiteral{Lexeme: `"say \"hi\""`}, `say "hi"`},
		{"bool", boolLit(true), "true"},
		{"none", &ast.NoneLiteral{}, "None"},
		{"add", arith(ast.Add, intLit("1"), intLit("2")), "3"},
		{"int division truncates", arith(ast.Div, intLit("7"), intLit("2")), "3"},
		{"negative division truncates toward zero", arith(ast.Div, intLit("-7"), intLit("2")), "-3"},
		{"int overflow wraps", arith(ast.Add, intLit("2147483647"), intLit("1")), "-2147483648"},
		{"min int divided by -1 wraps", arith(ast.Div, intLit("-2147483648"), intLit("-1")), "-2147483648"},
		{"mixed promotes to float", arith(ast.Add, intLit("1"), floatLit("0.5")), "1.5"},
		{"float division", arith(ast.Div, floatLit("1"), intLit("4")), "0.25"},
		{"string repeat", arith(ast.Mul, strLit("ab"), intLit("3")), "ababab"},
		{"string repeat reversed", arith(ast.Mul, intLit("3"), strLit("ab")), "ababab"},
		{"string repeat zero", arith(ast.Mul, strLit("ab"), intLit("0")), ""},
		{"concatenate", &ast.Concatenate{Left: strLit("a"), Right: intLit("1")}, "a1"},
		{"concatenate list", &ast.Concatenate{Left: strLit("x"), Right: list(strLit("a"))}, `x[ "a" ]`},
		{"negate", &ast.Negate{Operand: boolLit(false)}, "true"},
		{"and", &ast.LogicalOperator{Op: ast.And, Left: boolLit(true), Right: boolLit(false)}, "false"},
		{"or", &ast.LogicalOperator{Op: ast.Or, Left: boolLit(false), Right: boolLit(true)}, "true"},
		{"compare int", &ast.Compare{Cmp: ast.LT, Left: intLit("1"), Right: intLit("2")}, "true"},
		{"compare float", &ast.Compare{Cmp: ast.GE, Left: floatLit("1.5"), Right: floatLit("2.5")}, "false"},
		{"equality string", &ast.Equality{Cmp: ast.EQ, Left: strLit("a"), Right: strLit("a")}, "true"},
		{"inequality int", &ast.Equality{Cmp: ast.NE, Left: intLit("1"), Right: intLit("1")}, "false"},
		{"range", rng(intLit("1"), intLit("3")), "1..3"},
		{"list", list(strLit("a"), intLit("1")), `[ "a", 1 ]`},
		{"empty list", list(), "[ ]"},
		{"dict", &ast.DictExpr{Pairs: []ast.DictPair{{Key: strLit("k"), Value: intLit("1")}}}, `{ "k": 1 }`},
		{"empty dict", &ast.DictExpr{}, "{ }"},
		{"empty block", block(), "None"},
		{"block value is last", block(intLit("1"), intLit("2")), "2"},
		{"assign yields value", assign("x", intLit("5")), "5"},
		{"conditional then", &ast.Conditional{Cond: boolLit(true), Then: intLit("1"), Else: intLit("2")}, "1"},
		{"conditional else", &ast.Conditional{Cond: boolLit(false), Then: intLit("1"), Else: intLit("2")}, "2"},
		{"print yields none", &ast.Print{Value: intLit("1")}, "None"},
		{"declare yields function", fn("add", []string{"a", "b"}, ref("a")), "add(a, b) { ... }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, _, err := run(t, tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := obj.Inspect(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		kind ErrorKind
	}{
		{"unbound", ref("missing"), UnboundName},
		{"int div by zero", arith(ast.Div, intLit("1"), intLit("0")), DivisionByZero},
		{"float div by zero", arith(ast.Div, floatLit("1.0"), floatLit("0.0")), DivisionByZero},
		{"mixed div by zero", arith(ast.Div, floatLit("1.0"), intLit("0")), DivisionByZero},
		{"add string", arith(ast.Add, strLit("a"), intLit("1")), TypeMismatch},
		{"logical operator as arithmetic", arith(ast.And, intLit("1"), intLit("2")), TypeMismatch},
		{"repeat negative", arith(ast.Mul, strLit("a"), intLit("-1")), TypeMismatch},
		{"equality across types", &ast.Equality{Cmp: ast.EQ, Left: intLit("1"), Right: floatLit("1.0")}, TypeMismatch},
		{"equality on lists", &ast.Equality{Cmp: ast.EQ, Left: list(), Right: list()}, TypeMismatch},
		{"compare strings", &ast.Compare{Cmp: ast.LT, Left: strLit("a"), Right: strLit("b")}, TypeMismatch},
		{"compare mixed", &ast.Compare{Cmp: ast.LT, Left: intLit("1"), Right: floatLit("2.0")}, TypeMismatch},
		{"negate int", &ast.Negate{Operand: intLit("1")}, TypeMismatch},
		{"logical on int", &ast.LogicalOperator{Op: ast.And, Left: intLit("1"), Right: boolLit(true)}, TypeMismatch},
		{"condition not bool", &ast.Conditional{Cond: intLit("1"), Then: intLit("1"), Else: intLit("2")}, TypeMismatch},
		{"range float bound", rng(intLit("1"), floatLit("2.0")), TypeMismatch},
		{"dict list key", &ast.DictExpr{Pairs: []ast.DictPair{{Key: list(), Value: intLit("1")}}}, UnhashableKey},
		{"deref negative index", &ast.CollectionDeref{Collection: list(intLit("1")), Subscript: intLit("-1")}, IndexError},
		{"deref out of range", &ast.CollectionDeref{Collection: list(intLit("1")), Subscript: intLit("1")}, IndexError},
		{"deref string index", &ast.CollectionDeref{Collection: list(intLit("1")), Subscript: strLit("0")}, IndexError},
		{"deref int", &ast.CollectionDeref{Collection: intLit("1"), Subscript: intLit("0")}, NotSubscriptable},
		{"deref dict with list key", &ast.CollectionDeref{Collection: &ast.DictExpr{}, Subscript: list()}, UnhashableKey},
		{"assign out of range", &ast.CollectionAssign{Collection: list(), Subscript: intLit("0"), Value: intLit("1")}, IndexError},
		{"assign string index", &ast.CollectionAssign{Collection: list(intLit("1")), Subscript: strLit("0"), Value: intLit("2")}, IndexError},
		{"assign list key into dict", &ast.CollectionAssign{Collection: &ast.DictExpr{}, Subscript: list(), Value: intLit("1")}, UnhashableKey},
		{"assign into range", &ast.CollectionAssign{Collection: rng(intLit("1"), intLit("2")), Subscript: intLit("0"), Value: intLit("1")}, NotSubscriptable},
		{"iterate int", &ast.ForLoop{Var: "x", Iterable: intLit("3"), Body: ref("x")}, NotIterable},
		{"call unbound", call("nope"), UnboundName},
		{"call non-function", block(assign("f", intLit("1")), call("f")), NotCallable},
		{"int literal too large", intLit("2147483648"), MalformedLiteral},
		{"bad float literal", floatLit("1.2.3"), MalformedLiteral},
		{"string without quotes", &ast.StringLiteral{Lexeme: `"`}, MalformedLiteral},
		{"nil node", nil, TypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.node)
			if err == nil {
				t.Fatalf("expected %s, got no error", tt.kind)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected %s, got %v", tt.kind, err)
			}
		})
	}
}

// Float equality follows IEEE 754: NaN is unequal to everything and the
// two zeros are equal.
func TestFloatEquality(t *testing.T) {
	tests := []struct {
		name     string
		cmp      ast.Comparator
		left     string
		right    string
		expected string
	}{
		{"nan equals nan", ast.EQ, "NaN", "NaN", "false"},
		{"nan not equal nan", ast.NE, "NaN", "NaN", "true"},
		{"zero equals negative zero", ast.EQ, "0.0", "-0.0", "true"},
		{"zero not equal negative zero", ast.NE, "-0.0", "0.0", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &ast.Equality{Cmp: tt.cmp, Left: floatLit(tt.left), Right: floatLit(tt.right)}
			obj, _, err := run(t, node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := obj.Inspect(); got != tt.expected {
				t.Errorf("%s %s %s = %s, want %s", tt.left, tt.cmp.Symbol(), tt.right, got, tt.expected)
			}
		})
	}
}

func TestAliasing(t *testing.T) {
	prog := block(
		assign("a", list(intLit("1"), intLit("2"), intLit("3"))),
		assign("b", ref("a")),
		&ast.CollectionAssign{Collection: ref("b"), Subscript: intLit("0"), Value: intLit("99")},
		&ast.CollectionDeref{Collection: ref("a"), Subscript: intLit("0")},
	)
	obj, _, err := run(t, prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := obj.Inspect(); got != "99" {
		t.Errorf("a[0] = %s, want 99", got)
	}
}

func TestSelfContainingCollections(t *testing.T) {
	selfList := block(
		assign("a", list(intLit("1"))),
		&ast.CollectionAssign{Collection: ref("a"), Subscript: intLit("0"), Value: ref("a")},
	)
	selfDict := block(
		assign("d", &ast.DictExpr{}),
		&ast.CollectionAssign{Collection: ref("d"), Subscript: strLit("me"), Value: ref("d")},
	)

	tests := []struct {
		name     string
		node     ast.Node
		expected string
	}{
		{"print list", block(selfList, printlnNode(ref("a"))), "[ [...] ]\n"},
		{"print dict", block(selfDict, printlnNode(ref("d"))), "{ \"me\": {...} }\n"},
		{"concatenate list", block(selfList, printlnNode(&ast.Concatenate{Left: strLit("a="), Right: ref("a")})), "a=[ [...] ]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := run(t, tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.expected {
				t.Errorf("output = %q, want %q", out, tt.expected)
			}
		})
	}
}

func TestDictAccess(t *testing.T) {
	prog := block(
		assign("d", &ast.DictExpr{Pairs: []ast.DictPair{
			{Key: strLit("a"), Value: intLit("1")},
			{Key: intLit("2"), Value: strLit("two")},
		}}),
		&ast.CollectionAssign{Collection: ref("d"), Subscript: strLit("a"), Value: intLit("10")},
		&ast.CollectionAssign{Collection: ref("d"), Subscript: boolLit(true), Value: floatLit("1.5")},
		printlnNode(&ast.CollectionDeref{Collection: ref("d"), Subscript: strLit("missing")}),
		printlnNode(&ast.CollectionDeref{Collection: ref("d"), Subscript: intLit("2")}),
		printlnNode(ref("d")),
	)
	_, out, err := run(t, prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "None\ntwo\n{ \"a\": 10, 2: \"two\", true: 1.5 }\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestForLoop(t *testing.T) {
	tests := []struct {
		name     string
		iterable ast.Node
		expected string
	}{
		{"ascending range", rng(intLit("1"), intLit("3")), "1\n2\n3\n"},
		{"descending range", rng(intLit("3"), intLit("1")), "3\n2\n1\n"},
		{"single element range", rng(intLit("1"), intLit("1")), "1\n"},
		{"list", list(strLit("a"), intLit("2")), "a\n2\n"},
		{"empty list", list(), ""},
		{"dict keys", &ast.DictExpr{Pairs: []ast.DictPair{
			{Key: strLit("x"), Value: intLit("1")},
			{Key: strLit("y"), Value: intLit("2")},
		}}, "x\ny\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop := &ast.ForLoop{Var: "i", Iterable: tt.iterable, Body: printlnNode(ref("i"))}
			_, out, err := run(t, loop)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.expected {
				t.Errorf("output = %q, want %q", out, tt.expected)
			}
		})
	}
}

func TestForLoopResult(t *testing.T) {
	obj, _, err := run(t, &ast.ForLoop{Var: "i", Iterable: list(), Body: ref("i")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj != NONE {
		t.Errorf("zero iterations = %s, want None", obj.Inspect())
	}

	obj, _, err = run(t, &ast.ForLoop{Var: "i", Iterable: rng(intLit("1"), intLit("4")), Body: arith(ast.Mul, ref("i"), intLit("10"))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := obj.Inspect(); got != "40" {
		t.Errorf("last iteration = %s, want 40", got)
	}
}

func TestForLoopVariableLeaks(t *testing.T) {
	prog := block(
		&ast.ForLoop{Var: "i", Iterable: rng(intLit("1"), intLit("5")), Body: &ast.NoneLiteral{}},
		ref("i"),
	)
	obj, _, err := run(t, prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := obj.Inspect(); got != "5" {
		t.Errorf("i after loop = %s, want 5", got)
	}
}

func TestForLoopObservesListUpdates(t *testing.T) {
	// Overwriting a later slot during iteration is observed.
	prog := block(
		assign("xs", list(intLit("1"), intLit("2"))),
		&ast.ForLoop{Var: "x", Iterable: ref("xs"), Body: block(
			printlnNode(ref("x")),
			&ast.CollectionAssign{Collection: ref("xs"), Subscript: intLit("1"), Value: intLit("7")},
		)},
	)
	_, out, err := run(t, prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n7\n" {
		t.Errorf("output = %q, want %q", out, "1\n7\n")
	}
}

func TestConditionalSkipsUntakenBranch(t *testing.T) {
	boom := arith(ast.Div, intLit("1"), intLit("0"))
	tests := []struct {
		name string
		node ast.Node
	}{
		{"else skipped", &ast.Conditional{Cond: boolLit(true), Then: intLit("1"), Else: boom}},
		{"then skipped", &ast.Conditional{Cond: boolLit(false), Then: boom, Else: intLit("1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, _, err := run(t, tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := obj.Inspect(); got != "1" {
				t.Errorf("got %s, want 1", got)
			}
		})
	}
}

func TestLogicalOperatorIsEager(t *testing.T) {
	node := &ast.LogicalOperator{Op: ast.And, Left: boolLit(false), Right: arith(ast.Div, intLit("1"), intLit("0"))}
	_, _, err := run(t, node)
	if !errors.Is(err, DivisionByZero) {
		t.Errorf("expected DivisionByZero from right operand, got %v", err)
	}
}

func TestFunctionCalls(t *testing.T) {
	prog := block(
		fn("add", []string{"a", "b"}, arith(ast.Add, ref("a"), ref("b"))),
		call("add", intLit("2"), intLit("3")),
	)
	obj, _, err := run(t, prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := obj.Inspect(); got != "5" {
		t.Errorf("add(2, 3) = %s, want 5", got)
	}
}

func TestRecursion(t *testing.T) {
	// fact(n) = if n <= 1 { 1 } else { n * fact(n - 1) }
	prog := block(
		fn("fact", []string{"n"}, &ast.Conditional{
			Cond: &ast.Compare{Cmp: ast.LE, Left: ref("n"), Right: intLit("1")},
			Then: intLit("1"),
			Else: arith(ast.Mul, ref("n"), call("fact", arith(ast.Sub, ref("n"), intLit("1")))),
		}),
		call("fact", intLit("10")),
	)
	obj, _, err := run(t, prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := obj.Inspect(); got != "3628800" {
		t.Errorf("fact(10) = %s, want 3628800", got)
	}
}

func TestArityMismatchBindsNothing(t *testing.T) {
	// The argument would print if it were evaluated.
	prog := block(
		fn("one", []string{"a"}, ref("a")),
		call("one", printlnNode(strLit("evaluated")), intLit("2")),
	)
	_, out, err := run(t, prog)
	if !errors.Is(err, ArityMismatch) {
		t.Fatalf("expected ArityMismatch, got %v", err)
	}
	if out != "" {
		t.Errorf("arguments were evaluated: %q", out)
	}
}

func TestParametersDoNotLeak(t *testing.T) {
	prog := block(
		fn("f", []string{"p"}, assign("inner", ref("p"))),
		call("f", intLit("1")),
		ref("inner"),
	)
	_, _, err := run(t, prog)
	if !errors.Is(err, UnboundName) {
		t.Errorf("expected UnboundName for a binding made inside the call, got %v", err)
	}
}

func TestScopePolicies(t *testing.T) {
	// g reads "local", which only exists in the scope of its caller h.
	prog := block(
		assign("global", intLit("1")),
		fn("g", nil, arith(ast.Add, ref("global"), ref("local"))),
		fn("h", []string{"local"}, call("g")),
		call("h", intLit("41")),
	)

	t.Run("dynamic sees caller locals", func(t *testing.T) {
		obj, _, err := run(t, prog, WithScope(ScopeDynamic))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := obj.Inspect(); got != "42" {
			t.Errorf("got %s, want 42", got)
		}
	})

	t.Run("global hides caller locals", func(t *testing.T) {
		_, _, err := run(t, prog, WithScope(ScopeGlobal))
		if !errors.Is(err, UnboundName) {
			t.Fatalf("expected UnboundName, got %v", err)
		}
	})

	t.Run("global still sees top-level bindings", func(t *testing.T) {
		p := block(
			assign("global", intLit("1")),
			fn("g", nil, ref("global")),
			fn("h", nil, call("g")),
			call("h"),
		)
		obj, _, err := run(t, p, WithScope(ScopeGlobal))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := obj.Inspect(); got != "1" {
			t.Errorf("got %s, want 1", got)
		}
	})
}

func TestParseScopePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    ScopePolicy
		wantErr bool
	}{
		{"", ScopeDynamic, false},
		{"dynamic", ScopeDynamic, false},
		{"global", ScopeGlobal, false},
		{"lexical", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScopePolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScopePolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseScopePolicy(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	prog := block(
		&ast.Print{Value: strLit("a")},
		&ast.Print{Value: intLit("1"), Newline: true},
		&ast.Print{Value: &ast.NoneLiteral{}, Newline: true},
		printlnNode(list(strLit("x"), floatLit("1"))),
		printlnNode(rng(intLit("0"), intLit("2"))),
	)
	_, out, err := run(t, prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a1\n\n[ \"x\", 1.0 ]\n0..2\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrintWriteFailure(t *testing.T) {
	_, err := New(failingWriter{}).Eval(printlnNode(intLit("1")), NewEnvironment())
	if !errors.Is(err, OutputFailure) {
		t.Errorf("expected OutputFailure, got %v", err)
	}
}

func TestMaxDepth(t *testing.T) {
	prog := block(
		fn("loop", []string{"n"}, call("loop", ref("n"))),
		call("loop", intLit("0")),
	)
	_, _, err := run(t, prog, WithMaxDepth(200))
	if !errors.Is(err, StackOverflow) {
		t.Fatalf("expected StackOverflow, got %v", err)
	}
}

func TestErrorPositionAndTrace(t *testing.T) {
	div := &ast.Arithmetic{Pos: ast.Pos{Line: 3, Column: 5}, Op: ast.Div, Left: ref("x"), Right: intLit("0")}
	prog := block(
		fn("f", []string{"x"}, div),
		&ast.InvokeFn{Pos: ast.Pos{Line: 7, Column: 1}, Name: "f", Args: []ast.Node{intLit("1")}},
	)
	_, _, err := run(t, prog)
	var rtErr *Error
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if rtErr.Line != 3 || rtErr.Column != 5 {
		t.Errorf("position = %d:%d, want 3:5", rtErr.Line, rtErr.Column)
	}
	if KindOf(err) != DivisionByZero {
		t.Errorf("KindOf = %s, want DivisionByZero", KindOf(err))
	}
	trace := rtErr.Trace()
	if !strings.Contains(trace, "at f (7:1)") {
		t.Errorf("trace missing call frame:\n%s", trace)
	}
	if !strings.HasPrefix(err.Error(), "DivisionByZero at 3:5:") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestEvaluateUsesGivenScope(t *testing.T) {
	env := NewEnvironment()
	env.Set("x", &Integer{Value: 2})
	var out bytes.Buffer
	if _, err := Evaluate(assign("y", arith(ast.Mul, ref("x"), intLit("3"))), env, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	y, err := env.Get("y")
	if err != nil {
		t.Fatalf("y not bound: %v", err)
	}
	if got := y.Inspect(); got != "6" {
		t.Errorf("y = %s, want 6", got)
	}
}

func TestMalformedLiteralKeepsCause(t *testing.T) {
	_, _, err := run(t, intLit("99999999999"))
	if !errors.Is(err, MalformedLiteral) {
		t.Fatalf("expected MalformedLiteral, got %v", err)
	}
	if !errors.Is(err, strconv.ErrRange) {
		t.Errorf("cause not wrapped: %v", err)
	}
}
