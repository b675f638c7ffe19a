package ast

// NoneLiteral evaluates to None. As the operand of Print it is the
// "nothing" sentinel and prints as the empty string.
type NoneLiteral struct {
	Pos
}

func (nl *NoneLiteral) expressionNode() {}

// StringLiteral holds the raw lexeme, surrounding quotes included.
type StringLiteral struct {
	Pos
	Lexeme string
}

func (sl *StringLiteral) expressionNode() {}

type IntegerLiteral struct {
	Pos
	Lexeme string
}

func (il *IntegerLiteral) expressionNode() {}

type FloatLiteral struct {
	Pos
	Lexeme string
}

func (fl *FloatLiteral) expressionNode() {}

type BooleanLiteral struct {
	Pos
	Lexeme string
}

func (bl *BooleanLiteral) expressionNode() {}

// Assign binds the value of Value under Name in the current scope.
type Assign struct {
	Pos
	Name  string
	Value Node
}

func (a *Assign) expressionNode() {}

// Deref looks up Name.
type Deref struct {
	Pos
	Name string
}

func (d *Deref) expressionNode() {}

// ListExpr builds a new list, e.g. [a, b, c]
type ListExpr struct {
	Pos
	Elements []Node
}

func (le *ListExpr) expressionNode() {}

// DictPair is one key/value entry of a dictionary literal.
type DictPair struct {
	Key   Node
	Value Node
}

// DictExpr builds a new dictionary. Pairs are evaluated in declaration order.
type DictExpr struct {
	Pos
	Pairs []DictPair
}

func (de *DictExpr) expressionNode() {}

// RangeExpr builds an inclusive integer range, e.g. 1..10
type RangeExpr struct {
	Pos
	Low  Node
	High Node
}

func (re *RangeExpr) expressionNode() {}

// CollectionAssign writes into a list slot or dictionary key, e.g. xs[i] = v
type CollectionAssign struct {
	Pos
	Collection Node
	Subscript  Node
	Value      Node
}

func (ca *CollectionAssign) expressionNode() {}

// CollectionDeref reads a list slot or dictionary key, e.g. xs[i]
type CollectionDeref struct {
	Pos
	Collection Node
	Subscript  Node
}

func (cd *CollectionDeref) expressionNode() {}

// Arithmetic is one of Add, Sub, Mul or Div.
type Arithmetic struct {
	Pos
	Op    Operator
	Left  Node
	Right Node
}

func (ar *Arithmetic) expressionNode() {}

// Equality is EQ or NE.
type Equality struct {
	Pos
	Cmp   Comparator
	Left  Node
	Right Node
}

func (eq *Equality) expressionNode() {}

// Compare is LT, LE, GT or GE.
type Compare struct {
	Pos
	Cmp   Comparator
	Left  Node
	Right Node
}

func (c *Compare) expressionNode() {}

// Concatenate joins the printed forms of both operands.
type Concatenate struct {
	Pos
	Left  Node
	Right Node
}

func (c *Concatenate) expressionNode() {}

// Negate is logical not.
type Negate struct {
	Pos
	Operand Node
}

func (n *Negate) expressionNode() {}

// LogicalOperator is And or Or. Both sides are always evaluated.
type LogicalOperator struct {
	Pos
	Op    Operator
	Left  Node
	Right Node
}

func (lo *LogicalOperator) expressionNode() {}

type Block struct {
	Pos
	Body []Node
}

func (b *Block) expressionNode() {}

// Conditional evaluates exactly one of Then or Else.
type Conditional struct {
	Pos
	Cond Node
	Then Node
	Else Node
}

func (c *Conditional) expressionNode() {}

// ForLoop binds Var in the enclosing scope for each element of Iterable.
type ForLoop struct {
	Pos
	Var      string
	Iterable Node
	Body     Node
}

func (fl *ForLoop) expressionNode() {}

// DeclareFn creates a function value and binds it under Name.
type DeclareFn struct {
	Pos
	Name   string
	Params []string
	Body   Node
}

func (df *DeclareFn) expressionNode() {}

// InvokeFn calls the function bound under Name.
type InvokeFn struct {
	Pos
	Name string
	Args []Node
}

func (inv *InvokeFn) expressionNode() {}

// Print writes the printed form of Value to the evaluator's output.
type Print struct {
	Pos
	Value   Node
	Newline bool
}

func (p *Print) expressionNode() {}
