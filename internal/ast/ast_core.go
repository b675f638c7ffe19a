package ast

// Pos is the location a node was decoded from. Zero means unknown.
type Pos struct {
	Line   int
	Column int
}

// Position returns the node's source location.
func (p Pos) Position() Pos { return p }

// Node is the base interface for all expression tree nodes.
// The set of implementations is closed: only types in this package satisfy it.
type Node interface {
	Position() Pos
	expressionNode()
}

// Operator is an arithmetic or logical operator.
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
	And
	Or
)

func (op Operator) String() string {
	switch op {
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	case And:
		return "And"
	case Or:
		return "Or"
	}
	return "Operator(?)"
}

// Symbol returns the infix spelling used by the tree printer.
func (op Operator) Symbol() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case And:
		return "and"
	case Or:
		return "or"
	}
	return "?"
}

// Comparator is an equality or ordering comparison.
type Comparator int

const (
	LT Comparator = iota
	LE
	GT
	GE
	EQ
	NE
)

func (c Comparator) String() string {
	switch c {
	case LT:
		return "LT"
	case LE:
		return "LE"
	case GT:
		return "GT"
	case GE:
		return "GE"
	case EQ:
		return "EQ"
	case NE:
		return "NE"
	}
	return "Comparator(?)"
}

// Symbol returns the infix spelling used by the tree printer.
func (c Comparator) Symbol() string {
	switch c {
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	case EQ:
		return "=="
	case NE:
		return "!="
	}
	return "?"
}

// ParseOperator maps an operator name (as written in tree documents) to its value.
func ParseOperator(name string) (Operator, bool) {
	for op := Add; op <= Or; op++ {
		if op.String() == name {
			return op, true
		}
	}
	return 0, false
}

// ParseComparator maps a comparator name (as written in tree documents) to its value.
func ParseComparator(name string) (Comparator, bool) {
	for c := LT; c <= NE; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}
