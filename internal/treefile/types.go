package treefile

// Node type tags as written in tree documents.
const (
	TypeNone             = "None"
	TypeString           = "String"
	TypeInt              = "Int"
	TypeFloat            = "Float"
	TypeBool             = "Bool"
	TypeAssign           = "Assign"
	TypeDeref            = "Deref"
	TypeList             = "List"
	TypeDict             = "Dict"
	TypeRange            = "Range"
	TypeCollectionAssign = "CollectionAssign"
	TypeCollectionDeref  = "CollectionDeref"
	TypeArithmetic       = "Arithmetic"
	TypeEquality         = "Equality"
	TypeCompare          = "Compare"
	TypeConcatenate      = "Concatenate"
	TypeNegate           = "Negate"
	TypeLogical          = "Logical"
	TypeBlock            = "Block"
	TypeIf               = "If"
	TypeFor              = "For"
	TypeFn               = "Fn"
	TypeCall             = "Call"
	TypePrint            = "Print"
	TypePrintln          = "Println" // Print with newline defaulting to true
)

// NodeTypes lists every type tag Parse accepts.
var NodeTypes = []string{
	TypeNone, TypeString, TypeInt, TypeFloat, TypeBool,
	TypeAssign, TypeDeref,
	TypeList, TypeDict, TypeRange, TypeCollectionAssign, TypeCollectionDeref,
	TypeArithmetic, TypeEquality, TypeCompare, TypeConcatenate, TypeNegate, TypeLogical,
	TypeBlock, TypeIf, TypeFor,
	TypeFn, TypeCall, TypePrint, TypePrintln,
}
