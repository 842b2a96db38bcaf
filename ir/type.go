package ir

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ObjectType
	ArrayType
	IdentType
	CallType
	RawType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ObjectType: "Object",
		ArrayType:  "Array",
		StringType: "String",
		NumberType: "Number",
		BoolType:   "Bool",
		NullType:   "Null",
		IdentType:  "Ident",
		CallType:   "Call",
		RawType:    "Raw",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

// IsLeaf reports whether nodes of type t hold no child nodes that
// can be edited.
func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType, CallType:
		return false
	default:
		return true
	}
}

// IsLiteral reports whether t is a JSON representable scalar type.
func (t Type) IsLiteral() bool {
	switch t {
	case NullType, NumberType, StringType, BoolType:
		return true
	default:
		return false
	}
}

type EntryKind int

const (
	KeyValue EntryKind = iota
	Shorthand
	Spread
	Method
	Computed
)

func (k EntryKind) String() string {
	s, ok := map[EntryKind]string{
		KeyValue:  "KeyValue",
		Shorthand: "Shorthand",
		Spread:    "Spread",
		Method:    "Method",
		Computed:  "Computed",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}
