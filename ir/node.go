package ir

import (
	"strconv"

	"github.com/signadot/twcfg/token"
)

// Slot is the source text surrounding one item of an object, array or
// call argument list.
type Slot struct {
	// Lead is the text between the preceding delimiter ("{", "[", "(" or
	// ",") and the item.
	Lead string
	// Post is the text between the item and the comma following it.
	Post string
	// Set is true when Lead and Post come from source.
	Set bool
}

// Node is an expression in a configuration object. Parsed nodes remember
// their source text; a parsed node that is not dirty renders as exactly
// that text.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string

	Entries []*Entry
	Values  []*Node
	// Callee is the callee text of a call, also set for raw expressions
	// that begin with a call such as require("x")({...}).
	Callee string

	String string
	Number string
	Bool   bool
	// Quote is the delimiter of a string literal, 0 leaves the choice
	// to the printer.
	Quote byte

	Text       string
	Parsed     bool
	Start, End int
	// Indent holds the blanks that start the line of a parsed node.
	Indent string

	Slot
	// Tail is the text between the last item, or the trailing comma,
	// and the closing delimiter of a container.
	Tail          string
	TrailingComma bool

	dirty bool
}

// Entry is a property of an object literal.
type Entry struct {
	Kind EntryKind
	// Key is the property name. It is empty for spreads and for computed
	// keys which are not literals.
	Key string
	// KeyText is the source text of the key, brackets included for
	// computed keys.
	KeyText string
	KeyQuote byte
	// Mid is the text between the key and the value, usually ": ".
	Mid   string
	Value *Node
	// Expr is the expression of a spread, without the dots.
	Expr string

	Text       string
	Parsed     bool
	Start, End int
	Indent     string

	Slot
	Parent *Node
	// Orig is the spread entry a sentinel entry stands in for.
	Orig *Entry

	dirty bool
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(s string) *Node {
	return &Node{Type: StringType, String: s}
}

// FromQuoted returns a string node which renders with the delimiter q.
func FromQuoted(s string, q byte) *Node {
	return &Node{Type: StringType, String: s, Quote: q}
}

func FromNumber(text string) *Node {
	return &Node{Type: NumberType, Number: text}
}

func FromInt(i int64) *Node {
	return FromNumber(strconv.FormatInt(i, 10))
}

func FromFloat(f float64) *Node {
	return FromNumber(strconv.FormatFloat(f, 'g', -1, 64))
}

func FromBool(b bool) *Node {
	return &Node{Type: BoolType, Bool: b}
}

// Ident returns a reference to a variable, for example colors or
// fontFamily.sans.
func Ident(ref string) *Node {
	return &Node{Type: IdentType, String: ref}
}

// Raw returns an expression which is rendered verbatim.
func Raw(text string) *Node {
	return &Node{Type: RawType, Text: text}
}

func Call(callee string, args ...*Node) *Node {
	n := &Node{Type: CallType, Callee: callee}
	for _, a := range args {
		n.AppendValue(a)
	}
	n.dirty = false
	return n
}

func Object(entries ...*Entry) *Node {
	n := &Node{Type: ObjectType}
	for _, e := range entries {
		n.AppendEntry(e)
	}
	n.dirty = false
	return n
}

func Array(values ...*Node) *Node {
	n := &Node{Type: ArrayType}
	for _, v := range values {
		n.AppendValue(v)
	}
	n.dirty = false
	return n
}

// KeyVal returns a key value entry.
func KeyVal(key string, v *Node) *Entry {
	e := &Entry{Kind: KeyValue, Key: key, Value: v}
	if v != nil {
		v.ParentField = key
	}
	return e
}

// SpreadOf returns the spread entry ...expr.
func SpreadOf(expr string) *Entry {
	return &Entry{Kind: Spread, Expr: expr, Text: "..." + expr}
}

// Name is the name under which the entry is found by lookups.
func (e *Entry) Name() string {
	if e.Kind == Spread {
		return ""
	}
	return e.Key
}

// IsReference reports whether n is an identifier or a dotted reference.
func (n *Node) IsReference() bool {
	return n.Type == IdentType && token.IsReference(n.String)
}

// Dirty reports whether n or anything beneath it changed since parsing.
func (n *Node) Dirty() bool {
	return n.dirty
}

// Touch marks n and its ancestors as changed.
func (n *Node) Touch() {
	for x := n; x != nil; x = x.Parent {
		x.dirty = true
	}
}

func (e *Entry) Dirty() bool {
	return e.dirty || (e.Value != nil && e.Value.dirty)
}

func (e *Entry) Touch() {
	e.dirty = true
	if e.Parent != nil {
		e.Parent.Touch()
	}
}

// Lookup returns the last entry named name and its index, or -1 and nil.
// Spreads are never found.
func (n *Node) Lookup(name string) (int, *Entry) {
	for i := len(n.Entries) - 1; i >= 0; i-- {
		e := n.Entries[i]
		if e.Kind != Spread && e.Key == name {
			return i, e
		}
	}
	return -1, nil
}

// Get returns the value of the last key value entry named name.
func (n *Node) Get(name string) *Node {
	_, e := n.Lookup(name)
	if e == nil {
		return nil
	}
	return e.Value
}

func (n *Node) AppendEntry(e *Entry) {
	n.InsertEntry(len(n.Entries), e)
}

// InsertEntry inserts e so that it ends up at index i.
func (n *Node) InsertEntry(i int, e *Entry) {
	n.Entries = append(n.Entries, nil)
	copy(n.Entries[i+1:], n.Entries[i:])
	n.Entries[i] = e
	e.Parent = n
	e.dirty = true
	n.reindex(i)
	n.Touch()
}

// ReplaceEntry replaces the entry at index i with e, which takes over the
// surrounding source text of the replaced entry.
func (n *Node) ReplaceEntry(i int, e *Entry) {
	old := n.Entries[i]
	e.Slot = old.Slot
	if !e.Parsed {
		e.Indent = old.Indent
	}
	e.Parent = n
	e.dirty = !(e.Parsed && e == old.Orig) || e.dirty
	n.Entries[i] = e
	n.reindex(i)
	n.Touch()
}

// SetValue sets the value of the entry at index i of an object or the
// element at index i of an array.
func (n *Node) SetValue(i int, v *Node) {
	v.Parent = n
	v.ParentIndex = i
	switch n.Type {
	case ObjectType:
		e := n.Entries[i]
		v.ParentField = e.Key
		e.Value = v
		e.dirty = true
	default:
		old := n.Values[i]
		v.Slot = old.Slot
		n.Values[i] = v
	}
	v.dirty = true
	n.Touch()
}

func (n *Node) AppendValue(v *Node) {
	n.InsertValue(len(n.Values), v)
}

func (n *Node) InsertValue(i int, v *Node) {
	n.Values = append(n.Values, nil)
	copy(n.Values[i+1:], n.Values[i:])
	n.Values[i] = v
	v.Parent = n
	v.Slot = Slot{}
	if !v.Parsed {
		v.dirty = true
	}
	n.reindex(i)
	n.Touch()
}

func (n *Node) reindex(from int) {
	for j := from; j < len(n.Entries); j++ {
		e := n.Entries[j]
		if e.Value == nil {
			continue
		}
		e.Value.Parent = n
		e.Value.ParentIndex = j
		e.Value.ParentField = e.Key
	}
	for j := from; j < len(n.Values); j++ {
		n.Values[j].Parent = n
		n.Values[j].ParentIndex = j
	}
}

// Clone returns a deep copy of n without a parent.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Parent = nil
	c.ParentIndex = 0
	c.ParentField = ""
	if n.Entries != nil {
		c.Entries = make([]*Entry, len(n.Entries))
		for i, e := range n.Entries {
			ce := e.Clone()
			ce.Parent = &c
			c.Entries[i] = ce
		}
	}
	if n.Values != nil {
		c.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			cv := v.Clone()
			cv.Parent = &c
			cv.ParentIndex = i
			c.Values[i] = cv
		}
	}
	c.reindex(0)
	return &c
}

// Clone returns a deep copy of e without a parent.
func (e *Entry) Clone() *Entry {
	c := *e
	c.Parent = nil
	c.Value = e.Value.Clone()
	if c.Value != nil {
		c.Value.ParentField = c.Key
	}
	return &c
}
