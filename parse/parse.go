// Package parse builds [ir] trees from JavaScript and TypeScript sources.
//
// Only the expression forms found in configuration objects are given
// structure: object and array literals, string, number, boolean and null
// literals, references and calls. Every other expression is kept as raw
// text. Each parsed node remembers its source text and, for containers,
// the text between items so that an untouched tree renders back to the
// exact input.
package parse

import (
	"fmt"
	"os"

	"github.com/signadot/twcfg/debug"
	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/token"
)

// Parse parses a configuration source file and locates its exported
// configuration object.
func Parse(src []byte, opts ...ParseOption) (*ir.File, error) {
	o := &parseOpts{}
	for _, f := range opts {
		f(o)
	}
	p, err := newParser(src)
	if err != nil {
		return nil, wrapName(o.filename, err)
	}
	open, how, err := p.locate(o.binding)
	if err != nil {
		return nil, wrapName(o.filename, err)
	}
	cfg, err := p.expr(open, p.match[open]+1)
	if err != nil {
		return nil, wrapName(o.filename, err)
	}
	if debug.Parse() {
		debug.Logf("located configuration via %s at %s\n", how, p.toks[open].Pos)
	}
	return &ir.File{Name: o.filename, Src: src, Config: cfg, Export: how}, nil
}

// Expr parses a single expression, such as a value given on a command
// line or the plugin reference require("x").
func Expr(src string) (*ir.Node, error) {
	p, err := newParser([]byte(src))
	if err != nil {
		return nil, err
	}
	n := len(p.toks)
	for n > 0 && p.toks[n-1].Type == token.TSemi {
		n--
	}
	if n == 0 {
		return nil, ErrEmpty
	}
	return p.expr(0, n)
}

func wrapName(name string, err error) error {
	if name == "" {
		return err
	}
	return fmt.Errorf("%s: %w", name, err)
}

type parser struct {
	src   []byte
	doc   *token.PosDoc
	toks  []token.Token
	match []int
}

func newParser(src []byte) (*parser, error) {
	all, err := token.Tokenize(nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if debug.Parse() {
		token.Dump(os.Stderr, all)
	}
	toks := token.Significant(all)
	m, err := token.Match(toks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &parser{src: src, doc: token.NewPosDoc(src), toks: toks, match: m}, nil
}

func (p *parser) errAt(i int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if i >= len(p.toks) {
		return fmt.Errorf("%w: %s at end of input", ErrParse, msg)
	}
	return fmt.Errorf("%w: %s at %s", ErrParse, msg, p.toks[i].Pos)
}

func (p *parser) entryErr(i int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if i >= len(p.toks) {
		return fmt.Errorf("%w: %s at end of input", ErrEntry, msg)
	}
	return fmt.Errorf("%w: %s at %s", ErrEntry, msg, p.toks[i].Pos)
}

func (p *parser) text(start, end int) string {
	return string(p.src[start:end])
}

// expr parses the expression spanning tokens [a, b).
func (p *parser) expr(a, b int) (*ir.Node, error) {
	if a >= b {
		return nil, p.errAt(a, "expected expression")
	}
	t := &p.toks[a]
	start, end := t.Start(), p.toks[b-1].End()
	n := &ir.Node{
		Parsed: true,
		Start:  start,
		End:    end,
		Text:   p.text(start, end),
		Indent: p.doc.Indent(start),
	}
	switch {
	case t.Type == token.TLCurl && p.match[a] == b-1:
		n.Type = ir.ObjectType
		return n, p.object(a, n)
	case t.Type == token.TLSquare && p.match[a] == b-1:
		n.Type = ir.ArrayType
		return n, p.array(a, n)
	case b-a == 1:
		p.leaf(t, n)
		return n, nil
	case b-a == 2 && t.Type == token.TOp && (string(t.Bytes) == "-" || string(t.Bytes) == "+") &&
		p.toks[a+1].Type == token.TNumber:
		n.Type = ir.NumberType
		n.Number = n.Text
		return n, nil
	}
	j := p.reference(a, b)
	switch {
	case j == b:
		n.Type = ir.IdentType
		n.String = n.Text
		return n, nil
	case j > a && p.toks[j].Type == token.TLParen:
		n.Type = ir.RawType
		if p.match[j] == b-1 {
			n.Type = ir.CallType
		}
		n.Callee = p.text(start, p.toks[j-1].End())
		return n, p.args(j, n)
	}
	n.Type = ir.RawType
	return n, nil
}

func (p *parser) leaf(t *token.Token, n *ir.Node) {
	switch t.Type {
	case token.TString:
		s, err := token.Unquote(string(t.Bytes))
		if err != nil {
			n.Type = ir.RawType
			return
		}
		n.Type = ir.StringType
		n.String = s
		n.Quote = t.Bytes[0]
	case token.TTemplate:
		s, err := token.Unquote(string(t.Bytes))
		if err != nil {
			n.Type = ir.RawType
			return
		}
		n.Type = ir.StringType
		n.String = s
		n.Quote = '`'
	case token.TNumber:
		n.Type = ir.NumberType
		n.Number = string(t.Bytes)
	case token.TIdent:
		switch string(t.Bytes) {
		case "true", "false":
			n.Type = ir.BoolType
			n.Bool = t.Is("true")
		case "null":
			n.Type = ir.NullType
		default:
			if token.IsReserved(string(t.Bytes)) {
				n.Type = ir.RawType
				return
			}
			n.Type = ir.IdentType
			n.String = string(t.Bytes)
		}
	default:
		n.Type = ir.RawType
	}
}

// reference returns the index just past the longest identifier or dotted
// reference starting at a, or a when there is none.
func (p *parser) reference(a, b int) int {
	if p.toks[a].Type != token.TIdent || token.IsReserved(string(p.toks[a].Bytes)) {
		return a
	}
	j := a + 1
	for j+1 < b && p.toks[j].Type == token.TDot && p.toks[j+1].Type == token.TIdent {
		j += 2
	}
	return j
}

type item struct {
	a, b       int
	lead, post string
}

// items splits the tokens between the container delimiters at open and
// its match into comma separated items, keeping the text around them.
func (p *parser) items(open int) ([]item, string, bool) {
	var (
		cls      = p.match[open]
		prevEnd  = p.toks[open].End()
		res      []item
		tail     string
		trailing bool
	)
	i := open + 1
	for i < cls {
		j := i
		for j < cls && p.toks[j].Type != token.TComma {
			if p.toks[j].Type.IsOpen() {
				j = p.match[j]
			}
			j++
		}
		it := item{a: i, b: j}
		itemEnd := prevEnd
		if i < j {
			it.lead = p.text(prevEnd, p.toks[i].Start())
			itemEnd = p.toks[j-1].End()
		} else {
			it.lead = p.text(prevEnd, p.toks[j].Start())
			itemEnd = p.toks[j].Start()
		}
		if j < cls {
			it.post = p.text(itemEnd, p.toks[j].Start())
			prevEnd = p.toks[j].End()
			i = j + 1
			if i == cls {
				trailing = true
				tail = p.text(prevEnd, p.toks[cls].Start())
			}
		} else {
			tail = p.text(itemEnd, p.toks[cls].Start())
			i = j
		}
		res = append(res, it)
	}
	if len(res) == 0 {
		tail = p.text(prevEnd, p.toks[cls].Start())
	}
	return res, tail, trailing
}

func (p *parser) object(open int, n *ir.Node) error {
	items, tail, trailing := p.items(open)
	n.Tail = tail
	n.TrailingComma = trailing
	n.Entries = make([]*ir.Entry, 0, len(items))
	for i, it := range items {
		e, err := p.entry(it.a, it.b)
		if err != nil {
			return err
		}
		e.Slot = ir.Slot{Lead: it.lead, Post: it.post, Set: true}
		e.Parent = n
		if e.Value != nil {
			e.Value.Parent = n
			e.Value.ParentIndex = i
			e.Value.ParentField = e.Key
		}
		n.Entries = append(n.Entries, e)
	}
	return nil
}

func (p *parser) array(open int, n *ir.Node) error {
	vals, err := p.values(open, n)
	if err != nil {
		return err
	}
	n.Values = vals
	return nil
}

func (p *parser) args(open int, n *ir.Node) error {
	vals, err := p.values(open, n)
	if err != nil {
		return err
	}
	n.Values = vals
	return nil
}

func (p *parser) values(open int, n *ir.Node) ([]*ir.Node, error) {
	items, tail, trailing := p.items(open)
	if n != nil {
		n.Tail = tail
		n.TrailingComma = trailing
	}
	res := make([]*ir.Node, 0, len(items))
	for i, it := range items {
		var (
			v   *ir.Node
			err error
		)
		if it.a == it.b {
			off := p.toks[it.a].Start()
			v = &ir.Node{Type: ir.RawType, Parsed: true, Start: off, End: off}
		} else {
			v, err = p.expr(it.a, it.b)
			if err != nil {
				return nil, err
			}
		}
		v.Slot = ir.Slot{Lead: it.lead, Post: it.post, Set: true}
		v.Parent = n
		v.ParentIndex = i
		res = append(res, v)
	}
	return res, nil
}

var modifiers = map[string]bool{"get": true, "set": true, "async": true, "static": true}

// entry parses the object entry spanning tokens [a, b).
func (p *parser) entry(a, b int) (*ir.Entry, error) {
	if a >= b {
		return nil, p.entryErr(a, "empty entry")
	}
	start, end := p.toks[a].Start(), p.toks[b-1].End()
	e := &ir.Entry{
		Parsed: true,
		Start:  start,
		End:    end,
		Text:   p.text(start, end),
		Indent: p.doc.Indent(start),
	}
	if p.toks[a].Type == token.TSpread {
		if a+1 == b {
			return nil, p.entryErr(a, "spread without expression")
		}
		e.Kind = ir.Spread
		e.Expr = p.text(p.toks[a+1].Start(), end)
		return e, nil
	}
	k := a
	method := false
	for k+1 < b && p.toks[k].Type == token.TIdent && modifiers[string(p.toks[k].Bytes)] && !endsKey(&p.toks[k+1]) {
		k++
		method = true
	}
	if t := &p.toks[k]; t.Type == token.TOp && string(t.Bytes) == "*" {
		k++
		method = true
		if k == b {
			return nil, p.entryErr(a, "generator without name")
		}
	}
	t := &p.toks[k]
	keyStart := t.Start()
	switch t.Type {
	case token.TIdent, token.TNumber:
		e.Key = string(t.Bytes)
	case token.TString:
		s, err := token.Unquote(string(t.Bytes))
		if err != nil {
			return nil, p.entryErr(k, "%v", err)
		}
		e.Key = s
		e.KeyQuote = t.Bytes[0]
	case token.TLSquare:
		e.Kind = ir.Computed
		cls := p.match[k]
		if cls == k+2 {
			switch in := &p.toks[k+1]; in.Type {
			case token.TString:
				e.Key = in.String()
			case token.TNumber:
				e.Key = string(in.Bytes)
			}
		}
		k = cls
	default:
		return nil, p.entryErr(k, "unexpected %q", t.Bytes)
	}
	keyEnd := p.toks[k].End()
	e.KeyText = p.text(keyStart, keyEnd)
	k++
	if k == b {
		if method || e.Kind == ir.Computed || p.toks[a].Type != token.TIdent {
			return nil, p.entryErr(a, "%q", e.Text)
		}
		e.Kind = ir.Shorthand
		return e, nil
	}
	switch nt := &p.toks[k]; {
	case nt.Type == token.TColon && !method:
		v, err := p.expr(k+1, b)
		if err != nil {
			return nil, err
		}
		e.Mid = p.text(keyEnd, v.Start)
		e.Value = v
		return e, nil
	case nt.Type == token.TLParen, nt.Type == token.TQuestion,
		nt.Type == token.TOp && string(nt.Bytes) == "<":
		e.Kind = ir.Method
		return e, nil
	case nt.Type == token.TEq && e.Kind == ir.KeyValue && p.toks[a].Type == token.TIdent:
		e.Kind = ir.Shorthand
		return e, nil
	}
	return nil, p.entryErr(k, "unexpected %q", p.toks[k].Bytes)
}

func endsKey(t *token.Token) bool {
	switch t.Type {
	case token.TColon, token.TLParen, token.TComma, token.TEq, token.TQuestion:
		return true
	}
	return false
}
