package encode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/twcfg/debug"
	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/token"
)

var ErrNoConfig = errors.New("file has no configuration object")

type EncState struct {
	quote    byte
	forced   bool
	unit     string
	nl       string
	trailing *bool
}

func newState(root *ir.Node, opts []EncodeOption) *EncState {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	es.forced = es.quote == '"' || es.quote == '\''
	if !es.forced {
		es.quote = DetectQuote(root)
	}
	if es.unit == "" {
		es.unit = DetectIndent(root)
	}
	if es.nl == "" {
		es.nl = DetectNewline(root)
	}
	if es.trailing == nil {
		v := true
		if root.Parsed && len(root.Entries)+len(root.Values) > 0 && multiline(root) {
			v = root.TrailingComma
		}
		es.trailing = &v
	}
	return es
}

// Render returns the source of f with its configuration object rendered
// in place. The source is returned unchanged when nothing in the object
// changed.
func Render(f *ir.File, opts ...EncodeOption) ([]byte, error) {
	if f.Config == nil {
		return nil, ErrNoConfig
	}
	cfg := f.Config
	if !cfg.Dirty() {
		return append([]byte(nil), f.Src...), nil
	}
	if !cfg.Parsed || cfg.End > len(f.Src) || cfg.Start > cfg.End {
		return nil, fmt.Errorf("%w: %s is not located in its source", ErrNoConfig, f.Name)
	}
	es := newState(cfg, opts)
	b := &strings.Builder{}
	es.node(b, cfg, cfg.Indent)
	if debug.Render() {
		debug.Logf("rendered %d bytes for [%d, %d) of %s\n", b.Len(), cfg.Start, cfg.End, f.Name)
	}
	out := make([]byte, 0, len(f.Src)+b.Len()-(cfg.End-cfg.Start))
	out = append(out, f.Src[:cfg.Start]...)
	out = append(out, b.String()...)
	out = append(out, f.Src[cfg.End:]...)
	return out, nil
}

// Encode writes the source of node to w.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	if node == nil {
		return errors.New("nil node")
	}
	es := newState(node, opts)
	b := &strings.Builder{}
	es.node(b, node, node.Indent)
	_, err := io.WriteString(w, b.String())
	return err
}

// node writes n, which starts on a line indented by indent.
func (es *EncState) node(b *strings.Builder, n *ir.Node, indent string) {
	if n.Parsed && (!n.Dirty() || n.Type.IsLeaf()) {
		b.WriteString(n.Text)
		return
	}
	switch n.Type {
	case ir.NullType:
		b.WriteString("null")
	case ir.BoolType:
		b.WriteString(strconv.FormatBool(n.Bool))
	case ir.NumberType:
		b.WriteString(n.Number)
	case ir.StringType:
		b.WriteString(token.Quote(n.String, es.quoteOf(n)))
	case ir.IdentType:
		b.WriteString(n.String)
	case ir.RawType:
		b.WriteString(n.Text)
	case ir.CallType:
		es.values(b, n, n.Callee+"(", ")", indent)
	case ir.ArrayType:
		es.values(b, n, "[", "]", indent)
	case ir.ObjectType:
		if !n.Parsed {
			es.newObject(b, n, indent)
			return
		}
		parts := make([]part, len(n.Entries))
		for i, e := range n.Entries {
			parts[i] = part{Slot: e.Slot, indent: e.Indent, render: es.entryFunc(e)}
		}
		es.container(b, n, "{", "}", parts)
	}
}

// quoteOf returns the delimiter of a string without source: its own, the
// one set by an option, or the one of the first string literal in the
// same array.
func (es *EncState) quoteOf(n *ir.Node) byte {
	if n.Quote == '"' || n.Quote == '\'' {
		return n.Quote
	}
	if es.forced || n.Parent == nil {
		return es.quote
	}
	if p := n.Parent; p.Type == ir.ArrayType || p.Type == ir.CallType {
		for _, v := range p.Values {
			if v.Parsed && v.Type == ir.StringType && (v.Quote == '"' || v.Quote == '\'') {
				return v.Quote
			}
		}
	}
	return es.quote
}

func (es *EncState) entryFunc(e *ir.Entry) func(*strings.Builder, string) {
	return func(b *strings.Builder, indent string) { es.entry(b, e, indent) }
}

func (es *EncState) entry(b *strings.Builder, e *ir.Entry, indent string) {
	if e.Parsed {
		if !e.Dirty() {
			b.WriteString(e.Text)
			return
		}
		indent = e.Indent
	}
	switch e.Kind {
	case ir.Spread:
		b.WriteString("...")
		b.WriteString(e.Expr)
	case ir.Shorthand, ir.Method:
		b.WriteString(e.Text)
	default:
		b.WriteString(e.KeySource(es.quote))
		if e.Mid != "" {
			b.WriteString(e.Mid)
		} else {
			b.WriteString(": ")
		}
		if e.Value == nil {
			b.WriteString("undefined")
			return
		}
		es.node(b, e.Value, indent)
	}
}

// newObject writes an object which has no source, one entry per line.
func (es *EncState) newObject(b *strings.Builder, n *ir.Node, indent string) {
	if len(n.Entries) == 0 {
		b.WriteString("{}")
		return
	}
	inner := indent + es.unit
	b.WriteByte('{')
	for i, e := range n.Entries {
		b.WriteString(es.nl)
		b.WriteString(inner)
		es.entry(b, e, inner)
		if i < len(n.Entries)-1 || *es.trailing {
			b.WriteByte(',')
		}
	}
	b.WriteString(es.nl)
	b.WriteString(indent)
	b.WriteByte('}')
}

func (es *EncState) values(b *strings.Builder, n *ir.Node, open, close, indent string) {
	if !n.Parsed {
		b.WriteString(open)
		for i, v := range n.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			es.node(b, v, indent)
		}
		b.WriteString(close)
		return
	}
	parts := make([]part, len(n.Values))
	for i, v := range n.Values {
		v := v
		parts[i] = part{Slot: v.Slot, indent: v.Indent, render: func(b *strings.Builder, indent string) {
			es.node(b, v, indent)
		}}
	}
	es.container(b, n, open, close, parts)
}

type part struct {
	ir.Slot
	indent string
	render func(*strings.Builder, string)
}

// container writes a parsed object, array or argument list whose items
// changed. Items from source keep the text around them; new items follow
// the layout of the container.
func (es *EncState) container(b *strings.Builder, n *ir.Node, open, close string, parts []part) {
	var (
		ml       = multiline(n)
		tail     = n.Tail
		trailing = n.TrailingComma
		inner    = n.Indent + es.unit
		lastSet  = -1
	)
	for i := range parts {
		if !parts[i].Set {
			continue
		}
		lastSet = i
		if strings.Contains(parts[i].Lead, "\n") {
			inner = parts[i].indent
		}
	}
	if lastSet == -1 && len(parts) > 0 {
		if n.Type == ir.ObjectType && strings.TrimSpace(tail) == "" {
			ml = true
			tail = es.nl + n.Indent
		}
		if ml {
			trailing = *es.trailing
		} else if strings.TrimSpace(tail) == "" {
			tail = ""
		}
	}
	// a comment on the line of the last source item stays on that line
	// when items are appended after it.
	var keep string
	if ml && lastSet >= 0 && lastSet < len(parts)-1 {
		i := strings.IndexByte(tail, '\n')
		if i > 0 && tail[i-1] == '\r' {
			i--
		}
		if i > 0 && strings.TrimSpace(tail[:i]) != "" {
			keep, tail = tail[:i], tail[i:]
		}
	}
	b.WriteString(open)
	for i := range parts {
		p := &parts[i]
		lead, post := p.Lead, p.Post
		if !p.Set {
			post = ""
			switch {
			case ml:
				lead = es.nl + inner
			case i > 0:
				lead = " "
			case i+1 < len(parts) && parts[i+1].Set:
				lead = parts[i+1].Lead
			default:
				lead = ""
			}
			if i == lastSet+1 && keep != "" {
				lead = keep + lead
			}
		} else if !ml && i > 0 && lead == "" && !parts[i-1].Set {
			lead = " "
		}
		b.WriteString(lead)
		p.render(b, inner)
		b.WriteString(post)
		if i < len(parts)-1 || trailing {
			b.WriteByte(',')
		}
	}
	b.WriteString(tail)
	b.WriteString(close)
}

// multiline reports whether the items of a parsed container are laid out
// on lines of their own.
func multiline(n *ir.Node) bool {
	if strings.Contains(n.Tail, "\n") {
		return true
	}
	for _, e := range n.Entries {
		if e.Set && strings.Contains(e.Lead, "\n") {
			return true
		}
	}
	if n.Type != ir.ObjectType {
		for _, v := range n.Values {
			if v.Set && strings.Contains(v.Lead, "\n") {
				return true
			}
		}
	}
	return false
}
