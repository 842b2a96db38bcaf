package ir

import (
	"strconv"
	"strings"

	"github.com/signadot/twcfg/token"
)

// Source returns the source text of n: the original text for untouched
// parsed nodes and a compact single line rendering otherwise.
func (n *Node) Source() string {
	var b strings.Builder
	n.compact(&b)
	return b.String()
}

// Source returns the source text of e, compact when e changed.
func (e *Entry) Source() string {
	var b strings.Builder
	e.compact(&b)
	return b.String()
}

func (n *Node) compact(b *strings.Builder) {
	if n.Parsed && (!n.dirty || n.Type.IsLeaf()) {
		b.WriteString(n.Text)
		return
	}
	switch n.Type {
	case NullType:
		b.WriteString("null")
	case BoolType:
		b.WriteString(strconv.FormatBool(n.Bool))
	case NumberType:
		b.WriteString(n.Number)
	case StringType:
		q := n.Quote
		if q == 0 {
			q = '"'
		}
		b.WriteString(token.Quote(n.String, q))
	case IdentType:
		b.WriteString(n.String)
	case RawType:
		b.WriteString(n.Text)
	case CallType:
		b.WriteString(n.Callee)
		b.WriteByte('(')
		for i, v := range n.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			v.compact(b)
		}
		b.WriteByte(')')
	case ArrayType:
		b.WriteByte('[')
		for i, v := range n.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			v.compact(b)
		}
		b.WriteByte(']')
	case ObjectType:
		if len(n.Entries) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{ ")
		for i, e := range n.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			e.compact(b)
		}
		b.WriteString(" }")
	}
}

func (e *Entry) compact(b *strings.Builder) {
	if e.Parsed && !e.Dirty() {
		b.WriteString(e.Text)
		return
	}
	switch e.Kind {
	case Spread:
		b.WriteString("...")
		b.WriteString(e.Expr)
	case Shorthand, Method:
		b.WriteString(e.Text)
	default:
		b.WriteString(e.KeySource('"'))
		if e.Mid != "" {
			b.WriteString(e.Mid)
		} else {
			b.WriteString(": ")
		}
		e.Value.compact(b)
	}
}

// KeySource returns the key as written in source, or for synthesized
// entries the key as an identifier when possible and otherwise as a string
// literal delimited by q.
func (e *Entry) KeySource(q byte) string {
	if e.KeyText != "" {
		return e.KeyText
	}
	if token.IsIdent(e.Key) {
		return e.Key
	}
	if e.Key != "" && isCanonicalNumber(e.Key) {
		return e.Key
	}
	if e.KeyQuote != 0 {
		q = e.KeyQuote
	}
	return token.Quote(e.Key, q)
}

func isCanonicalNumber(s string) bool {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return false
	}
	return strconv.FormatUint(n, 10) == s
}

// Key returns the identity of n used when treating arrays as sets. Strings
// compare by value regardless of their quotes, other expressions by their
// text with blanks removed.
func Key(n *Node) string {
	switch n.Type {
	case StringType:
		return "s:" + n.String
	case NumberType:
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Number, "_", ""), 64)
		if err != nil {
			return "n:" + n.Number
		}
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
	case BoolType:
		return "b:" + strconv.FormatBool(n.Bool)
	case NullType:
		return "null"
	case IdentType:
		return "i:" + n.String
	default:
		return "x:" + NormalizeText(n.Source())
	}
}

// NormalizeText removes blanks and comments outside of string literals
// and rewrites single quoted strings with double quotes.
func NormalizeText(s string) string {
	toks, err := token.Tokenize(nil, []byte(s))
	if err != nil {
		return strings.Join(strings.Fields(s), "")
	}
	var b strings.Builder
	for i := range toks {
		t := &toks[i]
		switch t.Type {
		case token.TComment:
			continue
		case token.TString:
			b.WriteString(token.Quote(t.String(), '"'))
		default:
			if b.Len() > 0 && t.Type == token.TIdent && i > 0 && toks[i-1].Type == token.TIdent {
				b.WriteByte(' ')
			}
			b.Write(t.Bytes)
		}
	}
	return b.String()
}
