// Package matcher decides when two elements of an array denote the same
// thing, for instance the plugin require("tailwindcss-animate") and the
// plugin name "tailwindcss-animate".
package matcher

import "github.com/signadot/twcfg/ir"

// Matcher maps array elements to keys. Elements with equal keys match.
type Matcher interface {
	String() string
	Key(n *ir.Node) string
}

type name string

func (s name) String() string {
	return string(s)
}

// Equal reports whether a and b match under m.
func Equal(m Matcher, a, b *ir.Node) bool {
	return m.Key(a) == m.Key(b)
}

// Index returns the index of the first element of values matching v, or
// -1.
func Index(m Matcher, values []*ir.Node, v *ir.Node) int {
	k := m.Key(v)
	for i, x := range values {
		if m.Key(x) == k {
			return i
		}
	}
	return -1
}
