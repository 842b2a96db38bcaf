package matcher

import "github.com/signadot/twcfg/ir"

const textName name = "text"

var textM = &text{name: textName}

// Text returns the matcher comparing elements by source text, ignoring
// blanks, comments and the choice of string delimiters.
func Text() Matcher {
	return textM
}

type text struct {
	name
}

func (m *text) Key(n *ir.Node) string {
	return ir.Key(n)
}
