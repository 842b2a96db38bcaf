package matcher

import (
	"github.com/signadot/twcfg/debug"
	"github.com/signadot/twcfg/ir"
)

const callArgName name = "call-arg"

var callArgM = &callArg{name: callArgName}

// CallArg returns the default matcher. A call matches by its first
// argument when that argument is a string, so require("x"), plugin("x")
// and "x" all match. Other elements match as under [Text].
func CallArg() Matcher {
	return callArgM
}

type callArg struct {
	name
}

func (m *callArg) Key(n *ir.Node) string {
	k := m.key(n)
	if debug.Match() {
		debug.Logf("%s key of %s: %q\n", m, debug.Src(n), k)
	}
	return k
}

func (m *callArg) key(n *ir.Node) string {
	switch n.Type {
	case ir.CallType, ir.RawType:
		if n.Callee != "" && len(n.Values) > 0 && n.Values[0].Type == ir.StringType {
			return ir.Key(n.Values[0])
		}
	}
	return ir.Key(n)
}
