package mergeop

import (
	"fmt"

	"github.com/signadot/twcfg/debug"
	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/matcher"
	"github.com/signadot/twcfg/token"
)

const pluginsName name = "plugins"

var pluginsSym = &pluginsStrategy{name: pluginsName}

// Plugins returns the strategy adding plugins to a plugin list. Plugins
// already in the list, as decided by the matcher of the environment, are
// not added again. Plugin names given as strings are written in the call
// form the list already uses, see [Plugin].
func Plugins() Strategy {
	return pluginsSym
}

type pluginsStrategy struct {
	name
}

func (s *pluginsStrategy) Apply(existing *ir.Entry, want *ir.Node, env *Env) (*ir.Node, bool, error) {
	arr := existing.Value
	if arr == nil {
		return nil, false, fmt.Errorf("%w: %s", ErrNoValue, existing.Path())
	}
	if arr.Type != ir.ArrayType {
		return arr, false, fmt.Errorf("%w: %s is a %s", ErrNotArray, existing.Path(), arr.Type)
	}
	var (
		m       = env.match()
		orig    = append([]*ir.Node(nil), arr.Values...)
		changed = false
	)
	for _, w := range elements(want) {
		if matcher.Index(m, arr.Values, w) != -1 {
			if debug.Merge() {
				debug.Logf("plugins %s: %s present\n", existing.Path(), debug.Src(w))
			}
			continue
		}
		p := Plugin(w, orig, env.quote())
		if debug.Merge() {
			debug.Logf("plugins %s: append %s\n", existing.Path(), debug.Src(p))
		}
		arr.AppendValue(p)
		changed = true
	}
	return arr, changed, nil
}

// Plugin returns the element to add to a plugin list holding existing for
// the requested plugin req. Calls and references are used as they are. A
// plugin name is wrapped in the callee of the first call in the list, and
// in a list without calls becomes a reference when it is an identifier
// and require(name) otherwise. A wrapped name is quoted with q, or when q
// is 0 like the first argument of that call.
func Plugin(req *ir.Node, existing []*ir.Node, q byte) *ir.Node {
	if req.Type != ir.StringType {
		return req.Clone()
	}
	for _, v := range existing {
		if v.Type == ir.CallType && v.Callee != "" {
			return ir.Call(v.Callee, pluginName(req, v, q))
		}
	}
	if token.IsIdent(req.String) && !token.IsReserved(req.String) {
		return ir.Ident(req.String)
	}
	return ir.Call("require", ir.FromString(req.String))
}

// pluginName returns the name of req quoted with q, or when q is 0 like
// the first argument of call.
func pluginName(req *ir.Node, call *ir.Node, q byte) *ir.Node {
	s := ir.FromString(req.String)
	if q != 0 {
		s.Quote = q
		return s
	}
	if len(call.Values) > 0 && call.Values[0].Type == ir.StringType && call.Values[0].Quote != '`' {
		s.Quote = call.Values[0].Quote
	}
	return s
}
