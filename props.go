package twcfg

import (
	"fmt"

	"github.com/signadot/twcfg/debug"
	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/matcher"
	"github.com/signadot/twcfg/mergeop"
	"github.com/signadot/twcfg/resolve"
)

const darkMode = "darkMode"

func applyProperty(cfg *ir.Node, p *PropertyRequest, env *mergeop.Env) {
	path, _ := ir.SplitPath(p.Name)
	res, err := resolve.Resolve(cfg, path, true)
	if err != nil {
		env.Warn(fmt.Errorf("property %s: %w", p.Name, err))
		return
	}
	dark := len(path) == 1 && path[0] == darkMode
	want := p.Value
	if dark && want.Type == ir.StringType {
		want = ir.Array(want.Clone())
	}
	if !res.Found() {
		e := ir.KeyVal(path[len(path)-1], distinct(want))
		if dark {
			res.Object.InsertEntry(0, e)
		} else {
			res.Object.AppendEntry(e)
		}
		if debug.Merge() {
			debug.Logf("property %s: add %s\n", p.Name, debug.Src(want))
		}
		return
	}
	st, err := propertyStrategy(p, res.Entry, want, dark)
	if err != nil {
		env.Warn(err)
		return
	}
	if st == nil {
		if debug.Merge() {
			debug.Logf("property %s: keep %s\n", p.Name, debug.Src(res.Entry.Value))
		}
		return
	}
	merge(res, st, want, env)
}

// distinct returns a copy of v. Elements of an array which repeat an
// earlier element are left out, as they are when appending to an array.
func distinct(v *ir.Node) *ir.Node {
	if v.Type != ir.ArrayType {
		return v.Clone()
	}
	m := matcher.Text()
	res := ir.Array()
	for _, x := range v.Values {
		if matcher.Index(m, res.Values, x) == -1 {
			res.AppendValue(x.Clone())
		}
	}
	return res
}

// propertyStrategy chooses how to merge into an existing property. A nil
// strategy leaves the property alone.
func propertyStrategy(p *PropertyRequest, e *ir.Entry, want *ir.Node, dark bool) (mergeop.Strategy, error) {
	if p.Strategy != "" {
		return mergeop.ByName(p.Strategy)
	}
	v := e.Value
	if v == nil {
		return nil, nil
	}
	switch {
	case dark && v.Type == ir.StringType:
		return mergeop.StrToArray(), nil
	case dark && v.Type == ir.ArrayType && mergeop.HasVariant(v):
		return mergeop.VariantPassthrough(), nil
	case dark && v.Type == ir.ArrayType:
		return mergeop.Union(), nil
	case dark:
		return nil, nil
	case v.Type == ir.ArrayType:
		return mergeop.Union(), nil
	case v.Type == ir.StringType && want.Type == ir.ArrayType:
		return mergeop.StrToArray(), nil
	case v.Type == ir.ObjectType && want.Type == ir.ObjectType:
		return mergeop.Deep(), nil
	}
	return mergeop.Replace(), nil
}
