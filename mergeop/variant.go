package mergeop

import "github.com/signadot/twcfg/ir"

const variantName name = "variant-passthrough"

var variantSym = &variantStrategy{name: variantName}

// VariantPassthrough returns the strategy which leaves arrays holding an
// array, such as darkMode: ["variant", [".dark &"]], untouched and
// otherwise behaves like [Union].
func VariantPassthrough() Strategy {
	return variantSym
}

type variantStrategy struct {
	name
}

func (s *variantStrategy) Apply(existing *ir.Entry, want *ir.Node, env *Env) (*ir.Node, bool, error) {
	v := existing.Value
	if v == nil || v.Type != ir.ArrayType || HasVariant(v) {
		return v, false, nil
	}
	return unionSym.Apply(existing, want, env)
}

// HasVariant reports whether one of the elements of arr is an array.
func HasVariant(arr *ir.Node) bool {
	for _, v := range arr.Values {
		if v.Type == ir.ArrayType {
			return true
		}
	}
	return false
}
