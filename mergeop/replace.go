package mergeop

import (
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/twcfg/debug"
	"github.com/signadot/twcfg/ir"
)

const replaceName name = "replace"

var replaceSym = &replaceStrategy{name: replaceName}

// Replace returns the strategy which overwrites the existing value unless
// it already equals the wanted one.
func Replace() Strategy {
	return replaceSym
}

type replaceStrategy struct {
	name
}

func (s *replaceStrategy) Apply(existing *ir.Entry, want *ir.Node, env *Env) (*ir.Node, bool, error) {
	if existing.Value == nil {
		return want.Clone(), true, nil
	}
	if Equal(existing.Value, want) {
		return existing.Value, false, nil
	}
	if debug.Merge() {
		debug.Logf("replace %s: %s -> %s\n", existing.Path(), debug.Src(existing.Value), debug.Src(want))
	}
	return want.Clone(), true, nil
}

// Equal reports whether a and b denote the same value: equal as JSON when
// both are JSON literals, otherwise equal up to blanks, comments and
// string delimiters.
func Equal(a, b *ir.Node) bool {
	ja, errA := ir.ToJSON(a)
	jb, errB := ir.ToJSON(b)
	if errA == nil && errB == nil {
		return jsonpatch.Equal(ja, jb)
	}
	return ir.Key(a) == ir.Key(b)
}
