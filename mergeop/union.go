package mergeop

import (
	"fmt"

	"github.com/signadot/twcfg/debug"
	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/matcher"
)

const unionName name = "union"

var unionSym = &unionStrategy{name: unionName}

// Union returns the strategy treating arrays as sets: wanted elements
// missing from the existing array are appended in order. Strings match
// regardless of their delimiters.
func Union() Strategy {
	return unionSym
}

type unionStrategy struct {
	name
}

func (s *unionStrategy) Apply(existing *ir.Entry, want *ir.Node, env *Env) (*ir.Node, bool, error) {
	return union(existing, want, matcher.Text())
}

func union(existing *ir.Entry, want *ir.Node, m matcher.Matcher) (*ir.Node, bool, error) {
	arr := existing.Value
	if arr == nil {
		return nil, false, fmt.Errorf("%w: %s", ErrNoValue, existing.Path())
	}
	if arr.Type != ir.ArrayType {
		return arr, false, fmt.Errorf("%w: %s is a %s", ErrNotArray, existing.Path(), arr.Type)
	}
	changed := false
	for _, w := range elements(want) {
		if matcher.Index(m, arr.Values, w) != -1 {
			continue
		}
		if debug.Merge() {
			debug.Logf("union %s: append %s\n", existing.Path(), debug.Src(w))
		}
		arr.AppendValue(w.Clone())
		changed = true
	}
	return arr, changed, nil
}

// elements returns the elements of an array, or the node itself.
func elements(n *ir.Node) []*ir.Node {
	if n.Type == ir.ArrayType {
		return n.Values
	}
	return []*ir.Node{n}
}
