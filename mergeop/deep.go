package mergeop

import (
	"fmt"
	"strings"

	"github.com/signadot/twcfg/debug"
	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/resolve"
	"github.com/signadot/twcfg/spread"
)

const deepName name = "deep"

var deepSym = &deepStrategy{name: deepName}

// Deep returns the strategy merging objects recursively. Keys missing
// from the existing object are appended, objects present on both sides
// are merged, and any other existing value is kept: a conflict is
// reported through the environment and the wanted value dropped.
// Sentinel entries standing in for spreads are never merged into.
func Deep() Strategy {
	return deepSym
}

type deepStrategy struct {
	name
}

func (s *deepStrategy) Apply(existing *ir.Entry, want *ir.Node, env *Env) (*ir.Node, bool, error) {
	v := existing.Value
	if v == nil {
		return nil, false, fmt.Errorf("%w: %s", ErrNoValue, existing.Path())
	}
	if want.Type != ir.ObjectType {
		return v, false, fmt.Errorf("%w: wanted value for %s is a %s", ErrNotObject, existing.Path(), want.Type)
	}
	if v.Type != ir.ObjectType {
		env.warn(&resolve.ConflictErr{Path: []string{existing.Key}, Type: v.Type})
		return v, false, nil
	}
	return v, MergeObject(v, want, env), nil
}

// MergeObject merges the key value entries of src into dst and reports
// whether dst changed.
func MergeObject(dst, src *ir.Node, env *Env) bool {
	changed := false
	for _, se := range src.Entries {
		if se.Kind != ir.KeyValue || se.Value == nil {
			continue
		}
		if spread.IsSentinel(se) {
			continue
		}
		_, de := dst.Lookup(se.Key)
		switch {
		case de == nil:
			if debug.Merge() {
				debug.Logf("deep %s: add %s\n", dst.Path(), se.Key)
			}
			dst.AppendEntry(ir.KeyVal(se.Key, se.Value.Clone()))
			changed = true
		case spread.IsSentinel(de):
		case de.Kind != ir.KeyValue && de.Kind != ir.Computed:
			// shorthand and method entries hold no literal to merge into
			env.warn(&resolve.ConflictErr{Path: pathOf(de), Type: ir.RawType})
		case de.Value != nil && de.Value.Type == ir.ObjectType && se.Value.Type == ir.ObjectType:
			if MergeObject(de.Value, se.Value, env) {
				changed = true
			}
		case de.Value != nil && Equal(de.Value, se.Value):
		case de.Value == nil || de.Value.Type != ir.ObjectType && se.Value.Type == ir.ObjectType:
			t := ir.RawType
			if de.Value != nil {
				t = de.Value.Type
			}
			env.warn(&resolve.ConflictErr{Path: pathOf(de), Type: t})
		default:
			env.warn(fmt.Errorf("%w: %s keeps %s", resolve.ErrConflict, strings.Join(pathOf(de), "."), de.Value.Source()))
		}
	}
	return changed
}

// pathOf returns the keys leading from the outermost object to e.
func pathOf(e *ir.Entry) []string {
	res := []string{e.Key}
	for n := e.Parent; n != nil && n.Parent != nil; n = n.Parent {
		if n.ParentField == "" {
			break
		}
		res = append([]string{n.ParentField}, res...)
	}
	return res
}
