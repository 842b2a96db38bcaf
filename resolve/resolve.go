// Package resolve finds properties of configuration objects by path.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/twcfg/debug"
	"github.com/signadot/twcfg/ir"
)

var (
	ErrConflict  = errors.New("path conflict")
	ErrEmptyPath = errors.New("empty path")
)

// ConflictErr reports a path whose prefix names a value which is not an
// object literal.
type ConflictErr struct {
	Path []string
	Type ir.Type
}

func (e *ConflictErr) Error() string {
	return fmt.Sprintf("%s: %s is a %s, not an object", ErrConflict, strings.Join(e.Path, "."), e.Type)
}

func (e *ConflictErr) Unwrap() error { return ErrConflict }

// Result is the outcome of a resolution: the object holding the last
// component of the path and, when present, the entry for it.
type Result struct {
	Object *ir.Node
	Entry  *ir.Entry
	Index  int
}

func (r *Result) Found() bool {
	return r.Entry != nil
}

// Resolve walks path from root. Every component but the last must name an
// object literal. With create, missing intermediate objects are appended
// as empty objects; otherwise a missing intermediate yields a result that
// is not found and has no object.
//
// Among entries sharing a name, the last one is used.
func Resolve(root *ir.Node, path []string, create bool) (*Result, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	if root == nil || root.Type != ir.ObjectType {
		t := ir.NullType
		if root != nil {
			t = root.Type
		}
		return nil, &ConflictErr{Type: t}
	}
	obj := root
	for i, k := range path[:len(path)-1] {
		_, e := obj.Lookup(k)
		switch {
		case e == nil && !create:
			return &Result{Index: -1}, nil
		case e == nil:
			e = ir.KeyVal(k, ir.Object())
			obj.AppendEntry(e)
			if debug.Resolve() {
				debug.Logf("resolve created %s\n", e.Path())
			}
		case e.Value == nil || e.Value.Type != ir.ObjectType:
			t := ir.RawType
			if e.Value != nil {
				t = e.Value.Type
			}
			return nil, &ConflictErr{Path: append([]string(nil), path[:i+1]...), Type: t}
		}
		obj = e.Value
	}
	i, e := obj.Lookup(path[len(path)-1])
	return &Result{Object: obj, Entry: e, Index: i}, nil
}
