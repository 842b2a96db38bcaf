// Package spread replaces spread entries of object literals with plain
// key value entries and back.
//
// Merge strategies only understand key value entries. Before merging, each
// spread ...expr is encoded as the sentinel entry
//
//	___expr: "...expr"
//
// whose key is the prefix followed by the identifier characters of expr.
// After merging, every sentinel is turned back into a spread. A sentinel
// that was not changed by the merge renders as the original spread text.
//
// A configuration which already has keys starting with the prefix can
// collide with sentinels: such keys are turned into spreads by [Unnest]
// when their value is a string starting with three dots.
package spread

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/twcfg/debug"
	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/parse"
	"github.com/signadot/twcfg/token"
)

const (
	// Prefix starts the key of every sentinel entry.
	Prefix = "___"
	dots   = "..."
)

var ErrMalformedSpread = errors.New("malformed spread")

// SentinelKey returns the key of the sentinel entry standing in for
// ...expr.
func SentinelKey(expr string) string {
	var b strings.Builder
	b.WriteString(Prefix)
	for _, r := range expr {
		if token.IsIdentPart(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsSentinel reports whether e has the form of a sentinel entry.
func IsSentinel(e *ir.Entry) bool {
	if e.Kind != ir.KeyValue || !strings.HasPrefix(e.Key, Prefix) || e.Value == nil {
		return false
	}
	return e.Value.Type == ir.StringType && strings.HasPrefix(e.Value.String, dots)
}

// Nest replaces the spreads of obj and of the objects nested beneath it
// with sentinel entries. Spreads of expressions other than references are
// left in place and reported.
func Nest(obj *ir.Node) []error {
	var errs []error
	visit(obj, func(n *ir.Node) {
		for i, e := range n.Entries {
			if e.Kind != ir.Spread {
				continue
			}
			expr := strings.TrimSpace(e.Expr)
			if !token.IsReference(expr) {
				errs = append(errs, fmt.Errorf("%w: ...%s at %s", ErrMalformedSpread, e.Expr, n.Path()))
				continue
			}
			s := ir.KeyVal(SentinelKey(expr), ir.FromQuoted(dots+expr, '"'))
			s.Orig = e
			n.ReplaceEntry(i, s)
			if debug.Nest() {
				debug.Logf("nest %s: %s\n", s.Path(), e.Text)
			}
		}
	})
	return errs
}

// Unnest turns the sentinel entries beneath obj back into spreads. A
// sentinel whose value no longer holds a spread expression is reported
// and left as is.
func Unnest(obj *ir.Node) []error {
	var errs []error
	visit(obj, func(n *ir.Node) {
		for i, e := range n.Entries {
			if !IsSentinel(e) {
				continue
			}
			if e.Orig != nil && !e.Value.Dirty() && e.Value.String == dots+strings.TrimSpace(e.Orig.Expr) {
				n.ReplaceEntry(i, e.Orig)
				continue
			}
			expr := strings.TrimPrefix(e.Value.String, dots)
			v, err := parse.Expr(expr)
			if err != nil || strings.TrimSpace(expr) == "" {
				errs = append(errs, fmt.Errorf("%w: %s at %s", ErrMalformedSpread, e.Value.String, e.Path()))
				continue
			}
			s := ir.SpreadOf(v.Source())
			n.ReplaceEntry(i, s)
			if debug.Nest() {
				debug.Logf("unnest %s: %s\n", e.Path(), s.Text)
			}
		}
	})
	return errs
}

// visit calls f on obj and on every object reachable from it through key
// value entries and array elements. Calls and methods are not entered.
func visit(obj *ir.Node, f func(*ir.Node)) {
	if obj == nil {
		return
	}
	switch obj.Type {
	case ir.ObjectType:
		f(obj)
		for _, e := range obj.Entries {
			if e.Kind == ir.KeyValue || e.Kind == ir.Computed {
				visit(e.Value, f)
			}
		}
	case ir.ArrayType:
		for _, v := range obj.Values {
			visit(v, f)
		}
	}
}
