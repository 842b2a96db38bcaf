// Package mergeop holds the strategies which merge a requested value into
// an existing property of a configuration object.
//
// Strategies change the tree as little as possible: arrays grow by
// appending, objects by appending entries, and a strategy which finds the
// request already satisfied reports no change so that the source is
// rendered byte for byte.
package mergeop

import (
	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/matcher"
)

// Strategy merges want into the value of an existing key value entry.
// Apply returns the value the entry should hold and whether anything
// changed. The returned value may be the existing value changed in place.
type Strategy interface {
	String() string
	Apply(existing *ir.Entry, want *ir.Node, env *Env) (*ir.Node, bool, error)
}

type name string

func (s name) String() string {
	return string(s)
}

// Env carries what strategies need besides the values they merge.
type Env struct {
	// Match identifies plugins, matcher.CallArg by default.
	Match matcher.Matcher
	// Warn receives anomalies which do not stop a merge.
	Warn func(error)
	// Quote is the configured delimiter of new strings, 0 when new
	// strings follow their neighbours.
	Quote byte
}

func (env *Env) match() matcher.Matcher {
	if env == nil || env.Match == nil {
		return matcher.CallArg()
	}
	return env.Match
}

func (env *Env) quote() byte {
	if env == nil {
		return 0
	}
	return env.Quote
}

func (env *Env) warn(err error) {
	if env == nil || env.Warn == nil {
		return
	}
	env.Warn(err)
}

// Set applies the result of a strategy to the entry at index i of obj.
func Set(obj *ir.Node, i int, v *ir.Node, changed bool) {
	if !changed || obj.Entries[i].Value == v {
		return
	}
	obj.SetValue(i, v)
}
