package mergeop

import (
	"fmt"

	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/matcher"
)

const strToArrayName name = "str-to-array"

var strToArraySym = &strToArrayStrategy{name: strToArrayName}

// StrToArray returns the strategy which turns an existing string into an
// array holding it and then behaves like [Union].
func StrToArray() Strategy {
	return strToArraySym
}

type strToArrayStrategy struct {
	name
}

func (s *strToArrayStrategy) Apply(existing *ir.Entry, want *ir.Node, env *Env) (*ir.Node, bool, error) {
	v := existing.Value
	if v == nil {
		return nil, false, fmt.Errorf("%w: %s", ErrNoValue, existing.Path())
	}
	if v.Type == ir.ArrayType {
		return union(existing, want, matcher.Text())
	}
	if v.Type != ir.StringType {
		return v, false, fmt.Errorf("%w: %s is a %s", ErrNotString, existing.Path(), v.Type)
	}
	// the array is built detached so that a failed promotion leaves the
	// tree alone.
	tmp := ir.KeyVal(existing.Key, ir.Array(v.Clone()))
	arr, _, err := union(tmp, want, matcher.Text())
	if err != nil {
		return v, false, err
	}
	return arr, true, nil
}
