package mergeop

import "errors"

var (
	ErrNotArray     = errors.New("not an array")
	ErrNotString    = errors.New("not a string")
	ErrNotObject    = errors.New("not an object")
	ErrNoValue      = errors.New("entry has no value")
	ErrStrategy     = errors.New("unknown strategy")
	ErrSymbolExists = errors.New("strategy exists")
)
