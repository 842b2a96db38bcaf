package ir

import "errors"

var (
	ErrNotJSON = errors.New("not representable as json")
	ErrPath    = errors.New("bad path")
	ErrNoPath  = errors.New("path not found")
)
