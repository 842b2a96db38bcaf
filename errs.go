package twcfg

import (
	"errors"

	"github.com/signadot/twcfg/parse"
)

var (
	// ErrNotFound is returned when a file has no exported configuration
	// object.
	ErrNotFound = parse.ErrNotFound
	ErrRequest  = errors.New("bad request")
)
