package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse    = errors.New("parse error")
	ErrNotFound = errors.New("configuration object not found")
	ErrEntry    = fmt.Errorf("%w: bad object entry", ErrParse)
	ErrEmpty    = fmt.Errorf("%w: empty expression", ErrParse)
)
