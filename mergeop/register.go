package mergeop

import (
	"fmt"
	"sort"
	"sync"
)

var (
	mu sync.RWMutex
	d  = map[string]Strategy{}
)

func Register(s Strategy) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := d[s.String()]
	if present {
		return fmt.Errorf("%s: %w", s, ErrSymbolExists)
	}
	d[s.String()] = s
	return nil
}

func init() {
	Register(Replace())
	Register(Union())
	Register(StrToArray())
	Register(VariantPassthrough())
	Register(Deep())
	Register(Plugins())
}

func Lookup(s string) Strategy {
	mu.RLock()
	defer mu.RUnlock()
	return d[s]
}

// ByName is Lookup failing with ErrStrategy for unknown names.
func ByName(s string) (Strategy, error) {
	st := Lookup(s)
	if st == nil {
		return nil, fmt.Errorf("%w %q", ErrStrategy, s)
	}
	return st, nil
}

// Symbols returns the registered strategies ordered by name.
func Symbols() []Strategy {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Strategy, 0, len(d))
	for _, s := range d {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].String() < res[j].String() })
	return res
}
