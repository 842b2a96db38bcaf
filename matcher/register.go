package matcher

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	mu sync.RWMutex
	d  = map[string]Matcher{}
)

var ErrMatcherExists = errors.New("matcher exists")

func Register(m Matcher) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := d[m.String()]
	if present {
		return fmt.Errorf("%s: %w", m, ErrMatcherExists)
	}
	d[m.String()] = m
	return nil
}

func init() {
	Register(CallArg())
	Register(Text())
}

func Lookup(s string) Matcher {
	mu.RLock()
	defer mu.RUnlock()
	return d[s]
}

// Symbols returns the registered matchers ordered by name.
func Symbols() []Matcher {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Matcher, 0, len(d))
	for _, m := range d {
		res = append(res, m)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].String() < res[j].String() })
	return res
}
