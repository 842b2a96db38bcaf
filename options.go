package twcfg

import (
	"github.com/signadot/twcfg/matcher"
	"github.com/signadot/twcfg/project"
)

type transformOpts struct {
	context  *project.Context
	filename string
	binding  string
	match    matcher.Matcher
	validate bool
}

type TransformOption func(*transformOpts)

// WithContext sets the project settings consulted when rendering.
func WithContext(c *project.Context) TransformOption {
	return func(o *transformOpts) { o.context = c }
}

func WithFilename(v string) TransformOption {
	return func(o *transformOpts) { o.filename = v }
}

// WithBinding merges into the object bound to the top level variable v
// instead of the exported one.
func WithBinding(v string) TransformOption {
	return func(o *transformOpts) { o.binding = v }
}

// WithMatcher sets how plugins already in a plugin list are recognized.
func WithMatcher(m matcher.Matcher) TransformOption {
	return func(o *transformOpts) { o.match = m }
}

// Validate checks that changed output still compiles.
func Validate(v bool) TransformOption {
	return func(o *transformOpts) { o.validate = v }
}

func options(opts []TransformOption) *transformOpts {
	o := &transformOpts{match: matcher.CallArg()}
	for _, f := range opts {
		f(o)
	}
	return o
}
