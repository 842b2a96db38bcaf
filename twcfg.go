package twcfg

import (
	"bytes"
	"fmt"

	"github.com/signadot/twcfg/check"
	"github.com/signadot/twcfg/debug"
	"github.com/signadot/twcfg/encode"
	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/libdiff"
	"github.com/signadot/twcfg/mergeop"
	"github.com/signadot/twcfg/parse"
	"github.com/signadot/twcfg/resolve"
	"github.com/signadot/twcfg/spread"
)

// Report lists the anomalies met while applying a request. None of them
// stops the merge: the part of the request concerned is skipped.
type Report struct {
	Warnings []error
}

func (r *Report) warn(err error) {
	if debug.Merge() {
		debug.Logf("warning: %v\n", err)
	}
	r.Warnings = append(r.Warnings, err)
}

// Result is the outcome of [Transform].
type Result struct {
	Output   []byte
	Changed  bool
	Warnings []error
	// Touched are the byte ranges of the input which were rewritten.
	Touched []libdiff.Range
}

// Transform merges req into the configuration object of src and returns
// the new source.
func Transform(src []byte, req *Request, opts ...TransformOption) (*Result, error) {
	o := options(opts)
	f, err := parse.Parse(src, parse.ParseFilename(o.filename), parse.ParseBinding(o.binding))
	if err != nil {
		return nil, err
	}
	rep, err := apply(f, req, o)
	if err != nil {
		return nil, err
	}
	out, err := encode.Render(f, encodeOptions(o)...)
	if err != nil {
		return nil, err
	}
	res := &Result{Output: out, Warnings: rep.Warnings}
	res.Changed = !bytes.Equal(src, out)
	if !res.Changed {
		return res, nil
	}
	res.Touched = libdiff.Ranges(string(src), string(out))
	if o.validate {
		if err := check.Syntax(out, o.filename); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func encodeOptions(o *transformOpts) []encode.EncodeOption {
	c := o.context
	if c == nil {
		return nil
	}
	var res []encode.EncodeOption
	if c.Quote != 0 {
		res = append(res, encode.EncodeQuote(c.Quote))
	}
	if c.Indent != "" {
		res = append(res, encode.EncodeIndent(c.Indent))
	}
	return res
}

// Apply merges req into the configuration object of f, changing the tree
// in place. Properties are merged first, then plugins, then the theme.
func Apply(f *ir.File, req *Request, opts ...TransformOption) (*Report, error) {
	return apply(f, req, options(opts))
}

func apply(f *ir.File, req *Request, o *transformOpts) (*Report, error) {
	cfg := f.Config
	if cfg == nil || cfg.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, f.Name)
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	rep := &Report{}
	env := &mergeop.Env{Match: o.match, Warn: rep.warn}
	if o.context != nil {
		env.Quote = o.context.Quote
	}
	for _, err := range spread.Nest(cfg) {
		rep.warn(err)
	}
	for i := range req.Properties {
		applyProperty(cfg, &req.Properties[i], env)
	}
	if len(req.Plugins) > 0 {
		applyPlugins(cfg, req.Plugins, env)
	}
	if req.Theme != nil {
		applyTheme(cfg, req.Theme, env)
	}
	for _, err := range spread.Unnest(cfg) {
		rep.warn(err)
	}
	return rep, nil
}

func (r *Request) validate() error {
	for i := range r.Properties {
		p := &r.Properties[i]
		if p.Value == nil {
			return fmt.Errorf("%w: property %q has no value", ErrRequest, p.Name)
		}
		if _, err := ir.SplitPath(p.Name); err != nil {
			return fmt.Errorf("%w: %w", ErrRequest, err)
		}
		if p.Strategy == "" {
			continue
		}
		if _, err := mergeop.ByName(p.Strategy); err != nil {
			return fmt.Errorf("%w: property %q: %w", ErrRequest, p.Name, err)
		}
	}
	if r.Theme != nil && r.Theme.Type != ir.ObjectType {
		return fmt.Errorf("%w: theme is a %s", ErrRequest, r.Theme.Type)
	}
	return nil
}

func applyPlugins(cfg *ir.Node, plugins []string, env *mergeop.Env) {
	res, err := resolve.Resolve(cfg, []string{"plugins"}, true)
	if err != nil {
		env.Warn(err)
		return
	}
	if !res.Found() {
		cfg.AppendEntry(ir.KeyVal("plugins", ir.Array()))
		res.Index, res.Entry = cfg.Lookup("plugins")
	}
	want := ir.Array()
	for _, p := range plugins {
		want.AppendValue(pluginNode(p))
	}
	merge(res, mergeop.Plugins(), want, env)
}

func applyTheme(cfg *ir.Node, theme *ir.Node, env *mergeop.Env) {
	res, err := resolve.Resolve(cfg, []string{"theme"}, true)
	if err != nil {
		env.Warn(err)
		return
	}
	if !res.Found() {
		if debug.Merge() {
			debug.Logf("theme: add %s\n", debug.Src(theme))
		}
		cfg.AppendEntry(ir.KeyVal("theme", theme.Clone()))
		return
	}
	merge(res, mergeop.Deep(), theme, env)
}

func merge(res *resolve.Result, st mergeop.Strategy, want *ir.Node, env *mergeop.Env) {
	e := res.Entry
	if e.Kind != ir.KeyValue && e.Kind != ir.Computed || e.Value == nil {
		env.Warn(fmt.Errorf("%w: %s is a %s entry", resolve.ErrConflict, e.Path(), e.Kind))
		return
	}
	v, changed, err := st.Apply(e, want, env)
	if err != nil {
		env.Warn(err)
		return
	}
	mergeop.Set(res.Object, res.Index, v, changed)
}
