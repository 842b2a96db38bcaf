package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/twcfg"
	"github.com/signadot/twcfg/libdiff"
	"github.com/signadot/twcfg/matcher"
	"github.com/signadot/twcfg/mergeop"

	"github.com/scott-cotton/cli"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Tags {
		fmt.Fprintf(cc.Out, "available strategies:\n")
		for _, s := range mergeop.Symbols() {
			fmt.Fprintf(cc.Out, "\t- %s\n", s)
		}
		fmt.Fprintf(cc.Out, "available matchers:\n")
		for _, m := range matcher.Symbols() {
			fmt.Fprintf(cc.Out, "\t- %s\n", m)
		}
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: merge takes at most one configuration file, got %v", cli.ErrUsage, args)
	}
	if cfg.Write && cfg.Diff {
		return fmt.Errorf("%w: only one of -w, -diff may be specified", cli.ErrUsage)
	}
	req, err := cfg.request(cc)
	if err != nil {
		return err
	}
	proj, err := cfg.loadProject()
	if err != nil {
		return err
	}
	if cfg.Config != "" {
		args = []string{cfg.Config}
	}
	file, err := cfg.configFile(proj, args)
	if err != nil {
		return err
	}
	pctx, err := proj.Context()
	if err != nil {
		return err
	}
	src, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", file, err)
	}
	opts := []twcfg.TransformOption{
		twcfg.WithContext(pctx),
		twcfg.WithFilename(file),
		twcfg.WithBinding(cfg.Binding),
		twcfg.Validate(!cfg.NoCheck),
	}
	if cfg.Match != "" {
		m, err := getMatcher(cfg.Match)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		opts = append(opts, twcfg.WithMatcher(m))
	}
	res, err := twcfg.Transform(src, req, opts...)
	if err != nil {
		return fmt.Errorf("error merging into %s: %w", file, err)
	}
	for _, w := range res.Warnings {
		theLog.Warn("skipped", "file", file, "reason", w)
	}
	for _, r := range res.Touched {
		theLog.Debug("rewrote", "file", file, "range", r)
	}
	switch {
	case cfg.Diff:
		return writeDiff(cfg, cc.Out, file, src, res.Output)
	case cfg.Write:
		if !res.Changed {
			theLog.Info("unchanged", "file", file)
			return nil
		}
		st, err := os.Stat(file)
		if err != nil {
			return err
		}
		if err := os.WriteFile(file, res.Output, st.Mode().Perm()); err != nil {
			return fmt.Errorf("could not write %q: %w", file, err)
		}
		theLog.Info("updated", "file", file)
		return nil
	}
	_, err = cc.Out.Write(res.Output)
	return err
}

// request gathers the request file and the properties and plugins given
// as options.
func (cfg *MergeConfig) request(cc *cli.Context) (*twcfg.Request, error) {
	req := &twcfg.Request{}
	if cfg.Request != "" {
		var (
			d   []byte
			err error
		)
		if cfg.Request == "-" {
			d, err = io.ReadAll(cc.In)
		} else {
			d, err = os.ReadFile(cfg.Request)
		}
		if err != nil {
			return nil, fmt.Errorf("error reading request: %w", err)
		}
		req, err = twcfg.ParseRequest(d)
		if err != nil {
			return nil, fmt.Errorf("error decoding request %s: %w", cfg.Request, err)
		}
	}
	req.Merge(&twcfg.Request{Properties: cfg.props, Plugins: cfg.plugins})
	if len(req.Properties) == 0 && len(req.Plugins) == 0 && req.Theme == nil {
		return nil, fmt.Errorf("%w: nothing to merge, use -r, -p or -plugin", cli.ErrUsage)
	}
	return req, nil
}

func getMatcher(s string) (matcher.Matcher, error) {
	if m := matcher.Lookup(s); m != nil {
		return m, nil
	}
	return matcher.NewExpr(s)
}

func writeDiff(cfg *MergeConfig, w io.Writer, file string, from, to []byte) error {
	d, err := libdiff.Unified(file, from, to)
	if err != nil {
		return err
	}
	if d == "" {
		return nil
	}
	cfg.setColor(w)
	if _, err := io.WriteString(w, libdiff.Colorize(d)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
