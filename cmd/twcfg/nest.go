package main

import (
	"github.com/signadot/twcfg/encode"
	"github.com/signadot/twcfg/parse"
	"github.com/signadot/twcfg/spread"

	"github.com/scott-cotton/cli"
)

func nest(cfg *NestConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Nest.Parse(cc, args)
	if err != nil {
		cfg.Nest.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	file, src, err := readConfig(cfg.MainConfig, args)
	if err != nil {
		return err
	}
	f, err := parse.Parse(src, parse.ParseFilename(file))
	if err != nil {
		return err
	}
	var errs []error
	if cfg.Reverse {
		errs = spread.Unnest(f.Config)
	} else {
		errs = spread.Nest(f.Config)
	}
	for _, err := range errs {
		theLog.Warn("skipped", "file", file, "reason", err)
	}
	out, err := encode.Render(f)
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(out)
	return err
}
