package main

import (
	"fmt"

	"github.com/signadot/twcfg/encode"
	"github.com/signadot/twcfg/parse"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a property path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	if path[0] != '$' {
		path = "$." + path
	}
	file, src, err := readConfig(cfg.MainConfig, args[1:])
	if err != nil {
		return err
	}
	f, err := parse.Parse(src, parse.ParseFilename(file))
	if err != nil {
		return err
	}
	n, err := f.Config.GetPath(path)
	if err != nil {
		return fmt.Errorf("error querying %s with %s: %w", file, path, err)
	}
	_, err = fmt.Fprintln(cc.Out, encode.MustString(n))
	return err
}
