package main

import (
	"fmt"
	"os"

	"github.com/signadot/twcfg/check"
	"github.com/signadot/twcfg/parse"

	"github.com/scott-cotton/cli"
)

func checkFiles(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		proj, err := cfg.loadProject()
		if err != nil {
			return err
		}
		f, err := cfg.configFile(proj, nil)
		if err != nil {
			return err
		}
		args = []string{f}
	}
	failed := 0
	for _, file := range args {
		if err := checkFile(file); err != nil {
			theLog.Error("check", "file", file, "error", err)
			failed++
			continue
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func checkFile(file string) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	if err := check.Syntax(src, file); err != nil {
		return err
	}
	f, err := parse.Parse(src, parse.ParseFilename(file))
	if err != nil {
		return err
	}
	theLog.Info("ok", "file", file, "export", f.Export, "entries", len(f.Config.Entries))
	return nil
}

// readConfig reads the configuration file named by args or found in the
// project.
func readConfig(cfg *MainConfig, args []string) (string, []byte, error) {
	if len(args) > 1 {
		return "", nil, fmt.Errorf("%w: expected at most one configuration file, got %v", cli.ErrUsage, args)
	}
	proj, err := cfg.loadProject()
	if err != nil {
		return "", nil, err
	}
	file, err := cfg.configFile(proj, args)
	if err != nil {
		return "", nil, err
	}
	src, err := os.ReadFile(file)
	if err != nil {
		return "", nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	return file, src, nil
}
