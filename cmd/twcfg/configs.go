package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/twcfg"
	"github.com/signadot/twcfg/project"

	"github.com/scott-cotton/cli"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Dir     string `cli:"name=C desc='project directory holding components.json'"`
	Color   bool   `cli:"name=color desc='color diffs'"`
	Verbose bool   `cli:"name=v desc='log merge steps'"`

	Main *cli.Command
}

func (cfg *MainConfig) dir() string {
	if cfg.Dir == "" {
		return "."
	}
	return cfg.Dir
}

func (cfg *MainConfig) loadProject() (*project.Config, error) {
	p, err := project.Load(cfg.dir())
	if err != nil {
		return nil, err
	}
	if p.File != "" {
		theLog.Debug("loaded project", "file", p.File)
	}
	return p, nil
}

// configFile returns the configuration file named by args or, failing
// that, the one of the project.
func (cfg *MainConfig) configFile(p *project.Config, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	f, err := p.FindConfig()
	if err != nil {
		return "", err
	}
	theLog.Debug("using configuration", "file", f)
	return f, nil
}

// setColor decides whether diffs written to w are colored: -color forces
// them, otherwise they are colored on terminals.
func (cfg *MainConfig) setColor(w io.Writer) {
	if cfg.Color {
		color.NoColor = false
		return
	}
	colorSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		color.NoColor = true
		return
	}
	f, ok := w.(*os.File)
	color.NoColor = !ok || !isatty.IsTerminal(f.Fd())
}

type MergeConfig struct {
	*MainConfig

	Request string `cli:"name=r desc='request file in yaml or json, - for stdin'"`
	Config  string `cli:"name=c desc='configuration file'"`
	Write   bool   `cli:"name=w desc='write the result to the configuration file'"`
	Diff    bool   `cli:"name=diff desc='output a unified diff'"`
	Match   string `cli:"name=match desc='plugin matcher: a registered name or an expression'"`
	Binding string `cli:"name=binding desc='merge into the object bound to this top level variable'"`
	NoCheck bool   `cli:"name=nocheck desc='do not check that the result compiles'"`
	Tags    bool   `cli:"name=tags desc='show available strategies and matchers'"`

	props   []twcfg.PropertyRequest
	plugins []string

	Merge *cli.Command
}

func (cfg *MergeConfig) propOpt(_ *cli.Context, v string) (any, error) {
	p, err := twcfg.ParseProperty(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.props = append(cfg.props, p)
	return 0, nil
}

func (cfg *MergeConfig) pluginOpt(_ *cli.Context, v string) (any, error) {
	if v == "" {
		return nil, fmt.Errorf("%w: empty plugin", cli.ErrUsage)
	}
	cfg.plugins = append(cfg.plugins, v)
	return 0, nil
}

type CheckConfig struct {
	*MainConfig
	Check *cli.Command
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type NestConfig struct {
	*MainConfig
	Reverse bool
	Nest    *cli.Command
}
