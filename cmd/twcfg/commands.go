package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "twcfg").
		WithSynopsis("twcfg [opts] command [opts]").
		WithDescription("twcfg merges settings into tailwind configuration files, keeping their formatting.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return twcfgMain(cfg, cc, args)
		}).
		WithSubs(
			MergeCommand(cfg),
			CheckCommand(cfg),
			GetCommand(cfg),
			NestCommand(cfg),
			UnnestCommand(cfg))
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "p",
			Description: "merge a property, value is a javascript expression",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.propOpt), "(name=value)"),
		},
		&cli.Opt{
			Name:        "plugin",
			Description: "add a plugin by package name or expression",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.pluginOpt), "(plugin)"),
		})
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("m").
		WithSynopsis("merge [-r request] [-p name=value]... [-plugin p]... [config]").
		WithDescription(mergeDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
}

const mergeDescription = `merge merges a request into a tailwind configuration file.

The configuration file is the argument, the file named by -c, or the one
named in components.json, falling back to tailwind.config.{ts,js,mjs,cjs}
in the project directory.

A request file holds

  properties:
  - name: darkMode
    value: [class]
  plugins: [tailwindcss-animate]
  theme:
    extend:
      borderRadius:
        lg: var(--radius)

Properties given with -p and plugins given with -plugin are added to it.

Only the changed parts of the configuration object are rewritten. The
result is written to the output, to the configuration file with -w, or
as a unified diff with -diff.`

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [files]").
		WithDescription("check that configuration files have a configuration object and compile").
		WithRun(func(cc *cli.Context, args []string) error {
			return checkFiles(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [config]").
		WithDescription("get a property of a configuration object, such as theme.extend.colors").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func NestCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NestConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Nest, "nest").
		WithSynopsis("nest [config]").
		WithDescription("show a configuration with its spreads replaced by sentinel entries").
		WithRun(func(cc *cli.Context, args []string) error {
			return nest(cfg, cc, args)
		})
}

func UnnestCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NestConfig{MainConfig: mainCfg, Reverse: true}
	return cli.NewCommandAt(&cfg.Nest, "unnest").
		WithSynopsis("unnest [config]").
		WithDescription("turn sentinel entries of a configuration back into spreads").
		WithRun(func(cc *cli.Context, args []string) error {
			return nest(cfg, cc, args)
		})
}
