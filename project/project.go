// Package project loads the settings of a project using tailwind from its
// components.json and the environment.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileName is the name of the project file.
const FileName = "components.json"

// EnvPrefix starts the environment variables overriding project settings,
// TWCFG_FORMAT_QUOTE=single sets format.quote.
const EnvPrefix = "TWCFG_"

var ErrNoConfig = errors.New("no tailwind configuration file")

// Config is the contents of components.json. Only Tailwind and Format
// affect merges, the rest is kept for callers.
type Config struct {
	Schema   string            `koanf:"$schema"`
	Style    string            `koanf:"style"`
	RSC      bool              `koanf:"rsc"`
	TSX      bool              `koanf:"tsx"`
	Tailwind Tailwind          `koanf:"tailwind"`
	Aliases  map[string]string `koanf:"aliases"`
	Format   Format            `koanf:"format"`

	// Dir is the directory the settings were loaded for.
	Dir string `koanf:"-"`
	// File is the project file read, empty when there was none.
	File string `koanf:"-"`
}

type Tailwind struct {
	Config       string `koanf:"config"`
	CSS          string `koanf:"css"`
	BaseColor    string `koanf:"baseColor"`
	CSSVariables bool   `koanf:"cssVariables"`
	Prefix       string `koanf:"prefix"`
}

// Format holds rendering preferences. Quote is "single" or "double",
// Indent is "tab" or a number of spaces. Empty values follow the file
// being changed.
type Format struct {
	Quote  string `koanf:"quote"`
	Indent string `koanf:"indent"`
}

// Load reads the settings of the project in dir. A missing project file
// is not an error.
func Load(dir string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]any{
		"style":                 "default",
		"tsx":                   true,
		"tailwind.cssVariables": true,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	path := filepath.Join(dir, FileName)
	used := ""
	if _, err := os.Stat(path); err == nil {
		// JSON is read with the YAML parser.
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}
		used = path
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	cfg.Dir = dir
	cfg.File = used
	return cfg, nil
}

// Context is what a merge consults of a project.
type Context struct {
	Config *Config
	// Quote is the delimiter of new strings, 0 to follow the file.
	Quote byte
	// Indent is the indentation unit of new lines, "" to follow the
	// file.
	Indent string
}

// Context returns the merge context of c.
func (c *Config) Context() (*Context, error) {
	ctx := &Context{Config: c}
	switch strings.ToLower(c.Format.Quote) {
	case "":
	case "single", "'":
		ctx.Quote = '\''
	case "double", `"`:
		ctx.Quote = '"'
	default:
		return nil, fmt.Errorf("format.quote: unknown quote %q", c.Format.Quote)
	}
	switch ind := strings.ToLower(c.Format.Indent); ind {
	case "":
	case "tab", "\t":
		ctx.Indent = "\t"
	default:
		n, err := strconv.Atoi(ind)
		if err != nil || n < 1 || n > 16 {
			return nil, fmt.Errorf("format.indent: %q is neither tab nor a number of spaces", c.Format.Indent)
		}
		ctx.Indent = strings.Repeat(" ", n)
	}
	return ctx, nil
}

// Candidates are the configuration file names looked for, in order.
var Candidates = []string{
	"tailwind.config.ts",
	"tailwind.config.js",
	"tailwind.config.mjs",
	"tailwind.config.cjs",
	"tailwind.config.mts",
	"tailwind.config.cts",
}

// FindConfig returns the path of the tailwind configuration file of the
// project: the file named by tailwind.config when set, otherwise the first
// candidate present in the project directory.
func (c *Config) FindConfig() (string, error) {
	if c.Tailwind.Config != "" {
		p := c.Tailwind.Config
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.Dir, p)
		}
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoConfig, err)
		}
		return p, nil
	}
	for _, name := range Candidates {
		p := filepath.Join(c.Dir, name)
		st, err := os.Stat(p)
		if err != nil || st.IsDir() {
			continue
		}
		return p, nil
	}
	return "", fmt.Errorf("%w in %s", ErrNoConfig, c.Dir)
}
