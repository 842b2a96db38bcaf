package twcfg

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/twcfg/check"
	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/matcher"
	"github.com/signadot/twcfg/mergeop"
	"github.com/signadot/twcfg/parse"
	"github.com/signadot/twcfg/project"
	"github.com/signadot/twcfg/resolve"
)

const (
	tsHead    = "import type { Config } from 'tailwindcss'\n\nconst config: Config = {\n"
	tsContent = `  content: [
    "./pages/**/*.{js,ts,jsx,tsx,mdx}",
    "./components/**/*.{js,ts,jsx,tsx,mdx}",
    "./app/**/*.{js,ts,jsx,tsx,mdx}",
  ],
`
	tsTheme = `  theme: {
    extend: {
      backgroundImage: {
        "gradient-radial": "radial-gradient(var(--tw-gradient-stops))",
        "gradient-conic":
          "conic-gradient(from 180deg at 50% 50%, var(--tw-gradient-stops))",
      },
    },
  },
`
	tsPlugins = "  plugins: [],\n"
	tsTail    = "}\nexport default config\n"
)

// tsConfig returns a typed configuration whose object holds the given
// lines.
func tsConfig(lines ...string) string {
	return tsHead + strings.Join(lines, "") + tsTail
}

func darkClass() *Request {
	return &Request{Properties: []PropertyRequest{{Name: "darkMode", Value: ir.FromString("class")}}}
}

func mustRequest(t *testing.T, doc string) *Request {
	t.Helper()
	req, err := ParseRequest([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func mustFile(t *testing.T, src string) *ir.File {
	t.Helper()
	f, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

type transformTest struct {
	name string
	src  string
	req  func(t *testing.T) *Request
	// want is the expected output, empty when the source must be kept
	want string
}

func runTransform(t *testing.T, tests []transformTest) {
	t.Helper()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Transform([]byte(tc.src), tc.req(t), WithFilename("tailwind.config.ts"), Validate(true))
			if err != nil {
				t.Fatal(err)
			}
			want := tc.want
			if want == "" {
				want = tc.src
			}
			if diff := cmp.Diff(want, string(res.Output)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if res.Changed != (tc.want != "") {
				t.Errorf("changed %t", res.Changed)
			}
			if res.Changed && len(res.Touched) == 0 {
				t.Errorf("changed without touched ranges")
			}
			for _, w := range res.Warnings {
				t.Errorf("warning: %v", w)
			}
		})
	}
}

func TestDarkMode(t *testing.T) {
	dark := func(t *testing.T) *Request { return darkClass() }
	astro := "/** @type {import('tailwindcss').Config} */\n\nexport default {\n" +
		"\tcontent: ['./src/**/*.{astro,html,js,jsx,md,mdx,svelte,ts,tsx,vue}'],\n" +
		"\ttheme: {\n\t\textend: {},\n\t},\n\tplugins: [],\n}\n"
	astroDark := "/** @type {import('tailwindcss').Config} */\n\nexport default {\n" +
		"\tdarkMode: ['class'],\n" +
		"\tcontent: ['./src/**/*.{astro,html,js,jsx,md,mdx,svelte,ts,tsx,vue}'],\n" +
		"\ttheme: {\n\t\textend: {},\n\t},\n\tplugins: [],\n}\n"
	foo := "const foo = {\n  bar: 'baz',\n}\n\n"
	runTransform(t, []transformTest{
		{
			name: "absent",
			src:  tsConfig(tsContent, tsTheme, tsPlugins),
			req:  dark,
			want: tsConfig("  darkMode: [\"class\"],\n", tsContent, tsTheme, tsPlugins),
		},
		{
			name: "absent with tabs",
			src:  astro,
			req:  dark,
			want: astroDark,
		},
		{
			name: "absent after another object",
			src:  strings.Replace(astro, "\n\nexport", "\n"+foo+"export", 1),
			req:  dark,
			want: strings.Replace(astroDark, "\n\nexport", "\n"+foo+"export", 1),
		},
		{
			name: "existing array",
			src:  tsConfig("  darkMode: [\"selector\"],\n", tsContent, tsTheme, tsPlugins),
			req:  dark,
			want: tsConfig("  darkMode: [\"selector\", \"class\"],\n", tsContent, tsTheme, tsPlugins),
		},
		{
			name: "quotes",
			src:  tsConfig("  darkMode: ['selector', '[data-mode=\"dark\"]'],\n", tsContent, tsTheme, tsPlugins),
			req:  dark,
			want: tsConfig("  darkMode: ['selector', '[data-mode=\"dark\"]', 'class'],\n", tsContent, tsTheme, tsPlugins),
		},
		{
			name: "string",
			src:  tsConfig("  darkMode: \"selector\",\n", tsContent, tsTheme, tsPlugins),
			req:  dark,
			want: tsConfig("  darkMode: [\"selector\", \"class\"],\n", tsContent, tsTheme, tsPlugins),
		},
		{
			name: "variant",
			src: tsConfig("  darkMode: ['variant', [\n"+
				"    '@media (prefers-color-scheme: dark) { &:not(.light *) }',\n"+
				"    '&:is(.dark *)',\n  ]],\n", tsContent, tsTheme, tsPlugins),
			req: dark,
		},
		{
			name: "present",
			src:  tsConfig("  darkMode: ['class'],\n", tsContent, tsTheme, tsPlugins),
			req:  dark,
		},
		{
			name: "present among others",
			src: "import type { Config } from 'tailwindcss'\n\n  const config: Config = {\n" +
				"  darkMode: ['class', 'selector'],\n" + tsContent + tsTheme + tsPlugins + "  }\n  export default config\n",
			req: dark,
		},
	})
}

func TestPlugins(t *testing.T) {
	animate := func(t *testing.T) *Request { return &Request{Plugins: []string{"tailwindcss-animate"}} }
	runTransform(t, []transformTest{
		{
			name: "absent",
			src:  tsConfig(tsContent, tsTheme),
			req:  animate,
			want: tsConfig(tsContent, tsTheme, "  plugins: [require(\"tailwindcss-animate\")],\n"),
		},
		{
			name: "append",
			src:  tsConfig(tsContent, tsTheme, "  plugins: [require(\"@tailwindcss/typography\")],\n"),
			req:  animate,
			want: tsConfig(tsContent, tsTheme, "  plugins: [require(\"@tailwindcss/typography\"), require(\"tailwindcss-animate\")],\n"),
		},
		{
			name: "present",
			src:  tsConfig(tsContent, tsTheme, "  plugins: [require(\"@tailwindcss/typography\"), require(\"tailwindcss-animate\")],\n"),
			req:  animate,
		},
		{
			name: "imported",
			src:  "import animate from 'tailwindcss-animate'\n\nexport default {\n  plugins: [animate],\n}\n",
			req: func(t *testing.T) *Request {
				return &Request{Plugins: []string{"typography"}}
			},
			want: "import animate from 'tailwindcss-animate'\n\nexport default {\n  plugins: [animate, typography],\n}\n",
		},
		{
			name: "call with options",
			src:  "module.exports = {\n  plugins: [require('@tailwindcss/forms')],\n}\n",
			req: func(t *testing.T) *Request {
				return &Request{Plugins: []string{`require('@tailwindcss/forms')({ strategy: 'class' })`}}
			},
		},
	})
}

const colorsRequest = `
theme:
  extend:
    colors:
      primary:
        DEFAULT: "hsl(var(--primary))"
        foreground: "hsl(var(--primary-foreground))"
      card:
        DEFAULT: "hsl(var(--card))"
        foreground: "hsl(var(--card-foreground))"
`

const colorsMerged = `      colors: {
        background: "hsl(var(--background))",
        foreground: "hsl(var(--foreground))",
        primary: {
          DEFAULT: "hsl(var(--primary))",
          foreground: "hsl(var(--primary-foreground))",
        },
        card: {
          DEFAULT: "hsl(var(--card))",
          foreground: "hsl(var(--card-foreground))",
        },
      },
`

func TestTheme(t *testing.T) {
	colors := func(t *testing.T) *Request { return mustRequest(t, colorsRequest) }
	themeOf := func(colors string) string {
		return "  theme: {\n    extend: {\n" + colors + "    },\n  },\n"
	}
	existing := "      colors: {\n        background: \"hsl(var(--background))\",\n        foreground: \"hsl(var(--foreground))\",\n      },\n"
	withSpread := strings.Replace(existing, "{\n", "{\n        ...defaultColors,\n", 1)
	runTransform(t, []transformTest{
		{
			name: "absent",
			src: "import type { Config } from 'tailwindcss'\n\n  const config: Config = {\n" +
				"    content: [\n      \"./pages/**/*.{js,ts,jsx,tsx,mdx}\",\n      \"./app/**/*.{js,ts,jsx,tsx,mdx}\",\n    ],\n" +
				"  }\n  export default config\n",
			req: func(t *testing.T) *Request {
				return mustRequest(t, `
theme:
  extend:
    colors:
      background: "hsl(var(--background))"
      foreground: "hsl(var(--foreground))"
      primary:
        DEFAULT: "hsl(var(--primary))"
        foreground: "hsl(var(--primary-foreground))"
`)
			},
			want: "import type { Config } from 'tailwindcss'\n\n  const config: Config = {\n" +
				"    content: [\n      \"./pages/**/*.{js,ts,jsx,tsx,mdx}\",\n      \"./app/**/*.{js,ts,jsx,tsx,mdx}\",\n    ],\n" +
				`    theme: {
      extend: {
        colors: {
          background: "hsl(var(--background))",
          foreground: "hsl(var(--foreground))",
          primary: {
            DEFAULT: "hsl(var(--primary))",
            foreground: "hsl(var(--primary-foreground))",
          },
        },
      },
    },
` +
				"  }\n  export default config\n",
		},
		{
			name: "merge",
			src:  tsConfig(tsContent, themeOf(existing)),
			req:  colors,
			want: tsConfig(tsContent, themeOf(colorsMerged)),
		},
		{
			name: "keep spreads",
			src:  tsConfig(tsContent, themeOf(withSpread)),
			req:  colors,
			want: tsConfig(tsContent, themeOf(strings.Replace(colorsMerged, "{\n", "{\n        ...defaultColors,\n", 1))),
		},
		{
			name: "satisfied",
			src:  tsConfig(tsContent, themeOf(colorsMerged)),
			req:  colors,
		},
	})
}

func TestThemeMultiple(t *testing.T) {
	src := tsConfig(tsContent, `  theme: {
    extend: {
      fontFamily: {
        sans: ["var(--font-geist-sans)", ...fontFamily.sans],
        mono: ["var(--font-mono)", ...fontFamily.mono],
      },
      colors: {
        ...defaultColors,
        background: "hsl(var(--background))",
        foreground: "hsl(var(--foreground))",
      },
      boxShadow: {
        ...defaultBoxShadow,
        "3xl": "0 35px 60px -15px rgba(0, 0, 0, 0.3)",
      },
      borderRadius: {
        "3xl": "2rem",
      },
      animation: {
        ...defaultAnimation,
        "spin-slow": "spin 3s linear infinite",
      },
    },
  },
`)
	req := `
theme:
  extend:
    fontFamily:
      heading: ["var(--font-geist-sans)"]
    colors:
      border: "hsl(var(--border))"
      input: "hsl(var(--input))"
      ring: "hsl(var(--ring))"
      primary:
        DEFAULT: "hsl(var(--primary))"
        foreground: "hsl(var(--primary-foreground))"
      card:
        DEFAULT: "hsl(var(--card))"
        foreground: "hsl(var(--card-foreground))"
    borderRadius:
      lg: "var(--radius)"
      md: "calc(var(--radius) - 2px)"
      sm: "calc(var(--radius) - 4px)"
    animation:
      accordion-down: "accordion-down 0.2s ease-out"
      accordion-up: "accordion-up 0.2s ease-out"
`
	want := tsConfig(tsContent, `  theme: {
    extend: {
      fontFamily: {
        sans: ["var(--font-geist-sans)", ...fontFamily.sans],
        mono: ["var(--font-mono)", ...fontFamily.mono],
        heading: ["var(--font-geist-sans)"],
      },
      colors: {
        ...defaultColors,
        background: "hsl(var(--background))",
        foreground: "hsl(var(--foreground))",
        border: "hsl(var(--border))",
        input: "hsl(var(--input))",
        ring: "hsl(var(--ring))",
        primary: {
          DEFAULT: "hsl(var(--primary))",
          foreground: "hsl(var(--primary-foreground))",
        },
        card: {
          DEFAULT: "hsl(var(--card))",
          foreground: "hsl(var(--card-foreground))",
        },
      },
      boxShadow: {
        ...defaultBoxShadow,
        "3xl": "0 35px 60px -15px rgba(0, 0, 0, 0.3)",
      },
      borderRadius: {
        "3xl": "2rem",
        lg: "var(--radius)",
        md: "calc(var(--radius) - 2px)",
        sm: "calc(var(--radius) - 4px)",
      },
      animation: {
        ...defaultAnimation,
        "spin-slow": "spin 3s linear infinite",
        "accordion-down": "accordion-down 0.2s ease-out",
        "accordion-up": "accordion-up 0.2s ease-out",
      },
    },
  },
`)
	runTransform(t, []transformTest{{
		name: "multiple",
		src:  src,
		req:  func(t *testing.T) *Request { return mustRequest(t, req) },
		want: want,
	}})
}

func TestNestedProperty(t *testing.T) {
	src := "module.exports = {\n  theme: {},\n}\n"
	req := &Request{Properties: []PropertyRequest{
		{Name: "theme.extend.borderRadius.lg", Value: ir.FromString("var(--radius)")},
		{Name: "future.hoverOnlyWhenSupported", Value: ir.FromBool(true)},
	}}
	res, err := Transform([]byte(src), req)
	if err != nil {
		t.Fatal(err)
	}
	want := `module.exports = {
  theme: {
    extend: {
      borderRadius: {
        lg: "var(--radius)",
      },
    },
  },
  future: {
    hoverOnlyWhenSupported: true,
  },
}
`
	if diff := cmp.Diff(want, string(res.Output)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPropertyStrategies(t *testing.T) {
	tests := []struct {
		name string
		src  string
		prop PropertyRequest
		want string
	}{
		{
			name: "replace scalar",
			src:  "export default { prefix: 'tw-' }",
			prop: PropertyRequest{Name: "prefix", Value: ir.FromString("ui-")},
			want: "export default { prefix: 'ui-' }",
		},
		{
			name: "union array",
			src:  "export default { content: ['./app/**/*.tsx'] }",
			prop: PropertyRequest{Name: "content", Value: ir.Array(ir.FromString("./components/**/*.tsx"), ir.FromString("./app/**/*.tsx"))},
			want: "export default { content: ['./app/**/*.tsx', './components/**/*.tsx'] }",
		},
		{
			name: "explicit replace of array",
			src:  "export default { content: ['./app/**/*.tsx'] }",
			prop: PropertyRequest{Name: "content", Value: ir.Array(ir.FromString("./src/**/*.tsx")), Strategy: "replace"},
			want: "export default { content: ['./src/**/*.tsx'] }",
		},
		{
			name: "string promoted",
			src:  "export default { content: './app/**/*.tsx' }",
			prop: PropertyRequest{Name: "content", Value: ir.Array(ir.FromString("./src/**/*.tsx"))},
			want: "export default { content: ['./app/**/*.tsx', './src/**/*.tsx'] }",
		},
		{
			name: "darkMode kept when not an array",
			src:  "export default { darkMode: isDark ? 'class' : 'media' }",
			prop: PropertyRequest{Name: "darkMode", Value: ir.FromString("class")},
			want: "export default { darkMode: isDark ? 'class' : 'media' }",
		},
		{
			name: "darkMode first",
			src:  "export default { content: [] }",
			prop: PropertyRequest{Name: "darkMode", Value: ir.FromString("media")},
			want: "export default { darkMode: [\"media\"], content: [] }",
		},
		{
			name: "inserted array without repeats",
			src:  "export default { content: [] }",
			prop: PropertyRequest{Name: "darkMode", Value: ir.Array(ir.FromString("class"), ir.FromQuoted("class", '\''), ir.FromString("selector"))},
			want: "export default { darkMode: [\"class\", \"selector\"], content: [] }",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Transform([]byte(tc.src), &Request{Properties: []PropertyRequest{tc.prop}})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, string(res.Output)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	src := "export default {\n  theme: 'dark',\n  plugins: {},\n  colors: { primary: 'red' },\n}\n"
	req := &Request{
		Properties: []PropertyRequest{
			{Name: "colors.primary.DEFAULT", Value: ir.FromString("blue")},
		},
		Plugins: []string{"tailwindcss-animate"},
		Theme:   ir.Object(ir.KeyVal("extend", ir.Object())),
	}
	res, err := Transform([]byte(src), req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed {
		t.Errorf("changed:\n%s", res.Output)
	}
	if len(res.Warnings) != 3 {
		t.Fatalf("got warnings %v", res.Warnings)
	}
	var ce *resolve.ConflictErr
	if !errors.As(res.Warnings[0], &ce) || strings.Join(ce.Path, ".") != "colors.primary" || ce.Type != ir.StringType {
		t.Errorf("property warning %v", res.Warnings[0])
	}
	if !errors.Is(res.Warnings[1], mergeop.ErrNotArray) {
		t.Errorf("plugins warning %v", res.Warnings[1])
	}
	if !errors.Is(res.Warnings[2], resolve.ErrConflict) {
		t.Errorf("theme warning %v", res.Warnings[2])
	}
}

func TestTransformErrors(t *testing.T) {
	if _, err := Transform([]byte("const x = 1\n"), darkClass()); !errors.Is(err, ErrNotFound) {
		t.Errorf("no export: %v", err)
	}
	bad := &Request{Properties: []PropertyRequest{{Name: "darkMode", Value: ir.FromString("class"), Strategy: "merge-all"}}}
	if _, err := Transform([]byte("export default {}\n"), bad); !errors.Is(err, ErrRequest) || !errors.Is(err, mergeop.ErrStrategy) {
		t.Errorf("bad strategy: %v", err)
	}
	noValue := &Request{Properties: []PropertyRequest{{Name: "darkMode"}}}
	if _, err := Transform([]byte("export default {}\n"), noValue); !errors.Is(err, ErrRequest) {
		t.Errorf("no value: %v", err)
	}
	// a plugin whose text is not an expression ends up as a string and the
	// output stays valid
	res, err := Transform([]byte("export default {}\n"), &Request{Plugins: []string{"my plugin"}}, Validate(true))
	if err != nil {
		t.Fatal(err)
	}
	if err := check.Syntax(res.Output, "tailwind.config.js"); err != nil {
		t.Error(err)
	}
}

func TestTransformOptions(t *testing.T) {
	src := "const base = { content: [] }\nconst config = {\n    plugins: [],\n}\nexport default config\n"
	ctx, err := (&project.Config{Format: project.Format{Quote: "single", Indent: "2"}}).Context()
	if err != nil {
		t.Fatal(err)
	}
	req := &Request{
		Properties: []PropertyRequest{{Name: "theme.extend.colors.primary", Value: ir.FromString("red")}},
	}
	res, err := Transform([]byte(src), req, WithContext(ctx))
	if err != nil {
		t.Fatal(err)
	}
	want := "const base = { content: [] }\nconst config = {\n    plugins: [],\n    theme: {\n      extend: {\n        colors: {\n          primary: 'red',\n        },\n      },\n    },\n}\nexport default config\n"
	if diff := cmp.Diff(want, string(res.Output)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	res, err = Transform([]byte(src), darkClass(), WithBinding("base"))
	if err != nil {
		t.Fatal(err)
	}
	want = "const base = { darkMode: [\"class\"], content: [] }\nconst config = {\n    plugins: [],\n}\nexport default config\n"
	if diff := cmp.Diff(want, string(res.Output)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestContextQuote(t *testing.T) {
	src := "export default {\n  darkMode: ['selector'],\n  plugins: [require('a')],\n}\n"
	ctx, err := (&project.Config{Format: project.Format{Quote: "double"}}).Context()
	if err != nil {
		t.Fatal(err)
	}
	req := darkClass()
	req.Plugins = []string{"b-c"}
	res, err := Transform([]byte(src), req, WithContext(ctx), Validate(true))
	if err != nil {
		t.Fatal(err)
	}
	want := "export default {\n  darkMode: ['selector', \"class\"],\n  plugins: [require('a'), require(\"b-c\")],\n}\n"
	if diff := cmp.Diff(want, string(res.Output)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMatcherOption(t *testing.T) {
	src := "export default {\n  plugins: [require('./plugins/animate.js')],\n}\n"
	m, err := matcher.NewExpr(`callee == "require" ? norm(replace(arg, ".js", "")) : text`)
	if err != nil {
		t.Fatal(err)
	}
	req := &Request{Plugins: []string{`require("./plugins/animate")`}}
	res, err := Transform([]byte(src), req, WithMatcher(m))
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed {
		t.Errorf("plugin added twice:\n%s", res.Output)
	}
	res, err = Transform([]byte(src), req)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed {
		t.Error("call-arg matcher matched different paths")
	}
}

func TestApply(t *testing.T) {
	f := mustFile(t, "export default {\n  ...base,\n  plugins: [],\n}\n")
	rep, err := Apply(f, darkClass())
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Warnings) != 0 {
		t.Errorf("warnings %v", rep.Warnings)
	}
	if e := f.Config.Entries[1]; e.Kind != ir.Spread || e.Expr != "base" {
		t.Errorf("spread not restored: %+v", e)
	}
	if got := f.Config.Get("darkMode"); got == nil || ir.Key(got.Values[0]) != "s:class" {
		t.Errorf("darkMode %v", got)
	}
}
