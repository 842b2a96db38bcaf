package twcfg

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/twcfg/encode"
	"github.com/signadot/twcfg/ir"
)

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`
properties:
- name: darkMode
  value: [class]
- name: theme.extend.borderRadius.lg
  value: var(--radius)
  strategy: replace
plugins: [tailwindcss-animate, 'require("@tailwindcss/forms")']
theme:
  extend:
    keyframes:
      accordion-down:
        from: { height: "0" }
        to: { height: "var(--radix-accordion-content-height)" }
    zIndex:
      modal: 50
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(req.Properties) != 2 {
		t.Fatalf("got %d properties", len(req.Properties))
	}
	p := req.Properties[1]
	if p.Name != "theme.extend.borderRadius.lg" || p.Strategy != "replace" || p.Value.String != "var(--radius)" {
		t.Errorf("property %+v", p)
	}
	if diff := cmp.Diff([]string{"tailwindcss-animate", `require("@tailwindcss/forms")`}, req.Plugins); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	want := `{
  extend: {
    keyframes: {
      "accordion-down": {
        from: {
          height: "0",
        },
        to: {
          height: "var(--radix-accordion-content-height)",
        },
      },
    },
    zIndex: {
      modal: 50,
    },
  },
}`
	if diff := cmp.Diff(want, encode.MustString(req.Theme)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRequestMapping(t *testing.T) {
	req, err := ParseRequest([]byte(`{"properties": {"darkMode": "class", "future.hoverOnlyWhenSupported": true}}`))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, p := range req.Properties {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"darkMode", "future.hoverOnlyWhenSupported"}, names); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if v := req.Properties[1].Value; v.Type != ir.BoolType || !v.Bool {
		t.Errorf("value %+v", v)
	}
}

func TestParseRequestErrors(t *testing.T) {
	docs := []string{
		"properties: 3",
		"properties:\n- name: darkMode",
		"properties:\n- value: class",
		"properties:\n- name: darkMode\n  value: class\n  how: union",
		"plugins: {a: b}",
		"theme: [a]",
		"colors: {}",
		"properties: [",
	}
	for _, doc := range docs {
		if _, err := ParseRequest([]byte(doc)); !errors.Is(err, ErrRequest) {
			t.Errorf("%q: got %v", doc, err)
		}
	}
}

func TestRequestMerge(t *testing.T) {
	a := mustRequest(t, `
properties: {darkMode: class}
plugins: [tailwindcss-animate]
theme:
  extend:
    colors: {border: "hsl(var(--border))"}
`)
	b := mustRequest(t, `
properties: {prefix: tw-}
plugins: [tailwindcss-animate, typography]
theme:
  extend:
    colors: {border: red, ring: "hsl(var(--ring))"}
    borderRadius: {lg: "var(--radius)"}
`)
	a.Merge(b)
	if len(a.Properties) != 2 {
		t.Errorf("properties %+v", a.Properties)
	}
	if diff := cmp.Diff([]string{"tailwindcss-animate", "typography"}, a.Plugins); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	want := `{
  extend: {
    colors: {
      border: "hsl(var(--border))",
      ring: "hsl(var(--ring))",
    },
    borderRadius: {
      lg: "var(--radius)",
    },
  },
}`
	if diff := cmp.Diff(want, encode.MustString(a.Theme)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	empty := &Request{}
	empty.Merge(b)
	if empty.Theme == b.Theme || empty.Theme == nil {
		t.Error("theme not copied")
	}
}

func TestParseProperty(t *testing.T) {
	tests := []struct {
		in   string
		want string
		typ  ir.Type
		err  bool
	}{
		{in: "darkMode=media", want: `"media"`, typ: ir.StringType},
		{in: "darkMode=['class', '[data-theme=dark]']", want: `['class', '[data-theme=dark]']`, typ: ir.ArrayType},
		{in: "important=true", want: "true", typ: ir.BoolType},
		{in: "prefix=tw-", want: `"tw-"`, typ: ir.StringType},
		{in: "theme.colors=colors.slate", want: "colors.slate", typ: ir.IdentType},
		{in: "corePlugins.preflight=false", want: "false", typ: ir.BoolType},
		{in: "separator=_", want: `"_"`, typ: ir.StringType},
		{in: "content=", err: true},
		{in: "=class", err: true},
		{in: "darkMode", err: true},
	}
	for _, tc := range tests {
		p, err := ParseProperty(tc.in)
		if (err != nil) != tc.err {
			t.Errorf("%q: error %v", tc.in, err)
			continue
		}
		if err != nil {
			if !errors.Is(err, ErrRequest) {
				t.Errorf("%q: %v is not ErrRequest", tc.in, err)
			}
			continue
		}
		if p.Value.Type != tc.typ {
			t.Errorf("%q: type %s, want %s", tc.in, p.Value.Type, tc.typ)
		}
		if got := encode.MustString(p.Value); got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.in, got, tc.want)
		}
	}
}
