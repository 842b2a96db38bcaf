package twcfg

import (
	"errors"
	"testing"

	"github.com/signadot/twcfg/encode"
	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/parse"
)

type pathTest struct {
	Path  string
	Doc   string
	Res   string
	NoGet bool
}

var pathTests = []pathTest{
	{
		Path: "$",
		Doc:  "null",
		Res:  "null",
	},
	{
		Path: "$.f",
		Doc:  "{ f: 1 }",
		Res:  "1",
	},
	{
		Path: "$[0]",
		Doc:  "[1, 2, 3]",
		Res:  "1",
	},
	{
		Path: "$",
		Doc:  "[1,2,3]",
		Res:  "[1,2,3]",
	},
	{
		Path: "$[1].f",
		Doc:  `[0, {"f": 2, "g": 3}]`,
		Res:  "2",
	},
	{
		Path: "$.f[3]",
		Doc:  `{"a": [1,2], "f": [0,1,2,"three"]}`,
		Res:  `"three"`,
	},
	{
		Path: "$.'f[3]'[2]",
		Doc:  `{"a": [1,2], "f[3]": [0,1,2,"three"]}`,
		Res:  "2",
	},
	{
		Path: "$.'$f[\\'3]'[2]",
		Doc:  `{"a": [1,2], "$f['3]": [0,1,2,"three"]}`,
		Res:  "2",
	},
	{
		Path: "$.theme.extend.colors.primary",
		Doc:  "{\n  theme: {\n    extend: {\n      colors: { primary: 'hsl(var(--primary))' },\n    },\n  },\n}",
		Res:  "'hsl(var(--primary))'",
	},
	{
		Path: "$.plugins[0][0]",
		Doc:  `{ plugins: [require("@tailwindcss/forms")] }`,
		Res:  `"@tailwindcss/forms"`,
	},
	{
		NoGet: true,
		Path:  "$.a[0]",
		Doc:   "{ a: 'b' }",
	},
	{
		NoGet: true,
		Path:  "$.c.d",
		Doc:   "{ a: 'b', c: { a: 3 } }",
	},
	{
		NoGet: true,
		Path:  "$[3]",
		Doc:   "[1, 2]",
	},
}

func TestPathGet(t *testing.T) {
	for i := range pathTests {
		pathTest := &pathTests[i]
		node, err := parse.Expr(pathTest.Doc)
		if err != nil {
			t.Errorf("# doc\n%s\n---\n# %v\n", pathTest.Doc, err)
			continue
		}
		res, err := node.GetPath(pathTest.Path)
		if pathTest.NoGet {
			if !errors.Is(err, ir.ErrNoPath) {
				t.Errorf("%s in %q: got %v, want ErrNoPath", pathTest.Path, pathTest.Doc, err)
			}
			continue
		}
		if err != nil {
			t.Error(err)
			continue
		}
		pp, err := ir.ParsePath(pathTest.Path)
		if err != nil {
			t.Error(err)
			continue
		}
		t.Logf("got path %q -> %q", pathTest.Path, pp.String())
		if res == nil {
			t.Error("no result")
			continue
		}
		out := encode.MustString(res)
		if out != pathTest.Res {
			t.Errorf("got %q want %q", out, pathTest.Res)
		}
	}
}

func TestPathOfNode(t *testing.T) {
	node, err := parse.Expr(`{ theme: { "spacing.5": [1, { a: 2 }] } }`)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"$.theme", "$.theme.'spacing.5'", "$.theme.'spacing.5'[1].a"} {
		n, err := node.GetPath(p)
		if err != nil {
			t.Error(err)
			continue
		}
		if got := n.Path(); got != p {
			t.Errorf("path of %s is %s", p, got)
		}
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
		err  bool
	}{
		{in: "darkMode", want: []string{"darkMode"}},
		{in: "theme.extend.colors", want: []string{"theme", "extend", "colors"}},
		{in: "theme.extend.'spacing.5'", want: []string{"theme", "extend", "spacing.5"}},
		{in: "", err: true},
		{in: "plugins[0]", err: true},
		{in: "theme..x", err: true},
	}
	for _, tc := range tests {
		got, err := ir.SplitPath(tc.in)
		if (err != nil) != tc.err {
			t.Errorf("%q: error %v", tc.in, err)
			continue
		}
		if tc.err {
			if !errors.Is(err, ir.ErrPath) {
				t.Errorf("%q: %v is not ErrPath", tc.in, err)
			}
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("%q: got %q", tc.in, got)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%q: got %q", tc.in, got)
				break
			}
		}
	}
}
