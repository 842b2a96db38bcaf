package libdiff

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func TestUnified(t *testing.T) {
	from := "module.exports = {\n  plugins: [],\n}\n"
	to := "module.exports = {\n  darkMode: [\"class\"],\n  plugins: [],\n}\n"
	got, err := Unified("tailwind.config.js", []byte(from), []byte(to))
	if err != nil {
		t.Fatal(err)
	}
	want := `--- a/tailwind.config.js
+++ b/tailwind.config.js
@@ -1,3 +1,4 @@
 module.exports = {
+  darkMode: ["class"],
   plugins: [],
 }
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	same, err := Unified("x.js", []byte(from), []byte(from))
	if err != nil {
		t.Fatal(err)
	}
	if same != "" {
		t.Errorf("equal inputs gave %q", same)
	}
}

func TestRanges(t *testing.T) {
	tests := []struct {
		from, to string
		want     []Range
	}{
		{from: "abc", to: "abc", want: nil},
		{from: "{ a: 1 }", to: "{ a: 1, b: 2 }", want: []Range{{Start: 6, End: 6}}},
		{from: "darkMode: 'media'", to: "darkMode: ['media', 'class']", want: []Range{{Start: 10, End: 10}, {Start: 17, End: 17}}},
	}
	for _, tc := range tests {
		got := Ranges(tc.from, tc.to)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%q -> %q mismatch (-want +got):\n%s", tc.from, tc.to, diff)
		}
	}
}

func TestColorize(t *testing.T) {
	saved := color.NoColor
	defer func() { color.NoColor = saved }()

	diff := "--- a/x\n+++ b/x\n@@ -1 +1 @@\n-a\n+b\n same\n"
	color.NoColor = true
	if got := Colorize(diff); got != diff {
		t.Errorf("without color got %q", got)
	}
	color.NoColor = false
	got := Colorize(diff)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("no escapes in %q", got)
	}
	if !strings.HasSuffix(got, " same\n") {
		t.Errorf("context line changed: %q", got)
	}
}
