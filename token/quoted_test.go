package token

import (
	"errors"
	"testing"
)

func TestQuoted(t *testing.T) {
	for _, s := range []string{
		`"`,
		`'`,
		"\t\n\v\r\b\f\x00",
		"∞∞",
		`"""''`,
		`a\b`,
		" ",
		`[data-mode="dark"]`,
	} {
		for _, q := range []byte{'"', '\''} {
			quoted := Quote(s, q)
			if quoted[0] != q {
				t.Errorf("Quote(%q, %c) = %s", s, q, quoted)
			}
			uq, err := Unquote(quoted)
			if err != nil {
				t.Errorf("error unquoting %s (from %q): %v", quoted, s, err)
				continue
			}
			if uq != s {
				t.Errorf("Unquote(Quote(%q)) = %q", s, uq)
			}
		}
	}
}

type unquoteTest struct {
	in, out string
	err     error
}

func TestUnquote(t *testing.T) {
	uts := []unquoteTest{
		{in: `"abc"`, out: `abc`},
		{in: `"\"'"`, out: `"'`},
		{in: `'"'`, out: `"`},
		{in: `'∞'`, out: "∞"},
		{in: `'\u{1F600}'`, out: "😀"},
		{in: `'😀'`, out: "😀"},
		{in: `'\x41\q'`, out: "Aq"},
		{in: "'a\\\nb'", out: "ab"},
		{in: "`plain`", out: "plain"},
		{in: "`a${b}`", err: ErrBadQuote},
		{in: `'abc"`, err: ErrUnterminated},
		{in: `'\u12'`, err: ErrBadUnicode},
		{in: `'\01'`, err: ErrBadEscape},
		{in: `abc`, err: ErrBadQuote},
	}
	for _, ut := range uts {
		got, err := Unquote(ut.in)
		if ut.err != nil {
			if !errors.Is(err, ut.err) {
				t.Errorf("%s: got error %v want %v", ut.in, err, ut.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", ut.in, err)
			continue
		}
		if got != ut.out {
			t.Errorf("%s: got %q want %q", ut.in, got, ut.out)
		}
	}
}

func TestIsReference(t *testing.T) {
	for in, want := range map[string]bool{
		"foo":             true,
		"fontFamily.sans": true,
		"$a._b":           true,
		"a.":              false,
		"a..b":            false,
		"a[0]":            false,
		"f()":             false,
		"":                false,
		"1a":              false,
	} {
		if got := IsReference(in); got != want {
			t.Errorf("IsReference(%q) = %t", in, got)
		}
	}
}
