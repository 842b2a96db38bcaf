package token

import (
	"unicode"
	"unicode/utf8"
)

func IsIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func IsIdentPart(r rune) bool {
	if IsIdentStart(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case 0x200c, 0x200d:
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)
}

// IsIdent reports whether v can be written as a bare identifier, for
// example as an unquoted property name.
func IsIdent(v string) bool {
	if v == "" {
		return false
	}
	for i, r := range v {
		if r == utf8.RuneError {
			return false
		}
		if i == 0 {
			if !IsIdentStart(r) {
				return false
			}
			continue
		}
		if !IsIdentPart(r) {
			return false
		}
	}
	return true
}

// IsReference reports whether v is an identifier or a dotted chain of
// identifiers such as fontFamily.sans.
func IsReference(v string) bool {
	start := 0
	for i := 0; i <= len(v); i++ {
		if i < len(v) && v[i] != '.' {
			continue
		}
		if !IsIdent(v[start:i]) {
			return false
		}
		start = i + 1
	}
	return true
}

var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "enum": true, "await": true, "yield": true, "let": true,
}

// IsReserved reports whether v is a reserved word, which may be used as a
// property name but not as a variable.
func IsReserved(v string) bool {
	return reserved[v]
}
