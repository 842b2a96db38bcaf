package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Quote encodes v as a JavaScript string literal delimited by q, which
// must be '"' or '\''.
func Quote(v string, q byte) string {
	if q != '\'' {
		q = '"'
	}
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte(q)
	for _, r := range v {
		switch r {
		case rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\v':
			b.WriteString(`\v`)
		case 0x2028, 0x2029:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if unicode.IsControl(r) {
				if r < 0x100 {
					fmt.Fprintf(&b, `\x%02x`, r)
				} else {
					fmt.Fprintf(&b, `\u%04x`, r)
				}
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}

// Unquote decodes a JavaScript string literal delimited by ', " or `.
// Template literals with substitutions are rejected.
func Unquote(v string) (string, error) {
	if len(v) < 2 {
		return "", ErrBadQuote
	}
	q := v[0]
	switch q {
	case '"', '\'', '`':
	default:
		return "", fmt.Errorf("%w: %q", ErrBadQuote, v)
	}
	if v[len(v)-1] != q {
		return "", fmt.Errorf("%w: %q", ErrUnterminated, v)
	}
	body := v[1 : len(v)-1]
	if strings.IndexByte(body, '\\') == -1 {
		if strings.IndexByte(body, q) != -1 {
			return "", fmt.Errorf("%w: %q", ErrBadQuote, v)
		}
		if q == '`' && strings.Contains(body, "${") {
			return "", fmt.Errorf("%w: template substitution in %q", ErrBadQuote, v)
		}
		return body, nil
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case q:
			return "", fmt.Errorf("%w: %q", ErrBadQuote, v)
		case '$':
			if q == '`' && i+1 < len(body) && body[i+1] == '{' {
				return "", fmt.Errorf("%w: template substitution in %q", ErrBadQuote, v)
			}
			b.WriteByte(c)
			continue
		case '\\':
		default:
			b.WriteByte(c)
			continue
		}
		i++
		if i == len(body) {
			return "", fmt.Errorf("%w: trailing backslash", ErrBadEscape)
		}
		c = body[i]
		switch c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			if i+1 < len(body) && body[i+1] >= '0' && body[i+1] <= '9' {
				return "", fmt.Errorf("%w: octal escape", ErrBadEscape)
			}
			b.WriteByte(0)
		case '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case '\n':
		case 'x':
			if i+2 >= len(body) {
				return "", fmt.Errorf("%w: short \\x", ErrBadEscape)
			}
			n, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("%w: %w", ErrBadEscape, err)
			}
			b.WriteRune(rune(n))
			i += 2
		case 'u':
			r, n, err := unicodeEscape(body[i+1:])
			if err != nil {
				return "", err
			}
			i += n
			if utf16.IsSurrogate(r) && strings.HasPrefix(body[i+1:], `\u`) {
				r2, n2, err := unicodeEscape(body[i+3:])
				if err == nil {
					if d := utf16.DecodeRune(r, r2); d != unicode.ReplacementChar {
						r = d
						i += 2 + n2
					}
				}
			}
			b.WriteRune(r)
		default:
			r, sz := utf8.DecodeRuneInString(body[i:])
			switch r {
			case 0x2028, 0x2029:
			default:
				b.WriteRune(r)
			}
			i += sz - 1
		}
	}
	return b.String(), nil
}

// unicodeEscape decodes the text following `\u` and returns the rune and
// the number of bytes consumed.
func unicodeEscape(s string) (rune, int, error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end == -1 {
			return 0, 0, fmt.Errorf("%w: unterminated \\u{", ErrBadUnicode)
		}
		n, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || n > unicode.MaxRune {
			return 0, 0, fmt.Errorf("%w: \\u{%s}", ErrBadUnicode, s[1:end])
		}
		return rune(n), end + 1, nil
	}
	if len(s) < 4 {
		return 0, 0, fmt.Errorf("%w: short \\u", ErrBadUnicode)
	}
	n, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: \\u%s", ErrBadUnicode, s[:4])
	}
	return rune(n), 4, nil
}
