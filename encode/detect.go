package encode

import (
	"strings"

	"github.com/signadot/twcfg/ir"
)

// DetectQuote returns the string delimiter used most often by the parsed
// string literals and quoted keys beneath root. Ties go to the delimiter
// seen first and a tree without quotes yields '"'.
func DetectQuote(root *ir.Node) byte {
	var (
		counts = map[byte]int{}
		first  byte
	)
	see := func(q byte) {
		if q != '"' && q != '\'' {
			return
		}
		if first == 0 {
			first = q
		}
		counts[q]++
	}
	walk(root, func(n *ir.Node) {
		if n.Parsed && n.Type == ir.StringType {
			see(n.Quote)
		}
		for _, e := range n.Entries {
			if e.Parsed {
				see(e.KeyQuote)
			}
		}
	})
	switch {
	case first == 0:
		return '"'
	case counts['"'] > counts['\'']:
		return '"'
	case counts['\''] > counts['"']:
		return '\''
	}
	return first
}

// DetectIndent returns the indentation unit of the parsed items beneath
// root: a tab when items are indented with tabs, otherwise the smallest
// step between an item and its container. The default is two spaces.
func DetectIndent(root *ir.Node) string {
	var (
		step = 0
		tabs = false
	)
	see := func(container *ir.Node, slot ir.Slot, indent string) {
		if !slot.Set || !strings.Contains(slot.Lead, "\n") {
			return
		}
		if strings.HasPrefix(indent, "\t") {
			tabs = true
			return
		}
		d := len(indent) - len(container.Indent)
		if d > 0 && (step == 0 || d < step) {
			step = d
		}
	}
	walk(root, func(n *ir.Node) {
		if !n.Parsed {
			return
		}
		for _, e := range n.Entries {
			see(n, e.Slot, e.Indent)
		}
		if n.Type == ir.ArrayType {
			for _, v := range n.Values {
				see(n, v.Slot, v.Indent)
			}
		}
	})
	switch {
	case tabs:
		return "\t"
	case step > 0:
		return strings.Repeat(" ", step)
	}
	return "  "
}

// DetectNewline returns "\r\n" when the line breaks between the parsed
// items beneath root end with a carriage return, and "\n" otherwise.
func DetectNewline(root *ir.Node) string {
	crlf, lf := 0, 0
	see := func(text string) {
		for i := strings.IndexByte(text, '\n'); i >= 0; i = strings.IndexByte(text, '\n') {
			if i > 0 && text[i-1] == '\r' {
				crlf++
			} else {
				lf++
			}
			text = text[i+1:]
		}
	}
	walk(root, func(n *ir.Node) {
		if !n.Parsed {
			return
		}
		see(n.Tail)
		for _, e := range n.Entries {
			see(e.Lead)
			see(e.Post)
		}
		for _, v := range n.Values {
			see(v.Lead)
			see(v.Post)
		}
	})
	if crlf > lf {
		return "\r\n"
	}
	return "\n"
}

func walk(n *ir.Node, f func(*ir.Node)) {
	if n == nil {
		return
	}
	f(n)
	for _, e := range n.Entries {
		walk(e.Value, f)
	}
	for _, v := range n.Values {
		walk(v, f)
	}
}
