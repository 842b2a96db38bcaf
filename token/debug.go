package token

import (
	"fmt"
	"io"
)

// Dump writes one line per token to w, comments included.
func Dump(w io.Writer, toks []Token) {
	for i := range toks {
		t := &toks[i]
		fmt.Fprintf(w, "%4d %-10s %q\n", t.Pos.I, t.Type, t.Bytes)
	}
}
