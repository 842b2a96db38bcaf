package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/twcfg/ir"
)

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			if x == nil {
				args[i] = "<nil>"
				continue
			}
			args[i] = x.Source()
		case *ir.Entry:
			if x == nil {
				args[i] = "<nil>"
				continue
			}
			args[i] = x.Source()
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

// Src returns the source text of n for log messages.
func Src(n *ir.Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Source()
}
