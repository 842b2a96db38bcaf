package matcher

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/signadot/twcfg/debug"
	"github.com/signadot/twcfg/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// NewExpr returns a matcher computing keys with the expression src. The
// expression sees
//
//	kind    the element type, such as "string" or "call"
//	callee  the callee of a call, or ""
//	arg     the first argument of a call when it is a string, or ""
//	value   the value of a string or the text of a reference
//	text    the source of the element
//
// and the function norm(s), which normalizes source text. It must yield a
// string, for example
//
//	kind == "call" ? callee + ":" + arg : text
func NewExpr(src string) (Matcher, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("matcher %q: %w", src, err)
	}
	return &exprMatcher{name: name("expr:" + src), prg: prg}, nil
}

type exprEnv struct {
	Kind   string `expr:"kind"`
	Callee string `expr:"callee"`
	Arg    string `expr:"arg"`
	Value  string `expr:"value"`
	Text   string `expr:"text"`
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(exprEnv{}),
		expr.AsKind(reflect.String),
		expr.Function("norm", func(params ...any) (any, error) {
			return ir.NormalizeText(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

type exprMatcher struct {
	name
	prg *vm.Program
}

func (m *exprMatcher) Key(n *ir.Node) string {
	env := exprEnv{
		Kind:   strings.ToLower(n.Type.String()),
		Callee: n.Callee,
		Text:   n.Source(),
	}
	switch n.Type {
	case ir.StringType, ir.IdentType:
		env.Value = n.String
	}
	if n.Callee != "" && len(n.Values) > 0 && n.Values[0].Type == ir.StringType {
		env.Arg = n.Values[0].String
	}
	res, err := expr.Run(m.prg, env)
	if err != nil {
		// elements which cannot be keyed only match themselves
		if debug.Match() {
			debug.Logf("%s on %s: %v\n", m, debug.Src(n), err)
		}
		return fmt.Sprintf("!%p", n)
	}
	s, _ := res.(string)
	return s
}
