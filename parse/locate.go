package parse

import (
	"fmt"

	"github.com/signadot/twcfg/token"
)

// locate finds the opening brace of the configuration object: the
// default export, the value assigned to module.exports, or the object
// bound to binding when it is not empty.
func (p *parser) locate(binding string) (int, string, error) {
	if binding != "" {
		i, err := p.binding(binding)
		if err != nil {
			return 0, "", err
		}
		open, err := p.unwrap(i, map[string]bool{binding: true})
		return open, "const " + binding, err
	}
	n := len(p.toks)
	for i := 0; i < n; {
		t := &p.toks[i]
		switch {
		case t.Is("export") && i+1 < n && p.toks[i+1].Is("default"):
			return p.located(i+2, "export default")
		case t.Is("module") && i+3 < n && p.toks[i+1].Type == token.TDot &&
			p.toks[i+2].Is("exports") && p.toks[i+3].Type == token.TEq:
			return p.located(i+4, "module.exports")
		case t.Is("exports") && i+3 < n && (i == 0 || p.toks[i-1].Type != token.TDot) &&
			p.toks[i+1].Type == token.TDot && p.toks[i+2].Is("default") && p.toks[i+3].Type == token.TEq:
			return p.located(i+4, "exports.default")
		}
		if t.Type.IsOpen() {
			i = p.match[i]
		}
		i++
	}
	return 0, "", fmt.Errorf("%w: no default export", ErrNotFound)
}

func (p *parser) located(i int, how string) (int, string, error) {
	if i >= len(p.toks) {
		return 0, "", fmt.Errorf("%w: nothing follows %s", ErrNotFound, how)
	}
	seen := map[string]bool{}
	open, err := p.unwrap(i, seen)
	if err != nil {
		return 0, "", err
	}
	if t := &p.toks[i]; t.Type == token.TIdent && seen[string(t.Bytes)] {
		how += " " + string(t.Bytes)
	}
	return open, how, nil
}

// unwrap follows the expression at i through parentheses, calls such as
// defineConfig({...}) and variable references to an object literal.
func (p *parser) unwrap(i int, seen map[string]bool) (int, error) {
	if i >= len(p.toks) {
		return 0, fmt.Errorf("%w: unexpected end of input", ErrNotFound)
	}
	t := &p.toks[i]
	switch t.Type {
	case token.TLCurl:
		return i, nil
	case token.TLParen:
		return p.unwrap(i+1, seen)
	case token.TIdent:
	default:
		return 0, fmt.Errorf("%w: unexpected %q at %s", ErrNotFound, t.Bytes, t.Pos)
	}
	j := p.reference(i, len(p.toks))
	if j == i {
		return 0, fmt.Errorf("%w: unexpected %q at %s", ErrNotFound, t.Bytes, t.Pos)
	}
	if j < len(p.toks) && p.toks[j].Type == token.TOp && string(p.toks[j].Bytes) == "<" {
		// generic call: defineConfig<Config>({...})
		for j < len(p.toks) && p.toks[j].Type != token.TLParen {
			j++
		}
	}
	if j < len(p.toks) && p.toks[j].Type == token.TLParen {
		if p.match[j] == j+1 {
			return 0, fmt.Errorf("%w: call without arguments at %s", ErrNotFound, t.Pos)
		}
		return p.unwrap(j+1, seen)
	}
	// a cast such as config as Config or config satisfies Config
	// refers to config
	if j != i+1 {
		return 0, fmt.Errorf("%w: member reference %s at %s", ErrNotFound, p.text(t.Start(), p.toks[j-1].End()), t.Pos)
	}
	name := string(t.Bytes)
	if seen[name] {
		return 0, fmt.Errorf("%w: circular reference to %s", ErrNotFound, name)
	}
	seen[name] = true
	k, err := p.binding(name)
	if err != nil {
		return 0, err
	}
	return p.unwrap(k, seen)
}

// binding returns the index of the first token of the initializer of the
// top level declaration of name.
func (p *parser) binding(name string) (int, error) {
	n := len(p.toks)
	for i := 0; i < n; {
		t := &p.toks[i]
		if (t.Is("const") || t.Is("let") || t.Is("var")) && i+1 < n && p.toks[i+1].Is(name) {
			j := i + 2
			angles := 0
			for j < n {
				tj := &p.toks[j]
				if tj.Type == token.TEq {
					return j + 1, nil
				}
				if tj.Type == token.TOp {
					switch string(tj.Bytes) {
					case "<":
						angles++
					case ">":
						angles--
					case ">>":
						angles -= 2
					}
				}
				if tj.Type == token.TSemi || (tj.Type == token.TComma && angles <= 0) {
					break
				}
				if tj.Type.IsOpen() {
					j = p.match[j]
				}
				j++
			}
			return 0, fmt.Errorf("%w: %s is declared without a value at %s", ErrNotFound, name, t.Pos)
		}
		if t.Type.IsOpen() {
			i = p.match[i]
		}
		i++
	}
	return 0, fmt.Errorf("%w: no declaration of %s", ErrNotFound, name)
}
