package ir

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		return y.Parent.Path() + "." + pathField(y.ParentField)
	case ArrayType, CallType:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

func (e *Entry) Path() string {
	prefix := "$"
	if e.Parent != nil {
		prefix = e.Parent.Path()
	}
	if e.Kind == Spread {
		return prefix + ".'..." + e.Expr + "'"
	}
	return prefix + "." + pathField(e.Key)
}

func pathField(f string) string {
	if f != "" && strings.IndexAny(f, "'.$[] ") == -1 {
		return f
	}
	return "'" + strings.Replace(f, "'", "\\'", -1) + "'"
}

type Path struct {
	Index *int
	Field *string
	Next  *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			buf.WriteString("." + pathField(*x.Field))
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

// ParsePath parses paths such as $.theme.extend.'font-size' or
// $.plugins[0].
func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: %q should start with '$'", ErrPath, p)
	}
	root := &Path{}
	if len(p) == 1 {
		return root, nil
	}
	if err := parseFrag(p[1:], root); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrPath, p, err)
	}
	return root, nil
}

// SplitPath splits a dotted property name such as theme.extend.colors
// into its keys. Keys containing dots are single quoted.
func SplitPath(name string) ([]string, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrPath)
	}
	p, err := ParsePath("$." + name)
	if err != nil {
		return nil, err
	}
	var res []string
	for x := p; x != nil; x = x.Next {
		if x.Field == nil {
			return nil, fmt.Errorf("%w: %q: indexes are not property names", ErrPath, name)
		}
		res = append(res, *x.Field)
	}
	return res, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	var rest string
	switch frag[0] {
	case '.':
		field, r, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		rest = r
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		u64, err := strconv.ParseUint(frag[1:i+1], 10, 64)
		if err != nil {
			return err
		}
		index := int(u64)
		parent.Index = &index
		rest = frag[i+2:]
	default:
		return fmt.Errorf("expected '.' or '['")
	}
	if len(rest) == 0 {
		return nil
	}
	next := &Path{}
	if err := parseFrag(rest, next); err != nil {
		return err
	}
	parent.Next = next
	return nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == 0 {
			return "", "", fmt.Errorf("empty field")
		}
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			if escaped {
				res = append(res, c)
			}
			escaped = !escaped
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

// GetPath returns the node at yPath beneath y.
func (y *Node) GetPath(yPath string) (*Node, error) {
	yp, err := ParsePath(yPath)
	if err != nil {
		return nil, err
	}
	res := y
	for ; yp != nil; yp = yp.Next {
		switch {
		case yp.Index != nil:
			if res.Type != ArrayType && res.Type != CallType {
				return nil, fmt.Errorf("%w: index %d of %s at %s", ErrNoPath, *yp.Index, res.Type, res.Path())
			}
			if *yp.Index >= len(res.Values) {
				return nil, fmt.Errorf("%w: index %d out of bounds at %s", ErrNoPath, *yp.Index, res.Path())
			}
			res = res.Values[*yp.Index]
		case yp.Field != nil:
			if res.Type != ObjectType {
				return nil, fmt.Errorf("%w: field %q of %s at %s", ErrNoPath, *yp.Field, res.Type, res.Path())
			}
			next := res.Get(*yp.Field)
			if next == nil {
				return nil, fmt.Errorf("%w: no field %q at %s", ErrNoPath, *yp.Field, res.Path())
			}
			res = next
		}
	}
	return res, nil
}
