package twcfg

import (
	"fmt"
	"strings"

	"github.com/signadot/twcfg/ir"
	"github.com/signadot/twcfg/mergeop"
	"github.com/signadot/twcfg/parse"

	"github.com/goccy/go-yaml"
)

// Request describes what to merge into a configuration object.
type Request struct {
	Properties []PropertyRequest
	// Plugins are plugin names such as "tailwindcss-animate" or plugin
	// expressions such as require("@tailwindcss/forms")({ strategy: "class" }).
	Plugins []string
	// Theme is merged into the theme property.
	Theme *ir.Node
}

// PropertyRequest asks for the property at the dotted path Name to hold
// Value. Strategy names a [mergeop] strategy; when empty the strategy is
// chosen from the existing value.
type PropertyRequest struct {
	Name     string
	Value    *ir.Node
	Strategy string
}

// ParseRequest decodes a request from YAML or JSON:
//
//	properties:
//	- name: darkMode
//	  value: [class]
//	plugins: [tailwindcss-animate]
//	theme:
//	  extend:
//	    borderRadius:
//	      lg: var(--radius)
//
// The properties may also be given as a mapping from names to values.
// Mapping order is kept.
func ParseRequest(data []byte) (*Request, error) {
	var doc yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req := &Request{}
	for _, item := range doc {
		k := fmt.Sprint(item.Key)
		var err error
		switch k {
		case "properties":
			req.Properties, err = decodeProperties(item.Value)
		case "plugins":
			req.Plugins, err = decodeStrings(k, item.Value)
		case "theme":
			req.Theme, err = decodeValue(item.Value)
			if err == nil && req.Theme.Type != ir.ObjectType {
				err = fmt.Errorf("%w: theme is a %s, not a mapping", ErrRequest, req.Theme.Type)
			}
		default:
			err = fmt.Errorf("%w: unknown field %q", ErrRequest, k)
		}
		if err != nil {
			return nil, err
		}
	}
	return req, nil
}

func decodeProperties(v any) ([]PropertyRequest, error) {
	var res []PropertyRequest
	switch x := v.(type) {
	case nil:
		return nil, nil
	case yaml.MapSlice:
		for _, item := range x {
			val, err := decodeValue(item.Value)
			if err != nil {
				return nil, err
			}
			res = append(res, PropertyRequest{Name: fmt.Sprint(item.Key), Value: val})
		}
	case []any:
		for i, elt := range x {
			m, ok := elt.(yaml.MapSlice)
			if !ok {
				return nil, fmt.Errorf("%w: properties[%d] is not a mapping", ErrRequest, i)
			}
			p := PropertyRequest{}
			for _, item := range m {
				var err error
				switch k := fmt.Sprint(item.Key); k {
				case "name":
					p.Name, err = decodeString("name", item.Value)
				case "strategy":
					p.Strategy, err = decodeString("strategy", item.Value)
				case "value":
					p.Value, err = decodeValue(item.Value)
				default:
					err = fmt.Errorf("%w: unknown field %q in properties[%d]", ErrRequest, k, i)
				}
				if err != nil {
					return nil, err
				}
			}
			if p.Name == "" || p.Value == nil {
				return nil, fmt.Errorf("%w: properties[%d] needs a name and a value", ErrRequest, i)
			}
			res = append(res, p)
		}
	default:
		return nil, fmt.Errorf("%w: properties must be a list or a mapping", ErrRequest)
	}
	return res, nil
}

func decodeString(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrRequest, field, v)
	}
	return s, nil
}

func decodeStrings(field string, v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{x}, nil
	case []any:
		res := make([]string, 0, len(x))
		for _, elt := range x {
			s, err := decodeString(field, elt)
			if err != nil {
				return nil, err
			}
			res = append(res, s)
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: %s must be a list of strings", ErrRequest, field)
}

// decodeValue converts decoded YAML to a tree, keeping mapping order.
func decodeValue(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		obj := ir.Object()
		for _, item := range x {
			c, err := decodeValue(item.Value)
			if err != nil {
				return nil, err
			}
			obj.AppendEntry(ir.KeyVal(fmt.Sprint(item.Key), c))
		}
		return obj, nil
	case []any:
		arr := ir.Array()
		for _, elt := range x {
			c, err := decodeValue(elt)
			if err != nil {
				return nil, err
			}
			arr.AppendValue(c)
		}
		return arr, nil
	}
	n, err := ir.FromAny(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	return n, nil
}

// Merge adds the contents of other to r. Properties are appended, plugins
// not yet requested are appended and themes are merged deeply, with the
// values of r kept on conflicts.
func (r *Request) Merge(other *Request) {
	r.Properties = append(r.Properties, other.Properties...)
	seen := map[string]bool{}
	for _, p := range r.Plugins {
		seen[p] = true
	}
	for _, p := range other.Plugins {
		if !seen[p] {
			seen[p] = true
			r.Plugins = append(r.Plugins, p)
		}
	}
	switch {
	case other.Theme == nil:
	case r.Theme == nil:
		r.Theme = other.Theme.Clone()
	default:
		mergeop.MergeObject(r.Theme, other.Theme, nil)
	}
}

// ParseProperty parses name=value. The value is a JavaScript expression;
// single identifiers and text which does not parse as an expression are
// strings, so darkMode=media asks for "media".
func ParseProperty(v string) (PropertyRequest, error) {
	name, val, ok := strings.Cut(v, "=")
	if !ok || name == "" || strings.TrimSpace(val) == "" {
		return PropertyRequest{}, fmt.Errorf("%w: %q is not name=value", ErrRequest, v)
	}
	n, err := parse.Expr(val)
	switch {
	case err != nil:
		n = ir.FromString(val)
	case n.Type == ir.RawType && n.Callee == "":
		n = ir.FromString(val)
	case n.Type == ir.IdentType && !strings.Contains(n.String, "."):
		n = ir.FromString(val)
	}
	return PropertyRequest{Name: name, Value: n}, nil
}

// pluginNode returns the node for a requested plugin: calls are kept as
// expressions, anything else is a plugin name.
func pluginNode(s string) *ir.Node {
	n, err := parse.Expr(s)
	if err == nil && (n.Type == ir.CallType || n.Type == ir.RawType && n.Callee != "") {
		return n
	}
	return ir.FromString(s)
}
