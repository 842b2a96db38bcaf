package ir

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ToAny converts the JSON representable subset of expressions to
// the values produced by encoding/json.
func ToAny(n *Node) (any, error) {
	switch n.Type {
	case NullType:
		return nil, nil
	case BoolType:
		return n.Bool, nil
	case StringType:
		return n.String, nil
	case NumberType:
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Number, "_", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: number %s", ErrNotJSON, n.Number)
		}
		return f, nil
	case ArrayType:
		res := make([]any, 0, len(n.Values))
		for _, v := range n.Values {
			x, err := ToAny(v)
			if err != nil {
				return nil, err
			}
			res = append(res, x)
		}
		return res, nil
	case ObjectType:
		res := make(map[string]any, len(n.Entries))
		for _, e := range n.Entries {
			if e.Kind != KeyValue {
				return nil, fmt.Errorf("%w: %s entry at %s", ErrNotJSON, e.Kind, n.Path())
			}
			x, err := ToAny(e.Value)
			if err != nil {
				return nil, err
			}
			res[e.Key] = x
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: %s at %s", ErrNotJSON, n.Type, n.Path())
	}
}

// ToJSON encodes the JSON representable subset of expressions.
func ToJSON(n *Node) ([]byte, error) {
	x, err := ToAny(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(x)
}

// FromAny converts values such as those decoded from JSON or YAML. Map
// keys are sorted.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x, nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case int32:
		return FromInt(int64(x)), nil
	case uint64:
		return FromNumber(strconv.FormatUint(x, 10)), nil
	case uint:
		return FromNumber(strconv.FormatUint(uint64(x), 10)), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: %v", ErrNotJSON, x)
		}
		return FromFloat(x), nil
	case json.Number:
		return FromNumber(x.String()), nil
	case []any:
		res := Array()
		for _, e := range x {
			c, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			res.AppendValue(c)
		}
		return res, nil
	case []string:
		res := Array()
		for _, e := range x {
			res.AppendValue(FromString(e))
		}
		return res, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		res := Object()
		for _, k := range keys {
			c, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			res.AppendEntry(KeyVal(k, c))
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: unsupported value type %T", ErrNotJSON, v)
	}
}
