// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import "fmt"

// ToValue converts a string, int, int64, float64, bool, nil, []any, []Member,
// or Value into a Value. A []any becomes an Array and a []Member becomes an
// *Object. It panics if v does not have one of those types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case nil:
		return Null{}
	case string:
		return String(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float64:
		return Float(t)
	case bool:
		return Bool(t)
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	case []Member:
		return NewObject(t...)
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}
