// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an order-preserving value model for JSON documents,
// and a validating parser that constructs values from JSON source.
package ast

import (
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/creachadair/jbeautify"
)

// A Value is an arbitrary JSON value. The concrete types defined by this
// package are *Object, Array, String, Number, Bool, and Null.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string
}

// An Object is an ordered collection of key-value members. Keys are unique;
// the order of keys is the order in which they were first added.
//
// The zero value is not ready for use; construct objects with NewObject.
type Object struct {
	keys []string
	vals map[string]Value
}

// A Member is a single key-value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value. The value
// is converted as by ToValue.
func Field(key string, value any) Member { return Member{Key: key, Value: ToValue(value)} }

// NewObject constructs a new object with the given members, in order.
// Later members replace the values of earlier members with the same key.
func NewObject(ms ...Member) *Object {
	o := &Object{vals: make(map[string]Value, len(ms))}
	for _, m := range ms {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.keys) }

// Get returns the value associated with key, and reports whether it is
// present in o.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Set sets the value of key to v. If key is already present, its value is
// replaced and it keeps its original position; otherwise key is appended.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Delete removes key from o, if it is present.
func (o *Object) Delete(key string) {
	if _, ok := o.vals[key]; ok {
		delete(o.vals, key)
		o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
	}
}

// Keys returns a copy of the keys of o in order.
func (o *Object) Keys() []string { return slices.Clone(o.keys) }

// All iterates over the members of o in order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, key := range o.keys {
			if !yield(key, o.vals[key]) {
				return
			}
		}
	}
}

// Members returns a slice of the members of o in order.
func (o *Object) Members() []Member {
	out := make([]Member, len(o.keys))
	for i, key := range o.keys {
		out[i] = Member{Key: key, Value: o.vals[key]}
	}
	return out
}

// Sorted returns a shallow copy of o whose keys are in ascending order.
// Nested objects are not affected.
func (o *Object) Sorted() *Object {
	out := &Object{keys: slices.Sorted(slices.Values(o.keys)), vals: make(map[string]Value, len(o.vals))}
	for k, v := range o.vals {
		out.vals[k] = v
	}
	return out
}

// Equal reports whether o and p have the same keys in the same order, with
// equal values.
func (o *Object) Equal(p *Object) bool {
	if o == nil || p == nil {
		return o == p
	}
	if !slices.Equal(o.keys, p.keys) {
		return false
	}
	for _, key := range o.keys {
		if !Equal(o.vals[key], p.vals[key]) {
			return false
		}
	}
	return true
}

// JSON satisfies the Value interface.
func (o *Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jbeautify.Quote(key))
		sb.WriteByte(':')
		sb.WriteString(o.vals[key].JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// An Array is a sequence of values.
type Array []Value

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A String is a decoded string value.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return jbeautify.Quote(string(s)) }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// Null represents the null constant.
type Null struct{}

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

// Equal reports whether a and b are structurally equal. Object members are
// compared in order, so objects with the same members in a different order
// are not equal. Numbers are compared by value, not by their source text.
func Equal(a, b Value) bool {
	switch t := a.(type) {
	case *Object:
		u, ok := b.(*Object)
		return ok && t.Equal(u)
	case Array:
		u, ok := b.(Array)
		return ok && slices.EqualFunc(t, u, Equal)
	case Number:
		u, ok := b.(Number)
		return ok && t.Equal(u)
	case String, Bool, Null:
		return a == b
	case nil:
		return b == nil
	default:
		return reflect.DeepEqual(a, b)
	}
}
