// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"

	"github.com/creachadair/jbeautify"
)

// Parse parses text as a single JSON value. The value may be surrounded by
// whitespace; any other content, including an empty input, is an error.
//
// Object members are kept in input order. If a key occurs more than once in
// an object, the last value wins and the key keeps the position of its first
// occurrence.
//
// In case of a syntax error, the concrete type of the error is
// *jbeautify.SyntaxError.
func Parse(text string) (Value, error) {
	h := new(parseHandler)
	if err := jbeautify.NewStream(text).ParseSingle(h); err != nil {
		return nil, err
	}
	return h.root, nil
}

// A parseHandler implements the jbeautify.Handler interface to construct
// values.
type parseHandler struct {
	stk  []Value
	root Value
}

// memberStub is a stack placeholder for an object member whose value has not
// yet been reduced. This type does not appear in a completed value.
type memberStub struct {
	Value // placeholder, not used

	key string
	val Value
}

// arrayStub is a stack placeholder for an incomplete array.
// This type does not appear in a completed value.
type arrayStub struct {
	Value // placeholder, not used

	vals Array
}

func (h *parseHandler) top() Value { return h.stk[len(h.stk)-1] }

func (h *parseHandler) pop() Value {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(v Value) { h.stk = append(h.stk, v) }

// reduceValue attaches a completed value v to the structure atop the stack,
// or records it as the root if the stack is empty.
func (h *parseHandler) reduceValue(v Value) error {
	if len(h.stk) == 0 {
		h.root = v
		return nil
	}
	switch prev := h.top().(type) {
	case *memberStub:
		prev.val = v
	case *arrayStub:
		prev.vals = append(prev.vals, v)
	default:
		return fmt.Errorf("unexpected value after %T", prev)
	}
	return nil
}

func (h *parseHandler) BeginObject(loc jbeautify.Anchor) error {
	h.push(NewObject())
	return nil
}

func (h *parseHandler) EndObject(loc jbeautify.Anchor) error { return h.reduceValue(h.pop()) }

func (h *parseHandler) BeginArray(loc jbeautify.Anchor) error {
	h.push(&arrayStub{vals: Array{}})
	return nil
}

func (h *parseHandler) EndArray(loc jbeautify.Anchor) error {
	return h.reduceValue(h.pop().(*arrayStub).vals)
}

func (h *parseHandler) BeginMember(loc jbeautify.Anchor) error {
	key, err := jbeautify.Unquote(loc.Text())
	if err != nil {
		return fmt.Errorf("at %s: invalid key: %w", loc.Location().First, err)
	}
	h.push(&memberStub{key: string(key)})
	return nil
}

func (h *parseHandler) EndMember(loc jbeautify.Anchor) error {
	m := h.pop().(*memberStub)
	h.top().(*Object).Set(m.key, m.val)
	return nil
}

func (h *parseHandler) Value(loc jbeautify.Anchor) error {
	v, err := AnchorValue(loc)
	if err != nil {
		return err
	}
	return h.reduceValue(v)
}

func (h *parseHandler) EndOfInput(loc jbeautify.Anchor) {}

// AnchorValue converts a scalar token at loc into a Value.
func AnchorValue(loc jbeautify.Anchor) (Value, error) {
	switch tok := loc.Token(); tok {
	case jbeautify.String:
		s, err := jbeautify.Unquote(loc.Text())
		if err != nil {
			return nil, fmt.Errorf("at %s: invalid string: %w", loc.Location().First, err)
		}
		return String(s), nil
	case jbeautify.Integer, jbeautify.Number:
		return ParseNumber(loc.Text())
	case jbeautify.True, jbeautify.False:
		return Bool(tok == jbeautify.True), nil
	case jbeautify.Null:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unknown value %v", tok)
	}
}
