// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the AST of a JSON value.
package cursor

import (
	"errors"
	"fmt"

	"github.com/creachadair/jbeautify/ast"
	"github.com/creachadair/jbeautify/internal/jpath"
)

// ErrNotFound is reported (wrapped in an *Error) when a path names an object
// key or array index that does not exist.
var ErrNotFound = errors.New("not found")

// Error is the concrete type of errors reported by a Cursor.
type Error struct {
	Path string // the JSONPath of the value where traversal stopped
	Err  error
}

func (e *Error) Error() string { return e.Path + ": " + e.Err.Error() }

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.Err }

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method, and returns the value reached.
// If the value does not have type T, Path reports an error.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var zero T
	if err := c.Err(); err != nil {
		return zero, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return zero, c.errorf("got %s, want %s", Kind(c.Value()), Kind(zero))
	}
	return out, nil
}

// A Cursor is a pointer that navigates into the structure of an ast.Value.
type Cursor struct {
	org ast.Value
	stk []frame
	err error
}

type frame struct {
	val ast.Value
	loc jpath.Expr
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin ast.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() ast.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() ast.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1].val
}

// Location reports the JSONPath of the current value relative to the origin.
func (c *Cursor) Location() string { return c.loc().String() }

func (c *Cursor) loc() jpath.Expr {
	if c.AtOrigin() {
		return nil
	}
	return c.stk[len(c.stk)-1].loc
}

// Trail reports the complete sequence of values from the origin to the
// current location in c.
func (c *Cursor) Trail() []ast.Value {
	out := []ast.Value{c.org}
	for _, f := range c.stk {
		out = append(out, f.val)
	}
	return out
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk, c.err = c.stk[:0], nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are strings (denoting object keys),
// integers (denoting offsets into arrays or objects), or functions (see
// below). If the path cannot be completely consumed, traversal stops at the
// last value reached and an error is recorded. Use Err to recover the error.
//
// If a path element is a string, the current value must be an object, and the
// string selects the value of the member with that key.
//
// If a path element is an integer, the current value must be an array or
// object, and the integer selects the element or member value at that offset.
// Negative indices count backward from the end (-1 is last, -2 second last).
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(ast.Value) (ast.Value, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			o, ok := cur.(*ast.Object)
			if !ok || o == nil {
				return c.setErrorf("got %s, want object", Kind(cur))
			}
			v, ok := o.Get(t)
			if !ok {
				return c.setError(c.loc().Member(t), ErrNotFound)
			}
			cur = c.push(v, c.loc().Member(t))

		case int:
			switch e := cur.(type) {
			case ast.Array:
				i, ok := fixArrayBound(len(e), t)
				if !ok {
					return c.setError(c.loc().Index(t), ErrNotFound)
				}
				cur = c.push(e[i], c.loc().Index(i))
			case *ast.Object:
				i, ok := fixArrayBound(e.Len(), t)
				if !ok {
					return c.setError(c.loc().Index(t), ErrNotFound)
				}
				key := e.Keys()[i]
				v, _ := e.Get(key)
				cur = c.push(v, c.loc().Member(key))
			default:
				return c.setErrorf("got %s, want array or object", Kind(cur))
			}

		case func(ast.Value) (ast.Value, error):
			next, err := t(cur)
			if err != nil {
				return c.setError(c.loc(), err)
			}
			cur = c.push(next, c.loc())

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v ast.Value, loc jpath.Expr) ast.Value {
	c.stk = append(c.stk, frame{val: v, loc: loc})
	return v
}

func (c *Cursor) errorf(msg string, args ...any) error {
	return &Error{Path: c.Location(), Err: fmt.Errorf(msg, args...)}
}

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = c.errorf(msg, args...)
	return c
}

func (c *Cursor) setError(loc jpath.Expr, err error) *Cursor {
	c.err = &Error{Path: loc.String(), Err: err}
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// Kind returns a short name for the type of v, such as "object" or "string".
func Kind(v ast.Value) string {
	switch t := v.(type) {
	case *ast.Object:
		return "object"
	case ast.Array:
		return "array"
	case ast.String:
		return "string"
	case ast.Number:
		if t.IsInt() {
			return "integer"
		}
		return "number"
	case ast.Bool:
		return "bool"
	case ast.Null:
		return "null"
	case nil:
		return "nothing"
	default:
		return fmt.Sprintf("%T", v)
	}
}
