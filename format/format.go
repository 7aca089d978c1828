// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package format implements a pretty-printer for JSON values.
//
// The output places each object member and array element on its own line,
// indented by two spaces per level of nesting:
//
//	{
//	  "a": 2,
//	  "b": [
//	    true,
//	    null
//	  ]
//	}
//
// Empty objects and arrays are written as {} and []. Object members are
// written in their stored order unless key sorting is enabled, either for a
// single Formatter by Options.SortKeys or for every Formatter sharing a
// SortOverride.
package format

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/creachadair/jbeautify"
	"github.com/creachadair/jbeautify/ast"
	"github.com/creachadair/jbeautify/internal/jpath"
)

// Options are the per-call settings for formatting.
type Options struct {
	// If true, write object members in ascending order of key.
	SortKeys bool

	// The indentation unit for each level of nesting. If empty, two spaces
	// are used.
	Indent string

	// If true, escape all non-ASCII characters in strings as \u sequences.
	ASCII bool
}

// A Formatter carries the settings for pretty-printing JSON values.
// A zero value is ready for use with default settings, and consults the
// process-wide SortOverride.
type Formatter struct {
	Options

	// If non-nil, the force-sort override consulted by this formatter.
	// If nil, ProcessOverride is used.
	Override *SortOverride
}

// Format renders v using opts and the process-wide SortOverride.
func Format(v ast.Value, opts Options) (string, error) {
	return Formatter{Options: opts}.Format(v)
}

// Format renders a pretty-printed representation of v as a string. In case
// of error the result is empty and the error has concrete type
// *SerializationError, whose Value field holds v unchanged so the caller can
// keep the original value alongside the error.
func (f Formatter) Format(v ast.Value) (string, error) {
	var buf bytes.Buffer
	if err := f.format(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatTo renders a pretty-printed representation of v to w. Nothing is
// written to w if v cannot be serialized.
func (f Formatter) FormatTo(w io.Writer, v ast.Value) error {
	var buf bytes.Buffer
	if err := f.format(&buf, v); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// SortsKeys reports whether f will write object members in sorted order,
// taking the force-sort override into account.
func (f Formatter) SortsKeys() bool { return f.SortKeys || f.override().Forced() }

func (f Formatter) override() *SortOverride {
	if f.Override != nil {
		return f.Override
	}
	return ProcessOverride()
}

func (f Formatter) indent() string {
	if f.Indent == "" {
		return "  "
	}
	return f.Indent
}

func (f Formatter) quote(s string) string {
	if f.ASCII {
		return jbeautify.QuoteASCII(s)
	}
	return jbeautify.Quote(s)
}

func (f Formatter) format(buf *bytes.Buffer, v ast.Value) error {
	// The override is read once per document.
	p := printer{Formatter: f, sort: f.SortsKeys(), unit: f.indent()}
	if err := p.formatValue(buf, v, ""); err != nil {
		err.Value = v
		err.Path = err.path().String()
		return err
	}
	return nil
}

type printer struct {
	Formatter
	sort bool
	unit string
}

// formatValue writes a representation of v to buf, with nested lines indented
// by indent.
func (p printer) formatValue(buf *bytes.Buffer, v ast.Value, indent string) *SerializationError {
	switch t := v.(type) {
	case *ast.Object:
		if t == nil {
			return newError("missing object")
		}
		return p.formatObject(buf, t, indent)
	case ast.Array:
		return p.formatArray(buf, t, indent)
	case ast.String:
		buf.WriteString(p.quote(string(t)))
	case ast.Number:
		if !t.IsFinite() {
			return newError("number %s is out of range", t.JSON())
		}
		buf.WriteString(t.JSON())
	case ast.Bool, ast.Null:
		buf.WriteString(t.JSON())
	case nil:
		return newError("missing value")
	default:
		return newError("unsupported value type %T", v)
	}
	return nil
}

func (p printer) formatObject(buf *bytes.Buffer, o *ast.Object, indent string) *SerializationError {
	if o.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}
	keys := o.Keys()
	if p.sort {
		slices.Sort(keys)
	}
	mdent := indent + p.unit
	buf.WriteString("{\n")
	for i, key := range keys {
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString(mdent)
		buf.WriteString(p.quote(key))
		buf.WriteString(": ")
		val, _ := o.Get(key)
		if err := p.formatValue(buf, val, mdent); err != nil {
			err.steps = append(err.steps, key)
			return err
		}
	}
	buf.WriteByte('\n')
	buf.WriteString(indent)
	buf.WriteByte('}')
	return nil
}

func (p printer) formatArray(buf *bytes.Buffer, a ast.Array, indent string) *SerializationError {
	if len(a) == 0 {
		buf.WriteString("[]")
		return nil
	}
	adent := indent + p.unit
	buf.WriteString("[\n")
	for i, v := range a {
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString(adent)
		if err := p.formatValue(buf, v, adent); err != nil {
			err.steps = append(err.steps, i)
			return err
		}
	}
	buf.WriteByte('\n')
	buf.WriteString(indent)
	buf.WriteByte(']')
	return nil
}

// SerializationError is the concrete type of errors reported when a value
// cannot be rendered as JSON text.
type SerializationError struct {
	Value ast.Value // the complete value whose formatting failed, unchanged
	Path  string    // the JSONPath of the offending value, e.g. $.a[2]
	Err   error     // the underlying error

	steps []any // keys (string) and indexes (int), innermost first
}

// Error satisfies the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("cannot serialize %s: %v", e.Path, e.Err)
}

// Unwrap supports error wrapping.
func (e *SerializationError) Unwrap() error { return e.Err }

func newError(msg string, args ...any) *SerializationError {
	return &SerializationError{Err: fmt.Errorf(msg, args...)}
}

// path reconstructs the location of the failure from the steps recorded
// while unwinding.
func (e *SerializationError) path() jpath.Expr {
	var out jpath.Expr
	for _, s := range slices.Backward(e.steps) {
		switch t := s.(type) {
		case string:
			out = out.Member(t)
		case int:
			out = out.Index(t)
		}
	}
	return out
}
