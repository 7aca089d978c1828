// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package beautify validates and reformats JSON text held in regions of an
// editor buffer.
//
// A buffer is a string, and a Region is a half-open range of byte offsets in
// it. Validate checks each region independently and reports a Diagnostic for
// each region that does not contain exactly one JSON value. Beautify also
// replaces the text of each valid region with its formatted form, leaving
// invalid regions untouched:
//
//	out, res := beautify.Beautify(buf, beautify.Regions(buf, nil, sel), cfg)
//	for _, r := range res {
//	   if r.Diag != nil {
//	      log.Printf("%v", r.Diag)
//	   }
//	}
//
// Diagnostic positions are relative to the start of the buffer, not to the
// start of the region, so they can be used directly to anchor annotations.
package beautify

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jbeautify"
	"github.com/creachadair/jbeautify/ast"
	"github.com/creachadair/jbeautify/format"
)

// A Region is a range of byte offsets in a buffer. Begin may exceed End, as
// for a selection made backward; the region covers the same text either way.
type Region struct {
	Begin, End int
}

// Whole returns a region covering all of buf.
func Whole(buf string) Region { return Region{Begin: 0, End: len(buf)} }

// Empty reports whether r covers no text.
func (r Region) Empty() bool { return r.Begin == r.End }

// Len reports the number of bytes covered by r.
func (r Region) Len() int {
	lo, hi := r.bounds()
	return hi - lo
}

// Text returns the text of buf covered by r. Offsets outside buf are clamped
// to its ends.
func (r Region) Text(buf string) string {
	lo, hi := r.clamp(buf)
	return buf[lo:hi]
}

func (r Region) String() string { return fmt.Sprintf("[%d:%d]", r.Begin, r.End) }

func (r Region) bounds() (lo, hi int) { return min(r.Begin, r.End), max(r.Begin, r.End) }

func (r Region) clamp(buf string) (lo, hi int) {
	lo, hi = r.bounds()
	return min(max(lo, 0), len(buf)), min(max(hi, 0), len(buf))
}

// Regions chooses the regions of buf to operate on. If any explicit regions
// are given, they are used as-is. Otherwise, if there is a single non-empty
// selection or more than one selection, the selections are used. Otherwise
// the result is a single region covering the whole buffer.
func Regions(buf string, explicit, selections []Region) []Region {
	if len(explicit) != 0 {
		return explicit
	}
	if len(selections) > 1 || (len(selections) == 1 && !selections[0].Empty()) {
		return selections
	}
	return []Region{Whole(buf)}
}

// A Kind classifies the failure reported by a Diagnostic.
type Kind int

const (
	Syntax        Kind = iota + 1 // the region is not valid JSON
	Serialization                 // the value could not be formatted
	Conflict                      // the region overlaps another region
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax error"
	case Serialization:
		return "serialization error"
	case Conflict:
		return "conflict"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// A Position is a location in a buffer.
type Position struct {
	Line   int // 1-based
	Column int // 0-based, in characters
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// A Diagnostic describes why a region could not be processed.
type Diagnostic struct {
	Region  Region
	Kind    Kind
	Message string

	// The location of the failure relative to the start of the buffer, or nil
	// if the failure has no specific location.
	Position *Position

	Err error // the underlying error
}

// Error satisfies the error interface.
func (d *Diagnostic) Error() string {
	if d.Position != nil {
		return fmt.Sprintf("%s: %s: %s", d.Position, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Region, d.Kind, d.Message)
}

// Unwrap supports error wrapping.
func (d *Diagnostic) Unwrap() error { return d.Err }

// Validate checks whether each region of buf contains exactly one JSON value,
// and returns a Diagnostic for each region that does not, in the order of
// the regions.
func Validate(buf string, regions []Region) []Diagnostic {
	var out []Diagnostic
	for _, r := range regions {
		if _, d := validate(buf, r); d != nil {
			out = append(out, *d)
		}
	}
	return out
}

// Config carries the formatting settings for Beautify.
type Config struct {
	SortKeys bool   // sort object keys
	ASCII    bool   // escape non-ASCII characters
	Indent   string // indentation unit; default two spaces

	// If non-nil, the force-sort override to consult; otherwise the process
	// override is used.
	Override *format.SortOverride
}

func (c Config) formatter() format.Formatter {
	return format.Formatter{
		Options:  format.Options{SortKeys: c.SortKeys, ASCII: c.ASCII, Indent: c.Indent},
		Override: c.Override,
	}
}

// A Result reports the outcome of processing one region. Exactly one of Text
// and Diag is meaningful: if Diag is nil, Text is the replacement text.
type Result struct {
	Region Region
	Text   string
	Diag   *Diagnostic
}

// OK reports whether r succeeded.
func (r Result) OK() bool { return r.Diag == nil }

// Beautify validates and formats each region of buf, and returns a copy of
// buf in which each successfully-formatted region is replaced by its
// formatted text. Regions that fail are left unchanged. The results are
// reported in the order of the regions.
//
// Regions are replaced from the end of the buffer toward the start, so the
// offsets of the input regions remain meaningful throughout. A region that
// overlaps an earlier region in the list is not replaced, and is reported
// with a Conflict diagnostic.
func Beautify(buf string, regions []Region, cfg Config) (string, []Result) {
	f := cfg.formatter()
	res := make([]Result, len(regions))
	for i, r := range regions {
		res[i] = Result{Region: r}
		if j := overlaps(regions[:i], r); j >= 0 {
			res[i].Diag = &Diagnostic{
				Region:  r,
				Kind:    Conflict,
				Message: fmt.Sprintf("region %v overlaps region %v", r, regions[j]),
			}
			continue
		}
		v, d := validate(buf, r)
		if d != nil {
			res[i].Diag = d
			continue
		}
		text, err := f.Format(v)
		if err != nil {
			res[i].Diag = &Diagnostic{Region: r, Kind: Serialization, Message: err.Error(), Err: err}
			continue
		}
		res[i].Text = text
	}

	order := make([]int, 0, len(res))
	for i, r := range res {
		if r.OK() {
			order = append(order, i)
		}
	}
	slices.SortFunc(order, func(a, b int) int {
		alo, _ := res[a].Region.clamp(buf)
		blo, _ := res[b].Region.clamp(buf)
		return cmp.Compare(blo, alo)
	})
	out := buf
	for _, i := range order {
		lo, hi := res[i].Region.clamp(buf)
		out = out[:lo] + res[i].Text + out[hi:]
	}
	return out, res
}

// overlaps returns the index of the first region in rs that shares text with
// r, or -1 if there is none. Empty regions overlap nothing.
func overlaps(rs []Region, r Region) int {
	lo, hi := r.bounds()
	return slices.IndexFunc(rs, func(q Region) bool {
		qlo, qhi := q.bounds()
		return lo < qhi && qlo < hi
	})
}

// validate parses the text of r in buf, returning either its value or a
// diagnostic describing why it is invalid.
func validate(buf string, r Region) (ast.Value, *Diagnostic) {
	lo, hi := r.clamp(buf)
	v, err := ast.Parse(buf[lo:hi])
	if err == nil {
		return v, nil
	}
	d := &Diagnostic{Region: r, Kind: Syntax, Message: err.Error(), Err: err}
	var serr *jbeautify.SyntaxError
	if errors.As(err, &serr) {
		d.Message = serr.Message
		d.Position = position(buf, lo+serr.Offset)
	}
	return nil, d
}

// position returns the buffer position of byte offset off in buf.
func position(buf string, off int) *Position {
	head := buf[:min(off, len(buf))]
	return &Position{
		Line:   strings.Count(head, "\n") + 1,
		Column: utf8.RuneCountInString(head[strings.LastIndexByte(head, '\n')+1:]),
	}
}
