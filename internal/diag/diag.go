// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package diag renders diagnostics and diffs for display in a terminal.
//
// A diagnostic is printed as a location and message, followed by the source
// line it refers to and a caret marking the column:
//
//	config.json:3:12: syntax error: expected string, got "}"
//	  "a": 1,}
//	         ^
//
// Colors are used only when the output is a terminal.
package diag

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/creachadair/jbeautify/beautify"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// A Printer writes diagnostics and diffs to an output.
type Printer struct {
	w io.Writer

	loc, errKind, warnKind, caret *color.Color
	header, hunk, added, removed  *color.Color
}

// New constructs a Printer that writes to w. Colors are enabled if w is a
// terminal.
func New(w io.Writer) *Printer {
	p := &Printer{
		w:        w,
		loc:      color.New(color.Bold),
		errKind:  color.New(color.FgRed, color.Bold),
		warnKind: color.New(color.FgYellow, color.Bold),
		caret:    color.New(color.FgGreen),
		header:   color.New(color.FgCyan),
		hunk:     color.New(color.FgCyan),
		added:    color.New(color.FgGreen),
		removed:  color.New(color.FgRed),
	}
	p.SetColor(IsTerminal(w))
	return p
}

// SetColor enables or disables colored output.
func (p *Printer) SetColor(on bool) {
	for _, c := range []*color.Color{p.loc, p.errKind, p.warnKind, p.caret, p.header, p.hunk, p.added, p.removed} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Diagnostic writes d to the output. The name labels buf, and d refers to a
// region of buf.
func (p *Printer) Diagnostic(name, buf string, d beautify.Diagnostic) error {
	var out bytes.Buffer
	kind := p.errKind
	if d.Kind == beautify.Serialization {
		kind = p.warnKind
	}
	if d.Position == nil {
		fmt.Fprintf(&out, "%s %s %s (region %v)\n",
			p.loc.Sprint(name+":"), kind.Sprint(d.Kind.String()+":"), d.Message, d.Region)
		return p.write(out.Bytes())
	}

	fmt.Fprintf(&out, "%s %s %s\n",
		p.loc.Sprintf("%s:%d:%d:", name, d.Position.Line, d.Position.Column+1),
		kind.Sprint(d.Kind.String()+":"), d.Message)
	if line, ok := sourceLine(buf, d.Position.Line); ok {
		out.WriteString(line)
		out.WriteByte('\n')
		out.WriteString(padding(line, d.Position.Column))
		out.WriteString(p.caret.Sprint("^"))
		out.WriteByte('\n')
	}
	return p.write(out.Bytes())
}

// Diff writes a unified diff from oldText to newText. It writes nothing if
// the texts are equal.
func (p *Printer) Diff(oldName, newName, oldText, newText string) error {
	edits := udiff.Strings(oldText, newText)
	if len(edits) == 0 {
		return nil
	}
	unified, err := udiff.ToUnifiedDiff(oldName, newName, oldText, edits, udiff.DefaultContextLines)
	if err != nil {
		return fmt.Errorf("diff %s: %w", oldName, err)
	}
	var out bytes.Buffer
	for line := range strings.Lines(unified.String()) {
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "---"), strings.HasPrefix(text, "+++"):
			out.WriteString(p.header.Sprint(text))
		case strings.HasPrefix(text, "@@"):
			out.WriteString(p.hunk.Sprint(text))
		case strings.HasPrefix(text, "-"):
			out.WriteString(p.removed.Sprint(text))
		case strings.HasPrefix(text, "+"):
			out.WriteString(p.added.Sprint(text))
		default:
			out.WriteString(text)
		}
		out.WriteByte('\n')
	}
	return p.write(out.Bytes())
}

func (p *Printer) write(data []byte) error {
	_, err := p.w.Write(data)
	return err
}

// Render writes d to w, as a Printer constructed by New.
func Render(w io.Writer, name, buf string, d beautify.Diagnostic) error {
	return New(w).Diagnostic(name, buf, d)
}

// sourceLine returns the text of the 1-based line number n of buf, without
// its line terminator.
func sourceLine(buf string, n int) (string, bool) {
	for line := range strings.Lines(buf) {
		if n--; n == 0 {
			return strings.TrimRight(line, "\r\n"), true
		}
	}
	return "", false
}

// padding returns a string of blanks as wide as the first col characters of
// line. Tabs are kept so the caret lines up with the source.
func padding(line string, col int) string {
	var sb strings.Builder
	for _, ch := range line {
		if col == 0 {
			break
		}
		col--
		if ch == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String() + strings.Repeat(" ", col)
}
