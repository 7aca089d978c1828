// Package jpath implements a minimal JSONPath expression builder, used to
// name the location of a value within a document.
package jpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Grammar of the rendered form (a subset of JSONPath):

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." WORD
  step = "[" "'" QTEXT "'" "]"
  step = "[" INDEX "]"

  WORD = RE `\w+`
 QTEXT = RE `([^'\\]|\\.)*`
 INDEX = RE `\d+`

Source:
  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
*/

// An Expr is a path expression. The zero value denotes the root.
type Expr []Step

// Member returns a copy of e extended by an object member lookup.
func (e Expr) Member(name string) Expr {
	op := Name
	if !wordRE.MatchString(name) {
		op = QName
	}
	return e.with(Step{Op: op, Arg: name})
}

// Index returns a copy of e extended by an array index lookup.
func (e Expr) Index(i int) Expr { return e.with(Step{Op: Index, Arg: strconv.Itoa(i)}) }

func (e Expr) with(s Step) Expr {
	out := make(Expr, len(e)+1)
	copy(out, e)
	out[len(e)] = s
	return out
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Name:
			fmt.Fprint(&buf, ".", s.Arg)
		case QName:
			fmt.Fprintf(&buf, "['%s']", quoteRepl.Replace(s.Arg))
		default:
			fmt.Fprintf(&buf, "[%s]", s.Arg)
		}
	}
	return buf.String()
}

var (
	wordRE    = regexp.MustCompile(`^\w+$`)
	quoteRepl = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Index             // array index lookup
	Name              // unquoted member name
	QName             // quoted member name
)

var opText = map[Op]string{
	Invalid: "invalid",
	Index:   "index",
	Name:    "name",
	QName:   "qname",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}

// A Step is a single step of a path expression.
type Step struct {
	Op  Op
	Arg string
}
