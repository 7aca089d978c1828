package jpath_test

import (
	"testing"

	"github.com/creachadair/jbeautify/internal/jpath"
)

func TestString(t *testing.T) {
	var root jpath.Expr
	tests := []struct {
		expr jpath.Expr
		want string
	}{
		{root, "$"},
		{root.Member("store"), "$.store"},
		{root.Member("store").Member("book").Index(2), "$.store.book[2]"},
		{root.Index(0).Index(1), "$[0][1]"},
		{root.Member("apple sauce").Member("pearPlum"), "$['apple sauce'].pearPlum"},
		{root.Member(""), "$['']"},
		{root.Member(`it's`), `$['it\'s']`},
		{root.Member(`a\b`), `$['a\\b']`},
		{root.Member("snake_case_9"), "$.snake_case_9"},
	}
	for _, test := range tests {
		if got := test.expr.String(); got != test.want {
			t.Errorf("String: got %q, want %q", got, test.want)
		}
	}
}

func TestShare(t *testing.T) {
	// Extending a path must not modify its prefix, even when two paths are
	// extended from the same base.
	base := jpath.Expr{}.Member("a").Member("b")
	x := base.Index(1)
	y := base.Index(2)
	if got, want := x.String(), "$.a.b[1]"; got != want {
		t.Errorf("x: got %q, want %q", got, want)
	}
	if got, want := y.String(), "$.a.b[2]"; got != want {
		t.Errorf("y: got %q, want %q", got, want)
	}
	if got, want := base.String(), "$.a.b"; got != want {
		t.Errorf("base: got %q, want %q", got, want)
	}
	if op := x[2].Op; op != jpath.Index {
		t.Errorf("Step op: got %v, want %v", op, jpath.Index)
	}
}
