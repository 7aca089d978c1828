// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"math"
	"testing"

	"github.com/creachadair/jbeautify/ast"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestObject(t *testing.T) {
	o := ast.NewObject(
		ast.Field("b", 1),
		ast.Field("a", "x"),
		ast.Field("c", nil),
	)
	if got, want := o.Keys(), []string{"b", "a", "c"}; !cmp.Equal(got, want) {
		t.Errorf("Keys: got %q, want %q", got, want)
	}

	// Replacing a value keeps the original position.
	o.Set("b", ast.Bool(true))
	o.Set("d", ast.Array{})
	if got, want := o.Keys(), []string{"b", "a", "c", "d"}; !cmp.Equal(got, want) {
		t.Errorf("Keys after Set: got %q, want %q", got, want)
	}
	if v, ok := o.Get("b"); !ok || v != ast.Bool(true) {
		t.Errorf(`Get("b"): got %v, %v; want true, true`, v, ok)
	}
	if v, ok := o.Get("nonesuch"); ok {
		t.Errorf(`Get("nonesuch"): got %v, want not found`, v)
	}

	o.Delete("a")
	o.Delete("nonesuch")
	if got, want := o.JSON(), `{"b":true,"c":null,"d":[]}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
	if o.Len() != 3 {
		t.Errorf("Len: got %d, want 3", o.Len())
	}

	var keys []string
	for k := range o.All() {
		keys = append(keys, k)
		if k == "c" {
			break
		}
	}
	if diff := cmp.Diff([]string{"b", "c"}, keys); diff != "" {
		t.Errorf("All (-want, +got):\n%s", diff)
	}
}

func TestObjectSorted(t *testing.T) {
	o := ast.NewObject(
		ast.Field("zeta", 1),
		ast.Field("Alpha", 2),
		ast.Field("alpha", ast.NewObject(ast.Field("y", 1), ast.Field("x", 2))),
	)
	s := o.Sorted()
	if got, want := s.Keys(), []string{"Alpha", "alpha", "zeta"}; !cmp.Equal(got, want) {
		t.Errorf("Sorted keys: got %q, want %q", got, want)
	}
	if got, want := o.Keys(), []string{"zeta", "Alpha", "alpha"}; !cmp.Equal(got, want) {
		t.Errorf("Original keys changed: got %q, want %q", got, want)
	}
	if o.Equal(s) {
		t.Error("Sorted copy should not equal the original")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b ast.Value
		want bool
	}{
		{ast.Null{}, ast.Null{}, true},
		{ast.String("a"), ast.String("a"), true},
		{ast.String("a"), ast.String("b"), false},
		{ast.Bool(true), ast.Bool(false), false},
		{ast.Int(1), ast.Int(1), true},
		{ast.Int(1), ast.Float(1), false},
		{ast.Float(0.5), ast.Float(0.5), true},
		{ast.Array{ast.Int(1)}, ast.Array{ast.Int(1)}, true},
		{ast.Array{ast.Int(1)}, ast.Array{}, false},
		{ast.Array{}, ast.Null{}, false},
		{
			ast.NewObject(ast.Field("a", 1), ast.Field("b", 2)),
			ast.NewObject(ast.Field("a", 1), ast.Field("b", 2)),
			true,
		},
		{
			ast.NewObject(ast.Field("a", 1), ast.Field("b", 2)),
			ast.NewObject(ast.Field("b", 2), ast.Field("a", 1)),
			false,
		},
		{nil, nil, true},
		{nil, ast.Null{}, false},
	}
	for _, tc := range tests {
		if got := ast.Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("Equal(%v, %v): got %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input string
		isInt bool
		want  string
	}{
		{"0", true, "0"},
		{"-0", true, "0"},
		{"42", true, "42"},
		{"-17", true, "-17"},
		{"123456789012345678901234567890", true, "123456789012345678901234567890"},
		{"1.0", false, "1.0"},
		{"1.50", false, "1.5"},
		{"-0.0", false, "-0.0"},
		{"1e0", false, "1.0"},
		{"1E2", false, "100.0"},
		{"0.0001", false, "0.0001"},
		{"0.00001", false, "1e-05"},
		{"1e16", false, "1e+16"},
		{"1234567890123456.0", false, "1234567890123456.0"},
		{"3.14159", false, "3.14159"},
		{"1e400", false, "Infinity"},
		{"-1e400", false, "-Infinity"},
	}
	for _, tc := range tests {
		n, err := ast.ParseNumber(tc.input)
		if err != nil {
			t.Errorf("ParseNumber(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if n.IsInt() != tc.isInt {
			t.Errorf("ParseNumber(%q).IsInt: got %v, want %v", tc.input, n.IsInt(), tc.isInt)
		}
		if got := n.JSON(); got != tc.want {
			t.Errorf("ParseNumber(%q).JSON: got %q, want %q", tc.input, got, tc.want)
		}
	}

	if _, err := ast.ParseNumber("bogus"); err == nil {
		t.Error("ParseNumber(bogus): got nil, want error")
	}
	if v, ok := ast.Int(25).Int64(); !ok || v != 25 {
		t.Errorf("Int64: got %v, %v; want 25, true", v, ok)
	}
	if _, ok := ast.Float(2.5).Int64(); ok {
		t.Error("Int64 of a float should report false")
	}
	if ast.Float(math.Inf(1)).IsFinite() {
		t.Error("IsFinite(+Inf): got true, want false")
	}
	if got := ast.Int(7).Float64(); got != 7 {
		t.Errorf("Float64: got %v, want 7", got)
	}
}

func TestToValue(t *testing.T) {
	v := ast.ToValue([]any{"a", 1, 2.5, true, nil, []ast.Member{ast.Field("k", "v")}})
	if got, want := v.JSON(), `["a",1,2.5,true,null,{"k":"v"}]`; got != want {
		t.Errorf("ToValue: got %#q, want %#q", got, want)
	}

	mtest.MustPanic(t, func() { ast.ToValue([]bool{true}) })
	mtest.MustPanic(t, func() { ast.ToValue(func() {}) })
	mtest.MustPanic(t, func() { ast.ToValue(make(chan struct{})) })
}
