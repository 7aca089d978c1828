// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jbeautify/ast"
	"github.com/creachadair/jbeautify/ast/cursor"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func TestCursor(t *testing.T) {
	v, err := ast.Parse(testJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := v.(*ast.Object)
	get := func(o ast.Value, key string) ast.Value {
		v, _ := o.(*ast.Object).Get(key)
		return v
	}

	tests := []struct {
		name string
		path []any
		want ast.Value
		loc  string
		fail bool
	}{
		{"NilInput", nil, v, "$", false},
		{"NoMatch", []any{"nonesuch"}, v, "$", true},
		{"WrongType", []any{"o", "x"}, get(v, "o"), "$.o", true},
		{"WrongElement", []any{true}, v, "$", true},

		{"ArrayPos", []any{"list", 1}, get(v, "list").(ast.Array)[1], "$.list[1]", false},
		{"ArrayNeg", []any{"list", -1}, get(v, "list").(ast.Array)[1], "$.list[1]", false},
		{"ArrayRange", []any{"o", 25}, get(v, "o"), "$.o", true},
		{"ObjPath", []any{"xyz", "d"}, ast.Bool(true), "$.xyz.d", false},
		{"ObjIndex", []any{"xyz", -1}, ast.Bool(false), "$.xyz.q", false},
		{"Nested", []any{"list", 0, "x"}, ast.Int(1), "$.list[0].x", false},

		{"FuncArray", []any{"o", testPathFunc}, ast.Int(2), "$.o", false},
		{"FuncObj", []any{"xyz", testPathFunc}, ast.Int(3), "$.xyz", false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, ast.Bool(true), "$.xyz.d", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(root).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Errorf("Down %+v: got %v, want error", tc.path, c.Value().JSON())
			}
			if got := c.Value(); !ast.Equal(got, tc.want) {
				t.Errorf("Down %+v: got %s, want %s", tc.path, got.JSON(), tc.want.JSON())
			}
			if got := c.Location(); got != tc.loc {
				t.Errorf("Location: got %q, want %q", got, tc.loc)
			}
		})
	}
}

func TestUpReset(t *testing.T) {
	v, err := ast.Parse(`{"a": [{"b": null}]}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := cursor.New(v).Down("a", 0, "b")
	if got := len(c.Trail()); got != 4 {
		t.Errorf("Trail: got %d values, want 4", got)
	}
	c.Up()
	if got := c.Location(); got != "$.a[0]" {
		t.Errorf("Up: got location %q, want $.a[0]", got)
	}
	c.Up().Up().Up()
	if !c.AtOrigin() || c.Value() != c.Origin() {
		t.Error("Up: cursor did not stop at the origin")
	}
	c.Down("nonesuch")
	c.Reset()
	if c.Err() != nil || !c.AtOrigin() {
		t.Errorf("Reset: err=%v, at origin=%v", c.Err(), c.AtOrigin())
	}
}

func TestPath(t *testing.T) {
	v, err := ast.Parse(`{"json": {"sort_keys": true, "indent": "  "}, "n": 5}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if b, err := cursor.Path[ast.Bool](v, "json", "sort_keys"); err != nil || !bool(b) {
		t.Errorf("Path sort_keys: got %v, %v; want true, nil", b, err)
	}

	tests := []struct {
		path    []any
		want    string
		missing bool
	}{
		{[]any{"json", "indent"}, "$.json.indent: got string, want bool", false},
		{[]any{"n", "x"}, "$.n: got integer, want object", false},
		{[]any{"json", "force_sort"}, "$.json.force_sort: not found", true},
		{[]any{"nope", "x"}, "$.nope: not found", true},
	}
	for _, tc := range tests {
		_, err := cursor.Path[ast.Bool](v, tc.path...)
		if err == nil {
			t.Errorf("Path %v: got nil, want error", tc.path)
			continue
		}
		if got := err.Error(); got != tc.want {
			t.Errorf("Path %v: got error %q, want %q", tc.path, got, tc.want)
		}
		if got := errors.Is(err, cursor.ErrNotFound); got != tc.missing {
			t.Errorf("Path %v: not found is %v, want %v", tc.path, got, tc.missing)
		}
		var cerr *cursor.Error
		if !errors.As(err, &cerr) {
			t.Errorf("Path %v: got %T, want *cursor.Error", tc.path, err)
		}
	}
}

func testPathFunc(v ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case ast.Array:
		return ast.Int(int64(len(t))), nil
	case *ast.Object:
		return ast.Int(int64(t.Len())), nil
	default:
		return nil, errors.New("not a thing with length")
	}
}
